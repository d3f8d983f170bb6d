// Package notation renders and parses moves in pure algebraic coordinate
// notation, generalizing the familiar fixed "a2a4"/"a7a8q" format to
// variants with drops and gated pieces: "P@e4" for a drop, and an
// "e1g1/H" suffix for a gated add-on. Rather than resolving a parsed move
// against exactly two squares and an optional promotion piece, this
// package resolves move text by matching it against the position's legal
// moves, since a generalized board has ambiguous cases (same from/to with
// different PromotionTable targets, multiple drops onto the same cell) a
// fixed six-piece-type game never has to face.
package notation

import (
	"fmt"
	"strings"

	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/piece"
)

// CellName renders a cell index as algebraic coordinates, e.g. "e4". Files
// beyond 'z'-'a' (boards over 26 files) fall back to a bracketed index.
func CellName(shape *bitboard.Shape, cell int) string {
	f, r := shape.File(cell), shape.Rank(cell)
	file := string(rune('a' + f))
	if f >= 26 {
		file = fmt.Sprintf("[%d]", f)
	}
	return fmt.Sprintf("%s%d", file, r+1)
}

// ParseCell parses algebraic coordinates back into a cell index.
func ParseCell(shape *bitboard.Shape, s string) (int, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("notation: invalid square %q", s)
	}
	f := int(s[0] - 'a')
	var r int
	if _, err := fmt.Sscanf(s[1:], "%d", &r); err != nil {
		return 0, fmt.Errorf("notation: invalid square %q: %w", s, err)
	}
	r--
	if f < 0 || f >= shape.Files || r < 0 || r >= shape.Ranks {
		return 0, fmt.Errorf("notation: square %q out of range", s)
	}
	return shape.Cell(f, r), nil
}

// pieceLetter returns the descriptor's notation letter, upper or lower by
// side, following the usual Piece.String() case convention.
func pieceLetter(d *piece.Descriptor, c board.Color) string {
	l := d.NotationLetter
	if c == board.Black {
		l = []rune(strings.ToLower(string(l)))[0]
	}
	return string(l)
}

// Format renders m in pure algebraic coordinate notation for the position
// it was generated from (descriptors and shape come from the same
// *variant.Assembled the move was produced against).
func Format(shape *bitboard.Shape, descriptors []*piece.Descriptor, mover board.Color, m move.Move) string {
	switch {
	case len(m.Drops) > 0 && len(m.Swaps) == 0:
		d := m.Drops[0]
		letter := strings.ToUpper(pieceLetter(descriptors[d.Piece], board.White))
		return fmt.Sprintf("%s@%s", letter, CellName(shape, int(d.To)))

	case len(m.Swaps) == 2:
		// Castle: report king from/to, the conventional coordinate-notation shape,
		// plus a "/X" suffix when a held piece is gated in.
		base := CellName(shape, int(m.Swaps[0].From)) + CellName(shape, int(m.Swaps[0].To))
		if len(m.Drops) > 0 {
			base += "/" + strings.ToUpper(pieceLetter(descriptors[m.Drops[0].Piece], board.White))
		}
		return base

	case len(m.Swaps) == 1:
		base := CellName(shape, int(m.Swaps[0].From)) + CellName(shape, int(m.Swaps[0].To))
		gate := ""
		for _, d := range m.Drops {
			letter := pieceLetter(descriptors[d.Piece], board.White)
			if d.To == m.Swaps[0].From {
				// Gate: a held piece dropped onto the vacated origin square.
				gate = "/" + strings.ToUpper(letter)
				continue
			}
			// Promotion: a swap followed by a same-cell drop of the new identity.
			base += strings.ToLower(letter)
		}
		return base + gate

	default:
		return "0000"
	}
}

// Parse resolves move text against the position's legal moves. Rather than
// trusting the text's own from/to/promotion fields as the whole answer, it
// regenerates legal moves and returns whichever one renders identically, so
// that variant-specific shapes (drops, gates, multi-swap castles) the text
// format under-specifies still resolve to exactly one Move.
func Parse(gen *movegen.Generator, s *board.State, text string) (move.Move, error) {
	text = strings.TrimSpace(text)
	for _, m := range gen.LegalMoves(s) {
		if Format(gen.Shape, s.Descriptors, s.SideToMove, m) == text {
			return m, nil
		}
	}
	return move.Move{}, fmt.Errorf("notation: %q is not a legal move", text)
}
