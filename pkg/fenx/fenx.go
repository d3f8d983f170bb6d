// Package fenx implements an extended FEN wire format: rank-major piece
// placement with `*` for excluded cells, optional bracketed holdings, side
// to move, castling availability (letter or FRC file letter), en passant
// target, half-move and full-move counters. Generalized from the fixed 8x8
// orthodox alphabet to the per-variant piece-symbol table a Config
// supplies.
package fenx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/piece"
	"github.com/polychess/vace/pkg/variant"
)

// Position bundles the decoded scalars that accompany a board.State but are
// not part of it (half/full-move counters travel with the game wrapper).
type Position struct {
	State     *board.State
	FullMoves int
}

// Decode parses an extended FEN string into a fresh board.State built from a.
func Decode(a *variant.Assembled, fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("fenx: too few fields in %q", fen)
	}

	placement := fields[0]
	holdings := ""
	if i := strings.IndexByte(placement, '['); i >= 0 {
		j := strings.IndexByte(placement, ']')
		if j < i {
			return nil, fmt.Errorf("fenx: unterminated holdings in %q", fen)
		}
		holdings = placement[i+1 : j]
		placement = placement[:i]
	}

	s := a.NewEmptyState()

	bySymbol := make(map[rune]piece.Type, len(a.Config.Descriptors))
	for _, d := range a.Config.Descriptors {
		bySymbol[toWhite(d.NotationLetter)] = d.ID
	}

	rank := a.Shape.Ranks - 1
	file := 0
	for _, r := range placement {
		switch {
		case r == '/':
			rank--
			file = 0
		case r >= '1' && r <= '9':
			file += int(r - '0')
		case r == '*':
			file++
		default:
			t, ok := bySymbol[toWhite(r)]
			if !ok {
				return nil, fmt.Errorf("fenx: unknown piece symbol %q in %q", r, fen)
			}
			c := board.White
			if r >= 'a' && r <= 'z' {
				c = board.Black
			}
			cell := a.Shape.Cell(file, rank)
			s.PutPiece(cell, c, t)
			s.Init = s.Init.Set(cell)
			file++
		}
	}

	if holdings != "" && holdings != "-" {
		for _, r := range holdings {
			t, ok := bySymbol[toWhite(r)]
			if !ok {
				return nil, fmt.Errorf("fenx: unknown holding symbol %q in %q", r, fen)
			}
			c := board.White
			if r >= 'a' && r <= 'z' {
				c = board.Black
			}
			s.Holdings[t][c]++
		}
		// Reconcile the incremental hash with the holdings counts set directly
		// above (NewEmptyState only seeded the count=0 baseline key).
		for t := range s.Holdings {
			for c := board.Color(0); c < board.NumColors; c++ {
				if n := s.Holdings[t][c]; n > 0 {
					s.Hash ^= s.ZT.Holding(c, t, 0)
					s.Hash ^= s.ZT.Holding(c, t, n)
				}
			}
		}
	}

	switch fields[1] {
	case "w":
		s.SideToMove = board.White
	case "b":
		s.SideToMove = board.Black
		s.Hash ^= s.ZT.Turn()
	default:
		return nil, fmt.Errorf("fenx: invalid side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, r := range fields[2] {
			found := false
			for i, rule := range a.Config.CastlingRules {
				if byte(r) == rule.Letter {
					s.Castling |= 1 << uint(i)
					s.Hash ^= s.ZT.CastlingBit(i)
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("fenx: unknown castling letter %q in %q", r, fen)
			}
		}
	}

	if fields[3] != "-" {
		cell, err := parseCell(a.Shape, fields[3])
		if err != nil {
			return nil, err
		}
		s.EP = bitboard.FromCell(cell)
		s.EPVictim = epVictimCell(a.Shape, cell, s.SideToMove)
	}

	halfmove := 0
	if len(fields) > 4 {
		halfmove, _ = strconv.Atoi(fields[4])
	}
	s.FiftyCounter = halfmove

	fullmoves := 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			fullmoves = n
		}
	}

	return &Position{State: s, FullMoves: fullmoves}, nil
}

// Encode renders a board.State back to extended FEN.
func Encode(a *variant.Assembled, pos *Position) string {
	s := pos.State
	var sb strings.Builder

	bySymbol := make(map[piece.Type]rune, len(a.Config.Descriptors))
	for _, d := range a.Config.Descriptors {
		bySymbol[d.ID] = d.NotationLetter
	}

	for rank := a.Shape.Ranks - 1; rank >= 0; rank-- {
		blanks := 0
		for file := 0; file < a.Shape.Files; file++ {
			cell := a.Shape.Cell(file, rank)
			if a.Shape.IsExcluded(cell) {
				if blanks > 0 {
					sb.WriteString(strconv.Itoa(blanks))
					blanks = 0
				}
				sb.WriteByte('*')
				continue
			}
			occ := s.PieceAt[cell]
			if !occ.Present {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sym := bySymbol[occ.Type]
			if occ.Color == board.Black {
				sym = toBlack(sym)
			} else {
				sym = toWhite(sym)
			}
			sb.WriteRune(sym)
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if holdingStr := encodeHoldings(a, s, bySymbol); holdingStr != "" {
		sb.WriteByte('[')
		sb.WriteString(holdingStr)
		sb.WriteByte(']')
	}

	sb.WriteByte(' ')
	sb.WriteString(s.SideToMove.String())

	sb.WriteByte(' ')
	castling := ""
	for i, rule := range a.Config.CastlingRules {
		if s.Castling.IsAllowed(1 << uint(i)) {
			castling += string(rule.Letter)
		}
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	if s.EP.IsEmpty() {
		sb.WriteString("-")
	} else {
		sb.WriteString(cellName(a.Shape, s.EP.Bitscan()))
	}

	sb.WriteString(fmt.Sprintf(" %d %d", s.FiftyCounter, pos.FullMoves))

	return sb.String()
}

func encodeHoldings(a *variant.Assembled, s *board.State, bySymbol map[piece.Type]rune) string {
	var sb strings.Builder
	for _, d := range a.Config.Descriptors {
		for c := board.Color(0); c < board.NumColors; c++ {
			n := s.Holdings[d.ID][c]
			sym := bySymbol[d.ID]
			if c == board.Black {
				sym = toBlack(sym)
			} else {
				sym = toWhite(sym)
			}
			for i := 0; i < n; i++ {
				sb.WriteRune(sym)
			}
		}
	}
	return sb.String()
}

func toWhite(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func toBlack(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func parseCell(shape *bitboard.Shape, s string) (int, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("fenx: invalid cell %q", s)
	}
	file := int(s[0] - 'a')
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("fenx: invalid cell %q", s)
	}
	return shape.Cell(file, rank-1), nil
}

func cellName(shape *bitboard.Shape, cell int) string {
	f, r := shape.File(cell), shape.Rank(cell)
	return fmt.Sprintf("%c%d", 'a'+f, r+1)
}

// epVictimCell derives the double-pushed pawn's square from the FEN en
// passant target: the square one rank beyond the target in the pushing
// side's forward direction, the side to move being the opponent of whoever
// just pushed.
func epVictimCell(shape *bitboard.Shape, target int, sideToMove board.Color) int {
	f, r := shape.File(target), shape.Rank(target)
	if sideToMove.Opponent() == board.White {
		return shape.Cell(f, r+1)
	}
	return shape.Cell(f, r-1)
}
