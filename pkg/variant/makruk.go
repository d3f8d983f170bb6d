package variant

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/piece"
)

// Makruk (Thai chess) piece type IDs.
const (
	MkBia piece.Type = iota // pawn
	MkMa                    // knight
	MkThon                  // bishop-like "bia" promoted form / met
	MkKhon                  // bishop equivalent
	MkRua                   // rook
	MkMet                   // queen equivalent (weak)
	MkKhun                  // king
)

// Makruk returns a sketch Config for Thai chess: 8x8 board, pawns promote to
// Met only on reaching the sixth rank (no long double step), and the Khon
// (bishop) moves one step diagonal or one step straight forward.
func Makruk() *Config {
	files, ranks := 8, 8
	shape := bitboard.NewShape(files, ranks, nil)
	promoteRow := cellBox(shape, 0, 5, 7, 5) // sixth rank, White-oriented

	bia := &piece.Descriptor{ID: MkBia, NotationLetter: 'B', NameWhite: "Bia", NameBlack: "bia",
		MoveAtoms:    []piece.Atom{piece.Step([8]int{piece.North: 1})},
		CaptureAtoms: []piece.Atom{{Family: piece.FamilyALeaper, Offsets: []piece.Offset{{DX: 1, DY: 1}, {DX: -1, DY: 1}}}},
		Zones:        piece.Zones{Promotion: promoteRow},
		PromotionTable: []piece.PromotionRow{{Zone: promoteRow, Targets: []piece.Type{MkMet}, OnEntry: true}},
		Class: piece.ClassPawn}

	ma := &piece.Descriptor{ID: MkMa, NotationLetter: 'N', NameWhite: "Ma", NameBlack: "ma",
		MoveAtoms: []piece.Atom{piece.Leaper(2, 1)}, Class: piece.ClassMinor}

	khon := &piece.Descriptor{ID: MkKhon, NotationLetter: 'B', NameWhite: "Khon", NameBlack: "khon",
		MoveAtoms: []piece.Atom{{Family: piece.FamilyALeaper, Offsets: []piece.Offset{
			{DX: 1, DY: 1}, {DX: -1, DY: 1}, {DX: 1, DY: -1}, {DX: -1, DY: -1}, {DX: 0, DY: 1},
		}}},
		Class: piece.ClassMinor}

	rua := &piece.Descriptor{ID: MkRua, NotationLetter: 'R', NameWhite: "Rua", NameBlack: "rua",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false)}, Class: piece.ClassMajor}

	met := &piece.Descriptor{ID: MkMet, NotationLetter: 'Q', NameWhite: "Met", NameBlack: "met",
		MoveAtoms: []piece.Atom{{Family: piece.FamilyALeaper, Offsets: []piece.Offset{
			{DX: 1, DY: 1}, {DX: -1, DY: 1}, {DX: 1, DY: -1}, {DX: -1, DY: -1},
		}}},
		Class: piece.ClassMinor}

	khun := &piece.Descriptor{ID: MkKhun, NotationLetter: 'K', NameWhite: "Khun", NameBlack: "khun",
		MoveAtoms: []piece.Atom{piece.Step([8]int{
			piece.North: 1, piece.NorthEast: 1, piece.East: 1, piece.SouthEast: 1,
			piece.South: 1, piece.SouthWest: 1, piece.West: 1, piece.NorthWest: 1,
		})},
		Flags: piece.Royal, Class: piece.ClassRoyal}

	descs := []*piece.Descriptor{bia, ma, khon, rua, met, khun}

	return &Config{
		Name: "makruk", Files: files, Ranks: ranks,
		Descriptors: descs,
		StartFEN:    "rnbqkbnr/8/pppppppp/8/8/PPPPPPPP/8/RNBQKBNR w - - 0 1",
		Rules:       0,
		Scores:      TerminalScores{Mate: 1, FiftyLimit: 64},
		ZobristSeed: 0x5a1a6,
	}
}
