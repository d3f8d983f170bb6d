package variant

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/piece"
)

// Crazyhouse piece type IDs: the orthodox six, reused unchanged.
const (
	ChPawn piece.Type = iota
	ChKnight
	ChBishop
	ChRook
	ChQueen
	ChKing
)

// Crazyhouse returns a Config for Crazyhouse: orthodox chess with
// KEEP_CAPTURE (captures join the capturer's hand, demoted to their
// unpromoted form) and ALLOW_DROPS (held pieces drop onto any empty
// square, pawns excluded from the first and last ranks).
func Crazyhouse() *Config {
	files, ranks := 8, 8
	shape := bitboard.NewShape(files, ranks, nil)
	rank8 := cellBox(shape, 0, 7, 7, 7)
	rank1 := cellBox(shape, 0, 0, 7, 0)
	rank2 := cellBox(shape, 0, 1, 7, 1)
	rank7 := cellBox(shape, 0, 6, 7, 6)
	dropZone := cellBox(shape, 0, 1, 7, 6) // pawns may not drop onto rank 1 or rank 8

	pawn := &piece.Descriptor{ID: ChPawn, NotationLetter: 'P', NameWhite: "Pawn", NameBlack: "pawn",
		MoveAtoms:    []piece.Atom{piece.Step([8]int{piece.North: 1})},
		CaptureAtoms: []piece.Atom{{Family: piece.FamilyALeaper, Offsets: []piece.Offset{{DX: 1, DY: 1}, {DX: -1, DY: 1}}}},
		SpecialAtoms: []piece.Atom{piece.Step([8]int{piece.North: 2})},
		Zones:        piece.Zones{Promotion: rank8.Or(rank1), SpecialZone: rank2.Or(rank7), DropZone: dropZone},
		PromotionTable: []piece.PromotionRow{{Zone: rank8.Or(rank1), OnEntry: true,
			Targets: []piece.Type{ChQueen, ChRook, ChBishop, ChKnight}}},
		Demotion: ChPawn, Class: piece.ClassPawn, ValueMG: 100, ValueEG: 120}

	knight := &piece.Descriptor{ID: ChKnight, NotationLetter: 'N', NameWhite: "Knight", NameBlack: "knight",
		MoveAtoms: []piece.Atom{piece.Leaper(2, 1)}, Demotion: ChKnight, Class: piece.ClassMinor, ValueMG: 320, ValueEG: 320}

	bishop := &piece.Descriptor{ID: ChBishop, NotationLetter: 'B', NameWhite: "Bishop", NameBlack: "bishop",
		MoveAtoms: []piece.Atom{piece.Slide(false, false, true, true)},
		Flags:     piece.PairBonus, Demotion: ChBishop, Class: piece.ClassMinor, ValueMG: 330, ValueEG: 330}

	rook := &piece.Descriptor{ID: ChRook, NotationLetter: 'R', NameWhite: "Rook", NameBlack: "rook",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false)},
		Flags:     piece.CanCastle, Demotion: ChRook, Class: piece.ClassMajor, ValueMG: 500, ValueEG: 500}

	queen := &piece.Descriptor{ID: ChQueen, NotationLetter: 'Q', NameWhite: "Queen", NameBlack: "queen",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, true, true)},
		Demotion:  ChQueen, Class: piece.ClassMajor | piece.ClassSuper, ValueMG: 900, ValueEG: 900}

	king := &piece.Descriptor{ID: ChKing, NotationLetter: 'K', NameWhite: "King", NameBlack: "king",
		MoveAtoms: []piece.Atom{piece.Step([8]int{
			piece.North: 1, piece.NorthEast: 1, piece.East: 1, piece.SouthEast: 1,
			piece.South: 1, piece.SouthWest: 1, piece.West: 1, piece.NorthWest: 1,
		})},
		Flags: piece.Royal | piece.CanCastle, Class: piece.ClassRoyal}

	castles := []board.CastlingRule{
		{Side: board.White, KingFrom: shape.Cell(4, 0), KingTo: shape.Cell(6, 0), RookFrom: shape.Cell(7, 0), RookTo: shape.Cell(5, 0), Right: 1 << 0, Letter: 'K'},
		{Side: board.White, KingFrom: shape.Cell(4, 0), KingTo: shape.Cell(2, 0), RookFrom: shape.Cell(0, 0), RookTo: shape.Cell(3, 0), Right: 1 << 1, Letter: 'Q'},
		{Side: board.Black, KingFrom: shape.Cell(4, 7), KingTo: shape.Cell(6, 7), RookFrom: shape.Cell(7, 7), RookTo: shape.Cell(5, 7), Right: 1 << 2, Letter: 'k'},
		{Side: board.Black, KingFrom: shape.Cell(4, 7), KingTo: shape.Cell(2, 7), RookFrom: shape.Cell(0, 7), RookTo: shape.Cell(3, 7), Right: 1 << 3, Letter: 'q'},
	}

	descs := []*piece.Descriptor{pawn, knight, bishop, rook, queen, king}

	return &Config{
		Name: "crazyhouse", Files: files, Ranks: ranks,
		Descriptors:   descs,
		CastlingRules: castles,
		StartFEN:      "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[] w KQkq - 0 1",
		Rules:         AllowDrops | KeepCapture,
		Scores:        TerminalScores{Mate: 1, RepeatClaims: 3, FiftyLimit: 100},
		ZobristSeed:   0xc4a2 << 4,
	}
}
