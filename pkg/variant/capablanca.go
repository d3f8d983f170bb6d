package variant

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/piece"
)

// Capablanca chess piece type IDs: the orthodox six plus the chancellor
// (rook+knight) and archbishop (bishop+knight) on a 10x8 board.
const (
	CpPawn piece.Type = iota
	CpKnight
	CpBishop
	CpRook
	CpQueen
	CpArchbishop
	CpChancellor
	CpKing
)

// Capablanca returns a sketch Config for Capablanca chess: a 10x8 board
// widened by two files, the orthodox pieces reused directly, plus the
// Archbishop and Chancellor compound pieces built as a union of two atom sets.
func Capablanca() *Config {
	files, ranks := 10, 8
	shape := bitboard.NewShape(files, ranks, nil)
	rank8 := cellBox(shape, 0, 7, 9, 7)
	rank1 := cellBox(shape, 0, 0, 9, 0)
	rank2 := cellBox(shape, 0, 1, 9, 1)
	rank7 := cellBox(shape, 0, 6, 9, 6)

	pawn := &piece.Descriptor{ID: CpPawn, NotationLetter: 'P', NameWhite: "Pawn", NameBlack: "pawn",
		MoveAtoms:    []piece.Atom{piece.Step([8]int{piece.North: 1})},
		CaptureAtoms: []piece.Atom{{Family: piece.FamilyALeaper, Offsets: []piece.Offset{{DX: 1, DY: 1}, {DX: -1, DY: 1}}}},
		SpecialAtoms: []piece.Atom{piece.Step([8]int{piece.North: 2})},
		Zones:        piece.Zones{Promotion: rank8.Or(rank1), SpecialZone: rank2.Or(rank7)},
		PromotionTable: []piece.PromotionRow{{Zone: rank8.Or(rank1), OnEntry: true,
			Targets: []piece.Type{CpQueen, CpChancellor, CpArchbishop, CpRook, CpBishop, CpKnight}}},
		Class: piece.ClassPawn, ValueMG: 100, ValueEG: 120}

	knight := &piece.Descriptor{ID: CpKnight, NotationLetter: 'N', NameWhite: "Knight", NameBlack: "knight",
		MoveAtoms: []piece.Atom{piece.Leaper(2, 1)}, Class: piece.ClassMinor, ValueMG: 320, ValueEG: 320}

	bishop := &piece.Descriptor{ID: CpBishop, NotationLetter: 'B', NameWhite: "Bishop", NameBlack: "bishop",
		MoveAtoms: []piece.Atom{piece.Slide(false, false, true, true)},
		Flags:     piece.PairBonus, Class: piece.ClassMinor, ValueMG: 330, ValueEG: 330}

	rook := &piece.Descriptor{ID: CpRook, NotationLetter: 'R', NameWhite: "Rook", NameBlack: "rook",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false)},
		Flags:     piece.CanCastle, Class: piece.ClassMajor, ValueMG: 500, ValueEG: 500}

	queen := &piece.Descriptor{ID: CpQueen, NotationLetter: 'Q', NameWhite: "Queen", NameBlack: "queen",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, true, true)},
		Class:     piece.ClassMajor | piece.ClassSuper, ValueMG: 900, ValueEG: 900}

	archbishop := &piece.Descriptor{ID: CpArchbishop, NotationLetter: 'A', NameWhite: "Archbishop", NameBlack: "archbishop",
		MoveAtoms: []piece.Atom{piece.Slide(false, false, true, true), piece.Leaper(2, 1)},
		Class:     piece.ClassMajor, ValueMG: 870, ValueEG: 870}

	chancellor := &piece.Descriptor{ID: CpChancellor, NotationLetter: 'C', NameWhite: "Chancellor", NameBlack: "chancellor",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false), piece.Leaper(2, 1)},
		Class:     piece.ClassMajor, ValueMG: 925, ValueEG: 925}

	king := &piece.Descriptor{ID: CpKing, NotationLetter: 'K', NameWhite: "King", NameBlack: "king",
		MoveAtoms: []piece.Atom{piece.Step([8]int{
			piece.North: 1, piece.NorthEast: 1, piece.East: 1, piece.SouthEast: 1,
			piece.South: 1, piece.SouthWest: 1, piece.West: 1, piece.NorthWest: 1,
		})},
		Flags: piece.Royal | piece.CanCastle, Class: piece.ClassRoyal}

	kingFile := 5
	castles := []board.CastlingRule{
		{Side: board.White, KingFrom: shape.Cell(kingFile, 0), KingTo: shape.Cell(8, 0), RookFrom: shape.Cell(9, 0), RookTo: shape.Cell(7, 0), Right: 1 << 0, Letter: 'K'},
		{Side: board.White, KingFrom: shape.Cell(kingFile, 0), KingTo: shape.Cell(2, 0), RookFrom: shape.Cell(0, 0), RookTo: shape.Cell(3, 0), Right: 1 << 1, Letter: 'Q'},
		{Side: board.Black, KingFrom: shape.Cell(kingFile, 7), KingTo: shape.Cell(8, 7), RookFrom: shape.Cell(9, 7), RookTo: shape.Cell(7, 7), Right: 1 << 2, Letter: 'k'},
		{Side: board.Black, KingFrom: shape.Cell(kingFile, 7), KingTo: shape.Cell(2, 7), RookFrom: shape.Cell(0, 7), RookTo: shape.Cell(3, 7), Right: 1 << 3, Letter: 'q'},
	}

	descs := []*piece.Descriptor{pawn, knight, bishop, rook, queen, archbishop, chancellor, king}

	return &Config{
		Name: "capablanca", Files: files, Ranks: ranks,
		Descriptors:   descs,
		CastlingRules: castles,
		StartFEN:      "rnabqkbcnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNABQKBCNR w KQkq - 0 1",
		Rules:         0,
		Scores:        TerminalScores{Mate: 1, RepeatClaims: 3, FiftyLimit: 100},
		ZobristSeed:   0xcab1ca,
	}
}
