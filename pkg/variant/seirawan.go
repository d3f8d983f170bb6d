package variant

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/piece"
)

// Seirawan chess piece type IDs: the orthodox six plus the Hawk
// (bishop+knight) and Elephant (rook+knight), gated onto the board from
// hand rather than starting on the back rank.
const (
	SePawn piece.Type = iota
	SeKnight
	SeBishop
	SeRook
	SeQueen
	SeHawk
	SeElephant
	SeKing
)

// Seirawan returns a sketch Config for Seirawan chess: orthodox 8x8 geometry
// and the orthodox six pieces unchanged, plus a Hawk and Elephant that enter
// play by gating (a king or rook's first move may bring a held piece onto
// the vacated or passed-through square) rather than starting on the board --
// modeled here as drop-capable pieces confined to the back two ranks
// (GATE_DROPS).
func Seirawan() *Config {
	files, ranks := 8, 8
	shape := bitboard.NewShape(files, ranks, nil)
	rank8 := cellBox(shape, 0, 7, 7, 7)
	rank1 := cellBox(shape, 0, 0, 7, 0)
	rank2 := cellBox(shape, 0, 1, 7, 1)
	rank7 := cellBox(shape, 0, 6, 7, 6)
	backRanks := rank1.Or(rank8)

	pawn := &piece.Descriptor{ID: SePawn, NotationLetter: 'P', NameWhite: "Pawn", NameBlack: "pawn",
		MoveAtoms:    []piece.Atom{piece.Step([8]int{piece.North: 1})},
		CaptureAtoms: []piece.Atom{{Family: piece.FamilyALeaper, Offsets: []piece.Offset{{DX: 1, DY: 1}, {DX: -1, DY: 1}}}},
		SpecialAtoms: []piece.Atom{piece.Step([8]int{piece.North: 2})},
		Zones:        piece.Zones{Promotion: rank8.Or(rank1), SpecialZone: rank2.Or(rank7)},
		PromotionTable: []piece.PromotionRow{{Zone: rank8.Or(rank1), OnEntry: true,
			Targets: []piece.Type{SeQueen, SeRook, SeBishop, SeKnight}}},
		Class: piece.ClassPawn, ValueMG: 100, ValueEG: 120}

	knight := &piece.Descriptor{ID: SeKnight, NotationLetter: 'N', NameWhite: "Knight", NameBlack: "knight",
		MoveAtoms: []piece.Atom{piece.Leaper(2, 1)}, Class: piece.ClassMinor, ValueMG: 320, ValueEG: 320}

	bishop := &piece.Descriptor{ID: SeBishop, NotationLetter: 'B', NameWhite: "Bishop", NameBlack: "bishop",
		MoveAtoms: []piece.Atom{piece.Slide(false, false, true, true)},
		Flags:     piece.PairBonus, Class: piece.ClassMinor, ValueMG: 330, ValueEG: 330}

	rook := &piece.Descriptor{ID: SeRook, NotationLetter: 'R', NameWhite: "Rook", NameBlack: "rook",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false)},
		Flags:     piece.CanCastle, Class: piece.ClassMajor, ValueMG: 500, ValueEG: 500}

	queen := &piece.Descriptor{ID: SeQueen, NotationLetter: 'Q', NameWhite: "Queen", NameBlack: "queen",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, true, true)},
		Class:     piece.ClassMajor | piece.ClassSuper, ValueMG: 900, ValueEG: 900}

	hawk := &piece.Descriptor{ID: SeHawk, NotationLetter: 'H', NameWhite: "Hawk", NameBlack: "hawk",
		MoveAtoms: []piece.Atom{piece.Slide(false, false, true, true), piece.Leaper(2, 1)},
		Zones:     piece.Zones{DropZone: backRanks},
		Class:     piece.ClassMajor, ValueMG: 870, ValueEG: 870}

	elephant := &piece.Descriptor{ID: SeElephant, NotationLetter: 'E', NameWhite: "Elephant", NameBlack: "elephant",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false), piece.Leaper(2, 1)},
		Zones:     piece.Zones{DropZone: backRanks},
		Class:     piece.ClassMajor, ValueMG: 925, ValueEG: 925}

	king := &piece.Descriptor{ID: SeKing, NotationLetter: 'K', NameWhite: "King", NameBlack: "king",
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

	descs := []*piece.Descriptor{pawn, knight, bishop, rook, queen, hawk, elephant, king}

	return &Config{
		Name: "seirawan", Files: files, Ranks: ranks,
		Descriptors:   descs,
		CastlingRules: castles,
		StartFEN:      "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[HEhe] w KQkq - 0 1",
		Rules:         AllowDrops | GateDrops,
		Scores:        TerminalScores{Mate: 1, RepeatClaims: 3, FiftyLimit: 100},
		ZobristSeed:   0x5e1a,
	}
}
