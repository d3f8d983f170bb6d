package variant

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/piece"
)

// Orthodox piece type IDs, fixed by registration order below.
const (
	OrthoPawn piece.Type = iota
	OrthoKnight
	OrthoBishop
	OrthoRook
	OrthoQueen
	OrthoKing
)

// Orthodox returns the standard 8x8 chess Config, expressed through the same
// declarative Config shape every registered variant goes through.
func Orthodox() *Config {
	files, ranks := 8, 8
	shapeForZones := bitboard.NewShape(files, ranks, nil)

	rank8 := shapeForZones.Ranks_[7]
	rank1 := shapeForZones.Ranks_[0]
	rank2 := shapeForZones.Ranks_[1]
	rank7 := shapeForZones.Ranks_[6]

	pawn := &piece.Descriptor{
		ID:             OrthoPawn,
		NameWhite:      "Pawn", NameBlack: "pawn",
		NotationLetter: 'P',
		MoveAtoms:      []piece.Atom{piece.Step([8]int{piece.North: 1})},
		CaptureAtoms: []piece.Atom{
			{Family: piece.FamilyALeaper, Offsets: []piece.Offset{{DX: 1, DY: 1}, {DX: -1, DY: 1}}},
		},
		SpecialAtoms: []piece.Atom{piece.Step([8]int{piece.North: 2})},
		Zones: piece.Zones{
			Promotion:   rank8.Or(rank1),
			SpecialZone: rank2.Or(rank7),
		},
		PromotionTable: []piece.PromotionRow{
			{Zone: rank8.Or(rank1), Targets: []piece.Type{OrthoQueen, OrthoRook, OrthoBishop, OrthoKnight}, OnEntry: true},
		},
		Class:    piece.ClassPawn,
		ValueMG:  100, ValueEG: 120,
	}

	knight := &piece.Descriptor{
		ID: OrthoKnight, NameWhite: "Knight", NameBlack: "knight", NotationLetter: 'N',
		MoveAtoms: []piece.Atom{piece.Leaper(2, 1)},
		Class:     piece.ClassMinor,
		ValueMG:   320, ValueEG: 320,
	}

	bishop := &piece.Descriptor{
		ID: OrthoBishop, NameWhite: "Bishop", NameBlack: "bishop", NotationLetter: 'B',
		MoveAtoms: []piece.Atom{piece.Slide(false, false, true, true)},
		Class:     piece.ClassMinor,
		Flags:     piece.PairBonus,
		ValueMG:   330, ValueEG: 330,
	}

	rook := &piece.Descriptor{
		ID: OrthoRook, NameWhite: "Rook", NameBlack: "rook", NotationLetter: 'R',
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false)},
		Flags:     piece.CanCastle,
		Class:     piece.ClassMajor,
		ValueMG:   500, ValueEG: 500,
	}

	queen := &piece.Descriptor{
		ID: OrthoQueen, NameWhite: "Queen", NameBlack: "queen", NotationLetter: 'Q',
		MoveAtoms: []piece.Atom{piece.Slide(true, true, true, true)},
		Class:     piece.ClassMajor | piece.ClassSuper,
		ValueMG:   900, ValueEG: 900,
	}

	king := &piece.Descriptor{
		ID: OrthoKing, NameWhite: "King", NameBlack: "king", NotationLetter: 'K',
		MoveAtoms: []piece.Atom{piece.Step([8]int{
			piece.North: 1, piece.NorthEast: 1, piece.East: 1, piece.SouthEast: 1,
			piece.South: 1, piece.SouthWest: 1, piece.West: 1, piece.NorthWest: 1,
		})},
		Flags: piece.Royal | piece.CanCastle,
		Class: piece.ClassRoyal,
	}

	descs := []*piece.Descriptor{pawn, knight, bishop, rook, queen, king}

	e1, g1, c1, a1, h1 := shapeForZones.Cell(4, 0), shapeForZones.Cell(6, 0), shapeForZones.Cell(2, 0), shapeForZones.Cell(0, 0), shapeForZones.Cell(7, 0)
	e8, g8, c8, a8, h8 := shapeForZones.Cell(4, 7), shapeForZones.Cell(6, 7), shapeForZones.Cell(2, 7), shapeForZones.Cell(0, 7), shapeForZones.Cell(7, 7)

	castles := []board.CastlingRule{
		{Side: board.White, KingFrom: e1, KingTo: g1, RookFrom: h1, RookTo: shapeForZones.Cell(5, 0), Right: 1 << 0, Letter: 'K'},
		{Side: board.White, KingFrom: e1, KingTo: c1, RookFrom: a1, RookTo: shapeForZones.Cell(3, 0), Right: 1 << 1, Letter: 'Q'},
		{Side: board.Black, KingFrom: e8, KingTo: g8, RookFrom: h8, RookTo: shapeForZones.Cell(5, 7), Right: 1 << 2, Letter: 'k'},
		{Side: board.Black, KingFrom: e8, KingTo: c8, RookFrom: a8, RookTo: shapeForZones.Cell(3, 7), Right: 1 << 3, Letter: 'q'},
	}

	return &Config{
		Name:          "orthodox",
		Files:         files,
		Ranks:         ranks,
		Descriptors:   descs,
		CastlingRules: castles,
		StartFEN:      "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Scores: TerminalScores{
			Mate: 1, Stalemate: 0, Repetition: 0, RepeatClaims: 3, FiftyLimit: 100,
		},
		ZobristSeed: 0x5eed5eed,
	}
}
