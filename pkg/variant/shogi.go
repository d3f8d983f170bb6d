package variant

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/piece"
)

// Shogi piece type IDs, base and promoted forms.
const (
	ShPawn piece.Type = iota
	ShLance
	ShKnight
	ShSilver
	ShGold
	ShBishop
	ShRook
	ShKing
	ShProPawn
	ShProLance
	ShProKnight
	ShProSilver
	ShProBishop
	ShProRook
)

// Shogi returns a sketch Config for a 9x9 drop variant: promotion zone is
// the far three ranks, captured pieces return demoted to the capturer's
// hand (KEEP_CAPTURE), and drops place from hand onto any empty cell
// (ALLOW_DROPS).
func Shogi() *Config {
	files, ranks := 9, 9
	shape := bitboard.NewShape(files, ranks, nil)
	zoneTop := cellBox(shape, 0, 6, 8, 8)
	zoneBottom := cellBox(shape, 0, 0, 8, 2)
	zone := zoneTop.Or(zoneBottom)

	gold6 := piece.Atom{Family: piece.FamilyStepper, StepCounts: [8]int{
		piece.North: 1, piece.NorthEast: 1, piece.East: 1, piece.South: 1, piece.West: 1, piece.NorthWest: 1,
	}}

	pawn := &piece.Descriptor{ID: ShPawn, NotationLetter: 'P', NameWhite: "Pawn", NameBlack: "pawn",
		MoveAtoms: []piece.Atom{piece.Step([8]int{piece.North: 1})},
		Zones:     piece.Zones{Promotion: zone},
		PromotionTable: []piece.PromotionRow{{Zone: zone, Targets: []piece.Type{ShProPawn}, Optional: true}},
		Demotion: ShPawn, Class: piece.ClassPawn}

	lance := &piece.Descriptor{ID: ShLance, NotationLetter: 'L', NameWhite: "Lance", NameBlack: "lance",
		MoveAtoms: []piece.Atom{piece.Ride(piece.Offset{DX: 0, DY: 1})},
		Zones:     piece.Zones{Promotion: zone},
		PromotionTable: []piece.PromotionRow{{Zone: zone, Targets: []piece.Type{ShProLance}, Optional: true}},
		Demotion: ShLance, Class: piece.ClassMinor}

	knight := &piece.Descriptor{ID: ShKnight, NotationLetter: 'N', NameWhite: "Knight", NameBlack: "knight",
		MoveAtoms: []piece.Atom{{Family: piece.FamilyALeaper, Offsets: []piece.Offset{{DX: 1, DY: 2}, {DX: -1, DY: 2}}}},
		Zones:     piece.Zones{Promotion: zone},
		PromotionTable: []piece.PromotionRow{{Zone: zone, Targets: []piece.Type{ShProKnight}, Optional: true}},
		Demotion: ShKnight, Class: piece.ClassMinor}

	silver := &piece.Descriptor{ID: ShSilver, NotationLetter: 'S', NameWhite: "Silver", NameBlack: "silver",
		MoveAtoms: []piece.Atom{{Family: piece.FamilyStepper, StepCounts: [8]int{
			piece.North: 1, piece.NorthEast: 1, piece.NorthWest: 1, piece.SouthEast: 1, piece.SouthWest: 1,
		}}},
		Zones: piece.Zones{Promotion: zone},
		PromotionTable: []piece.PromotionRow{{Zone: zone, Targets: []piece.Type{ShProSilver}, Optional: true}},
		Demotion: ShSilver, Class: piece.ClassMinor}

	gold := &piece.Descriptor{ID: ShGold, NotationLetter: 'G', NameWhite: "Gold", NameBlack: "gold",
		MoveAtoms: []piece.Atom{gold6}, Demotion: ShGold, Class: piece.ClassDefensive}

	bishop := &piece.Descriptor{ID: ShBishop, NotationLetter: 'B', NameWhite: "Bishop", NameBlack: "bishop",
		MoveAtoms: []piece.Atom{piece.Slide(false, false, true, true)},
		Zones:     piece.Zones{Promotion: zone},
		PromotionTable: []piece.PromotionRow{{Zone: zone, Targets: []piece.Type{ShProBishop}, Optional: true}},
		Demotion: ShBishop, Class: piece.ClassMinor}

	rook := &piece.Descriptor{ID: ShRook, NotationLetter: 'R', NameWhite: "Rook", NameBlack: "rook",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false)},
		Zones:     piece.Zones{Promotion: zone},
		PromotionTable: []piece.PromotionRow{{Zone: zone, Targets: []piece.Type{ShProRook}, Optional: true}},
		Demotion: ShRook, Class: piece.ClassMajor}

	king := &piece.Descriptor{ID: ShKing, NotationLetter: 'K', NameWhite: "King", NameBlack: "king",
		MoveAtoms: []piece.Atom{{Family: piece.FamilyStepper, StepCounts: [8]int{
			piece.North: 1, piece.NorthEast: 1, piece.East: 1, piece.SouthEast: 1,
			piece.South: 1, piece.SouthWest: 1, piece.West: 1, piece.NorthWest: 1,
		}}},
		Flags: piece.Royal, Class: piece.ClassRoyal}

	proPawn := &piece.Descriptor{ID: ShProPawn, NotationLetter: 'P', NameWhite: "+Pawn", NameBlack: "+pawn", MoveAtoms: []piece.Atom{gold6}, Demotion: ShPawn, Class: piece.ClassDefensive}
	proLance := &piece.Descriptor{ID: ShProLance, NotationLetter: 'L', NameWhite: "+Lance", NameBlack: "+lance", MoveAtoms: []piece.Atom{gold6}, Demotion: ShLance, Class: piece.ClassDefensive}
	proKnight := &piece.Descriptor{ID: ShProKnight, NotationLetter: 'N', NameWhite: "+Knight", NameBlack: "+knight", MoveAtoms: []piece.Atom{gold6}, Demotion: ShKnight, Class: piece.ClassDefensive}
	proSilver := &piece.Descriptor{ID: ShProSilver, NotationLetter: 'S', NameWhite: "+Silver", NameBlack: "+silver", MoveAtoms: []piece.Atom{gold6}, Demotion: ShSilver, Class: piece.ClassDefensive}
	proBishop := &piece.Descriptor{ID: ShProBishop, NotationLetter: 'B', NameWhite: "+Bishop", NameBlack: "+bishop",
		MoveAtoms: []piece.Atom{piece.Slide(false, false, true, true), {Family: piece.FamilyStepper, StepCounts: [8]int{piece.North: 1, piece.East: 1, piece.South: 1, piece.West: 1}}},
		Demotion:  ShBishop, Class: piece.ClassMajor}
	proRook := &piece.Descriptor{ID: ShProRook, NotationLetter: 'R', NameWhite: "+Rook", NameBlack: "+rook",
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false), {Family: piece.FamilyStepper, StepCounts: [8]int{piece.NorthEast: 1, piece.NorthWest: 1, piece.SouthEast: 1, piece.SouthWest: 1}}},
		Demotion:  ShRook, Class: piece.ClassMajor | piece.ClassSuper}

	descs := []*piece.Descriptor{pawn, lance, knight, silver, gold, bishop, rook, king, proPawn, proLance, proKnight, proSilver, proBishop, proRook}

	return &Config{
		Name: "shogi", Files: files, Ranks: ranks,
		Descriptors: descs,
		StartFEN:    "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - - 0 1",
		Rules:       AllowDrops | KeepCapture | PromoteByMove,
		Scores:      TerminalScores{Mate: 1, FiftyLimit: 0},
		ZobristSeed: 0x5906106,
	}
}
