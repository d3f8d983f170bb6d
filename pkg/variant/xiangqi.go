package variant

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/piece"
)

// Xiangqi piece type IDs.
const (
	XqSoldier piece.Type = iota
	XqCannon
	XqHorse
	XqChariot
	XqAdvisor
	XqElephant
	XqGeneral
)

// horseLeaps returns the eight lame-leaper atoms of the Xiangqi horse, one
// per direction pair sharing an orthogonal screen square.
func horseLeaps() []piece.Atom {
	dirs := []struct{ leap, mask piece.Offset }{
		{piece.Offset{DX: 2, DY: 1}, piece.Offset{DX: 1, DY: 0}},
		{piece.Offset{DX: 2, DY: -1}, piece.Offset{DX: 1, DY: 0}},
		{piece.Offset{DX: -2, DY: 1}, piece.Offset{DX: -1, DY: 0}},
		{piece.Offset{DX: -2, DY: -1}, piece.Offset{DX: -1, DY: 0}},
		{piece.Offset{DX: 1, DY: 2}, piece.Offset{DX: 0, DY: 1}},
		{piece.Offset{DX: -1, DY: 2}, piece.Offset{DX: 0, DY: 1}},
		{piece.Offset{DX: 1, DY: -2}, piece.Offset{DX: 0, DY: -1}},
		{piece.Offset{DX: -1, DY: -2}, piece.Offset{DX: 0, DY: -1}},
	}
	var out []piece.Atom
	for _, d := range dirs {
		out = append(out, piece.Atom{Family: piece.FamilyLameLeaper, Leap: d.leap, Mask: d.mask})
	}
	return out
}

// elephantEyes returns the four lame-leaper atoms of the Xiangqi elephant.
func elephantEyes() []piece.Atom {
	offs := []piece.Offset{{DX: 2, DY: 2}, {DX: 2, DY: -2}, {DX: -2, DY: 2}, {DX: -2, DY: -2}}
	var out []piece.Atom
	for _, o := range offs {
		out = append(out, piece.Atom{Family: piece.FamilyLameLeaper, Leap: o, Mask: piece.Offset{DX: o.DX / 2, DY: o.DY / 2}})
	}
	return out
}

// Xiangqi returns a sketch Config for Chinese chess: 9 files, 10 ranks, the
// palace/river geometry expressed as named zones and per-piece Prison masks,
// and the cannon's hopper-capture / non-hopper-move asymmetry expressed as
// distinct MoveAtoms vs CaptureAtoms.
func Xiangqi() *Config {
	files, ranks := 9, 10
	shape := bitboard.NewShape(files, ranks, nil)

	palaceWhite := cellBox(shape, 3, 0, 5, 2)
	palaceBlack := cellBox(shape, 3, 7, 5, 9)
	riverNorth := cellBox(shape, 0, 5, 8, 9) // Black's side of the river
	riverSouth := cellBox(shape, 0, 0, 8, 4)

	general := &piece.Descriptor{
		ID: XqGeneral, NameWhite: "General", NameBlack: "general", NotationLetter: 'K',
		MoveAtoms: []piece.Atom{piece.Step([8]int{piece.North: 1, piece.South: 1, piece.East: 1, piece.West: 1})},
		Zones:     piece.Zones{Prison: palaceWhite.Or(palaceBlack)},
		Flags:     piece.Royal,
		Class:     piece.ClassRoyal,
	}
	advisor := &piece.Descriptor{
		ID: XqAdvisor, NameWhite: "Advisor", NameBlack: "advisor", NotationLetter: 'A',
		MoveAtoms: []piece.Atom{piece.Leaper(1, 1)},
		Zones:     piece.Zones{Prison: palaceWhite.Or(palaceBlack)},
		Class:     piece.ClassDefensive,
	}
	elephant := &piece.Descriptor{
		ID: XqElephant, NameWhite: "Elephant", NameBlack: "elephant", NotationLetter: 'E',
		MoveAtoms: elephantEyes(),
		Zones:     piece.Zones{Prison: riverSouth.Or(riverNorth)}, // both halves: the river is not enforced per side
		Class:     piece.ClassDefensive,
	}
	horse := &piece.Descriptor{
		ID: XqHorse, NameWhite: "Horse", NameBlack: "horse", NotationLetter: 'H',
		MoveAtoms: horseLeaps(),
		Class:     piece.ClassMinor,
	}
	chariot := &piece.Descriptor{
		ID: XqChariot, NameWhite: "Chariot", NameBlack: "chariot", NotationLetter: 'R',
		MoveAtoms: []piece.Atom{piece.Slide(true, true, false, false)},
		Class:     piece.ClassMajor,
	}
	cannon := &piece.Descriptor{
		ID: XqCannon, NameWhite: "Cannon", NameBlack: "cannon", NotationLetter: 'C',
		MoveAtoms:    []piece.Atom{piece.Slide(true, true, false, false)},
		CaptureAtoms: []piece.Atom{piece.Hop(true, true, false, false)},
		Class:        piece.ClassMajor,
	}
	soldier := &piece.Descriptor{
		ID: XqSoldier, NameWhite: "Soldier", NameBlack: "soldier", NotationLetter: 'S',
		MoveAtoms:    []piece.Atom{piece.Step([8]int{piece.North: 1})},
		SpecialAtoms: []piece.Atom{piece.Step([8]int{piece.North: 1, piece.East: 1, piece.West: 1})},
		Zones:        piece.Zones{SpecialZone: riverNorth}, // crossed-the-river half gains sideways steps
		Class:        piece.ClassPawn,
	}

	descs := []*piece.Descriptor{soldier, cannon, horse, chariot, advisor, elephant, general}

	return &Config{
		Name: "xiangqi", Files: files, Ranks: ranks,
		Zones: map[string]bitboard.Word{
			"palace_white": palaceWhite, "palace_black": palaceBlack,
			"river_north": riverNorth, "river_south": riverSouth,
		},
		Descriptors: descs,
		StartFEN:    "rheakaehr/9/1c5c1/s1s1s1s1s/9/9/S1S1S1S1S/1C5C1/9/RHEAKAEHR w - - 0 1",
		Rules:       UseChaseRule | UseBareRule,
		Scores:      TerminalScores{Mate: 1, RepeatClaims: 3, FiftyLimit: 120},
		ZobristSeed: 0x51a19c1,
	}
}

func cellBox(shape *bitboard.Shape, f0, r0, f1, r1 int) bitboard.Word {
	var w bitboard.Word
	for f := f0; f <= f1; f++ {
		for r := r0; r <= r1; r++ {
			w = w.Set(shape.Cell(f, r))
		}
	}
	return w
}
