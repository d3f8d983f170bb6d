// Package movegen compiles piece move atoms into per-cell lookup tables and
// generates pseudo-legal moves, check evasions and chase candidates over a
// board.State. The compiled tables are owned by a *Generator and
// referenced by piece types via integer index (an (arena, index) pair, per
// the "cyclic data" design note) rather than raw pointers.
package movegen

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/piece"
)

// compiledAtom is one Atom instantiated against a concrete Shape: a
// per-origin-cell destination table, plus (for rays) a per-(origin,dest)
// "between" mask reused for pin detection.
type compiledAtom struct {
	atom piece.Atom

	// leaper-family: destination set per origin cell, occupancy-independent.
	// Two variants because asymmetric families (a-leaper, double-leaper,
	// lame-leaper) mirror vertically for Black; symmetric leapers populate
	// both with the same table.
	leapFromCellWhite []bitboard.Word
	leapFromCellBlack []bitboard.Word

	// lame-leaper only: the screening cell per origin that must be vacant for
	// the leap from that origin to be legal (-1 if the leap runs off-board).
	isScreened            bool
	maskCellWhite     []int
	maskCellBlack     []int

	// slider/hopper/rider-family: attacked set given occupancy, computed on
	// the fly via rayAttack (occupancy-dependent families are not
	// fully precomputed as state tables -- see rayAttack).
	rays [][2]int // direction deltas this atom rides along
	isHopper bool
	isRider  bool
	riderMax int

	// stepper-family: per-cell reachable set by white, and by black
	// (vertically mirrored), ignoring occupancy (blocked dynamically).
	stepFromCellWhite []stepRun
	stepFromCellBlack []stepRun
}

type stepRun struct {
	dx, dy int
	count  int
}

// Tables holds every compiled atom for one variant's piece set, plus the
// union "superpiece" attack set per cell used to cheaply screen
// "could X attack Y" queries.
type Tables struct {
	shape *bitboard.Shape

	// per piece.Type: compiled move atoms and capture atoms (falls back to
	// move atoms when CaptureAtoms is empty), special-zone and initial-move
	// variants.
	move    [][]compiledAtom
	capture [][]compiledAtom
	special [][]compiledAtom
	initial [][]compiledAtom

	// Superpiece[cell] is the union, over every declared piece type, of
	// every cell reachable by a capture move from cell -- occupancy
	// ignored (rays treated as unobstructed). Used only as a cheap filter.
	Superpiece []bitboard.Word
}

// Compile builds Tables for the given shape and declared piece types.
func Compile(shape *bitboard.Shape, descriptors []*piece.Descriptor) *Tables {
	t := &Tables{shape: shape}
	t.move = make([][]compiledAtom, len(descriptors))
	t.capture = make([][]compiledAtom, len(descriptors))
	t.special = make([][]compiledAtom, len(descriptors))
	t.initial = make([][]compiledAtom, len(descriptors))

	for _, d := range descriptors {
		t.move[d.ID] = compileAtoms(shape, d.MoveAtoms)
		t.capture[d.ID] = compileAtoms(shape, d.CaptureAtomsOrMove())
		t.special[d.ID] = compileAtoms(shape, d.SpecialAtoms)
		t.initial[d.ID] = compileAtoms(shape, d.InitialAtoms)
	}

	t.Superpiece = make([]bitboard.Word, shape.NumCells())
	for cell := 0; cell < shape.NumCells(); cell++ {
		var u bitboard.Word
		for _, d := range descriptors {
			for _, ca := range t.capture[d.ID] {
				u = u.Or(ca.unobstructedReach(shape, cell))
			}
		}
		t.Superpiece[cell] = u
	}

	return t
}

func compileAtoms(shape *bitboard.Shape, atoms []piece.Atom) []compiledAtom {
	out := make([]compiledAtom, 0, len(atoms))
	for _, a := range atoms {
		out = append(out, compileAtom(shape, a))
	}
	return out
}

func compileAtom(shape *bitboard.Shape, a piece.Atom) compiledAtom {
	switch a.Family {
	case piece.FamilyLeaper, piece.FamilyALeaper, piece.FamilyDoubleLeaper, piece.FamilyLameLeaper:
		return compileLeaperLike(shape, a)
	case piece.FamilySlider:
		return compiledAtom{atom: a, rays: sliderDirs(a)}
	case piece.FamilyHopper:
		return compiledAtom{atom: a, rays: sliderDirs(a), isHopper: true}
	case piece.FamilyRider:
		return compiledAtom{atom: a, isRider: true, riderMax: shape.Files + shape.Ranks}
	case piece.FamilyStepper:
		return compileStepper(shape, a)
	default:
		return compiledAtom{atom: a}
	}
}

func sliderDirs(a piece.Atom) [][2]int {
	var dirs [][2]int
	if a.Horizontal {
		dirs = append(dirs, [2]int{1, 0}, [2]int{-1, 0})
	}
	if a.Vertical {
		dirs = append(dirs, [2]int{0, 1}, [2]int{0, -1})
	}
	if a.Diagonal {
		dirs = append(dirs, [2]int{1, 1}, [2]int{-1, -1})
	}
	if a.Antidiagonal {
		dirs = append(dirs, [2]int{1, -1}, [2]int{-1, 1})
	}
	return dirs
}

// leapOffsets expands an offset under 8-fold (or 4-fold) symmetry.
func leapOffsets(o piece.Offset, symmetric4 bool) [][2]int {
	uniq := map[[2]int]bool{}
	base := [][2]int{
		{o.DX, o.DY}, {o.DX, -o.DY}, {-o.DX, o.DY}, {-o.DX, -o.DY},
	}
	if !symmetric4 {
		base = append(base, [2]int{o.DY, o.DX}, [2]int{o.DY, -o.DX}, [2]int{-o.DY, o.DX}, [2]int{-o.DY, -o.DX})
	}
	var out [][2]int
	for _, b := range base {
		if !uniq[b] {
			uniq[b] = true
			out = append(out, b)
		}
	}
	return out
}

// mirror flips the y-sign of a (dx,dy) offset, used to derive Black's table
// from White's for the families whose offsets are given White-oriented.
func mirror(o [2]int) [2]int { return [2]int{o[0], -o[1]} }

func compileLeaperLike(shape *bitboard.Shape, a piece.Atom) compiledAtom {
	n := shape.NumCells()
	white := make([]bitboard.Word, n)
	black := make([]bitboard.Word, n)

	switch a.Family {
	case piece.FamilyLeaper:
		// Fully symmetric under the compiler's own 8-fold (or 4-fold)
		// expansion, so White's and Black's tables coincide.
		var offs [][2]int
		for _, o := range a.Offsets {
			offs = append(offs, leapOffsets(o, a.Symmetric4)...)
		}
		fillLeaperTable(shape, white, offs)
		black = white
	case piece.FamilyALeaper:
		var wOffs, bOffs [][2]int
		for _, o := range a.Offsets {
			wOffs = append(wOffs, [2]int{o.DX, o.DY})
			bOffs = append(bOffs, mirror([2]int{o.DX, o.DY}))
		}
		fillLeaperTable(shape, white, wOffs)
		fillLeaperTable(shape, black, bOffs)
	case piece.FamilyDoubleLeaper:
		maskWhite := make([]int, n)
		maskBlack := make([]int, n)
		fillDoubleLeaper(shape, white, maskWhite, a.First, a.Second, false)
		fillDoubleLeaper(shape, black, maskBlack, a.First, a.Second, true)
		return compiledAtom{
			atom: a, leapFromCellWhite: white, leapFromCellBlack: black,
			isScreened: true, maskCellWhite: maskWhite, maskCellBlack: maskBlack,
		}
	case piece.FamilyLameLeaper:
		maskWhite := make([]int, n)
		maskBlack := make([]int, n)
		fillLameLeaper(shape, white, maskWhite, a.Leap, a.Mask, false)
		fillLameLeaper(shape, black, maskBlack, a.Leap, a.Mask, true)
		return compiledAtom{
			atom: a, leapFromCellWhite: white, leapFromCellBlack: black,
			isScreened: true, maskCellWhite: maskWhite, maskCellBlack: maskBlack,
		}
	}

	return compiledAtom{atom: a, leapFromCellWhite: white, leapFromCellBlack: black}
}

func fillDoubleLeaper(shape *bitboard.Shape, dst []bitboard.Word, mask []int, first, second piece.Offset, flip bool) {
	fo, so := [2]int{first.DX, first.DY}, [2]int{second.DX, second.DY}
	if flip {
		fo, so = mirror(fo), mirror(so)
	}
	for cell := range dst {
		mask[cell] = -1
		f, r := shape.File(cell), shape.Rank(cell)
		mf, mr := f+fo[0], r+fo[1]
		if mf < 0 || mf >= shape.Files || mr < 0 || mr >= shape.Ranks {
			continue
		}
		lf, lr := mf+so[0], mr+so[1]
		if lf < 0 || lf >= shape.Files || lr < 0 || lr >= shape.Ranks {
			continue
		}
		dst[cell] = dst[cell].Set(shape.Cell(lf, lr))
		mask[cell] = shape.Cell(mf, mr)
	}
}

func fillLameLeaper(shape *bitboard.Shape, dst []bitboard.Word, mask []int, leap, maskOff piece.Offset, flip bool) {
	lo, mo := [2]int{leap.DX, leap.DY}, [2]int{maskOff.DX, maskOff.DY}
	if flip {
		lo, mo = mirror(lo), mirror(mo)
	}
	for cell := range dst {
		mask[cell] = -1
		f, r := shape.File(cell), shape.Rank(cell)
		lf, lr := f+lo[0], r+lo[1]
		if lf < 0 || lf >= shape.Files || lr < 0 || lr >= shape.Ranks {
			continue
		}
		mf, mr := f+mo[0], r+mo[1]
		if mf < 0 || mf >= shape.Files || mr < 0 || mr >= shape.Ranks {
			continue
		}
		dst[cell] = dst[cell].Set(shape.Cell(lf, lr))
		mask[cell] = shape.Cell(mf, mr)
	}
}

func fillLeaperTable(shape *bitboard.Shape, dst []bitboard.Word, offs [][2]int) {
	for cell := range dst {
		f, r := shape.File(cell), shape.Rank(cell)
		for _, o := range offs {
			nf, nr := f+o[0], r+o[1]
			if nf < 0 || nf >= shape.Files || nr < 0 || nr >= shape.Ranks {
				continue
			}
			dst[cell] = dst[cell].Set(shape.Cell(nf, nr))
		}
	}
}

func compileStepper(shape *bitboard.Shape, a piece.Atom) compiledAtom {
	var white, black []stepRun
	for dir := 0; dir < 8; dir++ {
		if a.StepCounts[dir] <= 0 {
			continue
		}
		d := piece.CompassDelta(dir)
		white = append(white, stepRun{dx: d.DX, dy: d.DY, count: a.StepCounts[dir]})
		black = append(black, stepRun{dx: d.DX, dy: -d.DY, count: a.StepCounts[dir]})
	}
	return compiledAtom{atom: a, stepFromCellWhite: white, stepFromCellBlack: black}
}

// unobstructedReach returns the atom's destination set from cell, ignoring
// occupancy (rays run to the board edge). Used only to build Superpiece.
func (c compiledAtom) unobstructedReach(shape *bitboard.Shape, cell int) bitboard.Word {
	switch {
	case c.leapFromCellWhite != nil:
		return c.leapFromCellWhite[cell].Or(c.leapFromCellBlack[cell])
	case c.stepFromCellWhite != nil:
		return stepperReach(shape, cell, c.stepFromCellWhite).Or(stepperReach(shape, cell, c.stepFromCellBlack))
	case c.isRider:
		return riderReach(shape, cell, c.atom.RiderOffsets, c.riderMax, bitboard.Zero)
	default: // slider/hopper
		var out bitboard.Word
		for _, d := range c.rays {
			out = out.Or(rayReach(shape, cell, d, bitboard.Zero))
		}
		return out
	}
}

func stepperReach(shape *bitboard.Shape, cell int, runs []stepRun) bitboard.Word {
	var out bitboard.Word
	f, r := shape.File(cell), shape.Rank(cell)
	for _, run := range runs {
		nf, nr := f, r
		for i := 0; i < run.count; i++ {
			nf += run.dx
			nr += run.dy
			if nf < 0 || nf >= shape.Files || nr < 0 || nr >= shape.Ranks {
				break
			}
			out = out.Set(shape.Cell(nf, nr))
		}
	}
	return out
}

func rayReach(shape *bitboard.Shape, cell int, dir [2]int, occ bitboard.Word) bitboard.Word {
	var out bitboard.Word
	f, r := shape.File(cell), shape.Rank(cell)
	for {
		f += dir[0]
		r += dir[1]
		if f < 0 || f >= shape.Files || r < 0 || r >= shape.Ranks {
			break
		}
		c := shape.Cell(f, r)
		out = out.Set(c)
		if occ.Test(c) {
			break
		}
	}
	return out
}

func riderReach(shape *bitboard.Shape, cell int, offsets []piece.Offset, maxSteps int, occ bitboard.Word) bitboard.Word {
	var out bitboard.Word
	f0, r0 := shape.File(cell), shape.Rank(cell)
	for _, o := range offsets {
		f, r := f0, r0
		for i := 0; i < maxSteps; i++ {
			f += o.DX
			r += o.DY
			if f < 0 || f >= shape.Files || r < 0 || r >= shape.Ranks {
				break
			}
			c := shape.Cell(f, r)
			out = out.Set(c)
			if occ.Test(c) {
				break
			}
		}
	}
	return out
}
