package eval

import (
	"context"

	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/piece"
)

// PST is a per-variant piece-square table, computed once at variant
// assembly time from the compiled move tables and zone data rather than
// hand-tuned per piece type: a fairy piece invented for one variant gets a
// PST for free from its own movement description, the way the reference
// evaluator builds its tables from mobility/reach/tropism/zone proximity
// rather than shipping a fixed six-piece-type table.
//
// Entries are stored White-oriented; Black looks itself up under the
// vertically mirrored cell.
type PST struct {
	shape *bitboard.Shape
	table [][]Score // [piece.Type][cell]
}

// mobilityWeight scales a piece's empty-board reach count into centipawns:
// lighter for pieces whose value is already reach-dominated (major/super),
// heavier for minors where central squares matter most, zero for pawns
// (whose square value is promotion-zone proximity, handled separately).
func mobilityWeight(c piece.Class) Score {
	switch {
	case c.Has(piece.ClassPawn):
		return 0
	case c.Has(piece.ClassMajor), c.Has(piece.ClassSuper):
		return 1
	default:
		return 2
	}
}

// BuildPST computes a PST for descriptors over shape, using gen's compiled
// move tables for mobility and the variant's flag cells (capture-the-flag
// rules) and each piece's own promotion zone for tropism. Called once per
// variant at assembly time; the result is immutable and shared by every
// game using that variant.
func BuildPST(gen *movegen.Generator, descriptors []*piece.Descriptor, flagCells [board.NumColors]bitboard.Word) *PST {
	shape := gen.Shape
	pst := &PST{shape: shape, table: make([][]Score, len(descriptors))}

	flagTargets := flagCells[board.White].Or(flagCells[board.Black])

	for _, d := range descriptors {
		row := make([]Score, shape.NumCells())
		mw := mobilityWeight(d.Class)
		for cell := 0; cell < shape.NumCells(); cell++ {
			if shape.IsExcluded(cell) {
				continue
			}
			var score Score

			if mw > 0 {
				reach := gen.EmptyBoardReach(d.ID, cell).PopCount()
				score += Score(reach) * mw
			}

			if d.Class.Has(piece.ClassPawn) {
				// Pawn advance: the spec calls for a rank-scaled bonus toward
				// the piece's own promotion zone; approximate "how close is
				// this cell to promoting" with a simple rank term, since a
				// pawn's promotion zone is normally a back-rank band.
				score += Score(shape.Rank(cell))
			}

			if !flagTargets.IsEmpty() && !d.Class.Has(piece.ClassRoyal) {
				score += flagTropism(shape, cell, flagTargets)
			}

			if !d.Zones.Prison.IsEmpty() && !d.Zones.Prison.Test(cell) {
				// cell outside this piece's legal-occupancy prison can never
				// be reached in the first place; leave its entry at 0 rather
				// than let a stray reach/tropism term mislead move ordering
				// heuristics that might consult the table off-board.
				continue
			}

			row[cell] = score
		}
		pst.table[d.ID] = row
	}

	return pst
}

// flagTropism rewards cells nearer a variant's capture-the-flag targets,
// Chebyshev distance, the same metric the move generator's king-zone masks
// use for adjacency.
func flagTropism(shape *bitboard.Shape, cell int, targets bitboard.Word) Score {
	f, r := shape.File(cell), shape.Rank(cell)
	best := -1
	for w := targets; !w.IsEmpty(); {
		var t int
		t, w = w.PopLSB()
		tf, tr := shape.File(t), shape.Rank(t)
		df, dr := tf-f, tr-r
		if df < 0 {
			df = -df
		}
		if dr < 0 {
			dr = -dr
		}
		dist := df
		if dr > dist {
			dist = dr
		}
		if best < 0 || dist < best {
			best = dist
		}
	}
	if best < 0 {
		return 0
	}
	bonus := 8 - best
	if bonus < 0 {
		bonus = 0
	}
	return Score(bonus)
}

// mirrorCell returns cell's rank-flipped counterpart, for looking up a
// White-oriented PST entry from Black's perspective.
func mirrorCell(shape *bitboard.Shape, cell int) int {
	return shape.Cell(shape.File(cell), shape.Ranks-1-shape.Rank(cell))
}

func (p *PST) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	var total Score
	for cell, occ := range s.PieceAt {
		if !occ.Present {
			continue
		}
		row := p.table[occ.Type]
		if row == nil {
			continue
		}
		lookup := cell
		if occ.Color == board.Black {
			lookup = mirrorCell(p.shape, cell)
		}
		v := row[lookup]
		if occ.Color == board.Black {
			v = -v
		}
		total += v
	}
	return total
}
