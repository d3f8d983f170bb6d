package eval

import (
	"context"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/piece"
)

// MatePotential classifies each side's material as capable or incapable of
// ever forcing mate (the PF_CANTMATE test: a pawn that can still promote
// into mating material, a major/super piece, or two-plus minors), and adds
// a mop-up bonus for the side that can -- driving the enemy king toward the
// edge and its own king toward the enemy king -- so a large material lead
// that cannot actually be converted (bare king vs. bare king, or lone
// minor vs. lone king) doesn't masquerade as a won position.
type MatePotential struct{}

func (MatePotential) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	shape := gen.Shape
	whiteMates := canForceMate(s, board.White)
	blackMates := canForceMate(s, board.Black)
	if !whiteMates && !blackMates {
		return 0
	}

	cf, cr := float64(shape.Files-1)/2, float64(shape.Ranks-1)/2
	var total Score
	for _, c := range []board.Color{board.White, board.Black} {
		mates := whiteMates
		if c == board.Black {
			mates = blackMates
		}
		if !mates {
			continue
		}
		opp := c.Opponent()
		ownRoyal, oppRoyal := s.Royal.And(s.BBC[c]), s.Royal.And(s.BBC[opp])
		if ownRoyal.IsEmpty() || oppRoyal.IsEmpty() {
			continue
		}
		oc := ownRoyal.Bitscan()
		pc := oppRoyal.Bitscan()

		pf, pr := float64(shape.File(pc))-cf, float64(shape.Rank(pc))-cr
		edgeDist := pf*pf + pr*pr
		kingDist := absInt(shape.File(oc)-shape.File(pc)) + absInt(shape.Rank(oc)-shape.Rank(pc))

		bonus := Score(4*edgeDist) + Score(8*(shape.Files+shape.Ranks-kingDist))
		if c == board.Black {
			bonus = -bonus
		}
		total += bonus
	}
	return total
}

// canForceMate reports whether c carries material that can, in principle,
// deliver mate: any pawn (it may yet promote), any major/super piece, or
// two or more minors.
func canForceMate(s *board.State, c board.Color) bool {
	minors := 0
	for t, d := range s.Descriptors {
		if d.Class.Has(piece.ClassRoyal) {
			continue
		}
		n := s.BBP[piece.Type(t)].And(s.BBC[c]).PopCount()
		if len(s.Holdings) > t {
			n += s.Holdings[t][c]
		}
		if n == 0 {
			continue
		}
		if d.Class.Has(piece.ClassPawn) || d.Class.Has(piece.ClassMajor) || d.Class.Has(piece.ClassSuper) {
			return true
		}
		minors += n
	}
	return minors >= 2
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
