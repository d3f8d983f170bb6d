package eval

import (
	"sort"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/movegen"
)

// SortByNominalValue orders attackers by ascending nominal value, the
// "recapture with the least valuable piece first" ordering SEE needs,
// reading values off each variant's own ValueMG/ValueEG table rather than a
// fixed switch over six piece kinds.
func SortByNominalValue(s *board.State, phase int, attackers []movegen.Attacker) []movegen.Attacker {
	sort.SliceStable(attackers, func(i, j int) bool {
		vi := Taper(s.Descriptors[attackers[i].Type].ValueMG, s.Descriptors[attackers[i].Type].ValueEG, phase)
		vj := Taper(s.Descriptors[attackers[j].Type].ValueMG, s.Descriptors[attackers[j].Type].ValueEG, phase)
		return vi < vj
	})
	return attackers
}

// SEE runs the static exchange evaluation of a capture on sq: the signed
// material result of the full capture sequence both sides would play if
// they always recapture with their least valuable attacker. Search uses
// this to prune captures that lose material before a full search confirms it.
func SEE(gen *movegen.Generator, s *board.State, sq int, side board.Color) Score {
	phase := GamePhaseRules(s, gen.CaptureToHand)
	victim := s.PieceAt[sq]
	if !victim.Present {
		return 0
	}
	gain := Taper(s.Descriptors[victim.Type].ValueMG, s.Descriptors[victim.Type].ValueEG, phase)
	return gain - seeRecapture(gen, s, sq, side.Opponent(), phase)
}

// seeRecapture recursively considers the opponent's best recapture, bounded
// by swapping off the least valuable attacker each ply (the standard
// "swap-off" SEE algorithm); a side may always decline to recapture, so
// each ply's contribution is clamped at zero.
func seeRecapture(gen *movegen.Generator, s *board.State, sq int, side board.Color, phase int) Score {
	attackers := SortByNominalValue(s, phase, gen.FindAttackers(s, sq, side))
	if len(attackers) == 0 {
		return 0
	}
	a := attackers[0]
	captured := Taper(s.Descriptors[a.Type].ValueMG, s.Descriptors[a.Type].ValueEG, phase)
	score := captured - seeRecapture(gen, s, sq, side.Opponent(), phase)
	return Max(0, score)
}
