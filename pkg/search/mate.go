package search

import (
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/movegen"
)

// MateSearch solves for a forced mate using the staged DROP-CHECK /
// MOVE-CHECK / EVADE candidate ordering instead of full-width PVS: a mate
// search only needs to prove the attacker has a checking move after which
// every defensive try still loses, so non-checking attacker moves and
// non-evading defender moves are never generated in the first place.
type MateSearch struct {
	Gen *movegen.Generator
}

// Search returns a mating line of at most maxPly plies for s's side to
// move, or nil if no forced mate that shallow exists. maxPly counts half
// moves, so maxPly=1 looks for mate in one.
func (ms MateSearch) Search(s *board.State, maxPly int, quit <-chan struct{}) []move.Move {
	_, line := ms.attack(s, maxPly, quit)
	return line
}

// attack tries every checking move available to the side to move, drops
// first, and succeeds as soon as one leaves the opponent with no defense
// within the remaining ply budget. ok is false whether because no checking
// move forces mate or because the quit channel closed mid-search.
func (ms MateSearch) attack(s *board.State, ply int, quit <-chan struct{}) (bool, []move.Move) {
	if isClosed(quit) || ply <= 0 {
		return false, nil
	}
	mover := s.SideToMove
	staged := movegen.NewStagedMateGenerator(ms.Gen)
	for _, m := range staged.CheckingMoves(s) {
		undo := s.Make(m)
		selfCheck := ms.Gen.PlayerInCheck(s, mover)
		if selfCheck {
			s.Unmake(m, undo)
			continue
		}
		ok, line := ms.defend(s, ply-1, quit)
		s.Unmake(m, undo)
		if ok {
			return true, append([]move.Move{m}, line...)
		}
	}
	return false, nil
}

// defend reports whether every legal evasion from the current (necessarily
// in-check) position loses within the remaining ply budget, and the forced
// continuation through the first evasion tried. A position with zero legal
// evasions is already mate, which counts as success with an empty
// continuation -- the checking move that led here is itself the mate.
func (ms MateSearch) defend(s *board.State, ply int, quit <-chan struct{}) (bool, []move.Move) {
	if isClosed(quit) {
		return false, nil
	}
	mover := s.SideToMove
	staged := movegen.NewStagedMateGenerator(ms.Gen)
	evasions := staged.EvasionCandidates(s)

	legalCount := 0
	var forced []move.Move
	for _, m := range evasions {
		undo := s.Make(m)
		illegal := ms.Gen.PlayerInCheck(s, mover)
		if illegal {
			s.Unmake(m, undo)
			continue
		}
		legalCount++
		if ply <= 0 {
			s.Unmake(m, undo)
			return false, nil // this evasion survives past the ply budget: attack fails
		}
		ok, line := ms.attack(s, ply, quit)
		s.Unmake(m, undo)
		if !ok {
			return false, nil // this evasion has no further forced mate: attack fails
		}
		if forced == nil {
			forced = append([]move.Move{m}, line...)
		}
	}
	if legalCount == 0 {
		return true, nil // already mate: the checking move that reached here needs no continuation
	}
	return true, forced
}
