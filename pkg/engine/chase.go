package engine

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/piece"
)

// chaseOutcome classifies the Xiangqi-style chase rule as of the current
// position: noChase when neither side has been perpetually threatening the
// other across the just-repeated position cycle, drawChase when both
// sides have, or loseChaseWhite/loseChaseBlack naming the side whose
// repeated threats were the illegal chase (that side loses; a chase never
// wins outright for the chaser, it only draws or forfeits).
type chaseOutcome int

const (
	noChase chaseOutcome = iota
	drawChase
	loseChaseWhite
	loseChaseBlack
)

// chaseStateLocked evaluates the chase rule over the most recent repeated
// position cycle, grounded on the reference engine's test_chase: it backs
// up through reversible moves until the position last repeated, then for
// each side intersects down a "still being chased" bitboard of enemy
// pieces across that side's own turns -- a winning, unpinned,
// non-royal/pawn/defensive capture threat, following the threatened piece
// across the opponent's replies -- same as get_chased_pieces's
// backtrack-and-AND. A side whose tracked set ends up holding the enemy king,
// or that was ever in check on one of its own turns in the span, isn't
// chasing; it's just responding to being attacked itself.
func (e *Engine) chaseStateLocked() chaseOutcome {
	cycle := e.chaseCycleLocked()
	if cycle == 0 {
		return noChase
	}

	n := len(e.history)
	seq := make([]historyEntry, cycle)
	copy(seq, e.history[n-cycle:])
	for i := len(seq) - 1; i >= 0; i-- {
		e.s.Unmake(seq[i].m, seq[i].undo)
	}
	// The loop below replays seq forward move by move, leaving e.s back in
	// the live current position by the time it exits -- no separate
	// restore step needed (and none wanted, since that would replay twice).

	chasing := map[board.Color]bool{board.White: true, board.Black: true}
	tracked := map[board.Color]bitboard.Word{}
	haveTracked := map[board.Color]bool{}

	for _, h := range seq {
		mover := e.s.SideToMove

		if chasing[mover] {
			if e.assembled.Gen.PlayerInCheck(e.s, mover) {
				chasing[mover] = false
			} else {
				threats := e.chaseThreatsLocked(mover)
				if !haveTracked[mover] {
					tracked[mover] = threats
					haveTracked[mover] = true
				} else {
					tracked[mover] = tracked[mover].And(threats)
				}
				if tracked[mover].IsEmpty() {
					chasing[mover] = false
				}
			}
		}

		// The opponent's own "still chased" set follows its pieces as they
		// move in reply, same as get_chased_pieces's replay fix-up.
		opp := mover.Opponent()
		if haveTracked[opp] && !tracked[opp].IsEmpty() {
			if from, ok := h.m.From(); ok && tracked[opp].Test(int(from)) {
				if to, ok := h.m.To(); ok {
					tracked[opp] = tracked[opp].Reset(int(from)).Set(int(to))
				}
			}
		}

		e.s.Make(h.m)
	}

	for _, c := range []board.Color{board.White, board.Black} {
		if !chasing[c] || !haveTracked[c] {
			continue
		}
		if !tracked[c].And(e.s.Royal).IsEmpty() {
			chasing[c] = false
		}
	}

	switch {
	case chasing[board.White] && chasing[board.Black]:
		return drawChase
	case chasing[board.White]:
		return loseChaseWhite
	case chasing[board.Black]:
		return loseChaseBlack
	default:
		return noChase
	}
}

// chaseThreatsLocked returns the squares of enemy pieces currently under a
// winning, unpinned capture threat from side's non-royal/pawn/defensive
// pieces -- the reference engine's "chase candidate" set, simplified to a
// single-ply SEE check rather than its full up-capture/reverse-capture
// analysis.
func (e *Engine) chaseThreatsLocked(side board.Color) bitboard.Word {
	gen := e.assembled.Gen
	s := e.s

	pinned := bitboard.Zero
	for _, p := range eval.FindPins(gen, s, side) {
		pinned = pinned.Set(p.Pinned)
	}

	threats := bitboard.Zero
	for _, m := range gen.PseudoLegalMoves(s) {
		if !m.IsCapture() {
			continue
		}
		from, ok := m.From()
		if !ok || pinned.Test(int(from)) {
			continue
		}
		d := s.Descriptors[s.PieceAt[int(from)].Type]
		if d.Class.Has(piece.ClassRoyal) || d.Class.Has(piece.ClassPawn) || d.Class.Has(piece.ClassDefensive) {
			continue
		}
		sq, ok := capturedSquare(m)
		if !ok {
			continue
		}
		victim := s.PieceAt[sq]
		if !victim.Present || s.Descriptors[victim.Type].Class.Has(piece.ClassPawn) {
			continue
		}
		if eval.SEE(gen, s, sq, side) > 0 {
			threats = threats.Set(sq)
		}
	}
	return threats
}

// chaseCycleLocked returns the even ply count back to the position's last
// repeat, stopping short (returning 0) if any intervening move was
// irreversible or if no such repeat is found -- mirroring the reference
// engine's test_chase backtrack loop, which only considers a chase inside
// an uninterrupted reversible sequence.
func (e *Engine) chaseCycleLocked() int {
	n := len(e.history)
	backup := 0
	for i := n - 2; i >= 0; i -= 2 {
		if e.irreversibleLocked(i+1) || e.irreversibleLocked(i) {
			return 0
		}
		backup += 2
		if e.history[i].undo.Hash == e.s.Hash {
			return backup
		}
	}
	return 0
}

// irreversibleLocked reports whether history ply i reset the fifty-move
// counter, using the next recorded ply's pre-move snapshot (or the live
// state, for the last recorded ply) to read the post-move counter value.
func (e *Engine) irreversibleLocked(i int) bool {
	if i+1 < len(e.history) {
		return e.history[i+1].undo.FiftyCounter == 0
	}
	return e.s.FiftyCounter == 0
}
