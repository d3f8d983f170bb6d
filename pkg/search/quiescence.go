package search

import (
	"context"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/movegen"
)

// quiescence extends the leaf nodes of the main search with a capture-only
// search until the position is "quiet", the standard fix for the horizon
// effect. Losing captures are pruned with eval.SEE rather than a cheaper
// quick-gain heuristic, since SEE is inexpensive to compute generically over
// any variant's piece values.
type quiescence struct {
	gen  *movegen.Generator
	eval eval.Evaluator
}

// search returns the score from the side-to-move's perspective (positive is
// good for whoever is on move), the usual negamax convention.
func (q *quiescence) search(ctx context.Context, s *board.State, alpha, beta eval.Score, quit <-chan struct{}) (uint64, eval.Score) {
	if isClosed(quit) {
		return 0, 0
	}

	var nodes uint64 = 1
	standPat := eval.Unit(s.SideToMove) * q.eval.Evaluate(ctx, q.gen, s)
	if standPat >= beta {
		return nodes, beta
	}
	alpha = eval.Max(alpha, standPat)

	moves := q.gen.PseudoLegalMoves(s)
	mover := s.SideToMove

	for _, m := range moves {
		if len(m.Pickups) == 0 {
			continue // quiescence only extends captures
		}
		if to, ok := capturedSquare(m); ok {
			if eval.SEE(q.gen, s, to, mover) < 0 {
				continue // losing capture: not worth exploring further
			}
		}

		undo := s.Make(m)
		if q.gen.PlayerInCheck(s, mover) {
			s.Unmake(m, undo)
			continue
		}

		sub, score := q.search(ctx, s, -beta, -alpha, quit)
		nodes += sub
		s.Unmake(m, undo)

		score = eval.StepMateDistance(-score)
		if score >= beta {
			return nodes, beta
		}
		alpha = eval.Max(alpha, score)
	}

	return nodes, alpha
}

// capturedSquare returns the square SEE should be rooted at: the
// destination of the primary swap for an ordinary capture, falling back to
// the first pickup square for a swap-less removal (e.g. en passant).
func capturedSquare(m move.Move) (int, bool) {
	if len(m.Swaps) > 0 {
		return int(m.Swaps[0].To), true
	}
	if len(m.Pickups) > 0 {
		return int(m.Pickups[0]), true
	}
	return 0, false
}
