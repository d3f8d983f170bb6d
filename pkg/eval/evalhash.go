package eval

import (
	"context"
	"sync"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/movegen"
)

// EvalHash memoizes an Evaluator's output by the full position Hash,
// avoiding re-evaluating a leaf reached by transposition (a cheap,
// always-on cousin of the transposition table, scoped to the static
// evaluation rather than the search result). The full Hash covers holdings
// and side to move, both of which evaluation terms read (Material counts
// held pieces, Tempo favours the side to move), so positions that differ
// only there get separate entries.
//
// One EvalHash is built per engine and lives across searches; the size
// bound below caps its memory.
//
// No second copy is stored under a side-flipped key, so a null move, which
// changes side to move but not the board, does not reuse the pre-null-move
// entry.
type EvalHash struct {
	inner Evaluator

	mu      sync.Mutex
	entries map[board.Hash]Score
	cap     int
}

// NewEvalHash wraps inner with a bounded memo table of at most capacity
// entries -- once full, the table is cleared rather than evicted
// piecemeal, trading a little cache churn for a simpler, lock-held-briefly
// implementation.
func NewEvalHash(inner Evaluator, capacity int) *EvalHash {
	return &EvalHash{inner: inner, entries: make(map[board.Hash]Score, capacity), cap: capacity}
}

func (h *EvalHash) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	h.mu.Lock()
	if score, ok := h.entries[s.Hash]; ok {
		h.mu.Unlock()
		return score
	}
	h.mu.Unlock()

	score := h.inner.Evaluate(ctx, gen, s)

	h.mu.Lock()
	if len(h.entries) >= h.cap {
		h.entries = make(map[board.Hash]Score, h.cap)
	}
	h.entries[s.Hash] = score
	h.mu.Unlock()

	return score
}
