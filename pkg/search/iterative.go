package search

import (
	"context"
	"sync"
	"time"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/move"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// Searcher searches the game tree to a fixed depth. Thread-safe.
type Searcher interface {
	Search(ctx context.Context, s *board.State, depth int, quit <-chan struct{}) (uint64, eval.Score, []move.Move, error)
}

// Iterative is a search harness that deepens a Searcher one ply at a time,
// publishing a PV after every completed iteration, honoring a soft time
// budget between iterations and reporting transposition table occupancy.
type Iterative struct {
	search Searcher
	tt     TranspositionTable
}

// NewIterative returns a Launcher that iteratively deepens search using tt
// for caching. tt may be NoTranspositionTable{} to disable caching.
func NewIterative(search Searcher, tt TranspositionTable) Launcher {
	return &Iterative{search: search, tt: tt}
}

func (i *Iterative) Launch(ctx context.Context, s *board.State, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: make(chan struct{}),
		quit: make(chan struct{}),
	}
	go h.process(ctx, i.search, i.tt, s, opt, out)
	return h, out
}

type handle struct {
	init, quit        chan struct{}
	initialized, done atomic.Bool

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, search Searcher, tt TranspositionTable, s *board.State, opt Options, out chan PV) {
	defer h.markInitialized()
	defer close(out)

	loopStart := time.Now()
	var soft, hard time.Duration
	if opt.TimeControl != nil {
		soft, hard = opt.TimeControl.Limits(s.SideToMove == board.White)
		go func() {
			select {
			case <-time.After(hard):
				if h.done.CAS(false, true) {
					close(h.quit)
				}
			case <-h.quit:
			}
		}()
	}

	depth := 1
	for !h.done.Load() {
		start := time.Now()

		nodes, score, moves, err := search.Search(ctx, s, depth, h.quit)
		if err != nil {
			if err == ErrHalted {
				return // Halt was called, or the hard deadline fired.
			}
			logw.Errorf(ctx, "Search failed at depth=%v: %v", depth, err)
			return
		}

		elapsed := time.Since(start)
		pv := PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  elapsed,
			Hash:  tt.Used(),
		}

		logw.Debugf(ctx, "Searched depth=%v: %v", depth, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.markInitialized()

		if opt.DepthLimit > 0 && depth >= opt.DepthLimit {
			return
		}
		if opt.TimeControl != nil && time.Since(loopStart) >= soft {
			return // out of time to start another iteration
		}
		depth++
	}
}

func (h *handle) Halt() PV {
	<-h.init
	if h.done.CAS(false, true) {
		close(h.quit)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}

func (h *handle) markInitialized() {
	if h.initialized.CAS(false, true) {
		close(h.init)
	}
}
