// Package search implements iterative-deepening principal variation search
// with quiescence, a transposition table, killer/history move ordering and
// mate-distance pruning, built over this module's board.State/movegen/
// move types so one Searcher can serve any registered variant.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/move"
)

// ErrHalted is returned by a Searcher when its quit channel closes mid-search.
var ErrHalted = errors.New("search halted")

// PV is the principal variation found at one completed iterative-deepening
// depth.
type PV struct {
	Depth int
	Moves []move.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization [0,1]
}

func (p PV) String() string {
	parts := make([]string, len(p.Moves))
	for i, m := range p.Moves {
		parts[i] = fmt.Sprintf("%d", move.Pack(m))
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=[%v]",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), strings.Join(parts, " "))
}

// TimeControl holds remaining clock time per side plus a moves-to-go
// estimate, turned into soft/hard per-move time budgets.
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game
}

// Limits returns the soft (stop starting new iterations) and hard (abort
// mid-iteration) time budgets for the side to move, assuming 40 moves to
// the end of the game when Moves is unset.
func (t TimeControl) Limits(white bool) (soft, hard time.Duration) {
	remainder := t.White
	if !white {
		remainder = t.Black
	}
	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}
	soft = remainder / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// Options hold dynamic per-search parameters the caller may change freely.
type Options struct {
	DepthLimit  int // 0 == no limit
	TimeControl *TimeControl
}

// Launcher spins off an iterative-deepening search of a position.
type Launcher interface {
	// Launch starts a new search of s. The caller must not mutate s
	// concurrently until the returned Handle is halted.
	Launch(ctx context.Context, s *board.State, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller manage a running search.
type Handle interface {
	// Halt stops the search, if running, and returns its last completed PV. Idempotent.
	Halt() PV
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
