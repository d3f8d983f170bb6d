package search

import (
	"container/heap"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/move"
)

// Priority is a move ordering score: higher searches first.
type Priority int32

// MVVLVA scores a capture by most-valuable-victim, least-valuable-attacker,
// reading the victim/attacker values off the position's descriptor table via
// NominalValueGain rather than a move's own fixed piece/capture fields.
func MVVLVA(s *board.State, phase int, m move.Move) Priority {
	gain := eval.NominalValueGain(s, pickupCells(m))
	if gain <= 0 {
		return 0
	}
	attacker := 0
	if len(m.Swaps) > 0 {
		attacker = int(s.Descriptors[s.PieceAt[m.Swaps[0].From].Type].ValueMG)
	}
	return Priority(100*int(gain)) - Priority(attacker)
}

func pickupCells(m move.Move) []int {
	out := make([]int, len(m.Pickups))
	for i := range m.Pickups {
		out[i] = int(m.Pickups[i])
	}
	return out
}

// elm is one entry of the move-ordering heap.
type elm struct {
	m   move.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { panic("search: fixed size heap") }
func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ret := old[n-1]
	*h = old[:n-1]
	return ret
}

// MoveList is a container/heap-backed move priority queue for move ordering.
type MoveList struct {
	h moveHeap
}

// PriorityFn assigns an ordering priority to a move in position s.
type PriorityFn func(s *board.State, m move.Move) Priority

// NewMoveList builds a move list ordered by fn, highest priority first.
func NewMoveList(s *board.State, moves []move.Move, fn PriorityFn) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(s, m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next pops the highest-priority move remaining in the list.
func (ml *MoveList) Next() (move.Move, bool) {
	if ml.h.Len() == 0 {
		return move.Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int { return ml.h.Len() }

// orderingTable holds the killer-move and history-heuristic state for one
// search run, indexed by ply for killers and by (color, from, to) for
// history -- the two classic non-capture move-ordering heuristics layered on
// top of MVV-LVA over captures.
type orderingTable struct {
	killers [maxOrderingPly][2]move.Move
	history [board.NumColors][][]int32
}

const maxOrderingPly = 128

func newOrderingTable(numCells int) *orderingTable {
	t := &orderingTable{}
	for c := range t.history {
		t.history[c] = make([][]int32, numCells)
		for f := range t.history[c] {
			t.history[c][f] = make([]int32, numCells)
		}
	}
	return t
}

// recordKiller remembers a quiet move that caused a beta cutoff at ply,
// keeping the two most recent distinct killers per ply (teacher-style
// two-slot killer table).
func (t *orderingTable) recordKiller(ply int, m move.Move) {
	if ply < 0 || ply >= maxOrderingPly || len(m.Swaps) == 0 {
		return
	}
	if movesEqual(t.killers[ply][0], m) {
		return
	}
	t.killers[ply][1] = t.killers[ply][0]
	t.killers[ply][0] = m
}

func (t *orderingTable) isKiller(ply int, m move.Move) bool {
	if ply < 0 || ply >= maxOrderingPly {
		return false
	}
	return movesEqual(t.killers[ply][0], m) || movesEqual(t.killers[ply][1], m)
}

// recordHistory bumps the history score of a quiet move that caused a
// cutoff, weighted by depth squared as is standard practice.
func (t *orderingTable) recordHistory(c board.Color, m move.Move, depth int) {
	if len(m.Swaps) == 0 {
		return
	}
	from, to := int(m.Swaps[0].From), int(m.Swaps[0].To)
	t.history[c][from][to] += int32(depth * depth)
}

func (t *orderingTable) historyScore(c board.Color, m move.Move) int32 {
	if len(m.Swaps) == 0 {
		return 0
	}
	return t.history[c][int(m.Swaps[0].From)][int(m.Swaps[0].To)]
}

func movesEqual(a, b move.Move) bool {
	return move.Pack(a) == move.Pack(b)
}

// orderingPriority combines the transposition-table move, MVV-LVA captures,
// killers and history into one priority function, a single table-driven
// ranking applied to every generated move.
func (t *orderingTable) orderingPriority(s *board.State, phase, ply int, ttMove move.Move) PriorityFn {
	hasTT := !ttMove.IsZero()
	return func(s *board.State, m move.Move) Priority {
		if hasTT && movesEqual(m, ttMove) {
			return 1 << 20
		}
		if len(m.Pickups) > 0 {
			return 1<<19 + MVVLVA(s, phase, m)
		}
		if t.isKiller(ply, m) {
			return 1 << 18
		}
		return Priority(t.historyScore(s.SideToMove, m))
	}
}
