package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/move"
	"github.com/seekerror/logw"
)

// Bound classifies how a stored score relates to the node's true value.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// TranspositionTable caches search results keyed by position hash. Reads and
// writes must be safe for concurrent use by multiple search workers.
type TranspositionTable interface {
	Read(hash board.Hash) (Bound, int, eval.Score, move.Move, bool)
	Write(hash board.Hash, bound Bound, ply, depth int, score eval.Score, m move.Move) bool

	Size() uint64
	Used() float64
}

type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// node is one cached search result, packing the best move into its 64-bit
// wire encoding rather than storing it as a full move.Move.
type node struct {
	hash   board.Hash
	packed move.Packed
	score  eval.Score
	bound  Bound
	ply    uint16
	depth  uint16
}

type table struct {
	entries []*node
	mask    uint64
	used    uint64
}

// NewTranspositionTable allocates a power-of-two-sized table no larger than
// size bytes.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	const entryBytes = 40
	n := uint64(1)
	if size > entryBytes {
		n = uint64(1) << (63 - bits.LeadingZeros64(size/entryBytes))
	}
	logw.Infof(ctx, "Allocating %vMB transposition table with %v entries", size>>20, n)
	return &table{entries: make([]*node, n), mask: n - 1}
}

func (t *table) Size() uint64 { return uint64(len(t.entries)) * 40 }

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.entries))
}

func (t *table) Read(hash board.Hash) (Bound, int, eval.Score, move.Move, bool) {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.entries[key]))
	ptr := (*node)(atomic.LoadPointer(addr))
	if ptr != nil && ptr.hash == hash {
		return ptr.bound, int(ptr.depth), ptr.score, move.Unpack(ptr.packed), true
	}
	return 0, 0, 0, move.Move{}, false
}

func (t *table) Write(hash board.Hash, bound Bound, ply, depth int, score eval.Score, m move.Move) bool {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.entries[key]))

	fresh := &node{hash: hash, packed: move.Pack(m), score: score, bound: bound, ply: uint16(ply), depth: uint16(depth)}

	for {
		ptr := (*node)(atomic.LoadPointer(addr))
		if nodeValue(ptr) > nodeValue(fresh) {
			return false
		}
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(ptr), unsafe.Pointer(fresh)) {
			if ptr == nil {
				t.used++
			}
			return true
		}
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// nodeValue favors keeping deeper, more recent searches on a collision.
func nodeValue(n *node) uint16 {
	if n == nil {
		return 0
	}
	return n.ply + n.depth<<1
}

// NoTranspositionTable is a no-op implementation, useful for perft/testing
// where caching would mask correctness bugs.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(board.Hash) (Bound, int, eval.Score, move.Move, bool) {
	return 0, 0, 0, move.Move{}, false
}
func (NoTranspositionTable) Write(board.Hash, Bound, int, int, eval.Score, move.Move) bool {
	return false
}
func (NoTranspositionTable) Size() uint64  { return 0 }
func (NoTranspositionTable) Used() float64 { return 0 }
