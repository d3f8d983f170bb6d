package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTable(t *testing.T) {
	ctx := context.Background()

	// (1) Size is rounded down to a power-of-two entry count.

	tt := search.NewTranspositionTable(ctx, 0x10000)
	assert.LessOrEqual(t, tt.Size(), uint64(0x10000))
	assert.Greater(t, tt.Size(), uint64(0))

	tt2 := search.NewTranspositionTable(ctx, 0x1f000)
	assert.Equal(t, 2*tt.Size(), tt2.Size(), "40-byte entries: 0x10000 holds 1638, rounded down to 1024; 0x1f000 holds 3174, rounded down to 2048")

	// (2) Read/write round-trips a move through its Packed encoding.

	a := board.Hash(rand.Uint64())

	_, _, _, _, ok := tt.Read(a)
	assert.False(t, ok)

	m := move.Move{Swaps: []move.Swap{{From: 6, To: 22}}, SetEnPassant: true}
	s := eval.Score(200)
	assert.True(t, tt.Write(a, search.ExactBound, 5, 2, s, m))

	bound, depth, score, got, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, s, score)
	assert.Equal(t, m, got)

	_, _, _, _, ok = tt.Read(a ^ 0xff0000)
	assert.False(t, ok)

	// (3) A shallower, earlier write does not replace a deeper, later one.

	norepl := tt.Write(a, search.ExactBound, 2, 1, eval.Score(5), m)
	assert.False(t, norepl)

	repl := tt.Write(a, search.ExactBound, 6, 3, eval.Score(5), m)
	assert.True(t, repl)
}

func TestNoTranspositionTable(t *testing.T) {
	tt := search.NoTranspositionTable{}
	assert.Equal(t, uint64(0), tt.Size())
	assert.Equal(t, float64(0), tt.Used())

	m := move.Move{Swaps: []move.Swap{{From: 1, To: 2}}}
	assert.False(t, tt.Write(board.Hash(1), search.ExactBound, 1, 1, eval.Score(0), m))

	_, _, _, _, ok := tt.Read(board.Hash(1))
	assert.False(t, ok)
}
