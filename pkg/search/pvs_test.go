package search_test

import (
	"context"
	"testing"

	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/fenx"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/search"
	"github.com/polychess/vace/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPVSFindsBackRankMate(t *testing.T) {
	ctx := context.Background()
	a := variant.Assemble(variant.Orthodox())

	pos, err := fenx.Decode(a, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	require.NoError(t, err)

	pvs := search.PVS{
		Gen:  a.Gen,
		Eval: eval.Weighted{Terms: []eval.Evaluator{eval.Material{}}, Weights: []int{100}},
		TT:   search.NewTranspositionTable(ctx, 1<<16),
	}

	nodes, score, pv, err := pvs.Search(ctx, pos.State, 3, make(chan struct{}))
	require.NoError(t, err)
	require.NotEmpty(t, pv)
	assert.Greater(t, nodes, uint64(0))
	assert.True(t, eval.IsMateScore(score), "expected a mate score, got %v", score)

	undo := pos.State.Make(pv[0])
	defer pos.State.Unmake(pv[0], undo)

	assert.True(t, a.Gen.PlayerInCheck(pos.State, pos.State.SideToMove))
	assert.Empty(t, a.Gen.LegalMoves(pos.State))
}

func TestPVSSearchesInitialPosition(t *testing.T) {
	ctx := context.Background()
	a := variant.Assemble(variant.Orthodox())

	pos, err := fenx.Decode(a, variant.Orthodox().StartFEN)
	require.NoError(t, err)

	pvs := search.PVS{
		Gen:  a.Gen,
		Eval: eval.Weighted{Terms: []eval.Evaluator{eval.Material{}, eval.Mobility{}}, Weights: []int{100, 100}},
		TT:   search.NewTranspositionTable(ctx, 1<<16),
	}

	nodes, _, pv, err := pvs.Search(ctx, pos.State, 2, make(chan struct{}))
	require.NoError(t, err)
	require.NotEmpty(t, pv)
	assert.Greater(t, nodes, uint64(0))

	legal := a.Gen.LegalMoves(pos.State)
	found := false
	for _, m := range legal {
		if move.Pack(m) == move.Pack(pv[0]) {
			found = true
		}
	}
	assert.True(t, found, "PV's first move must be legal in the root position")
}
