package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(context.Background(), "test-engine", "vace", engine.WithOptions(engine.Options{Variant: "orthodox"}))
	require.NoError(t, err)
	return e
}

func TestStartNewGameIsOrthodoxStartPosition(t *testing.T) {
	e := newTestEngine(t)
	moves := e.GenerateLegalMoves()
	assert.Len(t, moves, 20)
	assert.False(t, e.PlayerInCheck(board.White))
	assert.Equal(t, board.OK, e.GetGameEndState())
}

func TestPlayMoveTakeBackReplayMove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	m, err := e.MoveStringToMove("e2e4")
	require.NoError(t, err)
	require.NoError(t, e.PlayMove(ctx, m))

	fenAfter := e.MakeFENString()

	back, err := e.TakeBack(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, fenAfter, e.MakeFENString())

	require.NoError(t, e.ReplayMove(ctx))
	assert.Equal(t, fenAfter, e.MakeFENString())
	_ = back
}

func TestThinkFindsMateInOne(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.SetupFENPosition(ctx, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"))

	state, err := e.Think(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, board.OK, state)

	assert.Equal(t, board.EndedMate, e.GetGameEndState())
	assert.True(t, e.PlayerInCheck(board.Black))
}

func TestEvalAndSeeDoNotPanicOnStartPosition(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	_ = e.Eval(ctx)

	m, err := e.MoveStringToMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, 0, int(e.See(m)))
}

func TestDoublePushSetsEnPassantTarget(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	m, err := e.MoveStringToMove("e2e4")
	require.NoError(t, err)
	require.NoError(t, e.PlayMove(ctx, m))

	fields := strings.Fields(e.MakeFENString())
	require.Len(t, fields, 6)
	assert.Equal(t, "e3", fields[3])
}

func TestThinkFindsWinningKingPawnEndgame(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.SetupFENPosition(ctx, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"))

	state, err := e.Think(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, board.OK, state)

	// White just moved, so it is Black's turn; Eval() is reported from the
	// side to move's perspective, so White's own score is its negation.
	assert.Less(t, int(e.Eval(ctx)), 0)
}

func TestThreefoldRepetitionEndsGame(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 2; i++ {
		for _, text := range shuffle {
			m, err := e.MoveStringToMove(text)
			require.NoError(t, err)
			require.NoError(t, e.PlayMove(ctx, m))
		}
	}

	assert.Equal(t, board.EndedRepeat, e.GetGameEndState())
}

func TestEnPassantCaptureRemovesVictim(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.SetupFENPosition(ctx, "4k3/8/8/1pP5/8/8/8/4K3 w - b6 0 1"))

	found := false
	for _, m := range e.GenerateLegalMoves() {
		if e.FormatMove(m) == "c5b6" {
			found = true
		}
	}
	require.True(t, found, "en passant capture c5b6 should be a legal move")

	m, err := e.MoveStringToMove("c5b6")
	require.NoError(t, err)
	require.NoError(t, e.PlayMove(ctx, m))

	fen := e.MakeFENString()
	assert.NotContains(t, strings.Fields(fen)[0], "p")
}
