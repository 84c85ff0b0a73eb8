package search_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, f string) *board.Board {
	t.Helper()

	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)

	zt := board.NewZobristTable(1)
	return board.NewBoard(zt, pos, turn, noprogress, fullmoves)
}

func newTestPVS() search.PVS {
	ev := search.StaticEvaluator{Eval: eval.Material{}}
	return search.PVS{
		Explore: search.FullExploration,
		Eval: search.Quiescence{
			Explore: search.NewExploration(search.MVVLVA, search.IsQuickGain),
			Eval:    ev,
		},
		Static: ev,
	}
}

func TestPVSMate(t *testing.T) {
	ctx := context.Background()
	pvs := newTestPVS()

	tests := []struct {
		fen      string
		depth    int
		expected int // plies to mate, signed: positive mates, negative mated
	}{
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 2, 1},
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 3, 1},
		{"k7/7R/7R/8/8/8/8/7K w - - 0 1", 4, 3},
	}

	for _, tt := range tests {
		b := newTestBoard(t, tt.fen)
		tt := tt

		sctx := &search.Context{TT: search.NoTranspositionTable{}}
		_, score, moves, err := pvs.Search(ctx, sctx, b, tt.depth)
		require.NoError(t, err)

		distance, ok := score.MateDistance()
		require.Truef(t, ok, "expected forced mate for %v, got %v", tt.fen, score)
		assert.Equalf(t, tt.expected, distance, "failed: %v", tt.fen)
		assert.NotEmptyf(t, moves, "expected a principal variation for %v", tt.fen)
	}
}

func TestPVSInitialPositionIsBalanced(t *testing.T) {
	ctx := context.Background()
	pvs := newTestPVS()

	b := newTestBoard(t, fen.Initial)
	sctx := &search.Context{TT: search.NoTranspositionTable{}}

	_, score, _, err := pvs.Search(ctx, sctx, b, 3)
	require.NoError(t, err)
	assert.True(t, score.IsHeuristic())
	assert.InDelta(t, 0, float64(score.Pawns), 1.0)
}

func TestPVSAgreesWithMinimaxOnShallowTactics(t *testing.T) {
	ctx := context.Background()
	pvs := newTestPVS()
	minimax := search.Minimax{Eval: eval.Material{}}

	tests := []string{
		fen.Initial,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, f := range tests {
		b := newTestBoard(t, f)
		sctx := &search.Context{TT: search.NoTranspositionTable{}}

		_, actual, _, err := pvs.Search(ctx, sctx, b, 2)
		require.NoError(t, err)

		mb := newTestBoard(t, f)
		msctx := &search.Context{TT: search.NoTranspositionTable{}}
		_, expected, _, err := minimax.Search(ctx, msctx, mb, 2)
		require.NoError(t, err)

		assert.Equalf(t, expected, actual, "failed: %v", f)
	}
}

func TestPVSStalemateIsDraw(t *testing.T) {
	ctx := context.Background()
	pvs := newTestPVS()

	// Black to move, no legal moves, not in check.
	b := newTestBoard(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	sctx := &search.Context{TT: search.NoTranspositionTable{}}

	_, score, moves, err := pvs.Search(ctx, sctx, b, 2)
	require.NoError(t, err)
	assert.Equal(t, eval.ZeroScore, score)
	assert.Empty(t, moves)
}

func TestPVSCountsNodesAtDepthOne(t *testing.T) {
	ctx := context.Background()
	pvs := newTestPVS()

	b := newTestBoard(t, fen.Initial)
	sctx := &search.Context{TT: search.NoTranspositionTable{}}

	nodes, _, _, err := pvs.Search(ctx, sctx, b, 1)
	require.NoError(t, err)
	assert.Greater(t, nodes, uint64(0))
}
