package board_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
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

// TestThreefoldRepetition shuffles both kings back and forth until the starting position
// recurs twice more, and checks that the draw is adjudicated on the move that produces
// the third occurrence, not silently missed due to the fifty-move clock differing between
// occurrences (each king move is reversible, so the clock keeps climbing throughout).
func TestThreefoldRepetition(t *testing.T) {
	b := newTestBoard(t, "6k1/8/8/8/8/8/8/6K1 w - - 0 1")

	shuffle := []board.Move{
		{From: board.G1, To: board.H1},
		{From: board.G8, To: board.H8},
		{From: board.H1, To: board.G1},
		{From: board.H8, To: board.G8},
	}

	for cycle := 0; cycle < 2; cycle++ {
		for _, m := range shuffle {
			ok := b.PushMove(m)
			require.Truef(t, ok, "cycle=%v move=%v", cycle, m)
		}
	}

	assert.Equal(t, board.Draw, b.Result().Outcome)
	assert.Equal(t, board.Repetition3, b.Result().Reason)
}
