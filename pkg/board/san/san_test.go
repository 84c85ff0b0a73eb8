package san_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/board/san"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, f string) *board.Position {
	t.Helper()
	pos, _, _, _, err := fen.Decode(f)
	require.NoError(t, err)
	return pos
}

func TestEmit(t *testing.T) {
	tests := []struct {
		fen      string
		move     board.Move
		expected string
	}{
		{
			fen.Initial,
			board.Move{Type: board.Jump, Piece: board.Pawn, From: board.E2, To: board.E4},
			"e4",
		},
		{
			fen.Initial,
			board.Move{Type: board.Normal, Piece: board.Knight, From: board.G1, To: board.F3},
			"Nf3",
		},
		{
			"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
			board.Move{Type: board.Normal, Piece: board.Bishop, From: board.F1, To: board.B5},
			"Bb5",
		},
		{
			"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			board.Move{Type: board.KingSideCastle, Piece: board.King, From: board.E1, To: board.G1},
			"O-O",
		},
		{
			"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			board.Move{Type: board.QueenSideCastle, Piece: board.King, From: board.E1, To: board.C1},
			"O-O-O",
		},
		{
			"7k/P7/8/8/8/8/8/7K w - - 0 1",
			board.Move{Type: board.Promotion, Piece: board.Pawn, From: board.A7, To: board.A8, Promotion: board.Queen},
			"a8=Q",
		},
		{
			// Two rooks can reach c1, disambiguate by file.
			"4k3/8/8/8/8/8/8/R2RK3 w - - 0 1",
			board.Move{Type: board.Normal, Piece: board.Rook, From: board.A1, To: board.C1},
			"Rac1",
		},
		{
			// Classic back-rank mate: the king has no flight square behind its own pawns.
			"6k1/5ppp/8/8/8/8/6PP/R5K1 w - - 0 1",
			board.Move{Type: board.Normal, Piece: board.Rook, From: board.A1, To: board.A8},
			"Ra8#",
		},
	}

	for _, tt := range tests {
		pos := mustDecode(t, tt.fen)
		assert.Equalf(t, tt.expected, san.Emit(pos, tt.move), "fen=%v move=%v", tt.fen, tt.move)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		fen      string
		str      string
		expected board.Move
	}{
		{
			fen.Initial,
			"e4",
			board.Move{Type: board.Jump, Piece: board.Pawn, From: board.E2, To: board.E4},
		},
		{
			fen.Initial,
			"Nf3",
			board.Move{Type: board.Normal, Piece: board.Knight, From: board.G1, To: board.F3},
		},
		{
			"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			"O-O",
			board.Move{Type: board.KingSideCastle, Piece: board.King, From: board.E1, To: board.G1},
		},
		{
			"7k/P7/8/8/8/8/8/7K w - - 0 1",
			"a8=Q",
			board.Move{Type: board.Promotion, Piece: board.Pawn, From: board.A7, To: board.A8, Promotion: board.Queen},
		},
		{
			"4k3/8/8/8/8/8/8/R2RK3 w - - 0 1",
			"Rac1",
			board.Move{Type: board.Normal, Piece: board.Rook, From: board.A1, To: board.C1},
		},
	}

	for _, tt := range tests {
		pos := mustDecode(t, tt.fen)
		m, err := san.Parse(pos, tt.str)
		require.NoError(t, err)
		assert.Equalf(t, tt.expected.From, m.From, "str=%v", tt.str)
		assert.Equalf(t, tt.expected.To, m.To, "str=%v", tt.str)
		assert.Equalf(t, tt.expected.Piece, m.Piece, "str=%v", tt.str)
		assert.Equalf(t, tt.expected.Promotion, m.Promotion, "str=%v", tt.str)
	}
}

func TestRoundTrip(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
		"4k3/8/8/8/8/8/8/R2RK3 w - - 0 1",
	}

	for _, f := range positions {
		pos := mustDecode(t, f)
		for _, m := range pos.LegalMoves(board.All) {
			str := san.Emit(pos, m)
			parsed, err := san.Parse(pos, str)
			require.NoErrorf(t, err, "fen=%v move=%v str=%v", f, m, str)
			assert.Equalf(t, m, parsed, "fen=%v str=%v", f, str)
		}
	}
}
