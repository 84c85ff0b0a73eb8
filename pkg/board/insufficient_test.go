package board_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPosition(t *testing.T, pieces []board.Placement) *board.Position {
	t.Helper()
	pos, err := board.NewPosition(pieces, board.White, board.Castling(0), board.ZeroSquare)
	require.NoError(t, err)
	return pos
}

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name     string
		pieces   []board.Placement
		expected bool
	}{
		{
			"bare kings",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.E8, board.Black, board.King},
			},
			true,
		},
		{
			"king+knight vs king",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.B1, board.White, board.Knight},
				{board.E8, board.Black, board.King},
			},
			true,
		},
		{
			"king+bishop vs king+bishop, same color",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.C1, board.White, board.Bishop},
				{board.E8, board.Black, board.King},
				{board.F8, board.Black, board.Bishop}, // same complex as C1
			},
			true,
		},
		{
			"king+bishop vs king+bishop, opposite color",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.C1, board.White, board.Bishop},
				{board.E8, board.Black, board.King},
				{board.C8, board.Black, board.Bishop}, // opposite complex from C1
			},
			false,
		},
		{
			"king+two same-color bishops vs king",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.A1, board.White, board.Bishop},
				{board.C1, board.White, board.Bishop}, // same complex as A1
				{board.E8, board.Black, board.King},
			},
			true,
		},
		{
			"king+same-color bishops on both sides, mixed count",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.A1, board.White, board.Bishop},
				{board.C1, board.White, board.Bishop}, // same complex as A1
				{board.E8, board.Black, board.King},
				{board.F8, board.Black, board.Bishop}, // same complex as A1/C1
			},
			true,
		},
		{
			"king+bishops split across color complexes",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.A1, board.White, board.Bishop},
				{board.C1, board.White, board.Bishop}, // same complex as A1
				{board.E8, board.Black, board.King},
				{board.C8, board.Black, board.Bishop}, // opposite complex
			},
			false,
		},
		{
			"king+two knights vs king is not covered",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.B1, board.White, board.Knight},
				{board.G1, board.White, board.Knight},
				{board.E8, board.Black, board.King},
			},
			false,
		},
		{
			"pawn on board is always sufficient",
			[]board.Placement{
				{board.E1, board.White, board.King},
				{board.E2, board.White, board.Pawn},
				{board.E8, board.Black, board.King},
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := newPosition(t, tt.pieces)
			assert.Equal(t, tt.expected, pos.HasInsufficientMaterial())
		})
	}
}
