package board_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestMovePackUnpack(t *testing.T) {
	tests := []board.Move{
		{Type: board.Normal, From: board.E2, To: board.E3, Piece: board.Pawn},
		{Type: board.Jump, From: board.E2, To: board.E4, Piece: board.Pawn},
		{Type: board.Capture, From: board.D4, To: board.E5, Piece: board.Knight, Capture: board.Pawn},
		{Type: board.EnPassant, From: board.D5, To: board.E6, Piece: board.Pawn, Capture: board.Pawn},
		{Type: board.Promotion, From: board.A7, To: board.A8, Piece: board.Pawn, Promotion: board.Queen},
		{Type: board.CapturePromotion, From: board.B7, To: board.A8, Piece: board.Pawn, Promotion: board.Queen, Capture: board.Rook},
		{Type: board.KingSideCastle, From: board.E1, To: board.G1, Piece: board.King},
		{Type: board.QueenSideCastle, From: board.E8, To: board.C8, Piece: board.King},
	}

	for _, m := range tests {
		packed := m.Pack()
		got := board.Unpack(packed)

		assert.Equalf(t, m.Type, got.Type, "move=%v", m)
		assert.Equalf(t, m.From, got.From, "move=%v", m)
		assert.Equalf(t, m.To, got.To, "move=%v", m)
		assert.Equalf(t, m.Piece, got.Piece, "move=%v", m)
		assert.Equalf(t, m.Promotion, got.Promotion, "move=%v", m)
		assert.Equalf(t, m.Capture, got.Capture, "move=%v", m)
	}
}
