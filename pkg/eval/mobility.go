package eval

import "github.com/corvidchess/corvid/pkg/board"

// mobilityBonus is the per-square pawns value of one additional safe destination square,
// for a rook, bishop or knight.
const mobilityBonus = 0.02

// evaluateMobility counts, for each rook, bishop and knight, the number of pseudo-legal
// destination squares not attacked by an enemy pawn (spec.md 4.6.2), from White's
// perspective.
func evaluateMobility(pos *board.Position) Pawns {
	return mobilityForSide(pos, board.White) - mobilityForSide(pos, board.Black)
}

func mobilityForSide(pos *board.Position, side board.Color) Pawns {
	opp := side.Opponent()
	occupied := pos.Occupied()
	own := pos.Pieces(side, board.Pawn) | pos.Pieces(side, board.Knight) | pos.Pieces(side, board.Bishop) |
		pos.Pieces(side, board.Rook) | pos.Pieces(side, board.Queen) | pos.Pieces(side, board.King)
	safe := ^board.PawnCaptureboard(opp, pos.Pieces(opp, board.Pawn))

	var squares int
	for _, piece := range []board.Piece{board.Knight, board.Bishop, board.Rook} {
		bb := pos.Pieces(side, piece)
		for bb != 0 {
			sq := bb.LastPopSquare()
			bb = bb.ResetLSB()
			squares += (board.Attackboard(occupied, sq, piece) &^ own & safe).PopCount()
		}
	}
	return Pawns(squares) * mobilityBonus
}
