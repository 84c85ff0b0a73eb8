package eval

import "github.com/corvidchess/corvid/pkg/board"

// King safety is approximated by tropism: the taxicab distance from the enemy queen to
// the own king (closer is worse), and from each enemy pawn to the own king, with a larger
// weight for passed enemy pawns. Own pawns are not counted, and open or backward pawns
// get no weight of their own.
const (
	queenTropismWeight  = 0.015
	pawnTropismWeight   = 0.010
	passedPawnTropismWeight = 0.020
)

func evaluateKingSafety(pos *board.Position) Pawns {
	return kingSafetyForSide(pos, board.White) - kingSafetyForSide(pos, board.Black)
}

// kingSafetyForSide returns side's king-safety term, positive is good for side.
func kingSafetyForSide(pos *board.Position, side board.Color) Pawns {
	opp := side.Opponent()
	king := pos.King(side)

	var score Pawns

	enemyQueens := pos.Pieces(opp, board.Queen)
	for enemyQueens != 0 {
		sq := enemyQueens.LastPopSquare()
		enemyQueens = enemyQueens.ResetLSB()
		score -= Pawns(14-taxicab(king, sq)) * queenTropismWeight
	}

	enemyPawns := pos.Pieces(opp, board.Pawn)
	for enemyPawns != 0 {
		sq := enemyPawns.LastPopSquare()
		enemyPawns = enemyPawns.ResetLSB()
		weight := pawnTropismWeight
		if isPassed(sq, opp, pos.Pieces(side, board.Pawn)) {
			weight = passedPawnTropismWeight
		}
		score -= Pawns(14-taxicab(king, sq)) * weight
	}

	return score
}

func taxicab(a, b board.Square) int {
	df := int(a.File()) - int(b.File())
	dr := int(a.Rank()) - int(b.Rank())
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	return df + dr
}
