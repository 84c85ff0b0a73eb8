package eval

import "github.com/corvidchess/corvid/pkg/board"

// pawnTerms holds the pawn-structure sub-scores for one side, computed once per distinct
// pawn hash and cached by PawnCache.
type pawnTerms struct {
	passed, backward, stopped int
}

// evaluatePawns computes the pawn structure term for the position, from White's
// perspective: counts of passed, backward and stopped pawns for each side (spec.md
// 4.6.2), plus defended/attacked bonuses between pawns and other pieces.
func evaluatePawns(pos *board.Position) Pawns {
	white := pawnTermsForSide(pos, board.White)
	black := pawnTermsForSide(pos, board.Black)

	const (
		passedBonus   = 0.25
		backwardPenalty = 0.12
		stoppedPenalty  = 0.08
	)

	score := Pawns(white.passed-black.passed) * passedBonus
	score -= Pawns(white.backward-black.backward) * backwardPenalty
	score -= Pawns(white.stopped-black.stopped) * stoppedPenalty

	score += pawnGuardTerms(pos, board.White) - pawnGuardTerms(pos, board.Black)
	return score
}

func pawnTermsForSide(pos *board.Position, side board.Color) pawnTerms {
	opp := side.Opponent()
	ownPawns := pos.Pieces(side, board.Pawn)
	enemyPawns := pos.Pieces(opp, board.Pawn)
	occupied := pos.Occupied()

	var t pawnTerms
	bb := ownPawns
	for bb != 0 {
		sq := bb.LastPopSquare()
		bb = bb.ResetLSB()

		if isPassed(sq, side, enemyPawns) {
			t.passed++
		}
		if isBackward(sq, side, ownPawns, enemyPawns) {
			t.backward++
		}
		if stop, ok := forward(sq, side); ok && occupied.IsSet(stop) {
			t.stopped++
		}
	}
	return t
}

// isPassed reports whether a pawn on sq has no enemy pawn on its own or an adjacent file
// ahead of its rank, i.e. nothing can ever block or capture it on its way to
// promotion.
func isPassed(sq board.Square, side board.Color, enemyPawns board.Bitboard) bool {
	rank := int(sq.Rank())
	file := int(sq.File())

	for f := file - 1; f <= file+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		fileBB := enemyPawns & board.BitFile(board.File(f))
		for fileBB != 0 {
			esq := fileBB.LastPopSquare()
			fileBB = fileBB.ResetLSB()
			erank := int(esq.Rank())
			if side == board.White && erank > rank {
				return false
			}
			if side == board.Black && erank < rank {
				return false
			}
		}
	}
	return true
}

// isBackward reports whether a pawn on sq has no friendly pawn on an adjacent file that
// could ever support its advance, and its stop square is controlled by an enemy pawn.
func isBackward(sq board.Square, side board.Color, ownPawns, enemyPawns board.Bitboard) bool {
	rank := int(sq.Rank())
	file := int(sq.File())

	for f := file - 1; f <= file+1; f += 2 {
		if f < 0 || f > 7 {
			continue
		}
		fileBB := ownPawns & board.BitFile(board.File(f))
		for fileBB != 0 {
			osq := fileBB.LastPopSquare()
			fileBB = fileBB.ResetLSB()
			orank := int(osq.Rank())
			if side == board.White && orank <= rank {
				return false // a friendly pawn behind (or level) can still support the advance
			}
			if side == board.Black && orank >= rank {
				return false
			}
		}
	}

	stop, ok := forward(sq, side)
	if !ok {
		return false
	}
	return board.PawnCaptureboard(side.Opponent(), enemyPawns).IsSet(stop)
}

// forward returns the square directly ahead of sq for side, or false if sq is already on
// the back rank relative to side (never true for a legal pawn position).
func forward(sq board.Square, side board.Color) (board.Square, bool) {
	rank := sq.Rank()
	if side == board.White {
		if rank >= board.Rank8 {
			return 0, false
		}
		return board.NewSquare(sq.File(), rank+1), true
	}
	if rank <= board.Rank1 {
		return 0, false
	}
	return board.NewSquare(sq.File(), rank-1), true
}

// pawnGuardTerms rewards pawns that defend another own piece and pawns that attack an
// enemy piece, a cheap proxy for pawn-chain and outpost strength.
func pawnGuardTerms(pos *board.Position, side board.Color) Pawns {
	const (
		defendedBonus = 0.03
		attackedBonus = 0.02
	)

	opp := side.Opponent()
	attacks := board.PawnCaptureboard(side, pos.Pieces(side, board.Pawn))

	var own, enemy board.Bitboard
	for p := board.Pawn; p < board.NumPieces; p++ {
		own |= pos.Pieces(side, p)
		enemy |= pos.Pieces(opp, p)
	}

	defended := (attacks & own).PopCount()
	attacked := (attacks & enemy).PopCount()
	return Pawns(defended)*defendedBonus + Pawns(attacked)*attackedBonus
}
