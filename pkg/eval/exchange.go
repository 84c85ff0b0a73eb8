package eval

import "github.com/corvidchess/corvid/pkg/board"

// pieceOrder is the ascending value order SEE walks when picking the least valuable
// attacker of a square.
var pieceOrder = []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King}

// SEE computes the static exchange evaluation of a capture: the material result, in
// pawns, of both sides exchanging on m.To as many times as is profitable (spec.md
// 4.6.5), grounded on the classic chess-programming swap-off algorithm and cross-checked
// against the teacher's own cmd/sargon and cmd/bernstein exchange evaluators. turn is the
// side making m. Only valid for ordinary captures: castling and en passant are scored by
// their nominal value delta instead, since neither removes a piece by standing on m.To.
func SEE(pos *board.Position, turn board.Color, m board.Move) Pawns {
	if m.Type == board.EnPassant || m.Type == board.KingSideCastle || m.Type == board.QueenSideCastle {
		return NominalValueGain(m)
	}
	if !m.IsCapture() {
		if m.IsPromotion() {
			return NominalValueGain(m)
		}
		return 0
	}

	to := m.To
	occ := pos.Occupied() &^ board.BitMask(m.From)

	var gain [32]Pawns
	depth := 0
	gain[0] = NominalValue(m.Capture)
	attacker := NominalValue(m.Piece)
	side := turn.Opponent()

	for {
		depth++
		gain[depth] = attacker - gain[depth-1]
		if maxPawns(-gain[depth-1], gain[depth]) < 0 {
			break // this recapture would lose material outright: side stops here
		}

		sq, value, ok := leastValuableAttacker(pos, side, to, occ)
		if !ok {
			break
		}
		occ &^= board.BitMask(sq)
		attacker = value
		side = side.Opponent()

		if depth == len(gain)-1 {
			break // exchange sequences this long never occur on a real board
		}
	}

	// gain[depth] is speculative: it assumes a recapture that the loop found no attacker
	// for (or pruned), so the fold starts from gain[depth-1].
	for depth > 1 {
		depth--
		gain[depth-1] = -maxPawns(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

func maxPawns(a, b Pawns) Pawns {
	if a > b {
		return a
	}
	return b
}

// leastValuableAttacker returns the square and value of side's cheapest piece attacking
// sq given occ, or false if side has none.
func leastValuableAttacker(pos *board.Position, side board.Color, sq board.Square, occ board.Bitboard) (board.Square, Pawns, bool) {
	attackers := pos.AttackersWithOccupancy(side.Opponent(), sq, occ) & occ
	for _, piece := range pieceOrder {
		bb := attackers & pos.Pieces(side, piece)
		if bb != 0 {
			return bb.LastPopSquare(), NominalValue(piece), true
		}
	}
	return 0, 0, false
}
