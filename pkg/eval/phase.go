package eval

import "github.com/corvidchess/corvid/pkg/board"

// phaseWeight is the tapered-evaluation phase contribution of one piece of the given
// type, following the standard knight/bishop=1, rook=2, queen=4 weighting.
var phaseWeight = map[board.Piece]int{
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
}

// totalPhase is the phase weight of a full set of non-pawn, non-king material: 4 knights,
// 4 bishops, 4 rooks, 2 queens.
const totalPhase = 4*1 + 4*1 + 4*2 + 2*4

// Phase returns a smooth measure of the position's progress from opening (0) to pure
// endgame (256), based on the non-pawn non-king material still on the board.
func Phase(pos *board.Position) int {
	phase := totalPhase
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for piece, weight := range phaseWeight {
			phase -= pos.Pieces(c, piece).PopCount() * weight
		}
	}
	if phase < 0 {
		phase = 0
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase * 256 / totalPhase
}

// Taper blends an opening and endgame value by the given phase, per spec.md's tapered
// evaluation formula: final = (opening*(256-phase) + endgame*phase) / 256.
func Taper(phase int, opening, endgame Pawns) Pawns {
	return (opening*Pawns(256-phase) + endgame*Pawns(phase)) / 256
}
