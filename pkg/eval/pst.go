package eval

import "github.com/corvidchess/corvid/pkg/board"

// pieceValue gives the material value of a piece, in pawns, used by the tapered material
// term (MaterialAndPST).
var pieceValue = map[board.Piece]Pawns{
	board.Pawn:   1.0,
	board.Knight: 3.2,
	board.Bishop: 3.3,
	board.Rook:   5.0,
	board.Queen:  9.0,
	board.King:   0,
}

// Piece-square tables are laid out rank by rank from White's side of the board: index 0
// is a1, index 7 is h1, index 56 is a8, index 63 is h8. squareIndex below converts from
// this engine's own H1=0..A8=63 numbering into that layout for lookup.

var pawnPST = [2][64]Pawns{
	{ // opening
		0, 0, 0, 0, 0, 0, 0, 0,
		0.05, 0.10, 0.10, -0.20, -0.20, 0.10, 0.10, 0.05,
		0.05, -0.05, -0.10, 0.00, 0.00, -0.10, -0.05, 0.05,
		0.00, 0.00, 0.00, 0.20, 0.20, 0.00, 0.00, 0.00,
		0.05, 0.05, 0.10, 0.25, 0.25, 0.10, 0.05, 0.05,
		0.10, 0.10, 0.20, 0.30, 0.30, 0.20, 0.10, 0.10,
		0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // endgame: push passers, value of advancement rises
		0, 0, 0, 0, 0, 0, 0, 0,
		0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10,
		0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10,
		0.20, 0.20, 0.20, 0.20, 0.20, 0.20, 0.20, 0.20,
		0.35, 0.35, 0.35, 0.35, 0.35, 0.35, 0.35, 0.35,
		0.55, 0.55, 0.55, 0.55, 0.55, 0.55, 0.55, 0.55,
		0.80, 0.80, 0.80, 0.80, 0.80, 0.80, 0.80, 0.80,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
}

var knightPST = [2][64]Pawns{
	{
		-0.50, -0.40, -0.30, -0.30, -0.30, -0.30, -0.40, -0.50,
		-0.40, -0.20, 0.00, 0.05, 0.05, 0.00, -0.20, -0.40,
		-0.30, 0.05, 0.10, 0.15, 0.15, 0.10, 0.05, -0.30,
		-0.30, 0.00, 0.15, 0.20, 0.20, 0.15, 0.00, -0.30,
		-0.30, 0.05, 0.15, 0.20, 0.20, 0.15, 0.05, -0.30,
		-0.30, 0.00, 0.10, 0.15, 0.15, 0.10, 0.00, -0.30,
		-0.40, -0.20, 0.00, 0.00, 0.00, 0.00, -0.20, -0.40,
		-0.50, -0.40, -0.30, -0.30, -0.30, -0.30, -0.40, -0.50,
	},
	{
		-0.40, -0.30, -0.20, -0.20, -0.20, -0.20, -0.30, -0.40,
		-0.30, -0.10, 0.00, 0.00, 0.00, 0.00, -0.10, -0.30,
		-0.20, 0.00, 0.10, 0.15, 0.15, 0.10, 0.00, -0.20,
		-0.20, 0.05, 0.15, 0.20, 0.20, 0.15, 0.05, -0.20,
		-0.20, 0.05, 0.15, 0.20, 0.20, 0.15, 0.05, -0.20,
		-0.20, 0.00, 0.10, 0.15, 0.15, 0.10, 0.00, -0.20,
		-0.30, -0.10, 0.00, 0.00, 0.00, 0.00, -0.10, -0.30,
		-0.40, -0.30, -0.20, -0.20, -0.20, -0.20, -0.30, -0.40,
	},
}

var officerPST = [64]Pawns{
	-0.20, -0.10, -0.10, -0.10, -0.10, -0.10, -0.10, -0.20,
	-0.10, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, -0.10,
	-0.10, 0.00, 0.05, 0.10, 0.10, 0.05, 0.00, -0.10,
	-0.10, 0.05, 0.05, 0.10, 0.10, 0.05, 0.05, -0.10,
	-0.10, 0.00, 0.10, 0.10, 0.10, 0.10, 0.00, -0.10,
	-0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10, -0.10,
	-0.10, 0.05, 0.00, 0.00, 0.00, 0.00, 0.05, -0.10,
	-0.20, -0.10, -0.10, -0.10, -0.10, -0.10, -0.10, -0.20,
}

var rookPST = [2][64]Pawns{
	{
		0.00, 0.00, 0.00, 0.05, 0.05, 0.00, 0.00, 0.00,
		-0.05, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, -0.05,
		-0.05, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, -0.05,
		-0.05, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, -0.05,
		-0.05, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, -0.05,
		-0.05, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, -0.05,
		0.05, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.05,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
	},
	{
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.00, 0.00, 0.00, 0.05, 0.05, 0.00, 0.00, 0.00,
		0.00, 0.00, 0.00, 0.05, 0.05, 0.00, 0.00, 0.00,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
	},
}

var kingPST = [2][64]Pawns{
	{ // opening: stay castled and sheltered
		0.20, 0.30, 0.10, 0.00, 0.00, 0.10, 0.30, 0.20,
		0.20, 0.20, 0.00, 0.00, 0.00, 0.00, 0.20, 0.20,
		-0.10, -0.20, -0.20, -0.20, -0.20, -0.20, -0.20, -0.10,
		-0.20, -0.30, -0.30, -0.40, -0.40, -0.30, -0.30, -0.20,
		-0.30, -0.40, -0.40, -0.50, -0.50, -0.40, -0.40, -0.30,
		-0.30, -0.40, -0.40, -0.50, -0.50, -0.40, -0.40, -0.30,
		-0.30, -0.40, -0.40, -0.50, -0.50, -0.40, -0.40, -0.30,
		-0.30, -0.40, -0.40, -0.50, -0.50, -0.40, -0.40, -0.30,
	},
	{ // endgame: centralize
		-0.50, -0.30, -0.30, -0.30, -0.30, -0.30, -0.30, -0.50,
		-0.30, -0.30, 0.00, 0.00, 0.00, 0.00, -0.30, -0.30,
		-0.30, -0.10, 0.20, 0.30, 0.30, 0.20, -0.10, -0.30,
		-0.30, -0.10, 0.30, 0.40, 0.40, 0.30, -0.10, -0.30,
		-0.30, -0.10, 0.30, 0.40, 0.40, 0.30, -0.10, -0.30,
		-0.30, -0.10, 0.20, 0.30, 0.30, 0.20, -0.10, -0.30,
		-0.30, -0.20, -0.10, 0.00, 0.00, -0.10, -0.20, -0.30,
		-0.50, -0.40, -0.30, -0.20, -0.20, -0.30, -0.40, -0.50,
	},
}

// squareIndex converts sq into the tables' a1-first layout, from white's point of view.
// The engine's own Square numbering runs H1=0..A8=63 with File reversed
// (FileH=0..FileA=7), so the classical file is 7-File and the table row is the Rank
// (rank 1 comes first).
func squareIndex(sq board.Square) int {
	classicalFile := 7 - int(sq.File())
	classicalRank := int(sq.Rank())
	return classicalRank*8 + classicalFile
}

// pst looks up a tapered piece-square value for a piece of the given color on sq, from
// White's perspective: Black's values are negated.
func pst(table []Pawns, color board.Color, sq board.Square) Pawns {
	idx := squareIndex(sq)
	if color == board.White {
		return table[idx]
	}
	// Black's table is White's vertically mirrored and negated: the mirror keeps the file
	// and flips the row.
	classicalFile := idx % 8
	classicalRow := idx / 8
	mirrored := (7-classicalRow)*8 + classicalFile
	return -table[mirrored]
}

func pieceTable(piece board.Piece, phase int) []Pawns {
	switch piece {
	case board.Pawn:
		return taperedTable(pawnPST[0][:], pawnPST[1][:], phase)
	case board.Knight:
		return taperedTable(knightPST[0][:], knightPST[1][:], phase)
	case board.Rook:
		return taperedTable(rookPST[0][:], rookPST[1][:], phase)
	case board.King:
		return taperedTable(kingPST[0][:], kingPST[1][:], phase)
	default: // Bishop, Queen: single table for both phases
		return officerPST[:]
	}
}

func taperedTable(opening, endgame []Pawns, phase int) []Pawns {
	out := make([]Pawns, 64)
	for i := range out {
		out[i] = Taper(phase, opening[i], endgame[i])
	}
	return out
}

// MaterialAndPST computes the material and piece-square term of the position, from
// White's perspective, at the given phase.
func MaterialAndPST(pos *board.Position, phase int) Pawns {
	var score Pawns
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := Pawns(1)
		if c == board.Black {
			sign = -1
		}
		for piece := board.Pawn; piece < board.NumPieces; piece++ {
			bb := pos.Pieces(c, piece)
			table := pieceTable(piece, phase)
			for bb != 0 {
				sq := bb.LastPopSquare()
				bb = bb.ResetLSB()
				score += sign * pieceValue[piece]
				score += pst(table, c, sq)
			}
		}
	}
	return score
}
