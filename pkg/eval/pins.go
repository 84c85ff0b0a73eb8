package eval

import "github.com/corvidchess/corvid/pkg/board"

// FindPins returns the squares of side's pieces of the given type that are pinned against
// its own king. A pinned piece can only move along the pin ray. Grounded on the ray-based
// pin detection used for legal move generation.
func FindPins(pos *board.Position, side board.Color, piece board.Piece) []board.Square {
	var ret []board.Square

	pinned := pos.Pinned(side) & pos.Pieces(side, piece)
	for pinned != 0 {
		sq := pinned.LastPopSquare()
		pinned ^= board.BitMask(sq)
		ret = append(ret, sq)
	}
	return ret
}
