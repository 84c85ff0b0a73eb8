package board

// Eight ray masks per square, precomputed once at startup: the squares strictly beyond a
// source square along each compass direction, stopping at the board edge. Used for pin
// detection and check-evasion interposition, where the blocker-dependent magic attack
// tables would otherwise have to be re-derived per direction.
var rays [8][NumSquares]Bitboard

// rayDirs gives the (file, rank) step for each of the 8 directions. The direction labels
// are arbitrary given this package's reversed file numbering (FileH=0..FileA=7); what
// matters is that each entry is a fixed, distinct compass direction.
var rayDirs = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

// rayIncreasing[d] is true iff squares further along direction d have a strictly larger
// Square index, so the nearest occupant along the ray is found via LSB rather than MSB.
var rayIncreasing = [8]bool{true, false, true, false, true, true, false, false}

func init() {
	for d, dir := range rayDirs {
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			f, r := int(sq.File()), int(sq.Rank())

			var bb Bitboard
			for i := 1; i < 8; i++ {
				nf, nr := f+dir[0]*i, r+dir[1]*i
				if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
					break
				}
				bb |= BitMask(NewSquare(File(nf), Rank(nr)))
			}
			rays[d][sq] = bb
		}
	}
}

// rayBetween returns the squares strictly between from and to, assuming they lie on a
// shared ray (rank, file or diagonal). Returns an empty bitboard if they do not.
func rayBetween(from, to Square) Bitboard {
	for d := 0; d < 8; d++ {
		if rays[d][from].IsSet(to) {
			return rays[d][from] &^ rays[d][to] &^ BitMask(to)
		}
	}
	return EmptyBitboard
}

// pinnedAndRays returns the bitboard of c's pieces pinned against its own king, and for
// each pinned square the ray segment (exclusive of the king, inclusive of the pinning
// piece) that a legal move of that piece must stay within. Grounded on
// BelikovArtem-chego/movegen.go's ray-walk idiom, adapted to this package's precomputed
// ray tables and magic attack boards.
func (p *Position) pinnedAndRays(c Color) (Bitboard, map[Square]Bitboard) {
	kingSq := p.King(c)
	opp := c.Opponent()

	pinned := EmptyBitboard
	pinRay := map[Square]Bitboard{}

	for d := 0; d < 8; d++ {
		ray := rays[d][kingSq]
		blockers := ray & p.occupied
		if blockers == 0 {
			continue
		}

		nearest := nearestOnRay(blockers, d)
		if color, _, _ := p.Square(nearest); color != c {
			continue // first blocker is the opponent: not a pin on our piece
		}

		beyond := blockers &^ BitMask(nearest)
		if beyond == 0 {
			continue
		}
		next := nearestOnRay(beyond, d)

		nextColor, nextPiece, _ := p.Square(next)
		if nextColor != opp {
			continue
		}

		isRookRay := d < 4
		compatible := nextPiece == Queen || (isRookRay && nextPiece == Rook) || (!isRookRay && nextPiece == Bishop)
		if !compatible {
			continue
		}

		pinned |= BitMask(nearest)
		pinRay[nearest] = ray &^ rays[d][next]
	}

	return pinned, pinRay
}

// Pinned returns the bitboard of c's pieces pinned against its own king.
func (p *Position) Pinned(c Color) Bitboard {
	pinned, _ := p.pinnedAndRays(c)
	return pinned
}

func nearestOnRay(blockers Bitboard, d int) Square {
	if rayIncreasing[d] {
		return blockers.LastPopSquare()
	}
	return blockers.MostSignificantBit()
}
