package eval

import (
	"fmt"
)

// Pawns is a human-oriented position or move value, in units of pawns. Evaluator results
// are relative to the side to move: positive favors the side whose turn it is to move.
// Terms documented as from White's perspective are positive when White is better.
type Pawns float64

// mateWindow is an arbitrary large constant that keeps heuristic scores and mate scores
// from overlapping when compared, well outside of any Pawns value a position evaluation
// can return.
const mateWindow = 1 << 20

// Score is a side-to-move-relative search score. It is either a heuristic evaluation, in
// Pawns, or a forced mate, expressed as a ply count via Mate. Unlike the classic "mate
// score biased by a large constant" encoding, the sign of a mate score is carried
// independently of its magnitude in mateSign, so "mate in 0" (checkmate has just been
// delivered) is distinguishable from "mated in 0" without resorting to a signed zero.
//
// Because Mate counts plies from the node the Score was computed at, not from the search
// root, a Score found at a given position is identical no matter how that position was
// reached. Transposition table entries can therefore be stored and retrieved without any
// root-distance adjustment.
type Score struct {
	Pawns    Pawns
	Mate     int
	mateSign int8 // 0: heuristic, +1: side to move mates, -1: side to move is mated
}

var (
	// ZeroScore is a neutral heuristic score, e.g., for a drawn or balanced position.
	ZeroScore = Score{}
	// InfScore is the best possible score: the side to move delivers immediate mate.
	InfScore = Score{mateSign: 1}
	// NegInfScore is the worst possible score: the side to move is already mated.
	NegInfScore = Score{mateSign: -1}
)

// HeuristicScore wraps a static evaluation as a Score.
func HeuristicScore(p Pawns) Score {
	return Score{Pawns: p}
}

// MatedInScore returns the score for the side to move being mated in the given number
// of plies from the current node.
func MatedInScore(plies int) Score {
	return Score{Mate: plies, mateSign: -1}
}

// MateInScore returns the score for the side to move delivering mate in the given number
// of plies from the current node.
func MateInScore(plies int) Score {
	return Score{Mate: plies, mateSign: 1}
}

// IsHeuristic returns true iff the score is a plain positional evaluation, as opposed to
// a forced mate.
func (s Score) IsHeuristic() bool {
	return s.mateSign == 0
}

// IsInvalid reports whether s is the unset sentinel value. It doubles as the zero value,
// so it is only meaningful for fields, such as an ad hoc search window, that are never
// legitimately left at exactly zero pawns.
func (s Score) IsInvalid() bool {
	return s.mateSign == 0 && s.Pawns == 0
}

// MateDistance returns the signed number of plies to mate and true, iff the score
// represents a forced mate. A positive value means the side to move delivers mate; a
// negative value means the side to move is mated.
func (s Score) MateDistance() (int, bool) {
	if s.mateSign == 0 {
		return 0, false
	}
	return int(s.mateSign) * s.Mate, true
}

// Negate flips the score to the other side's point of view.
func (s Score) Negate() Score {
	if s.mateSign == 0 {
		return Score{Pawns: -s.Pawns}
	}
	return Score{Mate: s.Mate, mateSign: -s.mateSign}
}

// IncrementMateDistance adds one ply to a mate score, as it propagates up one level of
// search towards the root. Heuristic scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	if s.mateSign == 0 {
		return s
	}
	return Score{Mate: s.Mate + 1, mateSign: s.mateSign}
}

// rank totally orders scores: a being-mated score is always worse than any heuristic
// score, which is always worse than any delivering-mate score. Shorter mates are better
// than longer ones, on either side.
func (s Score) rank() float64 {
	switch s.mateSign {
	case 1:
		return mateWindow - float64(s.Mate)
	case -1:
		return -mateWindow + float64(s.Mate)
	default:
		return float64(s.Pawns)
	}
}

// Less reports whether s is strictly worse than o, for the side to move.
func (s Score) Less(o Score) bool {
	return s.rank() < o.rank()
}

// Max returns the larger (better) of the two scores.
func Max(a, b Score) Score {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the smaller (worse) of the two scores.
func Min(a, b Score) Score {
	if b.Less(a) {
		return b
	}
	return a
}

func (s Score) String() string {
	if moves, ok := s.MateDistance(); ok {
		return fmt.Sprintf("mate(%v)", moves)
	}
	return fmt.Sprintf("%.2f", s.Pawns)
}
