package board

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
	"strings"
)

// MovePriority represents the move order priority.
type MovePriority int16

// MovePriorityFn assigns a priority to moves
type MovePriorityFn func(move Move) MovePriority

// MovePredicateFn reports whether a move satisfies some criterion, such as "is tactical"
// or "is a quiet non-checking move".
type MovePredicateFn func(move Move) bool

// PrintMoves renders a move sequence as a space-separated PACN string, such as "e2e4 e7e5".
func PrintMoves(moves []Move) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}

// FormatMoves renders a move sequence as a space-separated string, using fn to format
// each move, such as "e2e4 e7e5".
func FormatMoves(moves []Move, fn func(Move) string) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(fn(m))
	}
	return sb.String()
}

// ByMVVLVA sorts moves by most-valuable-victim, least-valuable-attacker: captures and
// promotions gaining the most material first, quiet moves last.
type ByMVVLVA []Move

func (s ByMVVLVA) Len() int      { return len(s) }
func (s ByMVVLVA) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s ByMVVLVA) Less(i, j int) bool {
	return mvvlvaRank(s[i]) > mvvlvaRank(s[j])
}

// nominalValue is a coarse material scale used only for move ordering: the board package
// cannot depend on pkg/eval for its real tapered values without an import cycle.
func nominalValue(p Piece) int {
	switch p {
	case Pawn:
		return 1
	case Bishop, Knight:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 100
	default:
		return 0
	}
}

func mvvlvaRank(m Move) int {
	gain := 0
	if m.IsCapture() {
		gain = 100 * nominalValue(m.Capture)
	}
	if m.IsPromotion() {
		gain += 100 * nominalValue(m.Promotion)
	}
	if gain == 0 {
		return 0
	}
	return gain - nominalValue(m.Piece)
}

// First puts the given move first. Otherwise uses the given function.
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first.Equals(m) {
			return math.MaxInt16
		}
		return fn(m)
	}
}

// SortByPriority sorts the moves by priority, preserving order for same priority.
func SortByPriority(moves []Move, fn MovePriorityFn) {
	sort.SliceStable(moves, func(i, j int) bool {
		return fn(moves[i]) > fn(moves[j])
	})
}

// MoveList is move priority queue for move ordering.
type MoveList struct {
	h moveHeap
}

// NewMoveList returns a new move list with the given priorities.
func NewMoveList(moves []Move, fn MovePriorityFn) *MoveList {
	h := moveHeap(make([]elm, len(moves)))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the next move. It is the highest priority move in the list.
func (ml *MoveList) Next() (Move, bool) {
	if ml.Size() == 0 {
		return Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   Move
	val MovePriority
}

type moveHeap []elm

func (h moveHeap) Len() int {
	return len(h)
}

func (h moveHeap) Less(i, j int) bool {
	return h[i].val > h[j].val
}

func (h moveHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *moveHeap) Push(x interface{}) {
	panic("fixed size heap")
}

func (h *moveHeap) Pop() interface{} {
	n := len(*h)
	ret := (*h)[n-1]
	*h = (*h)[0 : n-1]
	return ret
}
