package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// MVVLVA implements the MVV-LVA (most valuable victim, least valuable attacker) move
// priority: captures and promotions are ordered by material gained, ties broken in favor
// of the cheapest attacking piece.
func MVVLVA(m board.Move) board.MovePriority {
	if p := board.MovePriority(100 * eval.NominalValueGain(m)); p > 0 {
		return p - board.MovePriority(eval.NominalValue(m.Piece))
	}
	return 0
}

// Exploration picks, for the position about to be searched, how to order its moves and
// which of them are worth exploring at all. It is re-derived at every node because move
// ordering wants the ply's killer/history context, which only Context carries.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

// FullExploration orders by MVV-LVA and explores every move. Used by full-width search,
// where pruning is the search's job, not the exploration's.
func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, func(board.Move) bool { return true }
}

// NewExploration adapts a fixed priority function and a Selection into an Exploration.
// Selection decides after a candidate move has already been made on b, which is how
// IsQuickGain can tell whether the moved piece is left hanging; the returned predicate
// closes over b so quiescence search can call it move by move as it walks the position.
func NewExploration(priority board.MovePriorityFn, sel Selection) Exploration {
	return func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
		return priority, func(m board.Move) bool {
			return sel(ctx, m, b)
		}
	}
}
