package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// Evaluator is a static position evaluator used inside a search Context. Unlike
// eval.Evaluator, it receives the Context so an implementation can use the search's
// current alpha-beta window, e.g. to decide whether the lazy evaluation cutoff is safe.
type Evaluator interface {
	// Evaluate returns the position score in Pawns, for the side to move.
	Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns
}

// StaticEvaluator adapts a plain eval.Evaluator, ignoring the search window entirely.
type StaticEvaluator struct {
	Eval eval.Evaluator
}

func (s StaticEvaluator) Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns {
	return s.Eval.Evaluate(ctx, b)
}

// WindowedEvaluator adapts a TaperedEvaluator, passing the Context's alpha-beta window
// through to its lazy evaluation cutoff. The cutoff is disabled whenever either bound
// falls inside the mate window: a lazily-skipped term could otherwise tip a position
// that is actually forced mate into looking like an ordinary heuristic score.
type WindowedEvaluator struct {
	Eval *eval.TaperedEvaluator
}

func (w WindowedEvaluator) Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns {
	alpha, beta := eval.NegInfPawns, eval.InfPawns
	if sctx.Alpha.IsHeuristic() && !sctx.Alpha.IsInvalid() && sctx.Beta.IsHeuristic() && !sctx.Beta.IsInvalid() {
		alpha, beta = sctx.Alpha.Pawns, sctx.Beta.Pawns
	}
	return w.Eval.EvaluateWindowed(ctx, b, alpha, beta)
}

// QuietSearch extends a position beyond the horizon until it is quiet: no more captures,
// promotions or checks worth exploring. Its score is the value a fixed-depth Search
// reports at depth 0.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}
