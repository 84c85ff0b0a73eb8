// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in Pawns.
	Evaluate(ctx context.Context, b *board.Board) Pawns
}

// Material returns the nominal material advantage balance for the side to move.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()

	var pawns Pawns
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		pawns += Pawns(pos.Pieces(turn, p).PopCount()-pos.Pieces(turn.Opponent(), p).PopCount()) * NominalValue(p)
	}
	return pawns
}

// Randomize wraps an Evaluator, adding a small amount of noise to its evaluation. It is
// used to avoid always playing the exact same moves in otherwise equal positions.
func Randomize(inner Evaluator, limit int, seed int64) Evaluator {
	return randomized{inner: inner, noise: NewRandom(limit, seed)}
}

type randomized struct {
	inner Evaluator
	noise Random
}

func (r randomized) Evaluate(ctx context.Context, b *board.Board) Pawns {
	return r.inner.Evaluate(ctx, b) + r.noise.Evaluate(ctx, b)
}

// NominalValue is the absolute nominal value in pawns of a piece, used by move ordering
// and SEE. The King has an arbitrary value of 100 pawns.
func NominalValue(p board.Piece) Pawns {
	switch p {
	case board.Pawn:
		return 1
	case board.Bishop, board.Knight:
		return 3
	case board.Rook:
		return 5
	case board.Queen:
		return 9
	case board.King:
		return 100
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain for a move.
func NominalValueGain(m board.Move) Pawns {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}

// lazyMargin is the tunable window, in pawns, within which the cheap material+PST base
// score is trusted to be close enough to the full evaluation that computing the
// remaining terms cannot matter (spec.md 4.6.4).
const lazyMargin = 1.5

// TaperedEvaluator is the full static evaluator: tapered material and piece-square
// tables, pawn structure (cached by pawn hash), mobility, king safety, and small
// bonuses, from the side to move's perspective. Grounded on the teacher's own
// Material/NominalValue lineage (eval.go), extended with the terms
// easychessanimations-zurichess's material.go/pawns.go/weights.go compute, per spec.md
// 4.6.
type TaperedEvaluator struct {
	Pawns *PawnCache
	Eval  *EvalCache
}

// NewTaperedEvaluator returns a TaperedEvaluator backed by the given caches. Either may
// be nil, in which case that term is recomputed on every call.
func NewTaperedEvaluator(pawns *PawnCache, evalCache *EvalCache) *TaperedEvaluator {
	return &TaperedEvaluator{Pawns: pawns, Eval: evalCache}
}

// Evaluate returns the full static evaluation for the side to move.
func (t *TaperedEvaluator) Evaluate(ctx context.Context, b *board.Board) Pawns {
	return t.EvaluateWindowed(ctx, b, NegInfPawns, InfPawns)
}

// NegInfPawns and InfPawns bound EvaluateWindowed's lazy-cutoff window when the caller
// has no real alpha-beta bound to offer (e.g. a plain Evaluate call).
const (
	NegInfPawns Pawns = -1 << 30
	InfPawns    Pawns = 1 << 30
)

// EvaluateWindowed evaluates the position, skipping the pawn/mobility/king-safety terms
// when the cheap material+PST base score already lies outside (alpha-margin,
// beta+margin) (spec.md 4.6.4's lazy evaluation). alpha and beta are in Pawns, from the
// side to move's perspective, matching the search's use of Score.Pawns within a
// heuristic (non-mate) window; callers searching inside the mate window should pass
// NegInfPawns/InfPawns to disable the cutoff, since a lazily-skipped term could tip a
// position that is actually mate into looking like an ordinary heuristic score.
func (t *TaperedEvaluator) EvaluateWindowed(ctx context.Context, b *board.Board, alpha, beta Pawns) Pawns {
	pos := b.Position()
	turn := b.Turn()

	if pos.HasInsufficientMaterial() {
		return 0
	}

	if t.Eval != nil {
		if score, ok := t.Eval.Read(b.Hash()); ok {
			return relative(score, turn)
		}
	}

	phase := Phase(pos)
	base := MaterialAndPST(pos, phase)

	if rel := relative(base, turn); rel < alpha-lazyMargin || rel > beta+lazyMargin {
		return rel
	}

	score := base
	if t.Pawns != nil {
		score += t.Pawns.Evaluate(pos, b.PawnHash())
	} else {
		score += evaluatePawns(pos)
	}
	score += evaluateMobility(pos)
	score += evaluateKingSafety(pos)
	score += smallBonuses(pos)

	if t.Eval != nil {
		t.Eval.Write(b.Hash(), score)
	}
	return relative(score, turn)
}

// relative converts a White-perspective score to the side to move's perspective.
func relative(score Pawns, turn board.Color) Pawns {
	if turn == board.Black {
		return -score
	}
	return score
}

// smallBonuses folds in the bishop-pair, en-passant and tempo terms (spec.md 4.6.2),
// from White's perspective.
func smallBonuses(pos *board.Position) Pawns {
	const (
		bishopPairBonus = 0.3
		enPassantBonus  = 0.05
		tempoBonus      = 0.1
	)

	var score Pawns
	if pos.Pieces(board.White, board.Bishop).PopCount() >= 2 {
		score += bishopPairBonus
	}
	if pos.Pieces(board.Black, board.Bishop).PopCount() >= 2 {
		score -= bishopPairBonus
	}
	if _, ok := pos.EnPassant(); ok {
		if pos.Turn() == board.White {
			score += enPassantBonus
		} else {
			score -= enPassantBonus
		}
	}
	if pos.Turn() == board.White {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}
	return score
}
