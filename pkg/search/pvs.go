package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Move-ordering priority buckets (spec.md 4.8.2 step 7): the hash move always comes
// first, then winning/equal captures ranked by SEE, then the two killer slots, then
// losing captures (kept above quiet moves so a desperado still gets tried before passive
// moves), then quiet moves ranked by relative history.
const (
	priorityHash      board.MovePriority = 32000
	priorityWinBase   board.MovePriority = 20000
	priorityKiller1   board.MovePriority = 15000
	priorityKiller2   board.MovePriority = 14500
	priorityLoseBase  board.MovePriority = 5000
	priorityLoseFloor board.MovePriority = 3000
	// priorityQuietScale maps historyTable.Get's [0;historyMax] range down under
	// priorityLoseFloor, so a perfect history score still ranks below any capture.
	priorityQuietScale = historyMax/int32(priorityLoseFloor-1) + 1
)

// Search tuning constants for the extensions, pruning and reductions of 4.8.2 step 8.
const (
	nullMoveMinDepth     = 3
	nullMoveReduction    = 2 // R
	razorMaxDepth        = 3
	razorMarginPerPly    = eval.Pawns(2.5)
	futilityMaxDepth     = 2
	futilityMarginPerPly = eval.Pawns(1.0)
	lmrMinDepth          = 3
	lmrMinMoveIndex      = 4
	lmrReduction         = 2
)

// PVS implements principal variation search: the first move of every node is searched
// with the full window, later siblings with a zero-width window and re-searched at full
// width only if they unexpectedly raise alpha (spec.md 4.8.2). Grounded on the teacher's
// own alphabeta.go (Context/Exploration/QuietSearch wiring, TT probe/store shape) and its
// earlier pvs.go (the null-window re-search idiom), extended with the mate-distance
// pruning, check/recapture/one-reply extensions, null-move pruning, futility pruning,
// razoring and late-move reduction that spec.md 4.8.2 adds on top of plain PVS.
//
// eval.Score has no integer "+1" unit the way classic centipawn PVS does, so the
// null-window probes below use a zero-width (alpha, alpha) window rather than the
// classic (alpha, alpha+1): both produce the same fail-high/fail-low branch, since all
// that matters is whether the child's negated score is strictly greater than alpha.
type PVS struct {
	Explore Exploration
	Eval    QuietSearch
	Static  Evaluator
}

func (p PVS) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{
		explore: fullIfNotSet(p.Explore),
		eval:    p.Eval,
		static:  p.Static,
		tt:      sctx.TT,
		noise:   sctx.Noise,
		killers: &sctx.killers,
		history: &sctx.history,
		b:       b,
	}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, moves := run.search(ctx, 0, depth, low, high, true, sctx.Ponder)
	if contextx.IsCancelled(ctx) {
		return run.nodes, eval.ZeroScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runPVS struct {
	explore Exploration
	eval    QuietSearch
	static  Evaluator
	tt      TranspositionTable
	noise   eval.Random
	killers *killerTable
	history *historyTable
	b       *board.Board
	nodes   uint64
}

// search returns the positive score for the side to move at b, and its principal
// variation. ply counts plies from the root of this Search call, used to index the
// killer table; depth is the remaining search depth, possibly already extended or
// reduced by the caller. ponder, if non-empty, restricts exploration at this node to its
// first move, consuming one entry per ply down that single line.
func (m *runPVS) search(ctx context.Context, ply, depth int, alpha, beta eval.Score, pv bool, ponder []board.Move) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}

	// (2) Mate-distance pruning: a node can never deliver better than immediate mate, nor
	// suffer worse than already being mated, so the window never needs to extend past that.

	alpha = eval.Max(alpha, eval.MatedInScore(0))
	beta = eval.Min(beta, eval.MateInScore(1))
	if !alpha.Less(beta) {
		return alpha, nil
	}

	turn := m.b.Turn()
	pos := m.b.Position()
	inCheck := pos.IsChecked(turn)

	// (3) Check extension.

	if inCheck {
		depth++
	}

	hash := m.b.Hash()

	// (4) TT probe.

	var best board.Move
	if bound, d, score, mv, ok := m.tt.Read(hash); ok {
		best = mv
		if d >= depth {
			switch {
			case bound == ExactBound:
				return score, nil
			case bound == LowerBound && !score.Less(beta):
				return score, nil
			case bound == UpperBound && !alpha.Less(score):
				return score, nil
			}
		}
	}

	// (5) Horizon: hand off to quiescence.

	if depth <= 0 {
		qctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
		nodes, score := m.eval.QuietSearch(ctx, qctx, m.b)
		m.nodes += nodes
		m.tt.Write(hash, ExactBound, m.b.Ply(), 0, score, board.Move{})
		return score, nil
	}

	m.nodes++

	origAlpha := alpha

	// (6) Null-move pruning: skip a move entirely and see if the opponent still cannot
	// reach beta even with a free tempo. Disabled in check, at PV nodes, and once material
	// is reduced to pawns and king, where zugzwang makes the null move unsound.

	if !pv && !inCheck && depth >= nullMoveMinDepth && hasNonPawnMaterial(pos, turn) {
		reduced := depth - 1 - nullMoveReduction
		if reduced < 0 {
			reduced = 0
		}

		m.b.PushNullMove()
		score, _ := m.search(ctx, ply+1, reduced, beta.Negate(), beta.Negate(), false, nil)
		score = eval.IncrementMateDistance(score).Negate()
		m.b.PopNullMove()

		if contextx.IsCancelled(ctx) {
			return eval.ZeroScore, nil
		}
		if !score.Less(beta) {
			return beta, nil
		}
	}

	// Static evaluation, used only to gate futility pruning and razoring below: both are
	// shallow-depth heuristics and both are skipped once the window enters the mate range.

	var static eval.Pawns
	haveStatic := !inCheck && alpha.IsHeuristic() && m.static != nil && depth <= razorMaxDepth
	if haveStatic {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
		static = m.static.Evaluate(ctx, sctx, m.b)
	}

	// (7) Move ordering: hash move, then winning/equal captures by SEE, then killers,
	// then losing captures, then quiet moves by relative history.

	lastTo, lastWasCapture := m.lastCaptureSquare()
	k1, k2 := m.killers.Get(ply)

	priority := func(mv board.Move) board.MovePriority {
		switch {
		case best.Equals(mv):
			return priorityHash
		case mv.IsCapture() || mv.IsPromotion():
			see := board.MovePriority(100 * eval.SEE(pos, turn, mv))
			if see >= 0 {
				return priorityWinBase + see
			}
			p := priorityLoseBase + see
			if p < priorityLoseFloor {
				p = priorityLoseFloor
			}
			return p
		case k1.Equals(mv):
			return priorityKiller1
		case k2.Equals(mv):
			return priorityKiller2
		default:
			return board.MovePriority(m.history.Get(turn, mv) / priorityQuietScale)
		}
	}

	_, explore := m.explore(ctx, m.b)
	if len(ponder) > 0 {
		want := ponder[0]
		explore = want.Equals
	}

	moves := board.NewMoveList(pos.LegalMoves(board.All), priority)
	oneReply := moves.Size() == 1

	hasLegalMove := false
	cutoff := false
	searched := 0
	var pvMoves []board.Move

	for {
		move, ok := moves.Next()
		if !ok {
			break
		}

		quiet := !move.IsCapture() && !move.IsPromotion()

		// Futility pruning: a quiet move this far behind is not going to catch up.
		// Never prunes the first move at a node, so a position is never left without any
		// move having actually been searched.
		if hasLegalMove && quiet && haveStatic && alpha.IsHeuristic() && depth <= futilityMaxDepth {
			if static+futilityMarginPerPly*eval.Pawns(depth) <= alpha.Pawns {
				continue
			}
		}

		if !m.b.PushMove(move) {
			continue // not legal; defensive, the generator already filters
		}
		hasLegalMove = true

		if !explore(move) {
			m.b.PopMove()
			continue
		}

		givesCheck := m.b.Position().IsChecked(m.b.Turn())

		ext := 0
		switch {
		case lastWasCapture && move.IsCapture() && move.To == lastTo:
			ext = 1 // recapture extension
		case oneReply:
			ext = 1 // one-reply extension
		}

		reduction := 0
		if quiet && !givesCheck && !inCheck {
			if haveStatic && alpha.IsHeuristic() && depth <= razorMaxDepth && static+razorMarginPerPly*eval.Pawns(depth) <= alpha.Pawns {
				reduction = 1 // razoring: verify cheaply before trusting a fail-low
			}
			if depth >= lmrMinDepth && searched >= lmrMinMoveIndex {
				reduction = lmrReduction // late-move reduction dominates when both apply
			}
		}

		fullDepth := depth - 1 + ext
		newDepth := fullDepth - reduction
		if newDepth < 0 {
			newDepth = 0
		}

		var childPonder []board.Move
		if len(ponder) > 0 && ponder[0].Equals(move) {
			childPonder = ponder[1:]
		}

		var score eval.Score
		var rem []board.Move
		if searched == 0 {
			score, rem = m.search(ctx, ply+1, newDepth, beta.Negate(), alpha.Negate(), pv, childPonder)
			score = eval.IncrementMateDistance(score).Negate()
		} else {
			score, rem = m.search(ctx, ply+1, newDepth, alpha.Negate(), alpha.Negate(), false, childPonder)
			score = eval.IncrementMateDistance(score).Negate()

			if alpha.Less(score) {
				if newDepth < fullDepth {
					score, rem = m.search(ctx, ply+1, fullDepth, alpha.Negate(), alpha.Negate(), false, childPonder)
					score = eval.IncrementMateDistance(score).Negate()
				}
				if alpha.Less(score) && score.Less(beta) {
					score, rem = m.search(ctx, ply+1, fullDepth, beta.Negate(), alpha.Negate(), pv, childPonder)
					score = eval.IncrementMateDistance(score).Negate()
				}
			}
		}

		m.b.PopMove()
		searched++

		if alpha.Less(score) {
			alpha = score
			pvMoves = append([]board.Move{move}, rem...)
		} else if quiet {
			m.history.Penalize(turn, move, depth)
		}

		if !alpha.Less(beta) {
			if quiet {
				m.killers.Add(ply, move)
				m.history.Reward(turn, move, depth)
			}
			cutoff = true
			break
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MatedInScore(0), nil
		}
		return eval.ZeroScore, nil
	}

	bound := UpperBound
	switch {
	case cutoff:
		bound = LowerBound
	case origAlpha.Less(alpha):
		bound = ExactBound
	}
	m.tt.Write(hash, bound, m.b.Ply(), depth, alpha, firstOrNone(pvMoves))

	return alpha, pvMoves
}

// lastCaptureSquare returns the destination square of the previous move and true, iff
// that move was a capture, for the recapture extension.
func (m *runPVS) lastCaptureSquare() (board.Square, bool) {
	last, ok := m.b.LastMove()
	if !ok || !last.IsCapture() {
		return board.ZeroSquare, false
	}
	return last.To, true
}

func hasNonPawnMaterial(pos *board.Position, turn board.Color) bool {
	return pos.Pieces(turn, board.Knight) != 0 ||
		pos.Pieces(turn, board.Bishop) != 0 ||
		pos.Pieces(turn, board.Rook) != 0 ||
		pos.Pieces(turn, board.Queen) != 0
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

func fullIfNotSet(p Exploration) Exploration {
	if p == nil {
		return FullExploration
	}
	return p
}
