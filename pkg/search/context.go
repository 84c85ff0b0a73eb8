package search

import (
	"context"
	"errors"
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// ErrHalted is returned by a Search implementation when it was cancelled via Halt, or the
// parent context was cancelled, before it could complete its current depth normally.
var ErrHalted = errors.New("search halted")

// Search is a fixed-depth search algorithm. Given a board and a remaining depth in plies,
// it returns the number of nodes visited and the score and principal variation from the
// perspective of the side to move.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// maxPly bounds the move-ordering tables. A search exceeding it simply stops benefiting
// from killer/history ordering at the deeper plies; it is not a hard search limit.
const maxPly = 128

// Context carries the state shared across every ply of a single analysis run: the
// alpha-beta window, the transposition table, evaluation noise, and the move-ordering
// heuristics (killer moves, history scores) that iterative deepening seeds from one
// depth to improve ordering at the next. A single Context is constructed once per
// analysis and reused, depth after depth, by the iterative deepening harness.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random

	// Ponder restricts move generation at the root ply to these moves, if non-empty.
	// Used to compute a per-move score breakdown (e.g. the console driver's "analyze"
	// output), not UCI's searchmoves, which applies to the whole search.
	Ponder []board.Move

	killers killerTable
	history historyTable
}

// killerTable remembers, per ply, the most recent quiet moves that caused a beta cutoff.
// Killer moves are tried early in move ordering since a move that refuted a sibling line
// is often strong in this one too.
type killerTable struct {
	moves [maxPly][2]board.Move
}

func (k *killerTable) Add(ply int, m board.Move) {
	if ply < 0 || ply >= maxPly || k.moves[ply][0].Equals(m) {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *killerTable) Get(ply int) (board.Move, board.Move) {
	if ply < 0 || ply >= maxPly {
		return board.Move{}, board.Move{}
	}
	return k.moves[ply][0], k.moves[ply][1]
}

// historyMax is the ceiling the relative history heuristic normalizes against.
const historyMax = 1 << 16

// historyDepreciation periodically scales down both counters of every entry, so that a
// move's historical success rate reflects mostly recent searches rather than every
// cutoff ever recorded over a long game.
const historyDepreciation = 2

// historyCounts tracks, for one (piece, destination) move shape, how often it was tried
// at a cutoff-causing node (attempts) and how often it actually caused the cutoff
// (success).
type historyCounts struct {
	success, attempts uint32
}

// historyTable implements the relative history heuristic (spec: 4.8.4): indexed by moved
// piece and destination square, it tracks a success/attempts ratio for quiet moves that
// reach a beta cutoff, used to order quiet moves that are not killers.
type historyTable struct {
	counts [board.NumColors][board.NumPieces][board.NumSquares]historyCounts
}

// Reward records that m caused a beta cutoff at the given remaining depth.
func (h *historyTable) Reward(turn board.Color, m board.Move, depth int) {
	c := &h.counts[turn][m.Piece][m.To]
	c.success += uint32(depth * depth)
	c.attempts += uint32(depth * depth)
	h.depreciate(c)
}

// Penalize records that m was tried, at a node that eventually cut off on another move,
// without itself raising alpha.
func (h *historyTable) Penalize(turn board.Color, m board.Move, depth int) {
	c := &h.counts[turn][m.Piece][m.To]
	c.attempts += uint32(depth * depth)
	h.depreciate(c)
}

func (h *historyTable) depreciate(c *historyCounts) {
	if c.attempts > historyMax {
		c.success /= historyDepreciation
		c.attempts /= historyDepreciation
	}
}

// Get returns the move's relative-history score, in [0;historyMax], for ordering.
func (h *historyTable) Get(turn board.Color, m board.Move) int32 {
	c := h.counts[turn][m.Piece][m.To]
	if c.attempts == 0 {
		return 0
	}
	return int32(uint64(c.success) * historyMax / uint64(c.attempts))
}
