package search

import (
	"context"
	"sync/atomic"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/hashtable"
)

// Bound classifies what a stored score represents relative to the alpha-beta window the
// search used when it was computed.
type Bound uint8

const (
	// ExactBound scores are the true minimax value of the position.
	ExactBound Bound = iota
	// LowerBound scores failed high: the true value is at least this good.
	LowerBound
	// UpperBound scores failed low: the true value is at most this good.
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	default:
		return "invalid"
	}
}

// TranspositionTable caches search results keyed by position hash, so that transposed
// move orders reaching the same position do not need to be re-searched from scratch.
// Because eval.Score encodes mate distance relative to the node it was computed at, not
// the search root, entries can be read back unmodified regardless of how the position was
// reached.
type TranspositionTable interface {
	Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool)
	Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool

	// NewGeneration marks the start of a new search. Entries written under a stale
	// generation are replaceable regardless of depth, so a long-running table does not
	// get stuck favoring deep results from a game phase long past.
	NewGeneration()

	Size() uint64
	Used() float64
}

// TranspositionTableFactory constructs a TranspositionTable sized to approximately size
// bytes.
type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// ttEntrySize is the approximate number of bytes occupied per table bucket, including the
// atomic pointer slot and entry allocation. Used only for sizing the table from a byte
// budget; never load-bearing for correctness.
const ttEntrySize = 48

type ttEntry struct {
	hash       board.ZobristHash
	bound      Bound
	generation uint8
	ply        uint16
	depth      uint16
	score      eval.Score
	from, to   board.Square
	promotion  board.Piece
}

func (e ttEntry) Key() uint64 {
	return uint64(e.hash)
}

// val ranks entries for replacement purposes: deeper searches, and results further from
// the root, are more expensive to recompute and so are kept preferentially.
func (e ttEntry) val() int {
	return int(e.ply) + int(e.depth)<<1
}

func ttReplace(old, new ttEntry) bool {
	if old.hash != new.hash {
		return true // bucket collision: always take the newer position
	}
	if old.generation != new.generation {
		return true // entry aged out of the current search: freely replaceable
	}
	if new.bound == ExactBound && old.bound != ExactBound {
		return true
	}
	return new.val() >= old.val()
}

type table struct {
	t          *hashtable.Table[ttEntry]
	generation atomic.Uint32
}

// NewTranspositionTable returns a TranspositionTable sized to approximately size bytes.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	return &table{t: hashtable.New[ttEntry](size, ttEntrySize, ttReplace)}
}

func (t *table) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	e, ok := t.t.Read(uint64(hash))
	if !ok {
		return ExactBound, 0, eval.ZeroScore, board.Move{}, false
	}
	return e.bound, int(e.depth), e.score, board.Move{From: e.from, To: e.to, Promotion: e.promotion}, true
}

func (t *table) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
	e := ttEntry{
		hash:       hash,
		bound:      bound,
		generation: uint8(t.generation.Load()),
		ply:        uint16(ply),
		depth:      uint16(depth),
		score:      score,
		from:       move.From,
		to:         move.To,
		promotion:  move.Promotion,
	}
	return t.t.Write(e)
}

func (t *table) NewGeneration() {
	t.generation.Add(1)
}

func (t *table) Size() uint64 {
	return t.t.Size()
}

func (t *table) Used() float64 {
	return t.t.Used()
}

// NoTranspositionTable is a no-op TranspositionTable, used when hashing is disabled.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	return ExactBound, 0, eval.ZeroScore, board.Move{}, false
}

func (NoTranspositionTable) Write(board.ZobristHash, Bound, int, int, eval.Score, board.Move) bool {
	return false
}

func (NoTranspositionTable) NewGeneration() {}

func (NoTranspositionTable) Size() uint64 {
	return 0
}

func (NoTranspositionTable) Used() float64 {
	return 0
}

// WriteFilter reports whether a write of the given depth to the transposition table
// should be allowed through.
type WriteFilter func(depth int) bool

// WriteLimited wraps a TranspositionTable, rejecting writes that Filter disapproves of.
// Used to keep shallow, high-volume writes (e.g. from quiescence search) from evicting
// deeper, more valuable entries.
type WriteLimited struct {
	Filter WriteFilter
	TT     TranspositionTable
}

func (w WriteLimited) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	return w.TT.Read(hash)
}

func (w WriteLimited) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
	if !w.Filter(depth) {
		return false
	}
	return w.TT.Write(hash, bound, ply, depth, score, move)
}

func (w WriteLimited) NewGeneration() {
	w.TT.NewGeneration()
}

func (w WriteLimited) Size() uint64 {
	return w.TT.Size()
}

func (w WriteLimited) Used() float64 {
	return w.TT.Used()
}

// NewMinDepthTranspositionTable returns a TranspositionTableFactory that rejects writes
// below the given depth.
func NewMinDepthTranspositionTable(min int) TranspositionTableFactory {
	return func(ctx context.Context, size uint64) TranspositionTable {
		return WriteLimited{
			Filter: func(depth int) bool { return depth >= min },
			TT:     NewTranspositionTable(ctx, size),
		}
	}
}
