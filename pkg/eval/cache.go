package eval

import (
	"sync/atomic"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/hashtable"
)

// pawnEntry caches the pawn-structure term for one pawn hash, so positions that only
// differ in piece play (not pawn structure) reuse the same result. The term also reads
// non-pawn pieces (blocked stop squares, defended and attacked pieces), so a hit returns
// the value computed for whichever position last stored that pawn hash.
type pawnEntry struct {
	hash       board.PawnHash
	score      Pawns
	generation uint8
}

func (e pawnEntry) Key() uint64 {
	return uint64(e.hash)
}

const pawnEntrySize = 24

// PawnCache caches evaluatePawns results, keyed by board.PawnHash.
type PawnCache struct {
	t          *hashtable.Table[pawnEntry]
	generation atomic.Uint32
}

// NewPawnCache returns a PawnCache sized to approximately size bytes.
func NewPawnCache(size uint64) *PawnCache {
	return &PawnCache{t: hashtable.New[pawnEntry](size, pawnEntrySize, pawnEntryReplace)}
}

func pawnEntryReplace(old, new pawnEntry) bool {
	return true // single-term, cheap to recompute: always prefer the fresher value
}

// NewGeneration marks the start of a new search.
func (c *PawnCache) NewGeneration() {
	c.generation.Add(1)
}

// Evaluate returns the pawn structure term for pos, computing and caching it on a miss.
func (c *PawnCache) Evaluate(pos *board.Position, hash board.PawnHash) Pawns {
	if e, ok := c.t.Read(uint64(hash)); ok {
		return e.score
	}
	score := evaluatePawns(pos)
	c.t.Write(pawnEntry{hash: hash, score: score, generation: uint8(c.generation.Load())})
	return score
}

// Size returns the size of the cache in bytes.
func (c *PawnCache) Size() uint64 {
	return c.t.Size() * pawnEntrySize
}

// Used returns the cache's utilization as a fraction in [0;1].
func (c *PawnCache) Used() float64 {
	return c.t.Used()
}

// evalEntry caches a position's full static evaluation, keyed by the position's full
// Zobrist hash. Unlike the transposition table, this never depends on search depth or
// window: a hit is always directly usable.
type evalEntry struct {
	hash       board.ZobristHash
	score      Pawns
	generation uint8
}

func (e evalEntry) Key() uint64 {
	return uint64(e.hash)
}

const evalEntrySize = 24

// EvalCache caches full static evaluations, keyed by board.ZobristHash.
type EvalCache struct {
	t          *hashtable.Table[evalEntry]
	generation atomic.Uint32
}

// NewEvalCache returns an EvalCache sized to approximately size bytes.
func NewEvalCache(size uint64) *EvalCache {
	return &EvalCache{t: hashtable.New[evalEntry](size, evalEntrySize, evalEntryReplace)}
}

func evalEntryReplace(old, new evalEntry) bool {
	if old.hash != new.hash {
		return true
	}
	return old.generation != new.generation
}

// NewGeneration marks the start of a new search.
func (c *EvalCache) NewGeneration() {
	c.generation.Add(1)
}

// Read returns the cached score for hash, if present. The entry's generation is not
// checked: entries written before the latest NewGeneration are returned as well.
func (c *EvalCache) Read(hash board.ZobristHash) (Pawns, bool) {
	e, ok := c.t.Read(uint64(hash))
	if !ok {
		return 0, false
	}
	return e.score, true
}

// Write stores score for hash under the cache's current generation.
func (c *EvalCache) Write(hash board.ZobristHash, score Pawns) {
	c.t.Write(evalEntry{hash: hash, score: score, generation: uint8(c.generation.Load())})
}

// Size returns the size of the cache in bytes.
func (c *EvalCache) Size() uint64 {
	return c.t.Size() * evalEntrySize
}

// Used returns the cache's utilization as a fraction in [0;1].
func (c *EvalCache) Used() float64 {
	return c.t.Used()
}
