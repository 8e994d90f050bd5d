package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/seekerror/logw"
)

// Bound represents the bound a stored score is known to be exact, or only exact under one
// side of the window.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// entry is one transposition table slot: key, score, bound kind, best line and static eval
// (spec.md §3). Laid out so the table can eventually be shared lock-free across search
// workers (spec.md §9, "TT concurrency") even though today's search is single-threaded.
type entry struct {
	key    board.ZobristHash
	line   Line
	eval   int32
	static int32
	depth  uint16
	bound  Bound
}

func (e *entry) isEmpty() bool {
	return e == nil || e.key == 0
}

// Table is a fixed-size transposition table keyed by position hash. Entries are replaced
// only when the new depth is at least as deep as the stored one (spec.md §3); a zero-key or
// empty slot is always a miss. Reads and writes are lock-free via atomic pointer swaps, so
// the layout survives a future move to a shared, multi-worker table without change.
type Table struct {
	slots []unsafe.Pointer // *entry
	mask  uint64
	used  uint64
}

// NewTable allocates a table sized to hold approximately size bytes of entries, rounded
// down to a power of two number of slots.
func NewTable(ctx context.Context, size uint64) *Table {
	n := uint64(1) << uint(63-bits.LeadingZeros64(size/32|1))
	if n == 0 {
		n = 1
	}

	logw.Infof(ctx, "Allocating %vMB transposition table with %v entries", size>>20, n)

	return &Table{
		slots: make([]unsafe.Pointer, n),
		mask:  n - 1,
	}
}

func (t *Table) index(key board.ZobristHash) uint64 {
	return (uint64(key) >> 36) & t.mask
}

func (t *Table) slot(key board.ZobristHash) *entry {
	return (*entry)(atomic.LoadPointer(&t.slots[t.index(key)]))
}

// Probe returns the entry stored at key's index, and whether it is a genuine hit (its
// stored key matches).
func (t *Table) Probe(key board.ZobristHash) (entry, bool) {
	e := t.slot(key)
	if e == nil || e.key != key {
		return entry{}, false
	}
	return *e, true
}

// LookupEval returns a usable score for (key, depth, ply, alpha, beta), or LookupFailed if
// the entry is missing, too shallow, or does not resolve the window (spec.md §4.3).
func (t *Table) LookupEval(key board.ZobristHash, depth, ply, alpha, beta int) int {
	e, ok := t.Probe(key)
	if !ok || int(e.depth) < depth {
		return LookupFailed
	}

	score := unadjustMateScore(int(e.eval), ply)
	switch {
	case e.bound == ExactBound:
		return score
	case e.bound == UpperBound && score <= alpha:
		return score
	case e.bound == LowerBound && score >= beta:
		return score
	default:
		return LookupFailed
	}
}

// Store writes (depth, score, bound, line, staticEval) into key's slot, mate-adjusting the
// score for storage, iff depth >= the slot's current depth.
func (t *Table) Store(key board.ZobristHash, depth, ply, score int, bound Bound, line Line, static int) {
	idx := t.index(key)
	addr := &t.slots[idx]

	fresh := &entry{
		key:    key,
		eval:   int32(adjustMateScore(score, ply)),
		static: int32(static),
		depth:  uint16(depth),
		bound:  bound,
		line:   line,
	}

	for {
		old := (*entry)(atomic.LoadPointer(addr))
		if old != nil && !old.isEmpty() && int(old.depth) > depth {
			return // keep: deeper existing entry
		}
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(old), unsafe.Pointer(fresh)) {
			if old == nil {
				atomic.AddUint64(&t.used, 1)
			}
			return
		}
	}
}

// Clear resets every slot to empty.
func (t *Table) Clear() {
	for i := range t.slots {
		atomic.StorePointer(&t.slots[i], nil)
	}
	atomic.StoreUint64(&t.used, 0)
}

// Size returns the table capacity in bytes.
func (t *Table) Size() uint64 {
	return uint64(len(t.slots)) * 32
}

// Used returns the utilization fraction in [0;1].
func (t *Table) Used() float64 {
	return float64(atomic.LoadUint64(&t.used)) / float64(len(t.slots))
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%vMB @ %v%%]", t.Size()>>20, int(100*t.Used()))
}

// adjustMateScore converts a score relative to the current node into the absolute form
// stored in the table, so a mate found deep in one branch and shallow in another compares
// correctly once both are corrected back by their own ply (spec.md §3).
func adjustMateScore(score, ply int) int {
	if !IsMateScore(score) {
		return score
	}
	if score > 0 {
		return score + ply
	}
	return score - ply
}

// unadjustMateScore is the inverse of adjustMateScore, applied on lookup.
func unadjustMateScore(score, ply int) int {
	if !IsMateScore(score) {
		return score
	}
	if score > 0 {
		return score - ply
	}
	return score + ply
}
