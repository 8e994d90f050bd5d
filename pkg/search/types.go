// Package search implements the engine's search core: iterative deepening alpha-beta with
// a transposition table, move ordering, quiescence search and the pruning/extension
// policies that keep the tree tractable.
package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
)

// Score bounds. POS_INF/NEG_INF bracket every real evaluation; NULL_SCORE is returned by an
// aborted search frame and must never be mistaken for a real score; LOOKUP_FAILED is the
// transposition table's "not usable" sentinel. CHECKMATE is the mate score at ply 0; actual
// mate scores are this value minus the mating ply.
const (
	PosInf       = 32001
	NegInf       = -PosInf
	NullScore    = 32002
	Checkmate    = 32000
	LookupFailed = 32003

	// MaxPly bounds the search stack and the ply-indexed killer/static-eval arrays.
	MaxPly = 64
)

// IsMateScore reports whether s represents a forced mate (for or against) rather than a
// material/positional evaluation.
func IsMateScore(s int) bool {
	return abs(s) > Checkmate-1000
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ErrHalted is the error value for a search cancelled before completing. No function in
// this package returns it: a cancelled frame returns NullScore and unwinds.
var ErrHalted = errors.New("search: halted")

// NodeKind distinguishes the different recursive entry points that visit a ply, for
// diagnostics. The null-move re-entrancy guard uses search's nullOK argument, not the kind.
type NodeKind uint8

const (
	NormalNode NodeKind = iota
	QuiescenceNode
	NullMoveNode
	RazoringNode
	ProbCutNode
	IIDNode
	LMRNode
)

// NodeClass records how a node resolved relative to its window, for diagnostics.
type NodeClass uint8

const (
	UnclassifiedNode NodeClass = iota
	PVNode
	CutNode
	AllNode
	TTCutNode
	PrunedNode
)

// frame is the transient per-ply state the source keeps in an explicit node tree
// (spec.md §9, "Cyclic Node graph"); here it is a flat array indexed by ply, with
// "grandparent static eval" simply stack[ply-2].
type frame struct {
	kind       NodeKind
	class      NodeClass
	static     int
	hasStatic  bool
	extensions int
	nullOK     bool
}

// Line is a principal variation: a finite, possibly empty, ordered sequence of moves from
// a node. A Line with a nil/empty head represents an all-node result and must not be exposed
// as a "best move" outside the search.
type Line []board.Move

// Prepend returns a new Line with m at the head, followed by rest. Does not mutate rest.
func Prepend(m board.Move, rest Line) Line {
	out := make(Line, 0, len(rest)+1)
	out = append(out, m)
	out = append(out, rest...)
	return out
}

func (l Line) String() string {
	return board.PrintMoves(l)
}

// Head returns the first move of the line, or the zero Move if empty.
func (l Line) Head() board.Move {
	if len(l) == 0 {
		return board.Move{}
	}
	return l[0]
}

// PV represents the result of one completed root search: the principal variation, its
// multipv index, score and search statistics, reported once per finished depth.
type PV struct {
	Depth     int
	SelDepth  int
	MultiPV   int
	Score     int
	Mate      int // non-zero: distance to mate, signed; 0 if Score is not a mate score
	Nodes     uint64
	Line      Line
	Time      time.Duration
	HashFull  float64
}

func (p PV) String() string {
	if p.Mate != 0 {
		return fmt.Sprintf("depth=%d seldepth=%d multipv=%d mate=%d nodes=%d nps=%.0f hashfull=%.0f%% time=%v pv=%v",
			p.Depth, p.SelDepth, p.MultiPV, p.Mate, p.Nodes, p.nps(), p.HashFull*100, p.Time, p.Line)
	}
	return fmt.Sprintf("depth=%d seldepth=%d multipv=%d score=%d nodes=%d nps=%.0f hashfull=%.0f%% time=%v pv=%v",
		p.Depth, p.SelDepth, p.MultiPV, p.Score, p.Nodes, p.nps(), p.HashFull*100, p.Time, p.Line)
}

func (p PV) nps() float64 {
	secs := p.Time.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(p.Nodes) / secs
}
