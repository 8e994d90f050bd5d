package search

import (
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	uatomic "go.uber.org/atomic"
)

// Worker owns every piece of mutable state touched by one search: the board, the
// transposition table, move-ordering heuristics and the per-ply frame stack. This replaces
// the source's process-wide statics (spec.md §9, "Global mutable state") with a value
// passed by reference through search and qsearch. A Worker is used for exactly one root
// search and discarded afterwards; the board it wraps should be an exclusive fork.
type Worker struct {
	b   *board.Board
	ev  eval.Evaluator
	tt  *Table
	cfg Config

	killers *Killers
	hist    *History

	abort *uatomic.Bool

	nodes          uint64
	selDepth       int
	iterationDepth int

	rootExclude []board.Move

	stack [MaxPly + 1]frame
}

// NewWorker constructs a Worker sharing tt/killers/history across iterations of the same
// iterative-deepening driver, so move ordering improves from one depth to the next.
func NewWorker(b *board.Board, ev eval.Evaluator, tt *Table, killers *Killers, hist *History, cfg Config, abort *uatomic.Bool) *Worker {
	return &Worker{b: b, ev: ev, tt: tt, cfg: cfg, killers: killers, hist: hist, abort: abort}
}

func (w *Worker) aborted() bool {
	return w.abort != nil && w.abort.Load()
}

func (w *Worker) evaluate() int {
	return w.ev.Evaluate(w.b.Position(), w.b.Turn())
}

// staticEvalAt returns the static evaluation at the current position, preferring a cached
// transposition-table value over a fresh evaluation (spec.md §4.5 step 5, §4.6 "Static
// evaluation").
func (w *Worker) staticEvalAt(ply int) int {
	if e, ok := w.tt.Probe(w.b.Hash()); ok {
		return int(e.static)
	}
	return w.evaluate()
}

// improvingAt returns whether the side to move is "improving": not in check,
// and its static eval is at least as good as two plies ago (spec.md §4.6). The in-check
// case never improves and leaves early pruning disabled.
func (w *Worker) improvingAt(ply int, inCheck bool) bool {
	if inCheck {
		return false
	}
	if ply < 2 || !w.stack[ply-2].hasStatic {
		return true
	}
	return w.stack[ply].static >= w.stack[ply-2].static
}

// maxExtensions bounds check/passed-pawn extensions to the depth of the current iteration,
// per spec.md §4.6 ("extensions < MAX_EXTENSIONS (= iteration depth)").
func (w *Worker) maxExtensions() int {
	return w.iterationDepth
}

func isQuietMove(m board.Move) bool {
	return m.IsQuiet()
}

// predictsCutoff reports whether a stored bound at the given corrected score would itself
// cause a beta cutoff, used to decide whether to refresh killer/history on a TT hit.
func predictsCutoff(bound Bound, score, beta int) bool {
	return bound == LowerBound && score >= beta
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
