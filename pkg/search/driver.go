package search

import (
	"context"
	"sync"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	uatomic "go.uber.org/atomic"
)

// Options hold the dynamic, per-search parameters the caller may change on any particular
// search (spec.md §6, "Inputs to the search"): how deep and how long to look, and whether
// the transposition table should be reset before the search begins.
type Options struct {
	DepthLimit  lang.Optional[uint]
	TimeControl lang.Optional[TimeControl]
	ClearHash   bool
}

// Launcher starts iterative-deepening searches from a position, reporting one PV per
// completed depth. Mirrors the teacher's searchctl.Launcher shape.
type Launcher interface {
	Launch(ctx context.Context, b *board.Board, tt *Table, ev eval.Evaluator, cfg Config, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller halt an in-flight search and retrieve its last completed result.
type Handle interface {
	Halt() PV
}

// Iterative is the search driver (C7): iterative deepening starting at depth 1, with
// aspiration windows and MultiPV, terminated by the abort flag, an elapsed time budget or
// a configured max depth.
type Iterative struct{}

func (Iterative) Launch(ctx context.Context, b *board.Board, tt *Table, ev eval.Evaluator, cfg Config, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.run(ctx, b, tt, ev, cfg, opt, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	mu   sync.Mutex
	last PV
}

func (h *handle) Halt() PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *handle) run(ctx context.Context, b *board.Board, tt *Table, ev eval.Evaluator, cfg Config, opt Options, out chan PV) {
	defer h.init.Close()
	defer close(out)

	abort := uatomic.NewBool(false)
	go func() {
		<-h.quit.Closed()
		abort.Store(true)
	}()

	if opt.ClearHash {
		logw.Infof(ctx, "Clearing transposition table before search")
		tt.Clear()
	}

	soft, useSoft := enforceTimeControl(h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	killers := &Killers{}
	hist := &History{}

	depth := 1
	prevScore := 0
	begin := time.Now()

	for !h.quit.IsClosed() {
		if contextx.IsCancelled(wctx) {
			return
		}
		start := time.Now()

		lines, score, nodes, selDepth, ok := runDepth(b, tt, ev, cfg, killers, hist, abort, depth, prevScore)
		if !ok {
			return // aborted mid-depth: discard partial result, keep the last reported PV
		}

		for i, line := range lines {
			pv := PV{
				Depth:    depth,
				SelDepth: selDepth,
				MultiPV:  i + 1,
				Score:    score[i],
				Nodes:    nodes,
				Line:     line,
				Time:     time.Since(start),
				HashFull: tt.Used(),
			}
			if IsMateScore(score[i]) {
				pv.Mate = mateDistance(score[i])
			}

			logw.Debugf(ctx, "Searched %v: %v", b.Position(), pv)

			h.mu.Lock()
			h.last = pv
			h.mu.Unlock()

			select {
			case <-out:
			default:
			}
			out <- pv
		}

		h.init.Close()
		prevScore = score[0]

		if limit, set := opt.DepthLimit.V(); set && uint(depth) >= limit {
			return
		}
		if md := mateDistance(score[0]); md != 0 && abs(md) <= depth {
			return // forced mate proven within a full-width search: exact result
		}
		if useSoft && time.Since(begin) > soft {
			return
		}
		depth++
	}
}

// mateDistance returns the signed number of moves to mate if score is a mate score, else 0.
func mateDistance(score int) int {
	if !IsMateScore(score) {
		return 0
	}
	plies := Checkmate - abs(score)
	moves := (plies + 1) / 2
	if score < 0 {
		return -moves
	}
	return moves
}

// runDepth runs one iteration of MultiPV root search at depth, with aspiration windows
// around the previous iteration's score. Returns false if aborted mid-iteration.
func runDepth(b *board.Board, tt *Table, ev eval.Evaluator, cfg Config, killers *Killers, hist *History, abort *uatomic.Bool, depth, prevScore int) ([]Line, []int, uint64, int, bool) {
	n := cfg.MultiPV
	if n < 1 {
		n = 1
	}

	var lines []Line
	var scores []int
	var exclude []board.Move

	var totalNodes uint64
	maxSelDepth := 0

	for pv := 0; pv < n; pv++ {
		w := NewWorker(b.Fork(), ev, tt, killers, hist, cfg, abort)
		w.iterationDepth = depth
		w.rootExclude = exclude

		score, line := aspirationSearch(w, depth, prevScore, cfg)
		if abort.Load() {
			return nil, nil, 0, 0, false
		}

		totalNodes += w.nodes
		if w.selDepth > maxSelDepth {
			maxSelDepth = w.selDepth
		}

		if len(line) == 0 {
			break // no further distinct root move to report
		}

		lines = append(lines, line)
		scores = append(scores, score)
		exclude = append(exclude, line.Head())
	}

	if len(lines) == 0 {
		return nil, nil, 0, 0, false
	}
	return lines, scores, totalNodes, maxSelDepth, true
}

// aspirationSearch opens a narrow window around the previous score and widens the failing
// side by AspirationWidenFactor until the result falls inside (spec.md §4.7).
func aspirationSearch(w *Worker, depth, prevScore int, cfg Config) (int, Line) {
	if depth < 2 {
		return w.search(0, depth, NegInf, PosInf, true)
	}

	window := cfg.AspirationWindow
	alpha := prevScore - window
	beta := prevScore + window

	for {
		score, line := w.search(0, depth, alpha, beta, true)
		if w.aborted() {
			return score, line
		}
		switch {
		case score <= alpha:
			alpha = prevScore - (prevScore-alpha)*cfg.AspirationWidenFactor
			if alpha < NegInf {
				alpha = NegInf
			}
		case score >= beta:
			beta = prevScore + (beta-prevScore)*cfg.AspirationWidenFactor
			if beta > PosInf {
				beta = PosInf
			}
		default:
			return score, line
		}
	}
}

func enforceTimeControl(h *handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.quit.Close()
	})
	return soft, true
}
