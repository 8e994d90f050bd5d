package search

import (
	"time"

	"github.com/corvidchess/corvid/pkg/board"
)

// Config is the immutable set of tunables installed at construction and shared by every
// search launched from an Engine. It replaces the source's process-wide configuration
// statics (spec.md §9, "Global mutable state") with a value passed by reference.
type Config struct {
	// MultiPV is the number of distinct root lines to report. 1 == single best line.
	MultiPV int

	// IIDDepthReduction is the depth cut applied by internal iterative deepening.
	IIDDepthReduction int
	// ProbCutDepthReduction is the depth cut applied by ProbCut, and the minimum depth
	// above which ProbCut is attempted.
	ProbCutDepthReduction int
	// VerificationMinDepth is the minimum depth for treating a null-move result as final
	// without a verification re-search. Carried per spec.md §6; no verification search is
	// implemented (spec.md §9, "Null-move zugzwang" open question), so this is informational.
	VerificationMinDepth int
	// ShallowDepthThreshold bounds late-move pruning to shallow depths.
	ShallowDepthThreshold int

	// LMRMinThreshold gates whether late-move reduction is attempted at all: a move index
	// must exceed this before LMR is considered.
	LMRMinThreshold int
	// LMRPercentage scales the base ln(depth)*ln(index)/2-1 reduction table, in percent.
	// 100 reproduces the base formula unmodified.
	LMRPercentage int

	// AspirationWindow is the initial half-width of the aspiration window around the prior
	// iteration's score.
	AspirationWindow int
	// AspirationWidenFactor multiplies the failing half of the window on a re-search.
	AspirationWidenFactor int
}

// DefaultConfig returns the tunables named in spec.md §6, with reasonable defaults for the
// values the spec leaves as open tuning knobs.
func DefaultConfig() Config {
	return Config{
		MultiPV:               1,
		IIDDepthReduction:     5,
		ProbCutDepthReduction: 4,
		VerificationMinDepth:  6,
		ShallowDepthThreshold: 8,
		LMRMinThreshold:       4,
		LMRPercentage:         100,
		AspirationWindow:      25,
		AspirationWidenFactor: 4,
	}
}

// TimeControl holds the remaining clock for both sides plus moves-to-go, mirroring the
// information a UCI "go" command would supply. Limits derives soft/hard search budgets
// from it the same way the teacher's searchctl package does.
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game
}

// Limits returns the soft and hard time budget for the side to move: after the soft limit
// no new iteration should start, and the hard limit forcibly halts an in-flight one.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft := remainder / (2 * moves)
	hard := 3 * soft
	return soft, hard
}
