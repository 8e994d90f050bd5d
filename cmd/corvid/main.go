package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	position = flag.String("fen", fen.Initial, "Position to analyze, in FEN notation")
	depth    = flag.Uint("depth", 0, "Depth limit (zero if unbounded)")
	movetime = flag.Duration("movetime", 5*time.Second, "Time to spend on the position")
	multipv  = flag.Int("multipv", 1, "Number of principal variations to report")
	hash     = flag.Uint("hash", 64, "Transposition table size in MB")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

corvid analyzes a single chess position and prints the principal variation
found at each completed search depth.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "corvid", "corvidchess", eval.Static{}, engine.WithOptions(engine.Options{
		Hash:    *hash,
		MultiPV: *multipv,
	}))

	if err := e.Reset(ctx, *position); err != nil {
		logw.Exitf(ctx, "Invalid position %q: %v", *position, err)
	}

	var opt search.Options
	if *depth > 0 {
		opt.DepthLimit = lang.Some(*depth)
	}
	if *movetime > 0 {
		opt.TimeControl = lang.Some(search.TimeControl{White: *movetime, Black: *movetime, Moves: 1})
	}

	out, err := e.Analyze(ctx, opt)
	if err != nil {
		logw.Exitf(ctx, "Analyze failed: %v", err)
	}

	for pv := range out {
		fmt.Println(pv.String())
	}

	pv, err := e.Halt(ctx)
	if err == nil && len(pv.Line) > 0 {
		fmt.Printf("bestmove %v\n", pv.Line.Head())
	}
}
