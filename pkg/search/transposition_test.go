package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTableSizeRoundsDownToPowerOfTwo(t *testing.T) {
	ctx := context.Background()

	tt := search.NewTable(ctx, 0x1000)
	assert.Equal(t, uint64(0x1000), tt.Size())

	tt2 := search.NewTable(ctx, 0x1f00)
	assert.Equal(t, uint64(0x1000), tt2.Size())
}

func TestTableProbeStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 1<<20)

	key := board.ZobristHash(rand.Uint64())

	_, ok := tt.Probe(key)
	assert.False(t, ok)
	assert.Equal(t, search.LookupFailed, tt.LookupEval(key, 0, 0, search.NegInf, search.PosInf))

	line := search.Line{{From: board.G4, To: board.G8, Promotion: board.Queen}}
	tt.Store(key, 5, 2, 123, search.ExactBound, line, 10)

	_, ok = tt.Probe(key)
	assert.True(t, ok)
	assert.Equal(t, 123, tt.LookupEval(key, 5, 2, search.NegInf, search.PosInf))

	_, ok = tt.Probe(key ^ 0xff0000)
	assert.False(t, ok)
}

// TestTableMonotoneReplacement checks the depth-preferred replacement scheme (spec.md §3): a
// shallower write never overwrites a deeper entry already in the slot, but a write at least
// as deep always replaces.
func TestTableMonotoneReplacement(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 1<<20)

	key := board.ZobristHash(rand.Uint64())
	var line search.Line

	tt.Store(key, 4, 0, 10, search.ExactBound, line, 0)
	assert.Equal(t, 10, tt.LookupEval(key, 4, 0, search.NegInf, search.PosInf))

	tt.Store(key, 2, 0, 20, search.ExactBound, line, 0)
	assert.Equal(t, 10, tt.LookupEval(key, 4, 0, search.NegInf, search.PosInf),
		"shallower write must not replace a deeper entry")

	tt.Store(key, 4, 0, 30, search.ExactBound, line, 0)
	assert.Equal(t, 30, tt.LookupEval(key, 4, 0, search.NegInf, search.PosInf),
		"write at the same depth must replace")

	tt.Store(key, 6, 0, 40, search.ExactBound, line, 0)
	assert.Equal(t, 40, tt.LookupEval(key, 6, 0, search.NegInf, search.PosInf),
		"deeper write must replace")
}

func TestTableClear(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 1<<20)

	key := board.ZobristHash(rand.Uint64())
	tt.Store(key, 4, 0, 10, search.ExactBound, nil, 0)

	_, ok := tt.Probe(key)
	assert.True(t, ok)
	assert.Greater(t, tt.Used(), 0.0)

	tt.Clear()

	_, ok = tt.Probe(key)
	assert.False(t, ok)
	assert.Equal(t, 0.0, tt.Used())
}

// TestMateScoreAdjustRoundTrip exercises the store-time/lookup-time mate score adjustment: a
// mate score stored relative to one ply must read back unchanged once the lookup corrects
// for the same ply (spec.md §3).
func TestMateScoreAdjustRoundTrip(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		score int
		ply   int
	}{
		{"mate for side to move", search.Checkmate - 3, 5},
		{"mate against side to move", -(search.Checkmate - 3), 5},
		{"mate at ply 0", search.Checkmate - 1, 0},
		{"non-mate score unaffected by ply", 137, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt := search.NewTable(ctx, 1<<20)
			key := board.ZobristHash(rand.Uint64())

			tt.Store(key, 10, tc.ply, tc.score, search.ExactBound, nil, 0)
			got := tt.LookupEval(key, 10, tc.ply, search.NegInf, search.PosInf)
			assert.Equal(t, tc.score, got)
		})
	}
}

// TestMateScoreStableAcrossPly checks that a mate score stored at one ply and looked up again
// at that same ply returns the identical score regardless of how deep in the tree the mating
// line itself was found, since adjustMateScore/unadjustMateScore are each other's inverse.
func TestMateScoreStableAcrossPly(t *testing.T) {
	ctx := context.Background()

	mateScore := search.Checkmate - 3
	for _, ply := range []int{0, 1, 2, 6, 20} {
		tt := search.NewTable(ctx, 1<<20)
		key := board.ZobristHash(rand.Uint64())

		tt.Store(key, 10, ply, mateScore, search.ExactBound, nil, 0)
		got := tt.LookupEval(key, 10, ply, search.NegInf, search.PosInf)
		assert.Equal(t, mateScore, got, "ply=%d", ply)
	}
}

func TestLookupEvalRespectsBounds(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 1<<20)
	key := board.ZobristHash(rand.Uint64())

	tt.Store(key, 8, 0, 50, search.LowerBound, nil, 0)

	assert.Equal(t, 50, tt.LookupEval(key, 8, 0, search.NegInf, 40))
	assert.Equal(t, search.LookupFailed, tt.LookupEval(key, 8, 0, search.NegInf, 60))
	assert.Equal(t, search.LookupFailed, tt.LookupEval(key, 9, 0, search.NegInf, 40))
}
