package eval_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestScoreRoundTrip(t *testing.T) {
	tests := []struct {
		mg, eg int16
	}{
		{0, 0},
		{1, -1},
		{-1, 1},
		{32767, -32768},
		{-32768, 32767},
		{150, -25},
	}

	for _, tt := range tests {
		s := eval.S(tt.mg, tt.eg)
		assert.Equal(t, tt.mg, s.MG())
		assert.Equal(t, tt.eg, s.EG())
	}
}

func TestScoreArithmetic(t *testing.T) {
	a := eval.S(100, 50)
	b := eval.S(30, -10)

	sum := a.Add(b)
	assert.Equal(t, int16(130), sum.MG())
	assert.Equal(t, int16(40), sum.EG())

	diff := a.Sub(b)
	assert.Equal(t, int16(70), diff.MG())
	assert.Equal(t, int16(60), diff.EG())

	neg := a.Negate()
	assert.Equal(t, int16(-100), neg.MG())
	assert.Equal(t, int16(-50), neg.EG())

	scaled := a.Scale(3)
	assert.Equal(t, int16(300), scaled.MG())
	assert.Equal(t, int16(150), scaled.EG())
}

func TestBlendBounds(t *testing.T) {
	s := eval.S(100, -40)

	// At or above OpeningPhase, the midgame half is returned unchanged.
	assert.Equal(t, 100, eval.Blend(s, eval.OpeningPhase))
	assert.Equal(t, 100, eval.Blend(s, eval.OpeningPhase+1000))

	// At or below EndgamePhase, the endgame half is returned unchanged.
	assert.Equal(t, -40, eval.Blend(s, eval.EndgamePhase))
	assert.Equal(t, -40, eval.Blend(s, 0))
}

// TestBlendMonotone checks that, between the two phase bounds, Blend moves monotonically
// from the endgame value toward the midgame value as the game phase increases.
func TestBlendMonotone(t *testing.T) {
	s := eval.S(200, -100)

	prev := eval.Blend(s, eval.EndgamePhase)
	for g := eval.EndgamePhase + 1; g <= eval.OpeningPhase; g += 500 {
		cur := eval.Blend(s, g)
		assert.GreaterOrEqual(t, cur, prev, "Blend(%d) regressed relative to Blend at smaller phase", g)
		prev = cur
	}
	assert.Equal(t, eval.Blend(s, eval.OpeningPhase), 200)
}

func TestBlendZeroScoreIsAlwaysZero(t *testing.T) {
	for _, g := range []int{0, eval.EndgamePhase, eval.EndgamePhase + 1, eval.OpeningPhase, eval.OpeningPhase + 1} {
		assert.Equal(t, 0, eval.Blend(eval.ZeroScore, g))
	}
}
