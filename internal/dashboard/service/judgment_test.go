package service

import (
	"math"
	"testing"

	"nikkei-dashboard/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	th := entity.DefaultThresholds

	tests := []struct {
		score float64
		want  Judgment
	}{
		{100, Bullish},
		{80, Bullish},
		{79.9, SomewhatBullish},
		{60, SomewhatBullish},
		{59.9, Neutral},
		{40, Neutral},
		{39.9, SomewhatBearish},
		{20, SomewhatBearish},
		{19.9, Bearish},
		{-50, Bearish},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.score, th), "Classify(%v)", tc.score)
	}
}

func TestClassify_Total(t *testing.T) {
	th := entity.Thresholds{T1: 75, T2: 55, T3: 45, T4: 10}
	inputs := []float64{math.Inf(1), math.Inf(-1), math.NaN(), 0, 1e300, -1e300, 55, 45}

	for _, score := range inputs {
		j := Classify(score, th)
		assert.GreaterOrEqual(t, int(j), int(Bearish))
		assert.LessOrEqual(t, int(j), int(Bullish))
		assert.NotEqual(t, "Unknown", j.String())
	}
}

func TestClassify_Monotonic(t *testing.T) {
	th := entity.DefaultThresholds

	prev := Classify(-10, th)
	for score := -10.0; score <= 110; score += 0.1 {
		j := Classify(score, th)
		if j < prev {
			t.Fatalf("Classify(%v) = %v, more bearish than previous %v", score, j, prev)
		}
		prev = j
	}
}

func TestClassify_EqualThresholds(t *testing.T) {
	th := entity.Thresholds{T1: 50, T2: 50, T3: 50, T4: 50}

	assert.Equal(t, Bullish, Classify(50, th))
	assert.Equal(t, Bearish, Classify(49.99, th))
}

func TestJudgment_Labels(t *testing.T) {
	assert.Equal(t, "Somewhat Bullish", SomewhatBullish.String())
	assert.Equal(t, "probability of rise: 80% or more", Bullish.Note())
	assert.Equal(t, "evenly matched", Neutral.Note())
	assert.Equal(t, "Unknown", Judgment(9).String())
}
