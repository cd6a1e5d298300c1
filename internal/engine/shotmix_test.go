package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeShotMixBalancedInsideThreshold(t *testing.T) {
	// 2PT% = 0.50 -> EV 1.00; 3PT% = 0.34 -> EV 1.02. The 0.02 gap is inside
	// the default 0.05 threshold, so the verdict is balanced.
	row := &TeamBoxRow{
		Team:                   "Harker",
		TwoPointersMade:        25,
		TwoPointersAttempted:   50,
		ThreePointersMade:      17,
		ThreePointersAttempted: 50,
		FieldGoalsAttempted:    n32(100),
	}

	report := OptimizeShotMix(row, DefaultIndifferenceThreshold)

	assert.InDelta(t, 1.00, report.TwoPointEV.Value, 1e-9)
	assert.InDelta(t, 1.02, report.ThreePointEV.Value, 1e-9)
	assert.Equal(t, RecommendBalanced, report.Recommendation)
	assert.Contains(t, report.Reason, "balanced")
}

func TestOptimizeShotMixStrongThreePointPreference(t *testing.T) {
	// EV(3PT) = 0.45 * 3 = 1.35 against EV(2PT) = 0.50 * 2 = 1.00.
	row := &TeamBoxRow{
		Team:                   "Harker",
		TwoPointersMade:        20,
		TwoPointersAttempted:   40,
		ThreePointersMade:      9,
		ThreePointersAttempted: 20,
		FieldGoalsAttempted:    n32(60),
	}

	report := OptimizeShotMix(row, DefaultIndifferenceThreshold)

	assert.Equal(t, RecommendMoreThrees, report.Recommendation)
	assert.InDelta(t, 1.35, report.ThreePointEV.Value, 1e-9)
	assert.InDelta(t, 40.0/60.0, report.TwoPointRate.Value, 1e-9)
	assert.InDelta(t, 20.0/60.0, report.ThreePointRate.Value, 1e-9)
}

func TestOptimizeShotMixZeroAttemptsExcluded(t *testing.T) {
	// No threes attempted: EV(3PT) has no sample and must not be compared as 0.
	row := &TeamBoxRow{
		Team:                 "Harker",
		TwoPointersMade:      10,
		TwoPointersAttempted: 40,
		FieldGoalsAttempted:  n32(40),
	}

	report := OptimizeShotMix(row, DefaultIndifferenceThreshold)

	assert.True(t, report.ThreePointEV.Undefined)
	assert.Equal(t, RecommendMoreTwos, report.Recommendation)
	assert.Contains(t, report.Reason, "no 3PT sample")
}

func TestOptimizeShotMixNoData(t *testing.T) {
	report := OptimizeShotMix(&TeamBoxRow{Team: "Harker"}, DefaultIndifferenceThreshold)

	assert.Equal(t, RecommendNoData, report.Recommendation)
	assert.True(t, report.TwoPointEV.Undefined)
	assert.True(t, report.ThreePointEV.Undefined)
	assert.True(t, report.TwoPointRate.Undefined)
}

func TestShotMixRecommendationsFlagColdHighVolumeThrees(t *testing.T) {
	row := &TeamBoxRow{
		Team:                   "Harker",
		TwoPointersMade:        10,
		TwoPointersAttempted:   20,
		ThreePointersMade:      7, // 25% on 28 attempts, over half the shot diet
		ThreePointersAttempted: 28,
		FieldGoalsAttempted:    n32(48),
	}

	report := OptimizeShotMix(row, DefaultIndifferenceThreshold)

	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[0], "inefficient")
}
