package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

func uniformDimensions(score float64) types.DimensionScore {
	return types.DimensionScore{
		PersonalBurnout:       score,
		WorkRelatedBurnout:    score,
		AccomplishmentBurnout: score,
		PersonalFactors:       []types.FactorContribution{{Name: "f", RawScore: score, Weight: 1}},
		WorkRelatedFactors:    []types.FactorContribution{{Name: "f", RawScore: score, Weight: 1}},
		AccomplishmentFactors: []types.FactorContribution{{Name: "f", RawScore: score, Weight: 1}},
	}
}

func TestFuseSourceSelection(t *testing.T) {
	f := NewFusion(config.New())
	incident := uniformDimensions(6)
	activity := uniformDimensions(4)

	tests := []struct {
		name          string
		hasIncidents  bool
		hasActivity   bool
		expectedSrc   types.ScoreSource
		expectedScore float64
	}{
		{name: "activity only", hasActivity: true, expectedSrc: types.ScoreSourceActivity, expectedScore: 4},
		{name: "incidents only", hasIncidents: true, expectedSrc: types.ScoreSourceIncident, expectedScore: 6},
		{name: "hybrid blends 70/30", hasIncidents: true, hasActivity: true, expectedSrc: types.ScoreSourceHybrid, expectedScore: 0.7*6 + 0.3*4},
		{name: "neither signal", expectedSrc: types.ScoreSourceNone, expectedScore: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, src := f.Fuse(tt.hasIncidents, tt.hasActivity, incident, activity)
			assert.Equal(t, tt.expectedSrc, src)
			assert.InDelta(t, tt.expectedScore, f.Overall(ds), 1e-9)
		})
	}
}

func TestFuseHybridActivityDelta(t *testing.T) {
	f := NewFusion(config.New())
	incident := uniformDimensions(6)

	zero, _ := f.Fuse(true, true, incident, uniformDimensions(0))
	bumped, _ := f.Fuse(true, true, incident, uniformDimensions(2))

	// A non-trivial activity signal must move the hybrid score by exactly
	// 0.3 times the activity delta.
	assert.InDelta(t, 0.3*2, f.Overall(bumped)-f.Overall(zero), 1e-9)
}

func TestFuseHybridFactorWeights(t *testing.T) {
	f := NewFusion(config.New())

	ds, _ := f.Fuse(true, true, uniformDimensions(6), uniformDimensions(4))

	// Merged audit trail still sums to 1.0 and tags provenance.
	sum := 0.0
	for _, fc := range ds.PersonalFactors {
		sum += fc.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, "incident.f", ds.PersonalFactors[0].Name)
	assert.Equal(t, "activity.f", ds.PersonalFactors[1].Name)
}

func TestOverallUsesAsymmetricThird(t *testing.T) {
	f := NewFusion(config.New())

	ds := types.DimensionScore{PersonalBurnout: 0, WorkRelatedBurnout: 0, AccomplishmentBurnout: 10}

	// Accomplishment carries the rounded-up 0.334 share.
	assert.InDelta(t, 3.34, f.Overall(ds), 1e-9)
}

func TestRiskLevelBoundaries(t *testing.T) {
	f := NewFusion(config.New())

	tests := []struct {
		score    float64
		expected types.RiskLevel
	}{
		{score: 0, expected: types.RiskLow},
		{score: 2.999, expected: types.RiskLow},
		{score: 3.0, expected: types.RiskMedium},
		{score: 5.499, expected: types.RiskMedium},
		{score: 5.5, expected: types.RiskHigh},
		{score: 7.499, expected: types.RiskHigh},
		{score: 7.5, expected: types.RiskCritical},
		{score: 10, expected: types.RiskCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, f.RiskLevel(tt.score), "score %v", tt.score)
	}
}

func TestRiskLevelMonotonic(t *testing.T) {
	f := NewFusion(config.New())
	order := map[types.RiskLevel]int{
		types.RiskLow: 0, types.RiskMedium: 1, types.RiskHigh: 2, types.RiskCritical: 3,
	}

	prev := 0
	for score := 0.0; score <= 10.0; score += 0.01 {
		level := order[f.RiskLevel(score)]
		assert.GreaterOrEqual(t, level, prev, "risk must be monotonic in score (score=%f)", score)
		prev = level
	}
}
