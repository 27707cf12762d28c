package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

func assessmentWithScore(id string, score float64) types.BurnoutAssessment {
	f := NewFusion(config.New())
	return types.BurnoutAssessment{
		MemberID:     id,
		OverallScore: score,
		RiskLevel:    f.RiskLevel(score),
	}
}

func TestAggregateRiskDistribution(t *testing.T) {
	ta := NewTeamAggregator()

	th := ta.Aggregate([]types.BurnoutAssessment{
		assessmentWithScore("a", 2),
		assessmentWithScore("b", 4.5),
		assessmentWithScore("c", 7),
	})

	assert.Equal(t, 1, th.RiskDistribution[types.RiskLow])
	assert.Equal(t, 1, th.RiskDistribution[types.RiskMedium])
	assert.Equal(t, 1, th.RiskDistribution[types.RiskHigh])
	assert.Equal(t, 0, th.RiskDistribution[types.RiskCritical])
	assert.Equal(t, 1, th.MembersAtRisk)
	assert.InDelta(t, 4.5, th.AverageBurnout, 1e-9)
}

func TestAggregateEmptyTeam(t *testing.T) {
	th := NewTeamAggregator().Aggregate(nil)

	assert.Equal(t, 10.0, th.OverallScore)
	assert.Equal(t, "excellent", th.HealthStatus)
	assert.Zero(t, th.MembersAtRisk)
}

func TestHealthFromBurnoutSegments(t *testing.T) {
	tests := []struct {
		burnout  float64
		expected float64
	}{
		{burnout: 0, expected: 10},
		{burnout: 1, expected: 9.25},
		{burnout: 2, expected: 8.5},
		{burnout: 4, expected: 7.0},
		{burnout: 5, expected: 6.0},
		{burnout: 6, expected: 5.0},
		{burnout: 8, expected: 3.0},
		{burnout: 9, expected: 2.5},
		{burnout: 10, expected: 2.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, HealthFromBurnout(tt.burnout), 1e-9, "burnout=%v", tt.burnout)
	}
}

func TestHealthFromBurnoutNeverNegative(t *testing.T) {
	for b := 0.0; b <= 10.0; b += 0.1 {
		assert.GreaterOrEqual(t, HealthFromBurnout(b), 0.0)
	}
}

func TestHealthStatusThresholds(t *testing.T) {
	tests := []struct {
		health   float64
		expected string
	}{
		{health: 9.5, expected: "excellent"},
		{health: 9.0, expected: "excellent"},
		{health: 8.5, expected: "good"},
		{health: 7.2, expected: "fair"},
		{health: 6.0, expected: "poor"},
		{health: 5.9, expected: "critical"},
		{health: 0, expected: "critical"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, HealthStatus(tt.health), "health=%v", tt.health)
	}
}
