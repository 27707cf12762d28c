package analysis

import "github.com/ZanzyTHEbar/burnout-meter/internal/types"

// healthSegment is one piece of the burnout-to-health map.
type healthSegment struct {
	upTo  float64
	slope float64
}

// healthSegments invert average burnout into a team health score. A flat
// 10-minus mapping collapses mid-range burnout into unreadable scores, so
// the slope steepens through the middle and flattens again at the top.
var healthSegments = []healthSegment{
	{upTo: 2, slope: 0.75},
	{upTo: 4, slope: 0.75},
	{upTo: 6, slope: 1.0},
	{upTo: 8, slope: 1.0},
	{upTo: 10, slope: 0.5},
}

// TeamAggregator combines member assessments into the team-level view.
type TeamAggregator struct{}

// NewTeamAggregator creates a team aggregator.
func NewTeamAggregator() *TeamAggregator {
	return &TeamAggregator{}
}

// Aggregate builds TeamHealth from the run's assessments.
func (t *TeamAggregator) Aggregate(assessments []types.BurnoutAssessment) types.TeamHealth {
	th := types.TeamHealth{
		RiskDistribution: map[types.RiskLevel]int{
			types.RiskLow: 0, types.RiskMedium: 0, types.RiskHigh: 0, types.RiskCritical: 0,
		},
	}
	if len(assessments) == 0 {
		th.OverallScore = HealthFromBurnout(0)
		th.HealthStatus = HealthStatus(th.OverallScore)
		return th
	}

	total := 0.0
	for _, a := range assessments {
		total += a.OverallScore
		th.RiskDistribution[a.RiskLevel]++
	}
	th.AverageBurnout = total / float64(len(assessments))
	th.OverallScore = HealthFromBurnout(th.AverageBurnout)
	th.HealthStatus = HealthStatus(th.OverallScore)
	th.MembersAtRisk = th.RiskDistribution[types.RiskHigh] + th.RiskDistribution[types.RiskCritical]
	return th
}

// HealthFromBurnout maps average burnout (0-10) onto the 0-10 health scale
// through the five-segment inverse map, floored at 0.
func HealthFromBurnout(burnout float64) float64 {
	b := clamp(burnout, 0, 10)
	health := 10.0
	prev := 0.0
	for _, seg := range healthSegments {
		if b <= prev {
			break
		}
		span := b - prev
		if b > seg.upTo {
			span = seg.upTo - prev
		}
		health -= span * seg.slope
		prev = seg.upTo
	}
	if health < 0 {
		return 0
	}
	return health
}

// HealthStatus labels a 0-10 health score.
func HealthStatus(health float64) string {
	switch {
	case health >= 9:
		return "excellent"
	case health >= 8:
		return "good"
	case health >= 7:
		return "fair"
	case health >= 6:
		return "poor"
	default:
		return "critical"
	}
}
