package analysis

import (
	"fmt"

	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

// ConfidenceEstimator scores data sufficiency. Confidence is orthogonal to
// risk: a member can be low-risk with high confidence or low-risk because
// there was nothing to score, and consumers must be able to tell the two
// apart.
type ConfidenceEstimator struct {
	cfg config.ConfidenceConfig
}

// NewConfidenceEstimator creates an estimator.
func NewConfidenceEstimator(cfg config.ConfidenceConfig) *ConfidenceEstimator {
	return &ConfidenceEstimator{cfg: cfg}
}

// Member estimates confidence for one member's assessment.
func (e *ConfidenceEstimator) Member(m types.MemberMetrics, eventCount, windowDays int) types.Confidence {
	completeness := memberCompleteness(m)
	temporal := e.temporalCoverage(windowDays)
	sample := clamp01(float64(eventCount) / 50.0)

	score := clamp01(e.cfg.CompletenessWeight*completeness +
		e.cfg.TemporalWeight*temporal +
		e.cfg.SampleSizeWeight*sample)

	c := types.Confidence{
		Score: score,
		Level: e.level(score),
		Factors: map[string]float64{
			"data_completeness": completeness,
			"temporal_coverage": temporal,
			"sample_size":       sample,
		},
	}
	if eventCount == 0 {
		c.Level = types.ConfidenceLow
		c.Notes = append(c.Notes, "no events for member; score reflects absence of data, not health")
	}
	if windowDays < e.cfg.MinWindowDays {
		c.Notes = append(c.Notes, fmt.Sprintf("window of %d days is below the %d-day minimum", windowDays, e.cfg.MinWindowDays))
	}
	return c
}

// Team estimates confidence for the whole run: average member completeness,
// temporal coverage, team-size adequacy, and activity-level adequacy at
// equal weight.
func (e *ConfidenceEstimator) Team(team []types.MemberMetrics, totalEvents, windowDays int) types.Confidence {
	completeness := 0.0
	for _, m := range team {
		completeness += memberCompleteness(m)
	}
	if len(team) > 0 {
		completeness /= float64(len(team))
	}

	temporal := e.temporalCoverage(windowDays)
	teamSize := clamp01(float64(len(team)) / float64(e.cfg.IdealTeamSize))

	weeks := float64(windowDays) / 7.0
	if weeks < 1 {
		weeks = 1
	}
	activity := clamp01((float64(totalEvents) / weeks) / e.cfg.ReferenceWeeklyEvents)

	score := clamp01(0.25*completeness + 0.25*temporal + 0.25*teamSize + 0.25*activity)

	c := types.Confidence{
		Score: score,
		Level: e.level(score),
		Factors: map[string]float64{
			"data_completeness":  completeness,
			"temporal_coverage":  temporal,
			"team_size_adequacy": teamSize,
			"activity_adequacy":  activity,
		},
	}
	if teamSize < 1 {
		c.Notes = append(c.Notes, fmt.Sprintf("team of %d is below the ideal size of %d", len(team), e.cfg.IdealTeamSize))
	}
	if activity < 0.5 {
		c.Notes = append(c.Notes, "low overall activity volume; treat scores as indicative only")
	}
	return c
}

// temporalCoverage scales the window against the minimum-30/optimal-90 day
// range: half credit at the minimum, full credit at the optimum.
func (e *ConfidenceEstimator) temporalCoverage(windowDays int) float64 {
	minD := float64(e.cfg.MinWindowDays)
	optD := float64(e.cfg.OptimalWindowDays)
	d := float64(windowDays)
	switch {
	case d <= 0:
		return 0
	case d < minD:
		return 0.5 * d / minD
	case d < optD:
		return 0.5 + 0.5*(d-minD)/(optD-minD)
	default:
		return 1
	}
}

func (e *ConfidenceEstimator) level(score float64) types.ConfidenceLevel {
	switch {
	case score >= e.cfg.HighThreshold:
		return types.ConfidenceHigh
	case score >= e.cfg.MediumThreshold:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// memberCompleteness is the fraction of expected metric fields that carry a
// signal. Malformed-and-dropped events show up here as missing fields.
func memberCompleteness(m types.MemberMetrics) float64 {
	populated, expected := 0, 0

	check := func(ok bool) {
		expected++
		if ok {
			populated++
		}
	}

	check(m.IncidentCount > 0)
	check(m.HasResponseTimes)
	check(len(m.SeverityDistribution) > 0)
	check(m.MessagesPerWeek > 0)
	check(m.Commit != nil)
	if cm := m.Commit; cm != nil {
		check(cm.CommitCount > 0)
		check(cm.PRCount > 0)
		check(cm.ReviewCount > 0)
	}

	if expected == 0 {
		return 0
	}
	return float64(populated) / float64(expected)
}
