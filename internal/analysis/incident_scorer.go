package analysis

import "github.com/ZanzyTHEbar/burnout-meter/internal/types"

// IncidentScorer derives the burnout dimensions from on-call incident load.
// All three dimensions come out in burnout direction directly.
type IncidentScorer struct{}

// NewIncidentScorer creates the incident-based dimension scorer.
func NewIncidentScorer() *IncidentScorer {
	return &IncidentScorer{}
}

// Name implements DimensionScorer.
func (s *IncidentScorer) Name() string { return "incident" }

// Score implements DimensionScorer.
func (s *IncidentScorer) Score(m types.MemberMetrics, b types.Baselines) types.DimensionScore {
	var ds types.DimensionScore
	ds.PersonalBurnout, ds.PersonalFactors = s.personal(m, b)
	ds.WorkRelatedBurnout, ds.WorkRelatedFactors = s.workRelated(m, b)
	ds.AccomplishmentBurnout, ds.AccomplishmentFactors = s.accomplishment(m, b)
	return ds
}

// personal weighs incident frequency heaviest: sheer volume is the dominant
// exhaustion driver for on-call load.
func (s *IncidentScorer) personal(m types.MemberMetrics, b types.Baselines) (float64, []types.FactorContribution) {
	freqRatio := safeRatio(m.IncidentsPerWeek, b.Value(metricIncidentsPerWeek, 1))
	respRatio := safeRatio(m.AvgResponseTimeMinutes, b.Value(metricAvgResponseTime, 30))

	return composeFactors([]factor{
		{name: "incident_frequency", weight: 0.50, score: transferScore(freqRatio, 1.0, 3.0, 3)},
		{name: "after_hours_load", weight: 0.20, score: transferScore(m.AfterHoursPercentage, 0.10, 0.30, 3)},
		{name: "resolution_time", weight: 0.20, score: transferScore(respRatio, 1.0, 3.0, 3), excluded: !m.HasResponseTimes},
		{name: "incident_clustering", weight: 0.10, score: transferScore(m.IncidentClusterRatio, 0.20, 0.60, 3)},
	})
}

func (s *IncidentScorer) workRelated(m types.MemberMetrics, b types.Baselines) (float64, []types.FactorContribution) {
	// Solo-work estimate: how far this member's load sits above the team
	// norm. A lone responder absorbing most pages scores high here.
	soloRatio := safeRatio(m.IncidentsPerWeek, b.Value(metricIncidentsPerWeek, 1))

	return composeFactors([]factor{
		{name: "escalation_rate", weight: 0.30, score: transferScore(m.HighSeverityShare, 0.20, 0.60, 3)},
		{name: "solo_work", weight: 0.30, score: transferScore(soloRatio, 1.2, 3.0, 3)},
		{name: "response_time_trend", weight: 0.20, score: transferScore(m.ResponseTimeTrend-1, 0.25, 1.0, 3)},
		{name: "communication_quality", weight: 0.20, score: transferScore(m.AfterHoursMessagePct, 0.15, 0.40, 3), excluded: m.MessagesPerWeek == 0},
	})
}

// accomplishment for the incident path already comes out in burnout
// direction; no inversion happens downstream.
func (s *IncidentScorer) accomplishment(m types.MemberMetrics, b types.Baselines) (float64, []types.FactorContribution) {
	respRatio := safeRatio(m.AvgResponseTimeMinutes, b.Value(metricAvgResponseTime, 30))
	restDeficit := 1 - m.IncidentRestDayRatio

	severityLoad := 0.0
	if m.IncidentCount > 0 {
		severityLoad = m.HighSeverityShare * m.IncidentsPerWeek
	}
	severityRatio := safeRatio(severityLoad, b.Value(metricIncidentsPerWeek, 1))

	return composeFactors([]factor{
		{name: "response_degradation", weight: 0.40, score: transferScore(respRatio, 1.0, 2.5, 3), excluded: !m.HasResponseTimes},
		{name: "rest_deficit", weight: 0.30, score: transferScore(restDeficit, 0.40, 0.85, 3)},
		{name: "severity_load", weight: 0.30, score: transferScore(severityRatio, 0.5, 1.5, 3)},
	})
}
