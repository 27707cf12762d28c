package analysis

import (
	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

// Fusion reconciles incident-derived and activity-derived dimension scores
// depending on which signals exist for a member. Incidents are the higher
// trust signal; activity corroborates.
type Fusion struct {
	weights    config.FusionWeights
	dimensions config.DimensionWeights
	risk       config.RiskThresholds
}

// NewFusion creates a fusion engine.
func NewFusion(cfg config.Config) *Fusion {
	return &Fusion{weights: cfg.Fusion, dimensions: cfg.Dimensions, risk: cfg.Risk}
}

// Fuse picks or blends the two dimension scores and returns the result with
// its provenance tag. With neither signal present the score is zero and the
// risk must read low: absence of data is not evidence of risk.
func (f *Fusion) Fuse(hasIncidents, hasActivity bool, incident, activity types.DimensionScore) (types.DimensionScore, types.ScoreSource) {
	switch {
	case hasIncidents && hasActivity:
		return f.blend(incident, activity), types.ScoreSourceHybrid
	case hasIncidents:
		return incident, types.ScoreSourceIncident
	case hasActivity:
		return activity, types.ScoreSourceActivity
	default:
		return types.DimensionScore{}, types.ScoreSourceNone
	}
}

// blend combines dimension-wise so the overall-score invariant survives
// fusion: blending per dimension and then weighting equals blending the two
// overall scores.
func (f *Fusion) blend(incident, activity types.DimensionScore) types.DimensionScore {
	wi, wa := f.weights.Incident, f.weights.Activity
	return types.DimensionScore{
		PersonalBurnout:       wi*incident.PersonalBurnout + wa*activity.PersonalBurnout,
		WorkRelatedBurnout:    wi*incident.WorkRelatedBurnout + wa*activity.WorkRelatedBurnout,
		AccomplishmentBurnout: wi*incident.AccomplishmentBurnout + wa*activity.AccomplishmentBurnout,
		PersonalFactors:       mergeFactors(incident.PersonalFactors, activity.PersonalFactors, wi, wa),
		WorkRelatedFactors:    mergeFactors(incident.WorkRelatedFactors, activity.WorkRelatedFactors, wi, wa),
		AccomplishmentFactors: mergeFactors(incident.AccomplishmentFactors, activity.AccomplishmentFactors, wi, wa),
	}
}

// mergeFactors rescales each side's contribution weights by its fusion
// weight, so the merged list still sums to 1.0.
func mergeFactors(incident, activity []types.FactorContribution, wi, wa float64) []types.FactorContribution {
	merged := make([]types.FactorContribution, 0, len(incident)+len(activity))
	for _, fc := range incident {
		merged = append(merged, types.FactorContribution{
			Name: "incident." + fc.Name, RawScore: fc.RawScore, Weight: fc.Weight * wi,
		})
	}
	for _, fc := range activity {
		merged = append(merged, types.FactorContribution{
			Name: "activity." + fc.Name, RawScore: fc.RawScore, Weight: fc.Weight * wa,
		})
	}
	return merged
}

// Overall blends the three dimensions into the composite burnout score.
func (f *Fusion) Overall(ds types.DimensionScore) float64 {
	score := f.dimensions.Personal*ds.PersonalBurnout +
		f.dimensions.WorkRelated*ds.WorkRelatedBurnout +
		f.dimensions.Accomplishment*ds.AccomplishmentBurnout
	return clamp(score, 0, 10)
}

// RiskLevel maps an overall score onto the fixed contiguous thresholds.
func (f *Fusion) RiskLevel(score float64) types.RiskLevel {
	switch {
	case score >= f.risk.Critical:
		return types.RiskCritical
	case score >= f.risk.High:
		return types.RiskHigh
	case score >= f.risk.Medium:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}
