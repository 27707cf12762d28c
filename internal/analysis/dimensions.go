package analysis

import "github.com/ZanzyTHEbar/burnout-meter/internal/types"

// DimensionScorer produces the three burnout dimensions for one member from
// metrics and team baselines. Implementations are selected at construction
// time; no scoring function branches on methodology flags.
type DimensionScorer interface {
	Name() string
	Score(m types.MemberMetrics, b types.Baselines) types.DimensionScore
}

// factor is one weighted sub-signal inside a dimension. Excluded factors
// (e.g. response time with no response data) are dropped and the remaining
// weights renormalized, so absence is never penalized.
type factor struct {
	name     string
	weight   float64
	score    float64
	excluded bool
}

// composeFactors blends factors into a dimension score and its audit trail.
// Contribution weights always sum to 1.0 after exclusion renormalization.
func composeFactors(factors []factor) (float64, []types.FactorContribution) {
	totalWeight := 0.0
	for _, f := range factors {
		if !f.excluded {
			totalWeight += f.weight
		}
	}
	if totalWeight == 0 {
		return 0, nil
	}

	score := 0.0
	contribs := make([]types.FactorContribution, 0, len(factors))
	for _, f := range factors {
		if f.excluded {
			continue
		}
		w := f.weight / totalWeight
		score += clamp(f.score, 0, 10) * w
		contribs = append(contribs, types.FactorContribution{
			Name:     f.name,
			RawScore: clamp(f.score, 0, 10),
			Weight:   w,
		})
	}
	return clamp(score, 0, 10), contribs
}
