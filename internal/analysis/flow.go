package analysis

import (
	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

// FlowClassifier separates sustainable high output from frantic output.
// Raw activity volume is ambiguous: genuine productivity and burnout-driven
// overwork look identical in a commit-count histogram, so volume is paired
// with consistency, quality, balance, and boundary signals.
type FlowClassifier struct {
	cfg config.FlowConfig
}

// NewFlowClassifier creates a flow classifier.
func NewFlowClassifier(cfg config.FlowConfig) *FlowClassifier {
	return &FlowClassifier{cfg: cfg}
}

// Classify scores a member's activity pattern. Callers must only invoke it
// when commit metrics exist.
func (f *FlowClassifier) Classify(cm types.CommitMetrics) types.FlowAssessment {
	fa := types.FlowAssessment{
		Consistency: f.consistency(cm),
		Quality:     f.quality(cm),
		Balance:     f.balance(cm),
		Boundaries:  f.boundaries(cm),
	}
	fa.Score = (fa.Consistency + fa.Quality + fa.Balance + fa.Boundaries) / 4

	switch {
	case fa.Score >= f.cfg.HealthyThreshold:
		fa.State = types.FlowHealthy
	case fa.Score >= f.cfg.ModerateThreshold:
		fa.State = types.FlowModerate
	default:
		fa.State = types.FlowFrantic
	}
	return fa
}

// consistency rewards a steady cadence but penalizes an unbroken one: low
// variance with zero rest days suggests absent recovery, not discipline.
func (f *FlowClassifier) consistency(cm types.CommitMetrics) float64 {
	score := 10 * (1 - clamp01(cm.DailyCommitCV/2))
	if cm.RestDayRatio == 0 && cm.CommitCount > 0 {
		score -= 3
	}
	return clamp(score, 0, 10)
}

func (f *FlowClassifier) quality(cm types.CommitMetrics) float64 {
	sizePenalty := clamp01((cm.CommitSizeCV - 1.0) / 2)
	revisionPenalty := clamp01(cm.AvgPRRevisions / 6)
	revertPenalty := clamp01(cm.RevertRate / 0.2)
	return clamp(10*(1-(0.4*sizePenalty+0.3*revisionPenalty+0.3*revertPenalty)), 0, 10)
}

// balance measures how close the commit:PR:review mix sits to a healthy
// ratio, penalizing all-commits-no-review patterns.
func (f *FlowClassifier) balance(cm types.CommitMetrics) float64 {
	total := cm.CommitsPerWeek + cm.PRsPerWeek + cm.ReviewsPerWeek
	if total == 0 {
		return 0
	}
	// Empirically healthy shares of weekly activity.
	const targetCommits, targetPRs, targetReviews = 0.6, 0.2, 0.2

	distance := (abs(cm.CommitsPerWeek/total-targetCommits) +
		abs(cm.PRsPerWeek/total-targetPRs) +
		abs(cm.ReviewsPerWeek/total-targetReviews)) / 2
	return clamp(10*(1-distance), 0, 10)
}

func (f *FlowClassifier) boundaries(cm types.CommitMetrics) float64 {
	offHoursShare := cm.AfterHoursCommitPct + cm.WeekendCommitPct
	return clamp(10*(1-clamp01(offHoursShare/0.5)), 0, 10)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
