package analysis

import "github.com/ZanzyTHEbar/burnout-meter/internal/types"

// ActivityScorer derives the burnout dimensions from code-hosting activity:
// commits, pull requests, and reviews. Personal and work-related dimensions
// come out in burnout direction; accomplishment is computed good-side-up and
// inverted here before it leaves the scorer.
type ActivityScorer struct{}

// NewActivityScorer creates the activity-based dimension scorer.
func NewActivityScorer() *ActivityScorer {
	return &ActivityScorer{}
}

// Name implements DimensionScorer.
func (s *ActivityScorer) Name() string { return "activity" }

// Score implements DimensionScorer. Members without commit metrics score
// zero on every dimension.
func (s *ActivityScorer) Score(m types.MemberMetrics, b types.Baselines) types.DimensionScore {
	if m.Commit == nil {
		return types.DimensionScore{}
	}
	var ds types.DimensionScore
	ds.PersonalBurnout, ds.PersonalFactors = s.personal(*m.Commit, b)
	ds.WorkRelatedBurnout, ds.WorkRelatedFactors = s.workRelated(*m.Commit, b)
	ds.AccomplishmentBurnout, ds.AccomplishmentFactors = s.accomplishment(*m.Commit, b)
	return ds
}

func (s *ActivityScorer) personal(cm types.CommitMetrics, b types.Baselines) (float64, []types.FactorContribution) {
	workloadRatio := safeRatio(cm.CommitsPerWeek, b.Value(metricCommitsPerWeek, 25))

	// Recovery absence: a near-unbroken daily cadence with no rest days
	// signals missing recovery time, not discipline.
	recoveryAbsence := cm.ActiveDayRatio
	if cm.DailyCommitCV > 1.5 {
		// Spiky cadence implies gaps; discount the signal.
		recoveryAbsence *= 0.5
	}

	return composeFactors([]factor{
		{name: "workload_overwhelm", weight: 0.30, score: transferScore(workloadRatio, 1.0, 2.5, 3)},
		{name: "after_hours_boundary", weight: 0.25, score: transferScore(cm.AfterHoursCommitPct, 0.10, 0.30, 3)},
		{name: "work_intensity", weight: 0.25, score: transferScore(cm.LargeCommitRatio, 0.15, 0.40, 3)},
		{name: "recovery_absence", weight: 0.20, score: transferScore(recoveryAbsence, 0.72, 0.95, 3)},
	})
}

func (s *ActivityScorer) workRelated(cm types.CommitMetrics, b types.Baselines) (float64, []types.FactorContribution) {
	reviewBurden := safeRatio(cm.ReviewsPerWeek, cm.CommitsPerWeek+cm.PRsPerWeek)

	// Fragmentation: distance from the healthy commit-frequency band,
	// relative to the baseline.
	baseCommits := b.Value(metricCommitsPerWeek, 25)
	fragmentation := 0.0
	if cm.CommitsPerWeek > baseCommits {
		fragmentation = (cm.CommitsPerWeek - baseCommits) / baseCommits
	} else if cm.CommitsPerWeek < baseCommits*0.3 && cm.CommitCount > 0 {
		fragmentation = (baseCommits*0.3 - cm.CommitsPerWeek) / (baseCommits * 0.3)
	}

	failureRate := (1 - cm.PRMergeRate) + cm.RevertRate

	return composeFactors([]factor{
		{name: "process_inefficiency", weight: 0.30, score: transferScore(cm.AvgPRRevisions, 2.0, 6.0, 3), excluded: cm.PRCount == 0},
		{name: "collaboration_burden", weight: 0.25, score: transferScore(reviewBurden, 1.0, 3.0, 3), excluded: cm.ReviewCount == 0},
		{name: "work_fragmentation", weight: 0.25, score: transferScore(fragmentation, 0.5, 2.0, 3)},
		{name: "process_dysfunction", weight: 0.20, score: transferScore(failureRate, 0.15, 0.50, 3), excluded: cm.PRCount == 0 && cm.CommitCount == 0},
	})
}

// accomplishment computes good-direction sub-scores (higher = healthier
// accomplishment) and inverts the blend into burnout direction on return.
func (s *ActivityScorer) accomplishment(cm types.CommitMetrics, b types.Baselines) (float64, []types.FactorContribution) {
	quality := bandScore(cm.PRMergeRate, b.Value(metricPRMergeRate, 0.85)*0.8, 1.0, 0.5)
	if cm.AvgPRRevisions > 4 {
		quality = clamp(quality-2, 0, 10)
	}

	// Healthy contributions show moderate size variance: all-identical
	// commits suggest churn, wild swings suggest thrash.
	meaningfulness := bandScore(cm.CommitSizeCV, 0.3, 1.5, 1.0)

	// Growth proxy: PR-to-commit mix inside a sustainable band.
	activityRatio := safeRatio(cm.PRsPerWeek, cm.CommitsPerWeek)
	growth := bandScore(activityRatio, 0.05, 0.5, 0.4)

	progress := bandScore(cm.PRsPerWeek, 1.0, 5.0, 3.0)

	good, contribs := composeFactors([]factor{
		{name: "output_quality", weight: 0.30, score: quality, excluded: cm.PRCount == 0},
		{name: "contribution_meaningfulness", weight: 0.25, score: meaningfulness, excluded: cm.CommitCount == 0},
		{name: "technical_growth", weight: 0.25, score: growth, excluded: cm.CommitCount == 0},
		{name: "progress_perception", weight: 0.20, score: progress, excluded: cm.PRCount == 0},
	})
	return clamp(10-good, 0, 10), contribs
}
