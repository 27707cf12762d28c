package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

func TestClassifyHealthyFlow(t *testing.T) {
	fc := NewFlowClassifier(config.New().Flow)

	// Steady cadence, rest days, balanced mix, daytime work.
	fa := fc.Classify(types.CommitMetrics{
		CommitCount: 30, PRCount: 10, ReviewCount: 10,
		CommitsPerWeek: 6, PRsPerWeek: 2, ReviewsPerWeek: 2,
		DailyCommitCV: 0.3, RestDayRatio: 0.3, ActiveDayRatio: 0.7,
		CommitSizeCV: 0.8, AvgPRRevisions: 1, RevertRate: 0,
		AfterHoursCommitPct: 0.05, WeekendCommitPct: 0,
	})

	assert.Equal(t, types.FlowHealthy, fa.State)
	assert.GreaterOrEqual(t, fa.Score, 7.0)
}

func TestClassifyFranticActivity(t *testing.T) {
	fc := NewFlowClassifier(config.New().Flow)

	// High volume with no rest, churning quality, all commits, nights and
	// weekends: the histogram looks productive, the pattern is not.
	fa := fc.Classify(types.CommitMetrics{
		CommitCount: 200, PRCount: 0, ReviewCount: 0,
		CommitsPerWeek: 45, PRsPerWeek: 0, ReviewsPerWeek: 0,
		DailyCommitCV: 0.0, RestDayRatio: 0, ActiveDayRatio: 1.0,
		CommitSizeCV: 2.5, AvgPRRevisions: 6, RevertRate: 0.2,
		AfterHoursCommitPct: 0.4, WeekendCommitPct: 0.2,
	})

	assert.Equal(t, types.FlowFrantic, fa.State)
	assert.Less(t, fa.Score, 5.0)
}

func TestClassifyUnbrokenCadencePenalty(t *testing.T) {
	fc := NewFlowClassifier(config.New().Flow)

	base := types.CommitMetrics{
		CommitCount: 60, CommitsPerWeek: 14,
		DailyCommitCV: 0.1, RestDayRatio: 0.25,
	}
	unbroken := base
	unbroken.RestDayRatio = 0

	withRest := fc.Classify(base)
	noRest := fc.Classify(unbroken)

	// Identical low variance, but zero rest days reads as absent recovery,
	// not discipline.
	assert.Less(t, noRest.Consistency, withRest.Consistency)
}

func TestClassifySubScoresInRange(t *testing.T) {
	fc := NewFlowClassifier(config.New().Flow)

	extremes := []types.CommitMetrics{
		{},
		{CommitCount: 1000, CommitsPerWeek: 250, DailyCommitCV: 5,
			CommitSizeCV: 10, AvgPRRevisions: 50, RevertRate: 1,
			AfterHoursCommitPct: 1, WeekendCommitPct: 1},
	}

	for _, cm := range extremes {
		fa := fc.Classify(cm)
		for _, v := range []float64{fa.Consistency, fa.Quality, fa.Balance, fa.Boundaries, fa.Score} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 10.0)
		}
	}
}

func TestClassifyThresholds(t *testing.T) {
	fc := NewFlowClassifier(config.FlowConfig{HealthyThreshold: 7, ModerateThreshold: 5})

	// Balanced mix at target shares with a moderate boundary leak lands in
	// the middle band.
	fa := fc.Classify(types.CommitMetrics{
		CommitCount: 30, PRCount: 10, ReviewCount: 10,
		CommitsPerWeek: 6, PRsPerWeek: 2, ReviewsPerWeek: 2,
		DailyCommitCV: 1.2, RestDayRatio: 0.2, ActiveDayRatio: 0.8,
		CommitSizeCV: 1.8, AvgPRRevisions: 3, RevertRate: 0.05,
		AfterHoursCommitPct: 0.15, WeekendCommitPct: 0.1,
	})

	assert.Equal(t, types.FlowModerate, fa.State)
}
