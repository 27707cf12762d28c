package analysis

import (
	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

// Metric keys shared by the calibrator, the scorers, and the config industry
// table.
const (
	metricIncidentsPerWeek  = "incidents_per_week"
	metricAfterHoursPct     = "after_hours_percentage"
	metricWeekendPct        = "weekend_percentage"
	metricAvgResponseTime   = "avg_response_time_minutes"
	metricCommitsPerWeek    = "commits_per_week"
	metricAfterHoursCommits = "after_hours_commit_pct"
	metricWeekendCommits    = "weekend_commit_pct"
	metricAvgCommitSize     = "avg_commit_size"
	metricPRMergeRate       = "pr_merge_rate"
	metricReviewRate        = "review_participation_rate"
	metricMessagesPerWeek   = "messages_per_week"
)

// Calibrator computes per-metric team baselines. The team median is blended
// with a fixed industry constant so a uniformly overworked team is still
// scored against an external anchor instead of its own inflated norm.
type Calibrator struct {
	cfg config.BaselineConfig
}

// NewCalibrator creates a calibrator.
func NewCalibrator(cfg config.BaselineConfig) *Calibrator {
	return &Calibrator{cfg: cfg}
}

// Calibrate builds baselines from the current team snapshot. For each metric
// the median runs over members with a non-zero observation; with no team
// observations at all the industry constant stands alone.
func (c *Calibrator) Calibrate(team []types.MemberMetrics) types.Baselines {
	samples := map[string][]float64{}
	observe := func(key string, v float64) {
		if v > 0 {
			samples[key] = append(samples[key], v)
		}
	}

	for _, m := range team {
		observe(metricIncidentsPerWeek, m.IncidentsPerWeek)
		observe(metricAfterHoursPct, m.AfterHoursPercentage)
		observe(metricWeekendPct, m.WeekendPercentage)
		observe(metricAvgResponseTime, m.AvgResponseTimeMinutes)
		observe(metricMessagesPerWeek, m.MessagesPerWeek)
		if cm := m.Commit; cm != nil {
			observe(metricCommitsPerWeek, cm.CommitsPerWeek)
			observe(metricAfterHoursCommits, cm.AfterHoursCommitPct)
			observe(metricWeekendCommits, cm.WeekendCommitPct)
			observe(metricAvgCommitSize, cm.AvgCommitSize)
			observe(metricPRMergeRate, cm.PRMergeRate)
			observe(metricReviewRate, cm.ReviewParticipationRate)
		}
	}

	baselines := types.Baselines{}
	for key, industry := range c.cfg.Industry {
		bl := types.Baseline{Metric: key, IndustryValue: industry}
		if xs, ok := samples[key]; ok && len(xs) > 0 {
			bl.TeamValue = median(xs)
			bl.Value = c.cfg.TeamWeight*bl.TeamValue + c.cfg.IndustryWeight*bl.IndustryValue
		} else {
			bl.Value = industry
		}
		baselines[key] = bl
	}
	return baselines
}
