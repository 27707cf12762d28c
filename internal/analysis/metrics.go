package analysis

import (
	"sort"
	"time"

	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

// highSeverityLabels are the raw labels counted as high severity. Raw labels
// stay untouched in the distribution; this set only feeds the share metric.
var highSeverityLabels = map[string]bool{
	"sev1": true, "sev2": true, "p1": true, "p2": true,
	"critical": true, "high": true,
}

// Aggregator turns a member's event set into MemberMetrics. Rates divide by
// max(days,1) and scale to a 7-day week. All outputs are concrete numerics;
// a zero-event member yields all-zero metrics, which is a valid state.
type Aggregator struct {
	cfg config.MetricsConfig
}

// NewAggregator creates an aggregator with the given bands.
func NewAggregator(cfg config.MetricsConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate computes the window metrics for one member.
func (a *Aggregator) Aggregate(memberID string, events []types.ActivityEvent, windowEnd time.Time, windowDays int) types.MemberMetrics {
	days := windowDays
	if days < 1 {
		days = 1
	}
	weeks := float64(days) / 7.0

	m := types.MemberMetrics{
		MemberID:             memberID,
		SeverityDistribution: map[string]int{},
		ResponseTimeTrend:    1.0,
	}

	var incidents, commits, prs, reviews, messages []types.ActivityEvent
	for _, ev := range events {
		switch ev.Source {
		case types.SourceIncident:
			incidents = append(incidents, ev)
		case types.SourceCommit:
			commits = append(commits, ev)
		case types.SourcePR:
			prs = append(prs, ev)
		case types.SourceReview:
			reviews = append(reviews, ev)
		case types.SourceMessage:
			messages = append(messages, ev)
		}
	}

	a.aggregateIncidents(&m, incidents, weeks, days)
	a.aggregateMessages(&m, messages, weeks)

	if len(commits)+len(prs)+len(reviews) > 0 {
		m.Commit = a.aggregateActivity(commits, prs, reviews, windowEnd, days, weeks)
	}
	return m
}

func (a *Aggregator) aggregateIncidents(m *types.MemberMetrics, incidents []types.ActivityEvent, weeks float64, days int) {
	m.IncidentCount = len(incidents)
	if len(incidents) == 0 {
		return
	}
	m.IncidentsPerWeek = float64(len(incidents)) / weeks

	afterHours, weekend := 0, 0
	var responseTimes []float64
	for _, ev := range incidents {
		if inBand(ev.LocalHour, a.cfg.AfterHoursStart, a.cfg.AfterHoursEnd) {
			afterHours++
		}
		if ev.IsWeekend {
			weekend++
		}
		if ev.Severity != "" {
			m.SeverityDistribution[ev.Severity]++
		}
		if ev.HasResponseTime {
			responseTimes = append(responseTimes, ev.ResponseTimeMinutes)
		}
	}
	n := float64(len(incidents))
	m.AfterHoursPercentage = float64(afterHours) / n
	m.WeekendPercentage = float64(weekend) / n

	high := 0
	for label, count := range m.SeverityDistribution {
		if highSeverityLabels[label] {
			high += count
		}
	}
	m.HighSeverityShare = float64(high) / n

	if len(responseTimes) > 0 {
		m.HasResponseTimes = true
		m.AvgResponseTimeMinutes = mean(responseTimes)
	}

	sorted := append([]types.ActivityEvent(nil), incidents...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })
	m.IncidentClusterRatio = a.clusterRatio(sorted)
	m.ResponseTimeTrend = responseTrend(sorted)
	m.IncidentRestDayRatio = restDayRatio(sorted, days)
}

func (a *Aggregator) aggregateMessages(m *types.MemberMetrics, messages []types.ActivityEvent, weeks float64) {
	if len(messages) == 0 {
		return
	}
	m.MessagesPerWeek = float64(len(messages)) / weeks
	afterHours := 0
	for _, ev := range messages {
		if inBand(ev.LocalHour, a.cfg.AfterHoursStart, a.cfg.AfterHoursEnd) {
			afterHours++
		}
	}
	m.AfterHoursMessagePct = float64(afterHours) / float64(len(messages))
}

func (a *Aggregator) aggregateActivity(commits, prs, reviews []types.ActivityEvent, windowEnd time.Time, days int, weeks float64) *types.CommitMetrics {
	cm := &types.CommitMetrics{
		CommitCount: len(commits),
		PRCount:     len(prs),
		ReviewCount: len(reviews),
	}
	cm.CommitsPerWeek = float64(len(commits)) / weeks
	cm.PRsPerWeek = float64(len(prs)) / weeks
	cm.ReviewsPerWeek = float64(len(reviews)) / weeks
	cm.ReviewParticipationRate = safeRatio(float64(len(reviews)), float64(len(reviews)+len(prs)))

	if len(commits) > 0 {
		afterHours, weekend, large, reverts := 0, 0, 0, 0
		var sizes []float64
		for _, ev := range commits {
			if inBand(ev.LocalHour, a.cfg.CommitAfterHoursStart, a.cfg.CommitAfterHoursEnd) {
				afterHours++
			}
			if ev.IsWeekend {
				weekend++
			}
			if ev.Size > a.cfg.LargeCommitLines {
				large++
			}
			if ev.Reverted {
				reverts++
			}
			if ev.Size > 0 {
				sizes = append(sizes, ev.Size)
			}
		}
		n := float64(len(commits))
		cm.AfterHoursCommitPct = float64(afterHours) / n
		cm.WeekendCommitPct = float64(weekend) / n
		cm.LargeCommitRatio = float64(large) / n
		cm.RevertRate = float64(reverts) / n
		cm.AvgCommitSize = mean(sizes)
		cm.CommitSizeCV = coefficientOfVariation(sizes)

		cm.DailyCommitCounts = dailyCounts(commits, dayGridStart(windowEnd, days), days)
		cm.DailyCommitCV = coefficientOfVariation(cm.DailyCommitCounts)
		active := 0
		for _, c := range cm.DailyCommitCounts {
			if c > 0 {
				active++
			}
		}
		cm.ActiveDayRatio = float64(active) / float64(days)
		cm.RestDayRatio = 1 - cm.ActiveDayRatio
	}

	if len(prs) > 0 {
		merged := 0
		var revisions []float64
		for _, ev := range prs {
			if ev.Merged {
				merged++
			}
			revisions = append(revisions, ev.Revisions)
		}
		cm.PRMergeRate = float64(merged) / float64(len(prs))
		cm.AvgPRRevisions = mean(revisions)
	}
	return cm
}

// clusterRatio is the fraction of incidents with a neighbor closer than the
// cluster window. Input must be sorted by timestamp.
func (a *Aggregator) clusterRatio(sorted []types.ActivityEvent) float64 {
	if len(sorted) < 2 {
		return 0
	}
	window := time.Duration(a.cfg.ClusterWindowMinutes) * time.Minute
	clustered := 0
	for i := range sorted {
		near := false
		if i > 0 && sorted[i].Timestamp.Sub(sorted[i-1].Timestamp) < window {
			near = true
		}
		if i < len(sorted)-1 && sorted[i+1].Timestamp.Sub(sorted[i].Timestamp) < window {
			near = true
		}
		if near {
			clustered++
		}
	}
	return float64(clustered) / float64(len(sorted))
}

// responseTrend compares average response time in the later half of the
// window against the earlier half. >1 means responses are slowing down.
// Returns 1 when either half lacks response data.
func responseTrend(sorted []types.ActivityEvent) float64 {
	var early, late []float64
	mid := len(sorted) / 2
	for i, ev := range sorted {
		if !ev.HasResponseTime {
			continue
		}
		if i < mid {
			early = append(early, ev.ResponseTimeMinutes)
		} else {
			late = append(late, ev.ResponseTimeMinutes)
		}
	}
	if len(early) == 0 || len(late) == 0 {
		return 1
	}
	e := mean(early)
	if e == 0 {
		return 1
	}
	return mean(late) / e
}

func restDayRatio(events []types.ActivityEvent, days int) float64 {
	if days < 1 {
		return 0
	}
	seen := map[string]bool{}
	for _, ev := range events {
		seen[ev.Timestamp.Format("2006-01-02")] = true
	}
	return float64(days-len(seen)) / float64(days)
}

// dailyCounts buckets commits onto the calendar grid; the edge clamping in
// dayIndex keeps commits on the final partial day inside the last bucket.
func dailyCounts(events []types.ActivityEvent, gridStart time.Time, days int) []float64 {
	counts := make([]float64, days)
	for _, ev := range events {
		counts[dayIndex(ev.Timestamp, gridStart, days)]++
	}
	return counts
}

// inBand reports whether hour falls in [start, end), wrapping past midnight
// when start > end.
func inBand(hour, start, end int) bool {
	if start > end {
		return hour >= start || hour < end
	}
	return hour >= start && hour < end
}
