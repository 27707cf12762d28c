package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(config.New().Metrics)
}

func incidentAt(day, hour int, opts ...func(*types.ActivityEvent)) types.ActivityEvent {
	ev := types.ActivityEvent{
		Source:    types.SourceIncident,
		MemberID:  "alice",
		Timestamp: testWindowStart.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour),
		LocalHour: hour,
	}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

func commitAt(day, hour int, opts ...func(*types.ActivityEvent)) types.ActivityEvent {
	ev := incidentAt(day, hour, opts...)
	ev.Source = types.SourceCommit
	return ev
}

func TestAggregateZeroEvents(t *testing.T) {
	m := newTestAggregator().Aggregate("alice", nil, windowEndAfter(30), 30)

	assert.Equal(t, "alice", m.MemberID)
	assert.Zero(t, m.IncidentCount)
	assert.Zero(t, m.IncidentsPerWeek)
	assert.Zero(t, m.AfterHoursPercentage)
	assert.False(t, m.HasResponseTimes)
	assert.Nil(t, m.Commit)
	assert.False(t, m.HasIncidentData())
	assert.False(t, m.HasActivityData())
}

func TestAggregateIncidentRates(t *testing.T) {
	events := []types.ActivityEvent{
		incidentAt(0, 10),
		incidentAt(3, 19), // after hours for incidents
		incidentAt(6, 3),  // after hours for incidents
		incidentAt(9, 10, func(ev *types.ActivityEvent) { ev.IsWeekend = true }),
	}

	m := newTestAggregator().Aggregate("alice", events, windowEndAfter(14), 14)

	assert.Equal(t, 4, m.IncidentCount)
	// 4 incidents over 2 weeks.
	assert.InDelta(t, 2.0, m.IncidentsPerWeek, 1e-9)
	assert.InDelta(t, 0.5, m.AfterHoursPercentage, 1e-9)
	assert.InDelta(t, 0.25, m.WeekendPercentage, 1e-9)
}

func TestAggregateAfterHoursBands(t *testing.T) {
	// 19:00 is after hours for incidents ([18,08)) but not for commits
	// ([22,06)); 23:00 is after hours for both.
	events := []types.ActivityEvent{
		incidentAt(0, 19),
		incidentAt(1, 9),
		commitAt(2, 19),
		commitAt(3, 23),
	}

	m := newTestAggregator().Aggregate("alice", events, windowEndAfter(14), 14)

	assert.InDelta(t, 0.5, m.AfterHoursPercentage, 1e-9)
	require.NotNil(t, m.Commit)
	assert.InDelta(t, 0.5, m.Commit.AfterHoursCommitPct, 1e-9)
}

func TestAggregateResponseTimes(t *testing.T) {
	withResponse := func(minutes float64) func(*types.ActivityEvent) {
		return func(ev *types.ActivityEvent) {
			ev.ResponseTimeMinutes = minutes
			ev.HasResponseTime = true
		}
	}

	t.Run("averages only events with both timestamps", func(t *testing.T) {
		events := []types.ActivityEvent{
			incidentAt(0, 10, withResponse(10)),
			incidentAt(1, 10, withResponse(30)),
			incidentAt(2, 10), // no ack; excluded, not penalized
		}
		m := newTestAggregator().Aggregate("alice", events, windowEndAfter(14), 14)
		assert.True(t, m.HasResponseTimes)
		assert.InDelta(t, 20.0, m.AvgResponseTimeMinutes, 1e-9)
	})

	t.Run("no acked incidents yields zero and unset flag", func(t *testing.T) {
		events := []types.ActivityEvent{incidentAt(0, 10)}
		m := newTestAggregator().Aggregate("alice", events, windowEndAfter(14), 14)
		assert.False(t, m.HasResponseTimes)
		assert.Zero(t, m.AvgResponseTimeMinutes)
	})
}

func TestAggregateSeverityDistribution(t *testing.T) {
	withSeverity := func(label string) func(*types.ActivityEvent) {
		return func(ev *types.ActivityEvent) { ev.Severity = label }
	}
	events := []types.ActivityEvent{
		incidentAt(0, 10, withSeverity("sev1")),
		incidentAt(1, 10, withSeverity("sev1")),
		incidentAt(2, 10, withSeverity("sev3")),
		incidentAt(3, 10),
	}

	m := newTestAggregator().Aggregate("alice", events, windowEndAfter(14), 14)

	// Raw labels, no normalization.
	assert.Equal(t, map[string]int{"sev1": 2, "sev3": 1}, m.SeverityDistribution)
	assert.InDelta(t, 0.5, m.HighSeverityShare, 1e-9)
}

func TestAggregateClusterRatio(t *testing.T) {
	events := []types.ActivityEvent{
		incidentAt(0, 10),
		{Source: types.SourceIncident, MemberID: "alice",
			Timestamp: testWindowStart.Add(10*time.Hour + 30*time.Minute), LocalHour: 10},
		incidentAt(7, 10),
	}

	m := newTestAggregator().Aggregate("alice", events, windowEndAfter(14), 14)

	// Two of three incidents sit within the two-hour cluster window.
	assert.InDelta(t, 2.0/3.0, m.IncidentClusterRatio, 1e-9)
}

func TestAggregateCommitMetrics(t *testing.T) {
	withSize := func(size float64) func(*types.ActivityEvent) {
		return func(ev *types.ActivityEvent) { ev.Size = size }
	}
	events := []types.ActivityEvent{
		commitAt(0, 10, withSize(100)),
		commitAt(1, 10, withSize(500)), // large
		commitAt(2, 10, withSize(100), func(ev *types.ActivityEvent) { ev.Reverted = true }),
		commitAt(3, 10, withSize(100)),
	}

	m := newTestAggregator().Aggregate("alice", events, windowEndAfter(14), 14)

	require.NotNil(t, m.Commit)
	cm := m.Commit
	assert.Equal(t, 4, cm.CommitCount)
	assert.InDelta(t, 2.0, cm.CommitsPerWeek, 1e-9)
	assert.InDelta(t, 0.25, cm.LargeCommitRatio, 1e-9)
	assert.InDelta(t, 0.25, cm.RevertRate, 1e-9)
	assert.InDelta(t, 200.0, cm.AvgCommitSize, 1e-9)
	assert.Len(t, cm.DailyCommitCounts, 14)
	assert.InDelta(t, 4.0/14.0, cm.ActiveDayRatio, 1e-9)
	assert.InDelta(t, 10.0/14.0, cm.RestDayRatio, 1e-9)
}

func TestAggregateFinalPartialDayCommits(t *testing.T) {
	// Window closes mid-day; the commit on that same calendar day still
	// belongs to the last daily bucket.
	end := windowEndAfter(14).Add(12 * time.Hour)
	events := []types.ActivityEvent{
		commitAt(7, 10),
		commitAt(14, 10),
	}

	m := newTestAggregator().Aggregate("alice", events, end, 14)

	require.NotNil(t, m.Commit)
	cm := m.Commit
	require.Len(t, cm.DailyCommitCounts, 14)
	assert.InDelta(t, 1.0, cm.DailyCommitCounts[len(cm.DailyCommitCounts)-1], 1e-9)

	total := 0.0
	for _, c := range cm.DailyCommitCounts {
		total += c
	}
	assert.InDelta(t, 2.0, total, 1e-9)
	assert.InDelta(t, 2.0/14.0, cm.ActiveDayRatio, 1e-9)
}

func TestAggregatePRMetrics(t *testing.T) {
	pr := func(day int, merged bool, revisions float64) types.ActivityEvent {
		ev := incidentAt(day, 10)
		ev.Source = types.SourcePR
		ev.Merged = merged
		ev.Revisions = revisions
		return ev
	}
	review := func(day int) types.ActivityEvent {
		ev := incidentAt(day, 10)
		ev.Source = types.SourceReview
		return ev
	}
	events := []types.ActivityEvent{
		pr(0, true, 2), pr(1, true, 4), pr(2, false, 6),
		review(3), review(4), review(5),
	}

	m := newTestAggregator().Aggregate("alice", events, windowEndAfter(14), 14)

	require.NotNil(t, m.Commit)
	cm := m.Commit
	assert.Equal(t, 3, cm.PRCount)
	assert.Equal(t, 3, cm.ReviewCount)
	assert.InDelta(t, 2.0/3.0, cm.PRMergeRate, 1e-9)
	assert.InDelta(t, 4.0, cm.AvgPRRevisions, 1e-9)
	assert.InDelta(t, 0.5, cm.ReviewParticipationRate, 1e-9)
}

func TestInBand(t *testing.T) {
	tests := []struct {
		name             string
		hour, start, end int
		expected         bool
	}{
		{name: "evening inside wrap band", hour: 19, start: 18, end: 8, expected: true},
		{name: "early morning inside wrap band", hour: 3, start: 18, end: 8, expected: true},
		{name: "business hours outside wrap band", hour: 12, start: 18, end: 8, expected: false},
		{name: "end of wrap band excluded", hour: 8, start: 18, end: 8, expected: false},
		{name: "night-coding band excludes evening", hour: 19, start: 22, end: 6, expected: false},
		{name: "night-coding band includes midnight", hour: 0, start: 22, end: 6, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inBand(tt.hour, tt.start, tt.end))
		})
	}
}
