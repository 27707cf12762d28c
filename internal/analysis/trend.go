package analysis

import (
	"time"

	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

const dayLayout = "2006-01-02"

// dayGridStart returns the first day of a days-long calendar grid whose last
// day contains windowEnd. A windowEnd exactly at midnight closes the previous
// day instead of opening a new one.
func dayGridStart(windowEnd time.Time, days int) time.Time {
	last := windowEnd.UTC().Truncate(24 * time.Hour)
	if last.Equal(windowEnd.UTC()) {
		last = last.AddDate(0, 0, -1)
	}
	return last.AddDate(0, 0, -(days - 1))
}

// dayIndex buckets a timestamp into the grid. The partial calendar days at
// either edge of the window clamp into the first and last points, so every
// in-window event lands in some point.
func dayIndex(ts time.Time, gridStart time.Time, days int) int {
	idx := int(ts.Sub(gridStart).Hours() / 24)
	if idx < 0 {
		return 0
	}
	if idx >= days {
		return days - 1
	}
	return idx
}

// TrendReconstructor replays the event timeline into a per-day health
// series. Every calendar day in the window produces a point; days with no
// events keep the baseline score instead of leaving a gap.
type TrendReconstructor struct {
	cfg config.TrendConfig
}

// NewTrendReconstructor creates a trend reconstructor.
func NewTrendReconstructor(cfg config.TrendConfig) *TrendReconstructor {
	return &TrendReconstructor{cfg: cfg}
}

// dayStats accumulates one day's team-wide incident signals.
type dayStats struct {
	incidents        int
	severityWeighted float64
	afterHours       int
	highSeverity     int
	byMember         map[string]int
}

// Reconstruct builds the daily series plus per-member daily breakdowns.
// Member breakdowns are pre-initialized for every member for every day, so
// "no data today" stays distinguishable from "zero incidents, confirmed".
func (t *TrendReconstructor) Reconstruct(
	events []types.ActivityEvent,
	memberIDs []string,
	windowEnd time.Time,
	days int,
	afterHoursStart, afterHoursEnd int,
) ([]types.DailyTrendPoint, map[string][]types.MemberDayPoint) {
	if days < 1 {
		days = 1
	}
	start := dayGridStart(windowEnd, days)

	stats := make([]dayStats, days)
	for i := range stats {
		stats[i].byMember = map[string]int{}
	}

	memberDays := make(map[string][]types.MemberDayPoint, len(memberIDs))
	for _, id := range memberIDs {
		points := make([]types.MemberDayPoint, days)
		for i := range points {
			points[i].Date = start.AddDate(0, 0, i).Format(dayLayout)
		}
		memberDays[id] = points
	}

	for _, ev := range events {
		if ev.Source != types.SourceIncident {
			continue
		}
		idx := dayIndex(ev.Timestamp, start, days)
		ds := &stats[idx]
		ds.incidents++
		ds.byMember[ev.MemberID]++

		weight := t.severityWeight(ev.Severity)
		ds.severityWeighted += weight
		if weight >= 2 {
			ds.highSeverity++
		}
		after := inBand(ev.LocalHour, afterHoursStart, afterHoursEnd)
		if after {
			ds.afterHours++
		}

		if points, ok := memberDays[ev.MemberID]; ok {
			points[idx].IncidentCount++
			points[idx].SeverityWeightedCount += weight
			if after {
				points[idx].AfterHoursCount++
			}
		}
	}

	teamSize := len(memberIDs)
	if teamSize < 1 {
		teamSize = 1
	}

	series := make([]types.DailyTrendPoint, days)
	for i, ds := range stats {
		score := t.dayScore(ds, teamSize)
		series[i] = types.DailyTrendPoint{
			Date:                  start.AddDate(0, 0, i).Format(dayLayout),
			HealthScore:           score,
			IncidentCount:         ds.incidents,
			SeverityWeightedCount: ds.severityWeighted,
			AfterHoursCount:       ds.afterHours,
			MembersAtRisk:         t.dayMembersAtRisk(ds),
			TotalMembers:          len(memberIDs),
			HealthStatus:          HealthStatus(score),
		}
	}
	return series, memberDays
}

// dayScore starts from the baseline and subtracts capped penalties. The
// floor keeps one catastrophic day from collapsing the series to zero.
func (t *TrendReconstructor) dayScore(ds dayStats, teamSize int) float64 {
	perMember := float64(ds.incidents) / float64(teamSize)

	incidentPenalty := minf(t.cfg.IncidentPenaltyCap, perMember*3.0)
	severityPenalty := minf(t.cfg.SeverityPenaltyCap, ds.severityWeighted/float64(teamSize)*1.5)
	afterHoursPenalty := minf(t.cfg.AfterHoursPenaltyCap, float64(ds.afterHours)/float64(teamSize)*2.0)
	highSevPenalty := minf(t.cfg.HighSevPenaltyCap, float64(ds.highSeverity)*0.5)
	concentrationPenalty := t.concentrationPenalty(ds)

	score := t.cfg.BaselineScore - incidentPenalty - severityPenalty -
		afterHoursPenalty - highSevPenalty - concentrationPenalty
	if score < t.cfg.FloorScore {
		return t.cfg.FloorScore
	}
	return score
}

// concentrationPenalty fires when very few distinct people absorbed a
// disproportionate share of the day's incidents.
func (t *TrendReconstructor) concentrationPenalty(ds dayStats) float64 {
	responders := len(ds.byMember)
	if responders == 0 {
		return 0
	}
	perResponder := float64(ds.incidents) / float64(responders)
	if perResponder <= t.cfg.ConcentrationRatio {
		return 0
	}
	return minf(t.cfg.ConcentrationCap, 0.3*(perResponder-t.cfg.ConcentrationRatio))
}

// dayMembersAtRisk counts members who either absorbed multiple incidents or
// were paged after hours that day.
func (t *TrendReconstructor) dayMembersAtRisk(ds dayStats) int {
	atRisk := 0
	for _, count := range ds.byMember {
		if count >= 2 {
			atRisk++
		}
	}
	if atRisk == 0 && ds.afterHours > 0 {
		atRisk = 1
	}
	return atRisk
}

func (t *TrendReconstructor) severityWeight(label string) float64 {
	if w, ok := t.cfg.SeverityWeights[label]; ok {
		return w
	}
	return 1.0
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
