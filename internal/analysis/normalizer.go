package analysis

import (
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

// timestampFields is the prioritized list of fields the normalizer probes for
// a record's primary timestamp. Platform-specific aliases come last.
var timestampFields = []string{
	"timestamp", "created_at", "date", "occurred_at",
	"started_at", "committed_at", "authored_at", "submitted_at", "sent_at", "ts",
}

// ackFields locate the acknowledgment/start timestamp used for response times.
var ackFields = []string{"acknowledged_at", "ack_at", "responded_at", "resolved_started_at"}

var severityFields = []string{"severity", "priority", "urgency"}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizer turns raw platform records into canonical ActivityEvents. It is
// the only place that looks at a record's shape; everything downstream works
// on ActivityEvent alone.
type Normalizer struct{}

// NewNormalizer creates a normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// MemberEvents is the normalization result for one member.
type MemberEvents struct {
	MemberID string
	Events   []types.ActivityEvent
	Dropped  int
}

// NormalizeMember converts every raw record of a member into ActivityEvents
// within [windowStart, windowEnd]. Records with no parsable timestamp are
// dropped and counted; they never abort the run. Out-of-window events are
// excluded without counting as drops.
func (n *Normalizer) NormalizeMember(m types.MemberRecord, windowStart, windowEnd time.Time) MemberEvents {
	loc := memberLocation(m.Timezone)

	out := MemberEvents{MemberID: m.ID}
	add := func(ev types.ActivityEvent, ok bool) {
		if !ok {
			out.Dropped++
			return
		}
		if ev.Timestamp.Before(windowStart) || ev.Timestamp.After(windowEnd) {
			return
		}
		out.Events = append(out.Events, ev)
	}

	for _, r := range m.Incidents {
		add(n.normalizeIncident(m.ID, r, loc))
	}
	for _, r := range m.Commits {
		add(n.normalizeCommit(m.ID, r, loc))
	}
	for _, r := range m.PullRequests {
		add(n.normalizePR(m.ID, r, loc))
	}
	for _, r := range m.Reviews {
		add(n.normalizeSimple(m.ID, types.SourceReview, r, loc))
	}
	for _, r := range m.Messages {
		add(n.normalizeSimple(m.ID, types.SourceMessage, r, loc))
	}
	return out
}

func (n *Normalizer) normalizeIncident(memberID string, r types.RawRecord, loc *time.Location) (types.ActivityEvent, bool) {
	ts, ok := extractTimestamp(r)
	if !ok {
		return types.ActivityEvent{}, false
	}
	ev := newEvent(types.SourceIncident, memberID, ts, loc)
	ev.Severity = extractSeverity(r)
	if ack, ok := extractAckTimestamp(r); ok && ack.After(ts) {
		ev.ResponseTimeMinutes = ack.Sub(ts).Minutes()
		ev.HasResponseTime = true
	}
	return ev, true
}

func (n *Normalizer) normalizeCommit(memberID string, r types.RawRecord, loc *time.Location) (types.ActivityEvent, bool) {
	ts, ok := extractTimestamp(r)
	if !ok {
		return types.ActivityEvent{}, false
	}
	ev := newEvent(types.SourceCommit, memberID, ts, loc)
	ev.Size = extractCommitSize(r)
	ev.Reverted = extractRevert(r)
	return ev, true
}

func (n *Normalizer) normalizePR(memberID string, r types.RawRecord, loc *time.Location) (types.ActivityEvent, bool) {
	ts, ok := extractTimestamp(r)
	if !ok {
		return types.ActivityEvent{}, false
	}
	ev := newEvent(types.SourcePR, memberID, ts, loc)
	if merged, ok := r["merged"].(bool); ok {
		ev.Merged = merged
	} else if v, ok := r["merged_at"]; ok {
		s, _ := v.(string)
		ev.Merged = s != ""
	}
	if rev, ok := asFloat(r["revisions"]); ok {
		ev.Revisions = rev
	} else if rev, ok := asFloat(r["review_comments"]); ok {
		ev.Revisions = rev
	}
	return ev, true
}

func (n *Normalizer) normalizeSimple(memberID string, src types.EventSource, r types.RawRecord, loc *time.Location) (types.ActivityEvent, bool) {
	ts, ok := extractTimestamp(r)
	if !ok {
		return types.ActivityEvent{}, false
	}
	return newEvent(src, memberID, ts, loc), true
}

func newEvent(src types.EventSource, memberID string, ts time.Time, loc *time.Location) types.ActivityEvent {
	local := ts.In(loc)
	wd := local.Weekday()
	return types.ActivityEvent{
		Source:    src,
		MemberID:  memberID,
		Timestamp: ts.UTC(),
		LocalHour: local.Hour(),
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
	}
}

func memberLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func extractTimestamp(r types.RawRecord) (time.Time, bool) {
	for _, field := range timestampFields {
		v, ok := r[field]
		if !ok {
			continue
		}
		if ts, ok := parseTimestamp(v); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

func extractAckTimestamp(r types.RawRecord) (time.Time, bool) {
	for _, field := range ackFields {
		v, ok := r[field]
		if !ok {
			continue
		}
		if ts, ok := parseTimestamp(v); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseTimestamp accepts RFC3339 variants, date-only strings, and epoch
// numerics (seconds or milliseconds, including Slack-style fractional
// seconds carried as strings).
func parseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epochToTime(f), true
		}
		return time.Time{}, false
	case float64:
		return epochToTime(t), true
	case int:
		return epochToTime(float64(t)), true
	case int64:
		return epochToTime(float64(t)), true
	default:
		return time.Time{}, false
	}
}

func epochToTime(f float64) time.Time {
	// Values past the year 33658 in seconds are millisecond epochs.
	if f > 1e12 {
		f /= 1000
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}

// extractSeverity reads a raw severity label without normalizing it; the
// dimension scorers decide what a label means.
func extractSeverity(r types.RawRecord) string {
	for _, field := range severityFields {
		v, ok := r[field]
		if !ok {
			continue
		}
		switch s := v.(type) {
		case string:
			return strings.ToLower(s)
		case map[string]any:
			// Rootly nests severity as {"name": "..."}.
			if name, ok := s["name"].(string); ok {
				return strings.ToLower(name)
			}
		}
	}
	return ""
}

func extractCommitSize(r types.RawRecord) float64 {
	if size, ok := asFloat(r["size"]); ok {
		return size
	}
	add, okA := asFloat(r["additions"])
	del, okD := asFloat(r["deletions"])
	if okA || okD {
		return add + del
	}
	if stats, ok := r["stats"].(map[string]any); ok {
		if total, ok := asFloat(stats["total"]); ok {
			return total
		}
	}
	return 0
}

func extractRevert(r types.RawRecord) bool {
	if rev, ok := r["reverted"].(bool); ok {
		return rev
	}
	if msg, ok := r["message"].(string); ok {
		return strings.HasPrefix(strings.ToLower(msg), "revert")
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
