package types

import "time"

// EventSource identifies which activity stream an event came from.
type EventSource string

const (
	SourceIncident EventSource = "incident"
	SourceCommit   EventSource = "commit"
	SourcePR       EventSource = "pr"
	SourceReview   EventSource = "review"
	SourceMessage  EventSource = "message"
)

// RiskLevel buckets an overall burnout score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ScoreSource records which signals produced a member's score.
type ScoreSource string

const (
	ScoreSourceIncident ScoreSource = "incident_based"
	ScoreSourceActivity ScoreSource = "activity_based"
	ScoreSourceHybrid   ScoreSource = "hybrid"
	ScoreSourceNone     ScoreSource = "none"
)

// ConfidenceLevel buckets a confidence score.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// FlowState classifies high-activity periods as sustainable or frantic.
type FlowState string

const (
	FlowHealthy  FlowState = "healthy_flow"
	FlowModerate FlowState = "moderate_flow"
	FlowFrantic  FlowState = "frantic_activity"
)

// RawRecord is an unvalidated record from an upstream platform. The engine
// only ever inspects it through the normalizer; nothing downstream branches
// on its shape.
type RawRecord map[string]any

// MemberRecord is one tracked person with their raw per-source records, as
// handed in by the collection layer.
type MemberRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name,omitempty"`
	Timezone     string      `json:"timezone,omitempty"`
	Platform     string      `json:"platform,omitempty"` // incident platform: rootly, pagerduty
	Incidents    []RawRecord `json:"incidents,omitempty"`
	Commits      []RawRecord `json:"commits,omitempty"`
	PullRequests []RawRecord `json:"pull_requests,omitempty"`
	Reviews      []RawRecord `json:"reviews,omitempty"`
	Messages     []RawRecord `json:"messages,omitempty"`
}

// TeamContext carries optional team-wide averages supplied by the caller for
// relative comparisons. Zero values mean "derive from the current snapshot".
type TeamContext struct {
	AvgIncidentsPerWeek float64 `json:"avg_incidents_per_week,omitempty"`
	AvgCommitsPerWeek   float64 `json:"avg_commits_per_week,omitempty"`
}

// AnalyzeRequest is the engine input contract.
type AnalyzeRequest struct {
	Members         []MemberRecord `json:"members"`
	WindowDays      int            `json:"window_days"`
	IncludeWeekends bool           `json:"include_weekends"`
	TeamContext     *TeamContext   `json:"team_context,omitempty"`
	WindowEnd       *time.Time     `json:"window_end,omitempty"`
}

// ActivityEvent is the canonical event every raw record normalizes into.
type ActivityEvent struct {
	Source              EventSource `json:"source"`
	MemberID            string      `json:"member_id"`
	Timestamp           time.Time   `json:"timestamp"`
	LocalHour           int         `json:"local_hour"`
	IsWeekend           bool        `json:"is_weekend"`
	Severity            string      `json:"severity,omitempty"`
	Size                float64     `json:"size,omitempty"`
	ResponseTimeMinutes float64     `json:"response_time_minutes,omitempty"`
	HasResponseTime     bool        `json:"-"`
	Merged              bool        `json:"-"`
	Reverted            bool        `json:"-"`
	Revisions           float64     `json:"-"`
}

// CommitMetrics holds code-hosting rates for one member. Nil on MemberMetrics
// when the member has no commit/PR/review data at all.
type CommitMetrics struct {
	CommitsPerWeek          float64   `json:"commits_per_week"`
	AfterHoursCommitPct     float64   `json:"after_hours_commit_pct"`
	WeekendCommitPct        float64   `json:"weekend_commit_pct"`
	AvgCommitSize           float64   `json:"avg_commit_size"`
	CommitSizeCV            float64   `json:"commit_size_cv"`
	LargeCommitRatio        float64   `json:"large_commit_ratio"`
	PRsPerWeek              float64   `json:"prs_per_week"`
	PRMergeRate             float64   `json:"pr_merge_rate"`
	AvgPRRevisions          float64   `json:"avg_pr_revisions"`
	RevertRate              float64   `json:"revert_rate"`
	ReviewsPerWeek          float64   `json:"reviews_per_week"`
	ReviewParticipationRate float64   `json:"review_participation_rate"`
	DailyCommitCounts       []float64 `json:"-"`
	DailyCommitCV           float64   `json:"daily_commit_cv"`
	ActiveDayRatio          float64   `json:"active_day_ratio"`
	RestDayRatio            float64   `json:"rest_day_ratio"`
	CommitCount             int       `json:"commit_count"`
	PRCount                 int       `json:"pr_count"`
	ReviewCount             int       `json:"review_count"`
}

// MemberMetrics is the full per-member aggregate for one analysis window.
// Every field is a concrete numeric; scorers never see a null.
type MemberMetrics struct {
	MemberID               string         `json:"member_id"`
	IncidentCount          int            `json:"incident_count"`
	IncidentsPerWeek       float64        `json:"incidents_per_week"`
	AfterHoursPercentage   float64        `json:"after_hours_percentage"`
	WeekendPercentage      float64        `json:"weekend_percentage"`
	AvgResponseTimeMinutes float64        `json:"avg_response_time_minutes"`
	HasResponseTimes       bool           `json:"has_response_times"`
	ResponseTimeTrend      float64        `json:"response_time_trend"`
	SeverityDistribution   map[string]int `json:"severity_distribution"`
	HighSeverityShare      float64        `json:"high_severity_share"`
	IncidentClusterRatio   float64        `json:"incident_cluster_ratio"`
	IncidentRestDayRatio   float64        `json:"incident_rest_day_ratio"`
	MessagesPerWeek        float64        `json:"messages_per_week"`
	AfterHoursMessagePct   float64        `json:"after_hours_message_pct"`
	Commit                 *CommitMetrics `json:"commit_metrics,omitempty"`
}

// HasIncidentData reports whether any incident signal exists for the member.
func (m MemberMetrics) HasIncidentData() bool { return m.IncidentCount > 0 }

// HasActivityData reports whether any code-hosting signal exists.
func (m MemberMetrics) HasActivityData() bool { return m.Commit != nil }

// Baseline is the reference value for one metric: the current team median
// blended with a fixed industry constant.
type Baseline struct {
	Metric        string  `json:"metric"`
	TeamValue     float64 `json:"team_value"`
	IndustryValue float64 `json:"industry_value"`
	Value         float64 `json:"value"`
}

// Baselines indexes baselines by metric key.
type Baselines map[string]Baseline

// Value returns the blended baseline for key, or the fallback when the key
// is unknown.
func (b Baselines) Value(key string, fallback float64) float64 {
	if bl, ok := b[key]; ok && bl.Value > 0 {
		return bl.Value
	}
	return fallback
}

// FactorContribution is one named sub-factor inside a dimension, kept for
// auditability. Weights sum to 1.0 within each dimension.
type FactorContribution struct {
	Name     string  `json:"name"`
	RawScore float64 `json:"raw_score"`
	Weight   float64 `json:"weight"`
}

// DimensionScore holds the three burnout dimensions, 0-10 each, burnout
// direction (higher is worse) for all three.
type DimensionScore struct {
	PersonalBurnout       float64              `json:"personal_burnout"`
	WorkRelatedBurnout    float64              `json:"work_related_burnout"`
	AccomplishmentBurnout float64              `json:"accomplishment_burnout"`
	PersonalFactors       []FactorContribution `json:"personal_factors,omitempty"`
	WorkRelatedFactors    []FactorContribution `json:"work_related_factors,omitempty"`
	AccomplishmentFactors []FactorContribution `json:"accomplishment_factors,omitempty"`
}

// Confidence estimates how trustworthy a score is, orthogonal to the score.
type Confidence struct {
	Level   ConfidenceLevel    `json:"level"`
	Score   float64            `json:"score"`
	Factors map[string]float64 `json:"factors"`
	Notes   []string           `json:"notes,omitempty"`
}

// FlowAssessment is the flow-state classifier output for members with
// activity data.
type FlowAssessment struct {
	State       FlowState `json:"state"`
	Score       float64   `json:"score"`
	Consistency float64   `json:"consistency"`
	Quality     float64   `json:"quality"`
	Balance     float64   `json:"balance"`
	Boundaries  float64   `json:"boundaries"`
}

// BurnoutAssessment is the per-member result of one analysis run.
type BurnoutAssessment struct {
	MemberID     string          `json:"member_id"`
	Name         string          `json:"name,omitempty"`
	OverallScore float64         `json:"overall_score"`
	RiskLevel    RiskLevel       `json:"risk_level"`
	Dimensions   DimensionScore  `json:"dimensions"`
	ScoreSource  ScoreSource     `json:"score_source"`
	Flow         *FlowAssessment `json:"flow,omitempty"`
	Confidence   Confidence      `json:"confidence"`
}

// TeamHealth is the aggregate view over all assessments of a run.
type TeamHealth struct {
	OverallScore     float64           `json:"overall_score"`
	AverageBurnout   float64           `json:"average_burnout"`
	RiskDistribution map[RiskLevel]int `json:"risk_distribution"`
	HealthStatus     string            `json:"health_status"`
	MembersAtRisk    int               `json:"members_at_risk"`
}

// DailyTrendPoint is one calendar day of the reconstructed health series.
// Days with no events still appear with the baseline score.
type DailyTrendPoint struct {
	Date                  string  `json:"date"`
	HealthScore           float64 `json:"health_score"`
	IncidentCount         int     `json:"incident_count"`
	SeverityWeightedCount float64 `json:"severity_weighted_count"`
	AfterHoursCount       int     `json:"after_hours_count"`
	MembersAtRisk         int     `json:"members_at_risk"`
	TotalMembers          int     `json:"total_members"`
	HealthStatus          string  `json:"health_status"`
}

// MemberDayPoint is one member's share of one day. Points exist for every
// member for every day, so "zero incidents, confirmed" is distinguishable
// from a missing day.
type MemberDayPoint struct {
	Date                  string  `json:"date"`
	IncidentCount         int     `json:"incident_count"`
	AfterHoursCount       int     `json:"after_hours_count"`
	SeverityWeightedCount float64 `json:"severity_weighted_count"`
}

// AnalysisMetadata discloses what went into a report: which sources
// contributed, how much was dropped, and the confidence breakdown. Consumers
// rely on it to tell "low risk" apart from "no data".
type AnalysisMetadata struct {
	SourcesUsed   []string       `json:"sources_used"`
	EventCounts   map[string]int `json:"event_counts"`
	DroppedEvents int            `json:"dropped_events"`
	Confidence    Confidence     `json:"confidence"`
}

// AnalysisReport is the full engine output for one run.
type AnalysisReport struct {
	AnalysisID        string                      `json:"analysis_id"`
	GeneratedAt       time.Time                   `json:"generated_at"`
	WindowStart       time.Time                   `json:"window_start"`
	WindowEnd         time.Time                   `json:"window_end"`
	DaysAnalyzed      int                         `json:"days_analyzed"`
	IncludeWeekends   bool                        `json:"include_weekends"`
	TeamHealth        TeamHealth                  `json:"team_health"`
	Assessments       []BurnoutAssessment         `json:"assessments"`
	DailyTrends       []DailyTrendPoint           `json:"daily_trends"`
	MemberDailyTrends map[string][]MemberDayPoint `json:"member_daily_trends"`
	Metadata          AnalysisMetadata            `json:"metadata"`
}
