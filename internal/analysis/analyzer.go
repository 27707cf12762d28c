// Package analysis implements the burnout scoring engine: event
// normalization, metric aggregation, baseline calibration, dimension
// scoring, source fusion, flow classification, confidence estimation, team
// aggregation, and daily trend reconstruction. The engine is a pure function
// of (events, team context, config); it performs no I/O and keeps no state
// between runs.
package analysis

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	apperrors "github.com/ZanzyTHEbar/burnout-meter/internal/errors"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

// Analyzer orchestrates the full scoring pipeline.
type Analyzer struct {
	cfg            config.Config
	normalizer     *Normalizer
	aggregator     *Aggregator
	calibrator     *Calibrator
	incidentScorer DimensionScorer
	activityScorer DimensionScorer
	fusion         *Fusion
	flow           *FlowClassifier
	confidence     *ConfidenceEstimator
	team           *TeamAggregator
	trend          *TrendReconstructor
	now            func() time.Time
}

// NewAnalyzer wires the pipeline from one configuration. The dimension
// scorer strategies are fixed here; nothing downstream switches on
// methodology flags.
func NewAnalyzer(cfg config.Config) *Analyzer {
	return &Analyzer{
		cfg:            cfg,
		normalizer:     NewNormalizer(),
		aggregator:     NewAggregator(cfg.Metrics),
		calibrator:     NewCalibrator(cfg.Baselines),
		incidentScorer: NewIncidentScorer(),
		activityScorer: NewActivityScorer(),
		fusion:         NewFusion(cfg),
		flow:           NewFlowClassifier(cfg.Flow),
		confidence:     NewConfidenceEstimator(cfg.Confidence),
		team:           NewTeamAggregator(),
		trend:          NewTrendReconstructor(cfg.Trend),
		now:            time.Now,
	}
}

// Analyze runs one full analysis over a complete events+team snapshot.
// Malformed individual records are dropped and counted; only structurally
// invalid input aborts the run, because a half-built team aggregate is more
// dangerous than a clear failure.
func (a *Analyzer) Analyze(req types.AnalyzeRequest) (*types.AnalysisReport, error) {
	if req.Members == nil {
		return nil, apperrors.NewValidationError("members must be a list")
	}
	if req.WindowDays <= 0 {
		return nil, apperrors.NewValidationError("window_days must be positive")
	}

	windowEnd := a.now().UTC()
	if req.WindowEnd != nil {
		windowEnd = req.WindowEnd.UTC()
	}
	windowStart := windowEnd.AddDate(0, 0, -req.WindowDays)

	// Normalize every member's raw records into canonical events.
	memberIDs := make([]string, 0, len(req.Members))
	memberNames := make(map[string]string, len(req.Members))
	memberEvents := make(map[string][]types.ActivityEvent, len(req.Members))
	var allEvents []types.ActivityEvent
	dropped := 0
	eventCounts := map[string]int{}
	for _, member := range req.Members {
		if member.ID == "" {
			dropped += len(member.Incidents) + len(member.Commits) +
				len(member.PullRequests) + len(member.Reviews) + len(member.Messages)
			continue
		}
		me := a.normalizer.NormalizeMember(member, windowStart, windowEnd)
		memberIDs = append(memberIDs, member.ID)
		memberNames[member.ID] = member.Name
		memberEvents[member.ID] = me.Events
		allEvents = append(allEvents, me.Events...)
		dropped += me.Dropped
		for _, ev := range me.Events {
			eventCounts[string(ev.Source)]++
		}
	}

	// Aggregate metrics, then calibrate the shared baseline once and pass it
	// read-only into every scorer.
	metricsByID := make(map[string]types.MemberMetrics, len(memberIDs))
	teamMetrics := make([]types.MemberMetrics, 0, len(memberIDs))
	for _, id := range memberIDs {
		m := a.aggregator.Aggregate(id, memberEvents[id], windowEnd, req.WindowDays)
		metricsByID[id] = m
		teamMetrics = append(teamMetrics, m)
	}
	baselines := a.calibrator.Calibrate(teamMetrics)
	a.applyTeamContext(baselines, req.TeamContext)

	assessments := make([]types.BurnoutAssessment, 0, len(memberIDs))
	for _, id := range memberIDs {
		assessments = append(assessments, a.assessMember(id, memberNames[id], metricsByID[id], baselines, len(memberEvents[id]), req.WindowDays))
	}

	// Highest risk first; member ID breaks ties deterministically.
	sort.SliceStable(assessments, func(i, j int) bool {
		if assessments[i].OverallScore != assessments[j].OverallScore {
			return assessments[i].OverallScore > assessments[j].OverallScore
		}
		return assessments[i].MemberID < assessments[j].MemberID
	})

	teamHealth := a.team.Aggregate(assessments)
	teamConfidence := a.confidence.Team(teamMetrics, len(allEvents), req.WindowDays)
	dailyTrends, memberTrends := a.trend.Reconstruct(
		allEvents, memberIDs, windowEnd, req.WindowDays,
		a.cfg.Metrics.AfterHoursStart, a.cfg.Metrics.AfterHoursEnd,
	)

	return &types.AnalysisReport{
		AnalysisID:        uuid.New().String(),
		GeneratedAt:       a.now().UTC(),
		WindowStart:       windowStart,
		WindowEnd:         windowEnd,
		DaysAnalyzed:      req.WindowDays,
		IncludeWeekends:   req.IncludeWeekends,
		TeamHealth:        teamHealth,
		Assessments:       assessments,
		DailyTrends:       dailyTrends,
		MemberDailyTrends: memberTrends,
		Metadata: types.AnalysisMetadata{
			SourcesUsed:   sourcesUsed(eventCounts),
			EventCounts:   eventCounts,
			DroppedEvents: dropped,
			Confidence:    teamConfidence,
		},
	}, nil
}

func (a *Analyzer) assessMember(id, name string, m types.MemberMetrics, baselines types.Baselines, eventCount, windowDays int) types.BurnoutAssessment {
	var incidentDS, activityDS types.DimensionScore
	if m.HasIncidentData() {
		incidentDS = a.incidentScorer.Score(m, baselines)
	}
	if m.HasActivityData() {
		activityDS = a.activityScorer.Score(m, baselines)
	}

	dimensions, source := a.fusion.Fuse(m.HasIncidentData(), m.HasActivityData(), incidentDS, activityDS)

	assessment := types.BurnoutAssessment{
		MemberID:     id,
		Name:         name,
		Dimensions:   dimensions,
		ScoreSource:  source,
		OverallScore: a.fusion.Overall(dimensions),
		Confidence:   a.confidence.Member(m, eventCount, windowDays),
	}
	assessment.RiskLevel = a.fusion.RiskLevel(assessment.OverallScore)

	if source == types.ScoreSourceNone {
		// No data must never read as confirmed health.
		assessment.OverallScore = 0
		assessment.RiskLevel = types.RiskLow
		assessment.Confidence.Level = types.ConfidenceLow
	}

	if m.HasActivityData() {
		flow := a.flow.Classify(*m.Commit)
		assessment.Flow = &flow
	}
	return assessment
}

// applyTeamContext re-blends the load baselines when the caller supplies
// team-wide averages from a wider population than the current snapshot.
func (a *Analyzer) applyTeamContext(baselines types.Baselines, ctx *types.TeamContext) {
	if ctx == nil {
		return
	}
	reblend := func(key string, teamValue float64) {
		if teamValue <= 0 {
			return
		}
		bl := baselines[key]
		bl.TeamValue = teamValue
		bl.Value = a.cfg.Baselines.TeamWeight*teamValue + a.cfg.Baselines.IndustryWeight*bl.IndustryValue
		baselines[key] = bl
	}
	reblend(metricIncidentsPerWeek, ctx.AvgIncidentsPerWeek)
	reblend(metricCommitsPerWeek, ctx.AvgCommitsPerWeek)
}

func sourcesUsed(eventCounts map[string]int) []string {
	sources := make([]string, 0, len(eventCounts))
	for src := range eventCounts {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return sources
}
