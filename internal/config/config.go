// Package config holds the shared scoring configuration: dimension weights,
// risk thresholds, transfer-curve breakpoints, industry baselines, and trend
// constants. Defaults are production values; a YAML file and BURNOUT_-prefixed
// environment variables can override them.
package config

import "math"

// DimensionWeights blends the three burnout dimensions into the overall
// score. The asymmetric third on accomplishment is intentional rounding.
type DimensionWeights struct {
	Personal       float64 `koanf:"personal"`
	WorkRelated    float64 `koanf:"work_related"`
	Accomplishment float64 `koanf:"accomplishment"`
}

// RiskThresholds are contiguous lower bounds in 0-10 burnout space.
type RiskThresholds struct {
	Medium   float64 `koanf:"medium"`
	High     float64 `koanf:"high"`
	Critical float64 `koanf:"critical"`
}

// FusionWeights blends the incident and activity scores for hybrid members.
type FusionWeights struct {
	Incident float64 `koanf:"incident"`
	Activity float64 `koanf:"activity"`
}

// MetricsConfig controls metric aggregation bands.
type MetricsConfig struct {
	// After-hours band for incidents and messages, local time.
	AfterHoursStart int `koanf:"after_hours_start"`
	AfterHoursEnd   int `koanf:"after_hours_end"`
	// Narrower night-coding band for commits.
	CommitAfterHoursStart int `koanf:"commit_after_hours_start"`
	CommitAfterHoursEnd   int `koanf:"commit_after_hours_end"`
	// Commits above this many changed lines count as large.
	LargeCommitLines float64 `koanf:"large_commit_lines"`
	// Incidents closer together than this many minutes cluster.
	ClusterWindowMinutes float64 `koanf:"cluster_window_minutes"`
}

// BaselineConfig anchors team medians to fixed industry reference values.
type BaselineConfig struct {
	TeamWeight     float64            `koanf:"team_weight"`
	IndustryWeight float64            `koanf:"industry_weight"`
	Industry       map[string]float64 `koanf:"industry"`
}

// ConfidenceConfig weights the data-sufficiency factors.
type ConfidenceConfig struct {
	CompletenessWeight    float64 `koanf:"completeness_weight"`
	TemporalWeight        float64 `koanf:"temporal_weight"`
	SampleSizeWeight      float64 `koanf:"sample_size_weight"`
	MinWindowDays         int     `koanf:"min_window_days"`
	OptimalWindowDays     int     `koanf:"optimal_window_days"`
	IdealTeamSize         int     `koanf:"ideal_team_size"`
	ReferenceWeeklyEvents float64 `koanf:"reference_weekly_events"`
	MediumThreshold       float64 `koanf:"medium_threshold"`
	HighThreshold         float64 `koanf:"high_threshold"`
}

// TrendConfig controls the daily trend reconstruction.
type TrendConfig struct {
	BaselineScore        float64 `koanf:"baseline_score"`
	FloorScore           float64 `koanf:"floor_score"`
	IncidentPenaltyCap   float64 `koanf:"incident_penalty_cap"`
	SeverityPenaltyCap   float64 `koanf:"severity_penalty_cap"`
	AfterHoursPenaltyCap float64 `koanf:"after_hours_penalty_cap"`
	HighSevPenaltyCap    float64 `koanf:"high_sev_penalty_cap"`
	ConcentrationCap     float64 `koanf:"concentration_cap"`
	// ConcentrationRatio is the incidents-per-distinct-responder level above
	// which the concentration penalty kicks in. Heuristic; tune freely.
	ConcentrationRatio float64            `koanf:"concentration_ratio"`
	SeverityWeights    map[string]float64 `koanf:"severity_weights"`
}

// FlowConfig holds flow-state classification thresholds.
type FlowConfig struct {
	HealthyThreshold  float64 `koanf:"healthy_threshold"`
	ModerateThreshold float64 `koanf:"moderate_threshold"`
}

// ServerConfig configures the serving seam, not the engine.
type ServerConfig struct {
	Addr           string   `koanf:"addr"`
	AllowedOrigins []string `koanf:"allowed_origins"`
	RateLimitRPS   float64  `koanf:"rate_limit_rps"`
	RateLimitBurst int      `koanf:"rate_limit_burst"`
}

// Config is the complete engine configuration.
type Config struct {
	LogLevel   string           `koanf:"log_level"`
	Dimensions DimensionWeights `koanf:"dimensions"`
	Risk       RiskThresholds   `koanf:"risk"`
	Fusion     FusionWeights    `koanf:"fusion"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Baselines  BaselineConfig   `koanf:"baselines"`
	Confidence ConfidenceConfig `koanf:"confidence"`
	Trend      TrendConfig      `koanf:"trend"`
	Flow       FlowConfig       `koanf:"flow"`
	Server     ServerConfig     `koanf:"server"`
}

// New returns the production default configuration.
func New() Config {
	return Config{
		LogLevel: "info",
		Dimensions: DimensionWeights{
			Personal:       0.333,
			WorkRelated:    0.333,
			Accomplishment: 0.334,
		},
		Risk: RiskThresholds{
			Medium:   3.0,
			High:     5.5,
			Critical: 7.5,
		},
		Fusion: FusionWeights{
			Incident: 0.7,
			Activity: 0.3,
		},
		Metrics: MetricsConfig{
			AfterHoursStart:       18,
			AfterHoursEnd:         8,
			CommitAfterHoursStart: 22,
			CommitAfterHoursEnd:   6,
			LargeCommitLines:      400,
			ClusterWindowMinutes:  120,
		},
		Baselines: BaselineConfig{
			TeamWeight:     0.7,
			IndustryWeight: 0.3,
			Industry: map[string]float64{
				"incidents_per_week":        3.0,
				"after_hours_percentage":    0.15,
				"weekend_percentage":        0.05,
				"avg_response_time_minutes": 30.0,
				"commits_per_week":          25.0,
				"after_hours_commit_pct":    0.10,
				"weekend_commit_pct":        0.05,
				"avg_commit_size":           150.0,
				"pr_merge_rate":             0.85,
				"review_participation_rate": 0.50,
				"messages_per_week":         120.0,
			},
		},
		Confidence: ConfidenceConfig{
			CompletenessWeight:    0.40,
			TemporalWeight:        0.35,
			SampleSizeWeight:      0.25,
			MinWindowDays:         30,
			OptimalWindowDays:     90,
			IdealTeamSize:         5,
			ReferenceWeeklyEvents: 20,
			MediumThreshold:       0.6,
			HighThreshold:         0.8,
		},
		Trend: TrendConfig{
			BaselineScore:        8.7,
			FloorScore:           2.0,
			IncidentPenaltyCap:   2.0,
			SeverityPenaltyCap:   2.5,
			AfterHoursPenaltyCap: 1.0,
			HighSevPenaltyCap:    1.5,
			ConcentrationCap:     1.0,
			ConcentrationRatio:   2.0,
			SeverityWeights: map[string]float64{
				"sev1":     3.0,
				"sev2":     2.0,
				"sev3":     1.0,
				"sev4":     0.5,
				"critical": 3.0,
				"high":     2.0,
				"medium":   1.0,
				"low":      0.5,
			},
		},
		Flow: FlowConfig{
			HealthyThreshold:  7.0,
			ModerateThreshold: 5.0,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			RateLimitRPS:   5,
			RateLimitBurst: 10,
		},
	}
}

// Validate rejects weight sets that do not sum to 1 and thresholds that are
// not strictly increasing.
func (c Config) Validate() error {
	if err := checkUnitSum("dimensions",
		c.Dimensions.Personal+c.Dimensions.WorkRelated+c.Dimensions.Accomplishment); err != nil {
		return err
	}
	if err := checkUnitSum("fusion", c.Fusion.Incident+c.Fusion.Activity); err != nil {
		return err
	}
	if err := checkUnitSum("baselines", c.Baselines.TeamWeight+c.Baselines.IndustryWeight); err != nil {
		return err
	}
	if err := checkUnitSum("confidence",
		c.Confidence.CompletenessWeight+c.Confidence.TemporalWeight+c.Confidence.SampleSizeWeight); err != nil {
		return err
	}
	if !(c.Risk.Medium < c.Risk.High && c.Risk.High < c.Risk.Critical) {
		return errThresholdOrder
	}
	if c.Trend.FloorScore >= c.Trend.BaselineScore {
		return errTrendFloor
	}
	return nil
}

const unitSumTolerance = 1e-6

func checkUnitSum(name string, sum float64) error {
	if math.Abs(sum-1.0) > unitSumTolerance {
		return &WeightSumError{Group: name, Sum: sum}
	}
	return nil
}
