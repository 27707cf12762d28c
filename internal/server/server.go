// Package server is the thin HTTP seam in front of the analysis engine. It
// only translates the input and output contracts; all scoring semantics live
// in internal/analysis.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/burnout-meter/internal/analysis"
	"github.com/ZanzyTHEbar/burnout-meter/internal/config"
	apperrors "github.com/ZanzyTHEbar/burnout-meter/internal/errors"
	"github.com/ZanzyTHEbar/burnout-meter/internal/types"
)

// Server owns the gin router and the analyzer it fronts.
type Server struct {
	analyzer *analysis.Analyzer
	cfg      config.ServerConfig
	logger   *slog.Logger
}

// New creates a server around an analyzer.
func New(analyzer *analysis.Analyzer, cfg config.ServerConfig, logger *slog.Logger) *Server {
	return &Server{analyzer: analyzer, cfg: cfg, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(s.cfg.AllowedOrigins) == 1 && s.cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	limiter := newClientLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst)

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())
	api.POST("/analyze", s.handleAnalyze)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyze runs one full analysis over the posted snapshot.
func (s *Server) handleAnalyze(c *gin.Context) {
	start := time.Now()

	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	report, err := s.analyzer.Analyze(req)
	if err != nil {
		if apperrors.IsValidation(err) {
			s.logger.Warn("rejected analysis request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("analysis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	s.logger.Info("analysis completed",
		"analysis_id", report.AnalysisID,
		"members", len(report.Assessments),
		"days", report.DaysAnalyzed,
		"dropped_events", report.Metadata.DroppedEvents,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	c.JSON(http.StatusOK, report)
}
