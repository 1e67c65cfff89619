// Package httpapi wires the gin HTTP surface onto the orchestrator and
// core packages: request binding, validation, and response shaping. The
// HTTP surface itself is plumbing; all numeric content is produced by
// internal/orchestrator and its dependencies.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/naveeak/impact-analyser/internal/criticality"
	"github.com/naveeak/impact-analyser/internal/errkind"
	"github.com/naveeak/impact-analyser/internal/graph"
	"github.com/naveeak/impact-analyser/internal/metrics"
	"github.com/naveeak/impact-analyser/internal/orchestrator"
	"github.com/naveeak/impact-analyser/internal/validation"
)

var (
	apiTracer = otel.Tracer("impact-analyser.httpapi")
	validate  = validator.New()
)

// Server holds the dependencies shared by every handler.
type Server struct {
	Orchestrator *orchestrator.Orchestrator
}

// NewServer builds a Server around orch.
func NewServer(orch *orchestrator.Orchestrator) *Server {
	return &Server{Orchestrator: orch}
}

// Register mounts every route onto router.
func (s *Server) Register(router *gin.Engine) {
	router.GET("/health", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
		v1.POST("/criticality/calculate", s.handleCriticality)
		v1.POST("/path/analyze", s.handlePathAnalyze)
		v1.POST("/graph/stats", s.handleGraphStats)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	components := map[string]string{
		"orchestrator": "initialized",
	}
	if s.Orchestrator == nil {
		components["orchestrator"] = "not_initialized"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Service:    "impact-analyser",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	ctx, span := apiTracer.Start(c.Request.Context(), "handleAnalyze")
	defer span.End()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, "malformed request body", err))
		return
	}
	if req.Branch == "" {
		req.Branch = "main"
	}
	if err := validate.Struct(req); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, "request validation failed", err))
		return
	}
	if err := validation.ValidateRepoID(req.RepoID); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, err.Error(), nil))
		return
	}
	if err := validation.ValidateFilePaths(req.AffectedFiles); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, err.Error(), nil))
		return
	}

	span.SetAttributes(
		attribute.String("repo_id", req.RepoID),
		attribute.String("branch", req.Branch),
	)

	start := time.Now()
	resp, err := s.Orchestrator.Analyze(ctx, orchestrator.Request{
		ChangeDescription: req.ChangeDescription,
		AffectedFiles:     req.AffectedFiles,
		RepoID:            req.RepoID,
		Branch:            req.Branch,
		DependencyGraph:   req.DependencyGraph,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		recordAnalyzeMetrics("failed", time.Since(start), 0, "")
		writeError(c, errkind.Wrap(errkind.Cancelled, "analysis did not complete", err))
		return
	}

	recordAnalyzeMetrics(resp.Status, time.Since(start), resp.ImpactAnalysis.ImpactCount, resp.ImpactAnalysis.RiskLevel)
	c.JSON(http.StatusOK, resp)
}

func recordAnalyzeMetrics(status string, elapsed time.Duration, impactCount int, riskLevel string) {
	if metrics.Default == nil {
		return
	}
	metrics.Default.RequestsTotal.WithLabelValues(status).Inc()
	metrics.Default.DurationSeconds.WithLabelValues(status).Observe(elapsed.Seconds())
	if status == "completed" {
		metrics.Default.ImpactedCount.Observe(float64(impactCount))
		metrics.Default.RiskLevelTotal.WithLabelValues(riskLevel).Inc()
	}
}

func (s *Server) handleCriticality(c *gin.Context) {
	var req CriticalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, "malformed request body", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, "request validation failed", err))
		return
	}

	g := graph.FromNodeLink(req.DependencyGraph)
	if !g.HasNode(req.NodeID) {
		writeError(c, errkind.New(errkind.InputInvalid, "node not found in graph"))
		return
	}

	score := criticality.Score(g, req.NodeID, criticality.MaxDegree(g))
	c.JSON(http.StatusOK, CriticalityResponse{NodeID: req.NodeID, Score: score})
}

func (s *Server) handlePathAnalyze(c *gin.Context) {
	var req PathAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, "malformed request body", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, "request validation failed", err))
		return
	}

	g := graph.FromNodeLink(req.DependencyGraph)
	if !g.HasNode(req.Source) || !g.HasNode(req.Target) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "source or target node not found"})
		return
	}

	paths := graph.SimplePaths(g, req.Source, req.Target, 10)
	shortest, reachable := graph.ShortestPath(g, req.Source, req.Target)

	resp := PathAnalysisResponse{
		Source:    req.Source,
		Target:    req.Target,
		PathCount: len(paths),
		Paths:     paths,
	}
	if reachable {
		resp.ShortestPath = shortest
	} else {
		resp.Message = "No path exists between source and target"
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGraphStats(c *gin.Context) {
	var req GraphStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, "malformed request body", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(c, errkind.Wrap(errkind.InputInvalid, "request validation failed", err))
		return
	}

	g := graph.FromNodeLink(req.DependencyGraph)
	c.JSON(http.StatusOK, GraphStatsResponse{Metrics: graph.ComputeMetrics(g)})
}

func writeError(c *gin.Context, err *errkind.Error) {
	c.JSON(errkind.HTTPStatus(err.Kind), errorResponse{
		Error: err.Error(),
		Kind:  string(err.Kind),
	})
}
