package httpapi

import "github.com/naveeak/impact-analyser/internal/graph"

// AnalyzeRequest is the wire-level request body for POST /api/v1/analyze.
// Validation beyond struct tags (path safety, repo_id charset) runs in
// internal/validation after binding.
type AnalyzeRequest struct {
	ChangeDescription string                  `json:"change_description" validate:"required,min=1,max=1000"`
	AffectedFiles     []string                `json:"affected_files" validate:"max=100,dive,required"`
	RepoID            string                  `json:"repo_id" validate:"required,max=100"`
	Branch            string                  `json:"branch"`
	DependencyGraph   *graph.NodeLinkDocument `json:"dependency_graph"`
}

// CriticalityRequest is the body for POST /api/v1/criticality/calculate,
// a supplemented endpoint mirroring the reference service's
// impact-analyzer.
type CriticalityRequest struct {
	NodeID          string                 `json:"node_id" validate:"required"`
	DependencyGraph graph.NodeLinkDocument `json:"dependency_graph" validate:"required"`
}

// CriticalityResponse is the response for /api/v1/criticality/calculate.
type CriticalityResponse struct {
	NodeID string  `json:"node_id"`
	Score  float64 `json:"criticality_score"`
}

// PathAnalysisRequest is the body for POST /api/v1/path/analyze, a
// supplemented endpoint mirroring the reference service's path-analysis
// feature.
type PathAnalysisRequest struct {
	Source          string                 `json:"source" validate:"required"`
	Target          string                 `json:"target" validate:"required"`
	DependencyGraph graph.NodeLinkDocument `json:"dependency_graph" validate:"required"`
}

// PathAnalysisResponse reports every simple path found between source and
// target (capped at 10, mirroring the reference service) plus one
// shortest path, when target is reachable from source at all.
type PathAnalysisResponse struct {
	Source       string     `json:"source"`
	Target       string     `json:"target"`
	PathCount    int        `json:"path_count"`
	Paths        [][]string `json:"paths"`
	ShortestPath []string   `json:"shortest_path,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// GraphStatsRequest is the body for POST /api/v1/graph/stats, a
// supplemented endpoint mirroring the reference service's graph-stats
// feature.
type GraphStatsRequest struct {
	DependencyGraph graph.NodeLinkDocument `json:"dependency_graph" validate:"required"`
}

// GraphStatsResponse echoes a graph's computed structural metrics.
type GraphStatsResponse struct {
	Metrics graph.Metrics `json:"metrics"`
}

// HealthResponse is the body for GET /health.
type HealthResponse struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Timestamp  string            `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// errorResponse is the uniform error body for non-2xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
