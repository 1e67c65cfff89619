package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveeak/impact-analyser/internal/graph"
	"github.com/naveeak/impact-analyser/internal/orchestrator"
	"github.com/naveeak/impact-analyser/internal/retrieval"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	orch := orchestrator.New(nil, retrieval.NewInMemory(nil))
	srv := NewServer(orch)
	router := gin.New()
	srv.Register(router)
	return router
}

func chainNodeLink() graph.NodeLinkDocument {
	return graph.ToNodeLink(graph.Decode(graph.Document{
		Nodes: []graph.DocNode{{ID: "a.go"}, {ID: "b.go"}, {ID: "c.go"}},
		Edges: []graph.DocEdge{
			{Source: "a.go", Target: "b.go"},
			{Source: "b.go", Target: "c.go"},
		},
	}))
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{
		ChangeDescription: "refactor the request handler",
		AffectedFiles:     []string{"a.go"},
		RepoID:            "repo-1",
		DependencyGraph:   ptrDoc(chainNodeLink()),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp orchestrator.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.GreaterOrEqual(t, resp.ImpactAnalysis.ImpactCount, 2)
}

func TestHandleAnalyzeRejectsMissingRepoID(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{
		ChangeDescription: "missing repo id",
		AffectedFiles:     []string{"a.go"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyzeRejectsPathTraversal(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{
		ChangeDescription: "traversal attempt",
		AffectedFiles:     []string{"../../etc/passwd"},
		RepoID:            "repo-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCriticality(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/criticality/calculate", CriticalityRequest{
		NodeID:          "a.go",
		DependencyGraph: chainNodeLink(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp CriticalityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a.go", resp.NodeID)
}

func TestHandleCriticalityUnknownNode(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/criticality/calculate", CriticalityRequest{
		NodeID:          "missing.go",
		DependencyGraph: chainNodeLink(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePathAnalyze(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/path/analyze", PathAnalysisRequest{
		Source:          "a.go",
		Target:          "c.go",
		DependencyGraph: chainNodeLink(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp PathAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.PathCount)
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, resp.ShortestPath)
}

func TestHandlePathAnalyzeUnreachableTarget(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/path/analyze", PathAnalysisRequest{
		Source:          "c.go",
		Target:          "a.go",
		DependencyGraph: chainNodeLink(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp PathAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.ShortestPath)
	assert.NotEmpty(t, resp.Message)
}

func TestHandlePathAnalyzeUnknownNode(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/path/analyze", PathAnalysisRequest{
		Source:          "missing.go",
		Target:          "a.go",
		DependencyGraph: chainNodeLink(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGraphStats(t *testing.T) {
	router := newTestRouter()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/graph/stats", GraphStatsRequest{
		DependencyGraph: chainNodeLink(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp GraphStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Metrics.NumberOfNodes)
	assert.True(t, resp.Metrics.IsDAG)
}

func ptrDoc(doc graph.NodeLinkDocument) *graph.NodeLinkDocument {
	return &doc
}
