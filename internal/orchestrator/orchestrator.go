// Package orchestrator sequences a single change-impact analysis: graph
// build or lookup, fork-joined impact analysis and context retrieval,
// criticality scoring, risk classification, and report assembly.
package orchestrator

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/naveeak/impact-analyser/internal/criticality"
	"github.com/naveeak/impact-analyser/internal/errkind"
	"github.com/naveeak/impact-analyser/internal/graph"
	"github.com/naveeak/impact-analyser/internal/impact"
	"github.com/naveeak/impact-analyser/internal/planner"
	"github.com/naveeak/impact-analyser/internal/retrieval"
	"github.com/naveeak/impact-analyser/internal/risk"
	"github.com/naveeak/impact-analyser/internal/store"
)

var tracer = otel.Tracer("impact-analyser.orchestrator")

// Request is a single analysis request: the core pipeline's inputs.
// HTTP binding and validation live in internal/httpapi; this is the
// collaborator-facing type.
type Request struct {
	ChangeDescription string
	AffectedFiles     []string
	RepoID            string
	Branch            string
	DependencyGraph   *graph.NodeLinkDocument
}

// ImpactAnalysis is the impact_analysis block of the response.
type ImpactAnalysis struct {
	AffectedComponents []string `json:"affected_components"`
	ImpactCount        int      `json:"impact_count"`
	HighRiskAreas      []string `json:"high_risk_areas"`
	RiskLevel          string   `json:"risk_level"`
	AffectedServices   []string `json:"affected_services"`
	Recommendations    []string `json:"recommendations"`
}

// Report is the final_report block of the response.
type Report struct {
	RepoID            string             `json:"repo_id"`
	Branch            string             `json:"branch"`
	ChangeDescription string             `json:"change_description"`
	Timestamp         string             `json:"timestamp"`
	QueryPlan         planner.QueryPlan  `json:"query_plan"`
	ImpactAnalysis    ImpactAnalysis     `json:"impact_analysis"`
	CriticalityScores map[string]float64 `json:"criticality_scores"`
	TestPlan          planner.TestPlan   `json:"test_plan"`
	Error             string             `json:"error,omitempty"`
}

// Response is the full analyze response.
type Response struct {
	AnalysisID        string             `json:"analysis_id"`
	Status            string             `json:"status"`
	Timestamp         string             `json:"timestamp"`
	RepoID            string             `json:"repo_id"`
	Branch            string             `json:"branch"`
	ChangeDescription string             `json:"change_description"`
	QueryPlan         planner.QueryPlan  `json:"query_plan"`
	ImpactAnalysis    ImpactAnalysis     `json:"impact_analysis"`
	CriticalityScores map[string]float64 `json:"criticality_scores"`
	TestPlan          planner.TestPlan   `json:"test_plan"`
	FinalReport       Report             `json:"final_report"`
	Error             string             `json:"error,omitempty"`
}

const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// Orchestrator wires the core pipeline to its collaborators. Any
// collaborator may be nil, in which case the orchestrator substitutes the
// CollaboratorUnavailable defaults rather than failing the request.
type Orchestrator struct {
	Store     *store.Store
	Retrieval retrieval.Client
}

// New builds an Orchestrator. Both dependencies are optional.
func New(st *store.Store, ret retrieval.Client) *Orchestrator {
	return &Orchestrator{Store: st, Retrieval: ret}
}

// nowFunc is overridable in tests so responses are reproducible.
var nowFunc = func() time.Time { return time.Now().UTC() }

// Analyze runs the full pipeline for req and returns the assembled
// Response. It never returns a non-nil error for recoverable collaborator
// failures; the Response.Error field and Status carry those instead. When
// ctx is done after the fork-join, it returns a partial Response with
// Status == "failed" and Error == "cancelled", together with ctx.Err().
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (Response, error) {
	ctx, span := tracer.Start(ctx, "Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("repo_id", req.RepoID),
		attribute.String("branch", req.Branch),
		attribute.Int("affected_files", len(req.AffectedFiles)))

	analysisID := uuid.New().String()
	now := nowFunc()

	queryPlan := planner.PlanQueries(req.AffectedFiles)

	g, graphErr := o.resolveGraph(ctx, req)

	var (
		analysis    impact.Result
		retrieved   []retrieval.Result
		retrieveErr error
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		analysis = impact.Analyze(req.AffectedFiles, g)
		return nil
	})
	group.Go(func() error {
		if o.Retrieval == nil {
			return nil
		}
		query := req.ChangeDescription
		res, err := o.Retrieval.Retrieve(gctx, query, 10)
		if err != nil {
			retrieveErr = err
			return nil
		}
		retrieved = res
		return nil
	})
	_ = group.Wait()

	select {
	case <-ctx.Done():
		return o.cancelledResponse(analysisID, req, now, queryPlan), ctx.Err()
	default:
	}

	toScore := subtract(analysis.Impacted, req.AffectedFiles)
	scores := map[string]float64{}
	if g != nil {
		scores = criticality.ScoreAll(g, toScore)
	}

	highRisk := risk.HighRiskAreas(scores)
	maxScore := risk.MaxScore(scores)
	level := risk.Classify(len(highRisk), maxScore)
	recs := risk.Recommend(level, len(analysis.Impacted), len(highRisk), req.AffectedFiles)
	services := risk.AffectedServices(analysis.Impacted)

	sort.Strings(analysis.Impacted)

	plan := planner.PlanTests(len(analysis.Impacted), maxScore)

	impactAnalysis := ImpactAnalysis{
		AffectedComponents: analysis.Impacted,
		ImpactCount:        len(analysis.Impacted),
		HighRiskAreas:      highRisk,
		RiskLevel:          string(level),
		AffectedServices:   services,
		Recommendations:    recs,
	}

	var errMsg string
	status := statusCompleted
	if graphErr != nil {
		errMsg = graphErr.Error()
		span.RecordError(graphErr)
	}
	if retrieveErr != nil {
		if errMsg == "" {
			errMsg = retrieveErr.Error()
		}
		span.RecordError(retrieveErr)
		slog.Warn("retrieval collaborator unavailable", "error", retrieveErr)
	}

	report := Report{
		RepoID:            req.RepoID,
		Branch:            req.Branch,
		ChangeDescription: req.ChangeDescription,
		Timestamp:         now.Format(time.RFC3339),
		QueryPlan:         queryPlan,
		ImpactAnalysis:    impactAnalysis,
		CriticalityScores: scores,
		TestPlan:          plan,
		Error:             errMsg,
	}

	if o.Store != nil && g != nil {
		doc := graph.Encode(g, analysisID, req.RepoID, req.Branch, now)
		if err := o.Store.Put(ctx, req.RepoID, req.Branch, doc); err != nil {
			slog.Warn("graph store unavailable, proceeding without persistence",
				"error", err, "repo_id", req.RepoID, "branch", req.Branch)
			if errMsg == "" {
				errMsg = err.Error()
				report.Error = errMsg
			}
		}
	}

	_ = retrieved // advisory metadata only; must not influence scores.

	span.SetAttributes(attribute.String("risk_level", string(level)))
	span.SetStatus(codes.Ok, "")

	return Response{
		AnalysisID:        analysisID,
		Status:            status,
		Timestamp:         now.Format(time.RFC3339),
		RepoID:            req.RepoID,
		Branch:            req.Branch,
		ChangeDescription: req.ChangeDescription,
		QueryPlan:         queryPlan,
		ImpactAnalysis:    impactAnalysis,
		CriticalityScores: scores,
		TestPlan:          plan,
		FinalReport:       report,
		Error:             errMsg,
	}, nil
}

// resolveGraph returns the graph to analyze against: the request's inline
// dependency_graph if present, else a lookup in the store by
// (repo_id, branch). A nil graph with a nil error means no graph is
// available — the orchestrator falls back to impacted = changed_files.
func (o *Orchestrator) resolveGraph(ctx context.Context, req Request) (*graph.Graph, error) {
	if req.DependencyGraph != nil {
		return graph.FromNodeLink(*req.DependencyGraph), nil
	}
	if o.Store == nil {
		return nil, nil
	}
	doc, ok, err := o.Store.Get(ctx, req.RepoID, req.Branch)
	if err != nil {
		return nil, errkind.Wrap(errkind.CollaboratorUnavailable, "graph store lookup failed", err)
	}
	if !ok {
		return nil, nil
	}
	return graph.Decode(doc), nil
}

func (o *Orchestrator) cancelledResponse(analysisID string, req Request, now time.Time, queryPlan planner.QueryPlan) Response {
	return Response{
		AnalysisID:        analysisID,
		Status:            statusFailed,
		Timestamp:         now.Format(time.RFC3339),
		RepoID:            req.RepoID,
		Branch:            req.Branch,
		ChangeDescription: req.ChangeDescription,
		QueryPlan:         queryPlan,
		CriticalityScores: map[string]float64{},
		Error:             "cancelled",
	}
}

func subtract(all, exclude []string) []string {
	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}
	out := make([]string, 0, len(all))
	for _, id := range all {
		if !excluded[id] {
			out = append(out, id)
		}
	}
	return out
}
