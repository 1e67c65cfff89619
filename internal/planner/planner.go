// Package planner generates the test plan and query-planning metadata
// that the reference service asked a language model to produce. The
// query-planning/LLM collaborator lies outside the core pipeline and must
// not perturb the numeric results; this package is the deterministic
// heuristic the orchestrator always runs (no LLM collaborator is wired
// in), grounded on the reference service's own fallback path for when
// the model's response failed to parse as JSON.
package planner

import "fmt"

// TestPlan is the structured recommendation for what to test, mirroring
// the reference service's test_plan shape.
type TestPlan struct {
	UnitTests        []string `json:"unit_tests"`
	IntegrationTests []string `json:"integration_tests"`
	SmokeTests       []string `json:"smoke_tests"`
	Priority         string   `json:"priority"`
}

const maxUnitTests = 5

// PlanTests builds a TestPlan from the count of affected components and
// the criticality score of the change, using the same naming convention
// and caps the reference service falls back to.
func PlanTests(affectedCount int, criticality float64) TestPlan {
	n := affectedCount
	if n > maxUnitTests {
		n = maxUnitTests
	}
	unitTests := make([]string, n)
	for i := 0; i < n; i++ {
		unitTests[i] = fmt.Sprintf("test_affected_component_%d", i)
	}

	return TestPlan{
		UnitTests:        unitTests,
		IntegrationTests: []string{"integration_test_main_flow"},
		SmokeTests:       []string{"smoke_test_critical_paths"},
		Priority:         priorityFor(criticality),
	}
}

func priorityFor(criticality float64) string {
	switch {
	case criticality > 0.85:
		return "CRITICAL"
	case criticality > 0.65:
		return "HIGH"
	case criticality > 0.4:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// QueryPlan is the key-areas/priorities summary the reference service
// asked its query-planner LLM node to produce before dependency analysis
// and retrieval ran. It is descriptive metadata only: per the
// determinism invariant on the numeric pipeline, nothing downstream may
// branch on its content.
type QueryPlan struct {
	KeyAreas         []string `json:"key_areas"`
	AnalysisPriority string   `json:"analysis_priority"`
}

// PlanQueries builds a QueryPlan from the request's affected files, used
// only as human-readable report metadata.
func PlanQueries(affectedFiles []string) QueryPlan {
	priority := "LOW"
	if len(affectedFiles) > 10 {
		priority = "HIGH"
	} else if len(affectedFiles) > 0 {
		priority = "MEDIUM"
	}
	return QueryPlan{
		KeyAreas:         affectedFiles,
		AnalysisPriority: priority,
	}
}
