package planner

import "testing"

func TestPlanTestsCapsUnitTests(t *testing.T) {
	plan := PlanTests(12, 0.5)
	if len(plan.UnitTests) != maxUnitTests {
		t.Errorf("len(UnitTests) = %d, want %d", len(plan.UnitTests), maxUnitTests)
	}
	if len(plan.IntegrationTests) != 1 || len(plan.SmokeTests) != 1 {
		t.Errorf("IntegrationTests/SmokeTests = %v/%v, want exactly one each", plan.IntegrationTests, plan.SmokeTests)
	}
}

func TestPlanTestsBelowCap(t *testing.T) {
	plan := PlanTests(2, 0.1)
	if len(plan.UnitTests) != 2 {
		t.Errorf("len(UnitTests) = %d, want 2", len(plan.UnitTests))
	}
	if plan.UnitTests[0] != "test_affected_component_0" || plan.UnitTests[1] != "test_affected_component_1" {
		t.Errorf("UnitTests = %v, want sequential component names", plan.UnitTests)
	}
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		criticality float64
		want        string
	}{
		{0.9, "CRITICAL"},
		{0.7, "HIGH"},
		{0.5, "MEDIUM"},
		{0.1, "LOW"},
	}
	for _, tt := range tests {
		if got := priorityFor(tt.criticality); got != tt.want {
			t.Errorf("priorityFor(%v) = %q, want %q", tt.criticality, got, tt.want)
		}
	}
}

func TestPlanQueries(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"no files", nil, "LOW"},
		{"few files", []string{"a.go", "b.go"}, "MEDIUM"},
		{"many files", make([]string, 11), "HIGH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanQueries(tt.files)
			if got.AnalysisPriority != tt.want {
				t.Errorf("AnalysisPriority = %q, want %q", got.AnalysisPriority, tt.want)
			}
		})
	}
}
