package impact

import (
	"reflect"
	"sort"
	"testing"

	"github.com/naveeak/impact-analyser/internal/graph"
)

func chainGraph() *graph.Graph {
	// main -> handler -> auth -> db, with "helper" hanging off handler.
	doc := graph.Document{
		Nodes: []graph.DocNode{
			{ID: "main", Type: "file"},
			{ID: "handler", Type: "file"},
			{ID: "auth", Type: "file"},
			{ID: "db", Type: "file"},
			{ID: "helper", Type: "file"},
		},
		Edges: []graph.DocEdge{
			{Source: "main", Target: "handler", Type: "import"},
			{Source: "handler", Target: "auth", Type: "import"},
			{Source: "auth", Target: "db", Type: "import"},
			{Source: "handler", Target: "helper", Type: "import"},
		},
	}
	return graph.Decode(doc)
}

func TestAnalyzeNilGraphFallsBackToChangedFiles(t *testing.T) {
	result := Analyze([]string{"a.go", "b.go"}, nil)
	want := []string{"a.go", "b.go"}
	if !reflect.DeepEqual(result.Seed, want) {
		t.Errorf("Seed = %v, want %v", result.Seed, want)
	}
	got := append([]string(nil), result.Impacted...)
	sort.Strings(got)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Impacted = %v, want %v", got, want)
	}
}

func TestAnalyzeDropsFilesNotInGraph(t *testing.T) {
	g := chainGraph()
	result := Analyze([]string{"main", "not-a-node"}, g)
	if !reflect.DeepEqual(result.Seed, []string{"main"}) {
		t.Errorf("Seed = %v, want [main]", result.Seed)
	}
}

func TestAnalyzeImpactIncludesAncestorsAndDescendants(t *testing.T) {
	g := chainGraph()
	result := Analyze([]string{"auth"}, g)

	sort.Strings(result.Impacted)
	want := []string{"auth", "db", "handler", "main"}
	if !reflect.DeepEqual(result.Impacted, want) {
		t.Errorf("Impacted = %v, want %v", result.Impacted, want)
	}
}

func TestAnalyzeUnrelatedNodeExcluded(t *testing.T) {
	g := chainGraph()
	result := Analyze([]string{"db"}, g)

	for _, id := range result.Impacted {
		if id == "helper" {
			t.Errorf("Impacted = %v, want helper excluded (unreachable from db)", result.Impacted)
		}
	}
}
