package graph

import (
	"reflect"
	"testing"
)

func chainTestGraph() *Graph {
	return Decode(Document{
		Nodes: []DocNode{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Edges: []DocEdge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
			{Source: "a", Target: "c"},
			{Source: "c", Target: "d"},
		},
	})
}

func TestShortestPathFound(t *testing.T) {
	g := chainTestGraph()
	path, ok := ShortestPath(g, "a", "d")
	if !ok {
		t.Fatal("ShortestPath() ok = false, want true")
	}
	if len(path) != 3 || path[0] != "a" || path[len(path)-1] != "d" {
		t.Errorf("ShortestPath(a, d) = %v, want a 3-node path via the direct a->c edge", path)
	}
}

func TestShortestPathSameNode(t *testing.T) {
	g := chainTestGraph()
	path, ok := ShortestPath(g, "a", "a")
	if !ok || !reflect.DeepEqual(path, []string{"a"}) {
		t.Errorf("ShortestPath(a, a) = %v, %v, want [a], true", path, ok)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g := chainTestGraph()
	_, ok := ShortestPath(g, "d", "a")
	if ok {
		t.Error("ShortestPath(d, a) ok = true, want false (edges are directed)")
	}
}

func TestShortestPathUnknownNode(t *testing.T) {
	g := chainTestGraph()
	if _, ok := ShortestPath(g, "a", "missing"); ok {
		t.Error("ShortestPath() with unknown target should report unreachable")
	}
}

func TestSimplePathsFindsAllRoutes(t *testing.T) {
	g := chainTestGraph()
	paths := SimplePaths(g, "a", "d", 10)
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2 (a->b->c->d and a->c->d)", len(paths))
	}
}

func TestSimplePathsRespectsCap(t *testing.T) {
	g := chainTestGraph()
	paths := SimplePaths(g, "a", "d", 1)
	if len(paths) != 1 {
		t.Errorf("len(paths) = %d, want 1", len(paths))
	}
}

func TestSimplePathsZeroCapReturnsNothing(t *testing.T) {
	g := chainTestGraph()
	if paths := SimplePaths(g, "a", "d", 0); paths != nil {
		t.Errorf("SimplePaths() with maxPaths=0 = %v, want nil", paths)
	}
}
