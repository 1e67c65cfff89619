// Package impact computes the forward/reverse reachability impact set of
// a changed-file seed over a dependency Graph.
package impact

import "github.com/naveeak/impact-analyser/internal/graph"

// Result is the (partial) outcome of Analyze: the impacted node set with
// the seed preserved. Criticality scores, risk level, and recommendations
// are layered on by later stages (see internal/criticality, internal/risk).
type Result struct {
	// Seed is changed_files ∩ V when a graph is available — files absent
	// from the graph are silently dropped — or changed_files verbatim
	// when g is nil.
	Seed []string

	// Impacted is Seed ∪ descendants(Seed) ∪ ancestors(Seed).
	Impacted []string
}

// Analyze computes the impacted set for changedFiles over g, in
// O(|V|+|E|) via BFS. A nil graph has no nodes to resolve against, so
// every changed file is kept in the seed as-is and Impacted defaults to
// changed_files, per the reference service's graph-absent fallback.
func Analyze(changedFiles []string, g *graph.Graph) Result {
	seedSet := make(map[string]bool)
	var seed []string
	for _, f := range changedFiles {
		if seedSet[f] {
			continue
		}
		if g != nil && !g.HasNode(f) {
			continue
		}
		seedSet[f] = true
		seed = append(seed, f)
	}

	impacted := make(map[string]bool, len(seed))
	for _, s := range seed {
		impacted[s] = true
	}

	if g != nil {
		for _, s := range seed {
			for _, d := range descendants(g, s) {
				impacted[d] = true
			}
			for _, a := range ancestors(g, s) {
				impacted[a] = true
			}
		}
	}

	out := make([]string, 0, len(impacted))
	for id := range impacted {
		out = append(out, id)
	}

	return Result{Seed: seed, Impacted: out}
}

// descendants returns every node reachable from start by following
// outgoing edges, via BFS.
func descendants(g *graph.Graph, start string) []string {
	return bfs(start, g.Successors)
}

// ancestors returns every node that can reach start by following outgoing
// edges, i.e. BFS over incoming edges from start.
func ancestors(g *graph.Graph, start string) []string {
	return bfs(start, g.Predecessors)
}

func bfs(start string, neighbors func(string) []string) []string {
	visited := map[string]bool{start: true}
	queue := []string{start}
	var out []string
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, n := range neighbors(v) {
			if !visited[n] {
				visited[n] = true
				out = append(out, n)
				queue = append(queue, n)
			}
		}
	}
	return out
}
