// Package criticality computes the per-node criticality score: a
// weighted blend of in/out degree (normalized by the graph's maximum
// total degree) and the node's precomputed betweenness and closeness
// centrality.
package criticality

import "github.com/naveeak/impact-analyser/internal/graph"

const (
	weightInDegree    = 0.4
	weightOutDegree   = 0.2
	weightBetweenness = 0.3
	weightCloseness   = 0.1
)

// Score computes the criticality of a single node in g. Any failure to
// locate the node defaults to 0.5 (medium criticality).
func Score(g *graph.Graph, nodeID string, maxDegree int) float64 {
	node, ok := g.Node(nodeID)
	if !ok {
		return 0.5
	}

	md := float64(maxDegree)
	if md < 1 {
		md = 1
	}

	inN := float64(g.InDegree(nodeID)) / md
	outN := float64(g.OutDegree(nodeID)) / md

	score := weightInDegree*inN +
		weightOutDegree*outN +
		weightBetweenness*node.BetweennessCentrality +
		weightCloseness*node.ClosenessCentrality

	return clamp(score, 0.0, 1.0)
}

// MaxDegree returns the maximum total (in+out) degree across every node
// in g, clamped to at least 1 so Score never divides by zero.
func MaxDegree(g *graph.Graph) int {
	max := 1
	for _, n := range g.Nodes() {
		deg := g.InDegree(n.ID) + g.OutDegree(n.ID)
		if deg > max {
			max = deg
		}
	}
	return max
}

// ScoreAll scores every node in ids (typically impacted minus
// changed_files) against g, returning a map from node id to score.
func ScoreAll(g *graph.Graph, ids []string) map[string]float64 {
	maxDegree := MaxDegree(g)
	scores := make(map[string]float64, len(ids))
	for _, id := range ids {
		scores[id] = Score(g, id, maxDegree)
	}
	return scores
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
