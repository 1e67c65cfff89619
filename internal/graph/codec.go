package graph

import (
	"sort"
	"time"
)

// Document is the portable, persisted representation of a Graph produced
// by Encode. It carries repository identity and graph-level metrics in
// addition to the node/edge structure; it is lossy for the originating
// ParseResult's parse-level attributes and lossless for graph structure
// plus centralities.
type Document struct {
	GraphID    string         `json:"graph_id"`
	RepoID     string         `json:"repo_id"`
	Branch     string         `json:"branch"`
	CreatedAt  string         `json:"created_at"`
	NodesCount int            `json:"nodes_count"`
	EdgesCount int            `json:"edges_count"`
	NodeTypes  map[string]int `json:"node_types"`
	Nodes      []DocNode      `json:"nodes"`
	Edges      []DocEdge      `json:"edges"`
	Metrics    Metrics        `json:"metrics"`
}

// DocNode is one node entry in a Document.
type DocNode struct {
	ID                    string  `json:"id"`
	Type                  string  `json:"type"`
	DegreeCentrality      float64 `json:"degree_centrality"`
	BetweennessCentrality float64 `json:"betweenness_centrality"`
	ClosenessCentrality   float64 `json:"closeness_centrality"`
}

// DocEdge is one edge entry in a Document.
type DocEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// Metrics are graph-level statistics attached to a Document.
type Metrics struct {
	Density            float64 `json:"density"`
	IsDAG              bool    `json:"is_dag"`
	NumberOfNodes      int     `json:"number_of_nodes"`
	NumberOfEdges      int     `json:"number_of_edges"`
	AverageDegree      float64 `json:"average_degree"`
	IsConnected        bool    `json:"is_connected"`
	Diameter           *int    `json:"diameter,omitempty"`
	NumberOfComponents *int    `json:"number_of_components,omitempty"`
}

// Encode serializes a Graph into its portable Document form. graphID,
// repoID, branch, and createdAt are supplied by the caller (rather than
// generated inside Encode) so the function stays pure and reproducible in
// tests; production callers pass uuid.New().String() and time.Now().UTC().
func Encode(g *Graph, graphID, repoID, branch string, createdAt time.Time) Document {
	nodeTypes := make(map[string]int)
	nodes := make([]DocNode, len(g.nodes))
	for i, n := range g.nodes {
		nodeTypes[n.Kind.String()]++
		nodes[i] = DocNode{
			ID:                    n.ID,
			Type:                  n.Kind.String(),
			DegreeCentrality:      n.DegreeCentrality,
			BetweennessCentrality: n.BetweennessCentrality,
			ClosenessCentrality:   n.ClosenessCentrality,
		}
	}

	var edges []DocEdge
	for from, adj := range g.out {
		for _, e := range adj {
			edges = append(edges, DocEdge{
				Source: g.nodes[from].ID,
				Target: g.nodes[e.to].ID,
				Type:   e.kind.String(),
				Weight: 1,
			})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	return Document{
		GraphID:    graphID,
		RepoID:     repoID,
		Branch:     branch,
		CreatedAt:  createdAt.UTC().Format(time.RFC3339),
		NodesCount: len(nodes),
		EdgesCount: len(edges),
		NodeTypes:  nodeTypes,
		Nodes:      nodes,
		Edges:      edges,
		Metrics:    ComputeMetrics(g),
	}
}

// Decode reconstructs a Graph from a Document. It is the inverse of
// Encode for graph structure and centralities: decode(encode(G)) yields a
// graph with the same node set, edge set, edge kinds, and per-node
// centralities as G, modulo ordering.
func Decode(doc Document) *Graph {
	ids := make([]string, len(doc.Nodes))
	byID := make(map[string]DocNode, len(doc.Nodes))
	for i, n := range doc.Nodes {
		ids[i] = n.ID
		byID[n.ID] = n
	}
	sort.Strings(ids)

	g := &Graph{
		nodes: make([]Node, len(ids)),
		index: make(map[string]int, len(ids)),
		out:   make([][]edge, len(ids)),
		in:    make([][]int, len(ids)),
	}
	for i, id := range ids {
		dn := byID[id]
		g.nodes[i] = Node{
			ID:                    dn.ID,
			Kind:                  ParseNodeKind(dn.Type),
			DegreeCentrality:      dn.DegreeCentrality,
			BetweennessCentrality: dn.BetweennessCentrality,
			ClosenessCentrality:   dn.ClosenessCentrality,
		}
		g.index[id] = i
	}
	for i := range g.nodes {
		if idx := lastIndexOf(g.nodes[i].ID, "::"); idx >= 0 {
			g.nodes[i].ParentFile = g.nodes[i].ID[:idx]
		}
	}

	for _, e := range doc.Edges {
		from, fromOK := g.index[e.Source]
		to, toOK := g.index[e.Target]
		if !fromOK || !toOK {
			continue
		}
		g.out[from] = append(g.out[from], edge{to: to, kind: ParseEdgeKind(e.Type)})
		g.in[to] = append(g.in[to], from)
	}

	return g
}

func lastIndexOf(s, sep string) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		if s[i:i+len(sep)] == sep {
			return i
		}
	}
	return -1
}

// ComputeMetrics computes graph-level statistics for a Document's Metrics
// block: density, DAG-ness, average degree, and weak connectivity
// (diameter when connected, component count otherwise), mirroring the
// reference service's networkx-derived metrics.
func ComputeMetrics(g *Graph) Metrics {
	n := g.NodeCount()
	e := g.EdgeCount()

	m := Metrics{
		NumberOfNodes: n,
		NumberOfEdges: e,
		IsDAG:         isDAG(g),
	}
	if n > 1 {
		m.Density = float64(e) / float64(n*(n-1))
	}
	if n > 0 {
		m.AverageDegree = 2 * float64(e) / float64(n)
	}

	components := weaklyConnectedComponents(g)
	if len(components) <= 1 && n > 0 {
		m.IsConnected = true
		d := undirectedDiameter(g)
		m.Diameter = &d
	} else {
		m.IsConnected = false
		c := len(components)
		m.NumberOfComponents = &c
	}

	return m
}

func isDAG(g *Graph) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, g.NodeCount())
	var visit func(int) bool
	visit = func(v int) bool {
		color[v] = gray
		for _, e := range g.out[v] {
			if color[e.to] == gray {
				return false
			}
			if color[e.to] == white && !visit(e.to) {
				return false
			}
		}
		color[v] = black
		return true
	}
	for v := range color {
		if color[v] == white {
			if !visit(v) {
				return false
			}
		}
	}
	return true
}

func weaklyConnectedComponents(g *Graph) [][]int {
	n := g.NodeCount()
	visited := make([]bool, n)
	var components [][]int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		queue := []int{start}
		visited[start] = true
		var comp []int
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, e := range g.out[v] {
				if !visited[e.to] {
					visited[e.to] = true
					queue = append(queue, e.to)
				}
			}
			for _, from := range g.in[v] {
				if !visited[from] {
					visited[from] = true
					queue = append(queue, from)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// undirectedDiameter returns the longest shortest path between any two
// nodes, treating edges as undirected. Only meaningful when the graph is
// weakly connected; callers check that first.
func undirectedDiameter(g *Graph) int {
	n := g.NodeCount()
	diameter := 0
	for start := 0; start < n; start++ {
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[start] = 0
		queue := []int{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			neighbors := make([]int, 0, len(g.out[v])+len(g.in[v]))
			for _, e := range g.out[v] {
				neighbors = append(neighbors, e.to)
			}
			neighbors = append(neighbors, g.in[v]...)
			for _, w := range neighbors {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					if dist[w] > diameter {
						diameter = dist[w]
					}
					queue = append(queue, w)
				}
			}
		}
	}
	return diameter
}
