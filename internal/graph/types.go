// Package graph materializes a directed graph of files and symbols from a
// parsed artifact model, resolves import edges between files, and attaches
// centrality metrics to every node.
//
// # Ownership Model
//
// A Graph is built in one pass by Build, then frozen: callers never mutate
// a Graph after it is returned. This makes no-lock-on-read structurally
// true — any number of goroutines may call the read-only accessors below
// concurrently.
package graph

import "github.com/naveeak/impact-analyser/internal/artifact"

// NodeKind is a closed tagged union of the kinds of node a Graph can hold.
// Internally node kind is this int-backed type; only the wire boundary
// (see codec.go) renders it as a string.
type NodeKind int

const (
	NodeKindFile NodeKind = iota
	NodeKindFunction
	NodeKindClass
	NodeKindAsyncFunction
)

var nodeKindNames = map[NodeKind]string{
	NodeKindFile:          "file",
	NodeKindFunction:      "function",
	NodeKindClass:         "class",
	NodeKindAsyncFunction: "async_function",
}

// String renders the node kind for the wire boundary.
func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseNodeKind parses the wire representation of a node kind, defaulting
// to NodeKindFile for an unrecognized or empty tag: missing optional
// fields default to "unknown", but a node must have some kind to be
// addressable — file is the safest default since every symbol node
// implies a parent file node exists.
func ParseNodeKind(s string) NodeKind {
	for k, name := range nodeKindNames {
		if name == s {
			return k
		}
	}
	return NodeKindFile
}

// EdgeKind is a closed tagged union of the kinds of edge a Graph can hold.
// Only EdgeKindImport is produced by Build today; the type exists so a
// future edge kind does not require a wire-format break.
type EdgeKind int

const (
	EdgeKindImport EdgeKind = iota
	EdgeKindUnknown
)

var edgeKindNames = map[EdgeKind]string{
	EdgeKindImport:  "import",
	EdgeKindUnknown: "unknown",
}

func (k EdgeKind) String() string {
	if name, ok := edgeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseEdgeKind parses the wire representation of an edge kind.
func ParseEdgeKind(s string) EdgeKind {
	for k, name := range edgeKindNames {
		if name == s {
			return k
		}
	}
	return EdgeKindUnknown
}

// Node is one file or symbol in the graph, with its precomputed centrality.
type Node struct {
	// ID is the node's unique identifier: a relative file path for a file
	// node, or "path::name" for a symbol node.
	ID string

	// Kind is the node's closed-union kind tag.
	Kind NodeKind

	// ParentFile is the owning file path for a symbol node; empty for a
	// file node.
	ParentFile string

	DegreeCentrality      float64
	BetweennessCentrality float64
	ClosenessCentrality   float64
}

// edge is an internal adjacency-list entry: the target node index plus the
// edge's kind and optional import payload.
type edge struct {
	to      int
	kind    EdgeKind
	payload *artifact.ImportRef
}

// Graph is an immutable directed graph over file and symbol nodes.
//
// Internally nodes are addressed by a dense integer index: a Graph keeps
// a bidirectional id<->index map so centrality, metrics, and path queries
// never hash strings in their hot loops. Callers outside this package
// (such as internal/impact's reachability) walk the graph by string id
// through Successors and Predecessors.
type Graph struct {
	nodes []Node
	index map[string]int
	out   [][]edge
	in    [][]int
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, adj := range g.out {
		total += len(adj)
	}
	return total
}

// Node returns the node with the given id, and whether it exists.
func (g *Graph) Node(id string) (Node, bool) {
	idx, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[idx], true
}

// HasNode reports whether id names a node in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns all nodes, in stable ascending-ID order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// OutDegree returns the number of outgoing edges from id, or 0 if id is
// not a node.
func (g *Graph) OutDegree(id string) int {
	idx, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.out[idx])
}

// InDegree returns the number of incoming edges to id, or 0 if id is not
// a node.
func (g *Graph) InDegree(id string) int {
	idx, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.in[idx])
}

// Successors returns the ids of nodes directly reachable from id via an
// outgoing edge.
func (g *Graph) Successors(id string) []string {
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.out[idx]))
	for _, e := range g.out[idx] {
		out = append(out, g.nodes[e.to].ID)
	}
	return out
}

// Predecessors returns the ids of nodes with an outgoing edge to id.
func (g *Graph) Predecessors(id string) []string {
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.in[idx]))
	for _, from := range g.in[idx] {
		out = append(out, g.nodes[from].ID)
	}
	return out
}
