package graph

// NodeLinkDocument is the bit-stable wire format used for the optional
// `dependency_graph` field of an analyze request. It differs from Document
// (the richer, persisted form from Encode/Decode): it carries no
// repository identity or metrics, and calls its edge list "links" rather
// than "edges", matching the networkx node-link convention the reference
// service produced.
type NodeLinkDocument struct {
	Directed   bool           `json:"directed"`
	Multigraph bool           `json:"multigraph"`
	Graph      map[string]any `json:"graph"`
	Nodes      []NodeLinkNode `json:"nodes"`
	Links      []NodeLinkLink `json:"links"`
}

// NodeLinkNode is one node entry in a NodeLinkDocument. Optional fields
// default on decode: Type to "unknown", the centralities to 0.
type NodeLinkNode struct {
	ID                    string   `json:"id"`
	Type                  *string  `json:"type,omitempty"`
	DegreeCentrality      *float64 `json:"degree_centrality,omitempty"`
	BetweennessCentrality *float64 `json:"betweenness_centrality,omitempty"`
	ClosenessCentrality   *float64 `json:"closeness_centrality,omitempty"`
}

// NodeLinkLink is one edge entry in a NodeLinkDocument. Weight defaults
// to 1 on decode when absent.
type NodeLinkLink struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   *string  `json:"type,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// FromNodeLink reconstructs a Graph from the wire-level node-link
// document, applying defaults for any omitted optional field.
func FromNodeLink(doc NodeLinkDocument) *Graph {
	nodes := make([]DocNode, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodeType := "unknown"
		if n.Type != nil {
			nodeType = *n.Type
		}
		nodes[i] = DocNode{
			ID:                    n.ID,
			Type:                  nodeType,
			DegreeCentrality:      floatOrZero(n.DegreeCentrality),
			BetweennessCentrality: floatOrZero(n.BetweennessCentrality),
			ClosenessCentrality:   floatOrZero(n.ClosenessCentrality),
		}
	}

	edges := make([]DocEdge, len(doc.Links))
	for i, l := range doc.Links {
		edgeType := "unknown"
		if l.Type != nil {
			edgeType = *l.Type
		}
		weight := 1.0
		if l.Weight != nil {
			weight = *l.Weight
		}
		edges[i] = DocEdge{Source: l.Source, Target: l.Target, Type: edgeType, Weight: weight}
	}

	return Decode(Document{Nodes: nodes, Edges: edges})
}

// ToNodeLink renders a Graph as a wire-level node-link document.
func ToNodeLink(g *Graph) NodeLinkDocument {
	doc := NodeLinkDocument{
		Directed:   true,
		Multigraph: false,
		Graph:      map[string]any{},
	}
	for _, n := range g.nodes {
		typ := n.Kind.String()
		deg, bet, clo := n.DegreeCentrality, n.BetweennessCentrality, n.ClosenessCentrality
		doc.Nodes = append(doc.Nodes, NodeLinkNode{
			ID:                    n.ID,
			Type:                  &typ,
			DegreeCentrality:      &deg,
			BetweennessCentrality: &bet,
			ClosenessCentrality:   &clo,
		})
	}
	for from, adj := range g.out {
		for _, e := range adj {
			typ := e.kind.String()
			weight := 1.0
			doc.Links = append(doc.Links, NodeLinkLink{
				Source: g.nodes[from].ID,
				Target: g.nodes[e.to].ID,
				Type:   &typ,
				Weight: &weight,
			})
		}
	}
	return doc
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
