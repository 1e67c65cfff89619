package graph

import "errors"

// Sentinel errors describing malformed graph documents. Build never
// returns a non-nil error for ordinary inputs (bad files are skipped, not
// fatal), and Decode returns no error at all: it accepts a document with
// no nodes and drops any edge whose endpoint is absent. No function in
// this package returns these sentinels.
var (
	// ErrEmptyDocument describes a document that has no nodes.
	ErrEmptyDocument = errors.New("graph: document has no nodes")

	// ErrMalformedEdge describes an edge that references a node id not
	// present in the document's node list.
	ErrMalformedEdge = errors.New("graph: edge references unknown node")
)
