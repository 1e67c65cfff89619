package graph

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/naveeak/impact-analyser/internal/artifact"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var buildTracer = otel.Tracer("impact-analyser.graph")

// Build materializes a Graph from a ParseResult. It is pure (no I/O), and
// deterministic: the final node and edge sets never depend on the
// iteration order of the input map.
//
// Files whose FileResult.Error is non-empty are excluded entirely: neither
// a file node nor any of its symbol nodes are created, and nothing else in
// the graph may reference them.
//
// Build never fails for ordinary input — a malformed single file is
// skipped, not fatal. The error return exists for future
// internal-invariant failures and is always nil today.
func Build(ctx context.Context, results artifact.ParseResult) (*Graph, error) {
	ctx, span := buildTracer.Start(ctx, "graph.Build")
	defer span.End()

	paths := make([]string, 0, len(results))
	skipped := 0
	for path, r := range results {
		if r.Error != "" {
			skipped++
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	kind := make(map[string]NodeKind, len(paths)*2)
	parent := make(map[string]string, len(paths)*2)

	for _, path := range paths {
		kind[path] = NodeKindFile
		parent[path] = ""
	}

	// Node pass: within one file, functions then classes then async
	// functions; a later write to the same id overwrites an earlier one
	// (last-writer-wins — see the symbol-collision note in DESIGN.md).
	for _, path := range paths {
		r := results[path]
		for _, f := range r.Functions {
			id := path + "::" + f.Name
			kind[id] = NodeKindFunction
			parent[id] = path
		}
		for _, c := range r.Classes {
			id := path + "::" + c.Name
			kind[id] = NodeKindClass
			parent[id] = path
		}
		for _, f := range r.AsyncFunctions {
			id := path + "::" + f.Name
			kind[id] = NodeKindAsyncFunction
			parent[id] = path
		}
	}

	allIDs := make([]string, 0, len(kind))
	for id := range kind {
		allIDs = append(allIDs, id)
	}
	sort.Strings(allIDs)

	g := &Graph{
		nodes: make([]Node, len(allIDs)),
		index: make(map[string]int, len(allIDs)),
		out:   make([][]edge, len(allIDs)),
		in:    make([][]int, len(allIDs)),
	}
	for i, id := range allIDs {
		g.nodes[i] = Node{ID: id, Kind: kind[id], ParentFile: parent[id]}
		g.index[id] = i
	}

	// Edge pass: resolve each import to a target file and add an edge,
	// deduplicating by (source, target) and dropping self-loops.
	edgesAdded := 0
	for _, path := range paths {
		r := results[path]
		seen := make(map[string]bool)
		for i := range r.Imports {
			imp := r.Imports[i]
			target, ok := resolveImport(imp.Name, paths)
			if !ok || target == path {
				continue
			}
			if seen[target] {
				continue
			}
			seen[target] = true

			from := g.index[path]
			to := g.index[target]
			g.out[from] = append(g.out[from], edge{to: to, kind: EdgeKindImport, payload: &imp})
			g.in[to] = append(g.in[to], from)
			edgesAdded++
		}
	}

	_, centralitySpan := buildTracer.Start(ctx, "graph.computeCentrality")
	computeCentrality(g)
	centralitySpan.End()

	span.SetAttributes(
		attribute.Int("graph.nodes", len(g.nodes)),
		attribute.Int("graph.edges", edgesAdded),
		attribute.Int("graph.files_skipped", skipped))
	if skipped > 0 {
		slog.Warn("graph build skipped files with parse errors", "count", skipped)
	}
	slog.Info("graph built", "nodes", len(g.nodes), "edges", edgesAdded)

	return g, nil
}

// resolveImport implements the import-resolution rule: the first file
// path q (in sorted order over the file-path set F) for which
// either n is a substring of q, or q with '/' converted to '.' has n as a
// prefix. F MUST be pre-sorted by the caller (Build passes the already-
// sorted file-path slice) so results are reproducible across platforms
// and map-iteration orders.
func resolveImport(n string, sortedFiles []string) (string, bool) {
	for _, q := range sortedFiles {
		if strings.Contains(q, n) {
			return q, true
		}
		if strings.HasPrefix(strings.ReplaceAll(q, "/", "."), n) {
			return q, true
		}
	}
	return "", false
}
