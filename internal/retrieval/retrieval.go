// Package retrieval provides the retrieval collaborator consumed by the
// orchestrator's context-gathering step. The production collaborator
// would be a document-vector store and language-model prompt; this
// package is an in-memory keyword-overlap stand-in with the same
// interface, so the orchestrator's fork-join and error-handling paths can
// be exercised without an external service.
package retrieval

import (
	"context"
	"sort"
	"strings"
)

// Document is one indexed piece of context available for retrieval.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Result is one match returned by Retrieve:
// retrieve(query, k) -> [{content, metadata, relevance_score}].
type Result struct {
	Content        string            `json:"content"`
	Metadata       map[string]string `json:"metadata"`
	RelevanceScore float64           `json:"relevance_score"`
}

// Client is the retrieval collaborator interface the orchestrator depends
// on. Swapping in a real vector store only requires a new implementation
// of this interface.
type Client interface {
	Retrieve(ctx context.Context, query string, k int) ([]Result, error)
}

// InMemory is a Client backed by a fixed document set, scoring matches by
// normalized token overlap with the query. Score ties are broken by
// document ID, so results are stable for a fixed document set.
type InMemory struct {
	docs []Document
}

// NewInMemory builds an InMemory retrieval client over docs.
func NewInMemory(docs []Document) *InMemory {
	return &InMemory{docs: docs}
}

// Retrieve returns the top k documents by token overlap with query.
func (m *InMemory) Retrieve(ctx context.Context, query string, k int) ([]Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || len(m.docs) == 0 || k <= 0 {
		return []Result{}, nil
	}

	type scored struct {
		doc   Document
		score float64
	}
	var candidates []scored
	for _, d := range m.docs {
		score := overlapScore(queryTokens, tokenize(d.Content))
		if score > 0 {
			candidates = append(candidates, scored{doc: d, score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].doc.ID < candidates[j].doc.ID
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	results := make([]Result, k)
	for i := 0; i < k; i++ {
		results[i] = Result{
			Content:        candidates[i].doc.Content,
			Metadata:       candidates[i].doc.Metadata,
			RelevanceScore: candidates[i].score,
		}
	}
	return results, nil
}

func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(s)) {
		tokens[f] = true
	}
	return tokens
}

// overlapScore is |a ∩ b| / |a ∪ b| (Jaccard similarity) over token sets.
func overlapScore(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if b[t] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
