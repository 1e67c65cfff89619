package graph

import (
	"context"
	"testing"

	"github.com/naveeak/impact-analyser/internal/artifact"
)

func TestBuildCreatesFileAndSymbolNodes(t *testing.T) {
	results := artifact.ParseResult{
		"pkg/handler/handler.go": {
			Language:  artifact.LanguageJavaScript,
			Functions: []artifact.FuncDef{{Name: "HandleRequest", Line: 5}},
			Imports:   []artifact.ImportRef{{Name: "pkg/auth/validator.go", Kind: artifact.ImportKindPlain}},
		},
		"pkg/auth/validator.go": {
			Language: artifact.LanguageJavaScript,
			Classes:  []artifact.ClassDef{{Name: "Validator", Line: 1}},
		},
	}

	g, err := Build(context.Background(), results)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !g.HasNode("pkg/handler/handler.go") || !g.HasNode("pkg/auth/validator.go") {
		t.Fatal("Build() did not create expected file nodes")
	}
	if !g.HasNode("pkg/handler/handler.go::HandleRequest") {
		t.Error("Build() did not create the function's symbol node")
	}
	if n, ok := g.Node("pkg/handler/handler.go::HandleRequest"); !ok || n.Kind != NodeKindFunction {
		t.Errorf("function symbol node kind = %v, want NodeKindFunction", n.Kind)
	}
	if !g.HasNode("pkg/auth/validator.go::Validator") {
		t.Error("Build() did not create the class's symbol node")
	}

	if got := g.Successors("pkg/handler/handler.go"); len(got) != 1 || got[0] != "pkg/auth/validator.go" {
		t.Errorf("Successors(handler.go) = %v, want [pkg/auth/validator.go]", got)
	}
}

func TestBuildSkipsFilesWithParseErrors(t *testing.T) {
	results := artifact.ParseResult{
		"pkg/broken.go": {Error: "unexpected token"},
		"pkg/ok.go":     {},
	}

	g, err := Build(context.Background(), results)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.HasNode("pkg/broken.go") {
		t.Error("Build() should not create a node for a file with a parse error")
	}
	if !g.HasNode("pkg/ok.go") {
		t.Error("Build() should still create a node for the well-formed file")
	}
}

func TestBuildDropsSelfLoopsAndDedupesImports(t *testing.T) {
	results := artifact.ParseResult{
		"pkg/a.go": {
			Imports: []artifact.ImportRef{
				{Name: "pkg/a.go", Kind: artifact.ImportKindPlain},
				{Name: "pkg/b.go", Kind: artifact.ImportKindPlain},
				{Name: "pkg/b.go", Kind: artifact.ImportKindFrom},
			},
		},
		"pkg/b.go": {},
	}

	g, err := Build(context.Background(), results)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.OutDegree("pkg/a.go") != 1 {
		t.Errorf("OutDegree(a.go) = %d, want 1 (self-loop dropped, duplicate deduped)", g.OutDegree("pkg/a.go"))
	}
}

func TestBuildIsDeterministicAcrossMapOrder(t *testing.T) {
	results := artifact.ParseResult{
		"pkg/z.go": {Imports: []artifact.ImportRef{{Name: "pkg/a.go"}}},
		"pkg/a.go": {},
		"pkg/m.go": {Imports: []artifact.ImportRef{{Name: "pkg/a.go"}}},
	}

	first, err := Build(context.Background(), results)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := Build(context.Background(), results)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if first.NodeCount() != second.NodeCount() || first.EdgeCount() != second.EdgeCount() {
		t.Error("Build() is not deterministic across repeated calls over the same input")
	}
}
