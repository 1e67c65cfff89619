// Package artifact defines the language-agnostic digest of a single
// source file that the Graph Builder consumes. It is the boundary
// between per-language parsing (out of scope for this module) and the
// dependency-graph construction that is this module's subject.
package artifact

// Language tags a ParseResult's source language.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageJava       Language = "java"
	LanguageUnknown    Language = "unknown"
)

// ImportKind distinguishes a plain "import x" from a "from x import y" style
// reference; it is carried through to the Graph edge payload but does not
// affect resolution (see resolveImport in the graph package).
type ImportKind string

const (
	ImportKindPlain ImportKind = "plain"
	ImportKindFrom  ImportKind = "from"
)

// ImportRef is one import statement extracted from a source file.
type ImportRef struct {
	Name   string     `json:"name"`
	Alias  string     `json:"alias,omitempty"`
	Module string     `json:"module,omitempty"`
	Kind   ImportKind `json:"kind"`
}

// FuncDef is one function (or async function) definition extracted from a
// source file.
type FuncDef struct {
	Name       string   `json:"name"`
	Line       int      `json:"line"`
	Decorators []string `json:"decorators,omitempty"`
	Args       []string `json:"args,omitempty"`
}

// ClassDef is one class definition extracted from a source file.
type ClassDef struct {
	Name    string   `json:"name"`
	Line    int      `json:"line"`
	Bases   []string `json:"bases,omitempty"`
	Methods []string `json:"methods,omitempty"`
}

// FileResult is the per-file parse digest. A path with a non-empty Error is
// skipped entirely by the Graph Builder: no file node and no symbol nodes
// are created for it.
type FileResult struct {
	Language       Language    `json:"language"`
	Imports        []ImportRef `json:"imports,omitempty"`
	Functions      []FuncDef   `json:"functions,omitempty"`
	Classes        []ClassDef  `json:"classes,omitempty"`
	AsyncFunctions []FuncDef   `json:"async_functions,omitempty"`
	LinesOfCode    int         `json:"lines_of_code"`
	Error          string      `json:"error,omitempty"`
}

// ParseResult maps a relative file path (forward-slash separated, unique)
// to its parse digest.
type ParseResult map[string]FileResult
