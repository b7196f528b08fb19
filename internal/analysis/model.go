// Package analysis models the save-analysis artifacts emitted by the
// compiler during a build: one JSON file per crate describing symbol
// definitions, references, imports and macro expansions. The package
// locates artifact files under the build output root, decodes them into
// typed records and hands the result to downstream consumers (symbol
// index, query engine). Records are built once during decoding and never
// mutated afterwards.
package analysis

// Analysis is the decoded contents of one artifact file.
type Analysis struct {
	Prelude   *CratePreludeData `json:"prelude"`
	Imports   []Import          `json:"imports"`
	Defs      []Def             `json:"defs"`
	Refs      []Ref             `json:"refs"`
	MacroRefs []MacroRef        `json:"macro_refs"`
}

// CratePreludeData is the per-crate metadata accompanying an artifact's
// symbol data: crate name, crate root and direct external dependencies.
type CratePreludeData struct {
	CrateName      string              `json:"crate_name"`
	CrateRoot      string              `json:"crate_root"`
	ExternalCrates []ExternalCrateData `json:"external_crates"`
	Span           SpanData            `json:"span"`
}

// ExternalCrateData names one direct external dependency of a crate.
type ExternalCrateData struct {
	Name     string `json:"name"`
	Num      uint32 `json:"num"`
	FileName string `json:"file_name"`
}

// Def is a symbol definition.
type Def struct {
	Kind     DefKind    `json:"kind"`
	ID       CompilerID `json:"id"`
	Span     SpanData   `json:"span"`
	Name     string     `json:"name"`
	QualName string     `json:"qualname"`
	Value    string     `json:"value"`
}

// Ref is a symbol use-site. RefID points at the CompilerID of the Def it
// resolves to, which may live in a different Analysis; cross-crate
// resolution is a downstream concern.
type Ref struct {
	Kind  RefKind    `json:"kind"`
	Span  SpanData   `json:"span"`
	RefID CompilerID `json:"ref_id"`
}

// MacroRef is a macro invocation site plus the span of the macro
// definition it expands.
type MacroRef struct {
	Span       SpanData `json:"span"`
	QualName   string   `json:"qualname"`
	CalleeSpan SpanData `json:"callee_span"`
}

// Import is a single import item (extern crate, use or glob use).
type Import struct {
	Kind  ImportKind `json:"kind"`
	ID    CompilerID `json:"id"`
	Span  SpanData   `json:"span"`
	Name  string     `json:"name"`
	Value string     `json:"value"`
}
