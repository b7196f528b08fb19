package analysis

import "fmt"

// SpanData is a source range exactly as the compiler reports it: byte
// offsets plus 1-based line/column positions. Bounds are trusted input
// from the compiler and are not re-validated here.
type SpanData struct {
	FileName  string `json:"file_name"`
	ByteStart uint32 `json:"byte_start"`
	ByteEnd   uint32 `json:"byte_end"`
	// 1-based.
	LineStart int `json:"line_start"`
	LineEnd   int `json:"line_end"`
	// 1-based, character offset.
	ColumnStart int `json:"column_start"`
	ColumnEnd   int `json:"column_end"`
}

func (s SpanData) Empty() bool {
	return s.ByteStart == s.ByteEnd
}

func (s SpanData) Len() uint32 {
	return s.ByteEnd - s.ByteStart
}

func (s SpanData) String() string {
	return fmt.Sprintf("%s:%d:%d", s.FileName, s.LineStart, s.ColumnStart)
}

// CompilerID identifies a symbol within one build's analysis universe.
// The compiler numbers crates per invocation, so IDs are only stable
// within a single build.
type CompilerID struct {
	Krate uint32 `json:"krate"`
	Index uint32 `json:"index"`
}

func (id CompilerID) String() string {
	return fmt.Sprintf("%d:%d", id.Krate, id.Index)
}
