// Package source implements the shared source-location core: the Line and
// Span records every later pipeline stage (lexer, parser, type analyzer,
// emitter, diagnostics) holds references into, never copies of.
package source

import "fmt"

// FileRef names a source file as the preprocessor saw it, e.g. relative to
// the directory the compiler was invoked from.
type FileRef string

// Line is one line of preprocessed source, annotated with where it came
// from. Lines are created once by the preprocessor and are immutable
// afterwards; every later stage holds a pointer into the same Line rather
// than copying its text.
//
// IncludedFrom forms a linked list back to the #include directive line
// that pulled this line in, and on to that line's own IncludedFrom, and so
// on to the root file. The chain length is bounded by the include depth
// limit (internal/preprocess.DefaultMaxIncludeDepth).
type Line struct {
	Text         string
	File         FileRef
	LineNumber   int // 1-based
	IncludedFrom *Line
}

// IncludeChain returns the Line, its IncludedFrom, and so on up to the
// root, in that order.
func (l *Line) IncludeChain() []*Line {
	var chain []*Line
	for cur := l; cur != nil; cur = cur.IncludedFrom {
		chain = append(chain, cur)
	}
	return chain
}

// Span is a half-open-by-column reference into a Line: [StartColumn,
// EndColumn). Columns are 0-based byte offsets into Line.Text.
type Span struct {
	Line        *Line
	StartColumn int
	EndColumn   int
}

func (s Span) String() string {
	if s.Line == nil {
		return "<no position>"
	}
	return fmt.Sprintf("%s:%d:%d", s.Line.File, s.Line.LineNumber, s.StartColumn+1)
}

// Text returns the substring of the Line's text this Span covers.
func (s Span) Text() string {
	if s.Line == nil {
		return ""
	}
	end := s.EndColumn
	if end > len(s.Line.Text) {
		end = len(s.Line.Text)
	}
	start := s.StartColumn
	if start > end {
		start = end
	}
	return s.Line.Text[start:end]
}
