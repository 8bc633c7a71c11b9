// Package diag implements the cross-cutting diagnostic renderer shared by
// every pipeline stage (spec.md §4.6): given a source span and a message
// pair, it prints a framed terminal excerpt and unwinds the include chain.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/solalang/solc/internal/source"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31;1m"
	ansiYellow = "\x1b[33;1m"
	ansiCyan   = "\x1b[36m"
	ansiBold   = "\x1b[1m"
)

// Severity distinguishes fatal diagnostics (which end the run) from
// warnings (which do not), per the taxonomy in spec.md §7.
type Severity int

const (
	Warning Severity = iota
	Fatal
)

// Diagnostic is a rendered unit: a span, a long message and a short caret
// label, matching the (TokenInfo, long, short) triple the spec's renderer
// consumes.
type Diagnostic struct {
	Severity   Severity
	Span       source.Span
	LongMsg    string
	ShortLabel string
}

// Render writes the framed excerpt described in spec.md §4.6 to w: a
// colored ERROR/WARNING header with the long message, the offending
// line with its span highlighted, a caret line pointing at the span,
// the short label, and then the unwound include chain.
func Render(w io.Writer, d Diagnostic) {
	header, color := "ERROR", ansiRed
	if d.Severity == Warning {
		header, color = "WARNING", ansiYellow
	}
	fmt.Fprintf(w, "%s%s:%s %s\n", color, header, ansiReset, d.LongMsg)

	if d.Span.Line == nil {
		// No source position available (e.g. a config-file error) -- plain
		// message only, no framed excerpt.
		return
	}

	line := d.Span.Line
	text := strings.TrimRight(line.Text, "\n\r")
	start, end := d.Span.StartColumn, d.Span.EndColumn
	if end <= start {
		end = start + 1
	}
	if end > len(text) {
		end = len(text)
	}
	if start > len(text) {
		start = len(text)
	}

	fmt.Fprintf(w, "  %s--> %s:%d:%d%s\n", ansiBold, line.File, line.LineNumber, start+1, ansiReset)
	fmt.Fprintf(w, "   %s|%s\n", ansiCyan, ansiReset)
	fmt.Fprintf(w, "%4d %s|%s %s%s%s%s%s\n",
		line.LineNumber, ansiCyan, ansiReset,
		text[:start], color, text[start:end], ansiReset, text[end:])

	caret := strings.Repeat(" ", start) + strings.Repeat("^", end-start)
	fmt.Fprintf(w, "   %s|%s %s%s %s%s\n", ansiCyan, ansiReset, color, caret, d.ShortLabel, ansiReset)

	chain := line.IncludeChain()
	for i := 1; i < len(chain); i++ {
		fmt.Fprintf(w, "   %s= included from %s:%d%s\n", ansiBold, chain[i].File, chain[i].LineNumber, ansiReset)
	}
}

// Sink accumulates diagnostics over a compilation run and renders each one
// as it arrives; it is what the CLI hands to every stage.
type Sink struct {
	w       io.Writer
	Fatal   []Diagnostic
	Warning []Diagnostic
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) Report(d Diagnostic) {
	Render(s.w, d)
	switch d.Severity {
	case Fatal:
		s.Fatal = append(s.Fatal, d)
	default:
		s.Warning = append(s.Warning, d)
	}
}

func (s *Sink) Warnf(span source.Span, short, format string, args ...any) {
	s.Report(Diagnostic{Severity: Warning, Span: span, LongMsg: fmt.Sprintf(format, args...), ShortLabel: short})
}

func (s *Sink) Fatalf(span source.Span, short, format string, args ...any) {
	s.Report(Diagnostic{Severity: Fatal, Span: span, LongMsg: fmt.Sprintf(format, args...), ShortLabel: short})
}

// HasFatal reports whether any fatal diagnostic has been reported so far.
func (s *Sink) HasFatal() bool {
	return len(s.Fatal) > 0
}
