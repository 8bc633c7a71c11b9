// Package testutil provides test helpers: snapshot printers that render
// decorated ASTs and emitted IR for comparison (not called by any test
// at present) and CharStream, which the test suites use to build
// in-memory sources. The printers are grounded on sqltest/querydump.go's use of
// github.com/alecthomas/repr for readable structural dumps (there of SQL
// rows, here of compiler data structures).
package testutil

import (
	"strings"

	"github.com/alecthomas/repr"

	"github.com/solalang/solc/internal/ast"
	"github.com/solalang/solc/internal/source"
)

// CharStream builds a single-file source.CharStream out of a literal Go
// string, for tests that exercise the lexer/parser/analyzer/emitter
// directly against inline source text rather than through the
// preprocessor. Each line is given a synthetic file name and no
// IncludedFrom parent.
func CharStream(text string) *source.CharStream {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	cs := &source.CharStream{}
	for i, l := range lines {
		if !strings.HasSuffix(l, "\n") {
			l += "\n"
		}
		cs.Lines = append(cs.Lines, &source.Line{
			Text:       l,
			File:       "test.sol",
			LineNumber: i + 1,
		})
	}
	return cs
}

// DumpAST renders a parsed/analyzed source unit as a deterministic,
// human-readable string suitable for snapshot comparison in tests.
func DumpAST(u *ast.SourceUnit) string {
	return repr.String(u, repr.Indent("  "), repr.OmitEmpty(true))
}

// DumpExpr renders a single expression node, including its type
// decoration, for tests that assert on the type analyzer's output in
// isolation rather than a whole source unit.
func DumpExpr(e ast.Expr) string {
	return repr.String(e, repr.Indent("  "), repr.OmitEmpty(true))
}

// NormalizeIR trims trailing whitespace from each line of emitted IR
// text so snapshot fixtures are not sensitive to editor whitespace
// conventions; the emitter's own output is already deterministic
// (spec.md Property 6), this only guards the fixture comparison itself.
func NormalizeIR(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
