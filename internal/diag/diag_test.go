package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/source"
)

func testLine() *source.Line {
	return &source.Line{Text: "int x = 1;\n", File: "main.sol", LineNumber: 3}
}

func TestRenderIncludesFrameAndCaret(t *testing.T) {
	var buf bytes.Buffer
	diag.Render(&buf, diag.Diagnostic{
		Severity:   diag.Fatal,
		Span:       source.Span{Line: testLine(), StartColumn: 4, EndColumn: 5},
		LongMsg:    "undefined identifier",
		ShortLabel: "here",
	})
	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "main.sol:3:5")
	assert.Contains(t, out, "here")
}

func TestRenderWithoutSourcePositionIsPlainMessage(t *testing.T) {
	var buf bytes.Buffer
	diag.Render(&buf, diag.Diagnostic{Severity: diag.Warning, LongMsg: "bad config"})
	out := buf.String()
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "bad config")
	assert.NotContains(t, out, "-->")
}

func TestSinkAccumulatesBySeverity(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.NewSink(&buf)
	sink.Warnf(source.Span{}, "short", "warn %d", 1)
	sink.Fatalf(source.Span{}, "short", "fatal %d", 2)

	assert.True(t, sink.HasFatal())
	require.Len(t, sink.Warning, 1)
	require.Len(t, sink.Fatal, 1)
	assert.Equal(t, "warn 1", sink.Warning[0].LongMsg)
	assert.Equal(t, "fatal 2", sink.Fatal[0].LongMsg)
}

func TestIncludeChainIsUnwound(t *testing.T) {
	root := &source.Line{Text: "x;\n", File: "main.sol", LineNumber: 1}
	included := &source.Line{Text: "y;\n", File: "lib.sol", LineNumber: 5, IncludedFrom: root}

	var buf bytes.Buffer
	diag.Render(&buf, diag.Diagnostic{
		Severity: diag.Warning,
		Span:     source.Span{Line: included, StartColumn: 0, EndColumn: 1},
		LongMsg:  "issue",
	})
	assert.Contains(t, buf.String(), "included from main.sol:1")
}
