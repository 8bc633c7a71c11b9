package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solalang/solc/internal/source"
)

func twoLineStream() *source.CharStream {
	return &source.CharStream{Lines: []*source.Line{
		{Text: "int x;\n", File: "main.sol", LineNumber: 1},
		{Text: "int y;\n", File: "main.sol", LineNumber: 2},
	}}
}

func TestCursorPeekAndAdvanceWalkBytesInOrder(t *testing.T) {
	cur := source.NewCursor(twoLineStream())

	b, ok := cur.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('i'), b)

	b, ok = cur.Advance()
	require.True(t, ok)
	assert.Equal(t, byte('i'), b)

	b, ok = cur.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('n'), b)
}

func TestCursorPeekAtDoesNotCrossLineBoundary(t *testing.T) {
	cur := source.NewCursor(twoLineStream())
	for range "int x;" {
		cur.Advance()
	}
	// cursor now sits right before the trailing '\n' of line 1.
	_, ok := cur.PeekAt(0)
	require.True(t, ok, "newline itself is still in range")

	_, ok = cur.PeekAt(1)
	assert.False(t, ok, "one past the newline must not read into line 2")
}

func TestCursorAdvanceCrossesToNextLine(t *testing.T) {
	cur := source.NewCursor(twoLineStream())
	for range "int x;\n" {
		cur.Advance()
	}
	assert.Equal(t, 2, cur.Line().LineNumber)
	b, ok := cur.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('i'), b)
}

func TestCursorAtEndAfterConsumingAllLines(t *testing.T) {
	cs := &source.CharStream{Lines: []*source.Line{{Text: "x;\n", File: "f", LineNumber: 1}}}
	cur := source.NewCursor(cs)
	assert.False(t, cur.AtEnd())
	for range "x;\n" {
		cur.Advance()
	}
	assert.True(t, cur.AtEnd())
	assert.Nil(t, cur.Line())
	_, ok := cur.Peek()
	assert.False(t, ok)
}

func TestSpanFromCapturesStartToCurrentColumn(t *testing.T) {
	cur := source.NewCursor(twoLineStream())
	start := cur.Pos()
	for range "int" {
		cur.Advance()
	}
	span := cur.SpanFrom(start)
	assert.Equal(t, 0, span.StartColumn)
	assert.Equal(t, 3, span.EndColumn)
	assert.Equal(t, "int", span.Text())
}

func TestSpanStringFormatsOneBasedColumn(t *testing.T) {
	line := &source.Line{Text: "int x;\n", File: "main.sol", LineNumber: 7}
	span := source.Span{Line: line, StartColumn: 4, EndColumn: 5}
	assert.Equal(t, "main.sol:7:5", span.String())
}

func TestSpanStringWithNoLineReportsNoPosition(t *testing.T) {
	assert.Equal(t, "<no position>", source.Span{}.String())
}

func TestSpanTextClampsOutOfRangeColumns(t *testing.T) {
	line := &source.Line{Text: "abc\n", File: "f", LineNumber: 1}
	span := source.Span{Line: line, StartColumn: 2, EndColumn: 99}
	assert.Equal(t, "c\n", span.Text())
}

func TestIncludeChainUnwindsToRoot(t *testing.T) {
	root := &source.Line{Text: "#include \"lib.sol\"\n", File: "main.sol", LineNumber: 1}
	mid := &source.Line{Text: "#include \"inner.sol\"\n", File: "lib.sol", LineNumber: 1, IncludedFrom: root}
	leaf := &source.Line{Text: "int z;\n", File: "inner.sol", LineNumber: 4, IncludedFrom: mid}

	chain := leaf.IncludeChain()
	require.Len(t, chain, 3)
	assert.Equal(t, leaf, chain[0])
	assert.Equal(t, mid, chain[1])
	assert.Equal(t, root, chain[2])
}

func TestIncludeChainOfRootLineIsItselfAlone(t *testing.T) {
	root := &source.Line{Text: "int x;\n", File: "main.sol", LineNumber: 1}
	chain := root.IncludeChain()
	require.Len(t, chain, 1)
	assert.Equal(t, root, chain[0])
}
