package source

// CharStream is the preprocessor's output: an ordered sequence of
// origin-tagged Lines, shared read-only with every later stage for the
// lifetime of the compilation run.
type CharStream struct {
	Lines []*Line
}

// Cursor is a forward-iterating position over the characters of a
// CharStream. At every position it can report its enclosing Line and
// column, which is what lets the lexer stamp accurate Spans on every
// token even across #include/#define boundaries.
type Cursor struct {
	stream    *CharStream
	lineIndex int
	column    int
}

// NewCursor returns a Cursor positioned at the first character of the
// stream.
func NewCursor(cs *CharStream) *Cursor {
	return &Cursor{stream: cs}
}

// AtEnd reports whether the cursor has consumed every line in the stream.
func (c *Cursor) AtEnd() bool {
	return c.lineIndex >= len(c.stream.Lines)
}

// Line returns the Line the cursor currently points into, or nil at end
// of stream.
func (c *Cursor) Line() *Line {
	if c.AtEnd() {
		return nil
	}
	return c.stream.Lines[c.lineIndex]
}

// Column returns the cursor's current 0-based byte offset into Line().
func (c *Cursor) Column() int {
	return c.column
}

// Peek returns the current rune (as a byte, ASCII-matched per the source
// format) without advancing, and false at end of line or stream.
func (c *Cursor) Peek() (byte, bool) {
	return c.PeekAt(0)
}

// PeekAt returns the byte `offset` positions ahead of the cursor without
// advancing. It never crosses a line boundary: offsets past the end of
// the current line report false, even if a following line exists. This
// matches the lexer's maximal-munch operators, none of which span a
// newline.
func (c *Cursor) PeekAt(offset int) (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	text := c.Line().Text
	idx := c.column + offset
	if idx < 0 || idx >= len(text) {
		return 0, false
	}
	return text[idx], true
}

// Advance consumes one byte and returns it, moving to the next line when
// the current one is exhausted (the trailing newline byte is consumed as
// part of the line it terminates).
func (c *Cursor) Advance() (byte, bool) {
	b, ok := c.Peek()
	if !ok {
		if c.AtEnd() {
			return 0, false
		}
		// Exhausted this line's bytes (shouldn't normally happen since
		// Text always ends in '\n'); move on.
		c.lineIndex++
		c.column = 0
		return c.Advance()
	}
	c.column++
	if c.column >= len(c.Line().Text) {
		c.lineIndex++
		c.column = 0
	}
	return b, true
}

// Pos returns a zero-width Span at the cursor's current position, suitable
// as the basis for a token's starting location.
func (c *Cursor) Pos() Span {
	return Span{Line: c.Line(), StartColumn: c.column, EndColumn: c.column}
}

// SpanFrom returns the Span covering [start, current) on start's Line.
// Lexer callers keep the start position in a local, then call SpanFrom
// once the token is fully scanned.
func (c *Cursor) SpanFrom(start Span) Span {
	return Span{Line: start.Line, StartColumn: start.StartColumn, EndColumn: c.column}
}
