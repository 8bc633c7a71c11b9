package lexer

import (
	"strconv"
	"strings"

	"github.com/smasher164/xid"

	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/source"
)

// TokenInfo is one scanned token: its kind, the exact source text it
// covers, and the Span it occupies. Parser and type-analyzer diagnostics
// are always anchored at a TokenInfo's Span.
type TokenInfo struct {
	Type   TokenType
	Lexeme string
	Span   source.Span
}

// Lexer performs the single pass over a source.CharStream described in
// spec.md §4.2: keyword recognition, operator maximal-munch, comment
// skipping, and number/string literal classification.
type Lexer struct {
	cursor *source.Cursor
	sink   *diag.Sink
}

// New returns a Lexer reading from cs, reporting lex errors to sink.
func New(cs *source.CharStream, sink *diag.Sink) *Lexer {
	return &Lexer{cursor: source.NewCursor(cs), sink: sink}
}

// Tokenize scans the entire stream and returns every TokenInfo in order,
// terminated by a single EOS token. On the first fatal lex diagnostic it
// stops at once and returns the tokens scanned so far without an EOS
// (ending in the Illegal token, if one was produced), so at most one
// error is ever reported (spec.md Property 1).
func (l *Lexer) Tokenize() []TokenInfo {
	var out []TokenInfo
	for {
		tok := l.next()
		if tok.Type == internalWhitespace || tok.Type == internalComment {
			if l.sink.HasFatal() {
				return out
			}
			continue
		}
		out = append(out, tok)
		if tok.Type == EOS || l.sink.HasFatal() {
			return out
		}
	}
}

func (l *Lexer) next() TokenInfo {
	start := l.cursor.Pos()

	b, ok := l.cursor.Peek()
	if !ok {
		if l.cursor.AtEnd() {
			return TokenInfo{Type: EOS, Span: start}
		}
		// Blank/ended line with nothing left to peek; step past it.
		l.cursor.Advance()
		return TokenInfo{Type: internalWhitespace, Span: l.cursor.SpanFrom(start)}
	}

	switch {
	case b == ' ' || b == '\t' || b == '\r' || b == '\n':
		l.cursor.Advance()
		return TokenInfo{Type: internalWhitespace, Span: l.cursor.SpanFrom(start)}
	case b == '/' && l.peekIs(1, '/'):
		return l.scanLineComment(start)
	case b == '/' && l.peekIs(1, '*'):
		return l.scanBlockComment(start)
	case b == '"':
		return l.scanString(start)
	case isDigit(b):
		return l.scanNumber(start)
	case isIdentStart(b):
		return l.scanIdentifier(start)
	default:
		return l.scanOperator(start)
	}
}

func (l *Lexer) peekIs(offset int, want byte) bool {
	b, ok := l.cursor.PeekAt(offset)
	return ok && b == want
}

func (l *Lexer) scanLineComment(start source.Span) TokenInfo {
	for {
		b, ok := l.cursor.Peek()
		if !ok || b == '\n' {
			break
		}
		l.cursor.Advance()
	}
	return TokenInfo{Type: internalComment, Span: l.cursor.SpanFrom(start)}
}

func (l *Lexer) scanBlockComment(start source.Span) TokenInfo {
	l.cursor.Advance() // '/'
	l.cursor.Advance() // '*'
	for {
		b, ok := l.cursor.Peek()
		if !ok {
			l.sink.Fatalf(l.cursor.SpanFrom(start), "unterminated comment", "block comment reaches end of file without a closing */")
			break
		}
		if b == '*' && l.peekIs(1, '/') {
			l.cursor.Advance()
			l.cursor.Advance()
			break
		}
		l.cursor.Advance()
	}
	return TokenInfo{Type: internalComment, Span: l.cursor.SpanFrom(start)}
}

func (l *Lexer) scanString(start source.Span) TokenInfo {
	l.cursor.Advance() // opening quote
	var sb strings.Builder
	closed := false
	for {
		b, ok := l.cursor.Peek()
		if !ok || b == '\n' {
			break // unterminated: reached end of line/stream
		}
		if b == '"' {
			l.cursor.Advance()
			closed = true
			break
		}
		if b == '\\' {
			l.cursor.Advance()
			esc, ok := l.cursor.Peek()
			if !ok {
				break
			}
			sb.WriteByte(unescape(esc))
			l.cursor.Advance()
			continue
		}
		sb.WriteByte(b)
		l.cursor.Advance()
	}
	span := l.cursor.SpanFrom(start)
	if !closed {
		l.sink.Fatalf(span, "unterminated string", "string literal is missing its closing quote")
		return TokenInfo{Type: Illegal, Lexeme: sb.String(), Span: span}
	}
	return TokenInfo{Type: StringLit, Lexeme: sb.String(), Span: span}
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return b // includes \\ and \"
	}
}

// scanNumber classifies an int-number vs. a double-number literal (spec.md
// §3/§4.2): an optional 0x/0 prefix selects hex/octal for integers: any
// decimal point or exponent marker makes it a double.
func (l *Lexer) scanNumber(start source.Span) TokenInfo {
	first, _ := l.cursor.Peek()
	l.cursor.Advance()

	if first == '0' && (l.peekIs(0, 'x') || l.peekIs(0, 'X')) {
		l.cursor.Advance()
		for isHexDigit(mustPeek(l.cursor)) {
			l.cursor.Advance()
		}
		span := l.cursor.SpanFrom(start)
		text := span.Text()
		if _, err := strconv.ParseInt(text[2:], 16, 64); err != nil {
			l.sink.Warnf(span, "malformed number", "malformed hex integer literal %q", text)
		}
		return TokenInfo{Type: IntNumber, Lexeme: text, Span: span}
	}

	for isDigit(mustPeek(l.cursor)) {
		l.cursor.Advance()
	}

	isDouble := false
	if l.peekIs(0, '.') {
		isDouble = true
		l.cursor.Advance()
		for isDigit(mustPeek(l.cursor)) {
			l.cursor.Advance()
		}
	}
	if b, ok := l.cursor.Peek(); ok && (b == 'e' || b == 'E') {
		isDouble = true
		l.cursor.Advance()
		if b, ok := l.cursor.Peek(); ok && (b == '+' || b == '-') {
			l.cursor.Advance()
		}
		for isDigit(mustPeek(l.cursor)) {
			l.cursor.Advance()
		}
	}

	span := l.cursor.SpanFrom(start)
	text := span.Text()
	if isDouble {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			l.sink.Warnf(span, "malformed number", "malformed double literal %q", text)
		}
		return TokenInfo{Type: DoubleNumber, Lexeme: text, Span: span}
	}
	base := 10
	if len(text) > 1 && text[0] == '0' {
		base = 8
	}
	if _, err := strconv.ParseInt(text, base, 64); err != nil {
		l.sink.Warnf(span, "malformed number", "malformed integer literal %q", text)
	}
	return TokenInfo{Type: IntNumber, Lexeme: text, Span: span}
}

// mustPeek returns the current byte or 0 at end of input; callers only use
// it inside isDigit/isHexDigit, for which 0 is never a match, so this never
// confuses "end of input" with "saw a literal NUL".
func mustPeek(c *source.Cursor) byte {
	b, _ := c.Peek()
	return b
}

// scanIdentifier scans a maximal run of identifier characters using
// Unicode identifier classification (smasher164/xid), then resolves it
// against the keyword table.
func (l *Lexer) scanIdentifier(start source.Span) TokenInfo {
	l.cursor.Advance()
	for {
		b, ok := l.cursor.Peek()
		if !ok || !isIdentContinue(b) {
			break
		}
		l.cursor.Advance()
	}
	span := l.cursor.SpanFrom(start)
	text := span.Text()
	if tt, ok := keywordTable[text]; ok {
		return TokenInfo{Type: tt, Lexeme: text, Span: span}
	}
	return TokenInfo{Type: Identifier, Lexeme: text, Span: span}
}

// scanOperator performs maximal munch over the punctuator/operator set.
// Multi-character candidates are tried longest first.
func (l *Lexer) scanOperator(start source.Span) TokenInfo {
	type candidate struct {
		text string
		tt   TokenType
	}
	// Longest-first so ">>>=' isn't mis-split into ">>' + ">=' etc.
	candidates := []candidate{
		{">>>=", UShrAssignToken},
		{">>>", UShrToken},
		{"<<=", ShlAssignToken},
		{">>=", ShrAssignToken},
		{"<<", ShlToken},
		{">>", ShrToken},
		{"<=", LeToken},
		{">=", GeToken},
		{"==", EqToken},
		{"!=", NeToken},
		{"&&", AndToken},
		{"||", OrToken},
		{"**", PowToken},
		{"++", IncToken},
		{"--", DecToken},
		{"+=", AddAssignToken},
		{"-=", SubAssignToken},
		{"*=", MulAssignToken},
		{"/=", DivAssignToken},
		{"%=", ModAssignToken},
		{"&=", AndAssignToken},
		{"|=", OrAssignToken},
		{"^=", XorAssignToken},
		{"=>", FatArrowToken},
		{"->", ArrowToken},
		{"(", LParenToken},
		{")", RParenToken},
		{"[", LBracketToken},
		{"]", RBracketToken},
		{"{", LBraceToken},
		{"}", RBraceToken},
		{";", SemicolonToken},
		{",", CommaPunctToken},
		{":", ColonToken},
		{"?", QuestionToken},
		{".", DotToken},
		{"=", AssignToken},
		{"<", LtToken},
		{">", GtToken},
		{"|", BitOrToken},
		{"^", BitXorToken},
		{"&", BitAndToken},
		{"+", PlusToken},
		{"-", MinusToken},
		{"*", StarToken},
		{"/", SlashToken},
		{"%", PercentToken},
		{"!", NotToken},
		{"~", BitNotToken},
	}
	for _, c := range candidates {
		if l.matchLiteral(c.text) {
			for range c.text {
				l.cursor.Advance()
			}
			span := l.cursor.SpanFrom(start)
			return TokenInfo{Type: c.tt, Lexeme: c.text, Span: span}
		}
	}

	bad, _ := l.cursor.Peek()
	l.cursor.Advance()
	span := l.cursor.SpanFrom(start)
	l.sink.Fatalf(span, "unexpected character", "unexpected character %q", bad)
	return TokenInfo{Type: Illegal, Lexeme: string(bad), Span: span}
}

func (l *Lexer) matchLiteral(s string) bool {
	for i := 0; i < len(s); i++ {
		if !l.peekIs(i, s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// isIdentStart/isIdentContinue delegate to smasher164/xid's Unicode
// identifier classification (UAX #31), the same classifier the lexer's
// teacher package reaches for when tokenizing identifiers out of
// multi-byte source text.
func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || xid.Start(rune(b))
}

func isIdentContinue(b byte) bool {
	return b == '_' || b == '$' || xid.Continue(rune(b))
}
