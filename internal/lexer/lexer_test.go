package lexer_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/lexer"
	"github.com/solalang/solc/internal/testutil"
)

func tokenize(t *testing.T, src string) ([]lexer.TokenInfo, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(os.Stderr)
	lx := lexer.New(testutil.CharStream(src), sink)
	return lx.Tokenize(), sink
}

func types(toks []lexer.TokenInfo) []lexer.TokenType {
	out := make([]lexer.TokenType, len(toks))
	for i, tk := range toks {
		out[i] = tk.Type
	}
	return out
}

func TestTokenizeBasicDeclaration(t *testing.T) {
	toks, sink := tokenize(t, "int x = 1 + 2;")
	require.False(t, sink.HasFatal())
	got := types(toks)
	want := []lexer.TokenType{
		lexer.IntToken, lexer.Identifier, lexer.AssignToken,
		lexer.IntNumber, lexer.PlusToken, lexer.IntNumber,
		lexer.SemicolonToken, lexer.EOS,
	}
	assert.Equal(t, want, got)
}

func TestTokenizeAlwaysEndsInEOS(t *testing.T) {
	for _, src := range []string{"", "   ", "// just a comment\n"} {
		toks, sink := tokenize(t, src)
		require.False(t, sink.HasFatal())
		require.NotEmpty(t, toks)
		assert.Equal(t, lexer.EOS, toks[len(toks)-1].Type, "src %q must still end in EOS", src)
	}
}

func TestUnterminatedBlockCommentAbortsWithSingleFatal(t *testing.T) {
	toks, sink := tokenize(t, "/* unterminated")
	require.True(t, sink.HasFatal())
	assert.Len(t, sink.Fatal, 1, "Property 1: never more than one error reported")
	assert.Empty(t, sink.Warning)
	assert.Empty(t, toks, "tokenizer aborts before producing any tokens for the unterminated comment")
}

func TestUnterminatedStringAbortsWithSingleFatal(t *testing.T) {
	toks, sink := tokenize(t, "\"unterminated")
	require.True(t, sink.HasFatal())
	assert.Len(t, sink.Fatal, 1, "Property 1: never more than one error reported")
	assert.Empty(t, sink.Warning)
	require.Len(t, toks, 1, "the offending Illegal token is emitted, then tokenizing stops")
	assert.Equal(t, lexer.Illegal, toks[0].Type)
}

func TestMaximalMunchOperators(t *testing.T) {
	toks, sink := tokenize(t, "a >>>= b <<= c >= d")
	require.False(t, sink.HasFatal())
	got := types(toks)
	want := []lexer.TokenType{
		lexer.Identifier, lexer.UShrAssignToken, lexer.Identifier,
		lexer.ShlAssignToken, lexer.Identifier, lexer.GeToken,
		lexer.Identifier, lexer.EOS,
	}
	assert.Equal(t, want, got)
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks, _ := tokenize(t, "contract contractx")
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.ContractToken, toks[0].Type)
	assert.Equal(t, lexer.Identifier, toks[1].Type)
	assert.Equal(t, "contractx", toks[1].Lexeme)
}

func TestIllegalByteAbortsTokenizingFatally(t *testing.T) {
	assert.NotPanics(t, func() {
		toks, sink := tokenize(t, "int x = 1 @ 2;")
		require.True(t, sink.HasFatal())
		assert.Len(t, sink.Fatal, 1, "Property 1: never more than one error reported")
		require.NotEmpty(t, toks)
		assert.Equal(t, lexer.Illegal, toks[len(toks)-1].Type, "tokenizing stops right after the illegal byte, before reaching EOS")
	})
}

func TestMalformedNumberWarnsButStillEmitsToken(t *testing.T) {
	toks, sink := tokenize(t, "int x = 99999999999999999999;")
	require.False(t, sink.HasFatal(), "a malformed number is a warning, not a fatal diagnostic")
	require.NotEmpty(t, sink.Warning)
	assert.Contains(t, sink.Warning[len(sink.Warning)-1].LongMsg, "malformed")
	assert.Equal(t, lexer.IntNumber, toks[3].Type, "the token is emitted despite the overflow")
	assert.Equal(t, "99999999999999999999", toks[3].Lexeme)
}

func TestMalformedHexNumberWarnsButStillEmitsToken(t *testing.T) {
	toks, sink := tokenize(t, "int x = 0x;")
	require.False(t, sink.HasFatal())
	require.NotEmpty(t, sink.Warning)
	assert.Equal(t, lexer.IntNumber, toks[3].Type)
	assert.Equal(t, "0x", toks[3].Lexeme)
}

func TestDoubleNumberLiterals(t *testing.T) {
	toks, sink := tokenize(t, "double x = 3.14e2;")
	require.False(t, sink.HasFatal())
	assert.Equal(t, lexer.DoubleNumber, toks[3].Type)
	assert.Equal(t, "3.14e2", toks[3].Lexeme)
}

func TestPrecedenceTableMatchesSpecOrdering(t *testing.T) {
	assert.Less(t, lexer.OrToken.Precedence(), lexer.AndToken.Precedence())
	assert.Less(t, lexer.AndToken.Precedence(), lexer.EqToken.Precedence())
	assert.Less(t, lexer.PlusToken.Precedence(), lexer.StarToken.Precedence())
	assert.Less(t, lexer.StarToken.Precedence(), lexer.PowToken.Precedence())
}
