package emit_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/emit"
	"github.com/solalang/solc/internal/ir/textual"
	"github.com/solalang/solc/internal/lexer"
	"github.com/solalang/solc/internal/parser"
	"github.com/solalang/solc/internal/testutil"
	"github.com/solalang/solc/internal/types"
)

// compile runs the full preprocess-free pipeline (lex, parse, analyze,
// emit) over src and returns the serialized IR text plus the sink any
// stage reported diagnostics to.
func compile(t *testing.T, src string) (string, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(os.Stderr)
	toks := lexer.New(testutil.CharStream(src), sink).Tokenize()
	unit := parser.New(toks, sink).ParseSourceUnit()
	require.False(t, sink.HasFatal())
	types.New(sink).Analyze(unit)
	require.False(t, sink.HasFatal())

	ctx := textual.NewContext()
	_, builder := ctx.NewModule("test")
	e := emit.New(builder, sink)
	e.EmitSourceUnit(unit)
	return builder.Serialize(), sink
}

func TestEmitSimpleFunctionProducesTerminatedBlocks(t *testing.T) {
	ir, sink := compile(t, `
function add(int a, int b) returns (int) {
    return a + b;
}`)
	require.False(t, sink.HasFatal())
	assert.Contains(t, ir, "define i32 @add(")
	assert.Contains(t, ir, "ret i32")
}

func TestEmitDeterministicAcrossRepeatedRuns(t *testing.T) {
	src := `
function fib(int n) returns (int) {
    if (n < 2) {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}`
	out1, sink1 := compile(t, src)
	require.False(t, sink1.HasFatal())
	out2, sink2 := compile(t, src)
	require.False(t, sink2.HasFatal())
	assert.Equal(t, out1, out2, "serialized IR must be byte-identical across repeated runs over the same source")
}

func TestEmitWhileLoopRestatesConditionAtTail(t *testing.T) {
	ir, sink := compile(t, `
function countUp(int n) returns (int) {
    int i = 0;
    while (i < n) {
        i = i + 1;
    }
    return i;
}`)
	require.False(t, sink.HasFatal())
	// the loop condition's icmp is lowered twice: once before the loop,
	// once at the body's tail, per the documented re-emission choice.
	assert.Equal(t, 2, countSubstr(ir, "icmp ult i32"))
}

func TestEmitStructMemberAccessWarnsAndEmitsNoValue(t *testing.T) {
	_, sink := compile(t, `
struct Point { int x; int y; };
function f() {
    Point p;
    int z = p.x;
}`)
	require.NotEmpty(t, sink.Warning)
	assert.Contains(t, sink.Warning[len(sink.Warning)-1].LongMsg, "struct member access")
}

func TestEmitIntegerDivisionIsUnsigned(t *testing.T) {
	ir, sink := compile(t, `
function div(int a, int b) returns (int) {
    return a / b;
}`)
	require.False(t, sink.HasFatal())
	assert.Contains(t, ir, "udiv")
	assert.NotContains(t, ir, "sdiv")
}

func TestEmitEmptyVoidFunctionHasSingleRetVoid(t *testing.T) {
	ir, sink := compile(t, `function f() { }`)
	require.False(t, sink.HasFatal())
	assert.Contains(t, ir, "define void @f()")
	assert.Equal(t, 1, countSubstr(ir, "ret void"))
}

func TestEmitIntegerReturnComputesConstantExpression(t *testing.T) {
	ir, sink := compile(t, `function g() returns (int) { return 1 + 2 * 3; }`)
	require.False(t, sink.HasFatal())
	assert.Contains(t, ir, "define i32 @g()")
	assert.Contains(t, ir, "ret i32")
}

func TestEmitIfElseProducesTwoPredecessorsToMergeBlock(t *testing.T) {
	ir, sink := compile(t, `
function h(int x) returns (int) {
    int y;
    if (x < 0) { y = 0; } else { y = x; }
    return y;
}`)
	require.False(t, sink.HasFatal())
	assert.Equal(t, 1, countSubstr(ir, "br i1"), "one conditional branch out of the entry block")
	// two arms each jump unconditionally into the merge block.
	assert.GreaterOrEqual(t, countSubstr(ir, "br label"), 2)
}

func TestEmitTypeMismatchStillRunsToCompletionWithNoStore(t *testing.T) {
	ir, sink := compile(t, `
function f() {
    bool b;
    b = b + 1;
}`)
	require.False(t, sink.HasFatal(), "a type mismatch is a warning, not a fatal diagnostic")
	require.NotEmpty(t, sink.Warning)
	// the assignment's RHS types as unknown, so emission must skip the
	// store for it rather than writing a malformed one; the only store
	// left is the zero-initialization of `bool b;`.
	assert.Equal(t, 1, countSubstr(ir, "store "))
}

func countSubstr(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}
