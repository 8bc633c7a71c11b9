package types_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solalang/solc/internal/ast"
	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/lexer"
	"github.com/solalang/solc/internal/parser"
	"github.com/solalang/solc/internal/testutil"
	"github.com/solalang/solc/internal/types"
)

func analyze(t *testing.T, src string) (*ast.SourceUnit, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(os.Stderr)
	toks := lexer.New(testutil.CharStream(src), sink).Tokenize()
	unit := parser.New(toks, sink).ParseSourceUnit()
	require.False(t, sink.HasFatal())
	types.New(sink).Analyze(unit)
	return unit, sink
}

func firstFn(t *testing.T, unit *ast.SourceUnit) *ast.FunctionDefinition {
	t.Helper()
	fn, ok := unit.Children[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	return fn
}

func firstExpr(t *testing.T, fn *ast.FunctionDefinition) ast.Expr {
	t.Helper()
	es, ok := fn.Body.Stmts[0].(*ast.ExpressionStatement)
	require.True(t, ok)
	return es.Expr
}

func TestIntegerFloatPromotion(t *testing.T) {
	unit, sink := analyze(t, "function f() { double d; int i; d = i + 1.5; }")
	assert.Empty(t, sink.Warning)
	fn := firstFn(t, unit)
	assign := fn.Body.Stmts[2].(*ast.ExpressionStatement).Expr.(*ast.Assignment)
	bin := assign.Rhs.(*ast.BinaryOp)
	assert.Equal(t, ast.Double, bin.Decoration().NaturalType)
	// the integer variable side (i) must be cast up to double.
	assert.Equal(t, ast.Double, bin.Lhs.Decoration().EffectiveCastType())
}

func TestMutualRecursionResolvesViaPreRegistration(t *testing.T) {
	_, sink := analyze(t, `
function isEven(int n) returns (int) { return isOdd(n); }
function isOdd(int n) returns (int) { return isEven(n); }
`)
	assert.Empty(t, sink.Warning)
}

func TestScopeIsolationBetweenSiblingBlocks(t *testing.T) {
	// x declared in the first { } block must not be visible in the second.
	unit, sink := analyze(t, `
function f() {
    { int x = 1; }
    { x; }
}
`)
	require.NotEmpty(t, sink.Warning)
	fn := firstFn(t, unit)
	inner := fn.Body.Stmts[1].(*ast.Block)
	expr := inner.Stmts[0].(*ast.ExpressionStatement).Expr.(*ast.Identifier)
	assert.Equal(t, ast.Unknown, expr.Decoration().NaturalType)
}

func TestNonBooleanConditionWarns(t *testing.T) {
	_, sink := analyze(t, "function f() { int x = 1; if (x) { } }")
	require.NotEmpty(t, sink.Warning)
	assert.Contains(t, sink.Warning[0].LongMsg, "boolean")
}

func TestStructMemberAccessIsAlwaysUnknown(t *testing.T) {
	unit, sink := analyze(t, `
struct Point { int x; int y; };
function f() { Point p; p.x; }
`)
	assert.Empty(t, sink.Warning)
	fn, ok := unit.Children[1].(*ast.FunctionDefinition) // Children[0] is the struct
	require.True(t, ok)
	expr := fn.Body.Stmts[1].(*ast.ExpressionStatement).Expr.(*ast.MemberAccess)
	assert.Equal(t, ast.Unknown, expr.Decoration().NaturalType)
}

func TestUndeclaredIdentifierWarns(t *testing.T) {
	unit, sink := analyze(t, "function f() { y; }")
	require.NotEmpty(t, sink.Warning)
	fn := firstFn(t, unit)
	expr := firstExpr(t, fn).(*ast.Identifier)
	assert.Equal(t, ast.Unknown, expr.Decoration().NaturalType)
}

func TestRedefinitionInSameScopeIsFatal(t *testing.T) {
	_, sink := analyze(t, "function f() { int x; int x; }")
	require.True(t, sink.HasFatal())
	assert.Contains(t, sink.Fatal[0].LongMsg, "already defined")
}

func TestRedefinitionAcrossNestedScopesIsNotFatal(t *testing.T) {
	_, sink := analyze(t, `
function f() {
    int x;
    { int x; }
}
`)
	assert.False(t, sink.HasFatal(), "an inner scope shadowing an outer one is not a redefinition")
}

func TestDuplicateParameterNameIsFatal(t *testing.T) {
	_, sink := analyze(t, "function f(int x, int x) { }")
	require.True(t, sink.HasFatal())
	assert.Contains(t, sink.Fatal[0].LongMsg, "redefines a parameter")
}

func TestVariadicExternPrintfPreRegistered(t *testing.T) {
	unit, sink := analyze(t, `function f() { printf("hi"); }`)
	assert.Empty(t, sink.Warning)
	fn := firstFn(t, unit)
	call := firstExpr(t, fn).(*ast.FunctionCall)
	assert.Equal(t, ast.Integer, call.Decoration().NaturalType)
}
