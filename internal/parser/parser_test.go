package parser_test

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
)

func parse(t *testing.T, src string) (*ast.SourceUnit, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(os.Stderr)
	toks := lexer.New(testutil.CharStream(src), sink).Tokenize()
	p := parser.New(toks, sink)
	return p.ParseSourceUnit(), sink
}

func singleExprStmt(t *testing.T, fn *ast.FunctionDefinition) ast.Expr {
	t.Helper()
	require.Len(t, fn.Body.Stmts, 1)
	es, ok := fn.Body.Stmts[0].(*ast.ExpressionStatement)
	require.True(t, ok)
	return es.Expr
}

func firstFunction(t *testing.T, unit *ast.SourceUnit) *ast.FunctionDefinition {
	t.Helper()
	require.NotEmpty(t, unit.Children)
	fn, ok := unit.Children[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	return fn
}

func TestParseVariableDefinitionWithInitializer(t *testing.T) {
	unit, sink := parse(t, "int x = 1;")
	require.False(t, sink.HasFatal())
	require.Len(t, unit.Children, 1)
	v, ok := unit.Children[0].(*ast.PlainVariableDefinition)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
	assert.NotNil(t, v.Init)
}

func TestOperatorPrecedenceLowThenHigh(t *testing.T) {
	// a + b * c must parse as a + (b * c): the BinaryOp root is '+'.
	unit, sink := parse(t, "function f() { a + b * c; }")
	require.False(t, sink.HasFatal())
	fn := firstFunction(t, unit)
	expr := singleExprStmt(t, fn)
	bin, ok := expr.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, lexer.PlusToken, bin.Op)
	rhs, ok := bin.Rhs.(*ast.BinaryOp)
	require.True(t, ok, "rhs of + must be the * subtree")
	assert.Equal(t, lexer.StarToken, rhs.Op)
}

func TestOperatorPrecedenceHighThenLow(t *testing.T) {
	// a * b + c must also parse as (a * b) + c: the root is '+'.
	unit, sink := parse(t, "function f() { a * b + c; }")
	require.False(t, sink.HasFatal())
	fn := firstFunction(t, unit)
	expr := singleExprStmt(t, fn)
	bin, ok := expr.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, lexer.PlusToken, bin.Op)
	lhs, ok := bin.Lhs.(*ast.BinaryOp)
	require.True(t, ok, "lhs of + must be the * subtree")
	assert.Equal(t, lexer.StarToken, lhs.Op)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	// a = b = c must parse as a = (b = c).
	unit, sink := parse(t, "function f() { a = b = c; }")
	require.False(t, sink.HasFatal())
	fn := firstFunction(t, unit)
	expr := singleExprStmt(t, fn)
	outer, ok := expr.(*ast.Assignment)
	require.True(t, ok)
	ident, ok := outer.Lhs.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "a", ident.Name)
	inner, ok := outer.Rhs.(*ast.Assignment)
	require.True(t, ok, "rhs of outer assignment must itself be an assignment")
	lIdent := inner.Lhs.(*ast.Identifier)
	assert.Equal(t, "b", lIdent.Name)
}

func TestParseFunctionWithReturnTypeAndControlFlow(t *testing.T) {
	unit, sink := parse(t, `
function max(int a, int b) returns (int) {
    if (a > b) {
        return a;
    } else {
        return b;
    }
}`)
	require.False(t, sink.HasFatal())
	fn := firstFunction(t, unit)
	assert.Equal(t, "max", fn.Name)
	require.Len(t, fn.Params.Params, 2)
	require.NotNil(t, fn.ReturnType)
	require.Len(t, fn.Body.Stmts, 1)
	_, ok := fn.Body.Stmts[0].(*ast.IfStatement)
	assert.True(t, ok)
}

func TestParseErrorReportsFatalAndStops(t *testing.T) {
	unit, sink := parse(t, "function f( { }")
	assert.True(t, sink.HasFatal())
	assert.NotNil(t, unit)
}

func TestParseStructDefinition(t *testing.T) {
	unit, sink := parse(t, "struct Point { int x; int y; };")
	require.False(t, sink.HasFatal())
	require.Len(t, unit.Children, 1)
	sd, ok := unit.Children[0].(*ast.StructDefinition)
	require.True(t, ok)
	assert.Equal(t, "Point", sd.Name)
	require.Len(t, sd.Members, 2)
	assert.Equal(t, "x", sd.Members[0].Name)
}
