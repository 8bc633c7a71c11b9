// Package types implements spec.md §4.4: a post-order AST traversal that
// carries a stack of lexical scope frames, inserts implicit numeric
// promotions via the decoration fields on ast.Expr, and flags invalid
// operator applications without aborting the run (the "one root cause, no
// cascades" failure mode).
package types

import (
	"github.com/solalang/solc/internal/ast"
	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/lexer"
)

// signature is a function's declared shape, used both for FunctionCall's
// return-type inheritance and for SPEC_FULL.md §4.8's argument-type
// checking.
type signature struct {
	paramTypes []ast.Type
	returnType ast.Type
	variadic   bool
}

// structLayout is what StructDefinition registers, per §4.7: name +
// ordered field names + declared field types. Nothing downstream of
// registration actually lowers it.
type structLayout struct {
	name   string
	fields map[string]ast.Type
	order  []string
}

// scope is one lexical frame: name -> type. Blocks, function bodies, and
// loop bodies each push one (spec.md §4.4).
type scope struct {
	vars   map[string]ast.Type
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]ast.Type), parent: parent}
}

func (s *scope) lookup(name string) (ast.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return ast.Unknown, false
}

// declare binds name in s's own frame and returns true, or returns false
// (leaving the existing binding in place) if name was already bound there
// (a sibling scope or an enclosing one binding the same name is not a
// redefinition -- only the current frame is checked).
func (s *scope) declare(name string, t ast.Type) bool {
	if _, redeclared := s.vars[name]; redeclared {
		return false
	}
	s.vars[name] = t
	return true
}

// Analyzer runs the type pass over one SourceUnit.
type Analyzer struct {
	sink      *diag.Sink
	funcs     map[string]signature
	structs   map[string]*structLayout
	cur       *scope
	loopDepth int
}

// New constructs an Analyzer and pre-registers the variadic externs the
// emitter also knows about (spec.md §4.5 "Variadic externs"), so calls to
// them type-check even though no FunctionDefinition for them appears in
// the source.
func New(sink *diag.Sink) *Analyzer {
	a := &Analyzer{
		sink:    sink,
		funcs:   make(map[string]signature),
		structs: make(map[string]*structLayout),
	}
	a.funcs["printf"] = signature{paramTypes: []ast.Type{ast.String}, returnType: ast.Integer, variadic: true}
	a.funcs["scanf"] = signature{variadic: true, returnType: ast.Integer}
	return a
}

// Analyze walks unit in two passes: a shallow pre-pass registers every
// top-level function/struct signature (so forward references and mutual
// recursion resolve), then a full post-order pass decorates every
// expression node in place.
func (a *Analyzer) Analyze(unit *ast.SourceUnit) {
	a.registerTopLevel(unit.Children)
	a.cur = newScope(nil)
	for _, child := range unit.Children {
		a.visitTopLevel(child)
	}
}

func (a *Analyzer) registerTopLevel(children []ast.Node) {
	for _, child := range children {
		switch n := child.(type) {
		case *ast.FunctionDefinition:
			a.registerFunction(n)
		case *ast.StructDefinition:
			a.registerStruct(n)
		case *ast.ContractDefinition:
			a.registerTopLevel(n.Children)
		}
	}
}

func (a *Analyzer) registerFunction(n *ast.FunctionDefinition) {
	sig := signature{returnType: elementaryType(n.ReturnType)}
	if n.Params != nil {
		for _, p := range n.Params.Params {
			sig.paramTypes = append(sig.paramTypes, elementaryType(p.Type))
		}
	}
	a.funcs[n.Name] = sig
}

func (a *Analyzer) registerStruct(n *ast.StructDefinition) {
	layout := &structLayout{name: n.Name, fields: make(map[string]ast.Type)}
	for _, m := range n.Members {
		layout.fields[m.Name] = elementaryType(m.Type)
		layout.order = append(layout.order, m.Name)
	}
	a.structs[n.Name] = layout
}

// elementaryType maps an *ast.ElementaryTypeName (nil meaning void) to the
// analyzer's small closed type lattice. Struct-typed names surface as
// ast.Struct; explicit-width int/uint tokens collapse to Integer, per
// spec.md §4.4's five-member algebra.
func elementaryType(t *ast.ElementaryTypeName) ast.Type {
	if t == nil {
		return ast.Unknown // void: no return-type decoration applies
	}
	switch {
	case t.Token == lexer.BoolToken:
		return ast.Boolean
	case t.Token == lexer.FloatToken:
		return ast.Float
	case t.Token == lexer.DoubleToken:
		return ast.Double
	case t.Token == lexer.StringTypeToken:
		return ast.String
	case t.Token == lexer.IntToken || t.Token == lexer.UintToken || t.Token.IsExplicitWidthInt():
		return ast.Integer
	case t.Token == lexer.Identifier:
		return ast.Struct
	default:
		return ast.Unknown
	}
}

func (a *Analyzer) visitTopLevel(n ast.Node) {
	switch v := n.(type) {
	case *ast.FunctionDefinition:
		a.visitFunction(v)
	case *ast.ContractDefinition:
		for _, child := range v.Children {
			a.visitTopLevel(child)
		}
	case *ast.PlainVariableDefinition:
		a.visitVariableDefinition(v)
	case *ast.ArrayDefinition:
		a.visitExpr(v.SizeExpr)
	case *ast.StructDefinition:
		// registration-only, §4.7; nothing to decorate.
	}
}

func (a *Analyzer) pushScope() { a.cur = newScope(a.cur) }
func (a *Analyzer) popScope()  { a.cur = a.cur.parent }

func (a *Analyzer) visitFunction(fn *ast.FunctionDefinition) {
	if fn.Body == nil {
		return // extern declaration, nothing to analyze
	}
	a.pushScope()
	defer a.popScope()
	if fn.Params != nil {
		for _, p := range fn.Params.Params {
			if !a.cur.declare(p.Name, elementaryType(p.Type)) {
				a.sink.Fatalf(p.Pos(), "redefinition", "parameter %q redefines a parameter already declared in this scope", p.Name)
			}
		}
	}
	a.visitBlock(fn.Body, false)
}

// visitBlock visits stmts in order; pushNewScope controls whether this
// call introduces its own frame (false for a function body's block, which
// shares the parameter frame, per spec.md §4.4 "function parameters are
// bound in the body's frame").
func (a *Analyzer) visitBlock(b *ast.Block, pushNewScope bool) {
	if pushNewScope {
		a.pushScope()
		defer a.popScope()
	}
	for _, stmt := range b.Stmts {
		a.visitStatement(stmt)
	}
}

func (a *Analyzer) visitStatement(n ast.Node) {
	switch v := n.(type) {
	case *ast.Block:
		a.visitBlock(v, true)
	case *ast.PlainVariableDefinition:
		a.visitVariableDefinition(v)
	case *ast.ArrayDefinition:
		a.visitExpr(v.SizeExpr)
	case *ast.StructDefinition:
		a.registerStruct(v)
	case *ast.ReturnStatement:
		if v.Expr != nil {
			a.visitExpr(v.Expr)
		}
	case *ast.IfStatement:
		a.visitExpr(v.Cond)
		a.checkBoolean(v.Cond, "if")
		a.visitStatement(v.Then)
		if v.Else != nil {
			a.visitStatement(v.Else)
		}
	case *ast.WhileStatement:
		a.visitExpr(v.Cond)
		a.checkBoolean(v.Cond, "while")
		a.loopDepth++
		a.visitStatement(v.Body)
		a.loopDepth--
	case *ast.DoWhileStatement:
		a.loopDepth++
		a.visitStatement(v.Body)
		a.loopDepth--
		a.visitExpr(v.Cond)
		a.checkBoolean(v.Cond, "do-while")
	case *ast.ForStatement:
		a.pushScope()
		defer a.popScope()
		if v.Init != nil {
			a.visitStatement(v.Init)
		}
		a.visitExpr(v.Cond)
		a.checkBoolean(v.Cond, "for")
		if v.Update != nil {
			a.visitExpr(v.Update)
		}
		a.loopDepth++
		a.visitStatement(v.Body)
		a.loopDepth--
	case *ast.ExpressionStatement:
		a.visitExpr(v.Expr)
	case *ast.BreakStatement, *ast.ContinueStatement:
		// nothing to decorate; loop-nesting validity is left to the
		// parser/emitter contract, not flagged here.
	}
}

func (a *Analyzer) checkBoolean(cond ast.Expr, construct string) {
	if cond.Decoration().NaturalType != ast.Boolean {
		a.sink.Warnf(cond.Pos(), "non-boolean condition", "%s condition must be boolean, got %s", construct, cond.Decoration().NaturalType)
	}
}

func (a *Analyzer) visitVariableDefinition(v *ast.PlainVariableDefinition) {
	declType := elementaryType(v.Type)
	if !a.cur.declare(v.Name, declType) {
		a.sink.Fatalf(v.Pos(), "redefinition", "%q is already defined in this scope", v.Name)
	}
	if v.Init == nil {
		return
	}
	a.visitExpr(v.Init)
	assignInto(v.Init, declType, a.sink)
}

// visitExpr decorates n's NaturalType/CastType in place (spec.md §3's
// "Every expression node additionally carries two optional decoration
// fields filled by §4.4").
func (a *Analyzer) visitExpr(n ast.Expr) {
	switch v := n.(type) {
	case *ast.Identifier:
		t, ok := a.cur.lookup(v.Name)
		if !ok {
			a.sink.Warnf(v.Pos(), "unbound identifier", "undefined identifier %q", v.Name)
			t = ast.Unknown
		}
		v.Decoration().NaturalType = t
	case *ast.BooleanLiteral:
		v.Decoration().NaturalType = ast.Boolean
	case *ast.NumberLiteral:
		if v.IsDouble {
			v.Decoration().NaturalType = ast.Double
		} else {
			v.Decoration().NaturalType = ast.Integer
		}
	case *ast.StringLiteral:
		v.Decoration().NaturalType = ast.String
	case *ast.UnaryOp:
		a.visitUnaryOp(v)
	case *ast.BinaryOp:
		a.visitBinaryOp(v)
	case *ast.Assignment:
		a.visitAssignment(v)
	case *ast.IndexAccess:
		a.visitExpr(v.Array)
		a.visitExpr(v.Index)
		v.Decoration().NaturalType = ast.Integer // every array in this subset is int-element, per §4.5
	case *ast.MemberAccess:
		a.visitExpr(v.Object)
		// §4.7: member access on a struct never resolves a concrete
		// type here; left as unknown, the emitter is the one that
		// warns "unsupported".
		v.Decoration().NaturalType = ast.Unknown
	case *ast.FunctionCall:
		a.visitFunctionCall(v)
	}
}

func (a *Analyzer) visitUnaryOp(v *ast.UnaryOp) {
	a.visitExpr(v.Operand)
	opType := v.Operand.Decoration().NaturalType
	switch v.Op {
	case lexer.NotToken:
		if opType == ast.String || opType == ast.Unknown {
			a.sink.Warnf(v.Pos(), "illegal operand", "operator ! requires a non-string operand, got %s", opType)
			v.Decoration().NaturalType = ast.Unknown
			return
		}
		if opType != ast.Boolean {
			v.Operand.Decoration().CastType = ast.Boolean
		}
		v.Decoration().NaturalType = ast.Boolean
	case lexer.BitNotToken:
		if opType != ast.Integer {
			a.sink.Warnf(v.Pos(), "illegal operand", "operator ~ requires an integer operand, got %s", opType)
			v.Decoration().NaturalType = ast.Unknown
			return
		}
		v.Decoration().NaturalType = ast.Integer
	case lexer.IncToken, lexer.DecToken, lexer.MinusToken, lexer.PlusToken:
		if !isNumeric(opType) {
			a.sink.Warnf(v.Pos(), "illegal operand", "operator %s requires a numeric operand, got %s", v.Op, opType)
			v.Decoration().NaturalType = ast.Unknown
			return
		}
		v.Decoration().NaturalType = opType
	case lexer.DeleteToken:
		v.Decoration().NaturalType = ast.Unknown
	default:
		v.Decoration().NaturalType = ast.Unknown
	}
}

func isNumeric(t ast.Type) bool {
	return t == ast.Integer || t == ast.Float || t == ast.Double
}

// promote implements the arithmetic promotion lattice (spec.md §4.4):
// integer<float<double. Returns (resultType, ok); ok is false for any
// combination involving boolean, string, struct or unknown.
func promote(l, r ast.Type) (ast.Type, bool) {
	if l == r && isNumeric(l) {
		return l, true
	}
	if !isNumeric(l) || !isNumeric(r) {
		return ast.Unknown, false
	}
	rank := func(t ast.Type) int {
		switch t {
		case ast.Integer:
			return 0
		case ast.Float:
			return 1
		case ast.Double:
			return 2
		}
		return -1
	}
	if rank(l) > rank(r) {
		return l, true
	}
	return r, true
}

func (a *Analyzer) visitBinaryOp(v *ast.BinaryOp) {
	a.visitExpr(v.Lhs)
	a.visitExpr(v.Rhs)
	lt, rt := v.Lhs.Decoration().NaturalType, v.Rhs.Decoration().NaturalType

	switch {
	case v.Op == lexer.AndToken || v.Op == lexer.OrToken:
		if lt == ast.String || lt == ast.Unknown || rt == ast.String || rt == ast.Unknown {
			a.sink.Warnf(v.Pos(), "illegal operand", "operator %s requires non-string operands", v.Op)
			v.Decoration().NaturalType = ast.Unknown
			return
		}
		if lt != ast.Boolean {
			v.Lhs.Decoration().CastType = ast.Boolean
		}
		if rt != ast.Boolean {
			v.Rhs.Decoration().CastType = ast.Boolean
		}
		v.Decoration().NaturalType = ast.Boolean

	case v.Op == lexer.BitOrToken || v.Op == lexer.BitXorToken || v.Op == lexer.BitAndToken ||
		v.Op == lexer.ShlToken || v.Op == lexer.ShrToken || v.Op == lexer.UShrToken || v.Op == lexer.PercentToken:
		if lt != ast.Integer || rt != ast.Integer {
			a.sink.Warnf(v.Pos(), "illegal operand", "operator %s requires integer operands, got %s and %s", v.Op, lt, rt)
			v.Decoration().NaturalType = ast.Unknown
			return
		}
		v.Decoration().NaturalType = ast.Integer

	case v.Op == lexer.PlusToken || v.Op == lexer.MinusToken || v.Op == lexer.StarToken || v.Op == lexer.SlashToken:
		result, ok := promote(lt, rt)
		if !ok {
			a.sink.Warnf(v.Pos(), "illegal operand", "operator %s requires numeric operands, got %s and %s", v.Op, lt, rt)
			v.Decoration().NaturalType = ast.Unknown
			return
		}
		if lt != result {
			v.Lhs.Decoration().CastType = result
		}
		if rt != result {
			v.Rhs.Decoration().CastType = result
		}
		v.Decoration().NaturalType = result

	case v.Op == lexer.EqToken || v.Op == lexer.NeToken || v.Op == lexer.LtToken ||
		v.Op == lexer.GtToken || v.Op == lexer.LeToken || v.Op == lexer.GeToken:
		ok := lt != ast.Unknown && rt != ast.Unknown && (lt == rt || (isNumeric(lt) && isNumeric(rt)))
		if !ok {
			a.sink.Warnf(v.Pos(), "illegal operand", "operator %s requires comparable operands, got %s and %s", v.Op, lt, rt)
			v.Decoration().NaturalType = ast.Unknown
			return
		}
		if isNumeric(lt) && isNumeric(rt) && lt != rt {
			result, _ := promote(lt, rt)
			if lt != result {
				v.Lhs.Decoration().CastType = result
			}
			if rt != result {
				v.Rhs.Decoration().CastType = result
			}
		}
		v.Decoration().NaturalType = ast.Boolean

	default:
		v.Decoration().NaturalType = ast.Unknown
	}
}

// visitAssignment types a (possibly compound) assignment under spec.md
// §4.4's `=` rule. Compound forms (+=, &=, ...) get the same check as `=`:
// only the assignability of rhs into the lhs type is checked; the operand
// rules of the underlying operator OP are not applied.
func (a *Analyzer) visitAssignment(v *ast.Assignment) {
	a.visitExpr(v.Lhs)
	a.visitExpr(v.Rhs)
	lt := v.Lhs.Decoration().NaturalType
	assignInto(v.Rhs, lt, a.sink)
	v.Decoration().NaturalType = lt
}

// assignInto validates rhs's assignability into declType under the
// promotion lattice (spec.md §4.4 `=` rule and the PlainVariableDefinition
// invariant iii), setting rhs's CastType when a promotion is needed.
func assignInto(rhs ast.Expr, declType ast.Type, sink *diag.Sink) {
	rt := rhs.Decoration().NaturalType
	if rt == declType {
		return
	}
	if isNumeric(rt) && isNumeric(declType) {
		rhs.Decoration().CastType = declType
		return
	}
	if rt == ast.Unknown || declType == ast.Unknown {
		return // error already reported at the root cause
	}
	sink.Warnf(rhs.Pos(), "type mismatch", "cannot assign %s to %s", rt, declType)
}

// visitFunctionCall inherits the callee's return type (spec.md §4.4) and
// performs SPEC_FULL.md §4.8's positional argument-type checking.
func (a *Analyzer) visitFunctionCall(v *ast.FunctionCall) {
	for _, arg := range v.Args {
		a.visitExpr(arg)
	}
	name, ok := calleeName(v.Callee)
	if !ok {
		v.Decoration().NaturalType = ast.Unknown
		return
	}
	sig, ok := a.funcs[name]
	if !ok {
		a.sink.Warnf(v.Pos(), "unknown function", "call to undeclared function %q", name)
		v.Decoration().NaturalType = ast.Unknown
		return
	}
	v.Decoration().NaturalType = sig.returnType

	for i, arg := range v.Args {
		if i >= len(sig.paramTypes) {
			if sig.variadic {
				continue // variadic tail, skipped per §4.8
			}
			break // argument-count mismatch is the emitter's concern (§4.5/§7)
		}
		want := sig.paramTypes[i]
		got := arg.Decoration().NaturalType
		if got == want || want == ast.Unknown || got == ast.Unknown {
			continue
		}
		if isNumeric(got) && isNumeric(want) {
			arg.Decoration().CastType = want
			continue
		}
		a.sink.Warnf(arg.Pos(), "argument type mismatch", "argument %d to %q: cannot use %s as %s", i+1, name, got, want)
		arg.Decoration().NaturalType = ast.Unknown
	}
}

func calleeName(callee ast.Expr) (string, bool) {
	if id, ok := callee.(*ast.Identifier); ok {
		return id.Name, true
	}
	return "", false
}
