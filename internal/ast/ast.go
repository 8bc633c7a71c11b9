// Package ast defines the closed AST sum described in spec.md §3: one Go
// struct per variant plus a Kind discriminator and a Node interface, in
// place of the original source language's class hierarchy (spec.md §9
// reshaping notes).
package ast

import (
	"github.com/solalang/solc/internal/lexer"
	"github.com/solalang/solc/internal/source"
)

// NodeKind discriminates every AST variant.
type NodeKind int

const (
	KindSourceUnit NodeKind = iota
	KindContractDefinition
	KindFunctionDefinition
	KindPlainVariableDefinition
	KindArrayDefinition
	KindStructDefinition
	KindParameterList

	KindBlock
	KindReturnStatement
	KindIfStatement
	KindWhileStatement
	KindForStatement
	KindDoWhileStatement
	KindBreakStatement
	KindContinueStatement
	KindExpressionStatement

	KindAssignment
	KindBinaryOp
	KindUnaryOp
	KindIndexAccess
	KindMemberAccess
	KindFunctionCall
	KindIdentifier
	KindBooleanLiteral
	KindNumberLiteral
	KindStringLiteral

	KindElementaryTypeName
)

// Node is implemented by every AST variant.
type Node interface {
	Kind() NodeKind
	Pos() source.Span
}

// Expr is implemented by every expression-producing variant: these are
// the nodes the type analyzer decorates with NaturalType/CastType
// (spec.md §3 "Every expression node additionally carries two optional
// decoration fields").
type Expr interface {
	Node
	Decoration() *TypeDecoration
}

// Type names the small closed type lattice the analyzer works over
// (spec.md §4.4). Unknown is the zero value so an undecorated node reads
// as "not yet analyzed" rather than some arbitrary concrete type.
type Type int

const (
	Unknown Type = iota
	Integer
	Float
	Double
	Boolean
	String
	Struct // a named struct type; see StructDefinition registration, §4.7
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Double:
		return "double"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Struct:
		return "struct"
	default:
		return "unknown"
	}
}

// TypeDecoration holds the two optional fields spec.md §3 attaches to
// every expression node. When CastType is Unknown it means "no cast
// required", i.e. cast_type == natural_type, per spec.md's convention.
type TypeDecoration struct {
	NaturalType Type
	CastType    Type
	StructName  string // set when NaturalType == Struct
}

// EffectiveCastType returns d.CastType, defaulting to d.NaturalType per
// spec.md §3's "when unset, cast_type == natural_type" rule.
func (d *TypeDecoration) EffectiveCastType() Type {
	if d.CastType == Unknown {
		return d.NaturalType
	}
	return d.CastType
}

type base struct {
	span source.Span
}

func (b base) Pos() source.Span { return b.span }

// ---- Declarations ----

// SourceUnit is the parse root: spec.md's grammar top-level
// (FunctionDef | VariableDef ';' | StructDef ';')*, generalized to also
// hold ContractDefinition children for the outer grammar variant.
type SourceUnit struct {
	base
	Children []Node
}

func (*SourceUnit) Kind() NodeKind { return KindSourceUnit }

func NewSourceUnit(span source.Span, children []Node) *SourceUnit {
	return &SourceUnit{base: base{span}, Children: children}
}

// Visibility is the function/member visibility modifier set.
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityPublic
	VisibilityPrivate
	VisibilityInternal
	VisibilityExternal
)

// ContractDefinition groups declarations under a named contract (outer
// grammar variant, spec.md §3).
type ContractDefinition struct {
	base
	Name     string
	Children []Node
}

func (*ContractDefinition) Kind() NodeKind { return KindContractDefinition }

func NewContractDefinition(span source.Span, name string, children []Node) *ContractDefinition {
	return &ContractDefinition{base: base{span}, Name: name, Children: children}
}

// FunctionDefinition is a named function: parameters, optional visibility,
// optional return type, and a body (absent for externs).
type FunctionDefinition struct {
	base
	Name       string
	Params     *ParameterList
	Visibility Visibility
	ReturnType *ElementaryTypeName // nil means void
	Body       *Block              // nil for a declaration with no body
	Variadic   bool                // true for registered variadic externs, §4.5
}

func (*FunctionDefinition) Kind() NodeKind { return KindFunctionDefinition }

func NewFunctionDefinition(span source.Span, name string, params *ParameterList, vis Visibility, retType *ElementaryTypeName, body *Block) *FunctionDefinition {
	return &FunctionDefinition{base: base{span}, Name: name, Params: params, Visibility: vis, ReturnType: retType, Body: body}
}

// PlainVariableDefinition declares one scalar-or-struct-typed binding,
// with an optional initializer expression.
type PlainVariableDefinition struct {
	base
	Name string
	Type *ElementaryTypeName
	Init Expr // nil if absent
}

func (*PlainVariableDefinition) Kind() NodeKind { return KindPlainVariableDefinition }

func NewPlainVariableDefinition(span source.Span, name string, typ *ElementaryTypeName, init Expr) *PlainVariableDefinition {
	return &PlainVariableDefinition{base: base{span}, Name: name, Type: typ, Init: init}
}

// ArrayDefinition declares a fixed-size array binding; SizeExpr is
// evaluated at emission time to compute the allocation size (spec.md
// §4.5 "Array definition").
type ArrayDefinition struct {
	base
	Name        string
	ElementType *ElementaryTypeName
	SizeExpr    Expr
}

func (*ArrayDefinition) Kind() NodeKind { return KindArrayDefinition }

func NewArrayDefinition(span source.Span, name string, elemType *ElementaryTypeName, sizeExpr Expr) *ArrayDefinition {
	return &ArrayDefinition{base: base{span}, Name: name, ElementType: elemType, SizeExpr: sizeExpr}
}

// StructMember is one field of a StructDefinition.
type StructMember struct {
	Name string
	Type *ElementaryTypeName
}

// StructDefinition declares a named aggregate type. Per §4.7, emission is
// registration-only: no struct storage is allocated by this front end.
type StructDefinition struct {
	base
	Name    string
	Members []StructMember
}

func (*StructDefinition) Kind() NodeKind { return KindStructDefinition }

func NewStructDefinition(span source.Span, name string, members []StructMember) *StructDefinition {
	return &StructDefinition{base: base{span}, Name: name, Members: members}
}

// ParameterList is a function's formal parameter list.
type ParameterList struct {
	base
	Params []*PlainVariableDefinition
}

func (*ParameterList) Kind() NodeKind { return KindParameterList }

func NewParameterList(span source.Span, params []*PlainVariableDefinition) *ParameterList {
	return &ParameterList{base: base{span}, Params: params}
}

// ---- Statements ----

type Block struct {
	base
	Stmts []Node
}

func (*Block) Kind() NodeKind { return KindBlock }

func NewBlock(span source.Span, stmts []Node) *Block {
	return &Block{base: base{span}, Stmts: stmts}
}

type ReturnStatement struct {
	base
	Expr Expr // nil for a bare `return;`
}

func (*ReturnStatement) Kind() NodeKind { return KindReturnStatement }

func NewReturnStatement(span source.Span, expr Expr) *ReturnStatement {
	return &ReturnStatement{base: base{span}, Expr: expr}
}

type IfStatement struct {
	base
	Cond Expr
	Then Node
	Else Node // nil if absent
}

func (*IfStatement) Kind() NodeKind { return KindIfStatement }

func NewIfStatement(span source.Span, cond Expr, then, els Node) *IfStatement {
	return &IfStatement{base: base{span}, Cond: cond, Then: then, Else: els}
}

type WhileStatement struct {
	base
	Cond Expr
	Body Node
}

func (*WhileStatement) Kind() NodeKind { return KindWhileStatement }

func NewWhileStatement(span source.Span, cond Expr, body Node) *WhileStatement {
	return &WhileStatement{base: base{span}, Cond: cond, Body: body}
}

type ForStatement struct {
	base
	Init   Node // PlainVariableDefinition or ExpressionStatement-like Expr, or nil
	Cond   Expr
	Update Expr // nil if absent
	Body   Node
}

func (*ForStatement) Kind() NodeKind { return KindForStatement }

func NewForStatement(span source.Span, init Node, cond Expr, update Expr, body Node) *ForStatement {
	return &ForStatement{base: base{span}, Init: init, Cond: cond, Update: update, Body: body}
}

type DoWhileStatement struct {
	base
	Cond Expr
	Body Node
}

func (*DoWhileStatement) Kind() NodeKind { return KindDoWhileStatement }

func NewDoWhileStatement(span source.Span, cond Expr, body Node) *DoWhileStatement {
	return &DoWhileStatement{base: base{span}, Cond: cond, Body: body}
}

type BreakStatement struct{ base }

func (*BreakStatement) Kind() NodeKind { return KindBreakStatement }

func NewBreakStatement(span source.Span) *BreakStatement { return &BreakStatement{base{span}} }

type ContinueStatement struct{ base }

func (*ContinueStatement) Kind() NodeKind { return KindContinueStatement }

func NewContinueStatement(span source.Span) *ContinueStatement {
	return &ContinueStatement{base{span}}
}

type ExpressionStatement struct {
	base
	Expr Expr
}

func (*ExpressionStatement) Kind() NodeKind { return KindExpressionStatement }

func NewExpressionStatement(span source.Span, expr Expr) *ExpressionStatement {
	return &ExpressionStatement{base: base{span}, Expr: expr}
}

// ---- Expressions ----

type exprBase struct {
	base
	deco TypeDecoration
}

func (e *exprBase) Decoration() *TypeDecoration { return &e.deco }

type Assignment struct {
	exprBase
	Lhs Expr
	Op  lexer.TokenType // one of the contiguous assignment tokens
	Rhs Expr
}

func (*Assignment) Kind() NodeKind { return KindAssignment }

func NewAssignment(span source.Span, lhs Expr, op lexer.TokenType, rhs Expr) *Assignment {
	return &Assignment{exprBase: exprBase{base: base{span}}, Lhs: lhs, Op: op, Rhs: rhs}
}

type BinaryOp struct {
	exprBase
	Lhs Expr
	Op  lexer.TokenType
	Rhs Expr
}

func (*BinaryOp) Kind() NodeKind { return KindBinaryOp }

func NewBinaryOp(span source.Span, lhs Expr, op lexer.TokenType, rhs Expr) *BinaryOp {
	return &BinaryOp{exprBase: exprBase{base: base{span}}, Lhs: lhs, Op: op, Rhs: rhs}
}

type UnaryOp struct {
	exprBase
	Op       lexer.TokenType
	Operand  Expr
	IsPrefix bool
}

func (*UnaryOp) Kind() NodeKind { return KindUnaryOp }

func NewUnaryOp(span source.Span, op lexer.TokenType, operand Expr, isPrefix bool) *UnaryOp {
	return &UnaryOp{exprBase: exprBase{base: base{span}}, Op: op, Operand: operand, IsPrefix: isPrefix}
}

type IndexAccess struct {
	exprBase
	Array Expr
	Index Expr
}

func (*IndexAccess) Kind() NodeKind { return KindIndexAccess }

func NewIndexAccess(span source.Span, array, index Expr) *IndexAccess {
	return &IndexAccess{exprBase: exprBase{base: base{span}}, Array: array, Index: index}
}

type MemberAccess struct {
	exprBase
	Object Expr
	Member string
}

func (*MemberAccess) Kind() NodeKind { return KindMemberAccess }

func NewMemberAccess(span source.Span, object Expr, member string) *MemberAccess {
	return &MemberAccess{exprBase: exprBase{base: base{span}}, Object: object, Member: member}
}

type FunctionCall struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (*FunctionCall) Kind() NodeKind { return KindFunctionCall }

func NewFunctionCall(span source.Span, callee Expr, args []Expr) *FunctionCall {
	return &FunctionCall{exprBase: exprBase{base: base{span}}, Callee: callee, Args: args}
}

type Identifier struct {
	exprBase
	Name string
}

func (*Identifier) Kind() NodeKind { return KindIdentifier }

func NewIdentifier(span source.Span, name string) *Identifier {
	return &Identifier{exprBase: exprBase{base: base{span}}, Name: name}
}

type BooleanLiteral struct {
	exprBase
	Value bool
}

func (*BooleanLiteral) Kind() NodeKind { return KindBooleanLiteral }

func NewBooleanLiteral(span source.Span, value bool) *BooleanLiteral {
	return &BooleanLiteral{exprBase: exprBase{base: base{span}}, Value: value}
}

// NumberLiteral carries the raw lexeme; whether it denotes an integer or
// a double is determined by the lexer's token kind (spec.md §4.2) and
// recorded here so the emitter need not re-scan the text.
type NumberLiteral struct {
	exprBase
	Lexeme   string
	IsDouble bool
}

func (*NumberLiteral) Kind() NodeKind { return KindNumberLiteral }

func NewNumberLiteral(span source.Span, lexeme string, isDouble bool) *NumberLiteral {
	return &NumberLiteral{exprBase: exprBase{base: base{span}}, Lexeme: lexeme, IsDouble: isDouble}
}

type StringLiteral struct {
	exprBase
	Value string
}

func (*StringLiteral) Kind() NodeKind { return KindStringLiteral }

func NewStringLiteral(span source.Span, value string) *StringLiteral {
	return &StringLiteral{exprBase: exprBase{base: base{span}}, Value: value}
}

// ---- Types ----

// ElementaryTypeName wraps one of the lexer's type-keyword tokens
// (spec.md §3 Types).
type ElementaryTypeName struct {
	base
	Token lexer.TokenType
}

func (*ElementaryTypeName) Kind() NodeKind { return KindElementaryTypeName }

func NewElementaryTypeName(span source.Span, tok lexer.TokenType) *ElementaryTypeName {
	return &ElementaryTypeName{base: base{span}, Token: tok}
}
