// Package parser implements spec.md §4.3: a recursive-descent parser with
// one token of lookahead, plus precedence climbing for the binary and
// assignment expression tiers.
//
// Per the "reshaping" note in spec.md §9, the source's exception-based
// parse error propagation becomes a Result/early-return discipline here:
// every parse* method returns (node, error) and the first error aborts
// that production by returning up the call stack; SourceUnit catches,
// renders, and stops (spec.md §4.3 "Error recovery").
package parser

import (
	"fmt"

	"github.com/solalang/solc/internal/ast"
	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/lexer"
	"github.com/solalang/solc/internal/source"
)

// ParseError is the typed error spec.md §4.3 requires: it carries the
// offending TokenInfo plus either a single expected token or an expected
// set, expressed as a human-readable description.
type ParseError struct {
	Tok      lexer.TokenInfo
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unexpected %s %q, expected %s", e.Tok.Span, e.Tok.Type, e.Tok.Lexeme, e.Expected)
}

// Parser holds the immutable token stream and a cursor over it, per
// spec.md §4.3.
type Parser struct {
	toks []lexer.TokenInfo
	pos  int
	sink *diag.Sink
}

func New(toks []lexer.TokenInfo, sink *diag.Sink) *Parser {
	return &Parser{toks: toks, sink: sink}
}

func (p *Parser) current() lexer.TokenInfo { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) lexer.TokenInfo {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOS
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.TokenInfo {
	t := p.current()
	if t.Type != lexer.EOS {
		p.pos++
	}
	return t
}

// peek reports whether the current token's type equals tt, without
// consuming (spec.md §4.3 peek(predicate) -> bool).
func (p *Parser) peek(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes and returns true if the current token's type equals tt.
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.peek(tt) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if its type equals tt, or raises a
// typed ParseError.
func (p *Parser) expect(tt lexer.TokenType) (lexer.TokenInfo, error) {
	if p.peek(tt) {
		return p.advance(), nil
	}
	return lexer.TokenInfo{}, &ParseError{Tok: p.current(), Expected: tt.String()}
}

// ParseSourceUnit parses the whole token stream into a SourceUnit,
// catching the first production error, rendering it, and stopping
// (spec.md §4.3 "Error recovery": "the outer source-unit loop catches and
// prints, then terminates").
func (p *Parser) ParseSourceUnit() *ast.SourceUnit {
	start := p.current().Span
	var children []ast.Node
	for !p.peek(lexer.EOS) {
		child, err := p.parseTopLevel()
		if err != nil {
			p.reportParseError(err)
			break
		}
		children = append(children, child)
	}
	end := start
	if len(p.toks) > 0 {
		end = p.toks[len(p.toks)-1].Span
	}
	return ast.NewSourceUnit(source.Span{Line: start.Line, StartColumn: start.StartColumn, EndColumn: end.EndColumn}, children)
}

func (p *Parser) reportParseError(err error) {
	var pe *ParseError
	if e, ok := err.(*ParseError); ok {
		pe = e
	}
	if pe == nil {
		p.sink.Fatalf(source.Span{}, "parse error", "%s", err.Error())
		return
	}
	p.sink.Fatalf(pe.Tok.Span, "unexpected token", "%s", pe.Error())
}

// parseTopLevel implements SourceUnit ::= (FunctionDef | VariableDef ';' |
// StructDef ';')*, generalized to also accept a ContractDefinition.
func (p *Parser) parseTopLevel() (ast.Node, error) {
	switch {
	case p.peek(lexer.ContractToken):
		return p.parseContractDefinition()
	case p.peek(lexer.FunctionToken):
		return p.parseFunctionDefinition()
	case p.peek(lexer.StructToken):
		n, err := p.parseStructDefinition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SemicolonToken); err != nil {
			return nil, err
		}
		return n, nil
	default:
		n, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SemicolonToken); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func (p *Parser) parseContractDefinition() (ast.Node, error) {
	start := p.advance().Span // 'contract'
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, &ParseError{Tok: p.current(), Expected: "contract name"}
	}
	if _, err := p.expect(lexer.LBraceToken); err != nil {
		return nil, err
	}
	var children []ast.Node
	for !p.peek(lexer.RBraceToken) && !p.peek(lexer.EOS) {
		child, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	end, err := p.expect(lexer.RBraceToken)
	if err != nil {
		return nil, err
	}
	return ast.NewContractDefinition(p.spanFrom(start, end), nameTok.Lexeme, children), nil
}

func (p *Parser) spanFrom(start, end lexer.TokenInfo) source.Span {
	return source.Span{Line: start.Span.Line, StartColumn: start.Span.StartColumn, EndColumn: end.Span.EndColumn}
}

// parseVisibility consumes an optional visibility keyword.
func (p *Parser) parseVisibility() ast.Visibility {
	switch {
	case p.match(lexer.PublicToken):
		return ast.VisibilityPublic
	case p.match(lexer.PrivateToken):
		return ast.VisibilityPrivate
	case p.match(lexer.InternalToken):
		return ast.VisibilityInternal
	case p.match(lexer.ExternalToken):
		return ast.VisibilityExternal
	default:
		return ast.VisibilityDefault
	}
}

// parseFunctionDefinition implements:
//
//	FunctionDef ::= 'function' Ident ParamList Visibility?
//	                ('returns' '(' Type ')')? Block
func (p *Parser) parseFunctionDefinition() (ast.Node, error) {
	start := p.advance() // 'function'
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	vis := p.parseVisibility()

	// mutability modifiers (view/pure/payable) are recognized and
	// discarded; they do not affect front-end semantics in this subset.
	for p.match(lexer.ViewToken) || p.match(lexer.PureToken) || p.match(lexer.PayableToken) {
	}

	var retType *ast.ElementaryTypeName
	if p.match(lexer.ReturnsToken) {
		if _, err := p.expect(lexer.LParenToken); err != nil {
			return nil, err
		}
		retType, err = p.parseElementaryTypeName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParenToken); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunctionDefinition(p.spanFrom(start, lexer.TokenInfo{Span: body.Pos()}), nameTok.Lexeme, params, vis, retType, body)
	return fn, nil
}

// parseParameterList implements ParamList ::= '(' (VariableDef (','
// VariableDef)*)? ')'.
func (p *Parser) parseParameterList() (*ast.ParameterList, error) {
	start, err := p.expect(lexer.LParenToken)
	if err != nil {
		return nil, err
	}
	var params []*ast.PlainVariableDefinition
	if !p.peek(lexer.RParenToken) {
		for {
			v, err := p.parseVariableDefinition()
			if err != nil {
				return nil, err
			}
			pv, ok := v.(*ast.PlainVariableDefinition)
			if !ok {
				return nil, &ParseError{Tok: p.current(), Expected: "plain parameter declaration"}
			}
			params = append(params, pv)
			if !p.match(lexer.CommaPunctToken) {
				break
			}
		}
	}
	end, err := p.expect(lexer.RParenToken)
	if err != nil {
		return nil, err
	}
	return ast.NewParameterList(p.spanFrom(start, end), params), nil
}

// parseVariableDefinition implements:
//
//	VariableDef ::= Type Ident ( '=' Expr | '[' NumberLiteral ']' ( '=' …
//	                )? )?
func (p *Parser) parseVariableDefinition() (ast.Node, error) {
	typ, err := p.parseElementaryTypeName()
	if err != nil {
		return nil, err
	}
	// storage/memory/calldata location specifiers, recognized and
	// discarded (parameter/local data-location qualifiers do not affect
	// front-end semantics in this subset).
	for p.match(lexer.MemoryToken) || p.match(lexer.StorageOrCalldataToken) {
	}
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}

	if p.match(lexer.LBracketToken) {
		sizeTok, err := p.expect(lexer.IntNumber)
		if err != nil {
			return nil, err
		}
		rb, err := p.expect(lexer.RBracketToken)
		if err != nil {
			return nil, err
		}
		sizeExpr := ast.NewNumberLiteral(sizeTok.Span, sizeTok.Lexeme, false)
		return ast.NewArrayDefinition(p.spanFrom(lexer.TokenInfo{Span: typ.Pos()}, rb), nameTok.Lexeme, typ, sizeExpr), nil
	}

	var init ast.Expr
	if p.match(lexer.AssignToken) {
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	end := nameTok
	if init != nil {
		end = lexer.TokenInfo{Span: init.Pos()}
	}
	return ast.NewPlainVariableDefinition(p.spanFrom(lexer.TokenInfo{Span: typ.Pos()}, end), nameTok.Lexeme, typ, init), nil
}

// parseStructDefinition implements:
//
//	StructDef ::= 'struct' Ident '{' (VariableDef ';')* '}'
func (p *Parser) parseStructDefinition() (ast.Node, error) {
	start := p.advance() // 'struct'
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBraceToken); err != nil {
		return nil, err
	}
	var members []ast.StructMember
	for !p.peek(lexer.RBraceToken) {
		v, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		pv, ok := v.(*ast.PlainVariableDefinition)
		if !ok {
			return nil, &ParseError{Tok: p.current(), Expected: "struct member declaration"}
		}
		if _, err := p.expect(lexer.SemicolonToken); err != nil {
			return nil, err
		}
		members = append(members, ast.StructMember{Name: pv.Name, Type: pv.Type})
	}
	end, err := p.expect(lexer.RBraceToken)
	if err != nil {
		return nil, err
	}
	return ast.NewStructDefinition(p.spanFrom(start, end), nameTok.Lexeme, members), nil
}

func (p *Parser) parseElementaryTypeName() (*ast.ElementaryTypeName, error) {
	tok := p.current()
	if !tok.Type.IsTypeKeyword() && tok.Type != lexer.Identifier {
		return nil, &ParseError{Tok: tok, Expected: "type name"}
	}
	p.advance()
	return ast.NewElementaryTypeName(tok.Span, tok.Type), nil
}

// parseBlock implements Block ::= '{' Statement* '}'.
func (p *Parser) parseBlock() (*ast.Block, error) {
	start, err := p.expect(lexer.LBraceToken)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Node
	for !p.peek(lexer.RBraceToken) && !p.peek(lexer.EOS) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	end, err := p.expect(lexer.RBraceToken)
	if err != nil {
		return nil, err
	}
	return ast.NewBlock(p.spanFrom(start, end), stmts), nil
}

// parseStatement implements the Statement production.
func (p *Parser) parseStatement() (ast.Node, error) {
	switch {
	case p.peek(lexer.ReturnToken):
		return p.parseReturnStatement()
	case p.peek(lexer.IfToken):
		return p.parseIfStatement()
	case p.peek(lexer.WhileToken):
		return p.parseWhileStatement()
	case p.peek(lexer.ForToken):
		return p.parseForStatement()
	case p.peek(lexer.DoToken):
		return p.parseDoWhileStatement()
	case p.peek(lexer.ContinueToken):
		start := p.advance()
		end, err := p.expect(lexer.SemicolonToken)
		if err != nil {
			return nil, err
		}
		return ast.NewContinueStatement(p.spanFrom(start, end)), nil
	case p.peek(lexer.BreakToken):
		start := p.advance()
		end, err := p.expect(lexer.SemicolonToken)
		if err != nil {
			return nil, err
		}
		return ast.NewBreakStatement(p.spanFrom(start, end)), nil
	case p.peek(lexer.SemicolonToken):
		tok := p.advance()
		return ast.NewBlock(tok.Span, nil), nil // empty statement, represented as an empty block
	case p.peek(lexer.LBraceToken):
		return p.parseBlock()
	case p.peek(lexer.StructToken):
		n, err := p.parseStructDefinition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SemicolonToken); err != nil {
			return nil, err
		}
		return n, nil
	case p.startsVariableDefinition():
		n, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SemicolonToken); err != nil {
			return nil, err
		}
		return n, nil
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SemicolonToken); err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr.Pos(), expr), nil
	}
}

// startsVariableDefinition reports whether the current token can begin a
// VariableDef: a type keyword, or an identifier immediately followed by
// another identifier (a user-defined struct type name used as a type).
func (p *Parser) startsVariableDefinition() bool {
	cur := p.current()
	if cur.Type.IsTypeKeyword() {
		return true
	}
	if cur.Type == lexer.Identifier && p.peekAt(1).Type == lexer.Identifier {
		return true
	}
	return false
}

func (p *Parser) parseReturnStatement() (ast.Node, error) {
	start := p.advance() // 'return'
	var expr ast.Expr
	if !p.peek(lexer.SemicolonToken) {
		var err error
		expr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	end, err := p.expect(lexer.SemicolonToken)
	if err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(p.spanFrom(start, end), expr), nil
}

// parseIfStatement implements:
//
//	IfStmt ::= 'if' '(' Expr ')' Statement ('else' Statement)?
func (p *Parser) parseIfStatement() (ast.Node, error) {
	start := p.advance() // 'if'
	if _, err := p.expect(lexer.LParenToken); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParenToken); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var els ast.Node
	end := lexer.TokenInfo{Span: then.Pos()}
	if p.match(lexer.ElseToken) {
		els, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
		end = lexer.TokenInfo{Span: els.Pos()}
	}
	return ast.NewIfStatement(p.spanFrom(start, end), cond, then, els), nil
}

func (p *Parser) parseWhileStatement() (ast.Node, error) {
	start := p.advance() // 'while'
	if _, err := p.expect(lexer.LParenToken); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParenToken); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(p.spanFrom(start, lexer.TokenInfo{Span: body.Pos()}), cond, body), nil
}

// parseForStatement implements:
//
//	ForStmt ::= 'for' '(' (VariableDef | Expr)? ';' Expr ';' Expr? ')'
//	            Statement
func (p *Parser) parseForStatement() (ast.Node, error) {
	start := p.advance() // 'for'
	if _, err := p.expect(lexer.LParenToken); err != nil {
		return nil, err
	}
	var init ast.Node
	if !p.peek(lexer.SemicolonToken) {
		var err error
		if p.startsVariableDefinition() {
			init, err = p.parseVariableDefinition()
		} else {
			init, err = p.parseExpr()
		}
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SemicolonToken); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SemicolonToken); err != nil {
		return nil, err
	}
	var update ast.Expr
	if !p.peek(lexer.RParenToken) {
		update, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RParenToken); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewForStatement(p.spanFrom(start, lexer.TokenInfo{Span: body.Pos()}), init, cond, update, body), nil
}

// parseDoWhileStatement implements DoWhileStmt ';' where DoWhileStmt ::=
// 'do' Statement 'while' '(' Expr ')'.
func (p *Parser) parseDoWhileStatement() (ast.Node, error) {
	start := p.advance() // 'do'
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.WhileToken); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParenToken); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParenToken); err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.SemicolonToken)
	if err != nil {
		return nil, err
	}
	return ast.NewDoWhileStatement(p.spanFrom(start, end), cond, body), nil
}

// parseExpr implements Expr ::= BinaryExpr (AssignOp Expr)?, right
// associative: assignment is handled after a full binary expression is
// parsed (spec.md §4.3).
func (p *Parser) parseExpr() (ast.Expr, error) {
	lhs, err := p.parseBinaryExpr(minBinaryPrecedence)
	if err != nil {
		return nil, err
	}
	if p.current().Type.IsAssignOp() {
		op := p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(p.spanFrom(lexer.TokenInfo{Span: lhs.Pos()}, lexer.TokenInfo{Span: rhs.Pos()}), lhs, op.Type, rhs), nil
	}
	return lhs, nil
}

// minBinaryPrecedence is precedence climbing's floor: the lowest defined
// binary precedence (the comma operator, spec.md §3/§4.3).
const minBinaryPrecedence = 1

// parseBinaryExpr implements BinaryExpr(p) ::= UnaryExpr (op_with_prec>=p
// BinaryExpr(prec(op)+1))*.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, error) {
	lhs, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if !tok.Type.IsBinaryOp() {
			return lhs, nil
		}
		prec := tok.Type.Precedence()
		if prec < minPrec {
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinaryOp(p.spanFrom(lexer.TokenInfo{Span: lhs.Pos()}, lexer.TokenInfo{Span: rhs.Pos()}), lhs, tok.Type, rhs)
	}
}

// parseUnaryExpr implements UnaryExpr ::= UnaryOp UnaryExpr | PostfixExpr.
func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	tok := p.current()
	if tok.Type.IsUnaryOp() || tok.Type == lexer.PlusToken || tok.Type == lexer.MinusToken {
		p.advance()
		operand, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(p.spanFrom(tok, lexer.TokenInfo{Span: operand.Pos()}), tok.Type, operand, true), nil
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr implements:
//
//	PostfixExpr ::= Primary ( '[' Expr ']' | '.' Ident | '(' ArgList? ')'
//	                | '++' | '--' )*
func (p *Parser) parsePostfixExpr() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(lexer.LBracketToken):
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(lexer.RBracketToken)
			if err != nil {
				return nil, err
			}
			expr = ast.NewIndexAccess(p.spanFrom(lexer.TokenInfo{Span: expr.Pos()}, end), expr, idx)
		case p.match(lexer.DotToken):
			memberTok, err := p.expect(lexer.Identifier)
			if err != nil {
				return nil, err
			}
			expr = ast.NewMemberAccess(p.spanFrom(lexer.TokenInfo{Span: expr.Pos()}, memberTok), expr, memberTok.Lexeme)
		case p.match(lexer.LParenToken):
			var args []ast.Expr
			if !p.peek(lexer.RParenToken) {
				for {
					arg, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if !p.match(lexer.CommaPunctToken) {
						break
					}
				}
			}
			end, err := p.expect(lexer.RParenToken)
			if err != nil {
				return nil, err
			}
			expr = ast.NewFunctionCall(p.spanFrom(lexer.TokenInfo{Span: expr.Pos()}, end), expr, args)
		case p.peek(lexer.IncToken) || p.peek(lexer.DecToken):
			op := p.advance()
			expr = ast.NewUnaryOp(p.spanFrom(lexer.TokenInfo{Span: expr.Pos()}, op), op.Type, expr, false)
		default:
			return expr, nil
		}
	}
}

// parsePrimary implements Primary ::= Literal | Ident | '(' Expr ')'.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.TrueToken:
		p.advance()
		return ast.NewBooleanLiteral(tok.Span, true), nil
	case lexer.FalseToken:
		p.advance()
		return ast.NewBooleanLiteral(tok.Span, false), nil
	case lexer.IntNumber:
		p.advance()
		return ast.NewNumberLiteral(tok.Span, tok.Lexeme, false), nil
	case lexer.DoubleNumber:
		p.advance()
		return ast.NewNumberLiteral(tok.Span, tok.Lexeme, true), nil
	case lexer.StringLit:
		p.advance()
		return ast.NewStringLiteral(tok.Span, tok.Lexeme), nil
	case lexer.Identifier:
		p.advance()
		return ast.NewIdentifier(tok.Span, tok.Lexeme), nil
	case lexer.LParenToken:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParenToken); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, &ParseError{Tok: tok, Expected: "expression"}
	}
}
