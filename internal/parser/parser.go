// Package parser implements a recursive-descent parser that turns a token
// stream from internal/lexer into the internal/ast tree consumed by
// internal/interp.
//
// Grounded on go-dws/internal/parser's Pratt-style precedence-climbing
// expression parser, generalized from DWScript's large grammar down to
// Brew's small operator set. Brew's concrete grammar is this repository's
// own design — spec.md treats the parser as an external collaborator and
// declines to specify it.
package parser

import (
	"fmt"

	"github.com/brewlang/brew/internal/ast"
	"github.com/brewlang/brew/internal/lexer"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	lowest
	logicalOr  // ||
	logicalAnd // &&
	equality   // == !=
	relational // < <= > >=
	additive   // + -
	multiplic  // * /
	unary      // -x !x
	call       // f(...) obj.field obj.method(...)
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:    logicalOr,
	lexer.AND:   logicalAnd,
	lexer.EQ:    equality,
	lexer.NOTEQ: equality,
	lexer.LT:    relational,
	lexer.LTEQ:  relational,
	lexer.GT:    relational,
	lexer.GTEQ:  relational,
	lexer.PLUS:  additive,
	lexer.MINUS: additive,
	lexer.STAR:  multiplic,
	lexer.SLASH: multiplic,
}

// Parser holds parse state for one token stream.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	errors []string
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns accumulated syntax errors, if any.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.cur.Pos.Line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.cur.Type != t {
		p.errorf("expected token %v, got %q", t, p.cur.Literal)
		return false
	}
	p.next()
	return true
}

// ParseProgram parses a full Brew program: a sequence of function
// declarations.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != lexer.EOF {
		if p.cur.Type != lexer.FUNC {
			p.errorf("expected 'func', got %q", p.cur.Literal)
			p.next()
			continue
		}
		if fn := p.parseFunctionDecl(); fn != nil {
			prog.Functions = append(prog.Functions, fn)
		}
	}
	return prog
}

func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	p.next() // consume 'func'
	if p.cur.Type != lexer.IDENT {
		p.errorf("expected function name, got %q", p.cur.Literal)
		return nil
	}
	name := p.cur.Literal
	p.next()

	params := p.parseParamList()
	body := p.parseBlock()

	return &ast.FunctionDecl{Name: name, Params: params, Body: body}
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	p.expect(lexer.LPAREN)
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		byRef := false
		if p.cur.Type == lexer.REF {
			byRef = true
			p.next()
		}
		if p.cur.Type != lexer.IDENT {
			p.errorf("expected parameter name, got %q", p.cur.Literal)
			break
		}
		params = append(params, ast.Param{Name: p.cur.Literal, ByRef: byRef})
		p.next()
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseBlock() []ast.Statement {
	var stmts []ast.Statement
	p.expect(lexer.LBRACE)
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(lexer.RBRACE)
	return stmts
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IDENT:
		return p.parseIdentStatement()
	default:
		p.errorf("unexpected token %q in statement", p.cur.Literal)
		p.next()
		return nil
	}
}

func (p *Parser) parseIf() ast.Statement {
	p.next() // 'if'
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(lowest)
	p.expect(lexer.RPAREN)
	thenBody := p.parseBlock()

	var elseBody []ast.Statement
	if p.cur.Type == lexer.ELSE {
		p.next()
		elseBody = p.parseBlock()
	}

	return &ast.IfStatement{Condition: cond, Then: thenBody, Else: elseBody}
}

func (p *Parser) parseWhile() ast.Statement {
	p.next() // 'while'
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(lowest)
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStatement{Condition: cond, Body: body}
}

func (p *Parser) parseReturn() ast.Statement {
	p.next() // 'return'
	if p.cur.Type == lexer.SEMI {
		p.next()
		return &ast.ReturnStatement{}
	}
	val := p.parseExpression(lowest)
	p.expect(lexer.SEMI)
	return &ast.ReturnStatement{Value: val}
}

// parseIdentStatement disambiguates, on a leading identifier, between an
// assignment ("x = ...", "x.y = ...") and a bare call statement
// ("f(...)", "x.m(...)").
func (p *Parser) parseIdentStatement() ast.Statement {
	name := p.parseDottedName()

	switch p.cur.Type {
	case lexer.ASSIGN:
		p.next()
		val := p.parseExpression(lowest)
		p.expect(lexer.SEMI)
		return &ast.AssignStatement{Target: name, Value: val}
	case lexer.LPAREN:
		callExpr := p.parseCallTail(name)
		p.expect(lexer.SEMI)
		return &ast.CallStatement{Call: callExpr}
	default:
		p.errorf("expected '=' or '(' after %q, got %q", name, p.cur.Literal)
		p.next()
		return nil
	}
}

// parseDottedName parses "ident(.ident)*" as used for assignment targets and
// plain variable references, but stops before a "(" so the caller can decide
// between a function call and a method call.
func (p *Parser) parseDottedName() string {
	name := p.cur.Literal
	p.next()
	for p.cur.Type == lexer.DOT {
		p.next()
		if p.cur.Type != lexer.IDENT {
			p.errorf("expected identifier after '.', got %q", p.cur.Literal)
			return name
		}
		name = name + "." + p.cur.Literal
		p.next()
	}
	return name
}

// parseCallTail parses the "(args...)" following a name already consumed by
// parseDottedName, producing a FuncCallExpr or MethodCallExpr depending on
// whether name contains a dot.
func (p *Parser) parseCallTail(name string) ast.Expression {
	args := p.parseArgList()

	if i := indexOfDot(name); i >= 0 {
		return &ast.MethodCallExpr{ObjRef: name[:i], Name: name[i+1:], Args: args}
	}
	return &ast.FuncCallExpr{Name: name, Args: args}
}

func indexOfDot(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	p.expect(lexer.LPAREN)
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		args = append(args, p.parseExpression(lowest))
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

// ---- expressions ----

func (p *Parser) parseExpression(prec int) ast.Expression {
	left := p.parsePrefix()

	for p.cur.Type != lexer.SEMI && prec < p.curPrecedence() {
		op := p.cur.Literal
		p.next()
		right := p.parseExpression(precedences[tokenTypeOf(op)])
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

// tokenTypeOf re-derives the TokenType for an already-consumed operator
// literal, since precedences is keyed by TokenType.
func tokenTypeOf(lit string) lexer.TokenType {
	switch lit {
	case "||":
		return lexer.OR
	case "&&":
		return lexer.AND
	case "==":
		return lexer.EQ
	case "!=":
		return lexer.NOTEQ
	case "<":
		return lexer.LT
	case "<=":
		return lexer.LTEQ
	case ">":
		return lexer.GT
	case ">=":
		return lexer.GTEQ
	case "+":
		return lexer.PLUS
	case "-":
		return lexer.MINUS
	case "*":
		return lexer.STAR
	case "/":
		return lexer.SLASH
	}
	return lexer.ILLEGAL
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return lowest
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur.Type {
	case lexer.INT:
		return p.parseIntLiteral()
	case lexer.STRING:
		lit := &ast.StringLiteral{Value: p.cur.Literal}
		p.next()
		return lit
	case lexer.TRUE:
		p.next()
		return &ast.BoolLiteral{Value: true}
	case lexer.FALSE:
		p.next()
		return &ast.BoolLiteral{Value: false}
	case lexer.NIL:
		p.next()
		return &ast.NilLiteral{}
	case lexer.AT:
		p.next()
		return &ast.ObjectExpr{}
	case lexer.LAMBDA:
		return p.parseLambda()
	case lexer.MINUS:
		p.next()
		return &ast.UnaryExpr{Op: "-", Operand: p.parseExpression(unary)}
	case lexer.BANG:
		p.next()
		return &ast.UnaryExpr{Op: "!", Operand: p.parseExpression(unary)}
	case lexer.LPAREN:
		p.next()
		expr := p.parseExpression(lowest)
		p.expect(lexer.RPAREN)
		return expr
	case lexer.IDENT:
		return p.parseIdentExpression()
	default:
		p.errorf("unexpected token %q in expression", p.cur.Literal)
		p.next()
		return &ast.NilLiteral{}
	}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	lit := &ast.IntLiteral{}
	var v int64
	for _, ch := range p.cur.Literal {
		v = v*10 + int64(ch-'0')
	}
	lit.Value = v
	p.next()
	return lit
}

func (p *Parser) parseLambda() ast.Expression {
	p.next() // 'lambda'
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.LambdaExpr{Params: params, Body: body}
}

// parseIdentExpression handles a leading identifier as an expression: a
// plain/dotted variable reference, a function call, or a method call.
func (p *Parser) parseIdentExpression() ast.Expression {
	name := p.parseDottedName()
	if p.cur.Type == lexer.LPAREN {
		return p.parseCallTail(name)
	}
	return &ast.VarExpr{Name: name}
}
