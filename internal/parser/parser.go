// Package parser implements the syntax analysis for sun-lang.
// It is a recursive-descent parser with one function per precedence level:
//
//	Program        := Statement* EOF
//	Statement      := VarDeclaration | AssignExpr ";"?
//	VarDeclaration := ("let"|"const") Identifier ("=" AssignExpr)? ";"
//	AssignExpr     := ObjectLit ("=" AssignExpr)?
//	ObjectLit      := "{" (Identifier (":" AssignExpr)? ","?)* "}" | Additive
//	Additive       := Multiplicative (("+"|"-") Multiplicative)*
//	Multiplicative := Primary (("*"|"/"|"%") Primary)*
//	Primary        := Number | Identifier | "(" AssignExpr ")"
package parser

import (
	"errors"
	"strconv"
	"sun-lang/internal/ast"
	"sun-lang/internal/diag"
	"sun-lang/internal/lexer"
	"sun-lang/internal/span"
	"sun-lang/internal/token"
)

// Parser performs syntax analysis on a stream of tokens.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  []diag.Diagnostic
}

// New creates a new parser from a token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ProduceAST tokenizes source and parses it into a Program. The returned
// diagnostics hold lexer and parser warnings; a non-nil error is a
// *diag.Fatal and means no program was produced.
func ProduceAST(source string) (*ast.Program, []diag.Diagnostic, error) {
	tokens, lexDiags := lexer.Tokenize(source)
	program, parseDiags, err := New(tokens).ParseProgram()
	return program, append(lexDiags, parseDiags...), err
}

// ParseProgram consumes every token and returns the program root.
func (p *Parser) ParseProgram() (*ast.Program, []diag.Diagnostic, error) {
	program := &ast.Program{}
	startPos := p.peek().Span.Start

	for !p.isAtEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, p.diags, err
		}
		program.Body = append(program.Body, stmt)
	}

	program.Span = span.Span{Start: startPos, End: p.peek().Span.End}
	return program, p.diags, nil
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF, Lexeme: "EOF", Span: p.endSpan()}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekKind() token.Kind {
	return p.peek().Kind
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peekKind() == kind
}

// expect consumes the next token and fails unless it has the given kind.
func (p *Parser) expect(kind token.Kind, msg string) (token.Token, error) {
	tok := p.advance()
	if tok.Kind != kind {
		return tok, diag.NewFatal(diag.CodeExpect, tok.Span,
			"%s: got %s %q, expected %s", msg, tok.Kind, tok.Lexeme, kind)
	}
	return tok, nil
}

func (p *Parser) isAtEnd() bool {
	return p.peekKind() == token.EOF
}

func (p *Parser) warn(code string, s span.Span, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.Warningf(code, s, format, args...))
}

// ============================================================
// Statement parsing
// ============================================================

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.peekKind() {
	case token.Let, token.Const:
		return p.parseVarDeclaration()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.check(token.Semicolon) {
			p.advance()
		}
		return expr, nil
	}
}

// parseVarDeclaration parses: (let | const) IDENT [ = expr ] ;
func (p *Parser) parseVarDeclaration() (*ast.VarDeclaration, error) {
	start := p.advance() // consume 'let' or 'const'
	decl := &ast.VarDeclaration{Constant: start.Kind == token.Const}

	nameTok, err := p.expect(token.Identifier, "expected identifier name following let/const keyword")
	if err != nil {
		return nil, err
	}
	decl.Identifier = nameTok.Lexeme

	if p.check(token.Semicolon) {
		p.advance()
		if decl.Constant {
			return nil, diag.NewFatal(diag.CodeConstNoInit, p.makeSpan(start.Span.Start),
				"must assign value to constant %q", decl.Identifier)
		}
		decl.Span = p.makeSpan(start.Span.Start)
		return decl, nil
	}

	if _, err := p.expect(token.Equals, "expected '=' following identifier in declaration"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	decl.Value = value

	if _, err := p.expect(token.Semicolon, "declaration must end with ';'"); err != nil {
		return nil, err
	}
	decl.Span = p.makeSpan(start.Span.Start)
	return decl, nil
}

// ============================================================
// Expression parsing
// ============================================================

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignmentExpr()
}

// parseAssignmentExpr parses: object [ = assignment ], right-associative.
func (p *Parser) parseAssignmentExpr() (ast.Expr, error) {
	left, err := p.parseObjectExpr()
	if err != nil {
		return nil, err
	}
	if !p.check(token.Equals) {
		return left, nil
	}

	p.advance() // consume '='
	value, err := p.parseAssignmentExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpr{
		ExprBase: makeExprBase(left.GetSpan().Start, p.prevEnd()),
		Target:   left,
		Value:    value,
	}, nil
}

// parseObjectExpr parses: { key [: expr] [,] ... } or falls through to additive.
func (p *Parser) parseObjectExpr() (ast.Expr, error) {
	if !p.check(token.OpenBrace) {
		return p.parseAdditiveExpr()
	}

	start := p.advance() // consume '{'
	obj := &ast.ObjectLiteral{}

	for !p.isAtEnd() && !p.check(token.CloseBrace) {
		keyTok, err := p.expect(token.Identifier, "object literal key expected")
		if err != nil {
			return nil, err
		}
		prop := &ast.Property{Key: keyTok.Lexeme}

		if p.check(token.Colon) {
			p.advance() // consume ':'
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			prop.Value = value
		}
		prop.ExprBase = makeExprBase(keyTok.Span.Start, p.prevEnd())
		obj.SetProperty(prop)

		if p.check(token.Comma) {
			p.advance()
		}
	}

	if _, err := p.expect(token.CloseBrace, "object literal missing closing brace"); err != nil {
		return nil, err
	}
	obj.ExprBase = makeExprBase(start.Span.Start, p.prevEnd())
	return obj, nil
}

// parseAdditiveExpr parses: multiplicative { (+|-) multiplicative }
func (p *Parser) parseAdditiveExpr() (ast.Expr, error) {
	left, err := p.parseMultiplicativeExpr()
	if err != nil {
		return nil, err
	}

	for p.peek().Is("+", "-") {
		op := p.advance().Lexeme
		right, err := p.parseMultiplicativeExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			ExprBase: spanExprBase(span.Join(left.GetSpan(), right.GetSpan())),
			Left:     left,
			Right:    right,
			Operator: op,
		}
	}
	return left, nil
}

// parseMultiplicativeExpr parses: primary { (*|/|%) primary }
func (p *Parser) parseMultiplicativeExpr() (ast.Expr, error) {
	left, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	for p.peek().Is("*", "/", "%") {
		op := p.advance().Lexeme
		right, err := p.parsePrimaryExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			ExprBase: spanExprBase(span.Join(left.GetSpan(), right.GetSpan())),
			Left:     left,
			Right:    right,
			Operator: op,
		}
	}
	return left, nil
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.Identifier:
		p.advance()
		return &ast.Identifier{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Symbol:   tok.Lexeme,
		}, nil

	case token.Number:
		p.advance()
		val, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, diag.NewFatal(diag.CodeBadNumber, tok.Span, "failed to parse number %q", tok.Lexeme)
		}
		return &ast.NumericLiteral{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Value:    val,
		}, nil

	case token.OpenParen:
		p.advance() // consume '('
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CloseParen, "unexpected token inside parenthesised expression, expected ')'"); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		// Keep the parser total: report, consume, and carry the raw text on.
		p.warn(diag.CodeUnexpectedToken, tok.Span, "unexpected token %s %q during parsing", tok.Kind, tok.Lexeme)
		p.advance()
		return &ast.Identifier{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Symbol:   tok.Lexeme,
		}, nil
	}
}

// ============================================================
// Span helpers
// ============================================================

func (p *Parser) endSpan() span.Span {
	if len(p.tokens) == 0 {
		return span.Span{}
	}
	last := p.tokens[len(p.tokens)-1].Span
	return span.Span{Start: last.End, End: last.End}
}

func (p *Parser) prevEnd() span.Position {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek().Span.Start
}

func (p *Parser) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: p.prevEnd()}
}

func makeExprBase(start, end span.Position) ast.ExprBase {
	return spanExprBase(span.Span{Start: start, End: end})
}

func spanExprBase(s span.Span) ast.ExprBase {
	return ast.ExprBase{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Span: s}}}
}
