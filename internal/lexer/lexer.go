// Package lexer implements the lexical analysis (tokenization) for sun-lang.
package lexer

import (
	"sun-lang/internal/diag"
	"sun-lang/internal/span"
	"sun-lang/internal/token"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes source code into a sequence of tokens.
type Lexer struct {
	source string

	pos  int // current byte offset in source
	line int // current line (1-based)
	col  int // current column in runes (1-based)

	diags []diag.Diagnostic
}

// New creates a new Lexer for the given source text.
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		col:    1,
	}
}

// Tokenize is shorthand for New(source).Tokenize().
func Tokenize(source string) ([]token.Token, []diag.Diagnostic) {
	return New(source).Tokenize()
}

// Tokenize scans the entire source and returns all tokens plus any warnings.
// It never fails: the result always ends in exactly one EOF token.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	var tokens []token.Token
	for {
		tok, ok := l.nextToken()
		if !ok {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.diags
}

// ---- internal helpers ----

// peek returns the current rune without advancing, or utf8.RuneError at end.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.source) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

// advance consumes the current rune and returns it.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) curPos() span.Position {
	return span.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: l.curPos()}
}

// ---- token reading ----

// nextToken reads one token. ok is false when the scanned input produced no
// token (whitespace or a skipped character).
func (l *Lexer) nextToken() (token.Token, bool) {
	start := l.curPos()
	if l.atEnd() {
		return token.Token{Kind: token.EOF, Lexeme: "EOF", Span: l.makeSpan(start)}, true
	}

	ch := l.peek()
	if kind, ok := punctuation[ch]; ok {
		l.advance()
		return token.Token{Kind: kind, Lexeme: string(ch), Span: l.makeSpan(start)}, true
	}
	if token.IsOperator(ch) {
		l.advance()
		return token.Token{Kind: token.BinaryOperator, Lexeme: string(ch), Span: l.makeSpan(start)}, true
	}

	switch {
	case isDigit(ch):
		return l.readNumber(start), true
	case isAlpha(ch):
		return l.readIdentifier(start), true
	case isSkippable(ch):
		l.advance()
		return token.Token{}, false
	}

	l.advance()
	l.diags = append(l.diags, diag.Warningf(diag.CodeUnknownChar, l.makeSpan(start),
		"unrecognized character %q skipped", ch))
	return token.Token{}, false
}

var punctuation = map[rune]token.Kind{
	'(': token.OpenParen,
	')': token.CloseParen,
	'{': token.OpenBrace,
	'}': token.CloseBrace,
	':': token.Colon,
	',': token.Comma,
	';': token.Semicolon,
	'=': token.Equals,
}

// readNumber collects digits and dots verbatim; "1.2.3" stays one token and
// is rejected by the parser when it converts the text.
func (l *Lexer) readNumber(start span.Position) token.Token {
	numStart := l.pos
	for !l.atEnd() && (isDigit(l.peek()) || l.peek() == '.') {
		l.advance()
	}
	return token.Token{Kind: token.Number, Lexeme: l.source[numStart:l.pos], Span: l.makeSpan(start)}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start span.Position) token.Token {
	identStart := l.pos
	for !l.atEnd() && isAlpha(l.peek()) {
		l.advance()
	}
	lexeme := l.source[identStart:l.pos]
	return token.Token{Kind: token.LookupIdent(lexeme), Lexeme: lexeme, Span: l.makeSpan(start)}
}

// ---- character classification ----

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// isAlpha accepts any cased rune. Digits, '_' and uncased scripts are not
// identifier characters. 'ß' has no single-rune upper form, hence IsLower.
func isAlpha(ch rune) bool {
	return unicode.ToUpper(ch) != unicode.ToLower(ch) || unicode.IsLower(ch) || unicode.IsUpper(ch)
}

func isSkippable(ch rune) bool {
	return ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r'
}
