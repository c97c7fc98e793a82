// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"
	"sun-lang/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	// Literals
	Number Kind = iota
	String // reserved: the lexer has no string literal syntax yet
	Identifier

	// Punctuation
	Comma      // ,
	Colon      // :
	Equals     // =
	Semicolon  // ;
	OpenParen  // (
	CloseParen // )
	OpenBrace  // {
	CloseBrace // }

	// + - * / %, told apart by lexeme
	BinaryOperator

	// Keywords
	Let
	Const

	// Nil is the "no keyword" kind; never emitted as a token.
	Nil
	EOF
)

var kindNames = map[Kind]string{
	Number:     "Number",
	String:     "String",
	Identifier: "Identifier",

	Comma:      "Comma",
	Colon:      "Colon",
	Equals:     "Equals",
	Semicolon:  "Semicolon",
	OpenParen:  "OpenParen",
	CloseParen: "CloseParen",
	OpenBrace:  "OpenBrace",
	CloseBrace: "CloseBrace",

	BinaryOperator: "BinaryOperator",

	Let:   "Let",
	Const: "Const",

	Nil: "Nil",
	EOF: "EOF",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword returns true if the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k == Let || k == Const
}

var keywords = map[string]Kind{
	"let":   Let,
	"const": Const,
}

// Keyword returns the keyword kind for ident, or Nil if ident is not reserved.
func Keyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Nil
}

// LookupIdent returns the keyword Kind for ident, or Identifier if it is not a keyword.
func LookupIdent(ident string) Kind {
	if kind := Keyword(ident); kind != Nil {
		return kind
	}
	return Identifier
}

// IsOperator reports whether ch is lexed as a BinaryOperator.
func IsOperator(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '%':
		return true
	}
	return false
}

// Token represents a lexical token with its kind, text, and source location.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

// Is reports whether the token is a BinaryOperator with one of the given lexemes.
func (t Token) Is(ops ...string) bool {
	if t.Kind != BinaryOperator {
		return false
	}
	for _, op := range ops {
		if t.Lexeme == op {
			return true
		}
	}
	return false
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}
