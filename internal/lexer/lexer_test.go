package lexer

import (
	"sun-lang/internal/diag"
	"sun-lang/internal/token"
	"testing"
)

func expectKinds(t *testing.T, tokens []token.Token, expected ...token.Kind) {
	t.Helper()
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s (%q)", i, exp, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestTokenizeSimple(t *testing.T) {
	tokens, diags := Tokenize(`let x = 1 + 2;`)
	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, tokens,
		token.Let, token.Identifier, token.Equals,
		token.Number, token.BinaryOperator, token.Number,
		token.Semicolon, token.EOF)
}

func TestTokenizeKeywords(t *testing.T) {
	tokens, _ := Tokenize(`let const lettuce constant true nil`)
	expectKinds(t, tokens,
		token.Let, token.Const, token.Identifier, token.Identifier,
		token.Identifier, token.Identifier, token.EOF)

	for i, tok := range tokens {
		if want := i < 2; tok.Kind.IsKeyword() != want {
			t.Errorf("token %d (%s): IsKeyword() = %v, want %v", i, tok.Lexeme, !want, want)
		}
	}
}

func TestTokenizePunctuation(t *testing.T) {
	tokens, diags := Tokenize(`( ) { } : , ; =`)
	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, tokens,
		token.OpenParen, token.CloseParen, token.OpenBrace, token.CloseBrace,
		token.Colon, token.Comma, token.Semicolon, token.Equals, token.EOF)
}

func TestTokenizeOperators(t *testing.T) {
	tokens, _ := Tokenize(`+-*/%`)
	ops := []string{"+", "-", "*", "/", "%"}
	if len(tokens) != len(ops)+1 {
		t.Fatalf("expected %d tokens, got %d", len(ops)+1, len(tokens))
	}
	for i, op := range ops {
		if tokens[i].Kind != token.BinaryOperator || tokens[i].Lexeme != op {
			t.Errorf("token[%d]: expected BinaryOperator %q, got %s %q", i, op, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestTokenizeDoubleEquals(t *testing.T) {
	tokens, _ := Tokenize(`==`)
	expectKinds(t, tokens, token.Equals, token.Equals, token.EOF)
}

func TestTokenizeNumbers(t *testing.T) {
	tokens, diags := Tokenize(`123 3.14 0 1.2.3`)
	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	want := []string{"123", "3.14", "0", "1.2.3"}
	for i, lex := range want {
		if tokens[i].Kind != token.Number || tokens[i].Lexeme != lex {
			t.Errorf("token[%d]: expected Number %q, got %s %q", i, lex, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestTokenizeLeadingDotIsSkipped(t *testing.T) {
	tokens, diags := Tokenize(`.5`)
	expectKinds(t, tokens, token.Number, token.EOF)
	if tokens[0].Lexeme != "5" {
		t.Errorf("expected lexeme '5', got %q", tokens[0].Lexeme)
	}
	if len(diags) != 1 || diags[0].Code != diag.CodeUnknownChar {
		t.Errorf("expected one %s warning, got %v", diag.CodeUnknownChar, diags)
	}
}

func TestTokenizeIdentifierStopsAtDigit(t *testing.T) {
	tokens, _ := Tokenize(`abc123`)
	expectKinds(t, tokens, token.Identifier, token.Number, token.EOF)
	if tokens[0].Lexeme != "abc" || tokens[1].Lexeme != "123" {
		t.Errorf("unexpected split: %q %q", tokens[0].Lexeme, tokens[1].Lexeme)
	}
}

func TestTokenizeUnicodeLetters(t *testing.T) {
	tokens, diags := Tokenize(`größe Ωmega`)
	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, tokens, token.Identifier, token.Identifier, token.EOF)
	if tokens[0].Lexeme != "größe" {
		t.Errorf("expected 'größe', got %q", tokens[0].Lexeme)
	}
}

func TestTokenizeUnknownCharacters(t *testing.T) {
	tokens, diags := Tokenize("a _ # b")
	expectKinds(t, tokens, token.Identifier, token.Identifier, token.EOF)
	if len(diags) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(diags), diags)
	}
	for _, d := range diags {
		if d.Severity != diag.Warning {
			t.Errorf("expected warning severity, got %s", d.Severity)
		}
	}
	if diags[0].Span.Start.Column != 3 {
		t.Errorf("expected '_' warning at column 3, got %d", diags[0].Span.Start.Column)
	}
}

func TestTokenizeAlwaysEndsInEOF(t *testing.T) {
	inputs := []string{"", "   \n\t\r", "@@@", "let", "1 +", "{a, b}"}
	for _, input := range inputs {
		tokens, _ := Tokenize(input)
		if len(tokens) == 0 {
			t.Fatalf("%q: empty token sequence", input)
		}
		last := tokens[len(tokens)-1]
		if last.Kind != token.EOF || last.Lexeme != "EOF" {
			t.Errorf("%q: last token is %s %q, want EOF", input, last.Kind, last.Lexeme)
		}
		for i, tok := range tokens[:len(tokens)-1] {
			if tok.Kind == token.EOF {
				t.Errorf("%q: extra EOF at index %d", input, i)
			}
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, _ := Tokenize("let x\n  = 1")
	if tokens[1].Span.Start.Line != 1 || tokens[1].Span.Start.Column != 5 {
		t.Errorf("'x' position: expected 1:5, got %s", tokens[1].Span.Start)
	}
	if tokens[2].Span.Start.Line != 2 || tokens[2].Span.Start.Column != 3 {
		t.Errorf("'=' position: expected 2:3, got %s", tokens[2].Span.Start)
	}
}
