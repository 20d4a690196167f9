package calc

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces
		{"", nil},
		{" \t \r ", nil},
		{"\n", []Token{{TokenNewline, "\n", 1}}},
		{"\n\n", []Token{{TokenNewline, "\n", 1}, {TokenNewline, "\n", 2}}},
		// numbers
		{"0", []Token{{TokenNumber, "0", 1}}},
		{"9876543210", []Token{{TokenNumber, "9876543210", 1}}},
		{"1 0", []Token{{TokenNumber, "1", 1}, {TokenNumber, "0", 3}}},
		{"1.0", []Token{{TokenNumber, "1.0", 1}}},
		{".1", []Token{{TokenNumber, ".1", 1}}},
		{"1.", []Token{{TokenNumber, "1.", 1}}},
		{"-1", []Token{{TokenMinus, "-", 1}, {TokenNumber, "1", 2}}},
		// identifiers and keywords
		{"e", []Token{{TokenIdent, "e", 1}}},
		{"_1234_", []Token{{TokenIdent, "_1234_", 1}}},
		{"some_longer_name", []Token{{TokenIdent, "some_longer_name", 1}}},
		{"fn", []Token{{TokenKeyword, "fn", 1}}},
		{"if", []Token{{TokenKeyword, "if", 1}}},
		{"else", []Token{{TokenKeyword, "else", 1}}},
		{"fnx ifs", []Token{{TokenIdent, "fnx", 1}, {TokenIdent, "ifs", 5}}},
		// operators and punctuation
		{"1+0", []Token{{TokenNumber, "1", 1}, {TokenPlus, "+", 2}, {TokenNumber, "0", 3}}},
		{"a--b", []Token{{TokenIdent, "a", 1}, {TokenMinus, "-", 2}, {TokenMinus, "-", 3}, {TokenIdent, "b", 4}}},
		{"2*3/4%5^6", []Token{
			{TokenNumber, "2", 1}, {TokenStar, "*", 2},
			{TokenNumber, "3", 3}, {TokenSlash, "/", 4},
			{TokenNumber, "4", 5}, {TokenPercent, "%", 6},
			{TokenNumber, "5", 7}, {TokenCaret, "^", 8},
			{TokenNumber, "6", 9},
		}},
		{"f(a, b) = {}", []Token{
			{TokenIdent, "f", 1}, {TokenLParen, "(", 2},
			{TokenIdent, "a", 3}, {TokenComma, ",", 4},
			{TokenIdent, "b", 6}, {TokenRParen, ")", 7},
			{TokenEquals, "=", 9},
			{TokenLBrace, "{", 11}, {TokenRBrace, "}", 12},
		}},
		// statements spanning lines
		{"a = 2\nb", []Token{
			{TokenIdent, "a", 1}, {TokenEquals, "=", 3},
			{TokenNumber, "2", 5}, {TokenNewline, "\n", 6},
			{TokenIdent, "b", 7},
		}},
	}
	for _, c := range cases {
		toks, err := Tokenize(c.src)
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", c.src, err)
			continue
		}
		if len(toks) != len(c.tokens) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tokens, toks)
			continue
		}
		for i, want := range c.tokens {
			if toks[i] != want {
				t.Errorf("scanning %q: token %d: want %v, got %v", c.src, i, want, toks[i])
			}
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		col  int
	}{
		// malformed numbers, caught here rather than at conversion
		{"..", "number", 1},
		{"..1", "number", 1},
		{"1..", "number", 1},
		{".1.", "number", 1},
		{"2.3.4", "number", 1},
		{"1 + 2.3.4", "number", 5},
		// characters that start no token
		{"$", "", 1},
		{"1 & 2", "", 3},
		{"a?", "", 2},
		{"§", "", 1},
	}
	for _, c := range cases {
		_, err := Tokenize(c.src)
		if err == nil {
			t.Errorf("scanning %q: expected error", c.src)
			continue
		}
		var lerr *LexError
		if !errors.As(err, &lerr) {
			t.Errorf("scanning %q: error %#v is not *LexError", c.src, err)
			continue
		}
		if lerr.Kind != c.kind {
			t.Errorf("scanning %q: want kind %q, got %q", c.src, c.kind, lerr.Kind)
		}
		if lerr.Col != c.col {
			t.Errorf("scanning %q: want col %d, got %d", c.src, c.col, lerr.Col)
		}
	}
}
