package calc

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token of the calculator language.
type Token struct {
	// Kind is the token's kind.
	Kind TokenKind
	// Text is the raw text of the token. Number literals stay unparsed
	// here so that the lexer, not the float conversion, decides which
	// literals are well formed.
	Text string
	// Pos is the rune position of the token's first rune, counting
	// from 1.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a token.
type TokenKind int

const (
	TokenNone TokenKind = iota
	// TokenNumber is a numeric literal.
	TokenNumber
	// TokenIdent is a variable or function name.
	TokenIdent
	// TokenKeyword is one of the reserved words fn, if, and else.
	TokenKeyword
	// TokenNewline is a statement separator.
	TokenNewline

	// Operators.
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenCaret

	// Punctuation.
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenEquals
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenIdent:
		return "Ident"
	case TokenKeyword:
		return "Keyword"
	case TokenNewline:
		return "Newline"
	case TokenPlus:
		return "Plus"
	case TokenMinus:
		return "Minus"
	case TokenStar:
		return "Star"
	case TokenSlash:
		return "Slash"
	case TokenPercent:
		return "Percent"
	case TokenCaret:
		return "Caret"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenLBrace:
		return "LBrace"
	case TokenRBrace:
		return "RBrace"
	case TokenComma:
		return "Comma"
	case TokenEquals:
		return "Equals"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Keywords contains the reserved words that lex as TokenKeyword rather
// than TokenIdent.
const (
	KeywordFn   = "fn"
	KeywordIf   = "if"
	KeywordElse = "else"
)

// punct maps single-rune punctuation to its token kind.
var punct = map[rune]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'^': TokenCaret,
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
	'=': TokenEquals,
}

// Tokenize scans src into its token sequence. Newlines become explicit
// TokenNewline tokens; other whitespace separates tokens and is
// dropped. The error, if any, is a *LexError.
func Tokenize(src string) ([]Token, error) {
	l := lexer{src: src, rune: 1}
	var toks []Token
	for {
		r, ok := l.peekRune()
		if !ok {
			return toks, nil
		}
		pos := l.rune
		switch {
		case r == '\n':
			l.readRune()
			toks = append(toks, Token{Kind: TokenNewline, Text: "\n", Pos: pos})
		case unicode.IsSpace(r):
			l.readRune()
		case '0' <= r && r <= '9', r == '.':
			text, err := l.scanNumber()
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: TokenNumber, Text: text, Pos: pos})
		case r == '_', unicode.IsLetter(r):
			text := l.scanIdent()
			kind := TokenIdent
			switch text {
			case KeywordFn, KeywordIf, KeywordElse:
				kind = TokenKeyword
			}
			toks = append(toks, Token{Kind: kind, Text: text, Pos: pos})
		default:
			if k, ok := punct[r]; ok {
				l.readRune()
				toks = append(toks, Token{Kind: k, Text: string(r), Pos: pos})
				break
			}
			return nil, &LexError{Text: string(r), Col: pos}
		}
	}
}

// lexer scans a source string rune by rune.
type lexer struct {
	src  string
	pos  int // byte offset into src
	rune int // rune position, counting from 1
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r, true
}

func (l *lexer) readRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += sz
	l.rune++
	return r, true
}

// scanNumber scans a maximal run of digits and decimal points. The run
// must contain at least one digit and at most one point; anything else
// is rejected here rather than left for the float conversion.
func (l *lexer) scanNumber() (string, error) {
	start := l.pos
	col := l.rune
	var digits, dots int
	for {
		r, ok := l.peekRune()
		if !ok {
			break
		}
		switch {
		case '0' <= r && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			goto done
		}
		l.readRune()
	}
done:
	text := l.src[start:l.pos]
	if digits == 0 || dots > 1 {
		return "", &LexError{Text: text, Kind: "number", Col: col}
	}
	return text, nil
}

func (l *lexer) scanIdent() string {
	start := l.pos
	for {
		r, ok := l.peekRune()
		if !ok {
			break
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.readRune()
	}
	return l.src[start:l.pos]
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the text the lexer was scanning when it gave up.
	Text string
	// Kind is the type of token the lexer was scanning. This is
	// "number" for a malformed numeric literal and the empty string
	// for a rune that cannot start any token.
	Kind string
	// Col is the rune position of the start of the offending text.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "unexpected character at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}
