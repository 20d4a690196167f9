package calc

import "strconv"

// UnexpectedTokenError is an error indicating a token that cannot
// start or continue a statement at its position. It implements
// InputError.
type UnexpectedTokenError struct {
	// Tok is the offending token.
	Tok Token
}

func (err *UnexpectedTokenError) Error() string {
	if err.Tok.Kind == TokenNewline {
		return errpos(err.Tok.Pos, "unexpected end of line")
	}
	return errpos(err.Tok.Pos, "unexpected token "+strconv.Quote(err.Tok.Text))
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Tok.Pos
}

// ExpectedTokenError is an error indicating that the parser required a
// particular token and found something else. It implements InputError.
type ExpectedTokenError struct {
	// Want is the kind of token the parser required.
	Want TokenKind
	// WantText is the text of the required token, e.g. ")".
	WantText string
	// Col is the position of the token found instead, or one past the
	// input if the tokens ran out.
	Col int
}

func (err *ExpectedTokenError) Error() string {
	return errpos(err.Col, "expected "+strconv.Quote(err.WantText))
}

func (err *ExpectedTokenError) Pos() int {
	return err.Col
}

// ExpectedIdentError is an error indicating that the parser required an
// identifier, e.g. a function or parameter name, and found something
// else. It implements InputError.
type ExpectedIdentError struct {
	// Col is the position of the token found instead.
	Col int
}

func (err *ExpectedIdentError) Error() string {
	return errpos(err.Col, "expected identifier")
}

func (err *ExpectedIdentError) Pos() int {
	return err.Col
}

// UnexpectedEOFError is an error indicating that the tokens ran out in
// the middle of a statement. It implements InputError.
type UnexpectedEOFError struct {
	// Col is one past the position of the last token.
	Col int
}

func (err *UnexpectedEOFError) Error() string {
	return errpos(err.Col, "unexpected end of input")
}

func (err *UnexpectedEOFError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error
// resulting from invalid source text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up
	// to and including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*ExpectedTokenError)(nil)
	_ InputError = (*ExpectedIdentError)(nil)
	_ InputError = (*UnexpectedEOFError)(nil)
	_ InputError = (*LexError)(nil)
)
