package calc

import (
	"sort"
	"unicode/utf8"
)

// Program = Block
// Block   = { Newline | Stmt Newline }
// Stmt    = FnDef | If | Assign | Expr
// FnDef   = "fn" name "(" [ name { "," name } ] ")" "{" Block "}"
// If      = "if" "(" Expr ")" "{" Block "}" [ "else" "{" Block "}" ]
// Assign  = name "=" Expr
// Expr    = Term { binop Term }
// Term    = num | name | Call | "-" Term | "(" Expr ")"
// Call    = name "(" [ Expr { "," Expr } ] ")"

// Parse parses a token sequence, as produced by Tokenize, into a
// program. The token stream must be fully consumed; a leftover token,
// e.g. a stray "}", is an error. All parse errors implement InputError.
func Parse(tokens []Token) (*AST, error) {
	p := parser{toks: tokens, names: make(map[string]bool)}
	n, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	// parseBlock stops without erroring on a closing brace so that
	// function and if bodies can consume it. At the top level there is
	// nothing left to consume it, so it is unexpected here.
	if tok, ok := p.peek(); ok {
		return nil, &UnexpectedTokenError{Tok: tok}
	}
	a := AST{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		a.names = append(a.names, k)
	}
	sort.Strings(a.names)
	return &a, nil
}

type parser struct {
	toks []Token
	pos  int
	// names is the set of variable names read by the program, minus
	// function parameters bound at the point of use.
	names map[string]bool
	// bound is the stack of parameter-name scopes of the function
	// definitions currently being parsed.
	bound []map[string]bool
}

// Binary operator precedence. Higher binds tighter. Zero means the
// token is not a binary operator.
func binaryPrec(k TokenKind) int {
	switch k {
	case TokenPlus, TokenMinus:
		return 1
	case TokenStar, TokenSlash, TokenPercent:
		return 2
	case TokenCaret:
		return 3
	}
	return 0
}

// unaryMinusPrec lets a leading minus greedily absorb further unary
// minuses without raising the precedence of the surrounding binary
// expression.
const unaryMinusPrec = 4

func combine(op TokenKind, lhs, rhs *node) *node {
	var k nodeKind
	switch op {
	case TokenPlus:
		k = nodeAdd
	case TokenMinus:
		k = nodeSub
	case TokenStar:
		k = nodeMul
	case TokenSlash:
		k = nodeDiv
	case TokenPercent:
		k = nodeMod
	case TokenCaret:
		k = nodePow
	default:
		panic("calc: cannot combine with operator " + op.String())
	}
	return &node{kind: k, left: lhs, right: rhs}
}

// parseBlock parses newline-separated statements until the tokens run
// out or a closing brace appears. The brace is left for the caller.
// After any statement the next statement requires an intervening
// newline; this is what rejects inputs like "1 + 1 2 + 2" and two
// function definitions on one physical line.
func (p *parser) parseBlock() (*node, error) {
	blk := &node{kind: nodeLines}
	needSep := false
	for {
		tok, ok := p.peek()
		if !ok {
			return blk, nil
		}
		if tok.Kind == TokenNewline {
			p.next()
			needSep = false
			continue
		}
		if tok.Kind == TokenRBrace {
			return blk, nil
		}
		if needSep {
			return nil, &UnexpectedTokenError{Tok: tok}
		}
		var stmt *node
		var err error
		switch {
		case tok.Kind == TokenKeyword && tok.Text == KeywordFn:
			stmt, err = p.parseFunctionDefinition()
		case tok.Kind == TokenKeyword && tok.Text == KeywordIf:
			stmt, err = p.parseIfStatement()
		case tok.Kind == TokenIdent && p.peekKind(2) == TokenEquals:
			stmt, err = p.parseAssignment()
		default:
			stmt, err = p.parseExpression()
		}
		if err != nil {
			return nil, err
		}
		blk.list = append(blk.list, stmt)
		needSep = true
	}
}

// parseExpression parses one expression by precedence climbing: it
// loops collecting binary operators at any precedence, parsing each
// right-hand side with parseTerm at the operator's precedence plus
// one, which makes every binary operator left-associative. That
// includes ^: "2^3^2" groups as "(2^3)^2".
func (p *parser) parseExpression() (*node, error) {
	lhs, err := p.parseTerm(0)
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return lhs, nil
		}
		prec := binaryPrec(tok.Kind)
		if prec == 0 {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseTerm(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = combine(tok.Kind, lhs, rhs)
	}
}

// parseTerm parses an expression whose operators all bind at least as
// tightly as min. It resolves prefix minus and atomic terms, then
// attaches at most one binary combination; parseExpression's loop
// picks up the rest.
//
// For "1 + 2 * 3 ^ 4 + 5" called with min 2 after the first "+", this
// builds 2 * (3 ^ 4) and leaves the final "+ 5" for the caller.
func (p *parser) parseTerm(min int) (*node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &UnexpectedEOFError{Col: p.eofCol()}
	}
	var lhs *node
	switch {
	case tok.Kind == TokenMinus:
		p.next()
		// Not min+1, so that a chain of unary minuses nests: "2---2"
		// parses as "2 - (-(-2))".
		rhs, err := p.parseTerm(unaryMinusPrec)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNeg, left: rhs}, nil
	case tok.Kind == TokenLParen:
		p.next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		lhs = &node{kind: nodeGroup, left: inner}
	case tok.Kind == TokenIdent && p.peekKind(2) == TokenLParen:
		call, err := p.parseFunctionCall()
		if err != nil {
			return nil, err
		}
		lhs = call
	case tok.Kind == TokenIdent:
		p.next()
		if !p.isBound(tok.Text) {
			p.names[tok.Text] = true
		}
		lhs = &node{kind: nodeVar, text: tok.Text}
	case tok.Kind == TokenNumber:
		p.next()
		lhs = &node{kind: nodeNum, text: tok.Text}
	default:
		return nil, &UnexpectedTokenError{Tok: tok}
	}
	op, ok := p.peek()
	if !ok {
		return lhs, nil
	}
	prec := binaryPrec(op.Kind)
	if prec == 0 || prec < min {
		return lhs, nil
	}
	p.next()
	rhs, err := p.parseTerm(prec + 1)
	if err != nil {
		return nil, err
	}
	return combine(op.Kind, lhs, rhs), nil
}

// parseFunctionCall parses <name>(<arg0>, <arg1>, ...). A trailing
// comma before ")" is rejected, as is a missing comma between two
// arguments, both via the close-paren expectation.
func (p *parser) parseFunctionCall() (*node, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	var args []*node
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == TokenRParen {
			break
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peekKind(1) != TokenComma || p.peekKind(2) == TokenRParen {
			// Let the close-paren expectation report the error.
			break
		}
		p.next()
	}
	if err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	return &node{kind: nodeCall, text: name, list: args}, nil
}

// parseAssignment parses <name> = <expr>. The block dispatch has
// already checked by lookahead that the identifier is directly
// followed by "=", so "2 = 2" and "a b = 2" never get here.
func (p *parser) parseAssignment() (*node, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenEquals, "="); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeAssign, text: name, left: rhs}, nil
}

// parseFunctionDefinition parses fn <name>(<param0>, ...) { <body> }.
// Newlines are permitted between the parameter list and the opening
// brace and inside the body, but not inside the parameter list.
func (p *parser) parseFunctionDefinition() (*node, error) {
	p.next() // fn keyword, checked by the caller
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	var params []string
	scope := make(map[string]bool)
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != TokenIdent {
			break
		}
		p.next()
		params = append(params, tok.Text)
		scope[tok.Text] = true
		if p.peekKind(1) != TokenComma || p.peekKind(2) == TokenRParen {
			break
		}
		p.next()
	}
	if err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(TokenLBrace, "{"); err != nil {
		return nil, err
	}
	p.bound = append(p.bound, scope)
	body, err := p.parseBlock()
	p.bound = p.bound[:len(p.bound)-1]
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRBrace, "}"); err != nil {
		return nil, err
	}
	return &node{kind: nodeFn, text: name, params: params, left: body}, nil
}

// parseIfStatement parses if (<cond>) { <body> } with an optional
// else { <body> } directly following the first body's closing brace.
func (p *parser) parseIfStatement() (*node, error) {
	p.next() // if keyword, checked by the caller
	if err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(TokenLBrace, "{"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRBrace, "}"); err != nil {
		return nil, err
	}
	n := &node{kind: nodeIf, left: cond, right: body}
	if tok, ok := p.peek(); ok && tok.Kind == TokenKeyword && tok.Text == KeywordElse {
		p.next()
		p.skipNewlines()
		if err := p.expect(TokenLBrace, "{"); err != nil {
			return nil, err
		}
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRBrace, "}"); err != nil {
			return nil, err
		}
		n.els = els
	}
	return n, nil
}

// peek returns the next token without consuming it.
func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

// peekKind returns the kind of the nth token ahead, with n = 1
// behaving like peek. Out of range yields TokenNone.
func (p *parser) peekKind(n int) TokenKind {
	idx := p.pos + n - 1
	if idx >= len(p.toks) {
		return TokenNone
	}
	return p.toks[idx].Kind
}

// next consumes and returns the next token.
func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// expect consumes the next token, which must be of the given kind.
func (p *parser) expect(kind TokenKind, text string) error {
	tok, ok := p.next()
	if !ok {
		return &ExpectedTokenError{Want: kind, WantText: text, Col: p.eofCol()}
	}
	if tok.Kind != kind {
		return &ExpectedTokenError{Want: kind, WantText: text, Col: tok.Pos}
	}
	return nil
}

// expectIdent consumes the next token, which must be an identifier,
// and returns its text.
func (p *parser) expectIdent() (string, error) {
	tok, ok := p.next()
	if !ok {
		return "", &ExpectedIdentError{Col: p.eofCol()}
	}
	if tok.Kind != TokenIdent {
		return "", &ExpectedIdentError{Col: tok.Pos}
	}
	return tok.Text, nil
}

// skipNewlines advances past any run of newline tokens.
func (p *parser) skipNewlines() {
	for p.peekKind(1) == TokenNewline {
		p.next()
	}
}

// isBound reports whether name is a parameter of a function definition
// currently being parsed.
func (p *parser) isBound(name string) bool {
	for _, scope := range p.bound {
		if scope[name] {
			return true
		}
	}
	return false
}

// eofCol is the rune position just past the final token, for errors
// about tokens running out.
func (p *parser) eofCol() int {
	if len(p.toks) == 0 {
		return 1
	}
	last := p.toks[len(p.toks)-1]
	return last.Pos + utf8.RuneCountInString(last.Text)
}
