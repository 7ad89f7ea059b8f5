package rox

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type SyntaxErrorKind uint8

const (
	// ExpectExpression means the tokens ran out where an expression was required.
	ExpectExpression SyntaxErrorKind = iota
	// ExpectRightParen means a grouping was opened but never closed.
	ExpectRightParen
	// UnexpectedToken means a token fits no construct at its position. Lexer
	// error tokens surface this way.
	UnexpectedToken
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case ExpectExpression:
		return "expect expression"
	case ExpectRightParen:
		return "expect ')' after expression"
	case UnexpectedToken:
		return "unexpected token"
	default:
		return fmt.Sprintf("SyntaxErrorKind(%d)", uint8(k))
	}
}

type SyntaxError struct {
	Kind SyntaxErrorKind
	// Token is the offending token, nil when the input ended.
	Token *Token
}

func (e *SyntaxError) Error() string {
	if e.Token == nil {
		return e.Kind.String() + " at end"
	}

	if e.Token.Typ == TokenError {
		return fmt.Sprintf("line %d: %s '%s'", e.Token.Line, e.Token.Err, e.Token.Lexeme)
	}

	return fmt.Sprintf("line %d: %s at '%s'", e.Token.Line, e.Kind, e.Token.Lexeme)
}

// SliceTokenizer serves an already materialized token sequence.
type SliceTokenizer struct {
	buf []Token
	pos int
}

func NewSliceTokenizer(toks []Token) *SliceTokenizer {
	return &SliceTokenizer{
		buf: toks,
		pos: 0,
	}
}

func (s *SliceTokenizer) Next() (Token, bool) {
	if len(s.buf) <= s.pos {
		return Token{}, false
	}

	tok := s.buf[s.pos]
	s.pos++

	return tok, true
}

// Parser is a recursive-descent parser over a Tokenizer with one token of
// lookahead:
//
//	expression → equality
//	equality   → comparison ( ( "==" | "!=" ) comparison )*
//	comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term       → factor ( ( "+" | "-" ) factor )*
//	factor     → unary ( ( "*" | "/" ) unary )*
//	unary      → ( "!" | "-" ) unary | primary
//	primary    → NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")"
//
// Binary levels are left-associative loops. Recursion depth follows the
// nesting depth of the input, so pathologically deep input (thousands of
// nested parentheses or prefix operators) can exhaust the goroutine stack.
type Parser struct {
	tokenizer Tokenizer
	buf       *Token
	done      bool
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
	}
}

// Parse reads a single expression from the front of the token stream. Tokens
// following the expression stay unconsumed and can be inspected with Peek or
// parsed by another call.
func (p *Parser) Parse() (Expr, error) {
	return p.expression()
}

// Parse parses the first expression of source.
func Parse(source string) (Expr, error) {
	return NewParser(NewLexerFromString(source)).Parse()
}

// Peek returns the next unconsumed token.
func (p *Parser) Peek() (Token, bool) {
	return p.peek()
}

// AtEnd reports whether every token has been consumed.
func (p *Parser) AtEnd() bool {
	_, ok := p.peek()
	return !ok
}

// Synchronize discards tokens up to the next statement boundary: it stops
// after a ';' or before a keyword that begins a statement.
func (p *Parser) Synchronize() {
	var skipped []string
	defer func() {
		if len(skipped) > 0 {
			zap.S().Debugf("synchronize: discarded %s", strings.Join(skipped, " "))
		}
	}()

	for tok, ok := p.peek(); ok; tok, ok = p.peek() {
		if tok.startsStatement() {
			return
		}

		p.next()
		skipped = append(skipped, tok.Lexeme)

		if tok.Typ == TokenSemicolon {
			return
		}
	}
}

func (p *Parser) peek() (Token, bool) {
	if p.buf == nil && !p.done {
		tok, ok := p.tokenizer.Next()
		if !ok {
			p.done = true
			return Token{}, false
		}

		p.buf = &tok
	}

	if p.buf == nil {
		return Token{}, false
	}

	return *p.buf, true
}

func (p *Parser) next() (Token, bool) {
	tok, ok := p.peek()
	p.buf = nil

	return tok, ok
}

func (p *Parser) check(types ...TokenType) bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}

	for _, typ := range types {
		if tok.Typ == typ {
			return true
		}
	}

	return false
}

// match consumes the next token if it has one of the given types.
func (p *Parser) match(types ...TokenType) (Token, bool) {
	if !p.check(types...) {
		return Token{}, false
	}

	return p.next()
}

func (p *Parser) errorf(kind SyntaxErrorKind, tok *Token) error {
	return &SyntaxError{Kind: kind, Token: tok}
}

func (p *Parser) expression() (Expr, error) {
	return p.equality()
}

func (p *Parser) equality() (Expr, error) {
	lhs, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.match(TokenEqualEqual, TokenBangEqual)
		if !ok {
			return lhs, nil
		}

		rhs, err := p.comparison()
		if err != nil {
			return nil, err
		}

		op := BinaryEqual
		if tok.Typ == TokenBangEqual {
			op = BinaryNotEqual
		}

		lhs = equality(lhs, op, rhs)
	}
}

var comparisonOps = map[TokenType]BinaryOp{
	TokenGreater:      BinaryGreater,
	TokenGreaterEqual: BinaryGreaterEqual,
	TokenLess:         BinaryLess,
	TokenLessEqual:    BinaryLessEqual,
}

func (p *Parser) comparison() (Expr, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.match(TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
		if !ok {
			return lhs, nil
		}

		rhs, err := p.term()
		if err != nil {
			return nil, err
		}

		lhs = compare(lhs, comparisonOps[tok.Typ], rhs)
	}
}

func (p *Parser) term() (Expr, error) {
	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}

	for {
		// Chained operands (for example 1 - 3 + 1) nest to the left
		tok, ok := p.match(TokenPlus, TokenMinus)
		if !ok {
			return lhs, nil
		}

		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}

		op := BinaryAddition
		if tok.Typ == TokenMinus {
			op = BinarySubtraction
		}

		lhs = arithmetic(lhs, op, rhs)
	}
}

func (p *Parser) factor() (Expr, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.match(TokenStar, TokenSlash)
		if !ok {
			return lhs, nil
		}

		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}

		op := BinaryMultiplication
		if tok.Typ == TokenSlash {
			op = BinaryDivision
		}

		lhs = arithmetic(lhs, op, rhs)
	}
}

func (p *Parser) unary() (Expr, error) {
	tok, ok := p.match(TokenBang, TokenMinus)
	if !ok {
		return p.primary()
	}

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}

	if tok.Typ == TokenBang {
		return Not(operand), nil
	}

	return Negate(operand), nil
}

func (p *Parser) primary() (Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, p.errorf(ExpectExpression, nil)
	}

	switch {
	case tok.Typ == TokenNumber:
		return Lit(NumberLiteral(tok.Number)), nil
	case tok.Typ == TokenString:
		return Lit(StringLiteral(tok.Lexeme)), nil
	case tok.isKeyword(KeywordTrue):
		return Lit(BoolLiteral(true)), nil
	case tok.isKeyword(KeywordFalse):
		return Lit(BoolLiteral(false)), nil
	case tok.isKeyword(KeywordNil):
		return Lit(NilLiteral), nil
	case tok.Typ == TokenOpenParentheses:
		return p.parenthesisedExpression()
	default:
		return nil, p.errorf(UnexpectedToken, &tok)
	}
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	inner, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, ok := p.match(TokenCloseParentheses); !ok {
		tok, more := p.peek()
		if !more {
			return nil, p.errorf(ExpectRightParen, nil)
		}

		return nil, p.errorf(ExpectRightParen, &tok)
	}

	return Group(inner), nil
}
