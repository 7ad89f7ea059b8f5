package rox

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

const EOF rune = -1

type stateFunc func(l *Lexer) stateFunc

var operatorTable = map[string]TokenType{
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
	",":  TokenComma,
	".":  TokenDot,
	"-":  TokenMinus,
	"+":  TokenPlus,
	";":  TokenSemicolon,
	"*":  TokenStar,
	"/":  TokenSlash,
	"!":  TokenBang,
	"!=": TokenBangEqual,
	"=":  TokenEqual,
	"==": TokenEqualEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
}

// Tokenizer is a forward-only source of tokens. Next reports false once the
// source is exhausted.
type Tokenizer interface {
	Next() (Token, bool)
}

// Lexer scans tokens lazily: every call to Next runs the state machine only
// until one token has been produced. Whitespace and comments never produce
// tokens, and lexical errors are returned as TokenError tokens.
type Lexer struct {
	reader  *bufio.Reader
	ahead   []rune
	line    int
	state   stateFunc
	pending *Token
	err     error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		line:   1,
		state:  defaultState,
	}
}

func NewLexerFromString(source string) *Lexer {
	return NewLexer(strings.NewReader(source))
}

func (l *Lexer) Next() (Token, bool) {
	for l.pending == nil && l.state != nil {
		l.state = l.state(l)
	}

	if l.pending == nil {
		return Token{}, false
	}

	tok := *l.pending
	l.pending = nil

	return tok, true
}

// All drains the lexer.
func (l *Lexer) All() []Token {
	var tokens []Token
	for tok, ok := l.Next(); ok; tok, ok = l.Next() {
		tokens = append(tokens, tok)
	}

	return tokens
}

// Err reports a read failure of the underlying reader, which ends the token
// stream early.
func (l *Lexer) Err() error {
	return l.err
}

// Line is the current line of the scanner, starting at 1.
func (l *Lexer) Line() int {
	return l.line
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return nil
		case r == '\n':
			l.next()
			l.line++
		case unicode.IsSpace(r):
			l.next()
		case isDigit(r):
			return numberState
		case r == '"':
			return stringState
		case r == '_' || unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for isDigit(l.peek()) {
		num.WriteRune(l.next())
	}

	// A dot only belongs to the number when a digit follows it
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		num.WriteRune(l.next())
		for isDigit(l.peek()) {
			num.WriteRune(l.next())
		}
	}

	// Out of range digit runs keep the infinity ParseFloat returns
	v, err := strconv.ParseFloat(num.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.errorf(LexErrInvalidNumber, num.String())
	}

	return l.emit(Token{
		Typ:    TokenNumber,
		Lexeme: num.String(),
		Number: v,
	})
}

func stringState(l *Lexer) stateFunc {
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for r := l.next(); r != '"'; r = l.next() {
		if r == EOF {
			return l.errorf(LexErrUnterminatedString, `"`+str.String())
		}

		if r == '\n' {
			l.line++
		}

		str.WriteRune(r)
	}

	return l.emitValue(TokenString, str.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	id.WriteRune(l.next())
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if kw, ok := keywordTable[id.String()]; ok {
		return l.emit(Token{
			Typ:     TokenKeyword,
			Lexeme:  id.String(),
			Keyword: kw,
		})
	}

	return l.emitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == '!' || r == '=' || r == '<' || r == '>' || r == '/' { // Some operators can be two runes
		op := string(r) + string(l.peek())
		if op == "//" {
			return lineCommentState
		}

		if tok, ok := operatorTable[op]; ok {
			l.next()
			return l.emitValue(tok, op)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emitValue(tok, string(r))
	}

	return l.errorf(LexErrUnexpectedCharacter, string(r))
}

// lineCommentState discards everything up to the end of the line. The
// newline itself is left for defaultState so the line counter sees it.
func lineCommentState(l *Lexer) stateFunc {
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		l.next()
	}

	return defaultState
}

func (l *Lexer) errorf(err LexError, lexeme string) stateFunc {
	return l.emit(Token{
		Typ:    TokenError,
		Lexeme: lexeme,
		Err:    err,
	})
}

func (l *Lexer) emitValue(t TokenType, val string) stateFunc {
	return l.emit(Token{
		Typ:    t,
		Lexeme: val,
	})
}

func (l *Lexer) emit(tok Token) stateFunc {
	tok.Line = l.line
	l.pending = &tok

	return defaultState
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(i int) rune {
	for len(l.ahead) <= i {
		r := l.read()
		if r == EOF {
			return EOF
		}

		l.ahead = append(l.ahead, r)
	}

	return l.ahead[i]
}

func (l *Lexer) next() rune {
	if len(l.ahead) > 0 {
		r := l.ahead[0]
		l.ahead = l.ahead[1:]

		return r
	}

	return l.read()
}

func (l *Lexer) read() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.err = err
		}

		return EOF
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
