package rox

import "fmt"

type TokenType uint64

const (
	TokenError TokenType = iota

	// Single-character tokens
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenComma
	TokenDot
	TokenMinus
	TokenPlus
	TokenSemicolon
	TokenSlash
	TokenStar

	// One or two character tokens
	TokenBang
	TokenBangEqual
	TokenEqual
	TokenEqualEqual
	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual

	// Literals
	TokenIdentifier
	TokenString
	TokenNumber

	TokenKeyword
)

var tokenNames = [...]string{
	TokenError:            "Error",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
	TokenOpenCurly:        "OpenCurly",
	TokenCloseCurly:       "CloseCurly",
	TokenComma:            "Comma",
	TokenDot:              "Dot",
	TokenMinus:            "Minus",
	TokenPlus:             "Plus",
	TokenSemicolon:        "Semicolon",
	TokenSlash:            "Slash",
	TokenStar:             "Star",
	TokenBang:             "Bang",
	TokenBangEqual:        "BangEqual",
	TokenEqual:            "Equal",
	TokenEqualEqual:       "EqualEqual",
	TokenGreater:          "Greater",
	TokenGreaterEqual:     "GreaterEqual",
	TokenLess:             "Less",
	TokenLessEqual:        "LessEqual",
	TokenIdentifier:       "Identifier",
	TokenString:           "String",
	TokenNumber:           "Number",
	TokenKeyword:          "Keyword",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

type Keyword uint8

const (
	KeywordNone Keyword = iota
	KeywordAnd
	KeywordClass
	KeywordElse
	KeywordFalse
	KeywordFun
	KeywordFor
	KeywordIf
	KeywordNil
	KeywordOr
	KeywordPrint
	KeywordReturn
	KeywordSuper
	KeywordThis
	KeywordTrue
	KeywordVar
	KeywordWhile
)

var keywordTable = map[string]Keyword{
	"and":    KeywordAnd,
	"class":  KeywordClass,
	"else":   KeywordElse,
	"false":  KeywordFalse,
	"fun":    KeywordFun,
	"for":    KeywordFor,
	"if":     KeywordIf,
	"nil":    KeywordNil,
	"or":     KeywordOr,
	"print":  KeywordPrint,
	"return": KeywordReturn,
	"super":  KeywordSuper,
	"this":   KeywordThis,
	"true":   KeywordTrue,
	"var":    KeywordVar,
	"while":  KeywordWhile,
}

var keywordNames = [...]string{
	KeywordNone:   "none",
	KeywordAnd:    "and",
	KeywordClass:  "class",
	KeywordElse:   "else",
	KeywordFalse:  "false",
	KeywordFun:    "fun",
	KeywordFor:    "for",
	KeywordIf:     "if",
	KeywordNil:    "nil",
	KeywordOr:     "or",
	KeywordPrint:  "print",
	KeywordReturn: "return",
	KeywordSuper:  "super",
	KeywordThis:   "this",
	KeywordTrue:   "true",
	KeywordVar:    "var",
	KeywordWhile:  "while",
}

func (k Keyword) String() string {
	if int(k) < len(keywordNames) {
		return keywordNames[k]
	}

	return fmt.Sprintf("Keyword(%d)", uint8(k))
}

// LexError classifies an error token. The lexer never fails outright; it
// hands these to the parser inside TokenError tokens.
type LexError uint8

const (
	LexErrNone LexError = iota
	LexErrUnexpectedCharacter
	LexErrUnterminatedString
	LexErrInvalidNumber
)

func (e LexError) String() string {
	switch e {
	case LexErrUnexpectedCharacter:
		return "unexpected character"
	case LexErrUnterminatedString:
		return "unterminated string"
	case LexErrInvalidNumber:
		return "invalid number"
	default:
		return "no error"
	}
}

// Token is a classified lexeme. Number is only meaningful for TokenNumber,
// Keyword for TokenKeyword and Err for TokenError. The lexeme of a string
// token is its unquoted text.
type Token struct {
	Typ     TokenType
	Lexeme  string
	Line    int
	Number  float64
	Keyword Keyword
	Err     LexError
}

func (t Token) String() string {
	switch t.Typ {
	case TokenError:
		return fmt.Sprintf("%s %q", t.Err, t.Lexeme)
	case TokenKeyword:
		return fmt.Sprintf("Keyword(%s)", t.Keyword)
	default:
		return fmt.Sprintf("%s %q", t.Typ, t.Lexeme)
	}
}

func (t Token) isKeyword(k Keyword) bool {
	return t.Typ == TokenKeyword && t.Keyword == k
}

// startsStatement reports whether the token introduces a statement.
func (t Token) startsStatement() bool {
	if t.Typ != TokenKeyword {
		return false
	}

	switch t.Keyword {
	case KeywordClass, KeywordFun, KeywordVar, KeywordFor, KeywordIf, KeywordWhile, KeywordPrint, KeywordReturn:
		return true
	}

	return false
}
