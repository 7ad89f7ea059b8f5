package rox

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/llir/llvm/ir"
	"go.uber.org/zap"
)

// Interpreter runs whole sources: one expression per source, nothing after
// it.
type Interpreter struct{}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (in *Interpreter) RunFile(filename string) (Literal, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Literal{}, err
	}
	defer f.Close()

	return in.Run(f)
}

func (in *Interpreter) RunString(source string) (Literal, error) {
	return in.Run(strings.NewReader(source))
}

func (in *Interpreter) Run(reader io.Reader) (Literal, error) {
	expr, err := in.Parse(reader)
	if err != nil {
		return Literal{}, err
	}

	l, err := EvaluateLiteral(expr)
	if err != nil {
		return Literal{}, err
	}

	zap.S().Debugw("evaluated", "type", l.Typ, "value", l)
	return l, nil
}

func (in *Interpreter) CompileFile(filename string) (*ir.Module, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return in.Compile(f)
}

func (in *Interpreter) Compile(reader io.Reader) (*ir.Module, error) {
	expr, err := in.Parse(reader)
	if err != nil {
		return nil, err
	}

	return Lower(expr)
}

// Parse reads exactly one expression from reader. A token left over after
// the expression is reported as an UnexpectedToken syntax error.
func (in *Interpreter) Parse(reader io.Reader) (Expr, error) {
	lexer := NewLexer(reader)
	p := NewParser(lexer)

	expr, err := p.Parse()
	if lexer.Err() != nil {
		return nil, fmt.Errorf("read source: %w", lexer.Err())
	}

	if err != nil {
		return nil, err
	}

	if tok, ok := p.Peek(); ok {
		return nil, &SyntaxError{Kind: UnexpectedToken, Token: &tok}
	}

	zap.S().Debugw("parsed", "ast", expr.String(), "lines", lexer.Line())
	return expr, nil
}
