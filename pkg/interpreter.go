package rox

import "fmt"

type RuntimeErrorKind uint8

const (
	// NumericOperandExpected means an operand reduced to a non-number literal.
	NumericOperandExpected RuntimeErrorKind = iota
	// LiteralOperandExpected means an operand did not reduce to a literal.
	LiteralOperandExpected
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case NumericOperandExpected:
		return "operand must be a number"
	case LiteralOperandExpected:
		return "operand must be a literal"
	default:
		return fmt.Sprintf("RuntimeErrorKind(%d)", uint8(k))
	}
}

type RuntimeError struct {
	Kind RuntimeErrorKind
	// Operand is the offending value for NumericOperandExpected.
	Operand *Literal
}

func (e *RuntimeError) Error() string {
	if e.Operand == nil {
		return e.Kind.String()
	}

	return fmt.Sprintf("%s, got %s '%s'", e.Kind, e.Operand.Typ, e.Operand)
}

// Evaluate reduces expr to a *LiteralExpr. The input tree is left untouched.
// Operands are evaluated left to right and the first error stops evaluation.
func Evaluate(expr Expr) (Expr, error) {
	l, err := evaluate(expr)
	if err != nil {
		return nil, err
	}

	return Lit(l), nil
}

// EvaluateLiteral is Evaluate returning the bare value.
func EvaluateLiteral(expr Expr) (Literal, error) {
	return evaluate(expr)
}

func evaluate(expr Expr) (Literal, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return evaluate(e.Inner)
	case *UnaryExpr:
		return unary(e)
	case *ArithmeticExpr:
		return binary(e.BinaryNode)
	case *CompareExpr:
		return binary(e.BinaryNode)
	case *EqualityExpr:
		return binary(e.BinaryNode)
	case nil:
		return Literal{}, &RuntimeError{Kind: LiteralOperandExpected}
	default:
		panic(fmt.Sprintf("unreachable: unknown expression %T", expr))
	}
}

func unary(e *UnaryExpr) (Literal, error) {
	operand, err := evaluate(e.Operand)
	if err != nil {
		return Literal{}, err
	}

	switch e.Operation {
	case UnaryNot:
		return BoolLiteral(!Truthy(operand)), nil
	case UnaryNegative:
		n, err := expectNumber(operand)
		if err != nil {
			return Literal{}, err
		}

		return NumberLiteral(-n), nil
	default:
		panic("unreachable: unary operation " + e.Operation.String())
	}
}

func binary(n BinaryNode) (Literal, error) {
	left, err := evaluate(n.Left)
	if err != nil {
		return Literal{}, err
	}

	right, err := evaluate(n.Right)
	if err != nil {
		return Literal{}, err
	}

	switch n.Operation {
	case BinaryEqual:
		return BoolLiteral(left == right), nil
	case BinaryNotEqual:
		return BoolLiteral(left != right), nil
	}

	a, err := expectNumber(left)
	if err != nil {
		return Literal{}, err
	}

	b, err := expectNumber(right)
	if err != nil {
		return Literal{}, err
	}

	switch n.Operation {
	case BinaryMultiplication:
		return NumberLiteral(a * b), nil
	case BinaryDivision:
		return NumberLiteral(a / b), nil
	case BinaryAddition:
		return NumberLiteral(a + b), nil
	case BinarySubtraction:
		return NumberLiteral(a - b), nil
	case BinaryGreater:
		return BoolLiteral(a > b), nil
	case BinaryLess:
		return BoolLiteral(a < b), nil
	case BinaryGreaterEqual:
		return BoolLiteral(a >= b), nil
	case BinaryLessEqual:
		return BoolLiteral(a <= b), nil
	default:
		panic("unreachable: binary operation " + n.Operation.String())
	}
}

func expectNumber(l Literal) (float64, error) {
	if l.Typ != LiteralNumber {
		return 0, &RuntimeError{Kind: NumericOperandExpected, Operand: &l}
	}

	return l.Number, nil
}
