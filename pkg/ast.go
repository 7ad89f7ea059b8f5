package rox

import (
	"fmt"
	"math"
	"strconv"
)

// Expr is a node of the syntax tree. The set of implementations is closed:
// ArithmeticExpr, CompareExpr, EqualityExpr, GroupingExpr, LiteralExpr and
// UnaryExpr. Nodes are never mutated after construction and each node owns
// its children exclusively.
//
// String renders the tree fully parenthesized, e.g. (2 + (2 * 2)).
type Expr interface {
	fmt.Stringer
	exprNode()
}

type BinaryOp uint8

const (
	BinaryMultiplication BinaryOp = iota
	BinaryDivision
	BinaryAddition
	BinarySubtraction
	BinaryGreater
	BinaryLess
	BinaryGreaterEqual
	BinaryLessEqual
	BinaryEqual
	BinaryNotEqual
)

var binaryOpSymbols = [...]string{
	BinaryMultiplication: "*",
	BinaryDivision:       "/",
	BinaryAddition:       "+",
	BinarySubtraction:    "-",
	BinaryGreater:        ">",
	BinaryLess:           "<",
	BinaryGreaterEqual:   ">=",
	BinaryLessEqual:      "<=",
	BinaryEqual:          "==",
	BinaryNotEqual:       "!=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}

	return fmt.Sprintf("BinaryOp(%d)", uint8(op))
}

type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota
	UnaryNegative
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "!"
	case UnaryNegative:
		return "-"
	default:
		return fmt.Sprintf("UnaryOp(%d)", uint8(op))
	}
}

type BinaryNode struct {
	Left      Expr
	Operation BinaryOp
	Right     Expr
}

func (n BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Operation, n.Right)
}

// ArithmeticExpr holds + - * /.
type ArithmeticExpr struct {
	BinaryNode
}

// CompareExpr holds > >= < <=.
type CompareExpr struct {
	BinaryNode
}

// EqualityExpr holds == and !=.
type EqualityExpr struct {
	BinaryNode
}

type GroupingExpr struct {
	Inner Expr
}

type UnaryExpr struct {
	Operation UnaryOp
	Operand   Expr
}

type LiteralExpr struct {
	Value Literal
}

func (*ArithmeticExpr) exprNode() {}
func (*CompareExpr) exprNode()    {}
func (*EqualityExpr) exprNode()   {}
func (*GroupingExpr) exprNode()   {}
func (*UnaryExpr) exprNode()      {}
func (*LiteralExpr) exprNode()    {}

func (e *GroupingExpr) String() string {
	return "(" + e.Inner.String() + ")"
}

func (e *UnaryExpr) String() string {
	return "(" + e.Operation.String() + e.Operand.String() + ")"
}

// String quotes string literals so the rendered tree can be scanned again.
func (e *LiteralExpr) String() string {
	if e.Value.Typ == LiteralString {
		return `"` + e.Value.Str + `"`
	}

	return e.Value.String()
}

type LiteralType uint8

const (
	LiteralBoolean LiteralType = iota
	LiteralNil
	LiteralNumber
	LiteralString
)

func (t LiteralType) String() string {
	switch t {
	case LiteralBoolean:
		return "boolean"
	case LiteralNil:
		return "nil"
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	default:
		return fmt.Sprintf("LiteralType(%d)", uint8(t))
	}
}

// Literal is a terminal value, and also the runtime value of the language.
// Only the field matching Typ is meaningful. Literals are comparable with ==,
// which is the equality of the language: literals of different types are
// never equal.
type Literal struct {
	Typ     LiteralType
	Boolean bool
	Number  float64
	Str     string
}

var NilLiteral = Literal{Typ: LiteralNil}

func BoolLiteral(b bool) Literal {
	return Literal{Typ: LiteralBoolean, Boolean: b}
}

func NumberLiteral(n float64) Literal {
	return Literal{Typ: LiteralNumber, Number: n}
}

func StringLiteral(s string) Literal {
	return Literal{Typ: LiteralString, Str: s}
}

func (l Literal) String() string {
	switch l.Typ {
	case LiteralBoolean:
		return strconv.FormatBool(l.Boolean)
	case LiteralNil:
		return "nil"
	case LiteralNumber:
		return formatNumber(l.Number)
	case LiteralString:
		return l.Str
	default:
		panic("unreachable: literal type " + l.Typ.String())
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Truthy reports the truth value of l: nil and false are false, every other
// value (including 0 and "") is true.
func Truthy(l Literal) bool {
	switch l.Typ {
	case LiteralBoolean:
		return l.Boolean
	case LiteralNil:
		return false
	case LiteralNumber, LiteralString:
		return true
	default:
		panic("unreachable: literal type " + l.Typ.String())
	}
}

func Lit(l Literal) *LiteralExpr {
	return &LiteralExpr{Value: l}
}

func Group(inner Expr) *GroupingExpr {
	return &GroupingExpr{Inner: inner}
}

func Negate(operand Expr) *UnaryExpr {
	return &UnaryExpr{Operation: UnaryNegative, Operand: operand}
}

func Not(operand Expr) *UnaryExpr {
	return &UnaryExpr{Operation: UnaryNot, Operand: operand}
}

func arithmetic(left Expr, op BinaryOp, right Expr) *ArithmeticExpr {
	return &ArithmeticExpr{BinaryNode{Left: left, Operation: op, Right: right}}
}

func compare(left Expr, op BinaryOp, right Expr) *CompareExpr {
	return &CompareExpr{BinaryNode{Left: left, Operation: op, Right: right}}
}

func equality(left Expr, op BinaryOp, right Expr) *EqualityExpr {
	return &EqualityExpr{BinaryNode{Left: left, Operation: op, Right: right}}
}

func Add(left, right Expr) *ArithmeticExpr  { return arithmetic(left, BinaryAddition, right) }
func Sub(left, right Expr) *ArithmeticExpr  { return arithmetic(left, BinarySubtraction, right) }
func Mult(left, right Expr) *ArithmeticExpr { return arithmetic(left, BinaryMultiplication, right) }
func Div(left, right Expr) *ArithmeticExpr  { return arithmetic(left, BinaryDivision, right) }

func Greater(left, right Expr) *CompareExpr      { return compare(left, BinaryGreater, right) }
func GreaterEqual(left, right Expr) *CompareExpr { return compare(left, BinaryGreaterEqual, right) }
func Less(left, right Expr) *CompareExpr         { return compare(left, BinaryLess, right) }
func LessEqual(left, right Expr) *CompareExpr    { return compare(left, BinaryLessEqual, right) }

func Equal(left, right Expr) *EqualityExpr    { return equality(left, BinaryEqual, right) }
func NotEqual(left, right Expr) *EqualityExpr { return equality(left, BinaryNotEqual, right) }
