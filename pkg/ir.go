package rox

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// LLVMIRBuilder lowers a checked expression into an LLVM module whose main
// function computes the expression and prints its value.
//
// Numbers are doubles and booleans are i1. Strings and nil never take part
// in runtime operations, so sub-expressions of those types are folded.
type LLVMIRBuilder struct {
	mod      *ir.Module
	block    *ir.Block
	types    *TypeTable
	builtins map[string]*ir.Func
	strings  map[string]constant.Constant
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:      ir.NewModule(),
		builtins: make(map[string]*ir.Func),
		strings:  make(map[string]constant.Constant),
	}

	defineBuiltins(builder)
	return builder
}

// Lower type-checks expr and builds its module.
func Lower(expr Expr) (*ir.Module, error) {
	return NewLLVMIRBuilder().Build(expr)
}

func (b *LLVMIRBuilder) Build(expr Expr) (*ir.Module, error) {
	table, err := NewTypeChecker().Annotate(expr)
	if err != nil {
		return nil, err
	}

	b.types = table

	main := b.mod.NewFunc("main", types.I32)
	b.block = main.NewBlock("entry")

	b.printResult(expr)
	b.block.NewRet(constant.NewInt(types.I32, 0))

	return b.mod, nil
}

func (b *LLVMIRBuilder) printResult(expr Expr) {
	switch b.typeOf(expr) {
	case LiteralNumber:
		// printf spells NaN as nan, the evaluator as NaN
		v := b.load(expr)
		isNaN := b.block.NewFCmp(enum.FPredUNO, v, v)
		format := b.block.NewSelect(isNaN, b.cString("NaN\n"), b.cString("%g\n"))
		b.printValue(format, v)
	case LiteralBoolean:
		text := b.block.NewSelect(b.load(expr), b.cString("true"), b.cString("false"))
		b.print("%s\n", text)
	case LiteralNil, LiteralString:
		b.print("%s\n", b.cString(b.fold(expr).String()))
	}
}

func (b *LLVMIRBuilder) typeOf(expr Expr) LiteralType {
	typ, ok := b.types.Get(expr)
	if !ok {
		panic(fmt.Sprintf("unreachable: unchecked expression %s", expr))
	}

	return typ
}

// fold evaluates a sub-expression at compile time. Only used on checked
// trees, which cannot fail.
func (b *LLVMIRBuilder) fold(expr Expr) Literal {
	l, err := EvaluateLiteral(expr)
	if err != nil {
		panic("unreachable: " + err.Error())
	}

	return l
}

// load returns the value of a number or boolean expression.
func (b *LLVMIRBuilder) load(expr Expr) value.Value {
	switch e := expr.(type) {
	case *LiteralExpr:
		return b.loadLiteral(e.Value)
	case *GroupingExpr:
		return b.load(e.Inner)
	case *UnaryExpr:
		return b.unaryExpression(e)
	case *ArithmeticExpr:
		return b.arithmeticExpression(e.BinaryNode)
	case *CompareExpr:
		return b.compareExpression(e.BinaryNode)
	case *EqualityExpr:
		return b.equalityExpression(e)
	default:
		panic(fmt.Sprintf("unreachable: unknown expression %T", expr))
	}
}

func (b *LLVMIRBuilder) loadLiteral(l Literal) value.Value {
	switch l.Typ {
	case LiteralNumber:
		return constant.NewFloat(types.Double, l.Number)
	case LiteralBoolean:
		return constant.NewBool(l.Boolean)
	default:
		panic("unreachable: no runtime representation for " + l.Typ.String())
	}
}

func (b *LLVMIRBuilder) unaryExpression(expr *UnaryExpr) value.Value {
	switch expr.Operation {
	case UnaryNegative:
		return b.block.NewFNeg(b.load(expr.Operand))
	case UnaryNot:
		switch b.typeOf(expr.Operand) {
		case LiteralBoolean:
			return b.block.NewXor(b.load(expr.Operand), constant.NewBool(true))
		case LiteralNil:
			return constant.NewBool(true)
		default:
			// Numbers and strings are always truthy
			return constant.NewBool(false)
		}
	default:
		panic("unreachable: unary operation " + expr.Operation.String())
	}
}

func (b *LLVMIRBuilder) arithmeticExpression(n BinaryNode) value.Value {
	v1 := b.load(n.Left)
	v2 := b.load(n.Right)

	switch n.Operation {
	case BinaryAddition:
		return b.block.NewFAdd(v1, v2)
	case BinarySubtraction:
		return b.block.NewFSub(v1, v2)
	case BinaryMultiplication:
		return b.block.NewFMul(v1, v2)
	case BinaryDivision:
		return b.block.NewFDiv(v1, v2)
	default:
		panic("unreachable: arithmetic operation " + n.Operation.String())
	}
}

var fpredTable = map[BinaryOp]enum.FPred{
	BinaryGreater:      enum.FPredOGT,
	BinaryGreaterEqual: enum.FPredOGE,
	BinaryLess:         enum.FPredOLT,
	BinaryLessEqual:    enum.FPredOLE,
	BinaryEqual:        enum.FPredOEQ,
	BinaryNotEqual:     enum.FPredUNE,
}

func (b *LLVMIRBuilder) compareExpression(n BinaryNode) value.Value {
	v1 := b.load(n.Left)
	v2 := b.load(n.Right)

	return b.block.NewFCmp(fpredTable[n.Operation], v1, v2)
}

func (b *LLVMIRBuilder) equalityExpression(expr *EqualityExpr) value.Value {
	t1 := b.typeOf(expr.Left)
	t2 := b.typeOf(expr.Right)

	if t1 != t2 {
		// Values of different types are never equal
		return constant.NewBool(expr.Operation == BinaryNotEqual)
	}

	switch t1 {
	case LiteralNumber:
		return b.compareExpression(expr.BinaryNode)
	case LiteralBoolean:
		pred := enum.IPredEQ
		if expr.Operation == BinaryNotEqual {
			pred = enum.IPredNE
		}

		return b.block.NewICmp(pred, b.load(expr.Left), b.load(expr.Right))
	default:
		return constant.NewBool(b.fold(expr).Boolean)
	}
}
