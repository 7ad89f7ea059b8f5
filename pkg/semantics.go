package rox

import "fmt"

// TypeError is the static counterpart of RuntimeError. Expressions have no
// bindings, so every type is known before evaluation and Check fails exactly
// when Evaluate would, with the same kind.
type TypeError struct {
	Kind RuntimeErrorKind
	Op   fmt.Stringer
	Type LiteralType
	Expr Expr
}

func (e *TypeError) Error() string {
	if e.Op == nil {
		return e.Kind.String()
	}

	return fmt.Sprintf("undefined operation: '%s' has no operand '%s' (%s in %s)", e.Type, e.Op, e.Kind, e.Expr)
}

// TypeTable records the resolved type of every node of a checked tree.
type TypeTable struct {
	Entries map[Expr]LiteralType
}

func NewTypeTable() *TypeTable {
	return &TypeTable{
		Entries: make(map[Expr]LiteralType),
	}
}

func (t *TypeTable) Add(expr Expr, typ LiteralType) {
	t.Entries[expr] = typ
}

func (t *TypeTable) Get(expr Expr) (LiteralType, bool) {
	typ, ok := t.Entries[expr]
	return typ, ok
}

// Check resolves the type of expr.
func Check(expr Expr) (LiteralType, error) {
	return NewTypeChecker().resolve(expr)
}

type TypeChecker struct {
	Types *TypeTable
}

func NewTypeChecker() *TypeChecker {
	return &TypeChecker{
		Types: NewTypeTable(),
	}
}

// Annotate checks expr and returns the type of each of its nodes.
func (c *TypeChecker) Annotate(expr Expr) (*TypeTable, error) {
	if _, err := c.resolve(expr); err != nil {
		return nil, err
	}

	return c.Types, nil
}

func (c *TypeChecker) resolve(expr Expr) (LiteralType, error) {
	typ, err := c.resolveNode(expr)
	if err != nil {
		return 0, err
	}

	c.Types.Add(expr, typ)
	return typ, nil
}

func (c *TypeChecker) resolveNode(expr Expr) (LiteralType, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value.Typ, nil
	case *GroupingExpr:
		return c.resolve(e.Inner)
	case *UnaryExpr:
		t, err := c.resolve(e.Operand)
		if err != nil {
			return 0, err
		}

		if e.Operation == UnaryNot {
			return LiteralBoolean, nil
		}

		if t != LiteralNumber {
			return 0, &TypeError{Kind: NumericOperandExpected, Op: e.Operation, Type: t, Expr: e}
		}

		return LiteralNumber, nil
	case *ArithmeticExpr:
		return c.binary(e, e.BinaryNode, LiteralNumber)
	case *CompareExpr:
		return c.binary(e, e.BinaryNode, LiteralBoolean)
	case *EqualityExpr:
		return c.binary(e, e.BinaryNode, LiteralBoolean)
	case nil:
		return 0, &TypeError{Kind: LiteralOperandExpected}
	default:
		panic(fmt.Sprintf("unreachable: unknown expression %T", expr))
	}
}

func (c *TypeChecker) binary(expr Expr, n BinaryNode, result LiteralType) (LiteralType, error) {
	t1, err := c.resolve(n.Left)
	if err != nil {
		return 0, err
	}

	t2, err := c.resolve(n.Right)
	if err != nil {
		return 0, err
	}

	if n.Operation == BinaryEqual || n.Operation == BinaryNotEqual {
		return result, nil
	}

	for _, t := range []LiteralType{t1, t2} {
		if t != LiteralNumber {
			return 0, &TypeError{Kind: NumericOperandExpected, Op: n.Operation, Type: t, Expr: expr}
		}
	}

	return result, nil
}
