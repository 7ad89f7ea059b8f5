package rox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	cases := []struct {
		data   string
		expect LiteralType
	}{
		{"1", LiteralNumber},
		{`"s"`, LiteralString},
		{"nil", LiteralNil},
		{"true", LiteralBoolean},
		{"1 + 2 * 3", LiteralNumber},
		{"-(1)", LiteralNumber},
		{"1 < 2", LiteralBoolean},
		{`"a" == 1`, LiteralBoolean},
		{`!"a"`, LiteralBoolean},
		{"(nil)", LiteralNil},
	}

	for _, c := range cases {
		typ, err := Check(mustParse(t, c.data))
		require.NoError(t, err, c.data)
		assert.Equal(t, c.expect, typ, c.data)
	}
}

func TestCheckAgreesWithEvaluate(t *testing.T) {
	sources := []string{
		"2 + false",
		`-"x"`,
		"nil * 2",
		`"a" + "b"`,
		"1 < true",
		"-(!1)",
		"(1 + true) == 2",
		"1 + 2",
		`"a" == "a"`,
		"!nil",
	}

	for _, src := range sources {
		expr := mustParse(t, src)

		_, typeErr := Check(expr)
		_, runtimeErr := Evaluate(expr)

		if runtimeErr == nil {
			assert.NoError(t, typeErr, src)
			continue
		}

		var te *TypeError
		var re *RuntimeError
		require.True(t, errors.As(typeErr, &te), src)
		require.True(t, errors.As(runtimeErr, &re), src)
		assert.Equal(t, re.Kind, te.Kind, src)
		assert.Equal(t, re.Operand.Typ, te.Type, src)
	}
}

func TestTypeErrorMessage(t *testing.T) {
	_, err := Check(mustParse(t, "1 + nil"))
	assert.EqualError(t, err, "undefined operation: 'nil' has no operand '+' (operand must be a number in (1 + nil))")

	_, err = Check(Not(nil))
	assert.EqualError(t, err, "operand must be a literal")
}

func TestTypeTableAnnotation(t *testing.T) {
	inner := Lit(StringLiteral("a"))
	cmp := Equal(inner, num(1))
	root := Not(cmp)

	table, err := NewTypeChecker().Annotate(root)
	require.NoError(t, err)

	for expr, expect := range map[Expr]LiteralType{
		root:  LiteralBoolean,
		cmp:   LiteralBoolean,
		inner: LiteralString,
	} {
		typ, ok := table.Get(expr)
		require.True(t, ok, expr.String())
		assert.Equal(t, expect, typ, expr.String())
	}

	_, ok := table.Get(num(1))
	assert.False(t, ok, "lookups are by node identity")
}
