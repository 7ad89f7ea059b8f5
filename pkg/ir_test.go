package rox

import (
	"errors"
	"strings"
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lower(t *testing.T, source string) string {
	t.Helper()

	mod, err := Lower(mustParse(t, source))
	require.NoError(t, err, source)

	return mod.String()
}

func TestLowerInstructions(t *testing.T) {
	cases := []struct {
		data   string
		expect []string
		absent []string
	}{
		{"1 + 2", []string{"fadd double"}, nil},
		{"1 - 2", []string{"fsub double"}, nil},
		{"1 * 2", []string{"fmul double"}, nil},
		{"1 / 0", []string{"fdiv double"}, nil},
		{"-1", []string{"fneg double"}, nil},
		{"1 > 2", []string{"fcmp ogt double", "select i1"}, nil},
		{"1 >= 2", []string{"fcmp oge double"}, nil},
		{"1 < 2", []string{"fcmp olt double"}, nil},
		{"1 <= 2", []string{"fcmp ole double"}, nil},
		{"1 == 2", []string{"fcmp oeq double"}, nil},
		{"1 != 2", []string{"fcmp une double"}, nil},
		{"!true", []string{"xor i1 true, true"}, nil},
		{"true == false", []string{"icmp eq i1"}, nil},
		{"true != false", []string{"icmp ne i1"}, nil},
		{`"a" == "a"`, []string{"select i1 true"}, []string{"fcmp", "icmp"}},
		{`1 == "1"`, []string{"select i1 false"}, []string{"fcmp", "icmp"}},
		{`1 != "1"`, []string{"select i1 true"}, []string{"fcmp", "icmp"}},
		{"!nil", []string{"select i1 true"}, []string{"xor"}},
		{"!0", []string{"select i1 false"}, []string{"xor"}},
		{`"hello"`, []string{`c"hello\00"`}, []string{"select"}},
		{"nil", []string{`c"nil\00"`}, []string{"select"}},
		{"(2 * (3 + 4))", []string{"fadd double", "fmul double"}, nil},
	}

	for _, c := range cases {
		got := lower(t, c.data)

		assert.Contains(t, got, "define i32 @main()", c.data)
		assert.Contains(t, got, "@printf(", c.data)
		assert.Contains(t, got, "ret i32 0", c.data)

		for _, e := range c.expect {
			assert.Contains(t, got, e, c.data)
		}

		for _, a := range c.absent {
			assert.NotContains(t, got, a, c.data)
		}
	}
}

func TestLowerFormats(t *testing.T) {
	assert.Contains(t, lower(t, "1 + 1"), `c"%g\0A\00"`)
	assert.Contains(t, lower(t, "1 < 1"), `c"%s\0A\00"`)

	nan := lower(t, "0 / 0")
	assert.Contains(t, nan, "fcmp uno double")
	assert.Contains(t, nan, `c"NaN\0A\00"`)
	assert.Contains(t, nan, `c"%g\0A\00"`)
}

func TestLowerTypeErrors(t *testing.T) {
	_, err := Lower(mustParse(t, "1 + nil"))

	var typeErr *TypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, NumericOperandExpected, typeErr.Kind)
	assert.Equal(t, LiteralNil, typeErr.Type)
}

func TestBuilderStringsAreShared(t *testing.T) {
	b := NewLLVMIRBuilder()

	s1 := b.cString("true")
	s2 := b.cString("true")
	s3 := b.cString("false")

	assert.Same(t, s1, s2)
	assert.NotSame(t, s1, s3)
	assert.Len(t, b.mod.Globals, 2)

	zero := constant.NewInt(types.I32, 0)
	expect := constant.NewGetElementPtr(types.NewArray(5, types.I8), b.mod.Globals[0], zero, zero)
	assert.Equal(t, expect.String(), s1.String())
}

func TestBuiltinPrintfDeclaration(t *testing.T) {
	b := NewLLVMIRBuilder()

	printf, ok := b.builtins["printf"]
	require.True(t, ok)
	assert.Equal(t, "printf", printf.Name())
	assert.True(t, printf.Sig.Variadic)
	assert.Empty(t, printf.Blocks)
	assert.True(t, strings.HasPrefix(printf.LLString(), "declare i32 @printf("))
}
