package rox

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type goldenCase struct {
	Source string `yaml:"source"`
	AST    string `yaml:"ast"`
	Value  string `yaml:"value"`
	Error  string `yaml:"error"`
}

func TestGolden(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "golden.yaml"))
	require.NoError(t, err)

	var cases []goldenCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)

	in := NewInterpreter()
	for _, c := range cases {
		if c.AST != "" {
			expr, err := in.Parse(strings.NewReader(c.Source))
			require.NoError(t, err, c.Source)
			assert.Equal(t, c.AST, expr.String(), c.Source)
		}

		got, err := in.RunString(c.Source)
		if c.Error != "" {
			assert.EqualError(t, err, c.Error, c.Source)
			continue
		}

		require.NoError(t, err, c.Source)
		assert.Equal(t, c.Value, got.String(), c.Source)
	}
}

func TestInterpreterRejectsTrailingTokens(t *testing.T) {
	_, err := NewInterpreter().RunString("(1 + 2) )")

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, UnexpectedToken, syntaxErr.Kind)
	assert.Equal(t, ")", syntaxErr.Token.Lexeme)
}

func TestInterpreterRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.rox")
	require.NoError(t, os.WriteFile(path, []byte("// answer\n6 * 7\n"), 0o644))

	in := NewInterpreter()

	got, err := in.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, NumberLiteral(42), got)

	mod, err := in.CompileFile(path)
	require.NoError(t, err)
	assert.Contains(t, mod.String(), "fmul double")

	_, err = in.RunFile(filepath.Join(t.TempDir(), "missing.rox"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestInterpreterReadError(t *testing.T) {
	_, err := NewInterpreter().Run(failingReader{})
	assert.EqualError(t, err, "read source: disk on fire")
}

func TestInterpreterCompileErrors(t *testing.T) {
	in := NewInterpreter()

	_, err := in.Compile(strings.NewReader("1 +"))
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))

	_, err = in.Compile(strings.NewReader("-nil"))
	var typeErr *TypeError
	assert.True(t, errors.As(err, &typeErr))
}
