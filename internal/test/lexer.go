package test

import (
	"math/rand"
	"strings"
)

const validTokens = "(;);{;};,;.;-;+;*;/;!;!=;=;==;<;<=;>;>=;and;class;else;false;fun;for;if;nil;or;print;return;super;this;true;var;while;identifier;_under_score;\"this is a string\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"multi\nline\";\"\";123;3.1415;0.5;// comment\n;\n"

// Operands and operators that always combine into a valid expression.
var (
	operands  = []string{"1", "2.5", "42", "0", "true", "false", "nil", "\"str\""}
	numbers   = []string{"1", "2.5", "42", "7", "0.25"}
	operators = []string{"+", "-", "*", "/", ">", ">=", "<", "<=", "==", "!="}
)

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomExpression returns a syntactically valid expression with size
// binary operators. Operands are numbers only when numeric is set, so the
// result also evaluates without error as long as comparisons are kept out.
func GetRandomExpression(size int, numeric bool) string {
	pool := operands
	ops := operators
	if numeric {
		pool = numbers
		ops = operators[:4]
	}

	var b strings.Builder
	b.WriteString(pool[rand.Intn(len(pool))])
	for i := 0; i < size; i++ {
		b.WriteString(" " + ops[rand.Intn(len(ops))] + " ")

		switch rand.Intn(4) {
		case 0:
			b.WriteString("(" + pool[rand.Intn(len(pool))] + ")")
		case 1:
			b.WriteString("-" + numbers[rand.Intn(len(numbers))])
		default:
			b.WriteString(pool[rand.Intn(len(pool))])
		}
	}

	return b.String()
}
