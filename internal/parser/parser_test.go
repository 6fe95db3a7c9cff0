package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aris/internal/expr"
)

func TestParseVariable(t *testing.T) {
	e, err := Parse("p")
	require.NoError(t, err)
	assert.True(t, expr.Equal(e, expr.Var{Name: "p"}))
}

func TestParsePrecedenceAndBeforeOr(t *testing.T) {
	e, err := Parse("a | b & c")
	require.NoError(t, err)
	want := expr.Assoc{Op: expr.Or, Operands: []expr.Expr{
		expr.Var{Name: "a"},
		expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{Name: "b"}, expr.Var{Name: "c"}}},
	}}
	assert.True(t, expr.Equal(e, want))
}

func TestParseImplicationIsRightAssociative(t *testing.T) {
	e, err := Parse("p -> q -> r")
	require.NoError(t, err)
	want := expr.Impl{
		Antecedent: expr.Var{Name: "p"},
		Consequent: expr.Impl{Antecedent: expr.Var{Name: "q"}, Consequent: expr.Var{Name: "r"}},
	}
	assert.True(t, expr.Equal(e, want))
}

func TestParseUnicodeOperators(t *testing.T) {
	e, err := Parse("a ∧ ¬b")
	require.NoError(t, err)
	want := expr.Assoc{Op: expr.And, Operands: []expr.Expr{
		expr.Var{Name: "a"}, expr.Not{Body: expr.Var{Name: "b"}},
	}}
	assert.True(t, expr.Equal(e, want))
}

func TestParseDoubleNegation(t *testing.T) {
	e, err := Parse("!!p")
	require.NoError(t, err)
	want := expr.Not{Body: expr.Not{Body: expr.Var{Name: "p"}}}
	assert.True(t, expr.Equal(e, want))
}

func TestParsePredicateApplication(t *testing.T) {
	e, err := Parse("P(x, y)")
	require.NoError(t, err)
	want := expr.Apply{Head: expr.Var{Name: "P"}, Args: []expr.Expr{expr.Var{Name: "x"}, expr.Var{Name: "y"}}}
	assert.True(t, expr.Equal(e, want))
}

func TestParseForallQuantifier(t *testing.T) {
	e, err := Parse("forall x, P(x)")
	require.NoError(t, err)
	want := expr.Quant{
		Kind: expr.Forall, Name: "x",
		Body: expr.Apply{Head: expr.Var{Name: "P"}, Args: []expr.Expr{expr.Var{Name: "x"}}},
	}
	assert.True(t, expr.Equal(e, want))
}

func TestParseExistsQuantifier(t *testing.T) {
	e, err := Parse("exists x, P(x) -> Q(x)")
	require.NoError(t, err)
	want := expr.Quant{
		Kind: expr.Exists, Name: "x",
		Body: expr.Impl{
			Antecedent: expr.Apply{Head: expr.Var{Name: "P"}, Args: []expr.Expr{expr.Var{Name: "x"}}},
			Consequent: expr.Apply{Head: expr.Var{Name: "Q"}, Args: []expr.Expr{expr.Var{Name: "x"}}},
		},
	}
	assert.True(t, expr.Equal(e, want))
}

func TestParseBiconditionalChain(t *testing.T) {
	e, err := Parse("p <-> q <-> r")
	require.NoError(t, err)
	want := expr.Assoc{Op: expr.Bicon, Operands: []expr.Expr{
		expr.Var{Name: "p"}, expr.Var{Name: "q"}, expr.Var{Name: "r"},
	}}
	assert.True(t, expr.Equal(e, want))
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	e, err := Parse("(a | b) & c")
	require.NoError(t, err)
	want := expr.Assoc{Op: expr.And, Operands: []expr.Expr{
		expr.Assoc{Op: expr.Or, Operands: []expr.Expr{expr.Var{Name: "a"}, expr.Var{Name: "b"}}},
		expr.Var{Name: "c"},
	}}
	assert.True(t, expr.Equal(e, want))
}

func TestParseBottomAndTopLiterals(t *testing.T) {
	e, err := Parse("F -> T")
	require.NoError(t, err)
	want := expr.Impl{Antecedent: expr.Bottom{}, Consequent: expr.Top{}}
	assert.True(t, expr.Equal(e, want))
}

func TestParseInvalidSyntaxErrors(t *testing.T) {
	_, err := Parse("p &&")
	assert.Error(t, err)
}
