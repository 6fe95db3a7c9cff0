package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aris/internal/expr"
)

func TestApplyCommutationRule(t *testing.T) {
	vars := MustParseVars("p", "q")
	rule := FromPatterns("Commutation", [][2]expr.Expr{
		{
			expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{"p"}, expr.Var{"q"}}},
			expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{"q"}, expr.Var{"p"}}},
		},
	}, vars)

	target := expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{"a"}, expr.Var{"b"}}}
	result := Apply(rule, target)
	expected := expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{"b"}, expr.Var{"a"}}}
	assert.True(t, expr.Equal(result, expected))
}

func TestApplyDoubleNegation(t *testing.T) {
	vars := MustParseVars("p")
	rule := FromPatterns("DoubleNegation", [][2]expr.Expr{
		{
			expr.Not{Body: expr.Not{Body: expr.Var{"p"}}},
			expr.Var{"p"},
		},
	}, vars)

	target := expr.Not{Body: expr.Not{Body: expr.Var{"a"}}}
	result := Apply(rule, target)
	assert.True(t, expr.Equal(result, expr.Var{"a"}))
}

func TestApplyNoMatchReturnsUnchanged(t *testing.T) {
	vars := MustParseVars("p")
	rule := FromPatterns("DoubleNegation", [][2]expr.Expr{
		{expr.Not{Body: expr.Not{Body: expr.Var{"p"}}}, expr.Var{"p"}},
	}, vars)

	target := expr.Var{"a"}
	result := Apply(rule, target)
	assert.True(t, expr.Equal(result, target))
}

func TestPermuteOpsCoversAllOrderings(t *testing.T) {
	e := expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{"p"}, expr.Var{"q"}, expr.Var{"r"}}}
	perms := PermuteOps(e)
	require.Len(t, perms, 6)
}
