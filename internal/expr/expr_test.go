package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualAndAlphaEqual(t *testing.T) {
	a := Assoc{Op: And, Operands: []Expr{Var{"p"}, Var{"q"}}}
	b := Assoc{Op: And, Operands: []Expr{Var{"p"}, Var{"q"}}}
	assert.True(t, Equal(a, b))

	fa := Quant{Kind: Forall, Name: "x", Body: Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}}}}
	fb := Quant{Kind: Forall, Name: "y", Body: Apply{Head: Var{"P"}, Args: []Expr{Var{"y"}}}}
	assert.False(t, Equal(fa, fb))
	assert.True(t, AlphaEqual(fa, fb))
}

func TestFreeVars(t *testing.T) {
	e := Quant{Kind: Forall, Name: "x", Body: Impl{
		Antecedent: Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}}},
		Consequent: Apply{Head: Var{"Q"}, Args: []Expr{Var{"y"}}},
	}}
	fv := FreeVars(e)
	_, hasX := fv["x"]
	_, hasY := fv["y"]
	assert.False(t, hasX)
	assert.True(t, hasY)
}

func TestSubstAvoidsCapture(t *testing.T) {
	// forall y, P(x, y) ; substitute x := y should rename the bound y.
	e := Quant{Kind: Forall, Name: "y", Body: Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}, Var{"y"}}}}
	result := Subst("x", Var{"y"}, e)
	q, ok := result.(Quant)
	require.True(t, ok)
	assert.NotEqual(t, "y", q.Name)
	fv := FreeVars(result)
	_, hasFreeY := fv["y"]
	assert.True(t, hasFreeY, "substituted y must remain free, not captured by the renamed binder")
}

func TestUnifyBasic(t *testing.T) {
	subs, ok := Unify([]Constraint{
		{Var{"x"}, Apply{Head: Var{"f"}, Args: []Expr{Var{"a"}}}},
	})
	require.True(t, ok)
	assert.True(t, Equal(subs["x"], Apply{Head: Var{"f"}, Args: []Expr{Var{"a"}}}))
}

func TestUnifyOccursCheckFails(t *testing.T) {
	_, ok := Unify([]Constraint{
		{Var{"x"}, Apply{Head: Var{"f"}, Args: []Expr{Var{"x"}}}},
	})
	assert.False(t, ok)
}

func TestUnifyRigidMismatchFails(t *testing.T) {
	_, ok := Unify([]Constraint{
		{Bottom{}, Top{}},
	})
	assert.False(t, ok)
}

func TestUnifyQuantifierAlphaEquivalence(t *testing.T) {
	a := Quant{Kind: Forall, Name: "x", Body: Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}}}}
	b := Quant{Kind: Forall, Name: "y", Body: Apply{Head: Var{"P"}, Args: []Expr{Var{"y"}}}}
	_, ok := Unify([]Constraint{{a, b}})
	assert.True(t, ok)
}

func TestInferAritiesConsistent(t *testing.T) {
	e := Assoc{Op: And, Operands: []Expr{
		Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}}},
		Apply{Head: Var{"P"}, Args: []Expr{Var{"y"}}},
	}}
	arities, err := InferArities(e)
	require.NoError(t, err)
	assert.Equal(t, 1, arities["P"])
}

func TestInferAritiesConflict(t *testing.T) {
	e := Assoc{Op: And, Operands: []Expr{
		Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}}},
		Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}, Var{"y"}}},
	}}
	_, err := InferArities(e)
	assert.Error(t, err)
}

func TestEvalBasic(t *testing.T) {
	e := Assoc{Op: And, Operands: []Expr{Var{"p"}, Not{Body: Var{"q"}}}}
	v, err := Eval(e, map[string]bool{"p": true, "q": false})
	require.NoError(t, err)
	assert.True(t, v)
}

func TestEvalEquivAllEqual(t *testing.T) {
	e := Assoc{Op: Equiv, Operands: []Expr{Var{"p"}, Var{"q"}, Var{"r"}}}
	v, err := Eval(e, map[string]bool{"p": true, "q": true, "r": true})
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Eval(e, map[string]bool{"p": true, "q": false, "r": true})
	require.NoError(t, err)
	assert.False(t, v)
}

func TestSortCommutativeOps(t *testing.T) {
	a := Assoc{Op: And, Operands: []Expr{Var{"q"}, Var{"p"}}}
	b := Assoc{Op: And, Operands: []Expr{Var{"p"}, Var{"q"}}}
	assert.True(t, Equal(SortCommutativeOps(a), SortCommutativeOps(b)))
}

func TestCombineAssociativeOps(t *testing.T) {
	e := Assoc{Op: And, Operands: []Expr{Var{"a"}, Assoc{Op: And, Operands: []Expr{Var{"b"}, Var{"c"}}}}}
	flat := CombineAssociativeOps(e)
	a, ok := flat.(Assoc)
	require.True(t, ok)
	assert.Len(t, a.Operands, 3)
}

func TestNormalizeDeMorgans(t *testing.T) {
	e := Not{Body: Assoc{Op: And, Operands: []Expr{Var{"p"}, Var{"q"}}}}
	result := NormalizeDeMorgans(e)
	a, ok := result.(Assoc)
	require.True(t, ok)
	assert.Equal(t, Or, a.Op)
}

func TestNormalizeIdempotence(t *testing.T) {
	e := Assoc{Op: Or, Operands: []Expr{Var{"p"}, Var{"p"}, Var{"q"}}}
	result := NormalizeIdempotence(e)
	a, ok := result.(Assoc)
	require.True(t, ok)
	assert.Len(t, a.Operands, 2)
}

func TestNegateQuantifiers(t *testing.T) {
	e := Not{Body: Quant{Kind: Forall, Name: "x", Body: Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}}}}}
	result := NegateQuantifiers(e)
	q, ok := result.(Quant)
	require.True(t, ok)
	assert.Equal(t, Exists, q.Kind)
	_, ok = q.Body.(Not)
	assert.True(t, ok)
}

func TestNormalizeNullQuantifiers(t *testing.T) {
	e := Quant{Kind: Forall, Name: "x", Body: Var{"p"}}
	result := NormalizeNullQuantifiers(e)
	assert.True(t, Equal(result, Var{"p"}))
}

func TestReplacingBoundVarsAlphaEquivalence(t *testing.T) {
	a := Quant{Kind: Exists, Name: "x", Body: Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}}}}
	b := Quant{Kind: Exists, Name: "z", Body: Apply{Head: Var{"P"}, Args: []Expr{Var{"z"}}}}
	assert.True(t, Equal(ReplacingBoundVars(a), ReplacingBoundVars(b)))
}

func TestDisjunctsConjunctsRoundTrip(t *testing.T) {
	es := []Expr{Var{"p"}, Var{"q"}, Var{"r"}}
	or := FromDisjuncts(es)
	assert.ElementsMatch(t, es, Disjuncts(or))

	assert.Equal(t, Bottom{}, FromDisjuncts(nil))
	assert.Equal(t, Top{}, FromConjuncts(nil))
}

func TestIntoCNFDistributesOrOverAnd(t *testing.T) {
	// p ∨ (q ∧ r)  =>  (p ∨ q) ∧ (p ∨ r)
	e := Assoc{Op: Or, Operands: []Expr{Var{"p"}, Assoc{Op: And, Operands: []Expr{Var{"q"}, Var{"r"}}}}}
	cnf, ok := IntoCNF(e)
	assert.True(t, ok)
	assert.Len(t, cnf, 2)
	for _, clause := range cnf {
		assert.Len(t, clause, 2)
	}
}

func TestIntoCNFPushesNegationThroughImpl(t *testing.T) {
	e := Not{Body: Impl{Antecedent: Var{"p"}, Consequent: Var{"q"}}}
	cnf, ok := IntoCNF(e)
	assert.True(t, ok)
	assert.Len(t, cnf, 2)
}

func TestIntoCNFRejectsQuantifiers(t *testing.T) {
	e := Quant{Kind: Forall, Name: "x", Body: Var{"p"}}
	cnf, ok := IntoCNF(e)
	assert.False(t, ok)
	assert.Nil(t, cnf)
}

func TestIntoCNFRejectsApplication(t *testing.T) {
	e := Apply{Head: Var{"P"}, Args: []Expr{Var{"x"}}}
	cnf, ok := IntoCNF(e)
	assert.False(t, ok)
	assert.Nil(t, cnf)
}

func TestIntoCNFRejectsArithmetic(t *testing.T) {
	e := Assoc{Op: Plus, Operands: []Expr{Var{"x"}, Var{"y"}}}
	cnf, ok := IntoCNF(e)
	assert.False(t, ok)
	assert.Nil(t, cnf)
}
