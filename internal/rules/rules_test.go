package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aris/internal/expr"
	"aris/internal/proof"
)

func TestVerifyLineReiteration(t *testing.T) {
	p := proof.New()
	root := p.Root()
	prem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)
	step, err := p.AddStep(root, proof.Justification{
		Expr: expr.Var{"p"}, Rule: Reiteration, Deps: []proof.LineRef{proof.PremiseRef(prem)},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(step)))
}

func TestVerifyLineReferencesLaterLineFails(t *testing.T) {
	p := proof.New()
	root := p.Root()

	// Add the citing step before the premise it (illegally) cites: since
	// lines are appended in insertion order, this step sits earlier in
	// root's line list than the premise it names as a dependency.
	forward, err := p.AddStep(root, proof.Justification{
		Expr: expr.Var{"q"}, Rule: Reiteration,
	})
	require.NoError(t, err)
	laterPrem, err := p.AddPremise(root, expr.Var{"q"})
	require.NoError(t, err)

	j, ok := p.Justification(forward)
	require.True(t, ok)
	j.Deps = []proof.LineRef{proof.PremiseRef(laterPrem)}
	p.ReplaceJustification(forward, j)

	err = VerifyLine(p, proof.JustRef(forward))
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "ReferencesLaterLine", rerr.Kind)
}

func TestAndIntroAndElim(t *testing.T) {
	p := proof.New()
	root := p.Root()
	premP, _ := p.AddPremise(root, expr.Var{"p"})
	premQ, _ := p.AddPremise(root, expr.Var{"q"})
	conj, err := p.AddStep(root, proof.Justification{
		Expr: expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{"p"}, expr.Var{"q"}}},
		Rule: AndIntro,
		Deps: []proof.LineRef{proof.PremiseRef(premP), proof.PremiseRef(premQ)},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(conj)))

	elim, err := p.AddStep(root, proof.Justification{
		Expr: expr.Var{"p"}, Rule: AndElim, Deps: []proof.LineRef{proof.JustRef(conj)},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(elim)))
}

func TestImpIntroImpElim(t *testing.T) {
	p := proof.New()
	root := p.Root()
	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	assumeP, err := p.AddPremise(sub, expr.Var{"p"})
	require.NoError(t, err)
	_ = assumeP

	impIntro, err := p.AddStep(root, proof.Justification{
		Expr:  expr.Impl{Antecedent: expr.Var{"p"}, Consequent: expr.Var{"p"}},
		Rule:  ImpIntro,
		SDeps: []proof.SubproofID{sub},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(impIntro)))

	premP, _ := p.AddPremise(root, expr.Var{"p"})
	mp, err := p.AddStep(root, proof.Justification{
		Expr: expr.Var{"p"},
		Rule: ImpElim,
		Deps: []proof.LineRef{proof.JustRef(impIntro), proof.PremiseRef(premP)},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(mp)))
}

func TestNotIntro(t *testing.T) {
	p := proof.New()
	root := p.Root()
	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	_, err = p.AddPremise(sub, expr.Var{"p"})
	require.NoError(t, err)
	_, err = p.AddStep(sub, proof.Justification{Expr: expr.Bottom{}, Rule: Reiteration})
	require.NoError(t, err)
	// This reiteration is not actually licensed (no dep), but VerifyLine's
	// rule-specific check for Reiteration requires exactly one dep; we
	// only exercise NotIntro's own shape check here by hand-building the
	// subproof's concluding line directly rather than re-verifying it.

	notP, err := p.AddStep(root, proof.Justification{
		Expr:  expr.Not{Body: expr.Var{"p"}},
		Rule:  NotIntro,
		SDeps: []proof.SubproofID{sub},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(notP)))
}

func TestModusTollens(t *testing.T) {
	p := proof.New()
	root := p.Root()
	impl, _ := p.AddPremise(root, expr.Impl{Antecedent: expr.Var{"p"}, Consequent: expr.Var{"q"}})
	notQ, _ := p.AddPremise(root, expr.Not{Body: expr.Var{"q"}})
	mt, err := p.AddStep(root, proof.Justification{
		Expr: expr.Not{Body: expr.Var{"p"}},
		Rule: ModusTollens,
		Deps: []proof.LineRef{proof.PremiseRef(impl), proof.PremiseRef(notQ)},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(mt)))
}

func TestDeMorganEquivalence(t *testing.T) {
	p := proof.New()
	root := p.Root()
	prem, _ := p.AddPremise(root, expr.Not{Body: expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{"a"}, expr.Var{"b"}}}})
	step, err := p.AddStep(root, proof.Justification{
		Expr: expr.Assoc{Op: expr.Or, Operands: []expr.Expr{expr.Not{Body: expr.Var{"a"}}, expr.Not{Body: expr.Var{"b"}}}},
		Rule: "DE_MORGAN",
		Deps: []proof.LineRef{proof.PremiseRef(prem)},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(step)))
}

func TestForallElim(t *testing.T) {
	p := proof.New()
	root := p.Root()
	forall, _ := p.AddPremise(root, expr.Quant{
		Kind: expr.Forall, Name: "x",
		Body: expr.Apply{Head: expr.Var{"P"}, Args: []expr.Expr{expr.Var{"x"}}},
	})
	inst, err := p.AddStep(root, proof.Justification{
		Expr: expr.Apply{Head: expr.Var{"P"}, Args: []expr.Expr{expr.Var{"a"}}},
		Rule: ForallElim,
		Deps: []proof.LineRef{proof.PremiseRef(forall)},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(inst)))
}

func TestTruthFunctionalConsequence(t *testing.T) {
	p := proof.New()
	root := p.Root()
	premP, _ := p.AddPremise(root, expr.Var{"p"})
	premImpl, _ := p.AddPremise(root, expr.Impl{Antecedent: expr.Var{"p"}, Consequent: expr.Var{"q"}})
	step, err := p.AddStep(root, proof.Justification{
		Expr: expr.Var{"q"},
		Rule: TruthFunctionalConsequence,
		Deps: []proof.LineRef{proof.PremiseRef(premP), proof.PremiseRef(premImpl)},
	})
	require.NoError(t, err)
	assert.NoError(t, VerifyLine(p, proof.JustRef(step)))
}

func TestTruthFunctionalConsequenceRejectsNonConsequence(t *testing.T) {
	p := proof.New()
	root := p.Root()
	premP, _ := p.AddPremise(root, expr.Var{"p"})
	step, err := p.AddStep(root, proof.Justification{
		Expr: expr.Var{"q"},
		Rule: TruthFunctionalConsequence,
		Deps: []proof.LineRef{proof.PremiseRef(premP)},
	})
	require.NoError(t, err)
	assert.Error(t, VerifyLine(p, proof.JustRef(step)))
}

func TestTruthFunctionalConsequenceReportsDomainErrorOnQuantifier(t *testing.T) {
	p := proof.New()
	root := p.Root()
	premForall, _ := p.AddPremise(root, expr.Quant{Kind: expr.Forall, Name: "x", Body: expr.Var{"p"}})
	step, err := p.AddStep(root, proof.Justification{
		Expr: expr.Var{"q"},
		Rule: TruthFunctionalConsequence,
		Deps: []proof.LineRef{proof.PremiseRef(premForall)},
	})
	require.NoError(t, err)
	verr := VerifyLine(p, proof.JustRef(step))
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "quantifier")
}
