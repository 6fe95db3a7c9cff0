package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aris/internal/expr"
	"aris/internal/proof"
)

func TestPossibleDepsWithinSameSubproof(t *testing.T) {
	p := proof.New()
	root := p.Root()
	prem1, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)
	step1, err := p.AddStep(root, proof.Justification{Expr: expr.Var{"p"}, Rule: "Reiteration", Deps: []proof.LineRef{proof.PremiseRef(prem1)}})
	require.NoError(t, err)

	lines, _ := PossibleDeps(p, proof.JustRef(step1))
	assert.True(t, CanReferenceDep(p, proof.JustRef(step1), proof.PremiseRef(prem1)))
	assert.Len(t, lines, 1)
}

func TestPossibleDepsCannotSeeIntoSiblingSubproof(t *testing.T) {
	p := proof.New()
	root := p.Root()
	sub1, err := p.AddSubproof(root)
	require.NoError(t, err)
	hidden, err := p.AddPremise(sub1, expr.Var{"x"})
	require.NoError(t, err)

	sub2, err := p.AddSubproof(root)
	require.NoError(t, err)
	visibleInSub2, err := p.AddPremise(sub2, expr.Var{"y"})
	require.NoError(t, err)

	assert.False(t, CanReferenceDep(p, proof.PremiseRef(visibleInSub2), proof.PremiseRef(hidden)))
}

func TestPossibleDepsCanCiteEnclosingLinesAndCompletedSubproof(t *testing.T) {
	p := proof.New()
	root := p.Root()
	outerPrem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)

	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	_, err = p.AddPremise(sub, expr.Var{"q"})
	require.NoError(t, err)

	afterStep, err := p.AddStep(root, proof.Justification{
		Expr: expr.Var{"p"},
		Rule: "Reiteration",
		Deps: []proof.LineRef{proof.PremiseRef(outerPrem)},
	})
	require.NoError(t, err)

	assert.True(t, CanReferenceDep(p, proof.JustRef(afterStep), proof.PremiseRef(outerPrem)))
	assert.True(t, CanReferenceSubproof(p, proof.JustRef(afterStep), sub))
}

func TestCannotReferenceLaterLine(t *testing.T) {
	p := proof.New()
	root := p.Root()
	prem1, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)
	prem2, err := p.AddPremise(root, expr.Var{"q"})
	require.NoError(t, err)

	assert.False(t, CanReferenceDep(p, proof.PremiseRef(prem1), proof.PremiseRef(prem2)))
}
