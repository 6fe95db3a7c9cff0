package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aris/internal/expr"
)

func TestAddPremiseAndStep(t *testing.T) {
	p := New()
	root := p.Root()
	prem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)

	just, err := p.AddStep(root, Justification{
		Expr: expr.Var{"p"},
		Rule: "Reiteration",
		Deps: []LineRef{PremiseRef(prem)},
	})
	require.NoError(t, err)

	j, ok := p.Justification(just)
	require.True(t, ok)
	assert.Equal(t, "Reiteration", j.Rule)
	assert.Len(t, j.Deps, 1)
}

func TestAddStepDropsSelfCitingSubproof(t *testing.T) {
	p := New()
	root := p.Root()
	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	_, err = p.AddPremise(sub, expr.Var{"p"})
	require.NoError(t, err)

	// A step inside sub citing sub itself as an sdep must be silently
	// dropped, not rejected.
	just, err := p.AddStep(sub, Justification{
		Expr:  expr.Var{"p"},
		Rule:  "ImpIntro",
		SDeps: []SubproofID{sub},
	})
	require.NoError(t, err)
	j, _ := p.Justification(just)
	assert.Empty(t, j.SDeps)
}

func TestRemoveLineScrubsDangling(t *testing.T) {
	p := New()
	root := p.Root()
	prem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)
	require.NoError(t, p.RemoveLine(PremiseRef(prem)))
	_, ok := p.Premise(prem)
	assert.False(t, ok)
	assert.Len(t, p.Lines(root), 0)
}

func TestRemoveLineScrubsDanglingDepFromOtherSteps(t *testing.T) {
	p := New()
	root := p.Root()
	prem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)
	just, err := p.AddStep(root, Justification{
		Expr: expr.Var{"p"},
		Rule: "Reiteration",
		Deps: []LineRef{PremiseRef(prem)},
	})
	require.NoError(t, err)

	require.NoError(t, p.RemoveLine(PremiseRef(prem)))

	j, ok := p.Justification(just)
	require.True(t, ok)
	assert.Empty(t, j.Deps)
}

func TestRemoveSubproofScrubsDanglingSDep(t *testing.T) {
	p := New()
	root := p.Root()
	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	just, err := p.AddStep(root, Justification{
		Expr:  expr.Impl{Antecedent: expr.Var{"p"}, Consequent: expr.Var{"p"}},
		Rule:  "ImpIntro",
		SDeps: []SubproofID{sub},
	})
	require.NoError(t, err)

	require.NoError(t, p.RemoveSubproof(sub))

	j, ok := p.Justification(just)
	require.True(t, ok)
	assert.Empty(t, j.SDeps)
}

func TestAddPremiseRelativeInsertsBeforeAndAfterAnchor(t *testing.T) {
	p := New()
	root := p.Root()
	first, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)

	before, err := p.AddPremiseRelative(PremiseAnchor(first), true, expr.Var{"before"})
	require.NoError(t, err)
	after, err := p.AddPremiseRelative(PremiseAnchor(first), false, expr.Var{"after"})
	require.NoError(t, err)

	lines := p.Lines(root)
	require.Len(t, lines, 3)
	assert.Equal(t, before, *lines[0].PremiseID)
	assert.Equal(t, first, *lines[1].PremiseID)
	assert.Equal(t, after, *lines[2].PremiseID)
}

func TestAddStepRelativeInsertsWithinAnchorsOwnSubproof(t *testing.T) {
	p := New()
	root := p.Root()
	prem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)
	last, err := p.AddStep(root, Justification{Expr: expr.Var{"p"}, Rule: "Reiteration", Deps: []LineRef{PremiseRef(prem)}})
	require.NoError(t, err)

	inserted, err := p.AddStepRelative(JustAnchor(last), true, Justification{Expr: expr.Var{"p"}, Rule: "Reiteration", Deps: []LineRef{PremiseRef(prem)}})
	require.NoError(t, err)

	lines := p.Lines(root)
	require.Len(t, lines, 3)
	assert.Equal(t, inserted, *lines[1].JustID)
	assert.Equal(t, last, *lines[2].JustID)
}

func TestAddSubproofRelativeInsertsAtAnchoredPosition(t *testing.T) {
	p := New()
	root := p.Root()
	prem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)
	step, err := p.AddStep(root, Justification{Expr: expr.Var{"p"}, Rule: "Reiteration", Deps: []LineRef{PremiseRef(prem)}})
	require.NoError(t, err)

	sub, err := p.AddSubproofRelative(JustAnchor(step), false)
	require.NoError(t, err)

	lines := p.Lines(root)
	require.Len(t, lines, 3)
	assert.Equal(t, step, *lines[1].JustID)
	assert.Equal(t, sub, *lines[2].SubproofID)
}

func TestAddSubproofRelativeRejectsPremiseAnchor(t *testing.T) {
	p := New()
	root := p.Root()
	prem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)

	_, err = p.AddSubproofRelative(PremiseAnchor(prem), false)
	assert.Error(t, err)
}

func TestAddPremiseRelativeRejectsUnknownAnchor(t *testing.T) {
	p := New()
	bogus := PremiseID(999)
	_, err := p.AddPremiseRelative(PremiseAnchor(bogus), true, expr.Var{"p"})
	assert.Error(t, err)
}

func TestWithMutPremiseRewritesInPlace(t *testing.T) {
	p := New()
	root := p.Root()
	prem, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)

	require.NoError(t, p.WithMutPremise(prem, func(e *expr.Expr) error {
		*e = expr.Var{"q"}
		return nil
	}))

	got, ok := p.Premise(prem)
	require.True(t, ok)
	assert.Equal(t, expr.Var{"q"}, got)
}

func TestWithMutStepRefiltersSelfCitingSubproof(t *testing.T) {
	p := New()
	root := p.Root()
	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	_, err = p.AddPremise(sub, expr.Var{"p"})
	require.NoError(t, err)
	just, err := p.AddStep(sub, Justification{Expr: expr.Var{"p"}, Rule: "Reiteration"})
	require.NoError(t, err)

	require.NoError(t, p.WithMutStep(just, func(j *Justification) error {
		j.SDeps = []SubproofID{sub}
		return nil
	}))

	j, _ := p.Justification(just)
	assert.Empty(t, j.SDeps)
}

func TestWithMutSubproofMutatesOwnedStorage(t *testing.T) {
	p := New()
	root := p.Root()
	sub, err := p.AddSubproof(root)
	require.NoError(t, err)

	require.NoError(t, p.WithMutSubproof(sub, func(sp *Subproof) error {
		sp.Lines = append(sp.Lines, Line{})
		return nil
	}))

	sp, ok := p.Subproof(sub)
	require.True(t, ok)
	assert.Len(t, sp.Lines, 1)
}

func TestTransitiveDependenciesWalksSubproofs(t *testing.T) {
	p := New()
	root := p.Root()
	premP, err := p.AddPremise(root, expr.Var{"p"})
	require.NoError(t, err)

	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	assumeQ, err := p.AddPremise(sub, expr.Var{"q"})
	require.NoError(t, err)
	stepInSub, err := p.AddStep(sub, Justification{
		Expr: expr.Var{"q"},
		Rule: "Reiteration",
		Deps: []LineRef{PremiseRef(assumeQ)},
	})
	require.NoError(t, err)
	_ = stepInSub

	concl, err := p.AddStep(root, Justification{
		Expr:  expr.Impl{Antecedent: expr.Var{"q"}, Consequent: expr.Var{"q"}},
		Rule:  "ImpIntro",
		Deps:  []LineRef{PremiseRef(premP)},
		SDeps: []SubproofID{sub},
	})
	require.NoError(t, err)

	prems, justs := p.TransitiveDependencies(concl)
	_, hasP := prems[premP]
	assert.True(t, hasP)
	_, hasStep := justs[stepInSub]
	assert.True(t, hasStep)
}

func TestContainedJustificationsRecursive(t *testing.T) {
	p := New()
	root := p.Root()
	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	_, err = p.AddPremise(sub, expr.Var{"p"})
	require.NoError(t, err)
	j1, err := p.AddStep(sub, Justification{Expr: expr.Var{"p"}, Rule: "Reiteration"})
	require.NoError(t, err)

	all := p.ContainedJustifications(root, true)
	assert.Contains(t, all, j1)

	direct := p.ContainedJustifications(root, false)
	assert.NotContains(t, direct, j1)
}
