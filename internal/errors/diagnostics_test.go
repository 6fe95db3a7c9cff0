package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aris/internal/expr"
	"aris/internal/proof"
)

func TestReferencesLaterLineDiagnostic(t *testing.T) {
	p := proof.New()
	root := p.Root()
	step, err := p.AddStep(root, proof.Justification{Expr: expr.Var{Name: "p"}, Rule: "REITERATION"})
	assert.NoError(t, err)
	prem, err := p.AddPremise(root, expr.Var{Name: "p"})
	assert.NoError(t, err)

	d := ReferencesLaterLine(proof.JustRef(step), proof.PremiseRef(prem))
	assert.Equal(t, KindReferencesLaterLine, d.Kind)
	assert.Equal(t, Error, d.Level)
	assert.NotEmpty(t, d.Suggestions)

	reporter := NewReporter(p, "proof.xml")
	rendered := reporter.Format(d)
	assert.Contains(t, rendered, "ReferencesLaterLine")
}

func TestIncorrectDepCountDiagnosticCarriesExpected(t *testing.T) {
	ref := proof.JustRef(proof.JustID(3))
	d := IncorrectDepCount(ref, "CONJUNCTION", 2, 1)
	assert.Equal(t, "2", d.Expected)
	assert.Equal(t, KindIncorrectDepCount, d.Kind)
}

func TestBuilderAccumulatesNotesAndHelp(t *testing.T) {
	ref := proof.PremiseRef(proof.PremiseID(1))
	d := New(KindOther, "something went wrong", &ref).
		WithNote("first note").
		WithNote("second note").
		WithHelp("try this instead").
		Build()
	assert.Len(t, d.Notes, 2)
	assert.Equal(t, "try this instead", d.HelpText)
}

func TestFromVerifyErrorFillsHelpFromKindDescription(t *testing.T) {
	d := FromVerifyError(KindDoesNotOccur, "x does not occur", nil, "")
	assert.NotEmpty(t, d.HelpText)
}
