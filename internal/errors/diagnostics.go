package errors

import (
	"fmt"

	"aris/internal/proof"
)

// Level is the severity of a diagnostic.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
	Help    Level = "help"
)

// Suggestion is one fix a user might apply, optionally with replacement
// rule/dependency text.
type Suggestion struct {
	Message     string
	Replacement string
}

// Diagnostic is a structured verification failure ready for display: a
// kind, a message, the line it's anchored to, and any suggestions/notes/help
// text accumulated by the builder.
type Diagnostic struct {
	Level       Level
	Kind        string
	Message     string
	Ref         *proof.LineRef
	Expected    string
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

// Builder provides a fluent interface for attaching suggestions, notes, and
// help text to a diagnostic, in the same shape as the teacher's semantic
// error builder.
type Builder struct {
	d Diagnostic
}

// New starts a diagnostic of the given kind anchored at ref (nil if the
// failure isn't attributable to one particular line).
func New(kind, message string, ref *proof.LineRef) *Builder {
	return &Builder{d: Diagnostic{Level: Error, Kind: kind, Message: message, Ref: ref}}
}

func (b *Builder) WithExpected(expected string) *Builder {
	b.d.Expected = expected
	return b
}

func (b *Builder) WithSuggestion(message string) *Builder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message})
	return b
}

func (b *Builder) WithReplacement(message, replacement string) *Builder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

func (b *Builder) WithNote(note string) *Builder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

func (b *Builder) WithHelp(help string) *Builder {
	b.d.HelpText = help
	return b
}

func (b *Builder) Build() Diagnostic { return b.d }

// Common diagnostic constructors, one per verification failure kind.

func ReferencesLaterLine(ref, cited proof.LineRef) Diagnostic {
	return New(KindReferencesLaterLine, fmt.Sprintf("%s cannot cite %s", ref, cited), &ref).
		WithSuggestion("move the cited line earlier, or move this step later").
		WithNote("a step may only cite lines already in scope at its position").
		Build()
}

func SubproofDoesNotExist(ref proof.LineRef, sub proof.SubproofID) Diagnostic {
	return New(KindSubproofDoesNotExist, fmt.Sprintf("%s cannot cite subproof #%d", ref, sub), &ref).
		WithNote("a subproof dependency must be a completed, in-scope subproof").
		Build()
}

func LineDoesNotExist(ref proof.LineRef) Diagnostic {
	return New(KindLineDoesNotExist, fmt.Sprintf("%s does not exist", ref), &ref).Build()
}

func IncorrectDepCount(ref proof.LineRef, rule string, expected, actual int) Diagnostic {
	return New(KindIncorrectDepCount,
		fmt.Sprintf("%s requires %d dependencies, found %d", rule, expected, actual), &ref).
		WithExpected(fmt.Sprintf("%d", expected)).
		WithSuggestion("check the dependency list for this step").
		Build()
}

func IncorrectSubDepCount(ref proof.LineRef, rule string, expected, actual int) Diagnostic {
	return New(KindIncorrectSubDepCount,
		fmt.Sprintf("%s requires %d subproof dependencies, found %d", rule, expected, actual), &ref).
		WithExpected(fmt.Sprintf("%d", expected)).
		Build()
}

func DepOfWrongForm(ref proof.LineRef, rule, detail string) Diagnostic {
	return New(KindDepOfWrongForm, fmt.Sprintf("%s: dependency is not of the expected form (%s)", rule, detail), &ref).
		WithHelp("check that the cited line has the connective this rule expects").
		Build()
}

func ConclusionOfWrongForm(ref proof.LineRef, rule, conclusion, from string) Diagnostic {
	return New(KindConclusionOfWrongForm,
		fmt.Sprintf("%s does not follow from %s via %s", conclusion, from, rule), &ref).
		WithHelp("double-check the rule's required shape against the dependencies cited").
		Build()
}

func DoesNotOccur(ref proof.LineRef, what string) Diagnostic {
	return New(KindDoesNotOccur, fmt.Sprintf("%s does not occur where this rule requires it", what), &ref).Build()
}

func DepDoesNotExist(ref proof.LineRef) Diagnostic {
	return New(KindDepDoesNotExist, fmt.Sprintf("%s is missing a required dependency", ref), &ref).Build()
}

func OneOf(ref proof.LineRef, options []string) Diagnostic {
	return New(KindOneOf, fmt.Sprintf("%s matched none of the expected forms", ref), &ref).
		WithNote("expected one of: " + joinOptions(options)).
		Build()
}

func Other(message string, ref *proof.LineRef) Diagnostic {
	return New(KindOther, message, ref).Build()
}

func joinOptions(options []string) string {
	out := ""
	for i, o := range options {
		if i > 0 {
			out += ", "
		}
		out += o
	}
	return out
}

// FromVerifyError adapts the (kind, message, ref, expected) shape that
// rules.Error exposes into a displayable Diagnostic, without this package
// needing to import the rule-checking engine itself.
func FromVerifyError(kind, message string, ref *proof.LineRef, expected string) Diagnostic {
	d := New(kind, message, ref)
	if expected != "" {
		d = d.WithExpected(expected)
	}
	d = d.WithHelp(KindDescription(kind))
	return d.Build()
}
