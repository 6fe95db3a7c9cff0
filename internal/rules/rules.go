// Package rules implements the rule-checking engine: the full rule
// taxonomy (propositional, predicate, equivalence, boolean, conditional,
// biconditional, special, and inductive rule families), their per-rule
// metadata, and VerifyLine, the entry point that dispatches a justified
// step to its rule's checker after enforcing scope and dependency-count
// invariants common to every rule.
package rules

import (
	"fmt"

	"aris/internal/catalog"
	"aris/internal/expr"
	"aris/internal/proof"
	"aris/internal/sat"
	"aris/internal/scope"
)

// Canonical XML rule names, grounded on the original rule-name table, with
// names coined in the same ALL_CAPS_WITH_UNDERSCORES convention for rules
// present in the catalog's larger taxonomy but absent from that table.
const (
	Reiteration       = "REITERATION"
	AndIntro          = "CONJUNCTION"
	AndElim           = "SIMPLIFICATION"
	OrIntro           = "ADDITION"
	OrElim            = "OR_ELIM"
	ImpIntro          = "CONDITIONAL_PROOF"
	ImpElim           = "MODUS_PONENS"
	NotIntro          = "PROOF_BY_CONTRADICTION"
	NotElim           = "DOUBLENEGATION_INTRO"
	ContradictionIntro = "CONTRADICTION"
	ContradictionElim  = "PRINCIPLE_OF_EXPLOSION"
	BiconditionalIntro = "BICONDITIONAL_INTRO"
	BiconditionalElim  = "BICONDITIONAL_ELIM"
	EquivalenceIntro   = "EQUIVALENCE_INTRO"
	EquivalenceElim    = "EQUIVALENCE_ELIM"
	ForallIntro        = "UNIVERSAL_GENERALIZATION"
	ForallElim         = "UNIVERSAL_INSTANTIATION"
	ExistsIntro        = "EXISTENTIAL_GENERALIZATION"
	ExistsElim         = "EXISTENTIAL_INSTANTIATION"

	ModusTollens          = "MODUS_TOLLENS"
	HypotheticalSyllogism = "HYPOTHETICAL_SYLLOGISM"
	ExcludedMiddle        = "EXCLUDED_MIDDLE"
	ConstructiveDilemma   = "CONSTRUCTIVE_DILEMMA"
	DestructiveDilemma    = "DESTRUCTIVE_DILEMMA"
	DisjunctiveSyllogism  = "DISJUNCTIVE_SYLLOGISM"
	HalfDeMorgan          = "HALF_DE_MORGAN"
	StrengthenAntecedent  = "STRENGTHEN_ANTECEDENT"
	WeakenConsequent      = "WEAKEN_CONSEQUENT"
	ConIntroNegation      = "CONDITIONAL_INTRO_NEGATION"
	ConElimNegation       = "CONDITIONAL_ELIM_NEGATION"

	Resolution               = "RESOLUTION"
	TruthFunctionalConsequence = "ASYMMETRIC_TAUTOLOGY"
	WeakInduction             = "WEAK_INDUCTION"
	StrongInduction           = "STRONG_INDUCTION"
)

// equivalenceBundleByRuleName maps a rule name onto the catalog bundle that
// implements it, for every equivalence-family rule whose check is "some
// permutation of this catalog bundle's pattern matches".
var equivalenceBundleByRuleName = map[string]string{
	"DE_MORGAN":                  "DeMorgan",
	"ASSOCIATION":                "Association",
	"COMMUTATION":                "Commutation",
	"IDEMPOTENCE":                "Idempotence",
	"DISTRIBUTION":               "Distribution",
	"DOUBLENEGATION_EQUIV":       "DoubleNegation",
	"COMPLEMENT":                 "Complement",
	"IDENTITY":                   "Identity",
	"ANNIHILATION":               "Annihilation",
	"INVERSE":                    "Inverse",
	"ABSORPTION":                 "Absorption",
	"REDUCTION":                  "Reduction",
	"ADJACENCY":                  "Adjacency",
	"CONDITIONAL_COMPLEMENT":     "ConditionalComplement",
	"CONDITIONAL_IDENTITY":       "ConditionalIdentity",
	"CONDITIONAL_ANNIHILATION":   "ConditionalAnnihilation",
	"CONDITIONAL_IDEMPOTENCE":    "ConditionalIdempotence",
	"IMPLICATION":                "Implication",
	"BI_IMPLICATION":             "BiImplication",
	"CONTRAPOSITION":             "Contraposition",
	"CURRYING":                   "Currying",
	"CONDITIONAL_DISTRIBUTION":   "ConditionalDistribution",
	"CONDITIONAL_REDUCTION":      "ConditionalReduction",
	"KNIGHTS_AND_KNAVES":         "KnightsAndKnaves",
	"BICONDITIONAL_NEGATION":     "BiconditionalNegation",
	"BICONDITIONAL_SUBSTITUTION": "BiconditionalSubstitution",
}

// Error is a structured verification failure, carrying enough context
// (kind plus the offending ref/expected value) for a host to render a
// precise diagnostic rather than a bare string.
type Error struct {
	Kind     string
	Message  string
	Ref      *proof.LineRef
	Expected string
}

func (e *Error) Error() string { return e.Message }

func errf(kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// VerifyLine checks the justification at ref against its cited deps/sdeps:
// first that ref exists (LineDoesNotExist) and that every dep is actually in
// scope (ReferencesLaterLine for a line dep, SubproofDoesNotExist for a
// subproof dep), then dispatches to the named rule's checker.
func VerifyLine(p *proof.Pool, ref proof.LineRef) error {
	if ref.Premise != nil {
		return nil // premises are trivially valid; nothing to check.
	}
	j, ok := p.Justification(*ref.Just)
	if !ok {
		return errf("LineDoesNotExist", "line %s does not exist", ref)
	}
	for _, dep := range j.Deps {
		if !scope.CanReferenceDep(p, ref, dep) {
			return &Error{Kind: "ReferencesLaterLine", Message: fmt.Sprintf("%s cannot reference %s", ref, dep), Ref: &dep}
		}
	}
	for _, sdep := range j.SDeps {
		if !scope.CanReferenceSubproof(p, ref, sdep) {
			return errf("SubproofDoesNotExist", "%s cannot reference subproof #%d", ref, sdep)
		}
	}

	checker, ok := checkers[j.Rule]
	if !ok {
		if bundle, ok := equivalenceBundleByRuleName[j.Rule]; ok {
			return checkEquivalenceBundle(p, j, bundle)
		}
		return errf("Other", "unknown rule %q", j.Rule)
	}
	return checker(p, ref, j)
}

type checkFunc func(p *proof.Pool, ref proof.LineRef, j proof.Justification) error

var checkers map[string]checkFunc

func init() {
	checkers = map[string]checkFunc{
		Reiteration:                checkReiteration,
		AndIntro:                   checkAndIntro,
		AndElim:                    checkAndElim,
		OrIntro:                    checkOrIntro,
		OrElim:                     checkOrElim,
		ImpIntro:                   checkImpIntro,
		ImpElim:                    checkImpElim,
		NotIntro:                   checkNotIntro,
		NotElim:                    checkNotElim,
		ContradictionIntro:         checkContradictionIntro,
		ContradictionElim:          checkContradictionElim,
		BiconditionalIntro:         checkBiconditionalIntro,
		BiconditionalElim:          checkBiconditionalElim,
		EquivalenceIntro:           checkBiconditionalIntro, // same SCC argument, n-ary connective
		EquivalenceElim:            checkEquivalenceElim,
		ForallIntro:                checkForallIntro,
		ForallElim:                 checkForallElim,
		ExistsIntro:                checkExistsIntro,
		ExistsElim:                 checkExistsElim,
		ModusTollens:               checkModusTollens,
		HypotheticalSyllogism:      checkHypotheticalSyllogism,
		ExcludedMiddle:             checkExcludedMiddle,
		ConstructiveDilemma:        checkConstructiveDilemma,
		DestructiveDilemma:         checkDestructiveDilemma,
		DisjunctiveSyllogism:       checkDisjunctiveSyllogism,
		HalfDeMorgan:               checkHalfDeMorgan,
		StrengthenAntecedent:       checkStrengthenAntecedent,
		WeakenConsequent:           checkWeakenConsequent,
		ConIntroNegation:           checkConIntroNegation,
		ConElimNegation:            checkConElimNegation,
		Resolution:                 checkResolution,
		TruthFunctionalConsequence: checkTruthFunctionalConsequence,
		WeakInduction:              checkWeakInduction,
		StrongInduction:            checkStrongInduction,
	}
}

// Checkers returns every rule name VerifyLine can dispatch to, shape-checked
// rules and equivalence-bundle rules alike, for hosts that want to offer
// rule-name completion.
func Checkers() []string {
	names := make([]string, 0, len(checkers)+len(equivalenceBundleByRuleName))
	for name := range checkers {
		names = append(names, name)
	}
	for name := range equivalenceBundleByRuleName {
		names = append(names, name)
	}
	return names
}

func depExprs(p *proof.Pool, j proof.Justification) ([]expr.Expr, error) {
	out := make([]expr.Expr, 0, len(j.Deps))
	for _, d := range j.Deps {
		e, err := lineExpr(p, d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func lineExpr(p *proof.Pool, ref proof.LineRef) (expr.Expr, error) {
	switch {
	case ref.Premise != nil:
		e, ok := p.Premise(*ref.Premise)
		if !ok {
			return nil, errf("LineDoesNotExist", "premise %s does not exist", ref)
		}
		return e, nil
	case ref.Just != nil:
		j, ok := p.Justification(*ref.Just)
		if !ok {
			return nil, errf("LineDoesNotExist", "line %s does not exist", ref)
		}
		return j.Expr, nil
	default:
		return nil, errf("Other", "invalid line reference")
	}
}

func requireDepCount(j proof.Justification, n int) error {
	if len(j.Deps) != n {
		return errf("IncorrectDepCount", "expected %d dependencies, got %d", n, len(j.Deps))
	}
	return nil
}

func requireSubDepCount(j proof.Justification, n int) error {
	if len(j.SDeps) != n {
		return errf("IncorrectSubDepCount", "expected %d subproof dependencies, got %d", n, len(j.SDeps))
	}
	return nil
}

func checkEquivalenceBundle(p *proof.Pool, j proof.Justification, bundleName string) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	rewritten, changed := catalog.Apply(bundleName, depE)
	if changed && expr.AlphaEqual(rewritten, j.Expr) {
		return nil
	}
	// Also accept the reverse: the dep may already be in the rewritten
	// form and the conclusion the pre-image, since bundles are declared
	// bidirectionally but Apply only tries the forward direction it finds
	// a match for first.
	rewrittenBack, changedBack := catalog.Apply(bundleName, j.Expr)
	if changedBack && expr.AlphaEqual(rewrittenBack, depE) {
		return nil
	}
	if expr.AlphaEqual(depE, j.Expr) {
		return nil
	}
	return errf("ConclusionOfWrongForm", "%s does not follow from %s via %s", j.Expr, depE, bundleName)
}
