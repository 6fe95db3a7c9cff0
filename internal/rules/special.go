package rules

import (
	"aris/internal/expr"
	"aris/internal/proof"
	"aris/internal/sat"
)

// checkResolution verifies propositional resolution: from (a ∨ ... ∨ L ∨ ...)
// and (c ∨ ... ∨ ¬L ∨ ... ), for some literal L present (possibly negated)
// in both, derive the disjunction of everything else with duplicates
// collapsed.
func checkResolution(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 2); err != nil {
		return err
	}
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	left := expr.Disjuncts(deps[0])
	right := expr.Disjuncts(deps[1])

	for li, l := range left {
		for ri, r := range right {
			if complementary(l, r) {
				rest := append(append([]expr.Expr{}, without(left, li)...), without(right, ri)...)
				want := expr.NormalizeIdempotence(expr.SortCommutativeOps(expr.FromDisjuncts(rest)))
				got := expr.NormalizeIdempotence(expr.SortCommutativeOps(j.Expr))
				if expr.AlphaEqual(got, want) {
					return nil
				}
			}
		}
	}
	return errf("Other", "dependencies share no complementary literal resolving to the conclusion")
}

func complementary(a, b expr.Expr) bool {
	if not, ok := a.(expr.Not); ok && expr.AlphaEqual(not.Body, b) {
		return true
	}
	if not, ok := b.(expr.Not); ok && expr.AlphaEqual(not.Body, a) {
		return true
	}
	return false
}

func without(es []expr.Expr, idx int) []expr.Expr {
	out := make([]expr.Expr, 0, len(es)-1)
	for i, e := range es {
		if i != idx {
			out = append(out, e)
		}
	}
	return out
}

// checkTruthFunctionalConsequence verifies that the conclusion is a
// propositional consequence of its dependencies by showing
// dep1 ∧ ... ∧ depN ∧ ¬conclusion is unsatisfiable, i.e. there is no
// assignment making every dependency true and the conclusion false.
func checkTruthFunctionalConsequence(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	hypothesis := expr.FromConjuncts(append(append([]expr.Expr{}, deps...), expr.Not{Body: j.Expr}))
	cnf, ok := expr.IntoCNF(hypothesis)
	if !ok {
		return errf("Other", "truth-functional consequence does not apply: a dependency or the conclusion contains a quantifier, an application, or arithmetic")
	}
	satisfiable, assignment := sat.Solve(toSatCNF(cnf))
	if satisfiable {
		return errf("Other", "conclusion does not follow: dependencies are satisfiable with the conclusion false under %v", assignment)
	}
	return nil
}

func toSatCNF(cnf expr.CNF) sat.CNF {
	out := make(sat.CNF, len(cnf))
	for i, clause := range cnf {
		lits := make([]sat.Literal, len(clause))
		for k, l := range clause {
			lits[k] = sat.Literal{Name: l.Atom.String(), Negated: l.Negated}
		}
		out[i] = lits
	}
	return out
}
