package rules

import (
	"aris/internal/expr"
	"aris/internal/proof"
)

// checkStrengthenAntecedent verifies: from a→b, derive (a∧c)→b for any c
// supplied by the conclusion — strengthening the antecedent preserves the
// implication.
func checkStrengthenAntecedent(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	depImpl, ok := depE.(expr.Impl)
	if !ok {
		return errf("DepOfWrongForm", "dependency must be an implication")
	}
	conclImpl, ok := j.Expr.(expr.Impl)
	if !ok {
		return errf("ConclusionOfWrongForm", "conclusion must be an implication")
	}
	if !expr.AlphaEqual(conclImpl.Consequent, depImpl.Consequent) {
		return errf("ConclusionOfWrongForm", "consequent must be unchanged")
	}
	and, ok := conclImpl.Antecedent.(expr.Assoc)
	if !ok || and.Op != expr.And {
		return errf("ConclusionOfWrongForm", "strengthened antecedent must be a conjunction")
	}
	for _, o := range and.Operands {
		if expr.AlphaEqual(o, depImpl.Antecedent) {
			return nil
		}
	}
	return errf("DoesNotOccur", "original antecedent does not occur in the strengthened conjunction")
}

// checkWeakenConsequent verifies: from a→b, derive a→(b∨c) for any c
// supplied by the conclusion.
func checkWeakenConsequent(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	depImpl, ok := depE.(expr.Impl)
	if !ok {
		return errf("DepOfWrongForm", "dependency must be an implication")
	}
	conclImpl, ok := j.Expr.(expr.Impl)
	if !ok {
		return errf("ConclusionOfWrongForm", "conclusion must be an implication")
	}
	if !expr.AlphaEqual(conclImpl.Antecedent, depImpl.Antecedent) {
		return errf("ConclusionOfWrongForm", "antecedent must be unchanged")
	}
	or, ok := conclImpl.Consequent.(expr.Assoc)
	if !ok || or.Op != expr.Or {
		return errf("ConclusionOfWrongForm", "weakened consequent must be a disjunction")
	}
	for _, o := range or.Operands {
		if expr.AlphaEqual(o, depImpl.Consequent) {
			return nil
		}
	}
	return errf("DoesNotOccur", "original consequent does not occur in the weakened disjunction")
}

// checkConIntroNegation verifies: from a∧¬b, derive ¬(a→b).
func checkConIntroNegation(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	and, ok := depE.(expr.Assoc)
	if !ok || and.Op != expr.And || len(and.Operands) != 2 {
		return errf("DepOfWrongForm", "dependency must be a two-way conjunction")
	}
	a, notB := and.Operands[0], and.Operands[1]
	nb, ok := notB.(expr.Not)
	if !ok {
		a, notB = and.Operands[1], and.Operands[0]
		nb, ok = notB.(expr.Not)
		if !ok {
			return errf("DepOfWrongForm", "conjunction must include a negated operand")
		}
	}
	want := expr.Not{Body: expr.Impl{Antecedent: a, Consequent: nb.Body}}
	if !expr.AlphaEqual(j.Expr, want) {
		return errf("ConclusionOfWrongForm", "conclusion must negate the implication formed from the conjunction")
	}
	return nil
}

// checkConElimNegation verifies the inverse: from ¬(a→b), derive a∧¬b.
func checkConElimNegation(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	not, ok := depE.(expr.Not)
	if !ok {
		return errf("DepOfWrongForm", "dependency must be a negation")
	}
	impl, ok := not.Body.(expr.Impl)
	if !ok {
		return errf("DepOfWrongForm", "negated formula must be an implication")
	}
	want := expr.Assoc{Op: expr.And, Operands: []expr.Expr{impl.Antecedent, expr.Not{Body: impl.Consequent}}}
	if !expr.AlphaEqual(expr.SortCommutativeOps(j.Expr), expr.SortCommutativeOps(want)) {
		return errf("ConclusionOfWrongForm", "conclusion must be the antecedent conjoined with the negated consequent")
	}
	return nil
}
