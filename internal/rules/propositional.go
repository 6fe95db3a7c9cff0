package rules

import (
	"aris/internal/expr"
	"aris/internal/proof"
)

func checkReiteration(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	if !expr.AlphaEqual(depE, j.Expr) {
		return errf("ConclusionOfWrongForm", "reiterated line must match its dependency exactly")
	}
	return nil
}

func checkAndIntro(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	concl, ok := j.Expr.(expr.Assoc)
	if !ok || concl.Op != expr.And {
		return errf("ConclusionOfWrongForm", "conclusion must be a conjunction")
	}
	if len(concl.Operands) != len(deps) {
		return errf("IncorrectDepCount", "conjunction has %d conjuncts but %d dependencies were given", len(concl.Operands), len(deps))
	}
	return matchEachOperand(concl.Operands, deps)
}

func checkAndElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	conj, ok := depE.(expr.Assoc)
	if !ok || conj.Op != expr.And {
		return errf("DepOfWrongForm", "dependency must be a conjunction")
	}
	for _, o := range conj.Operands {
		if expr.AlphaEqual(o, j.Expr) {
			return nil
		}
	}
	return errf("DoesNotOccur", "conclusion does not occur as a conjunct of the dependency")
}

func checkOrIntro(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	disj, ok := j.Expr.(expr.Assoc)
	if !ok || disj.Op != expr.Or {
		return errf("ConclusionOfWrongForm", "conclusion must be a disjunction")
	}
	for _, o := range disj.Operands {
		if expr.AlphaEqual(o, depE) {
			return nil
		}
	}
	return errf("DoesNotOccur", "dependency does not occur as a disjunct of the conclusion")
}

// checkOrElim verifies proof-by-cases: one line dependency that is a
// disjunction, plus one subproof per disjunct, each assuming that disjunct
// and concluding the shared target expression.
func checkOrElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	disj, ok := depE.(expr.Assoc)
	if !ok || disj.Op != expr.Or {
		return errf("DepOfWrongForm", "dependency must be a disjunction")
	}
	if err := requireSubDepCount(j, len(disj.Operands)); err != nil {
		return err
	}
	for i, sub := range j.SDeps {
		prems := p.Premises(sub)
		if len(prems) == 0 {
			return errf("Other", "subproof #%d has no assumption", sub)
		}
		assumption, _ := p.Premise(prems[0])
		if !expr.AlphaEqual(assumption, disj.Operands[i]) {
			return errf("DepOfWrongForm", "subproof #%d must assume disjunct %s", sub, disj.Operands[i])
		}
		if !subproofConcludes(p, sub, j.Expr) {
			return errf("ConclusionOfWrongForm", "subproof #%d does not conclude %s", sub, j.Expr)
		}
	}
	return nil
}

func checkImpIntro(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 0); err != nil {
		return err
	}
	if err := requireSubDepCount(j, 1); err != nil {
		return err
	}
	impl, ok := j.Expr.(expr.Impl)
	if !ok {
		return errf("ConclusionOfWrongForm", "conclusion must be an implication")
	}
	sub := j.SDeps[0]
	prems := p.Premises(sub)
	if len(prems) == 0 {
		return errf("Other", "subproof #%d has no assumption", sub)
	}
	assumption, _ := p.Premise(prems[0])
	if !expr.AlphaEqual(assumption, impl.Antecedent) {
		return errf("DepOfWrongForm", "subproof must assume the antecedent")
	}
	if !subproofConcludes(p, sub, impl.Consequent) {
		return errf("ConclusionOfWrongForm", "subproof does not conclude the consequent")
	}
	return nil
}

func checkImpElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 2); err != nil {
		return err
	}
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	impl, ant, ok := eitherOrderImpl(deps[0], deps[1])
	if !ok {
		return errf("DepOfWrongForm", "one dependency must be an implication and the other its antecedent")
	}
	if !expr.AlphaEqual(impl.Antecedent, ant) {
		return errf("DepOfWrongForm", "antecedent dependency does not match the implication's antecedent")
	}
	if !expr.AlphaEqual(impl.Consequent, j.Expr) {
		return errf("ConclusionOfWrongForm", "conclusion must be the implication's consequent")
	}
	return nil
}

func eitherOrderImpl(a, b expr.Expr) (expr.Impl, expr.Expr, bool) {
	if i, ok := a.(expr.Impl); ok {
		return i, b, true
	}
	if i, ok := b.(expr.Impl); ok {
		return i, a, true
	}
	return expr.Impl{}, nil, false
}

// checkNotIntro verifies proof by contradiction: a subproof assuming the
// negation's body concludes Bottom.
func checkNotIntro(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireSubDepCount(j, 1); err != nil {
		return err
	}
	not, ok := j.Expr.(expr.Not)
	if !ok {
		return errf("ConclusionOfWrongForm", "conclusion must be a negation")
	}
	sub := j.SDeps[0]
	prems := p.Premises(sub)
	if len(prems) == 0 {
		return errf("Other", "subproof #%d has no assumption", sub)
	}
	assumption, _ := p.Premise(prems[0])
	if !expr.AlphaEqual(assumption, not.Body) {
		return errf("DepOfWrongForm", "subproof must assume the negated body")
	}
	if !subproofConcludes(p, sub, expr.Bottom{}) {
		return errf("ConclusionOfWrongForm", "subproof does not derive a contradiction")
	}
	return nil
}

// checkNotElim verifies double-negation introduction: p therefore ¬¬p.
func checkNotElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	not2, ok := j.Expr.(expr.Not)
	if !ok {
		return errf("ConclusionOfWrongForm", "conclusion must be a negation")
	}
	not1, ok := not2.Body.(expr.Not)
	if !ok {
		return errf("ConclusionOfWrongForm", "conclusion must be a double negation")
	}
	if !expr.AlphaEqual(not1.Body, depE) {
		return errf("DepOfWrongForm", "double negation does not wrap the dependency")
	}
	return nil
}

func checkContradictionIntro(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 2); err != nil {
		return err
	}
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	if _, ok := j.Expr.(expr.Bottom); !ok {
		return errf("ConclusionOfWrongForm", "conclusion must be a contradiction")
	}
	a, b := deps[0], deps[1]
	if not, ok := a.(expr.Not); ok && expr.AlphaEqual(not.Body, b) {
		return nil
	}
	if not, ok := b.(expr.Not); ok && expr.AlphaEqual(not.Body, a) {
		return nil
	}
	return errf("DepOfWrongForm", "dependencies are not a formula and its negation")
}

func checkContradictionElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	if _, ok := depE.(expr.Bottom); !ok {
		return errf("DepOfWrongForm", "dependency must be a contradiction")
	}
	return nil
}

func matchEachOperand(operands []expr.Expr, deps []expr.Expr) error {
	used := make([]bool, len(deps))
	for _, o := range operands {
		found := false
		for i, d := range deps {
			if used[i] {
				continue
			}
			if expr.AlphaEqual(o, d) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return errf("DoesNotOccur", "conjunct %s has no matching dependency", o)
		}
	}
	return nil
}

func subproofConcludes(p *proof.Pool, sub proof.SubproofID, target expr.Expr) bool {
	lines := p.Lines(sub)
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].JustID != nil {
			j, ok := p.Justification(*lines[i].JustID)
			return ok && expr.AlphaEqual(j.Expr, target)
		}
		if lines[i].PremiseID != nil {
			e, ok := p.Premise(*lines[i].PremiseID)
			return ok && expr.AlphaEqual(e, target)
		}
	}
	return false
}
