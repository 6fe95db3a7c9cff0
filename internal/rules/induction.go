package rules

import (
	"aris/internal/expr"
	"aris/internal/proof"
)

// successor builds succ(n), the one arithmetic function the induction
// rules need; naturals otherwise have no builtin representation in the
// expression algebra, so induction is always phrased over the fixed zero
// term `zero` and the successor function `succ` applied via Apply.
func successor(n expr.Expr) expr.Expr {
	return expr.Apply{Head: expr.Var{Name: "succ"}, Args: []expr.Expr{n}}
}

// checkWeakInduction verifies ordinary mathematical induction: conclusion
// ∀n,P(n) follows from a base-case subproof concluding P(zero) and a
// step subproof that assumes P(n) for an arbitrary n and concludes
// P(succ(n)).
func checkWeakInduction(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	return checkInductionShape(p, j, false)
}

// checkStrongInduction verifies strong induction: the step subproof may
// assume P(k) for every k that is itself a predecessor chain below n
// (represented here as a single strengthened premise "∀k, P(k)" restricted
// to the induction variable's own scope), concluding P(n).
func checkStrongInduction(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	return checkInductionShape(p, j, true)
}

func checkInductionShape(p *proof.Pool, j proof.Justification, strong bool) error {
	if err := requireDepCount(j, 0); err != nil {
		return err
	}
	if err := requireSubDepCount(j, 2); err != nil {
		return err
	}
	q, ok := j.Expr.(expr.Quant)
	if !ok || q.Kind != expr.Forall {
		return errf("ConclusionOfWrongForm", "conclusion must be a universally quantified statement")
	}

	baseSub, stepSub := j.SDeps[0], j.SDeps[1]
	zero := expr.Var{Name: "zero"}
	wantBase := expr.Subst(q.Name, zero, q.Body)
	baseConcl, ok := lastLineExpr(p, baseSub)
	if !ok || !expr.AlphaEqual(baseConcl, wantBase) {
		return errf("ConclusionOfWrongForm", "base-case subproof must conclude the statement at zero")
	}

	stepPrems := p.Premises(stepSub)
	if len(stepPrems) == 0 {
		return errf("Other", "step subproof has no inductive hypothesis")
	}
	hypothesis, _ := p.Premise(stepPrems[0])
	n := expr.Var{Name: expr.Gensym("n", expr.FreeVars(q.Body))}

	var wantHypothesis expr.Expr
	if strong {
		wantHypothesis = expr.Quant{Kind: expr.Forall, Name: n.Name, Body: expr.Subst(q.Name, n, q.Body)}
	} else {
		wantHypothesis = expr.Subst(q.Name, n, q.Body)
	}
	if _, ok := unifyWrtVar(wantHypothesis, hypothesis, n.Name); !ok {
		kind := "P(n)"
		if strong {
			kind = "∀k, P(k)"
		}
		return errf("DepOfWrongForm", "step subproof must assume %s for an arbitrary n", kind)
	}

	stepConcl, ok := lastLineExpr(p, stepSub)
	if !ok {
		return errf("Other", "step subproof has no concluding line")
	}
	wantStepConcl := expr.Subst(q.Name, successor(n), q.Body)
	if !expr.AlphaEqual(stepConcl, wantStepConcl) {
		return errf("ConclusionOfWrongForm", "step subproof must conclude the statement at succ(n)")
	}
	return nil
}
