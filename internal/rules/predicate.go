package rules

import (
	"aris/internal/expr"
	"aris/internal/proof"
)

// checkForallElim verifies universal instantiation: from ∀x,P(x) derive
// P(t) for any term t, via unification of the quantifier body against the
// conclusion with x free to bind to anything.
func checkForallElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	return checkQuantifierElim(p, j, expr.Forall)
}

// checkExistsIntro verifies existential generalization: from P(t) derive
// ∃x,P(x), i.e. the conclusion's body unifies with the dependency once its
// bound variable is left free.
func checkExistsIntro(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	q, ok := j.Expr.(expr.Quant)
	if !ok || q.Kind != expr.Exists {
		return errf("ConclusionOfWrongForm", "conclusion must be an existential")
	}
	if _, ok := unifyWrtVar(q.Body, depE, q.Name); !ok {
		return errf("ConclusionOfWrongForm", "dependency is not an instance of the existential's body")
	}
	return nil
}

func checkQuantifierElim(p *proof.Pool, j proof.Justification, kind expr.QuantKind) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	q, ok := depE.(expr.Quant)
	if !ok || q.Kind != kind {
		return errf("DepOfWrongForm", "dependency must be a quantified formula")
	}
	if _, ok := unifyWrtVar(q.Body, j.Expr, q.Name); !ok {
		return errf("ConclusionOfWrongForm", "conclusion is not an instance of the quantifier's body")
	}
	return nil
}

// unifyWrtVar unifies pattern against target, treating varName as the only
// name in pattern allowed to bind; any other variable name that would need
// to bind for the two to match means they aren't actually an
// instantiation/generalization pair.
func unifyWrtVar(pattern, target expr.Expr, varName string) (expr.Expr, bool) {
	subs, ok := expr.Unify([]expr.Constraint{{pattern, target}})
	if !ok {
		return nil, false
	}
	for name := range subs {
		if name != varName {
			return nil, false
		}
	}
	bound, ok := subs[varName]
	if !ok {
		// varName did not need to bind at all: pattern already equals
		// target wherever varName occurred (it was vacuous in pattern).
		return expr.Var{Name: varName}, true
	}
	return bound, true
}

// checkForallIntro verifies universal generalization: a subproof derives
// P(c) for some name c that unifies the quantifier's bound variable
// against the conclusion's quantified body, and c must not leak into any
// dependency the subproof's steps draw on from outside the subproof — c
// was supposed to stand for an arbitrary object, and a dependency outside
// that still mentions c means it wasn't actually arbitrary.
func checkForallIntro(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireSubDepCount(j, 1); err != nil {
		return err
	}
	q, ok := j.Expr.(expr.Quant)
	if !ok || q.Kind != expr.Forall {
		return errf("ConclusionOfWrongForm", "conclusion must be a universal")
	}
	sub := j.SDeps[0]
	concludedExpr, ok := lastLineExpr(p, sub)
	if !ok {
		return errf("Other", "subproof #%d has no concluding line", sub)
	}
	bound, ok := unifyWrtVar(q.Body, concludedExpr, q.Name)
	if !ok {
		return errf("ConclusionOfWrongForm", "subproof's conclusion does not instantiate the universal's body")
	}
	c, ok := bound.(expr.Var)
	if !ok {
		return errf("ConclusionOfWrongForm", "generalized term must be a single arbitrary name, not a compound term")
	}
	if counterexample, found := generalizableVariableCounterexample(p, sub, c.Name); found {
		return errf("Other", "%s escapes the subproof via an outside dependency %s; it was not generalized over an arbitrary object", c.Name, counterexample)
	}
	return nil
}

// checkExistsElim verifies existential instantiation: a subproof assumes
// P(c) for a fresh name c and derives the shared target expression, which
// must not itself mention c (the skolem constant cannot leak into the
// conclusion).
func checkExistsElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 1); err != nil {
		return err
	}
	if err := requireSubDepCount(j, 1); err != nil {
		return err
	}
	depE, err := lineExpr(p, j.Deps[0])
	if err != nil {
		return err
	}
	q, ok := depE.(expr.Quant)
	if !ok || q.Kind != expr.Exists {
		return errf("DepOfWrongForm", "dependency must be an existential")
	}
	sub := j.SDeps[0]
	prems := p.Premises(sub)
	if len(prems) == 0 {
		return errf("Other", "subproof #%d has no assumption", sub)
	}
	assumption, _ := p.Premise(prems[0])
	bound, ok := unifyWrtVar(q.Body, assumption, q.Name)
	if !ok {
		return errf("DepOfWrongForm", "subproof's assumption does not instantiate the existential's body")
	}
	c, ok := bound.(expr.Var)
	if !ok {
		return errf("DepOfWrongForm", "instantiated term must be a single arbitrary name")
	}
	if !subproofConcludes(p, sub, j.Expr) {
		return errf("ConclusionOfWrongForm", "subproof does not conclude the target expression")
	}
	if _, leaks := expr.FreeVars(j.Expr)[c.Name]; leaks {
		return errf("Other", "conclusion must not mention the instantiated name %s", c.Name)
	}
	if counterexample, found := generalizableVariableCounterexample(p, sub, c.Name); found {
		return errf("Other", "%s escapes the subproof via an outside dependency %s", c.Name, counterexample)
	}
	return nil
}

func lastLineExpr(p *proof.Pool, sub proof.SubproofID) (expr.Expr, bool) {
	lines := p.Lines(sub)
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].JustID != nil {
			j, ok := p.Justification(*lines[i].JustID)
			if !ok {
				return nil, false
			}
			return j.Expr, true
		}
		if lines[i].PremiseID != nil {
			e, ok := p.Premise(*lines[i].PremiseID)
			return e, ok
		}
	}
	return nil, false
}

// generalizableVariableCounterexample walks every justification contained
// (recursively) in sub, and for each, the transitive dependencies it
// draws on. Any dependency whose owning subproof is NOT sub or a
// descendant of sub, and whose expression mentions name, is a
// counterexample: the subproof used an outside fact about the supposedly
// arbitrary object.
func generalizableVariableCounterexample(p *proof.Pool, sub proof.SubproofID, name string) (proof.LineRef, bool) {
	for _, jid := range p.ContainedJustifications(sub, true) {
		prems, justs := p.TransitiveDependencies(jid)
		for premID := range prems {
			if isOutside(p, premID, sub) {
				e, ok := p.Premise(premID)
				if ok {
					if _, mentions := expr.FreeVars(e)[name]; mentions {
						return proof.PremiseRef(premID), true
					}
				}
			}
		}
		for justID := range justs {
			if isOutside(p, justID, sub) {
				jv, ok := p.Justification(justID)
				if ok {
					if _, mentions := expr.FreeVars(jv.Expr)[name]; mentions {
						return proof.JustRef(justID), true
					}
				}
			}
		}
	}
	return proof.LineRef{}, false
}

// isOutside reports whether id's owning subproof is neither sub nor a
// descendant of sub, i.e. the dependency genuinely comes from outside.
func isOutside(p *proof.Pool, id interface{}, sub proof.SubproofID) bool {
	owner, ok := p.ParentOf(id)
	if !ok {
		return true
	}
	cur := owner
	for {
		if cur == sub {
			return false
		}
		parent, ok := p.ParentOf(cur)
		if !ok {
			return true
		}
		cur = parent
	}
}
