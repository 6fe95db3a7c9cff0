package rules

import (
	"aris/internal/expr"
	"aris/internal/proof"
)

func exprKey(e expr.Expr) string {
	return expr.SortCommutativeOps(expr.CombineAssociativeOps(e)).String()
}

// checkBiconditionalIntro (and, identically, EquivalenceIntro) builds a
// graph from the dependency implications/biconditionals, with an edge for
// each direction an Impl or Assoc(Bicon/Equiv) dependency asserts, then
// accepts the conclusion iff every one of its operands lands in a single
// strongly connected component — i.e. the dependencies collectively prove
// each operand implies every other.
func checkBiconditionalIntro(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	concl, ok := j.Expr.(expr.Assoc)
	if !ok || (concl.Op != expr.Bicon && concl.Op != expr.Equiv) {
		return errf("ConclusionOfWrongForm", "conclusion must be a biconditional/equivalence chain")
	}
	g := newGraph()
	for _, d := range deps {
		addBiconditionalEdges(g, d)
	}
	for _, sub := range j.SDeps {
		// A subproof of the form "assume a, derive b" contributes the edge
		// a -> b, the Fitch-style equivalent of an Impl dependency.
		prems := p.Premises(sub)
		if len(prems) == 0 {
			continue
		}
		a, ok := p.Premise(prems[0])
		if !ok {
			continue
		}
		if b, ok := lastLineExpr(p, sub); ok {
			g.addEdge(exprKey(a), exprKey(b))
		}
	}

	keys := make([]string, len(concl.Operands))
	for i, o := range concl.Operands {
		keys[i] = exprKey(o)
	}
	sccs := tarjanSCC(g)
	for _, scc := range sccs {
		if containsAll(scc, keys) {
			return nil
		}
	}
	return errf("Other", "dependencies do not establish that every operand of %s implies every other", j.Expr)
}

func addBiconditionalEdges(g *graph, d expr.Expr) {
	switch x := d.(type) {
	case expr.Impl:
		g.addEdge(exprKey(x.Antecedent), exprKey(x.Consequent))
	case expr.Assoc:
		if x.Op == expr.Bicon || x.Op == expr.Equiv {
			for i := range x.Operands {
				for k := range x.Operands {
					if i != k {
						g.addEdge(exprKey(x.Operands[i]), exprKey(x.Operands[k]))
					}
				}
			}
		}
	}
}

func containsAll(haystack []string, needles []string) bool {
	set := map[string]struct{}{}
	for _, h := range haystack {
		set[h] = struct{}{}
	}
	for _, n := range needles {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

// checkBiconditionalElim accepts either: one Bicon dependency plus a
// conclusion that is an Impl between two of its operands in either
// direction; or a Bicon dependency plus a second dependency equal to one
// operand, concluding another operand (since every operand of a
// biconditional chain shares one truth value).
func checkBiconditionalElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	return checkChainElim(p, j, expr.Bicon)
}

func checkEquivalenceElim(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	return checkChainElim(p, j, expr.Equiv)
}

func checkChainElim(p *proof.Pool, j proof.Justification, op expr.AssocOp) error {
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	var chain *expr.Assoc
	var other []expr.Expr
	for _, d := range deps {
		if a, ok := d.(expr.Assoc); ok && a.Op == op && chain == nil {
			chain = &a
			continue
		}
		other = append(other, d)
	}
	if chain == nil {
		return errf("DepOfWrongForm", "one dependency must be a biconditional/equivalence chain")
	}
	switch len(other) {
	case 0:
		impl, ok := j.Expr.(expr.Impl)
		if !ok {
			return errf("ConclusionOfWrongForm", "conclusion must be an implication between two chain operands")
		}
		if operandPresent(*chain, impl.Antecedent) && operandPresent(*chain, impl.Consequent) {
			return nil
		}
		return errf("ConclusionOfWrongForm", "implication's operands are not both members of the chain")
	case 1:
		if !operandPresent(*chain, other[0]) {
			return errf("DepOfWrongForm", "second dependency is not a member of the chain")
		}
		if !operandPresent(*chain, j.Expr) {
			return errf("ConclusionOfWrongForm", "conclusion is not a member of the chain")
		}
		return nil
	default:
		return errf("IncorrectDepCount", "expected 1 or 2 dependencies")
	}
}

func operandPresent(chain expr.Assoc, target expr.Expr) bool {
	for _, o := range chain.Operands {
		if expr.AlphaEqual(o, target) {
			return true
		}
	}
	return false
}

func checkModusTollens(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 2); err != nil {
		return err
	}
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	impl, other, ok := eitherOrderImpl(deps[0], deps[1])
	if !ok {
		return errf("DepOfWrongForm", "one dependency must be an implication")
	}
	notCons, ok := other.(expr.Not)
	if !ok || !expr.AlphaEqual(notCons.Body, impl.Consequent) {
		return errf("DepOfWrongForm", "other dependency must negate the implication's consequent")
	}
	want := expr.Not{Body: impl.Antecedent}
	if !expr.AlphaEqual(j.Expr, want) {
		return errf("ConclusionOfWrongForm", "conclusion must negate the implication's antecedent")
	}
	return nil
}

func checkHypotheticalSyllogism(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 2); err != nil {
		return err
	}
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	i1, ok1 := deps[0].(expr.Impl)
	i2, ok2 := deps[1].(expr.Impl)
	if !ok1 || !ok2 {
		return errf("DepOfWrongForm", "both dependencies must be implications")
	}
	if !expr.AlphaEqual(i1.Consequent, i2.Antecedent) {
		i1, i2 = i2, i1
		if !expr.AlphaEqual(i1.Consequent, i2.Antecedent) {
			return errf("DepOfWrongForm", "implications do not chain")
		}
	}
	want := expr.Impl{Antecedent: i1.Antecedent, Consequent: i2.Consequent}
	if !expr.AlphaEqual(j.Expr, want) {
		return errf("ConclusionOfWrongForm", "conclusion must chain the antecedent of the first to the consequent of the second")
	}
	return nil
}

func checkExcludedMiddle(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 0); err != nil {
		return err
	}
	or, ok := j.Expr.(expr.Assoc)
	if !ok || or.Op != expr.Or || len(or.Operands) != 2 {
		return errf("ConclusionOfWrongForm", "conclusion must be a two-way disjunction")
	}
	not, ok := or.Operands[1].(expr.Not)
	if ok && expr.AlphaEqual(not.Body, or.Operands[0]) {
		return nil
	}
	not, ok = or.Operands[0].(expr.Not)
	if ok && expr.AlphaEqual(not.Body, or.Operands[1]) {
		return nil
	}
	return errf("ConclusionOfWrongForm", "disjunction must be a formula and its negation")
}

func checkConstructiveDilemma(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 3); err != nil {
		return err
	}
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	i1, i2, disj, ok := twoImplsAndDisjunction(deps)
	if !ok {
		return errf("DepOfWrongForm", "dependencies must be two implications and a disjunction of their antecedents")
	}
	if !(operandMatches(disj, i1.Antecedent, i2.Antecedent)) {
		return errf("DepOfWrongForm", "disjunction must be over the two implications' antecedents")
	}
	want := expr.Assoc{Op: expr.Or, Operands: []expr.Expr{i1.Consequent, i2.Consequent}}
	if !alphaEqualAnyOrder(j.Expr, want) {
		return errf("ConclusionOfWrongForm", "conclusion must be the disjunction of the two consequents")
	}
	return nil
}

func checkDestructiveDilemma(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 3); err != nil {
		return err
	}
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	i1, i2, disj, ok := twoImplsAndDisjunction(deps)
	if !ok {
		return errf("DepOfWrongForm", "dependencies must be two implications and a disjunction of their negated consequents")
	}
	negConsequent1 := expr.Not{Body: i1.Consequent}
	negConsequent2 := expr.Not{Body: i2.Consequent}
	if !operandMatches(disj, negConsequent1, negConsequent2) {
		return errf("DepOfWrongForm", "disjunction must be over the negated consequents")
	}
	want := expr.Assoc{Op: expr.Or, Operands: []expr.Expr{expr.Not{Body: i1.Antecedent}, expr.Not{Body: i2.Antecedent}}}
	if !alphaEqualAnyOrder(j.Expr, want) {
		return errf("ConclusionOfWrongForm", "conclusion must be the disjunction of the negated antecedents")
	}
	return nil
}

func twoImplsAndDisjunction(deps []expr.Expr) (expr.Impl, expr.Impl, expr.Assoc, bool) {
	var impls []expr.Impl
	var disj *expr.Assoc
	for _, d := range deps {
		if i, ok := d.(expr.Impl); ok {
			impls = append(impls, i)
			continue
		}
		if a, ok := d.(expr.Assoc); ok && a.Op == expr.Or && disj == nil {
			disj = &a
		}
	}
	if len(impls) != 2 || disj == nil {
		return expr.Impl{}, expr.Impl{}, expr.Assoc{}, false
	}
	return impls[0], impls[1], *disj, true
}

func operandMatches(a expr.Assoc, x, y expr.Expr) bool {
	if len(a.Operands) != 2 {
		return false
	}
	return (expr.AlphaEqual(a.Operands[0], x) && expr.AlphaEqual(a.Operands[1], y)) ||
		(expr.AlphaEqual(a.Operands[0], y) && expr.AlphaEqual(a.Operands[1], x))
}

func alphaEqualAnyOrder(a, b expr.Expr) bool {
	aa, ok1 := a.(expr.Assoc)
	bb, ok2 := b.(expr.Assoc)
	if !ok1 || !ok2 || aa.Op != bb.Op || len(aa.Operands) != len(bb.Operands) {
		return expr.AlphaEqual(a, b)
	}
	return operandMatches(bb, aa.Operands[0], aa.Operands[1])
}

// checkDisjunctiveSyllogism: from a disjunction and the negation of one of
// its disjuncts, derive the disjunction of the rest.
func checkDisjunctiveSyllogism(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
	if err := requireDepCount(j, 2); err != nil {
		return err
	}
	deps, err := depExprs(p, j)
	if err != nil {
		return err
	}
	var disj *expr.Assoc
	var negated expr.Expr
	for _, d := range deps {
		if a, ok := d.(expr.Assoc); ok && a.Op == expr.Or && disj == nil {
			disj = &a
			continue
		}
		negated = d
	}
	if disj == nil || negated == nil {
		return errf("DepOfWrongForm", "dependencies must be a disjunction and a negated disjunct")
	}
	not, ok := negated.(expr.Not)
	if !ok {
		return errf("DepOfWrongForm", "second dependency must be a negation")
	}
	var remaining []expr.Expr
	removed := false
	for _, o := range disj.Operands {
		if !removed && expr.AlphaEqual(o, not.Body) {
			removed = true
			continue
		}
		remaining = append(remaining, o)
	}
	if !removed {
		return errf("DoesNotOccur", "negated disjunct does not occur in the disjunction")
	}
	want := expr.FromDisjuncts(remaining)
	if !expr.AlphaEqual(j.Expr, want) {
		return errf("ConclusionOfWrongForm", "conclusion must be the disjunction with the negated disjunct removed")
	}
	return nil
}

// checkHalfDeMorgan verifies the one-directional inference form of De
// Morgan's law (as opposed to the bidirectional equivalence bundle): from
// ¬(a ∧ b ∧ ...) derive ¬a ∨ ¬b ∨ ..., or from ¬(a ∨ b ∨ ...) derive
// ¬a ∧ ¬b ∧ ....
func checkHalfDeMorgan(p *proof.Pool, ref proof.LineRef, j proof.Justification) error {
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
	a, ok := not.Body.(expr.Assoc)
	if !ok || (a.Op != expr.And && a.Op != expr.Or) {
		return errf("DepOfWrongForm", "negated formula must be a conjunction or disjunction")
	}
	wantOp := expr.Or
	if a.Op == expr.Or {
		wantOp = expr.And
	}
	negated := make([]expr.Expr, len(a.Operands))
	for i, o := range a.Operands {
		negated[i] = expr.Not{Body: o}
	}
	want := expr.Assoc{Op: wantOp, Operands: negated}
	if !expr.AlphaEqual(expr.SortCommutativeOps(j.Expr), expr.SortCommutativeOps(want)) {
		return errf("ConclusionOfWrongForm", "conclusion must negate every operand and flip the connective")
	}
	return nil
}
