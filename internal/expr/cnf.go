package expr

// Disjuncts returns the top-level disjuncts of e: the operands if e is an
// Or-Assoc, a one-element slice of e otherwise (treating a non-disjunction
// as a single disjunct), and an empty slice for Bottom (the identity of Or).
func Disjuncts(e Expr) []Expr {
	if _, ok := e.(Bottom); ok {
		return nil
	}
	if a, ok := e.(Assoc); ok && a.Op == Or {
		return a.Operands
	}
	return []Expr{e}
}

// FromDisjuncts is the inverse of Disjuncts: Bottom for no disjuncts, the
// single element for one, otherwise an Or-Assoc.
func FromDisjuncts(es []Expr) Expr {
	switch len(es) {
	case 0:
		return Bottom{}
	case 1:
		return es[0]
	default:
		return Assoc{Op: Or, Operands: es}
	}
}

// Conjuncts returns the top-level conjuncts of e, symmetric to Disjuncts.
func Conjuncts(e Expr) []Expr {
	if _, ok := e.(Top); ok {
		return nil
	}
	if a, ok := e.(Assoc); ok && a.Op == And {
		return a.Operands
	}
	return []Expr{e}
}

// FromConjuncts is the inverse of Conjuncts.
func FromConjuncts(es []Expr) Expr {
	switch len(es) {
	case 0:
		return Top{}
	case 1:
		return es[0]
	default:
		return Assoc{Op: And, Operands: es}
	}
}

// Literal is a CNF literal: a propositional atom (a Var, or a ⊤, ⊥,
// biconditional or equivalence subexpression kept whole) together with its
// polarity.
type Literal struct {
	Atom     Expr
	Negated  bool
}

// Clause is a disjunction of literals.
type Clause []Literal

// CNF is a conjunction of clauses, the representation consumed by the SAT
// bridge.
type CNF []Clause

// IntoCNF converts a quantifier-free, application-free, arithmetic-free
// boolean expression into conjunctive normal form by rewriting implications
// as disjunctions, pushing negations inward (De Morgan + double-negation
// elimination), distributing Or over And and flattening nested conjunctions.
// Biconditional and equivalence subexpressions and the constants ⊤/⊥ are not
// expanded: each is kept whole as an atom. ok is false, with a nil CNF, when e contains a
// quantifier, a predicate/function application, or arithmetic (Plus/Mult):
// none of those have a truth-functional clause representation, so a SAT
// bridge built on CNF can't be asked about them.
func IntoCNF(e Expr) (cnf CNF, ok bool) {
	if hasUnsupportedForCNF(e) {
		return nil, false
	}
	e = pushNegations(e)
	e = CombineAssociativeOps(distributeOrOverAnd(e))
	var clauses []Clause
	for _, conj := range Conjuncts(e) {
		clauses = append(clauses, toClause(conj))
	}
	return clauses, true
}

// hasUnsupportedForCNF reports whether e contains a quantifier, an
// application, or an arithmetic operator (Plus/Mult), any of which makes e
// ineligible for CNF conversion.
func hasUnsupportedForCNF(e Expr) bool {
	switch x := e.(type) {
	case Quant:
		return true
	case Apply:
		return true
	case Assoc:
		if x.Op == Plus || x.Op == Mult {
			return true
		}
		for _, o := range x.Operands {
			if hasUnsupportedForCNF(o) {
				return true
			}
		}
		return false
	case Not:
		return hasUnsupportedForCNF(x.Body)
	case Impl:
		return hasUnsupportedForCNF(x.Antecedent) || hasUnsupportedForCNF(x.Consequent)
	default:
		return false
	}
}

func pushNegations(e Expr) Expr {
	return Transform(e, func(n Expr) (Expr, bool) {
		if impl, ok := n.(Impl); ok {
			return Assoc{Op: Or, Operands: []Expr{Not{Body: impl.Antecedent}, impl.Consequent}}, true
		}
		not, ok := n.(Not)
		if !ok {
			return n, false
		}
		switch inner := not.Body.(type) {
		case Not:
			return inner.Body, true
		case Assoc:
			if inner.Op == And || inner.Op == Or {
				negated := make([]Expr, len(inner.Operands))
				for i, o := range inner.Operands {
					negated[i] = Not{Body: o}
				}
				op := Or
				if inner.Op == Or {
					op = And
				}
				return Assoc{Op: op, Operands: negated}, true
			}
		case Top:
			return Bottom{}, true
		case Bottom:
			return Top{}, true
		case Impl:
			return Assoc{Op: And, Operands: []Expr{inner.Antecedent, Not{Body: inner.Consequent}}}, true
		}
		return n, false
	})
}

func distributeOrOverAnd(e Expr) Expr {
	return Transform(e, func(n Expr) (Expr, bool) {
		or, ok := n.(Assoc)
		if !ok || or.Op != Or {
			return n, false
		}
		for i, o := range or.Operands {
			if and, ok := o.(Assoc); ok && and.Op == And {
				rest := make([]Expr, 0, len(or.Operands)-1)
				rest = append(rest, or.Operands[:i]...)
				rest = append(rest, or.Operands[i+1:]...)
				distributed := make([]Expr, len(and.Operands))
				for j, conjunct := range and.Operands {
					distributed[j] = Assoc{Op: Or, Operands: append(append([]Expr(nil), rest...), conjunct)}
				}
				return Assoc{Op: And, Operands: distributed}, true
			}
		}
		return n, false
	})
}

func toClause(e Expr) Clause {
	var clause Clause
	e = Transform(e, func(n Expr) (Expr, bool) { return n, false })
	for _, d := range flattenOr(e) {
		if not, ok := d.(Not); ok {
			clause = append(clause, Literal{Atom: not.Body, Negated: true})
		} else {
			clause = append(clause, Literal{Atom: d, Negated: false})
		}
	}
	return clause
}

func flattenOr(e Expr) []Expr {
	if a, ok := e.(Assoc); ok && a.Op == Or {
		var out []Expr
		for _, o := range a.Operands {
			out = append(out, flattenOr(o)...)
		}
		return out
	}
	return []Expr{e}
}
