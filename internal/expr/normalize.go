package expr

// SortCommutativeOps canonicalizes the operand order of every commutative
// Assoc node in e, using Less as the total order. Two expressions that
// differ only in the order of a commutative connective's operands become
// structurally Equal after this pass.
func SortCommutativeOps(e Expr) Expr {
	return Transform(e, func(n Expr) (Expr, bool) {
		a, ok := n.(Assoc)
		if !ok || !a.Op.IsCommutative() || isSorted(a.Operands) {
			return n, false
		}
		ops := append([]Expr(nil), a.Operands...)
		sortExprs(ops)
		return Assoc{Op: a.Op, Operands: ops}, true
	})
}

// CombineAssociativeOps flattens nested Assoc nodes of the same operator
// into a single n-ary node, e.g. (a ∧ (b ∧ c)) becomes (a ∧ b ∧ c).
func CombineAssociativeOps(e Expr) Expr {
	return Transform(e, func(n Expr) (Expr, bool) {
		a, ok := n.(Assoc)
		if !ok {
			return n, false
		}
		changed := false
		var ops []Expr
		for _, o := range a.Operands {
			if inner, ok := o.(Assoc); ok && inner.Op == a.Op {
				ops = append(ops, inner.Operands...)
				changed = true
				continue
			}
			ops = append(ops, o)
		}
		if !changed {
			return n, false
		}
		return Assoc{Op: a.Op, Operands: ops}, true
	})
}

// NormalizeDeMorgans pushes a negation of a conjunction/disjunction inward,
// rewriting ¬(a ∧ b ∧ ...) to (¬a ∨ ¬b ∨ ...) and vice versa.
func NormalizeDeMorgans(e Expr) Expr {
	return Transform(e, func(n Expr) (Expr, bool) {
		not, ok := n.(Not)
		if !ok {
			return n, false
		}
		a, ok := not.Body.(Assoc)
		if !ok || (a.Op != And && a.Op != Or) {
			return n, false
		}
		negated := make([]Expr, len(a.Operands))
		for i, o := range a.Operands {
			negated[i] = Not{Body: o}
		}
		newOp := Or
		if a.Op == Or {
			newOp = And
		}
		return Assoc{Op: newOp, Operands: negated}, true
	})
}

// NormalizeIdempotence collapses duplicate operands of a commutative Assoc
// node, e.g. (a ∧ a ∧ b) becomes (a ∧ b). Operands are compared with Equal
// after SortCommutativeOps would already have canonicalized their order;
// this pass does not assume sortedness so it can run independently.
func NormalizeIdempotence(e Expr) Expr {
	return Transform(e, func(n Expr) (Expr, bool) {
		a, ok := n.(Assoc)
		if !ok || !a.Op.IsCommutative() {
			return n, false
		}
		var deduped []Expr
		for _, o := range a.Operands {
			dup := false
			for _, seen := range deduped {
				if Equal(seen, o) {
					dup = true
					break
				}
			}
			if !dup {
				deduped = append(deduped, o)
			}
		}
		if len(deduped) == len(a.Operands) {
			return n, false
		}
		if len(deduped) == 1 {
			return deduped[0], true
		}
		return Assoc{Op: a.Op, Operands: deduped}, true
	})
}

// NegateQuantifiers rewrites ¬∀x,P to ∃x,¬P and ¬∃x,P to ∀x,¬P.
func NegateQuantifiers(e Expr) Expr {
	return Transform(e, func(n Expr) (Expr, bool) {
		not, ok := n.(Not)
		if !ok {
			return n, false
		}
		q, ok := not.Body.(Quant)
		if !ok {
			return n, false
		}
		return Quant{Kind: q.Kind.Opposite(), Name: q.Name, Body: Not{Body: q.Body}}, true
	})
}

// NormalizeNullQuantifiers drops a quantifier whose bound variable does not
// occur free in its body, since such a quantifier is vacuous.
func NormalizeNullQuantifiers(e Expr) Expr {
	return Transform(e, func(n Expr) (Expr, bool) {
		q, ok := n.(Quant)
		if !ok {
			return n, false
		}
		fv := FreeVars(q.Body)
		if _, bound := fv[q.Name]; bound {
			return n, false
		}
		return q.Body, true
	})
}

// ReplacingBoundVars canonicalizes every quantifier's bound name to a
// position-based De Bruijn-style name, so that alpha-equivalent expressions
// become structurally Equal. gamma tracks the stack of enclosing bound
// names from outermost to innermost, mirroring the source's gamma stack.
func ReplacingBoundVars(e Expr) Expr {
	return replacingBoundVars(e, nil)
}

func replacingBoundVars(e Expr, gamma []string) Expr {
	switch x := e.(type) {
	case Bottom, Top:
		return e
	case Var:
		for i := len(gamma) - 1; i >= 0; i-- {
			if gamma[i] == x.Name {
				return Var{Name: debruijnName(len(gamma) - 1 - i)}
			}
		}
		return x
	case Apply:
		args := make([]Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = replacingBoundVars(a, gamma)
		}
		return Apply{Head: replacingBoundVars(x.Head, gamma), Args: args}
	case Not:
		return Not{Body: replacingBoundVars(x.Body, gamma)}
	case Impl:
		return Impl{
			Antecedent: replacingBoundVars(x.Antecedent, gamma),
			Consequent: replacingBoundVars(x.Consequent, gamma),
		}
	case Assoc:
		ops := make([]Expr, len(x.Operands))
		for i, o := range x.Operands {
			ops[i] = replacingBoundVars(o, gamma)
		}
		return Assoc{Op: x.Op, Operands: ops}
	case Quant:
		inner := append(append([]string(nil), gamma...), x.Name)
		return Quant{Kind: x.Kind, Name: debruijnName(len(gamma)), Body: replacingBoundVars(x.Body, inner)}
	default:
		return e
	}
}

func debruijnName(depth int) string {
	return "#" + itoa(depth)
}

// SwapQuantifiers exchanges adjacent like quantifiers' bound-variable
// positions: ∀x,∀y,P becomes ∀y,∀x,P. It is a no-op unless the body's
// outermost node is itself a quantifier of the same kind.
func SwapQuantifiers(e Expr) Expr {
	q, ok := e.(Quant)
	if !ok {
		return e
	}
	inner, ok := q.Body.(Quant)
	if !ok || inner.Kind != q.Kind {
		return e
	}
	return Quant{Kind: q.Kind, Name: inner.Name, Body: Quant{Kind: q.Kind, Name: q.Name, Body: inner.Body}}
}

// AristoteleanSquare rewrites between the four classical corners of the
// square of opposition for a single quantifier over an implication or
// conjunction body: ∀x,(P→Q) / ¬∃x,(P∧¬Q) and ∃x,(P∧Q) / ¬∀x,(P→¬Q).
func AristoteleanSquare(e Expr) (Expr, bool) {
	switch x := e.(type) {
	case Quant:
		if x.Kind == Forall {
			if impl, ok := x.Body.(Impl); ok {
				return Not{Body: Quant{Kind: Exists, Name: x.Name, Body: Assoc{Op: And, Operands: []Expr{impl.Antecedent, Not{Body: impl.Consequent}}}}}, true
			}
		}
		if x.Kind == Exists {
			if and, ok := x.Body.(Assoc); ok && and.Op == And && len(and.Operands) == 2 {
				return Not{Body: Quant{Kind: Forall, Name: x.Name, Body: Impl{Antecedent: and.Operands[0], Consequent: Not{Body: and.Operands[1]}}}}, true
			}
		}
	case Not:
		if q, ok := x.Body.(Quant); ok {
			if q.Kind == Exists {
				if and, ok := q.Body.(Assoc); ok && and.Op == And && len(and.Operands) == 2 {
					return Quant{Kind: Forall, Name: q.Name, Body: Impl{Antecedent: and.Operands[0], Consequent: Not{Body: and.Operands[1]}}}, true
				}
			}
			if q.Kind == Forall {
				if impl, ok := q.Body.(Impl); ok {
					return Quant{Kind: Exists, Name: q.Name, Body: Assoc{Op: And, Operands: []Expr{impl.Antecedent, Not{Body: impl.Consequent}}}}, true
				}
			}
		}
	}
	return e, false
}

// QuantifierDistribution distributes a quantifier over a conjunction (for
// ∀) or disjunction (for ∃) of its body's top-level operands, when doing so
// is sound: a universal distributes freely over ∧, and an existential over
// ∨, in both directions.
func QuantifierDistribution(e Expr) (Expr, bool) {
	q, ok := e.(Quant)
	if !ok {
		return e, false
	}
	a, ok := q.Body.(Assoc)
	if !ok {
		return e, false
	}
	if (q.Kind == Forall && a.Op == And) || (q.Kind == Exists && a.Op == Or) {
		ops := make([]Expr, len(a.Operands))
		for i, o := range a.Operands {
			ops[i] = Quant{Kind: q.Kind, Name: q.Name, Body: o}
		}
		return Assoc{Op: a.Op, Operands: ops}, true
	}
	return e, false
}

// NormalizePrenexLaws implements the four prenex-form laws in the inward
// direction (§ expression algebra, rules 7a-7d): a quantifier over an
// And/Or/Impl whose quantified variable is free in only one operand is moved
// in onto that operand.
func NormalizePrenexLaws(e Expr) (Expr, bool) {
	q, ok := e.(Quant)
	if !ok {
		return e, false
	}
	switch body := q.Body.(type) {
	case Assoc:
		if len(body.Operands) != 2 || (body.Op != And && body.Op != Or) {
			return e, false
		}
		l, r := body.Operands[0], body.Operands[1]
		_, lFree := FreeVars(l)[q.Name]
		_, rFree := FreeVars(r)[q.Name]
		if lFree && !rFree {
			return Assoc{Op: body.Op, Operands: []Expr{Quant{Kind: q.Kind, Name: q.Name, Body: l}, r}}, true
		}
		if rFree && !lFree {
			return Assoc{Op: body.Op, Operands: []Expr{l, Quant{Kind: q.Kind, Name: q.Name, Body: r}}}, true
		}
	case Impl:
		_, lFree := FreeVars(body.Antecedent)[q.Name]
		_, rFree := FreeVars(body.Consequent)[q.Name]
		if lFree && !rFree {
			return Impl{Antecedent: Quant{Kind: q.Kind.Opposite(), Name: q.Name, Body: body.Antecedent}, Consequent: body.Consequent}, true
		}
		if rFree && !lFree {
			return Impl{Antecedent: body.Antecedent, Consequent: Quant{Kind: q.Kind, Name: q.Name, Body: body.Consequent}}, true
		}
	}
	return e, false
}
