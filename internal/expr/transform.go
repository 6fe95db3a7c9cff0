package expr

// Rewriter is applied at every node of an expression tree by Transform. It
// returns the (possibly) rewritten node and whether it changed anything.
type Rewriter func(Expr) (Expr, bool)

// Transform applies f bottom-up over e, then repeats the whole pass if f
// reported any change anywhere in the tree, until a full pass makes no
// change (a fixpoint). This mirrors the source's generic transform: a
// single rewrite rule can require several passes to saturate (e.g.
// DeMorgan pushing a negation two levels deeper only becomes visible to the
// next candidate node after the first push completes).
func Transform(e Expr, f Rewriter) Expr {
	for {
		next, changed := transformPass(e, f)
		e = next
		if !changed {
			return e
		}
	}
}

func transformPass(e Expr, f Rewriter) (Expr, bool) {
	changed := false
	switch x := e.(type) {
	case Apply:
		head, c1 := transformPass(x.Head, f)
		changed = changed || c1
		args := make([]Expr, len(x.Args))
		for i, a := range x.Args {
			na, c := transformPass(a, f)
			args[i] = na
			changed = changed || c
		}
		e = Apply{Head: head, Args: args}
	case Not:
		body, c := transformPass(x.Body, f)
		changed = changed || c
		e = Not{Body: body}
	case Impl:
		ant, c1 := transformPass(x.Antecedent, f)
		cons, c2 := transformPass(x.Consequent, f)
		changed = changed || c1 || c2
		e = Impl{Antecedent: ant, Consequent: cons}
	case Assoc:
		ops := make([]Expr, len(x.Operands))
		for i, o := range x.Operands {
			no, c := transformPass(o, f)
			ops[i] = no
			changed = changed || c
		}
		e = Assoc{Op: x.Op, Operands: ops}
	case Quant:
		body, c := transformPass(x.Body, f)
		changed = changed || c
		e = Quant{Kind: x.Kind, Name: x.Name, Body: body}
	}

	next, ok := f(e)
	if ok {
		return next, true
	}
	return e, changed
}

// TransformSet applies Transform independently across a slice of
// expressions, mirroring the source's transform_set used by rewrite rules
// that operate on an entire set of hypotheses (e.g. DisjunctiveSyllogism
// over a set of dependency expressions) rather than a single tree.
func TransformSet(es []Expr, f Rewriter) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = Transform(e, f)
	}
	return out
}
