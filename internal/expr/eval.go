package expr

import "fmt"

// Eval evaluates a quantifier-free boolean expression under assignment,
// mapping each free variable (treated as a zero-arity predicate) to a
// truth value. It returns an error for quantifiers and arithmetic
// operators, which have no boolean interpretation; the source panics on
// these cases, but a library function returning an error is more
// appropriate for a catalog-verification harness that evaluates
// machine-generated expressions at scale.
func Eval(e Expr, assignment map[string]bool) (bool, error) {
	switch x := e.(type) {
	case Bottom:
		return false, nil
	case Top:
		return true, nil
	case Var:
		v, ok := assignment[x.Name]
		if !ok {
			return false, fmt.Errorf("eval: unassigned variable %q", x.Name)
		}
		return v, nil
	case Apply:
		hv, ok := x.Head.(Var)
		if !ok {
			return false, fmt.Errorf("eval: apply head must be a variable")
		}
		v, ok := assignment[hv.Name]
		if !ok {
			return false, fmt.Errorf("eval: unassigned predicate %q", hv.Name)
		}
		return v, nil
	case Not:
		b, err := Eval(x.Body, assignment)
		if err != nil {
			return false, err
		}
		return !b, nil
	case Impl:
		a, err := Eval(x.Antecedent, assignment)
		if err != nil {
			return false, err
		}
		c, err := Eval(x.Consequent, assignment)
		if err != nil {
			return false, err
		}
		return !a || c, nil
	case Assoc:
		return evalAssoc(x, assignment)
	case Quant:
		return false, fmt.Errorf("eval: quantifiers have no boolean interpretation")
	default:
		return false, fmt.Errorf("eval: unsupported expression %T", e)
	}
}

func evalAssoc(x Assoc, assignment map[string]bool) (bool, error) {
	vals := make([]bool, len(x.Operands))
	for i, o := range x.Operands {
		v, err := Eval(o, assignment)
		if err != nil {
			return false, err
		}
		vals[i] = v
	}
	switch x.Op {
	case And:
		for _, v := range vals {
			if !v {
				return false, nil
			}
		}
		return true, nil
	case Or:
		for _, v := range vals {
			if v {
				return true, nil
			}
		}
		return false, nil
	case Bicon:
		// Chained biconditional: true iff consecutive operands agree pairwise,
		// i.e. all operands share the same truth value.
		return allEqual(vals), nil
	case Equiv:
		// The source leaves this case unimplemented; an n-ary equivalence
		// bundle is meaningful only if every operand agrees.
		return allEqual(vals), nil
	case Plus, Mult:
		return false, fmt.Errorf("eval: arithmetic operator %v has no boolean interpretation", x.Op)
	default:
		return false, fmt.Errorf("eval: unknown associative operator")
	}
}

func allEqual(vals []bool) bool {
	if len(vals) == 0 {
		return true
	}
	first := vals[0]
	for _, v := range vals[1:] {
		if v != first {
			return false
		}
	}
	return true
}
