package expr

import "fmt"

// InferArities walks e and records, for every Apply whose head is a Var, the
// number of arguments it was applied with. It returns an error if the same
// name is ever applied with two different argument counts, or if an Apply's
// head is not a Var — the parser never produces the latter, so this is an
// invariant violation rather than a user-facing error (mirrors the source's
// infer_arities, which panics on a non-Var Apply.func).
func InferArities(e Expr) (map[string]int, error) {
	out := map[string]int{}
	if err := inferArities(e, out); err != nil {
		return nil, err
	}
	return out, nil
}

func inferArities(e Expr, out map[string]int) error {
	switch x := e.(type) {
	case Bottom, Top, Var:
		return nil
	case Apply:
		hv, ok := x.Head.(Var)
		if !ok {
			return fmt.Errorf("infer arities: apply head %v is not a variable", x.Head)
		}
		n := len(x.Args)
		if existing, ok := out[hv.Name]; ok && existing != n {
			return fmt.Errorf("infer arities: %q used with both arity %d and %d", hv.Name, existing, n)
		}
		out[hv.Name] = n
		for _, a := range x.Args {
			if err := inferArities(a, out); err != nil {
				return err
			}
		}
		return nil
	case Not:
		return inferArities(x.Body, out)
	case Impl:
		if err := inferArities(x.Antecedent, out); err != nil {
			return err
		}
		return inferArities(x.Consequent, out)
	case Assoc:
		for _, o := range x.Operands {
			if err := inferArities(o, out); err != nil {
				return err
			}
		}
		return nil
	case Quant:
		return inferArities(x.Body, out)
	default:
		return nil
	}
}
