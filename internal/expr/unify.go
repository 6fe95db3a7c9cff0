package expr

// Constraint is an equation between two expressions awaiting unification.
type Constraint struct {
	Left, Right Expr
}

// Substitution is a single variable-name to expression binding.
type Substitution struct {
	Name string
	Expr Expr
}

// Unify attempts to solve a set of constraints via Robinson-style
// unification, returning the resulting substitutions as a map from variable
// name to replacement, or ok=false if the constraints are contradictory (rigid-rigid
// mismatch, or an occurs-check failure).
//
// Quantifiers unify via a fresh "__unification_var" substitute for the bound
// name on both sides: if that fresh symbol then leaks into the solution (it
// appears in some substitution's replacement), the quantified variables were
// not actually interchangeable and unification fails. This mirrors the
// leak-check in the source's unify.
func Unify(constraints []Constraint) (map[string]Expr, bool) {
	work := append([]Constraint(nil), constraints...)
	subs := map[string]Expr{}

	for len(work) > 0 {
		c := work[0]
		work = work[1:]
		l := SubstAll(subs, c.Left)
		r := SubstAll(subs, c.Right)

		switch {
		case Equal(l, r):
			continue
		}

		if lv, ok := l.(Var); ok {
			if occurs(lv.Name, r) {
				if Equal(l, r) {
					continue
				}
				return nil, false
			}
			applySubst(subs, lv.Name, r)
			subs[lv.Name] = r
			work = substWork(work, lv.Name, r)
			continue
		}
		if rv, ok := r.(Var); ok {
			if occurs(rv.Name, l) {
				return nil, false
			}
			applySubst(subs, rv.Name, l)
			subs[rv.Name] = l
			work = substWork(work, rv.Name, l)
			continue
		}

		switch lx := l.(type) {
		case Bottom:
			if _, ok := r.(Bottom); !ok {
				return nil, false
			}
		case Top:
			if _, ok := r.(Top); !ok {
				return nil, false
			}
		case Apply:
			rx, ok := r.(Apply)
			if !ok || len(lx.Args) != len(rx.Args) {
				return nil, false
			}
			work = append(work, Constraint{lx.Head, rx.Head})
			for i := range lx.Args {
				work = append(work, Constraint{lx.Args[i], rx.Args[i]})
			}
		case Not:
			rx, ok := r.(Not)
			if !ok {
				return nil, false
			}
			work = append(work, Constraint{lx.Body, rx.Body})
		case Impl:
			rx, ok := r.(Impl)
			if !ok {
				return nil, false
			}
			work = append(work, Constraint{lx.Antecedent, rx.Antecedent})
			work = append(work, Constraint{lx.Consequent, rx.Consequent})
		case Assoc:
			rx, ok := r.(Assoc)
			if !ok || lx.Op != rx.Op || len(lx.Operands) != len(rx.Operands) {
				return nil, false
			}
			for i := range lx.Operands {
				work = append(work, Constraint{lx.Operands[i], rx.Operands[i]})
			}
		case Quant:
			rx, ok := r.(Quant)
			if !ok || lx.Kind != rx.Kind {
				return nil, false
			}
			fresh := freshUnificationVar()
			lBody := Subst(lx.Name, Var{Name: fresh}, lx.Body)
			rBody := Subst(rx.Name, Var{Name: fresh}, rx.Body)
			work = append(work, Constraint{lBody, rBody})
		default:
			return nil, false
		}
	}

	for _, repl := range subs {
		if leaksUnificationVar(repl) {
			return nil, false
		}
	}

	return subs, true
}

func occurs(name string, e Expr) bool {
	fv := FreeVars(e)
	_, ok := fv[name]
	return ok
}

func applySubst(subs map[string]Expr, name string, repl Expr) {
	for k, v := range subs {
		subs[k] = Subst(name, repl, v)
		_ = v
	}
}

func substWork(work []Constraint, name string, repl Expr) []Constraint {
	out := make([]Constraint, len(work))
	for i, c := range work {
		out[i] = Constraint{Subst(name, repl, c.Left), Subst(name, repl, c.Right)}
	}
	return out
}

func leaksUnificationVar(e Expr) bool {
	fv := FreeVars(e)
	for name := range fv {
		if len(name) >= len("__unification_var") && name[:len("__unification_var")] == "__unification_var" {
			return true
		}
	}
	return false
}
