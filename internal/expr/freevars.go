package expr

// FreeVars returns the set of free variable names in e, as a set (map to
// struct{}) so callers can test membership in O(1) without re-walking.
func FreeVars(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	freeVars(e, out)
	return out
}

func freeVars(e Expr, out map[string]struct{}) {
	switch x := e.(type) {
	case Bottom, Top:
	case Var:
		out[x.Name] = struct{}{}
	case Apply:
		freeVars(x.Head, out)
		for _, a := range x.Args {
			freeVars(a, out)
		}
	case Not:
		freeVars(x.Body, out)
	case Impl:
		freeVars(x.Antecedent, out)
		freeVars(x.Consequent, out)
	case Assoc:
		for _, o := range x.Operands {
			freeVars(o, out)
		}
	case Quant:
		inner := map[string]struct{}{}
		freeVars(x.Body, inner)
		delete(inner, x.Name)
		for k := range inner {
			out[k] = struct{}{}
		}
	}
}

// gensymCounter backs freshUnificationVar; starting from 0 and incrementing per call is
// enough to guarantee freshness against any name not itself produced by
// Gensym, which is the only invariant subst/unify rely on.
var gensymCounter int

// Gensym produces a variable name derived from base that does not occur in
// avoid. It mirrors the source's gensym: append underscores until unique.
func Gensym(base string, avoid map[string]struct{}) string {
	name := base
	for {
		if _, ok := avoid[name]; !ok {
			return name
		}
		name = name + "_"
	}
}

// freshCounter-based gensym for internal unification variables, distinct
// from the avoid-set based Gensym used by substitution/quantifier logic.
func freshUnificationVar() string {
	gensymCounter++
	return "__unification_var" + itoa(gensymCounter)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
