package expr

// Subst replaces every free occurrence of name with replacement inside e,
// renaming bound quantifier variables as needed to avoid capturing a free
// variable of replacement. This is the three-case logic from the source's
// subst: a quantifier binding a different name than the substituted variable
// either passes through unchanged, is renamed first if its bound name
// occurs free in replacement, or (if it binds the same name being
// substituted) stops the substitution at that boundary.
func Subst(name string, replacement Expr, e Expr) Expr {
	switch x := e.(type) {
	case Bottom, Top:
		return e
	case Var:
		if x.Name == name {
			return replacement
		}
		return x
	case Apply:
		args := make([]Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = Subst(name, replacement, a)
		}
		return Apply{Head: Subst(name, replacement, x.Head), Args: args}
	case Not:
		return Not{Body: Subst(name, replacement, x.Body)}
	case Impl:
		return Impl{
			Antecedent: Subst(name, replacement, x.Antecedent),
			Consequent: Subst(name, replacement, x.Consequent),
		}
	case Assoc:
		ops := make([]Expr, len(x.Operands))
		for i, o := range x.Operands {
			ops[i] = Subst(name, replacement, o)
		}
		return Assoc{Op: x.Op, Operands: ops}
	case Quant:
		if x.Name == name {
			// Substituted variable is shadowed here; nothing inside changes.
			return x
		}
		replFree := FreeVars(replacement)
		if _, captured := replFree[x.Name]; captured {
			bodyFree := FreeVars(x.Body)
			avoid := map[string]struct{}{}
			for k := range bodyFree {
				avoid[k] = struct{}{}
			}
			for k := range replFree {
				avoid[k] = struct{}{}
			}
			fresh := Gensym(x.Name+"_", avoid)
			renamedBody := Subst(x.Name, Var{Name: fresh}, x.Body)
			return Quant{Kind: x.Kind, Name: fresh, Body: Subst(name, replacement, renamedBody)}
		}
		return Quant{Kind: x.Kind, Name: x.Name, Body: Subst(name, replacement, x.Body)}
	default:
		return e
	}
}

// SubstAll applies a map of substitutions to e in an arbitrary but fixed
// order; this is safe for the disjoint substitutions produced by unification
// and rewrite-pattern matching, where each replacement's free variables never
// mention another key of the map being substituted next.
func SubstAll(subs map[string]Expr, e Expr) Expr {
	for name, repl := range subs {
		e = Subst(name, repl, e)
	}
	return e
}
