// Package rewrite implements named equivalence rules as bidirectional
// rewrite rules over pattern pairs, matched modulo commutativity, grounded
// on the pattern-matching rewriter in the expression algebra's original
// source.
package rewrite

import (
	"fmt"

	"aris/internal/expr"
)

// Rule is a bundle of (pattern, replacement) reductions. Any one reduction
// matching a target expression rewrites it; reductions are tried in order
// and the first match wins, mirroring the source's RewriteRule semantics.
type Rule struct {
	Name       string
	Reductions []Reduction
}

// Reduction is a single pattern/replacement pair, along with the set of
// pattern-variable names that must be fully (and only) bound by a match.
type Reduction struct {
	Pattern     expr.Expr
	Replacement expr.Expr
	Vars        map[string]struct{}
}

// FromPatterns builds a Rule from textual (lhs, rhs) pattern pairs already
// parsed into expressions, expanding each pair into every permutation of
// its commutative operands (PermuteOps) the way the source's
// RewriteRule::from_patterns does, so that a single declared pattern
// matches any reordering of a commutative connective's operands.
func FromPatterns(name string, pairs [][2]expr.Expr, vars map[string]struct{}) Rule {
	var reductions []Reduction
	for _, p := range pairs {
		for _, permuted := range PermuteOps(p[0]) {
			reductions = append(reductions, Reduction{Pattern: permuted, Replacement: p[1], Vars: vars})
		}
	}
	return Rule{Name: name, Reductions: reductions}
}

// PermuteOps returns every expression obtainable from e by permuting the
// operand order of commutative Assoc nodes (recursively), matching the
// source's permute_ops. This can blow up combinatorially for large arity,
// which is acceptable here because catalog patterns are hand-written and
// small (arity <= 4 in every bundle we declare).
func PermuteOps(e expr.Expr) []expr.Expr {
	switch x := e.(type) {
	case expr.Bottom, expr.Top, expr.Var:
		return []expr.Expr{e}
	case expr.Not:
		var out []expr.Expr
		for _, b := range PermuteOps(x.Body) {
			out = append(out, expr.Not{Body: b})
		}
		return out
	case expr.Impl:
		var out []expr.Expr
		for _, a := range PermuteOps(x.Antecedent) {
			for _, c := range PermuteOps(x.Consequent) {
				out = append(out, expr.Impl{Antecedent: a, Consequent: c})
			}
		}
		return out
	case expr.Apply:
		// Applications are not commutative; only permute inside arguments'
		// own substructure, keeping argument order fixed.
		combos := [][]expr.Expr{{}}
		for _, arg := range x.Args {
			options := PermuteOps(arg)
			var next [][]expr.Expr
			for _, c := range combos {
				for _, o := range options {
					next = append(next, append(append([]expr.Expr(nil), c...), o))
				}
			}
			combos = next
		}
		var out []expr.Expr
		for _, c := range combos {
			out = append(out, expr.Apply{Head: x.Head, Args: c})
		}
		return out
	case expr.Quant:
		var out []expr.Expr
		for _, b := range PermuteOps(x.Body) {
			out = append(out, expr.Quant{Kind: x.Kind, Name: x.Name, Body: b})
		}
		return out
	case expr.Assoc:
		optionsPerOperand := make([][]expr.Expr, len(x.Operands))
		for i, o := range x.Operands {
			optionsPerOperand[i] = PermuteOps(o)
		}
		combos := [][]expr.Expr{{}}
		for _, options := range optionsPerOperand {
			var next [][]expr.Expr
			for _, c := range combos {
				for _, o := range options {
					next = append(next, append(append([]expr.Expr(nil), c...), o))
				}
			}
			combos = next
		}
		var out []expr.Expr
		if x.Op.IsCommutative() {
			for _, c := range combos {
				for _, perm := range permutations(c) {
					out = append(out, expr.Assoc{Op: x.Op, Operands: perm})
				}
			}
		} else {
			for _, c := range combos {
				out = append(out, expr.Assoc{Op: x.Op, Operands: c})
			}
		}
		return out
	default:
		return []expr.Expr{e}
	}
}

func permutations(items []expr.Expr) [][]expr.Expr {
	if len(items) <= 1 {
		return [][]expr.Expr{append([]expr.Expr(nil), items...)}
	}
	var out [][]expr.Expr
	for i := range items {
		rest := make([]expr.Expr, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]expr.Expr{items[i]}, p...))
		}
	}
	return out
}

// Apply tries every reduction of r against target (and recursively against
// its subexpressions via expr.Transform) and returns the first rewrite that
// fires, or the unchanged target if none do.
func Apply(r Rule, target expr.Expr) expr.Expr {
	fired := false
	return expr.Transform(target, func(n expr.Expr) (expr.Expr, bool) {
		if fired {
			return n, false
		}
		for _, red := range r.Reductions {
			if out, ok := reduceOne(red, n); ok {
				fired = true
				return out, true
			}
		}
		return n, false
	})
}

// ApplySet runs Apply independently across a slice of expressions,
// mirroring reduce_pattern_set / transform_set for rules that act over a
// whole dependency set rather than a single expression.
func ApplySet(r Rule, targets []expr.Expr) []expr.Expr {
	out := make([]expr.Expr, len(targets))
	for i, t := range targets {
		out[i] = Apply(r, t)
	}
	return out
}

func reduceOne(red Reduction, target expr.Expr) (expr.Expr, bool) {
	pattern, err := freevarsify(red.Pattern, target)
	if err != nil {
		return nil, false
	}
	subs, ok := expr.Unify([]expr.Constraint{{pattern, target}})
	if !ok {
		return nil, false
	}
	for name := range subs {
		if _, isPatternVar := red.Vars[name]; !isPatternVar {
			return nil, false
		}
	}
	for v := range red.Vars {
		if _, bound := subs[v]; !bound {
			return nil, false
		}
	}
	return expr.SubstAll(subs, red.Replacement), true
}

// freevarsify renames the pattern's free variables that are NOT declared
// pattern variables away from anything free in target, so an incidental
// name collision between a pattern's internal scratch variable and the
// target expression can't create a spurious binding. Mirrors the source's
// freevarsify_pattern.
func freevarsify(pattern expr.Expr, target expr.Expr) (expr.Expr, error) {
	targetFree := expr.FreeVars(target)
	patternFree := expr.FreeVars(pattern)
	renamed := pattern
	for name := range patternFree {
		if _, clash := targetFree[name]; clash {
			fresh := expr.Gensym(name+"_", targetFree)
			renamed = expr.Subst(name, expr.Var{Name: fresh}, renamed)
			targetFree[fresh] = struct{}{}
		}
	}
	return renamed, nil
}

// MustParseVars is a small convenience for catalog declarations: it turns a
// list of variable names into the set type Reduction.Vars expects, and
// panics (at catalog-construction time, i.e. program startup) if any name
// is empty — there's no user input involved at this call site.
func MustParseVars(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			panic(fmt.Sprintf("rewrite: empty pattern-variable name in %v", names))
		}
		out[n] = struct{}{}
	}
	return out
}
