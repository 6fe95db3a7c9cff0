// Package catalog holds the named equivalence-rule bundles consumed by the
// rule-checking engine's equivalence-family rules (DeMorgan, Association,
// Commutation, and so on). Each bundle is a set of (lhs, rhs) patterns built
// with the rewrite package; bundles whose patterns are purely propositional
// are truth-table-verified in catalog_test.go.
package catalog

import (
	"aris/internal/expr"
	"aris/internal/rewrite"
)

var p = expr.Var{"p"}
var q = expr.Var{"q"}
var r = expr.Var{"r"}

func pair(lhs, rhs expr.Expr) [2]expr.Expr { return [2]expr.Expr{lhs, rhs} }

func and(es ...expr.Expr) expr.Expr { return expr.Assoc{Op: expr.And, Operands: es} }
func or(es ...expr.Expr) expr.Expr  { return expr.Assoc{Op: expr.Or, Operands: es} }
func bicon(es ...expr.Expr) expr.Expr { return expr.Assoc{Op: expr.Bicon, Operands: es} }
func not(e expr.Expr) expr.Expr     { return expr.Not{Body: e} }
func impl(a, c expr.Expr) expr.Expr { return expr.Impl{Antecedent: a, Consequent: c} }

// Bundle is a named, bidirectional equivalence rule: matching either side
// of any declared pair rewrites to the other. Pairs holds the originally
// declared (not yet permuted) (lhs, rhs) patterns, used by the truth-table
// verification harness in catalog_test.go.
type Bundle struct {
	Name  string
	Rule  rewrite.Rule
	Pairs [][2]expr.Expr
}

func bidirectional(name string, vars map[string]struct{}, pairs ...[2]expr.Expr) Bundle {
	var both [][2]expr.Expr
	for _, pr := range pairs {
		both = append(both, pr, [2]expr.Expr{pr[1], pr[0]})
	}
	return Bundle{Name: name, Rule: rewrite.FromPatterns(name, both, vars), Pairs: pairs}
}

var pq = rewrite.MustParseVars("p", "q")
var pqr = rewrite.MustParseVars("p", "q", "r")
var justP = rewrite.MustParseVars("p")

// Catalog is every propositional equivalence bundle named in the rule
// taxonomy, keyed by bundle name. It holds no quantifier bundles.
var Catalog = buildCatalog()

func buildCatalog() map[string]Bundle {
	bundles := []Bundle{
		bidirectional("DeMorgan", pq,
			pair(not(and(p, q)), or(not(p), not(q))),
			pair(not(or(p, q)), and(not(p), not(q))),
		),
		bidirectional("Association", pqr,
			pair(and(and(p, q), r), and(p, and(q, r))),
			pair(or(or(p, q), r), or(p, or(q, r))),
		),
		bidirectional("Commutation", pq,
			pair(and(p, q), and(q, p)),
			pair(or(p, q), or(q, p)),
			pair(bicon(p, q), bicon(q, p)),
		),
		bidirectional("Idempotence", justP,
			pair(and(p, p), p),
			pair(or(p, p), p),
		),
		bidirectional("Distribution", pqr,
			pair(and(p, or(q, r)), or(and(p, q), and(p, r))),
			pair(or(p, and(q, r)), and(or(p, q), or(p, r))),
		),
		bidirectional("DoubleNegation", justP,
			pair(not(not(p)), p),
		),
		bidirectional("Complement", justP,
			pair(and(p, not(p)), expr.Bottom{}),
			pair(or(p, not(p)), expr.Top{}),
		),
		bidirectional("Identity", justP,
			pair(and(p, expr.Top{}), p),
			pair(or(p, expr.Bottom{}), p),
		),
		bidirectional("Annihilation", justP,
			pair(and(p, expr.Bottom{}), expr.Bottom{}),
			pair(or(p, expr.Top{}), expr.Top{}),
		),
		bidirectional("Inverse", rewrite.MustParseVars(),
			pair(not(expr.Top{}), expr.Bottom{}),
			pair(not(expr.Bottom{}), expr.Top{}),
		),
		bidirectional("Absorption", pq,
			pair(and(p, or(p, q)), p),
			pair(or(p, and(p, q)), p),
		),
		bidirectional("Reduction", pq,
			pair(and(p, or(not(p), q)), and(p, q)),
			pair(or(p, and(not(p), q)), or(p, q)),
		),
		bidirectional("Adjacency", pq,
			pair(and(or(p, q), or(p, not(q))), p),
			pair(or(and(p, q), and(p, not(q))), p),
		),
		bidirectional("ConditionalComplement", justP,
			pair(impl(p, not(p)), not(p)),
		),
		bidirectional("ConditionalIdentity", justP,
			pair(impl(expr.Top{}, p), p),
		),
		bidirectional("ConditionalAnnihilation", justP,
			pair(impl(expr.Bottom{}, p), expr.Top{}),
		),
		bidirectional("ConditionalIdempotence", justP,
			pair(impl(p, p), expr.Top{}),
		),
		bidirectional("Implication", pq,
			pair(impl(p, q), or(not(p), q)),
		),
		bidirectional("BiImplication", pq,
			pair(bicon(p, q), and(impl(p, q), impl(q, p))),
		),
		bidirectional("Contraposition", pq,
			pair(impl(p, q), impl(not(q), not(p))),
		),
		bidirectional("Currying", pqr,
			pair(impl(and(p, q), r), impl(p, impl(q, r))),
		),
		bidirectional("ConditionalDistribution", pqr,
			pair(impl(p, and(q, r)), and(impl(p, q), impl(p, r))),
		),
		bidirectional("ConditionalReduction", pq,
			pair(impl(p, q), impl(p, and(p, q))),
		),
		bidirectional("BiconditionalNegation", pq,
			pair(bicon(p, q), bicon(not(p), not(q))),
		),
		bidirectional("BiconditionalSubstitution", pq,
			pair(bicon(p, q), or(and(p, q), and(not(p), not(q)))),
		),
		bidirectional("KnightsAndKnaves", justP,
			pair(bicon(p, not(p)), expr.Bottom{}),
		),
	}
	out := make(map[string]Bundle, len(bundles))
	for _, b := range bundles {
		out[b.Name] = b
	}
	return out
}

// Apply looks up a named bundle and applies it to e, returning the
// unchanged expression if the bundle name is unknown or no pattern fires.
func Apply(bundleName string, e expr.Expr) (expr.Expr, bool) {
	b, ok := Catalog[bundleName]
	if !ok {
		return e, false
	}
	out := rewrite.Apply(b.Rule, e)
	return out, !expr.Equal(out, e)
}

// Names returns every bundle name in the catalog, for iteration in tests
// and by the rule-checking engine's equivalence-family dispatch.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for n := range Catalog {
		names = append(names, n)
	}
	return names
}

// PropositionalBundles lists the bundle names whose every pattern is
// quantifier-free, i.e. the ones catalog_test.go can truth-table-verify.
var PropositionalBundles = []string{
	"DeMorgan", "Association", "Commutation", "Idempotence", "Distribution",
	"DoubleNegation", "Complement", "Identity", "Annihilation", "Inverse",
	"Absorption", "Reduction", "Adjacency", "ConditionalComplement",
	"ConditionalIdentity", "ConditionalAnnihilation", "ConditionalIdempotence",
	"Implication", "BiImplication", "Contraposition", "Currying",
	"ConditionalDistribution", "ConditionalReduction", "BiconditionalNegation",
	"BiconditionalSubstitution", "KnightsAndKnaves",
}
