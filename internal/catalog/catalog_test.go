package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aris/internal/expr"
)

// TestPropositionalBundlesAreTautologicallyEquivalent checks every
// propositional bundle's declared (lhs, rhs) pairs agree under every
// boolean assignment to their free variables, i.e. lhs ↔ rhs is a
// tautology. This is the catalog-correctness property every equivalence
// rule must satisfy: an equivalence rule that isn't actually an
// equivalence would let a proof "derive" a falsehood from a truth.
func TestPropositionalBundlesAreTautologicallyEquivalent(t *testing.T) {
	for _, name := range PropositionalBundles {
		name := name
		t.Run(name, func(t *testing.T) {
			bundle, ok := Catalog[name]
			require.True(t, ok, "bundle %q must be registered", name)
			for i, pr := range bundle.Pairs {
				assertEquivalent(t, name, i, pr[0], pr[1])
			}
		})
	}
}

func assertEquivalent(t *testing.T, bundle string, idx int, lhs, rhs expr.Expr) {
	t.Helper()
	names := varNames(lhs, rhs)
	for assignment := range allAssignments(names) {
		lv, err := expr.Eval(lhs, assignment)
		require.NoError(t, err, "%s pair %d lhs under %v", bundle, idx, assignment)
		rv, err := expr.Eval(rhs, assignment)
		require.NoError(t, err, "%s pair %d rhs under %v", bundle, idx, assignment)
		assert.Equal(t, lv, rv, "%s pair %d disagrees under assignment %v", bundle, idx, assignment)
	}
}

func varNames(es ...expr.Expr) []string {
	seen := map[string]struct{}{}
	for _, e := range es {
		for n := range expr.FreeVars(e) {
			seen[n] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	return names
}

// allAssignments yields every boolean assignment over names as a channel,
// enumerating 2^len(names) combinations via a bitmask.
func allAssignments(names []string) <-chan map[string]bool {
	ch := make(chan map[string]bool)
	go func() {
		defer close(ch)
		total := 1 << len(names)
		for mask := 0; mask < total; mask++ {
			assignment := make(map[string]bool, len(names))
			for i, n := range names {
				assignment[n] = mask&(1<<i) != 0
			}
			ch <- assignment
		}
	}()
	return ch
}

func TestApplyUnknownBundleIsNoop(t *testing.T) {
	e := expr.Var{"p"}
	out, changed := Apply("NotARealBundle", e)
	assert.False(t, changed)
	assert.True(t, expr.Equal(out, e))
}

func TestApplyDeMorgan(t *testing.T) {
	e := expr.Not{Body: expr.Assoc{Op: expr.And, Operands: []expr.Expr{expr.Var{"a"}, expr.Var{"b"}}}}
	out, changed := Apply("DeMorgan", e)
	require.True(t, changed)
	expected := expr.Assoc{Op: expr.Or, Operands: []expr.Expr{expr.Not{Body: expr.Var{"a"}}, expr.Not{Body: expr.Var{"b"}}}}
	assert.True(t, expr.Equal(out, expected))
}
