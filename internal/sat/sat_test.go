package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveSatisfiable(t *testing.T) {
	cnf := CNF{
		{{Name: "p", Negated: false}, {Name: "q", Negated: false}},
		{{Name: "p", Negated: true}},
	}
	ok, assignment := Solve(cnf)
	require.True(t, ok)
	assert.False(t, assignment["p"])
	assert.True(t, assignment["q"])
}

func TestSolveUnsatisfiable(t *testing.T) {
	cnf := CNF{
		{{Name: "p", Negated: false}},
		{{Name: "p", Negated: true}},
	}
	ok, _ := Solve(cnf)
	assert.False(t, ok)
}

func TestSolveEmptyCNFIsTrivallySatisfiable(t *testing.T) {
	ok, _ := Solve(CNF{})
	assert.True(t, ok)
}

func TestSolvePigeonholeSmallUnsat(t *testing.T) {
	// p ∨ q, ¬p ∨ q, p ∨ ¬q, ¬p ∨ ¬q is unsatisfiable (p XOR q both ways).
	cnf := CNF{
		{{Name: "p"}, {Name: "q"}},
		{{Name: "p", Negated: true}, {Name: "q"}},
		{{Name: "p"}, {Name: "q", Negated: true}},
		{{Name: "p", Negated: true}, {Name: "q", Negated: true}},
	}
	ok, _ := Solve(cnf)
	assert.False(t, ok)
}
