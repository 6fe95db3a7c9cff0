// Package sat implements a small DPLL satisfiability solver over CNF
// clauses of named boolean literals. No pure-Go SAT library appears
// anywhere in the reference corpus (the original checker this module is
// modeled on links against a native Rust SAT crate with no Go equivalent),
// so this package is deliberately self-contained rather than built on a
// third-party dependency.
package sat

import "sort"

// Literal is a named boolean atom together with its polarity.
type Literal struct {
	Name    string
	Negated bool
}

// Clause is a disjunction of literals.
type Clause []Literal

// CNF is a conjunction of clauses.
type CNF []Clause

// Assignment maps atom names to truth values.
type Assignment map[string]bool

// Solve reports whether cnf is satisfiable, and if so, a satisfying
// assignment (unassigned atoms default to false and may be set to
// whichever value the caller prefers).
func Solve(cnf CNF) (bool, Assignment) {
	atoms := collectAtoms(cnf)
	assignment := Assignment{}
	ok := dpll(cnf, atoms, assignment)
	if !ok {
		return false, nil
	}
	for _, a := range atoms {
		if _, set := assignment[a]; !set {
			assignment[a] = false
		}
	}
	return true, assignment
}

func collectAtoms(cnf CNF) []string {
	seen := map[string]struct{}{}
	for _, clause := range cnf {
		for _, lit := range clause {
			seen[lit.Name] = struct{}{}
		}
	}
	atoms := make([]string, 0, len(seen))
	for a := range seen {
		atoms = append(atoms, a)
	}
	sort.Strings(atoms)
	return atoms
}

func dpll(cnf CNF, atoms []string, assignment Assignment) bool {
	cnf, propagated, ok := unitPropagate(cnf, assignment)
	if !ok {
		return false
	}
	for k, v := range propagated {
		assignment[k] = v
	}
	if len(cnf) == 0 {
		return true
	}
	for _, clause := range cnf {
		if len(clause) == 0 {
			return false
		}
	}

	var chosen string
	found := false
	for _, a := range atoms {
		if _, set := assignment[a]; !set {
			chosen = a
			found = true
			break
		}
	}
	if !found {
		// Every atom is assigned yet some clause remains unsatisfied:
		// contradictory assignment.
		return false
	}

	for _, v := range []bool{true, false} {
		next := cloneAssignment(assignment)
		next[chosen] = v
		if dpll(simplify(cnf, chosen, v), atoms, next) {
			for k, val := range next {
				assignment[k] = val
			}
			return true
		}
	}
	return false
}

func cloneAssignment(a Assignment) Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// unitPropagate repeatedly resolves unit clauses (single-literal clauses),
// forcing that literal's atom to the satisfying value, until no unit
// clause remains. Returns ok=false if propagation derives an empty
// (unsatisfiable) clause.
func unitPropagate(cnf CNF, assignment Assignment) (CNF, Assignment, bool) {
	assignment = cloneAssignment(assignment)
	for {
		unit, lit, found := findUnit(cnf)
		if !found {
			return cnf, assignment, true
		}
		value := !lit.Negated
		assignment[lit.Name] = value
		cnf = simplify(cnf, lit.Name, value)
		for _, clause := range cnf {
			if len(clause) == 0 {
				return cnf, assignment, false
			}
		}
		_ = unit
	}
}

func findUnit(cnf CNF) (Clause, Literal, bool) {
	for _, clause := range cnf {
		if len(clause) == 1 {
			return clause, clause[0], true
		}
	}
	return nil, Literal{}, false
}

// simplify assigns atom := value throughout cnf: clauses containing a now-
// true literal are removed (satisfied), and now-false literals are dropped
// from their clause.
func simplify(cnf CNF, atom string, value bool) CNF {
	var out CNF
	for _, clause := range cnf {
		satisfied := false
		var newClause Clause
		for _, lit := range clause {
			if lit.Name == atom {
				litValue := !lit.Negated
				if litValue == value {
					satisfied = true
					break
				}
				continue // literal is now false; drop it
			}
			newClause = append(newClause, lit)
		}
		if satisfied {
			continue
		}
		out = append(out, newClause)
	}
	return out
}
