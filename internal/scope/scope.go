// Package scope implements the citation-scope engine: which lines and
// subproofs a given line may legally cite as a dependency, walking outward
// from the line's own subproof through its ancestors without ever
// descending into a sibling or already-closed subproof.
package scope

import "aris/internal/proof"

// PossibleDeps returns every line (premise or step) and every completed
// subproof that ref may cite, in subproof-then-line order. Starting from
// ref's own subproof, everything strictly before ref in that subproof's
// line list is citable; each further enclosing subproof then contributes
// everything strictly before the inner subproof itself. A sibling
// subproof's interior, or anything after ref in its own subproof, is never
// reachable.
func PossibleDeps(p *proof.Pool, ref proof.LineRef) ([]proof.LineRef, []proof.SubproofID) {
	sub, ok := parentSubproofOf(p, ref)
	if !ok {
		return nil, nil
	}
	var lines []proof.LineRef
	var subproofs []proof.SubproofID
	cur := sub
	// stopAtLine/stopAtSub identify the line within cur's own list at
	// which collection must stop: initially ref itself, then (once we
	// step up to an enclosing subproof) the line that names cur.
	stopAtLine := ref
	var stopAtSub *proof.SubproofID

	for {
		sp := p.Lines(cur)
		for _, line := range sp {
			if stopAtSub != nil {
				if line.SubproofID != nil && *line.SubproofID == *stopAtSub {
					break
				}
			} else if lineEquals(line, stopAtLine) {
				break
			}
			switch {
			case line.PremiseID != nil:
				lines = append(lines, proof.PremiseRef(*line.PremiseID))
			case line.JustID != nil:
				lines = append(lines, proof.JustRef(*line.JustID))
			case line.SubproofID != nil:
				subproofs = append(subproofs, *line.SubproofID)
			}
		}
		parent, ok := p.ParentOf(cur)
		if !ok {
			return lines, subproofs
		}
		stopped := cur
		stopAtSub = &stopped
		cur = parent
	}
}

func lineEquals(line proof.Line, ref proof.LineRef) bool {
	switch {
	case ref.Premise != nil:
		return line.PremiseID != nil && *line.PremiseID == *ref.Premise
	case ref.Just != nil:
		return line.JustID != nil && *line.JustID == *ref.Just
	default:
		return false
	}
}

func parentSubproofOf(p *proof.Pool, ref proof.LineRef) (proof.SubproofID, bool) {
	switch {
	case ref.Premise != nil:
		return p.ParentOf(*ref.Premise)
	case ref.Just != nil:
		return p.ParentOf(*ref.Just)
	default:
		return 0, false
	}
}

// CanReferenceDep reports whether from may cite dep as a line dependency:
// dep must appear in from's possible-deps set.
func CanReferenceDep(p *proof.Pool, from, dep proof.LineRef) bool {
	lines, _ := PossibleDeps(p, from)
	for _, l := range lines {
		if lineRefEqual(l, dep) {
			return true
		}
	}
	return false
}

// CanReferenceSubproof reports whether from may cite sub as a subproof
// dependency.
func CanReferenceSubproof(p *proof.Pool, from proof.LineRef, sub proof.SubproofID) bool {
	_, subs := PossibleDeps(p, from)
	for _, s := range subs {
		if s == sub {
			return true
		}
	}
	return false
}

func lineRefEqual(a, b proof.LineRef) bool {
	switch {
	case a.Premise != nil && b.Premise != nil:
		return *a.Premise == *b.Premise
	case a.Just != nil && b.Just != nil:
		return *a.Just == *b.Just
	default:
		return false
	}
}
