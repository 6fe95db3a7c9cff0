// Package proof implements the pooled proof data model: an arena of
// premises, justified steps, and nested subproofs addressed by monotonic,
// never-reused ids, grounded on the original pooled-proof representation's
// arena-of-maps approach.
package proof

import (
	"fmt"

	"aris/internal/expr"
)

// PremiseID, JustID, and SubproofID are distinct id spaces so a caller can
// never accidentally pass a justification id where a premise id is
// expected; each is a newtype over int assigned monotonically and never
// reused, even after removal, matching the source's PremKey/JustKey/SubKey.
type PremiseID int
type JustID int
type SubproofID int

// LineRef identifies either a premise or a justified step within a
// subproof's ordered line list.
type LineRef struct {
	Premise *PremiseID
	Just    *JustID
}

func PremiseRef(id PremiseID) LineRef { return LineRef{Premise: &id} }
func JustRef(id JustID) LineRef       { return LineRef{Just: &id} }

// AnchorRef identifies any one line of a subproof's ordered list - a
// premise, a step, or a nested subproof - as the anchor for a relative
// insertion: "add this new line before/after that one."
type AnchorRef struct {
	Premise  *PremiseID
	Just     *JustID
	Subproof *SubproofID
}

func PremiseAnchor(id PremiseID) AnchorRef   { return AnchorRef{Premise: &id} }
func JustAnchor(id JustID) AnchorRef         { return AnchorRef{Just: &id} }
func SubproofAnchor(id SubproofID) AnchorRef { return AnchorRef{Subproof: &id} }

func (l LineRef) String() string {
	if l.Premise != nil {
		return fmt.Sprintf("premise#%d", *l.Premise)
	}
	if l.Just != nil {
		return fmt.Sprintf("step#%d", *l.Just)
	}
	return "<invalid line>"
}

// Justification is a derived step: an expression together with the rule
// name that licenses it and the lines/subproofs it cites.
type Justification struct {
	Expr  expr.Expr
	Rule  string
	Deps  []LineRef
	SDeps []SubproofID
}

// Subproof is two ordered sequences owned by the enclosing Pool: Premises
// (assumptions, always first) and Lines (derived steps and nested
// subproofs, interleaved in derivation order). Keeping them separate
// mirrors the source's premise_list/line_list split and is why a premise
// can only be anchored to another premise for a relative insert, while a
// step or subproof can only be anchored to another entry of the line list.
type Subproof struct {
	Premises []PremiseID
	Lines    []Line
}

// Line is one entry of a subproof's combined, externally-visible ordering:
// either a premise reference, a step (justification) reference, or a
// nested subproof. Internally, Subproof.Lines holds only the JustID/
// SubproofID variants - premises live in their own Premises sequence and
// are synthesized into this shape by Lines().
type Line struct {
	PremiseID  *PremiseID
	JustID     *JustID
	SubproofID *SubproofID
}

// Pool owns every premise, justification, and subproof in a proof,
// addressed by id; Parent maps every line and subproof to its immediately
// enclosing subproof (nil for the root).
type Pool struct {
	premises   map[PremiseID]expr.Expr
	justs      map[JustID]Justification
	subproofs  map[SubproofID]*Subproof
	parent     map[interface{}]SubproofID
	root       SubproofID
	nextPrem   PremiseID
	nextJust   JustID
	nextSub    SubproofID
}

// New creates an empty proof with a single root subproof.
func New() *Pool {
	p := &Pool{
		premises:  map[PremiseID]expr.Expr{},
		justs:     map[JustID]Justification{},
		subproofs: map[SubproofID]*Subproof{},
		parent:    map[interface{}]SubproofID{},
	}
	root := p.nextSub
	p.nextSub++
	p.subproofs[root] = &Subproof{}
	p.root = root
	return p
}

func (p *Pool) Root() SubproofID { return p.root }

// Subproof looks up a subproof by id.
func (p *Pool) Subproof(id SubproofID) (*Subproof, bool) {
	sp, ok := p.subproofs[id]
	return sp, ok
}

// Premise looks up a premise's expression by id.
func (p *Pool) Premise(id PremiseID) (expr.Expr, bool) {
	e, ok := p.premises[id]
	return e, ok
}

// Justification looks up a step's justification by id.
func (p *Pool) Justification(id JustID) (Justification, bool) {
	j, ok := p.justs[id]
	return j, ok
}

// ParentOf returns the subproof directly enclosing the given premise,
// step, or subproof id.
func (p *Pool) ParentOf(key interface{}) (SubproofID, bool) {
	parent, ok := p.parent[key]
	return parent, ok
}

// insertLineAt inserts l at position idx in lines, or appends it when idx
// is negative or past the end.
func insertLineAt(lines []Line, idx int, l Line) []Line {
	if idx < 0 || idx >= len(lines) {
		return append(lines, l)
	}
	lines = append(lines, Line{})
	copy(lines[idx+1:], lines[idx:])
	lines[idx] = l
	return lines
}

// insertPremiseAt inserts id at position idx in prems, or appends it when
// idx is negative or past the end.
func insertPremiseAt(prems []PremiseID, idx int, id PremiseID) []PremiseID {
	if idx < 0 || idx >= len(prems) {
		return append(prems, id)
	}
	prems = append(prems, 0)
	copy(prems[idx+1:], prems[idx:])
	prems[idx] = id
	return prems
}

// locatePremiseAnchor finds the subproof and Premises-sequence index of
// id, since a premise can only be anchored to another premise.
func (p *Pool) locatePremiseAnchor(id PremiseID) (SubproofID, int, error) {
	sub, ok := p.parent[id]
	if !ok {
		return 0, 0, fmt.Errorf("proof: anchor has no parent")
	}
	sp := p.subproofs[sub]
	for i, pid := range sp.Premises {
		if pid == id {
			return sub, i, nil
		}
	}
	return 0, 0, fmt.Errorf("proof: anchor not found in its own subproof's premise list")
}

// locateLineAnchor finds the subproof and Lines-sequence index of the step
// or nested subproof an AnchorRef identifies, since a step or subproof can
// only be anchored to another entry of the line list, never a premise.
func (p *Pool) locateLineAnchor(anchor AnchorRef) (SubproofID, int, error) {
	var key interface{}
	switch {
	case anchor.Just != nil:
		key = *anchor.Just
	case anchor.Subproof != nil:
		key = *anchor.Subproof
	default:
		return 0, 0, fmt.Errorf("proof: a step or subproof can only be anchored to a step or subproof, not a premise")
	}
	sub, ok := p.parent[key]
	if !ok {
		return 0, 0, fmt.Errorf("proof: anchor has no parent")
	}
	sp := p.subproofs[sub]
	for i, line := range sp.Lines {
		switch {
		case anchor.Just != nil && line.JustID != nil && *line.JustID == *anchor.Just:
			return sub, i, nil
		case anchor.Subproof != nil && line.SubproofID != nil && *line.SubproofID == *anchor.Subproof:
			return sub, i, nil
		}
	}
	return 0, 0, fmt.Errorf("proof: anchor not found in its own subproof's line list")
}

func relativeOf(idx int, before bool) int {
	if !before {
		idx++
	}
	return idx
}

// AddPremise appends a new premise at the end of sub's premise list.
func (p *Pool) AddPremise(sub SubproofID, e expr.Expr) (PremiseID, error) {
	return p.addPremiseAt(sub, -1, e)
}

// AddPremiseRelative inserts a new premise immediately before or after
// anchor, within anchor's own containing subproof. anchor must itself be a
// premise: premises and the line list are separate sequences, and a
// premise can only be anchored to another premise.
func (p *Pool) AddPremiseRelative(anchor AnchorRef, before bool, e expr.Expr) (PremiseID, error) {
	if anchor.Premise == nil {
		return 0, fmt.Errorf("proof: a premise can only be anchored to another premise")
	}
	sub, idx, err := p.locatePremiseAnchor(*anchor.Premise)
	if err != nil {
		return 0, err
	}
	return p.addPremiseAt(sub, relativeOf(idx, before), e)
}

func (p *Pool) addPremiseAt(sub SubproofID, idx int, e expr.Expr) (PremiseID, error) {
	sp, ok := p.subproofs[sub]
	if !ok {
		return 0, fmt.Errorf("proof: subproof %d does not exist", sub)
	}
	id := p.nextPrem
	p.nextPrem++
	p.premises[id] = e
	p.parent[id] = sub
	sp.Premises = insertPremiseAt(sp.Premises, idx, id)
	return id, nil
}

// ReplaceJustification overwrites an existing step's justification in
// place (same id, same position), for editors that let a user change a
// step's rule or dependencies without disturbing line numbering.
func (p *Pool) ReplaceJustification(id JustID, j Justification) error {
	return p.WithMutStep(id, func(cur *Justification) error {
		*cur = j
		return nil
	})
}

// WithMutPremise runs f against a copy of the premise's expression and
// writes the result back in place, leaving id and its position untouched.
// f must not retain the pointer it's given past its own return: the Pool
// owns the storage behind it and may move or overwrite it afterward.
func (p *Pool) WithMutPremise(id PremiseID, f func(*expr.Expr) error) error {
	e, ok := p.premises[id]
	if !ok {
		return fmt.Errorf("proof: premise %d does not exist", id)
	}
	if err := f(&e); err != nil {
		return err
	}
	p.premises[id] = e
	return nil
}

// WithMutStep runs f against a copy of the step's justification and writes
// the result back in place, re-filtering self-citing sdeps exactly as
// AddStep does. f must not retain the pointer it's given past its own
// return.
func (p *Pool) WithMutStep(id JustID, f func(*Justification) error) error {
	j, ok := p.justs[id]
	if !ok {
		return fmt.Errorf("proof: step %d does not exist", id)
	}
	if err := f(&j); err != nil {
		return err
	}
	j.SDeps = p.filterSelfCitingSubproofs(p.parent[id], j.SDeps)
	p.justs[id] = j
	return nil
}

// WithMutSubproof runs f directly against the subproof's own storage - its
// line list is already owned exclusively by the Pool, so there is nothing
// to copy back. f must not retain the pointer it's given past its own
// return.
func (p *Pool) WithMutSubproof(id SubproofID, f func(*Subproof) error) error {
	sp, ok := p.subproofs[id]
	if !ok {
		return fmt.Errorf("proof: subproof %d does not exist", id)
	}
	return f(sp)
}

// AddStep appends a new justified step at the end of sub's line list.
// Any sdep that is a transitive parent subproof of the new step's own
// enclosing scope is silently dropped rather than rejected: this mirrors
// an ambiguity in how citations round-trip through XML, where a deps list
// and an sdeps list can overlap in a way that would otherwise self-cite.
func (p *Pool) AddStep(sub SubproofID, j Justification) (JustID, error) {
	return p.addStepAt(sub, -1, j)
}

// AddStepRelative inserts a new justified step immediately before or
// after anchor, within anchor's own containing subproof. anchor must
// itself be a step or subproof in the line list, not a premise.
func (p *Pool) AddStepRelative(anchor AnchorRef, before bool, j Justification) (JustID, error) {
	sub, idx, err := p.locateLineAnchor(anchor)
	if err != nil {
		return 0, err
	}
	return p.addStepAt(sub, relativeOf(idx, before), j)
}

func (p *Pool) addStepAt(sub SubproofID, idx int, j Justification) (JustID, error) {
	sp, ok := p.subproofs[sub]
	if !ok {
		return 0, fmt.Errorf("proof: subproof %d does not exist", sub)
	}
	id := p.nextJust
	p.nextJust++
	j.SDeps = p.filterSelfCitingSubproofs(sub, j.SDeps)
	p.justs[id] = j
	p.parent[id] = sub
	sp.Lines = insertLineAt(sp.Lines, idx, Line{JustID: &id})
	return id, nil
}

// filterSelfCitingSubproofs drops any sdep that is a transitive parent of
// sub (including sub itself), since a justification can never cite the
// subproof that encloses it.
func (p *Pool) filterSelfCitingSubproofs(sub SubproofID, sdeps []SubproofID) []SubproofID {
	ancestors := p.ancestorsOf(sub)
	var out []SubproofID
	for _, s := range sdeps {
		if _, isAncestor := ancestors[s]; isAncestor {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (p *Pool) ancestorsOf(sub SubproofID) map[SubproofID]struct{} {
	out := map[SubproofID]struct{}{sub: {}}
	cur := sub
	for {
		parent, ok := p.parent[cur]
		if !ok {
			return out
		}
		out[parent] = struct{}{}
		cur = parent
	}
}

// AddSubproof appends a new empty nested subproof at the end of sub's line
// list and returns its id.
func (p *Pool) AddSubproof(sub SubproofID) (SubproofID, error) {
	return p.addSubproofAt(sub, -1)
}

// AddSubproofRelative inserts a new empty nested subproof immediately
// before or after anchor, within anchor's own containing subproof. anchor
// must itself be a step or subproof in the line list, not a premise.
func (p *Pool) AddSubproofRelative(anchor AnchorRef, before bool) (SubproofID, error) {
	sub, idx, err := p.locateLineAnchor(anchor)
	if err != nil {
		return 0, err
	}
	return p.addSubproofAt(sub, relativeOf(idx, before))
}

func (p *Pool) addSubproofAt(sub SubproofID, idx int) (SubproofID, error) {
	parentSp, ok := p.subproofs[sub]
	if !ok {
		return 0, fmt.Errorf("proof: subproof %d does not exist", sub)
	}
	id := p.nextSub
	p.nextSub++
	p.subproofs[id] = &Subproof{}
	p.parent[id] = sub
	parentSp.Lines = insertLineAt(parentSp.Lines, idx, Line{SubproofID: &id})
	return id, nil
}

// RemoveLine removes a premise or step from its containing subproof's line
// list, scrubs its pool entries, and scrubs it out of every justification's
// Deps elsewhere in the proof, so dangling ids never resolve again and a
// step that cited the removed line reverts to citing nothing rather than a
// line that no longer exists.
func (p *Pool) RemoveLine(ref LineRef) error {
	var key interface{}
	switch {
	case ref.Premise != nil:
		key = *ref.Premise
	case ref.Just != nil:
		key = *ref.Just
	default:
		return fmt.Errorf("proof: invalid line reference")
	}
	sub, ok := p.parent[key]
	if !ok {
		return fmt.Errorf("proof: line %s has no parent", ref)
	}
	sp := p.subproofs[sub]
	if ref.Premise != nil {
		for i, pid := range sp.Premises {
			if pid == *ref.Premise {
				sp.Premises = append(sp.Premises[:i], sp.Premises[i+1:]...)
				break
			}
		}
	} else {
		for i, line := range sp.Lines {
			if line.JustID != nil && *line.JustID == *ref.Just {
				sp.Lines = append(sp.Lines[:i], sp.Lines[i+1:]...)
				break
			}
		}
	}
	delete(p.parent, key)
	if ref.Premise != nil {
		delete(p.premises, *ref.Premise)
	} else {
		delete(p.justs, *ref.Just)
	}
	p.scrubDeps(func(d LineRef) bool {
		return (ref.Premise != nil && d.Premise != nil && *d.Premise == *ref.Premise) ||
			(ref.Just != nil && d.Just != nil && *d.Just == *ref.Just)
	}, nil)
	return nil
}

// RemoveSubproof removes an empty subproof from its parent's line list and
// scrubs it out of every justification's SDeps elsewhere in the proof. The
// caller is responsible for having already removed its contents (each via
// RemoveLine, which scrubs its own dangling citations); removing a
// non-empty subproof is rejected to avoid silently orphaning ids that
// still resolve via stale parent pointers.
func (p *Pool) RemoveSubproof(id SubproofID) error {
	sp, ok := p.subproofs[id]
	if !ok {
		return fmt.Errorf("proof: subproof %d does not exist", id)
	}
	if len(sp.Lines) != 0 || len(sp.Premises) != 0 {
		return fmt.Errorf("proof: subproof %d is not empty", id)
	}
	parent, ok := p.parent[id]
	if !ok {
		return fmt.Errorf("proof: subproof %d has no parent (is it the root?)", id)
	}
	parentSp := p.subproofs[parent]
	for i, line := range parentSp.Lines {
		if line.SubproofID != nil && *line.SubproofID == id {
			parentSp.Lines = append(parentSp.Lines[:i], parentSp.Lines[i+1:]...)
			break
		}
	}
	delete(p.parent, id)
	delete(p.subproofs, id)
	p.scrubDeps(nil, func(s SubproofID) bool { return s == id })
	return nil
}

// scrubDeps drops any Deps entry matched by matchLine and any SDeps entry
// matched by matchSub from every justification in the pool, used by
// RemoveLine and RemoveSubproof to keep dependency lists free of
// references to ids that no longer exist.
func (p *Pool) scrubDeps(matchLine func(LineRef) bool, matchSub func(SubproofID) bool) {
	for id, j := range p.justs {
		changed := false
		if matchLine != nil && len(j.Deps) > 0 {
			deps := j.Deps[:0:0]
			for _, d := range j.Deps {
				if matchLine(d) {
					changed = true
					continue
				}
				deps = append(deps, d)
			}
			j.Deps = deps
		}
		if matchSub != nil && len(j.SDeps) > 0 {
			sdeps := j.SDeps[:0:0]
			for _, s := range j.SDeps {
				if matchSub(s) {
					changed = true
					continue
				}
				sdeps = append(sdeps, s)
			}
			j.SDeps = sdeps
		}
		if changed {
			p.justs[id] = j
		}
	}
}

// ContainedJustifications returns every JustID directly or (if recursive)
// transitively contained within sub, in line order, walking into nested
// subproofs depth-first when recursive is true.
func (p *Pool) ContainedJustifications(sub SubproofID, recursive bool) []JustID {
	sp, ok := p.subproofs[sub]
	if !ok {
		return nil
	}
	var out []JustID
	for _, line := range sp.Lines {
		switch {
		case line.JustID != nil:
			out = append(out, *line.JustID)
		case line.SubproofID != nil && recursive:
			out = append(out, p.ContainedJustifications(*line.SubproofID, true)...)
		}
	}
	return out
}

// TransitiveDependencies returns every premise and step transitively
// reachable from a step's direct deps and the contents of its sdeps, via an
// explicit work-queue/visited-set walk (never recursion, so a
// pathologically long proof chain cannot overflow the call stack).
func (p *Pool) TransitiveDependencies(start JustID) (map[PremiseID]struct{}, map[JustID]struct{}) {
	visitedPrem := map[PremiseID]struct{}{}
	visitedJust := map[JustID]struct{}{}
	queue := []JustID{start}
	queuedSubs := map[SubproofID]struct{}{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		j, ok := p.justs[cur]
		if !ok {
			continue
		}
		for _, dep := range j.Deps {
			switch {
			case dep.Premise != nil:
				if _, seen := visitedPrem[*dep.Premise]; !seen {
					visitedPrem[*dep.Premise] = struct{}{}
				}
			case dep.Just != nil:
				if _, seen := visitedJust[*dep.Just]; !seen {
					visitedJust[*dep.Just] = struct{}{}
					queue = append(queue, *dep.Just)
				}
			}
		}
		for _, sdep := range j.SDeps {
			if _, seen := queuedSubs[sdep]; seen {
				continue
			}
			queuedSubs[sdep] = struct{}{}
			for _, jid := range p.ContainedJustifications(sdep, true) {
				if _, seen := visitedJust[jid]; !seen {
					visitedJust[jid] = struct{}{}
					queue = append(queue, jid)
				}
			}
			if sp, ok := p.subproofs[sdep]; ok {
				for _, pid := range sp.Premises {
					visitedPrem[pid] = struct{}{}
				}
			}
		}
	}
	return visitedPrem, visitedJust
}

// Premises returns every PremiseID directly in sub's premise list, in
// order.
func (p *Pool) Premises(sub SubproofID) []PremiseID {
	sp, ok := p.subproofs[sub]
	if !ok {
		return nil
	}
	return append([]PremiseID(nil), sp.Premises...)
}

// Lines returns every line in sub, in order, as LineRef/SubproofID triples
// via the raw Line type (callers switch on which pointer is set): every
// premise first (sub's premise list), then every step and nested subproof
// in derivation order (sub's line list), mirroring how a natural-deduction
// subproof is always written - assumptions first, then what follows from
// them.
func (p *Pool) Lines(sub SubproofID) []Line {
	sp, ok := p.subproofs[sub]
	if !ok {
		return nil
	}
	out := make([]Line, 0, len(sp.Premises)+len(sp.Lines))
	for _, pid := range sp.Premises {
		id := pid
		out = append(out, Line{PremiseID: &id})
	}
	return append(out, sp.Lines...)
}
