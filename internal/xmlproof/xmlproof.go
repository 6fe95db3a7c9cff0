// Package xmlproof reads and writes the XML proof document format: a
// <bram> root wrapping one or more <proof> elements, each a depth-first
// tree of <assumption>/<step> lines and nested <proof> subproofs, plus a
// <metadata> block carrying an author name and a content hash.
package xmlproof

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"aris/internal/parser"
	"aris/internal/proof"
)

// Document is the root <bram> element.
type Document struct {
	XMLName  xml.Name `xml:"bram"`
	Program  string   `xml:"program"`
	Version  string   `xml:"version"`
	Metadata Metadata `xml:"metadata"`
	Proofs   []XMLProof `xml:"proof"`
}

// Metadata carries provenance for the document's content hash.
type Metadata struct {
	Author string `xml:"author"`
	Hash   string `xml:"hash"`
}

// XMLProof is a single <proof id="..."> tree.
type XMLProof struct {
	ID    string     `xml:"id,attr"`
	Lines []XMLLine  `xml:",any"`
}

// XMLLine is either an <assumption>, a <step>, or a nested <proof>; exactly
// one of its fields is populated depending on XMLName.
type XMLLine struct {
	XMLName xml.Name
	Raw     string     `xml:"raw"`
	Rule    string     `xml:"rule"`
	Premise []string   `xml:"premise"`
	ID      string     `xml:"id,attr"`
	Nested  []XMLLine  `xml:",any"`
}

// Write serializes a Pool starting at its root subproof into a Document,
// assigning depth-first line numbers and a content hash over the
// serialized line text (optionally including the author name), matching
// the source format's SHA-256-over-content-plus-author-plus-newline
// convention.
func Write(p *proof.Pool, program, version, author string) (Document, error) {
	doc := Document{Program: program, Version: version}
	lines, err := serializeSubproof(p, p.Root())
	if err != nil {
		return doc, err
	}
	doc.Proofs = []XMLProof{{ID: "1", Lines: lines}}
	doc.Metadata = Metadata{Author: author, Hash: contentHash(doc, author)}
	return doc, nil
}

func serializeSubproof(p *proof.Pool, sub proof.SubproofID) ([]XMLLine, error) {
	var out []XMLLine
	for _, line := range p.Lines(sub) {
		switch {
		case line.PremiseID != nil:
			e, ok := p.Premise(*line.PremiseID)
			if !ok {
				return nil, fmt.Errorf("xmlproof: dangling premise id %d", *line.PremiseID)
			}
			out = append(out, XMLLine{
				XMLName: xml.Name{Local: "assumption"},
				Raw:     e.String(),
				ID:      fmt.Sprintf("%d", *line.PremiseID),
			})
		case line.JustID != nil:
			j, ok := p.Justification(*line.JustID)
			if !ok {
				return nil, fmt.Errorf("xmlproof: dangling step id %d", *line.JustID)
			}
			premises := make([]string, 0, len(j.Deps)+len(j.SDeps))
			for _, d := range j.Deps {
				premises = append(premises, lineRefID(d))
			}
			for _, s := range j.SDeps {
				premises = append(premises, fmt.Sprintf("sub%d", s))
			}
			out = append(out, XMLLine{
				XMLName: xml.Name{Local: "step"},
				Raw:     j.Expr.String(),
				Rule:    j.Rule,
				Premise: premises,
				ID:      fmt.Sprintf("%d", *line.JustID),
			})
		case line.SubproofID != nil:
			nested, err := serializeSubproof(p, *line.SubproofID)
			if err != nil {
				return nil, err
			}
			out = append(out, XMLLine{
				XMLName: xml.Name{Local: "proof"},
				ID:      fmt.Sprintf("%d", *line.SubproofID),
				Nested:  nested,
			})
		}
	}
	return out, nil
}

func lineRefID(ref proof.LineRef) string {
	if ref.Premise != nil {
		return fmt.Sprintf("%d", *ref.Premise)
	}
	return fmt.Sprintf("%d", *ref.Just)
}

// contentHash computes a base64-encoded SHA-256 digest over every line's
// raw text, rule name, and premise list, plus the author name and a
// trailing newline, so that two documents differing only in metadata
// (other than author) still hash identically.
func contentHash(doc Document, author string) string {
	h := sha256.New()
	var walk func(lines []XMLLine)
	walk = func(lines []XMLLine) {
		for _, l := range lines {
			h.Write([]byte(l.Raw))
			h.Write([]byte(l.Rule))
			for _, prem := range l.Premise {
				h.Write([]byte(prem))
			}
			walk(l.Nested)
		}
	}
	for _, pr := range doc.Proofs {
		walk(pr.Lines)
	}
	h.Write([]byte(author))
	h.Write([]byte("\n"))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Read parses a Document back into a fresh Pool. Any <step> whose sdeps
// (via "sub<N>" premise entries) try to cite the subproof enclosing it are
// silently dropped by Pool.AddStep, exactly as they would be if the
// document came from an editor that wrote out a redundant self-citation.
func Read(doc Document) (*proof.Pool, error) {
	p := proof.New()
	if len(doc.Proofs) == 0 {
		return p, nil
	}
	idMap := map[string]interface{}{}
	if err := readLines(p, p.Root(), doc.Proofs[0].Lines, idMap); err != nil {
		return nil, err
	}
	return p, nil
}

func readLines(p *proof.Pool, sub proof.SubproofID, lines []XMLLine, idMap map[string]interface{}) error {
	for _, l := range lines {
		switch l.XMLName.Local {
		case "assumption":
			e, err := parser.Parse(l.Raw)
			if err != nil {
				return fmt.Errorf("xmlproof: parsing assumption %q: %w", l.Raw, err)
			}
			id, err := p.AddPremise(sub, e)
			if err != nil {
				return err
			}
			idMap[l.ID] = id
		case "step":
			e, err := parser.Parse(l.Raw)
			if err != nil {
				return fmt.Errorf("xmlproof: parsing step %q: %w", l.Raw, err)
			}
			j := proof.Justification{Expr: e, Rule: l.Rule}
			for _, premRef := range l.Premise {
				resolved, ok := idMap[premRef]
				if !ok {
					continue // forward/dangling reference; verification will report it.
				}
				switch v := resolved.(type) {
				case proof.PremiseID:
					j.Deps = append(j.Deps, proof.PremiseRef(v))
				case proof.JustID:
					j.Deps = append(j.Deps, proof.JustRef(v))
				case proof.SubproofID:
					j.SDeps = append(j.SDeps, v)
				}
			}
			id, err := p.AddStep(sub, j)
			if err != nil {
				return err
			}
			idMap[l.ID] = id
		case "proof":
			nestedID, err := p.AddSubproof(sub)
			if err != nil {
				return err
			}
			idMap[l.ID] = nestedID
			idMap["sub"+l.ID] = nestedID
			if err := readLines(p, nestedID, l.Nested, idMap); err != nil {
				return err
			}
		}
	}
	return nil
}
