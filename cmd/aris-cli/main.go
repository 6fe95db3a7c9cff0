// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/fatih/color"

	arisErrors "aris/internal/errors"
	"aris/internal/proof"
	"aris/internal/rules"
	"aris/internal/xmlproof"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: aris-cli <proof.xml>")
		os.Exit(1)
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	var doc xmlproof.Document
	if err := xml.Unmarshal(source, &doc); err != nil {
		color.Red("malformed proof document: %s", err)
		os.Exit(1)
	}

	p, err := xmlproof.Read(doc)
	if err != nil {
		color.Red("failed to load proof: %s", err)
		os.Exit(1)
	}

	reporter := arisErrors.NewReporter(p, path)

	failures := 0
	for _, ref := range walk(p, p.Root()) {
		if verr := rules.VerifyLine(p, ref); verr != nil {
			failures++
			var rerr *rules.Error
			if as, ok := verr.(*rules.Error); ok {
				rerr = as
			}
			var d arisErrors.Diagnostic
			if rerr != nil {
				d = arisErrors.FromVerifyError(rerr.Kind, rerr.Message, rerr.Ref, rerr.Expected)
			} else {
				d = arisErrors.Other(verr.Error(), &ref)
			}
			fmt.Print(reporter.Format(d))
			continue
		}
		color.Green("✓ %s verified", ref)
	}

	if failures > 0 {
		color.Red("\n%d line(s) failed verification", failures)
		os.Exit(1)
	}
	color.Green("\nproof verified: %s", path)
}

// walk collects every premise/step LineRef in a subproof's depth-first
// order, descending into nested subproofs.
func walk(p *proof.Pool, sub proof.SubproofID) []proof.LineRef {
	var out []proof.LineRef
	for _, line := range p.Lines(sub) {
		switch {
		case line.PremiseID != nil:
			out = append(out, proof.PremiseRef(*line.PremiseID))
		case line.JustID != nil:
			out = append(out, proof.JustRef(*line.JustID))
		case line.SubproofID != nil:
			out = append(out, walk(p, *line.SubproofID)...)
		}
	}
	return out
}
