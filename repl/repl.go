// Package repl SPDX-License-Identifier: Apache-2.0
//
// Package repl implements an interactive proof-building shell: each line is
// one of a handful of commands building up a proof.Pool, verified on demand
// against the rule-checking engine.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aris/internal/parser"
	"aris/internal/proof"
	"aris/internal/rules"
)

const PROMPT = ">> "

// Start runs the REPL loop against in, writing prompts and results to out.
//
// Commands:
//
//	premise <expr>                add a premise to the current subproof
//	step <expr> ; RULE ; deps...  add a justified step (deps are premise#N / step#N refs)
//	subproof                      open a new nested subproof, entering it
//	end                           close the current subproof, returning to its parent
//	verify <ref>                  run VerifyLine against premise#N or step#N
//	list                          print every line in the current subproof
//	quit                          exit the REPL
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	p := proof.New()
	stack := []proof.SubproofID{p.Root()}

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		cmd := fields[0]
		var rest string
		if len(fields) > 1 {
			rest = fields[1]
		}
		cur := stack[len(stack)-1]

		switch cmd {
		case "premise":
			e, err := parser.Parse(rest)
			if err != nil {
				fmt.Fprintf(out, "parse error: %s\n", err)
				continue
			}
			id, err := p.AddPremise(cur, e)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
				continue
			}
			fmt.Fprintf(out, "premise#%d\n", id)

		case "step":
			id, err := addStep(p, cur, rest)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
				continue
			}
			fmt.Fprintf(out, "step#%d\n", id)

		case "subproof":
			sub, err := p.AddSubproof(cur)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
				continue
			}
			stack = append(stack, sub)
			fmt.Fprintf(out, "entered subproof #%d\n", sub)

		case "end":
			if len(stack) == 1 {
				fmt.Fprintln(out, "already at the root subproof")
				continue
			}
			stack = stack[:len(stack)-1]
			fmt.Fprintln(out, "back to enclosing subproof")

		case "verify":
			ref, err := parseLineRef(rest)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
				continue
			}
			if err := rules.VerifyLine(p, ref); err != nil {
				fmt.Fprintf(out, "✗ %s\n", err)
			} else {
				fmt.Fprintln(out, "✓ verified")
			}

		case "list":
			for _, l := range p.Lines(cur) {
				printLine(out, p, l)
			}

		case "quit", "exit":
			return

		default:
			fmt.Fprintf(out, "unknown command %q\n", cmd)
		}
	}
}

// addStep parses "expr ; RULE ; dep1, dep2, ..." into a Justification and
// adds it to sub.
func addStep(p *proof.Pool, sub proof.SubproofID, spec string) (proof.JustID, error) {
	parts := strings.Split(spec, ";")
	if len(parts) < 2 {
		return 0, fmt.Errorf("usage: step <expr> ; RULE [; dep, dep, ...]")
	}
	e, err := parser.Parse(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("parsing conclusion: %w", err)
	}
	j := proof.Justification{Expr: e, Rule: strings.TrimSpace(parts[1])}
	if len(parts) > 2 {
		for _, depStr := range strings.Split(parts[2], ",") {
			depStr = strings.TrimSpace(depStr)
			if depStr == "" {
				continue
			}
			ref, err := parseLineRef(depStr)
			if err != nil {
				return 0, err
			}
			j.Deps = append(j.Deps, ref)
		}
	}
	return p.AddStep(sub, j)
}

// parseLineRef parses "premise#N" or "step#N" into a proof.LineRef.
func parseLineRef(spec string) (proof.LineRef, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case strings.HasPrefix(spec, "premise#"):
		n, err := strconv.Atoi(strings.TrimPrefix(spec, "premise#"))
		if err != nil {
			return proof.LineRef{}, err
		}
		id := proof.PremiseID(n)
		return proof.PremiseRef(id), nil
	case strings.HasPrefix(spec, "step#"):
		n, err := strconv.Atoi(strings.TrimPrefix(spec, "step#"))
		if err != nil {
			return proof.LineRef{}, err
		}
		id := proof.JustID(n)
		return proof.JustRef(id), nil
	default:
		return proof.LineRef{}, fmt.Errorf("expected premise#N or step#N, got %q", spec)
	}
}

func printLine(out io.Writer, p *proof.Pool, l proof.Line) {
	switch {
	case l.PremiseID != nil:
		e, _ := p.Premise(*l.PremiseID)
		fmt.Fprintf(out, "premise#%d: %s\n", *l.PremiseID, e)
	case l.JustID != nil:
		j, _ := p.Justification(*l.JustID)
		fmt.Fprintf(out, "step#%d: %s  (%s)\n", *l.JustID, j.Expr, j.Rule)
	case l.SubproofID != nil:
		fmt.Fprintf(out, "subproof #%d\n", *l.SubproofID)
	}
}
