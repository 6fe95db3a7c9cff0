package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"aris/internal/proof"
)

// Reporter formats diagnostics against a Pool's line contents, in the same
// Rust-flavored "error[Kind]: message / --> line N / help: ..." register as
// the teacher's own compiler diagnostics, but anchored on proof line numbers
// rather than byte spans.
type Reporter struct {
	pool     *proof.Pool
	document string
}

// NewReporter builds a reporter for diagnostics produced while verifying p,
// labeling output with the given document name (e.g. a file path).
func NewReporter(p *proof.Pool, document string) *Reporter {
	return &Reporter{pool: p, document: document}
}

// Format renders a single diagnostic as a multi-line, colorized string.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder

	levelColor := r.levelColor(d.Level)
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if d.Kind != "" {
		out.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Kind, d.Message))
	} else {
		out.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}

	if d.Ref != nil {
		out.WriteString(fmt.Sprintf("   %s %s:%s\n", dim("-->"), r.document, bold(d.Ref.String())))
		if text, ok := r.lineText(*d.Ref); ok {
			out.WriteString(fmt.Sprintf("    %s %s\n", dim("|"), text))
		}
	}

	if d.Expected != "" {
		out.WriteString(fmt.Sprintf("    %s expected: %s\n", dim("|"), d.Expected))
	}

	for i, s := range d.Suggestions {
		helpColor := color.New(color.FgCyan).SprintFunc()
		if i == 0 {
			out.WriteString(fmt.Sprintf("    %s %s: %s\n", dim("="), helpColor("help"), s.Message))
		} else {
			out.WriteString(fmt.Sprintf("      %s\n", s.Message))
		}
		if s.Replacement != "" {
			out.WriteString(fmt.Sprintf("      %s %s\n", dim("try:"), s.Replacement))
		}
	}

	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		out.WriteString(fmt.Sprintf("    %s %s %s\n", dim("="), noteColor("note:"), note))
	}

	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		out.WriteString(fmt.Sprintf("    %s %s %s\n", dim("="), helpColor("help:"), d.HelpText))
	}

	return out.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (r *Reporter) lineText(ref proof.LineRef) (string, bool) {
	switch {
	case ref.Premise != nil:
		e, ok := r.pool.Premise(*ref.Premise)
		if !ok {
			return "", false
		}
		return e.String(), true
	case ref.Just != nil:
		j, ok := r.pool.Justification(*ref.Just)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s  (%s)", j.Expr.String(), j.Rule), true
	default:
		return "", false
	}
}
