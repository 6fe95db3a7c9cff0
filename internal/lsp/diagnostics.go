package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	arisErrors "aris/internal/errors"
)

// ConvertDiagnostic turns one rule-checking diagnostic into an LSP
// protocol.Diagnostic. Proof documents carry no byte-span information for
// their lines (see handler.go's reverify), so every diagnostic spans the
// whole document; the line/step identity is carried in the message text
// instead of the range.
func ConvertDiagnostic(d arisErrors.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Level == arisErrors.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}
	message := d.Message
	if d.HelpText != "" {
		message = message + " (" + d.HelpText + ")"
	}
	return protocol.Diagnostic{
		Range:    protocol.Range{},
		Severity: &severity,
		Source:   ptrString("aris-verify"),
		Message:  message,
	}
}
