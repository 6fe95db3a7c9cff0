// Package lsp implements a language server for Aris proof documents: on
// every open/change notification it reparses the document's XML, re-verifies
// every step with the rule-checking engine, and republishes one diagnostic
// per failing line, in the same glsp/commonlog-driven shape as the
// teacher's own language server.
package lsp

import (
	"encoding/xml"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"aris/internal/proof"
	"aris/internal/rules"
	"aris/internal/xmlproof"
)

// ProofHandler implements the LSP server handlers for Aris proof documents.
type ProofHandler struct {
	mu      sync.RWMutex
	content map[string]string
	pools   map[string]*proof.Pool
}

// NewProofHandler creates an empty handler.
func NewProofHandler() *ProofHandler {
	return &ProofHandler{
		content: make(map[string]string),
		pools:   make(map[string]*proof.Pool),
	}
}

// Initialize advertises the server's capabilities. Semantic tokens are not
// offered: proof lines carry no byte-span information to anchor them to, so
// there is nothing honest to report there (see DESIGN.md).
func (h *ProofHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("aris-lsp: initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
		},
	}, nil
}

func (h *ProofHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("aris-lsp: initialized")
	return nil
}

func (h *ProofHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("aris-lsp: shutdown")
	return nil
}

func (h *ProofHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	diagnostics, err := h.reverify(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return fmt.Errorf("reverify on open: %w", err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (h *ProofHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	var text string
	switch c := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		text = c.Text
	case protocol.TextDocumentContentChangeEvent:
		text = c.Text
	}
	diagnostics, err := h.reverify(params.TextDocument.URI, text)
	if err != nil {
		return fmt.Errorf("reverify on change: %w", err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (h *ProofHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("converting uri %s: %w", params.TextDocument.URI, err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.pools, path)
	return nil
}

func (h *ProofHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	items := make([]protocol.CompletionItem, 0, len(rules.Checkers()))
	for _, name := range rules.Checkers() {
		label := name
		items = append(items, protocol.CompletionItem{Label: label})
	}
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// reverify parses text as an XML proof document and runs VerifyLine over
// every premise, step, and subproof in depth-first order, returning one
// LSP diagnostic per failure.
func (h *ProofHandler) reverify(rawURI protocol.DocumentUri, text string) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("converting uri %s: %w", rawURI, err)
	}

	var doc xmlproof.Document
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("aris-xml"),
			Message:  fmt.Sprintf("malformed proof document: %s", err),
		}}, nil
	}

	p, err := xmlproof.Read(doc)
	if err != nil {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("aris-proof"),
			Message:  err.Error(),
		}}, nil
	}

	h.mu.Lock()
	h.content[path] = text
	h.pools[path] = p
	h.mu.Unlock()

	var diagnostics []protocol.Diagnostic
	for _, ref := range allRefs(p, p.Root()) {
		if err := rules.VerifyLine(p, ref); err != nil {
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    protocol.Range{},
				Severity: ptrSeverity(protocol.DiagnosticSeverityError),
				Source:   ptrString("aris-verify"),
				Message:  fmt.Sprintf("%s: %s", ref, err.Error()),
			})
		}
	}
	return diagnostics, nil
}

// allRefs walks a subproof depth-first collecting every premise/step
// LineRef, recursing into nested subproofs, so the caller can VerifyLine
// every line in the document in one pass.
func allRefs(p *proof.Pool, sub proof.SubproofID) []proof.LineRef {
	var out []proof.LineRef
	for _, line := range p.Lines(sub) {
		switch {
		case line.PremiseID != nil:
			out = append(out, proof.PremiseRef(*line.PremiseID))
		case line.JustID != nil:
			out = append(out, proof.JustRef(*line.JustID))
		case line.SubproofID != nil:
			out = append(out, allRefs(p, *line.SubproofID)...)
		}
	}
	return out
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid uri %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool                                       { return &b }
func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity     { return &s }
func ptrString(s string) *string                                 { return &s }
