// Copyright © 2024 The col authors

package lsp

import (
	"errors"
	"fmt"
	"time"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/rdparser"
	"github.com/bieber/col/parser/token"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "col"

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.publish(doc)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange notification.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)

	// Debounce: delay publishing to avoid thrashing during rapid edits.
	s.debounceMu.Lock()
	if t, ok := s.debounce[doc.URI]; ok {
		t.Stop()
	}
	s.debounce[doc.URI] = time.AfterFunc(s.delay, func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.WithField("uri", doc.URI).Errorf("diagnostics panic: %v", r)
			}
		}()
		if d := s.docs.Get(doc.URI); d != nil {
			s.publish(d)
		}
	})
	s.debounceMu.Unlock()
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	s.cancelDebounce(params.TextDocument.URI)
	if doc := s.docs.Get(params.TextDocument.URI); doc != nil {
		s.publish(doc)
	}
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.cancelDebounce(params.TextDocument.URI)

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) cancelDebounce(uri string) {
	s.debounceMu.Lock()
	if t, ok := s.debounce[uri]; ok {
		t.Stop()
		delete(s.debounce, uri)
	}
	s.debounceMu.Unlock()
}

// publish sends the diagnostics for doc to the client.
func (s *Server) publish(doc *Document) {
	doc.mu.Lock()
	diags := doc.diagnostics()
	uri := doc.URI
	version := doc.Version
	doc.mu.Unlock()

	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     uintPtr(version),
		Diagnostics: diags,
	})
}

// diagnostics reports the parse error, if any, as an error and reports
// redefinitions, definitions hidden by builtins and calls to undefined
// functions as warnings.
func (d *Document) diagnostics() []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	if d.parseErr != nil {
		diags = append(diags, protocol.Diagnostic{
			Range:    parseErrorRange(d.parseErr),
			Severity: severity(protocol.DiagnosticSeverityError),
			Source:   strPtr(diagnosticSource),
			Message:  parseErrorMessage(d.parseErr),
		})
	}
	for _, def := range d.redefined {
		diag := warning(def.Source, def.Name, fmt.Sprintf("redefinition of %s", def.Name))
		if prev := d.previous(def); prev != nil {
			diag.RelatedInformation = []protocol.DiagnosticRelatedInformation{{
				Location: protocol.Location{URI: d.URI, Range: colToLSPRange(prev.Source, prev.Name)},
				Message:  "previous definition of " + prev.Name,
			}}
		}
		diags = append(diags, diag)
	}
	for _, def := range d.defs {
		if lang.IsBuiltin(def.Name) {
			diags = append(diags, warning(def.Source, def.Name,
				fmt.Sprintf("definition of %s is never called: %s is a builtin", def.Name, def.Name)))
		}
	}
	// An incomplete document may define the name further down.
	if d.parseErr != nil {
		return diags
	}
	for _, fn := range d.calls {
		if fn.Kind == lang.KindUser && d.lookup(fn.Name) == nil {
			diags = append(diags, warning(fn.Source, fn.Name, "undefined function: "+fn.Name))
		}
	}
	return diags
}

func warning(loc *token.Location, name string, msg string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    colToLSPRange(loc, name),
		Severity: severity(protocol.DiagnosticSeverityWarning),
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	}
}

func severity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func uintPtr(v int32) *protocol.UInteger {
	u := safeUint(int(v))
	return &u
}

// parseErrorRange extracts the source position of a parse error.  The range
// covers the offending token when it is known.
func parseErrorRange(err error) protocol.Range {
	var perr *rdparser.ParseError
	if errors.As(err, &perr) && perr.Source != nil && perr.Source.Line > 0 {
		text := ""
		if perr.Token != nil && perr.Token.Type != token.ERROR {
			text = perr.Token.Text
		}
		if text == "" {
			text = " "
		}
		return colToLSPRange(perr.Source, text)
	}
	var locErr *token.LocationError
	if errors.As(err, &locErr) && locErr.Source != nil && locErr.Source.Line > 0 {
		return colToLSPRange(locErr.Source, " ")
	}
	return protocol.Range{}
}

// parseErrorMessage drops the location prefix, which the client shows
// itself.
func parseErrorMessage(err error) string {
	var perr *rdparser.ParseError
	if errors.As(err, &perr) {
		if perr.Err == nil {
			return perr.Kind.String()
		}
		return perr.Kind.String() + ": " + perr.Err.Error()
	}
	return err.Error()
}
