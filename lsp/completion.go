// Copyright © 2024 The col authors

package lsp

import (
	"sort"
	"strings"

	"github.com/bieber/col/lang"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentCompletion handles the textDocument/completion request.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	doc.mu.Lock()
	defer doc.mu.Unlock()

	prefix := wordAtPosition(doc.Content, int(params.Position.Line), int(params.Position.Character))
	items := []protocol.CompletionItem{}
	add := func(label string, kind protocol.CompletionItemKind, detail, documentation string) {
		if !strings.HasPrefix(label, prefix) {
			return
		}
		item := protocol.CompletionItem{
			Label:  label,
			Kind:   &kind,
			Detail: strPtr(detail),
		}
		if documentation != "" {
			item.Documentation = &protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: documentation,
			}
		}
		items = append(items, item)
	}

	for _, p := range lang.Primitives() {
		add(p.Name, protocol.CompletionItemKindFunction, p.Usage, p.Doc)
	}
	for _, f := range lang.Forms() {
		add(f.Name, protocol.CompletionItemKindKeyword, f.Usage, f.Doc)
	}
	seen := make(map[string]bool)
	var names []string
	for _, def := range doc.defs {
		if !seen[def.Name] && !lang.IsBuiltin(def.Name) {
			seen[def.Name] = true
			names = append(names, def.Name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		def := doc.lookup(name)
		add(name, protocol.CompletionItemKindFunction, def.Fun.String(), def.Doc)
	}
	return items, nil
}
