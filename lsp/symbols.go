// Copyright © 2024 The col authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDocumentSymbol handles the textDocument/documentSymbol request.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	doc.mu.Lock()
	defer doc.mu.Unlock()

	symbols := []protocol.DocumentSymbol{}
	for _, def := range doc.defs {
		r := colToLSPRange(def.Source, def.Name)
		detail := def.Fun.String()
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           def.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindFunction,
			Range:          r,
			SelectionRange: r,
		})
	}
	// Return as []DocumentSymbol (the preferred hierarchical form).
	return symbols, nil
}
