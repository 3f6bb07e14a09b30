// Copyright © 2024 The col authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDefinition handles the textDocument/definition request.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	doc.mu.Lock()
	defer doc.mu.Unlock()

	_, def := nameAtPosition(doc, int(params.Position.Line), int(params.Position.Character))
	// Builtins have no navigable source.
	if def == nil || def.Source == nil {
		return nil, nil
	}
	return protocol.Location{
		URI:   params.TextDocument.URI,
		Range: colToLSPRange(def.Source, def.Name),
	}, nil
}
