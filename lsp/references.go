// Copyright © 2024 The col authors

package lsp

import (
	"github.com/bieber/col/lang"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentReferences handles the textDocument/references request.
// Builtins are referenced by their calls; definitions by calls and, when
// requested, every definition of the name.
func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	doc.mu.Lock()
	defer doc.mu.Unlock()

	name, def := nameAtPosition(doc, int(params.Position.Line), int(params.Position.Character))
	if name == "" {
		return nil, nil
	}
	user := def != nil || !lang.IsBuiltin(name)

	var locs []protocol.Location
	if user && params.Context.IncludeDeclaration {
		for _, other := range doc.defs {
			if other.Name == name {
				locs = append(locs, protocol.Location{
					URI:   params.TextDocument.URI,
					Range: colToLSPRange(other.Source, other.Name),
				})
			}
		}
	}
	for _, fn := range doc.calls {
		if fn.Name != name || (fn.Kind == lang.KindUser) != user {
			continue
		}
		locs = append(locs, protocol.Location{
			URI:   params.TextDocument.URI,
			Range: colToLSPRange(fn.Source, fn.Name),
		})
	}
	return locs, nil
}
