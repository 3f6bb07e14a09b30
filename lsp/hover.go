// Copyright © 2024 The col authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/rdparser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentHover handles the textDocument/hover request.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
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
	content := buildHoverContent(name, def)
	if content == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
	}, nil
}

// buildHoverContent builds Markdown hover text for a builtin or a
// definition.
func buildHoverContent(name string, def *rdparser.Definition) string {
	var sb strings.Builder
	if def == nil {
		usage, doc, ok := lang.BuiltinDoc(name)
		if !ok {
			return ""
		}
		kind := "primitive"
		if _, isForm := lang.LookupForm(name); isForm {
			kind = "form"
		}
		fmt.Fprintf(&sb, "**%s** `%s`\n\n```col\n%s\n```\n\n%s", kind, name, usage, doc)
		return sb.String()
	}
	fmt.Fprintf(&sb, "**function** `%s`\n\n```col\n%s = %v\n```", def.Name, def.Name, def.Fun)
	if def.Doc != "" {
		fmt.Fprintf(&sb, "\n\n%s", def.Doc)
	}
	if def.Source != nil {
		fmt.Fprintf(&sb, "\n\n*Defined in %s:%d*", def.Source.File, def.Source.Line)
	}
	return sb.String()
}
