// Copyright © 2024 The col authors

package lsp

import (
	"unicode/utf8"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/lexer"
	"github.com/bieber/col/parser/token"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Semantic token type indices. Must match the order in semanticTokenLegend().
const (
	semTokenFunction = iota
	semTokenKeyword
	semTokenString
	semTokenNumber
	semTokenOperator
)

// Semantic token modifier bit flags. Must match the order in semanticTokenLegend().
const (
	semModDefinition = 1 << iota
	semModDefaultLibrary
)

// semanticTokenLegend returns the legend that the client uses to decode tokens.
func semanticTokenLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes: []string{
			"function", // 0
			"keyword",  // 1
			"string",   // 2
			"number",   // 3
			"operator", // 4
		},
		TokenModifiers: []string{
			"definition",     // bit 0
			"defaultLibrary", // bit 1
		},
	}
}

// rawToken is an intermediate representation before delta encoding.
type rawToken struct {
	line      int // 0-based
	startChar int // 0-based
	length    int
	tokenType int
	modifiers int
}

// textDocumentSemanticTokensFull handles the textDocument/semanticTokens/full request.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	doc.mu.Lock()
	content := doc.Content
	doc.mu.Unlock()

	data := deltaEncode(collectSemanticTokens(content))
	return &protocol.SemanticTokens{Data: data}, nil
}

// collectSemanticTokens classifies the tokens of content in source order.
// Classification stops at the first lexing error.
func collectSemanticTokens(content string) []rawToken {
	lex := lexer.New("", []byte(content))
	var toks []*token.Token
	for lex.Next() {
		toks = append(toks, lex.Token())
	}
	var raw []rawToken
	for i, tok := range toks {
		r := rawToken{
			line:      tok.Source.Line - 1,
			startChar: tok.Source.Col - 1,
			length:    utf8.RuneCountInString(tok.Text),
		}
		switch tok.Type {
		case token.IDENT:
			r.tokenType = semTokenFunction
			switch {
			case i+1 < len(toks) && toks[i+1].Type == token.ASSIGN:
				r.modifiers = semModDefinition
			case lang.IsBuiltin(tok.Text):
				if _, ok := lang.LookupForm(tok.Text); ok {
					r.tokenType = semTokenKeyword
				}
				r.modifiers = semModDefaultLibrary
			}
		case token.INT, token.FLOAT:
			r.tokenType = semTokenNumber
		case token.CHAR, token.STRING:
			r.tokenType = semTokenString
		case token.TRUE, token.FALSE, token.BOTTOM:
			r.tokenType = semTokenKeyword
		case token.ASSIGN, token.APPLY:
			r.tokenType = semTokenOperator
		default:
			continue
		}
		raw = append(raw, r)
	}
	return raw
}

// deltaEncode converts sorted raw tokens into the LSP delta-encoded format.
// Each token is 5 integers: [deltaLine, deltaStartChar, length, tokenType, tokenModifiers].
func deltaEncode(tokens []rawToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	prevLine := 0
	prevChar := 0
	for _, tok := range tokens {
		deltaLine := tok.line - prevLine
		deltaChar := tok.startChar
		if deltaLine == 0 {
			deltaChar = tok.startChar - prevChar
		}
		data = append(data,
			safeUint(deltaLine),
			safeUint(deltaChar),
			safeUint(tok.length),
			safeUint(tok.tokenType),
			safeUint(tok.modifiers),
		)
		prevLine = tok.line
		prevChar = tok.startChar
	}
	return data
}
