// Copyright © 2024 The col authors

package lsp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/rdparser"
	"github.com/bieber/col/parser/token"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colToLSPPosition converts a 1-based col location to a 0-based LSP position.
func colToLSPPosition(loc *token.Location) protocol.Position {
	line := loc.Line
	col := loc.Col
	if line > 0 {
		line--
	}
	if col > 0 {
		col--
	}
	return protocol.Position{
		Line:      safeUint(line),
		Character: safeUint(col),
	}
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// colToLSPRange converts a col location to an LSP range covering name.
func colToLSPRange(loc *token.Location, name string) protocol.Range {
	start := colToLSPPosition(loc)
	end := protocol.Position{
		Line:      start.Line,
		Character: start.Character + safeUint(utf8.RuneCountInString(name)),
	}
	return protocol.Range{Start: start, End: end}
}

// locContainsCol checks whether a 1-based line and column fall within name
// starting at loc.
func locContainsCol(loc *token.Location, name string, line, col int) bool {
	if loc == nil || loc.Line != line || loc.Col == 0 {
		return false
	}
	return col >= loc.Col && col < loc.Col+utf8.RuneCountInString(name)
}

// callAtPosition finds the function descriptor whose name covers the 0-based
// LSP position.
func callAtPosition(doc *Document, line, col int) *lang.Function {
	for _, fn := range doc.calls {
		if locContainsCol(fn.Source, fn.Name, line+1, col+1) {
			return fn
		}
	}
	return nil
}

// definitionAtPosition finds the definition whose name covers the 0-based
// LSP position.
func definitionAtPosition(doc *Document, line, col int) *rdparser.Definition {
	for _, def := range doc.defs {
		if locContainsCol(def.Source, def.Name, line+1, col+1) {
			return def
		}
	}
	return nil
}

// nameAtPosition returns the name of the definition or function call at the
// 0-based LSP position, and the definition bound to it in doc if any.
func nameAtPosition(doc *Document, line, col int) (string, *rdparser.Definition) {
	if def := definitionAtPosition(doc, line, col); def != nil {
		return def.Name, def
	}
	if fn := callAtPosition(doc, line, col); fn != nil {
		if fn.Kind != lang.KindUser {
			return fn.Name, nil
		}
		return fn.Name, doc.lookup(fn.Name)
	}
	return "", nil
}

// wordAtPosition extracts the name-like word ending at the given 0-based LSP
// position from the document content.
func wordAtPosition(content string, line, col int) string {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	ln := []rune(lines[line])
	if col < 0 || col > len(ln) {
		return ""
	}
	start := col
	for start > 0 && isNameChar(ln[start-1]) {
		start--
	}
	return string(ln[start:col])
}

func isNameChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || strings.ContainsRune("+-*/!_.", c)
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}
