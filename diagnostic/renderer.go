// Copyright © 2024 The col authors

package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// tabWidth is the number of columns a tab occupies in a snippet.
const tabWidth = 4

// tokenDelims end an underlined token.
const tokenDelims = " \t,=:<>(){}#"

// Renderer formats diagnostics as annotated source snippets:
//
//	error: undefined function: helper
//	  --> prog.col:1:20
//	   |
//	 1 |  main = compose{1+, helper}
//	   |                     ^^^^^^ not defined
//	   |
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	return r.RenderAll(w, []Diagnostic{d})
}

// RenderAll writes all diagnostics to w separated by blank lines.  Each
// source file is read at most once.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	src := sourceCache{read: r.readFile, lines: make(map[string][]string)}
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.format(&b, d, p, &src)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) readFile(name string) ([]byte, error) {
	if r.SourceReader != nil {
		return r.SourceReader(name)
	}
	return os.ReadFile(name) //#nosec G304
}

func (r *Renderer) format(b *strings.Builder, d Diagnostic, p palette, src *sourceCache) {
	sev := p.forSeverity(d.Severity)
	fmt.Fprintf(b, "%s%s%s: %s%s%s\n", sev, d.Severity, p.reset, p.bold, d.Message, p.reset)
	for _, span := range d.Spans {
		fmt.Fprintf(b, "  %s-->%s %s\n", p.gutter, p.reset, span.location())
		snip, ok := newSnippet(span, src.line(span.File, span.Line))
		if !ok {
			fmt.Fprintf(b, "   %s|%s\n", p.gutter, p.reset)
			continue
		}
		pad := strings.Repeat(" ", len(snip.number))
		bar := func() { fmt.Fprintf(b, " %s%s |%s", p.gutter, pad, p.reset) }
		bar()
		b.WriteByte('\n')
		fmt.Fprintf(b, " %s%s |%s  %s\n", p.gutter, snip.number, p.reset, snip.text)
		bar()
		fmt.Fprintf(b, "  %s%s%s%s", strings.Repeat(" ", snip.offset), sev, strings.Repeat("^", snip.width), p.reset)
		if span.Label != "" {
			fmt.Fprintf(b, " %s%s%s", sev, span.Label, p.reset)
		}
		b.WriteByte('\n')
		bar()
		b.WriteByte('\n')
	}
	for _, note := range d.Notes {
		fmt.Fprintf(b, "   %s=%s note: %s\n", p.note, p.reset, note)
	}
}

// snippet is the layout of one annotated source line.
type snippet struct {
	number string // line number shown in the gutter
	text   string // source line with tabs expanded
	offset int    // display columns before the first caret
	width  int    // number of carets
}

// newSnippet lays out span over its source line.  There is no snippet when
// the line is unknown.
func newSnippet(span Span, line []rune) (snippet, bool) {
	if line == nil {
		return snippet{}, false
	}
	col := max(span.Col, 1)
	end := span.EndCol
	if end <= 0 {
		end = tokenEnd(line, col)
	}
	end = max(end, col)
	prefix := line[:min(col-1, len(line))]
	return snippet{
		number: strconv.Itoa(span.Line),
		text:   strings.ReplaceAll(string(line), "\t", strings.Repeat(" ", tabWidth)),
		offset: displayWidth(prefix),
		width:  end - col + 1,
	}, true
}

// tokenEnd returns the column of the last rune of the token starting at col.
// A delimiter or a column past the end of line is a token of its own.
func tokenEnd(line []rune, col int) int {
	end := col - 1
	for end < len(line) && !strings.ContainsRune(tokenDelims, line[end]) {
		end++
	}
	return max(end, col)
}

// displayWidth returns the number of columns taken by runes once tabs are
// expanded.
func displayWidth(runes []rune) int {
	w := 0
	for _, c := range runes {
		if c == '\t' {
			w += tabWidth
			continue
		}
		w++
	}
	return w
}

// sourceCache holds the lines of each file read while rendering.  A file
// that cannot be read is remembered as having no lines.
type sourceCache struct {
	read  func(string) ([]byte, error)
	lines map[string][]string
}

// line returns the 1-based line n of file, or nil when it is unavailable.
func (c *sourceCache) line(file string, n int) []rune {
	if n <= 0 || file == "" || file == "<input>" {
		return nil
	}
	lines, ok := c.lines[file]
	if !ok {
		if data, err := c.read(file); err == nil {
			lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			for i := range lines {
				lines[i] = strings.TrimSuffix(lines[i], "\r")
			}
		}
		c.lines[file] = lines
	}
	if n > len(lines) {
		return nil
	}
	return []rune(lines[n-1])
}

// fileFromWriter returns the file behind w, if any, for terminal detection.
func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
