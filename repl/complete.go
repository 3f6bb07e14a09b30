// Copyright © 2024 The col authors

package repl

import (
	"sort"
	"strings"

	"github.com/bieber/col/lang"
)

var commands = []string{":defs", ":doc", ":help", ":load", ":quit", ":run"}

// nameCompleter implements readline.AutoCompleter over primitive, form and
// defined names.
type nameCompleter struct {
	table *lang.SymbolTable
}

func (c *nameCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to a delimiter).
	start := pos
	for start > 0 && !strings.ContainsRune(" \t\n{}(),<>=", line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectNames(prefix, start == 0)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, name := range candidates {
		result = append(result, []rune(name[len(prefix):]))
	}
	return result, len([]rune(prefix))
}

func (c *nameCompleter) collectNames(prefix string, lineStart bool) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	if lineStart && strings.HasPrefix(prefix, ":") {
		for _, cmd := range commands {
			add(cmd)
		}
		return result
	}
	for _, p := range lang.Primitives() {
		add(p.Name)
	}
	for _, f := range lang.Forms() {
		add(f.Name)
	}
	for _, name := range c.table.Names() {
		add(name)
	}
	sort.Strings(result)
	return result
}
