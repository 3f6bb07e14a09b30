// Copyright © 2024 The col authors

package rdparser_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/bieber/col/parser/lexer"
	"github.com/bieber/col/parser/rdparser"
)

const fixtureDir = "../../examples"

func BenchmarkParser(b *testing.B) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.col"))
	if err != nil {
		b.Fatalf("Failed to list test fixtures: %v", err)
	}
	sort.Strings(files) // should be redundant
	for _, path := range files {
		path := path
		b.Run(filepath.Base(path), func(b *testing.B) {
			buf, err := os.ReadFile(path) //#nosec G304
			if err != nil {
				b.Fatalf("Unable to read source file %v: %v", path, err)
			}
			b.SetBytes(int64(len(buf)))
			lex := lexer.New(path, buf)
			for i := 0; i < b.N; i++ {
				lex.Init(buf)
				_, err := rdparser.New(lex).Parse()
				if err != nil {
					b.Fatalf("Parse failure: %v", err)
				}
			}
		})
	}
}
