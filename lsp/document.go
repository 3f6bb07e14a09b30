// Copyright © 2024 The col authors

package lsp

import (
	"sync"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/lexer"
	"github.com/bieber/col/parser/rdparser"
)

// Document represents an open text document tracked by the LSP server.
type Document struct {
	mu      sync.Mutex
	URI     string
	Version int32
	Content string

	// defs lists the definitions read before any parse error.
	defs      []*rdparser.Definition
	redefined []*rdparser.Definition
	// calls holds every function descriptor in defs, in source order.
	calls    []*lang.Function
	parseErr error
}

// parse parses the document content and indexes its definitions.  Parsing
// stops at the first error but the definitions before it are kept so that
// navigation keeps working while the user types.
func (d *Document) parse() {
	p := rdparser.New(lexer.New(uriToPath(d.URI), []byte(d.Content)))
	_, d.parseErr = p.Parse()
	d.defs = p.Definitions()
	d.redefined = p.Redefined()
	d.calls = nil
	for _, def := range d.defs {
		def.Fun.Walk(func(fn *lang.Function) {
			if fn.Source != nil {
				d.calls = append(d.calls, fn)
			}
		})
	}
}

// lookup returns the definition of name that is in effect, the last one in
// the document.
func (d *Document) lookup(name string) *rdparser.Definition {
	for i := len(d.defs) - 1; i >= 0; i-- {
		if d.defs[i].Name == name {
			return d.defs[i]
		}
	}
	return nil
}

// previous returns the definition of def.Name that precedes def.
func (d *Document) previous(def *rdparser.Definition) *rdparser.Definition {
	var prev *rdparser.Definition
	for _, other := range d.defs {
		if other == def {
			return prev
		}
		if other.Name == def.Name {
			prev = other
		}
	}
	return nil
}

// DocumentStore manages open documents with thread-safe access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds a document to the store and parses it.
func (s *DocumentStore) Open(uri string, version int32, content string) *Document {
	doc := &Document{
		URI:     uri,
		Version: version,
		Content: content,
	}
	doc.parse()
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Change updates a document's content (full sync) and re-parses it.
func (s *DocumentStore) Change(uri string, version int32, content string) *Document {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		s.docs[uri] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	doc.Version = version
	doc.Content = content
	doc.parse()
	doc.mu.Unlock()
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get retrieves a document by URI. Returns nil if not found.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}
