// Copyright © 2024 The col authors

package lang

import (
	"sort"

	"github.com/bieber/col/list"
)

// DefaultTableSize is the bucket count of a table made by NewSymbolTable.
const DefaultTableSize = 1024

// Entry binds a name to a function definition.
type Entry struct {
	Name string
	Fun  *Function
}

// SymbolTable maps names to function definitions.  Adding a name that is
// already present does not replace the earlier entry; the most recent entry
// shadows it for lookups.
type SymbolTable struct {
	buckets []*list.List[*Entry]
	entries *list.List[*Entry] // every entry in insertion order
}

// NewSymbolTable returns an empty table with DefaultTableSize buckets.
func NewSymbolTable() *SymbolTable {
	return NewSymbolTableSize(DefaultTableSize)
}

// NewSymbolTableSize returns an empty table with the given number of buckets.
func NewSymbolTableSize(size int) *SymbolTable {
	if size < 1 {
		size = 1
	}
	t := &SymbolTable{
		buckets: make([]*list.List[*Entry], size),
		entries: list.New[*Entry](),
	}
	for i := range t.buckets {
		t.buckets[i] = list.New[*Entry]()
	}
	return t
}

func (t *SymbolTable) bucket(name string) *list.List[*Entry] {
	return t.buckets[hash(name)%uint32(len(t.buckets))]
}

// Add binds name to fun.
func (t *SymbolTable) Add(name string, fun *Function) {
	e := &Entry{Name: name, Fun: fun}
	t.bucket(name).PushFront(e)
	t.entries.PushBack(e)
}

// Find returns the most recently added definition of name.
func (t *SymbolTable) Find(name string) (*Function, bool) {
	for c := t.bucket(name).Begin(); c.Valid(); c.Next() {
		if e := c.Value(); e.Name == name {
			return e.Fun, true
		}
	}
	return nil, false
}

// Delete removes every entry from t.
func (t *SymbolTable) Delete() {
	for _, b := range t.buckets {
		b.Clear()
	}
	t.entries.Clear()
}

// Len returns the number of entries in t, shadowed entries included.
func (t *SymbolTable) Len() int {
	return t.entries.Len()
}

// Names returns the distinct names bound in t in sorted order.
func (t *SymbolTable) Names() []string {
	seen := make(map[string]bool)
	var names []string
	t.entries.Each(func(e *Entry) bool {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
		return true
	})
	sort.Strings(names)
	return names
}

// Each calls fn for every entry of t, shadowed entries included, in the order
// they were added.  Iteration stops when fn returns false.
func (t *SymbolTable) Each(fn func(*Entry) bool) {
	t.entries.Each(fn)
}

// hash sums the name's bytes as little endian 32-bit words, zero padding the
// final word.
func hash(name string) uint32 {
	var sum uint32
	for i := 0; i < len(name); i += 4 {
		var word uint32
		for j := 0; j < 4 && i+j < len(name); j++ {
			word |= uint32(name[i+j]) << (8 * j)
		}
		sum += word
	}
	return sum
}
