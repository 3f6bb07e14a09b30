// Copyright © 2024 The col authors

package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable(t *testing.T) {
	table := NewSymbolTable()
	_, ok := table.Find("f")
	assert.False(t, ok)

	table.Add("f", NewUser("g"))
	table.Add("g", NewUser("h"))
	fn, ok := table.Find("f")
	require.True(t, ok)
	assert.Equal(t, "g", fn.Name)
	fn, ok = table.Find("g")
	require.True(t, ok)
	assert.Equal(t, "h", fn.Name)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"f", "g"}, table.Names())
}

func TestSymbolTableShadowing(t *testing.T) {
	table := NewSymbolTable()
	table.Add("f", NewUser("first"))
	table.Add("f", NewUser("second"))
	fn, ok := table.Find("f")
	require.True(t, ok)
	assert.Equal(t, "second", fn.Name)

	// shadowed entries are still visible to iteration
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"f"}, table.Names())
	var seen []string
	table.Each(func(e *Entry) bool {
		seen = append(seen, e.Fun.Name)
		return true
	})
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestSymbolTableCollisions(t *testing.T) {
	// word sums are order independent
	require.Equal(t, hash("abcdefgh"), hash("efghabcd"))

	table := NewSymbolTable()
	table.Add("abcdefgh", NewUser("x"))
	table.Add("efghabcd", NewUser("y"))
	fn, ok := table.Find("abcdefgh")
	require.True(t, ok)
	assert.Equal(t, "x", fn.Name)
	fn, ok = table.Find("efghabcd")
	require.True(t, ok)
	assert.Equal(t, "y", fn.Name)

	// a single bucket holds everything
	small := NewSymbolTableSize(1)
	for _, name := range []string{"a", "b", "c"} {
		small.Add(name, NewUser(name+"!"))
	}
	for _, name := range []string{"a", "b", "c"} {
		fn, ok := small.Find(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, name+"!", fn.Name)
		}
	}
	_, ok = small.Find("d")
	assert.False(t, ok)
}

func TestSymbolTableDelete(t *testing.T) {
	table := NewSymbolTable()
	table.Add("f", NewUser("g"))
	table.Delete()
	_, ok := table.Find("f")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Names())
}

func TestHash(t *testing.T) {
	assert.Equal(t, uint32(0), hash(""))
	assert.Equal(t, uint32('a'), hash("a"))
	assert.Equal(t, uint32('a')|uint32('b')<<8, hash("ab"))
	assert.Equal(t, uint32('a')|uint32('b')<<8|uint32('c')<<16|uint32('d')<<24+uint32('e'), hash("abcde"))
}
