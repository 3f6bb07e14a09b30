// Copyright © 2024 The col authors

package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPop(t *testing.T) {
	l := New[int]()
	assert.Equal(t, 0, l.Len())
	_, ok := l.PopFront()
	assert.False(t, ok)
	_, ok = l.PopBack()
	assert.False(t, ok)

	l.PushBack(2)
	l.PushBack(3)
	l.PushFront(1)
	assert.Equal(t, []int{1, 2, 3}, l.Values())

	v, ok := l.PopBack()
	require.True(t, ok)
	assert.Equal(t, 3, v)
	v, ok = l.PopFront()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []int{2}, l.Values())
	v, ok = l.PopFront()
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 0, l.Len())
	_, ok = l.Front()
	assert.False(t, ok)
}

func TestGet(t *testing.T) {
	l := From(10, 20, 30, 40, 50)
	for i, want := range []int{10, 20, 30, 40, 50} {
		v, ok := l.Get(i)
		assert.True(t, ok)
		assert.Equal(t, want, v, "index %d", i)
	}
	_, ok := l.Get(-1)
	assert.False(t, ok)
	_, ok = l.Get(5)
	assert.False(t, ok)

	var nilList *List[int]
	assert.Equal(t, 0, nilList.Len())
	_, ok = nilList.Get(0)
	assert.False(t, ok)
}

func TestCursorForwardBackward(t *testing.T) {
	l := From("a", "b", "c")

	var fwd []string
	for c := l.Begin(); c.Valid(); c.Next() {
		fwd = append(fwd, c.Value())
	}
	assert.Equal(t, []string{"a", "b", "c"}, fwd)

	var back []string
	for c := l.End(); c.Valid(); c.Prev() {
		back = append(back, c.Value())
	}
	assert.Equal(t, []string{"c", "b", "a"}, back)

	// traversal leaves the list untouched
	assert.Equal(t, []string{"a", "b", "c"}, l.Values())
}

func TestCursorsAreIndependent(t *testing.T) {
	l := From(1, 2, 3)
	a := l.Begin()
	b := l.Begin()
	a.Next()
	assert.Equal(t, 2, a.Value())
	assert.Equal(t, 1, b.Value())
}

func TestCursorInvalidatedByRemoval(t *testing.T) {
	l := From(1, 2)
	c := l.Begin()
	l.PopFront()
	assert.False(t, c.Valid())
	assert.False(t, c.Next())
	assert.Panics(t, func() { c.Value() })

	e := l.End()
	assert.True(t, e.Valid())
	assert.Equal(t, 2, e.Value())
}

func TestEmptyCursor(t *testing.T) {
	l := New[int]()
	assert.False(t, l.Begin().Valid())
	assert.False(t, l.End().Valid())
}

func TestCopy(t *testing.T) {
	l := From(1, 2, 3)
	cp := l.Copy(func(x int) int { return x * 10 })
	assert.Equal(t, []int{10, 20, 30}, cp.Values())
	cp.PushBack(40)
	assert.Equal(t, 3, l.Len())

	plain := l.Copy(nil)
	assert.Equal(t, l.Values(), plain.Values())
}

func TestEachStopsEarly(t *testing.T) {
	l := From(1, 2, 3, 4)
	var seen []int
	l.Each(func(x int) bool {
		seen = append(seen, x)
		return x < 2
	})
	assert.Equal(t, []int{1, 2}, seen)
}

func TestClear(t *testing.T) {
	l := From(1, 2, 3)
	c := l.Begin()
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.False(t, c.Valid())
}
