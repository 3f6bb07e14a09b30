// Copyright © 2024 The col authors

// Package list implements a generic doubly linked sequence.  Lists hold the
// elements of sequence values, the arguments of function descriptors, and the
// entry chains of the symbol table.
//
// A List is traversed with a Cursor.  Cursors are independent of the list
// they traverse, so any number of them may be active at once and moving a
// cursor never changes the list.  Removing the element a cursor points to
// invalidates only that cursor.
package list

type node[T any] struct {
	val  T
	prev *node[T]
	next *node[T]
	// owner is cleared when a node is removed so stale cursors can detect it.
	owner *List[T]
}

// List is an ordered sequence of T.  The zero value is an empty list ready
// to use.
type List[T any] struct {
	head *node[T]
	tail *node[T]
	n    int
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// From returns a list containing vals in order.
func From[T any](vals ...T) *List[T] {
	l := New[T]()
	for _, v := range vals {
		l.PushBack(v)
	}
	return l
}

// Len returns the number of elements in l.  A nil list has length zero.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// PushFront inserts v at the front of l.
func (l *List[T]) PushFront(v T) {
	nd := &node[T]{val: v, next: l.head, owner: l}
	if l.head != nil {
		l.head.prev = nd
	} else {
		l.tail = nd
	}
	l.head = nd
	l.n++
}

// PushBack inserts v at the back of l.
func (l *List[T]) PushBack(v T) {
	nd := &node[T]{val: v, prev: l.tail, owner: l}
	if l.tail != nil {
		l.tail.next = nd
	} else {
		l.head = nd
	}
	l.tail = nd
	l.n++
}

// PopFront removes and returns the first element of l.  The second return
// value is false when l is empty.
func (l *List[T]) PopFront() (T, bool) {
	if l.Len() == 0 {
		var zero T
		return zero, false
	}
	nd := l.head
	l.unlink(nd)
	return nd.val, true
}

// PopBack removes and returns the last element of l.  The second return value
// is false when l is empty.
func (l *List[T]) PopBack() (T, bool) {
	if l.Len() == 0 {
		var zero T
		return zero, false
	}
	nd := l.tail
	l.unlink(nd)
	return nd.val, true
}

func (l *List[T]) unlink(nd *node[T]) {
	if nd.prev != nil {
		nd.prev.next = nd.next
	} else {
		l.head = nd.next
	}
	if nd.next != nil {
		nd.next.prev = nd.prev
	} else {
		l.tail = nd.prev
	}
	nd.prev, nd.next, nd.owner = nil, nil, nil
	l.n--
}

// Front returns the first element of l.
func (l *List[T]) Front() (T, bool) {
	if l.Len() == 0 {
		var zero T
		return zero, false
	}
	return l.head.val, true
}

// Back returns the last element of l.
func (l *List[T]) Back() (T, bool) {
	if l.Len() == 0 {
		var zero T
		return zero, false
	}
	return l.tail.val, true
}

// Get returns the element at index i.  Negative or out of range indices
// return false.
func (l *List[T]) Get(i int) (T, bool) {
	var zero T
	if i < 0 || i >= l.Len() {
		return zero, false
	}
	// walk from whichever end is closer
	if i < l.n/2 {
		nd := l.head
		for ; i > 0; i-- {
			nd = nd.next
		}
		return nd.val, true
	}
	nd := l.tail
	for j := l.n - 1; j > i; j-- {
		nd = nd.prev
	}
	return nd.val, true
}

// Each calls fn for every element of l in order.  Iteration stops early when
// fn returns false.
func (l *List[T]) Each(fn func(T) bool) {
	if l == nil {
		return
	}
	for nd := l.head; nd != nil; nd = nd.next {
		if !fn(nd.val) {
			return
		}
	}
}

// Values returns the elements of l as a slice.
func (l *List[T]) Values() []T {
	vals := make([]T, 0, l.Len())
	l.Each(func(v T) bool {
		vals = append(vals, v)
		return true
	})
	return vals
}

// Copy returns a new list containing the result of calling cp on each
// element of l.  When cp is nil elements are copied by assignment.
func (l *List[T]) Copy(cp func(T) T) *List[T] {
	out := New[T]()
	l.Each(func(v T) bool {
		if cp != nil {
			v = cp(v)
		}
		out.PushBack(v)
		return true
	})
	return out
}

// Clear removes every element from l.
func (l *List[T]) Clear() {
	for l.Len() > 0 {
		l.PopFront()
	}
}

// Begin returns a cursor positioned at the first element of l.  The cursor
// is invalid if l is empty.
func (l *List[T]) Begin() *Cursor[T] {
	c := &Cursor[T]{list: l}
	if l != nil {
		c.nd = l.head
	}
	return c
}

// End returns a cursor positioned at the last element of l.  The cursor is
// invalid if l is empty.
func (l *List[T]) End() *Cursor[T] {
	c := &Cursor[T]{list: l}
	if l != nil {
		c.nd = l.tail
	}
	return c
}

// Cursor is a position in a List.
type Cursor[T any] struct {
	list *List[T]
	nd   *node[T]
}

// Valid returns true if c points at an element still contained in its list.
func (c *Cursor[T]) Valid() bool {
	return c.nd != nil && c.nd.owner == c.list
}

// Value returns the element c points at.  Value panics if c is not valid.
func (c *Cursor[T]) Value() T {
	if !c.Valid() {
		panic("list: value of invalid cursor")
	}
	return c.nd.val
}

// Next moves c to the following element and reports whether c is still
// valid.
func (c *Cursor[T]) Next() bool {
	if !c.Valid() {
		c.nd = nil
		return false
	}
	c.nd = c.nd.next
	return c.nd != nil
}

// Prev moves c to the preceding element and reports whether c is still
// valid.
func (c *Cursor[T]) Prev() bool {
	if !c.Valid() {
		c.nd = nil
		return false
	}
	c.nd = c.nd.prev
	return c.nd != nil
}
