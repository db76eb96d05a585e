package datastructures

import "iter"

// Slot 0 of the arena is never handed out, so index 0 means "no node".
const nilIndex = 0

const chunkSize = 64

// Borrow states of a list.
const (
	idle      = 0
	exclusive = -1
)

type (
	// List represents a doubly linked list whose nodes live in an arena of
	// slots addressed by index. Removed slots are chained into a free list
	// and reused by later insertions.
	//
	// A List is not safe for concurrent use.
	List[T any] struct {
		chunks [][]node[T]
		slots  int
		free   int

		head   int
		tail   int
		length int

		// borrow is idle, exclusive while a cursor is open, or the number of
		// open iterators.
		borrow int

		freeFn func(T)
		dupFn  func(T) T

		// shared is set on a clone made without a dup method. Its values
		// belong to the source list and are never finalized by the clone.
		shared bool
	}

	// node represents an element slot in the arena.
	node[T any] struct {
		value T
		prev  int
		next  int
		live  bool
	}
)

// Dropper is implemented by element types that need cleanup when the list
// destroys them.
type Dropper interface {
	Drop()
}

// NewList creates a new list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// FromSlice creates a list holding values in order.
func FromSlice[T any](values []T) *List[T] {
	l := NewList[T]()
	c := l.CursorBack()
	for _, v := range values {
		c.InsertAfter(v)
		c.Next()
	}
	c.Close()
	return l
}

// SetFreeMethod installs fn as the finalizer run on every element the list
// destroys. It takes precedence over Dropper.
func (l *List[T]) SetFreeMethod(fn func(T)) {
	l.mustBeIdle()
	l.freeFn = fn
}

// SetDupMethod installs fn as the copier Clone runs on every element.
func (l *List[T]) SetDupMethod(fn func(T) T) {
	l.mustBeIdle()
	l.dupFn = fn
}

// IsEmpty reports whether the list holds no elements.
func (l *List[T]) IsEmpty() bool {
	l.mustNotBeExclusive()
	return l.length == 0
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	l.mustNotBeExclusive()
	return l.length
}

// CursorFront returns a cursor on the first element. The cursor holds the
// list exclusively until it is closed.
func (l *List[T]) CursorFront() *Cursor[T] {
	l.mustBeIdle()
	l.borrow = exclusive
	return &Cursor[T]{list: l, pos: l.head}
}

// CursorBack returns a cursor on the last element.
func (l *List[T]) CursorBack() *Cursor[T] {
	l.mustBeIdle()
	l.borrow = exclusive
	return &Cursor[T]{list: l, pos: l.tail}
}

// Iter returns a forward iterator starting at the first element.
func (l *List[T]) Iter() *Iterator[T] {
	l.mustNotBeExclusive()
	l.borrow++
	return &Iterator[T]{list: l, pos: l.head}
}

// All yields the elements front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.Iter()
		defer it.Close()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward yields the elements back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.mustNotBeExclusive()
		l.borrow++
		defer func() { l.borrow-- }()
		for i, n := l.tail, 0; i != nilIndex && n < l.length; n++ {
			nd := l.live(i)
			if !yield(nd.value) {
				return
			}
			i = nd.prev
		}
	}
}

// Slice returns the elements front to back.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.Len())
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Clone returns a new list holding the same values in the same order.
//
// With a dup method each value is copied through it, and the clone carries
// both the dup and free methods. Without one the clone shares the values of
// l: it has no free method and Close on it finalizes nothing, so each
// element is still destroyed once, by l.
func (l *List[T]) Clone() *List[T] {
	values := l.Slice()
	if l.dupFn == nil {
		c := FromSlice(values)
		c.shared = true
		return c
	}
	for i, v := range values {
		values[i] = l.dupFn(v)
	}
	c := FromSlice(values)
	c.freeFn = l.freeFn
	c.dupFn = l.dupFn
	return c
}

// Close destroys every remaining element and leaves the list empty. It is
// safe to call more than once.
func (l *List[T]) Close() {
	l.mustBeIdle()
	// A slot is cleared as soon as it is finalized, so a corrupted chain that
	// loops back stops at the first cleared slot.
	for i, n := l.head, 0; i != nilIndex && i < l.slots && n < l.slots; n++ {
		nd := l.at(i)
		if !nd.live {
			break
		}
		next := nd.next
		v := nd.value
		*nd = node[T]{}
		l.finalize(v)
		i = next
	}
	l.chunks = nil
	l.slots = 0
	l.free = nilIndex
	l.head = nilIndex
	l.tail = nilIndex
	l.length = 0
}

func (l *List[T]) finalize(v T) {
	if l.shared {
		return
	}
	if l.freeFn != nil {
		l.freeFn(v)
		return
	}
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	}
}

func (l *List[T]) at(i int) *node[T] {
	return &l.chunks[i/chunkSize][i%chunkSize]
}

// live returns the node at i, which must be linked into the list.
func (l *List[T]) live(i int) *node[T] {
	nd := l.at(i)
	if !nd.live {
		panic("datastructures: corrupt list: linked slot is not live")
	}
	return nd
}

// alloc stores v in a free slot and returns its index.
func (l *List[T]) alloc(v T) int {
	if l.free != nilIndex {
		i := l.free
		nd := l.at(i)
		l.free = nd.next
		*nd = node[T]{value: v, live: true}
		return i
	}
	if l.slots == 0 {
		// Reserve slot 0.
		l.chunks = append(l.chunks, make([]node[T], chunkSize))
		l.slots = 1
	}
	if l.slots == len(l.chunks)*chunkSize {
		l.chunks = append(l.chunks, make([]node[T], chunkSize))
	}
	i := l.slots
	l.slots++
	*l.at(i) = node[T]{value: v, live: true}
	return i
}

// release returns slot i to the free list and hands back its value
// without finalizing it.
func (l *List[T]) release(i int) T {
	nd := l.live(i)
	v := nd.value
	*nd = node[T]{next: l.free}
	l.free = i
	return v
}

func (l *List[T]) mustBeIdle() {
	switch {
	case l.borrow == exclusive:
		panic("datastructures: list is held by a cursor")
	case l.borrow > 0:
		panic("datastructures: list is held by an iterator")
	}
}

func (l *List[T]) mustNotBeExclusive() {
	if l.borrow == exclusive {
		panic("datastructures: list is held by a cursor")
	}
}
