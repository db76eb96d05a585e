package datastructures

// Cursor is a mutable position in a List. While a cursor is open no other
// cursor or iterator can be taken on its list, and the list itself cannot
// be read or changed. Close hands the list back.
//
// A cursor on an empty list has no position. Pointers returned by PeekMut,
// Next and Prev stay valid until their element is removed.
type Cursor[T any] struct {
	list *List[T]
	pos  int
}

// PeekMut returns the element at the cursor, or nil if the list is empty.
func (c *Cursor[T]) PeekMut() *T {
	l := c.mustBeOpen()
	if c.pos == nilIndex {
		return nil
	}
	return &l.live(c.pos).value
}

// Next moves the cursor one element toward the back and returns the new
// element. At the back, or on an empty list, it returns nil and stays put.
func (c *Cursor[T]) Next() *T {
	l := c.mustBeOpen()
	if c.pos == nilIndex {
		return nil
	}
	next := l.live(c.pos).next
	if next == nilIndex {
		return nil
	}
	c.pos = next
	return &l.live(next).value
}

// Prev moves the cursor one element toward the front.
func (c *Cursor[T]) Prev() *T {
	l := c.mustBeOpen()
	if c.pos == nilIndex {
		return nil
	}
	prev := l.live(c.pos).prev
	if prev == nilIndex {
		return nil
	}
	c.pos = prev
	return &l.live(prev).value
}

// Take removes the element at the cursor and returns it. The cursor moves
// to the following element, or to the preceding one if the removed element
// was last. The list does not finalize a taken element.
func (c *Cursor[T]) Take() (T, bool) {
	l := c.mustBeOpen()
	if c.pos == nilIndex {
		var zero T
		return zero, false
	}
	nd := l.live(c.pos)
	prev, next := nd.prev, nd.next

	if prev == nilIndex {
		l.head = next
	} else {
		l.live(prev).next = next
	}
	if next == nilIndex {
		l.tail = prev
	} else {
		l.live(next).prev = prev
	}
	l.length--

	v := l.release(c.pos)
	if next != nilIndex {
		c.pos = next
	} else {
		c.pos = prev
	}
	return v, true
}

// InsertAfter inserts v after the cursor. On an empty list v becomes the
// only element and the cursor moves onto it; otherwise the cursor does not
// move.
func (c *Cursor[T]) InsertAfter(v T) {
	l := c.mustBeOpen()
	i := l.alloc(v)
	l.length++
	if c.pos == nilIndex {
		l.head, l.tail = i, i
		c.pos = i
		return
	}

	cur := l.live(c.pos)
	nd := l.at(i)
	nd.prev = c.pos
	nd.next = cur.next
	if cur.next == nilIndex {
		l.tail = i
	} else {
		l.live(cur.next).prev = i
	}
	cur.next = i
}

// InsertBefore inserts v before the cursor.
func (c *Cursor[T]) InsertBefore(v T) {
	l := c.mustBeOpen()
	i := l.alloc(v)
	l.length++
	if c.pos == nilIndex {
		l.head, l.tail = i, i
		c.pos = i
		return
	}

	cur := l.live(c.pos)
	nd := l.at(i)
	nd.next = c.pos
	nd.prev = cur.prev
	if cur.prev == nilIndex {
		l.head = i
	} else {
		l.live(cur.prev).next = i
	}
	cur.prev = i
}

// Close releases the list. Using the cursor afterwards panics; closing it
// again is a no-op.
func (c *Cursor[T]) Close() {
	if c.list == nil {
		return
	}
	c.list.borrow = idle
	c.list = nil
	c.pos = nilIndex
}

func (c *Cursor[T]) mustBeOpen() *List[T] {
	if c.list == nil {
		panic("datastructures: cursor used after Close")
	}
	if c.list.borrow != exclusive {
		panic("datastructures: cursor lost its exclusive borrow")
	}
	return c.list
}
