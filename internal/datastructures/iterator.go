package datastructures

// Iterator walks a List front to back. It shares the list with other
// iterators and keeps cursors out until it is exhausted or closed.
type Iterator[T any] struct {
	list *List[T]
	pos  int
	seen int
}

// Next returns the next element. The call that yields the last element
// releases the list, and every later call returns false.
func (it *Iterator[T]) Next() (T, bool) {
	var zero T
	if it.list == nil {
		return zero, false
	}
	l := it.list
	if l.borrow <= 0 {
		panic("datastructures: iterator lost its shared borrow")
	}
	if it.pos == nilIndex || it.seen >= l.length {
		it.Close()
		return zero, false
	}
	nd := l.live(it.pos)
	v := nd.value
	it.pos = nd.next
	it.seen++
	if it.pos == nilIndex || it.seen >= l.length {
		it.Close()
	}
	return v, true
}

// Close releases the list before the iterator is exhausted. It is safe to
// call more than once.
func (it *Iterator[T]) Close() {
	if it.list == nil {
		return
	}
	it.list.borrow--
	it.list = nil
	it.pos = nilIndex
}
