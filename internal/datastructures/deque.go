package datastructures

import (
	"errors"
)

// ErrEmpty is returned when popping or peeking an empty deque.
var ErrEmpty = errors.New("deque is empty")

// Deque represents a double-ended queue backed by a List. Every operation
// goes through a short-lived cursor or iterator.
type Deque[T any] struct {
	list *List[T]
}

// NewDeque creates a new, unbounded Deque.
func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{list: NewList[T]()}
}

// PushFront adds an element to the front of the deque.
func (d *Deque[T]) PushFront(value T) {
	c := d.list.CursorFront()
	defer c.Close()
	c.InsertBefore(value)
}

// PushBack adds an element to the back of the deque.
func (d *Deque[T]) PushBack(value T) {
	c := d.list.CursorBack()
	defer c.Close()
	c.InsertAfter(value)
}

// PopFront removes an element from the front of the deque.
func (d *Deque[T]) PopFront() (T, error) {
	c := d.list.CursorFront()
	defer c.Close()
	if v, ok := c.Take(); ok {
		return v, nil
	}
	var zeroValue T
	return zeroValue, ErrEmpty
}

// PopBack removes an element from the back of the deque.
func (d *Deque[T]) PopBack() (T, error) {
	c := d.list.CursorBack()
	defer c.Close()
	if v, ok := c.Take(); ok {
		return v, nil
	}
	var zeroValue T
	return zeroValue, ErrEmpty
}

// Front returns the element at the front of the deque.
func (d *Deque[T]) Front() (T, error) {
	it := d.list.Iter()
	defer it.Close()
	if v, ok := it.Next(); ok {
		return v, nil
	}
	var zeroValue T
	return zeroValue, ErrEmpty
}

// Back returns the element at the back of the deque.
func (d *Deque[T]) Back() (T, error) {
	for v := range d.list.Backward() {
		return v, nil
	}
	var zeroValue T
	return zeroValue, ErrEmpty
}

// Size returns the number of elements in the deque.
func (d *Deque[T]) Size() int {
	return d.list.Len()
}

// Empty checks if the deque is empty.
func (d *Deque[T]) Empty() bool {
	return d.list.IsEmpty()
}

// List exposes the underlying list for cursor work.
func (d *Deque[T]) List() *List[T] {
	return d.list
}

// Close destroys the remaining elements.
func (d *Deque[T]) Close() {
	d.list.Close()
}
