package core

import (
	"github.com/vskvj3/linkd/internal/datastructures"
)

// listFor returns the list at key. With create set, a missing key gets a
// new empty list.
func (db *Database) listFor(key string, create bool) (*datastructures.Deque[string], error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if _, exists := db.liveValue(key); exists {
		return nil, ErrWrongType
	}
	d, ok := db.lists[key]
	if !ok && create {
		d = datastructures.NewDeque[string]()
		db.lists[key] = d
	}
	return d, nil
}

// reap deletes key once its list is empty.
func (db *Database) reap(key string, d *datastructures.Deque[string]) {
	if d.Empty() {
		db.dropList(key)
	}
}

// LPush prepends values one at a time and returns the new length.
func (db *Database) LPush(key string, values ...string) (int, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	d, err := db.listFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		d.PushFront(v)
	}
	return d.Size(), nil
}

// RPush appends values and returns the new length.
func (db *Database) RPush(key string, values ...string) (int, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	d, err := db.listFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		d.PushBack(v)
	}
	return d.Size(), nil
}

// LPop removes and returns the first element.
func (db *Database) LPop(key string) (string, error) {
	return db.pop(key, (*datastructures.Deque[string]).PopFront)
}

// RPop removes and returns the last element.
func (db *Database) RPop(key string) (string, error) {
	return db.pop(key, (*datastructures.Deque[string]).PopBack)
}

func (db *Database) pop(key string, pop func(*datastructures.Deque[string]) (string, error)) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, err := db.listFor(key, false)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", ErrKeyNotFound
	}
	v, err := pop(d)
	if err != nil {
		return "", ErrKeyNotFound
	}
	db.reap(key, d)
	return v, nil
}

// LLen returns the length of the list at key, 0 if missing.
func (db *Database) LLen(key string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, err := db.listFor(key, false)
	if err != nil || d == nil {
		return 0, err
	}
	return d.Size(), nil
}

// LRange returns the elements between start and stop inclusive. Negative
// indexes count from the back; out of range bounds are clamped.
func (db *Database) LRange(key string, start, stop int) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	values := []string{}
	d, err := db.listFor(key, false)
	if err != nil || d == nil {
		return values, err
	}

	n := d.Size()
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		return values, nil
	}

	i := 0
	for v := range d.List().All() {
		if i > stop {
			break
		}
		if i >= start {
			values = append(values, v)
		}
		i++
	}
	return values, nil
}

// LIndex returns the element at index; negative indexes count from the back.
func (db *Database) LIndex(key string, index int) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, err := db.listFor(key, false)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", ErrKeyNotFound
	}

	seq, target := d.List().All(), index
	if index < 0 {
		seq, target = d.List().Backward(), -index-1
	}
	i := 0
	for v := range seq {
		if i == target {
			return v, nil
		}
		i++
	}
	return "", ErrIndexOutOfRange
}

// LSet overwrites the element at index in place.
func (db *Database) LSet(key string, index int, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, err := db.listFor(key, false)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrKeyNotFound
	}

	var c *datastructures.Cursor[string]
	if index >= 0 {
		c = d.List().CursorFront()
		defer c.Close()
		for ; index > 0; index-- {
			if c.Next() == nil {
				return ErrIndexOutOfRange
			}
		}
	} else {
		c = d.List().CursorBack()
		defer c.Close()
		for ; index < -1; index++ {
			if c.Prev() == nil {
				return ErrIndexOutOfRange
			}
		}
	}
	*c.PeekMut() = value
	return nil
}

// LInsert inserts value before or after the first element equal to pivot.
// It returns the new length, -1 if pivot is absent, or 0 if key is missing.
func (db *Database) LInsert(key string, before bool, pivot, value string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, err := db.listFor(key, false)
	if err != nil || d == nil {
		return 0, err
	}

	found := false
	c := d.List().CursorFront()
	for v := c.PeekMut(); v != nil; v = c.Next() {
		if *v != pivot {
			continue
		}
		if before {
			c.InsertBefore(value)
		} else {
			c.InsertAfter(value)
		}
		found = true
		break
	}
	c.Close()

	if !found {
		return -1, nil
	}
	return d.Size(), nil
}

// LRem removes elements equal to value: the first count of them for
// count > 0, the last -count for count < 0, all of them for count == 0.
func (db *Database) LRem(key string, count int, value string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, err := db.listFor(key, false)
	if err != nil || d == nil {
		return 0, err
	}
	l := d.List()

	matches := 0
	for v := range l.All() {
		if v == value {
			matches++
		}
	}
	limit, skip := matches, 0
	switch {
	case count > 0:
		limit = min(count, matches)
	case count < 0:
		limit = min(-count, matches)
		skip = matches - limit
	}

	total := l.Len()
	removed := 0
	c := l.CursorFront()
	for i := 0; i < total && removed < limit; i++ {
		v := c.PeekMut()
		if v == nil {
			break
		}
		if *v == value {
			if skip == 0 {
				// Take moves the cursor onto the next element.
				c.Take()
				removed++
				continue
			}
			skip--
		}
		c.Next()
	}
	c.Close()

	db.reap(key, d)
	return removed, nil
}
