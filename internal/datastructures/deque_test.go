package datastructures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDequePushPop(t *testing.T) {
	d := NewDeque[string]()
	d.PushFront("value1")
	d.PushFront("value2")
	d.PushBack("value3")
	require.Equal(t, 3, d.Size())

	val, err := d.PopFront()
	require.NoError(t, err)
	assert.Equal(t, "value2", val)

	val, err = d.PopBack()
	require.NoError(t, err)
	assert.Equal(t, "value3", val)

	assert.Equal(t, 1, d.Size())
	assert.Equal(t, []string{"value1"}, d.List().Slice())
}

func TestDequeFrontBack(t *testing.T) {
	d := NewDeque[int]()
	for i := 1; i <= 3; i++ {
		d.PushBack(i)
	}

	front, err := d.Front()
	require.NoError(t, err)
	assert.Equal(t, 1, front)

	back, err := d.Back()
	require.NoError(t, err)
	assert.Equal(t, 3, back)

	// Peeking must not hold the list.
	d.PushFront(0)
	assert.Equal(t, 4, d.Size())
}

func TestDequeEmpty(t *testing.T) {
	d := NewDeque[int]()
	assert.True(t, d.Empty())

	_, err := d.PopFront()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = d.PopBack()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = d.Front()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = d.Back()
	assert.ErrorIs(t, err, ErrEmpty)

	assert.Equal(t, 0, d.Size())
}

func TestDequeClose(t *testing.T) {
	freed := 0
	d := NewDeque[int]()
	d.List().SetFreeMethod(func(int) { freed++ })
	d.PushBack(1)
	d.PushBack(2)
	_, _ = d.PopFront()
	d.Close()

	assert.Equal(t, 1, freed)
	assert.True(t, d.Empty())
}
