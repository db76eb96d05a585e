package core

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringKeys(t *testing.T) {
	db := NewDatabase()

	t.Run("SET and GET", func(t *testing.T) {
		require.NoError(t, db.Set("key1", "value1", 0))
		value, err := db.Get("key1")
		require.NoError(t, err)
		assert.Equal(t, "value1", value)
	})

	t.Run("GET non-existing key", func(t *testing.T) {
		_, err := db.Get("nonexistent")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("empty key and value", func(t *testing.T) {
		assert.ErrorIs(t, db.Set("", "v", 0), ErrEmptyKey)
		assert.ErrorIs(t, db.Set("k", "", 0), ErrEmptyValue)
	})

	t.Run("INCR", func(t *testing.T) {
		n, err := db.Incr("counter", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		n, err = db.Incr("counter", -2)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		_, err = db.Incr("key1", 1)
		assert.ErrorIs(t, err, ErrNotInteger)
	})

	t.Run("INCR overflow", func(t *testing.T) {
		require.NoError(t, db.Set("big", strconv.Itoa(math.MaxInt), 0))
		_, err := db.Incr("big", 1)
		assert.ErrorIs(t, err, ErrOverflow)
		value, err := db.Get("big")
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(math.MaxInt), value)

		require.NoError(t, db.Set("small", strconv.Itoa(math.MinInt), 0))
		_, err = db.Incr("small", -1)
		assert.ErrorIs(t, err, ErrOverflow)

		n, err := db.Incr("big", -1)
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt-1, n)
	})

	t.Run("DEL", func(t *testing.T) {
		assert.True(t, db.Del("key1"))
		assert.False(t, db.Del("key1"))
	})
}

func TestExpiry(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.Set("short", "v", 1))
	require.NoError(t, db.Set("long", "v", 60000))
	time.Sleep(5 * time.Millisecond)

	_, err := db.Get("short")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = db.Get("long")
	assert.NoError(t, err)
}

func TestStartCleanup(t *testing.T) {
	db := NewDatabase()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	db.StartCleanup(ctx, time.Millisecond)

	require.NoError(t, db.Set("k", "v", 1))
	assert.Eventually(t, func() bool {
		db.mu.Lock()
		defer db.mu.Unlock()
		_, exists := db.store["k"]
		return !exists
	}, time.Second, 5*time.Millisecond)
}

func TestPushPop(t *testing.T) {
	db := NewDatabase()
	n, err := db.RPush("l", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = db.LPush("l", "a")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	v, err := db.LPop("l")
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	v, err = db.RPop("l")
	require.NoError(t, err)
	assert.Equal(t, "c", v)
	v, err = db.RPop("l")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	// The emptied key is gone.
	_, err = db.LPop("l")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	n, err = db.LLen("l")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPushWithoutValues(t *testing.T) {
	db := NewDatabase()
	_, err := db.LPush("l")
	assert.ErrorIs(t, err, ErrNoValues)
	_, err = db.RPush("l")
	assert.ErrorIs(t, err, ErrNoValues)

	n, err := db.LLen("l")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, db.Del("l"))
	// No list key was left behind to block a string write.
	require.NoError(t, db.Set("l", "v", 0))
}

func TestWrongType(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.Set("s", "v", 0))
	_, err := db.RPush("s", "x")
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = db.RPush("l", "x")
	require.NoError(t, err)
	_, err = db.Get("l")
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = db.Incr("l", 1)
	assert.ErrorIs(t, err, ErrWrongType)

	// SET replaces a list.
	require.NoError(t, db.Set("l", "v", 0))
	value, err := db.Get("l")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestLRange(t *testing.T) {
	db := NewDatabase()
	_, err := db.RPush("l", "1", "2", "3", "4", "5")
	require.NoError(t, err)

	cases := []struct {
		start, stop int
		want        []string
	}{
		{0, -1, []string{"1", "2", "3", "4", "5"}},
		{1, 2, []string{"2", "3"}},
		{-2, -1, []string{"4", "5"}},
		{-100, 100, []string{"1", "2", "3", "4", "5"}},
		{3, 1, []string{}},
		{5, 10, []string{}},
	}
	for _, c := range cases {
		got, err := db.LRange("l", c.start, c.stop)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "LRANGE %d %d", c.start, c.stop)
	}

	got, err := db.LRange("missing", 0, -1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLIndexAndLSet(t *testing.T) {
	db := NewDatabase()
	_, err := db.RPush("l", "a", "b", "c")
	require.NoError(t, err)

	v, err := db.LIndex("l", 1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	v, err = db.LIndex("l", -1)
	require.NoError(t, err)
	assert.Equal(t, "c", v)
	_, err = db.LIndex("l", 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = db.LIndex("l", -4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, db.LSet("l", 0, "A"))
	require.NoError(t, db.LSet("l", -2, "B"))
	assert.ErrorIs(t, db.LSet("l", 3, "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, db.LSet("l", -4, "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, db.LSet("missing", 0, "x"), ErrKeyNotFound)

	got, err := db.LRange("l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "c"}, got)
}

func TestLInsert(t *testing.T) {
	db := NewDatabase()
	_, err := db.RPush("l", "1", "2", "4")
	require.NoError(t, err)

	n, err := db.LInsert("l", false, "2", "3")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	n, err = db.LInsert("l", true, "1", "0")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	n, err = db.LInsert("l", false, "4", "5")
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = db.LInsert("l", true, "nope", "x")
	require.NoError(t, err)
	assert.Equal(t, -1, n)
	n, err = db.LInsert("missing", true, "1", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, _ := db.LRange("l", 0, -1)
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, got)
}

func TestLRem(t *testing.T) {
	seed := []string{"a", "x", "b", "x", "c", "x"}
	cases := []struct {
		count   int
		removed int
		want    []string
	}{
		{0, 3, []string{"a", "b", "c"}},
		{2, 2, []string{"a", "b", "c", "x"}},
		{-2, 2, []string{"a", "x", "b", "c"}},
		{-10, 3, []string{"a", "b", "c"}},
		{1, 1, []string{"a", "b", "x", "c", "x"}},
	}
	for _, c := range cases {
		db := NewDatabase()
		_, err := db.RPush("l", seed...)
		require.NoError(t, err)

		removed, err := db.LRem("l", c.count, "x")
		require.NoError(t, err)
		assert.Equal(t, c.removed, removed, "LREM %d", c.count)
		got, _ := db.LRange("l", 0, -1)
		assert.Equal(t, c.want, got, "LREM %d", c.count)
	}
}

func TestLRemEmptiesList(t *testing.T) {
	db := NewDatabase()
	_, err := db.RPush("l", "x", "x")
	require.NoError(t, err)
	removed, err := db.LRem("l", 0, "x")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	// The key is free for a string again.
	require.NoError(t, db.Set("l", "v", 0))
	_, err = db.Get("l")
	assert.NoError(t, err)
}

func TestCloseDestroysLists(t *testing.T) {
	db := NewDatabase()
	_, err := db.RPush("a", "1")
	require.NoError(t, err)
	_, err = db.RPush("b", "2")
	require.NoError(t, err)
	db.Close()

	n, err := db.LLen("a")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
