package core

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/vskvj3/linkd/internal/datastructures"
)

var (
	ErrEmptyKey        = errors.New("key cannot be empty")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrKeyNotFound     = errors.New("key not found")
	ErrWrongType       = errors.New("operation against a key holding the wrong kind of value")
	ErrNotInteger      = errors.New("value is not an integer")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrOverflow        = errors.New("increment or decrement would overflow")
	ErrNoValues        = errors.New("at least one value is required")
)

// Database holds string keys and list keys. Every method takes the same
// mutex, so at most one cursor is ever open on any list.
type Database struct {
	mu     sync.Mutex
	store  map[string]string
	expiry map[string]int64
	lists  map[string]*datastructures.Deque[string]
}

// Create a new database instance
func NewDatabase() *Database {
	return &Database{
		store:  make(map[string]string),
		expiry: make(map[string]int64),
		lists:  make(map[string]*datastructures.Deque[string]),
	}
}

// Set stores a key-value pair in the database, replacing a list held under
// the same key.
func (db *Database) Set(key, value string, ttlMs int64) error {
	if key == "" {
		return ErrEmptyKey
	}
	if value == "" {
		return ErrEmptyValue
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	db.dropList(key)
	db.store[key] = value
	delete(db.expiry, key)

	if ttlMs > 0 {
		db.expiry[key] = time.Now().UnixMilli() + ttlMs
	}
	return nil
}

// Get retrieves the value associated with the given key
func (db *Database) Get(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.lists[key]; ok {
		return "", ErrWrongType
	}
	value, exists := db.liveValue(key)
	if !exists {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Incr adds offset to the integer stored at key. A missing key counts as 0.
func (db *Database) Incr(key string, offset int) (int, error) {
	if key == "" {
		return 0, ErrEmptyKey
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.lists[key]; ok {
		return 0, ErrWrongType
	}

	current := 0
	if value, exists := db.liveValue(key); exists {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, ErrNotInteger
		}
		current = n
	}
	if (offset > 0 && current > math.MaxInt-offset) || (offset < 0 && current < math.MinInt-offset) {
		return 0, ErrOverflow
	}
	current += offset
	db.store[key] = strconv.Itoa(current)
	return current, nil
}

// Del removes key of either kind and reports whether it existed.
func (db *Database) Del(key string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.dropList(key) {
		return true
	}
	_, exists := db.liveValue(key)
	delete(db.store, key)
	delete(db.expiry, key)
	return exists
}

// liveValue returns the string at key, evicting it first if it expired.
func (db *Database) liveValue(key string) (string, bool) {
	if exp, ok := db.expiry[key]; ok && time.Now().UnixMilli() > exp {
		delete(db.store, key)
		delete(db.expiry, key)
		return "", false
	}
	value, exists := db.store[key]
	return value, exists
}

func (db *Database) dropList(key string) bool {
	d, ok := db.lists[key]
	if !ok {
		return false
	}
	d.Close()
	delete(db.lists, key)
	return true
}

// StartCleanup evicts expired string keys every interval until ctx ends.
func (db *Database) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			db.mu.Lock()
			now := time.Now().UnixMilli()
			for key, expiry := range db.expiry {
				if now > expiry {
					delete(db.store, key)
					delete(db.expiry, key)
				}
			}
			db.mu.Unlock()
		}
	}()
}

// Close destroys every list.
func (db *Database) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	for key := range db.lists {
		db.dropList(key)
	}
}
