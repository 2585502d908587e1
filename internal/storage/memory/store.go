package memory

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/modware/sesskv/internal/core/domain"
)

// Store is a thread-safe key/value map over a single namespace.
//
// Concurrency discipline: one RWMutex for the whole namespace. Any number
// of readers or exactly one writer may proceed; no per-key locking. No
// operation acquires the lock recursively or calls back out while held.
//
// If a mutation terminates abnormally while holding the write lock, the
// store is poisoned: every subsequent call fails with ErrStoreCorrupted.
// Poisoning is permanent for the life of the process.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]string
	poisoned atomic.Bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		entries: make(map[string]string),
	}
}

// Set stores a value under key, silently overwriting any previous value.
func (s *Store) Set(key, value string) error {
	return s.withWrite(func() {
		s.entries[key] = value
	})
}

// Get returns the value under key. The boolean reports whether a mapping
// existed.
func (s *Store) Get(key string) (string, bool, error) {
	if s.poisoned.Load() {
		return "", false, domain.ErrStoreCorrupted
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

// Del removes the mapping under key. Returns true iff a mapping existed
// and was removed.
func (s *Store) Del(key string) (bool, error) {
	var removed bool
	err := s.withWrite(func() {
		_, removed = s.entries[key]
		delete(s.entries, key)
	})
	return removed, err
}

// Exists reports whether a mapping exists under key.
func (s *Store) Exists(key string) (bool, error) {
	if s.poisoned.Load() {
		return false, domain.ErrStoreCorrupted
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok, nil
}

// Keys returns a snapshot of all keys at call time. The snapshot is sorted
// so iteration order is stable for its duration.
func (s *Store) Keys() ([]string, error) {
	if s.poisoned.Load() {
		return nil, domain.ErrStoreCorrupted
	}
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys, nil
}

// Len returns the current number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Poison marks the store corrupted, exactly as if a mutation had
// panicked while holding the write lock. Exists so failure paths can be
// exercised from outside the package.
func (s *Store) Poison() {
	s.poisoned.Store(true)
}

// withWrite runs fn under the write lock. A panic out of fn poisons the
// store and is converted into ErrStoreCorrupted.
func (s *Store) withWrite(fn func()) (err error) {
	if s.poisoned.Load() {
		return domain.ErrStoreCorrupted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.poisoned.Store(true)
			err = domain.ErrStoreCorrupted.WithDetails(fmt.Sprint(r))
		}
	}()

	fn()
	return nil
}
