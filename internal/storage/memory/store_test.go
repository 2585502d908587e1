package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/modware/sesskv/internal/core/domain"
)

func TestStore_SetGet(t *testing.T) {
	s := New()

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, ok, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || v != "v1" {
		t.Errorf("Get() = (%q, %v)", v, ok)
	}

	// Overwrite is silent.
	if err := s.Set("k", "v2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	v, _, _ = s.Get("k")
	if v != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", v)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := New()

	v, ok, err := s.Get("missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get(missing) = (%q, %v), want empty absence", v, ok)
	}
}

func TestStore_Del(t *testing.T) {
	s := New()
	s.Set("k", "v")

	removed, err := s.Del("k")
	if err != nil {
		t.Fatalf("Del() error = %v", err)
	}
	if !removed {
		t.Error("Del() should report removal of an existing key")
	}

	removed, err = s.Del("k")
	if err != nil {
		t.Fatalf("Del() error = %v", err)
	}
	if removed {
		t.Error("Del() on a missing key should report false, not error")
	}
}

func TestStore_Exists(t *testing.T) {
	s := New()
	s.Set("k", "v")

	ok, err := s.Exists("k")
	if err != nil || !ok {
		t.Errorf("Exists(k) = (%v, %v)", ok, err)
	}
	ok, err = s.Exists("nope")
	if err != nil || ok {
		t.Errorf("Exists(nope) = (%v, %v)", ok, err)
	}
}

func TestStore_KeysSortedSnapshot(t *testing.T) {
	s := New()
	for _, k := range []string{"c", "a", "b"} {
		s.Set(k, "v")
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Keys() = %v, want sorted [a b c]", keys)
	}

	// The snapshot is detached from later writes.
	s.Set("d", "v")
	if len(keys) != 3 {
		t.Error("snapshot grew after a later write")
	}
}

func TestStore_Concurrency(t *testing.T) {
	s := New()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d-%d", n, j)
				if err := s.Set(key, "v"); err != nil {
					t.Errorf("Set(%s) error = %v", key, err)
					return
				}
				if _, _, err := s.Get(key); err != nil {
					t.Errorf("Get(%s) error = %v", key, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 16*100 {
		t.Errorf("Len() = %d, want %d", s.Len(), 16*100)
	}
}

func TestStore_Poisoning(t *testing.T) {
	s := New()
	s.Set("k", "v")

	err := s.withWrite(func() {
		panic("mutation blew up")
	})
	if !domain.IsDomainError(err, domain.ErrStoreCorrupted.Code) {
		t.Fatalf("poisoning error = %v, want %s", err, domain.ErrStoreCorrupted.Code)
	}

	// Every subsequent operation fails with the same error, permanently.
	if err := s.Set("k2", "v"); !domain.IsDomainError(err, domain.ErrStoreCorrupted.Code) {
		t.Errorf("Set after poison = %v", err)
	}
	if _, _, err := s.Get("k"); !domain.IsDomainError(err, domain.ErrStoreCorrupted.Code) {
		t.Errorf("Get after poison = %v", err)
	}
	if _, err := s.Del("k"); !domain.IsDomainError(err, domain.ErrStoreCorrupted.Code) {
		t.Errorf("Del after poison = %v", err)
	}
	if _, err := s.Exists("k"); !domain.IsDomainError(err, domain.ErrStoreCorrupted.Code) {
		t.Errorf("Exists after poison = %v", err)
	}
	if _, err := s.Keys(); !domain.IsDomainError(err, domain.ErrStoreCorrupted.Code) {
		t.Errorf("Keys after poison = %v", err)
	}
}
