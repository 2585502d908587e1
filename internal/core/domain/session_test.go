package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestGenerateSessionID(t *testing.T) {
	id, err := GenerateSessionID()
	if err != nil {
		t.Fatalf("GenerateSessionID() error = %v", err)
	}

	if !strings.HasPrefix(id, SessionIDPrefix) {
		t.Errorf("id %q missing prefix %q", id, SessionIDPrefix)
	}
	if len(id) != 31 {
		t.Errorf("len(id) = %d, want 31", len(id))
	}
	if id != strings.ToLower(id) {
		t.Errorf("id %q should be lowercase", id)
	}
}

func TestGenerateSessionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := GenerateSessionID()
		if err != nil {
			t.Fatalf("GenerateSessionID() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}

func TestNewSession(t *testing.T) {
	s, err := NewSession("user1")
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if s.UserKey != "user1" {
		t.Errorf("UserKey = %q, want %q", s.UserKey, "user1")
	}
	if s.CreatedAt.IsZero() || s.LastAccessed.IsZero() {
		t.Error("timestamps should be set")
	}
	if !s.CreatedAt.Equal(s.LastAccessed) {
		t.Error("CreatedAt and LastAccessed should start equal")
	}
	if s.Data == nil {
		t.Error("Data map should be initialized")
	}
}

func TestAdoptSession(t *testing.T) {
	s := AdoptSession("sess-known-id", "user2")

	if s.ID != "sess-known-id" {
		t.Errorf("ID = %q, adoption must keep the existing id", s.ID)
	}
	if s.UserKey != "user2" {
		t.Errorf("UserKey = %q", s.UserKey)
	}
	if s.Data == nil {
		t.Error("Data map should be initialized")
	}
}

func TestSession_Touch(t *testing.T) {
	s, err := NewSession("user1")
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	before := s.LastAccessed
	time.Sleep(2 * time.Millisecond)
	s.Touch()

	if !s.LastAccessed.After(before) {
		t.Error("Touch should advance LastAccessed")
	}
}

func TestSession_Clone(t *testing.T) {
	s, err := NewSession("user1")
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	s.Data["k"] = "v"

	clone := s.Clone()
	clone.Data["k"] = "changed"
	clone.Data["extra"] = "x"

	if s.Data["k"] != "v" {
		t.Error("mutating the clone's data changed the original")
	}
	if _, ok := s.Data["extra"]; ok {
		t.Error("clone shares the data map with the original")
	}
}

func TestSession_Summary(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	s := &Session{ID: "sess-abc", UserKey: "user1", CreatedAt: created}

	want := "ID: sess-abc, Key: user1, Created: 2026-03-01T12:30:00Z"
	if got := s.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestSession_JSONShape(t *testing.T) {
	s, err := NewSession("user1")
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	s.Data["role"] = "admin"

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, field := range []string{"id", "user_key", "created_at", "last_accessed", "data"} {
		if _, ok := m[field]; !ok {
			t.Errorf("serialized session missing field %q", field)
		}
	}

	// Timestamps serialize as RFC3339.
	if _, err := time.Parse(time.RFC3339, m["created_at"].(string)); err != nil {
		t.Errorf("created_at is not RFC3339: %v", err)
	}
}
