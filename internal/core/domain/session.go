package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionIDPrefix is the prefix for session IDs.
const SessionIDPrefix = "sess-"

// Session represents a live session and its association with one user key
// in the shared store. The ID is an opaque unique token; callers must not
// parse it beyond the prefix.
type Session struct {
	// ID is the unique identifier for the session.
	// Format: sess-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// UserKey is the shared-store key this session is associated with.
	UserKey string `json:"user_key"`

	// CreatedAt is the session creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// LastAccessed is updated on every read of the session.
	LastAccessed time.Time `json:"last_accessed"`

	// Data contains arbitrary session-scoped attributes.
	Data map[string]string `json:"data"`
}

// NewSession creates a new Session for the given user key with a generated
// ID and both timestamps set to now.
func NewSession(userKey string) (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Session{
		ID:           id,
		UserKey:      userKey,
		CreatedAt:    now,
		LastAccessed: now,
		Data:         make(map[string]string),
	}, nil
}

// AdoptSession builds a Session record around an ID that already exists in
// the shared store but has no matching record. Timestamps restart at now.
func AdoptSession(id, userKey string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:           id,
		UserKey:      userKey,
		CreatedAt:    now,
		LastAccessed: now,
		Data:         make(map[string]string),
	}
}

// GenerateSessionID generates a new session ID using ULID.
// Format: sess-{ulid_lowercase}, 31 characters total.
func GenerateSessionID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return SessionIDPrefix + strings.ToLower(id.String()), nil
}

// Touch updates the LastAccessed timestamp.
func (s *Session) Touch() {
	s.LastAccessed = time.Now().UTC()
}

// Clone creates a deep copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	if s.Data != nil {
		clone.Data = make(map[string]string, len(s.Data))
		for k, v := range s.Data {
			clone.Data[k] = v
		}
	}
	return &clone
}

// Summary returns the one-line listing form of the session.
func (s *Session) Summary() string {
	return "ID: " + s.ID + ", Key: " + s.UserKey + ", Created: " + s.CreatedAt.Format(time.RFC3339)
}
