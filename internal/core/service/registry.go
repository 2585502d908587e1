package service

import (
	"context"
	"iter"
	"log/slog"
	"sort"
	"sync"

	"github.com/modware/sesskv/internal/bridge"
	"github.com/modware/sesskv/internal/core/domain"
	"github.com/modware/sesskv/internal/telemetry/metric"
)

// CreateOutcome reports how Create satisfied the request.
type CreateOutcome string

const (
	// OutcomeCreated: a new session was minted.
	OutcomeCreated CreateOutcome = "created"
	// OutcomeExists: the user key already mapped to a known session.
	OutcomeExists CreateOutcome = "exists"
	// OutcomeRecreated: the store held an id with no matching record; the
	// registry adopted it.
	OutcomeRecreated CreateOutcome = "recreated"
)

// SessionRegistry owns session records and keeps the shared store's
// user-key association in step with them.
//
// The registry's map has its own reader/writer lock, independent of the
// store's. Bridge calls are made while holding it; the store lock is only
// ever taken inside the bridge call and the store never calls back, so the
// two locks cannot form a cycle.
type SessionRegistry struct {
	bridge  *bridge.Resolver
	logger  *slog.Logger
	metrics *metric.Metrics

	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionRegistry creates an empty registry over the given bridge.
func NewSessionRegistry(b *bridge.Resolver, logger *slog.Logger, metrics *metric.Metrics) *SessionRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRegistry{
		bridge:   b,
		logger:   logger.With("component", "session_registry"),
		metrics:  metrics,
		sessions: make(map[string]*domain.Session),
	}
}

// CreateSessionRequest contains parameters for session creation.
type CreateSessionRequest struct {
	UserKey string // Required
}

// CreateSessionResponse contains the result of session creation.
type CreateSessionResponse struct {
	Session *domain.Session
	Outcome CreateOutcome
	// StoreSynced is false when the store-side association could not be
	// written. The session is live regardless; the gap is logged.
	StoreSynced bool
}

// Create returns the session associated with the user key, minting one if
// the store holds no association. The store probe and the association
// write both go through the bridge.
func (r *SessionRegistry) Create(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	if req.UserKey == "" {
		return nil, domain.ErrMissingArgument.WithDetails("user_key is required")
	}

	store := r.bridge.Client()

	r.mu.Lock()
	defer r.mu.Unlock()

	existingID, ok, err := store.Get(ctx, req.UserKey)
	if err != nil {
		return nil, err
	}

	if ok {
		if session, known := r.sessions[existingID]; known {
			session.Touch()
			return &CreateSessionResponse{
				Session:     session.Clone(),
				Outcome:     OutcomeExists,
				StoreSynced: true,
			}, nil
		}

		// The store knows this id but the registry does not (raw CUSTOM.SET,
		// or a lost record). Adopt the id rather than strand it.
		session := domain.AdoptSession(existingID, req.UserKey)
		r.sessions[session.ID] = session
		r.metrics.SessionCreated()
		r.logger.Info("adopted session id from store", "session_id", session.ID, "user_key", req.UserKey)
		return &CreateSessionResponse{
			Session:     session.Clone(),
			Outcome:     OutcomeRecreated,
			StoreSynced: true,
		}, nil
	}

	session, err := domain.NewSession(req.UserKey)
	if err != nil {
		return nil, err
	}
	r.sessions[session.ID] = session
	r.metrics.SessionCreated()

	synced := true
	if err := store.Set(ctx, req.UserKey, session.ID); err != nil {
		// Best-effort consistency: the session stays live, the association
		// is absent until something re-establishes it.
		synced = false
		r.logger.Warn("store association failed on create",
			"session_id", session.ID,
			"user_key", req.UserKey,
			"error", err)
	}

	return &CreateSessionResponse{
		Session:     session.Clone(),
		Outcome:     OutcomeCreated,
		StoreSynced: synced,
	}, nil
}

// GetSessionRequest contains parameters for session retrieval.
type GetSessionRequest struct {
	SessionID string
}

// Get returns the session and updates its last-accessed timestamp.
func (r *SessionRegistry) Get(_ context.Context, req *GetSessionRequest) (*domain.Session, error) {
	if req.SessionID == "" {
		return nil, domain.ErrMissingArgument.WithDetails("session_id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[req.SessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	session.Touch()
	return session.Clone(), nil
}

// List returns a lazy, restartable sequence of one-line session summaries.
// The sequence iterates a snapshot taken at call time, ordered by creation
// time then id.
func (r *SessionRegistry) List(_ context.Context) iter.Seq[string] {
	r.mu.RLock()
	snapshot := make([]*domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		snapshot = append(snapshot, s.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		if !snapshot[i].CreatedAt.Equal(snapshot[j].CreatedAt) {
			return snapshot[i].CreatedAt.Before(snapshot[j].CreatedAt)
		}
		return snapshot[i].ID < snapshot[j].ID
	})

	return func(yield func(string) bool) {
		for _, s := range snapshot {
			if !yield(s.Summary()) {
				return
			}
		}
	}
}

// AddDataRequest contains parameters for a session data write.
type AddDataRequest struct {
	SessionID string
	Key       string
	Value     string
}

// AddData inserts or overwrites one session data attribute.
func (r *SessionRegistry) AddData(_ context.Context, req *AddDataRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[req.SessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Data[req.Key] = req.Value
	session.Touch()
	return nil
}

// GetDataRequest contains parameters for a session data read.
type GetDataRequest struct {
	SessionID string
	Key       string
}

// GetData returns one session data attribute. Reading counts as an access
// even when the key is absent.
func (r *SessionRegistry) GetData(_ context.Context, req *GetDataRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[req.SessionID]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	session.Touch()

	v, ok := session.Data[req.Key]
	if !ok {
		return "", domain.ErrDataKeyNotFound
	}
	return v, nil
}

// DeleteSessionRequest contains parameters for session deletion.
type DeleteSessionRequest struct {
	SessionID string
}

// DeleteSessionResponse contains the result of session deletion.
type DeleteSessionResponse struct {
	Existed bool
	// StoreSynced is false when the store-side association could not be
	// removed. The local record is gone either way.
	StoreSynced bool
}

// Delete removes the session record and the store-side association.
// Removing the local record always succeeds if the session existed; a
// failed store delete is logged, not rolled back.
func (r *SessionRegistry) Delete(ctx context.Context, req *DeleteSessionRequest) (*DeleteSessionResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[req.SessionID]
	if !ok {
		return &DeleteSessionResponse{Existed: false, StoreSynced: true}, nil
	}
	delete(r.sessions, req.SessionID)
	r.metrics.SessionDeleted()

	synced := true
	if _, err := r.bridge.Client().Del(ctx, session.UserKey); err != nil {
		synced = false
		r.logger.Warn("store association removal failed on delete",
			"session_id", session.ID,
			"user_key", session.UserKey,
			"error", err)
	}

	return &DeleteSessionResponse{Existed: true, StoreSynced: synced}, nil
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
