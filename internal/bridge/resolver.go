package bridge

import (
	"log/slog"
	"sync"
	"time"

	"github.com/modware/sesskv/internal/host"
	"github.com/modware/sesskv/internal/telemetry/metric"
)

// State is the resolver's cached decision.
type State string

const (
	// StateUnresolved: no resolution attempted yet.
	StateUnresolved State = "unresolved"
	// StateDirect: exported symbols bound, calls go in-process.
	StateDirect State = "direct"
	// StateFallback: calls relay through the command dispatch path.
	StateFallback State = "fallback"
)

// Status describes the resolver's current decision for diagnostics.
type Status struct {
	State      State     `json:"state"`
	Reason     string    `json:"reason,omitempty"`
	ResolvedAt time.Time `json:"resolved_at,omitzero"`
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithForceFallback pins the resolver to the fallback path regardless of
// symbol availability. Used by configuration and equivalence tests.
func WithForceFallback(force bool) Option {
	return func(r *Resolver) {
		r.forceFallback = force
	}
}

// Resolver decides once, on first use, whether the store module's exported
// API is reachable, and hands out the matching StoreClient. The decision
// is cached; Reresolve discards it for manual recovery.
type Resolver struct {
	rt            *host.Runtime
	logger        *slog.Logger
	metrics       *metric.Metrics
	forceFallback bool

	mu         sync.RWMutex
	state      State
	reason     string
	resolvedAt time.Time
	client     StoreClient
}

// NewResolver creates an unresolved resolver over the given runtime.
func NewResolver(rt *host.Runtime, logger *slog.Logger, metrics *metric.Metrics, opts ...Option) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		rt:      rt,
		logger:  logger.With("component", "bridge"),
		metrics: metrics,
		state:   StateUnresolved,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Client returns the resolved store handle, resolving on first use.
// Callers cannot tell from results which path is active.
func (r *Resolver) Client() StoreClient {
	r.mu.RLock()
	if r.state != StateUnresolved {
		c := r.client
		r.mu.RUnlock()
		return c
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateUnresolved {
		r.resolveLocked()
	}
	return r.client
}

// Reresolve discards the cached decision and resolves again. It returns
// the new status, so callers (the admin surface) can report the outcome.
func (r *Resolver) Reresolve() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveLocked()
	return r.statusLocked()
}

// Status returns the current decision without triggering resolution.
func (r *Resolver) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.statusLocked()
}

func (r *Resolver) statusLocked() Status {
	return Status{
		State:      r.state,
		Reason:     r.reason,
		ResolvedAt: r.resolvedAt,
	}
}

func (r *Resolver) resolveLocked() {
	r.resolvedAt = time.Now().UTC()

	if r.forceFallback {
		r.state = StateFallback
		r.reason = "direct path disabled by configuration"
		r.client = newFallback(r.rt, r.metrics)
		r.metrics.IncBridgeResolve("fallback")
		r.logger.Info("bridge resolved", "path", r.state, "reason", r.reason)
		return
	}

	direct, err := bindDirect(r.rt, r.metrics)
	if err != nil {
		r.state = StateFallback
		r.reason = err.Error()
		r.client = newFallback(r.rt, r.metrics)
		r.metrics.IncBridgeResolve("fallback")
		r.logger.Warn("store api not bindable, using command fallback", "reason", r.reason)
		return
	}

	r.state = StateDirect
	r.reason = ""
	r.client = direct
	r.metrics.IncBridgeResolve("direct")
	r.logger.Info("bridge resolved", "path", r.state)
}
