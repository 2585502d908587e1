package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application collectors on a private registry.
// All methods are safe on a nil receiver so components can run unmetered
// (tests, the CLI).
type Metrics struct {
	registry *prometheus.Registry

	commandsTotal  *prometheus.CounterVec
	commandErrors  *prometheus.CounterVec
	storeKeys      prometheus.Gauge
	sessionsActive prometheus.Gauge
	sessionsMade   prometheus.Counter
	sessionsGone   prometheus.Counter
	bridgeResolves *prometheus.CounterVec
	bridgeCalls    *prometheus.CounterVec
}

// New creates the collectors and registers them along with the standard
// process and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sesskv",
			Name:      "commands_total",
			Help:      "Commands dispatched, by command name.",
		}, []string{"command"}),
		commandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sesskv",
			Name:      "command_errors_total",
			Help:      "Commands that returned an error reply, by command name.",
		}, []string{"command"}),
		storeKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sesskv",
			Name:      "store_keys",
			Help:      "Entries currently in the shared store.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sesskv",
			Name:      "sessions_active",
			Help:      "Sessions currently held by the registry.",
		}),
		sessionsMade: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sesskv",
			Name:      "sessions_created_total",
			Help:      "Sessions created since process start.",
		}),
		sessionsGone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sesskv",
			Name:      "sessions_deleted_total",
			Help:      "Sessions deleted since process start.",
		}),
		bridgeResolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sesskv",
			Name:      "bridge_resolves_total",
			Help:      "Bridge resolution attempts, by outcome.",
		}, []string{"outcome"}),
		bridgeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sesskv",
			Name:      "bridge_calls_total",
			Help:      "Store operations issued through the bridge, by path.",
		}, []string{"path"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.commandsTotal,
		m.commandErrors,
		m.storeKeys,
		m.sessionsActive,
		m.sessionsMade,
		m.sessionsGone,
		m.bridgeResolves,
		m.bridgeCalls,
	)

	return m
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncCommand records one dispatched command.
func (m *Metrics) IncCommand(name string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(name).Inc()
}

// IncCommandError records one error reply.
func (m *Metrics) IncCommandError(name string) {
	if m == nil {
		return
	}
	m.commandErrors.WithLabelValues(name).Inc()
}

// SetStoreKeys sets the shared store population gauge.
func (m *Metrics) SetStoreKeys(n int) {
	if m == nil {
		return
	}
	m.storeKeys.Set(float64(n))
}

// SessionCreated records a new session and bumps the active gauge.
func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.sessionsMade.Inc()
	m.sessionsActive.Inc()
}

// SessionDeleted records a removed session and drops the active gauge.
func (m *Metrics) SessionDeleted() {
	if m == nil {
		return
	}
	m.sessionsGone.Inc()
	m.sessionsActive.Dec()
}

// IncBridgeResolve records one resolution attempt ("direct" or "fallback").
func (m *Metrics) IncBridgeResolve(outcome string) {
	if m == nil {
		return
	}
	m.bridgeResolves.WithLabelValues(outcome).Inc()
}

// IncBridgeCall records one store operation by path ("direct" or "fallback").
func (m *Metrics) IncBridgeCall(path string) {
	if m == nil {
		return
	}
	m.bridgeCalls.WithLabelValues(path).Inc()
}
