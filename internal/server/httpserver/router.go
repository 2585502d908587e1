package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/modware/sesskv/internal/bridge"
	"github.com/modware/sesskv/internal/infra/buildinfo"
	"github.com/modware/sesskv/internal/telemetry/metric"
)

// RouterConfig holds the dependencies of the admin router.
type RouterConfig struct {
	// Resolver backs the bridge diagnostics endpoints.
	Resolver *bridge.Resolver

	// Metrics serves /metrics. Optional; the route is omitted when nil.
	Metrics *metric.Metrics

	// Logger for request logging.
	Logger *slog.Logger
}

// NewRouter builds the admin router.
func NewRouter(cfg *RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": buildinfo.Version,
		})
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/v1/bridge", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, cfg.Resolver.Status())
		})
		r.Post("/resolve", func(w http.ResponseWriter, req *http.Request) {
			status := cfg.Resolver.Reresolve()
			logger.Info("bridge re-resolved via admin api",
				"state", status.State,
				"reason", status.Reason,
				"request_id", chimw.GetReqID(req.Context()))
			writeJSON(w, http.StatusOK, status)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
