package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ReadinessCheck reports whether a downstream dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	serviceName string
	checks      map[string]ReadinessCheck
	logger      *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler. Checks are run on
// every readiness probe, keyed by dependency name.
func NewHealthHandler(serviceName string, checks map[string]ReadinessCheck, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, checks: checks, logger: logger}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.serviceName,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "dependency", name, "error", err)
			deps[name] = "unavailable"
			ready = false
			continue
		}
		deps[name] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}

	writeJSON(w, status, map[string]any{
		"status":       state,
		"service":      h.serviceName,
		"dependencies": deps,
	})
}
