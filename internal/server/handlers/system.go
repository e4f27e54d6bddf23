package handlers

import (
	"context"
	"net/http"

	"jobmanager/internal/config"
	"jobmanager/pkg/api"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck handles GET /system/health-check.
// It is a liveness probe: a bare true as long as the process serves.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJson(w, http.StatusOK, true)
}

// Ready returns a readiness probe handler backed by the given store.
func (h *Handlers) Ready(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.Ping(r.Context()); err != nil {
			h.httpError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		h.respondJson(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// Version handles GET /system/version.
func (h *Handlers) Version(w http.ResponseWriter, r *http.Request) {
	h.respondJson(w, http.StatusOK, api.MessageResponse{Message: config.Version})
}
