package api

import (
	"context"
	"net/http"
	"time"

	"github.com/topio-market/topio-registry/internal/api/respond"
	"github.com/topio-market/topio-registry/internal/store"
)

// HealthHandler reports service and storage health.
type HealthHandler struct {
	store     store.Store
	isHealthy func() bool
}

// NewHealthHandler builds the handler. A nil isHealthy reads as always
// healthy; storage probes still hit the store directly.
func NewHealthHandler(st store.Store, isHealthy func() bool) *HealthHandler {
	if isHealthy == nil {
		isHealthy = func() bool { return true }
	}
	return &HealthHandler{store: st, isHealthy: isHealthy}
}

// CheckHealth GET /health
// Reports the cached aggregate status; 500 when any dependency is down.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if h.isHealthy() {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "UP",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"status":    "DOWN",
		"message":   "one or more dependencies unavailable",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// CheckStorageHealth GET /health/db
// Pings the store synchronously instead of reading the cached flag.
func (h *HealthHandler) CheckStorageHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respond.WriteInternalError(w, "registry storage is unreachable")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "UP",
		"component": "store",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
