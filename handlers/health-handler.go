package handlers

import (
	"context"
	"net/http"
	"time"

	"task-manager/backend/logging"
	"task-manager/backend/models"
)

// HealthHandler answers readiness probes by pinging the document store.
type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logging.Logger.Errorf("Event ID: HEALTH_CHECK_FAILED, Description: Database ping failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, models.Fail("Service unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, models.OKMessage("ok", nil))
}
