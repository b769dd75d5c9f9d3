package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/petween/backend/internal/database"
	"github.com/petween/backend/internal/schemas"
	"github.com/petween/backend/pkg/logger"
)

const healthTimeout = 2 * time.Second

func (h *HandlerManager) HandleHello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, schemas.MessageOut{Message: "Hello from Petween!"})
}

// HandleHealthz reports whether the database answers a ping.
func (h *HandlerManager) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := database.Ping(ctx, h.DB); err != nil {
		logger.Warn("Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
