package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}

	if h.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.database.Ping(ctx); err != nil {
			h.logger.Warn("health check: database unreachable", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			rest.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}

	rest.WriteJSON(w, http.StatusOK, resp)
}
