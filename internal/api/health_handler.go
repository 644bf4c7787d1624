package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/shared"
)

// Pinger reports whether a backing database is reachable.
// *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler. db may be nil when the
// server runs on the in-memory backend.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		db:     db,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// Check handles GET /health requests.
//
//	@Summary		Health check
//	@Description	Reports server liveness. When a database backs the server, its reachability is included.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	api.HealthResponse
//	@Failure		503	{object}	api.HealthResponse
//	@Router			/health [get]
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}

	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			h.logger.Error("database ping failed", "error", err)
			resp.Status = "unavailable"
			resp.Database = "unreachable"
			shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
