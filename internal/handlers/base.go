package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"creativeops/internal/config"
)

// BaseHandler serves the unauthenticated service endpoints.
type BaseHandler struct {
	DB  *sql.DB
	Cfg *config.Config
}

func NewBaseHandler(db *sql.DB, cfg *config.Config) *BaseHandler {
	return &BaseHandler{
		DB:  db,
		Cfg: cfg,
	}
}

func (h *BaseHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "creativeops API",
		"environment": h.Cfg.Environment,
		"docs":        "/swagger/index.html",
	})
}

type dbHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health reports service liveness and database reachability.
// @Tags System
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *BaseHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	db := dbHealth{Status: "ok"}
	if err := h.DB.PingContext(ctx); err != nil {
		status = http.StatusServiceUnavailable
		db = dbHealth{Status: "down", Error: err.Error()}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	writeJSON(w, status, map[string]any{"status": overall, "db": db})
}
