package http

import (
	"context"
	"net/http"
	"time"

	applog "bankfolio/internal/log"
)

type healthJSON struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	OK("", healthJSON{Status: "ok", Uptime: time.Since(s.startedAt).Round(time.Second).String()}).Write(w)
}

// handleReady reports whether the database answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.ledger.Ping(ctx); err != nil {
		applog.FromContext(ctx).WarnContext(ctx, "Readiness check failed", applog.FieldError, err)
		ErrorResponse(http.StatusServiceUnavailable, "unavailable", "database unreachable").Write(w)
		return
	}
	OK("", healthJSON{Status: "ready", Uptime: time.Since(s.startedAt).Round(time.Second).String()}).Write(w)
}
