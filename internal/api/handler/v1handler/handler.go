// Package v1handler contains the HTTP handlers backing version 1 of the
// newsletter API.
package v1handler

import (
	"errors"
	"net/http"

	"newsletter/internal/subscription"
	"newsletter/pkg/logger"
	"newsletter/pkg/serrors"

	"github.com/go-chi/chi/v5"
)

// Deps groups the dependencies required by the v1 handlers.
type Deps struct {
	// Service implements the subscription business logic.
	Service subscription.Service
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts all v1 routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health_check", h.HealthCheck)
	r.Post("/subscriptions", h.Subscribe)
	r.Post("/newsletters", h.PublishIssue)
}

// respondError maps a service error to a status code and writes an empty
// response body so that no internal detail leaks to the client. Server-side
// failures are logged with the request context instead.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, serrors.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), err.Error())
	}

	w.WriteHeader(status)
}
