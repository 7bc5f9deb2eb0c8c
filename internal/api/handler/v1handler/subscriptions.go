package v1handler

import (
	"net/http"

	"newsletter/pkg/logger"

	"go.uber.org/zap"
)

// Subscribe accepts a URL-encoded form with "name" and "email" fields, stores
// the subscriber and responds with an empty body. Validation failures produce
// 400, persistence failures 500.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	rawEmail := r.PostForm.Get("email")
	rawName := r.PostForm.Get("name")

	ctx := logger.WithFields(r.Context(),
		zap.String("subscriberEmail", rawEmail),
		zap.String("subscriberName", rawName))

	if _, err := h.deps.Service.Subscribe(ctx, rawEmail, rawName); err != nil {
		respondError(w, r.WithContext(ctx), err)

		return
	}

	w.WriteHeader(http.StatusOK)
}
