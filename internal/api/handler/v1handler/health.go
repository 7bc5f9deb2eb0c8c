package v1handler

import "net/http"

// HealthCheck reports service liveness with an empty 200 response.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
