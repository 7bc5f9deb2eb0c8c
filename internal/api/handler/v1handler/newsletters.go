package v1handler

import (
	"encoding/json"
	"net/http"

	"newsletter/pkg/domain"
)

// publishIssueRequest is the JSON body accepted by PublishIssue.
type publishIssueRequest struct {
	Title   string `json:"title"`
	Content struct {
		HTML string `json:"html"`
		Text string `json:"text"`
	} `json:"content"`
}

type publishIssueResponse struct {
	Deliveries int `json:"deliveries"`
}

// PublishIssue enqueues one delivery job per subscriber for the posted issue
// and reports how many deliveries were scheduled.
func (h *Handler) PublishIssue(w http.ResponseWriter, r *http.Request) {
	var req publishIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	enqueued, err := h.deps.Service.PublishIssue(r.Context(), domain.Issue{
		Title:       req.Title,
		HTMLContent: req.Content.HTML,
		TextContent: req.Content.Text,
	})
	if err != nil {
		respondError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(publishIssueResponse{Deliveries: enqueued})
}
