package handler

import (
	"errors"
	"net/http"
	"time"

	"studybrief/internal/model"
	"studybrief/internal/service"
	"studybrief/internal/summarizer"
)

// SummaryHandler handles summarization endpoints
type SummaryHandler struct {
	summarySvc *service.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summarySvc *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc}
}

// Create handles POST /v1/summaries
func (h *SummaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SummaryRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	report, err := h.summarySvc.Summarize(r.Context(), req.Text)
	if err != nil {
		writeSummaryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewSummaryResponse(report))
}

func writeSummaryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyDocument):
		writeError(w, http.StatusBadRequest, "document text is empty")
	case errors.Is(err, service.ErrDocumentTooLarge):
		writeError(w, http.StatusBadRequest, "document exceeds the maximum supported size")
	case summarizer.IsRateLimited(err):
		writeRateLimited(w, err)
	case errors.Is(err, summarizer.ErrNoSummaries):
		writeError(w, http.StatusUnprocessableEntity, "could not summarize any part of the document")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeRateLimited surfaces upstream quota metadata so clients can back off
// intelligently instead of hammering retries.
func writeRateLimited(w http.ResponseWriter, err error) {
	body := map[string]interface{}{"error": "upstream rate limit reached, try again later"}
	var rl *summarizer.RateLimitError
	if errors.As(err, &rl) {
		if rl.Limit > 0 {
			body["limit"] = rl.Limit
			body["remaining"] = rl.Remaining
		}
		if !rl.ResetAt.IsZero() {
			body["resetAt"] = rl.ResetAt.Format(time.RFC3339)
		}
	}
	writeJSON(w, http.StatusTooManyRequests, body)
}
