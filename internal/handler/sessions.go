package handler

import (
	"io"
	"net/http"

	"go.uber.org/zap"
)

// ResetResponse reports how many sessions a reset dropped.
type ResetResponse struct {
	Dropped int `json:"dropped"`
}

// ListSessions writes every recorded session, as text unless format=json.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "json" {
		h.writeJSON(w, h.sessions.List(), http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, h.sessions.Dump()); err != nil {
		h.logger.Warn("Failed to write sessions", zap.Error(err))
	}
}

// ResetSessions forgets every session so the next frame of each pair is
// forwarded again.
func (h *Handler) ResetSessions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, ResetResponse{Dropped: h.sessions.Reset()}, http.StatusOK)
}
