package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fabricfwd/internal/domain"
)

// HostRequest attaches a host to a connect point.
type HostRequest struct {
	At string `json:"at"`
}

// ListHosts returns every attached host
func (h *Handler) ListHosts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.hosts.Hosts(), http.StatusOK)
}

// PutHost attaches a host or moves it to a new point
func (h *Handler) PutHost(w http.ResponseWriter, r *http.Request) {
	mac, err := domain.ParseMAC(chi.URLParam(r, "mac"))
	if err != nil {
		h.writeError(w, "Invalid MAC address", err.Error(), http.StatusBadRequest)
		return
	}

	var req HostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	at, err := domain.ParseConnectPoint(req.At)
	if err != nil {
		h.writeError(w, "Invalid connect point", err.Error(), http.StatusBadRequest)
		return
	}

	host := domain.NewHost(mac, at)
	if err := h.fabric.MoveHost(r.Context(), host); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to move host", zap.Stringer("mac", mac), zap.Error(err))
		}
		h.writeError(w, "Failed to move host", err.Error(), status)
		return
	}

	h.writeJSON(w, host, http.StatusOK)
}

// DeleteHost detaches a host
func (h *Handler) DeleteHost(w http.ResponseWriter, r *http.Request) {
	mac, err := domain.ParseMAC(chi.URLParam(r, "mac"))
	if err != nil {
		h.writeError(w, "Invalid MAC address", err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.fabric.DeleteHost(r.Context(), mac); err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			h.writeError(w, "Not found", err.Error(), status)
			return
		}
		h.logger.Error("Failed to delete host", zap.Stringer("mac", mac), zap.Error(err))
		h.writeError(w, "Failed to delete host", err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
