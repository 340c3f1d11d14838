package handler

import (
	"net/http"

	"go.uber.org/zap"

	"fabricfwd/internal/domain"
)

// PathsResponse lists the minimum-hop paths between two devices.
type PathsResponse struct {
	Src   domain.DeviceID `json:"src"`
	Dst   domain.DeviceID `json:"dst"`
	Hops  int             `json:"hops"`
	Paths []domain.Path   `json:"paths"`
}

// GetTopology returns the current fabric, as YAML when format=yaml.
func (h *Handler) GetTopology(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") != "yaml" {
		h.writeJSON(w, h.fabric.Fabric(), http.StatusOK)
		return
	}

	data, err := h.fabric.ExportToYAML()
	if err != nil {
		h.logger.Error("Failed to export fabric", zap.Error(err))
		h.writeError(w, "Failed to export fabric", err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GetPaths returns every minimum-hop path from src to dst
func (h *Handler) GetPaths(w http.ResponseWriter, r *http.Request) {
	src := domain.DeviceID(r.URL.Query().Get("src"))
	dst := domain.DeviceID(r.URL.Query().Get("dst"))
	if src == "" || dst == "" {
		h.writeError(w, "Missing device", "src and dst are required", http.StatusBadRequest)
		return
	}

	paths := h.topo.PathsBetween(src, dst)
	resp := PathsResponse{Src: src, Dst: dst, Paths: paths}
	if resp.Paths == nil {
		resp.Paths = []domain.Path{}
	} else {
		resp.Hops = paths[0].Len()
	}
	h.writeJSON(w, resp, http.StatusOK)
}

// ReloadFabric re-reads the fabric file
func (h *Handler) ReloadFabric(w http.ResponseWriter, r *http.Request) {
	if err := h.fabric.Reload(r.Context()); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusUnprocessableEntity
		}
		h.logger.Warn("Fabric reload failed", zap.Error(err))
		h.writeError(w, "Failed to reload fabric", err.Error(), status)
		return
	}

	h.writeJSON(w, h.fabric.Fabric(), http.StatusOK)
}
