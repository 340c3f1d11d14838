package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"fabricfwd/internal/dataplane"
	"fabricfwd/internal/dispatch"
	"fabricfwd/internal/domain"
)

// PacketInRequest injects a frame as if received on device/port. Frame is
// base64 in JSON.
type PacketInRequest struct {
	Device domain.DeviceID   `json:"device"`
	Port   domain.PortNumber `json:"port"`
	Frame  []byte            `json:"frame"`
}

// PacketInResponse reports how the dispatcher handled an injected frame.
type PacketInResponse struct {
	Outcome dispatch.Outcome `json:"outcome"`
}

// ListFlows returns installed flow entries, for one device if given.
func (h *Handler) ListFlows(w http.ResponseWriter, r *http.Request) {
	var flows []dataplane.Flow
	if device := r.URL.Query().Get("device"); device != "" {
		flows = h.dataplane.Flows(domain.DeviceID(device))
	} else {
		flows = h.dataplane.AllFlows()
	}
	if flows == nil {
		flows = []dataplane.Flow{}
	}
	h.writeJSON(w, flows, http.StatusOK)
}

// ListPacketOuts returns recently emitted frames, oldest first
func (h *Handler) ListPacketOuts(w http.ResponseWriter, r *http.Request) {
	outs := h.dataplane.PacketOuts()
	if outs == nil {
		outs = []dataplane.PacketOut{}
	}
	h.writeJSON(w, outs, http.StatusOK)
}

// PacketIn hands a frame to the dispatcher
func (h *Handler) PacketIn(w http.ResponseWriter, r *http.Request) {
	var req PacketInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Device == "" {
		h.writeError(w, "Missing device", "device is required", http.StatusBadRequest)
		return
	}
	if len(req.Frame) == 0 {
		h.writeError(w, "Missing frame", "frame is required", http.StatusBadRequest)
		return
	}

	pkt := h.dataplane.NewPacket(domain.NewConnectPoint(req.Device, req.Port), req.Frame)
	// A dropped client must not leave the pair recorded without a path.
	outcome := h.dispatcher.Process(context.WithoutCancel(r.Context()), pkt)
	h.writeJSON(w, PacketInResponse{Outcome: outcome}, http.StatusOK)
}
