package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fabricfwd/internal/dataplane"
	"fabricfwd/internal/dispatch"
	"fabricfwd/internal/domain"
	"fabricfwd/internal/hostdir"
	"fabricfwd/internal/service"
	"fabricfwd/internal/topology"
)

// Config wires the handler to the running controller. Events and Metrics
// are optional.
type Config struct {
	Sessions   *service.SessionService
	Fabric     *service.FabricService
	Hosts      *hostdir.Directory
	Topology   *topology.Store
	Dataplane  *dataplane.Fabric
	Dispatcher *dispatch.Dispatcher
	Events     http.Handler
	Metrics    http.Handler
	Logger     *zap.Logger
}

// Handler serves the operator API.
type Handler struct {
	sessions   *service.SessionService
	fabric     *service.FabricService
	hosts      *hostdir.Directory
	topo       *topology.Store
	dataplane  *dataplane.Fabric
	dispatcher *dispatch.Dispatcher
	events     http.Handler
	metrics    http.Handler
	logger     *zap.Logger
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// New creates a new handler
func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions:   cfg.Sessions,
		fabric:     cfg.Fabric,
		hosts:      cfg.Hosts,
		topo:       cfg.Topology,
		dataplane:  cfg.Dataplane,
		dispatcher: cfg.Dispatcher,
		events:     cfg.Events,
		metrics:    cfg.Metrics,
		logger:     logger,
	}
}

// Routes returns the router with middleware applied.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(h.logger), CORS(), Logger(h.logger))

	r.Get("/healthz", h.Health)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}
	if h.events != nil {
		r.Method(http.MethodGet, "/events", h.events)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/sessions", h.ListSessions)
		r.Delete("/sessions", h.ResetSessions)

		r.Get("/hosts", h.ListHosts)
		r.Put("/hosts/{mac}", h.PutHost)
		r.Delete("/hosts/{mac}", h.DeleteHost)

		r.Get("/topology", h.GetTopology)
		r.Get("/paths", h.GetPaths)
		r.Post("/fabric/reload", h.ReloadFabric)

		r.Get("/flows", h.ListFlows)
		r.Get("/packet-outs", h.ListPacketOuts)
		r.Post("/packet-in", h.PacketIn)
	})
	return r
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Hosts    int    `json:"hosts"`
	Devices  int    `json:"devices"`
}

// Health reports liveness and a few counters
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, HealthResponse{
		Status:   "ok",
		Sessions: h.sessions.Count(),
		Hosts:    h.hosts.Len(),
		Devices:  len(h.topo.Snapshot().Devices()),
	}, http.StatusOK)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("Failed to encode JSON", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Warn("Failed to encode error response", zap.Error(err))
	}
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, hostdir.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidFabric):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoFabricFile):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
