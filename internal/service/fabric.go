package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"fabricfwd/internal/domain"
	"fabricfwd/internal/hostdir"
	"fabricfwd/internal/loader"
	"fabricfwd/internal/repository"
	"fabricfwd/internal/topology"
)

// ErrNoFabricFile is returned by Reload when no fabric file is configured.
var ErrNoFabricFile = errors.New("no fabric file configured")

// FabricService owns the current fabric description. Loading a fabric
// rebuilds the topology snapshot and the host directory the forwarding
// path reads from.
type FabricService struct {
	repo     repository.Repository
	topo     *topology.Store
	hosts    *hostdir.Directory
	eventBus *EventBus
	logger   *zap.Logger

	mu      sync.RWMutex
	current *domain.Fabric
	path    string
}

// NewFabricService creates a new fabric service. repo may be nil, in which
// case nothing is persisted.
func NewFabricService(repo repository.Repository, topo *topology.Store, hosts *hostdir.Directory,
	eventBus *EventBus, logger *zap.Logger) *FabricService {

	if logger == nil {
		logger = zap.NewNop()
	}
	return &FabricService{
		repo:     repo,
		topo:     topo,
		hosts:    hosts,
		eventBus: eventBus,
		logger:   logger,
		current:  domain.NewFabric(),
	}
}

// Fabric returns the current fabric. Callers must not modify it.
func (s *FabricService) Fabric() *domain.Fabric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Path returns the fabric file Reload reads.
func (s *FabricService) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// ImportFromYAML loads a fabric file, persists it and makes it current. The
// path is remembered for Reload.
func (s *FabricService) ImportFromYAML(ctx context.Context, path string) error {
	fabric, err := loader.LoadFabric(path)
	if err != nil {
		return fmt.Errorf("failed to load fabric: %w", err)
	}

	if s.repo != nil {
		if err := s.repo.ImportFabric(ctx, fabric); err != nil {
			return fmt.Errorf("failed to import fabric: %w", err)
		}
	}

	s.mu.Lock()
	s.path = path
	s.mu.Unlock()

	s.apply(fabric, path)
	return nil
}

// Reload re-reads the fabric file given to ImportFromYAML.
func (s *FabricService) Reload(ctx context.Context) error {
	path := s.Path()
	if path == "" {
		return ErrNoFabricFile
	}
	return s.ImportFromYAML(ctx, path)
}

// LoadFromRepository makes the last persisted fabric current.
func (s *FabricService) LoadFromRepository(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	fabric, err := s.repo.GetFabric(ctx)
	if err != nil {
		return fmt.Errorf("failed to get fabric: %w", err)
	}
	s.apply(fabric, "database")
	return nil
}

// ExportToYAML renders the current fabric in the fabric file format.
func (s *FabricService) ExportToYAML() ([]byte, error) {
	return loader.ExportYAML(s.Fabric())
}

// MoveHost attaches a host to a new point, adding it if unknown.
func (s *FabricService) MoveHost(ctx context.Context, host domain.Host) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyCurrent()
	replaced := false
	for i, h := range next.Hosts {
		if h.MAC == host.MAC {
			next.Hosts[i] = host
			replaced = true
		}
	}
	if !replaced {
		next.AddHost(host)
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if s.repo != nil {
		if err := s.repo.UpsertHost(ctx, host); err != nil {
			return fmt.Errorf("failed to store host: %w", err)
		}
	}
	s.current = next
	s.hosts.Put(host)
	s.eventBus.Publish(Event{Type: EventHostMoved, Payload: host})
	return nil
}

// DeleteHost forgets a host.
func (s *FabricService) DeleteHost(ctx context.Context, mac domain.MAC) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyCurrent()
	hosts := next.Hosts[:0]
	for _, h := range next.Hosts {
		if h.MAC != mac {
			hosts = append(hosts, h)
		}
	}
	if len(hosts) == len(next.Hosts) {
		return fmt.Errorf("host %s: %w", mac, hostdir.ErrNotFound)
	}
	next.Hosts = hosts

	if s.repo != nil {
		if err := s.repo.DeleteHost(ctx, mac); err != nil {
			return fmt.Errorf("failed to delete host: %w", err)
		}
	}
	s.current = next
	s.hosts.Remove(mac)
	s.eventBus.Publish(Event{Type: EventHostDeleted, Payload: map[string]string{"mac": mac.String()}})
	return nil
}

func (s *FabricService) apply(fabric *domain.Fabric, source string) {
	s.topo.Replace(topology.NewSnapshot(fabric))
	s.hosts.Replace(fabric.Hosts)

	s.mu.Lock()
	s.current = fabric
	s.mu.Unlock()

	s.logger.Info("Fabric loaded", zap.String("source", source),
		zap.Int("devices", len(fabric.Devices)), zap.Int("links", len(fabric.Links)),
		zap.Int("hosts", len(fabric.Hosts)))
	s.eventBus.Publish(Event{
		Type: EventFabricReloaded,
		Payload: map[string]int{
			"devices": len(fabric.Devices),
			"links":   len(fabric.Links),
			"hosts":   len(fabric.Hosts),
		},
	})
}

// copyCurrent must be called with s.mu held.
func (s *FabricService) copyCurrent() *domain.Fabric {
	next := &domain.Fabric{
		Version: s.current.Version,
		Devices: append([]domain.DeviceID(nil), s.current.Devices...),
		Links:   append([]domain.Link(nil), s.current.Links...),
		Hosts:   append([]domain.Host(nil), s.current.Hosts...),
	}
	return next
}
