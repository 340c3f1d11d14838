package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"fabricfwd/internal/config"
	"fabricfwd/internal/dataplane"
	"fabricfwd/internal/dispatch"
	"fabricfwd/internal/hostdir"
	"fabricfwd/internal/ledger"
	"fabricfwd/internal/metrics"
	"fabricfwd/internal/pathsel"
	"fabricfwd/internal/repository"
	"fabricfwd/internal/service"
	"fabricfwd/internal/topology"
)

// controller is the forwarding application with its collaborators.
type controller struct {
	cfg        *config.Config
	bus        *service.EventBus
	topo       *topology.Store
	hosts      *hostdir.Directory
	ledger     *ledger.Ledger
	dataplane  *dataplane.Fabric
	fabric     *service.FabricService
	sessions   *service.SessionService
	dispatcher *dispatch.Dispatcher
}

// newController wires the application. repo may be nil.
func newController(cfg *config.Config, repo repository.Repository, reg prometheus.Registerer,
	logger *zap.Logger, opts ...dataplane.Option) (*controller, error) {

	policy, err := pathsel.PolicyByName(cfg.PathPolicy)
	if err != nil {
		return nil, err
	}

	c := &controller{
		cfg:       cfg,
		bus:       service.NewEventBus(),
		topo:      topology.NewStore(),
		hosts:     hostdir.New(),
		ledger:    ledger.New(),
		dataplane: dataplane.New(opts...),
	}
	c.fabric = service.NewFabricService(repo, c.topo, c.hosts, c.bus, logger.Named("fabric"))
	c.sessions = service.NewSessionService(c.ledger, c.bus, logger.Named("sessions"))
	c.dispatcher = dispatch.New(dispatch.Config{
		Hosts:    c.hosts,
		Topology: c.topo,
		Policy:   policy,
		Ledger:   c.ledger,
		Rules:    cfg.RuleOptions(),
		Sink:     c.dataplane,
		Events:   c.bus,
		Metrics:  metrics.New(reg, c.ledger.Len),
		Logger:   logger.Named("dispatch"),
	})
	return c, nil
}

// load makes the configured fabric current: the fabric file when one is
// configured, the persisted fabric otherwise.
func (c *controller) load(ctx context.Context) error {
	if c.cfg.Fabric != "" {
		if err := c.fabric.ImportFromYAML(ctx, c.cfg.Fabric); err != nil {
			return fmt.Errorf("loading fabric %s: %w", c.cfg.Fabric, err)
		}
		return nil
	}
	if err := c.fabric.LoadFromRepository(ctx); err != nil {
		return fmt.Errorf("loading stored fabric: %w", err)
	}
	return nil
}

// deactivate withdraws everything the application installed.
func (c *controller) deactivate() (removed, dropped int) {
	removed = c.dataplane.RemoveApp(c.cfg.AppID)
	dropped = c.ledger.Reset()
	return removed, dropped
}
