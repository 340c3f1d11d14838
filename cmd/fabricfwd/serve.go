package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fabricfwd/internal/config"
	"fabricfwd/internal/handler"
	"fabricfwd/internal/hub"
	"fabricfwd/internal/log"
	"fabricfwd/internal/repository/sqlite"
	"fabricfwd/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

// serveFlags override values from the config file when set.
type serveFlags struct {
	config        string
	listen        string
	metricsListen string
	fabric        string
	watch         bool
	db            string
	appID         string
	policy        string
	logLevel      string
}

func (f *serveFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.config, "config", "c", "", "config file (default: search the standard locations)")
	fs.StringVar(&f.listen, "listen", config.DefaultListen, "operator API address")
	fs.StringVar(&f.metricsListen, "metrics-listen", "", "separate address for /metrics")
	fs.StringVarP(&f.fabric, "fabric", "f", "", "fabric description file")
	fs.BoolVar(&f.watch, "watch", false, "reload the fabric file when it changes")
	fs.StringVar(&f.db, "db", config.DefaultDatabasePath, "SQLite database path")
	fs.StringVar(&f.appID, "app-id", config.DefaultAppID, "application id tagging installed rules")
	fs.StringVar(&f.policy, "policy", "any", "path policy (any, fewest-hops)")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level")
}

// apply copies every flag set on the command line into cfg.
func (f *serveFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("listen") {
		cfg.Listen = f.listen
	}
	if fs.Changed("metrics-listen") {
		cfg.MetricsListen = f.metricsListen
	}
	if fs.Changed("fabric") {
		cfg.Fabric = f.fabric
	}
	if fs.Changed("watch") {
		cfg.WatchFabric = f.watch
	}
	if fs.Changed("db") {
		cfg.Database.Path = f.db
	}
	if fs.Changed("app-id") {
		cfg.AppID = f.appID
	}
	if fs.Changed("policy") {
		cfg.PathPolicy = f.policy
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
}

// load reads the config file and applies the flag overrides.
func (f *serveFlags) load(fs *pflag.FlagSet) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if f.config != "" {
		cfg, path, err = config.LoadFromPath(f.config)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}
	f.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func newServe() *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the forwarding controller and its operator API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := flags.load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			// Do not output help message if we get this far.
			cmd.SilenceUsage = true

			logger, err := log.New(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if path != "" {
				logger.Info("Config loaded", zap.String("path", path))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// serve runs the controller until ctx is done.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer repo.Close()
	logger.Info("Database opened", zap.String("path", cfg.Database.Path))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c, err := newController(cfg, repo, reg, logger)
	if err != nil {
		return err
	}
	if err := c.load(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	events := hub.New(logger.Named("hub"))
	g.Go(func() error {
		events.Run(gctx)
		return nil
	})
	events.Forward(gctx, c.bus)

	if cfg.WatchFabric {
		w := watcher.New(cfg.Fabric, func(ctx context.Context) {
			if err := c.fabric.Reload(ctx); err != nil {
				logger.Warn("Fabric reload failed", zap.Error(err))
			}
		}, logger.Named("watcher"))
		g.Go(func() error {
			return w.Watch(gctx)
		})
	}

	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	apiCfg := handler.Config{
		Sessions:   c.sessions,
		Fabric:     c.fabric,
		Hosts:      c.hosts,
		Topology:   c.topo,
		Dataplane:  c.dataplane,
		Dispatcher: c.dispatcher,
		Events:     events,
		Logger:     logger.Named("api"),
	}
	if cfg.MetricsListen == "" {
		apiCfg.Metrics = metricsHandler
	}

	servers := []*http.Server{{
		Addr:        cfg.Listen,
		Handler:     handler.New(apiCfg).Routes(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}}
	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		servers = append(servers, &http.Server{Addr: cfg.MetricsListen, Handler: mux})
	}

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("Listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Server shutdown error", zap.String("addr", srv.Addr), zap.Error(err))
			}
		}
		return nil
	})

	logger.Info("started", zap.String("app_id", cfg.AppID))
	err = g.Wait()

	removed, dropped := c.deactivate()
	logger.Info("stopped", zap.String("app_id", cfg.AppID),
		zap.Int("rules_removed", removed), zap.Int("sessions_dropped", dropped))
	return err
}
