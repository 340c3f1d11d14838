package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fabricfwd/internal/config"
	"fabricfwd/internal/dataplane"
	"fabricfwd/internal/domain"
	"fabricfwd/internal/log"
)

func newReplay() *cobra.Command {
	var flags struct {
		fabric   string
		pcap     string
		at       string
		policy   string
		logLevel string
	}
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Dispatch the frames of a pcap file against a fabric description",
		Long: `'replay' loads a fabric description, feeds every frame of a pcap file to the
dispatcher as if it had been received on the given connect point, and prints
the outcome of each frame followed by the flow tables it left behind.`,
		Example: "  fabricfwd replay --fabric fabric.yaml --pcap capture.pcap --at D1/1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := domain.ParseConnectPoint(flags.at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			cmd.SilenceUsage = true

			cfg := config.DefaultConfig()
			cfg.Fabric = flags.fabric
			cfg.PathPolicy = flags.policy
			cfg.Log.Level = flags.logLevel
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := log.New(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return replay(cmd.Context(), cmd.OutOrStdout(), cfg, flags.pcap, at, logger)
		},
	}
	cmd.Flags().StringVarP(&flags.fabric, "fabric", "f", "", "fabric description file")
	cmd.Flags().StringVar(&flags.pcap, "pcap", "", "pcap file with Ethernet frames")
	cmd.Flags().StringVar(&flags.at, "at", "", "connect point the frames arrive on, e.g. D1/1")
	cmd.Flags().StringVar(&flags.policy, "policy", "any", "path policy (any, fewest-hops)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "log level")
	cmd.MarkFlagRequired("fabric")
	cmd.MarkFlagRequired("pcap")
	cmd.MarkFlagRequired("at")
	return cmd
}

func replay(ctx context.Context, out io.Writer, cfg *config.Config, pcapPath string,
	at domain.ConnectPoint, logger *zap.Logger) error {

	c, err := newController(cfg, nil, prometheus.NewRegistry(), logger,
		dataplane.WithSweepInterval(0))
	if err != nil {
		return err
	}
	if err := c.load(ctx); err != nil {
		return err
	}

	f, err := os.Open(pcapPath)
	if err != nil {
		return fmt.Errorf("opening pcap: %w", err)
	}
	defer f.Close()
	r, err := pcapgo.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading pcap header: %w", err)
	}
	if lt := r.LinkType(); lt != layers.LinkTypeEthernet {
		return fmt.Errorf("unsupported link type %s", lt)
	}

	for i := 1; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, _, err := r.ReadPacketData()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading frame %d: %w", i, err)
		}
		outcome := c.dispatcher.Process(ctx, c.dataplane.NewPacket(at, data))
		fmt.Fprintf(out, "frame %d: %s\n", i, outcome)
	}

	fmt.Fprintf(out, "\nflows:\n")
	for _, device := range c.dataplane.Devices() {
		for _, flow := range c.dataplane.Flows(device) {
			fmt.Fprintf(out, "  %s\n", flow.Rule)
		}
	}
	fmt.Fprintf(out, "\npacket-outs:\n")
	for _, po := range c.dataplane.PacketOuts() {
		fmt.Fprintf(out, "  %s/%s %d bytes\n", po.Device, po.Port, po.Size)
	}
	fmt.Fprintf(out, "\nsessions:\n%s", c.sessions.Dump())
	return nil
}
