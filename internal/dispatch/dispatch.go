// Package dispatch handles packet-ins: it resolves the two hosts of an IPv4
// frame, records the host pair in the session ledger and, the first time a
// pair is seen, programs bidirectional forwarding state along a path and
// re-emits the frame.
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"fabricfwd/internal/domain"
	"fabricfwd/internal/frame"
	"fabricfwd/internal/ledger"
	"fabricfwd/internal/metrics"
	"fabricfwd/internal/pathsel"
	"fabricfwd/internal/rules"
	"fabricfwd/internal/service"
)

//go:generate mockgen -destination=mock_dispatch/dispatch.go -package=mock_dispatch fabricfwd/internal/dispatch HostDirectory,Topology,RuleSink,PacketContext,EventPublisher

// HostDirectory resolves a link-layer address to the host and its current
// attachment point.
type HostDirectory interface {
	Host(ctx context.Context, mac domain.MAC) (domain.Host, bool)
}

// Topology answers which paths connect two devices.
type Topology interface {
	PathsBetween(src, dst domain.DeviceID) []domain.Path
}

// RuleSink accepts a batch of flow rules for installation. Installation is
// fire-and-forget; a returned error only means the batch was not accepted.
type RuleSink interface {
	Apply(ctx context.Context, rules []domain.FlowRule) error
}

// PacketContext is a received frame together with the means to re-emit it.
type PacketContext interface {
	ReceivedFrom() domain.ConnectPoint
	Data() []byte
	PacketOut(ctx context.Context, port domain.PortNumber) error
}

// EventPublisher receives notifications about recorded sessions and
// installed rules.
type EventPublisher interface {
	Publish(service.Event)
}

// Config holds the dispatcher's collaborators. Hosts, Topology, Ledger and
// Sink are required.
type Config struct {
	Hosts    HostDirectory
	Topology Topology
	Policy   pathsel.Policy
	Ledger   *ledger.Ledger
	Rules    rules.Options
	Sink     RuleSink
	Events   EventPublisher
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Dispatcher is the forwarding state machine. It keeps no per-frame state
// of its own; the ledger is the only thing shared between frames. It is safe
// for concurrent use.
type Dispatcher struct {
	hosts    HostDirectory
	selector *pathsel.Selector
	ledger   *ledger.Ledger
	synth    *rules.Synthesizer
	sink     RuleSink
	events   EventPublisher
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// New creates a dispatcher.
func New(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		hosts:    cfg.Hosts,
		selector: pathsel.New(cfg.Topology, cfg.Policy),
		ledger:   cfg.Ledger,
		synth:    rules.New(cfg.Rules),
		sink:     cfg.Sink,
		events:   cfg.Events,
		metrics:  cfg.Metrics,
		logger:   logger,
	}
}

// Process runs one frame through the state machine and reports where it
// ended.
func (d *Dispatcher) Process(ctx context.Context, pkt PacketContext) Outcome {
	outcome := d.process(ctx, pkt)
	d.metrics.Outcome(outcome.String())
	return outcome
}

func (d *Dispatcher) process(ctx context.Context, pkt PacketContext) Outcome {
	at := pkt.ReceivedFrom()
	hdr, err := frame.Decode(pkt.Data())
	if err != nil {
		d.metrics.Frame("malformed")
		d.logger.Debug("Dropping undecodable frame", zap.Stringer("at", at), zap.Error(err))
		return Ignored
	}
	d.metrics.Frame(string(hdr.Type))

	switch hdr.Type {
	case domain.FrameIPv4:
		return d.forward(ctx, pkt, hdr)
	case domain.FrameARP:
		d.logger.Info("ARP frame", zap.Stringer("src", hdr.Src), zap.Stringer("dst", hdr.Dst),
			zap.Stringer("at", at))
	case domain.FrameLLDP:
		d.logger.Debug("LLDP frame", zap.Stringer("src", hdr.Src), zap.Stringer("at", at))
	default:
		d.logger.Debug("Ignoring frame", zap.Stringer("ether_type", hdr.EtherType),
			zap.Stringer("at", at))
	}
	return Ignored
}

func (d *Dispatcher) forward(ctx context.Context, pkt PacketContext, hdr frame.Header) Outcome {
	ingress := pkt.ReceivedFrom()

	src, ok := d.hosts.Host(ctx, hdr.Src)
	if !ok {
		d.logger.Error("Unknown source host", zap.Stringer("mac", hdr.Src), zap.Stringer("at", ingress))
		return UnknownHost
	}
	dst, ok := d.hosts.Host(ctx, hdr.Dst)
	if !ok {
		d.logger.Error("Unknown destination host", zap.Stringer("mac", hdr.Dst),
			zap.Stringer("src", src.ID))
		return UnknownHost
	}

	if d.ledger.RecordIfAbsent(src.ID, dst.ID) == ledger.AlreadyPresent {
		d.logger.Info("Session already recorded",
			zap.String("session", string(domain.NewSessionKey(src.ID, dst.ID))))
		return DuplicateSession
	}
	d.publish(service.EventSessionRecorded, map[string]string{
		"src": src.ID.String(),
		"dst": dst.ID.String(),
	})

	if ingress.Device == dst.Location.Device {
		return d.sameSwitch(ctx, pkt, src, dst)
	}

	path, err := d.selector.Select(ctx, src.Location.Device, dst.Location.Device)
	if err == nil && path.Len() == 0 {
		err = pathsel.ErrNoPath
	}
	if err != nil {
		d.logger.Error("No path", zap.Stringer("src", src.Location), zap.Stringer("dst", dst.Location),
			zap.Error(err))
		return NoPath
	}

	batch := d.synth.ForPath(path, ingress, dst.Location, src.MAC, dst.MAC)
	d.install(ctx, batch, src, dst)
	d.packetOut(ctx, pkt, path.Links[0].Src.Port)
	d.logger.Debug("Path installed", zap.Stringer("path", path), zap.Int("rules", len(batch)))
	return PathInstalled
}

// sameSwitch handles hosts on the device the frame arrived at. The port
// check uses the source host's attachment port, which on this device is the
// ingress port unless the host directory is stale.
func (d *Dispatcher) sameSwitch(ctx context.Context, pkt PacketContext, src, dst domain.Host) Outcome {
	ingress := pkt.ReceivedFrom()
	if src.Location.Port == dst.Location.Port {
		return SamePortLoop
	}
	fwd, rev := d.synth.ForHop(ingress.Device, ingress.Port, dst.Location.Port, src.MAC, dst.MAC)
	d.install(ctx, []domain.FlowRule{fwd, rev}, src, dst)
	d.packetOut(ctx, pkt, dst.Location.Port)
	return SameSwitchInstalled
}

// install submits one batch. A rejected batch is neither retried nor rolled
// back; the session stays recorded.
func (d *Dispatcher) install(ctx context.Context, batch []domain.FlowRule, src, dst domain.Host) {
	err := d.sink.Apply(ctx, batch)
	d.metrics.Submitted(len(batch), err)
	if err != nil {
		d.logger.Error("Rule installation failed", zap.String("session",
			string(domain.NewSessionKey(src.ID, dst.ID))), zap.Int("rules", len(batch)), zap.Error(err))
		return
	}
	d.publish(service.EventRulesInstalled, map[string]interface{}{
		"src":   src.ID.String(),
		"dst":   dst.ID.String(),
		"rules": len(batch),
	})
}

func (d *Dispatcher) packetOut(ctx context.Context, pkt PacketContext, port domain.PortNumber) {
	err := pkt.PacketOut(ctx, port)
	d.metrics.PacketOut(err)
	if err != nil {
		d.logger.Error("Packet-out failed", zap.Stringer("device", pkt.ReceivedFrom().Device),
			zap.Stringer("port", port), zap.Error(err))
	}
}

func (d *Dispatcher) publish(t service.EventType, payload interface{}) {
	if d.events == nil {
		return
	}
	d.events.Publish(service.Event{Type: t, Payload: payload})
}
