// Package rules builds the bidirectional flow rules that program a host
// pair's forwarding state on every switch along a path.
package rules

import (
	"time"

	"fabricfwd/internal/domain"
)

const (
	// DefaultPriority is the priority of every rule the controller installs.
	DefaultPriority uint16 = 10
	// DefaultLifetime is the hard timeout of every rule the controller
	// installs. Rules disappear from the switch when it elapses, whether or
	// not traffic is still flowing.
	DefaultLifetime = 10 * time.Second
)

// Options are the rule attributes that do not depend on the hop.
type Options struct {
	AppID    string
	Priority uint16
	Lifetime time.Duration
	Table    uint8
}

// Synthesizer turns hops into flow rules. It is stateless.
type Synthesizer struct {
	opts Options
}

// New creates a synthesizer. Zero priority and lifetime fall back to the
// defaults.
func New(opts Options) *Synthesizer {
	if opts.Priority == 0 {
		opts.Priority = DefaultPriority
	}
	if opts.Lifetime <= 0 {
		opts.Lifetime = DefaultLifetime
	}
	return &Synthesizer{opts: opts}
}

// Options returns the effective options.
func (s *Synthesizer) Options() Options {
	return s.opts
}

// ForHop returns the rule pair for one device: forward traffic from srcMAC
// to dstMAC enters on inPort and leaves on outPort, and the reverse rule
// mirrors it.
func (s *Synthesizer) ForHop(device domain.DeviceID, inPort, outPort domain.PortNumber,
	srcMAC, dstMAC domain.MAC) (fwd, rev domain.FlowRule) {

	fwd = s.rule(device, domain.Match{InPort: inPort, EthSrc: srcMAC, EthDst: dstMAC}, outPort)
	rev = s.rule(device, domain.Match{InPort: outPort, EthSrc: dstMAC, EthDst: srcMAC}, inPort)
	return fwd, rev
}

// ForPath returns the rules for every device on path, in path order:
//
//   - the ingress device, from the port the frame arrived on to the first
//     link's source port;
//   - every intermediate device, from the previous link's destination port to
//     the next link's source port;
//   - the egress device, from the last link's destination port to the port
//     the destination host is attached to.
//
// A path with n links yields 2(n+1) rules. An empty path yields none.
// Rules are not deduplicated.
func (s *Synthesizer) ForPath(path domain.Path, ingress, dstLocation domain.ConnectPoint,
	srcMAC, dstMAC domain.MAC) []domain.FlowRule {

	links := path.Links
	if len(links) == 0 {
		return nil
	}
	out := make([]domain.FlowRule, 0, 2*(len(links)+1))
	for i, l := range links {
		var fwd, rev domain.FlowRule
		if i == 0 {
			fwd, rev = s.ForHop(ingress.Device, ingress.Port, l.Src.Port, srcMAC, dstMAC)
		} else {
			fwd, rev = s.ForHop(l.Src.Device, links[i-1].Dst.Port, l.Src.Port, srcMAC, dstMAC)
		}
		out = append(out, fwd, rev)
	}
	last := links[len(links)-1]
	fwd, rev := s.ForHop(dstLocation.Device, last.Dst.Port, dstLocation.Port, srcMAC, dstMAC)
	return append(out, fwd, rev)
}

func (s *Synthesizer) rule(device domain.DeviceID, match domain.Match, out domain.PortNumber) domain.FlowRule {
	return domain.FlowRule{
		Device:      device,
		Table:       s.opts.Table,
		Match:       match,
		Output:      out,
		Priority:    s.opts.Priority,
		HardTimeout: s.opts.Lifetime,
		AppID:       s.opts.AppID,
	}
}
