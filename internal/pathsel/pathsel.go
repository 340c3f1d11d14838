// Package pathsel picks one path between two devices out of the candidate
// set offered by the topology.
package pathsel

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"fabricfwd/internal/domain"
)

// ErrNoPath is returned when the topology knows no route between the devices.
var ErrNoPath = errors.New("no path found")

// Topology provides candidate paths between two devices under its current
// view. The returned set may be empty and has no ordering guarantee.
type Topology interface {
	PathsBetween(src, dst domain.DeviceID) []domain.Path
}

// Policy chooses one of a non-empty set of candidate paths.
type Policy interface {
	Name() string
	Choose(candidates []domain.Path) domain.Path
}

// Selector combines a topology with a selection policy. It holds no mutable
// state and is safe for concurrent use.
type Selector struct {
	topo   Topology
	policy Policy
}

// New creates a selector. A nil policy means AnyPath.
func New(topo Topology, policy Policy) *Selector {
	if policy == nil {
		policy = AnyPath{}
	}
	return &Selector{topo: topo, policy: policy}
}

// Policy returns the configured policy.
func (s *Selector) Policy() Policy {
	return s.policy
}

// Select returns a path from src to dst. Callers handle src == dst
// themselves; the selector is not consulted for same-device traffic.
// Selection does not observe cancellation of ctx.
func (s *Selector) Select(_ context.Context, src, dst domain.DeviceID) (domain.Path, error) {
	candidates := s.topo.PathsBetween(src, dst)
	if len(candidates) == 0 {
		return domain.Path{}, fmt.Errorf("%s -> %s: %w", src, dst, ErrNoPath)
	}
	return s.policy.Choose(candidates), nil
}

// AnyPath takes the first candidate in whatever order the topology returned
// them. The choice is arbitrary; no cost or hop count is considered.
type AnyPath struct{}

func (AnyPath) Name() string { return "any" }

func (AnyPath) Choose(candidates []domain.Path) domain.Path {
	return candidates[0]
}

// FewestHops prefers the path with the fewest links and breaks ties by the
// path's string form, so the same candidate set always yields the same path.
type FewestHops struct{}

func (FewestHops) Name() string { return "fewest-hops" }

func (FewestHops) Choose(candidates []domain.Path) domain.Path {
	sorted := make([]domain.Path, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Len() != sorted[j].Len() {
			return sorted[i].Len() < sorted[j].Len()
		}
		return sorted[i].String() < sorted[j].String()
	})
	return sorted[0]
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "any":
		return AnyPath{}, nil
	case "fewest-hops":
		return FewestHops{}, nil
	default:
		return nil, fmt.Errorf("unknown path policy %q", name)
	}
}
