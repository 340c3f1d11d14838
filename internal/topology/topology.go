// Package topology holds an immutable view of the fabric's device graph and
// answers path queries against it.
package topology

import (
	"sort"
	"sync/atomic"

	"fabricfwd/internal/domain"
)

// Snapshot is an immutable adjacency view built from a fabric. It is safe
// for concurrent use.
type Snapshot struct {
	devices map[domain.DeviceID]bool
	// egress links per device, sorted by source port
	adj   map[domain.DeviceID][]domain.Link
	links []domain.Link
}

// NewSnapshot builds a snapshot from the fabric's directed links.
func NewSnapshot(f *domain.Fabric) *Snapshot {
	s := &Snapshot{
		devices: make(map[domain.DeviceID]bool),
		adj:     make(map[domain.DeviceID][]domain.Link),
	}
	if f == nil {
		return s
	}
	for _, d := range f.Devices {
		s.devices[d] = true
	}
	for _, l := range f.Links {
		s.adj[l.Src.Device] = append(s.adj[l.Src.Device], l)
		s.links = append(s.links, l)
	}
	for _, links := range s.adj {
		sort.Slice(links, func(i, j int) bool { return links[i].Src.Port < links[j].Src.Port })
	}
	return s
}

// Devices returns the known devices in lexical order.
func (s *Snapshot) Devices() []domain.DeviceID {
	out := make([]domain.DeviceID, 0, len(s.devices))
	for d := range s.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Links returns every directed link.
func (s *Snapshot) Links() []domain.Link {
	out := make([]domain.Link, len(s.links))
	copy(out, s.links)
	return out
}

// PathsBetween returns every loop-free path with the minimum number of
// links from src to dst. The result is empty when either device is unknown,
// when they are equal or when dst is unreachable.
func (s *Snapshot) PathsBetween(src, dst domain.DeviceID) []domain.Path {
	if src == dst || !s.devices[src] || !s.devices[dst] {
		return nil
	}

	// Breadth-first layering. pred[d] holds every link that reaches d on a
	// shortest path from src.
	dist := map[domain.DeviceID]int{src: 0}
	pred := make(map[domain.DeviceID][]domain.Link)
	frontier := []domain.DeviceID{src}
	for len(frontier) > 0 {
		if _, ok := dist[dst]; ok {
			break
		}
		var next []domain.DeviceID
		for _, d := range frontier {
			for _, l := range s.adj[d] {
				to := l.Dst.Device
				if !s.devices[to] {
					continue
				}
				dd, seen := dist[to]
				switch {
				case !seen:
					dist[to] = dist[d] + 1
					pred[to] = append(pred[to], l)
					next = append(next, to)
				case dd == dist[d]+1:
					pred[to] = append(pred[to], l)
				}
			}
		}
		frontier = next
	}
	if _, ok := dist[dst]; !ok {
		return nil
	}

	var paths []domain.Path
	var walk func(d domain.DeviceID, suffix []domain.Link)
	walk = func(d domain.DeviceID, suffix []domain.Link) {
		if d == src {
			links := make([]domain.Link, len(suffix))
			for i := range suffix {
				links[i] = suffix[len(suffix)-1-i]
			}
			paths = append(paths, domain.NewPath(links...))
			return
		}
		for _, l := range pred[d] {
			walk(l.Src.Device, append(suffix, l))
		}
	}
	walk(dst, make([]domain.Link, 0, dist[dst]))
	return paths
}

// Store holds the current snapshot. Readers always see a complete snapshot;
// Replace swaps it atomically.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding an empty snapshot.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(NewSnapshot(nil))
	return s
}

// Replace installs a new snapshot.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// PathsBetween queries the current snapshot.
func (s *Store) PathsBetween(src, dst domain.DeviceID) []domain.Path {
	return s.Snapshot().PathsBetween(src, dst)
}
