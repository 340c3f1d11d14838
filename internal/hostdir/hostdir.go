// Package hostdir keeps the current attachment point of every known host.
package hostdir

import (
	"context"
	"errors"
	"sort"
	"sync"

	"fabricfwd/internal/domain"
)

// ErrNotFound is returned by Get for an unknown address.
var ErrNotFound = errors.New("host not found")

// Directory is an in-memory host table keyed by MAC. It is safe for
// concurrent use.
type Directory struct {
	mu    sync.RWMutex
	hosts map[domain.MAC]domain.Host
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{hosts: make(map[domain.MAC]domain.Host)}
}

// Host looks up a host by address.
func (d *Directory) Host(_ context.Context, mac domain.MAC) (domain.Host, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.hosts[mac]
	return h, ok
}

// Get is Host with an error instead of a flag.
func (d *Directory) Get(ctx context.Context, mac domain.MAC) (domain.Host, error) {
	h, ok := d.Host(ctx, mac)
	if !ok {
		return domain.Host{}, ErrNotFound
	}
	return h, nil
}

// Put adds or moves a host.
func (d *Directory) Put(h domain.Host) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hosts[h.MAC] = h
}

// Remove forgets a host. It reports whether the host was known.
func (d *Directory) Remove(mac domain.MAC) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.hosts[mac]
	delete(d.hosts, mac)
	return ok
}

// Replace swaps the whole table.
func (d *Directory) Replace(hosts []domain.Host) {
	table := make(map[domain.MAC]domain.Host, len(hosts))
	for _, h := range hosts {
		table[h.MAC] = h
	}
	d.mu.Lock()
	d.hosts = table
	d.mu.Unlock()
}

// Hosts lists every host ordered by address.
func (d *Directory) Hosts() []domain.Host {
	d.mu.RLock()
	out := make([]domain.Host, 0, len(d.hosts))
	for _, h := range d.hosts {
		out = append(out, h)
	}
	d.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of hosts.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.hosts)
}
