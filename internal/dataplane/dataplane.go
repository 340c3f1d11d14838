// Package dataplane emulates the switches of the fabric: per-device flow
// tables whose entries expire after their hard timeout, and a record of the
// frames the controller emitted.
package dataplane

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"fabricfwd/internal/domain"
)

// DefaultPacketOutHistory is the number of packet-outs kept for inspection.
const DefaultPacketOutHistory = 256

// Flow is an installed rule and when it expires.
type Flow struct {
	Rule      domain.FlowRule `json:"rule"`
	Installed time.Time       `json:"installed"`
	Expires   time.Time       `json:"expires"`
}

// PacketOut is a frame the controller re-emitted.
type PacketOut struct {
	Device domain.DeviceID   `json:"device"`
	Port   domain.PortNumber `json:"port"`
	Size   int               `json:"size"`
	At     time.Time         `json:"at"`
}

// Fabric is the emulated data plane. It accepts rule batches for any device
// and keeps one flow table per device.
type Fabric struct {
	mu     sync.Mutex
	tables map[domain.DeviceID]*gocache.Cache
	// Tables run no janitor goroutine; Apply purges expired entries
	// itself once sweep has elapsed since the last purge.
	sweep     time.Duration
	lastSweep time.Time

	outs    []PacketOut
	outNext int
	outFull bool

	now func() time.Time
}

// Option configures a Fabric.
type Option func(*Fabric)

// WithPacketOutHistory sets how many packet-outs are kept.
func WithPacketOutHistory(n int) Option {
	return func(f *Fabric) {
		if n > 0 {
			f.outs = make([]PacketOut, n)
		}
	}
}

// WithSweepInterval sets how often Apply purges expired flows from memory.
// Zero leaves purging to Sweep. Expired flows are never returned regardless
// of the sweep.
func WithSweepInterval(d time.Duration) Option {
	return func(f *Fabric) {
		f.sweep = d
	}
}

// New creates an emulated data plane with empty flow tables.
func New(opts ...Option) *Fabric {
	f := &Fabric{
		tables: make(map[domain.DeviceID]*gocache.Cache),
		sweep:  time.Minute,
		outs:   make([]PacketOut, DefaultPacketOutHistory),
		now:    time.Now,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Fabric) table(device domain.DeviceID) *gocache.Cache {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[device]
	if !ok {
		t = gocache.New(gocache.NoExpiration, 0)
		f.tables[device] = t
	}
	return t
}

// Apply installs every rule of the batch. A rule with the same match,
// priority and table as an installed one replaces it and restarts its hard
// timeout.
// The batch is applied even when ctx is done.
func (f *Fabric) Apply(_ context.Context, rules []domain.FlowRule) error {
	for _, r := range rules {
		if r.Device == "" {
			return fmt.Errorf("rule %s has no device", r.Match)
		}
	}
	now := f.now()
	for _, r := range rules {
		ttl := r.HardTimeout
		if ttl <= 0 {
			ttl = gocache.NoExpiration
		}
		flow := Flow{Rule: r, Installed: now}
		if ttl > 0 {
			flow.Expires = now.Add(ttl)
		}
		f.table(r.Device).Set(r.Key(), flow, ttl)
	}
	f.maybeSweep(now)
	return nil
}

func (f *Fabric) maybeSweep(now time.Time) {
	f.mu.Lock()
	due := f.sweep > 0 && now.Sub(f.lastSweep) >= f.sweep
	if due {
		f.lastSweep = now
	}
	f.mu.Unlock()
	if due {
		f.Sweep()
	}
}

// Sweep purges expired flows from every table.
func (f *Fabric) Sweep() {
	for _, t := range f.snapshotTables() {
		t.DeleteExpired()
	}
}

func (f *Fabric) snapshotTables() []*gocache.Cache {
	f.mu.Lock()
	defer f.mu.Unlock()
	tables := make([]*gocache.Cache, 0, len(f.tables))
	for _, t := range f.tables {
		tables = append(tables, t)
	}
	return tables
}

// Flows lists the live entries of a device's table, highest priority first.
func (f *Fabric) Flows(device domain.DeviceID) []Flow {
	f.mu.Lock()
	t, ok := f.tables[device]
	f.mu.Unlock()
	if !ok {
		return []Flow{}
	}
	items := t.Items()
	flows := make([]Flow, 0, len(items))
	for _, item := range items {
		flows = append(flows, item.Object.(Flow))
	}
	sortFlows(flows)
	return flows
}

// AllFlows lists the live entries of every device.
func (f *Fabric) AllFlows() []Flow {
	var flows []Flow
	for _, d := range f.Devices() {
		flows = append(flows, f.Flows(d)...)
	}
	if flows == nil {
		return []Flow{}
	}
	return flows
}

// Devices returns every device that has a flow table, in lexical order.
func (f *Fabric) Devices() []domain.DeviceID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.DeviceID, 0, len(f.tables))
	for d := range f.tables {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RemoveApp deletes every rule installed by the application and returns how
// many were removed.
func (f *Fabric) RemoveApp(appID string) int {
	removed := 0
	for _, t := range f.snapshotTables() {
		for key, item := range t.Items() {
			if item.Object.(Flow).Rule.AppID == appID {
				t.Delete(key)
				removed++
			}
		}
	}
	return removed
}

// RecordPacketOut remembers an emitted frame.
func (f *Fabric) RecordPacketOut(device domain.DeviceID, port domain.PortNumber, size int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outs[f.outNext] = PacketOut{Device: device, Port: port, Size: size, At: f.now()}
	f.outNext = (f.outNext + 1) % len(f.outs)
	if f.outNext == 0 {
		f.outFull = true
	}
}

// PacketOuts returns the remembered packet-outs, oldest first.
func (f *Fabric) PacketOuts() []PacketOut {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.outFull {
		out := make([]PacketOut, f.outNext)
		copy(out, f.outs[:f.outNext])
		return out
	}
	out := make([]PacketOut, 0, len(f.outs))
	out = append(out, f.outs[f.outNext:]...)
	return append(out, f.outs[:f.outNext]...)
}

func sortFlows(flows []Flow) {
	sort.Slice(flows, func(i, j int) bool {
		a, b := flows[i].Rule, flows[j].Rule
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Match.InPort != b.Match.InPort {
			return a.Match.InPort < b.Match.InPort
		}
		return a.Key() < b.Key()
	})
}
