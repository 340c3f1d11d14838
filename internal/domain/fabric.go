package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidFabric is wrapped by every Validate error.
var ErrInvalidFabric = errors.New("invalid fabric")

// Fabric is a static description of the switching fabric: its devices, the
// cables between them and the hosts attached to them. Each cable appears in
// Links once per direction.
type Fabric struct {
	Version string     `json:"version,omitempty"`
	Devices []DeviceID `json:"devices"`
	Links   []Link     `json:"links"`
	Hosts   []Host     `json:"hosts"`
}

// NewFabric creates an empty fabric.
func NewFabric() *Fabric {
	return &Fabric{
		Devices: make([]DeviceID, 0),
		Links:   make([]Link, 0),
		Hosts:   make([]Host, 0),
	}
}

// AddDevice adds a device unless it is already present.
func (f *Fabric) AddDevice(id DeviceID) {
	if f.HasDevice(id) {
		return
	}
	f.Devices = append(f.Devices, id)
}

// HasDevice reports whether the device is part of the fabric.
func (f *Fabric) HasDevice(id DeviceID) bool {
	for _, d := range f.Devices {
		if d == id {
			return true
		}
	}
	return false
}

// AddCable adds the two directed links of a cable between a and b.
func (f *Fabric) AddCable(a, b ConnectPoint) {
	f.Links = append(f.Links, NewLink(a, b), NewLink(b, a))
}

// Cables returns one link per cable, in the order the cables were added.
func (f *Fabric) Cables() []Link {
	seen := make(map[string]bool)
	cables := make([]Link, 0, len(f.Links)/2)
	for _, l := range f.Links {
		if seen[l.ID()] {
			continue
		}
		seen[l.ID()] = true
		cables = append(cables, l)
	}
	return cables
}

// AddHost attaches a host.
func (f *Fabric) AddHost(h Host) {
	f.Hosts = append(f.Hosts, h)
}

// Validate checks that links and hosts reference known devices, that no
// port is used twice and that host addresses are unique unicast MACs.
func (f *Fabric) Validate() error {
	devices := make(map[DeviceID]bool, len(f.Devices))
	for _, d := range f.Devices {
		if d == "" {
			return fmt.Errorf("%w: empty device id", ErrInvalidFabric)
		}
		devices[d] = true
	}

	used := make(map[ConnectPoint]string)
	claim := func(cp ConnectPoint, by string) error {
		if !devices[cp.Device] {
			return fmt.Errorf("%w: %s references unknown device %s", ErrInvalidFabric, by, cp.Device)
		}
		if prev, ok := used[cp]; ok && prev != by {
			return fmt.Errorf("%w: port %s used by %s and %s", ErrInvalidFabric, cp, prev, by)
		}
		used[cp] = by
		return nil
	}

	for _, l := range f.Cables() {
		if l.Src.Device == l.Dst.Device {
			return fmt.Errorf("%w: link %s loops back to its device", ErrInvalidFabric, l)
		}
		by := "link " + l.ID()
		if err := claim(l.Src, by); err != nil {
			return err
		}
		if err := claim(l.Dst, by); err != nil {
			return err
		}
	}

	macs := make(map[MAC]bool, len(f.Hosts))
	for _, h := range f.Hosts {
		if h.MAC.IsMulticast() {
			return fmt.Errorf("%w: host %s has a group address", ErrInvalidFabric, h.MAC)
		}
		if macs[h.MAC] {
			return fmt.Errorf("%w: duplicate host %s", ErrInvalidFabric, h.MAC)
		}
		macs[h.MAC] = true
		if !devices[h.Location.Device] {
			return fmt.Errorf("%w: host %s references unknown device %s",
				ErrInvalidFabric, h.MAC, h.Location.Device)
		}
		if by, ok := used[h.Location]; ok && by != "host" {
			return fmt.Errorf("%w: host %s attached to %s which is used by %s",
				ErrInvalidFabric, h.MAC, h.Location, by)
		}
		// Several hosts may share an access port.
		used[h.Location] = "host"
	}
	return nil
}

// SortedDevices returns the device ids in lexical order.
func (f *Fabric) SortedDevices() []DeviceID {
	out := make([]DeviceID, len(f.Devices))
	copy(out, f.Devices)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
