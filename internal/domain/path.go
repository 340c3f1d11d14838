package domain

import "strings"

// Path is an ordered sequence of links from an ingress device to an egress
// device. Consecutive links share a device: Links[i].Dst.Device equals
// Links[i+1].Src.Device.
type Path struct {
	Links []Link `json:"links"`
}

// NewPath creates a path from the given links.
func NewPath(links ...Link) Path {
	return Path{Links: links}
}

// Len returns the number of links.
func (p Path) Len() int {
	return len(p.Links)
}

// Src returns the ingress device, or "" for an empty path.
func (p Path) Src() DeviceID {
	if len(p.Links) == 0 {
		return ""
	}
	return p.Links[0].Src.Device
}

// Dst returns the egress device, or "" for an empty path.
func (p Path) Dst() DeviceID {
	if len(p.Links) == 0 {
		return ""
	}
	return p.Links[len(p.Links)-1].Dst.Device
}

// Devices returns every device visited in order, ingress and egress
// included.
func (p Path) Devices() []DeviceID {
	if len(p.Links) == 0 {
		return nil
	}
	devices := make([]DeviceID, 0, len(p.Links)+1)
	devices = append(devices, p.Links[0].Src.Device)
	for _, l := range p.Links {
		devices = append(devices, l.Dst.Device)
	}
	return devices
}

// Contiguous reports whether every link starts on the device the previous
// one ended on.
func (p Path) Contiguous() bool {
	for i := 1; i < len(p.Links); i++ {
		if p.Links[i].Src.Device != p.Links[i-1].Dst.Device {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	parts := make([]string, len(p.Links))
	for i, l := range p.Links {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ")
}
