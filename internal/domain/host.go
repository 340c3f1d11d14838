package domain

// Host is an end system and its current attachment point. Hosts are owned
// by the host directory; the forwarding core only reads them.
type Host struct {
	ID       HostID       `json:"id"`
	MAC      MAC          `json:"mac"`
	Location ConnectPoint `json:"location"`
}

// NewHost creates a host attached at the given point.
func NewHost(mac MAC, location ConnectPoint) Host {
	return Host{
		ID:       HostIDFromMAC(mac),
		MAC:      mac,
		Location: location,
	}
}
