package domain

import (
	"fmt"
	"net"
)

// MAC is a 48-bit link-layer address. Unlike net.HardwareAddr it is
// comparable and can be used as a map key.
type MAC [6]byte

// BroadcastMAC is ff:ff:ff:ff:ff:ff.
var BroadcastMAC = MAC{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// ParseMAC parses a colon, dash or dot separated 48-bit address.
func ParseMAC(s string) (MAC, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MAC{}, err
	}
	return MACFromHardwareAddr(hw)
}

// MACFromHardwareAddr converts a 6-byte hardware address.
func MACFromHardwareAddr(hw net.HardwareAddr) (MAC, error) {
	var m MAC
	if len(hw) != len(m) {
		return MAC{}, fmt.Errorf("invalid MAC length %d", len(hw))
	}
	copy(m[:], hw)
	return m, nil
}

// HardwareAddr returns a copy of m as a net.HardwareAddr.
func (m MAC) HardwareAddr() net.HardwareAddr {
	hw := make(net.HardwareAddr, len(m))
	copy(hw, m[:])
	return hw
}

// IsMulticast reports whether the group bit is set (broadcast included).
func (m MAC) IsMulticast() bool {
	return m[0]&0x01 != 0
}

func (m MAC) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// MarshalText implements encoding.TextMarshaler.
func (m MAC) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MAC) UnmarshalText(text []byte) error {
	parsed, err := ParseMAC(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// HostID identifies an end system. It is derived from the host's MAC address
// and compares by address value.
type HostID string

// HostIDFromMAC returns the host identifier for a link-layer address.
func HostIDFromMAC(m MAC) HostID {
	return HostID(m.String())
}

func (id HostID) String() string {
	return string(id)
}
