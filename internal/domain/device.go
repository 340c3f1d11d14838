package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DeviceID identifies a switch in the fabric.
type DeviceID string

func (d DeviceID) String() string {
	return string(d)
}

// PortNumber identifies a port on a device.
type PortNumber uint32

func (p PortNumber) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// ConnectPoint is a (device, port) pair.
type ConnectPoint struct {
	Device DeviceID   `json:"device" yaml:"device"`
	Port   PortNumber `json:"port" yaml:"port"`
}

// NewConnectPoint creates a connect point.
func NewConnectPoint(device DeviceID, port PortNumber) ConnectPoint {
	return ConnectPoint{Device: device, Port: port}
}

// ParseConnectPoint parses the "device/port" notation used in fabric files
// and on the command line.
func ParseConnectPoint(s string) (ConnectPoint, error) {
	i := strings.LastIndex(s, "/")
	if i <= 0 || i == len(s)-1 {
		return ConnectPoint{}, fmt.Errorf("invalid connect point %q: want device/port", s)
	}
	port, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return ConnectPoint{}, fmt.Errorf("invalid port in %q: %w", s, err)
	}
	return ConnectPoint{Device: DeviceID(s[:i]), Port: PortNumber(port)}, nil
}

func (c ConnectPoint) String() string {
	return fmt.Sprintf("%s/%d", c.Device, c.Port)
}
