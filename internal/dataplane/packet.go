package dataplane

import (
	"context"

	"fabricfwd/internal/domain"
)

// Packet is a frame received from the emulated fabric. Packet-outs are
// recorded on the fabric it came from.
type Packet struct {
	fabric *Fabric
	at     domain.ConnectPoint
	data   []byte
}

// NewPacket wraps a frame received at the given point.
func (f *Fabric) NewPacket(at domain.ConnectPoint, data []byte) *Packet {
	return &Packet{fabric: f, at: at, data: data}
}

// ReceivedFrom returns the point the frame arrived on.
func (p *Packet) ReceivedFrom() domain.ConnectPoint {
	return p.at
}

// Data returns the raw Ethernet frame.
func (p *Packet) Data() []byte {
	return p.data
}

// PacketOut emits the frame on a port of the receiving device. It does not
// observe cancellation.
func (p *Packet) PacketOut(_ context.Context, port domain.PortNumber) error {
	p.fabric.RecordPacketOut(p.at.Device, port, len(p.data))
	return nil
}
