// Package frame decodes the Ethernet header of a packet-in and classifies
// its payload.
package frame

import (
	"fmt"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"fabricfwd/internal/domain"
)

// Header is the decoded Ethernet header of a frame.
type Header struct {
	Src  domain.MAC
	Dst  domain.MAC
	Type domain.FrameType
	// EtherType is the raw type field, kept for diagnostics.
	EtherType layers.EthernetType
}

// Decode parses the Ethernet header of data. VLAN-tagged frames are
// classified by their inner EtherType.
func Decode(data []byte) (Header, error) {
	var eth layers.Ethernet
	if err := eth.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return Header{}, fmt.Errorf("decode ethernet: %w", err)
	}
	src, err := domain.MACFromHardwareAddr(eth.SrcMAC)
	if err != nil {
		return Header{}, fmt.Errorf("source address: %w", err)
	}
	dst, err := domain.MACFromHardwareAddr(eth.DstMAC)
	if err != nil {
		return Header{}, fmt.Errorf("destination address: %w", err)
	}

	etherType := eth.EthernetType
	if etherType == layers.EthernetTypeDot1Q {
		var tag layers.Dot1Q
		if err := tag.DecodeFromBytes(eth.Payload, gopacket.NilDecodeFeedback); err != nil {
			return Header{}, fmt.Errorf("decode 802.1Q tag: %w", err)
		}
		etherType = tag.Type
	}

	return Header{
		Src:       src,
		Dst:       dst,
		Type:      Classify(etherType),
		EtherType: etherType,
	}, nil
}

// Classify maps an EtherType onto the frame types the dispatcher knows.
func Classify(t layers.EthernetType) domain.FrameType {
	switch t {
	case layers.EthernetTypeARP:
		return domain.FrameARP
	case layers.EthernetTypeLinkLayerDiscovery:
		return domain.FrameLLDP
	case layers.EthernetTypeIPv4:
		return domain.FrameIPv4
	default:
		return domain.FrameOther
	}
}
