package frame

import (
	"net"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"fabricfwd/internal/domain"
)

// IPv4 serializes a minimal Ethernet/IPv4/ICMP echo frame from src to dst.
// It is used by the replay tooling and by tests to produce packet-ins.
func IPv4(src, dst domain.MAC, srcIP, dstIP net.IP) ([]byte, error) {
	eth := layers.Ethernet{
		SrcMAC:       src.HardwareAddr(),
		DstMAC:       dst.HardwareAddr(),
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolICMPv4,
		SrcIP:    srcIP.To4(),
		DstIP:    dstIP.To4(),
	}
	icmp := layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
		Id:       1,
		Seq:      1,
	}
	return serialize(&eth, &ip, &icmp, gopacket.Payload([]byte("fabricfwd")))
}

// ARPRequest serializes a broadcast ARP who-has from src.
func ARPRequest(src domain.MAC, srcIP, targetIP net.IP) ([]byte, error) {
	eth := layers.Ethernet{
		SrcMAC:       src.HardwareAddr(),
		DstMAC:       domain.BroadcastMAC.HardwareAddr(),
		EthernetType: layers.EthernetTypeARP,
	}
	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   src.HardwareAddr(),
		SourceProtAddress: srcIP.To4(),
		DstHwAddress:      make([]byte, 6),
		DstProtAddress:    targetIP.To4(),
	}
	return serialize(&eth, &arp)
}

func serialize(l ...gopacket.SerializableLayer) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, l...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
