package domain

// FrameType is the closed set of Ethernet payload kinds the dispatcher
// distinguishes.
type FrameType string

const (
	FrameARP   FrameType = "arp"
	FrameLLDP  FrameType = "lldp"
	FrameIPv4  FrameType = "ipv4"
	FrameOther FrameType = "other"
)
