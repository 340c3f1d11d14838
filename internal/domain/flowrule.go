package domain

import (
	"fmt"
	"time"
)

// Match selects packets by ingress port and Ethernet addresses.
type Match struct {
	InPort PortNumber `json:"in_port"`
	EthSrc MAC        `json:"eth_src"`
	EthDst MAC        `json:"eth_dst"`
}

func (m Match) String() string {
	return fmt.Sprintf("in=%d src=%s dst=%s", m.InPort, m.EthSrc, m.EthDst)
}

// FlowRule is a match-action entry for a single device. Once submitted the
// data plane owns it; HardTimeout is the only lifetime it has.
type FlowRule struct {
	Device      DeviceID      `json:"device"`
	Table       uint8         `json:"table"`
	Match       Match         `json:"match"`
	Output      PortNumber    `json:"output"`
	Priority    uint16        `json:"priority"`
	HardTimeout time.Duration `json:"hard_timeout"`
	AppID       string        `json:"app_id"`
}

// Key identifies the table entry a rule occupies. Two rules with the same
// key overwrite each other.
func (r FlowRule) Key() string {
	return fmt.Sprintf("%s/%d/%d/%s", r.Device, r.Table, r.Priority, r.Match)
}

func (r FlowRule) String() string {
	return fmt.Sprintf("%s: %s -> out=%d prio=%d hard=%s app=%s",
		r.Device, r.Match, r.Output, r.Priority, r.HardTimeout, r.AppID)
}
