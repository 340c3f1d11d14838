// Package domain defines the core types of the fabricfwd forwarding controller.
//
// This package contains the value objects shared by the session ledger, the
// path selector, the rule synthesizer and the forwarding dispatcher, as well as
// the collaborator-facing records (hosts, links, flow rules).
//
// # Addressing
//
// MAC is a comparable link-layer address. HostID is derived from a MAC and is
// used as the identity of an end system. DeviceID and PortNumber identify a
// switch and one of its ports; ConnectPoint pairs the two.
//
// # Topology
//
// Link is a directed edge between two connect points. Path is an ordered
// sequence of links from an ingress device to an egress device. Paths are
// produced per lookup and never mutated.
//
// # Forwarding State
//
// Session records that an ordered host pair had forwarding state installed.
// FlowRule is a match-action entry destined for one device; it carries a
// single explicit hard timeout.
//
// # Design Principles
//
// - Immutable value objects
// - No database or external dependencies
// - Typed identifiers instead of bare strings
package domain
