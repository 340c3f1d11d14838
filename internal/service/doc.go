// Package service implements the operator-facing logic of the forwarding
// controller.
//
// This package provides the service layer that sits between the HTTP
// handlers and the forwarding core's state: the fabric description and the
// session ledger.
//
// # Services
//
// FabricService loads the fabric description from a YAML file or from the
// repository, persists it, and rebuilds the topology snapshot and the host
// directory from it. Hosts can be moved or removed one at a time.
//
// SessionService lists and resets the session ledger.
//
// # Event System
//
// Services and the forwarding dispatcher publish events via EventBus for
// real-time updates to connected clients via Server-Sent Events (SSE).
package service
