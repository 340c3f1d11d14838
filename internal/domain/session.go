package domain

import (
	"fmt"
	"time"
)

// SessionKey identifies an ordered host pair. (a, b) and (b, a) are distinct
// keys.
type SessionKey string

// NewSessionKey concatenates the two host identifiers in order.
func NewSessionKey(src, dst HostID) SessionKey {
	return SessionKey(src.String() + "-" + dst.String())
}

// Session records that forwarding state was installed for an ordered host
// pair. Sessions are never updated after creation.
type Session struct {
	Src       HostID    `json:"src"`
	Dst       HostID    `json:"dst"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession creates a session stamped with the given time.
func NewSession(src, dst HostID, now time.Time) Session {
	return Session{Src: src, Dst: dst, CreatedAt: now}
}

// Key returns the ledger key of the session.
func (s Session) Key() SessionKey {
	return NewSessionKey(s.Src, s.Dst)
}

func (s Session) String() string {
	return fmt.Sprintf("--- %s from %s to %s", s.CreatedAt.Format(time.RFC1123), s.Src, s.Dst)
}
