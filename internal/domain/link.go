package domain

import (
	"crypto/sha256"
	"fmt"
)

// Link is a directed connection between two connect points.
type Link struct {
	Src ConnectPoint `json:"src"`
	Dst ConnectPoint `json:"dst"`
}

// NewLink creates a directed link.
func NewLink(src, dst ConnectPoint) Link {
	return Link{Src: src, Dst: dst}
}

// Reverse returns the link in the opposite direction.
func (l Link) Reverse() Link {
	return Link{Src: l.Dst, Dst: l.Src}
}

// ID returns a deterministic identifier for the link. Both directions of the
// same cable share an ID.
func (l Link) ID() string {
	a, b := l.Src.String(), l.Dst.String()
	if a > b {
		a, b = b, a
	}
	hash := sha256.Sum256([]byte(a + "-" + b))
	return fmt.Sprintf("%x", hash[:8])
}

func (l Link) String() string {
	return fmt.Sprintf("%s->%s", l.Src, l.Dst)
}
