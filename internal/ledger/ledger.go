// Package ledger records which ordered host pairs already had forwarding
// state installed, so that repeated packet-ins for the same pair do not
// trigger path installation again.
package ledger

import (
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"fabricfwd/internal/domain"
)

// Result is the outcome of RecordIfAbsent.
type Result int

const (
	// Inserted means a new session was recorded.
	Inserted Result = iota
	// AlreadyPresent means the ordered pair was recorded before; nothing
	// changed.
	AlreadyPresent
)

func (r Result) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case AlreadyPresent:
		return "already_present"
	default:
		return "unknown"
	}
}

// Ledger is an in-memory set of sessions keyed by ordered host pair. It
// grows for the lifetime of the process; only Reset shrinks it.
//
// Sessions are not symmetric: (a, b) and (b, a) are recorded separately.
type Ledger struct {
	// mu is held shared by writers and exclusively by Reset, so a reset
	// counts exactly the sessions it drops.
	mu    sync.RWMutex
	items *gocache.Cache
	now   func() time.Time
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		// no default expiry and no janitor: sessions never expire
		items: gocache.New(gocache.NoExpiration, 0),
		now:   time.Now,
	}
}

// RecordIfAbsent records the session (src, dst) unless it already exists.
// The check and the insert are a single atomic step.
func (l *Ledger) RecordIfAbsent(src, dst domain.HostID) Result {
	s := domain.NewSession(src, dst, l.now())
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.items.Add(string(s.Key()), s, gocache.NoExpiration); err != nil {
		return AlreadyPresent
	}
	return Inserted
}

// Contains reports whether (src, dst) has been recorded.
func (l *Ledger) Contains(src, dst domain.HostID) bool {
	_, ok := l.items.Get(string(domain.NewSessionKey(src, dst)))
	return ok
}

// Reset drops every session and returns how many were dropped. Calling it
// on an empty ledger is a no-op.
func (l *Ledger) Reset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.items.ItemCount()
	l.items.Flush()
	return n
}

// Len returns the number of recorded sessions.
func (l *Ledger) Len() int {
	return l.items.ItemCount()
}

// Sessions returns a copy of all sessions, oldest first.
func (l *Ledger) Sessions() []domain.Session {
	items := l.items.Items()
	sessions := make([]domain.Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(domain.Session))
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].Key() < sessions[j].Key()
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}

// Dump renders the ledger for operators, one session per line.
func (l *Ledger) Dump() string {
	var b strings.Builder
	for _, s := range l.Sessions() {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}
