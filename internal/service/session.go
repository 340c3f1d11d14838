package service

import (
	"go.uber.org/zap"

	"fabricfwd/internal/domain"
	"fabricfwd/internal/ledger"
)

// SessionService exposes the session ledger to operators.
type SessionService struct {
	ledger   *ledger.Ledger
	eventBus *EventBus
	logger   *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(l *ledger.Ledger, eventBus *EventBus, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{ledger: l, eventBus: eventBus, logger: logger}
}

// List returns every recorded session, oldest first.
func (s *SessionService) List() []domain.Session {
	return s.ledger.Sessions()
}

// Dump returns the operator listing, one session per line.
func (s *SessionService) Dump() string {
	return s.ledger.Dump()
}

// Count returns the number of recorded sessions.
func (s *SessionService) Count() int {
	return s.ledger.Len()
}

// Reset clears the ledger so every host pair is evaluated again on its next
// frame. It returns how many sessions were dropped.
func (s *SessionService) Reset() int {
	n := s.ledger.Reset()
	s.logger.Info("Sessions reset", zap.Int("dropped", n))
	s.eventBus.Publish(Event{Type: EventSessionsReset, Payload: map[string]int{"dropped": n}})
	return n
}
