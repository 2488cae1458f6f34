// internal/domain/bowl/service.go
package bowl

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/pkg/keylock"
)

// ErrSessionRequired is returned when no session id is supplied
var ErrSessionRequired = errors.New("session ID required")

// Service keeps one bowl configuration per session
type Service struct {
	catalog catalog.Store
	states  StateStore
	locks   *keylock.Locker
	logger  logrus.FieldLogger
}

// NewService creates a new bowl service
func NewService(store catalog.Store, states StateStore, logger logrus.FieldLogger) *Service {
	return &Service{
		catalog: store,
		states:  states,
		locks:   keylock.New(),
		logger:  logger,
	}
}

// Catalog returns the catalog the builders resolve against
func (s *Service) Catalog() catalog.Store {
	return s.catalog
}

// Get returns the session's configuration, fresh when none is stored
func (s *Service) Get(ctx context.Context, sessionID string) (*Builder, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()
	return s.load(ctx, sessionID)
}

// Update runs transition against the session's builder and saves the result
// when the transition was accepted. A rejected transition leaves the stored
// configuration untouched and reports false.
func (s *Service) Update(ctx context.Context, sessionID string, transition func(b *Builder) bool) (*Builder, bool, error) {
	if sessionID == "" {
		return nil, false, ErrSessionRequired
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	b, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if !transition(b) {
		return b, false, nil
	}
	if err := s.states.Save(ctx, sessionID, b.State()); err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Submit hands the session's finished bowl to sink. The stored configuration
// is cleared only when the sink accepts the bowl; if it cannot be deleted a
// fresh configuration is saved over it.
func (s *Service) Submit(ctx context.Context, sessionID string, sink Sink) (*Builder, bool, error) {
	if sessionID == "" {
		return nil, false, ErrSessionRequired
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	b, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	ok, err := b.Submit(sink)
	if err != nil || !ok {
		return b, false, err
	}
	if err := s.states.Delete(ctx, sessionID); err != nil {
		logger := s.logger.WithError(err).WithField("session_id", sessionID)
		// A stored summary would let a retried submit add the bowl twice.
		if err := s.states.Save(ctx, sessionID, NewBuilder(s.catalog).State()); err != nil {
			logger.WithField("fallback_error", err).Error("Failed to clear submitted bowl")
		} else {
			logger.Warn("Failed to delete submitted bowl, stored a fresh one")
		}
	}
	return b, true, nil
}

// Reset discards the session's configuration
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.states.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to reset bowl: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Builder, error) {
	st, err := s.states.Load(ctx, sessionID)
	if errors.Is(err, ErrInvalidState) {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Discarding unreadable bowl state")
		return NewBuilder(s.catalog), nil
	} else if err != nil {
		return nil, err
	}
	if st == nil {
		return NewBuilder(s.catalog), nil
	}

	b, err := Restore(s.catalog, *st)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Discarding inconsistent bowl state")
		return NewBuilder(s.catalog), nil
	}
	return b, nil
}
