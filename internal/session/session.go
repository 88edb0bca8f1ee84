// Package session owns the in-memory financial aggregate for each
// signed-in identity and keeps it synchronized with storage through
// debounced merge writes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/10543610-ai/WealthFlow-AI/internal/common"
	"github.com/10543610-ai/WealthFlow-AI/internal/interfaces"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
	"github.com/10543610-ai/WealthFlow-AI/internal/storage"
)

// State is the lifecycle of a session.
type State string

const (
	// StateLoading means the aggregate is being read from storage.
	StateLoading State = "loading"
	// StateReady means the aggregate is live and accepting mutations.
	StateReady State = "ready"
	// StateClosed means the session was signed out.
	StateClosed State = "closed"
)

// ErrSessionClosed is returned for operations on a signed-out session.
var ErrSessionClosed = errors.New("session closed")

// Session holds one identity's aggregate. All reads and mutations go
// through the session so the in-memory state is the single source of
// truth while signed in; storage trails it by at most the debounce
// window.
type Session struct {
	userID string

	mu    sync.Mutex
	state State
	agg   *models.Aggregate
	seq   uint64
	sched *writeScheduler
}

// UserID returns the owning identity.
func (s *Session) UserID() string { return s.userID }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a deep copy of the aggregate. Callers may read and
// serialize it freely without holding the session lock.
func (s *Session) Snapshot() (*models.Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ErrSessionClosed
	}
	return s.agg.Clone(), nil
}

// Update applies fn to the aggregate under the session lock and
// schedules a debounced write. fn returning an error leaves the
// aggregate untouched only if fn itself did not mutate it; mutating
// handlers therefore validate before touching state.
func (s *Session) Update(fn func(agg *models.Aggregate) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrSessionClosed
	}
	if err := fn(s.agg); err != nil {
		return err
	}
	s.seq++
	s.sched.schedule(s.agg, s.seq)
	return nil
}

// Flush writes pending state immediately. Used at graceful shutdown so
// the debounce window does not drop the last edits of every session.
func (s *Session) Flush() {
	s.mu.Lock()
	sched := s.sched
	s.mu.Unlock()
	if sched != nil {
		sched.Flush()
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
	if s.sched != nil {
		s.sched.Stop()
	}
}

// Manager creates and tracks sessions, one per signed-in identity.
type Manager struct {
	store    interfaces.AggregateStore
	logger   *common.Logger
	debounce time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager flushing through store with the
// configured debounce window.
func NewManager(store interfaces.AggregateStore, logger *common.Logger, debounce time.Duration) *Manager {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &Manager{
		store:    store,
		logger:   logger,
		debounce: debounce,
		sessions: make(map[string]*Session),
	}
}

// SignIn loads (or seeds) the identity's aggregate and returns a ready
// session. Signing in an identity that already has a session replaces
// it: the old session is closed and its pending write abandoned, so a
// stale flush can never land after the reload.
func (m *Manager) SignIn(ctx context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	if old, ok := m.sessions[userID]; ok {
		old.close()
		delete(m.sessions, userID)
	}
	s := &Session{
		userID: userID,
		state:  StateLoading,
		sched:  newWriteScheduler(m.store, m.logger, userID, m.debounce),
	}
	m.sessions[userID] = s
	m.mu.Unlock()

	seeded := false
	agg, err := m.store.Read(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		// First sign-in: seed the demonstration dataset and persist it
		// so the identity's document exists from day one.
		agg = models.SampleAggregate()
		seeded = true
		m.logger.Info().Str("user_id", userID).Msg("New identity, seeding sample data")
	default:
		m.mu.Lock()
		delete(m.sessions, userID)
		m.mu.Unlock()
		s.close()
		return nil, fmt.Errorf("failed to load aggregate: %w", err)
	}

	s.mu.Lock()
	s.agg = agg
	s.state = StateReady
	if seeded {
		s.seq++
		s.sched.schedule(s.agg, s.seq)
	}
	s.mu.Unlock()

	m.logger.Info().Str("user_id", userID).Msg("Session ready")
	return s, nil
}

// Get returns the live session for userID, or nil when signed out.
func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// SignOut closes the identity's session. Any write still inside the
// debounce window is abandoned, matching the storage document to the
// last completed flush.
func (m *Manager) SignOut(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()

	if ok {
		s.close()
		m.logger.Info().Str("user_id", userID).Msg("Session closed")
	}
}

// FlushAll synchronously flushes every live session. Called on
// graceful shutdown.
func (m *Manager) FlushAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Flush()
	}
}
