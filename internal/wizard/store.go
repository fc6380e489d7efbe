package wizard

// store.go keeps wizard sessions in memory.
//
// Sessions not touched for longer than the idle timeout are removed by
// Sweep, which StartSweeper runs on a ticker until its context ends.

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("wizard session not found")

// DefaultIdleTimeout is used when NewStore is given a non-positive timeout.
const DefaultIdleTimeout = 2 * time.Hour

type entry struct {
	state    State
	lastSeen time.Time
}

// Store is a concurrency-safe in-memory session store.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
	idle     time.Duration
	now      func() time.Time
}

// NewStore creates a store that expires sessions after idle.
func NewStore(idle time.Duration) *Store {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Store{
		sessions: make(map[uuid.UUID]*entry),
		idle:     idle,
		now:      time.Now,
	}
}

// Create starts and stores a new session.
func (s *Store) Create() State {
	st := New()

	s.mu.Lock()
	s.sessions[st.ID] = &entry{state: st.Clone(), lastSeen: s.now()}
	s.mu.Unlock()

	slog.Info("wizard session created", "session_id", st.ID)
	return st
}

// Get returns a copy of the session.
func (s *Store) Get(id uuid.UUID) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	e.lastSeen = s.now()
	return e.state.Clone(), nil
}

// Update applies fn to the session under the store lock and saves the
// result. If fn fails the session is left unchanged.
func (s *Store) Update(id uuid.UUID, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	next, err := fn(e.state.Clone())
	if err != nil {
		return State{}, err
	}
	next.ID = id
	e.state = next.Clone()
	e.lastSeen = s.now()
	return next, nil
}

// Delete removes a session.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the store's timeout and
// returns how many were removed.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
// Blocks; run it in its own goroutine.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	slog.Info("session sweeper started",
		"interval", interval,
		"idle_timeout", s.idle,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Info("expired wizard sessions removed",
					"removed", n,
					"remaining", s.Len(),
				)
			}
		}
	}
}
