package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

// Source provides the current district.
type Source interface {
	Snapshot(ctx context.Context) (*district.Snapshot, error)
}

// Manager keys sessions by id and keeps them in step with the district.
type Manager struct {
	deps   *Deps
	source Source

	mu       sync.RWMutex
	snap     *district.Snapshot
	sessions map[string]*Session
}

// NewManager creates a manager. source may be nil, in which case the
// district is only ever set through Replace.
func NewManager(deps Deps, source Source) *Manager {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	deps.Logger = deps.Logger.Named("session")
	return &Manager{
		deps:     &deps,
		source:   source,
		snap:     &district.Snapshot{Grid: district.DefaultGrid},
		sessions: make(map[string]*Session),
	}
}

// Create opens a session in lang.
func (m *Manager) Create(lang string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	s := newSession(id, lang, m.deps, m.snap, m.Refresh)
	m.sessions[id] = s
	if mt := m.deps.Metrics; mt != nil {
		mt.SessionsActive.Set(float64(len(m.sessions)))
	}
	m.deps.Logger.Info("session opened", logging.String("session", id), logging.String("language", lang))
	return s
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return s, nil
}

// Close drops the session with id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	delete(m.sessions, id)
	if mt := m.deps.Metrics; mt != nil {
		mt.SessionsActive.Set(float64(len(m.sessions)))
	}
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Snapshot returns the current district.
func (m *Manager) Snapshot() *district.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Refresh reloads the district from the source and hands it to every
// session.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.source == nil {
		return nil
	}
	snap, err := m.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("loading district: %w", err)
	}
	m.Replace(snap)
	return nil
}

// Replace installs snap as the current district.
func (m *Manager) Replace(snap *district.Snapshot) {
	m.mu.Lock()
	m.snap = snap
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.update(snap)
	}
	m.deps.Logger.Debug("district replaced",
		logging.Int("businesses", len(snap.Businesses)),
		logging.Int("sessions", len(sessions)),
	)
}

// Prune closes sessions idle for longer than maxIdle and returns how many
// were closed.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if m.Close(id) == nil {
			n++
		}
	}
	if n > 0 {
		m.deps.Logger.Info("pruned idle sessions", logging.Int("count", n))
	}
	return n
}

// RunPruner prunes idle sessions every interval until ctx is cancelled.
func (m *Manager) RunPruner(ctx context.Context, interval, maxIdle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Prune(maxIdle)
		}
	}
}
