package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
	"github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/clock"
	"github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/tripregistry"
)

// Manager owns every live session. A session lives until it has been idle
// for longer than the idle timeout; all of its state goes with it.
type Manager struct {
	newRegistry func() tripregistry.Registry
	clock       clock.Clock
	idleTimeout time.Duration

	mu       sync.Mutex
	sessions map[domain.SessionID]*entry

	newSessionID func() domain.SessionID
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// NewManager builds a manager. newRegistry is called once per session.
// An idleTimeout of zero keeps sessions for the lifetime of the process.
func NewManager(newRegistry func() tripregistry.Registry, clk clock.Clock, idleTimeout time.Duration) *Manager {
	return &Manager{
		newRegistry: newRegistry,
		clock:       clk,
		idleTimeout: idleTimeout,
		sessions:    make(map[domain.SessionID]*entry),
		newSessionID: func() domain.SessionID {
			return domain.SessionID(uuid.NewString())
		},
	}
}

// SetNewSessionIDForTest overrides session ID generation for deterministic tests.
// It should not be used in production code.
func (m *Manager) SetNewSessionIDForTest(fn func() domain.SessionID) {
	if fn != nil {
		m.newSessionID = fn
	}
}

// Create starts a new session with an empty registry.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.newSessionID()
	for {
		if _, taken := m.sessions[id]; !taken {
			break
		}
		id = m.newSessionID()
	}
	s := New(id, m.newRegistry(), m.clock)
	m.sessions[id] = &entry{session: s, lastSeen: m.clock.Now()}
	return s
}

// Get returns the live session with the given id and marks it as seen.
// Expired sessions are dropped and reported as missing.
func (m *Manager) Get(id domain.SessionID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	now := m.clock.Now()
	if m.expired(e, now) {
		delete(m.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.session, true
}

// Sweep drops every expired session and reports how many were dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	n := 0
	for id, e := range m.sessions {
		if m.expired(e, now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps every interval until ctx is done. onSweep, if set, receives the
// number of sessions dropped by each sweep.
func (m *Manager) Run(ctx context.Context, interval time.Duration, onSweep func(dropped int)) {
	if interval <= 0 || m.idleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := m.Sweep()
			if onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (m *Manager) expired(e *entry, now time.Time) bool {
	return m.idleTimeout > 0 && now.Sub(e.lastSeen) > m.idleTimeout
}
