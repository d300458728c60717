package session

import (
	"context"
	"sync"
	"time"

	"github.com/its-ME-007/adk-web-api/internal/app/panel"
	"github.com/its-ME-007/adk-web-api/internal/app/tools"
	"github.com/its-ME-007/adk-web-api/internal/config"
	"github.com/its-ME-007/adk-web-api/internal/domain"
	"github.com/its-ME-007/adk-web-api/internal/observability"
)

// Manager is the process-wide session registry: create-on-miss keyed by the
// client-supplied session id, expired by an idle TTL. A disconnect does not
// discard the session immediately, so a quick reconnect with the same id
// still sees the context store of every completed turn.
type Manager struct {
	llm      domain.LLMClient
	registry *tools.Registry
	mode     domain.PresentationMode
	ttl      time.Duration

	mu       sync.RWMutex
	sessions map[domain.SessionID]*Session

	rosterMu sync.RWMutex
	workers  []panel.Worker
}

func NewManager(
	llm domain.LLMClient,
	registry *tools.Registry,
	mode domain.PresentationMode,
	ttl time.Duration,
	roster config.Roster,
) *Manager {
	return &Manager{
		llm:      llm,
		registry: registry,
		mode:     mode,
		ttl:      ttl,
		sessions: make(map[domain.SessionID]*Session),
		workers:  WorkersFromRoster(roster),
	}
}

// SetRoster swaps the panel used for sessions created from now on. Existing
// sessions keep the roster they started with.
func (m *Manager) SetRoster(roster config.Roster) {
	workers := WorkersFromRoster(roster)

	m.rosterMu.Lock()
	defer m.rosterMu.Unlock()
	m.workers = workers
}

func (m *Manager) currentWorkers() []panel.Worker {
	m.rosterMu.RLock()
	defer m.rosterMu.RUnlock()
	return m.workers
}

// Resolve returns the session for id, creating it on first contact. Safe
// under concurrent connects for distinct ids.
func (m *Manager) Resolve(id domain.SessionID) *Session {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		sess.touch()
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check: another connect may have won the race.
	if sess, ok := m.sessions[id]; ok {
		sess.touch()
		return sess
	}

	store := domain.NewContextStore()
	group := panel.NewGroup(m.currentWorkers(), m.llm)

	sess = &Session{
		ID:        id,
		UserID:    domain.UserID(id),
		CreatedAt: time.Now(),
		Store:     store,
		orch:      panel.NewOrchestrator(group, m.llm, m.registry, store, m.mode, id, domain.UserID(id)),
	}
	sess.touch()
	m.sessions[id] = sess

	observability.Logger().Info("session created", "session_id", id)
	return sess
}

// Get returns an existing session without creating one.
func (m *Manager) Get(id domain.SessionID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Remove tears a session down explicitly.
func (m *Manager) Remove(id domain.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// StartJanitor expires sessions idle past the TTL. It returns immediately;
// the sweep goroutine stops when ctx is done.
func (m *Manager) StartJanitor(ctx context.Context) {
	if m.ttl <= 0 {
		return
	}

	interval := m.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			observability.Logger().Info("session expired", "session_id", id)
		}
	}
}

// WorkersFromRoster converts roster entries into immutable worker
// descriptors.
func WorkersFromRoster(roster config.Roster) []panel.Worker {
	workers := make([]panel.Worker, 0, len(roster.Workers))
	for _, w := range roster.Workers {
		workers = append(workers, panel.Worker{
			Name:        w.Name,
			OutputKey:   domain.OutputKey(w.OutputKey),
			Instruction: w.Instruction,
			Aliases:     w.Aliases,
		})
	}
	return workers
}
