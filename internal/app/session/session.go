package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/its-ME-007/adk-web-api/internal/app/panel"
	"github.com/its-ME-007/adk-web-api/internal/domain"
)

// Session owns one context store and one orchestrator for a logical
// conversation. The session id is client-chosen and doubles as the user
// identity for persistence attribution.
type Session struct {
	ID        domain.SessionID
	UserID    domain.UserID
	CreatedAt time.Time

	Store *domain.ContextStore

	orch *panel.Orchestrator

	// turnMu serializes turns: a message arriving while a turn is in
	// flight waits here instead of interleaving with it.
	turnMu   sync.Mutex
	lastSeen atomic.Int64
}

// RunTurn queues one turn for this session and returns its event stream.
// Turn N+1 does not start until turn N's stream has been closed. The caller
// must drain the returned channel.
func (s *Session) RunTurn(ctx context.Context, userText string) <-chan domain.TurnEvent {
	s.touch()

	out := make(chan domain.TurnEvent)

	go func() {
		s.turnMu.Lock()
		defer s.turnMu.Unlock()
		defer close(out)

		for ev := range s.orch.RunTurn(ctx, userText) {
			out <- ev
		}
		s.touch()
	}()

	return out
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}
