package session_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/its-ME-007/adk-web-api/internal/adapters/llm"
	memstore "github.com/its-ME-007/adk-web-api/internal/adapters/storage/memory"
	"github.com/its-ME-007/adk-web-api/internal/app/session"
	"github.com/its-ME-007/adk-web-api/internal/app/tools"
	"github.com/its-ME-007/adk-web-api/internal/config"
	"github.com/its-ME-007/adk-web-api/internal/domain"
)

// overlapLLM tracks which user questions are being answered at the same
// time. Workers of one turn may overlap each other; questions from two
// different turns must never overlap on the same session.
type overlapLLM struct {
	delay time.Duration

	mu      sync.Mutex
	active  map[string]int
	overlap bool
}

func newOverlapLLM(delay time.Duration) *overlapLLM {
	return &overlapLLM{
		delay:  delay,
		active: make(map[string]int),
	}
}

func (l *overlapLLM) GenerateReply(ctx context.Context, prompt string) (string, error) {
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	question := lines[len(lines)-1]

	l.mu.Lock()
	l.active[question]++
	inFlight := 0
	for _, n := range l.active {
		if n > 0 {
			inFlight++
		}
	}
	if inFlight > 1 {
		l.overlap = true
	}
	l.mu.Unlock()

	time.Sleep(l.delay)

	l.mu.Lock()
	l.active[question]--
	l.mu.Unlock()

	return "reply to " + question, nil
}

func (l *overlapLLM) GenerateStream(ctx context.Context, prompt string) (<-chan domain.StreamChunk, error) {
	out := make(chan domain.StreamChunk, 1)
	out <- domain.StreamChunk{Text: "stream"}
	close(out)
	return out, nil
}

func newTestManager(t *testing.T, client domain.LLMClient) *session.Manager {
	t.Helper()

	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewSaveResponseTool(memstore.NewRecordStore())); err != nil {
		t.Fatalf("register save tool: %v", err)
	}
	if err := registry.Register(tools.NewIndustryInsightTool(nil)); err != nil {
		t.Fatalf("register insight tool: %v", err)
	}

	return session.NewManager(client, registry, domain.PresentVerbatim, time.Hour, config.DefaultRoster())
}

func TestResolveCreatesOnMissAndReuses(t *testing.T) {
	m := newTestManager(t, llm.NewMockLLM())

	a := m.Resolve("sess-a")
	if a == nil {
		t.Fatal("expected a session")
	}
	if got := m.Resolve("sess-a"); got != a {
		t.Fatal("expected the same session on repeat resolve")
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Len())
	}
}

func TestConcurrentResolveDistinctIDs(t *testing.T) {
	m := newTestManager(t, llm.NewMockLLM())

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Resolve(domain.SessionID(fmt.Sprintf("sess-%d", i)))
		}(i)
	}
	wg.Wait()

	if m.Len() != n {
		t.Fatalf("expected %d sessions, got %d", n, m.Len())
	}
}

func TestRemoveTearsDown(t *testing.T) {
	m := newTestManager(t, llm.NewMockLLM())

	m.Resolve("sess-a")
	m.Remove("sess-a")

	if _, err := m.Get("sess-a"); err == nil {
		t.Fatal("expected session not found after remove")
	}
}

func TestBackToBackTurnsAreSerialized(t *testing.T) {
	client := newOverlapLLM(20 * time.Millisecond)
	m := newTestManager(t, client)
	sess := m.Resolve("sess-a")

	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)

	ev1 := sess.RunTurn(ctx, "first question")
	go func() {
		defer wg.Done()
		for range ev1 {
		}
	}()

	ev2 := sess.RunTurn(ctx, "second question")
	go func() {
		defer wg.Done()
		for range ev2 {
		}
	}()

	wg.Wait()

	if client.overlap {
		t.Fatal("workers from two turns overlapped on one session")
	}
	if sess.Store.Len() == 0 {
		t.Fatal("expected context store populated after both turns")
	}
}
