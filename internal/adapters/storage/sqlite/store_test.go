package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(context.Background(), filepath.Join(t.TempDir(), "responses.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndFindLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	older := &domain.ResponseRecord{
		ID: "rec-1", SessionID: "sess-1", UserID: "user-1",
		AgentName: "CEO", Content: "first take on tariffs", CreatedAt: base,
	}
	newer := &domain.ResponseRecord{
		ID: "rec-2", SessionID: "sess-1", UserID: "user-1",
		AgentName: "Specialist", Content: "second take on Tariffs", CreatedAt: base.Add(time.Minute),
	}

	if err := s.SaveResponse(ctx, older); err != nil {
		t.Fatalf("save older: %v", err)
	}
	if err := s.SaveResponse(ctx, newer); err != nil {
		t.Fatalf("save newer: %v", err)
	}

	rec, err := s.FindLatestByKeyword(ctx, "tariffs")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.ID != "rec-2" {
		t.Fatalf("expected newest record rec-2, got %s", rec.ID)
	}
	if rec.AgentName != "Specialist" {
		t.Fatalf("expected Specialist, got %s", rec.AgentName)
	}
	if rec.SessionID != "sess-1" || rec.UserID != "user-1" {
		t.Fatalf("attribution lost: %s / %s", rec.SessionID, rec.UserID)
	}
}

func TestFindLatestNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindLatestByKeyword(context.Background(), "anything")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &domain.ResponseRecord{
		ID: "rec-1", SessionID: "sess-1", UserID: "user-1",
		AgentName: "CEO", Content: "content", CreatedAt: time.Now(),
	}

	if err := s.SaveResponse(ctx, rec); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.SaveResponse(ctx, rec); err == nil {
		t.Fatal("expected primary key violation on duplicate id")
	}
}
