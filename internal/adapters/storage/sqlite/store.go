package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS agent_responses (
	id               TEXT PRIMARY KEY,
	session_id       TEXT NOT NULL,
	user_id          TEXT NOT NULL,
	agent_name       TEXT NOT NULL,
	response_content TEXT NOT NULL,
	created_at       TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_agent_responses_created_at ON agent_responses (created_at);
`

// Store is a relational record store backed by a local SQLite file.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the database at path.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required for SQLite store")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying sqlite schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResponse inserts a new row per record.
func (s *Store) SaveResponse(ctx context.Context, rec *domain.ResponseRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO agent_responses (id, session_id, user_id, agent_name, response_content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(rec.ID), string(rec.SessionID), string(rec.UserID),
		rec.AgentName, rec.Content, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite SaveResponse: %w", err)
	}
	return nil
}

// FindLatestByKeyword returns the newest row whose content contains the
// keyword.
func (s *Store) FindLatestByKeyword(ctx context.Context, keyword string) (*domain.ResponseRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, user_id, agent_name, response_content, created_at
		 FROM agent_responses
		 WHERE response_content LIKE '%' || ? || '%' COLLATE NOCASE
		 ORDER BY created_at DESC
		 LIMIT 1`,
		keyword,
	)

	var rec domain.ResponseRecord
	var id, sessionID, userID string

	err := row.Scan(&id, &sessionID, &userID, &rec.AgentName, &rec.Content, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("sqlite FindLatestByKeyword: %w", err)
	}

	rec.ID = domain.ResponseRecordID(id)
	rec.SessionID = domain.SessionID(sessionID)
	rec.UserID = domain.UserID(userID)

	return &rec, nil
}
