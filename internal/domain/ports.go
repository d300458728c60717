package domain

import (
	"context"
	"errors"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrAllWorkersFailed = errors.New("all workers failed")
)

// StreamChunk is one fragment of a streamed generation. The producing
// channel is closed after the terminal chunk; a chunk with Interrupted or a
// non-nil Err is terminal.
type StreamChunk struct {
	Text        string
	Interrupted bool
	Err         error
}

// LLMClient defines how the orchestration core talks to a generation
// backend.
type LLMClient interface {
	// GenerateReply returns the full text for a prompt in one call.
	GenerateReply(ctx context.Context, prompt string) (string, error)

	// GenerateStream returns a lazy sequence of text fragments for a
	// prompt. The channel is closed once the turn is complete or
	// interrupted.
	GenerateStream(ctx context.Context, prompt string) (<-chan StreamChunk, error)
}

// RecordStore is the persistence sink behind the save and lookup tools.
type RecordStore interface {
	// SaveResponse appends a new record. It never overwrites.
	SaveResponse(ctx context.Context, rec *ResponseRecord) error

	// FindLatestByKeyword returns the most recent record whose content
	// contains the keyword, or ErrRecordNotFound.
	FindLatestByKeyword(ctx context.Context, keyword string) (*ResponseRecord, error)
}
