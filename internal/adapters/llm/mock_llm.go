package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

// MockLLM is a deterministic client for local mode and tests.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateReply(ctx context.Context, prompt string) (string, error) {
	// Echo the last prompt line so callers can tell responses apart.
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	last := lines[len(lines)-1]
	return fmt.Sprintf("Mock perspective on %q: this is a locally generated placeholder answer.", last), nil
}

func (m *MockLLM) GenerateStream(ctx context.Context, prompt string) (<-chan domain.StreamChunk, error) {
	reply, err := m.GenerateReply(ctx, prompt)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.StreamChunk, 8)
	go func() {
		defer close(out)

		for _, word := range strings.SplitAfter(reply, " ") {
			select {
			case <-ctx.Done():
				out <- domain.StreamChunk{Interrupted: true}
				return
			case out <- domain.StreamChunk{Text: word}:
			}
		}
	}()
	return out, nil
}
