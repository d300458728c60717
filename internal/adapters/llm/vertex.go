package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates an LLMClient based on Vertex AI (Gemini).
func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("project and location must be set for the Vertex client")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

func (v *VertexClient) generationConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	topP := float32(0.9)

	return &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: 8192,
	}
}

// GenerateReply implements domain.LLMClient using Vertex AI.
func (v *VertexClient) GenerateReply(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, v.generationConfig())
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("vertex returned empty text")
	}

	return text, nil
}

// GenerateStream yields the model's answer one fragment at a time. A
// canceled context surfaces as an Interrupted terminal chunk, matching how
// the orchestrator distinguishes interruption from completion.
func (v *VertexClient) GenerateStream(ctx context.Context, prompt string) (<-chan domain.StreamChunk, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	out := make(chan domain.StreamChunk, 8)

	go func() {
		defer close(out)

		for res, err := range v.client.Models.GenerateContentStream(ctx, v.modelName, contents, v.generationConfig()) {
			if err != nil {
				if ctx.Err() != nil {
					out <- domain.StreamChunk{Interrupted: true}
					return
				}
				out <- domain.StreamChunk{Err: fmt.Errorf("vertex stream: %w", err)}
				return
			}
			if text := res.Text(); text != "" {
				out <- domain.StreamChunk{Text: text}
			}
		}
	}()

	return out, nil
}
