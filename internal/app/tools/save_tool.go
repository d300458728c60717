package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

const SaveResponseToolName = "save_response"

// NewSaveResponseTool builds the persistence tool over whatever RecordStore
// the deployment configured. A nil store is allowed: invocations then
// degrade to a "not available" outcome instead of crashing.
func NewSaveResponseTool(store domain.RecordStore) Tool {
	return Tool{
		Name:        SaveResponseToolName,
		Description: "Writes the provided response content from a specific agent to the configured response store.",
		Args: []ArgSpec{
			{Name: "agent_name", Required: true, Description: "Name of the agent whose response is being saved."},
			{Name: "response_content", Required: true, Description: "The text content of the response to save."},
		},
		Handler: func(ctx context.Context, tctx ToolContext, args map[string]any) (string, error) {
			if store == nil {
				return "", fmt.Errorf("response storage is not available")
			}

			agentName := getString(args, "agent_name")
			content := getString(args, "response_content")

			rec := &domain.ResponseRecord{
				ID:        domain.ResponseRecordID(uuid.NewString()),
				SessionID: domain.SessionID(tctx.SessionID),
				UserID:    domain.UserID(tctx.UserID),
				AgentName: agentName,
				Content:   content,
				CreatedAt: time.Now(),
			}

			if err := store.SaveResponse(ctx, rec); err != nil {
				return "", fmt.Errorf("error saving response from %s: %w", agentName, err)
			}

			return fmt.Sprintf("Successfully saved response from %s.", agentName), nil
		},
	}
}
