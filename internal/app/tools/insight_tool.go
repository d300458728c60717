package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

const IndustryInsightToolName = "get_industry_insight"

// NewIndustryInsightTool builds the keyword lookup tool over the configured
// RecordStore. It returns the most recent saved response matching the
// keyword.
func NewIndustryInsightTool(store domain.RecordStore) Tool {
	return Tool{
		Name:        IndustryInsightToolName,
		Description: "Looks up the most recent saved response matching a keyword.",
		Args: []ArgSpec{
			{Name: "keyword", Required: true, Description: "Keyword to search saved responses for."},
		},
		Handler: func(ctx context.Context, tctx ToolContext, args map[string]any) (string, error) {
			if store == nil {
				return "", fmt.Errorf("response storage is not available")
			}

			keyword := getString(args, "keyword")

			rec, err := store.FindLatestByKeyword(ctx, keyword)
			if err != nil {
				if errors.Is(err, domain.ErrRecordNotFound) {
					return fmt.Sprintf("No saved insight found for %q.", keyword), nil
				}
				return "", fmt.Errorf("error looking up insight for %q: %w", keyword, err)
			}

			return fmt.Sprintf("Insight from %s (saved %s):\n%s",
				rec.AgentName, rec.CreatedAt.Format("2006-01-02 15:04"), rec.Content), nil
		},
	}
}
