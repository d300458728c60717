package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/its-ME-007/adk-web-api/internal/adapters/storage/memory"
)

func testToolContext() ToolContext {
	return ToolContext{
		UserID:    "user-1",
		SessionID: "sess-1",
		RequestID: "req-1",
	}
}

func TestRegistry_UnknownToolDegrades(t *testing.T) {
	r := NewRegistry()

	out := r.Invoke(context.Background(), testToolContext(), "no_such_tool", nil)

	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "unknown tool")
}

func TestRegistry_RejectsDuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	tool := NewSaveResponseTool(memstore.NewRecordStore())

	require.NoError(t, r.Register(tool))
	require.Error(t, r.Register(tool))
}

func TestRegistry_ValidationFailureDoesNotRunHandler(t *testing.T) {
	records := memstore.NewRecordStore()

	r := NewRegistry()
	require.NoError(t, r.Register(NewSaveResponseTool(records)))

	out := r.Invoke(context.Background(), testToolContext(), SaveResponseToolName, map[string]any{
		"agent_name": "CEO",
		// response_content missing
	})

	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "response_content")
	assert.Zero(t, records.Len(), "validation failure must not write")
}

func TestRegistry_NonStringArgumentRejected(t *testing.T) {
	records := memstore.NewRecordStore()

	r := NewRegistry()
	require.NoError(t, r.Register(NewSaveResponseTool(records)))

	out := r.Invoke(context.Background(), testToolContext(), SaveResponseToolName, map[string]any{
		"agent_name":       42,
		"response_content": "text",
	})

	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "non-empty string")
	assert.Zero(t, records.Len())
}

func TestSaveResponse_WritesRecord(t *testing.T) {
	records := memstore.NewRecordStore()

	r := NewRegistry()
	require.NoError(t, r.Register(NewSaveResponseTool(records)))

	out := r.Invoke(context.Background(), testToolContext(), SaveResponseToolName, map[string]any{
		"agent_name":       "CEO",
		"response_content": "expand into adjacent markets",
	})

	require.True(t, out.OK, out.Message)
	assert.Contains(t, out.Message, "Successfully saved response from CEO")
	require.Equal(t, 1, records.Len())

	rec, err := records.FindLatestByKeyword(context.Background(), "adjacent")
	require.NoError(t, err)
	assert.Equal(t, "CEO", rec.AgentName)
	assert.Equal(t, "sess-1", string(rec.SessionID))
	assert.Equal(t, "user-1", string(rec.UserID))
}

func TestSaveResponse_RepeatedSavesAppend(t *testing.T) {
	records := memstore.NewRecordStore()

	r := NewRegistry()
	require.NoError(t, r.Register(NewSaveResponseTool(records)))

	args := map[string]any{
		"agent_name":       "Specialist",
		"response_content": "use fly ash bricks",
	}
	require.True(t, r.Invoke(context.Background(), testToolContext(), SaveResponseToolName, args).OK)
	require.True(t, r.Invoke(context.Background(), testToolContext(), SaveResponseToolName, args).OK)

	assert.Equal(t, 2, records.Len(), "each save is its own record")
}

func TestSaveResponse_NilStoreDegrades(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewSaveResponseTool(nil)))

	out := r.Invoke(context.Background(), testToolContext(), SaveResponseToolName, map[string]any{
		"agent_name":       "CEO",
		"response_content": "text",
	})

	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "not available")
}

func TestIndustryInsight_NotFoundIsAnAnswer(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewIndustryInsightTool(memstore.NewRecordStore())))

	out := r.Invoke(context.Background(), testToolContext(), IndustryInsightToolName, map[string]any{
		"keyword": "kilns",
	})

	require.True(t, out.OK, "an empty result is a normal outcome, not a failure")
	assert.Contains(t, out.Message, `No saved insight found for "kilns"`)
}

func TestIndustryInsight_ReturnsLatestMatch(t *testing.T) {
	records := memstore.NewRecordStore()

	r := NewRegistry()
	require.NoError(t, r.Register(NewSaveResponseTool(records)))
	require.NoError(t, r.Register(NewIndustryInsightTool(records)))

	require.True(t, r.Invoke(context.Background(), testToolContext(), SaveResponseToolName, map[string]any{
		"agent_name":       "Specialist",
		"response_content": "kilns need refractory lining",
	}).OK)

	out := r.Invoke(context.Background(), testToolContext(), IndustryInsightToolName, map[string]any{
		"keyword": "kilns",
	})

	require.True(t, out.OK, out.Message)
	assert.Contains(t, out.Message, "Insight from Specialist")
	assert.Contains(t, out.Message, "refractory lining")
}
