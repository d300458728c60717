package ws_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/its-ME-007/adk-web-api/internal/adapters/llm"
	memstore "github.com/its-ME-007/adk-web-api/internal/adapters/storage/memory"
	"github.com/its-ME-007/adk-web-api/internal/adapters/ws"
	"github.com/its-ME-007/adk-web-api/internal/app/session"
	"github.com/its-ME-007/adk-web-api/internal/app/tools"
	"github.com/its-ME-007/adk-web-api/internal/config"
	"github.com/its-ME-007/adk-web-api/internal/domain"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	llmClient := llm.NewMockLLM()
	records := memstore.NewRecordStore()

	registry := tools.NewRegistry()
	require.NoError(t, registry.Register(tools.NewSaveResponseTool(records)))
	require.NoError(t, registry.Register(tools.NewIndustryInsightTool(records)))

	manager := session.NewManager(llmClient, registry, domain.PresentVerbatim, time.Hour, config.DefaultRoster())

	return ws.NewServer(manager, nil)
}

func TestHealthz(t *testing.T) {
	srv := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestWebSocketTurn(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/test-session"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("how do I set up a brick kiln?")))

	var (
		messages  []string
		terminals int
	)
	for terminals == 0 {
		var f ws.Frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Message != "" {
			messages = append(messages, f.Message)
		}
		if f.TurnComplete {
			terminals++
		}
	}

	require.NotEmpty(t, messages)
	joined := strings.Join(messages, "")
	assert.Contains(t, joined, "CEO perspective:")
	assert.Contains(t, joined, "Specialist perspective:")
	assert.Equal(t, 1, terminals)

	// Second turn on the same connection: save a buffered response.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("save the CEO response")))

	var outcome string
	for {
		var f ws.Frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Message != "" {
			outcome += f.Message
		}
		if f.TurnComplete {
			break
		}
	}
	assert.Contains(t, outcome, "Successfully saved response from CEO")
}
