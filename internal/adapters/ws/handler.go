package ws

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/its-ME-007/adk-web-api/internal/app/session"
	"github.com/its-ME-007/adk-web-api/internal/domain"
	"github.com/its-ME-007/adk-web-api/internal/observability"
)

const (
	wsReadBufferSize  = 1024
	wsWriteBufferSize = 1024
)

type Server struct {
	manager        *session.Manager
	allowedOrigins []string
}

// NewServer builds the HTTP handler:
//
//	/healthz          → liveness probe
//	/ws/{session_id}  → one websocket connection per conversation
func NewServer(manager *session.Manager, allowedOrigins []string) http.Handler {
	s := &Server{
		manager:        manager,
		allowedOrigins: allowedOrigins,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/ws/", s.handleWS)

	return chainMiddlewares(mux, withLogging)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/ws/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  wsReadBufferSize,
		WriteBufferSize: wsWriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return isOriginAllowed(r, s.allowedOrigins)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		observability.Logger().Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := s.manager.Resolve(domain.SessionID(id))
	transport := newConnTransport(conn)

	log := observability.Logger().With("session_id", id)
	log.Info("client connected")

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("client disconnected", "error", err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}

		// The turn context is deliberately detached from the request:
		// a disconnect aborts multiplexing, never the turn itself, so
		// the context store always ends up with the full turn's
		// results.
		ctx := observability.WithSessionID(context.Background(), id)
		ctx = observability.WithRequestID(ctx, uuid.NewString())

		events := sess.RunTurn(ctx, text)
		if err := NewMux(transport).Run(events); err != nil {
			// The mux already drained the turn; the connection is
			// unusable, so stop reading.
			return
		}
	}
}

// isOriginAllowed accepts every origin when no allowlist is configured.
func isOriginAllowed(r *http.Request, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, a := range allowed {
		if strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}
