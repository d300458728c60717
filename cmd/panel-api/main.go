package main

import (
	"context"
	"log"
	"net/http"

	"github.com/its-ME-007/adk-web-api/internal/adapters/llm"
	filestore "github.com/its-ME-007/adk-web-api/internal/adapters/storage/file"
	firestorestore "github.com/its-ME-007/adk-web-api/internal/adapters/storage/firestore"
	memstore "github.com/its-ME-007/adk-web-api/internal/adapters/storage/memory"
	sqlitestore "github.com/its-ME-007/adk-web-api/internal/adapters/storage/sqlite"
	"github.com/its-ME-007/adk-web-api/internal/adapters/ws"
	"github.com/its-ME-007/adk-web-api/internal/app/session"
	"github.com/its-ME-007/adk-web-api/internal/app/tools"
	"github.com/its-ME-007/adk-web-api/internal/config"
	"github.com/its-ME-007/adk-web-api/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// LLM: mock or Vertex by config (mock is the default without a GCP
	// project, useful for dev).
	var (
		llmClient domain.LLMClient
		err       error
	)

	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Println("[LLM] Using Vertex LLM client")
		llmClient, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Vertex LLM client: %v", err)
		}
	}

	// Response store: the sink behind the save/insight tools. "none"
	// leaves the tools degraded to a "not available" outcome.
	var recordStore domain.RecordStore

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		recordStore, err = firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

	case "sqlite":
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.SQLitePath)
		recordStore, err = sqlitestore.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}

	case "file":
		log.Printf("[STORE] Using file storage (dir=%s)", cfg.ResponsesDir)
		recordStore, err = filestore.NewStore(cfg.ResponsesDir)
		if err != nil {
			log.Fatalf("error initializing file store: %v", err)
		}

	case "none":
		log.Println("[STORE] No response storage configured, save/insight tools degraded")

	default:
		log.Println("[STORE] Using in-memory storage")
		recordStore = memstore.NewRecordStore()
	}

	// Tool registry
	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewSaveResponseTool(recordStore)); err != nil {
		log.Fatalf("error registering save tool: %v", err)
	}
	if err := registry.Register(tools.NewIndustryInsightTool(recordStore)); err != nil {
		log.Fatalf("error registering insight tool: %v", err)
	}

	// Panel roster
	roster, err := config.LoadRoster(cfg.RosterPath)
	if err != nil {
		log.Fatalf("error loading roster: %v", err)
	}
	log.Printf("[PANEL] %d workers, presentation=%s", len(roster.Workers), cfg.PresentationMode)

	// Sessions
	manager := session.NewManager(llmClient, registry, cfg.PresentationMode, cfg.SessionTTL, roster)
	manager.StartJanitor(ctx)

	if cfg.WatchRoster && cfg.RosterPath != "" {
		if err := config.WatchRoster(ctx, cfg.RosterPath, manager.SetRoster); err != nil {
			log.Fatalf("error watching roster: %v", err)
		}
	}

	// HTTP server
	handler := ws.NewServer(manager, cfg.AllowedOrigins)

	addr := ":" + cfg.Port
	log.Println("Panel API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
