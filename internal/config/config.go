package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

type Config struct {
	Port string

	// StorageBackend selects the sink behind the save/lookup tools:
	// "memory", "firestore", "sqlite" or "file".
	StorageBackend string

	GCPProjectID string
	GCPLocation  string
	ModelName    string
	UseMockLLM   bool

	PresentationMode domain.PresentationMode

	SessionTTL     time.Duration
	RosterPath     string
	WatchRoster    bool
	SQLitePath     string
	ResponsesDir   string
	AllowedOrigins []string
}

// Load reads all PANEL_* env vars and builds the config.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("PANEL")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("STORAGE_BACKEND", "memory")
	v.SetDefault("GCP_PROJECT", "")
	v.SetDefault("GCP_LOCATION", "us-central1")
	v.SetDefault("MODEL_NAME", "gemini-2.0-flash-exp")
	v.SetDefault("USE_MOCK_LLM", false)
	v.SetDefault("PRESENTATION_MODE", string(domain.PresentVerbatim))
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("ROSTER_PATH", "")
	v.SetDefault("WATCH_ROSTER", false)
	v.SetDefault("SQLITE_PATH", "panel.db")
	v.SetDefault("RESPONSES_DIR", "responses")
	v.SetDefault("ALLOWED_ORIGINS", "")

	cfg := &Config{
		Port: v.GetString("PORT"),

		StorageBackend: v.GetString("STORAGE_BACKEND"),

		GCPProjectID: v.GetString("GCP_PROJECT"),
		GCPLocation:  v.GetString("GCP_LOCATION"),
		ModelName:    v.GetString("MODEL_NAME"),
		UseMockLLM:   v.GetBool("USE_MOCK_LLM"),

		PresentationMode: parsePresentationMode(v.GetString("PRESENTATION_MODE")),

		SessionTTL:   v.GetDuration("SESSION_TTL"),
		RosterPath:   v.GetString("ROSTER_PATH"),
		WatchRoster:  v.GetBool("WATCH_ROSTER"),
		SQLitePath:   v.GetString("SQLITE_PATH"),
		ResponsesDir: v.GetString("RESPONSES_DIR"),
	}

	if origins := v.GetString("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	// Minimal validation: Firestore needs a project, Vertex needs both.
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("PANEL_GCP_PROJECT must be set for the firestore storage backend")
	}
	if !cfg.UseMockLLM && cfg.GCPProjectID == "" {
		log.Println("[CONFIG] no PANEL_GCP_PROJECT set, falling back to mock LLM")
		cfg.UseMockLLM = true
	}

	return cfg
}

func parsePresentationMode(s string) domain.PresentationMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "synthesis", "synthesize":
		return domain.PresentSynthesis
	default:
		return domain.PresentVerbatim
	}
}
