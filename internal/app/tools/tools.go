package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/its-ME-007/adk-web-api/internal/observability"
)

// ToolContext brings metadata of the call to the tool.
type ToolContext struct {
	UserID    string
	SessionID string
	RequestID string
}

// ArgSpec declares one argument of a tool. All arguments are strings.
type ArgSpec struct {
	Name        string
	Required    bool
	Description string
}

// Handler runs the tool's side effect and returns a human-readable outcome.
type Handler func(ctx context.Context, tctx ToolContext, args map[string]any) (string, error)

// Tool is one registered side-effecting operation.
type Tool struct {
	Name        string
	Description string
	Args        []ArgSpec
	Handler     Handler
}

// Outcome is what the orchestrator gets back from any invocation. Failures
// are carried in Message with OK=false; Invoke never escalates an error.
type Outcome struct {
	Tool    string
	Message string
	OK      bool
}

// Registry resolves tools by name at call time and validates arguments
// before any side effect is attempted.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool has no name")
	}
	if t.Handler == nil {
		return fmt.Errorf("tool %q has no handler", t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// Invoke validates args against the tool's declared schema, runs the
// handler, and converts every failure into a non-fatal Outcome.
func (r *Registry) Invoke(ctx context.Context, tctx ToolContext, name string, args map[string]any) Outcome {
	log := observability.LoggerFromContext(ctx).With("tool", name)

	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		log.Warn("unknown tool invoked")
		return Outcome{Tool: name, OK: false, Message: fmt.Sprintf("unknown tool %q", name)}
	}

	if err := validateArgs(tool, args); err != nil {
		log.Warn("tool argument validation failed", "error", err)
		return Outcome{Tool: name, OK: false, Message: err.Error()}
	}

	msg, err := tool.Handler(ctx, tctx, args)
	if err != nil {
		log.Error("tool invocation failed", "error", err)
		return Outcome{Tool: name, OK: false, Message: err.Error()}
	}

	log.Info("tool invocation succeeded")
	return Outcome{Tool: name, OK: true, Message: msg}
}

func validateArgs(tool Tool, args map[string]any) error {
	for _, spec := range tool.Args {
		if !spec.Required {
			continue
		}
		v, ok := args[spec.Name]
		if !ok {
			return fmt.Errorf("%s: missing required argument %q", tool.Name, spec.Name)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return fmt.Errorf("%s: argument %q must be a non-empty string", tool.Name, spec.Name)
		}
	}
	return nil
}

func getString(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
