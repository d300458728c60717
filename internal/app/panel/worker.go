package panel

import (
	"strings"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

// Worker is one immutable perspective descriptor in the barrier group. Its
// successful result lands in the context store under OutputKey.
type Worker struct {
	Name        string
	OutputKey   domain.OutputKey
	Instruction string
	Aliases     []string
}

// Label is the human-readable form of the worker name used when presenting
// its result ("Senior_Manager" -> "Senior Manager").
func (w Worker) Label() string {
	return strings.ReplaceAll(w.Name, "_", " ")
}

// matches reports whether the user's text names this worker by name, alias
// or output key.
func (w Worker) matches(lowered string) bool {
	candidates := []string{
		strings.ToLower(w.Name),
		strings.ToLower(w.Label()),
		strings.ToLower(string(w.OutputKey)),
	}
	for _, a := range w.Aliases {
		candidates = append(candidates, strings.ToLower(a))
	}

	for _, c := range candidates {
		if c != "" && strings.Contains(lowered, c) {
			return true
		}
	}
	return false
}
