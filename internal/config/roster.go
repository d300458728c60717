package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RosterWorker is one perspective in the panel, as declared in the roster
// file. OutputKey is where the worker's result lands in the context store;
// Aliases are extra names a user may type when asking to save it.
type RosterWorker struct {
	Name        string   `yaml:"name"`
	OutputKey   string   `yaml:"output_key"`
	Instruction string   `yaml:"instruction"`
	Aliases     []string `yaml:"aliases,omitempty"`
}

// Roster is the fixed set of workers run concurrently for every gather
// phase.
type Roster struct {
	Workers []RosterWorker `yaml:"workers"`
}

// DefaultRoster returns the built-in CEO / Senior Manager / Specialist
// panel used when no roster file is configured.
func DefaultRoster() Roster {
	return Roster{
		Workers: []RosterWorker{
			{
				Name:      "CEO",
				OutputKey: "ceo_response",
				Instruction: "As the CEO, you operate at the highest strategic level. " +
					"When responding to user queries about setting up an industry, consider the long-term implications, " +
					"market positioning, and overall business strategy. Focus on high-level considerations like " +
					"investment, scalability, and competitive advantages.",
				Aliases: []string{"chief", "chief executive"},
			},
			{
				Name:      "Senior_Manager",
				OutputKey: "manager_response",
				Instruction: "As a Senior Manager, you bridge the gap between strategy and execution. " +
					"When addressing user questions about setting up an industry, focus on operational aspects, " +
					"supply chain considerations, regulatory requirements, and potential challenges in implementation.",
				Aliases: []string{"manager", "senior manager"},
			},
			{
				Name:      "Specialist",
				OutputKey: "specialist_response",
				Instruction: "As a Specialist in manufacturing, when responding to user inquiries about setting up " +
					"an industry, provide detailed information on raw material sourcing, processing techniques, " +
					"quality control, local expertise availability, and any specific technical considerations " +
					"relevant to raw material production in that region.",
				Aliases: []string{"expert", "subject matter expert"},
			},
		},
	}
}

// LoadRoster reads a roster file, falling back to the default panel when the
// path is empty.
func LoadRoster(path string) (Roster, error) {
	if path == "" {
		return DefaultRoster(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("reading roster %s: %w", path, err)
	}

	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return Roster{}, fmt.Errorf("parsing roster %s: %w", path, err)
	}

	if err := roster.Validate(); err != nil {
		return Roster{}, fmt.Errorf("invalid roster %s: %w", path, err)
	}

	return roster, nil
}

// Validate checks that every worker has a name, an instruction and a unique
// output key.
func (r Roster) Validate() error {
	if len(r.Workers) == 0 {
		return fmt.Errorf("roster has no workers")
	}

	seenNames := make(map[string]bool)
	seenKeys := make(map[string]bool)

	for i, w := range r.Workers {
		if w.Name == "" {
			return fmt.Errorf("worker %d has no name", i)
		}
		if w.OutputKey == "" {
			return fmt.Errorf("worker %q has no output_key", w.Name)
		}
		if w.Instruction == "" {
			return fmt.Errorf("worker %q has no instruction", w.Name)
		}
		if seenNames[w.Name] {
			return fmt.Errorf("duplicate worker name %q", w.Name)
		}
		if seenKeys[w.OutputKey] {
			return fmt.Errorf("duplicate output_key %q", w.OutputKey)
		}
		seenNames[w.Name] = true
		seenKeys[w.OutputKey] = true
	}

	return nil
}
