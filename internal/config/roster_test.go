package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func TestLoadRosterEmptyPathFallsBackToDefault(t *testing.T) {
	roster, err := LoadRoster("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(roster.Workers) != 3 {
		t.Fatalf("expected the 3 default workers, got %d", len(roster.Workers))
	}
	if roster.Workers[0].Name != "CEO" {
		t.Fatalf("expected CEO first, got %q", roster.Workers[0].Name)
	}
}

func TestLoadRosterParsesYAML(t *testing.T) {
	path := writeRoster(t, `
workers:
  - name: Economist
    output_key: economist_response
    instruction: Consider macro conditions.
    aliases: [econ]
  - name: Lawyer
    output_key: lawyer_response
    instruction: Consider regulatory exposure.
`)

	roster, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(roster.Workers) != 2 {
		t.Fatalf("expected 2 workers, got %d", len(roster.Workers))
	}
	if roster.Workers[0].OutputKey != "economist_response" {
		t.Fatalf("output_key not parsed: %q", roster.Workers[0].OutputKey)
	}
	if len(roster.Workers[0].Aliases) != 1 || roster.Workers[0].Aliases[0] != "econ" {
		t.Fatalf("aliases not parsed: %v", roster.Workers[0].Aliases)
	}
}

func TestLoadRosterRejectsDuplicateOutputKey(t *testing.T) {
	path := writeRoster(t, `
workers:
  - name: A
    output_key: shared
    instruction: x
  - name: B
    output_key: shared
    instruction: y
`)

	_, err := LoadRoster(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate output_key") {
		t.Fatalf("expected duplicate output_key error, got %v", err)
	}
}

func TestLoadRosterRejectsMissingInstruction(t *testing.T) {
	path := writeRoster(t, `
workers:
  - name: A
    output_key: a_response
`)

	_, err := LoadRoster(path)
	if err == nil || !strings.Contains(err.Error(), "no instruction") {
		t.Fatalf("expected missing instruction error, got %v", err)
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	if _, err := LoadRoster(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing roster file")
	}
}

func TestValidateEmptyRoster(t *testing.T) {
	if err := (Roster{}).Validate(); err == nil {
		t.Fatal("expected error for empty roster")
	}
}
