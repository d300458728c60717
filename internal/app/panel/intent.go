package panel

import (
	"regexp"
	"strings"
)

type intentKind int

const (
	// intentGather: not a recognized follow-up, treat as a new query.
	intentGather intentKind = iota
	// intentSave: the user asked to persist a specific worker's response.
	intentSave
	// intentSaveUnresolved: a save request that names no known worker.
	intentSaveUnresolved
	// intentInsight: the user asked for a saved insight by keyword.
	intentInsight
)

type followUp struct {
	kind    intentKind
	worker  Worker
	keyword string
}

var saveVerbs = []string{"save", "store", "persist", "keep"}

var insightPattern = regexp.MustCompile(`insight[s]?\s*(?:on|about|for|into|regarding)?\s*(.+)`)

// parseFollowUp classifies the user's next message after a presentation.
// Save and insight requests are resolved against the roster; anything else
// is a fresh gather request.
func parseFollowUp(text string, workers []Worker) followUp {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return followUp{kind: intentGather}
	}

	if m := insightPattern.FindStringSubmatch(lowered); m != nil {
		keyword := strings.Trim(m[1], " .!?\"'")
		if keyword != "" {
			return followUp{kind: intentInsight, keyword: keyword}
		}
	}

	if !hasSaveVerb(lowered) {
		return followUp{kind: intentGather}
	}

	for _, w := range workers {
		if w.matches(lowered) {
			return followUp{kind: intentSave, worker: w}
		}
	}

	return followUp{kind: intentSaveUnresolved}
}

func hasSaveVerb(lowered string) bool {
	for _, verb := range saveVerbs {
		// Word-boundary check so "savepoint" does not count.
		idx := strings.Index(lowered, verb)
		for idx >= 0 {
			before := idx == 0 || !isWordChar(lowered[idx-1])
			afterIdx := idx + len(verb)
			after := afterIdx >= len(lowered) || !isWordChar(lowered[afterIdx])
			if before && after {
				return true
			}
			next := strings.Index(lowered[idx+1:], verb)
			if next < 0 {
				break
			}
			idx = idx + 1 + next
		}
	}
	return false
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
