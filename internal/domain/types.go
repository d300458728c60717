package domain

type SessionID string
type UserID string

// OutputKey names the slot a worker writes into the session's ContextStore.
type OutputKey string

// PresentationMode controls how gathered perspectives are rendered back to
// the user. Verbatim presents each worker's text under its own label without
// rewriting it; synthesis asks the LLM to merge them into one answer.
type PresentationMode string

const (
	PresentVerbatim  PresentationMode = "verbatim"
	PresentSynthesis PresentationMode = "synthesis"
)
