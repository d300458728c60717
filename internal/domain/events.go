package domain

// TurnEvent is the tagged variant produced by the turn orchestrator and
// consumed by the stream multiplexer. Exactly one of TurnComplete,
// Interrupted or TurnError terminates a turn; any number of PartialText
// events may precede the terminal one.
type TurnEvent interface {
	Kind() string
}

// PartialText carries one incremental chunk of agent output.
type PartialText struct {
	Text string
}

// TurnComplete marks the normal end of a turn.
type TurnComplete struct {
	FinalText string
}

// Interrupted marks a turn cut short by the generation backend. It is
// terminal exactly like TurnComplete, distinguished only by its flag on the
// wire.
type Interrupted struct {
	FinalText string
}

// ToolOutcome reports the result of a tool bridge invocation back into the
// conversation.
type ToolOutcome struct {
	AgentName string
	Message   string
	OK        bool
}

// TurnError terminates a turn that failed as a whole. The session stays
// usable for the next message.
type TurnError struct {
	Message string
}

func (PartialText) Kind() string  { return "partial_text" }
func (TurnComplete) Kind() string { return "turn_complete" }
func (Interrupted) Kind() string  { return "interrupted" }
func (ToolOutcome) Kind() string  { return "tool_outcome" }
func (TurnError) Kind() string    { return "error" }
