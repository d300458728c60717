package panel

import (
	"context"
	"fmt"
	"strings"

	"github.com/its-ME-007/adk-web-api/internal/app/tools"
	"github.com/its-ME-007/adk-web-api/internal/domain"
	"github.com/its-ME-007/adk-web-api/internal/observability"
)

// State names the orchestrator's position in the per-turn cycle. It is
// mutated only by the turn goroutine; the session layer guarantees one
// active turn per session.
type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingGroup        State = "awaiting_group"
	StatePresenting           State = "presenting"
	StateAwaitingToolDecision State = "awaiting_tool_decision"
	StateInvokingTool         State = "invoking_tool"
)

// turnEventBuffer bounds the producer side of a turn's event channel.
const turnEventBuffer = 16

// Orchestrator drives one conversational turn at a time for one session:
// fan out the panel, commit results, present them, then field the optional
// save/lookup follow-up against the already-buffered results.
type Orchestrator struct {
	group    *Group
	llm      domain.LLMClient
	registry *tools.Registry
	store    *domain.ContextStore
	mode     domain.PresentationMode

	sessionID domain.SessionID
	userID    domain.UserID

	state State
}

func NewOrchestrator(
	group *Group,
	llm domain.LLMClient,
	registry *tools.Registry,
	store *domain.ContextStore,
	mode domain.PresentationMode,
	sessionID domain.SessionID,
	userID domain.UserID,
) *Orchestrator {
	return &Orchestrator{
		group:     group,
		llm:       llm,
		registry:  registry,
		store:     store,
		mode:      mode,
		sessionID: sessionID,
		userID:    userID,
		state:     StateIdle,
	}
}

func (o *Orchestrator) State() State {
	return o.state
}

// RunTurn starts one turn for a user message and returns its event stream.
// The channel carries any number of PartialText/ToolOutcome events and is
// closed right after exactly one terminal event (TurnComplete, Interrupted
// or TurnError). The consumer must drain the channel until it closes, even
// after it stops forwarding events, so the turn always finishes server-side.
func (o *Orchestrator) RunTurn(ctx context.Context, userText string) <-chan domain.TurnEvent {
	events := make(chan domain.TurnEvent, turnEventBuffer)

	go func() {
		defer close(events)
		o.runTurn(ctx, strings.TrimSpace(userText), events)
	}()

	return events
}

func (o *Orchestrator) runTurn(ctx context.Context, text string, emit chan<- domain.TurnEvent) {
	log := observability.LoggerFromContext(ctx).With("session_id", o.sessionID)

	// Save/lookup follow-ups are resolved against buffered results no
	// matter the current state: a save request must never trigger a new
	// gather, and a save before any gather is a protocol fault, not a
	// reason to run the panel.
	intent := parseFollowUp(text, o.group.Workers())

	switch intent.kind {
	case intentSave:
		o.invokeSave(ctx, intent.worker, emit)

	case intentSaveUnresolved:
		log.Warn("save request names no known worker", "text", text)
		emit <- domain.PartialText{Text: fmt.Sprintf(
			"I couldn't tell which response you want to save. You can save %s.", o.workerChoices())}
		emit <- domain.TurnComplete{}

	case intentInsight:
		o.invokeInsight(ctx, intent.keyword, emit)

	default:
		o.gatherAndPresent(ctx, text, emit)
	}
}

// gatherAndPresent is the Idle -> AwaitingGroup -> Presenting ->
// AwaitingToolDecision leg of the state machine.
func (o *Orchestrator) gatherAndPresent(ctx context.Context, text string, emit chan<- domain.TurnEvent) {
	log := observability.LoggerFromContext(ctx).With("session_id", o.sessionID)

	o.state = StateAwaitingGroup
	results, err := o.group.Run(ctx, text)
	if err != nil {
		log.Error("gather failed", "error", err)
		o.state = StateIdle
		emit <- domain.TurnError{Message: "all perspectives failed, please try again"}
		return
	}

	// One commit after the join so no turn ever leaves a half-written
	// context store behind.
	o.store.SetAll(results)

	o.state = StatePresenting

	finished := o.present(ctx, text, results, emit)
	if !finished {
		// Interrupted or failed mid-presentation; results are already
		// committed so follow-up saves still work.
		o.state = StateAwaitingToolDecision
		return
	}

	emit <- domain.PartialText{Text: fmt.Sprintf(
		"\nWould you like me to save the response from %s?", o.workerChoices())}

	o.state = StateAwaitingToolDecision
	emit <- domain.TurnComplete{}
}

// present renders the gathered results. It returns false when the turn was
// already terminated (interrupt or presentation error).
func (o *Orchestrator) present(ctx context.Context, text string, results []domain.Result, emit chan<- domain.TurnEvent) bool {
	if o.mode == domain.PresentSynthesis {
		return o.presentSynthesis(ctx, text, results, emit)
	}

	o.presentVerbatim(results, emit)
	return true
}

// presentVerbatim emits one labeled section per worker, in roster order.
// This is deterministic: no model call is involved.
func (o *Orchestrator) presentVerbatim(results []domain.Result, emit chan<- domain.TurnEvent) {
	for i, w := range o.group.Workers() {
		res := results[i]

		if res.Failed() {
			emit <- domain.PartialText{Text: fmt.Sprintf(
				"%s perspective: unavailable (%s)\n\n", w.Label(), res.Err)}
			continue
		}
		emit <- domain.PartialText{Text: fmt.Sprintf(
			"%s perspective:\n%s\n\n", w.Label(), res.Text)}
	}
}

// presentSynthesis streams a model-written merge of the successful results.
func (o *Orchestrator) presentSynthesis(ctx context.Context, text string, results []domain.Result, emit chan<- domain.TurnEvent) bool {
	log := observability.LoggerFromContext(ctx).With("session_id", o.sessionID)

	var perspectives []perspective
	for i, w := range o.group.Workers() {
		if results[i].Failed() {
			continue
		}
		perspectives = append(perspectives, perspective{label: w.Label(), text: results[i].Text})
	}

	stream, err := o.llm.GenerateStream(ctx, buildSynthesisPrompt(text, perspectives))
	if err != nil {
		log.Error("synthesis stream failed to start", "error", err)
		emit <- domain.TurnError{Message: "presentation failed, please try again"}
		return false
	}

	for chunk := range stream {
		switch {
		case chunk.Err != nil:
			log.Error("synthesis stream failed", "error", chunk.Err)
			emit <- domain.TurnError{Message: "presentation failed, please try again"}
			return false
		case chunk.Interrupted:
			log.Warn("synthesis stream interrupted")
			emit <- domain.Interrupted{}
			return false
		default:
			emit <- domain.PartialText{Text: chunk.Text}
		}
	}

	return true
}

// invokeSave is the AwaitingToolDecision -> InvokingTool -> Idle leg. The
// saved content is the worker's already-buffered result; the group is never
// re-run for a save.
func (o *Orchestrator) invokeSave(ctx context.Context, w Worker, emit chan<- domain.TurnEvent) {
	log := observability.LoggerFromContext(ctx).With("session_id", o.sessionID, "worker", w.Name)

	res, ok := o.store.Get(w.OutputKey)
	if !ok || res.Failed() {
		// Protocol fault: asked to save something that was never
		// gathered (or whose worker failed). State is left untouched.
		log.Warn("save requested for missing result", "key", w.OutputKey)
		emit <- domain.PartialText{Text: fmt.Sprintf(
			"There is no stored response from %s yet. Ask the panel something first, then ask me to save.", w.Label())}
		emit <- domain.TurnComplete{}
		return
	}

	o.state = StateInvokingTool

	outcome := o.registry.Invoke(ctx, o.toolContext(), tools.SaveResponseToolName, map[string]any{
		"agent_name":       res.AgentName,
		"response_content": res.Text,
	})

	emit <- domain.ToolOutcome{AgentName: res.AgentName, Message: outcome.Message, OK: outcome.OK}

	o.state = StateIdle
	emit <- domain.TurnComplete{}
}

func (o *Orchestrator) invokeInsight(ctx context.Context, keyword string, emit chan<- domain.TurnEvent) {
	o.state = StateInvokingTool

	outcome := o.registry.Invoke(ctx, o.toolContext(), tools.IndustryInsightToolName, map[string]any{
		"keyword": keyword,
	})

	emit <- domain.ToolOutcome{Message: outcome.Message, OK: outcome.OK}

	o.state = StateIdle
	emit <- domain.TurnComplete{}
}

func (o *Orchestrator) toolContext() tools.ToolContext {
	return tools.ToolContext{
		UserID:    string(o.userID),
		SessionID: string(o.sessionID),
	}
}

func (o *Orchestrator) workerChoices() string {
	workers := o.group.Workers()
	labels := make([]string, 0, len(workers))
	for _, w := range workers {
		labels = append(labels, w.Label())
	}

	switch len(labels) {
	case 0:
		return "no one"
	case 1:
		return "the " + labels[0]
	default:
		return "the " + strings.Join(labels[:len(labels)-1], ", the ") + " or the " + labels[len(labels)-1]
	}
}
