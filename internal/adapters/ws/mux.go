package ws

import (
	"strings"

	"github.com/its-ME-007/adk-web-api/internal/domain"
	"github.com/its-ME-007/adk-web-api/internal/observability"
)

// Frame is the server-to-client message contract. Exactly one frame per
// turn has TurnComplete set.
type Frame struct {
	Message      string `json:"message,omitempty"`
	TurnComplete bool   `json:"turn_complete,omitempty"`
	Interrupted  bool   `json:"interrupted,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Transport writes framed messages onto one client connection.
type Transport interface {
	WriteFrame(Frame) error
}

// Mux serializes one turn's event sequence onto a single transport. It
// buffers consecutive text chunks and flushes them as one message when a
// non-text event arrives or the sequence ends.
type Mux struct {
	transport Transport
}

func NewMux(transport Transport) *Mux {
	return &Mux{transport: transport}
}

// Run consumes events until the channel closes. On a transport write
// failure it keeps draining the channel while discarding events, so the
// producing turn always runs to completion and session state stays
// consistent for a reconnect. The first write error is returned.
func (m *Mux) Run(events <-chan domain.TurnEvent) error {
	log := observability.Logger()

	var buf strings.Builder
	var writeErr error
	terminal := false

	write := func(f Frame) {
		if writeErr != nil {
			return
		}
		if err := m.transport.WriteFrame(f); err != nil {
			log.Warn("transport write failed, draining turn", "error", err)
			writeErr = err
		}
	}

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		write(Frame{Message: buf.String()})
		buf.Reset()
	}

	for ev := range events {
		if terminal {
			// A well-formed turn ends right after its terminal event;
			// anything after is dropped.
			continue
		}

		switch e := ev.(type) {
		case domain.PartialText:
			buf.WriteString(e.Text)

		case domain.ToolOutcome:
			flush()
			write(Frame{Message: e.Message})

		case domain.TurnComplete:
			if e.FinalText != "" {
				buf.WriteString(e.FinalText)
			}
			flush()
			write(Frame{TurnComplete: true})
			terminal = true

		case domain.Interrupted:
			if e.FinalText != "" {
				buf.WriteString(e.FinalText)
			}
			flush()
			write(Frame{Interrupted: true, TurnComplete: true})
			terminal = true

		case domain.TurnError:
			// Best effort: if the transport is gone the error is
			// swallowed, not retried.
			flush()
			write(Frame{Error: e.Message, TurnComplete: true})
			terminal = true
		}
	}

	// Producer closed the stream without a terminal event: flush whatever
	// is buffered and still emit exactly one terminal frame.
	if !terminal {
		if buf.Len() > 0 {
			write(Frame{Message: buf.String(), TurnComplete: true})
		} else {
			write(Frame{TurnComplete: true})
		}
	}

	return writeErr
}
