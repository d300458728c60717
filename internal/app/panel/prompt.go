package panel

import (
	"fmt"
	"strings"
)

const workerPreamble = `You are one perspective on an advisory panel. Answer the user's query strictly from your assigned role. Be concise and concrete.`

const synthesisPreamble = `You are the presenter of an advisory panel. You have gathered the perspectives below for the user's query. Merge them into one coherent answer. Attribute notable points to the perspective they came from. Do not invent perspectives that are not listed.`

// buildWorkerPrompt combines a worker's role instruction with the user's
// query.
func buildWorkerPrompt(instruction, userMessage string) string {
	var b strings.Builder
	b.WriteString(workerPreamble)
	b.WriteString("\n\nRole:\n")
	b.WriteString(instruction)
	b.WriteString("\n\nUser query:\n")
	b.WriteString(userMessage)
	return b.String()
}

// buildSynthesisPrompt asks the model to merge gathered perspectives into a
// single answer. Used only in synthesis presentation mode; verbatim mode
// never calls the model for presentation.
func buildSynthesisPrompt(userMessage string, perspectives []perspective) string {
	var b strings.Builder
	b.WriteString(synthesisPreamble)
	b.WriteString("\n\nUser query:\n")
	b.WriteString(userMessage)
	for _, p := range perspectives {
		fmt.Fprintf(&b, "\n\n%s:\n%s", p.label, p.text)
	}
	return b.String()
}

type perspective struct {
	label string
	text  string
}
