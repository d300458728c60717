package main

import "github.com/charmbracelet/lipgloss"

var (
	messageStyle = lipgloss.NewStyle()
	noticeStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
)

func renderMessage(s string) string {
	return messageStyle.Render(s)
}

func renderNotice(s string) string {
	return noticeStyle.Render(s)
}

func renderError(s string) string {
	return errorStyle.Render("error: " + s)
}

func renderPrompt() string {
	return promptStyle.Render("> ")
}
