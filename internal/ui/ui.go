package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/swibrow/faq/internal/faq"
)

// Catppuccin Mocha palette
var (
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))            // Green
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))            // Subtext0
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5c2e7")) // Pink
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8")) // Red
	hintStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9e2af")) // Yellow
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// FormatAnswer renders the bot's reply, dimming anything that is not a
// corpus answer.
func FormatAnswer(res faq.Result) string {
	switch res.Outcome {
	case faq.OutcomeAnswer, faq.OutcomeGreeting:
		return answerStyle.Render(res.Text)
	default:
		return fallbackStyle.Render(res.Text)
	}
}

// DisplayAnswer shows a one-shot answer.
func DisplayAnswer(w io.Writer, res faq.Result, verbose bool) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", FormatAnswer(res))
	if verbose {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render(describe(res)))
	}
	fmt.Fprintln(w)
}

// DisplayQuiet shows only the answer text (for piping).
func DisplayQuiet(w io.Writer, res faq.Result) {
	fmt.Fprintln(w, res.Text)
}

func describe(res faq.Result) string {
	parts := []string{"outcome=" + res.Outcome.String()}
	if res.Query != nil {
		parts = append(parts, "keywords="+res.Query.String())
	}
	if res.Entry != nil {
		parts = append(parts, fmt.Sprintf("best=%q score=%.2f", res.Entry.Question, res.Score))
	}
	if res.Err != nil {
		parts = append(parts, "error="+res.Err.Error())
	}
	return strings.Join(parts, " ")
}

// DisplayEntries lists the corpus in match order.
func DisplayEntries(w io.Writer, entries []faq.Entry) {
	for i, e := range entries {
		fmt.Fprintf(w, "%3d. %s %s\n", i+1, labelStyle.Render("Q:"), e.Question)
		fmt.Fprintf(w, "     %s %s\n", labelStyle.Render("A:"), e.Answer)
		fmt.Fprintf(w, "     %s\n", dimStyle.Render("keywords "+e.Keywords.String()))
	}
}

// DisplayError shows a formatted error message.
func DisplayError(msg string) {
	fmt.Fprintf(os.Stderr, "\n  %s %s\n\n", errorStyle.Render("Error:"), msg)
}

// DisplayWarning shows a non-fatal problem.
func DisplayWarning(msg string) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", hintStyle.Render("Warning:"), msg)
}
