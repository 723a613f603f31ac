package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/swibrow/faq/internal/faq"
)

// Matcher is the part of faq.Matcher the chat loop needs.
type Matcher interface {
	Match(query string) faq.Result
}

// ChatOptions controls the loop. ShowPrompt prints the banner and "You:"
// prompts and is off when input is piped. OnResult, if set, is called after
// every answered query.
type ChatOptions struct {
	ShowPrompt bool
	OnResult   func(query string, res faq.Result)
}

// Chat runs the read-answer loop until "exit" or end of input.
func Chat(in io.Reader, out io.Writer, m Matcher, opts ChatOptions) error {
	scanner := bufio.NewScanner(in)

	if opts.ShowPrompt {
		fmt.Fprintln(out, "FAQ Chatbot initialized. Type 'exit' to quit.")
	}

	for {
		if opts.ShowPrompt {
			fmt.Fprint(out, labelStyle.Render("You:")+" ")
		}
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(query, "exit") {
			break
		}

		res := m.Match(query)
		if opts.ShowPrompt {
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Bot:"), FormatAnswer(res))
		} else {
			fmt.Fprintln(out, res.Text)
		}
		if opts.OnResult != nil {
			opts.OnResult(query, res)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if opts.ShowPrompt {
		fmt.Fprintln(out, "Goodbye!")
	}
	return nil
}
