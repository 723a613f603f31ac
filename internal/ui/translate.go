package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/swibrow/faq/internal/translate"
)

// DisplayTranslation prints a translation result block.
func DisplayTranslation(w io.Writer, source, target translate.Language, original, translated string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "------ Translation Result ------")
	fmt.Fprintf(w, "From: %s\n", source.Name)
	fmt.Fprintf(w, "To: %s\n", target.Name)
	fmt.Fprintf(w, "\nOriginal: %s\n", original)
	fmt.Fprintf(w, "Translated: %s\n", answerStyle.Render(translated))
	fmt.Fprintln(w, "-------------------------------")
	fmt.Fprintln(w)
}

// DisplayTranslationError explains a failed translation, adding connection
// hints when the service looks unreachable.
func DisplayTranslationError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error during translation:"), err)
	if !translate.IsUnavailable(err) {
		return
	}
	fmt.Fprintln(w, "\nAPI connection issue. This can happen if:")
	fmt.Fprintln(w, "1. Your internet connection is unavailable")
	fmt.Fprintln(w, "2. The translation service is experiencing high traffic")
	fmt.Fprintln(w, "3. The service is temporarily down for maintenance")
	fmt.Fprintln(w, "\nPlease try again later.")
}

// TranslateLoop runs the interactive language menu until the user picks 0,
// declines to continue, or input ends.
func TranslateLoop(ctx context.Context, in io.Reader, out io.Writer, tr translate.Translator) error {
	r := &lineReader{scanner: bufio.NewScanner(in), out: out}

	fmt.Fprintln(out, "======================================")
	fmt.Fprintln(out, "   AI NEURAL TRANSLATION TOOL")
	fmt.Fprintln(out, "======================================")
	fmt.Fprintln(out)

	for {
		fmt.Fprintln(out, "Available languages:")
		for i, l := range translate.Languages {
			fmt.Fprintf(out, "%d. %s\n", i+1, l.Name)
		}

		line, ok := r.prompt("\nSelect source language (number or 0 to exit): ")
		if !ok || strings.TrimSpace(line) == "0" {
			break
		}
		source, ok := pickLanguage(line)
		if !ok {
			fmt.Fprintln(out, "Invalid selection. Please try again.")
			continue
		}

		line, ok = r.prompt("Select target language (number): ")
		if !ok {
			break
		}
		target, ok := pickLanguage(line)
		if !ok {
			fmt.Fprintln(out, "Invalid selection. Please try again.")
			continue
		}

		text, ok := r.prompt("Enter text to translate: ")
		if !ok {
			break
		}
		if strings.TrimSpace(text) == "" {
			fmt.Fprintln(out, "No text entered. Please try again.")
			continue
		}

		fmt.Fprintln(out, "\nTranslating...")
		translated, err := tr.Translate(ctx, text, source, target)
		if err != nil {
			DisplayTranslationError(out, err)
		} else {
			DisplayTranslation(out, source, target, text, translated)
		}

		again, ok := r.prompt("Translate another text? (y/n): ")
		again = strings.ToLower(strings.TrimSpace(again))
		fmt.Fprintln(out)
		if !ok || (again != "y" && again != "yes") {
			break
		}
	}

	fmt.Fprintln(out, "Thank you for using the AI Neural Translation Tool!")
	return r.scanner.Err()
}

// pickLanguage accepts only menu numbers.
func pickLanguage(s string) (translate.Language, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > len(translate.Languages) {
		return translate.Language{}, false
	}
	return translate.Languages[n-1], true
}

type lineReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *lineReader) prompt(msg string) (string, bool) {
	fmt.Fprint(r.out, msg)
	if !r.scanner.Scan() {
		fmt.Fprintln(r.out)
		return "", false
	}
	return r.scanner.Text(), true
}
