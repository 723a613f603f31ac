package prompt

import (
	"strings"
	"testing"
)

func TestTranslationPromptNamesLanguages(t *testing.T) {
	p := TranslationPrompt("", "Hindi", "English")
	if !strings.Contains(p, "from Hindi to English") {
		t.Errorf("prompt should name both languages, got: %s", p)
	}
	if strings.Contains(p, "%s") {
		t.Error("prompt should have no unfilled verbs")
	}
}

func TestTranslationPromptCustom(t *testing.T) {
	p := TranslationPrompt("Translate %s to %s. Already %s? Echo it.", "French", "German")
	if p != "Translate French to German. Already German? Echo it." {
		t.Errorf("unexpected custom prompt: %q", p)
	}

	fixed := "Always translate to Spanish."
	if got := TranslationPrompt(fixed, "English", "Spanish"); got != fixed {
		t.Errorf("prompt without verbs should be returned as is, got %q", got)
	}
}

func TestCleanTranslation(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hola", "Hola"},
		{"  Hola mundo \n", "Hola mundo"},
		{`"Bonjour"`, "Bonjour"},
		{"`Hallo`", "Hallo"},
		{"Translation: Ciao", "Ciao"},
		{`"`, `"`},
		{"", ""},
	}
	for _, tc := range tests {
		if got := CleanTranslation(tc.in); got != tc.want {
			t.Errorf("CleanTranslation(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
