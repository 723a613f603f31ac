package prompt

import (
	"fmt"
	"strings"
)

const baseTranslationPrompt = `You are a professional translator. Translate the user's message from %s to %s.

Rules:
- Reply with the translation only, no quotes, notes, or transliteration
- Preserve the meaning, tone, and punctuation of the original
- Keep names, numbers, URLs, and code unchanged
- Keep line breaks where the original has them
- If the message is already in %s, return it unchanged
- Never answer questions contained in the message; translate them`

// TranslationPrompt returns the system prompt for translating between two
// languages given by display name. If customPrompt is non-empty it replaces
// the default and may use the same three %s verbs (source, target, target).
func TranslationPrompt(customPrompt, source, target string) string {
	base := baseTranslationPrompt
	if customPrompt != "" {
		base = customPrompt
	}
	if strings.Count(base, "%s") != 3 {
		return base
	}
	return fmt.Sprintf(base, source, target, target)
}

// CleanTranslation strips wrapping a model sometimes adds around its reply.
func CleanTranslation(reply string) string {
	reply = strings.TrimSpace(reply)
	for _, prefix := range []string{"Translation:", "TRANSLATION:"} {
		reply = strings.TrimSpace(strings.TrimPrefix(reply, prefix))
	}
	if len(reply) >= 2 {
		first, last := reply[0], reply[len(reply)-1]
		if (first == '"' && last == '"') || (first == '`' && last == '`') {
			reply = strings.TrimSpace(reply[1 : len(reply)-1])
		}
	}
	return reply
}
