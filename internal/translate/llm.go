package translate

import (
	"context"
	"fmt"

	"github.com/swibrow/faq/internal/llm"
	"github.com/swibrow/faq/internal/prompt"
)

// LLM translates by prompting a chat model.
type LLM struct {
	provider     llm.Provider
	customPrompt string
}

func NewLLM(provider llm.Provider, customPrompt string) *LLM {
	return &LLM{provider: provider, customPrompt: customPrompt}
}

func (t *LLM) Translate(ctx context.Context, text string, source, target Language) (string, error) {
	if result, done, err := passthrough(text, source, target); done {
		return result, err
	}

	sys := prompt.TranslationPrompt(t.customPrompt, source.Name, target.Name)
	reply, err := t.provider.Complete(ctx, sys, text)
	if err != nil {
		return "", fmt.Errorf("%s translation: %w", t.provider.Name(), err)
	}

	out := prompt.CleanTranslation(reply)
	if out == "" {
		return "", fmt.Errorf("%w: %s returned an empty translation", ErrBadResponse, t.provider.Name())
	}
	return out, nil
}
