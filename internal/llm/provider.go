package llm

import (
	"context"
	"fmt"

	"github.com/swibrow/faq/internal/config"
)

// Provider is a chat model that turns a system prompt and one user message
// into a single reply.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// NewProvider builds the provider registered under name using its section
// of cfg.
func NewProvider(cfg *config.Config, name string) (Provider, error) {
	switch name {
	case "anthropic":
		return NewAnthropic(cfg.Anthropic)
	case "openai":
		return NewOpenAI(cfg.OpenAI)
	case "ollama":
		return NewOllama(cfg.Ollama)
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

// maxTokensFor sizes the reply budget from the input length; translations
// rarely exceed three times the source in tokens.
func maxTokensFor(userMessage string) int64 {
	n := int64(len(userMessage))*3/4 + 256
	if n > 4096 {
		return 4096
	}
	return n
}
