package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/swibrow/faq/internal/config"
)

// chatCompletions serves both OpenAI and Ollama, which speaks the same API.
type chatCompletions struct {
	name   string
	client *openai.Client
	model  string
}

func NewOpenAI(cfg config.OpenAIConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key not set (set OPENAI_API_KEY or configure in ~/.config/faq/config.yaml)")
	}

	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &chatCompletions{name: "openai", client: &client, model: cfg.Model}, nil
}

func NewOllama(cfg config.OllamaConfig) (Provider, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("ollama URL not set")
	}

	client := openai.NewClient(
		option.WithBaseURL(cfg.URL),
		option.WithAPIKey("ollama"), // Ollama doesn't need a real key
	)
	return &chatCompletions{name: "ollama", client: &client, model: cfg.Model}, nil
}

func (c *chatCompletions) Name() string { return c.name }

func (c *chatCompletions) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(0),
		MaxTokens:   openai.Int(maxTokensFor(userMessage)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.name)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
