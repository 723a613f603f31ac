package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	FAQFile   string          `yaml:"faq_file"`
	Annotator string          `yaml:"annotator"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	Translate TranslateConfig `yaml:"translate"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Ollama    OllamaConfig    `yaml:"ollama"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
}

type MatcherConfig struct {
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	GreetingPhrases     []string `yaml:"greeting_phrases"`
	GreetingResponse    string   `yaml:"greeting_response"`
	FallbackMessage     string   `yaml:"fallback_message"`
	FailureMessage      string   `yaml:"failure_message"`
}

// TranslateConfig selects the translation backend: libretranslate, anthropic,
// openai or ollama. URL, APIKey and RatePerSecond apply to libretranslate;
// SystemPrompt replaces the built-in prompt for the LLM backends.
type TranslateConfig struct {
	Backend        string  `yaml:"backend"`
	URL            string  `yaml:"url"`
	APIKey         string  `yaml:"api_key,omitempty"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RatePerSecond  float64 `yaml:"rate_per_second"`
	SystemPrompt   string  `yaml:"system_prompt,omitempty"`
}

type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OllamaConfig struct {
	Model string `yaml:"model"`
	URL   string `yaml:"url"`
}

func DefaultConfig() *Config {
	return &Config{
		FAQFile:   "faqs.json",
		Annotator: "prose",
		Matcher: MatcherConfig{
			SimilarityThreshold: 0.5,
			GreetingPhrases:     []string{"hello", "hi", "hey", "greetings"},
			GreetingResponse:    "Hello! How can I help you today?",
			FallbackMessage:     "I don't have information about that. Could you try asking a different question?",
			FailureMessage:      "I'm having trouble processing your question. Could you try asking in a different way?",
		},
		Translate: TranslateConfig{
			Backend:        "libretranslate",
			URL:            "http://localhost:5000/translate",
			TimeoutSeconds: 10,
			RatePerSecond:  2,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-5-20250929",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Ollama: OllamaConfig{
			Model: "llama3",
			URL:   "http://localhost:11434/v1",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "warning",
		},
	}
}

// ConfigDirFunc overrides the default config directory resolution.
// When nil, the default (~/.config/faq) is used.
// Tests set this to redirect config I/O to a temp directory.
var ConfigDirFunc func() (string, error)

func ConfigDir() (string, error) {
	if ConfigDirFunc != nil {
		return ConfigDirFunc()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "faq"), nil
}

func configPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Env vars take precedence over the config file.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("FAQ_FILE"); v != "" {
		cfg.FAQFile = v
	}
	if v := os.Getenv("FAQ_THRESHOLD"); v != "" {
		th, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing FAQ_THRESHOLD %q: %w", v, err)
		}
		cfg.Matcher.SimilarityThreshold = th
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.Anthropic.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if key := os.Getenv("LIBRETRANSLATE_API_KEY"); key != "" {
		cfg.Translate.APIKey = key
	}
	if url := os.Getenv("LIBRETRANSLATE_URL"); url != "" {
		cfg.Translate.URL = url
	}
	return nil
}

func Save(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func Show() (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("No config file found. Create one at: %s", path), nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}

	return fmt.Sprintf("Config file: %s\n\n%s", path, string(data)), nil
}
