package translate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/swibrow/faq/internal/config"
	"github.com/swibrow/faq/internal/llm"
)

var (
	ErrEmptyText   = errors.New("no text to translate")
	ErrBadResponse = errors.New("failed to parse translation response")
)

// Translator converts text between two languages.
type Translator interface {
	Translate(ctx context.Context, text string, source, target Language) (string, error)
}

// HTTPError is a non-200 reply from a translation endpoint.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error code: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP error code: %d", e.StatusCode)
}

// IsUnavailable reports whether err means the service could not be reached
// or refused the request, as opposed to a bad input.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// New builds the translator selected by cfg.Translate.Backend.
func New(cfg *config.Config) (Translator, error) {
	tc := cfg.Translate
	switch tc.Backend {
	case "", "libretranslate":
		timeout := time.Duration(tc.TimeoutSeconds) * time.Second
		return NewLibreTranslate(tc.URL, tc.APIKey, timeout, tc.RatePerSecond)
	default:
		provider, err := llm.NewProvider(cfg, tc.Backend)
		if err != nil {
			return nil, fmt.Errorf("initializing %s translator: %w", tc.Backend, err)
		}
		return NewLLM(provider, tc.SystemPrompt), nil
	}
}

// passthrough handles the cases every backend treats the same way. done is
// true when no request is needed.
func passthrough(text string, source, target Language) (result string, done bool, err error) {
	if strings.TrimSpace(text) == "" {
		return "", true, ErrEmptyText
	}
	if source.Code == target.Code {
		return text, true, nil
	}
	return "", false, nil
}
