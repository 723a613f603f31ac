package translate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultTimeout = 10 * time.Second

// LibreTranslate talks to a LibreTranslate-compatible /translate endpoint.
type LibreTranslate struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewLibreTranslate returns a client for endpoint. A non-positive
// ratePerSecond disables client-side rate limiting.
func NewLibreTranslate(endpoint, apiKey string, timeout time.Duration, ratePerSecond float64) (*LibreTranslate, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL: %q", endpoint)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}

	return &LibreTranslate{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, 1),
	}, nil
}

type libreResponse struct {
	TranslatedText *string `json:"translatedText"`
	Error          string  `json:"error"`
}

func (l *LibreTranslate) Translate(ctx context.Context, text string, source, target Language) (string, error) {
	if result, done, err := passthrough(text, source, target); done {
		return result, err
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	form := url.Values{}
	form.Set("q", text)
	form.Set("source", source.Code)
	form.Set("target", target.Code)
	form.Set("format", "text")
	// Most instances don't require a key, but the parameter is expected.
	form.Set("api_key", l.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translation API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var parsed libreResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode, Message: parsed.Error}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, decodeErr)
	}
	if parsed.TranslatedText == nil {
		return "", fmt.Errorf("%w: %s", ErrBadResponse, strings.TrimSpace(string(body)))
	}

	return *parsed.TranslatedText, nil
}
