package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/swibrow/faq/internal/faq"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported corpus format")

// document is the on-disk shape: {"faqs": [{"question": …, "answer": …}]}.
type document struct {
	FAQs []faq.Pair `json:"faqs" yaml:"faqs"`
}

// LoadResult reports the loaded pairs. Degraded is set when the source could
// not be read; Pairs is then empty and Err holds the cause.
type LoadResult struct {
	Path     string
	Pairs    []faq.Pair
	Skipped  int
	Degraded bool
	Err      error
}

// Load never fails: an unreadable source yields a degraded, empty result so
// the matcher can still be built from the built-in entries.
func Load(path string) LoadResult {
	pairs, skipped, err := LoadFile(path)
	if err != nil {
		return LoadResult{Path: path, Degraded: true, Err: err}
	}
	return LoadResult{Path: path, Pairs: pairs, Skipped: skipped}
}

// LoadFile reads a JSON or YAML corpus. Records with a blank question are
// dropped and counted in skipped.
func LoadFile(path string) (pairs []faq.Pair, skipped int, err error) {
	if path == "" {
		return nil, 0, fmt.Errorf("no corpus file configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading corpus: %w", err)
	}

	doc, err := decode(path, data)
	if err != nil {
		return nil, 0, err
	}

	pairs = make([]faq.Pair, 0, len(doc.FAQs))
	for _, p := range doc.FAQs {
		if strings.TrimSpace(p.Question) == "" {
			skipped++
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs, skipped, nil
}

func decode(path string, data []byte) (*document, error) {
	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing corpus json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing corpus yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if doc.FAQs == nil {
		return nil, fmt.Errorf("parsing corpus: missing \"faqs\" list")
	}
	return &doc, nil
}

// Save writes pairs as JSON in the layout LoadFile expects.
func Save(path string, pairs []faq.Pair) error {
	if pairs == nil {
		pairs = []faq.Pair{}
	}
	data, err := json.MarshalIndent(document{FAQs: pairs}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling corpus: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating corpus directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing corpus: %w", err)
	}
	return nil
}

// Sample is written by "config init" so a fresh install has something to
// answer from.
func Sample() []faq.Pair {
	return []faq.Pair{
		{Question: "How do I reset my password?", Answer: "Use the 'Forgot password' link on the sign-in page and follow the emailed instructions."},
		{Question: "What are your opening hours?", Answer: "Support is available Monday to Friday, 9am to 6pm."},
		{Question: "How can I contact support?", Answer: "Email support@example.com or use the chat widget on the website."},
		{Question: "Where can I find my invoice?", Answer: "Invoices are listed under Account > Billing."},
	}
}
