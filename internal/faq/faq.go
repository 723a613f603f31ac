package faq

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/swibrow/faq/internal/keywords"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Pair is a raw question/answer record as supplied by a corpus source.
type Pair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Entry is a corpus item with keywords derived from its question.
type Entry struct {
	Question string
	Answer   string
	Keywords keywords.Set
}

const (
	identityAnswer = "I'm an FAQ Chatbot designed to help you find information."
	statusAnswer   = "I'm functioning well, thank you for asking. How can I help you today?"
)

// BuiltinPairs are appended after the loaded corpus, in this order.
func BuiltinPairs() []Pair {
	return []Pair{
		{Question: "what is your name", Answer: identityAnswer},
		{Question: "who are you", Answer: identityAnswer},
		{Question: "how are you", Answer: statusAnswer},
		{Question: "what can you do", Answer: "I can answer questions from my FAQ database."},
		{Question: "help", Answer: "You can ask me questions and I'll try to provide answers. Type 'exit' to quit."},
	}
}

// Options configures a Matcher. FallbackMessage is returned when no entry
// clears SimilarityThreshold; FailureMessage when the query could not be
// processed at all. Every message must be non-empty.
type Options struct {
	SimilarityThreshold float64  `validate:"gte=0,lte=1"`
	GreetingPhrases     []string `validate:"dive,required"`
	GreetingResponse    string   `validate:"required"`
	FallbackMessage     string   `validate:"required"`
	FailureMessage      string   `validate:"required"`
}

func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: 0.5,
		GreetingPhrases:     []string{"hello", "hi", "hey", "greetings"},
		GreetingResponse:    "Hello! How can I help you today?",
		FallbackMessage:     "I don't have information about that. Could you try asking a different question?",
		FailureMessage:      "I'm having trouble processing your question. Could you try asking in a different way?",
	}
}

func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid matcher options: %w", err)
	}
	return nil
}

// Option customizes a Matcher.
type Option func(*Matcher)

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Matcher) {
		m.log = l
	}
}

// Matcher answers queries from a fixed corpus. It is immutable after New
// and safe for concurrent use.
type Matcher struct {
	extractor *keywords.Extractor
	entries   []Entry
	greetings map[string]struct{}
	opts      Options
	log       logrus.FieldLogger
}

// New builds the corpus from pairs followed by BuiltinPairs.
// A question whose keywords cannot be extracted is kept with an empty
// keyword set, so it never matches.
func New(extractor *keywords.Extractor, pairs []Pair, opts Options, options ...Option) (*Matcher, error) {
	if extractor == nil {
		return nil, fmt.Errorf("keyword extractor is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	m := &Matcher{
		extractor: extractor,
		greetings: make(map[string]struct{}, len(opts.GreetingPhrases)),
		opts:      opts,
		log:       discardLogger(),
	}
	for _, o := range options {
		o(m)
	}
	for _, g := range opts.GreetingPhrases {
		m.greetings[normalizeGreeting(g)] = struct{}{}
	}

	all := make([]Pair, 0, len(pairs)+len(BuiltinPairs()))
	all = append(all, pairs...)
	all = append(all, BuiltinPairs()...)

	m.entries = make([]Entry, 0, len(all))
	for _, p := range all {
		kw, err := extractor.Extract(p.Question)
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"question": p.Question,
				"error":    err.Error(),
			}).Warn("[faq.New] keyword extraction failed, entry will never match")
			kw = keywords.Set{}
		}
		m.entries = append(m.entries, Entry{
			Question: p.Question,
			Answer:   p.Answer,
			Keywords: kw,
		})
	}

	return m, nil
}

// Entries returns a deep copy of the corpus in match order.
func (m *Matcher) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.clone()
	}
	return out
}

func (e Entry) clone() Entry {
	e.Keywords = e.Keywords.Clone()
	return e
}

func (m *Matcher) isGreeting(query string) bool {
	_, ok := m.greetings[normalizeGreeting(query)]
	return ok
}

func normalizeGreeting(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
