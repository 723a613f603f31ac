package faq

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/swibrow/faq/internal/keywords"
)

// Outcome tags how a query was resolved.
type Outcome int

const (
	OutcomeNoMatch Outcome = iota
	OutcomeAnswer
	OutcomeGreeting
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAnswer:
		return "answer"
	case OutcomeGreeting:
		return "greeting"
	case OutcomeFailure:
		return "failure"
	default:
		return "no_match"
	}
}

// Result is the outcome of a single query. Text is always set and is what
// the user sees. Entry is the best-scoring entry, set for answers and for
// no-match results that had a non-zero best score.
type Result struct {
	Outcome Outcome
	Text    string
	Entry   *Entry
	Score   float64
	Query   keywords.Set
	Err     error
}

// Match resolves query against the corpus. It never panics and never
// returns an empty Text.
func (m *Matcher) Match(query string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("matching query: panic: %v", r)
			m.log.WithField("error", err.Error()).Error("[faq.Match] recovered")
			res = Result{Outcome: OutcomeFailure, Text: m.opts.FailureMessage, Err: err}
		}
	}()

	if m.isGreeting(query) {
		return Result{Outcome: OutcomeGreeting, Text: m.opts.GreetingResponse}
	}

	qkw, err := m.extractor.Extract(query)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"query": query,
			"error": err.Error(),
		}).Error("[faq.Match] failed to extract keywords")
		return Result{Outcome: OutcomeFailure, Text: m.opts.FailureMessage, Err: err}
	}

	best, score := m.best(qkw)
	res = Result{Outcome: OutcomeNoMatch, Text: m.opts.FallbackMessage, Score: score, Query: qkw}
	if best != nil {
		e := best.clone()
		res.Entry = &e
	}
	if best != nil && score >= m.opts.SimilarityThreshold {
		res.Outcome = OutcomeAnswer
		res.Text = best.Answer
	}

	m.log.WithFields(logrus.Fields{
		"keywords": qkw.String(),
		"score":    score,
		"outcome":  res.Outcome.String(),
	}).Debug("[faq.Match] query scored")

	return res
}

// Respond returns the text to show for query.
func (m *Matcher) Respond(query string) string {
	return m.Match(query).Text
}

// best scans entries in corpus order. Only a strictly higher score replaces
// the current best, so the earliest entry wins ties. Entries scoring zero
// are never returned.
func (m *Matcher) best(query keywords.Set) (*Entry, float64) {
	var (
		best      *Entry
		bestScore float64
	)
	for i := range m.entries {
		s := keywords.Jaccard(query, m.entries[i].Keywords)
		if s > bestScore {
			bestScore = s
			best = &m.entries[i]
		}
	}
	return best, bestScore
}
