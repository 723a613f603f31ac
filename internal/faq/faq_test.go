package faq

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swibrow/faq/internal/keywords"
)

// failingAnnotator delegates to the simple annotator but fails on any text
// containing trigger.
type failingAnnotator struct {
	trigger string
	panics  bool
}

func (f failingAnnotator) Annotate(text string) ([]string, []string, error) {
	if f.trigger != "" && strings.Contains(text, f.trigger) {
		if f.panics {
			panic("annotator crashed")
		}
		return nil, nil, errors.New("annotator unavailable")
	}
	return keywords.NewSimpleAnnotator().Annotate(text)
}

func newMatcher(t *testing.T, pairs []Pair, opts Options) *Matcher {
	t.Helper()
	m, err := New(keywords.NewExtractor(keywords.NewSimpleAnnotator()), pairs, opts)
	require.NoError(t, err)
	return m
}

var travelFAQs = []Pair{
	{Question: "How do I change my flight booking?", Answer: "Open Manage Booking and pick a new date."},
	{Question: "What is the baggage allowance?", Answer: "One checked bag up to 23kg."},
	{Question: "Do I need a visa for Japan?", Answer: "Check the embassy website for your nationality."},
	{Question: "How can I get a refund for a cancelled flight?", Answer: "Refunds are issued within 14 days."},
}

func TestBuiltinsAppendedInOrder(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())
	entries := m.Entries()
	require.Len(t, entries, len(travelFAQs)+5)

	for i, p := range travelFAQs {
		assert.Equal(t, p.Question, entries[i].Question)
	}
	want := []string{"what is your name", "who are you", "how are you", "what can you do", "help"}
	for i, q := range want {
		assert.Equal(t, q, entries[len(travelFAQs)+i].Question)
	}
}

func TestEntryKeywordsComputedOnce(t *testing.T) {
	m := newMatcher(t, nil, DefaultOptions())
	entries := m.Entries()
	assert.Equal(t, []string{"be", "name"}, entries[0].Keywords.Sorted())
	assert.Equal(t, []string{"help"}, entries[4].Keywords.Sorted())
}

func TestGreetingsBypassScoring(t *testing.T) {
	corpus := []Pair{{Question: "hello hi hey greetings", Answer: "corpus greeting"}}
	m := newMatcher(t, corpus, DefaultOptions())

	for _, q := range []string{"hello", "Hi", " HEY ", "greetings", "\tHello\n"} {
		t.Run(q, func(t *testing.T) {
			res := m.Match(q)
			assert.Equal(t, OutcomeGreeting, res.Outcome)
			assert.Equal(t, DefaultOptions().GreetingResponse, res.Text)
			assert.Nil(t, res.Entry)
		})
	}
}

func TestGreetingIsExactMatchOnly(t *testing.T) {
	m := newMatcher(t, nil, DefaultOptions())
	res := m.Match("hello there friend")
	assert.NotEqual(t, OutcomeGreeting, res.Outcome)
}

func TestWhatIsYourNameMatchesFirstEntry(t *testing.T) {
	corpus := []Pair{
		{Question: "What is your name", Answer: "I'm an FAQ Chatbot from the corpus."},
		{Question: "How are you", Answer: "I'm functioning well, from the corpus."},
	}
	m := newMatcher(t, corpus, DefaultOptions())

	res := m.Match("What's your name?")
	assert.Equal(t, OutcomeAnswer, res.Outcome)
	assert.Equal(t, "I'm an FAQ Chatbot from the corpus.", res.Text)
	assert.Equal(t, 1.0, res.Score)
	require.NotNil(t, res.Entry)
	assert.Equal(t, "What is your name", res.Entry.Question)
}

func TestNameQueryWithProseAnnotator(t *testing.T) {
	a, err := keywords.NewProseAnnotator()
	require.NoError(t, err)
	corpus := []Pair{
		{Question: "What is your name", Answer: "I'm an FAQ Chatbot from the corpus."},
		{Question: "How are you", Answer: "I'm functioning well, from the corpus."},
	}
	m, err := New(keywords.NewExtractor(a), corpus, DefaultOptions())
	require.NoError(t, err)

	res := m.Match("What's your name?")
	assert.Equal(t, OutcomeAnswer, res.Outcome)
	assert.Equal(t, "I'm an FAQ Chatbot from the corpus.", res.Text)
	assert.Equal(t, "{be, name}", res.Query.String())

	assert.Equal(t, DefaultOptions().FallbackMessage, m.Respond("the a of"))
}

func TestStopwordQueryFallsBack(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())

	res := m.Match("the a of")
	assert.Equal(t, OutcomeNoMatch, res.Outcome)
	assert.Equal(t, DefaultOptions().FallbackMessage, res.Text)
	assert.Empty(t, res.Query)
	assert.Nil(t, res.Entry)
	assert.Zero(t, res.Score)
	assert.NoError(t, res.Err)
}

func TestUnrelatedQueryFallsBack(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())
	res := m.Match("quantum entanglement physics")
	assert.Equal(t, OutcomeNoMatch, res.Outcome)
	assert.Equal(t, DefaultOptions().FallbackMessage, res.Text)
	assert.Less(t, res.Score, 0.5)
}

func TestBelowThresholdReportsBestCandidate(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())
	// {baggage, weight, limit, international} vs {be, baggage, allowance}
	res := m.Match("baggage weight limit international")
	assert.Equal(t, OutcomeNoMatch, res.Outcome)
	require.NotNil(t, res.Entry)
	assert.Equal(t, travelFAQs[1].Question, res.Entry.Question)
	assert.Greater(t, res.Score, 0.0)
}

func TestMatchesCorpusEntry(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())
	res := m.Match("what is the baggage allowance")
	assert.Equal(t, OutcomeAnswer, res.Outcome)
	assert.Equal(t, travelFAQs[1].Answer, res.Text)
}

func TestBuiltinHelp(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())
	assert.Equal(t, BuiltinPairs()[4].Answer, m.Respond("help"))
	assert.Equal(t, BuiltinPairs()[3].Answer, m.Respond("What can you do?"))
}

func TestTieGoesToEarliestEntry(t *testing.T) {
	corpus := []Pair{
		{Question: "book flight", Answer: "first"},
		{Question: "flight book", Answer: "second"},
		{Question: "Book a flight", Answer: "third"},
	}
	m := newMatcher(t, corpus, DefaultOptions())
	res := m.Match("flight booking")
	assert.Equal(t, OutcomeAnswer, res.Outcome)
	assert.Equal(t, "first", res.Text)
}

func TestEmptyKeywordEntryNeverSelected(t *testing.T) {
	corpus := []Pair{
		{Question: "the of and", Answer: "never"},
	}
	m := newMatcher(t, corpus, Options{
		SimilarityThreshold: 0,
		GreetingResponse:    "hi",
		FallbackMessage:     "fallback",
		FailureMessage:      "failure",
	})
	assert.Empty(t, m.Entries()[0].Keywords)

	res := m.Match("of the and")
	assert.Equal(t, OutcomeNoMatch, res.Outcome)
	assert.Equal(t, "fallback", res.Text)
}

func TestCustomThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.SimilarityThreshold = 0.15
	m := newMatcher(t, travelFAQs, opts)

	res := m.Match("baggage weight limit international")
	assert.Equal(t, OutcomeAnswer, res.Outcome)
	assert.Equal(t, travelFAQs[1].Answer, res.Text)
}

func TestCustomGreetings(t *testing.T) {
	opts := DefaultOptions()
	opts.GreetingPhrases = []string{"Namaste"}
	opts.GreetingResponse = "Namaste!"
	m := newMatcher(t, nil, opts)

	assert.Equal(t, "Namaste!", m.Respond("namaste"))
	assert.NotEqual(t, OutcomeGreeting, m.Match("hello").Outcome)
}

func TestInvalidOptions(t *testing.T) {
	ext := keywords.NewExtractor(keywords.NewSimpleAnnotator())
	for _, th := range []float64{-0.1, 1.01} {
		opts := DefaultOptions()
		opts.SimilarityThreshold = th
		_, err := New(ext, nil, opts)
		assert.Error(t, err)
	}
	_, err := New(nil, nil, DefaultOptions())
	assert.Error(t, err)
}

func TestEmptyMessagesRejected(t *testing.T) {
	ext := keywords.NewExtractor(keywords.NewSimpleAnnotator())

	_, err := New(ext, nil, Options{SimilarityThreshold: 0.5})
	require.Error(t, err)

	for name, mutate := range map[string]func(*Options){
		"greeting response": func(o *Options) { o.GreetingResponse = "" },
		"fallback message":  func(o *Options) { o.FallbackMessage = "" },
		"failure message":   func(o *Options) { o.FailureMessage = "" },
		"blank phrase":      func(o *Options) { o.GreetingPhrases = []string{"hello", ""} },
	} {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			mutate(&opts)
			_, err := New(ext, nil, opts)
			assert.Error(t, err)
		})
	}

	opts := DefaultOptions()
	opts.GreetingPhrases = nil
	_, err = New(ext, nil, opts)
	assert.NoError(t, err, "no greeting phrases is allowed")
}

func TestReturnedEntriesDoNotAliasCorpus(t *testing.T) {
	m := newMatcher(t, nil, DefaultOptions())

	res := m.Match("What is your name")
	require.Equal(t, OutcomeAnswer, res.Outcome)
	require.NotNil(t, res.Entry)
	res.Entry.Keywords["injected"] = struct{}{}

	listed := m.Entries()
	listed[1].Keywords["injected"] = struct{}{}
	listed[2].Question = "changed"

	fresh := m.Entries()
	assert.Equal(t, []string{"be", "name"}, fresh[0].Keywords.Sorted())
	assert.NotContains(t, fresh[1].Keywords, "injected")
	assert.Equal(t, "how are you", fresh[2].Question)
	assert.Equal(t, 1.0, m.Match("What is your name").Score)
}

func TestAnnotationFailureIsRecovered(t *testing.T) {
	ext := keywords.NewExtractor(failingAnnotator{trigger: "boom"})
	m, err := New(ext, travelFAQs, DefaultOptions())
	require.NoError(t, err)

	res := m.Match("boom baggage")
	assert.Equal(t, OutcomeFailure, res.Outcome)
	assert.Equal(t, DefaultOptions().FailureMessage, res.Text)
	assert.ErrorIs(t, res.Err, keywords.ErrAnnotator)
}

func TestAnnotatorPanicIsRecovered(t *testing.T) {
	ext := keywords.NewExtractor(failingAnnotator{trigger: "boom", panics: true})
	m, err := New(ext, travelFAQs, DefaultOptions())
	require.NoError(t, err)

	var res Result
	assert.NotPanics(t, func() { res = m.Match("boom") })
	assert.Equal(t, OutcomeFailure, res.Outcome)
	assert.Error(t, res.Err)
}

func TestFailingQuestionKeptWithEmptyKeywords(t *testing.T) {
	corpus := []Pair{
		{Question: "boom question", Answer: "unreachable"},
		{Question: "baggage allowance", Answer: "reachable"},
	}
	ext := keywords.NewExtractor(failingAnnotator{trigger: "boom"})
	m, err := New(ext, corpus, DefaultOptions())
	require.NoError(t, err)

	entries := m.Entries()
	require.Len(t, entries, 2+len(BuiltinPairs()))
	assert.Empty(t, entries[0].Keywords)
	assert.Equal(t, "reachable", m.Respond("baggage allowance"))
	assert.Equal(t, DefaultOptions().FallbackMessage, m.Respond("question"))
}

func TestFailureAndNoMatchAreDistinguishable(t *testing.T) {
	ext := keywords.NewExtractor(failingAnnotator{trigger: "boom"})
	m, err := New(ext, travelFAQs, DefaultOptions())
	require.NoError(t, err)

	failure := m.Match("boom")
	noMatch := m.Match("quantum physics")
	assert.NotEqual(t, failure.Outcome, noMatch.Outcome)
	assert.NotEqual(t, failure.Text, noMatch.Text)
}

func TestRespondEmptyAndMalformed(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())
	for _, q := range []string{"", "   ", "???!!!", "\x00\x01", strings.Repeat("a ", 1000)} {
		assert.NotEmpty(t, m.Respond(q), "%q", q)
	}
	assert.Equal(t, DefaultOptions().FallbackMessage, m.Respond(""))
}

func TestRespondIdempotent(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())
	first := m.Respond("Do I need a visa for Japan?")
	assert.Equal(t, travelFAQs[2].Answer, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Respond("Do I need a visa for Japan?"))
	}
	assert.Len(t, m.Entries(), len(travelFAQs)+len(BuiltinPairs()))
}

func TestMatchConcurrent(t *testing.T) {
	m := newMatcher(t, travelFAQs, DefaultOptions())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, travelFAQs[3].Answer, m.Respond("refund for cancelled flight"))
			}
		}()
	}
	wg.Wait()
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "answer", OutcomeAnswer.String())
	assert.Equal(t, "greeting", OutcomeGreeting.String())
	assert.Equal(t, "failure", OutcomeFailure.String())
	assert.Equal(t, "no_match", OutcomeNoMatch.String())
}
