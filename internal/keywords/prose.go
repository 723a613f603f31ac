package keywords

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// contractions maps Penn Treebank contraction tokens to their base forms.
var contractions = map[string]string{
	"'s":  "be",
	"'re": "be",
	"'m":  "be",
	"n't": "not",
	"'ve": "have",
	"'ll": "will",
	"'d":  "would",
	"ca":  "can",
	"wo":  "will",
}

// ProseAnnotator tags tokens with prose's averaged perceptron model and
// lemmatizes them with golem's English dictionary. The tagging model is
// loaded once and shared by every call.
type ProseAnnotator struct {
	model      *prose.Model
	lemmatizer *golem.Lemmatizer
}

func NewProseAnnotator() (*ProseAnnotator, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading english lemmatizer: %w", err)
	}

	warm, err := prose.NewDocument("load the tagger",
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("loading tagging model: %w", err)
	}
	if warm.Model == nil {
		return nil, fmt.Errorf("loading tagging model: no model returned")
	}

	return &ProseAnnotator{model: warm.Model, lemmatizer: lem}, nil
}

func (p *ProseAnnotator) Annotate(text string) ([]string, []string, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("tagging text: %w", err)
	}

	tokens := doc.Tokens()
	lemmas := make([]string, 0, len(tokens))
	tags := make([]string, 0, len(tokens))
	prev := ""
	for _, tok := range tokens {
		lower := strings.ToLower(tok.Text)
		tag := tok.Tag
		// "where's", "it's": the tagger reads these as possessives.
		if lower == "'s" && possessiveHosts[prev] {
			tag = "VBZ"
		}
		lemmas = append(lemmas, p.lemma(tok.Text, tag))
		tags = append(tags, tag)
		prev = lower
	}
	return lemmas, tags, nil
}

func (p *ProseAnnotator) lemma(word, tag string) string {
	lower := strings.ToLower(word)
	if base, ok := contractions[lower]; ok {
		// possessive 's stays as is; its POS tag is dropped later anyway
		if lower != "'s" || strings.HasPrefix(tag, "VB") {
			return base
		}
	}
	return p.lemmatizer.Lemma(lower)
}

// NewAnnotator returns the annotator registered under name.
func NewAnnotator(name string) (Annotator, error) {
	switch name {
	case "", "prose":
		return NewProseAnnotator()
	case "simple":
		return NewSimpleAnnotator(), nil
	default:
		return nil, fmt.Errorf("unknown annotator: %s", name)
	}
}
