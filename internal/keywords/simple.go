package keywords

import (
	"strings"
	"unicode"

	"github.com/surgebase/porter2"
)

// lexicon tags the closed word classes. Anything missing is treated as a noun.
var lexicon = map[string]string{
	// determiners
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "that": "DT",
	"these": "DT", "those": "DT", "some": "DT", "any": "DT", "every": "DT",
	"each": "DT", "no": "DT", "all": "DT", "both": "DT", "either": "DT",
	"neither": "DT", "another": "DT",

	// prepositions and subordinating conjunctions
	"of": "IN", "in": "IN", "on": "IN", "at": "IN", "by": "IN",
	"for": "IN", "with": "IN", "from": "IN", "about": "IN", "into": "IN",
	"onto": "IN", "over": "IN", "under": "IN", "after": "IN", "before": "IN",
	"between": "IN", "through": "IN", "during": "IN", "without": "IN",
	"within": "IN", "against": "IN", "among": "IN", "upon": "IN", "than": "IN",
	"as": "IN", "if": "IN", "because": "IN", "since": "IN", "until": "IN",
	"while": "IN", "although": "IN", "though": "IN", "whether": "IN",
	"to": "TO",

	// pronouns
	"i": "PRP", "me": "PRP", "you": "PRP", "he": "PRP", "she": "PRP",
	"it": "PRP", "we": "PRP", "they": "PRP", "him": "PRP", "her": "PRP",
	"us": "PRP", "them": "PRP", "myself": "PRP", "yourself": "PRP",
	"itself": "PRP", "ourselves": "PRP", "themselves": "PRP",
	"my": "PRP$", "your": "PRP$", "his": "PRP$", "its": "PRP$",
	"our": "PRP$", "their": "PRP$",

	// wh-words
	"what": "WP", "who": "WP", "whom": "WP", "whose": "WP$", "which": "WDT",
	"how": "WRB", "when": "WRB", "where": "WRB", "why": "WRB",

	"and": "CC", "or": "CC", "but": "CC", "nor": "CC", "yet": "CC",

	"can": "MD", "ca": "MD", "could": "MD", "will": "MD", "wo": "MD",
	"would": "MD", "shall": "MD", "should": "MD", "may": "MD",
	"might": "MD", "must": "MD", "'ll": "MD", "'d": "MD",

	"there": "EX",
	"hello": "UH", "hi": "UH", "hey": "UH", "oh": "UH", "please": "UH",
	"yes": "UH", "ok": "UH", "okay": "UH",

	// auxiliaries
	"is": "VBZ", "are": "VBP", "am": "VBP", "'re": "VBP", "'m": "VBP",
	"was": "VBD", "were": "VBD", "be": "VB", "been": "VBN", "being": "VBG",
	"do": "VBP", "does": "VBZ", "did": "VBD", "done": "VBN", "doing": "VBG",
	"have": "VBP", "has": "VBZ", "had": "VBD", "having": "VBG", "'ve": "VBP",

	"not": "RB", "n't": "RB",
}

// irregular maps inflected forms to their dictionary form ahead of stemming.
var irregular = map[string]string{
	"be": "be", "do": "do", "have": "have", "not": "not",
	"is": "be", "are": "be", "am": "be", "'re": "be", "'m": "be",
	"was": "be", "were": "be", "been": "be", "being": "be",
	"does": "do", "did": "do", "done": "do", "doing": "do",
	"has": "have", "had": "have", "having": "have", "'ve": "have",
	"n't": "not", "'ll": "will", "'d": "would", "ca": "can", "wo": "will",
	"went": "go", "gone": "go", "got": "get", "made": "make",
	"paid": "pay", "bought": "buy", "sent": "send", "took": "take",
	"taken": "take", "gave": "give", "given": "give", "left": "leave",
	"children": "child", "people": "person", "men": "man", "women": "woman",
	"feet": "foot", "teeth": "tooth", "mice": "mouse",
}

// possessiveHosts precede a "'s" that contracts "is" rather than marks a possessive.
var possessiveHosts = map[string]bool{
	"what": true, "who": true, "where": true, "how": true, "when": true,
	"why": true, "that": true, "it": true, "he": true, "she": true,
	"there": true, "here": true,
}

// SimpleAnnotator is a dependency-light annotator: a closed-class lexicon
// tagger with porter2 stemming standing in for lemmatization.
type SimpleAnnotator struct{}

func NewSimpleAnnotator() *SimpleAnnotator {
	return &SimpleAnnotator{}
}

func (SimpleAnnotator) Annotate(text string) ([]string, []string, error) {
	tokens := tokenize(text)
	lemmas := make([]string, 0, len(tokens))
	tags := make([]string, 0, len(tokens))

	for i, tok := range tokens {
		lower := strings.ToLower(tok)
		tag := tagToken(lower)
		if lower == "'s" {
			if i > 0 && possessiveHosts[strings.ToLower(tokens[i-1])] {
				tag = "VBZ"
			} else {
				tag = "POS"
			}
		}
		lemmas = append(lemmas, lemmatize(lower, tag))
		tags = append(tags, tag)
	}
	return lemmas, tags, nil
}

func tagToken(lower string) string {
	if tag, ok := lexicon[lower]; ok {
		return tag
	}
	if isNumber(lower) {
		return "CD"
	}
	return "NN"
}

func lemmatize(lower, tag string) string {
	if lower == "'s" && tag == "VBZ" {
		return "be"
	}
	if lemma, ok := irregular[lower]; ok {
		return lemma
	}
	if !IsContentTag(tag) || len(lower) < 3 {
		return lower
	}
	return porter2.Stem(lower)
}

// tokenize splits text into words and Penn Treebank style contractions.
// Punctuation is dropped.
func tokenize(text string) []string {
	text = strings.NewReplacer("’", "'", "‘", "'").Replace(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	var tokens []string
	for _, w := range words {
		w = strings.Trim(w, "'")
		if w == "" {
			continue
		}
		tokens = append(tokens, splitContraction(w)...)
	}
	return tokens
}

var contractionSuffixes = []string{"'s", "'re", "'m", "'ve", "'ll", "'d"}

func splitContraction(w string) []string {
	lower := strings.ToLower(w)
	if strings.HasSuffix(lower, "n't") && len(w) > 3 {
		return []string{w[:len(w)-3], w[len(w)-3:]}
	}
	for _, suf := range contractionSuffixes {
		if strings.HasSuffix(lower, suf) && len(w) > len(suf) {
			return []string{w[:len(w)-len(suf)], w[len(w)-len(suf):]}
		}
	}
	return []string{w}
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
