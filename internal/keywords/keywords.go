package keywords

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrAnnotator wraps any failure raised by the underlying annotator.
	ErrAnnotator = errors.New("annotator failed")
	// ErrMisaligned is returned when an annotator yields lemma and tag
	// sequences of different lengths.
	ErrMisaligned = errors.New("annotator returned misaligned lemmas and tags")
)

// Annotator turns text into aligned per-token lemmas and part-of-speech tags.
// Tags follow the Penn Treebank tag set.
type Annotator interface {
	Annotate(text string) (lemmas, tags []string, err error)
}

// contentTagPrefixes are the open word classes kept as keywords:
// nouns, verbs, adjectives and adverbs.
var contentTagPrefixes = []string{"NN", "VB", "JJ", "RB"}

// IsContentTag reports whether a Penn Treebank tag belongs to an open word class.
func IsContentTag(tag string) bool {
	for _, p := range contentTagPrefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}

// Set is an unordered collection of normalized keywords.
type Set map[string]struct{}

// NewSet builds a set from words as given.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Clone returns an independent copy. A nil set clones to nil.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for w := range s {
		out[w] = struct{}{}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func (s Set) String() string {
	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}

// Jaccard returns |a∩b| / |a∪b|. It is 0 when either set is empty.
func Jaccard(a, b Set) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	var inter int
	for w := range small {
		if _, ok := large[w]; ok {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// Extractor reduces text to its set of content-word lemmas.
type Extractor struct {
	annotator Annotator
}

func NewExtractor(a Annotator) *Extractor {
	return &Extractor{annotator: a}
}

// Extract annotates text and keeps the lower-cased lemmas of nouns, verbs,
// adjectives and adverbs. Blank text yields an empty set without consulting
// the annotator.
func (e *Extractor) Extract(text string) (set Set, err error) {
	if strings.TrimSpace(text) == "" {
		return Set{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			set = nil
			err = fmt.Errorf("%w: panic: %v", ErrAnnotator, r)
		}
	}()

	lemmas, tags, err := e.annotator.Annotate(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnnotator, err)
	}
	if len(lemmas) != len(tags) {
		return nil, fmt.Errorf("%w: %d lemmas, %d tags", ErrMisaligned, len(lemmas), len(tags))
	}

	set = make(Set)
	for i, lemma := range lemmas {
		if !IsContentTag(tags[i]) {
			continue
		}
		lemma = strings.ToLower(strings.TrimSpace(lemma))
		if lemma == "" {
			continue
		}
		set[lemma] = struct{}{}
	}
	return set, nil
}
