// Package textindex implements a TF-IDF vectorizer fitted once over a corpus
// and cosine similarity between texts projected onto the fitted vocabulary.
//
// Text is tokenized with prose, then each token is split into lowercase runs
// of letters, digits or underscores at least two characters long, so
// "scikit-learn" yields "scikit" and "learn". IDF is smoothed: ln((1+n)/(1+df)) + 1. Term frequency is
// the raw count and vectors are L2-normalized, so similarity is a dot product.
package textindex

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

const minTokenRunes = 2

// Vector is a sparse, L2-normalized TF-IDF vector keyed by term.
type Vector map[string]float64

// Index holds the vocabulary and IDF weights learned at fit time.
// It is immutable after Fit and safe for concurrent use.
type Index struct {
	idf       map[string]float64
	stopWords map[string]struct{}
	documents int
}

// Fit learns the vocabulary and IDF weights from docs.
func Fit(docs []string, opts ...Option) (*Index, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	ix := &Index{idf: make(map[string]float64)}
	WithStopWords(DefaultStopWords)(ix)
	for _, opt := range opts {
		opt(ix)
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range ix.tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	n := float64(len(docs))
	for term, count := range df {
		ix.idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	ix.documents = len(docs)
	return ix, nil
}

// VocabularySize returns the number of distinct terms learned at fit time.
func (ix *Index) VocabularySize() int { return len(ix.idf) }

// Documents returns the size of the corpus the index was fitted on.
func (ix *Index) Documents() int { return ix.documents }

// Transform projects text onto the fitted vocabulary. Unknown terms are dropped.
// The result is empty when no in-vocabulary term occurs.
func (ix *Index) Transform(text string) Vector {
	tokens := ix.tokenize(text)
	if len(tokens) == 0 {
		return Vector{}
	}

	vec := make(Vector)
	for _, tok := range tokens {
		if _, ok := ix.idf[tok]; ok {
			vec[tok]++
		}
	}

	var norm float64
	for term, tf := range vec {
		w := tf * ix.idf[term]
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return Vector{}
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// Similarity returns the cosine similarity of a and b in [0,1].
// It is 0 when either text is empty or shares nothing with the vocabulary.
func (ix *Index) Similarity(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	return Cosine(ix.Transform(a), ix.Transform(b))
}

// Cosine computes the cosine similarity of two L2-normalized vectors.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, x := range a {
		dot += x * b[term]
	}
	// float error can push a self-match a hair past 1
	return math.Max(0, math.Min(1, dot))
}

// tokenize runs the prose tokenizer with tagging, segmentation and entity
// extraction off, splits every token on non-word runes and drops short
// tokens and stop words.
func (ix *Index) tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw := []string{text}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err == nil {
		toks := doc.Tokens()
		raw = make([]string, 0, len(toks))
		for _, t := range toks {
			raw = append(raw, t.Text)
		}
	}

	var out []string
	for _, tok := range raw {
		for _, w := range strings.FieldsFunc(strings.ToLower(tok), notWordRune) {
			if utf8.RuneCountInString(w) < minTokenRunes {
				continue
			}
			if _, stop := ix.stopWords[w]; stop {
				continue
			}
			out = append(out, w)
		}
	}
	return out
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
