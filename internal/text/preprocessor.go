package text

import (
	"iter"
	"strings"
	"unicode"
)

// Preprocessor turns raw text into stemmed, lowercased terms. It holds no
// mutable state and is safe for concurrent use.
type Preprocessor struct {
	stemmer     Stemmer
	stopwords   map[string]struct{}
	dropPunct   bool
	stripMarkup bool
	normalize   bool
}

type Option func(*Preprocessor)

// WithStemmer replaces the default Porter stemmer.
func WithStemmer(s Stemmer) Option {
	return func(p *Preprocessor) {
		if s != nil {
			p.stemmer = s
		}
	}
}

// WithStopWords drops the given words (case-insensitive) before stemming.
func WithStopWords(words []string) Option {
	return func(p *Preprocessor) {
		for _, w := range words {
			p.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithoutPunctuation drops tokens that contain no letter or digit.
func WithoutPunctuation() Option {
	return func(p *Preprocessor) { p.dropPunct = true }
}

// WithMarkupStripping extracts text nodes from HTML input first.
func WithMarkupStripping() Option {
	return func(p *Preprocessor) { p.stripMarkup = true }
}

// WithoutNormalization skips Unicode normalization.
func WithoutNormalization() Option {
	return func(p *Preprocessor) { p.normalize = false }
}

func NewPreprocessor(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		stemmer:   PorterStemmer{},
		stopwords: make(map[string]struct{}),
		normalize: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultPreprocessor keeps every token and stems with Porter.
var DefaultPreprocessor = NewPreprocessor()

// Process builds the bag of words for s.
func (p *Preprocessor) Process(s string) BagOfWords {
	return NewBagOfWords(p.Terms(s))
}

// Terms yields the processed terms of s in order.
func (p *Preprocessor) Terms(s string) iter.Seq[string] {
	if p.stripMarkup {
		s = StripMarkup(s)
	}
	if p.normalize {
		s = Normalize(s)
	}
	return func(yield func(string) bool) {
		for tok := range Tokens(s) {
			w := strings.ToLower(tok)
			if p.skip(w) {
				continue
			}
			if !yield(p.stemmer.Stem(w)) {
				return
			}
		}
	}
}

func (p *Preprocessor) skip(w string) bool {
	if _, ok := p.stopwords[w]; ok {
		return true
	}
	return p.dropPunct && isPunctuation(w)
}

func isPunctuation(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
