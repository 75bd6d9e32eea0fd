package text

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// Word-final clitics, tried in this order (leftmost alternative wins).
const clitics = `'|:|-|'S|'D|'M|'LL|'RE|'VE|N'T|'s|'d|'m|'ll|'re|'ve|n't`

var (
	reSeparator   = regexp.MustCompile("([?!()\";/|`])")
	reCommaLeft   = regexp.MustCompile(`([^\s]),`)
	reCommaRight  = regexp.MustCompile(`,([^\s])`)
	reLeadQuote   = regexp.MustCompile(`^(')`)
	reFloatQuote  = regexp.MustCompile(`([^a-zA-Z0-9])'`)
	reCliticEnd   = regexp.MustCompile(`(` + clitics + `)$`)
	reCliticPunct = regexp.MustCompile(`(` + clitics + `)([^a-zA-Z0-9])`)

	reWordPeriod = regexp.MustCompile(`^[A-Za-z0-9]+\.$`)
	reAbbrev     = regexp.MustCompile(`^([A-Za-z]\.([A-Za-z]\.)+|[A-Z][bcdfghj-nptvxz]+\.)$`)
)

// Tokens returns the tokens of text in order. The sequence is recomputed on
// every range, so it can be consumed more than once.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, word := range strings.Fields(segment(text)) {
			if head, ok := splitPeriod(word); ok {
				if !yield(head) || !yield(".") {
					return
				}
				continue
			}
			if !yield(word) {
				return
			}
		}
	}
}

// Tokenize collects Tokens(text) into a slice.
func Tokenize(text string) []string {
	return slices.Collect(Tokens(text))
}

// segment pads separators and clitics with blanks so the
// result can be split on whitespace.
func segment(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = reSeparator.ReplaceAllString(s, " ${1} ")
	s = reCommaLeft.ReplaceAllString(s, "${1} ,")
	s = reCommaRight.ReplaceAllString(s, " , ${1}")
	s = reLeadQuote.ReplaceAllString(s, "${1} ")
	s = reFloatQuote.ReplaceAllString(s, "${1} '")
	s = reCliticEnd.ReplaceAllString(s, " ${1}")
	s = reCliticPunct.ReplaceAllString(s, " ${1} ${2}")
	return s
}

// splitPeriod reports whether word ends in a sentence period that should be a
// token of its own. Plain alphanumeric words and abbreviations keep theirs.
func splitPeriod(word string) (string, bool) {
	if len(word) < 2 || !strings.HasSuffix(word, ".") {
		return word, false
	}
	if reWordPeriod.MatchString(word) || reAbbrev.MatchString(word) {
		return word, false
	}
	return word[:len(word)-1], true
}
