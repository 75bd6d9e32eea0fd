package text

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var quotes = strings.NewReplacer(
	"‘", "'", "’", "'", "‛", "'", "′", "'",
	"“", "\"", "”", "\"", "‟", "\"", "″", "\"",
)

// Normalize applies NFKC and folds typographic quotes to ASCII. Control
// characters are dropped except tab and line breaks.
func Normalize(s string) string {
	s = quotes.Replace(norm.NFKC.String(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// StripMarkup returns the text nodes of an HTML fragment separated by spaces.
// Input without markup is returned as is.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			t := strings.TrimSpace(string(z.Text()))
			if t == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t)
		}
	}
}
