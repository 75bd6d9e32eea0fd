package text

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball/english"
)

// Stemmer reduces a token to its root form.
type Stemmer interface {
	Stem(word string) string
}

// PorterStemmer implements the original Porter (1980) algorithm.
// https://tartarus.org/martin/PorterStemmer/
type PorterStemmer struct{}

func (PorterStemmer) Stem(word string) string { return Stem(word) }

// SnowballStemmer uses the Porter2 English stemmer.
type SnowballStemmer struct{}

func (SnowballStemmer) Stem(word string) string { return english.Stem(word, true) }

type identityStemmer struct{}

func (identityStemmer) Stem(word string) string { return word }

// StemmerByName resolves a configured stemmer name: porter, snowball or none.
func StemmerByName(name string) (Stemmer, error) {
	switch strings.ToLower(name) {
	case "", "porter":
		return PorterStemmer{}, nil
	case "snowball":
		return SnowballStemmer{}, nil
	case "none":
		return identityStemmer{}, nil
	}
	return nil, fmt.Errorf("unknown stemmer %q", name)
}

// Stem returns the Porter stem of word. Words of two runes or fewer are
// returned unchanged. Only lowercase ASCII vowels are treated as vowels.
func Stem(word string) string {
	b := []rune(word)
	if len(b) <= 2 {
		return word
	}
	p := &porter{b: b, k: len(b) - 1}
	p.step1ab()
	p.step1c()
	p.step2()
	p.step3()
	p.step4()
	p.step5()
	return string(p.b[:p.k+1])
}

// porter holds the word being stemmed; b[0:k+1] is the current word and j
// marks the end of the stem once ends() has matched a suffix.
type porter struct {
	b    []rune
	j, k int
}

func (p *porter) cons(i int) bool {
	switch p.b[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		return i == 0 || !p.cons(i-1)
	}
	return true
}

// m counts the VC sequences in b[0:j+1].
func (p *porter) m() int {
	n, i := 0, 0
	for {
		if i > p.j {
			return n
		}
		if !p.cons(i) {
			break
		}
		i++
	}
	i++
	for {
		for {
			if i > p.j {
				return n
			}
			if p.cons(i) {
				break
			}
			i++
		}
		i++
		n++
		for {
			if i > p.j {
				return n
			}
			if !p.cons(i) {
				break
			}
			i++
		}
		i++
	}
}

func (p *porter) vowelInStem() bool {
	for i := 0; i <= p.j; i++ {
		if !p.cons(i) {
			return true
		}
	}
	return false
}

func (p *porter) doublec(j int) bool {
	if j < 1 || p.b[j] != p.b[j-1] {
		return false
	}
	return p.cons(j)
}

// cvc is true when i-2,i-1,i is consonant-vowel-consonant and the last
// consonant is not w, x or y.
func (p *porter) cvc(i int) bool {
	if i < 2 || !p.cons(i) || p.cons(i-1) || !p.cons(i-2) {
		return false
	}
	switch p.b[i] {
	case 'w', 'x', 'y':
		return false
	}
	return true
}

func (p *porter) ends(s string) bool {
	suffix := []rune(s)
	o := p.k - len(suffix) + 1
	if o < 0 {
		return false
	}
	for i, r := range suffix {
		if p.b[o+i] != r {
			return false
		}
	}
	p.j = p.k - len(suffix)
	return true
}

// set replaces b[j+1:k+1] with s.
func (p *porter) set(s string) {
	p.b = append(p.b[:p.j+1], []rune(s)...)
	p.k = len(p.b) - 1
}

func (p *porter) r(s string) {
	if p.m() > 0 {
		p.set(s)
	}
}

// step1ab removes plurals and -ed or -ing.
func (p *porter) step1ab() {
	if p.b[p.k] == 's' {
		switch {
		case p.ends("sses"):
			p.k -= 2
		case p.ends("ies"):
			p.set("i")
		case p.b[p.k-1] != 's':
			p.k--
		}
	}
	if p.ends("eed") {
		if p.m() > 0 {
			p.k--
		}
		return
	}
	if !(p.ends("ed") || p.ends("ing")) || !p.vowelInStem() {
		return
	}
	p.k = p.j
	switch {
	case p.ends("at"):
		p.set("ate")
	case p.ends("bl"):
		p.set("ble")
	case p.ends("iz"):
		p.set("ize")
	case p.doublec(p.k):
		p.k--
		switch p.b[p.k] {
		case 'l', 's', 'z':
			p.k++
		}
	default:
		if p.m() == 1 && p.cvc(p.k) {
			p.set("e")
		}
	}
}

// step1c turns terminal y to i when there is another vowel in the stem.
func (p *porter) step1c() {
	if p.ends("y") && p.vowelInStem() {
		p.b[p.k] = 'i'
	}
}

// step2 maps double suffixes to single ones.
func (p *porter) step2() {
	if p.k == 0 {
		return
	}
	var rules [][2]string
	switch p.b[p.k-1] {
	case 'a':
		rules = [][2]string{{"ational", "ate"}, {"tional", "tion"}}
	case 'c':
		rules = [][2]string{{"enci", "ence"}, {"anci", "ance"}}
	case 'e':
		rules = [][2]string{{"izer", "ize"}}
	case 'l':
		rules = [][2]string{{"bli", "ble"}, {"alli", "al"}, {"entli", "ent"}, {"eli", "e"}, {"ousli", "ous"}}
	case 'o':
		rules = [][2]string{{"ization", "ize"}, {"ation", "ate"}, {"ator", "ate"}}
	case 's':
		rules = [][2]string{{"alism", "al"}, {"iveness", "ive"}, {"fulness", "ful"}, {"ousness", "ous"}}
	case 't':
		rules = [][2]string{{"aliti", "al"}, {"iviti", "ive"}, {"biliti", "ble"}}
	case 'g':
		rules = [][2]string{{"logi", "log"}}
	}
	p.replaceFirst(rules)
}

// step3 deals with -ic-, -full, -ness etc.
func (p *porter) step3() {
	var rules [][2]string
	switch p.b[p.k] {
	case 'e':
		rules = [][2]string{{"icate", "ic"}, {"ative", ""}, {"alize", "al"}}
	case 'i':
		rules = [][2]string{{"iciti", "ic"}}
	case 'l':
		rules = [][2]string{{"ical", "ic"}, {"ful", ""}}
	case 's':
		rules = [][2]string{{"ness", ""}}
	}
	p.replaceFirst(rules)
}

// replaceFirst applies the first rule whose suffix matches, if m() > 0.
func (p *porter) replaceFirst(rules [][2]string) {
	for _, rule := range rules {
		if p.ends(rule[0]) {
			p.r(rule[1])
			return
		}
	}
}

// step4 takes off -ant, -ence etc. in context <c>vcvc<v>.
func (p *porter) step4() {
	if p.k == 0 {
		return
	}
	var suffixes []string
	switch p.b[p.k-1] {
	case 'a':
		suffixes = []string{"al"}
	case 'c':
		suffixes = []string{"ance", "ence"}
	case 'e':
		suffixes = []string{"er"}
	case 'i':
		suffixes = []string{"ic"}
	case 'l':
		suffixes = []string{"able", "ible"}
	case 'n':
		suffixes = []string{"ant", "ement", "ment", "ent"}
	case 'o':
		if p.ends("ion") && p.j >= 0 && (p.b[p.j] == 's' || p.b[p.j] == 't') {
			break
		}
		suffixes = []string{"ou"}
	case 's':
		suffixes = []string{"ism"}
	case 't':
		suffixes = []string{"ate", "iti"}
	case 'u':
		suffixes = []string{"ous"}
	case 'v':
		suffixes = []string{"ive"}
	case 'z':
		suffixes = []string{"ize"}
	default:
		return
	}
	if suffixes != nil && !p.endsAny(suffixes) {
		return
	}
	if p.m() > 1 {
		p.k = p.j
	}
}

func (p *porter) endsAny(suffixes []string) bool {
	for _, s := range suffixes {
		if p.ends(s) {
			return true
		}
	}
	return false
}

// step5 removes a final -e if m() > 1, and changes -ll to -l if m() > 1.
func (p *porter) step5() {
	p.j = p.k
	if p.b[p.k] == 'e' {
		a := p.m()
		if a > 1 || a == 1 && !p.cvc(p.k-1) {
			p.k--
		}
	}
	if p.b[p.k] == 'l' && p.doublec(p.k) && p.m() > 1 {
		p.k--
	}
}
