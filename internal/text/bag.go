package text

import (
	"iter"
	"slices"
)

// BagOfWords stores term-frequency counts for one document. It is immutable
// once built.
type BagOfWords struct {
	counts map[string]int
	order  []string
	size   int
	maxTF  int
}

// NewBagOfWords counts the words of seq.
func NewBagOfWords(words iter.Seq[string]) BagOfWords {
	bag := BagOfWords{counts: make(map[string]int)}
	for w := range words {
		c := bag.counts[w] + 1
		if c == 1 {
			bag.order = append(bag.order, w)
		}
		bag.counts[w] = c
		bag.size++
		if c > bag.maxTF {
			bag.maxTF = c
		}
	}
	return bag
}

// BagOf is NewBagOfWords over a slice.
func BagOf(words ...string) BagOfWords {
	return NewBagOfWords(slices.Values(words))
}

// Size is the total number of words, counting repeats.
func (b BagOfWords) Size() int { return b.size }

// Unique returns the distinct words in first-appearance order.
func (b BagOfWords) Unique() []string { return slices.Clone(b.order) }

// TF returns the count of term, 0 when absent.
func (b BagOfWords) TF(term string) int { return b.counts[term] }

func (b BagOfWords) MaxTF() int { return b.maxTF }
