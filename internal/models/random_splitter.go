package models

import "math/rand"

// RandomSplitter splits on a randomly chosen row, feature and threshold until
// depth runs out. It is useful for exercising tree mechanics without the
// cost of a Gini search. It is not safe for concurrent use.
type RandomSplitter struct {
    matrix [][]float64
    labels []bool
    rng    *rand.Rand
    depth  int
}

func NewRandomSplitter(matrix [][]float64, labels []bool, rng *rand.Rand, depth int) (*RandomSplitter, error) {
    if err := checkShape(matrix, labels); err != nil { return nil, err }
    return &RandomSplitter{matrix: matrix, labels: labels, rng: rng, depth: depth}, nil
}

func (s *RandomSplitter) Size() int { return len(s.matrix) }

func (s *RandomSplitter) Label() bool { return majority(countTrue(s.labels), s.Size()) }

func (s *RandomSplitter) Split() (*SplitResult, bool) {
    n := s.Size()
    if s.depth <= 0 || n == 0 || len(s.matrix[0]) == 0 { return nil, false }
    row := s.matrix[s.rng.Intn(n)]
    f := s.rng.Intn(len(row))
    t := row[f]

    lm, ll, rm, rl := partition(s.matrix, s.labels, f, t)
    parent := Gini(countTrue(s.labels), n)
    gain := parent - (float64(len(ll))*Gini(countTrue(ll), len(ll))+float64(len(rl))*Gini(countTrue(rl), len(rl)))/float64(n)
    return &SplitResult{
        Feature:   f,
        Threshold: t,
        Gain:      gain,
        Left:      &RandomSplitter{matrix: lm, labels: ll, rng: s.rng, depth: s.depth - 1},
        Right:     &RandomSplitter{matrix: rm, labels: rl, rng: s.rng, depth: s.depth - 1},
    }, true
}
