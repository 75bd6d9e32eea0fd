package models

import (
    "cmp"
    "runtime"
    "slices"

    "golang.org/x/sync/errgroup"
)

const (
    DefaultMinSizeSplit        = 5
    DefaultMinImpurityDecrease = 0.001

    // minGain absorbs rounding in the weighted child impurity, which can
    // leave a partition that changes nothing with a gain of ~1e-17.
    minGain = 1e-12
)

type splitConfig struct {
    minSize     int
    minDecrease float64
    workers     int
    features    []int
}

type SplitOption func(*splitConfig)

// MinSizeSplit is the minimum number of rows a node needs to be split.
func MinSizeSplit(n int) SplitOption { return func(c *splitConfig) { c.minSize = n } }

// MinImpurityDecrease is the minimum gain, scaled by the fraction of the
// original rows at the node, that a split must reach.
func MinImpurityDecrease(d float64) SplitOption { return func(c *splitConfig) { c.minDecrease = d } }

// Workers bounds the number of features searched concurrently.
func Workers(n int) SplitOption { return func(c *splitConfig) { c.workers = n } }

// FeatureSubset restricts the search to the given columns at every node.
func FeatureSubset(idx []int) SplitOption {
    return func(c *splitConfig) {
        c.features = slices.Clone(idx)
        slices.Sort(c.features)
    }
}

// GiniSplitter finds the split with the largest Gini information gain.
type GiniSplitter struct {
    matrix       [][]float64
    labels       []bool
    originalSize int
    positives    int
    impurity     float64
    cfg          *splitConfig
}

// candidate is the best threshold found for one feature.
type candidate struct {
    feature   int
    threshold float64
    gain      float64
    ok        bool
}

func NewGiniSplitter(matrix [][]float64, labels []bool, opts ...SplitOption) (*GiniSplitter, error) {
    if err := checkShape(matrix, labels); err != nil { return nil, err }
    cfg := &splitConfig{minSize: DefaultMinSizeSplit, minDecrease: DefaultMinImpurityDecrease}
    for _, opt := range opts { opt(cfg) }
    if cfg.workers <= 0 { cfg.workers = runtime.GOMAXPROCS(0) }
    return newGiniSplitter(matrix, labels, len(matrix), cfg), nil
}

func newGiniSplitter(matrix [][]float64, labels []bool, originalSize int, cfg *splitConfig) *GiniSplitter {
    c := countTrue(labels)
    return &GiniSplitter{
        matrix:       matrix,
        labels:       labels,
        originalSize: originalSize,
        positives:    c,
        impurity:     Gini(c, len(labels)),
        cfg:          cfg,
    }
}

func (s *GiniSplitter) Size() int { return len(s.matrix) }

func (s *GiniSplitter) Label() bool { return majority(s.positives, s.Size()) }

// Impurity is the Gini impurity of the rows at this node.
func (s *GiniSplitter) Impurity() float64 { return s.impurity }

func (s *GiniSplitter) Split() (*SplitResult, bool) {
    n := s.Size()
    if n == 0 || n < s.cfg.minSize { return nil, false }

    search := s.cfg.features
    if search == nil {
        search = make([]int, len(s.matrix[0]))
        for f := range search { search[f] = f }
    }
    cands := make([]candidate, len(search))
    var g errgroup.Group
    g.SetLimit(s.cfg.workers)
    for i, f := range search {
        g.Go(func() error {
            cands[i] = s.bestThreshold(f)
            return nil
        })
    }
    _ = g.Wait()

    // Scan in feature order so equal gains keep the lowest index.
    best := candidate{}
    for _, c := range cands {
        if c.ok && (!best.ok || c.gain > best.gain) { best = c }
    }
    if !best.ok { return nil, false }
    if float64(n)/float64(s.originalSize)*best.gain < s.cfg.minDecrease { return nil, false }

    lm, ll, rm, rl := partition(s.matrix, s.labels, best.feature, best.threshold)
    return &SplitResult{
        Feature:   best.feature,
        Threshold: best.threshold,
        Gain:      best.gain,
        Left:      newGiniSplitter(lm, ll, s.originalSize, s.cfg),
        Right:     newGiniSplitter(rm, rl, s.originalSize, s.cfg),
    }, true
}

// bestThreshold sweeps the distinct values of feature f in ascending order.
// Only a strictly larger gain replaces the incumbent, so ties keep the lowest
// threshold, and a feature without positive gain yields no candidate.
func (s *GiniSplitter) bestThreshold(f int) candidate {
    n := s.Size()
    idx := make([]int, n)
    for i := range idx { idx[i] = i }
    slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(s.matrix[a][f], s.matrix[b][f]) })

    best := candidate{feature: f}
    cl := 0
    for k := 0; k < n; {
        t := s.matrix[idx[k]][f]
        for {
            if s.labels[idx[k]] { cl++ }
            k++
            if k == n || s.matrix[idx[k]][f] != t { break }
        }
        nl, nr := k, n-k
        if nr == 0 { break }
        cr := s.positives - cl
        weighted := (float64(nl)*Gini(cl, nl) + float64(nr)*Gini(cr, nr)) / float64(n)
        gain := s.impurity - weighted
        if gain > best.gain && gain > minGain {
            best.threshold, best.gain, best.ok = t, gain, true
        }
    }
    return best
}
