package models

import (
    "math/rand"
    "runtime"

    "golang.org/x/sync/errgroup"
)

// Bagging is a bootstrap ensemble of Gini trees voting by majority.
type Bagging struct {
    NEstimators         int
    MaxDepth            int
    MinSamples          int
    MinImpurityDecrease float64
    Seed                int64
    Workers             int
    Trees               []*DecisionTree
}

func NewBagging() *Bagging {
    return &Bagging{
        NEstimators:         30,
        MinSamples:          DefaultMinSizeSplit,
        MinImpurityDecrease: DefaultMinImpurityDecrease,
        Seed:                1,
        Trees:               []*DecisionTree{},
    }
}

func (bg *Bagging) Name() string { return "Bagging" }

func (bg *Bagging) Fit(X [][]float64, y []bool) error {
    if err := checkShape(X, y); err != nil { return err }
    if bg.NEstimators <= 0 { bg.NEstimators = 30 }
    n := len(X)

    // Draw every bootstrap sample up front so the ensemble depends only on
    // Seed, not on goroutine scheduling.
    rng := rand.New(rand.NewSource(bg.Seed))
    samples := make([][]int, bg.NEstimators)
    for k := range samples {
        idx := make([]int, n)
        for i := range idx { idx[i] = rng.Intn(n) }
        samples[k] = idx
    }

    workers := bg.Workers
    if workers <= 0 { workers = runtime.GOMAXPROCS(0) }
    trees := make([]*DecisionTree, bg.NEstimators)
    var g errgroup.Group
    g.SetLimit(workers)
    for k, idx := range samples {
        g.Go(func() error {
            Xb := make([][]float64, n)
            yb := make([]bool, n)
            for i, j := range idx { Xb[i] = X[j]; yb[i] = y[j] }
            dt := NewDecisionTree()
            dt.MaxDepth = bg.MaxDepth
            dt.MinSamplesSplit = bg.MinSamples
            dt.MinImpurityDecrease = bg.MinImpurityDecrease
            dt.Workers = 1
            if err := dt.Fit(Xb, yb); err != nil { return err }
            trees[k] = dt
            return nil
        })
    }
    if err := g.Wait(); err != nil { return err }
    bg.Trees = trees
    return nil
}

func (bg *Bagging) Predict(X [][]float64) []bool {
    ps := bg.PredictProba(X)
    out := make([]bool, len(ps))
    for i := range ps { out[i] = ps[i] > 0.5 }
    return out
}

// PredictProba is the fraction of trees voting true for each row.
func (bg *Bagging) PredictProba(X [][]float64) []float64 {
    out := make([]float64, len(X))
    if len(bg.Trees) == 0 { return out }
    for _, dt := range bg.Trees {
        for i, p := range dt.Predict(X) { if p { out[i]++ } }
    }
    m := float64(len(bg.Trees))
    for i := range out { out[i] /= m }
    return out
}

func (bg *Bagging) Prune(n int) {
    for _, dt := range bg.Trees { dt.Prune(n) }
}
