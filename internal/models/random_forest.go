package models

import (
    "math"
    "math/rand"
    "runtime"

    "golang.org/x/sync/errgroup"
)

// RandomForest is Bagging where each tree also draws a random subset of
// MaxFeatures columns (sqrt of the width when 0) and only splits on those.
type RandomForest struct {
    NEstimators         int
    MaxDepth            int
    MinSamples          int
    MinImpurityDecrease float64
    MaxFeatures         int
    Seed                int64
    Workers             int
    Trees               []*DecisionTree
}

func NewRandomForest() *RandomForest {
    return &RandomForest{
        NEstimators:         30,
        MinSamples:          DefaultMinSizeSplit,
        MinImpurityDecrease: DefaultMinImpurityDecrease,
        Seed:                1,
        Trees:               []*DecisionTree{},
    }
}

func (rf *RandomForest) Name() string { return "RandomForest" }

func (rf *RandomForest) Fit(X [][]float64, y []bool) error {
    if err := checkShape(X, y); err != nil { return err }
    if rf.NEstimators <= 0 { rf.NEstimators = 30 }
    n := len(X)
    nFeats := 0
    if n > 0 { nFeats = len(X[0]) }
    maxFeats := rf.MaxFeatures
    if maxFeats <= 0 || maxFeats > nFeats {
        maxFeats = int(math.Max(1, math.Min(float64(nFeats), math.Sqrt(float64(nFeats)))))
    }

    rng := rand.New(rand.NewSource(rf.Seed))
    samples := make([][]int, rf.NEstimators)
    subsets := make([][]int, rf.NEstimators)
    for k := range samples {
        idx := make([]int, n)
        for i := range idx { idx[i] = rng.Intn(n) }
        samples[k] = idx
        if nFeats > 0 { subsets[k] = rng.Perm(nFeats)[:maxFeats] } else { subsets[k] = []int{} }
    }

    workers := rf.Workers
    if workers <= 0 { workers = runtime.GOMAXPROCS(0) }
    trees := make([]*DecisionTree, rf.NEstimators)
    var g errgroup.Group
    g.SetLimit(workers)
    for k, idx := range samples {
        g.Go(func() error {
            Xb := make([][]float64, n)
            yb := make([]bool, n)
            for i, j := range idx { Xb[i] = X[j]; yb[i] = y[j] }
            dt := NewDecisionTree()
            dt.MaxDepth = rf.MaxDepth
            dt.MinSamplesSplit = rf.MinSamples
            dt.MinImpurityDecrease = rf.MinImpurityDecrease
            dt.Features = subsets[k]
            dt.Workers = 1
            if err := dt.Fit(Xb, yb); err != nil { return err }
            trees[k] = dt
            return nil
        })
    }
    if err := g.Wait(); err != nil { return err }
    rf.Trees = trees
    return nil
}

func (rf *RandomForest) Predict(X [][]float64) []bool {
    ps := rf.PredictProba(X)
    out := make([]bool, len(ps))
    for i := range ps { out[i] = ps[i] > 0.5 }
    return out
}

func (rf *RandomForest) PredictProba(X [][]float64) []float64 {
    out := make([]float64, len(X))
    if len(rf.Trees) == 0 { return out }
    for _, dt := range rf.Trees {
        for i, p := range dt.Predict(X) { if p { out[i]++ } }
    }
    m := float64(len(rf.Trees))
    for i := range out { out[i] /= m }
    return out
}

func (rf *RandomForest) Prune(n int) {
    for _, dt := range rf.Trees { dt.Prune(n) }
}
