package models

import (
    "cmp"
    "math"
    "runtime"
    "slices"

    "golang.org/x/sync/errgroup"
)

// stump is a one-split regression tree fitted to logistic residuals.
type stump struct {
    Feature   int
    Threshold float64
    LeftVal   float64
    RightVal  float64
}

func (s stump) value(x []float64) float64 {
    if x[s.Feature] <= s.Threshold { return s.LeftVal }
    return s.RightVal
}

// GradientBoosting fits stumps to the gradient of the logistic loss.
type GradientBoosting struct {
    NEstimators  int
    LearningRate float64
    // MinSamples is the minimum number of rows on each side of a stump.
    MinSamples int
    Workers    int
    Init       float64
    Trees      []stump
}

func NewGradientBoosting() *GradientBoosting {
    return &GradientBoosting{NEstimators: 50, LearningRate: 0.1, MinSamples: 1}
}

func (gb *GradientBoosting) Name() string { return "GradientBoosting" }

func sigmoid(z float64) float64 { return 1.0 / (1.0 + math.Exp(-z)) }

func (gb *GradientBoosting) Fit(X [][]float64, y []bool) error {
    if err := checkShape(X, y); err != nil { return err }
    gb.Trees = nil
    n := len(X)
    if n == 0 { return nil }

    base := float64(countTrue(y)) / float64(n)
    base = math.Min(math.Max(base, 1e-3), 1-1e-3)
    gb.Init = math.Log(base / (1.0 - base))
    F := make([]float64, n)
    for i := range F { F[i] = gb.Init }

    workers := gb.Workers
    if workers <= 0 { workers = runtime.GOMAXPROCS(0) }
    order := sortedColumns(X, workers)

    r := make([]float64, n)
    for range gb.NEstimators {
        for i := range r {
            t := 0.0
            if y[i] { t = 1 }
            r[i] = t - sigmoid(F[i])
        }

        cands := make([]stump, len(order))
        sse := make([]float64, len(order))
        var g errgroup.Group
        g.SetLimit(workers)
        for j := range order {
            g.Go(func() error {
                cands[j], sse[j] = gb.bestStump(X, r, order[j], j)
                return nil
            })
        }
        _ = g.Wait()

        best := -1
        for j := range cands {
            if cands[j].Feature < 0 { continue }
            if best < 0 || sse[j] < sse[best] { best = j }
        }
        if best < 0 { break }
        st := cands[best]
        gb.Trees = append(gb.Trees, st)
        for i := range F { F[i] += gb.LearningRate * st.value(X[i]) }
    }
    return nil
}

// bestStump sweeps the rows of feature j in ascending order, using running
// sums to score each distinct threshold by residual sum of squares.
func (gb *GradientBoosting) bestStump(X [][]float64, r []float64, idx []int, j int) (stump, float64) {
    n := len(idx)
    total, totalSq := 0.0, 0.0
    for _, v := range r { total += v; totalSq += v * v }

    best := stump{Feature: -1}
    bestSSE := math.MaxFloat64
    left := 0.0
    for k := 0; k < n; {
        t := X[idx[k]][j]
        for {
            left += r[idx[k]]
            k++
            if k == n || X[idx[k]][j] != t { break }
        }
        nl, nr := float64(k), float64(n-k)
        if k < gb.MinSamples || n-k < gb.MinSamples || nr == 0 { continue }
        right := total - left
        sse := totalSq - left*left/nl - right*right/nr
        if sse < bestSSE {
            bestSSE = sse
            best = stump{Feature: j, Threshold: t, LeftVal: left / nl, RightVal: right / nr}
        }
    }
    return best, bestSSE
}

func (gb *GradientBoosting) PredictProba(X [][]float64) []float64 {
    out := make([]float64, len(X))
    for i := range X {
        f := gb.Init
        for _, t := range gb.Trees { f += gb.LearningRate * t.value(X[i]) }
        out[i] = sigmoid(f)
    }
    return out
}

func (gb *GradientBoosting) Predict(X [][]float64) []bool {
    p := gb.PredictProba(X)
    out := make([]bool, len(p))
    for i := range p { out[i] = p[i] > 0.5 }
    return out
}

// sortedColumns returns, per column, the row indices ordered by value.
func sortedColumns(X [][]float64, workers int) [][]int {
    out := make([][]int, len(X[0]))
    var g errgroup.Group
    g.SetLimit(workers)
    for j := range out {
        g.Go(func() error {
            idx := make([]int, len(X))
            for i := range idx { idx[i] = i }
            slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(X[a][j], X[b][j]) })
            out[j] = idx
            return nil
        })
    }
    _ = g.Wait()
    return out
}
