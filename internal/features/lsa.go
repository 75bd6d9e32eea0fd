package features

import (
    "errors"
    "fmt"

    "gonum.org/v1/gonum/mat"
)

const DefaultComponents = 50

var ErrFactorize = errors.New("svd factorization failed")

// LSA projects BM25+ vectors onto the leading right singular vectors of the
// fitted corpus matrix (latent semantic analysis).
// https://scikit-learn.org/0.23/modules/decomposition.html#lsa
type LSA struct {
    bm25       *BM25
    k          int
    fitted     bool
    components *mat.Dense // vocabulary x k, nil when k is 0
}

// NewLSA keeps at most k components; k <= 0 selects DefaultComponents.
func NewLSA(bm25 *BM25, k int) *LSA {
    if k <= 0 { k = DefaultComponents }
    return &LSA{bm25: bm25, k: k}
}

func (l *LSA) Fit(texts []string) error {
    _, err := l.fitMatrix(texts)
    return err
}

func (l *LSA) FitTransform(texts []string) ([][]float64, error) {
    X, err := l.fitMatrix(texts)
    if err != nil { return nil, err }
    return l.project(X, len(texts)), nil
}

func (l *LSA) Transform(texts []string) ([][]float64, error) {
    if !l.fitted { return nil, fmt.Errorf("lsa transform: %w", ErrNotFitted) }
    rows, err := l.bm25.Transform(texts)
    if err != nil { return nil, err }
    return l.project(dense(rows, l.bm25.NumFeatures()), len(texts)), nil
}

func (l *LSA) Feature(index int) (string, error) {
    if !l.fitted { return "", fmt.Errorf("lsa feature: %w", ErrNotFitted) }
    if index < 0 || index >= l.NumFeatures() {
        return "", fmt.Errorf("lsa feature %d of %d: %w", index, l.NumFeatures(), ErrFeatureIndex)
    }
    return fmt.Sprintf("lsa[%d]", index), nil
}

func (l *LSA) NumFeatures() int {
    if l.components == nil { return 0 }
    _, k := l.components.Dims()
    return k
}

func (l *LSA) fitMatrix(texts []string) (*mat.Dense, error) {
    rows, err := l.bm25.FitTransform(texts)
    if err != nil { return nil, err }
    X := dense(rows, l.bm25.NumFeatures())
    l.components, l.fitted = nil, false
    if X != nil {
        var svd mat.SVD
        if !svd.Factorize(X, mat.SVDThin) { return nil, fmt.Errorf("lsa fit: %w", ErrFactorize) }
        var v mat.Dense
        svd.VTo(&v)
        f, c := v.Dims()
        l.components = mat.DenseCopyOf(v.Slice(0, f, 0, min(l.k, c)))
    }
    l.fitted = true
    return X, nil
}

// project returns X times the components as n rows; X may be nil for an
// empty corpus or vocabulary.
func (l *LSA) project(X *mat.Dense, n int) [][]float64 {
    out := make([][]float64, n)
    if X == nil || l.components == nil {
        for i := range out { out[i] = []float64{} }
        return out
    }
    var p mat.Dense
    p.Mul(X, l.components)
    for i := range out { out[i] = mat.Row(nil, i, &p) }
    return out
}

func dense(rows [][]float64, cols int) *mat.Dense {
    if len(rows) == 0 || cols == 0 { return nil }
    data := make([]float64, 0, len(rows)*cols)
    for _, r := range rows { data = append(data, r...) }
    return mat.NewDense(len(rows), cols, data)
}
