package features

import (
    "errors"
    "runtime"
)

var (
    ErrNotFitted    = errors.New("must fit before transform")
    ErrFeatureIndex = errors.New("feature index out of range")
)

// Vectorizer maps raw texts to rows of a fixed-width design matrix. The width
// and every statistic behind it are fixed by Fit; Transform never changes them.
type Vectorizer interface {
    Fit(texts []string) error
    Transform(texts []string) ([][]float64, error)
    FitTransform(texts []string) ([][]float64, error)
    Feature(index int) (string, error)
    NumFeatures() int
}

func workers(n int) int {
    if n > 0 { return n }
    return runtime.GOMAXPROCS(0)
}
