package models

import "errors"

var (
    ErrShapeMismatch = errors.New("matrix length != labels length")
    ErrEmptyTree     = errors.New("tree has not been grown")
)

type Model interface {
    Fit(X [][]float64, y []bool) error
    Predict(X [][]float64) []bool
    Name() string
}

// Pruner is implemented by models whose trees can be collapsed after fitting.
type Pruner interface {
    Prune(n int)
}
