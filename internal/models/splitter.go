package models

import "fmt"

// Splitter divides a set of labeled rows into left and right subsets.
type Splitter interface {
    // Split returns the chosen rule and the two child splitters, or false when
    // the rows should become a leaf.
    Split() (*SplitResult, bool)
    // Label is the majority label, false on ties.
    Label() bool
    Size() int
}

// SplitResult is the rule "row[Feature] <= Threshold goes left".
type SplitResult struct {
    Feature   int
    Threshold float64
    Gain      float64
    Left      Splitter
    Right     Splitter
}

// Gini is the impurity of n binary labels of which c are true.
func Gini(c, n int) float64 {
    if n == 0 || c == 0 || c == n { return 0 }
    p := float64(c) / float64(n)
    return 1 - (p*p + (1-p)*(1-p))
}

func majority(positives, n int) bool { return 2*positives > n }

func countTrue(labels []bool) int {
    c := 0
    for _, l := range labels { if l { c++ } }
    return c
}

func checkShape(matrix [][]float64, labels []bool) error {
    if len(matrix) != len(labels) {
        return fmt.Errorf("%d rows, %d labels: %w", len(matrix), len(labels), ErrShapeMismatch)
    }
    for i := 1; i < len(matrix); i++ {
        if len(matrix[i]) != len(matrix[0]) {
            return fmt.Errorf("row %d has %d columns, want %d: %w", i, len(matrix[i]), len(matrix[0]), ErrShapeMismatch)
        }
    }
    return nil
}

// partition copies rows (and their labels) into the left and right subsets of
// the rule, preserving their relative order.
func partition(matrix [][]float64, labels []bool, f int, t float64) (lm [][]float64, ll []bool, rm [][]float64, rl []bool) {
    for i, row := range matrix {
        if row[f] <= t {
            lm = append(lm, row)
            ll = append(ll, labels[i])
        } else {
            rm = append(rm, row)
            rl = append(rl, labels[i])
        }
    }
    return lm, ll, rm, rl
}
