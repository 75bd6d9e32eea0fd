package models

import (
    "math"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "pgregory.net/rapid"
)

func TestGini(t *testing.T) {
    assert.Equal(t, 0.0, Gini(0, 0))
    assert.Equal(t, 0.0, Gini(0, 7))
    assert.Equal(t, 0.0, Gini(7, 7))
    assert.Equal(t, 0.5, Gini(2, 4))
    assert.InDelta(t, 0.375, Gini(1, 4), 1e-12)
}

func TestGiniBounds(t *testing.T) {
    rapid.Check(t, func(t *rapid.T) {
        n := rapid.IntRange(0, 1000).Draw(t, "n")
        c := rapid.IntRange(0, n).Draw(t, "c")
        g := Gini(c, n)
        if g < 0 || g > 0.5 {
            t.Fatalf("Gini(%d, %d) = %v", c, n, g)
        }
        if math.Abs(g-Gini(n-c, n)) > 1e-12 {
            t.Fatalf("Gini not symmetric for c=%d n=%d", c, n)
        }
    })
}

func TestGiniSplitterShapeMismatch(t *testing.T) {
    _, err := NewGiniSplitter([][]float64{{1}, {2}}, []bool{true})
    assert.ErrorIs(t, err, ErrShapeMismatch)

    _, err = NewGiniSplitter([][]float64{{1, 2}, {3}}, []bool{true, false})
    assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestGiniSplitterTooSmall(t *testing.T) {
    s, err := NewGiniSplitter([][]float64{{1}, {2}, {3}, {4}}, []bool{false, false, true, true})
    require.NoError(t, err)
    _, ok := s.Split()
    assert.False(t, ok, "4 rows is below the default minimum of 5")
    assert.Equal(t, 4, s.Size())
}

func TestGiniSplitterEmpty(t *testing.T) {
    s, err := NewGiniSplitter(nil, nil, MinSizeSplit(0))
    require.NoError(t, err)
    _, ok := s.Split()
    assert.False(t, ok)
    assert.False(t, s.Label())
}

func TestGiniSplitterSeparable(t *testing.T) {
    s, err := NewGiniSplitter(
        [][]float64{{1, 9}, {2, 9}, {3, 9}, {4, 9}},
        []bool{false, false, true, true},
        MinSizeSplit(1),
    )
    require.NoError(t, err)
    assert.Equal(t, 0.5, s.Impurity())

    res, ok := s.Split()
    require.True(t, ok)
    assert.Equal(t, 0, res.Feature)
    assert.Equal(t, 2.0, res.Threshold)
    assert.Equal(t, 0.5, res.Gain)
    assert.Equal(t, 2, res.Left.Size())
    assert.Equal(t, 2, res.Right.Size())
    assert.False(t, res.Left.Label())
    assert.True(t, res.Right.Label())

    _, ok = res.Left.Split()
    assert.False(t, ok, "pure nodes have no positive gain")
}

func TestGiniSplitterTies(t *testing.T) {
    // Thresholds 1 and 3 produce mirrored partitions with equal gain.
    s, err := NewGiniSplitter(
        [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}},
        []bool{true, false, false, true},
        MinSizeSplit(1), MinImpurityDecrease(0),
    )
    require.NoError(t, err)
    res, ok := s.Split()
    require.True(t, ok)
    assert.Equal(t, 0, res.Feature, "lowest feature index wins")
    assert.Equal(t, 1.0, res.Threshold, "lowest threshold wins")
}

func TestGiniSplitterMinImpurityDecrease(t *testing.T) {
    X := [][]float64{{1}, {2}, {3}, {4}}
    y := []bool{false, false, true, true}

    s, err := NewGiniSplitter(X, y, MinSizeSplit(1), MinImpurityDecrease(0.6))
    require.NoError(t, err)
    _, ok := s.Split()
    assert.False(t, ok)

    s, err = NewGiniSplitter(X, y, MinSizeSplit(1), MinImpurityDecrease(0.5))
    require.NoError(t, err)
    _, ok = s.Split()
    assert.True(t, ok)
}

func TestGiniSplitterConstantFeature(t *testing.T) {
    s, err := NewGiniSplitter([][]float64{{1}, {1}, {1}, {1}, {1}, {1}}, []bool{true, false, true, false, true, false})
    require.NoError(t, err)
    _, ok := s.Split()
    assert.False(t, ok)
    assert.False(t, s.Label(), "ties go to false")
}

func TestGiniSplitterChildrenPartitionRows(t *testing.T) {
    rapid.Check(t, func(t *rapid.T) {
        X, y := matrixGen(t)
        s, err := NewGiniSplitter(X, y, MinSizeSplit(1), MinImpurityDecrease(0))
        require.NoError(t, err)
        res, ok := s.Split()
        if !ok { return }
        if res.Gain <= 0 {
            t.Fatalf("split with gain %v", res.Gain)
        }
        if res.Left.Size()+res.Right.Size() != s.Size() {
            t.Fatalf("children sizes %d+%d != %d", res.Left.Size(), res.Right.Size(), s.Size())
        }
        if res.Left.Size() == 0 || res.Right.Size() == 0 {
            t.Fatalf("split with an empty side")
        }
        for _, row := range res.Left.(*GiniSplitter).matrix {
            if row[res.Feature] > res.Threshold { t.Fatalf("left row above threshold") }
        }
        for _, row := range res.Right.(*GiniSplitter).matrix {
            if row[res.Feature] <= res.Threshold { t.Fatalf("right row at or below threshold") }
        }
    })
}

// matrixGen draws a small matrix with few distinct values so ties are common.
func matrixGen(t *rapid.T) ([][]float64, []bool) {
    rows := rapid.IntRange(1, 30).Draw(t, "rows")
    cols := rapid.IntRange(1, 4).Draw(t, "cols")
    X := make([][]float64, rows)
    y := make([]bool, rows)
    for i := range X {
        X[i] = make([]float64, cols)
        for j := range X[i] {
            X[i][j] = float64(rapid.IntRange(0, 5).Draw(t, "x"))
        }
        y[i] = rapid.Bool().Draw(t, "y")
    }
    return X, y
}
