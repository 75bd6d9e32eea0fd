package models

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func twoClusters() ([][]float64, []bool) {
    var X [][]float64
    var y []bool
    for i := range 20 {
        X = append(X, []float64{float64(i % 3), 0})
        y = append(y, false)
        X = append(X, []float64{float64(i % 3), 10})
        y = append(y, true)
    }
    return X, y
}

func TestBaggingFitPredict(t *testing.T) {
    X, y := twoClusters()
    bg := NewBagging()
    bg.NEstimators = 9
    require.NoError(t, bg.Fit(X, y))
    require.Len(t, bg.Trees, 9)
    assert.Equal(t, y, bg.Predict(X))
    assert.Equal(t, 1.0, Accuracy(y, bg.Predict(X)))
}

func TestBaggingSeeded(t *testing.T) {
    X, y := twoClusters()
    fit := func() []string {
        bg := NewBagging()
        bg.NEstimators, bg.Seed = 5, 7
        require.NoError(t, bg.Fit(X, y))
        out := make([]string, len(bg.Trees))
        for i, dt := range bg.Trees { out[i] = dt.String() }
        return out
    }
    assert.Equal(t, fit(), fit())
}

func TestBaggingEmpty(t *testing.T) {
    bg := NewBagging()
    assert.Equal(t, []bool{false}, bg.Predict([][]float64{{1}}))
    assert.ErrorIs(t, bg.Fit([][]float64{{1}}, nil), ErrShapeMismatch)
}

func TestBaggingPrune(t *testing.T) {
    X, y := twoClusters()
    bg := NewBagging()
    bg.NEstimators = 3
    require.NoError(t, bg.Fit(X, y))
    bg.Prune(len(X) + 1)
    for _, dt := range bg.Trees {
        assert.True(t, dt.Root.IsLeaf())
    }
}

func TestModelsImplementInterfaces(t *testing.T) {
    var _ Model = NewDecisionTree()
    var _ Model = NewBagging()
    var _ Model = NewRandomForest()
    var _ Model = NewGradientBoosting()
    var _ Pruner = NewDecisionTree()
    var _ Pruner = NewBagging()
    var _ Pruner = &TextClassifier{}
}

func TestConfusion(t *testing.T) {
    y := []bool{true, true, false, false, true}
    p := []bool{true, false, false, true, true}
    c := NewConfusion(y, p)
    assert.Equal(t, Confusion{TP: 2, FP: 1, TN: 1, FN: 1}, c)
    assert.InDelta(t, 0.6, c.Accuracy(), 1e-12)
    assert.InDelta(t, 2.0/3, c.Precision(), 1e-12)
    assert.InDelta(t, 2.0/3, c.Recall(), 1e-12)
    assert.InDelta(t, 2.0/3, c.F1(), 1e-12)

    var zero Confusion
    assert.Equal(t, 0.0, zero.F1())
    assert.Equal(t, 0.0, Accuracy(nil, nil))
}

func TestRandomForest(t *testing.T) {
    X, y := twoClusters()
    rf := NewRandomForest()
    rf.NEstimators, rf.MaxFeatures = 11, 2
    require.NoError(t, rf.Fit(X, y))
    require.Len(t, rf.Trees, 11)
    assert.Equal(t, y, rf.Predict(X))

    rf.MaxFeatures = 1
    require.NoError(t, rf.Fit(X, y))
    for _, dt := range rf.Trees {
        require.Len(t, dt.Features, 1)
        if !dt.Root.IsLeaf() {
            assert.Equal(t, dt.Features[0], dt.Root.Feature, "splits only on the drawn column")
        }
    }
}

func TestGradientBoosting(t *testing.T) {
    X, y := twoClusters()
    gb := NewGradientBoosting()
    gb.NEstimators = 20
    require.NoError(t, gb.Fit(X, y))
    require.NotEmpty(t, gb.Trees)
    assert.Equal(t, 1, gb.Trees[0].Feature)
    assert.Equal(t, y, gb.Predict(X))

    for i, p := range gb.PredictProba(X) {
        if y[i] { assert.Greater(t, p, 0.5) } else { assert.Less(t, p, 0.5) }
    }
    assert.ErrorIs(t, gb.Fit(X, y[:3]), ErrShapeMismatch)
}
