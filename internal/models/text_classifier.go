package models

import (
    "fmt"
    "io"
    "strings"
    "sync"

    "bm25tree/internal/features"
)

// TextClassifier pairs a fitted vectorizer with a tree grown on its output.
// Classify may be called concurrently; Prune waits for in-flight calls.
type TextClassifier struct {
    mu         sync.RWMutex
    vectorizer features.Vectorizer
    tree       *DecisionTree
}

// NewTextClassifier grows a tree on X, which must have been produced by the
// already fitted vectorizer v.
func NewTextClassifier(v features.Vectorizer, X [][]float64, y []bool, opts ...TreeOption) (*TextClassifier, error) {
    if _, err := v.Transform(nil); err != nil { return nil, err }
    for i, row := range X {
        if len(row) != v.NumFeatures() {
            return nil, fmt.Errorf("row %d has %d columns, vectorizer has %d: %w", i, len(row), v.NumFeatures(), ErrShapeMismatch)
        }
    }
    dt := NewDecisionTree()
    for _, opt := range opts { opt(dt) }
    if err := dt.Fit(X, y); err != nil { return nil, err }
    return &TextClassifier{vectorizer: v, tree: dt}, nil
}

// Train fits v on texts and grows a tree on the resulting matrix.
func Train(texts []string, labels []bool, v features.Vectorizer, opts ...TreeOption) (*TextClassifier, error) {
    if len(texts) != len(labels) {
        return nil, fmt.Errorf("%d texts, %d labels: %w", len(texts), len(labels), ErrShapeMismatch)
    }
    X, err := v.FitTransform(texts)
    if err != nil { return nil, fmt.Errorf("vectorize: %w", err) }
    return NewTextClassifier(v, X, labels, opts...)
}

func (c *TextClassifier) Classify(text string) (bool, error) {
    out, err := c.ClassifyBatch([]string{text})
    if err != nil { return false, err }
    return out[0], nil
}

func (c *TextClassifier) ClassifyBatch(texts []string) ([]bool, error) {
    X, err := c.vectorizer.Transform(texts)
    if err != nil { return nil, err }
    c.mu.RLock()
    defer c.mu.RUnlock()
    return c.tree.Predict(X), nil
}

// Prune collapses internal nodes reached by fewer than n training documents.
func (c *TextClassifier) Prune(n int) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.tree.Prune(n)
}

func (c *TextClassifier) Stats() TreeStats {
    c.mu.RLock()
    defer c.mu.RUnlock()
    return c.tree.Stats()
}

func (c *TextClassifier) Print(w io.Writer) error {
    c.mu.RLock()
    defer c.mu.RUnlock()
    return c.tree.Print(w, c.featureName)
}

func (c *TextClassifier) String() string {
    var sb strings.Builder
    _ = c.Print(&sb)
    return sb.String()
}

func (c *TextClassifier) Vectorizer() features.Vectorizer { return c.vectorizer }

func (c *TextClassifier) featureName(i int) string {
    name, err := c.vectorizer.Feature(i)
    if err != nil { return "" }
    return name
}
