package models

import (
    "bufio"
    "fmt"
    "io"
    "strconv"
    "strings"
    "sync"
)

type DTNode struct {
    Feature   int
    Threshold float64
    Gain      float64
    Label     bool
    // Samples is the number of training rows that reached the node.
    Samples int
    Left    *DTNode
    Right   *DTNode
}

func (n *DTNode) IsLeaf() bool { return n.Left == nil && n.Right == nil }

type DecisionTree struct {
    MinSamplesSplit     int
    MinImpurityDecrease float64
    // MaxDepth bounds the number of splits on any path; 0 means unbounded.
    MaxDepth int
    Workers  int
    // Features, when set, limits the columns considered for splits.
    Features []int
    // Subtrees above ParallelDepth are grown on separate goroutines. The
    // splitter passed to Grow must then be safe for concurrent use.
    ParallelDepth int
    Root          *DTNode
}

type TreeStats struct {
    Nodes  int `json:"nodes"`
    Leaves int `json:"leaves"`
    Depth  int `json:"depth"`
}

// FeatureNamer maps a column index to a display name.
type FeatureNamer func(int) string

func NewDecisionTree() *DecisionTree {
    return &DecisionTree{MinSamplesSplit: DefaultMinSizeSplit, MinImpurityDecrease: DefaultMinImpurityDecrease}
}

func (dt *DecisionTree) Name() string { return "DecisionTree" }

func (dt *DecisionTree) Fit(X [][]float64, y []bool) error {
    opts := []SplitOption{
        MinSizeSplit(dt.MinSamplesSplit),
        MinImpurityDecrease(dt.MinImpurityDecrease),
        Workers(dt.Workers),
    }
    if dt.Features != nil { opts = append(opts, FeatureSubset(dt.Features)) }
    s, err := NewGiniSplitter(X, y, opts...)
    if err != nil { return err }
    dt.Root = dt.Grow(s)
    return nil
}

// Grow builds a tree from s, recursing until the splitter declines.
func (dt *DecisionTree) Grow(s Splitter) *DTNode { return dt.build(s, 0) }

func (dt *DecisionTree) build(s Splitter, depth int) *DTNode {
    node := &DTNode{Label: s.Label(), Samples: s.Size()}
    if dt.MaxDepth > 0 && depth >= dt.MaxDepth { return node }
    res, ok := s.Split()
    if !ok { return node }
    node.Feature, node.Threshold, node.Gain = res.Feature, res.Threshold, res.Gain

    if depth < dt.ParallelDepth {
        var wg sync.WaitGroup
        wg.Add(1)
        go func() {
            defer wg.Done()
            node.Left = dt.build(res.Left, depth+1)
        }()
        node.Right = dt.build(res.Right, depth+1)
        wg.Wait()
        return node
    }
    node.Left = dt.build(res.Left, depth+1)
    node.Right = dt.build(res.Right, depth+1)
    return node
}

func (dt *DecisionTree) Predict(X [][]float64) []bool {
    out := make([]bool, len(X))
    for i := range X { out[i] = dt.PredictOne(X[i]) }
    return out
}

// PredictOne walks from the root, going left when x[Feature] <= Threshold.
// An empty tree predicts false.
func (dt *DecisionTree) PredictOne(x []float64) bool {
    n := dt.Root
    if n == nil { return false }
    for !n.IsLeaf() {
        if x[n.Feature] <= n.Threshold { n = n.Left } else { n = n.Right }
    }
    return n.Label
}

// Prune collapses, bottom-up, every internal node reached by fewer than n
// training rows. The collapsed node keeps its majority label.
func (dt *DecisionTree) Prune(n int) { prune(dt.Root, n) }

func prune(node *DTNode, n int) {
    if node == nil || node.IsLeaf() { return }
    prune(node.Left, n)
    prune(node.Right, n)
    if node.Samples < n {
        node.Left, node.Right = nil, nil
        node.Feature, node.Threshold, node.Gain = 0, 0, 0
    }
}

func (dt *DecisionTree) Stats() TreeStats {
    var st TreeStats
    var walk func(*DTNode, int)
    walk = func(n *DTNode, depth int) {
        if n == nil { return }
        st.Nodes++
        if depth > st.Depth { st.Depth = depth }
        if n.IsLeaf() { st.Leaves++; return }
        walk(n.Left, depth+1)
        walk(n.Right, depth+1)
    }
    walk(dt.Root, 0)
    return st
}

func (dt *DecisionTree) Depth() int  { return dt.Stats().Depth }
func (dt *DecisionTree) Leaves() int { return dt.Stats().Leaves }
func (dt *DecisionTree) Nodes() int  { return dt.Stats().Nodes }

type TreeOption func(*DecisionTree)

func WithMinSamplesSplit(n int) TreeOption { return func(dt *DecisionTree) { dt.MinSamplesSplit = n } }

func WithMinImpurityDecrease(d float64) TreeOption {
    return func(dt *DecisionTree) { dt.MinImpurityDecrease = d }
}

func WithMaxDepth(n int) TreeOption      { return func(dt *DecisionTree) { dt.MaxDepth = n } }
func WithWorkers(n int) TreeOption       { return func(dt *DecisionTree) { dt.Workers = n } }
func WithParallelDepth(n int) TreeOption { return func(dt *DecisionTree) { dt.ParallelDepth = n } }

// Print writes one line per node in pre-order, indented two spaces per level.
// Internal nodes read "vector[f] <= t", followed by the feature name in
// parentheses when namer knows it; leaves print their label.
func (dt *DecisionTree) Print(w io.Writer, namer FeatureNamer) error {
    if dt.Root == nil { return ErrEmptyTree }
    bw := bufio.NewWriter(w)
    writeNode(bw, dt.Root, 0, namer)
    return bw.Flush()
}

func writeNode(w *bufio.Writer, n *DTNode, depth int, namer FeatureNamer) {
    w.WriteString(strings.Repeat("  ", depth))
    if n.IsLeaf() {
        w.WriteString(strconv.FormatBool(n.Label))
        w.WriteByte('\n')
        return
    }
    fmt.Fprintf(w, "vector[%d] <= %s", n.Feature, strconv.FormatFloat(n.Threshold, 'g', -1, 64))
    if namer != nil {
        if name := namer(n.Feature); name != "" { fmt.Fprintf(w, " (%s)", name) }
    }
    w.WriteByte('\n')
    writeNode(w, n.Left, depth+1, namer)
    writeNode(w, n.Right, depth+1, namer)
}

func (dt *DecisionTree) String() string {
    var sb strings.Builder
    _ = dt.Print(&sb, nil)
    return sb.String()
}
