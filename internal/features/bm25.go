package features

import (
    "fmt"
    "math"
    "slices"

    "golang.org/x/sync/errgroup"

    "bm25tree/internal/text"
)

// Options configures vocabulary selection and the BM25+ calibration.
type Options struct {
    // MinDF is the minimum number of documents a term must appear in.
    MinDF int `yaml:"min_df" validate:"gte=0"`
    // MinDFRatio is the minimum proportion of documents a term must appear in.
    MinDFRatio float64 `yaml:"min_df_ratio" validate:"gte=0,lte=1"`
    // MaxDFRatio is the maximum proportion of documents a term may appear in.
    // Zero disables the ceiling.
    MaxDFRatio float64 `yaml:"max_df_ratio" validate:"gte=0,lte=1"`
    K1         float64 `yaml:"k1" validate:"gte=0"`
    B          float64 `yaml:"b" validate:"gte=0,lte=1"`
    Delta      float64 `yaml:"delta" validate:"gte=0"`
    // SmoothIDF uses ln(1 + (N-df+0.5)/(df+0.5)), which is never negative.
    SmoothIDF bool `yaml:"smooth_idf"`
    Workers   int  `yaml:"workers" validate:"gte=0"`
}

func DefaultOptions() Options {
    return Options{MinDF: 1, MinDFRatio: 0.002, MaxDFRatio: 0.05, K1: 1.2, B: 0.75, Delta: 1.0}
}

// BM25 is the Okapi BM25+ term-importance vectorizer.
// http://sifaka.cs.uiuc.edu/~ylv2/pub/cikm11-lowerbound.pdf
type BM25 struct {
    opts  Options
    pre   *text.Preprocessor
    state *corpusStats
}

// corpusStats is everything Fit learns. It is never modified after Fit.
type corpusStats struct {
    docs     int
    avgLen   float64
    df       map[string]int
    features []string
    idf      []float64
}

// NewBM25 returns an unfitted vectorizer. A nil preprocessor selects
// text.DefaultPreprocessor.
func NewBM25(opts Options, pre *text.Preprocessor) *BM25 {
    if pre == nil { pre = text.DefaultPreprocessor }
    return &BM25{opts: opts, pre: pre}
}

func (v *BM25) Fit(texts []string) error {
    v.fitBags(texts)
    return nil
}

func (v *BM25) FitTransform(texts []string) ([][]float64, error) {
    return v.matrix(v.fitBags(texts))
}

func (v *BM25) Transform(texts []string) ([][]float64, error) {
    if v.state == nil { return nil, fmt.Errorf("bm25 transform: %w", ErrNotFitted) }
    return v.matrix(v.bags(texts))
}

// Feature returns the vocabulary term behind column index.
func (v *BM25) Feature(index int) (string, error) {
    if v.state == nil { return "", fmt.Errorf("bm25 feature: %w", ErrNotFitted) }
    if index < 0 || index >= len(v.state.features) {
        return "", fmt.Errorf("bm25 feature %d of %d: %w", index, len(v.state.features), ErrFeatureIndex)
    }
    return v.state.features[index], nil
}

func (v *BM25) NumFeatures() int {
    if v.state == nil { return 0 }
    return len(v.state.features)
}

func (v *BM25) Fitted() bool { return v.state != nil }

// Vocabulary returns the selected terms in column order.
func (v *BM25) Vocabulary() []string {
    if v.state == nil { return nil }
    return slices.Clone(v.state.features)
}

// IDF returns the inverse document frequency of each column.
func (v *BM25) IDF() []float64 {
    if v.state == nil { return nil }
    return slices.Clone(v.state.idf)
}

// DocumentFrequency returns how many fitted documents contained term.
func (v *BM25) DocumentFrequency(term string) int {
    if v.state == nil { return 0 }
    return v.state.df[term]
}

// AverageLength is the mean number of terms per fitted document.
func (v *BM25) AverageLength() float64 {
    if v.state == nil { return 0 }
    return v.state.avgLen
}

func (v *BM25) fitBags(texts []string) []text.BagOfWords {
    corpus := v.bags(texts)
    st := &corpusStats{docs: len(corpus), df: make(map[string]int)}
    var order []string
    total := 0
    for _, bag := range corpus {
        for _, w := range bag.Unique() {
            if st.df[w] == 0 { order = append(order, w) }
            st.df[w]++
        }
        total += bag.Size()
    }
    if st.docs > 0 { st.avgLen = float64(total) / float64(st.docs) }

    n := float64(st.docs)
    for _, w := range order {
        df := st.df[w]
        if df < v.opts.MinDF || float64(df) < v.opts.MinDFRatio*n { continue }
        if v.opts.MaxDFRatio > 0 && float64(df) > v.opts.MaxDFRatio*n { continue }
        st.features = append(st.features, w)
        st.idf = append(st.idf, v.idf(n, float64(df)))
    }
    v.state = st
    return corpus
}

func (v *BM25) idf(n, df float64) float64 {
    r := (n - df + 0.5) / (df + 0.5)
    if v.opts.SmoothIDF { return math.Log1p(r) }
    return math.Log(r)
}

func (v *BM25) bags(texts []string) []text.BagOfWords {
    out := make([]text.BagOfWords, len(texts))
    var g errgroup.Group
    g.SetLimit(workers(v.opts.Workers))
    for i := range texts {
        g.Go(func() error {
            out[i] = v.pre.Process(texts[i])
            return nil
        })
    }
    _ = g.Wait()
    return out
}

func (v *BM25) matrix(docs []text.BagOfWords) ([][]float64, error) {
    st := v.state
    out := make([][]float64, len(docs))
    var g errgroup.Group
    g.SetLimit(workers(v.opts.Workers))
    for i := range docs {
        g.Go(func() error {
            out[i] = v.vector(st, docs[i])
            return nil
        })
    }
    if err := g.Wait(); err != nil { return nil, err }
    return out, nil
}

func (v *BM25) vector(st *corpusStats, doc text.BagOfWords) []float64 {
    n := 0.0
    if st.avgLen > 0 { n = float64(doc.Size()) / st.avgLen }
    x := make([]float64, len(st.features))
    for j, w := range st.features {
        x[j] = st.idf[j] * v.tfn(float64(doc.TF(w)), n)
    }
    return x
}

// tfn is the BM25+ normalized term frequency.
func (v *BM25) tfn(tf, n float64) float64 {
    k1, b := v.opts.K1, v.opts.B
    d := tf + k1*((1-b)+b*n)
    if d == 0 { return v.opts.Delta }
    return (tf*(k1+1))/d + v.opts.Delta
}
