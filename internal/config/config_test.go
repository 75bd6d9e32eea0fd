package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bm25tree/internal/features"
	"bm25tree/internal/models"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_KEY", "")
	t.Setenv("CORPUS_PATH", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CORPUS_PATH", "")
	path := writeFile(t, `
corpus: testdata/sms.tsv
prune: 10
vectorizer:
  kind: lsa
  stemmer: snowball
  components: 20
  bm25:
    min_df_ratio: 0
    smooth_idf: true
tree:
  min_samples_split: 2
  max_depth: 4
server:
  port: "9090"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testdata/sms.tsv", cfg.Corpus)
	assert.Equal(t, 10, cfg.Prune)
	assert.Equal(t, "lsa", cfg.Vectorizer.Kind)
	assert.Equal(t, 20, cfg.Vectorizer.Components)
	assert.True(t, cfg.Vectorizer.BM25.SmoothIDF)
	assert.Equal(t, 0.0, cfg.Vectorizer.BM25.MinDFRatio)
	assert.Equal(t, 1.2, cfg.Vectorizer.BM25.K1, "unset keys keep their defaults")
	assert.Equal(t, 2, cfg.Tree.MinSamplesSplit)
	assert.Equal(t, 4, cfg.Tree.MaxDepth)
	assert.Equal(t, models.DefaultMinImpurityDecrease, cfg.Tree.MinImpurityDecrease)
	assert.Equal(t, "9090", cfg.Server.Port)

	v, err := cfg.Vectorizer.Build()
	require.NoError(t, err)
	assert.IsType(t, &features.LSA{}, v)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("API_KEY", "s3cret")
	t.Setenv("CORPUS_PATH", "/tmp/corpus.tsv")
	cfg, err := Load(writeFile(t, "server:\n  port: \"9090\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Server.APIKey)
	assert.Equal(t, "/tmp/corpus.tsv", cfg.Corpus)
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("PORT", "")
	cases := map[string]string{
		"kind":    "vectorizer:\n  kind: word2vec\n",
		"stemmer": "vectorizer:\n  stemmer: lancaster\n",
		"ratio":   "vectorizer:\n  bm25:\n    max_df_ratio: 1.5\n",
		"prune":   "prune: -1\n",
		"port":    "server:\n  port: http\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "unknown_key: 1\n"))
	assert.Error(t, err)
}

func TestTreeOptions(t *testing.T) {
	tc := TreeConfig{MinSamplesSplit: 3, MinImpurityDecrease: 0.5, MaxDepth: 2, ParallelDepth: 1, Workers: 4}
	dt := models.NewDecisionTree()
	for _, opt := range tc.Options() {
		opt(dt)
	}
	assert.Equal(t, 3, dt.MinSamplesSplit)
	assert.Equal(t, 0.5, dt.MinImpurityDecrease)
	assert.Equal(t, 2, dt.MaxDepth)
	assert.Equal(t, 1, dt.ParallelDepth)
	assert.Equal(t, 4, dt.Workers)
}

func TestBuildBM25(t *testing.T) {
	vc := Default().Vectorizer
	vc.StopWords, vc.DropPunctuation, vc.StripMarkup = true, true, true
	v, err := vc.Build()
	require.NoError(t, err)
	bm, ok := v.(*features.BM25)
	require.True(t, ok)
	assert.False(t, bm.Fitted())
}
