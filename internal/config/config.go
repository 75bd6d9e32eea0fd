// Package config loads the YAML configuration shared by the bm25tree
// commands. Values come from Default, then the file, then the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"bm25tree/internal/features"
	"bm25tree/internal/models"
	"bm25tree/internal/text"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Corpus is the path of the labeled TSV corpus.
	Corpus     string           `yaml:"corpus"`
	Vectorizer VectorizerConfig `yaml:"vectorizer"`
	Tree       TreeConfig       `yaml:"tree"`
	// Prune collapses internal nodes reached by fewer training documents.
	Prune  int          `yaml:"prune" validate:"gte=0"`
	Server ServerConfig `yaml:"server"`
}

type VectorizerConfig struct {
	// Kind is "bm25" or "lsa".
	Kind string `yaml:"kind" validate:"oneof=bm25 lsa"`
	// Stemmer is "porter", "snowball" or "none".
	Stemmer          string `yaml:"stemmer" validate:"oneof=porter snowball none"`
	StopWords        bool   `yaml:"stop_words"`
	DropPunctuation  bool   `yaml:"drop_punctuation"`
	StripMarkup      bool   `yaml:"strip_markup"`
	// Components is the LSA rank.
	Components int              `yaml:"components" validate:"gte=0"`
	BM25       features.Options `yaml:"bm25"`
}

type TreeConfig struct {
	MinSamplesSplit     int     `yaml:"min_samples_split" validate:"gte=0"`
	MinImpurityDecrease float64 `yaml:"min_impurity_decrease" validate:"gte=0"`
	MaxDepth            int     `yaml:"max_depth" validate:"gte=0"`
	ParallelDepth       int     `yaml:"parallel_depth" validate:"gte=0"`
	Workers             int     `yaml:"workers" validate:"gte=0"`
}

type ServerConfig struct {
	Port string `yaml:"port" validate:"required,numeric"`
	// APIKey guards mutating endpoints when set.
	APIKey    string `yaml:"api_key"`
	StaticDir string `yaml:"static_dir"`
}

func Default() *Config {
	return &Config{
		Corpus: "data/corpus.tsv",
		Vectorizer: VectorizerConfig{
			Kind:       "bm25",
			Stemmer:    "porter",
			Components: 50,
			BM25:       features.DefaultOptions(),
		},
		Tree: TreeConfig{
			MinSamplesSplit:     models.DefaultMinSizeSplit,
			MinImpurityDecrease: models.DefaultMinImpurityDecrease,
			ParallelDepth:       2,
		},
		Server: ServerConfig{Port: "8000", StaticDir: "cmd/api/static"},
	}
}

// Load reads path (skipped when empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.UnmarshalWithOptions(b, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Port = v
	}
	if v, ok := lookup("API_KEY"); ok {
		c.Server.APIKey = v
	}
	if v, ok := lookup("CORPUS_PATH"); ok && v != "" {
		c.Corpus = v
	}
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Preprocessor builds the text pipeline described by the vectorizer section.
func (c VectorizerConfig) Preprocessor() (*text.Preprocessor, error) {
	st, err := text.StemmerByName(c.Stemmer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	opts := []text.Option{text.WithStemmer(st)}
	if c.StopWords {
		opts = append(opts, text.WithStopWords(text.EnglishStopWords))
	}
	if c.DropPunctuation {
		opts = append(opts, text.WithoutPunctuation())
	}
	if c.StripMarkup {
		opts = append(opts, text.WithMarkupStripping())
	}
	return text.NewPreprocessor(opts...), nil
}

// Build returns an unfitted vectorizer.
func (c VectorizerConfig) Build() (features.Vectorizer, error) {
	pre, err := c.Preprocessor()
	if err != nil {
		return nil, err
	}
	bm25 := features.NewBM25(c.BM25, pre)
	if c.Kind == "lsa" {
		return features.NewLSA(bm25, c.Components), nil
	}
	return bm25, nil
}

// Options converts the tree section for models.Train.
func (c TreeConfig) Options() []models.TreeOption {
	return []models.TreeOption{
		models.WithMinSamplesSplit(c.MinSamplesSplit),
		models.WithMinImpurityDecrease(c.MinImpurityDecrease),
		models.WithMaxDepth(c.MaxDepth),
		models.WithParallelDepth(c.ParallelDepth),
		models.WithWorkers(c.Workers),
	}
}
