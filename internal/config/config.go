// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/teammate-matcher/internal/embedding"
	"github.com/jonathan/teammate-matcher/internal/matching"
)

// Config is the CLI configuration, loadable from a JSON file with
// environment-variable fallbacks. All fields are optional; missing values
// use defaults.
type Config struct {
	// Credentials and endpoints
	APIKey      string `json:"api_key,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// Embedding model
	EmbeddingModel     string `json:"embedding_model,omitempty"`
	EmbeddingDimension int    `json:"embedding_dimension,omitempty" validate:"gte=0"`

	// Scoring tunables
	Weights matching.Weights `json:"weights"`

	// Behavior
	TopK    int  `json:"top_k,omitempty" validate:"gte=0"`
	Verbose bool `json:"verbose,omitempty"`
}

// Default returns the standard configuration: default model, default
// weights, top 20 results.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a JSON file, fills unset fields from the
// environment and then from defaults, and validates the result. Precedence
// is uniform across fields: file over environment over default.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv fills fields the config file left unset from environment
// variables. A field the file set explicitly is never overridden.
func (c *Config) applyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = os.Getenv("EMBEDDING_MODEL")
	}
	if c.EmbeddingDimension == 0 {
		if dim, err := strconv.Atoi(os.Getenv("EMBEDDING_DIMENSION")); err == nil && dim > 0 {
			c.EmbeddingDimension = dim
		}
	}
}

// applyDefaults fills any still-unset fields.
func (c *Config) applyDefaults() {
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = embedding.DefaultModel
	}
	if c.EmbeddingDimension <= 0 {
		c.EmbeddingDimension = embedding.DefaultDimension
	}
	if c.TopK <= 0 {
		c.TopK = 20
	}
	if (c.Weights == matching.Weights{}) {
		c.Weights = matching.DefaultWeights()
	}
}

// Validate checks numeric ranges on the configuration, including every
// scoring weight being within [0,1].
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
