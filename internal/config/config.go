package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the discovery API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Gazetteer GazetteerConfig `yaml:"gazetteer"`
	Search    SearchConfig    `yaml:"search"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Fuzzy     FuzzyConfig     `yaml:"fuzzy"`
	Related   RelatedConfig   `yaml:"related"`
	Semantic  SemanticConfig  `yaml:"semantic"`
	Workers   WorkersConfig   `yaml:"workers"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CorpusConfig selects the corpus snapshot source.
type CorpusConfig struct {
	Source string      `yaml:"source"` // file, redis (default: file)
	Path   string      `yaml:"path"`   // for source: file
	Redis  RedisConfig `yaml:"redis"`  // for source: redis
}

// RedisConfig holds backing-store connection settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// GazetteerConfig locates the expansion-map file.
type GazetteerConfig struct {
	Path string `yaml:"path"`
}

// SearchConfig holds result paging settings.
type SearchConfig struct {
	DefaultLimit        int `yaml:"default_limit"`
	MaxLimit            int `yaml:"max_limit"`
	MaxScoredCandidates int `yaml:"max_scored_candidates"`
}

// ScoringConfig holds ranking-signal calibration.
type ScoringConfig struct {
	Weights        WeightsConfig `yaml:"weights"`
	CommentAlpha   float64       `yaml:"comment_alpha"`
	PopularityMax  float64       `yaml:"popularity_max"`
	RecencyTauDays float64       `yaml:"recency_tau_days"`
}

// WeightsConfig holds the final-score combination weights. Must sum to 1.0.
type WeightsConfig struct {
	Semantic   float64 `yaml:"semantic"`
	Popularity float64 `yaml:"popularity"`
	Recency    float64 `yaml:"recency"`
	Relevance  float64 `yaml:"relevance"`
}

// FuzzyConfig holds approximate-matching settings.
type FuzzyConfig struct {
	Threshold      float64            `yaml:"threshold"`
	MinMatchLength int                `yaml:"min_match_length"`
	FieldWeights   FieldWeightsConfig `yaml:"field_weights"`
}

// FieldWeightsConfig holds the per-field match weights for posts.
type FieldWeightsConfig struct {
	Caption      float64 `yaml:"caption"`
	Tags         float64 `yaml:"tags"`
	LocationName float64 `yaml:"location_name"`
	AuthorName   float64 `yaml:"author_name"`
}

// RelatedConfig holds related-items defaults.
type RelatedConfig struct {
	MaxResults             int     `yaml:"max_results"`
	MinSimilarityThreshold float64 `yaml:"min_similarity_threshold"`
	WeightByPopularity     *bool   `yaml:"weight_by_popularity"`
	WeightByRecency        *bool   `yaml:"weight_by_recency"`
}

// SemanticConfig selects the similarity scorer implementation.
type SemanticConfig struct {
	Mode       string `yaml:"mode"` // keyword, embedding (default: keyword)
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// WorkersConfig holds scoring worker pool settings.
type WorkersConfig struct {
	PoolSize int `yaml:"pool_size"` // 0 = inline scoring, no pool
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Corpus.Source == "" {
		c.Corpus.Source = "file"
	}
	if c.Corpus.Redis.KeyPrefix == "" {
		c.Corpus.Redis.KeyPrefix = "discovery:"
	}
	if c.Corpus.Redis.ReadinessTimeout <= 0 {
		c.Corpus.Redis.ReadinessTimeout = 10
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 20
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 100
	}
	if c.Search.MaxScoredCandidates <= 0 {
		c.Search.MaxScoredCandidates = 50
	}
	if c.Scoring.Weights == (WeightsConfig{}) {
		c.Scoring.Weights = WeightsConfig{Semantic: 0.4, Popularity: 0.3, Recency: 0.2, Relevance: 0.1}
	}
	if c.Scoring.CommentAlpha <= 0 {
		c.Scoring.CommentAlpha = 2
	}
	if c.Scoring.PopularityMax <= 0 {
		c.Scoring.PopularityMax = 3000
	}
	if c.Scoring.RecencyTauDays <= 0 {
		c.Scoring.RecencyTauDays = 30
	}
	if c.Fuzzy.Threshold <= 0 {
		c.Fuzzy.Threshold = 0.4
	}
	if c.Fuzzy.MinMatchLength <= 0 {
		c.Fuzzy.MinMatchLength = 2
	}
	if c.Fuzzy.FieldWeights == (FieldWeightsConfig{}) {
		c.Fuzzy.FieldWeights = FieldWeightsConfig{Caption: 0.4, Tags: 0.3, LocationName: 0.2, AuthorName: 0.1}
	}
	if c.Related.MaxResults <= 0 {
		c.Related.MaxResults = 4
	}
	if c.Related.MinSimilarityThreshold <= 0 {
		c.Related.MinSimilarityThreshold = 0.3
	}
	if c.Related.WeightByPopularity == nil {
		c.Related.WeightByPopularity = boolPtr(true)
	}
	if c.Related.WeightByRecency == nil {
		c.Related.WeightByRecency = boolPtr(true)
	}
	if c.Semantic.Mode == "" {
		c.Semantic.Mode = "keyword"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Corpus.Source {
	case "file":
		if c.Corpus.Path == "" {
			return fmt.Errorf("corpus.path is required for source \"file\"")
		}
	case "redis":
		if len(c.Corpus.Redis.Addrs) == 0 {
			return fmt.Errorf("corpus.redis.addrs is required for source \"redis\"")
		}
	default:
		return fmt.Errorf("corpus.source must be \"file\" or \"redis\", got %q", c.Corpus.Source)
	}
	if c.Gazetteer.Path == "" {
		return fmt.Errorf("gazetteer.path is required")
	}

	w := c.Scoring.Weights
	sum := w.Semantic + w.Popularity + w.Recency + w.Relevance
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("scoring.weights must sum to 1.0, got %v", sum)
	}

	switch c.Semantic.Mode {
	case "keyword":
	case "embedding":
		if c.Semantic.APIKey == "" {
			return fmt.Errorf("semantic.api_key is required for mode \"embedding\"")
		}
		if c.Semantic.Model == "" {
			return fmt.Errorf("semantic.model is required for mode \"embedding\"")
		}
	default:
		return fmt.Errorf("semantic.mode must be \"keyword\" or \"embedding\", got %q", c.Semantic.Mode)
	}

	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func boolPtr(v bool) *bool { return &v }

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
