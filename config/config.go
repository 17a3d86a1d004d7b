// Package config provides configuration loading for the johari command.
//
// Values are resolved in three layers: Default, then an optional YAML file,
// then JOHARI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hupe1980/johari/codec"
	"github.com/hupe1980/johari/persistence"
	"github.com/hupe1980/johari/vocabulary"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "JOHARI_"

// Storage backends.
const (
	BackendLocal    = "local"
	BackendMemory   = "memory"
	BackendS3       = "s3"
	BackendMinIO    = "minio"
	BackendDynamoDB = "dynamodb"
)

// Config represents the complete johari configuration.
type Config struct {
	// Kind is the assessment kind commands operate on.
	Kind string `yaml:"kind" env:"KIND"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	Codec            string  `yaml:"codec" env:"CODEC"`
	Compression      string  `yaml:"compression" env:"COMPRESSION"`
	StrictLoad       bool    `yaml:"strict_load" env:"STRICT_LOAD"`
	StrictTraitNames bool    `yaml:"strict_trait_names" env:"STRICT_TRAIT_NAMES"`
	SubmissionRate   float64 `yaml:"submission_rate" env:"SUBMISSION_RATE"`
	SubmissionBurst  int     `yaml:"submission_burst" env:"SUBMISSION_BURST"`

	// MetricsTextfile, when set, receives the Prometheus metrics of each run
	// in text exposition format.
	MetricsTextfile string `yaml:"metrics_textfile" env:"METRICS_TEXTFILE"`

	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`

	// Vocabularies adds custom kinds or replaces the built-in ones.
	Vocabularies []VocabularyConfig `yaml:"vocabularies"`
}

// StorageConfig selects and configures the blob store.
type StorageConfig struct {
	Backend  string         `yaml:"backend" env:"BACKEND"`
	Dir      string         `yaml:"dir" env:"DIR"`
	S3       S3Config       `yaml:"s3" envPrefix:"S3_"`
	MinIO    MinIOConfig    `yaml:"minio" envPrefix:"MINIO_"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb" envPrefix:"DYNAMODB_"`
}

// S3Config configures the S3 backend. Credentials come from the AWS default chain.
type S3Config struct {
	Bucket   string `yaml:"bucket" env:"BUCKET"`
	Prefix   string `yaml:"prefix" env:"PREFIX"`
	Region   string `yaml:"region" env:"REGION"`
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
}

// MinIOConfig configures the MinIO backend.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"BUCKET"`
	Prefix    string `yaml:"prefix" env:"PREFIX"`
	Region    string `yaml:"region" env:"REGION"`
	Secure    bool   `yaml:"secure" env:"SECURE"`
}

// DynamoDBConfig configures the DynamoDB backend.
type DynamoDBConfig struct {
	Table     string `yaml:"table" env:"TABLE"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
	Region    string `yaml:"region" env:"REGION"`
}

// VocabularyConfig defines one assessment kind.
type VocabularyConfig struct {
	Kind         string   `yaml:"kind"`
	Traits       []string `yaml:"traits"`
	MinSelection int      `yaml:"min_selection"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Kind:        vocabulary.KindJohari,
		LogLevel:    "warn",
		LogFormat:   "text",
		Codec:       codec.Default.Name(),
		Compression: "zstd",
		Storage: StorageConfig{
			Backend: BackendLocal,
			Dir:     "data",
			DynamoDB: DynamoDBConfig{
				Namespace: "default",
			},
		},
	}
}

// Load reads defaults, the YAML file at path (skipped when path is empty) and
// the environment, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Kind == "" {
		errs = append(errs, errors.New("kind is required"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if _, ok := codec.ByName(c.Codec); !ok {
		errs = append(errs, fmt.Errorf("unknown codec %q", c.Codec))
	}
	if _, err := persistence.ParseCompression(c.Compression); err != nil {
		errs = append(errs, err)
	}
	if c.SubmissionRate < 0 {
		errs = append(errs, errors.New("submission_rate must not be negative"))
	}

	switch c.Storage.Backend {
	case BackendLocal:
		if c.Storage.Dir == "" {
			errs = append(errs, errors.New("storage.dir is required for the local backend"))
		}
	case BackendMemory:
	case BackendS3:
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, errors.New("storage.s3.bucket is required"))
		}
	case BackendMinIO:
		if c.Storage.MinIO.Endpoint == "" || c.Storage.MinIO.Bucket == "" {
			errs = append(errs, errors.New("storage.minio.endpoint and storage.minio.bucket are required"))
		}
	case BackendDynamoDB:
		if c.Storage.DynamoDB.Table == "" {
			errs = append(errs, errors.New("storage.dynamodb.table is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// BuildVocabularies returns the built-in vocabularies with configured kinds
// added or replacing them, ordered by kind as configured.
func (c *Config) BuildVocabularies() ([]*vocabulary.Vocabulary, error) {
	byKind := map[string]*vocabulary.Vocabulary{
		vocabulary.KindJohari: vocabulary.Johari(),
		vocabulary.KindNohari: vocabulary.Nohari(),
	}
	order := []string{vocabulary.KindJohari, vocabulary.KindNohari}

	for _, vc := range c.Vocabularies {
		opts := []vocabulary.Option{vocabulary.WithKind(vc.Kind)}
		if vc.MinSelection > 0 {
			opts = append(opts, vocabulary.WithMinSelection(vc.MinSelection))
		}
		v, err := vocabulary.New(vc.Traits, opts...)
		if err != nil {
			return nil, fmt.Errorf("vocabulary %q: %w", vc.Kind, err)
		}
		if _, ok := byKind[vc.Kind]; !ok {
			order = append(order, vc.Kind)
		}
		byKind[vc.Kind] = v
	}

	out := make([]*vocabulary.Vocabulary, 0, len(order))
	for _, kind := range order {
		out = append(out, byKind[kind])
	}
	return out, nil
}
