// Package config loads library defaults from the environment.
//
// Variables are named FILEOPS_<SECTION>_<FIELD>, for example
// FILEOPS_HASH_ALGORITHM=sha256 or FILEOPS_TREE_MAX_DEPTH=64. Unset variables
// take the defaults shown on the struct tags, which match Default().
package config

import (
	"github.com/jmgilman/go/fileops/errors"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix.
const Prefix = "FILEOPS"

// Config holds all library configuration.
type Config struct {
	Hash    HashConfig    `envconfig:"HASH"`
	Tree    TreeConfig    `envconfig:"TREE"`
	Storage StorageConfig `envconfig:"STORAGE"`
	Log     LogConfig     `envconfig:"LOG"`
}

// HashConfig configures the content hasher.
type HashConfig struct {
	Algorithm   string `envconfig:"ALGORITHM" default:"md5"`
	ChunkSize   int    `envconfig:"CHUNK_SIZE" default:"1024"`
	Concurrency int    `envconfig:"CONCURRENCY" default:"4"`
}

// TreeConfig configures the tree mutator.
type TreeConfig struct {
	CopyBufferSize     int  `envconfig:"COPY_BUFFER_SIZE" default:"32768"`
	PreserveAttributes bool `envconfig:"PRESERVE_ATTRIBUTES" default:"true"`
	MaxDepth           int  `envconfig:"MAX_DEPTH" default:"256"`
}

// StorageConfig configures storage root enumeration.
type StorageConfig struct {
	Marker string `envconfig:"MARKER" default:"/Android/"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Hash: HashConfig{
			Algorithm:   "md5",
			ChunkSize:   1024,
			Concurrency: 4,
		},
		Tree: TreeConfig{
			CopyBufferSize:     32 * 1024,
			PreserveAttributes: true,
			MaxDepth:           256,
		},
		Storage: StorageConfig{
			Marker: "/Android/",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects values the components cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Hash.Algorithm == "":
		return errors.New(errors.CodeInvalidConfig, "hash algorithm must not be empty")
	case c.Hash.ChunkSize <= 0:
		return errors.Newf(errors.CodeInvalidConfig, "hash chunk size must be positive, got %d", c.Hash.ChunkSize)
	case c.Hash.Concurrency <= 0:
		return errors.Newf(errors.CodeInvalidConfig, "hash concurrency must be positive, got %d", c.Hash.Concurrency)
	case c.Tree.CopyBufferSize <= 0:
		return errors.Newf(errors.CodeInvalidConfig, "copy buffer size must be positive, got %d", c.Tree.CopyBufferSize)
	case c.Tree.MaxDepth <= 0:
		return errors.Newf(errors.CodeInvalidConfig, "max depth must be positive, got %d", c.Tree.MaxDepth)
	case c.Storage.Marker == "":
		return errors.New(errors.CodeInvalidConfig, "storage marker must not be empty")
	}
	return nil
}
