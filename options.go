package parcel

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultMaxBodyBytes is the request body limit used when none is configured.
const DefaultMaxBodyBytes int64 = 10 << 20

// Config holds processor settings. It can be loaded from YAML.
type Config struct {
	// MaxBodyBytes caps request bodies. Zero or negative disables the cap.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{MaxBodyBytes: DefaultMaxBodyBytes}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: max_body_bytes must not be negative, got %d", ErrInvalidConfig, c.MaxBodyBytes)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, fmt.Errorf("config file path is empty")
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Option configures a Processor.
type Option func(*options)

type options struct {
	cfg   Config
	codec Codec
}

// WithConfig replaces the processor configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithMaxBodyBytes sets the request body limit. Zero disables it.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		o.cfg.MaxBodyBytes = n
	}
}

// WithCodec overrides the codec chosen from the processor's mode.
func WithCodec(c Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}
