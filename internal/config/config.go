// Package config holds the settings of the startlist command.
//
// Precedence, lowest first: defaults, an optional YAML or JSON file,
// STARTLIST_* environment variables, command-line flags.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Defaults applied to zero-valued fields.
const (
	DefaultDatabase        = "startlist.db"
	DefaultDeleteBatchSize = 999
	DefaultLogLevel        = "info"
	DefaultFormat          = "text"
)

// Config is the command configuration.
type Config struct {
	// Database is the path of the SQLite schedule store.
	Database string `yaml:"database" json:"database" env:"STARTLIST_DATABASE"`

	// DeleteBatchSize bounds the rows removed per DELETE during regeneration.
	DeleteBatchSize int `yaml:"delete_batch_size" json:"delete_batch_size" env:"STARTLIST_DELETE_BATCH_SIZE"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level" env:"STARTLIST_LOG_LEVEL"`

	// Format is the output format: text or json.
	Format string `yaml:"format" json:"format" env:"STARTLIST_FORMAT"`

	// OTelEndpoint is the OTLP/HTTP collector base URL. Empty disables
	// trace and metric export.
	OTelEndpoint string `yaml:"otel_endpoint" json:"otel_endpoint" env:"STARTLIST_OTEL_ENDPOINT"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Database:        DefaultDatabase,
		DeleteBatchSize: DefaultDeleteBatchSize,
		LogLevel:        DefaultLogLevel,
		Format:          DefaultFormat,
	}
}

// FromFile loads configuration from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json. Missing fields take defaults.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Config. Unknown keys are rejected.
func FromYAML(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty file decodes to io.EOF and means "all defaults"
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return c.finish()
}

// FromJSON parses JSON data into a Config. Unknown keys are rejected.
func FromJSON(data []byte) (Config, error) {
	var c Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return c.finish()
}

// WithEnv overrides c with the STARTLIST_* variables that are set.
// Unset variables leave the field untouched.
func (c Config) WithEnv() (Config, error) {
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c.finish()
}

func (c Config) finish() (Config, error) {
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// withDefaults fills zero-valued fields from Default.
func (c Config) withDefaults() Config {
	d := Default()
	if c.Database == "" {
		c.Database = d.Database
	}
	if c.DeleteBatchSize == 0 {
		c.DeleteBatchSize = d.DeleteBatchSize
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	return c
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.DeleteBatchSize < 1 {
		return fmt.Errorf("delete_batch_size: must be at least 1, got %d", c.DeleteBatchSize)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format: must be text or json, got %q", c.Format)
	}
	if c.OTelEndpoint != "" {
		u, err := url.Parse(c.OTelEndpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("otel_endpoint: want an http(s) URL, got %q", c.OTelEndpoint)
		}
	}
	return nil
}
