package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file read by every command.
type Config struct {
	// Catalog is a directory of YAML/JSON field type catalogs layered over
	// the built-in types.
	Catalog string `yaml:"catalog"`
	// Globals are exposed to every catalog template by name.
	Globals map[string]any `yaml:"globals"`
	// Store is the SQLite database path used by the store and build commands.
	Store string `yaml:"store"`
	Log   struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	// Component names the generated component class.
	Component string      `yaml:"component"`
	Theme     ThemeConfig `yaml:"theme"`
	// Columns is how many imported fields share a row.
	Columns int `yaml:"columns"`
}

// ThemeConfig selects container classes for generated output.
type ThemeConfig struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
}

// Default config values.
const (
	DefaultStorePath = "formbuilder.db"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	var cfg Config
	cfg.Store = DefaultStorePath
	cfg.Log.Level = DefaultLogLevel
	cfg.Log.Format = DefaultLogFormat
	cfg.Columns = 1
	return cfg
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Columns < 1 {
		return errors.New("columns must be at least 1")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}
	return nil
}
