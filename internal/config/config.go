package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderjulianmartinez/schemats/internal/naming"
	"github.com/alexanderjulianmartinez/schemats/internal/source"
)

const (
	// EnvDatabaseURL holds the connection string. It is required.
	EnvDatabaseURL = "DATABASE_URL"
	// EnvConfigPath optionally points at a YAML file with Config settings.
	EnvConfigPath = "SCHEMATS_CONFIG"
)

type Config struct {
	DatabaseURL   string            `yaml:"-"`
	Schema        string            `yaml:"schema"`
	Exclude       []string          `yaml:"exclude"`
	Output        OutputConfig      `yaml:"output"`
	TypeOverrides map[string]string `yaml:"typeOverrides"`
	Verbose       bool              `yaml:"verbose"`
}

type OutputConfig struct {
	TypeCasing  string `yaml:"typeCasing"`
	FieldCasing string `yaml:"fieldCasing"`
	Export      *bool  `yaml:"export"`
}

// Load builds the configuration from the environment. A missing
// DATABASE_URL is reported as a *source.ConnectionError.
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if p := strings.TrimSpace(getenv(EnvConfigPath)); p != "" {
		fileCfg, err := LoadConfig(p)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	cfg.DatabaseURL = strings.TrimSpace(getenv(EnvDatabaseURL))
	if cfg.DatabaseURL == "" {
		return nil, &source.ConnectionError{Err: fmt.Errorf("%s is not set", EnvDatabaseURL)}
	}
	return cfg, nil
}

// LoadConfig reads optional settings from a YAML file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Output.TypeCasing != "" {
		if _, err := naming.ParseCasing(c.Output.TypeCasing); err != nil {
			return fmt.Errorf("output.typeCasing: %w", err)
		}
	}
	if c.Output.FieldCasing != "" {
		if _, err := naming.ParseCasing(c.Output.FieldCasing); err != nil {
			return fmt.Errorf("output.fieldCasing: %w", err)
		}
	}
	for _, pattern := range c.Exclude {
		if strings.TrimSpace(pattern) == "" {
			return errors.New("exclude entries must not be empty")
		}
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}
	for sqlType, tsType := range c.TypeOverrides {
		if strings.TrimSpace(sqlType) == "" {
			return errors.New("typeOverrides keys must not be empty")
		}
		if strings.TrimSpace(tsType) == "" {
			return fmt.Errorf("typeOverrides.%s must not be empty", sqlType)
		}
	}
	return nil
}

// TypeCasing is the casing for interface names, PascalCase by default.
func (c *Config) TypeCasing() naming.Casing {
	return parsedCasing(c.Output.TypeCasing, naming.PascalCase)
}

// FieldCasing is the casing for field names, CamelCase by default.
func (c *Config) FieldCasing() naming.Casing {
	return parsedCasing(c.Output.FieldCasing, naming.CamelCase)
}

// Export reports whether declarations carry the export keyword (default true).
func (c *Config) Export() bool {
	return c.Output.Export == nil || *c.Output.Export
}

func parsedCasing(s string, def naming.Casing) naming.Casing {
	if s == "" {
		return def
	}
	casing, err := naming.ParseCasing(s)
	if err != nil {
		return def
	}
	return casing
}
