package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/agroconsult/painel/internal/catalog"
	"github.com/agroconsult/painel/internal/powerbi"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PAINEL_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: PAINEL_PORT -> port, etc.
	if err := k.Load(env.Provider("PAINEL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PAINEL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.DefaultSector != "" && !catalog.IsKnown(c.DefaultSector) {
		return fmt.Errorf("unknown default_sector %q", c.DefaultSector)
	}

	for slot, url := range c.Links {
		if _, _, ok := powerbi.ParseSlot(slot); !ok {
			return fmt.Errorf("links: %q is not a valid slot key", slot)
		}
		if _, err := powerbi.Sanitize(url); err != nil {
			return fmt.Errorf("links: %s: %w", slot, err)
		}
	}

	return nil
}
