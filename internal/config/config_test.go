package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("expected default data_dir %q, got %q", "data", cfg.DataDir)
	}
	if cfg.DefaultSector != "consultoria" {
		t.Errorf("expected default sector %q, got %q", "consultoria", cfg.DefaultSector)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.painel.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.DataDir = "/var/lib/painel"
	original.AllowAllOrigins = true
	original.Links = map[string]string{
		"consultoria-comercial": "https://app.powerbi.com/view?r=abc",
	}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if !loaded.AllowAllOrigins {
		t.Error("allow_all_origins: got false, want true")
	}
	if loaded.Links["consultoria-comercial"] != original.Links["consultoria-comercial"] {
		t.Errorf("links: got %q", loaded.Links["consultoria-comercial"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected defaults, got port %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "painel.yml")

	os.Setenv("PAINEL_PORT", "3000")
	defer os.Unsetenv("PAINEL_PORT")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected env override port 3000, got %d", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Port = 0 }, true},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, true},
		{"unknown default sector", func(c *Config) { c.DefaultSector = "inexistente" }, true},
		{"bad slot key", func(c *Config) { c.Links = map[string]string{"whatever": "https://app.powerbi.com/x"} }, true},
		{"foreign link host", func(c *Config) {
			c.Links = map[string]string{"consultoria-comercial": "https://evil.example.com/x"}
		}, true},
		{"valid link", func(c *Config) {
			c.Links = map[string]string{"financeiro-principal": "https://app.powerbi.com/view?r=xyz"}
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
