package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "JWT_SECRET", "JWT_EXPIRY", "PASSGEN_DEFAULT_LENGTH", "PASSGEN_MAX_LENGTH", "PASSGEN_MAX_COUNT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DefaultLength != 16 || cfg.MaxLength != 1024 || cfg.MaxCount != 100 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.JWTExpiry != 24*time.Hour || !cfg.MetricsEnabled {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PASSGEN_DEFAULT_LENGTH", "32")
	t.Setenv("PASSGEN_MAX_LENGTH", "64")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.DefaultLength != 32 || cfg.MaxLength != 64 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.JWTExpiry != 90*time.Minute || cfg.MetricsEnabled || cfg.RateLimitRPS != 2.5 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "bad int", env: map[string]string{"PASSGEN_MAX_COUNT": "many"}, want: "PASSGEN_MAX_COUNT"},
		{name: "bad duration", env: map[string]string{"JWT_EXPIRY": "1 day"}, want: "JWT_EXPIRY"},
		{name: "default above max", env: map[string]string{"PASSGEN_DEFAULT_LENGTH": "2048"}, want: "PASSGEN_DEFAULT_LENGTH"},
		{name: "production without secret", env: map[string]string{"ENV": "production", "JWT_SECRET": ""}, want: "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passgen.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadCLIConfig(t *testing.T) {
	path := writeFile(t, "defaults:\n  length: 32\n  include-special-characters: true\n  output: table\n")

	cfg, err := LoadCLIConfig(path)
	if err != nil {
		t.Fatalf("LoadCLIConfig() unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.Defaults.Length != 32 || !cfg.Defaults.IncludeSpecialCharacters || cfg.Defaults.Output != "table" {
		t.Errorf("unexpected config %+v", cfg.Defaults)
	}
	if cfg.Defaults.Count != 1 || cfg.Defaults.Color != "auto" || cfg.MaxLength != 1024 || cfg.MaxCount != 10000 {
		t.Errorf("missing keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadCLIConfigErrors(t *testing.T) {
	if _, err := LoadCLIConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadCLIConfig(writeFile(t, "defaults:\n  lenght: 8\n")); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := LoadCLIConfig(writeFile(t, "defaults: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestCLIConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CLIConfig)
		want   string
	}{
		{name: "negative length", mutate: func(c *CLIConfig) { c.Defaults.Length = -1 }, want: "defaults.length"},
		{name: "length above max", mutate: func(c *CLIConfig) { c.MaxLength = 8 }, want: "defaults.length"},
		{name: "zero count", mutate: func(c *CLIConfig) { c.Defaults.Count = 0 }, want: "defaults.count"},
		{name: "zero max count", mutate: func(c *CLIConfig) { c.MaxCount = 0 }, want: "max-count"},
		{name: "count above max", mutate: func(c *CLIConfig) { c.Defaults.Count = 5; c.MaxCount = 4 }, want: "defaults.count"},
		{name: "bad alphabet", mutate: func(c *CLIConfig) { c.Defaults.Alphabet = "greek" }, want: "defaults.alphabet"},
		{name: "bad output", mutate: func(c *CLIConfig) { c.Defaults.Output = "xml" }, want: "defaults.output"},
		{name: "bad color", mutate: func(c *CLIConfig) { c.Defaults.Color = "rainbow" }, want: "defaults.color"},
	}

	if err := DefaultCLIConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCLIConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
