package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/passgen/passgen-go/internal/crypto"
)

// CLIConfig holds the defaults of the passgen command, read from a YAML file:
//
//	defaults:
//	  length: 16
//	  include-special-characters: false
//	  count: 1
//	  output: raw
//	  color: auto
//	max-length: 1024
//	max-count: 10000
type CLIConfig struct {
	Defaults struct {
		Length                   int    `yaml:"length"`
		IncludeSpecialCharacters bool   `yaml:"include-special-characters"`
		Alphabet                 string `yaml:"alphabet"`
		Count                    int    `yaml:"count"`
		Output                   string `yaml:"output"`
		Color                    string `yaml:"color"`
	} `yaml:"defaults"`
	MaxLength int `yaml:"max-length"`
	MaxCount  int `yaml:"max-count"`
}

// DefaultCLIConfig returns the settings used when no file is given.
func DefaultCLIConfig() *CLIConfig {
	cfg := &CLIConfig{MaxLength: 1024, MaxCount: 10000}
	cfg.Defaults.Length = 16
	cfg.Defaults.Count = 1
	cfg.Defaults.Output = "raw"
	cfg.Defaults.Color = "auto"
	return cfg
}

// LoadCLIConfig reads a YAML file over DefaultCLIConfig. Keys missing from the file keep their default.
func LoadCLIConfig(filePath string) (*CLIConfig, error) {
	cfg := DefaultCLIConfig()

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file: %w", err)
	}

	return cfg, nil
}

// Validate checks the CLI settings.
func (c *CLIConfig) Validate() error {
	var errs []error

	if c.MaxLength <= 0 {
		errs = append(errs, fmt.Errorf("max-length must be positive, got %d", c.MaxLength))
	}
	if c.Defaults.Length < 0 || c.Defaults.Length > c.MaxLength {
		errs = append(errs, fmt.Errorf("defaults.length must be between 0 and max-length, got %d", c.Defaults.Length))
	}
	if c.MaxCount <= 0 {
		errs = append(errs, fmt.Errorf("max-count must be positive, got %d", c.MaxCount))
	}
	if c.Defaults.Count <= 0 || c.Defaults.Count > c.MaxCount {
		errs = append(errs, fmt.Errorf("defaults.count must be between 1 and max-count, got %d", c.Defaults.Count))
	}
	if c.Defaults.Alphabet != "" {
		if _, err := crypto.ParseAlphabet(c.Defaults.Alphabet); err != nil {
			errs = append(errs, fmt.Errorf("defaults.alphabet: %w", err))
		}
	}
	switch c.Defaults.Output {
	case "raw", "table", "json":
	default:
		errs = append(errs, fmt.Errorf("defaults.output must be raw, table or json, got %q", c.Defaults.Output))
	}
	switch c.Defaults.Color {
	case "auto", "yes", "no":
	default:
		errs = append(errs, fmt.Errorf("defaults.color must be auto, yes or no, got %q", c.Defaults.Color))
	}

	return errors.Join(errs...)
}
