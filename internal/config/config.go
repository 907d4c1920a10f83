package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a ledger repo.
const FileName = "smsledger.yaml"

// Config represents the top-level smsledger.yaml configuration.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Import ImportConfig `yaml:"import"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// LedgerConfig controls how the ledger is presented.
type LedgerConfig struct {
	Owner          string `yaml:"owner,omitempty"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// ImportConfig controls SMS imports.
type ImportConfig struct {
	Source      string `yaml:"source"`   // registered source name, e.g. "demo"
	Timezone    string `yaml:"timezone"` // IANA zone used to derive expense dates
	NotesPrefix string `yaml:"notes_prefix"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a smsledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadRepo reads <repoRoot>/smsledger.yaml, loads <repoRoot>/.env if present
// and applies environment overrides.
func LoadRepo(repoRoot string) (*Config, error) {
	cfg, err := Load(filepath.Join(repoRoot, FileName))
	if err != nil {
		return nil, err
	}
	envFile := filepath.Join(repoRoot, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	cfg.ApplyEnv()
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(owner string) *Config {
	return &Config{
		Ledger: LedgerConfig{
			Owner:          owner,
			CurrencySymbol: "₹",
		},
		Import: ImportConfig{
			Source:      "demo",
			Timezone:    "UTC",
			NotesPrefix: "Auto-imported from SMS: ",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// ApplyEnv overrides fields from SMSLEDGER_* environment variables.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{"SMSLEDGER_SOURCE", &c.Import.Source},
		{"SMSLEDGER_TIMEZONE", &c.Import.Timezone},
		{"SMSLEDGER_LOG_LEVEL", &c.Log.Level},
		{"SMSLEDGER_LOG_FORMAT", &c.Log.Format},
		{"SMSLEDGER_ADDR", &c.Server.Addr},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}

// Location resolves the import time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Import.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Import.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid import timezone %q: %w", c.Import.Timezone, err)
	}
	return loc, nil
}
