package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at the repo root.
const FileName = "inkboard.yaml"

// Environment overrides, read from the process or a .env file in the repo root.
const (
	EnvNow      = "INKBOARD_NOW"
	EnvLocale   = "INKBOARD_LOCALE"
	EnvTimezone = "INKBOARD_TIMEZONE"
)

// Config represents the top-level inkboard.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Widgets   []string        `yaml:"widgets"`
	Git       GitConfig       `yaml:"git"`
}

// BusinessConfig identifies the business.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// DashboardConfig controls how views bucket and label data.
type DashboardConfig struct {
	WindowMonths int    `yaml:"window_months"`
	Locale       string `yaml:"locale"`   // BCP 47, e.g. "pt-BR"
	Timezone     string `yaml:"timezone"` // IANA name, e.g. "America/Sao_Paulo"
	Currency     string `yaml:"currency"` // symbol shown before amounts
	Now          string `yaml:"-"`        // evaluation instant override, env only
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// DefaultWidgets is the widget panel shown when none is configured.
var DefaultWidgets = []string{
	"clients-total",
	"projects-active",
	"revenue-month",
	"appointments-scheduled",
	"growth-chart",
	"new-clients",
}

// Load reads an inkboard.yaml file from disk. Zero fields take defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadRepo loads <repoRoot>/inkboard.yaml, falling back to defaults when the
// file does not exist, then applies environment overrides from the process
// and <repoRoot>/.env.
func LoadRepo(repoRoot string) (*Config, error) {
	cfg, err := Load(filepath.Join(repoRoot, FileName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default("")
	}

	// Process environment wins over .env; Load never overwrites set variables.
	if err := godotenv.Load(filepath.Join(repoRoot, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
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

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	cfg := &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "inkboard",
			AuthorEmail: "inkboard@localhost",
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Dashboard.WindowMonths < 1 {
		return fmt.Errorf("invalid window_months %d: must be at least 1", c.Dashboard.WindowMonths)
	}
	if _, err := time.LoadLocation(c.Dashboard.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Dashboard.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone, UTC if it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) applyDefaults() {
	if c.Dashboard.WindowMonths == 0 {
		c.Dashboard.WindowMonths = 6
	}
	if c.Dashboard.Locale == "" {
		c.Dashboard.Locale = "pt-BR"
	}
	if c.Dashboard.Timezone == "" {
		c.Dashboard.Timezone = "UTC"
	}
	if c.Dashboard.Currency == "" {
		c.Dashboard.Currency = "R$"
	}
	if len(c.Widgets) == 0 {
		c.Widgets = append([]string(nil), DefaultWidgets...)
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLocale); v != "" {
		c.Dashboard.Locale = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Dashboard.Timezone = v
	}
	if v := os.Getenv(EnvNow); v != "" {
		c.Dashboard.Now = v
	}
}
