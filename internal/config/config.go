package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "numlab.yaml"

// Config holds all numlab configuration.
type Config struct {
	// Collatz sequence generation
	Collatz CollatzConfig `yaml:"collatz" json:"collatz"`

	// Prime range defaults
	Primes PrimesConfig `yaml:"primes" json:"primes"`

	// Random subset sampling
	Sampling SamplingConfig `yaml:"sampling" json:"sampling"`

	// Batch explorers
	Report ReportConfig `yaml:"report" json:"report"`

	// Terminal output
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// CollatzConfig configures sequence generation.
type CollatzConfig struct {
	MaxSteps int `yaml:"max_steps" json:"max_steps"` // step budget before a run is reported as exhausted
}

// PrimesConfig configures the prime commands.
type PrimesConfig struct {
	DefaultStart int `yaml:"default_start" json:"default_start"`
	DefaultEnd   int `yaml:"default_end" json:"default_end"`
	MaxRange     int `yaml:"max_range" json:"max_range"` // widest [start,end] the CLI will enumerate
}

// SamplingConfig configures the random-subset analysis.
type SamplingConfig struct {
	DropPercent float64 `yaml:"drop_percent" json:"drop_percent"`
	Buckets     int     `yaml:"buckets" json:"buckets"`
	Seed        int64   `yaml:"seed" json:"seed"`               // 0 = time-derived
	SeedPhrase  string  `yaml:"seed_phrase" json:"seed_phrase"` // hashed into a seed; wins over Seed
}

// ReportConfig configures the concurrent explorers.
type ReportConfig struct {
	Workers  int `yaml:"workers" json:"workers"`
	MaxSeeds int `yaml:"max_seeds" json:"max_seeds"` // widest seed range a survey will run
}

// OutputConfig configures terminal rendering.
type OutputConfig struct {
	Theme  string `yaml:"theme" json:"theme"`   // light, dark
	Format string `yaml:"format" json:"format"` // text, yaml, json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Collatz: CollatzConfig{
			MaxSteps: 1000,
		},
		Primes: PrimesConfig{
			DefaultStart: 1,
			DefaultEnd:   100,
			MaxRange:     10_000_000,
		},
		Sampling: SamplingConfig{
			DropPercent: 20,
			Buckets:     10,
		},
		Report: ReportConfig{
			Workers:  4,
			MaxSeeds: 1_000_000,
		},
		Output: OutputConfig{
			Theme:  "dark",
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Malformed numeric values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NUMLAB_MAX_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Collatz.MaxSteps = n
		}
	}
	if v := os.Getenv("NUMLAB_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Sampling.Seed = n
		}
	}
	if v := os.Getenv("NUMLAB_SEED_PHRASE"); v != "" {
		c.Sampling.SeedPhrase = v
	}
	if v := os.Getenv("NUMLAB_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Report.Workers = n
		}
	}
	if v := os.Getenv("NUMLAB_THEME"); v != "" {
		c.Output.Theme = v
	}
	if v := os.Getenv("NUMLAB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NUMLAB_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
}

// ValidThemes lists the supported output themes.
var ValidThemes = []string{"light", "dark"}

// ValidFormats lists the supported output formats.
var ValidFormats = []string{"text", "yaml", "json"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Collatz.MaxSteps < 1 {
		return fmt.Errorf("collatz.max_steps must be >= 1, got %d", c.Collatz.MaxSteps)
	}
	if c.Primes.MaxRange < 1 {
		return fmt.Errorf("primes.max_range must be >= 1, got %d", c.Primes.MaxRange)
	}
	if c.Sampling.DropPercent < 0 || c.Sampling.DropPercent > 100 {
		return fmt.Errorf("sampling.drop_percent must be within [0,100], got %g", c.Sampling.DropPercent)
	}
	if c.Sampling.Buckets < 1 {
		return fmt.Errorf("sampling.buckets must be >= 1, got %d", c.Sampling.Buckets)
	}
	if c.Report.Workers < 1 {
		return fmt.Errorf("report.workers must be >= 1, got %d", c.Report.Workers)
	}
	if c.Report.MaxSeeds < 1 {
		return fmt.Errorf("report.max_seeds must be >= 1, got %d", c.Report.MaxSeeds)
	}
	if !contains(ValidThemes, c.Output.Theme) {
		return fmt.Errorf("invalid output theme: %s (valid: %v)", c.Output.Theme, ValidThemes)
	}
	if !contains(ValidFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, ValidFormats)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
