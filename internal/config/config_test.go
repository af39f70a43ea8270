package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// UNIFIED CONFIG TESTS
// =============================================================================

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NUMLAB_MAX_STEPS", "NUMLAB_SEED", "NUMLAB_SEED_PHRASE", "NUMLAB_WORKERS",
		"NUMLAB_THEME", "NUMLAB_LOG_LEVEL", "NUMLAB_DEBUG",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Collatz.MaxSteps != 1000 {
		t.Errorf("expected MaxSteps=1000, got %d", cfg.Collatz.MaxSteps)
	}
	if cfg.Sampling.Buckets != 10 {
		t.Errorf("expected Buckets=10, got %d", cfg.Sampling.Buckets)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "numlab.yaml")

	cfg := DefaultConfig()
	cfg.Collatz.MaxSteps = 250
	cfg.Sampling.SeedPhrase = "goldbach"
	cfg.Logging.Categories = map[string]bool{"watch": false}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Collatz.MaxSteps != 250 {
		t.Errorf("expected MaxSteps=250, got %d", loaded.Collatz.MaxSteps)
	}
	if loaded.Sampling.SeedPhrase != "goldbach" {
		t.Errorf("expected SeedPhrase=goldbach, got %s", loaded.Sampling.SeedPhrase)
	}
	if loaded.Logging.Categories["watch"] {
		t.Errorf("expected watch category disabled")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Theme != "dark" {
		t.Errorf("expected default theme, got %s", cfg.Output.Theme)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "numlab.yaml")
	if err := os.WriteFile(path, []byte("collatz:\n  max_steps: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Collatz.MaxSteps != 42 {
		t.Errorf("expected MaxSteps=42, got %d", cfg.Collatz.MaxSteps)
	}
	if cfg.Report.Workers != 4 {
		t.Errorf("expected default workers to survive, got %d", cfg.Report.Workers)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numlab.yaml")
	if err := os.WriteFile(path, []byte("collatz: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max steps", func(c *Config) { c.Collatz.MaxSteps = 0 }},
		{"max range", func(c *Config) { c.Primes.MaxRange = 0 }},
		{"drop percent", func(c *Config) { c.Sampling.DropPercent = 120 }},
		{"buckets", func(c *Config) { c.Sampling.Buckets = 0 }},
		{"workers", func(c *Config) { c.Report.Workers = 0 }},
		{"max seeds", func(c *Config) { c.Report.MaxSeeds = 0 }},
		{"theme", func(c *Config) { c.Output.Theme = "neon" }},
		{"format", func(c *Config) { c.Output.Format = "xml" }},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestConfig_JSONKeysMatchYAML(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var doc map[string]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for section, key := range map[string]string{
		"collatz":  "max_steps",
		"primes":   "max_range",
		"sampling": "drop_percent",
		"report":   "max_seeds",
		"output":   "format",
		"logging":  "level",
	} {
		if _, ok := doc[section][key]; !ok {
			t.Errorf("expected %s.%s in JSON output, got %s", section, key, data)
		}
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if lc.IsCategoryEnabled("primes") {
		t.Error("categories must be off when debug mode is off")
	}
	lc.DebugMode = true
	if !lc.IsCategoryEnabled("primes") {
		t.Error("all categories enabled without a filter")
	}
	lc.Categories = map[string]bool{"primes": false}
	if lc.IsCategoryEnabled("primes") {
		t.Error("explicitly disabled category reported enabled")
	}
	if !lc.IsCategoryEnabled("collatz") {
		t.Error("unlisted category should default to enabled")
	}
}
