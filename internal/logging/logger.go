// Package logging provides config-driven categorized logging for numlab on
// top of zap. Each category gets a named child logger; categories can be
// switched off individually, and everything is a no-op unless debug_mode is
// set (or the CLI is run with --verbose).
package logging

import (
	"fmt"
	"sync"
	"time"

	"numlab/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // CLI startup, config loading
	CategoryPrimes   Category = "primes"   // Prime commands
	CategoryCollatz  Category = "collatz"  // Collatz commands
	CategoryEquation Category = "equation" // Equation solving
	CategoryGeometry Category = "geometry" // Shape commands
	CategoryReport   Category = "report"   // Concurrent explorers
	CategoryWatch    Category = "watch"    // File watcher
	CategoryConfig   Category = "config"   // Config show/init
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	cfg     config.LoggingConfig
	loggers = make(map[Category]*zap.SugaredLogger)
)

// Initialize builds a zap logger from lc and installs it. With debug_mode
// off nothing is written.
func Initialize(lc config.LoggingConfig) error {
	if !lc.DebugMode {
		Use(zap.NewNop(), lc)
		return nil
	}

	var zc zap.Config
	if lc.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	level := zapcore.InfoLevel
	if lc.Level != "" {
		l, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", lc.Level, err)
		}
		level = l
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if lc.File != "" {
		zc.OutputPaths = []string{lc.File}
	}

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Use(l, lc)
	Get(CategoryBoot).Debugw("logging initialized", "level", level.String(), "format", lc.Format)
	return nil
}

// Use installs l as the root logger with lc's category filter.
func Use(l *zap.Logger, lc config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	cfg = lc
	loggers = make(map[Category]*zap.SugaredLogger)
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.SugaredLogger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop().Sugar()
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := base.Named(string(category)).Sugar()
	loggers[category] = l
	return l
}

// Sync flushes the root logger.
func Sync() {
	mu.RLock()
	l := base
	mu.RUnlock()
	_ = l.Sync()
}

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debugw("operation completed", "op", t.op, "elapsed", elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warnw("operation slow", "op", t.op, "elapsed", elapsed, "threshold", threshold)
	} else {
		Get(t.category).Debugw("operation completed", "op", t.op, "elapsed", elapsed)
	}
	return elapsed
}
