package logging

import (
	"path/filepath"
	"testing"
	"time"

	"numlab/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, lc config.LoggingConfig) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core), lc)
	t.Cleanup(func() { Use(zap.NewNop(), config.LoggingConfig{}) })
	return logs
}

func TestGetNamesLoggerByCategory(t *testing.T) {
	logs := observe(t, config.LoggingConfig{DebugMode: true})

	Get(CategoryPrimes).Infow("generated", "count", 25)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "primes", entries[0].LoggerName)
	assert.Equal(t, "generated", entries[0].Message)
	assert.Equal(t, int64(25), entries[0].ContextMap()["count"])
}

func TestDisabledWhenNotDebugMode(t *testing.T) {
	logs := observe(t, config.LoggingConfig{DebugMode: false})

	Get(CategoryCollatz).Info("hidden")
	assert.Zero(t, logs.Len())
}

func TestCategoryFilter(t *testing.T) {
	logs := observe(t, config.LoggingConfig{
		DebugMode:  true,
		Categories: map[string]bool{"watch": false},
	})

	Get(CategoryWatch).Info("hidden")
	Get(CategoryEquation).Info("shown")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "equation", logs.All()[0].LoggerName)
}

func TestGetCachesPerCategory(t *testing.T) {
	observe(t, config.LoggingConfig{DebugMode: true})
	assert.Same(t, Get(CategoryReport), Get(CategoryReport))
}

func TestTimer(t *testing.T) {
	logs := observe(t, config.LoggingConfig{DebugMode: true})

	timer := StartTimer(CategoryReport, "survey")
	assert.GreaterOrEqual(t, timer.Stop(), time.Duration(0))

	StartTimer(CategoryReport, "slow").StopWithThreshold(-time.Second)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { Use(zap.NewNop(), config.LoggingConfig{}) })

	require.NoError(t, Initialize(config.LoggingConfig{}))
	assert.False(t, IsCategoryEnabled(CategoryBoot))

	path := filepath.Join(t.TempDir(), "numlab.log")
	require.NoError(t, Initialize(config.LoggingConfig{DebugMode: true, Level: "debug", Format: "json", File: path}))
	assert.True(t, IsCategoryEnabled(CategoryBoot))
	Sync()

	assert.Error(t, Initialize(config.LoggingConfig{DebugMode: true, Level: "loud"}))
}
