// Package rng builds the seeded random sources used by the sampling tools.
package rng

import (
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
)

// RandomSeed returns a time-derived seed.
func RandomSeed() int64 {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Int63()
}

// Seed resolves the seed for a run. A non-empty phrase wins and is hashed
// with xxhash64 so the same phrase always reproduces the same sample;
// otherwise fallback is returned unchanged.
func Seed(phrase string, fallback int64) int64 {
	if phrase == "" {
		return fallback
	}
	return int64(xxhash.Sum64String(phrase))
}

// New returns a *rand.Rand seeded with seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
