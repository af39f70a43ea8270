package rng

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
)

func TestSeedFallback(t *testing.T) {
	assert.Equal(t, int64(17), Seed("", 17))
}

func TestSeedPhraseIsStable(t *testing.T) {
	a := Seed("twin primes", 0)
	b := Seed("twin primes", 99)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(xxhash.Sum64String("twin primes")), a)
	assert.NotEqual(t, a, Seed("cousin primes", 0))
}

func TestNewIsReproducible(t *testing.T) {
	r1 := New(123)
	r2 := New(123)
	for i := 0; i < 10; i++ {
		assert.Equal(t, r1.Int63(), r2.Int63())
	}
}
