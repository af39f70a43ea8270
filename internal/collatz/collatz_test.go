package collatz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	assert.Equal(t, uint64(3), Next(6))
	assert.Equal(t, uint64(22), Next(7))
	assert.Equal(t, uint64(4), Next(1))
}

func TestGenerateOne(t *testing.T) {
	seq := Generate(1, 10)
	assert.Equal(t, []uint64{1}, seq.Values())
	assert.Equal(t, Converged, seq.Outcome)
	assert.Equal(t, 0, seq.Len())
}

func TestGenerate27(t *testing.T) {
	seq := Generate(27, DefaultMaxSteps)
	require.Equal(t, Converged, seq.Outcome)
	assert.Equal(t, 111, seq.Len())
	assert.Len(t, seq.Steps, 112)
	assert.Equal(t, uint64(9232), seq.Peak())
	assert.Equal(t, uint64(1), seq.Steps[len(seq.Steps)-1].Value)
}

func TestGenerateBudgetExhausted(t *testing.T) {
	seq := Generate(27, 100)
	assert.Equal(t, Exhausted, seq.Outcome)
	assert.Equal(t, 100, seq.Len())
	assert.NotEqual(t, uint64(1), seq.Steps[len(seq.Steps)-1].Value)
}

func TestGenerateDefaultBudget(t *testing.T) {
	seq := Generate(27, 0)
	assert.Equal(t, DefaultMaxSteps, seq.MaxSteps)
	assert.Equal(t, Converged, seq.Outcome)
}

func TestGenerateExactBudget(t *testing.T) {
	// 6 → 3 → 10 → 5 → 16 → 8 → 4 → 2 → 1 takes 8 steps.
	assert.Equal(t, Converged, Generate(6, 8).Outcome)
	assert.Equal(t, Exhausted, Generate(6, 7).Outcome)
	assert.Equal(t, []uint64{6, 3, 10, 5, 16, 8, 4, 2, 1}, Generate(6, 8).Values())
}

func TestGenerateInvalidSeed(t *testing.T) {
	for _, seed := range []int64{0, -1, math.MinInt64} {
		seq := Generate(seed, 10)
		assert.Equal(t, Invalid, seq.Outcome)
		assert.Empty(t, seq.Steps)
		assert.Equal(t, 0, seq.Len())
	}
}

func TestGenerateOverflow(t *testing.T) {
	// the largest odd int64 immediately exceeds (MaxUint64-1)/3 after one
	// tripling, so the guard must trip before wrapping.
	seq := Generate(math.MaxInt64, 10)
	assert.Equal(t, Overflow, seq.Outcome)
	for _, v := range seq.Values() {
		assert.NotZero(t, v)
	}
}

func TestStepAnnotations(t *testing.T) {
	seq := Generate(12, 0)
	// 12 → 6 → 3 → 10 → 5 → 16 → 8 → 4 → 2 → 1
	first := seq.Steps[0]
	assert.False(t, first.IsPrime)
	assert.Equal(t, Digest{Bits: "1100", TrailingZeros: 2, Stripped: "11"}, first.Binary)
	assert.True(t, seq.Steps[2].IsPrime)
	assert.Equal(t, 3, seq.PrimeCount()) // 3, 5, 2
	assert.Equal(t, 3, seq.OddCount())   // 3, 5, 1
}

func TestBinaryDigest(t *testing.T) {
	assert.Equal(t, Digest{Bits: "0", Stripped: "0"}, BinaryDigest(0))
	assert.Equal(t, Digest{Bits: "1", Stripped: "1"}, BinaryDigest(1))
	assert.Equal(t, Digest{Bits: "10000", TrailingZeros: 4, Stripped: "1"}, BinaryDigest(16))
	assert.Equal(t, Digest{Bits: "1010", TrailingZeros: 1, Stripped: "101"}, BinaryDigest(10))
}

func TestLargeValuePrimality(t *testing.T) {
	assert.True(t, isPrime(4294967311)) // smallest prime above 2^32
	assert.False(t, isPrime(4294967297)) // 641 * 6700417
}

func TestPrimalityAroundTrialLimit(t *testing.T) {
	assert.LessOrEqual(t, uint64(trialLimit), uint64(math.MaxInt32))

	assert.True(t, isPrime(2147483629))  // below the limit, trial division
	assert.True(t, isPrime(2147483647))  // 2^31-1, first value past it
	assert.False(t, isPrime(2147483649)) // 3 * 715827883
	assert.False(t, isPrime(2147483648))
}

func TestOutcomeText(t *testing.T) {
	b, err := Exhausted.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "exhausted", string(b))
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestSequenceString(t *testing.T) {
	assert.Equal(t, "4 → 2 → 1", Generate(4, 0).String())
}
