package report

import (
	"context"
	"math"
	"testing"

	"numlab/internal/collatz"
	"numlab/internal/primes"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCollatzSurvey(t *testing.T) {
	s, err := CollatzSurvey(context.Background(), 1, 30, 0, 3)
	require.NoError(t, err)

	require.Len(t, s.Results, 30)
	for i, r := range s.Results {
		assert.Equal(t, int64(i+1), r.Seed)
		assert.Equal(t, collatz.Converged, r.Outcome)
	}
	assert.Equal(t, int64(27), s.Longest.Seed)
	assert.Equal(t, 111, s.Longest.Steps)
	assert.Equal(t, uint64(9232), s.Highest.Peak)
	assert.Empty(t, s.Exhausted)
	assert.Equal(t, collatz.DefaultMaxSteps, s.MaxSteps)
}

func TestCollatzSurveyMatchesSerial(t *testing.T) {
	s, err := CollatzSurvey(context.Background(), 50, 80, 200, 8)
	require.NoError(t, err)
	for _, r := range s.Results {
		seq := collatz.Generate(r.Seed, 200)
		assert.Equal(t, seq.Len(), r.Steps, "seed %d", r.Seed)
		assert.Equal(t, seq.Peak(), r.Peak, "seed %d", r.Seed)
	}
}

func TestCollatzSurveyReportsExhausted(t *testing.T) {
	s, err := CollatzSurvey(context.Background(), 25, 28, 100, 2)
	require.NoError(t, err)
	// 25 needs 23 steps, 26 needs 10; 27 needs 111, 28 needs 18
	assert.Equal(t, []int64{27}, s.Exhausted)
	assert.Equal(t, int64(25), s.Longest.Seed)
}

func TestCollatzSurveyInvalidRange(t *testing.T) {
	_, err := CollatzSurvey(context.Background(), 10, 1, 0, 0)
	assert.Error(t, err)
}

func TestCollatzSurveyRejectsWideRanges(t *testing.T) {
	tests := []struct {
		name     string
		from, to int64
	}{
		{"across zero to max", -1, math.MaxInt64},
		{"full int64", math.MinInt64, math.MaxInt64},
		{"just past the cap", 1, MaxSeeds + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CollatzSurvey(context.Background(), tt.from, tt.to, 10, 2)
			assert.ErrorIs(t, err, ErrTooWide)
		})
	}
}

func TestCollatzSurveyNegativeSeeds(t *testing.T) {
	s, err := CollatzSurvey(context.Background(), -2, 2, 10, 2)
	require.NoError(t, err)
	require.Len(t, s.Results, 5)
	assert.Equal(t, collatz.Invalid, s.Results[0].Outcome)
	assert.Equal(t, int64(2), s.Results[4].Seed)
}

func TestCollatzSurveyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CollatzSurvey(ctx, 1, 1000, 0, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTopBySteps(t *testing.T) {
	s, err := CollatzSurvey(context.Background(), 1, 10, 0, 0)
	require.NoError(t, err)
	top := s.TopBySteps(2)
	require.Len(t, top, 2)
	assert.Equal(t, int64(9), top[0].Seed) // 19 steps
	assert.Equal(t, int64(7), top[1].Seed) // 16 steps
	assert.Len(t, s.TopBySteps(-1), 10)
}

func TestPrimeOverview(t *testing.T) {
	ov, err := PrimeOverview(context.Background(), 3, 50, 5)
	require.NoError(t, err)

	if diff := cmp.Diff(primes.TwinPrimes(3, 50), ov.Twins); diff != "" {
		t.Fatalf("twins mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, primes.Generate(3, 50), ov.Primes)
	assert.Equal(t, 6, ov.MaxGap)
	assert.Equal(t, 23, ov.MaxGapFrom)
	assert.Equal(t, len(ov.Primes), ov.Histogram.Total())
	assert.Equal(t, primes.AnalyzeGaps(ov.Primes), ov.Analysis)
}

func TestPrimeOverviewCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PrimeOverview(ctx, 1, 100, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
