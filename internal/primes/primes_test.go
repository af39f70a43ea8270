package primes

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naivePrime is the brute-force reference: trial division by every integer
// from 2 up to √n.
func naivePrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestIsPrimeMatchesTrialDivision(t *testing.T) {
	for n := -10; n <= 5000; n++ {
		if got, want := IsPrime(n), naivePrime(n); got != want {
			t.Fatalf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestIsPrimeLargeValues(t *testing.T) {
	assert.True(t, IsPrime(2147483647))
	assert.True(t, IsPrime(1000000007))
	assert.False(t, IsPrime(1000000007*3))
	assert.False(t, IsPrime(25))
	assert.False(t, IsPrime(49))
}

func TestGenerateCountsAgainstReference(t *testing.T) {
	ranges := [][2]int{{0, 0}, {0, 1}, {2, 2}, {1, 100}, {90, 97}, {500, 1500}, {-20, 30}}
	for _, r := range ranges {
		want := 0
		for n := r[0]; n <= r[1]; n++ {
			if naivePrime(n) {
				want++
			}
		}
		got := Generate(r[0], r[1])
		assert.Len(t, got, want, "range %v", r)
	}
}

func TestGenerateInvalidRange(t *testing.T) {
	got := Generate(50, 10)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerateSmallRange(t *testing.T) {
	want := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	if diff := cmp.Diff(want, Generate(0, 30)); diff != "" {
		t.Fatalf("Generate(0,30) mismatch (-want +got):\n%s", diff)
	}
}

func TestTwinPrimes(t *testing.T) {
	want := []TwinPair{{3, 5}, {5, 7}, {11, 13}, {17, 19}, {29, 31}, {41, 43}}
	if diff := cmp.Diff(want, TwinPrimes(3, 50)); diff != "" {
		t.Fatalf("TwinPrimes(3,50) mismatch (-want +got):\n%s", diff)
	}
}

func TestTwinPrimesUpperBoundInclusive(t *testing.T) {
	assert.Equal(t, []TwinPair{{11, 13}}, TwinPrimes(10, 13))
	assert.Empty(t, TwinPrimes(10, 12))
	assert.Empty(t, TwinPrimes(20, 10))
}

func TestRecords(t *testing.T) {
	got := Records(10, 20)
	want := []Record{
		{N: 11, IsPrime: true, Mod3: 2, GapPrev: 0, GapNext: 2},
		{N: 13, IsPrime: true, Mod3: 1, GapPrev: 2, GapNext: 4},
		{N: 17, IsPrime: true, Mod3: 2, GapPrev: 4, GapNext: 2},
		{N: 19, IsPrime: true, Mod3: 1, GapPrev: 2, GapNext: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Records mismatch (-want +got):\n%s", diff)
	}
}

func TestGapsAndMaxGap(t *testing.T) {
	ps := Generate(2, 30)
	assert.Equal(t, []int{1, 2, 2, 4, 2, 4, 2, 4, 6}, Gaps(ps))

	gap, after, ok := MaxGap(ps)
	require.True(t, ok)
	assert.Equal(t, 6, gap)
	assert.Equal(t, 23, after)

	_, _, ok = MaxGap([]int{7})
	assert.False(t, ok)
	assert.Empty(t, Gaps(nil))
}

func TestResidueWalk(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   []int // expected residues per position
		alt    bool
	}{
		{name: "alternating 2,1", values: []int{5, 7, 11, 13}, want: []int{2, 1, 2, 1}, alt: true},
		{name: "broken", values: []int{5, 7, 13}, want: []int{2, 1, 2}, alt: false},
		{name: "starts at 1", values: []int{7, 11}, want: []int{1, 2}, alt: true},
		{name: "zero repeats", values: []int{3, 6, 9}, want: []int{0, 0, 0}, alt: true},
		{name: "zero then non-zero", values: []int{3, 5}, want: []int{0, 0}, alt: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, alt := ResidueWalk(tt.values)
			require.Len(t, entries, len(tt.values))
			for i, e := range entries {
				assert.Equal(t, tt.want[i], e.Expected, "position %d", i)
				assert.Equal(t, Mod3(tt.values[i]), e.Residue)
				assert.Equal(t, e.Residue == e.Expected, e.Matches)
			}
			assert.Equal(t, tt.alt, alt)
		})
	}
}

func TestResidueWalkEmpty(t *testing.T) {
	entries, alt := ResidueWalk(nil)
	assert.Empty(t, entries)
	assert.False(t, alt)
}

func TestMod3Negative(t *testing.T) {
	assert.Equal(t, 2, Mod3(-1))
	assert.Equal(t, 0, Mod3(-3))
}

func TestAnalyzeGaps(t *testing.T) {
	a := AnalyzeGaps([]int{5, 7, 11, 13})
	assert.Equal(t, []int{2, 4, 2}, a.Gaps)
	assert.True(t, a.PrimesAlternate)
	// gaps 2,4,2 have residues 2,1,2
	assert.True(t, a.GapsAlternate)
	require.Len(t, a.GapResidues, 3)
	assert.Equal(t, 4, a.GapResidues[1].Value)
}

func TestNewHistogram(t *testing.T) {
	h := NewHistogram([]int{1, 2, 5, 9, 10, 11, 42}, 1, 10, 3)
	want := Histogram{
		{Lo: 1, Hi: 3, Count: 2},
		{Lo: 4, Hi: 6, Count: 1},
		{Lo: 7, Hi: 10, Count: 2},
	}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Fatalf("histogram mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, h.Total())

	assert.Empty(t, NewHistogram([]int{1}, 5, 1, 3))
	assert.Empty(t, NewHistogram([]int{1}, 1, 5, 0))
	assert.Len(t, NewHistogram(nil, 1, 2, 10), 2)
}

func TestNewHistogramExtremeBounds(t *testing.T) {
	h := NewHistogram([]int{2, 3}, 0, math.MaxInt, 4)
	require.Len(t, h, 4)
	assert.Equal(t, 2, h[0].Count)
	assert.Equal(t, 0, h[0].Lo)
	assert.Equal(t, math.MaxInt, h[3].Hi)
	assert.Equal(t, 2, h.Total())

	h = NewHistogram([]int{math.MinInt, -1, 0, math.MaxInt}, math.MinInt, math.MaxInt, 2)
	want := Histogram{
		{Lo: math.MinInt, Hi: -1, Count: 2},
		{Lo: 0, Hi: math.MaxInt, Count: 2},
	}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Fatalf("histogram mismatch (-want +got):\n%s", diff)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	xs := Generate(1, 200)
	orig := append([]int(nil), xs...)
	Shuffle(rand.New(rand.NewSource(7)), xs)

	seen := make(map[int]int)
	for _, x := range xs {
		seen[x]++
	}
	for _, x := range orig {
		assert.Equal(t, 1, seen[x], "value %d", x)
	}
	assert.NotEqual(t, orig, xs)
}

func TestSampleSubset(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	a := SampleSubset(r, 1, 100, 40, 5)

	require.Len(t, a.All, 25)
	assert.Len(t, a.Dropped, 10)
	assert.Len(t, a.Kept, 15)
	assert.Equal(t, 25, a.Before.Total())
	assert.Equal(t, 15, a.After.Total())
	assert.IsNonDecreasing(t, a.Kept)
	assert.IsNonDecreasing(t, a.Dropped)

	union := append(append([]int(nil), a.Kept...), a.Dropped...)
	assert.ElementsMatch(t, a.All, union)
}

func TestSampleSubsetDeterministicForSeed(t *testing.T) {
	a := SampleSubset(rand.New(rand.NewSource(9)), 1, 500, 25, 4)
	b := SampleSubset(rand.New(rand.NewSource(9)), 1, 500, 25, 4)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different subsets:\n%s", diff)
	}
}

func TestSampleSubsetClampsPercent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	assert.Empty(t, SampleSubset(r, 1, 50, -5, 2).Dropped)
	a := SampleSubset(r, 1, 50, 250, 2)
	assert.Empty(t, a.Kept)
	assert.Equal(t, 100.0, a.DropPercent)
}
