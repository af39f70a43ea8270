// Package primes implements primality testing, prime generation over a range,
// twin-prime detection and the gap / residue-mod-3 analysis used by the prime
// explorer widgets.
//
// Everything here is pure and allocation-light. Invalid ranges (end < start)
// produce empty results rather than errors.
package primes

// Record is a prime together with its derived attributes.
// GapPrev and GapNext are zero when the neighbouring prime lies outside the
// analysed range.
type Record struct {
	N       int  `json:"n" yaml:"n"`
	IsPrime bool `json:"is_prime" yaml:"is_prime"`
	Mod3    int  `json:"mod3" yaml:"mod3"`
	GapPrev int  `json:"gap_prev" yaml:"gap_prev"`
	GapNext int  `json:"gap_next" yaml:"gap_next"`
}

// TwinPair is a pair of primes differing by exactly 2.
type TwinPair struct {
	P int `json:"p" yaml:"p"`
	Q int `json:"q" yaml:"q"`
}

// IsPrime reports whether n is prime using 6k±1 trial division up to √n.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	// i*i <= n written as i <= n/i to stay clear of overflow near MaxInt.
	for i := 5; i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// Generate returns every prime in [start, end], ascending.
func Generate(start, end int) []int {
	out := make([]int, 0)
	if end < start {
		return out
	}
	if start < 2 {
		start = 2
	}
	for n := start; n <= end; n++ {
		if IsPrime(n) {
			out = append(out, n)
		}
		if n == end {
			// avoid n++ wrapping when end == MaxInt
			break
		}
	}
	return out
}

// TwinPrimes returns the pairs (p, p+2) with both members inside [start, end].
func TwinPrimes(start, end int) []TwinPair {
	return PairTwins(Generate(start, end))
}

// PairTwins returns the twin pairs found among consecutive entries of an
// ascending prime list.
func PairTwins(ps []int) []TwinPair {
	out := make([]TwinPair, 0)
	for i := 1; i < len(ps); i++ {
		if ps[i]-ps[i-1] == 2 {
			out = append(out, TwinPair{P: ps[i-1], Q: ps[i]})
		}
	}
	return out
}

// Records returns a Record for every prime in [start, end].
func Records(start, end int) []Record {
	ps := Generate(start, end)
	out := make([]Record, len(ps))
	for i, p := range ps {
		r := Record{N: p, IsPrime: true, Mod3: p % 3}
		if i > 0 {
			r.GapPrev = p - ps[i-1]
		}
		if i < len(ps)-1 {
			r.GapNext = ps[i+1] - p
		}
		out[i] = r
	}
	return out
}

// Gaps returns the differences between consecutive entries of primes.
func Gaps(primes []int) []int {
	if len(primes) < 2 {
		return []int{}
	}
	out := make([]int, len(primes)-1)
	for i := 1; i < len(primes); i++ {
		out[i-1] = primes[i] - primes[i-1]
	}
	return out
}

// MaxGap returns the largest gap between consecutive primes and the prime
// that opens it. ok is false when fewer than two primes are supplied.
func MaxGap(primes []int) (gap, after int, ok bool) {
	for i := 1; i < len(primes); i++ {
		if d := primes[i] - primes[i-1]; d > gap {
			gap, after, ok = d, primes[i-1], true
		}
	}
	return gap, after, ok
}
