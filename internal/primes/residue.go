package primes

// ResidueEntry is one value of a residue walk together with the residue the
// alternation rule expected at that position.
type ResidueEntry struct {
	Value    int  `json:"value" yaml:"value"`
	Residue  int  `json:"residue" yaml:"residue"`
	Expected int  `json:"expected" yaml:"expected"`
	Matches  bool `json:"matches" yaml:"matches"`
}

// GapAnalysis is the mod-3 view of a prime sequence and its gaps.
type GapAnalysis struct {
	Primes          []int          `json:"primes" yaml:"primes"`
	Gaps            []int          `json:"gaps" yaml:"gaps"`
	PrimeResidues   []ResidueEntry `json:"prime_residues" yaml:"prime_residues"`
	GapResidues     []ResidueEntry `json:"gap_residues" yaml:"gap_residues"`
	PrimesAlternate bool           `json:"primes_alternate" yaml:"primes_alternate"`
	GapsAlternate   bool           `json:"gaps_alternate" yaml:"gaps_alternate"`
}

// Mod3 returns the non-negative residue of n modulo 3.
func Mod3(n int) int {
	r := n % 3
	if r < 0 {
		r += 3
	}
	return r
}

// alternate is the residue expected one position after r.
// 1 and 2 swap; 0 has no partner and repeats.
func alternate(r int) int {
	switch r {
	case 1:
		return 2
	case 2:
		return 1
	default:
		return 0
	}
}

// ResidueWalk classifies values against the alternation rule: even
// positions expect the residue of the first value, odd positions expect its
// alternate. The second result reports whether every position matched; it is
// false for an empty input.
func ResidueWalk(values []int) ([]ResidueEntry, bool) {
	out := make([]ResidueEntry, len(values))
	if len(values) == 0 {
		return out, false
	}
	first := Mod3(values[0])
	all := true
	for i, v := range values {
		want := first
		if i%2 == 1 {
			want = alternate(first)
		}
		r := Mod3(v)
		out[i] = ResidueEntry{Value: v, Residue: r, Expected: want, Matches: r == want}
		if r != want {
			all = false
		}
	}
	return out, all
}

// AnalyzeGaps computes gaps for primes and runs both sequences through
// ResidueWalk.
func AnalyzeGaps(primes []int) GapAnalysis {
	gaps := Gaps(primes)
	pr, pAlt := ResidueWalk(primes)
	gr, gAlt := ResidueWalk(gaps)
	cp := make([]int, len(primes))
	copy(cp, primes)
	return GapAnalysis{
		Primes:          cp,
		Gaps:            gaps,
		PrimeResidues:   pr,
		GapResidues:     gr,
		PrimesAlternate: pAlt,
		GapsAlternate:   gAlt,
	}
}
