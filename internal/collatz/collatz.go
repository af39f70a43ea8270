// Package collatz generates Collatz sequences under an explicit step budget
// and annotates each value with its primality and binary structure.
package collatz

import (
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	"numlab/internal/primes"
)

// DefaultMaxSteps is the budget used when a caller passes a non-positive cap.
const DefaultMaxSteps = 1000

// Outcome describes how a sequence run ended.
type Outcome int

const (
	// Converged means the sequence reached 1.
	Converged Outcome = iota
	// Exhausted means the step budget ran out before reaching 1.
	Exhausted
	// Overflow means the next 3n+1 step does not fit in a uint64.
	Overflow
	// Invalid means the seed was below 1.
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	case Overflow:
		return "overflow"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Digest is the binary view of a value.
type Digest struct {
	Bits          string `json:"bits" yaml:"bits"`
	TrailingZeros int    `json:"trailing_zeros" yaml:"trailing_zeros"`
	Stripped      string `json:"stripped" yaml:"stripped"`
}

// Step is one value in a sequence.
type Step struct {
	Value   uint64 `json:"value" yaml:"value"`
	IsPrime bool   `json:"is_prime" yaml:"is_prime"`
	Binary  Digest `json:"binary" yaml:"binary"`
}

// Sequence is an immutable Collatz run starting at Seed.
type Sequence struct {
	Seed     uint64  `json:"seed" yaml:"seed"`
	Steps    []Step  `json:"steps" yaml:"steps"`
	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	MaxSteps int     `json:"max_steps" yaml:"max_steps"`
}

// Next applies one Collatz step.
func Next(n uint64) uint64 {
	if n%2 == 0 {
		return n / 2
	}
	return 3*n + 1
}

// BinaryDigest returns the binary representation of n, the number of
// trailing zero bits and the pattern left after stripping them.
// Zero is reported as "0" with no trailing zeros.
func BinaryDigest(n uint64) Digest {
	if n == 0 {
		return Digest{Bits: "0", Stripped: "0"}
	}
	tz := bits.TrailingZeros64(n)
	return Digest{
		Bits:          strconv.FormatUint(n, 2),
		TrailingZeros: tz,
		Stripped:      strconv.FormatUint(n>>uint(tz), 2),
	}
}

// Generate iterates Next from seed until it reaches 1 or maxSteps
// transitions have been taken. maxSteps <= 0 selects DefaultMaxSteps.
func Generate(seed int64, maxSteps int) Sequence {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if seed < 1 {
		return Sequence{Steps: []Step{}, Outcome: Invalid, MaxSteps: maxSteps}
	}

	n := uint64(seed)
	seq := Sequence{Seed: n, MaxSteps: maxSteps, Steps: []Step{annotate(n)}}
	for n != 1 {
		if len(seq.Steps)-1 >= maxSteps {
			seq.Outcome = Exhausted
			return seq
		}
		if n%2 == 1 && n > (math.MaxUint64-1)/3 {
			seq.Outcome = Overflow
			return seq
		}
		n = Next(n)
		seq.Steps = append(seq.Steps, annotate(n))
	}
	seq.Outcome = Converged
	return seq
}

func annotate(n uint64) Step {
	return Step{
		Value:   n,
		IsPrime: isPrime(n),
		Binary:  BinaryDigest(n),
	}
}

// trialLimit bounds the values checked by trial division; larger values use
// Baillie-PSW, which is exact below 2^64. It stays within int32 so the int
// conversion is lossless on 32-bit platforms too.
const trialLimit = math.MaxInt32

func isPrime(n uint64) bool {
	if n < trialLimit {
		return primes.IsPrime(int(n))
	}
	return new(big.Int).SetUint64(n).ProbablyPrime(0)
}

// Values returns the raw values of the sequence.
func (s Sequence) Values() []uint64 {
	out := make([]uint64, len(s.Steps))
	for i, st := range s.Steps {
		out[i] = st.Value
	}
	return out
}

// Len returns the number of transitions taken.
func (s Sequence) Len() int {
	if len(s.Steps) == 0 {
		return 0
	}
	return len(s.Steps) - 1
}

// Peak returns the largest value reached.
func (s Sequence) Peak() uint64 {
	var m uint64
	for _, st := range s.Steps {
		if st.Value > m {
			m = st.Value
		}
	}
	return m
}

// OddCount returns how many values in the sequence are odd.
func (s Sequence) OddCount() int {
	c := 0
	for _, st := range s.Steps {
		if st.Value%2 == 1 {
			c++
		}
	}
	return c
}

// EvenCount returns how many values in the sequence are even.
func (s Sequence) EvenCount() int {
	return len(s.Steps) - s.OddCount()
}

// PrimeCount returns how many values in the sequence are prime.
func (s Sequence) PrimeCount() int {
	c := 0
	for _, st := range s.Steps {
		if st.IsPrime {
			c++
		}
	}
	return c
}

// String renders the values joined by arrows.
func (s Sequence) String() string {
	parts := make([]string, len(s.Steps))
	for i, st := range s.Steps {
		parts[i] = strconv.FormatUint(st.Value, 10)
	}
	return strings.Join(parts, " → ")
}
