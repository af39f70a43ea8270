package primes

import (
	"math"
	"math/rand"
	"sort"
)

// Bucket counts the values falling in [Lo, Hi].
type Bucket struct {
	Lo    int `json:"lo" yaml:"lo"`
	Hi    int `json:"hi" yaml:"hi"`
	Count int `json:"count" yaml:"count"`
}

// Histogram is an ordered list of contiguous buckets.
type Histogram []Bucket

// Total returns the sum of all bucket counts.
func (h Histogram) Total() int {
	n := 0
	for _, b := range h {
		n += b.Count
	}
	return n
}

// SubsetAnalysis compares a prime range with a randomly thinned copy of it.
type SubsetAnalysis struct {
	All         []int     `json:"all" yaml:"all"`
	Kept        []int     `json:"kept" yaml:"kept"`
	Dropped     []int     `json:"dropped" yaml:"dropped"`
	Before      Histogram `json:"before" yaml:"before"`
	After       Histogram `json:"after" yaml:"after"`
	DropPercent float64   `json:"drop_percent" yaml:"drop_percent"`
}

// NewHistogram splits [lo, hi] into the given number of equal-width buckets
// and counts values into them. The last bucket absorbs any remainder so the
// buckets always cover the whole range. Values outside [lo, hi] are ignored.
func NewHistogram(values []int, lo, hi, buckets int) Histogram {
	if buckets < 1 || hi < lo {
		return Histogram{}
	}
	// Work in uint64 so that ranges wider than MaxInt do not wrap. d is
	// span-1, which fits even when the span itself does not.
	d := uint64(hi) - uint64(lo)
	if uint64(buckets)-1 > d {
		buckets = int(d + 1)
	}
	n := uint64(buckets)
	width := d/n + (d%n+1)/n
	h := make(Histogram, buckets)
	for i := range h {
		off := uint64(i) * width
		h[i].Lo = int(uint64(lo) + off)
		h[i].Hi = int(uint64(lo) + off + width - 1)
	}
	h[buckets-1].Hi = hi

	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		idx := (uint64(v) - uint64(lo)) / width
		if idx >= n {
			idx = n - 1
		}
		h[idx].Count++
	}
	return h
}

// Shuffle permutes xs in place with a Fisher-Yates pass driven by r.
func Shuffle(r *rand.Rand, xs []int) {
	for i := len(xs) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// SampleSubset generates the primes of [start, end], drops dropPercent of
// them at random and histograms the range before and after. dropPercent is
// clamped to [0, 100]; the drop count is floor(len*pct/100).
func SampleSubset(r *rand.Rand, start, end int, dropPercent float64, buckets int) SubsetAnalysis {
	if math.IsNaN(dropPercent) || dropPercent < 0 {
		dropPercent = 0
	}
	if dropPercent > 100 {
		dropPercent = 100
	}

	all := Generate(start, end)
	shuffled := make([]int, len(all))
	copy(shuffled, all)
	Shuffle(r, shuffled)

	drop := int(math.Floor(float64(len(all)) * dropPercent / 100))
	kept := append([]int(nil), shuffled[drop:]...)
	dropped := append([]int(nil), shuffled[:drop]...)
	sort.Ints(kept)
	sort.Ints(dropped)
	if kept == nil {
		kept = []int{}
	}
	if dropped == nil {
		dropped = []int{}
	}

	return SubsetAnalysis{
		All:         all,
		Kept:        kept,
		Dropped:     dropped,
		Before:      NewHistogram(all, start, end, buckets),
		After:       NewHistogram(kept, start, end, buckets),
		DropPercent: dropPercent,
	}
}
