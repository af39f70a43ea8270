// Package report runs the batch "explorer" computations: a Collatz survey
// over a range of seeds and a combined overview of a prime range. Work fans
// out over an errgroup and stops early when the context is cancelled.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"numlab/internal/collatz"
	"numlab/internal/logging"
	"numlab/internal/primes"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the fan-out when the caller passes zero.
const DefaultWorkers = 4

// MaxSeeds is the widest range CollatzSurvey will hold in memory.
const MaxSeeds = 10_000_000

// ErrTooWide is returned for a survey range holding more than MaxSeeds seeds.
var ErrTooWide = errors.New("survey range too wide")

// SeedResult summarises one Collatz run.
type SeedResult struct {
	Seed    int64           `json:"seed" yaml:"seed"`
	Steps   int             `json:"steps" yaml:"steps"`
	Peak    uint64          `json:"peak" yaml:"peak"`
	Outcome collatz.Outcome `json:"outcome" yaml:"outcome"`
}

// Survey is the result of CollatzSurvey.
type Survey struct {
	From      int64        `json:"from" yaml:"from"`
	To        int64        `json:"to" yaml:"to"`
	MaxSteps  int          `json:"max_steps" yaml:"max_steps"`
	Results   []SeedResult `json:"results" yaml:"results"`
	Longest   SeedResult   `json:"longest" yaml:"longest"`
	Highest   SeedResult   `json:"highest" yaml:"highest"`
	Exhausted []int64      `json:"exhausted" yaml:"exhausted"`
}

// CollatzSurvey runs collatz.Generate for every seed in [from, to] with at
// most workers goroutines. Results are ordered by seed. Longest and Highest
// only consider converged runs; ties keep the smaller seed.
func CollatzSurvey(ctx context.Context, from, to int64, maxSteps, workers int) (Survey, error) {
	if to < from {
		return Survey{}, fmt.Errorf("invalid seed range [%d, %d]", from, to)
	}
	// to >= from, so the unsigned difference is exact even across zero.
	span := uint64(to) - uint64(from)
	if span >= MaxSeeds {
		return Survey{}, fmt.Errorf("%w: [%d, %d] exceeds %d seeds", ErrTooWide, from, to, MaxSeeds)
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	if maxSteps <= 0 {
		maxSteps = collatz.DefaultMaxSteps
	}
	log := logging.Get(logging.CategoryReport)
	timer := logging.StartTimer(logging.CategoryReport, "collatz survey")
	defer timer.Stop()

	results := make([]SeedResult, span+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		seed := from + int64(i)
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seq := collatz.Generate(seed, maxSteps)
			results[idx] = SeedResult{Seed: seed, Steps: seq.Len(), Peak: seq.Peak(), Outcome: seq.Outcome}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warnw("collatz survey aborted", "from", from, "to", to, "error", err)
		return Survey{}, err
	}

	s := Survey{From: from, To: to, MaxSteps: maxSteps, Results: results, Exhausted: []int64{}}
	found := false
	for _, r := range results {
		if r.Outcome == collatz.Exhausted || r.Outcome == collatz.Overflow {
			s.Exhausted = append(s.Exhausted, r.Seed)
			continue
		}
		if r.Outcome != collatz.Converged {
			continue
		}
		if !found || r.Steps > s.Longest.Steps {
			s.Longest = r
		}
		if !found || r.Peak > s.Highest.Peak {
			s.Highest = r
		}
		found = true
	}
	log.Infow("collatz survey complete", "seeds", len(results), "longest", s.Longest.Seed, "exhausted", len(s.Exhausted))
	return s, nil
}

// Overview is the combined view of a prime range.
type Overview struct {
	Start      int                `json:"start" yaml:"start"`
	End        int                `json:"end" yaml:"end"`
	Primes     []int              `json:"primes" yaml:"primes"`
	Twins      []primes.TwinPair  `json:"twins" yaml:"twins"`
	Analysis   primes.GapAnalysis `json:"analysis" yaml:"analysis"`
	MaxGap     int                `json:"max_gap" yaml:"max_gap"`
	MaxGapFrom int                `json:"max_gap_from" yaml:"max_gap_from"`
	Histogram  primes.Histogram   `json:"histogram" yaml:"histogram"`
}

// PrimeOverview generates the primes of [start, end] once and derives twin
// pairs, the mod-3 gap analysis and a histogram concurrently.
func PrimeOverview(ctx context.Context, start, end, buckets int) (Overview, error) {
	ps := primes.Generate(start, end)
	ov := Overview{Start: start, End: end, Primes: ps}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		ov.Twins = primes.PairTwins(ps)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		ov.Analysis = primes.AnalyzeGaps(ps)
		ov.MaxGap, ov.MaxGapFrom, _ = primes.MaxGap(ps)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		ov.Histogram = primes.NewHistogram(ps, start, end, buckets)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	logging.Get(logging.CategoryReport).Debugw("prime overview", "start", start, "end", end, "primes", len(ps))
	return ov, nil
}

// TopBySteps returns the n longest converged runs, longest first.
func (s Survey) TopBySteps(n int) []SeedResult {
	out := make([]SeedResult, 0, len(s.Results))
	for _, r := range s.Results {
		if r.Outcome == collatz.Converged {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Steps > out[j].Steps })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
