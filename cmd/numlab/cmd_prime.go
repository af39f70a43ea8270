package main

import (
	"fmt"
	"strconv"

	"numlab/cmd/numlab/ui"
	"numlab/internal/logging"
	"numlab/internal/primes"
	"numlab/internal/report"
	"numlab/internal/rng"

	"github.com/spf13/cobra"
)

var (
	sampleDrop   float64
	sampleSeed   int64
	samplePhrase string
)

var primeCmd = &cobra.Command{
	Use:   "prime",
	Short: "Primality, prime ranges, twin primes and gap analysis",
}

var primeCheckCmd = &cobra.Command{
	Use:   "check [n...]",
	Short: "Test numbers for primality",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPrimeCheck,
}

var primeRangeCmd = &cobra.Command{
	Use:   "range [start] [end]",
	Short: "List the primes in [start, end] with their gaps and mod-3 residues",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runPrimeRange,
}

var primeTwinsCmd = &cobra.Command{
	Use:   "twins [start] [end]",
	Short: "List twin prime pairs (p, p+2) in [start, end]",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runPrimeTwins,
}

var primeGapsCmd = &cobra.Command{
	Use:   "gaps [start] [end]",
	Short: "Analyse prime gaps and the mod-3 alternation heuristic",
	Long: `Computes the gaps between consecutive primes, their residues mod 3, and
whether primes and gaps follow the alternating residue pattern: the expected
residue at even positions is the first element's residue r0 and at odd
positions it is the alternate of r0 (1<->2, 0 stays 0).

This is a heuristic for exploration, not a theorem.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPrimeGaps,
}

var primeSampleCmd = &cobra.Command{
	Use:   "sample [start] [end]",
	Short: "Randomly drop a share of the primes and compare distributions",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runPrimeSample,
}

func init() {
	primeSampleCmd.Flags().Float64Var(&sampleDrop, "drop", -1, "Percentage of primes to drop (default from config)")
	primeSampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "Random seed (default from config, then time)")
	primeSampleCmd.Flags().StringVar(&samplePhrase, "phrase", "", "Seed phrase hashed into the random seed")

	primeCmd.AddCommand(primeCheckCmd)
	primeCmd.AddCommand(primeRangeCmd)
	primeCmd.AddCommand(primeTwinsCmd)
	primeCmd.AddCommand(primeGapsCmd)
	primeCmd.AddCommand(primeSampleCmd)
}

// primeRange resolves positional range arguments against the configured
// defaults and the configured range limit.
func primeRange(args []string) (int, int, error) {
	v, err := intArgs(args, cfg.Primes.DefaultStart, cfg.Primes.DefaultEnd)
	if err != nil {
		return 0, 0, err
	}
	start, end := v[0], v[1]
	if end >= start && rangeWidth(int64(start), int64(end)) >= uint64(cfg.Primes.MaxRange) {
		return 0, 0, fmt.Errorf("range [%d, %d] exceeds primes.max_range (%d)", start, end, cfg.Primes.MaxRange)
	}
	return start, end, nil
}

func runPrimeCheck(cmd *cobra.Command, args []string) error {
	var records []primes.Record
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("not an integer: %q", a)
		}
		records = append(records, primes.Record{N: n, IsPrime: primes.IsPrime(n), Mod3: primes.Mod3(n)})
	}
	return emit(records, func() {
		for _, r := range records {
			if r.IsPrime {
				fmt.Printf("%s %s\n", styles.Prime.Render(strconv.Itoa(r.N)), styles.Success.Render("is prime"))
			} else {
				fmt.Printf("%s %s\n", styles.Bold.Render(strconv.Itoa(r.N)), styles.Muted.Render("is not prime"))
			}
		}
	})
}

func runPrimeRange(cmd *cobra.Command, args []string) error {
	start, end, err := primeRange(args)
	if err != nil {
		return err
	}
	timer := logging.StartTimer(logging.CategoryPrimes, "prime range")
	records := primes.Records(start, end)
	timer.Stop()

	return emit(records, func() {
		if len(records) == 0 {
			fmt.Println(styles.Muted.Render(fmt.Sprintf("No primes in [%d, %d]", start, end)))
			return
		}
		table := ui.NewSimpleTable(fmt.Sprintf("Primes in [%d, %d]: %d", start, end, len(records)),
			[]string{"n", "mod 3", "gap prev", "gap next"})
		for _, r := range records {
			table.AddRow(strconv.Itoa(r.N), strconv.Itoa(r.Mod3), gapCell(r.GapPrev), gapCell(r.GapNext))
		}
		fmt.Print(table.View(styles))
	})
}

func gapCell(g int) string {
	if g == 0 {
		return "-"
	}
	return strconv.Itoa(g)
}

func runPrimeTwins(cmd *cobra.Command, args []string) error {
	start, end, err := primeRange(args)
	if err != nil {
		return err
	}
	twins := primes.TwinPrimes(start, end)
	logging.Get(logging.CategoryPrimes).Debugw("twin primes", "start", start, "end", end, "pairs", len(twins))

	return emit(twins, func() {
		if len(twins) == 0 {
			fmt.Println(styles.Muted.Render(fmt.Sprintf("No twin primes in [%d, %d]", start, end)))
			return
		}
		table := ui.NewSimpleTable(fmt.Sprintf("Twin primes in [%d, %d]: %d", start, end, len(twins)),
			[]string{"p", "p+2"})
		for _, tp := range twins {
			table.AddRow(strconv.Itoa(tp.P), strconv.Itoa(tp.Q))
		}
		fmt.Print(table.View(styles))
	})
}

func runPrimeGaps(cmd *cobra.Command, args []string) error {
	start, end, err := primeRange(args)
	if err != nil {
		return err
	}
	ov, err := report.PrimeOverview(commandContext(cmd), start, end, cfg.Sampling.Buckets)
	if err != nil {
		return err
	}

	return emit(ov, func() {
		an := ov.Analysis
		if len(an.Primes) < 2 {
			fmt.Println(styles.Muted.Render(fmt.Sprintf("Fewer than two primes in [%d, %d]", start, end)))
			return
		}
		table := ui.NewSimpleTable(fmt.Sprintf("Gaps in [%d, %d]", start, end),
			[]string{"prime", "mod 3", "expected", "gap", "gap mod 3", "expected"})
		for i, pr := range an.PrimeResidues {
			row := []string{strconv.Itoa(pr.Value), strconv.Itoa(pr.Residue), matchCell(pr)}
			if i < len(an.GapResidues) {
				g := an.GapResidues[i]
				row = append(row, strconv.Itoa(g.Value), strconv.Itoa(g.Residue), matchCell(g))
			}
			table.AddRow(row...)
		}
		fmt.Print(table.View(styles))
		fmt.Printf("%s %s\n", styles.Bold.Render("primes alternate:"), verdict(an.PrimesAlternate))
		fmt.Printf("%s %s\n", styles.Bold.Render("gaps alternate:  "), verdict(an.GapsAlternate))
		fmt.Printf("%s %d (after %d)\n", styles.Bold.Render("largest gap:     "), ov.MaxGap, ov.MaxGapFrom)
		fmt.Printf("%s %d\n", styles.Bold.Render("twin pairs:      "), len(ov.Twins))
		fmt.Println()
		printHistogram("Distribution", ov.Histogram)
	})
}

func matchCell(e primes.ResidueEntry) string {
	s := strconv.Itoa(e.Expected)
	if !e.Matches {
		return styles.Warning.Render(s + " ✗")
	}
	return s
}

func verdict(b bool) string {
	if b {
		return styles.Success.Render("yes")
	}
	return styles.Warning.Render("no")
}

func printHistogram(title string, h primes.Histogram) {
	peak := 0
	for _, b := range h {
		peak = max(peak, b.Count)
	}
	fmt.Println(styles.Title.Render(title))
	for _, b := range h {
		label := fmt.Sprintf("%6d-%-6d %4d ", b.Lo, b.Hi, b.Count)
		fmt.Println(styles.Muted.Render(label) + styles.RenderBar(b.Count, peak, 40))
	}
}

type sampleOutput struct {
	Seed     int64                 `json:"seed" yaml:"seed"`
	Analysis primes.SubsetAnalysis `json:"analysis" yaml:"analysis"`
}

func runPrimeSample(cmd *cobra.Command, args []string) error {
	start, end, err := primeRange(args)
	if err != nil {
		return err
	}
	drop := cfg.Sampling.DropPercent
	if cmd.Flags().Changed("drop") {
		drop = sampleDrop
	}
	phrase := cfg.Sampling.SeedPhrase
	if samplePhrase != "" {
		phrase = samplePhrase
	}
	fallback := cfg.Sampling.Seed
	if cmd.Flags().Changed("seed") {
		fallback = sampleSeed
	}
	if fallback == 0 {
		fallback = rng.RandomSeed()
	}
	seed := rng.Seed(phrase, fallback)
	logging.Get(logging.CategoryPrimes).Debugw("sampling", "seed", seed, "drop", drop)

	an := primes.SampleSubset(rng.New(seed), start, end, drop, cfg.Sampling.Buckets)
	out := sampleOutput{Seed: seed, Analysis: an}

	return emit(out, func() {
		fmt.Printf("%s %d primes, dropped %d (%g%%), kept %d  %s\n",
			styles.Bold.Render("Sample:"), len(an.All), len(an.Dropped), an.DropPercent, len(an.Kept),
			styles.Muted.Render("seed "+strconv.FormatInt(seed, 10)))
		fmt.Println()
		printHistogram("Before", an.Before)
		fmt.Println()
		printHistogram("After", an.After)
	})
}
