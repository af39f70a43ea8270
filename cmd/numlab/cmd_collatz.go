package main

import (
	"fmt"
	"strconv"
	"strings"

	"numlab/cmd/numlab/ui"
	"numlab/internal/collatz"
	"numlab/internal/logging"
	"numlab/internal/report"

	"github.com/spf13/cobra"
)

var (
	collatzMaxSteps int
	collatzBinary   bool
	surveyWorkers   int
	surveyTop       int
)

var collatzCmd = &cobra.Command{
	Use:   "collatz [seed...]",
	Short: "Generate Collatz sequences with prime and binary annotations",
	Long: `Iterates n -> n/2 (even) or 3n+1 (odd) from each seed until the sequence
reaches 1 or the step budget (--max-steps, default collatz.max_steps) runs out.
A run that does not converge within the budget is reported as exhausted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollatz,
}

var collatzSurveyCmd = &cobra.Command{
	Use:   "survey [from] [to]",
	Short: "Run every seed in [from, to] concurrently and summarise",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runCollatzSurvey,
}

func init() {
	collatzCmd.PersistentFlags().IntVar(&collatzMaxSteps, "max-steps", 0, "Step budget (default from config)")
	collatzCmd.Flags().BoolVarP(&collatzBinary, "binary", "b", false, "Show the binary digest of every value")
	collatzSurveyCmd.Flags().IntVar(&surveyWorkers, "workers", 0, "Concurrent workers (default from config)")
	collatzSurveyCmd.Flags().IntVar(&surveyTop, "top", 10, "Number of longest runs to list")

	collatzCmd.AddCommand(collatzSurveyCmd)
}

func maxSteps() int {
	if collatzMaxSteps > 0 {
		return collatzMaxSteps
	}
	return cfg.Collatz.MaxSteps
}

func runCollatz(cmd *cobra.Command, args []string) error {
	budget := maxSteps()
	seqs := make([]collatz.Sequence, 0, len(args))
	for _, a := range args {
		seed, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("not an integer: %q", a)
		}
		seq := collatz.Generate(seed, budget)
		if seq.Outcome == collatz.Invalid {
			return fmt.Errorf("seed must be >= 1, got %d", seed)
		}
		logging.Get(logging.CategoryCollatz).Debugw("sequence", "seed", seed, "steps", seq.Len(), "outcome", seq.Outcome.String())
		seqs = append(seqs, seq)
	}

	return emit(seqs, func() {
		for i, seq := range seqs {
			if i > 0 {
				fmt.Println()
			}
			printSequence(seq)
		}
	})
}

func printSequence(seq collatz.Sequence) {
	fmt.Printf("%s %s\n", styles.Title.Render(fmt.Sprintf("Seed %d", seq.Seed)), outcomeBadge(seq))
	fmt.Printf("%s %d  %s %d  %s %d/%d  %s %d\n",
		styles.Muted.Render("steps"), seq.Len(),
		styles.Muted.Render("peak"), seq.Peak(),
		styles.Muted.Render("odd/even"), seq.OddCount(), seq.EvenCount(),
		styles.Muted.Render("primes"), seq.PrimeCount())

	if !collatzBinary {
		parts := make([]string, len(seq.Steps))
		for i, st := range seq.Steps {
			v := strconv.FormatUint(st.Value, 10)
			if st.IsPrime {
				v = styles.Prime.Render(v)
			}
			parts[i] = v
		}
		fmt.Println(strings.Join(parts, styles.Muted.Render(" → ")))
		return
	}

	table := ui.NewSimpleTable("", []string{"#", "value", "prime", "binary", "trailing 0s", "stripped"})
	for i, st := range seq.Steps {
		table.AddRow(strconv.Itoa(i), strconv.FormatUint(st.Value, 10), yesNo(st.IsPrime),
			st.Binary.Bits, strconv.Itoa(st.Binary.TrailingZeros), st.Binary.Stripped)
	}
	fmt.Print(table.View(styles))
}

func outcomeBadge(seq collatz.Sequence) string {
	switch seq.Outcome {
	case collatz.Converged:
		return styles.Success.Render("converged")
	case collatz.Exhausted:
		return styles.Warning.Render(fmt.Sprintf("exhausted after %d steps", seq.MaxSteps))
	default:
		return styles.Error.Render(seq.Outcome.String())
	}
}

func runCollatzSurvey(cmd *cobra.Command, args []string) error {
	v, err := intArgs(args, 1, 100)
	if err != nil {
		return err
	}
	from, to := int64(v[0]), int64(v[1])
	if to >= from && rangeWidth(from, to) >= uint64(cfg.Report.MaxSeeds) {
		return fmt.Errorf("range [%d, %d] exceeds report.max_seeds (%d)", from, to, cfg.Report.MaxSeeds)
	}
	workers := cfg.Report.Workers
	if surveyWorkers > 0 {
		workers = surveyWorkers
	}
	s, err := report.CollatzSurvey(commandContext(cmd), from, to, maxSteps(), workers)
	if err != nil {
		return err
	}

	return emit(s, func() {
		fmt.Println(styles.Title.Render(fmt.Sprintf("Collatz survey [%d, %d]", s.From, s.To)))
		fmt.Printf("%s seed %d, %d steps\n", styles.Bold.Render("longest:"), s.Longest.Seed, s.Longest.Steps)
		fmt.Printf("%s seed %d, peak %d\n", styles.Bold.Render("highest:"), s.Highest.Seed, s.Highest.Peak)
		if len(s.Exhausted) > 0 {
			fmt.Printf("%s %v\n", styles.Warning.Render("exhausted:"), s.Exhausted)
		}
		fmt.Println()

		table := ui.NewSimpleTable("Longest runs", []string{"seed", "steps", "peak"})
		for _, r := range s.TopBySteps(surveyTop) {
			table.AddRow(strconv.FormatInt(r.Seed, 10), strconv.Itoa(r.Steps), strconv.FormatUint(r.Peak, 10))
		}
		fmt.Print(table.View(styles))
	})
}
