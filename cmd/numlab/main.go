package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"numlab/cmd/numlab/ui"
	"numlab/internal/config"
	"numlab/internal/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	// Global flags
	cfgPath   string
	verbose   bool
	outFormat string
	noColor   bool

	cfg    *config.Config
	styles ui.Styles
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "numlab",
	Short: "numlab - number-theory and geometry workbench",
	Long: `numlab explores primes, Collatz sequences, linear equations and
2D shape transforms from the command line.

Every command prints a styled table by default; pass --format yaml or
--format json for machine-readable output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if verbose {
			c.Logging.DebugMode = true
			c.Logging.Level = "debug"
		}
		if cmd.Flags().Changed("format") {
			c.Output.Format = outFormat
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", cfgPath, err)
		}
		if err := logging.Initialize(c.Logging); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = c
		if noColor || os.Getenv("NO_COLOR") != "" {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		styles = ui.NewStyles(ui.ThemeFor(c.Output.Theme))
		logging.Get(logging.CategoryBoot).Debugw("config loaded", "path", cfgPath, "format", c.Output.Format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "text", "Output format (text, yaml, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colors (also NO_COLOR)")

	rootCmd.AddCommand(primeCmd)
	rootCmd.AddCommand(collatzCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(shapeCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("error:"), err)
		os.Exit(1)
	}
}

// emit prints v as YAML or JSON when a structured format is selected and
// otherwise calls text.
func emit(v any, text func()) error {
	switch cfg.Output.Format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		fmt.Print(string(data))
	default:
		text()
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command was invoked outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// rangeWidth returns end-start for end >= start. The unsigned difference
// cannot wrap the way int arithmetic does when the bounds straddle zero.
func rangeWidth(start, end int64) uint64 {
	return uint64(end) - uint64(start)
}

// intArgs parses positional integers, filling missing trailing values from
// defaults.
func intArgs(args []string, defaults ...int) ([]int, error) {
	if len(args) > len(defaults) {
		return nil, fmt.Errorf("expected at most %d arguments, got %d", len(defaults), len(args))
	}
	out := append([]int(nil), defaults...)
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", a)
		}
		out[i] = n
	}
	return out, nil
}

// pair parses "a,b" into two floats.
func pair(s string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected two comma-separated numbers, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("not a number: %q", a)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("not a number: %q", b)
	}
	return x, y, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
