package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"numlab/cmd/numlab/ui"
	"numlab/internal/diff"
	"numlab/internal/equation"
	"numlab/internal/logging"
	"numlab/internal/watch"

	"github.com/spf13/cobra"
)

var (
	solveFile  string
	solveWatch bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [equation]",
	Short: "Solve a linear equation in x step by step",
	Long: `Parses an equation such as "2x + 3 = 7" and solves it, printing every
transformation. Equations with no solution or infinitely many solutions are
reported as such.

With --file, every line of the file is solved (blank lines and lines starting
with '#' are skipped). Add --watch to re-solve whenever the file changes.`,
	Example: `  numlab solve "2x + 3 = 7"
  numlab solve --file equations.txt --watch`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveFile, "file", "", "Solve every equation in a file")
	solveCmd.Flags().BoolVarP(&solveWatch, "watch", "w", false, "Re-solve the file when it changes (requires --file)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	switch {
	case solveWatch && solveFile == "":
		return errors.New("--watch requires --file")
	case solveFile != "" && len(args) > 0:
		return errors.New("pass either an equation or --file, not both")
	case solveWatch:
		return watchFile(cmd)
	case solveFile != "":
		results, err := watch.SolveFile(solveFile)
		if err != nil {
			return err
		}
		return emit(results, func() { printResults(results) })
	case len(args) == 0:
		return errors.New("an equation is required")
	}

	sol, err := equation.Solve(joinArgs(args))
	if err != nil {
		return err
	}
	logging.Get(logging.CategoryEquation).Debugw("solved", "input", sol.Input, "kind", sol.Kind.String())
	return emit(sol, func() { printSolution(sol) })
}

func printSolution(sol equation.Solution) {
	table := ui.NewSimpleTable("", []string{"#", "equation", "step"})
	for i, st := range sol.Steps {
		table.AddRow(strconv.Itoa(i+1), st.Equation, st.Explanation)
	}
	fmt.Print(table.View(styles))
	if sol.Kind == equation.Unique {
		fmt.Println(styles.Success.Render(sol.Display))
	} else {
		fmt.Println(styles.Warning.Render(sol.Display))
	}
}

func printResults(results []watch.Result) {
	if len(results) == 0 {
		fmt.Println(styles.Muted.Render("No equations found"))
		return
	}
	table := ui.NewSimpleTable("", []string{"line", "equation", "result"})
	for _, r := range results {
		var res string
		switch {
		case r.Err != nil:
			res = styles.Error.Render(r.Err.Error())
		case r.Solution.Kind == equation.Unique:
			res = styles.Success.Render(r.Solution.Display)
		default:
			res = styles.Warning.Render(r.Solution.Display)
		}
		table.AddRow(strconv.Itoa(r.Line), r.Input, res)
	}
	fmt.Print(table.View(styles))
}

func printUpdate(u watch.Update) {
	printResults(u.Results)
	if len(u.Changes) == 0 {
		fmt.Println(styles.Muted.Render("no changes"))
		return
	}
	for _, l := range u.Changes {
		switch l.Type {
		case diff.LineAdded:
			fmt.Println(styles.Success.Render(l.String()))
		case diff.LineRemoved:
			fmt.Println(styles.Error.Render(l.String()))
		}
	}
}

func watchFile(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watch.NewEquationWatcher(solveFile, func(u watch.Update) {
		fmt.Println(styles.RenderDivider(40))
		fmt.Println(styles.Muted.Render(u.Path))
		if err := emit(u, func() { printUpdate(u) }); err != nil {
			logging.Get(logging.CategoryWatch).Errorw("render failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	fmt.Println(styles.Info.Render("Watching " + solveFile + " (Ctrl+C to stop)"))

	select {
	case <-ctx.Done():
	case <-w.Done():
	}
	w.Stop()
	st := w.Stats()
	logging.Get(logging.CategoryWatch).Infow("watch stopped", "events", st.Events, "solves", st.Solves, "errors", st.Errors)
	return nil
}
