package main

import (
	"fmt"

	"numlab/cmd/numlab/ui"
	"numlab/internal/regression"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [battery.yaml]",
	Short: "Run a YAML battery of expected results",
	Long: `Evaluates every task of a battery file and compares it with the expected
value. Exits non-zero when any task fails.

Example battery:
  version: 1
  tasks:
    - id: collatz-27
      type: collatz
      input: "27"
      expect: converged 111 peak 9232
    - id: solve
      type: solve
      input: 2x + 3 = 7
      expect: x = 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := regression.DefaultBatteryPath
	if len(args) == 1 {
		path = args[0]
	}
	b, err := regression.LoadBattery(path)
	if err != nil {
		return err
	}
	results, err := regression.RunBattery(commandContext(cmd), b)
	if err != nil {
		return err
	}

	if err := emit(results, func() {
		table := ui.NewSimpleTable(path, []string{"task", "status", "expected", "actual"})
		for _, r := range results {
			status := styles.Success.Render("pass")
			actual := r.Actual
			if !r.Success {
				status = styles.Error.Render("FAIL")
			}
			if r.Error != "" {
				actual = r.Error
			}
			table.AddRow(r.TaskID, status, r.Expect, actual)
		}
		fmt.Print(table.View(styles))
	}); err != nil {
		return err
	}

	if !regression.Passed(results) {
		return fmt.Errorf("battery %s failed", path)
	}
	return nil
}
