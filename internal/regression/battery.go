// Package regression runs YAML-defined batteries of expected results against
// the numeric packages, so a build can be checked against known answers.
package regression

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"numlab/internal/collatz"
	"numlab/internal/equation"
	"numlab/internal/logging"
	"numlab/internal/primes"

	"gopkg.in/yaml.v3"
)

// DefaultBatteryPath is the battery read by `numlab check` without arguments.
const DefaultBatteryPath = "battery.yaml"

// Battery is a collection of regression tasks.
type Battery struct {
	Version  int    `yaml:"version"`
	FailFast bool   `yaml:"fail_fast"`
	Tasks    []Task `yaml:"tasks"`
}

// Task is a single check. Supported types: prime, twins, gaps, collatz,
// solve. Expect is compared with the rendered actual value after trimming.
type Task struct {
	ID       string `yaml:"id"`
	Type     string `yaml:"type"`
	Input    string `yaml:"input"`
	Expect   string `yaml:"expect"`
	MaxSteps int    `yaml:"max_steps,omitempty"` // collatz only
}

// Result captures execution outcome for a task.
type Result struct {
	TaskID     string `json:"task_id" yaml:"task_id"`
	Success    bool   `json:"success" yaml:"success"`
	Actual     string `json:"actual" yaml:"actual"`
	Expect     string `json:"expect" yaml:"expect"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs int64  `json:"duration_ms" yaml:"duration_ms"`
}

// LoadBattery reads a YAML battery file from disk.
func LoadBattery(path string) (*Battery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Battery
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse battery YAML: %w", err)
	}
	return &b, nil
}

// RunBattery executes all tasks in order. With FailFast set, it stops after
// the first failing task. Cancelling ctx stops before the next task.
func RunBattery(ctx context.Context, b *Battery) ([]Result, error) {
	if b == nil || len(b.Tasks) == 0 {
		return nil, nil
	}
	log := logging.Get(logging.CategoryReport)

	results := make([]Result, 0, len(b.Tasks))
	for _, task := range b.Tasks {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		start := time.Now()
		res := Result{TaskID: task.ID, Expect: strings.TrimSpace(task.Expect)}

		actual, err := Evaluate(task)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Actual = actual
			res.Success = actual == res.Expect
		}
		res.DurationMs = time.Since(start).Milliseconds()
		results = append(results, res)
		log.Debugw("battery task", "id", task.ID, "success", res.Success)

		if !res.Success && b.FailFast {
			break
		}
	}
	return results, nil
}

// Evaluate computes the rendered actual value for task.
//
//	prime   "97"      -> "prime" | "composite"
//	twins   "3 20"    -> "3,5 5,7 11,13 17,19"
//	gaps    "3 50"    -> "max 6 after 23"
//	collatz "27"      -> "converged 111 peak 9232"
//	solve   "2x+3=7"  -> "x = 2"
func Evaluate(task Task) (string, error) {
	in := strings.TrimSpace(task.Input)
	switch strings.ToLower(strings.TrimSpace(task.Type)) {
	case "prime":
		n, err := strconv.Atoi(in)
		if err != nil {
			return "", fmt.Errorf("prime: not an integer: %q", in)
		}
		if primes.IsPrime(n) {
			return "prime", nil
		}
		return "composite", nil

	case "twins":
		start, end, err := bounds(in)
		if err != nil {
			return "", fmt.Errorf("twins: %w", err)
		}
		pairs := primes.TwinPrimes(start, end)
		parts := make([]string, len(pairs))
		for i, p := range pairs {
			parts[i] = fmt.Sprintf("%d,%d", p.P, p.Q)
		}
		return strings.Join(parts, " "), nil

	case "gaps":
		start, end, err := bounds(in)
		if err != nil {
			return "", fmt.Errorf("gaps: %w", err)
		}
		gap, after, ok := primes.MaxGap(primes.Generate(start, end))
		if !ok {
			return "none", nil
		}
		return fmt.Sprintf("max %d after %d", gap, after), nil

	case "collatz":
		seed, err := strconv.ParseInt(in, 10, 64)
		if err != nil {
			return "", fmt.Errorf("collatz: not an integer: %q", in)
		}
		seq := collatz.Generate(seed, task.MaxSteps)
		return fmt.Sprintf("%s %d peak %d", seq.Outcome, seq.Len(), seq.Peak()), nil

	case "solve":
		sol, err := equation.Solve(in)
		if err != nil {
			return "", err
		}
		return sol.Display, nil
	}
	return "", fmt.Errorf("unsupported task type: %s", task.Type)
}

func bounds(in string) (int, int, error) {
	f := strings.Fields(in)
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("expected \"start end\", got %q", in)
	}
	start, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, fmt.Errorf("not an integer: %q", f[0])
	}
	end, err := strconv.Atoi(f[1])
	if err != nil {
		return 0, 0, fmt.Errorf("not an integer: %q", f[1])
	}
	return start, end, nil
}

// Passed reports whether every result succeeded.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}
