package equation

import (
	"fmt"
	"math/big"
)

// State is the solver's position in its parse → normalize → resolve walk.
type State int

const (
	Parsed State = iota
	Normalized
	Resolved
)

func (s State) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Normalized:
		return "normalized"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Kind classifies the outcome of solving.
type Kind int

const (
	Unique Kind = iota
	NoSolution
	Infinite
)

func (k Kind) String() string {
	switch k {
	case Unique:
		return "unique"
	case NoSolution:
		return "no solution"
	case Infinite:
		return "infinite solutions"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Step is one displayed rewrite of the equation.
type Step struct {
	Equation    string `json:"equation" yaml:"equation"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// Step explanations for the two degenerate outcomes. Result is nil for both,
// so Kind or these texts are the only way to tell them apart.
const (
	TextNoSolution = "No solution"
	TextInfinite   = "Infinite solutions"
)

// Solution is the ordered list of steps and the value of x, if unique.
type Solution struct {
	Input   string   `json:"input" yaml:"input"`
	Steps   []Step   `json:"steps" yaml:"steps"`
	Result  *float64 `json:"result" yaml:"result"`
	Kind    Kind     `json:"kind" yaml:"kind"`
	Display string   `json:"display" yaml:"display"`
}

// Solve parses s and solves it.
func Solve(s string) (Solution, error) {
	eq, err := Parse(s)
	if err != nil {
		return Solution{}, err
	}
	sol := SolveEquation(eq)
	sol.Input = s
	return sol, nil
}

// SolveEquation solves an already-parsed equation.
func SolveEquation(eq Equation) Solution {
	sv := &solver{eq: eq, state: Parsed}
	sv.record("Original equation")
	sv.normalize()
	return sv.resolve()
}

type solver struct {
	eq    Equation
	state State
	steps []Step
}

// advance moves the solver one state forward. The walk is strictly linear,
// so any other transition is a programming error.
func (sv *solver) advance(to State) {
	if to != sv.state+1 {
		panic(fmt.Sprintf("equation: invalid transition %s -> %s", sv.state, to))
	}
	sv.state = to
}

func (sv *solver) record(explanation string) {
	sv.steps = append(sv.steps, Step{Equation: sv.eq.String(), Explanation: explanation})
}

// normalize moves every x term to the left and every constant to the right.
// Terms are replaced rather than updated in place, since eq shares its
// rationals with the caller.
func (sv *solver) normalize() {
	if c := orZero(sv.eq.Right.Coef); c.Sign() != 0 {
		sv.eq.Left.Coef = new(big.Rat).Sub(orZero(sv.eq.Left.Coef), c)
		sv.eq.Right.Coef = new(big.Rat)
		if c.Sign() > 0 {
			sv.record(fmt.Sprintf("Subtract %s from both sides", formatTerm(c)))
		} else {
			sv.record(fmt.Sprintf("Add %s to both sides", formatTerm(new(big.Rat).Neg(c))))
		}
	}
	if b := orZero(sv.eq.Left.Const); b.Sign() != 0 {
		sv.eq.Right.Const = new(big.Rat).Sub(orZero(sv.eq.Right.Const), b)
		sv.eq.Left.Const = new(big.Rat)
		if b.Sign() > 0 {
			sv.record(fmt.Sprintf("Subtract %s from both sides", formatRat(b)))
		} else {
			sv.record(fmt.Sprintf("Add %s to both sides", formatRat(new(big.Rat).Neg(b))))
		}
	}
	sv.advance(Normalized)
}

func (sv *solver) resolve() Solution {
	defer sv.advance(Resolved)

	a, d := orZero(sv.eq.Left.Coef), orZero(sv.eq.Right.Const)
	sol := Solution{}
	switch {
	case a.Sign() != 0:
		v, _ := new(big.Rat).Quo(d, a).Float64()
		display := "x = " + formatQuotient(d, a)
		switch {
		case a.Cmp(big.NewRat(1, 1)) != 0:
			sv.steps = append(sv.steps, Step{Equation: display, Explanation: fmt.Sprintf("Divide both sides by %s", formatRat(a))})
		case sv.steps[len(sv.steps)-1].Equation != display:
			sv.steps = append(sv.steps, Step{Equation: display, Explanation: "x is isolated"})
		}
		sol.Kind = Unique
		sol.Result = &v
		sol.Display = display
	case d.Sign() == 0:
		sv.record(TextInfinite)
		sol.Kind = Infinite
		sol.Display = TextInfinite
	default:
		sv.record(TextNoSolution)
		sol.Kind = NoSolution
		sol.Display = TextNoSolution
	}
	sol.Steps = sv.steps
	return sol
}
