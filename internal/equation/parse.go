// Package equation parses and solves single-variable linear equations of
// the form ax + b = cx + d, recording every rewrite as a displayable step.
package equation

import (
	"math/big"
	"strings"
	"unicode"
)

// Side is the collected form coef·x + const of one side of an equation.
// Both terms are exact rationals so decimal inputs cancel without rounding
// noise. A nil term reads as zero.
type Side struct {
	Coef  *big.Rat `json:"coef" yaml:"coef"`
	Const *big.Rat `json:"const" yaml:"const"`
}

func newSide() Side {
	return Side{Coef: new(big.Rat), Const: new(big.Rat)}
}

// orZero lets the zero Side be used without allocating its terms.
func orZero(r *big.Rat) *big.Rat {
	if r == nil {
		return new(big.Rat)
	}
	return r
}

// Equation is a parsed linear equation.
type Equation struct {
	Left  Side `json:"left" yaml:"left"`
	Right Side `json:"right" yaml:"right"`
}

func (e Equation) String() string {
	return formatSide(e.Left) + " = " + formatSide(e.Right)
}

// Parse reads an equation such as "2x + 3 = 7" or "0.5x - 1 = -x".
// Whitespace is ignored and the variable may be written x or X. Terms like
// x^2, x2 or xy are rejected as non-linear.
func Parse(s string) (Equation, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		if r == 'X' {
			return 'x'
		}
		return r
	}, s)

	if compact == "" {
		return Equation{}, parseErrorf(compact, -1, "empty equation")
	}
	switch n := strings.Count(compact, "="); {
	case n == 0:
		return Equation{}, parseErrorf(compact, -1, "missing '='")
	case n > 1:
		return Equation{}, parseErrorf(compact, strings.LastIndex(compact, "="), "more than one '='")
	}

	eq := strings.Index(compact, "=")
	left, err := parseSide(compact, 0, compact[:eq], "left")
	if err != nil {
		return Equation{}, err
	}
	right, err := parseSide(compact, eq+1, compact[eq+1:], "right")
	if err != nil {
		return Equation{}, err
	}
	return Equation{Left: left, Right: right}, nil
}

// parseSide accumulates the signed terms of text. base is the offset of text
// within input, used for error positions.
func parseSide(input string, base int, text, name string) (Side, error) {
	side := newSide()
	if text == "" {
		return side, parseErrorf(input, base, "empty %s side", name)
	}

	i := 0
	for i < len(text) {
		negative := false
		switch text[i] {
		case '+':
			i++
		case '-':
			negative = true
			i++
		default:
			if i > 0 {
				return side, parseErrorf(input, base+i, "expected '+' or '-', got %q", text[i])
			}
		}
		if i >= len(text) {
			return side, parseErrorf(input, base+i, "dangling sign")
		}

		start := i
		for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
			i++
		}
		numText := text[start:i]
		value := big.NewRat(1, 1)
		if numText != "" {
			if _, ok := value.SetString(numText); !ok || strings.Trim(numText, ".") == "" {
				return side, parseErrorf(input, base+start, "malformed number %q", numText)
			}
		}
		if negative {
			value.Neg(value)
		}

		if i < len(text) && text[i] == '*' && numText != "" {
			i++
			if i >= len(text) || text[i] != 'x' {
				return side, parseErrorf(input, base+i, "expected x after '*'")
			}
		}

		if i < len(text) && text[i] == 'x' {
			i++
			if i < len(text) && text[i] != '+' && text[i] != '-' {
				return side, parseErrorf(input, base+i, "non-linear term: unexpected %q after x", text[i])
			}
			side.Coef.Add(side.Coef, value)
			continue
		}

		if numText == "" {
			if i < len(text) {
				return side, parseErrorf(input, base+i, "unexpected character %q", text[i])
			}
			return side, parseErrorf(input, base+i, "expected a term")
		}
		side.Const.Add(side.Const, value)
	}
	return side, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
