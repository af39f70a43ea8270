package equation

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// displayPrecision is the number of decimals kept for non-integer output.
const displayPrecision = 6

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// FormatFraction renders num/den. Integer inputs are reduced by their GCD
// ("7/2", "-3", "2"); anything else is rendered as a trimmed decimal.
func FormatFraction(num, den float64) string {
	if den == 0 {
		return "undefined"
	}
	n, nok := asInt(num)
	d, dok := asInt(den)
	if !nok || !dok {
		return formatNumber(num / den)
	}
	return formatIntFraction(n, d)
}

func formatIntFraction(n, d int64) string {
	if d < 0 {
		n, d = -n, -d
	}
	if g := GCD(n, d); g > 1 {
		n, d = n/g, d/g
	}
	if d == 1 {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%d/%d", n, d)
}

// asInt reports whether v is an integer small enough to round-trip through
// int64 without loss.
func asInt(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return 0, false
	}
	return int64(v), true
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0" // also folds -0
	}
	if n, ok := asInt(v); ok {
		return strconv.FormatInt(n, 10)
	}
	p := math.Pow(10, displayPrecision)
	r := math.Round(v*p) / p
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// ratInt is asInt for exact rationals.
func ratInt(r *big.Rat) (int64, bool) {
	if !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}
	v := r.Num().Int64()
	if v > 1<<53 || v < -(1<<53) {
		return 0, false
	}
	return v, true
}

// formatQuotient renders num/den the way FormatFraction does, without the
// float64 round trip: integer operands give a reduced fraction, anything
// else a trimmed decimal.
func formatQuotient(num, den *big.Rat) string {
	if den.Sign() == 0 {
		return "undefined"
	}
	n, nok := ratInt(num)
	d, dok := ratInt(den)
	if nok && dok {
		return formatIntFraction(n, d)
	}
	q := new(big.Rat).Quo(num, den)
	if num.IsInt() && den.IsInt() {
		return q.RatString()
	}
	return formatRat(q)
}

func formatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	s := strings.TrimRight(r.FloatString(displayPrecision), "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// formatTerm renders coef·x with unit coefficients elided.
func formatTerm(coef *big.Rat) string {
	if coef.IsInt() && coef.Num().IsInt64() {
		switch coef.Num().Int64() {
		case 1:
			return "x"
		case -1:
			return "-x"
		}
	}
	return formatRat(coef) + "x"
}

func formatSide(s Side) string {
	coef, c := orZero(s.Coef), orZero(s.Const)
	if coef.Sign() == 0 {
		return formatRat(c)
	}
	out := formatTerm(coef)
	switch c.Sign() {
	case 1:
		out += " + " + formatRat(c)
	case -1:
		out += " - " + formatRat(new(big.Rat).Neg(c))
	}
	return out
}
