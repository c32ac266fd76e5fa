package scicalc

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatKind selects how a DisplayFormat renders numbers.
type FormatKind int8

const (
	// FormatNormal shows plain decimals, switching to scientific notation
	// for very small or very large magnitudes.
	FormatNormal FormatKind = iota
	// FormatScientific always shows mantissa×10^exponent.
	FormatScientific
	// FormatEngineering shows mantissa×10^exponent with the exponent a
	// multiple of three.
	FormatEngineering
	// FormatFixed shows a fixed number of fractional digits.
	FormatFixed
)

// MaxFixed is the largest precision of a fixed display format.
const MaxFixed = 9

// sciDigits is the number of mantissa digits in scientific notation.
const sciDigits = 9

// DisplayFormat is the way an engine renders results. It never affects
// computation.
type DisplayFormat struct {
	Kind FormatKind
	// Precision is the number of fractional digits for FormatFixed. It is
	// ignored by other kinds.
	Precision int
}

var (
	Normal      = DisplayFormat{Kind: FormatNormal}
	Scientific  = DisplayFormat{Kind: FormatScientific}
	Engineering = DisplayFormat{Kind: FormatEngineering}
)

// Fixed returns a fixed display format with n fractional digits. n is
// clamped to [0, MaxFixed].
func Fixed(n int) DisplayFormat {
	n = max(0, min(n, MaxFixed))
	return DisplayFormat{Kind: FormatFixed, Precision: n}
}

// normalized returns f with a fixed precision clamped to [0, MaxFixed].
func (f DisplayFormat) normalized() DisplayFormat {
	if f.Kind == FormatFixed {
		return Fixed(f.Precision)
	}
	return f
}

// String returns the name of the format as accepted by ParseDisplayFormat.
func (f DisplayFormat) String() string {
	switch f.Kind {
	case FormatNormal:
		return "norm"
	case FormatScientific:
		return "sci"
	case FormatEngineering:
		return "eng"
	case FormatFixed:
		return "fix" + strconv.Itoa(f.Precision)
	default:
		return "DisplayFormat(" + strconv.Itoa(int(f.Kind)) + ")"
	}
}

// Format renders v as calculator text. A fixed precision outside [0, MaxFixed]
// is clamped as by Fixed. Zero is "0" in every format. NaN and
// infinities, which an engine never produces as results, render as
// "Math ERROR", "∞", and "-∞".
func Format(v float64, f DisplayFormat) string {
	switch {
	case math.IsNaN(v):
		return "Math ERROR"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case v == 0:
		return "0"
	}
	f = f.normalized()
	switch f.Kind {
	case FormatScientific:
		return formatScientific(v, sciDigits)
	case FormatEngineering:
		return formatEngineering(v)
	case FormatFixed:
		// Round the shortest decimal representation rather than the binary
		// value, so that 2.675 at two places shows 2.68.
		return decimal.NewFromFloat(v).StringFixed(int32(f.Precision))
	default:
		return formatNormal(v)
	}
}

func formatNormal(v float64) string {
	a := math.Abs(v)
	if a < 1e-9 || a >= 1e10 {
		return formatScientific(v, sciDigits)
	}
	if v == math.Trunc(v) && a < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', 10, 64)
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

func formatScientific(v float64, digits int) string {
	m, exp := decompose(v, 1, digits)
	m = strings.TrimSuffix(strings.TrimRight(m, "0"), ".")
	return m + "×10^" + strconv.Itoa(exp)
}

func formatEngineering(v float64) string {
	m, exp := decompose(v, 3, 3)
	return m + "×10^" + strconv.Itoa(exp)
}

// decompose writes v as m×10^exp with exp a multiple of step and m rounded
// to digits fractional places, 1 ≤ |m| < 10^step.
func decompose(v float64, step, digits int) (string, int) {
	exp := floorDiv(int(math.Floor(math.Log10(math.Abs(v)))), step) * step
	limit := math.Pow10(step)
	// Log10 may land one off near exact powers of ten.
	switch m := math.Abs(scale(v, exp)); {
	case m < 1:
		exp -= step
	case m >= limit:
		exp += step
	}
	s := strconv.FormatFloat(scale(v, exp), 'f', digits, 64)
	if r, _ := strconv.ParseFloat(s, 64); math.Abs(r) >= limit {
		exp += step
		s = strconv.FormatFloat(scale(v, exp), 'f', digits, 64)
	}
	return s, exp
}

// scale computes v/10^exp without the divisor underflowing for subnormal v.
func scale(v float64, exp int) float64 {
	if exp < -300 {
		return v * 1e300 * math.Pow10(-exp-300)
	}
	return v / math.Pow10(exp)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
