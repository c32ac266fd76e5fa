package scicalc

import (
	"math"
	"math/big"
)

// monadic is a function of one argument. Trigonometric functions interpret
// angles in mode.
type monadic func(mode AngleMode, x float64) (float64, error)

// dyadic is a function of two arguments. The second result is a companion
// output which callers may ignore.
type dyadic func(a, b float64) (v, second float64, err error)

var monadics = map[string]monadic{
	"sin": direct(math.Sin),
	"cos": direct(math.Cos),
	"tan": func(mode AngleMode, x float64) (float64, error) {
		r := mode.ToRadians(x)
		if math.Abs(math.Cos(r)) < 1e-12 {
			return 0, domain("tan", x)
		}
		return math.Tan(r), nil
	},
	"asin": inverse("asin", math.Asin),
	"acos": inverse("acos", math.Acos),
	"atan": func(mode AngleMode, x float64) (float64, error) {
		return mode.FromRadians(math.Atan(x)), nil
	},

	"sinh":  total(math.Sinh),
	"cosh":  total(math.Cosh),
	"tanh":  total(math.Tanh),
	"asinh": total(math.Asinh),
	"acosh": partial("acosh", math.Acosh, func(x float64) bool { return x >= 1 }),
	"atanh": partial("atanh", math.Atanh, func(x float64) bool { return math.Abs(x) < 1 }),

	"log":  partial("log", math.Log10, positive),
	"log₂": partial("log₂", math.Log2, positive),
	"ln":   partial("ln", math.Log, positive),
	"sqrt": partial("sqrt", math.Sqrt, func(x float64) bool { return x >= 0 }),
	"cbrt": total(math.Cbrt),
	"abs":  total(math.Abs),
	"exp":  total(math.Exp),
}

var dyadics = map[string]dyadic{
	"nCr": func(a, b float64) (float64, float64, error) {
		n, r := count(a), count(b)
		if r > n {
			return 0, 0, domain("nCr", b)
		}
		return combinations(n, r), 0, nil
	},
	"nPr": func(a, b float64) (float64, float64, error) {
		n, r := count(a), count(b)
		if r > n {
			return 0, 0, domain("nPr", b)
		}
		return permutations(n, r), 0, nil
	},
	// Rec and Pol take angles in degrees regardless of the angle mode.
	"Rec": func(a, b float64) (float64, float64, error) {
		t := Degrees.ToRadians(b)
		return a * math.Cos(t), a * math.Sin(t), nil
	},
	"Pol": func(a, b float64) (float64, float64, error) {
		return math.Hypot(a, b), Degrees.FromRadians(math.Atan2(b, a)), nil
	},
}

// direct wraps a trigonometric function taking radians.
func direct(f func(float64) float64) monadic {
	return func(mode AngleMode, x float64) (float64, error) {
		return f(mode.ToRadians(x)), nil
	}
}

// inverse wraps an inverse trigonometric function defined on [-1, 1].
func inverse(name string, f func(float64) float64) monadic {
	return func(mode AngleMode, x float64) (float64, error) {
		if math.Abs(x) > 1 {
			return 0, domain(name, x)
		}
		return mode.FromRadians(f(x)), nil
	}
}

// total wraps a function defined for all finite inputs.
func total(f func(float64) float64) monadic {
	return func(_ AngleMode, x float64) (float64, error) {
		return f(x), nil
	}
}

// partial wraps a function defined where ok holds.
func partial(name string, f func(float64) float64, ok func(float64) bool) monadic {
	return func(_ AngleMode, x float64) (float64, error) {
		if !ok(x) {
			return 0, domain(name, x)
		}
		return f(x), nil
	}
}

func positive(x float64) bool {
	return x > 0
}

// call applies the one-argument function name to x.
func call(name string, mode AngleMode, x float64) (float64, error) {
	f := monadics[name]
	if f == nil {
		return 0, &EvalError{Kind: UnknownFunction, Func: name}
	}
	return f(mode, x)
}

// call2 applies the two-argument function name to a and b.
func call2(name string, a, b float64) (float64, float64, error) {
	f := dyadics[name]
	if f == nil {
		return 0, 0, &EvalError{Kind: UnknownFunction, Func: name}
	}
	return f(a, b)
}

// maxFactorial is the largest argument to !.
const maxFactorial = 69

// factorial computes x! exactly for integral x in [0, maxFactorial].
func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) || x > maxFactorial {
		return 0, domain("!", x)
	}
	var r big.Int
	r.MulRange(1, int64(x))
	return bigToFloat(&r), nil
}

// count truncates x to a non-negative integer, saturating at the bounds of
// uint64. NaN counts as 0.
func count(x float64) uint64 {
	switch {
	case !(x > 0):
		return 0
	case x >= 1<<64:
		return math.MaxUint64
	default:
		return uint64(x)
	}
}

// combinations computes n choose r, for r ≤ n, using the multiplicative
// formula over the smaller of r and n-r.
func combinations(n, r uint64) float64 {
	r = min(r, n-r)
	if r > 1024 {
		// The result is at least 2^r.
		return math.Inf(1)
	}
	var acc, t big.Int
	acc.SetInt64(1)
	for i := uint64(0); i < r; i++ {
		acc.Mul(&acc, t.SetUint64(n-i))
		acc.Quo(&acc, t.SetUint64(i+1))
	}
	return bigToFloat(&acc)
}

// permutations computes the falling factorial n(n-1)...(n-r+1), for r ≤ n.
func permutations(n, r uint64) float64 {
	if r > 170 {
		// The result is at least r!, which exceeds MaxFloat64.
		return math.Inf(1)
	}
	var acc, t big.Int
	acc.SetInt64(1)
	for i := uint64(0); i < r; i++ {
		acc.Mul(&acc, t.SetUint64(n-i))
	}
	return bigToFloat(&acc)
}

// bigToFloat converts i to the nearest float64, or +Inf if it is too large.
func bigToFloat(i *big.Int) float64 {
	f, _ := new(big.Float).SetInt(i).Float64()
	return f
}
