package scicalc

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zephyrtronium/bigfloat"
)

// oraclePrec is the precision of reference values, well beyond float64.
const oraclePrec = 128

func bigf(x float64) *big.Float {
	return new(big.Float).SetPrec(oraclePrec).SetFloat64(x)
}

func f64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

func TestTranscendentalOracle(t *testing.T) {
	// Ten decimal orders of magnitude on either side of 1.
	args := []float64{1e-10, 1e-5, 0.001, 0.3, 0.5, 1, 2, math.E, 10, 123.456, 1e5, 1e10}
	for _, x := range args {
		ln := f64(bigfloat.Log(bigf(0), bigf(x)))
		got, err := call("ln", Degrees, x)
		require.NoError(t, err)
		near(t, ln, got, "ln(%g)", x)

		ten := bigfloat.Log(bigf(0), bigf(10))
		log := f64(new(big.Float).SetPrec(oraclePrec).Quo(bigfloat.Log(bigf(0), bigf(x)), ten))
		got, err = call("log", Degrees, x)
		require.NoError(t, err)
		near(t, log, got, "log(%g)", x)

		two := bigfloat.Log(bigf(0), bigf(2))
		log2 := f64(new(big.Float).SetPrec(oraclePrec).Quo(bigfloat.Log(bigf(0), bigf(x)), two))
		got, err = call("log₂", Degrees, x)
		require.NoError(t, err)
		near(t, log2, got, "log₂(%g)", x)
	}
	for _, x := range []float64{-20, -1, -0.5, 0, 0.5, 1, 2, 10, 100, 700} {
		want := f64(bigfloat.Exp(bigf(0), bigf(x)))
		got, err := call("exp", Degrees, x)
		require.NoError(t, err)
		assert.InEpsilon(t, want, got, 1e-12, "exp(%g)", x)
	}
}

func TestPowOracle(t *testing.T) {
	cases := []struct{ x, y float64 }{
		{2, 0.5},
		{2, 10},
		{10, -3},
		{1.5, 2.5},
		{7, 1.0 / 3},
		{0.1, 20},
		{123.456, 7.89},
	}
	for _, c := range cases {
		want := f64(bigfloat.Pow(bigf(0), bigf(c.x), bigf(c.y)))
		p := parser{toks: []Token{
			{Kind: TokenNum, Value: c.x, Col: 1},
			{Kind: TokenPow, Text: "^", Col: 2},
			{Kind: TokenNum, Value: c.y, Col: 3},
		}, mode: Degrees}
		got, err := p.expr()
		require.NoError(t, err)
		assert.InEpsilon(t, want, got, 1e-12, "%g^%g", c.x, c.y)
	}
}

func TestFactorial(t *testing.T) {
	// n! computed by repeated float multiplication loses exactness past 22!,
	// so compare against exact big integers.
	var want big.Int
	want.SetInt64(1)
	for n := int64(0); n <= maxFactorial; n++ {
		if n > 0 {
			want.Mul(&want, big.NewInt(n))
		}
		got, err := factorial(float64(n))
		require.NoError(t, err)
		assert.Equal(t, bigToFloat(&want), got, "%d!", n)
	}
	for _, x := range []float64{-1, 0.5, maxFactorial + 1, math.Inf(1), math.NaN()} {
		_, err := factorial(x)
		assert.ErrorIs(t, err, ErrMath, "%g!", x)
	}
}

func TestCombinatorics(t *testing.T) {
	cases := []struct {
		n, r     uint64
		ncr, npr float64
	}{
		{0, 0, 1, 1},
		{5, 0, 1, 1},
		{5, 5, 1, 120},
		{5, 2, 10, 20},
		{10, 3, 120, 720},
		{52, 5, 2598960, 311875200},
		{60, 30, 118264581564861424, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.ncr, combinations(c.n, c.r), "nCr(%d,%d)", c.n, c.r)
		if c.npr != 0 {
			assert.Equal(t, c.npr, permutations(c.n, c.r), "nPr(%d,%d)", c.n, c.r)
		}
	}
	assert.True(t, math.IsInf(combinations(1e6, 5e5), 1))
	assert.True(t, math.IsInf(permutations(200, 171), 1))
	assert.Equal(t, float64(1e6), combinations(1e6, 999999))
}

func TestCount(t *testing.T) {
	cases := []struct {
		x    float64
		want uint64
	}{
		{0, 0},
		{2.9, 2},
		{-3, 0},
		{math.NaN(), 0},
		{math.Inf(1), math.MaxUint64},
		{1e30, math.MaxUint64},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, count(c.x), "count(%g)", c.x)
	}
}

func TestRecPol(t *testing.T) {
	x, y, err := call2("Rec", 2, 30)
	require.NoError(t, err)
	near(t, math.Sqrt(3), x)
	near(t, 1, y)

	r, theta, err := call2("Pol", x, y)
	require.NoError(t, err)
	near(t, 2, r)
	near(t, 30, theta)
}
