package scicalc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// near asserts that got is within a relative 1e-9 of want.
func near(t *testing.T, want, got float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want, got, 1e-9*math.Max(1, math.Abs(want)), msgAndArgs...)
}

func TestEvaluate(t *testing.T) {
	var mem Memory
	mem.Set(VarA, 3)
	mem.Set(VarM, 0.5)
	cases := []struct {
		name string
		src  string
		mode AngleMode
		want float64
	}{
		// arithmetic
		{"precedence", "2+3*4", Degrees, 14},
		{"left sub", "10-4-3", Degrees, 3},
		{"left div", "100/10/5", Degrees, 2},
		{"brackets", "2*(3+4)", Degrees, 14},
		{"glyphs", "6×2÷4", Degrees, 3},
		{"zero over", "0/5", Degrees, 0},
		{"decimal", "1.5+.25", Degrees, 1.75},
		{"exponent literal", "2e3/1E-1", Degrees, 20000},
		// power and signs
		{"pow", "2^3", Degrees, 8},
		{"pow glyph", "2∧3", Degrees, 8},
		{"right assoc", "2^3^2", Degrees, 512},
		{"sign binds to operand", "-2^2", Degrees, 4},
		{"negative exponent", "2^-1", Degrees, 0.5},
		{"plus sign", "+4", Degrees, 4},
		{"minus brackets", "-(2^2)", Degrees, -4},
		{"sub neg", "3--2", Degrees, 5},
		// postfix
		{"factorial", "5!", Degrees, 120},
		{"zero factorial", "0!", Degrees, 1},
		{"double factorial", "3!!", Degrees, 720},
		{"percent", "50%", Degrees, 0.5},
		{"chained postfix", "5!%", Degrees, 1.2},
		{"factorial max", "69!", Degrees, 1.7112245242814131e98},
		{"percent of sum", "200*15%", Degrees, 30},
		// constants and registers
		{"pi", "π", Degrees, math.Pi},
		{"e", "e", Degrees, math.E},
		{"ans", "Ans+1", Degrees, 42},
		{"var", "A^2", Degrees, 9},
		{"m alias", "m*4", Degrees, 2},
		{"unset var", "B+1", Degrees, 1},
		// functions in degrees
		{"sin", "sin(30)", Degrees, 0.5},
		{"sin sum", "sin(30)+2^3", Degrees, 8.5},
		{"cos", "cos(60)", Degrees, 0.5},
		{"tan", "tan(45)", Degrees, 1},
		{"asin", "asin(1)", Degrees, 90},
		{"acos", "acos(0.5)", Degrees, 60},
		{"atan", "atan(1)", Degrees, 45},
		{"no brackets", "sin 30", Degrees, 0.5},
		{"unclosed", "sin(30", Degrees, 0.5},
		{"unclosed nested", "2*(1+sqrt(16", Degrees, 10},
		{"nested", "sin(asin(0.5))", Degrees, 0.5},
		// other modes
		{"sin radians", "sin(π/2)", Radians, 1},
		{"asin radians", "asin(1)", Radians, math.Pi / 2},
		{"sin gradians", "sin(100)", Gradians, 1},
		{"acos gradians", "acos(0)", Gradians, 100},
		{"degree mark radians", "sin(90°)", Radians, 1},
		{"degree mark gradians", "90°", Gradians, 100},
		{"degree mark degrees", "45°", Degrees, 45},
		// non-trigonometric
		{"sinh", "sinh(0)", Degrees, 0},
		{"cosh", "cosh(0)", Degrees, 1},
		{"tanh", "tanh(0)", Degrees, 0},
		{"asinh", "asinh(0)", Degrees, 0},
		{"acosh", "acosh(1)", Degrees, 0},
		{"atanh", "atanh(0)", Degrees, 0},
		{"log", "log(1000)", Degrees, 3},
		{"log2", "log₂(8)", Degrees, 3},
		{"ln", "ln(e)", Degrees, 1},
		{"sqrt", "sqrt(16)", Degrees, 4},
		{"cbrt", "cbrt(-27)", Degrees, -3},
		{"abs", "abs(-5)", Degrees, 5},
		{"exp", "exp(0)", Degrees, 1},
		// two arguments
		{"nCr", "nCr(5,2)", Degrees, 10},
		{"nCr unbracketed", "nCr 5,2", Degrees, 10},
		{"nCr truncates", "nCr(5.9,2.2)", Degrees, 10},
		{"nCr large", "nCr(100,50)", Degrees, 1.0089134454556419e29},
		{"nPr", "nPr(5,2)", Degrees, 20},
		{"nPr zero", "nPr(5,0)", Degrees, 1},
		{"Rec", "Rec(2,60)", Degrees, 1},
		{"Rec ignores mode", "Rec(2,60)", Radians, 1},
		{"Pol", "Pol(3,4)", Degrees, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Evaluate(c.src, c.mode, 41, mem)
			require.NoError(t, err)
			near(t, c.want, r.Value)
		})
	}
}

func TestEvaluateSecond(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		want   float64
		second float64
		has    bool
	}{
		{"Rec", "Rec(2,60)", 1, math.Sqrt(3), true},
		{"Pol", "Pol(3,4)", 5, 53.13010235415598, true},
		{"Pol quadrant", "Pol(-1,0)", 1, 180, true},
		{"last wins", "Rec(2,60)+Pol(3,4)", 6, 53.13010235415598, true},
		{"nCr", "nCr(5,2)", 10, 0, false},
		{"none", "1+1", 2, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Evaluate(c.src, Radians, 0, Memory{})
			require.NoError(t, err)
			near(t, c.want, r.Value)
			near(t, c.second, r.Second)
			assert.Equal(t, c.has, r.HasSecond)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind ErrorKind
		fn   string
	}{
		{"div zero", "5/0", DivideByZero, "/"},
		{"div zero expr", "1/(2-2)", DivideByZero, "/"},
		{"asin", "asin(2)", MathError, "asin"},
		{"acos", "acos(-1.5)", MathError, "acos"},
		{"tan", "tan(90)", MathError, "tan"},
		{"tan negative", "tan(-270)", MathError, "tan"},
		{"log", "log(0)", MathError, "log"},
		{"log2", "log₂(-1)", MathError, "log₂"},
		{"ln", "ln(-e)", MathError, "ln"},
		{"sqrt", "sqrt(-1)", MathError, "sqrt"},
		{"acosh", "acosh(0.5)", MathError, "acosh"},
		{"atanh", "atanh(1)", MathError, "atanh"},
		{"factorial bound", "70!", MathError, "!"},
		{"factorial fraction", "2.5!", MathError, "!"},
		{"factorial negative", "-3!", MathError, "!"},
		{"nCr", "nCr(2,5)", MathError, "nCr"},
		{"nPr", "nPr(2,5)", MathError, "nPr"},
		{"nan", "0^0*(-8)^0.5", MathError, ""},
		{"overflow pow", "10^400", Overflow, ""},
		{"overflow mul", "1e308*10", Overflow, ""},
		{"overflow literal", "1e400", Overflow, ""},
		{"overflow exp", "exp(1000)", Overflow, ""},
		{"overflow nCr", "nCr(2000,1000)", Overflow, ""},
		{"overflow nPr", "nPr(1000,200)", Overflow, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Evaluate(c.src, Degrees, 0, Memory{})
			var ee *EvalError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, c.kind, ee.Kind)
			assert.Equal(t, c.fn, ee.Func)
		})
	}
}

func TestEvaluateTrailingInput(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"extra close", "1)", 1},
		{"extra close after call", "sin(30))", 0.5},
		{"juxtaposition", "2π", 2},
		{"postfix on exponent", "2^3!", 8},
		{"bracket after number", "2(3)", 2},
		{"trailing comma", "4,5", 4},
		{"stops before error", "3)/0", 3},
		{"stops before unknown function", "1 sin", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Evaluate(c.src, Degrees, 0, Memory{})
			require.NoError(t, err)
			near(t, c.want, r.Value)
		})
	}
}

func TestEvaluateSyntaxErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		col  int
		text string
		msg  string
	}{
		{"empty", "", 1, "", "unexpected end of expression"},
		{"dangling op", "1+", 3, "", "unexpected end of expression"},
		{"bare func", "sin", 4, "", "unexpected end of expression"},
		{"missing second", "nCr(5", 6, "", "unexpected end of expression"},
		{"double sign", "--2", 2, "-", "unexpected token"},
		{"leading comma", ",1", 1, ",", "unexpected token"},
		{"leading postfix", "!", 1, "!", "unexpected token"},
		{"empty brackets", "()", 2, ")", "unexpected token"},
		{"tokenizer", "1+$", 3, "$", "unknown character"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Evaluate(c.src, Degrees, 0, Memory{})
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, c.col, serr.Col)
			assert.Equal(t, c.text, serr.Text)
			assert.Equal(t, c.msg, serr.Msg)
		})
	}
}

func TestParseExpression(t *testing.T) {
	toks := []Token{
		{Kind: TokenFunc, Text: "sqrt", Col: 1},
		{Kind: TokenNum, Value: 2, Text: "2", Col: 5},
		{Kind: TokenPow, Text: "^", Col: 6},
		{Kind: TokenNum, Value: 4, Text: "4", Col: 7},
	}
	v, err := ParseExpression(toks, Radians)
	require.NoError(t, err)
	near(t, 4, v)

	_, err = ParseExpression(nil, Degrees)
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Pos())
}

func TestUnknownFunction(t *testing.T) {
	toks := []Token{
		{Kind: TokenFunc, Text: "frob", Col: 1},
		{Kind: TokenNum, Value: 1, Text: "1", Col: 5},
	}
	_, err := ParseExpression(toks, Degrees)
	assert.True(t, errors.Is(err, ErrUnknownFunction))
	_, _, err = call2("frob", 1, 2)
	assert.True(t, errors.Is(err, ErrUnknownFunction))
}
