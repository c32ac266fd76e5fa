package scicalc

import (
	"errors"
	"strconv"
)

// SyntaxError indicates input that could not be tokenized or that does not
// form an expression. It implements InputError.
type SyntaxError struct {
	// Col is the 1-based rune column of the offending text, or one past the
	// end of the input for an unexpected end.
	Col int
	// Text is the offending text, e.g. the malformed number or the unknown
	// character. It is empty at the end of the input.
	Text string
	// Msg describes the problem: "bad number", "unknown character",
	// "unexpected token", or "unexpected end of expression".
	Msg string
}

func (err *SyntaxError) Error() string {
	if err.Text == "" {
		return errpos(err.Col, err.Msg)
	}
	return errpos(err.Col, err.Msg+" "+strconv.Quote(err.Text))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// ErrorKind classifies an evaluation failure.
type ErrorKind int8

const (
	// MathError is a domain violation such as asin(2), ln(0), or 70!.
	MathError ErrorKind = iota
	// DivideByZero is a division by exactly zero.
	DivideByZero
	// Overflow is a computation which produced an infinite result.
	Overflow
	// UnknownFunction is a function name with no implementation.
	UnknownFunction
)

func (k ErrorKind) String() string {
	switch k {
	case MathError:
		return "math"
	case DivideByZero:
		return "divide by zero"
	case Overflow:
		return "overflow"
	case UnknownFunction:
		return "unknown function"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Sentinel errors that an *EvalError unwraps to, one per ErrorKind.
var (
	ErrMath            = errors.New("math error")
	ErrDivideByZero    = errors.New("division by zero")
	ErrOverflow        = errors.New("overflow")
	ErrUnknownFunction = errors.New("unknown function")
)

// EvalError is an error from evaluating a well-formed expression.
type EvalError struct {
	Kind ErrorKind
	// Func is the function or operator that failed, if any.
	Func string
	// X is the offending argument. It is meaningful only when Func is set.
	X float64
}

func (err *EvalError) Error() string {
	if err.Func == "" {
		return err.Unwrap().Error()
	}
	if err.Kind == UnknownFunction {
		return "unknown function " + strconv.Quote(err.Func)
	}
	return err.Unwrap().Error() + ": " + err.Func + "(" + strconv.FormatFloat(err.X, 'g', -1, 64) + ")"
}

// Unwrap returns the sentinel error for the error's kind.
func (err *EvalError) Unwrap() error {
	switch err.Kind {
	case DivideByZero:
		return ErrDivideByZero
	case Overflow:
		return ErrOverflow
	case UnknownFunction:
		return ErrUnknownFunction
	default:
		return ErrMath
	}
}

// domain returns a MathError for fn applied to x.
func domain(fn string, x float64) error {
	return &EvalError{Kind: MathError, Func: fn, X: x}
}

// DisplayMessage returns the short text a calculator display shows in place
// of a result for err.
func DisplayMessage(err error) string {
	var ee *EvalError
	switch {
	case err == nil:
		return ""
	case errors.As(err, new(*SyntaxError)):
		return "Syntax ERROR"
	case !errors.As(err, &ee):
		return err.Error()
	case ee.Kind == DivideByZero:
		return "Math ERROR (div/0)"
	case ee.Kind == Overflow:
		return "Math ERROR (overflow)"
	case ee.Func == "tan":
		return "Math ERROR (tan undef)"
	default:
		return "Math ERROR"
	}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// malformed input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)
