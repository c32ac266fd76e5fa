package scicalc

import (
	"math"
	"unicode/utf8"
)

// Grammar, loosest binding first. Each level evaluates as it parses; there is
// no syntax tree.
//
// Expr    = Term { ('+' | '-') Term }
// Term    = Power { ('*' | '/') Power }
// Power   = Postfix [ '^' Exp ]
// Exp     = Unary [ '^' Exp ]
// Postfix = Unary { '!' | '%' | '°' }
// Unary   = [ '+' | '-' ] Primary
// Primary = num | const | '(' Expr [')'] | func ['('] Expr [','  Expr] [')']
//
// Unary signs wrap only a primary, so -2^2 is (-2)^2. Closing brackets and
// commas are consumed if present and otherwise skipped, so that incomplete
// input such as "sin(30" still evaluates. Parsing stops at the first token
// that cannot continue the expression, and the rest of the input is ignored:
// "sin(30))" is 0.5 and "2^3!" is 8.

// Result is the outcome of a successful evaluation.
type Result struct {
	// Value is the finite value of the expression.
	Value float64
	// Second is the companion output of the last Rec or Pol the expression
	// evaluated: the y component for Rec and the angle in degrees for Pol.
	// HasSecond reports whether there was one.
	Second    float64
	HasSecond bool
}

type parser struct {
	toks []Token
	pos  int
	mode AngleMode
	// end is the column one past the last token, for errors at the end.
	end int
	res Result
}

// ParseExpression evaluates the longest expression at the start of a token
// sequence in the given angle mode. Tokens after it are ignored. NaN results
// fail with MathError and infinite results with Overflow.
func ParseExpression(toks []Token, mode AngleMode) (float64, error) {
	r, err := parseResult(toks, mode)
	return r.Value, err
}

// Evaluate tokenizes and evaluates src. It is a shortcut for Tokenize
// followed by ParseExpression which also reports the companion output of
// Rec and Pol.
func Evaluate(src string, mode AngleMode, ans float64, mem Memory) (Result, error) {
	toks, err := Tokenize(src, ans, mem)
	if err != nil {
		return Result{}, err
	}
	return parseResult(toks, mode)
}

func parseResult(toks []Token, mode AngleMode) (Result, error) {
	p := parser{toks: toks, mode: mode, end: 1}
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		p.end = last.Col + utf8.RuneCountInString(last.Text)
	}
	v, err := p.expr()
	if err != nil {
		return Result{}, err
	}
	switch {
	case math.IsNaN(v):
		return Result{}, &EvalError{Kind: MathError}
	case math.IsInf(v, 0):
		return Result{}, &EvalError{Kind: Overflow}
	}
	p.res.Value = v
	return p.res, nil
}

// peek returns the next token without consuming it.
func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

// next consumes and returns the next token.
func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// skip consumes the next token if it has kind k.
func (p *parser) skip(k TokenKind) bool {
	if tok, ok := p.peek(); ok && tok.Kind == k {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expr() (float64, error) {
	l, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.skip(TokenAdd):
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			l += r
		case p.skip(TokenSub):
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			l -= r
		default:
			return l, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	l, err := p.power()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.skip(TokenMul):
			r, err := p.power()
			if err != nil {
				return 0, err
			}
			l *= r
		case p.skip(TokenDiv):
			r, err := p.power()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, &EvalError{Kind: DivideByZero, Func: "/", X: l}
			}
			l /= r
		default:
			return l, nil
		}
	}
}

func (p *parser) power() (float64, error) {
	base, err := p.postfix()
	if err != nil {
		return 0, err
	}
	if !p.skip(TokenPow) {
		return base, nil
	}
	exp, err := p.exponent()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

// exponent parses the right side of ^, which associates to the right.
func (p *parser) exponent() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	if !p.skip(TokenPow) {
		return v, nil
	}
	r, err := p.exponent()
	if err != nil {
		return 0, err
	}
	return math.Pow(v, r), nil
}

func (p *parser) postfix() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.skip(TokenFactorial):
			v, err = factorial(v)
			if err != nil {
				return 0, err
			}
		case p.skip(TokenPercent):
			v /= 100
		case p.skip(TokenDegree):
			v = p.mode.FromRadians(Degrees.ToRadians(v))
		default:
			return v, nil
		}
	}
}

func (p *parser) unary() (float64, error) {
	switch {
	case p.skip(TokenSub):
		v, err := p.primary()
		return -v, err
	case p.skip(TokenAdd):
		return p.primary()
	default:
		return p.primary()
	}
}

func (p *parser) primary() (float64, error) {
	tok, ok := p.next()
	if !ok {
		return 0, &SyntaxError{Col: p.end, Msg: "unexpected end of expression"}
	}
	switch tok.Kind {
	case TokenNum, TokenConst:
		return tok.Value, nil
	case TokenOpen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		p.skip(TokenClose)
		return v, nil
	case TokenFunc:
		return p.call(tok.Text)
	default:
		return 0, &SyntaxError{Col: tok.Col, Text: tok.Text, Msg: "unexpected token"}
	}
}

// call parses the arguments of the function name and applies it.
func (p *parser) call(name string) (float64, error) {
	p.skip(TokenOpen)
	a, err := p.expr()
	if err != nil {
		return 0, err
	}
	if _, ok := dyadics[name]; !ok {
		p.skip(TokenClose)
		return call(name, p.mode, a)
	}
	p.skip(TokenComma)
	b, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skip(TokenClose)
	v, second, err := call2(name, a, b)
	if err != nil {
		return 0, err
	}
	if name == "Rec" || name == "Pol" {
		p.res.Second, p.res.HasSecond = second, true
	}
	return v, nil
}
