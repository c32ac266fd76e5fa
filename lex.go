package scicalc

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind is the kind of a Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a number. Literals, Ans, and memory variables all scan to
	// numbers.
	TokenNum
	// TokenConst is a named constant, π or e.
	TokenConst
	TokenAdd
	TokenSub
	TokenMul
	TokenDiv
	TokenPow
	TokenOpen
	TokenClose
	TokenComma
	// TokenFactorial is the postfix !.
	TokenFactorial
	// TokenPercent is the postfix %.
	TokenPercent
	// TokenDegree is the postfix °, marking its operand as degrees.
	TokenDegree
	// TokenFunc is a function name from the fixed vocabulary.
	TokenFunc
)

var tokenKindNames = [...]string{
	tokenNone:      "None",
	TokenNum:       "Num",
	TokenConst:     "Const",
	TokenAdd:       "Add",
	TokenSub:       "Sub",
	TokenMul:       "Mul",
	TokenDiv:       "Div",
	TokenPow:       "Pow",
	TokenOpen:      "Open",
	TokenClose:     "Close",
	TokenComma:     "Comma",
	TokenFactorial: "Factorial",
	TokenPercent:   "Percent",
	TokenDegree:    "Degree",
	TokenFunc:      "Func",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Token is a lexical token. Values of memory variables, Ans, and constants are
// resolved when the token is scanned.
type Token struct {
	Kind TokenKind
	// Value is the number for TokenNum and TokenConst.
	Value float64
	// Text is the source text of the token.
	Text string
	// Col is the 1-based rune column at which the token starts.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// Funcs is the function vocabulary. Names sharing a prefix are ordered
// longest first, and the tokenizer takes the first name that matches, so
// "asinh" is never scanned as "asin" followed by "h".
var Funcs = []string{
	"asinh", "acosh", "atanh", "asin", "acos", "atan",
	"sinh", "cosh", "tanh", "sin", "cos", "tan",
	"log₂", "log", "ln", "sqrt", "cbrt", "abs", "exp",
	"nCr", "nPr", "Rec", "Pol",
}

// ansName is the placeholder for the last answer.
const ansName = "Ans"

// operators maps the operator and punctuation runes to their token kinds.
var operators = map[rune]TokenKind{
	'+': TokenAdd,
	'-': TokenSub,
	'*': TokenMul,
	'×': TokenMul,
	'/': TokenDiv,
	'÷': TokenDiv,
	'^': TokenPow,
	'∧': TokenPow,
	'(': TokenOpen,
	')': TokenClose,
	',': TokenComma,
	'!': TokenFactorial,
	'%': TokenPercent,
	'°': TokenDegree,
}

type lexer struct {
	src string
	// off is the byte offset of the next rune; col is its rune column.
	off, col int
	ans      float64
	mem      Memory
}

// Tokenize converts src into a flat token sequence. ans is substituted for
// Ans and mem supplies the values of memory variables.
func Tokenize(src string, ans float64, mem Memory) ([]Token, error) {
	l := lexer{src: src, col: 1, ans: ans, mem: mem}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenNone {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// peek returns the rune at byte offset off, or utf8.RuneError and 0 at the
// end of the input.
func (l *lexer) peek(off int) (rune, int) {
	if off >= len(l.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.src[off:])
}

// advance consumes n bytes holding runes runes and returns the consumed text.
func (l *lexer) advance(n, runes int) string {
	s := l.src[l.off : l.off+n]
	l.off += n
	l.col += runes
	return s
}

// standalone reports whether the text ending at byte offset off is not
// immediately followed by a letter or number.
func (l *lexer) standalone(off int) bool {
	r, sz := l.peek(off)
	return sz == 0 || !(unicode.IsLetter(r) || unicode.IsNumber(r))
}

// next scans the next token. At the end of the input, the result has kind
// tokenNone and a nil error.
func (l *lexer) next() (Token, error) {
	for {
		r, sz := l.peek(l.off)
		if sz == 0 {
			return Token{}, nil
		}
		if r == ' ' {
			l.advance(sz, 1)
			continue
		}
		tok := Token{Col: l.col}
		rest := l.src[l.off:]
		switch {
		case '0' <= r && r <= '9', r == '.':
			return l.scanNum()
		case strings.HasPrefix(rest, ansName):
			tok.Kind, tok.Value = TokenNum, l.ans
			tok.Text = l.advance(len(ansName), len(ansName))
			return tok, nil
		case r == 'π':
			tok.Kind, tok.Value = TokenConst, math.Pi
			tok.Text = l.advance(sz, 1)
			return tok, nil
		case r == 'e' && l.standalone(l.off+sz):
			tok.Kind, tok.Value = TokenConst, math.E
			tok.Text = l.advance(sz, 1)
			return tok, nil
		}
		if v, ok := varFor(r); ok && l.standalone(l.off+sz) {
			tok.Kind, tok.Value = TokenNum, l.mem.Get(v)
			tok.Text = l.advance(sz, 1)
			return tok, nil
		}
		for _, name := range Funcs {
			if strings.HasPrefix(rest, name) {
				tok.Kind = TokenFunc
				tok.Text = l.advance(len(name), utf8.RuneCountInString(name))
				return tok, nil
			}
		}
		if k, ok := operators[r]; ok {
			tok.Kind = k
			tok.Text = l.advance(sz, 1)
			return tok, nil
		}
		return tok, &SyntaxError{Col: l.col, Text: string(r), Msg: "unknown character"}
	}
}

// scanNum scans digits and dots, then an optional exponent marker, sign, and
// digits. Whether the result is a valid number is left to the float parser.
func (l *lexer) scanNum() (Token, error) {
	tok := Token{Kind: TokenNum, Col: l.col}
	end := l.off
	digits := func() {
		for end < len(l.src) && '0' <= l.src[end] && l.src[end] <= '9' {
			end++
		}
	}
	for end < len(l.src) && ('0' <= l.src[end] && l.src[end] <= '9' || l.src[end] == '.') {
		end++
	}
	if end < len(l.src) && (l.src[end] == 'e' || l.src[end] == 'E') {
		end++
		if end < len(l.src) && (l.src[end] == '+' || l.src[end] == '-') {
			end++
		}
		digits()
	}
	// Every byte scanned is ASCII, so bytes and runes agree.
	tok.Text = l.advance(end-l.off, end-l.off)
	v, err := strconv.ParseFloat(tok.Text, 64)
	// Out of range literals are rounded to ±Inf or 0 and left for the
	// evaluator to classify.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return tok, &SyntaxError{Col: tok.Col, Text: tok.Text, Msg: "bad number"}
	}
	tok.Value = v
	return tok, nil
}
