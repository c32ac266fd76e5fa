package scicalc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseAngleMode parses an angle mode name. It accepts the full names, their
// common abbreviations, and the display labels D, R, and G, ignoring case.
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "deg", "degree", "degrees":
		return Degrees, nil
	case "r", "rad", "radian", "radians":
		return Radians, nil
	case "g", "gra", "grad", "gradian", "gradians":
		return Gradians, nil
	default:
		return 0, fmt.Errorf("unknown angle mode %q", s)
	}
}

// ParseDisplayFormat parses a display format name: norm, sci, eng, or fix
// followed by a precision from 0 to MaxFixed, e.g. fix4. Case is ignored.
func ParseDisplayFormat(s string) (DisplayFormat, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "norm", "normal":
		return Normal, nil
	case "sci", "scientific":
		return Scientific, nil
	case "eng", "engineering":
		return Engineering, nil
	}
	digits, ok := strings.CutPrefix(t, "fix")
	if !ok {
		return DisplayFormat{}, fmt.Errorf("unknown display format %q", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil || n < 0 || n > MaxFixed {
		return DisplayFormat{}, fmt.Errorf("fixed display format %q needs a precision from 0 to %d", s, MaxFixed)
	}
	return Fixed(n), nil
}

// ParseVar parses the name of a memory variable. Names are single letters
// matched as the tokenizer matches them, so "m" is M but "a" is invalid.
func ParseVar(s string) (Var, error) {
	s = strings.TrimSpace(s)
	r, sz := utf8.DecodeRuneInString(s)
	if sz == 0 || sz != len(s) {
		return 0, fmt.Errorf("invalid memory variable %q", s)
	}
	v, ok := varFor(r)
	if !ok {
		return 0, fmt.Errorf("invalid memory variable %q", s)
	}
	return v, nil
}
