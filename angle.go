package scicalc

import (
	"math"
	"strconv"
)

// AngleMode is the unit in which trigonometric functions take and return
// angles. It does not affect any other computation.
type AngleMode int

const (
	Degrees AngleMode = iota
	Radians
	Gradians
)

// ToRadians converts v from the mode's unit to radians.
func (m AngleMode) ToRadians(v float64) float64 {
	switch m {
	case Degrees:
		return v * math.Pi / 180
	case Radians:
		return v
	case Gradians:
		return v * math.Pi / 200
	default:
		panic("scicalc: invalid angle mode " + m.String())
	}
}

// FromRadians converts v from radians to the mode's unit.
func (m AngleMode) FromRadians(v float64) float64 {
	switch m {
	case Degrees:
		return v * 180 / math.Pi
	case Radians:
		return v
	case Gradians:
		return v * 200 / math.Pi
	default:
		panic("scicalc: invalid angle mode " + m.String())
	}
}

// Next returns the mode following m in the cycle Degrees, Radians, Gradians.
func (m AngleMode) Next() AngleMode {
	switch m {
	case Degrees:
		return Radians
	case Radians:
		return Gradians
	default:
		return Degrees
	}
}

// Label is the one-letter indicator a calculator display shows for the mode.
func (m AngleMode) Label() string {
	switch m {
	case Degrees:
		return "D"
	case Radians:
		return "R"
	case Gradians:
		return "G"
	default:
		return "?"
	}
}

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "degrees"
	case Radians:
		return "radians"
	case Gradians:
		return "gradians"
	default:
		return "AngleMode(" + strconv.Itoa(int(m)) + ")"
	}
}
