package scicalc

// Var is a memory variable. The set of variables is fixed.
type Var int8

const (
	VarA Var = iota
	VarB
	VarC
	VarD
	VarE
	VarF
	VarX
	VarY
	VarM

	numVars
)

// varNames maps each Var to its letter.
const varNames = "ABCDEFXYM"

// Vars lists every memory variable in display order.
var Vars = [numVars]Var{VarA, VarB, VarC, VarD, VarE, VarF, VarX, VarY, VarM}

func (v Var) String() string {
	if !v.valid() {
		return "?"
	}
	return varNames[v : v+1]
}

// valid reports whether v is one of the memory variables.
func (v Var) valid() bool {
	return 0 <= v && v < numVars
}

// varFor returns the variable named by r. Of the lowercase letters only m is
// accepted, as an alias for M.
func varFor(r rune) (Var, bool) {
	if r == 'm' {
		return VarM, true
	}
	for i, c := range varNames {
		if c == r {
			return Var(i), true
		}
	}
	return 0, false
}

// Memory holds the value of each memory variable. The zero Memory has every
// variable set to 0. Memory is a value type, so passing it copies it.
type Memory [numVars]float64

// Get returns the value of v, or 0 if v is not a memory variable.
func (m Memory) Get(v Var) float64 {
	if !v.valid() {
		return 0
	}
	return m[v]
}

// Set sets the value of v. It does nothing if v is not a memory variable.
func (m *Memory) Set(v Var, x float64) {
	if !v.valid() {
		return
	}
	m[v] = x
}
