// Package scicalc implements the expression engine of a scientific calculator.
//
// Input is what you would key into a pocket calculator: "sin(30)+2^3",
// "nCr(5,2)", "Ans×2", "5!%". Expressions are tokenized, then evaluated by a
// recursive-descent parser in float64 arithmetic. Trigonometric functions
// follow the engine's angle mode, and A through F, X, Y, and M name memory
// variables. Closing brackets may be left off, as they often are while typing.
//
// Precedence follows the calculator rather than mathematical convention in
// one place: a sign applies to the number it precedes, so "-2^2" is 4.
//
// An Engine keeps the state of a session between evaluations: the last
// answer, memory, an M+/M- accumulator, and the last 50 results. Format
// renders results the way a calculator display shows them.
package scicalc
