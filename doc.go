// Package calc implements a small calculator language.
//
// A program is a sequence of newline-separated statements: bare
// expressions, assignments, function definitions, and if/else
// statements. All values are float64. Evaluating a program yields the
// value of its last non-blank statement, folding assignments and
// definitions into a Context that can be kept across evaluations, so
// a REPL session accumulates state the way you'd expect:
//
//	a = 2
//	fn double(x) { 2 * x }
//	double(a) + 1
//
// The pipeline is Tokenize, Parse, and Eval against a Context; see
// EvalString for the all-in-one form.
package calc
