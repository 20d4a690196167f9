package calc

import (
	"fmt"
	"math"
	"strconv"
)

// Func is a callable entry in a Context's function table. Arity is
// fixed: the evaluator checks the argument count before calling.
type Func interface {
	// Call evaluates the function. The arguments have already been
	// evaluated, left to right, in the caller's scope. Call may use
	// ctx for output but should not read or bind variables.
	Call(ctx *Context, args []float64) (float64, error)

	// Arity returns the number of arguments the function accepts.
	Arity() int
}

// globalfuncs is the builtin function table seeded into every fresh
// context.
var globalfuncs = map[string]Func{
	"sin":   monadic(math.Sin),
	"cos":   monadic(math.Cos),
	"tan":   monadic(math.Tan),
	"asin":  monadic(math.Asin),
	"acos":  monadic(math.Acos),
	"atan":  monadic(math.Atan),
	"sinh":  monadic(math.Sinh),
	"cosh":  monadic(math.Cosh),
	"tanh":  monadic(math.Tanh),
	"ln":    monadic(math.Log),
	"log2":  monadic(math.Log2),
	"log10": monadic(math.Log10),
	"abs":   monadic(math.Abs),
	"floor": monadic(math.Floor),
	"ceil":  monadic(math.Ceil),
	"round": monadic(math.Round),
	"exp":   monadic(math.Exp),
	"min":   dyadic(math.Min),
	"max":   dyadic(math.Max),
	// log(value, base) computes the logarithm of value in base.
	"log": dyadic(func(x, base float64) float64 {
		return math.Log(x) / math.Log(base)
	}),
	"sqrt": Builtin(1, func(_ *Context, args []float64) (float64, error) {
		if args[0] < 0 {
			return 0, &DomainError{Func: "sqrt", X: args[0]}
		}
		return math.Sqrt(args[0]), nil
	}),
	// inspect writes its argument to the context's output and passes
	// it through, for peeking at intermediate values.
	"inspect": Builtin(1, func(ctx *Context, args []float64) (float64, error) {
		fmt.Fprintln(ctx.out, formatNum(args[0]))
		return args[0], nil
	}),
}

type builtin struct {
	arity int
	f     func(ctx *Context, args []float64) (float64, error)
}

func (b *builtin) Call(ctx *Context, args []float64) (float64, error) {
	return b.f(ctx, args)
}

func (b *builtin) Arity() int {
	return b.arity
}

// Builtin wraps a native Go computation into a Func of fixed arity,
// for embedders extending a context via AddFunction.
func Builtin(arity int, f func(ctx *Context, args []float64) (float64, error)) Func {
	return &builtin{arity: arity, f: f}
}

// monadic wraps a function of one variable. IEEE functions propagate
// NaN for arguments outside their domain rather than erroring.
func monadic(f func(float64) float64) Func {
	return &builtin{arity: 1, f: func(_ *Context, args []float64) (float64, error) {
		return f(args[0]), nil
	}}
}

// dyadic wraps a function of two variables.
func dyadic(f func(a, b float64) float64) Func {
	return &builtin{arity: 2, f: func(_ *Context, args []float64) (float64, error) {
		return f(args[0], args[1]), nil
	}}
}

// userFunc is a function defined by an fn statement.
type userFunc struct {
	name   string
	params []string
	body   *node
}

func (u *userFunc) Call(ctx *Context, args []float64) (float64, error) {
	return u.body.eval(ctx.callScope(u.params, args))
}

func (u *userFunc) Arity() int {
	return len(u.params)
}

// formatNum renders a value the way results are printed: the shortest
// representation that round-trips.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// UndefinedFuncError is an error from calling a function name that is
// not in the context's function table.
type UndefinedFuncError struct {
	// Name is the name that was called.
	Name string
}

func (err *UndefinedFuncError) Error() string {
	return "undefined function: " + strconv.Quote(err.Name)
}

// ArityError is an error from calling a function with the wrong number
// of arguments.
type ArityError struct {
	// Func is the name of the called function.
	Func string
	// Want is the function's arity.
	Want int
	// Got is the number of arguments supplied.
	Got int
}

func (err *ArityError) Error() string {
	return "function " + err.Func + " takes " + strconv.Itoa(err.Want) +
		" arguments, got " + strconv.Itoa(err.Got)
}

// ParamError is an error from a function definition with a duplicate
// parameter name, which is rejected at definition time.
type ParamError struct {
	// Func is the name of the function being defined.
	Func string
	// Param is the duplicated parameter name.
	Param string
}

func (err *ParamError) Error() string {
	return "duplicate parameter " + strconv.Quote(err.Param) + " in definition of " + err.Func
}

// DomainError is an error returned when a function is called on an
// argument outside its domain.
type DomainError struct {
	// Func is a name identifying the function.
	Func string
	// X is the out-of-domain argument.
	X float64
}

func (err *DomainError) Error() string {
	return formatNum(err.X) + " outside domain of " + err.Func
}
