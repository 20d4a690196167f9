package calc

import (
	"io"
	"math"
	"os"
	"strconv"
)

// Context is the mutable state of one evaluation session: variable
// bindings and the function table. A Context can be kept across
// evaluations, e.g. for successive REPL turns. It is not safe to use a
// Context concurrently.
type Context struct {
	vars  map[string]float64
	funcs map[string]Func
	out   io.Writer
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption(*Context)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	outopt  struct {
		w io.Writer
	}
)

func (o varopt) ctxOption(ctx *Context)  { ctx.vars[o.name] = o.val }
func (o varsopt) ctxOption(ctx *Context) {
	for k, v := range o {
		ctx.vars[k] = v
	}
}
func (o outopt) ctxOption(ctx *Context) { ctx.out = o.w }

// WithVar pre-binds a variable in the new context.
func WithVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// WithVars pre-binds any number of variables in the new context.
func WithVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// Output sets the writer that builtins with output, i.e. inspect,
// write to. The default is os.Stdout.
func Output(w io.Writer) ContextOption {
	return outopt{w}
}

// NewContext creates a new evaluation context holding the default
// builtin functions and the constants pi and e as ordinary variables.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		vars:  map[string]float64{"pi": math.Pi, "e": math.E},
		funcs: make(map[string]Func, len(globalfuncs)),
		out:   os.Stdout,
	}
	for k, v := range globalfuncs {
		ctx.funcs[k] = v
	}
	for _, opt := range opts {
		opt.ctxOption(&ctx)
	}
	return &ctx
}

// GetVar returns the value of a variable and whether it is bound.
func (ctx *Context) GetVar(name string) (float64, bool) {
	v, ok := ctx.vars[name]
	return v, ok
}

// SetVar binds a variable, overwriting any prior value.
func (ctx *Context) SetVar(name string, val float64) {
	ctx.vars[name] = val
}

// AddFunction registers a function under a name that must not collide
// with a builtin or a previously registered function; it fails with
// *FuncExistsError otherwise, so embedders can extend the table
// without silently overwriting anything.
func (ctx *Context) AddFunction(name string, fn Func) error {
	if _, ok := ctx.funcs[name]; ok {
		return &FuncExistsError{Name: name}
	}
	ctx.funcs[name] = fn
	return nil
}

// callScope creates the isolated scope a user-defined function body
// evaluates in. It shares the function table, which is what makes
// recursion and calls between definitions work, but none of the
// caller's variables.
func (ctx *Context) callScope(params []string, args []float64) *Context {
	vars := make(map[string]float64, len(params))
	for i, p := range params {
		vars[p] = args[i]
	}
	return &Context{vars: vars, funcs: ctx.funcs, out: ctx.out}
}

// Eval evaluates the program against ctx, mutating it in place as each
// statement succeeds, and returns the value of the last non-blank
// statement. An empty program evaluates to 0. Bindings made by
// statements before a failing one remain in effect.
func (a *AST) Eval(ctx *Context) (float64, error) {
	return a.n.eval(ctx)
}

// EvalString tokenizes, parses, and evaluates src against ctx. This is
// the whole pipeline in one call, suitable for a REPL turn or a file's
// contents.
func EvalString(src string, ctx *Context) (float64, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return 0, err
	}
	a, err := Parse(toks)
	if err != nil {
		return 0, err
	}
	return a.Eval(ctx)
}

// eval computes the node's value against ctx.
func (n *node) eval(ctx *Context) (float64, error) {
	switch n.kind {
	case nodeLines:
		var ret float64
		for _, stmt := range n.list {
			v, err := stmt.eval(ctx)
			if err != nil {
				return 0, err
			}
			ret = v
		}
		return ret, nil
	case nodeNum:
		v, err := strconv.ParseFloat(n.text, 64)
		if err != nil {
			// The lexer validated the literal's shape, so a conversion
			// failure here is a bug, not a user error.
			panic("calc: invalid number literal " + strconv.Quote(n.text) + " in AST")
		}
		return v, nil
	case nodeVar:
		v, ok := ctx.vars[n.text]
		if !ok {
			return 0, &NameError{Name: n.text}
		}
		return v, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return l + r, nil
		case nodeSub:
			return l - r, nil
		case nodeMul:
			return l * r, nil
		case nodeDiv:
			// IEEE semantics: division by zero yields an infinity or
			// NaN rather than an error.
			return l / r, nil
		case nodeMod:
			if r == 0 {
				return 0, &ModuloByZeroError{X: l}
			}
			// Truncating remainder: the result takes the dividend's
			// sign, so 7 % -3 is 1 and -7 % 3 is -1.
			return math.Mod(l, r), nil
		default: // nodePow
			return math.Pow(l, r), nil
		}
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeGroup:
		return n.left.eval(ctx)
	case nodeAssign:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		ctx.vars[n.text] = v
		return v, nil
	case nodeCall:
		fn, ok := ctx.funcs[n.text]
		if !ok {
			return 0, &UndefinedFuncError{Name: n.text}
		}
		if len(n.list) != fn.Arity() {
			return 0, &ArityError{Func: n.text, Want: fn.Arity(), Got: len(n.list)}
		}
		args := make([]float64, len(n.list))
		for i, a := range n.list {
			v, err := a.eval(ctx)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return fn.Call(ctx, args)
	case nodeFn:
		seen := make(map[string]bool, len(n.params))
		for _, param := range n.params {
			if seen[param] {
				return 0, &ParamError{Func: n.text, Param: param}
			}
			seen[param] = true
		}
		if prev, ok := ctx.funcs[n.text]; ok {
			// A script may redefine its own functions, but not shadow
			// a builtin or an embedder-registered one.
			if _, user := prev.(*userFunc); !user {
				return 0, &FuncExistsError{Name: n.text}
			}
		}
		ctx.funcs[n.text] = &userFunc{name: n.text, params: n.params, body: n.left}
		return 0, nil
	case nodeIf:
		c, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return n.right.eval(ctx)
		}
		if n.els != nil {
			return n.els.eval(ctx)
		}
		return 0, nil
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// NameError is an error from a lookup for a variable that is missing
// from the evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// ModuloByZeroError is an error from a remainder operation with a zero
// divisor, which is invalid for any dividend.
type ModuloByZeroError struct {
	// X is the dividend.
	X float64
}

func (err *ModuloByZeroError) Error() string {
	return "modulo by zero: " + formatNum(err.X) + " % 0"
}

// FuncExistsError is an error from registering a function under a name
// that is already taken.
type FuncExistsError struct {
	// Name is the colliding function name.
	Name string
}

func (err *FuncExistsError) Error() string {
	return "function already defined: " + strconv.Quote(err.Name)
}
