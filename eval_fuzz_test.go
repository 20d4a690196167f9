//go:build go1.18
// +build go1.18

package calc_test

import (
	"io"
	"testing"

	"github.com/sdoering01/calc"
)

func FuzzEvalString(f *testing.F) {
	f.Add("2 + 2 * 2")
	f.Add("1 / 0")
	f.Add("100 % 0")
	f.Add("a = 1\na + b")
	f.Add("fn f(a) { f(a) + 1 }")
	f.Add("if (inspect(1)) { sqrt(0 - 1) }")
	f.Add("pi ^ e")
	f.Fuzz(func(t *testing.T, src string) {
		ctx := calc.NewContext(calc.Output(io.Discard))
		calc.EvalString(src, ctx)
	})
}
