//go:build go1.18
// +build go1.18

package calc_test

import (
	"testing"

	"github.com/sdoering01/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("2 + 2 * 2")
	f.Add("2---2")
	f.Add("-1 ^ 4")
	f.Add("a = 1\nb = a * 2\na + b")
	f.Add("fn f(a, b) { a + b }\nf(1, 2)")
	f.Add("if (x - 1) {\n 1 \n} else {\n 2 \n}")
	f.Add("sin(pi / 2)")
	f.Add("add(1,)")
	f.Add("((((")
	f.Add("}}}}")
	f.Fuzz(func(t *testing.T, src string) {
		toks, err := calc.Tokenize(src)
		if err != nil {
			return
		}
		calc.Parse(toks)
	})
}
