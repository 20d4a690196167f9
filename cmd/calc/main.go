package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/sdoering01/calc"
)

const (
	historyFile = ".calc_history"
	prompt      = "> "
)

func main() {
	log.SetFlags(0)
	var (
		verb string
		with [][2]string
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&verb, "fmt", "%g", "result formatting verb")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.Parse()

	ctx := calc.NewContext()
	for _, d := range with {
		r, err := calc.EvalString(d[1], calc.NewContext())
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		ctx.SetVar(d[0], r)
	}

	if flag.NArg() > 0 {
		if err := evalFile(flag.Arg(0), verb, ctx); err != nil {
			log.Fatal(err)
		}
		return
	}
	repl(verb, ctx)
}

// evalFile evaluates a whole file as one program and prints the result.
func evalFile(name, verb string, ctx *calc.Context) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	r, err := calc.EvalString(string(src), ctx)
	if err != nil {
		return err
	}
	fmt.Printf(verb+"\n", r)
	return nil
}

// repl reads one input per turn and evaluates it against a context
// that persists for the whole session, so assignments and function
// definitions carry over between turns.
func repl(verb string, ctx *calc.Context) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Println()
			return
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			log.Fatal(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		r, err := calc.EvalString(line, ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Printf(verb+"\n", r)
	}
}
