// Command lispy runs lispy programs and provides an interactive prompt.
//
// Usage:
//
//	lispy [flags] [file ...]
//
// Files are evaluated in order, then each -e expression. If no files or
// expressions are given, or if -r is given, an interactive prompt follows.
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

	"github.com/zephyrtronium/lispy"
	// import for side effects
	_ "github.com/zephyrtronium/lispy/hostext"
)

// exprFlags collects repeated -e flags.
type exprFlags []string

func (e *exprFlags) String() string {
	return strings.Join(*e, " ")
}

func (e *exprFlags) Set(s string) error {
	*e = append(*e, s)
	return nil
}

func main() {
	var exprs exprFlags
	flag.Var(&exprs, "e", "evaluate `expr` after any files (may be repeated)")
	noStdlib := flag.Bool("S", false, "do not load the standard library")
	repl := flag.Bool("r", false, "start the interactive prompt after files and expressions")
	trace := flag.Bool("trace", false, "log each evaluation step to standard error")
	config := flag.String("config", DefaultConfigPath(), "read settings from `file`")
	flag.Parse()

	logger := log.New(os.Stderr, "lispy: ", 0)
	cfg, err := LoadConfig(*config)
	if err != nil {
		logger.Fatal(err)
	}
	if *noStdlib {
		cfg.Stdlib = false
	}
	if *trace {
		cfg.Trace = true
	}

	in := lispy.NewInterpreter(cfg.Stdlib, nil)
	if cfg.Trace {
		in.SetTracer(lispy.LogTracer(log.New(os.Stderr, "", 0)))
	}

	status := 0
	for _, name := range flag.Args() {
		if err := runFile(in, name); err != nil {
			report(os.Stderr, in, err)
			status = 1
		}
	}
	for i, e := range exprs {
		r, err := in.EvaluateString(e, fmt.Sprintf("-e #%d", i+1))
		if err != nil {
			report(os.Stderr, in, err)
			status = 1
			continue
		}
		if r != nil {
			fmt.Println(lispy.Repr(r))
		}
	}
	if *repl || flag.NArg() == 0 && len(exprs) == 0 {
		if err := Repl(in, cfg); err != nil {
			logger.Println(err)
			status = 1
		}
	}
	os.Exit(status)
}

func runFile(in *lispy.Interpreter, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = in.EvaluateReader(f, name)
	return err
}

// report writes an error with the frames active when it occurred.
func report(w io.Writer, in *lispy.Interpreter, err error) {
	fmt.Fprintln(w, err)
	var e *lispy.Error
	if errors.As(err, &e) && len(e.Stack) > 0 {
		fmt.Fprint(w, in.RenderActiveFrames())
	}
}

// Repl runs an interactive prompt until the user ends input.
func Repl(in *lispy.Interpreter, cfg Config) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if err := os.MkdirAll(filepath.Dir(cfg.History), 0o755); err != nil {
				return
			}
			if f, err := os.Create(cfg.History); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for n := 1; ; n++ {
		src, err := readExpr(ln, cfg.Prompt, cfg.Continuation)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			fmt.Println("Interrupted (CTRL+D to exit)")
			continue
		case errors.Is(err, io.EOF):
			fmt.Println("Quit")
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		r, err := in.EvaluateString(src, fmt.Sprintf("<stdin %d>", n))
		if err != nil {
			report(os.Stdout, in, err)
			continue
		}
		if r != nil {
			fmt.Println(lispy.Repr(r))
		}
	}
}

// readExpr reads lines until they form a complete program, as decided by
// whether parsing fails only for lack of closing parens.
func readExpr(ln *liner.State, prompt, cont string) (string, error) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if !incomplete(src) {
			return src, nil
		}
	}
}

// incomplete reports whether src has more open parens than closed ones.
func incomplete(src string) bool {
	_, err := lispy.ParseString(src, "")
	var ue *lispy.UnbalancedError
	return errors.As(err, &ue) && ue.Incomplete()
}
