package lispy

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// Interpreter is an object for evaluating programs. An Interpreter is not
// safe for concurrent use.
type Interpreter struct {
	// Root is the environment in which top-level expressions evaluate.
	Root *Env

	// Stdout is where print writes. Stdin is where readline reads.
	Stdout io.Writer
	Stdin  io.Reader

	// Trace is nonzero when the tracer should be called for each evaluation
	// step. Use SetTracer to change it.
	Trace  uint32
	tracer Tracer

	// depth is the number of active frames across nested evaluations.
	depth int
	// failure holds the frames of the most recent failed evaluation.
	failure []StackEntry

	stdin    *bufio.Reader
	stdinSrc io.Reader
}

//go:embed stdlib.lispy
var stdlibSource string

// NewInterpreter prepares a new Interpreter. The root environment is a child
// of base, which may be nil. If preloadStdlib is true, the standard library
// is evaluated into the root environment; NewInterpreter panics if that
// fails.
func NewInterpreter(preloadStdlib bool, base *Env) *Interpreter {
	modulesMu.Lock()
	first := !haveInterpreter
	haveInterpreter = true
	modulesMu.Unlock()
	if first {
		linkSubmodules()
	}

	in := &Interpreter{
		Root:   NewEnv(base),
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
	}
	if preloadStdlib {
		if _, err := in.EvaluateString(stdlibSource, "stdlib.lispy"); err != nil {
			panic(fmt.Errorf("lispy: error loading standard library: %w\n%s", err, in.RenderActiveFrames()))
		}
	}
	return in
}

// EvaluateSource parses source text and evaluates each top-level expression
// in order in the root environment, returning the value of the last. It stops
// at the first error.
func (in *Interpreter) EvaluateSource(src string) (Value, error) {
	return in.EvaluateString(src, "source")
}

// EvaluateString is like EvaluateSource, but labels the source for
// diagnostics.
func (in *Interpreter) EvaluateString(src, label string) (Value, error) {
	return in.EvaluateReader(strings.NewReader(src), label)
}

// EvaluateReader parses a program from r and evaluates it.
func (in *Interpreter) EvaluateReader(r io.Reader, label string) (Value, error) {
	exprs, err := Parse(r, label)
	if err != nil {
		in.failure = nil
		return nil, err
	}
	var result Value
	for _, expr := range exprs {
		result, err = in.Evaluate(expr, in.Root)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// MustEvaluate evaluates source and panics if it fails.
func (in *Interpreter) MustEvaluate(src string) Value {
	return Must(in.EvaluateSource(src))
}

// Call calls a callable value with arguments, evaluating user functions to
// completion. Dynamic lookups in the function body see the root environment.
func (in *Interpreter) Call(fn Value, args ...Value) (Value, error) {
	return in.callIn(in.Root, fn, args)
}

// callIn calls fn as if from env.
func (in *Interpreter) callIn(env *Env, fn Value, args []Value) (Value, error) {
	if m, ok := fn.(*Macro); ok {
		return nil, runtimeErrorf("macro %s cannot be applied to evaluated arguments", m.Name)
	}
	r, body, benv, err := in.prepare(fn, args, env)
	if err != nil {
		return nil, in.fail(err, nil)
	}
	if body == nil {
		return r, nil
	}
	return in.Evaluate(body, benv)
}

// Failure returns the frames which were active at the most recent failure,
// outermost first.
func (in *Interpreter) Failure() []StackEntry {
	return in.failure
}

// RenderActiveFrames renders the frames which were active at the most recent
// failure, innermost first, one per line.
func (in *Interpreter) RenderActiveFrames() string {
	var b strings.Builder
	for i := len(in.failure) - 1; i >= 0; i-- {
		e := in.failure[i]
		if e.Label != "" {
			fmt.Fprintf(&b, "\t%s\t%s:%d\t%s\n", e.Form, e.Label, e.Line, e.Bindings)
		} else {
			fmt.Fprintf(&b, "\t%s\t%s\n", e.Form, e.Bindings)
		}
	}
	return b.String()
}

// SetTracer sets the tracer called before each evaluation step. A nil tracer
// disables tracing.
func (in *Interpreter) SetTracer(t Tracer) {
	in.tracer = t
	if t != nil {
		atomic.StoreUint32(&in.Trace, 1)
	} else {
		atomic.StoreUint32(&in.Trace, 0)
	}
}

// readLine reads a line from Stdin without its line terminator.
func (in *Interpreter) readLine() (string, error) {
	if in.stdin == nil || in.stdinSrc != in.Stdin {
		in.stdin = bufio.NewReader(in.Stdin)
		in.stdinSrc = in.Stdin
	}
	s, err := in.stdin.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
