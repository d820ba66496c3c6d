package lispy

import (
	"log"
)

// A Tracer observes each evaluation step of an Interpreter. depth is the
// number of frames active when expr is evaluated.
type Tracer interface {
	Trace(depth int, expr Value)
}

// TracerFunc adapts a function to a Tracer.
type TracerFunc func(depth int, expr Value)

// Trace calls f(depth, expr).
func (f TracerFunc) Trace(depth int, expr Value) {
	f(depth, expr)
}

// LogTracer returns a Tracer which logs each step to l, indented by depth.
func LogTracer(l *log.Logger) Tracer {
	return TracerFunc(func(depth int, expr Value) {
		if depth > 40 {
			depth = 40
		}
		l.Printf("%*s%s", 2*depth, "", ShortRepr(expr))
	})
}

// Debugger is a Tracer which hands each step to another goroutine and waits
// for it to be handled before evaluation continues.
type Debugger struct {
	// steps is the queue of steps to process.
	steps chan DebugStep
}

// DebugStep is an evaluation step awaiting a debugger. The evaluator blocks
// until Continue is called.
type DebugStep struct {
	Depth int
	Expr  Value
	done  chan struct{}
}

// Continue releases the evaluator to perform the step.
func (s DebugStep) Continue() {
	close(s.done)
}

// NewDebugger creates a Debugger.
func NewDebugger() *Debugger {
	return &Debugger{steps: make(chan DebugStep)}
}

// Steps returns the channel on which steps are delivered.
func (d *Debugger) Steps() <-chan DebugStep {
	return d.steps
}

// Trace sends the step to the debugger and waits for it to be handled.
func (d *Debugger) Trace(depth int, expr Value) {
	done := make(chan struct{})
	d.steps <- DebugStep{Depth: depth, Expr: expr, done: done}
	<-done
}
