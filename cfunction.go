package lispy

import (
	"reflect"
	"runtime"
)

// An Fn is a statically compiled function which can be called from programs.
// env is the caller's environment. target is the receiver for member
// functions and nil otherwise.
type Fn func(in *Interpreter, env *Env, target Value, args []Value) (Value, error)

// A Callable is a host value which programs can call with positional
// arguments.
type Callable interface {
	Call(in *Interpreter, env *Env, args []Value) (Value, error)
}

// A Builtin is a callable wrapping a compiled function.
type Builtin struct {
	// Function is the wrapped function.
	Function Fn
	// Name is the name programs know the builtin by.
	Name string
	// GoName is the name of the Go function, for diagnostics.
	GoName string
	// Target is the receiver the builtin is bound to, if any.
	Target Value
}

// NewBuiltin creates a Builtin wrapping f.
func NewBuiltin(name string, f Fn) *Builtin {
	u := reflect.ValueOf(f).Pointer()
	return &Builtin{
		Function: f,
		Name:     name,
		GoName:   runtime.FuncForPC(u).Name(),
	}
}

// Bind returns a copy of the builtin with its receiver set to target.
func (b *Builtin) Bind(target Value) *Builtin {
	r := *b
	r.Target = target
	return &r
}

// Call calls the wrapped function.
func (b *Builtin) Call(in *Interpreter, env *Env, args []Value) (Value, error) {
	return b.Function(in, env, b.Target, args)
}

// String returns the name of the builtin.
func (b *Builtin) String() string {
	return "<builtin " + b.Name + ">"
}

// An invocation asks the calling frame to call fn with args in place of
// returning a value directly. Builtins such as apply use it to call user
// functions without nesting evaluation.
type invocation struct {
	fn   Value
	args []Value
}
