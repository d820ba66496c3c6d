package lispy

import (
	"strings"
	"sync/atomic"
)

// A frame is a suspended evaluation of a special form or call. The driver
// resumes the top frame with the value of the last expression it asked for;
// the first resume receives nil.
type frame interface {
	resume(in *Interpreter, v Value) (cont, error)
	// where returns the expression the frame evaluates and the environment
	// whose bindings are most relevant to it.
	where() (*List, *Env)
}

// A cont tells the driver what a frame needs next: either the value of expr
// in env, or nothing more, with val as the frame's result.
type cont struct {
	expr Value
	env  *Env
	done bool
	val  Value
}

func needsEval(expr Value, env *Env) cont {
	return cont{expr: expr, env: env}
}

func finished(v Value) cont {
	return cont{done: true, val: v}
}

// frameBase holds what every frame knows about itself.
type frameBase struct {
	expr *List
	env  *Env
}

func (f *frameBase) where() (*List, *Env) {
	return f.expr, f.env
}

// Evaluate evaluates an expression in an environment. Nesting of special
// forms and calls is held on an explicit stack of frames rather than the Go
// stack, so recursion depth in programs is limited only by memory.
func (in *Interpreter) Evaluate(expr Value, env *Env) (Value, error) {
	v, f, err := in.step(expr, env)
	if err != nil {
		return nil, in.fail(err, nil)
	}
	if f == nil {
		return v, nil
	}
	base := in.depth
	defer func() { in.depth = base }()
	stack := []frame{f}
	v = nil
	for {
		in.depth = base + len(stack)
		top := stack[len(stack)-1]
		c, err := top.resume(in, v)
		if err != nil {
			return nil, in.fail(err, stack)
		}
		if c.done {
			stack[len(stack)-1] = nil
			stack = stack[:len(stack)-1]
			v = c.val
			if len(stack) == 0 {
				return v, nil
			}
			continue
		}
		v, f, err = in.step(c.expr, c.env)
		if err != nil {
			return nil, in.fail(err, stack)
		}
		if f != nil {
			stack = append(stack, f)
			v = nil
		}
	}
}

// fail records the active frames on an error and in the interpreter. Frames
// from nested evaluations already recorded on the error stay innermost.
func (in *Interpreter) fail(err error, stack []frame) error {
	e := hostError(err)
	if len(stack) > 0 {
		entries := make([]StackEntry, 0, len(stack)+len(e.Stack))
		for _, f := range stack {
			entries = append(entries, describeFrame(f))
		}
		e.Stack = append(entries, e.Stack...)
	}
	in.failure = e.Stack
	return e
}

func describeFrame(f frame) StackEntry {
	expr, env := f.where()
	r := StackEntry{Form: ShortRepr(expr), Label: expr.Label, Line: expr.Line}
	if env != nil {
		r.Bindings = env.describe(4)
	}
	return r
}

// step evaluates an expression once. Atoms produce a value immediately;
// lists produce a frame to be driven by Evaluate, or a value if the form
// needs no further evaluation.
func (in *Interpreter) step(expr Value, env *Env) (Value, frame, error) {
	if atomic.LoadUint32(&in.Trace) != 0 && in.tracer != nil {
		in.tracer.Trace(in.depth, expr)
	}
	switch e := expr.(type) {
	case Token:
		switch e.Kind {
		case Literal:
			return e.Value, nil, nil
		case Identifier:
			v, err := in.resolve(e.Text, env)
			return v, nil, err
		}
		v, err := evalOther(e.Text, env)
		return v, nil, err
	case Symbol:
		switch atomKind(e) {
		case Identifier:
			v, err := in.resolve(string(e), env)
			return v, nil, err
		case Other:
			v, err := evalOther(string(e), env)
			return v, nil, err
		}
		return e, nil, nil
	case *List:
		return in.dispatch(e, env)
	}
	return expr, nil, nil
}

// resolve looks up a possibly dotted identifier. The longest bound prefix of
// the dotted path is looked up in the environment, and the remaining
// segments are accessed as members.
func (in *Interpreter) resolve(name string, env *Env) (Value, error) {
	if v, ok := env.Get(name); ok {
		return v, nil
	}
	parts := strings.Split(name, ".")
	for n := len(parts) - 1; n > 0; n-- {
		v, ok := env.Get(strings.Join(parts[:n], "."))
		if !ok {
			continue
		}
		for _, m := range parts[n:] {
			var err error
			if v, err = getMember(v, m); err != nil {
				return nil, err
			}
		}
		return v, nil
	}
	return nil, nameNotFound(parts[0])
}

// evalOther evaluates an operator-like atom: its binding if it has one,
// otherwise itself as a symbol. 'name evaluates to the symbol name, and ~
// outside a quote is an error.
func evalOther(text string, env *Env) (Value, error) {
	if v, ok := env.Get(text); ok {
		return v, nil
	}
	switch {
	case text != "" && text[0] == '~':
		return nil, runtimeErrorf("unquote (~) used outside of quote")
	case len(text) > 1 && text[0] == '\'':
		return Symbol(text[1:]), nil
	}
	return Symbol(text), nil
}

// formKeys maps punctuation heads to special form names.
var formKeys = map[string]string{
	".": "dot",
	"#": "hash",
	"'": "tick",
	"$": "dollar",
}

// dispatch evaluates a list: a special form if its head names one,
// otherwise a call.
func (in *Interpreter) dispatch(l *List, env *Env) (Value, frame, error) {
	if len(l.Items) == 0 {
		return NewList(), nil, nil
	}
	head := l.Items[0]
	if name, ok := atomText(head); ok {
		key := name
		if k, ok := formKeys[name]; ok {
			key = k
		} else if atomKind(head) != Identifier {
			key = ""
		}
		if sf := forms[key]; sf != nil {
			n := len(l.Items) - 1
			if n < sf.min || sf.max >= 0 && n > sf.max {
				return nil, nil, syntaxErrorf("expected syntax: %s", sf.syntax)
			}
			return sf.start(in, l, env)
		}
	}
	return nil, newCallFrame(l, l.Items, env), nil
}

// callFrame states.
const (
	callHead = iota
	callArgs
	callBody
	callExpand
)

// callFrame evaluates a call: the head, then each argument, then the
// callee's body. Macros instead receive their arguments unevaluated and have
// their result evaluated in the caller's environment.
type callFrame struct {
	frameBase
	items  []Value
	state  int
	fn     Value
	args   []Value
	next   int
	splice int
}

func newCallFrame(expr *List, items []Value, env *Env) *callFrame {
	return &callFrame{frameBase: frameBase{expr: expr, env: env}, items: items, next: 1, splice: -1}
}

func (f *callFrame) resume(in *Interpreter, v Value) (cont, error) {
	switch f.state {
	case callHead:
		f.state = callArgs
		return needsEval(f.items[0], f.env), nil
	case callArgs:
		if f.fn == nil {
			if v == nil {
				return cont{}, runtimeErrorf("nil is not callable")
			}
			f.fn = v
			if m, ok := v.(*Macro); ok {
				return f.expand(m)
			}
			if err := f.findSplice(); err != nil {
				return cont{}, err
			}
			f.args = make([]Value, 0, len(f.items)-1)
		} else if f.next-1 == f.splice+1 && f.splice >= 0 {
			l, ok := v.(*List)
			if !ok {
				return cont{}, runtimeErrorf("cannot splice %s into arguments: not a list", ShortRepr(v))
			}
			f.args = append(f.args, l.Items...)
		} else {
			f.args = append(f.args, v)
		}
		if f.next == f.splice {
			f.next++
		}
		if f.next < len(f.items) {
			f.next++
			return needsEval(f.items[f.next-1], f.env), nil
		}
		return f.invoke(in)
	case callExpand:
		f.state = callBody
		return needsEval(v, f.env), nil
	}
	return finished(v), nil
}

// findSplice locates a & splice marker among the arguments. A marker must
// be second to last; a lone marker is passed through as a symbol.
func (f *callFrame) findSplice() error {
	n := len(f.items)
	if n <= 2 {
		return nil
	}
	if isMarker(f.items[n-2], "&") {
		f.splice = n - 2
		return nil
	}
	for _, x := range f.items[1:] {
		if isMarker(x, "&") {
			return syntaxErrorf("cannot have parameters after varargs")
		}
	}
	return nil
}

// expand binds a macro's unevaluated arguments and evaluates its body.
func (f *callFrame) expand(m *Macro) (cont, error) {
	env, err := macroEnv(m, f.items[1:], f.env)
	if err != nil {
		return cont{}, err
	}
	f.state = callExpand
	return needsEval(m.Body, env), nil
}

func macroEnv(m *Macro, items []Value, caller *Env) (*Env, error) {
	args := make([]Value, len(items))
	for i, x := range items {
		args[i] = datum(x)
	}
	env := callEnv(caller, m.Closure, m.Params.Size())
	if err := m.Params.bindArgs(env, args); err != nil {
		return nil, err
	}
	return env, nil
}

// invoke calls the evaluated callee with the evaluated arguments.
func (f *callFrame) invoke(in *Interpreter) (cont, error) {
	r, body, env, err := in.prepare(f.fn, f.args, f.env)
	if err != nil {
		return cont{}, err
	}
	if body == nil {
		return finished(r), nil
	}
	f.state = callBody
	f.env = env
	return needsEval(body, env), nil
}

// prepare begins a call of fn with args from the caller's environment. Host
// callables are called immediately and their result returned. For user
// functions, prepare instead returns the body to evaluate and the
// environment in which to evaluate it.
func (in *Interpreter) prepare(fn Value, args []Value, caller *Env) (result, body Value, env *Env, err error) {
	for {
		switch f := fn.(type) {
		case *Function:
			env = callEnv(caller, f.Closure, f.Params.Size())
			if err := f.Params.bindArgs(env, args); err != nil {
				return nil, nil, nil, err
			}
			return nil, f.Body, env, nil
		case *Lambda:
			env = callEnv(caller, f.Closure, len(args))
			for i, a := range args {
				env.Bind(lambdaName(i), a)
			}
			return nil, f.Body, env, nil
		case *Macro:
			return nil, nil, nil, runtimeErrorf("macro %s cannot be applied to evaluated arguments", f.Name)
		case Callable:
			r, err := f.Call(in, caller, args)
			if err != nil {
				return nil, nil, nil, hostError(err)
			}
			if inv, ok := r.(*invocation); ok {
				fn, args = inv.fn, inv.args
				continue
			}
			return r, nil, nil, nil
		case Symbol:
			return nil, nil, nil, nameNotFound(string(f))
		}
		return nil, nil, nil, runtimeErrorf("%s is not callable", ShortRepr(fn))
	}
}
