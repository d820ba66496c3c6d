package lispy

// A specialForm is a list head with its own evaluation rules.
type specialForm struct {
	// syntax is the form's expected shape, reported when it is misused.
	syntax string
	// min and max bound the number of arguments. max < 0 means no bound.
	min, max int
	// start begins evaluating the form. It returns either a value or a frame
	// to be driven to completion.
	start func(in *Interpreter, expr *List, env *Env) (Value, frame, error)
}

// forms is the special form dispatch table.
var forms map[string]*specialForm

func init() {
	forms = map[string]*specialForm{
		"if":            {"(if <cond> <iftrue> <iffalse>)", 3, 3, startIf},
		"let":           {"(let (<name> <value> ...) <body>)", 2, 2, startLet},
		"do":            {"(do <expr> ...)", 0, -1, startDo},
		"def":           {"(def <name> <value> ...)", 0, -1, startDef},
		"defn":          {"(defn <name> (<param> ...) <body>)", 3, 3, startDefn},
		"defmacro":      {"(defmacro <name> (<param> ...) <body>)", 3, 3, startDefmacro},
		"macroexpand":   {"(macroexpand <macro> <arg> ...)", 1, -1, startMacroexpand},
		"quote":         {"(quote <expr> ...)", 0, -1, startQuote},
		"tick":          {"(' <expr> ...)", 0, -1, startQuote},
		"dot":           {"(. <member> <object>)", 2, 2, startDot},
		"pyimport":      {"(pyimport <module> ...)", 1, -1, startImport},
		"pyimport_from": {"(pyimport_from <module> <name>)", 2, 2, startImportFrom},
		"call":          {"(call <function> <arg> ...)", 1, -1, startCall},
		"and":           {"(and <expr> ...)", 0, -1, startAnd},
		"or":            {"(or <expr> ...)", 0, -1, startOr},
		"in":            {"(in <item> <collection>)", 2, 2, startIn},
		"match":         {"(match <value> (<pattern> <result>) ...)", 1, -1, startMatch},
		"filter":        {"(filter <function> <collection>)", 2, 2, startFilter},
		"map":           {"(map <function> <collection>)", 2, 2, startMap},
		"hash":          {"(# <body> ...)", 1, -1, startHash},
		"dollar":        {"($ <name>)", 1, 1, startDollar},
		"comment":       {"(comment ...)", 0, -1, startComment},
	}
}

// IsSpecialForm reports whether name is the head of a special form.
func IsSpecialForm(name string) bool {
	if k, ok := formKeys[name]; ok {
		name = k
	}
	return forms[name] != nil
}

// ifFrame evaluates (if c t f).
type ifFrame struct {
	frameBase
	state int
}

func startIf(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	return nil, &ifFrame{frameBase: frameBase{expr, env}}, nil
}

func (f *ifFrame) resume(in *Interpreter, v Value) (cont, error) {
	switch f.state {
	case 0:
		f.state = 1
		return needsEval(f.expr.Items[1], f.env), nil
	case 1:
		f.state = 2
		if Truthy(v) {
			return needsEval(f.expr.Items[2], f.env), nil
		}
		return needsEval(f.expr.Items[3], f.env), nil
	}
	return finished(v), nil
}

// binding is a name or destructuring pattern to bind a value to.
type binding struct {
	name string
	pat  *Pattern
}

func (b binding) bind(env *Env, v Value) error {
	if b.pat != nil {
		return b.pat.bindValue(env, v)
	}
	env.Bind(b.name, v)
	return nil
}

// pairs reads name/value pairs. Names must be identifiers, or lists of
// names if patterns is true.
func pairs(items []Value, patterns bool, syntax string) ([]binding, []Value, error) {
	if len(items)%2 != 0 {
		return nil, nil, syntaxErrorf("expected syntax: %s", syntax)
	}
	names := make([]binding, 0, len(items)/2)
	values := make([]Value, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		if l, ok := items[i].(*List); ok && patterns {
			p, err := CompilePattern(l)
			if err != nil {
				return nil, nil, err
			}
			names = append(names, binding{pat: p})
		} else {
			name, err := identifier(items[i])
			if err != nil {
				return nil, nil, err
			}
			names = append(names, binding{name: name})
		}
		values = append(values, items[i+1])
	}
	return names, values, nil
}

// bindFrame evaluates values and binds them to names in order, then
// optionally evaluates a body. It serves both let and def.
type bindFrame struct {
	frameBase
	target *Env
	names  []binding
	values []Value
	body   Value
	i      int
	last   Value
}

func startLet(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	const syntax = "(let (<name> <value> ...) <body>)"
	l, ok := expr.Items[1].(*List)
	if !ok {
		return nil, nil, syntaxErrorf("expected syntax: %s", syntax)
	}
	names, values, err := pairs(l.Items, true, syntax)
	if err != nil {
		return nil, nil, err
	}
	child := NewEnv(env)
	f := &bindFrame{frameBase: frameBase{expr, child}, target: child, names: names, values: values, body: expr.Items[2], i: -1}
	return nil, f, nil
}

func startDef(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	names, values, err := pairs(expr.Items[1:], false, "(def <name> <value> ...)")
	if err != nil {
		return nil, nil, err
	}
	if len(names) == 0 {
		return nil, nil, nil
	}
	return nil, &bindFrame{frameBase: frameBase{expr, env}, target: env, names: names, values: values, i: -1}, nil
}

func (f *bindFrame) resume(in *Interpreter, v Value) (cont, error) {
	if f.i >= len(f.names) {
		return finished(v), nil
	}
	if f.i >= 0 {
		if err := f.names[f.i].bind(f.target, v); err != nil {
			return cont{}, err
		}
		f.last = v
	}
	f.i++
	if f.i < len(f.names) {
		return needsEval(f.values[f.i], f.target), nil
	}
	if f.body == nil {
		return finished(f.last), nil
	}
	return needsEval(f.body, f.target), nil
}

// seqFrame evaluates a sequence of expressions for do, and, and or. A &
// before the last expression splices the elements of its value into the
// sequence.
type seqFrame struct {
	frameBase
	seq    []Value
	i      int
	splice int
	last   Value
	// mode is "do", "and", or "or".
	mode string
}

func newSeqFrame(expr *List, env *Env, mode string) (*seqFrame, error) {
	seq := expr.Items[1:]
	f := &seqFrame{frameBase: frameBase{expr, env}, seq: seq, i: -1, splice: -1, mode: mode}
	n := len(seq)
	if n > 1 && isMarker(seq[n-2], "&") {
		f.splice = n - 2
	} else if n > 1 {
		for _, x := range seq {
			if isMarker(x, "&") {
				return nil, syntaxErrorf("cannot have parameters after varargs")
			}
		}
	}
	return f, nil
}

func startDo(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	if len(expr.Items) == 1 {
		return nil, nil, nil
	}
	f, err := newSeqFrame(expr, env, "do")
	if err != nil {
		return nil, nil, err
	}
	return nil, f, nil
}

func startAnd(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	if len(expr.Items) == 1 {
		return true, nil, nil
	}
	f, err := newSeqFrame(expr, env, "and")
	if err != nil {
		return nil, nil, err
	}
	return nil, f, nil
}

func startOr(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	if len(expr.Items) == 1 {
		return false, nil, nil
	}
	f, err := newSeqFrame(expr, env, "or")
	if err != nil {
		return nil, nil, err
	}
	return nil, f, nil
}

func (f *seqFrame) resume(in *Interpreter, v Value) (cont, error) {
	if f.i >= 0 {
		if f.i == f.splice+1 && f.splice >= 0 {
			l, ok := v.(*List)
			if !ok {
				return cont{}, runtimeErrorf("cannot splice %s: not a list", ShortRepr(v))
			}
			// Evaluate the spliced elements in place of the list.
			f.seq = append(f.seq[:f.splice:f.splice], l.Items...)
			f.splice = -1
			f.i = len(f.seq) - len(l.Items) - 1
		} else {
			f.last = v
			switch f.mode {
			case "and":
				if !Truthy(v) {
					return finished(false), nil
				}
			case "or":
				if Truthy(v) {
					return finished(true), nil
				}
			}
		}
	}
	f.i++
	if f.i == f.splice {
		f.i++
	}
	if f.i < len(f.seq) {
		return needsEval(f.seq[f.i], f.env), nil
	}
	switch f.mode {
	case "and":
		return finished(true), nil
	case "or":
		return finished(false), nil
	}
	return finished(f.last), nil
}

func startDefn(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	name, err := identifier(expr.Items[1])
	if err != nil {
		return nil, nil, err
	}
	p, err := CompilePattern(expr.Items[2])
	if err != nil {
		return nil, nil, err
	}
	fn := &Function{Name: name, Params: p, Body: expr.Items[3], Closure: env}
	env.Bind(name, fn)
	return fn, nil, nil
}

func startDefmacro(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	name, err := identifier(expr.Items[1])
	if err != nil {
		return nil, nil, err
	}
	p, err := CompilePattern(expr.Items[2])
	if err != nil {
		return nil, nil, err
	}
	m := &Macro{Name: name, Params: p, Body: expr.Items[3], Closure: env}
	env.Bind(name, m)
	return m, nil, nil
}

// expandFrame runs the first phase of a macro call without evaluating the
// generated code.
type expandFrame struct {
	frameBase
	state int
}

func startMacroexpand(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	return nil, &expandFrame{frameBase: frameBase{expr, env}}, nil
}

func (f *expandFrame) resume(in *Interpreter, v Value) (cont, error) {
	switch f.state {
	case 0:
		f.state = 1
		return needsEval(f.expr.Items[1], f.env), nil
	case 1:
		m, ok := v.(*Macro)
		if !ok {
			return cont{}, runtimeErrorf("%s is not a macro", ShortRepr(v))
		}
		env, err := macroEnv(m, f.expr.Items[2:], f.env)
		if err != nil {
			return cont{}, err
		}
		f.state = 2
		return needsEval(m.Body, env), nil
	}
	return finished(v), nil
}

// evalFrame evaluates each of its argument expressions and then passes the
// values to fin.
type evalFrame struct {
	frameBase
	exprs []Value
	vals  []Value
	fin   func(in *Interpreter, env *Env, vals []Value) (Value, error)
}

func (f *evalFrame) resume(in *Interpreter, v Value) (cont, error) {
	if f.vals == nil {
		f.vals = make([]Value, 0, len(f.exprs))
	} else {
		f.vals = append(f.vals, v)
	}
	if len(f.vals) < len(f.exprs) {
		return needsEval(f.exprs[len(f.vals)], f.env), nil
	}
	r, err := f.fin(in, f.env, f.vals)
	if err != nil {
		return cont{}, err
	}
	return finished(r), nil
}

func startDot(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	name, ok := atomText(expr.Items[1])
	if !ok {
		return nil, nil, syntaxErrorf("expected syntax: (. <member> <object>)")
	}
	fin := func(in *Interpreter, env *Env, vals []Value) (Value, error) {
		return getMember(vals[0], name)
	}
	return nil, &evalFrame{frameBase: frameBase{expr, env}, exprs: expr.Items[2:], fin: fin}, nil
}

func startIn(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	fin := func(in *Interpreter, env *Env, vals []Value) (Value, error) {
		return containsItem(vals[1], vals[0])
	}
	return nil, &evalFrame{frameBase: frameBase{expr, env}, exprs: expr.Items[1:], fin: fin}, nil
}

func startDollar(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	fin := func(in *Interpreter, env *Env, vals []Value) (Value, error) {
		switch name := vals[0].(type) {
		case string:
			return env.Lookup(name)
		case Symbol:
			return env.Lookup(string(name))
		}
		return nil, runtimeErrorf("$ requires a name, not %s", ShortRepr(vals[0]))
	}
	return nil, &evalFrame{frameBase: frameBase{expr, env}, exprs: expr.Items[1:], fin: fin}, nil
}

func startImport(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	var last Value
	for _, x := range expr.Items[1:] {
		path, ok := atomText(x)
		if !ok {
			return nil, nil, syntaxErrorf("expected syntax: (pyimport <module> ...)")
		}
		m, err := importModule(path)
		if err != nil {
			return nil, nil, err
		}
		env.Bind(path, m)
		last = m
	}
	return last, nil, nil
}

func startImportFrom(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	path, ok := atomText(expr.Items[1])
	if !ok {
		return nil, nil, syntaxErrorf("expected syntax: (pyimport_from <module> <name>)")
	}
	name, err := identifier(expr.Items[2])
	if err != nil {
		return nil, nil, err
	}
	v, err := importFrom(path, name)
	if err != nil {
		return nil, nil, err
	}
	env.Bind(name, v)
	return v, nil, nil
}

func startCall(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	return nil, newCallFrame(expr, expr.Items[1:], env), nil
}

func startHash(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	body := &List{Items: expr.Items[1:], Label: expr.Label, Line: expr.Line}
	return &Lambda{Body: body, Closure: env}, nil, nil
}

func startComment(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	return nil, nil, nil
}
