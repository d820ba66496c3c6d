package lispy

import "fmt"

// matchArm is one (pattern result) pair of a match.
type matchArm struct {
	// name is set for a bare-name pattern, which matches anything.
	name   string
	pat    *Pattern
	result Value
}

// matchFrame evaluates (match value (pattern result) ...).
type matchFrame struct {
	frameBase
	arms  []matchArm
	state int
}

func startMatch(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	arms := make([]matchArm, 0, len(expr.Items)-2)
	for _, x := range expr.Items[2:] {
		l, ok := x.(*List)
		if !ok || len(l.Items) != 2 {
			return nil, nil, syntaxErrorf("expected syntax: (match <value> (<pattern> <result>) ...)")
		}
		arm := matchArm{result: l.Items[1]}
		switch p := l.Items[0].(type) {
		case *List:
			pat, err := CompilePattern(p)
			if err != nil {
				return nil, nil, err
			}
			arm.pat = pat
		default:
			name, ok := atomText(p)
			if !ok {
				return nil, nil, syntaxErrorf("%q is not a valid pattern", Repr(p))
			}
			arm.name = name
		}
		arms = append(arms, arm)
	}
	return nil, &matchFrame{frameBase: frameBase{expr, env}, arms: arms}, nil
}

func (f *matchFrame) resume(in *Interpreter, v Value) (cont, error) {
	switch f.state {
	case 0:
		f.state = 1
		return needsEval(f.expr.Items[1], f.env), nil
	case 1:
		for _, arm := range f.arms {
			if arm.pat != nil && !arm.pat.matches(v) {
				continue
			}
			child := NewEnv(f.env)
			if arm.pat != nil {
				if err := arm.pat.bindValue(child, v); err != nil {
					return cont{}, err
				}
			} else {
				child.Bind(arm.name, v)
			}
			f.state = 2
			f.env = child
			return needsEval(arm.result, child), nil
		}
		return cont{}, runtimeErrorf("no pattern matches %s", ShortRepr(v))
	}
	return finished(v), nil
}

// eachFrame applies a function to each element of a collection for filter
// and map.
type eachFrame struct {
	frameBase
	keep  bool // filter rather than map
	state int
	fn    Value
	elems []Value
	i     int
	out   []Value
}

func startFilter(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	return nil, &eachFrame{frameBase: frameBase{expr, env}, keep: true}, nil
}

func startMap(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	return nil, &eachFrame{frameBase: frameBase{expr, env}}, nil
}

func (f *eachFrame) resume(in *Interpreter, v Value) (cont, error) {
	switch f.state {
	case 0:
		f.state = 1
		return needsEval(f.expr.Items[1], f.env), nil
	case 1:
		if m, ok := v.(*Macro); ok {
			return cont{}, runtimeErrorf("macro %s cannot be applied to evaluated arguments", m.Name)
		}
		f.fn = v
		f.state = 2
		return needsEval(f.expr.Items[2], f.env), nil
	case 2:
		elems, err := iterate(v)
		if err != nil {
			return cont{}, err
		}
		f.elems = elems
		f.out = make([]Value, 0, len(elems))
		f.state = 3
	case 3:
		f.record(v)
	}
	for f.i < len(f.elems) {
		r, body, env, err := in.prepare(f.fn, []Value{f.elems[f.i]}, f.env)
		if err != nil {
			return cont{}, err
		}
		if body != nil {
			return needsEval(body, env), nil
		}
		f.record(r)
	}
	return finished(NewList(f.out...)), nil
}

// record stores the result of calling the function on the current element
// and advances to the next.
func (f *eachFrame) record(r Value) {
	if !f.keep {
		f.out = append(f.out, r)
	} else if Truthy(r) {
		f.out = append(f.out, f.elems[f.i])
	}
	f.i++
}

// iterate returns the elements of a collection: the items of a list, the
// characters of a string, or the keys of a dict.
func iterate(v Value) ([]Value, error) {
	switch v := v.(type) {
	case *List:
		return v.Items, nil
	case string:
		r := make([]Value, 0, len(v))
		for _, c := range v {
			r = append(r, string(c))
		}
		return r, nil
	case *Dict:
		return v.Keys(), nil
	case Token:
		return iterate(v.Value)
	}
	return nil, fmt.Errorf("%s object is not iterable", TypeName(v))
}
