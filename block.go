package lispy

import (
	"strconv"
)

// A Function is a named user-defined function.
type Function struct {
	Name    string
	Params  *Pattern
	Body    Value
	Closure *Env
}

// A Lambda is an anonymous function created with #. Its arguments are bound
// to %0, %1, and so on.
type Lambda struct {
	Body    Value
	Closure *Env
}

// A Macro is a user-defined function whose arguments are passed unevaluated
// and whose result is evaluated again in the caller's environment.
type Macro struct {
	Name    string
	Params  *Pattern
	Body    Value
	Closure *Env
}

func (f *Function) String() string {
	return "<function " + f.Name + ">"
}

func (f *Lambda) String() string {
	return "<lambda " + ShortRepr(f.Body) + ">"
}

func (m *Macro) String() string {
	return "<macro " + m.Name + ">"
}

// A Pattern is a formal parameter list. Each parameter is a name or a nested
// pattern, and the last may be a rest name collecting any remaining
// arguments.
type Pattern struct {
	Params []Param
	// Rest is the name of the rest parameter, if HasRest.
	Rest    string
	HasRest bool
}

// A Param is a single formal parameter: either a name or a nested pattern.
type Param struct {
	Name string
	Sub  *Pattern
}

// CompilePattern converts a parameter list to a Pattern. The list must
// contain only identifiers, nested lists, and at most one & immediately
// before the final identifier.
func CompilePattern(v Value) (*Pattern, error) {
	l, ok := v.(*List)
	if !ok {
		return nil, syntaxErrorf("parameter list must be a list, not %s", ShortRepr(v))
	}
	p := &Pattern{Params: make([]Param, 0, len(l.Items))}
	n := len(l.Items)
	for i := 0; i < n; i++ {
		item := l.Items[i]
		if isMarker(item, "&") {
			if i != n-2 {
				return nil, syntaxErrorf("varargs must be in last position")
			}
			name, err := identifier(l.Items[i+1])
			if err != nil {
				return nil, err
			}
			p.Rest, p.HasRest = name, true
			break
		}
		if sub, ok := item.(*List); ok {
			sp, err := CompilePattern(sub)
			if err != nil {
				return nil, err
			}
			p.Params = append(p.Params, Param{Sub: sp})
			continue
		}
		name, err := identifier(item)
		if err != nil {
			return nil, err
		}
		p.Params = append(p.Params, Param{Name: name})
	}
	return p, nil
}

// identifier returns the name of an identifier atom.
func identifier(v Value) (string, error) {
	if atomKind(v) == Identifier {
		s, _ := atomText(v)
		return s, nil
	}
	return "", syntaxErrorf("%q is not a valid identifier", Repr(v))
}

// bindArgs binds call arguments. Parameters without a matching argument stay
// unbound and extra arguments without a rest parameter are dropped, but
// nested patterns must match exactly.
func (p *Pattern) bindArgs(env *Env, args []Value) error {
	for i, param := range p.Params {
		if i >= len(args) {
			break
		}
		if err := param.bind(env, args[i]); err != nil {
			return err
		}
	}
	if p.HasRest {
		var rest []Value
		if len(args) > len(p.Params) {
			rest = append(rest, args[len(p.Params):]...)
		}
		env.Bind(p.Rest, NewList(rest...))
	}
	return nil
}

// bindValue destructures a value, which must be a list of the pattern's
// arity.
func (p *Pattern) bindValue(env *Env, v Value) error {
	if !p.matches(v) {
		return runtimeErrorf("cannot destructure %s into %s", ShortRepr(v), p)
	}
	return p.bindArgs(env, v.(*List).Items)
}

// matches reports whether a value has the shape of the pattern.
func (p *Pattern) matches(v Value) bool {
	l, ok := v.(*List)
	if !ok {
		return false
	}
	if len(l.Items) != len(p.Params) && !(p.HasRest && len(l.Items) >= len(p.Params)) {
		return false
	}
	for i, param := range p.Params {
		if param.Sub != nil && !param.Sub.matches(l.Items[i]) {
			return false
		}
	}
	return true
}

func (param Param) bind(env *Env, v Value) error {
	if param.Sub != nil {
		return param.Sub.bindValue(env, v)
	}
	env.Bind(param.Name, v)
	return nil
}

// Size returns the number of names the pattern binds.
func (p *Pattern) Size() int {
	n := 0
	for _, param := range p.Params {
		if param.Sub != nil {
			n += param.Sub.Size()
		} else {
			n++
		}
	}
	if p.HasRest {
		n++
	}
	return n
}

// String renders the pattern as a parameter list.
func (p *Pattern) String() string {
	b := []byte{'('}
	for i, param := range p.Params {
		if i > 0 {
			b = append(b, ' ')
		}
		if param.Sub != nil {
			b = append(b, param.Sub.String()...)
		} else {
			b = append(b, param.Name...)
		}
	}
	if p.HasRest {
		if len(p.Params) > 0 {
			b = append(b, ' ')
		}
		b = append(b, "& "...)
		b = append(b, p.Rest...)
	}
	return string(append(b, ')'))
}

// lambdaName returns the synthetic name of a lambda argument.
func lambdaName(i int) string {
	return "%" + strconv.Itoa(i)
}
