package lispy

import (
	"fmt"
	"strings"
)

// stringArg returns the nth argument as a string.
func stringArg(name string, args []Value, n int) (string, error) {
	switch s := args[n].(type) {
	case string:
		return s, nil
	case Symbol:
		return string(s), nil
	}
	return "", fmt.Errorf("argument %d to %s must be str, not %s", n, name, TypeName(args[n]))
}

// StringStrip is a String method.
//
// strip removes leading and trailing whitespace, or any of the given
// characters.
func StringStrip(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return trimmer("strip", strings.TrimSpace, strings.Trim, target, args)
}

// StringLstrip is a String method.
//
// lstrip removes leading whitespace, or any of the given characters.
func StringLstrip(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	space := func(s string) string { return strings.TrimLeft(s, " \t\n\r\v\f") }
	return trimmer("lstrip", space, strings.TrimLeft, target, args)
}

// StringRstrip is a String method.
//
// rstrip removes trailing whitespace, or any of the given characters.
func StringRstrip(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	space := func(s string) string { return strings.TrimRight(s, " \t\n\r\v\f") }
	return trimmer("rstrip", space, strings.TrimRight, target, args)
}

func trimmer(name string, space func(string) string, cutset func(string, string) string, target Value, args []Value) (Value, error) {
	if err := argRange(name, args, 0, 1); err != nil {
		return nil, err
	}
	s := target.(string)
	if len(args) == 0 || args[0] == nil {
		return space(s), nil
	}
	chars, err := stringArg(name, args, 0)
	if err != nil {
		return nil, err
	}
	return cutset(s, chars), nil
}

// StringUpper is a String method.
//
// upper returns the string in upper case.
func StringUpper(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return strings.ToUpper(target.(string)), nil
}

// StringLower is a String method.
//
// lower returns the string in lower case.
func StringLower(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return strings.ToLower(target.(string)), nil
}

// StringSplit is a String method.
//
// split splits the string around runs of whitespace, or around each instance
// of a separator.
func StringSplit(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("split", args, 0, 1); err != nil {
		return nil, err
	}
	var parts []string
	if len(args) == 0 || args[0] == nil {
		parts = strings.Fields(target.(string))
	} else {
		sep, err := stringArg("split", args, 0)
		if err != nil {
			return nil, err
		}
		if sep == "" {
			return nil, fmt.Errorf("empty separator")
		}
		parts = strings.Split(target.(string), sep)
	}
	r := make([]Value, len(parts))
	for i, p := range parts {
		r[i] = p
	}
	return NewList(r...), nil
}

// StringJoin is a String method.
//
// join concatenates the strings in a collection, separated by the receiver.
func StringJoin(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("join", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := iterate(args[0])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(elems))
	for i := range elems {
		if parts[i], err = stringArg("join", elems, i); err != nil {
			return nil, fmt.Errorf("sequence item %d: expected str, found %s", i, TypeName(elems[i]))
		}
	}
	return strings.Join(parts, target.(string)), nil
}

// StringStartswith is a String method.
//
// startswith reports whether the string begins with a prefix.
func StringStartswith(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("startswith", args, 1, 1); err != nil {
		return nil, err
	}
	p, err := stringArg("startswith", args, 0)
	if err != nil {
		return nil, err
	}
	return strings.HasPrefix(target.(string), p), nil
}

// StringEndswith is a String method.
//
// endswith reports whether the string ends with a suffix.
func StringEndswith(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("endswith", args, 1, 1); err != nil {
		return nil, err
	}
	p, err := stringArg("endswith", args, 0)
	if err != nil {
		return nil, err
	}
	return strings.HasSuffix(target.(string), p), nil
}

// StringReplace is a String method.
//
// replace replaces each instance of old with new, or only the first count
// instances if a count is given.
func StringReplace(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("replace", args, 2, 3); err != nil {
		return nil, err
	}
	old, err := stringArg("replace", args, 0)
	if err != nil {
		return nil, err
	}
	repl, err := stringArg("replace", args, 1)
	if err != nil {
		return nil, err
	}
	n := -1
	if len(args) == 3 {
		var ok bool
		if n, ok = toInt(args[2]); !ok {
			return nil, fmt.Errorf("replace count must be int, not %s", TypeName(args[2]))
		}
	}
	return strings.Replace(target.(string), old, repl, n), nil
}

// StringFind is a String method.
//
// find returns the byte index of the first instance of a substring, or -1.
func StringFind(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("find", args, 1, 1); err != nil {
		return nil, err
	}
	sub, err := stringArg("find", args, 0)
	if err != nil {
		return nil, err
	}
	return strings.Index(target.(string), sub), nil
}

// StringCount is a String method.
//
// count returns the number of non-overlapping instances of a substring.
func StringCount(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("count", args, 1, 1); err != nil {
		return nil, err
	}
	sub, err := stringArg("count", args, 0)
	if err != nil {
		return nil, err
	}
	return strings.Count(target.(string), sub), nil
}

// StringFormat is a String method.
//
// format replaces each {} in the string with the printed form of the next
// argument, and each {n} with the nth argument.
func StringFormat(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	s := target.(string)
	var b strings.Builder
	next := 0
	for {
		i := strings.IndexByte(s, '{')
		if i < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:i])
		s = s[i+1:]
		if strings.HasPrefix(s, "{") {
			b.WriteByte('{')
			s = s[1:]
			continue
		}
		j := strings.IndexByte(s, '}')
		if j < 0 {
			return nil, fmt.Errorf("single '{' encountered in format string")
		}
		k := next
		if j > 0 {
			if _, err := fmt.Sscanf(s[:j], "%d", &k); err != nil {
				return nil, fmt.Errorf("invalid format field %q", s[:j])
			}
		} else {
			next++
		}
		if k < 0 || k >= len(args) {
			return nil, fmt.Errorf("format index %d out of range", k)
		}
		b.WriteString(Repr(args[k]))
		s = s[j+1:]
	}
}
