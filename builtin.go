package lispy

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// builtins is the builtin function table, consulted after every
// environment in a lookup chain.
var builtins map[string]*Builtin

func init() {
	builtins = builtinTable(map[string]Fn{
		"+":        BuiltinAdd,
		"-":        BuiltinSub,
		"*":        BuiltinMul,
		"/":        BuiltinDiv,
		"%":        BuiltinMod,
		"=":        BuiltinEqual,
		"!=":       BuiltinNotEqual,
		"<":        BuiltinLess,
		"<=":       BuiltinLessEqual,
		">":        BuiltinGreater,
		">=":       BuiltinGreaterEqual,
		"apply":    BuiltinApply,
		"dict":     BuiltinDict,
		"float":    BuiltinFloat,
		"int":      BuiltinInt,
		"is_dict":  BuiltinIsDict,
		"is_list":  BuiltinIsList,
		"list":     BuiltinList,
		"not":      BuiltinNot,
		"nth":      BuiltinNth,
		"print":    BuiltinPrint,
		"range":    BuiltinRange,
		"readline": BuiltinReadline,
		"slice":    BuiltinSlice,
		"str":      BuiltinStr,
	})
}

// Builtins returns the names of all builtin functions.
func Builtins() []string {
	r := make([]string, 0, len(builtins))
	for k := range builtins {
		r = append(r, k)
	}
	return r
}

// fold applies a binary operation across the arguments from left to right.
func fold(name string, args []Value, op func(a, b Value) (Value, error)) (Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s requires at least one argument", name)
	}
	acc := args[0]
	for _, x := range args[1:] {
		var err error
		if acc, err = op(acc, x); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// BuiltinAdd is a builtin.
//
// + adds numbers, or concatenates strings or lists.
func BuiltinAdd(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return fold("+", args, add)
}

func add(a, b Value) (Value, error) {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return x + y, nil
		}
	case *List:
		if y, ok := b.(*List); ok {
			r := make([]Value, 0, len(x.Items)+len(y.Items))
			r = append(r, x.Items...)
			return NewList(append(r, y.Items...)...), nil
		}
	}
	return arith("+", a, b)
}

// BuiltinSub is a builtin.
//
// - subtracts each subsequent argument from the first.
func BuiltinSub(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return fold("-", args, func(a, b Value) (Value, error) { return arith("-", a, b) })
}

// BuiltinMul is a builtin.
//
// * multiplies numbers, or repeats a string or list an integer number of
// times.
func BuiltinMul(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return fold("*", args, mul)
}

func mul(a, b Value) (Value, error) {
	if _, ok := a.(int); ok {
		switch b.(type) {
		case string, *List:
			a, b = b, a
		}
	}
	switch x := a.(type) {
	case string:
		if n, ok := b.(int); ok {
			if err := repeatable(len(x), n); err != nil {
				return nil, err
			}
			return strings.Repeat(x, max(n, 0)), nil
		}
	case *List:
		if n, ok := b.(int); ok {
			if err := repeatable(len(x.Items), n); err != nil {
				return nil, err
			}
			r := make([]Value, 0, len(x.Items)*max(n, 0))
			for i := 0; i < n && len(x.Items) > 0; i++ {
				r = append(r, x.Items...)
			}
			return NewList(r...), nil
		}
	}
	return arith("*", a, b)
}

// repeatable checks that a sequence of length l repeated n times has a length
// that fits in an int.
func repeatable(l, n int) error {
	if l > 0 && n > math.MaxInt/l {
		return fmt.Errorf("cannot repeat a sequence of length %d %d times", l, n)
	}
	return nil
}

// BuiltinDiv is a builtin.
//
// / divides the first argument by each subsequent argument. Division always
// produces a float.
func BuiltinDiv(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return fold("/", args, func(a, b Value) (Value, error) { return arith("/", a, b) })
}

// BuiltinMod is a builtin.
//
// % returns the remainder of dividing its first argument by its second. The
// result has the sign of the divisor.
func BuiltinMod(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("%", args, 2, 2); err != nil {
		return nil, err
	}
	return arith("%", args[0], args[1])
}

// BuiltinEqual is a builtin.
//
// = reports whether all its arguments are equal.
func BuiltinEqual(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	for i := 1; i < len(args); i++ {
		if !Equal(args[i-1], args[i]) {
			return false, nil
		}
	}
	return true, nil
}

// BuiltinNotEqual is a builtin.
//
// != reports whether not all its arguments are equal.
func BuiltinNotEqual(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	r, _ := BuiltinEqual(in, env, target, args)
	return !r.(bool), nil
}

// Compare orders two values. Numbers compare by value, strings
// lexicographically, and lists element by element. ok is false if the values
// are unordered, as with NaN.
func Compare(a, b Value) (c int, ok bool, err error) {
	if isNumber(a) && isNumber(b) {
		c, ok = compareNumbers(a, b)
		return c, ok, nil
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true, nil
		}
	case *List:
		if y, ok := b.(*List); ok {
			for i := 0; i < len(x.Items) && i < len(y.Items); i++ {
				if Equal(x.Items[i], y.Items[i]) {
					continue
				}
				return Compare(x.Items[i], y.Items[i])
			}
			return compareInts(len(x.Items), len(y.Items)), true, nil
		}
	case Token:
		return Compare(x.Value, b)
	}
	if t, ok := b.(Token); ok {
		return Compare(a, t.Value)
	}
	return 0, false, fmt.Errorf("cannot compare %s and %s", TypeName(a), TypeName(b))
}

func compareInts(x, y int) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// chain checks that pred holds for each adjacent pair of arguments.
func chain(args []Value, pred func(int) bool) (Value, error) {
	for i := 1; i < len(args); i++ {
		c, ok, err := Compare(args[i-1], args[i])
		if err != nil {
			return nil, err
		}
		if !ok || !pred(c) {
			return false, nil
		}
	}
	return true, nil
}

// BuiltinLess is a builtin.
//
// < reports whether its arguments are strictly increasing.
func BuiltinLess(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return chain(args, func(c int) bool { return c < 0 })
}

// BuiltinLessEqual is a builtin.
//
// <= reports whether its arguments are nondecreasing.
func BuiltinLessEqual(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return chain(args, func(c int) bool { return c <= 0 })
}

// BuiltinGreater is a builtin.
//
// > reports whether its arguments are strictly decreasing.
func BuiltinGreater(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return chain(args, func(c int) bool { return c > 0 })
}

// BuiltinGreaterEqual is a builtin.
//
// >= reports whether its arguments are nonincreasing.
func BuiltinGreaterEqual(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return chain(args, func(c int) bool { return c >= 0 })
}

// BuiltinNot is a builtin.
//
// not returns the logical negation of its argument.
func BuiltinNot(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("not", args, 1, 1); err != nil {
		return nil, err
	}
	return !Truthy(args[0]), nil
}

// BuiltinPrint is a builtin.
//
// print writes its arguments separated by spaces and followed by a newline.
func BuiltinPrint(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, x := range args {
		parts[i] = Repr(x)
	}
	_, err := fmt.Fprintln(in.Stdout, strings.Join(parts, " "))
	return nil, err
}

// BuiltinReadline is a builtin.
//
// readline writes its arguments as a prompt, then reads a line of input.
func BuiltinReadline(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if len(args) > 0 {
		parts := make([]string, len(args))
		for i, x := range args {
			parts[i] = Repr(x)
		}
		if _, err := io.WriteString(in.Stdout, strings.Join(parts, " ")); err != nil {
			return nil, err
		}
	}
	s, err := in.readLine()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("EOF when reading a line")
	}
	return s, err
}

// BuiltinInt is a builtin.
//
// int converts a number or string to an integer. Strings are parsed in the
// given base, 10 by default; floats are truncated.
func BuiltinInt(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("int", args, 1, 2); err != nil {
		return nil, err
	}
	base := 10
	if len(args) == 2 {
		var ok bool
		if base, ok = toInt(args[1]); !ok || base < 0 || base == 1 || base > 36 {
			return nil, fmt.Errorf("int() base must be >= 2 and <= 36, or 0")
		}
		if _, ok := args[0].(string); !ok {
			return nil, fmt.Errorf("int() can't convert non-string with explicit base")
		}
	}
	switch x := args[0].(type) {
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, base, 0); err == nil {
			return int(n), nil
		}
		if b, ok := new(big.Int).SetString(s, base); ok {
			return normBig(b), nil
		}
		return nil, fmt.Errorf("invalid literal for int() with base %d: %q", base, x)
	case float64:
		if x != x || x > 1e308 || x < -1e308 {
			return nil, fmt.Errorf("cannot convert float %s to integer", formatFloat(x))
		}
		b, _ := big.NewFloat(x).Int(nil)
		return normBig(b), nil
	case int, *big.Int:
		return x, nil
	case bool:
		n, _ := toInt(x)
		return n, nil
	}
	return nil, fmt.Errorf("int() argument must be a string or a number, not %s", TypeName(args[0]))
}

// BuiltinFloat is a builtin.
//
// float converts a number or string to a float.
func BuiltinFloat(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("float", args, 1, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case string:
		if f, ok := parseFloat(strings.TrimSpace(x)); ok {
			return f, nil
		}
		return nil, fmt.Errorf("could not convert string to float: %q", x)
	case int, *big.Int, float64:
		return toFloat(x), nil
	case bool:
		n, _ := toInt(x)
		return float64(n), nil
	}
	return nil, fmt.Errorf("float() argument must be a string or a number, not %s", TypeName(args[0]))
}

// BuiltinStr is a builtin.
//
// str returns the printed form of its argument.
func BuiltinStr(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("str", args, 1, 1); err != nil {
		return nil, err
	}
	return Repr(args[0]), nil
}

// BuiltinNth is a builtin.
//
// nth returns the element of a list or character of a string at an index.
// Negative indices count from the end. For a dict, nth returns the value at a
// key.
func BuiltinNth(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("nth", args, 2, 2); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case *List:
		i, err := index(args[1], len(x.Items))
		if err != nil {
			return nil, fmt.Errorf("list %w", err)
		}
		return x.Items[i], nil
	case string:
		r := []rune(x)
		i, err := index(args[1], len(r))
		if err != nil {
			return nil, fmt.Errorf("string %w", err)
		}
		return string(r[i]), nil
	case *Dict:
		if v, ok := x.Get(args[1]); ok {
			return v, nil
		}
		return nil, fmt.Errorf("key not found: %s", Repr(args[1]))
	}
	return nil, fmt.Errorf("%s object is not subscriptable", TypeName(args[0]))
}

// BuiltinSlice is a builtin.
//
// slice returns the elements of a list or string from start up to end,
// taking every step'th element. nil bounds mean the ends of the sequence.
func BuiltinSlice(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("slice", args, 3, 4); err != nil {
		return nil, err
	}
	step := 1
	if len(args) == 4 && args[3] != nil {
		var ok bool
		if step, ok = toInt(args[3]); !ok {
			return nil, fmt.Errorf("slice indices must be integers or nil")
		}
		if step == 0 {
			return nil, fmt.Errorf("slice step cannot be zero")
		}
	}
	switch x := args[0].(type) {
	case *List:
		idx, err := sliceIndices(len(x.Items), args[1], args[2], step)
		if err != nil {
			return nil, err
		}
		r := make([]Value, len(idx))
		for i, k := range idx {
			r[i] = x.Items[k]
		}
		return NewList(r...), nil
	case string:
		s := []rune(x)
		idx, err := sliceIndices(len(s), args[1], args[2], step)
		if err != nil {
			return nil, err
		}
		r := make([]rune, len(idx))
		for i, k := range idx {
			r[i] = s[k]
		}
		return string(r), nil
	}
	return nil, fmt.Errorf("%s object is not subscriptable", TypeName(args[0]))
}

// sliceIndices computes the positions selected by a slice of a sequence of
// length n, clamping bounds the way slices of lists and strings do.
func sliceIndices(n int, start, end Value, step int) ([]int, error) {
	bound := func(v Value, def int) (int, error) {
		if v == nil {
			return def, nil
		}
		i, ok := toInt(v)
		if !ok {
			return 0, fmt.Errorf("slice indices must be integers or nil")
		}
		if i < 0 {
			i += n
		}
		lo, hi := 0, n
		if step < 0 {
			lo, hi = -1, n-1
		}
		return max(lo, min(i, hi)), nil
	}
	var lo, hi int
	var err error
	if step > 0 {
		if lo, err = bound(start, 0); err != nil {
			return nil, err
		}
		if hi, err = bound(end, n); err != nil {
			return nil, err
		}
	} else {
		if lo, err = bound(start, n-1); err != nil {
			return nil, err
		}
		if hi, err = bound(end, -1); err != nil {
			return nil, err
		}
	}
	var r []int
	for i := lo; step > 0 && i < hi || step < 0 && i > hi; i += step {
		r = append(r, i)
	}
	return r, nil
}

// BuiltinList is a builtin.
//
// list returns a list of its arguments.
func BuiltinList(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return NewList(append([]Value(nil), args...)...), nil
}

// BuiltinDict is a builtin.
//
// dict returns a dict whose keys and values alternate in the arguments. A
// trailing key without a value is ignored.
func BuiltinDict(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	d := NewDict()
	for i := 0; i+1 < len(args); i += 2 {
		if err := d.Set(args[i], args[i+1]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// BuiltinApply is a builtin.
//
// apply calls a function with the remaining arguments.
func BuiltinApply(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("apply", args, 1, -1); err != nil {
		return nil, err
	}
	return &invocation{fn: args[0], args: args[1:]}, nil
}

// BuiltinRange is a builtin.
//
// range returns a list of integers from start (default 0) up to but not
// including stop, counting by step (default 1).
func BuiltinRange(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("range", args, 1, 3); err != nil {
		return nil, err
	}
	n := make([]int, len(args))
	for i, x := range args {
		var ok bool
		if n[i], ok = toInt(x); !ok {
			return nil, fmt.Errorf("range arguments must be integers, not %s", TypeName(x))
		}
	}
	start, stop, step := 0, n[0], 1
	if len(n) > 1 {
		start, stop = n[0], n[1]
	}
	if len(n) > 2 {
		step = n[2]
	}
	if step == 0 {
		return nil, fmt.Errorf("range step must not be zero")
	}
	var r []Value
	for i := start; step > 0 && i < stop || step < 0 && i > stop; i += step {
		r = append(r, i)
	}
	return NewList(r...), nil
}

// BuiltinIsList is a builtin.
//
// is_list reports whether its argument is a list.
func BuiltinIsList(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("is_list", args, 1, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*List)
	return ok, nil
}

// BuiltinIsDict is a builtin.
//
// is_dict reports whether its argument is a dict.
func BuiltinIsDict(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("is_dict", args, 1, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*Dict)
	return ok, nil
}
