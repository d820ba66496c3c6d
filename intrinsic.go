package lispy

import (
	"fmt"
	"math"
	"math/big"
	"slices"
)

// intrinsics holds names visible everywhere, consulted only after both the
// environment graph and the builtins.
var intrinsics map[string]Value

func init() {
	intrinsics = map[string]Value{
		"None": nil,
		"nil":  nil,
	}
	for name, b := range builtinTable(map[string]Fn{
		"abs":       IntrinsicAbs,
		"all":       IntrinsicAll,
		"any":       IntrinsicAny,
		"bool":      IntrinsicBool,
		"chr":       IntrinsicChr,
		"enumerate": IntrinsicEnumerate,
		"getattr":   IntrinsicGetattr,
		"hasattr":   IntrinsicHasattr,
		"keys":      IntrinsicKeys,
		"len":       IntrinsicLen,
		"max":       IntrinsicMax,
		"min":       IntrinsicMin,
		"ord":       IntrinsicOrd,
		"repr":      IntrinsicRepr,
		"reversed":  IntrinsicReversed,
		"round":     IntrinsicRound,
		"sorted":    IntrinsicSorted,
		"sum":       IntrinsicSum,
		"type":      IntrinsicType,
		"values":    IntrinsicValues,
	}) {
		intrinsics[name] = b
	}
}

// IntrinsicLen is an intrinsic.
//
// len returns the number of elements in a list, dict, or module, or the
// number of characters in a string.
func IntrinsicLen(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("len", args, 1, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case *List:
		return len(x.Items), nil
	case string:
		return len([]rune(x)), nil
	case *Dict:
		return x.Len(), nil
	case *Module:
		return len(x.Members), nil
	case Token:
		return IntrinsicLen(in, env, target, []Value{x.Value})
	}
	return nil, fmt.Errorf("object of type %s has no len()", TypeName(args[0]))
}

// extremum implements min and max. With one argument, the candidates are its
// elements; otherwise they are the arguments themselves.
func extremum(name string, args []Value, better func(c int) bool) (Value, error) {
	if err := argRange(name, args, 1, -1); err != nil {
		return nil, err
	}
	elems := args
	if len(args) == 1 {
		var err error
		if elems, err = iterate(args[0]); err != nil {
			return nil, err
		}
		if len(elems) == 0 {
			return nil, fmt.Errorf("%s() arg is an empty sequence", name)
		}
	}
	r := elems[0]
	for _, x := range elems[1:] {
		c, ok, err := Compare(x, r)
		if err != nil {
			return nil, err
		}
		if ok && better(c) {
			r = x
		}
	}
	return r, nil
}

// IntrinsicMin is an intrinsic.
//
// min returns the least of its arguments, or of the elements of its single
// argument.
func IntrinsicMin(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return extremum("min", args, func(c int) bool { return c < 0 })
}

// IntrinsicMax is an intrinsic.
//
// max returns the greatest of its arguments, or of the elements of its single
// argument.
func IntrinsicMax(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return extremum("max", args, func(c int) bool { return c > 0 })
}

// IntrinsicAbs is an intrinsic.
//
// abs returns the absolute value of a number.
func IntrinsicAbs(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("abs", args, 1, 1); err != nil {
		return nil, err
	}
	return absValue(args[0])
}

// IntrinsicSum is an intrinsic.
//
// sum adds the numbers in a collection to a start value, 0 by default.
func IntrinsicSum(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("sum", args, 1, 2); err != nil {
		return nil, err
	}
	elems, err := iterate(args[0])
	if err != nil {
		return nil, err
	}
	var acc Value = 0
	if len(args) == 2 {
		acc = args[1]
	}
	for _, x := range elems {
		if acc, err = arith("+", acc, x); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// IntrinsicSorted is an intrinsic.
//
// sorted returns a new list of the elements of a collection in ascending
// order, or descending order if the second argument is true.
func IntrinsicSorted(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("sorted", args, 1, 2); err != nil {
		return nil, err
	}
	elems, err := iterate(args[0])
	if err != nil {
		return nil, err
	}
	r := slices.Clone(elems)
	desc := len(args) == 2 && Truthy(args[1])
	slices.SortStableFunc(r, func(a, b Value) int {
		if err != nil {
			return 0
		}
		var c int
		c, _, err = Compare(a, b)
		if desc {
			return -c
		}
		return c
	})
	if err != nil {
		return nil, err
	}
	return NewList(r...), nil
}

// IntrinsicReversed is an intrinsic.
//
// reversed returns a new list of the elements of a collection in reverse
// order.
func IntrinsicReversed(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("reversed", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := iterate(args[0])
	if err != nil {
		return nil, err
	}
	r := slices.Clone(elems)
	slices.Reverse(r)
	return NewList(r...), nil
}

// IntrinsicType is an intrinsic.
//
// type returns the name of the type of its argument.
func IntrinsicType(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("type", args, 1, 1); err != nil {
		return nil, err
	}
	return TypeName(args[0]), nil
}

// IntrinsicBool is an intrinsic.
//
// bool returns the truthiness of its argument.
func IntrinsicBool(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("bool", args, 0, 1); err != nil {
		return nil, err
	}
	return len(args) == 1 && Truthy(args[0]), nil
}

// IntrinsicRound is an intrinsic.
//
// round rounds a number to the nearest integer, or to a number of decimal
// places. Halves round to even.
func IntrinsicRound(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("round", args, 1, 2); err != nil {
		return nil, err
	}
	if !isNumber(args[0]) {
		return nil, fmt.Errorf("type %s doesn't define round", TypeName(args[0]))
	}
	f, ok := args[0].(float64)
	if !ok {
		return args[0], nil
	}
	if len(args) == 1 || args[1] == nil {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("cannot convert float %s to integer", formatFloat(f))
		}
		b, _ := big.NewFloat(math.RoundToEven(f)).Int(nil)
		return normBig(b), nil
	}
	n, ok := toInt(args[1])
	if !ok {
		return nil, fmt.Errorf("round digits must be an integer, not %s", TypeName(args[1]))
	}
	p := math.Pow(10, float64(n))
	return math.RoundToEven(f*p) / p, nil
}

// IntrinsicAny is an intrinsic.
//
// any reports whether any element of a collection is truthy.
func IntrinsicAny(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("any", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := iterate(args[0])
	if err != nil {
		return nil, err
	}
	return slices.ContainsFunc(elems, Truthy), nil
}

// IntrinsicAll is an intrinsic.
//
// all reports whether every element of a collection is truthy.
func IntrinsicAll(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("all", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := iterate(args[0])
	if err != nil {
		return nil, err
	}
	return !slices.ContainsFunc(elems, func(v Value) bool { return !Truthy(v) }), nil
}

// IntrinsicRepr is an intrinsic.
//
// repr returns the source form of its argument, with strings quoted.
func IntrinsicRepr(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("repr", args, 1, 1); err != nil {
		return nil, err
	}
	if s, ok := args[0].(string); ok {
		return quoteString(s), nil
	}
	return Repr(args[0]), nil
}

// IntrinsicChr is an intrinsic.
//
// chr returns the one-character string with a code point.
func IntrinsicChr(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("chr", args, 1, 1); err != nil {
		return nil, err
	}
	n, ok := toInt(args[0])
	if !ok {
		return nil, fmt.Errorf("chr() argument must be int, not %s", TypeName(args[0]))
	}
	if n < 0 || n > 0x10ffff {
		return nil, fmt.Errorf("chr() arg not in range(0x110000)")
	}
	return string(rune(n)), nil
}

// IntrinsicOrd is an intrinsic.
//
// ord returns the code point of a one-character string.
func IntrinsicOrd(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("ord", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := stringArg("ord", args, 0)
	if err != nil {
		return nil, err
	}
	r := []rune(s)
	if len(r) != 1 {
		return nil, fmt.Errorf("ord() expected a character, but string of length %d found", len(r))
	}
	return int(r[0]), nil
}

// IntrinsicGetattr is an intrinsic.
//
// getattr returns a named member of a value, or a default if one is given
// and the member does not exist.
func IntrinsicGetattr(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("getattr", args, 2, 3); err != nil {
		return nil, err
	}
	name, err := stringArg("getattr", args, 1)
	if err != nil {
		return nil, err
	}
	v, err := getMember(args[0], name)
	if err != nil && len(args) == 3 {
		return args[2], nil
	}
	return v, err
}

// IntrinsicHasattr is an intrinsic.
//
// hasattr reports whether a value has a named member.
func IntrinsicHasattr(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("hasattr", args, 2, 2); err != nil {
		return nil, err
	}
	name, err := stringArg("hasattr", args, 1)
	if err != nil {
		return nil, err
	}
	return hasMember(args[0], name), nil
}

// IntrinsicEnumerate is an intrinsic.
//
// enumerate returns a list of (index element) pairs, counting from start,
// 0 by default.
func IntrinsicEnumerate(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("enumerate", args, 1, 2); err != nil {
		return nil, err
	}
	elems, err := iterate(args[0])
	if err != nil {
		return nil, err
	}
	start := 0
	if len(args) == 2 {
		var ok bool
		if start, ok = toInt(args[1]); !ok {
			return nil, fmt.Errorf("enumerate start must be int, not %s", TypeName(args[1]))
		}
	}
	r := make([]Value, len(elems))
	for i, x := range elems {
		r[i] = NewList(start+i, x)
	}
	return NewList(r...), nil
}

// IntrinsicKeys is an intrinsic.
//
// keys returns a list of the keys of a dict, or the member names of a
// module.
func IntrinsicKeys(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("keys", args, 1, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case *Dict:
		return NewList(x.Keys()...), nil
	case *Module:
		names := x.MemberNames()
		r := make([]Value, len(names))
		for i, n := range names {
			r[i] = n
		}
		return NewList(r...), nil
	}
	return nil, fmt.Errorf("%s object has no keys", TypeName(args[0]))
}

// IntrinsicValues is an intrinsic.
//
// values returns a list of the values of a dict.
func IntrinsicValues(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("values", args, 1, 1); err != nil {
		return nil, err
	}
	d, ok := args[0].(*Dict)
	if !ok {
		return nil, fmt.Errorf("%s object has no values", TypeName(args[0]))
	}
	return NewList(d.Values()...), nil
}
