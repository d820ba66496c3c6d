package lispy

import "fmt"

// ListAppend is a List method.
//
// append adds an item to the end of the list.
func ListAppend(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("append", args, 1, 1); err != nil {
		return nil, err
	}
	l := target.(*List)
	l.Items = append(l.Items, args[0])
	return nil, nil
}

// ListExtend is a List method.
//
// extend adds each element of a collection to the end of the list.
func ListExtend(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("extend", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := iterate(args[0])
	if err != nil {
		return nil, err
	}
	l := target.(*List)
	l.Items = append(l.Items, elems...)
	return nil, nil
}

// ListPop is a List method.
//
// pop removes and returns the item at an index, by default the last.
func ListPop(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("pop", args, 0, 1); err != nil {
		return nil, err
	}
	l := target.(*List)
	if len(l.Items) == 0 {
		return nil, fmt.Errorf("pop from empty list")
	}
	i := len(l.Items) - 1
	if len(args) == 1 {
		var err error
		if i, err = index(args[0], len(l.Items)); err != nil {
			return nil, err
		}
	}
	v := l.Items[i]
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	return v, nil
}

// ListInsert is a List method.
//
// insert inserts an item before an index. Indices past either end insert at
// that end.
func ListInsert(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("insert", args, 2, 2); err != nil {
		return nil, err
	}
	l := target.(*List)
	i, ok := toInt(args[0])
	if !ok {
		return nil, fmt.Errorf("list indices must be integers, not %s", TypeName(args[0]))
	}
	if i < 0 {
		i += len(l.Items)
	}
	i = max(0, min(i, len(l.Items)))
	l.Items = append(l.Items, nil)
	copy(l.Items[i+1:], l.Items[i:])
	l.Items[i] = args[1]
	return nil, nil
}

// ListIndex is a List method.
//
// index returns the index of the first item equal to the argument.
func ListIndex(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("index", args, 1, 1); err != nil {
		return nil, err
	}
	for i, x := range target.(*List).Items {
		if Equal(x, args[0]) {
			return i, nil
		}
	}
	return nil, fmt.Errorf("%s is not in list", Repr(args[0]))
}

// ListCount is a List method.
//
// count returns the number of items equal to the argument.
func ListCount(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("count", args, 1, 1); err != nil {
		return nil, err
	}
	n := 0
	for _, x := range target.(*List).Items {
		if Equal(x, args[0]) {
			n++
		}
	}
	return n, nil
}

// ListReverse is a List method.
//
// reverse reverses the list in place.
func ListReverse(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	l := target.(*List).Items
	for i, j := 0, len(l)-1; i < j; i, j = i+1, j-1 {
		l[i], l[j] = l[j], l[i]
	}
	return nil, nil
}

// ListCopy is a List method.
//
// copy returns a shallow copy of the list.
func ListCopy(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return NewList(append([]Value(nil), target.(*List).Items...)...), nil
}

// index converts an index argument to a position in a sequence of length n,
// counting negative indices from the end.
func index(v Value, n int) (int, error) {
	i, ok := toInt(v)
	if !ok {
		return 0, fmt.Errorf("indices must be integers, not %s", TypeName(v))
	}
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index out of range")
	}
	return i, nil
}
