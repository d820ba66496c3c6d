package lispy

import (
	"fmt"
	"math"
	"math/big"
)

// A Dict is a mapping from hashable values to values which remembers
// insertion order.
type Dict struct {
	entries []dictEntry
	index   map[any]int
}

type dictEntry struct {
	key, value Value
}

// bigKey is the hash key of a big integer.
type bigKey string

// NewDict creates an empty Dict.
func NewDict() *Dict {
	return &Dict{index: make(map[any]int)}
}

// hashKey returns the Go map key for a value. Numbers that compare equal
// have the same key.
func hashKey(v Value) (any, error) {
	switch v := v.(type) {
	case nil, bool, int, string, Symbol:
		return v, nil
	case *big.Int:
		if n, ok := normBig(v).(int); ok {
			return n, nil
		}
		return bigKey(v.String()), nil
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int(v), nil
		}
		return v, nil
	case Token:
		return hashKey(v.Value)
	}
	return nil, fmt.Errorf("unhashable type: %s", TypeName(v))
}

// Len returns the number of entries in the dict.
func (d *Dict) Len() int {
	return len(d.entries)
}

// Get returns the value for a key.
func (d *Dict) Get(key Value) (Value, bool) {
	k, err := hashKey(key)
	if err != nil {
		return nil, false
	}
	i, ok := d.index[k]
	if !ok {
		return nil, false
	}
	return d.entries[i].value, true
}

// Set sets the value for a key.
func (d *Dict) Set(key, value Value) error {
	k, err := hashKey(key)
	if err != nil {
		return err
	}
	if i, ok := d.index[k]; ok {
		d.entries[i].value = value
		return nil
	}
	d.index[k] = len(d.entries)
	d.entries = append(d.entries, dictEntry{key, value})
	return nil
}

// Delete removes a key, returning its value.
func (d *Dict) Delete(key Value) (Value, bool) {
	k, err := hashKey(key)
	if err != nil {
		return nil, false
	}
	i, ok := d.index[k]
	if !ok {
		return nil, false
	}
	v := d.entries[i].value
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, k)
	for j := i; j < len(d.entries); j++ {
		k, _ := hashKey(d.entries[j].key)
		d.index[k] = j
	}
	return v, true
}

// Keys returns the dict's keys in insertion order.
func (d *Dict) Keys() []Value {
	r := make([]Value, len(d.entries))
	for i, e := range d.entries {
		r[i] = e.key
	}
	return r
}

// Values returns the dict's values in insertion order.
func (d *Dict) Values() []Value {
	r := make([]Value, len(d.entries))
	for i, e := range d.entries {
		r[i] = e.value
	}
	return r
}

// Copy returns a shallow copy of the dict.
func (d *Dict) Copy() *Dict {
	n := NewDict()
	for _, e := range d.entries {
		n.Set(e.key, e.value)
	}
	return n
}

// String creates a string representation of the dict.
func (d *Dict) String() string {
	return Repr(d)
}

// DictGet is a Dict method.
//
// get returns the value at a key, or a default (nil if not given) if the key
// is absent.
func DictGet(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("get", args, 1, 2); err != nil {
		return nil, err
	}
	if v, ok := target.(*Dict).Get(args[0]); ok {
		return v, nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	return nil, nil
}

// DictKeys is a Dict method.
//
// keys returns a list of the dict's keys.
func DictKeys(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return NewList(target.(*Dict).Keys()...), nil
}

// DictValues is a Dict method.
//
// values returns a list of the dict's values.
func DictValues(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return NewList(target.(*Dict).Values()...), nil
}

// DictItems is a Dict method.
//
// items returns a list of (key value) lists.
func DictItems(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	d := target.(*Dict)
	r := make([]Value, len(d.entries))
	for i, e := range d.entries {
		r[i] = NewList(e.key, e.value)
	}
	return NewList(r...), nil
}

// DictPop is a Dict method.
//
// pop removes a key and returns its value, or the default if given.
func DictPop(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("pop", args, 1, 2); err != nil {
		return nil, err
	}
	if v, ok := target.(*Dict).Delete(args[0]); ok {
		return v, nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	return nil, fmt.Errorf("key not found: %s", Repr(args[0]))
}

// DictUpdate is a Dict method.
//
// update copies every entry of another dict into this one.
func DictUpdate(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	if err := argRange("update", args, 1, 1); err != nil {
		return nil, err
	}
	o, ok := args[0].(*Dict)
	if !ok {
		return nil, fmt.Errorf("update argument must be dict, not %s", TypeName(args[0]))
	}
	d := target.(*Dict)
	for _, e := range o.entries {
		d.Set(e.key, e.value)
	}
	return nil, nil
}

// DictCopy is a Dict method.
//
// copy returns a shallow copy of the dict.
func DictCopy(in *Interpreter, env *Env, target Value, args []Value) (Value, error) {
	return target.(*Dict).Copy(), nil
}
