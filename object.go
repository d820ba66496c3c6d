package lispy

import (
	"fmt"
	"strings"
)

// Member tables for builtin types. Each Fn receives its receiver as target.
var (
	stringMembers map[string]*Builtin
	listMembers   map[string]*Builtin
	dictMembers   map[string]*Builtin
)

func init() {
	stringMembers = builtinTable(map[string]Fn{
		"count":      StringCount,
		"endswith":   StringEndswith,
		"find":       StringFind,
		"format":     StringFormat,
		"join":       StringJoin,
		"lower":      StringLower,
		"lstrip":     StringLstrip,
		"replace":    StringReplace,
		"rstrip":     StringRstrip,
		"split":      StringSplit,
		"startswith": StringStartswith,
		"strip":      StringStrip,
		"upper":      StringUpper,
	})
	listMembers = builtinTable(map[string]Fn{
		"append":  ListAppend,
		"copy":    ListCopy,
		"count":   ListCount,
		"extend":  ListExtend,
		"index":   ListIndex,
		"insert":  ListInsert,
		"pop":     ListPop,
		"reverse": ListReverse,
	})
	dictMembers = builtinTable(map[string]Fn{
		"copy":   DictCopy,
		"get":    DictGet,
		"items":  DictItems,
		"keys":   DictKeys,
		"pop":    DictPop,
		"update": DictUpdate,
		"values": DictValues,
	})
}

// builtinTable wraps each function in a table as a Builtin of the same name.
func builtinTable(fns map[string]Fn) map[string]*Builtin {
	r := make(map[string]*Builtin, len(fns))
	for name, f := range fns {
		r[name] = NewBuiltin(name, f)
	}
	return r
}

// getMember accesses a named member of a value. Methods of strings, lists,
// and dicts are returned bound to their receiver.
func getMember(v Value, name string) (Value, error) {
	var table map[string]*Builtin
	switch x := v.(type) {
	case string:
		table = stringMembers
	case *List:
		table = listMembers
	case *Dict:
		table = dictMembers
	case Token:
		return getMember(x.Value, name)
	case HasMembers:
		if r, ok := x.Member(name); ok {
			return r, nil
		}
	}
	if b := table[name]; b != nil {
		return b.Bind(v), nil
	}
	return nil, &Error{Kind: HostErrorKind, Msg: fmt.Sprintf("%s object has no attribute %s", TypeName(v), name), Name: name}
}

// hasMember reports whether getMember would succeed.
func hasMember(v Value, name string) bool {
	_, err := getMember(v, name)
	return err == nil
}

// containsItem reports whether item is in coll: an equal element of a list, a
// substring of a string, or a key of a dict or module.
func containsItem(coll, item Value) (Value, error) {
	switch c := coll.(type) {
	case *List:
		for _, x := range c.Items {
			if Equal(x, item) {
				return true, nil
			}
		}
		return false, nil
	case string:
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("'in <string>' requires string as left operand, not %s", TypeName(item))
		}
		return strings.Contains(c, s), nil
	case *Dict:
		_, ok := c.Get(item)
		return ok, nil
	case *Module:
		name, ok := item.(string)
		if !ok {
			return false, nil
		}
		_, ok = c.Member(name)
		return ok, nil
	case Token:
		return containsItem(c.Value, item)
	}
	return nil, fmt.Errorf("argument of type %s is not iterable", TypeName(coll))
}

// argRange checks that a builtin received between min and max arguments.
// max < 0 means no upper bound.
func argRange(name string, args []Value, min, max int) error {
	switch {
	case len(args) < min && min == max:
		return fmt.Errorf("%s takes exactly %d arguments (%d given)", name, min, len(args))
	case len(args) < min:
		return fmt.Errorf("%s takes at least %d arguments (%d given)", name, min, len(args))
	case max >= 0 && len(args) > max && min == max:
		return fmt.Errorf("%s takes exactly %d arguments (%d given)", name, max, len(args))
	case max >= 0 && len(args) > max:
		return fmt.Errorf("%s takes at most %d arguments (%d given)", name, max, len(args))
	}
	return nil
}
