package lispy

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is any value a program can hold. The interpreter produces nil, bool,
// int, *big.Int, float64, string, Symbol, Token, *List, *Dict, *Function,
// *Lambda, *Macro, *Builtin, and *Module values; host modules may introduce
// others, which pass through evaluation untouched.
type Value = any

// A Symbol is a bare name used as data, as produced by quote or by an
// unbound operator token.
type Symbol string

// String returns the symbol's name.
func (s Symbol) String() string {
	return string(s)
}

// A List is an ordered sequence of values. Parsed code, quoted data, and
// patterns are all Lists.
type List struct {
	Items []Value
	// Label and Line locate the list's opening paren in source, if it was
	// parsed.
	Label string
	Line  int
}

// NewList creates a List with the given items.
func NewList(items ...Value) *List {
	if items == nil {
		items = []Value{}
	}
	return &List{Items: items}
}

// Len returns the number of items in the list.
func (l *List) Len() int {
	return len(l.Items)
}

// String creates a string representation of the list.
func (l *List) String() string {
	return Repr(l)
}

// Truthy reports whether a value counts as true in a condition. nil, false,
// numeric zeros, empty strings, and empty lists and dicts are false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case *big.Int:
		return v.Sign() != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case *List:
		return len(v.Items) != 0
	case *Dict:
		return v.Len() != 0
	case Token:
		return Truthy(v.Value)
	}
	return true
}

// Equal reports whether two values are equal. Numbers compare by value
// across representations, and lists and dicts compare elementwise.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if isNumber(a) && isNumber(b) {
		c, ok := compareNumbers(a, b)
		return ok && c == 0
	}
	switch a := a.(type) {
	case *List:
		b, ok := b.(*List)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}
		for i, x := range a.Items {
			if !Equal(x, b.Items[i]) {
				return false
			}
		}
		return true
	case *Dict:
		b, ok := b.(*Dict)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, e := range a.entries {
			v, ok := b.Get(e.key)
			if !ok || !Equal(e.value, v) {
				return false
			}
		}
		return true
	case Token:
		return Equal(a.Value, b)
	}
	if t, ok := b.(Token); ok {
		return Equal(a, t.Value)
	}
	defer func() {
		// Uncomparable host values are simply unequal.
		recover()
	}()
	return a == b
}

// Repr returns the printed form of a value. Lists print in parentheses with
// their items separated by spaces, and strings print without quotes.
func Repr(v Value) string {
	var b strings.Builder
	writeRepr(&b, v, -1)
	return b.String()
}

// ShortRepr is like Repr, but nested lists print as (...).
func ShortRepr(v Value) string {
	var b strings.Builder
	writeRepr(&b, v, 1)
	return b.String()
}

// writeRepr writes the representation of v to b. Lists nested deeper than
// depth are elided; negative depth means no limit.
func writeRepr(b *strings.Builder, v Value, depth int) {
	switch v := v.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case int:
		b.WriteString(strconv.Itoa(v))
	case *big.Int:
		b.WriteString(v.String())
	case float64:
		b.WriteString(formatFloat(v))
	case string:
		b.WriteString(v)
	case Symbol:
		b.WriteString(string(v))
	case Token:
		b.WriteString(v.Text)
	case *List:
		if depth == 0 {
			b.WriteString("(...)")
			return
		}
		b.WriteByte('(')
		for i, x := range v.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeRepr(b, x, depth-1)
		}
		b.WriteByte(')')
	case *Dict:
		if depth == 0 {
			b.WriteString("{...}")
			return
		}
		b.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, e.key, depth-1)
			b.WriteString(": ")
			writeRepr(b, e.value, depth-1)
		}
		b.WriteByte('}')
	case fmt.Stringer:
		b.WriteString(v.String())
	default:
		fmt.Fprint(b, v)
	}
}

var escaper = strings.NewReplacer(`"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// quoteString returns s as a string literal.
func quoteString(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// formatFloat formats a float so that integral values keep a decimal point.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".en") {
		s += ".0"
	}
	return s
}

// TypeName returns the name of a value's type as programs see it.
func TypeName(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case int, *big.Int:
		return "int"
	case float64:
		return "float"
	case string:
		return "str"
	case Symbol:
		return "symbol"
	case Token:
		return TypeName(v.Value)
	case *List:
		return "list"
	case *Dict:
		return "dict"
	case *Function:
		return "function"
	case *Lambda:
		return "lambda"
	case *Macro:
		return "macro"
	case *Builtin:
		return "builtin"
	case *Module:
		return "module"
	}
	return fmt.Sprintf("%T", v)
}

// datum converts parsed code to data: tokens become their literal values or
// Symbols, and lists are copied.
func datum(v Value) Value {
	switch v := v.(type) {
	case Token:
		if v.Kind == Literal {
			return v.Value
		}
		return Symbol(v.Text)
	case *List:
		items := make([]Value, len(v.Items))
		for i, x := range v.Items {
			items[i] = datum(x)
		}
		return &List{Items: items, Label: v.Label, Line: v.Line}
	}
	return v
}

// atomText returns the name of a token or symbol.
func atomText(v Value) (string, bool) {
	switch v := v.(type) {
	case Token:
		if v.Kind == Literal {
			return "", false
		}
		return v.Text, true
	case Symbol:
		return string(v), true
	}
	return "", false
}

// atomKind returns the lexical kind of a token or symbol.
func atomKind(v Value) TokenKind {
	switch v := v.(type) {
	case Token:
		return v.Kind
	case Symbol:
		if v == "" {
			return Other
		}
		return guessKind(rune(v[0]))
	}
	return badToken
}

// isMarker reports whether v is the atom with the given text.
func isMarker(v Value, text string) bool {
	s, ok := atomText(v)
	return ok && s == text
}
