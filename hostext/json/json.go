// Package json provides the json host module, converting between lispy
// values and JSON text.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/lispy"
)

func init() {
	lispy.RegisterModule(lispy.NewModule("json", map[string]any{
		"loads": Loads,
		"dumps": Dumps,
	}))
}

// Loads is a json function.
//
// loads parses a JSON document. Objects become dicts with their keys in
// document order, arrays become lists, and null becomes nil.
func Loads(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("loads takes exactly 1 argument (%d given)", len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("the JSON object must be str, not %s", lispy.TypeName(args[0]))
	}
	return Decode(strings.NewReader(s))
}

// Decode reads a single JSON document from r.
func Decode(r io.Reader) (lispy.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("json: extra data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (lispy.Value, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := t.(type) {
	case json.Delim:
		switch t {
		case '[':
			var items []lispy.Value
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return lispy.NewList(items...), nil
		case '{':
			d := lispy.NewDict()
			for dec.More() {
				k, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				if err := d.Set(k.(string), v); err != nil {
					return nil, err
				}
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return d, nil
		}
		return nil, fmt.Errorf("unexpected %v", t)
	case json.Number:
		return number(string(t))
	case string, bool, nil:
		return t, nil
	}
	return nil, fmt.Errorf("unexpected token %v", t)
}

// number converts a JSON number to an int, a big integer, or a float.
func number(s string) (lispy.Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b, nil
		}
	}
	return strconv.ParseFloat(s, 64)
}

// Dumps is a json function.
//
// dumps serializes a value as JSON. If an indent is given, nested values are
// placed on their own lines, indented by that many spaces per level.
func Dumps(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("dumps takes 1 or 2 arguments (%d given)", len(args))
	}
	indent := -1
	if len(args) == 2 && args[1] != nil {
		n, ok := args[1].(int)
		if !ok || n < 0 {
			return nil, fmt.Errorf("dumps indent must be a non-negative int, not %s", lispy.Repr(args[1]))
		}
		indent = n
	}
	b, err := Encode(args[0], indent)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Encode serializes v as JSON. If indent is negative, the output is on one
// line with a space after each separator.
func Encode(v lispy.Value, indent int) ([]byte, error) {
	e := encoder{item: ", ", key: ": "}
	if indent >= 0 {
		e.item, e.key = ",", ":"
	}
	if err := e.encode(v); err != nil {
		return nil, err
	}
	if indent < 0 {
		return e.buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, e.buf.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type encoder struct {
	buf       bytes.Buffer
	item, key string
}

func (e *encoder) encode(v lispy.Value) error {
	switch v := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(v))
	case int:
		e.buf.WriteString(strconv.Itoa(v))
	case *big.Int:
		e.buf.WriteString(v.String())
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("json: out of range float value %v", v)
		}
		e.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		e.str(v)
	case lispy.Symbol:
		e.str(string(v))
	case lispy.Token:
		return e.encode(v.Value)
	case *lispy.List:
		e.buf.WriteByte('[')
		for i, x := range v.Items {
			if i > 0 {
				e.buf.WriteString(e.item)
			}
			if err := e.encode(x); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case *lispy.Dict:
		e.buf.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				e.buf.WriteString(e.item)
			}
			switch k.(type) {
			case string:
				e.str(k.(string))
			case nil, bool, int, *big.Int, float64:
				e.str(lispy.Repr(k))
			default:
				return fmt.Errorf("json: keys must be str, int, float, bool or nil, not %s", lispy.TypeName(k))
			}
			e.buf.WriteString(e.key)
			x, _ := v.Get(k)
			if err := e.encode(x); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
	default:
		return fmt.Errorf("json: object of type %s is not JSON serializable", lispy.TypeName(v))
	}
	return nil
}

func (e *encoder) str(s string) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.Encode(s)
	e.buf.Write(bytes.TrimSuffix(b.Bytes(), []byte{'\n'}))
}
