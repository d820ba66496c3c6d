// Package codecs provides the codecs host module, converting between strings
// and byte lists in various character encodings.
package codecs

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/zephyrtronium/lispy"
)

func init() {
	lispy.RegisterModule(lispy.NewModule("codecs", map[string]any{
		"encode": Encode,
		"decode": Decode,
		"names":  Names,
	}))
}

// encodings maps normalized encoding names to encodings.
var encodings = map[string]encoding.Encoding{
	"utf8":      unicode.UTF8,
	"utf16":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf16le":   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf16be":   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf32":     utf32.UTF32(utf32.LittleEndian, utf32.UseBOM),
	"utf32le":   utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
	"utf32be":   utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
	"latin1":    charmap.ISO8859_1,
	"iso88591":  charmap.ISO8859_1,
	"iso88592":  charmap.ISO8859_2,
	"iso885915": charmap.ISO8859_15,
	"cp1250":    charmap.Windows1250,
	"cp1251":    charmap.Windows1251,
	"cp1252":    charmap.Windows1252,
	"cp437":     charmap.CodePage437,
	"cp850":     charmap.CodePage850,
	"koi8r":     charmap.KOI8R,
	"macroman":  charmap.Macintosh,
}

// Lookup finds an encoding by name. Case, hyphens, and underscores in the
// name are ignored.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || r == ' ' {
			return -1
		}
		return r
	}, strings.ToLower(name))
	if e, ok := encodings[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("unknown encoding: %s", name)
}

// encodingArg returns the encoding named by the nth argument, or UTF-8 if
// there are not that many arguments.
func encodingArg(name string, args []lispy.Value, n int) (encoding.Encoding, error) {
	if len(args) <= n {
		return unicode.UTF8, nil
	}
	s, ok := args[n].(string)
	if !ok {
		return nil, fmt.Errorf("argument %d to %s must be str, not %s", n, name, lispy.TypeName(args[n]))
	}
	return Lookup(s)
}

// Encode is a codecs function.
//
// encode converts a string to a list of byte values in an encoding, UTF-8 by
// default.
func Encode(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("encode takes 1 or 2 arguments (%d given)", len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("argument 0 to encode must be str, not %s", lispy.TypeName(args[0]))
	}
	e, err := encodingArg("encode", args, 1)
	if err != nil {
		return nil, err
	}
	b, err := e.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	r := make([]lispy.Value, len(b))
	for i, c := range b {
		r[i] = int(c)
	}
	return lispy.NewList(r...), nil
}

// Decode is a codecs function.
//
// decode converts a list of byte values in an encoding, UTF-8 by default, to
// a string.
func Decode(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("decode takes 1 or 2 arguments (%d given)", len(args))
	}
	l, ok := args[0].(*lispy.List)
	if !ok {
		return nil, fmt.Errorf("argument 0 to decode must be list, not %s", lispy.TypeName(args[0]))
	}
	b := make([]byte, len(l.Items))
	for i, x := range l.Items {
		c, ok := x.(int)
		if !ok || c < 0 || c > 255 {
			return nil, fmt.Errorf("decode: element %d is not a byte: %s", i, lispy.Repr(x))
		}
		b[i] = byte(c)
	}
	e, err := encodingArg("decode", args, 1)
	if err != nil {
		return nil, err
	}
	s, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return string(s), nil
}

// Names is a codecs function.
//
// names returns a sorted list of the supported encoding names.
func Names(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	names := make([]string, 0, len(encodings))
	for k := range encodings {
		names = append(names, k)
	}
	sort.Strings(names)
	r := make([]lispy.Value, len(names))
	for i, k := range names {
		r[i] = k
	}
	return lispy.NewList(r...), nil
}
