package lispy

import (
	"errors"
	"io"
	"iter"
	"strings"
)

// Parse converts source code into a sequence of top-level expressions. Each
// expression is either a Token or a *List. label names the source in
// diagnostics.
//
// A closing paren with no matching open ends parsing early. The only syntax
// error is a difference between the total numbers of opening and closing
// parens, reported as a SyntaxError wrapping an *UnbalancedError.
func Parse(src io.Reader, label string) ([]Value, error) {
	return ParseTokens(Lex(src), label)
}

// ParseString parses a string.
func ParseString(src, label string) ([]Value, error) {
	return Parse(strings.NewReader(src), label)
}

// ParseTokens builds expressions from a token sequence.
func ParseTokens(tokens iter.Seq[Token], label string) ([]Value, error) {
	var (
		top          []Value
		open         []*List
		nopen, nshut int
	)
	// add appends an expression to the innermost open list, or to the
	// top-level sequence if none is open.
	add := func(v Value) {
		if len(open) == 0 {
			top = append(top, v)
			return
		}
		l := open[len(open)-1]
		l.Items = append(l.Items, v)
	}
loop:
	for tok := range tokens {
		switch tok.Kind {
		case badToken:
			return nil, &Error{Kind: SyntaxErrorKind, Msg: tok.Text, Err: errors.New(tok.Text)}
		case ExprBegin:
			nopen++
			open = append(open, &List{Items: []Value{}, Label: label, Line: tok.Line})
		case ExprEnd:
			nshut++
			if len(open) == 0 {
				break loop
			}
			l := open[len(open)-1]
			open = open[:len(open)-1]
			add(l)
		default:
			add(tok)
		}
	}
	if nopen != nshut {
		ue := &UnbalancedError{Open: nopen, Closed: nshut}
		return nil, &Error{Kind: SyntaxErrorKind, Msg: ue.Error(), Err: ue}
	}
	return top, nil
}
