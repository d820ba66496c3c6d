package lispy

// quoteFrame builds literal data from its argument forms. A ~ before a form
// at any depth evaluates that form in the quoting environment and uses its
// value in place of the form. The lexer keeps ~ attached to a following atom,
// so ~x is one token which unquotes x.
type quoteFrame struct {
	frameBase
	levels []quoteLevel
	// unquoting is true while waiting for the value of an unquoted form.
	unquoting bool
}

// quoteLevel is a list being copied.
type quoteLevel struct {
	src  *List
	out  []Value
	next int
}

func startQuote(in *Interpreter, expr *List, env *Env) (Value, frame, error) {
	src := &List{Items: expr.Items[1:], Label: expr.Label, Line: expr.Line}
	f := &quoteFrame{frameBase: frameBase{expr, env}}
	f.push(src)
	return nil, f, nil
}

func (f *quoteFrame) push(l *List) {
	f.levels = append(f.levels, quoteLevel{src: l, out: make([]Value, 0, len(l.Items))})
}

func (f *quoteFrame) resume(in *Interpreter, v Value) (cont, error) {
	if f.unquoting {
		top := &f.levels[len(f.levels)-1]
		top.out = append(top.out, v)
		f.unquoting = false
	}
	for {
		top := &f.levels[len(f.levels)-1]
		if top.next >= len(top.src.Items) {
			done := &List{Items: top.out, Label: top.src.Label, Line: top.src.Line}
			f.levels = f.levels[:len(f.levels)-1]
			if len(f.levels) == 0 {
				return finished(done), nil
			}
			parent := &f.levels[len(f.levels)-1]
			parent.out = append(parent.out, done)
			continue
		}
		item := top.src.Items[top.next]
		switch {
		case isMarker(item, "~"):
			if top.next+1 >= len(top.src.Items) {
				return cont{}, runtimeErrorf("nothing to unquote after ~ in %s", ShortRepr(top.src))
			}
			top.next += 2
			f.unquoting = true
			return needsEval(top.src.Items[top.next-1], f.env), nil
		case isList(item):
			top.next++
			f.push(item.(*List))
		case isFusedUnquote(item):
			top.next++
			f.unquoting = true
			return needsEval(unquotedAtom(item.(Token)), f.env), nil
		default:
			top.next++
			top.out = append(top.out, datum(item))
		}
	}
}

func isFusedUnquote(v Value) bool {
	tok, ok := v.(Token)
	return ok && tok.Kind == Other && len(tok.Text) > 1 && tok.Text[0] == '~'
}

// unquotedAtom relexes the text after the ~ of a fused unquote token. Text
// which does not lex to a single token is kept as a name.
func unquotedAtom(tok Token) Token {
	text := tok.Text[1:]
	var r []Token
	for t := range LexString(text) {
		r = append(r, t)
	}
	if len(r) == 1 && r[0].Kind != badToken {
		tok.Kind, tok.Text, tok.Value = r[0].Kind, r[0].Text, r[0].Value
	} else {
		tok.Kind, tok.Text, tok.Value = Other, text, text
	}
	tok.Col++
	return tok
}

func isList(v Value) bool {
	_, ok := v.(*List)
	return ok
}
