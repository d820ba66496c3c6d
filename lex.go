package lispy

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// A Token is a single lexical element. Parsed programs hold Tokens as the
// atoms of their expressions.
type Token struct {
	Kind TokenKind
	// Text is the token's source text.
	Text string
	// Value is the token's literal value if it has one, otherwise its text.
	Value Value

	Line, Col int
}

// TokenKind is the lexical class of a token.
type TokenKind int

const (
	badToken TokenKind = iota

	ExprBegin  // (
	ExprEnd    // )
	Literal    // number, boolean, or string, or anything starting like one
	Identifier // name starting with a letter or underscore
	Other      // operators and punctuation
)

var tokenKindNames = [...]string{"badToken", "ExprBegin", "ExprEnd", "Literal", "Identifier", "Other"}

// String returns the name of a token kind.
func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// String returns the token's source text.
func (t Token) String() string {
	return t.Text
}

const (
	// splitBefore holds runes which end a token when an alphanumeric rune
	// follows them.
	splitBefore = "*&=/<>"
	// splitAfter holds runes which start a new token when they follow an
	// alphanumeric rune.
	splitAfter = "-+*/&=><"
)

// guessKind determines a token's kind from its first rune.
func guessKind(r rune) TokenKind {
	switch {
	case r == '(':
		return ExprBegin
	case r == ')':
		return ExprEnd
	case r == '"' || r == '.' || '0' <= r && r <= '9':
		return Literal
	case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		return Identifier
	}
	return Other
}

// pending is a token under construction.
type pending struct {
	b         strings.Builder
	kind      TokenKind
	last      rune
	line, col int
}

func (p *pending) add(r rune) {
	p.b.WriteRune(r)
	p.last = r
}

// finish converts the pending token to a Token, coercing literals.
func (p *pending) finish() Token {
	text := p.b.String()
	tok := Token{Kind: p.kind, Text: text, Value: text, Line: p.line, Col: p.col}
	if p.kind == ExprBegin || p.kind == ExprEnd {
		return tok
	}
	if v, ok := parseLiteral(text); ok {
		tok.Kind = Literal
		tok.Value = v
	} else if text == "." {
		// A lone dot is the member access operator, not a number.
		tok.Kind = Other
	}
	return tok
}

// lexer holds the state of a lexer between runes.
type lexer struct {
	src       *bufio.Reader
	cur       *pending
	quoted    bool
	prev      rune
	line, col int
}

// Lex converts a source into a lazy sequence of tokens. Each iteration of the
// returned sequence reads from src where the last one stopped. A read error
// other than io.EOF ends the sequence with a badToken carrying the error
// text.
func Lex(src io.Reader) iter.Seq[Token] {
	l := &lexer{src: bufio.NewReader(src), line: 1, col: 0}
	return l.tokens
}

// LexString lexes a string. The returned sequence restarts from the
// beginning of the string each time it is iterated.
func LexString(src string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		Lex(strings.NewReader(src))(yield)
	}
}

func (l *lexer) tokens(yield func(Token) bool) {
	for {
		r, _, err := l.src.ReadRune()
		if err != nil {
			if l.cur != nil {
				tok := l.cur.finish()
				l.cur = nil
				if !yield(tok) {
					return
				}
			}
			if !errors.Is(err, io.EOF) {
				yield(Token{Kind: badToken, Text: err.Error(), Value: err.Error(), Line: l.line, Col: l.col})
			}
			return
		}
		if !l.lexRune(r, yield) {
			return
		}
	}
}

// lexRune advances the lexer by one rune. It returns false if the consumer
// stopped the sequence.
func (l *lexer) lexRune(r rune, yield func(Token) bool) bool {
	if l.prev == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	defer func() { l.prev = r }()
	start, single, closes := badToken, false, false
	switch {
	case r == '(' || r == ')':
		start, single = guessKind(r), true
	case r == '"' && !l.quoted:
		start = Literal
		l.quoted = true
	case r == '"' && l.prev != '\\':
		l.quoted = false
		if l.cur == nil {
			l.cur = &pending{kind: Literal, line: l.line, col: l.col}
		}
		l.cur.add(r)
		closes = true
	case !l.quoted && unicode.IsSpace(r):
		closes = true
	case l.cur == nil:
		start = guessKind(r)
	case !l.quoted && (isAlnum(l.cur.last) && strings.ContainsRune(splitAfter, r) || strings.ContainsRune(splitBefore, l.cur.last) && isAlnum(r)):
		start = guessKind(r)
	}
	if start == badToken && !closes {
		l.cur.add(r)
		return true
	}
	if l.cur != nil {
		tok := l.cur.finish()
		l.cur = nil
		if !yield(tok) {
			return false
		}
	}
	if closes {
		return true
	}
	l.cur = &pending{kind: start, line: l.line, col: l.col}
	l.cur.add(r)
	if single {
		tok := l.cur.finish()
		l.cur = nil
		return yield(tok)
	}
	return true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parseLiteral attempts to coerce token text to an integer, float, boolean,
// or string, in that order.
func parseLiteral(text string) (Value, bool) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	} else if errors.Is(err, strconv.ErrRange) {
		if b, ok := new(big.Int).SetString(text, 10); ok {
			return b, true
		}
	}
	if f, ok := parseFloat(text); ok {
		return f, true
	}
	switch text {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	if len(text) > 0 && text[0] == '"' && text[len(text)-1] == '"' {
		inner := ""
		if len(text) > 1 {
			inner = text[1 : len(text)-1]
		}
		return unescaper.Replace(inner), true
	}
	return nil, false
}

func parseFloat(text string) (float64, bool) {
	s := strings.TrimLeft(text, "+-")
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") || strings.Contains(s, "_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

var unescaper = strings.NewReplacer(`\"`, `"`, `\n`, "\n", `\t`, "\t", `\r`, "\r")
