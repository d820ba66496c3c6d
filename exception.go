package lispy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies errors raised by the interpreter.
type ErrorKind int

// Error kinds.
const (
	// NoError is the kind of a nil error.
	NoError ErrorKind = iota
	// SyntaxErrorKind is the kind of unbalanced source, a special form used
	// with the wrong shape, or an invalid identifier where one is required.
	SyntaxErrorKind
	// NameNotFoundKind is the kind of a name which does not resolve anywhere
	// in the lookup chain.
	NameNotFoundKind
	// RuntimeErrorKind is the kind of semantic violations during evaluation:
	// unquote misuse, exhausted matches, destructuring arity mismatches,
	// calls of values which are not callable, and malformed splices.
	RuntimeErrorKind
	// HostErrorKind is the kind of errors from builtins and host modules.
	HostErrorKind
)

var errorKindNames = [...]string{"NoError", "SyntaxError", "NameNotFound", "RuntimeError", "HostError"}

func (k ErrorKind) String() string {
	if k < NoError || k > HostErrorKind {
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
	return errorKindNames[k]
}

// An Error is an error raised by the interpreter.
type Error struct {
	Kind ErrorKind
	Msg  string
	// Name is the unresolved name for NameNotFound errors.
	Name string
	// Err is the underlying error, if any.
	Err error
	// Stack holds the frames which were active when the error occurred,
	// outermost first.
	Stack []StackEntry
}

// A StackEntry describes one suspended frame.
type StackEntry struct {
	// Form is the short form of the expression the frame was evaluating.
	Form string
	// Label and Line locate the expression in source, if known.
	Label string
	Line  int
	// Bindings is a truncated rendering of the frame's own bindings.
	Bindings string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Name != "" {
		fmt.Fprintf(&b, " {name: %s}", e.Name)
	}
	if e.Err != nil && e.Err.Error() != e.Msg {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// An UnbalancedError reports mismatched parentheses in source.
type UnbalancedError struct {
	Open, Closed int
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("unbalanced parentheses (open: %d closed: %d)", e.Open, e.Closed)
}

// Incomplete reports whether more closing parentheses could fix the source.
func (e *UnbalancedError) Incomplete() bool {
	return e.Open > e.Closed
}

// KindOf returns the kind of an error. Errors which did not come from the
// interpreter are host errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return NoError
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return HostErrorKind
}

// syntaxErrorf creates a SyntaxError.
func syntaxErrorf(format string, args ...any) *Error {
	return &Error{Kind: SyntaxErrorKind, Msg: fmt.Sprintf(format, args...)}
}

// runtimeErrorf creates a RuntimeError.
func runtimeErrorf(format string, args ...any) *Error {
	return &Error{Kind: RuntimeErrorKind, Msg: fmt.Sprintf(format, args...)}
}

func nameNotFound(name string) *Error {
	return &Error{Kind: NameNotFoundKind, Msg: "name not found", Name: name}
}

// hostError converts an error from a builtin or host module to an *Error.
// Errors which already are *Error are returned unchanged.
func hostError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: HostErrorKind, Msg: err.Error(), Err: err}
}

// Must panics if err is not nil; otherwise, it returns v.
func Must(v Value, err error) Value {
	if err != nil {
		panic(err)
	}
	return v
}
