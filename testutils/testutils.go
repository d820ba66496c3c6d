// Package testutils provides utilities for testing lispy code in Go.
package testutils

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/lispy"
)

// testInterp is the interpreter used for all tests.
var testInterp *lispy.Interpreter

var testInterpInit sync.Once

// Interpreter returns an interpreter for testing lispy, with the standard
// library loaded. The interpreter is shared by all tests that use this
// package.
func Interpreter() *lispy.Interpreter {
	testInterpInit.Do(ResetInterpreter)
	return testInterp
}

// ResetInterpreter reinitializes the interpreter returned by Interpreter. It
// is not safe to call this in parallel tests.
func ResetInterpreter() {
	testInterp = lispy.NewInterpreter(true, nil)
}

// A SourceTestCase is a test case containing lispy source code and a
// predicate to check the result.
type SourceTestCase struct {
	// Source is the lispy source code to evaluate.
	Source string
	// Pass is a predicate taking the result of evaluating Source. If Pass
	// returns false, then the test fails.
	Pass func(result lispy.Value, err error) bool
}

// TestFunc returns a test function for the test case. This uses Interpreter
// to evaluate the code.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		in := Interpreter()
		r, err := in.EvaluateString(c.Source, name)
		if c.Pass(r, err) {
			return
		}
		if err != nil {
			w := strings.Builder{}
			fmt.Fprintf(&w, "%q produced wrong result; an error occurred:\n", c.Source)
			w.WriteString(in.RenderActiveFrames())
			fmt.Fprint(&w, err)
			t.Error(w.String())
		} else {
			t.Errorf("%q produced wrong result; got %s (%s)", c.Source, lispy.Repr(r), lispy.TypeName(r))
		}
	}
}

// PassEqual returns a Pass function for a SourceTestCase that predicates on
// equality as by the = builtin. If evaluation fails, then the predicate
// returns false.
func PassEqual(want lispy.Value) func(lispy.Value, error) bool {
	return func(result lispy.Value, err error) bool {
		if err != nil {
			return false
		}
		return lispy.Equal(want, result)
	}
}

// PassRepr returns a Pass function for a SourceTestCase that predicates on
// the printed form of the result.
func PassRepr(want string) func(lispy.Value, error) bool {
	return func(result lispy.Value, err error) bool {
		if err != nil {
			return false
		}
		return lispy.Repr(result) == want
	}
}

// PassType returns a Pass function for a SourceTestCase that predicates on
// the type name of the result.
func PassType(want string) func(lispy.Value, error) bool {
	return func(result lispy.Value, err error) bool {
		if err != nil {
			return false
		}
		return lispy.TypeName(result) == want
	}
}

// PassKind returns a Pass function for a SourceTestCase that returns true
// iff evaluation fails with an error of the given kind.
func PassKind(want lispy.ErrorKind) func(lispy.Value, error) bool {
	return func(result lispy.Value, err error) bool {
		return err != nil && lispy.KindOf(err) == want
	}
}

// PassFailure returns a Pass function for a SourceTestCase that returns true
// iff evaluation fails.
func PassFailure() func(lispy.Value, error) bool {
	return func(result lispy.Value, err error) bool {
		return err != nil
	}
}

// PassSuccess returns a Pass function for a SourceTestCase that returns true
// iff evaluation succeeds.
func PassSuccess() func(lispy.Value, error) bool {
	return func(result lispy.Value, err error) bool {
		return err == nil
	}
}

// PassName returns a Pass function for a SourceTestCase that returns true iff
// evaluation fails because name is not bound.
func PassName(name string) func(lispy.Value, error) bool {
	return func(result lispy.Value, err error) bool {
		var e *lispy.Error
		if !errors.As(err, &e) {
			return false
		}
		return e.Kind == lispy.NameNotFoundKind && e.Name == name
	}
}

// CheckMembers is a testing helper to check whether a module has exactly the
// members we expect.
func CheckMembers(t *testing.T, m *lispy.Module, members []string) {
	t.Helper()
	checked := make(map[string]bool, len(members))
	for _, name := range members {
		checked[name] = true
		t.Run("Have_"+name, func(t *testing.T) {
			v, ok := m.Member(name)
			if !ok {
				t.Fatal("no member", name)
			}
			if v == nil {
				t.Fatal("member", name, "is nil")
			}
		})
	}
	for _, name := range m.MemberNames() {
		t.Run("Want_"+name, func(t *testing.T) {
			if !checked[name] {
				t.Fatal("unexpected member", name)
			}
		})
	}
}

// Module imports a registered host module by path using the testing
// interpreter.
func Module(t *testing.T, path string) *lispy.Module {
	t.Helper()
	v, err := Interpreter().EvaluateString("(pyimport "+path+")", "Module")
	if err != nil {
		t.Fatalf("could not import %s: %v", path, err)
	}
	m, ok := v.(*lispy.Module)
	if !ok {
		t.Fatalf("importing %s produced %s, not a module", path, lispy.TypeName(v))
	}
	return m
}
