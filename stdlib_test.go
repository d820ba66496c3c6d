package lispy_test

import (
	"os"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/lispy"
	"github.com/zephyrtronium/lispy/testutils"
)

// stdlibCase is a test case loaded from testdata/stdlib.yaml.
type stdlibCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Repr   string `yaml:"repr"`
	Error  string `yaml:"error"`
}

func (c stdlibCase) test() testutils.SourceTestCase {
	if c.Error != "" {
		return testutils.SourceTestCase{
			Source: c.Source,
			Pass: func(result lispy.Value, err error) bool {
				return lispy.KindOf(err).String() == c.Error
			},
		}
	}
	return testutils.SourceTestCase{Source: c.Source, Pass: testutils.PassRepr(c.Repr)}
}

// TestStdlib tests the functions and macros of the standard library.
func TestStdlib(t *testing.T) {
	b, err := os.ReadFile("testdata/stdlib.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var cases []stdlibCase
	if err := yaml.UnmarshalStrict(b, &cases); err != nil {
		t.Fatal(err)
	}
	if len(cases) == 0 {
		t.Fatal("no test cases")
	}
	for _, c := range cases {
		t.Run(c.Name, c.test().TestFunc("TestStdlib/"+c.Name))
	}
}

// TestStdlibNames tests that the standard library defines what it should.
func TestStdlibNames(t *testing.T) {
	in := lispy.NewInterpreter(true, nil)
	names := map[string]string{
		"inc":     "function",
		"dec":     "function",
		"first":   "function",
		"second":  "function",
		"last":    "function",
		"zero?":   "function",
		"empty?":  "function",
		"cons":    "function",
		"append":  "function",
		"extend":  "function",
		"rest":    "function",
		"skip":    "function",
		"curry":   "function",
		"zip":     "function",
		"flatten": "function",
		"reduce":  "function",
		"concat":  "function",
		"when":    "macro",
		"unless":  "macro",
		"letfn":   "macro",
	}
	for name, typ := range names {
		t.Run(name, func(t *testing.T) {
			v, ok := in.Root.Local(name)
			if !ok {
				t.Fatalf("%s is not defined", name)
			}
			if lispy.TypeName(v) != typ {
				t.Errorf("%s is a %s, not a %s", name, lispy.TypeName(v), typ)
			}
		})
	}
}

// TestMacroexpandStdlib tests that standard macros expand to the expected
// code.
func TestMacroexpandStdlib(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"When":   {Source: `(macroexpand when (= 1 1) 1 2)`, Pass: testutils.PassRepr("(if (= 1 1) (do 1 2) nil)")},
		"Unless": {Source: `(macroexpand unless x 1)`, Pass: testutils.PassRepr("(if (not x) 1 nil)")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestMacroexpandStdlib/"+name))
	}
}
