package json_test

import (
	"testing"

	"github.com/zephyrtronium/lispy"
	_ "github.com/zephyrtronium/lispy/hostext/json" // side effects
	"github.com/zephyrtronium/lispy/testutils"
)

func TestRegister(t *testing.T) {
	testutils.CheckMembers(t, testutils.Module(t, "json"), []string{"dumps", "loads"})
}

func TestLoads(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Int":      {Source: `(json.loads "12")`, Pass: testutils.PassEqual(12)},
		"Big":      {Source: `(json.loads "123456789012345678901234567890")`, Pass: testutils.PassRepr("123456789012345678901234567890")},
		"Float":    {Source: `(json.loads "1.5")`, Pass: testutils.PassEqual(1.5)},
		"String":   {Source: `(json.loads "\"abc\"")`, Pass: testutils.PassEqual("abc")},
		"Null":     {Source: `(json.loads "null")`, Pass: testutils.PassEqual(nil)},
		"Bool":     {Source: `(json.loads "true")`, Pass: testutils.PassEqual(true)},
		"Array":    {Source: `(json.loads "[1, [2, 3], \"x\"]")`, Pass: testutils.PassRepr("(1 (2 3) x)")},
		"Object":   {Source: `(keys (json.loads "{\"b\": 1, \"a\": 2}"))`, Pass: testutils.PassRepr("(b a)")},
		"Member":   {Source: `((. get (json.loads "{\"a\": [1]}")) "a")`, Pass: testutils.PassRepr("(1)")},
		"Extra":    {Source: `(json.loads "1 2")`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"Invalid":  {Source: `(json.loads "[1,")`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"NotStr":   {Source: `(json.loads 1)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"Imported": {Source: `(do (pyimport_from json loads) (loads "[]"))`, Pass: testutils.PassRepr("()")},
	}
	testutils.Interpreter().MustEvaluate("(pyimport json)")
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestLoads/"+name))
	}
}

func TestDumps(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Int":       {Source: `(json.dumps 1)`, Pass: testutils.PassEqual("1")},
		"Float":     {Source: `(json.dumps 1.5)`, Pass: testutils.PassEqual("1.5")},
		"Nil":       {Source: `(json.dumps None)`, Pass: testutils.PassEqual("null")},
		"String":    {Source: `(json.dumps "a<b")`, Pass: testutils.PassEqual(`"a<b"`)},
		"List":      {Source: `(json.dumps (list 1 "x" (list)))`, Pass: testutils.PassEqual(`[1, "x", []]`)},
		"Dict":      {Source: `(json.dumps (dict "a" 1 "b" true))`, Pass: testutils.PassEqual(`{"a": 1, "b": true}`)},
		"IntKey":    {Source: `(json.dumps (dict 1 2))`, Pass: testutils.PassEqual(`{"1": 2}`)},
		"Indent":    {Source: `(json.dumps (list 1 2) 2)`, Pass: testutils.PassEqual("[\n  1,\n  2\n]")},
		"NaN":       {Source: `(json.dumps (float "nan"))`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"Func":      {Source: `(json.dumps inc)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"RoundTrip": {Source: `(= (json.loads (json.dumps (dict "k" (list 1 2.5 None)))) (dict "k" (list 1 2.5 None)))`, Pass: testutils.PassEqual(true)},
	}
	testutils.Interpreter().MustEvaluate("(pyimport json)")
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestDumps/"+name))
	}
}
