package math_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/lispy"
	_ "github.com/zephyrtronium/lispy/hostext/math" // side effects
	"github.com/zephyrtronium/lispy/testutils"
)

func TestRegister(t *testing.T) {
	testutils.CheckMembers(t, testutils.Module(t, "math"), []string{
		"acos", "asin", "atan", "ceil", "cos", "e", "exp", "fabs", "floor",
		"gcd", "inf", "isinf", "isnan", "log", "nan", "pi", "pow", "sin",
		"sqrt", "tan", "tau",
	})
}

func TestFunctions(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Pi":          {Source: `math.pi`, Pass: testutils.PassEqual(math.Pi)},
		"Sqrt":        {Source: `(math.sqrt 16)`, Pass: testutils.PassEqual(4.0)},
		"SqrtDomain":  {Source: `(math.sqrt -1)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"Floor":       {Source: `(math.floor -2.5)`, Pass: testutils.PassEqual(-3)},
		"FloorType":   {Source: `(type (math.floor 2.5))`, Pass: testutils.PassEqual("int")},
		"Ceil":        {Source: `(math.ceil 2.1)`, Pass: testutils.PassEqual(3)},
		"CeilInt":     {Source: `(math.ceil 7)`, Pass: testutils.PassEqual(7)},
		"Pow":         {Source: `(math.pow 2 10)`, Pass: testutils.PassEqual(1024.0)},
		"Log":         {Source: `(round (math.log math.e) 6)`, Pass: testutils.PassEqual(1.0)},
		"LogBase":     {Source: `(round (math.log 8 2) 6)`, Pass: testutils.PassEqual(3.0)},
		"LogDomain":   {Source: `(math.log 0)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"Fabs":        {Source: `(math.fabs -3)`, Pass: testutils.PassEqual(3.0)},
		"IsNaN":       {Source: `(math.isnan math.nan)`, Pass: testutils.PassEqual(true)},
		"IsInf":       {Source: `(math.isinf (- 0 math.inf))`, Pass: testutils.PassEqual(true)},
		"GCD":         {Source: `(math.gcd 12 -18)`, Pass: testutils.PassEqual(6)},
		"GCDEmpty":    {Source: `(math.gcd)`, Pass: testutils.PassEqual(0)},
		"GCDFloat":    {Source: `(math.gcd 1.5 2)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"NotNumber":   {Source: `(math.sin "x")`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"WrongArity":  {Source: `(math.cos)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"MissingName": {Source: `math.nope`, Pass: testutils.PassKind(lispy.HostErrorKind)},
	}
	testutils.Interpreter().MustEvaluate("(pyimport math)")
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestFunctions/"+name))
	}
}
