package platform_test

import (
	"testing"

	"github.com/zephyrtronium/lispy"
	_ "github.com/zephyrtronium/lispy/hostext/platform" // side effects
	"github.com/zephyrtronium/lispy/testutils"
)

func TestRegister(t *testing.T) {
	testutils.CheckMembers(t, testutils.Module(t, "platform"), []string{
		"machine", "node", "release", "system", "uname", "version",
	})
}

func TestFunctions(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"System":     {Source: `(platform.system)`, Pass: testutils.PassType("str")},
		"Machine":    {Source: `(len (platform.machine))`, Pass: func(r lispy.Value, err error) bool { return err == nil && r.(int) > 0 }},
		"Uname":      {Source: `(len (platform.uname))`, Pass: testutils.PassEqual(5)},
		"Consistent": {Source: `(= (first (platform.uname)) (platform.system))`, Pass: testutils.PassEqual(true)},
		"Args":       {Source: `(platform.node 1)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
	}
	testutils.Interpreter().MustEvaluate("(pyimport platform)")
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestFunctions/"+name))
	}
}
