package os_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zephyrtronium/lispy"
	_ "github.com/zephyrtronium/lispy/hostext/os" // side effects
	"github.com/zephyrtronium/lispy/testutils"
)

func TestRegister(t *testing.T) {
	testutils.CheckMembers(t, testutils.Module(t, "os"), []string{"environ", "getcwd", "getenv", "path", "sep"})
	testutils.CheckMembers(t, testutils.Module(t, "os.path"), []string{"basename", "dirname", "exists", "join"})
}

func TestFunctions(t *testing.T) {
	t.Setenv("LISPY_TEST_VAR", "value")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]testutils.SourceTestCase{
		"Getenv":        {Source: `(os.getenv "LISPY_TEST_VAR")`, Pass: testutils.PassEqual("value")},
		"GetenvMissing": {Source: `(os.getenv "LISPY_TEST_UNSET")`, Pass: testutils.PassEqual(nil)},
		"GetenvDefault": {Source: `(os.getenv "LISPY_TEST_UNSET" "d")`, Pass: testutils.PassEqual("d")},
		"Environ":       {Source: `((. get (os.environ)) "LISPY_TEST_VAR")`, Pass: testutils.PassEqual("value")},
		"Getcwd":        {Source: `(os.getcwd)`, Pass: testutils.PassEqual(wd)},
		"Join":          {Source: `(os.path.join "a" "b" "c")`, Pass: testutils.PassEqual(filepath.Join("a", "b", "c"))},
		"JoinAbs":       {Source: `(os.path.join "a" os.sep "c")`, Pass: testutils.PassEqual(filepath.Join(string(filepath.Separator), "c"))},
		"Basename":      {Source: `(os.path.basename (os.path.join "a" "b.txt"))`, Pass: testutils.PassEqual("b.txt")},
		"Dirname":       {Source: `(os.path.dirname (os.path.join "a" "b.txt"))`, Pass: testutils.PassEqual("a")},
		"Exists":        {Source: `(os.path.exists (os.path.join "testdata" "present.txt"))`, Pass: testutils.PassEqual(true)},
		"NotExists":     {Source: `(os.path.exists (os.path.join "testdata" "absent.txt"))`, Pass: testutils.PassEqual(false)},
		"PathFrom":      {Source: `(do (pyimport_from os path) (path.basename "x"))`, Pass: testutils.PassEqual("x")},
		"NotString":     {Source: `(os.path.join 1)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
	}
	testutils.Interpreter().MustEvaluate("(pyimport os os.path)")
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestFunctions/"+name))
	}
}
