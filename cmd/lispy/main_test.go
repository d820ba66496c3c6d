package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zephyrtronium/lispy"
	"github.com/zephyrtronium/lispy/testutils"
)

func TestIncomplete(t *testing.T) {
	cases := map[string]struct {
		src  string
		want bool
	}{
		"Empty":      {"", false},
		"Atom":       {"x", false},
		"Closed":     {"(+ 1 2)", false},
		"Open":       {"(defn f (x)", true},
		"Nested":     {"(do (print 1)\n(print 2)", true},
		"ExtraClose": {"(+ 1 2))", false},
		"StringOpen": {`(print "a b"`, true},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := incomplete(c.src); got != c.want {
				t.Errorf("incomplete(%q): want %v, got %v", c.src, c.want, got)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	t.Run("Missing", func(t *testing.T) {
		c, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		if c != DefaultConfig() {
			t.Errorf("missing file should give defaults, got %+v", c)
		}
	})
	t.Run("Override", func(t *testing.T) {
		p := write("override.yaml", "prompt: \"lispy> \"\nstdlib: false\ntrace: true\nhistory: \"\"\n")
		c, err := LoadConfig(p)
		if err != nil {
			t.Fatal(err)
		}
		want := Config{Prompt: "lispy> ", Continuation: "... ", Stdlib: false, Trace: true}
		if c != want {
			t.Errorf("want %+v, got %+v", want, c)
		}
	})
	t.Run("Unknown", func(t *testing.T) {
		p := write("unknown.yaml", "colour: blue\n")
		if _, err := LoadConfig(p); err == nil {
			t.Error("unknown key should be an error")
		}
	})
}

func TestRunFile(t *testing.T) {
	in := testutils.Interpreter()
	p := filepath.Join(t.TempDir(), "prog.lispy")
	if err := os.WriteFile(p, []byte("(def run_file_result (inc 41))"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runFile(in, p); err != nil {
		t.Fatal(err)
	}
	if v, ok := in.Root.Get("run_file_result"); !ok || !lispy.Equal(v, 42) {
		t.Errorf("wrong result: %v", v)
	}
	if err := runFile(in, filepath.Join(t.TempDir(), "absent.lispy")); err == nil {
		t.Error("missing file should be an error")
	}
}

func TestReport(t *testing.T) {
	in := testutils.Interpreter()
	_, err := in.EvaluateString("(defn report_fails () (undefined_name))\n(report_fails)", "TestReport")
	if err == nil {
		t.Fatal("expected an error")
	}
	var b strings.Builder
	report(&b, in, err)
	out := b.String()
	if !strings.Contains(out, "undefined_name") || !strings.Contains(out, "TestReport:2") {
		t.Errorf("report missing details:\n%s", out)
	}
}
