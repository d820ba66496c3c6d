package main

import (
	"regexp"
	"testing"
)

func TestTrimMatch(t *testing.T) {
	cases := map[string]struct {
		name, match, want string
	}{
		"All":       {"BuiltinAdd", ".", "builtinAdd"},
		"Prefix":    {"StringUpper", "^String", "upper"},
		"NoMatch":   {"ListAppend", "^String", "listAppend"},
		"WholeName": {"Intrinsic", "^Intrinsic", "intrinsic"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := trimMatch(c.name, regexp.MustCompile(c.match)); got != c.want {
				t.Errorf("trimMatch(%q, %q): want %q, got %q", c.name, c.match, c.want, got)
			}
		})
	}
}
