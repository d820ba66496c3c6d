// Command lispyfn lists the exported functions of Go packages which can serve
// as lispy builtins, that is, those assignable to lispy.Fn.
//
// Usage:
//
//	lispyfn [-match re] [-ignore re] [-go] [package ...]
//
// With -match, the matched prefix is removed from each name to produce the
// name programs see, so lispyfn -match ^String lists StringUpper as upper.
package main

import (
	"flag"
	"fmt"
	"go/types"
	"iter"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// A found function is a candidate builtin.
type found struct {
	// Ident is the Go identifier, qualified by package name outside the
	// lispy package.
	Ident string
	// Name is the name programs would use.
	Name string
}

func main() {
	var match, ignore, lispy string
	var gosrc bool
	flag.StringVar(&match, "match", ".", "include only functions matching this regular expression")
	flag.StringVar(&ignore, "ignore", "$^", "exclude functions matching this regular expression")
	flag.StringVar(&lispy, "lispy", "github.com/zephyrtronium/lispy", "import path for package lispy source code")
	flag.BoolVar(&gosrc, "go", false, "print Go map entries instead of a listing")
	flag.Parse()
	mre, err := regexp.Compile(match)
	if err != nil {
		fail("error compiling match:", err)
	}
	ire, err := regexp.Compile(ignore)
	if err != nil {
		fail("error compiling ignore:", err)
	}

	config := packages.Config{Mode: packages.NeedName | packages.NeedTypes | packages.NeedImports}
	pkgs, err := packages.Load(&config, append([]string{lispy}, flag.Args()...)...)
	if err != nil {
		fail("error loading packages:", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		os.Exit(1)
	}
	fn := fnType(pkgs[0])
	if len(pkgs) > 1 {
		pkgs = pkgs[1:]
	}
	var results []found
	for _, pkg := range pkgs {
		for name := range candidates(pkg.Types.Scope(), fn, mre, ire) {
			f := found{Ident: name, Name: trimMatch(name, mre)}
			if pkg.PkgPath != lispy {
				f.Ident = pkg.Name + "." + name
			}
			results = append(results, f)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	for _, f := range results {
		if gosrc {
			fmt.Printf("\t%q: %s,\n", f.Name, f.Ident)
		} else {
			fmt.Printf("%s: {fn: %s}\n", f.Name, f.Ident)
		}
	}
}

func fail(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

// fnType finds the underlying type of lispy.Fn.
func fnType(pkg *packages.Package) types.Type {
	r := pkg.Types.Scope().Lookup("Fn")
	if r == nil {
		fail(pkg.Name, "has no definition of Fn")
	}
	t, ok := r.(*types.TypeName)
	if !ok {
		fail(pkg.Name, "has incorrect definition of Fn:", r)
	}
	return t.Type().Underlying()
}

// candidates yields the names of exported functions in a scope which are
// assignable to fn and pass the filters.
func candidates(scope *types.Scope, fn types.Type, mre, ire *regexp.Regexp) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.Func)
			if !ok || !obj.Exported() {
				continue
			}
			if !mre.MatchString(name) || ire.MatchString(name) {
				continue
			}
			if types.AssignableTo(obj.Type(), fn) && !yield(name) {
				return
			}
		}
	}
}

// trimMatch removes the part of name matched by mre, if any, and lowercases
// the first letter of the remainder.
func trimMatch(name string, mre *regexp.Regexp) string {
	if mre.String() != "." {
		if k := mre.FindStringIndex(name); k != nil && k[1] < len(name) {
			name = name[k[1]:]
		}
	}
	return strings.ToLower(name[:1]) + name[1:]
}
