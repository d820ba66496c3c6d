// Package platform provides the platform host module, describing the system
// the interpreter runs on.
package platform

import (
	"fmt"
	"runtime"

	"github.com/zephyrtronium/lispy"
)

// Info describes the running system.
type Info struct {
	System, Node, Release, Version, Machine string
}

func init() {
	lispy.RegisterModule(lispy.NewModule("platform", map[string]any{
		"system":  field("system", func(i Info) string { return i.System }),
		"node":    field("node", func(i Info) string { return i.Node }),
		"release": field("release", func(i Info) string { return i.Release }),
		"version": field("version", func(i Info) string { return i.Version }),
		"machine": field("machine", func(i Info) string { return i.Machine }),
		"uname":   Uname,
	}))
}

// field creates a module function returning one field of the system info.
func field(name string, get func(Info) string) lispy.Fn {
	return func(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%s takes no arguments (%d given)", name, len(args))
		}
		return get(uname()), nil
	}
}

// Uname is a platform function.
//
// uname returns a list of the system name, node name, release, version, and
// machine.
func Uname(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("uname takes no arguments (%d given)", len(args))
	}
	i := uname()
	return lispy.NewList(i.System, i.Node, i.Release, i.Version, i.Machine), nil
}

// machine translates a Go architecture name to the conventional machine
// name.
func machine(arch string) string {
	switch arch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i386"
	case "arm64":
		return "aarch64"
	}
	return arch
}

// goInfo is the system info available from the Go runtime alone.
func goInfo() Info {
	sys := runtime.GOOS
	if sys != "" {
		sys = string(sys[0]-'a'+'A') + sys[1:]
	}
	return Info{System: sys, Machine: machine(runtime.GOARCH)}
}
