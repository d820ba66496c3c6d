// Package os provides the os host module and its os.path submodule.
package os

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zephyrtronium/lispy"
)

func init() {
	lispy.RegisterModule(lispy.NewModule("os", map[string]any{
		"getenv":  Getenv,
		"getcwd":  Getcwd,
		"environ": Environ,
		"sep":     string(filepath.Separator),
	}))
	lispy.RegisterModule(lispy.NewModule("os.path", map[string]any{
		"join":     Join,
		"basename": Basename,
		"dirname":  Dirname,
		"exists":   Exists,
	}))
}

// stringArgs returns the arguments as strings.
func stringArgs(name string, args []lispy.Value) ([]string, error) {
	r := make([]string, len(args))
	for i, x := range args {
		s, ok := x.(string)
		if !ok {
			return nil, fmt.Errorf("argument %d to %s must be str, not %s", i, name, lispy.TypeName(x))
		}
		r[i] = s
	}
	return r, nil
}

// Getenv is an os function.
//
// getenv returns the value of an environment variable, or a default (nil if
// not given) if it is unset.
func Getenv(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("getenv takes 1 or 2 arguments (%d given)", len(args))
	}
	s, err := stringArgs("getenv", args[:1])
	if err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(s[0]); ok {
		return v, nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	return nil, nil
}

// Getcwd is an os function.
//
// getcwd returns the current working directory.
func Getcwd(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("getcwd takes no arguments (%d given)", len(args))
	}
	return os.Getwd()
}

// Environ is an os function.
//
// environ returns a dict of the environment variables.
func Environ(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("environ takes no arguments (%d given)", len(args))
	}
	d := lispy.NewDict()
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if err := d.Set(k, v); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Join is an os.path function.
//
// join joins path elements with the separator. An absolute element discards
// the elements before it.
func Join(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	parts, err := stringArgs("join", args)
	if err != nil {
		return nil, err
	}
	for i := len(parts) - 1; i > 0; i-- {
		if filepath.IsAbs(parts[i]) {
			parts = parts[i:]
			break
		}
	}
	return filepath.Join(parts...), nil
}

// Basename is an os.path function.
//
// basename returns the final element of a path. A path ending in a
// separator has an empty basename.
func Basename(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("basename takes exactly 1 argument (%d given)", len(args))
	}
	s, err := stringArgs("basename", args)
	if err != nil {
		return nil, err
	}
	_, file := filepath.Split(s[0])
	return file, nil
}

// Dirname is an os.path function.
//
// dirname returns all but the final element of a path.
func Dirname(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("dirname takes exactly 1 argument (%d given)", len(args))
	}
	s, err := stringArgs("dirname", args)
	if err != nil {
		return nil, err
	}
	dir, _ := filepath.Split(s[0])
	if len(dir) > 1 {
		dir = strings.TrimRight(dir, string(filepath.Separator))
	}
	return dir, nil
}

// Exists is an os.path function.
//
// exists reports whether a file exists at a path.
func Exists(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("exists takes exactly 1 argument (%d given)", len(args))
	}
	s, err := stringArgs("exists", args)
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(s[0])
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, nil
}
