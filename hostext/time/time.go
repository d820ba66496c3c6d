// Package time provides the time host module.
package time

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"gitlab.com/variadico/lctime"

	"github.com/zephyrtronium/lispy"
)

func init() {
	lispy.RegisterModule(lispy.NewModule("time", map[string]any{
		"time":     Time,
		"sleep":    Sleep,
		"strftime": Strftime,
	}))
}

// now is the clock, replaced in tests.
var now = time.Now

// seconds converts a time to seconds since the Unix epoch.
func seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// fromSeconds converts seconds since the Unix epoch to a local time.
func fromSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(frac*1e9))
}

// secondsArg returns the nth argument as a number of seconds.
func secondsArg(name string, args []lispy.Value, n int) (float64, error) {
	switch x := args[n].(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, nil
	}
	return 0, fmt.Errorf("argument %d to %s must be a number, not %s", n, name, lispy.TypeName(args[n]))
}

// Time is a time function.
//
// time returns the current time in seconds since the Unix epoch.
func Time(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("time takes no arguments (%d given)", len(args))
	}
	return seconds(now()), nil
}

// Sleep is a time function.
//
// sleep suspends the program for a number of seconds.
func Sleep(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sleep takes exactly 1 argument (%d given)", len(args))
	}
	s, err := secondsArg("sleep", args, 0)
	if err != nil {
		return nil, err
	}
	if s < 0 {
		return nil, fmt.Errorf("sleep length must be non-negative")
	}
	time.Sleep(time.Duration(s * float64(time.Second)))
	return nil, nil
}

// Strftime is a time function.
//
// strftime formats a time, by default the current time, according to a
// format string. See https://godoc.org/gitlab.com/variadico/lctime for the
// full list of directives.
func Strftime(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("strftime takes 1 or 2 arguments (%d given)", len(args))
	}
	format, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("argument 0 to strftime must be str, not %s", lispy.TypeName(args[0]))
	}
	t := now()
	if len(args) == 2 {
		s, err := secondsArg("strftime", args, 1)
		if err != nil {
			return nil, err
		}
		t = fromSeconds(s)
	}
	return lctime.Strftime(format, t), nil
}
