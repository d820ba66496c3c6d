// Package math provides the math host module.
package math

import (
	"fmt"
	"math"
	"math/big"

	"github.com/zephyrtronium/lispy"
)

func init() {
	members := map[string]any{
		"pi":    math.Pi,
		"e":     math.E,
		"tau":   2 * math.Pi,
		"inf":   math.Inf(1),
		"nan":   math.NaN(),
		"floor": Floor,
		"ceil":  Ceil,
		"pow":   Pow,
		"log":   Log,
		"fabs":  Fabs,
		"isnan": IsNaN,
		"isinf": IsInf,
		"gcd":   GCD,
	}
	for name, f := range unary {
		members[name] = unaryFn(name, f)
	}
	lispy.RegisterModule(lispy.NewModule("math", members))
}

// unary holds the functions of one float argument.
var unary = map[string]func(float64) float64{
	"sqrt": math.Sqrt,
	"exp":  math.Exp,
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
}

// Float returns the nth argument as a float64.
func Float(name string, args []lispy.Value, n int) (float64, error) {
	switch x := args[n].(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("argument %d to %s must be a number, not %s", n, name, lispy.TypeName(args[n]))
}

func unaryFn(name string, f func(float64) float64) lispy.Fn {
	return func(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes exactly 1 argument (%d given)", name, len(args))
		}
		x, err := Float(name, args, 0)
		if err != nil {
			return nil, err
		}
		r := f(x)
		if math.IsNaN(r) && !math.IsNaN(x) {
			return nil, fmt.Errorf("math domain error")
		}
		return r, nil
	}
}

// integral converts a float with an integral value to an int or big integer.
func integral(f float64) (lispy.Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("cannot convert float %v to integer", f)
	}
	if f >= math.MinInt64 && f < math.MaxInt64 {
		return int(f), nil
	}
	b, _ := big.NewFloat(f).Int(nil)
	return b, nil
}

// Floor is a math function.
//
// floor returns the greatest integer not greater than its argument.
func Floor(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("floor takes exactly 1 argument (%d given)", len(args))
	}
	switch args[0].(type) {
	case int, *big.Int:
		return args[0], nil
	}
	x, err := Float("floor", args, 0)
	if err != nil {
		return nil, err
	}
	return integral(math.Floor(x))
}

// Ceil is a math function.
//
// ceil returns the least integer not less than its argument.
func Ceil(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ceil takes exactly 1 argument (%d given)", len(args))
	}
	switch args[0].(type) {
	case int, *big.Int:
		return args[0], nil
	}
	x, err := Float("ceil", args, 0)
	if err != nil {
		return nil, err
	}
	return integral(math.Ceil(x))
}

// Pow is a math function.
//
// pow returns its first argument raised to the power of its second, as a
// float.
func Pow(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow takes exactly 2 arguments (%d given)", len(args))
	}
	x, err := Float("pow", args, 0)
	if err != nil {
		return nil, err
	}
	y, err := Float("pow", args, 1)
	if err != nil {
		return nil, err
	}
	return math.Pow(x, y), nil
}

// Log is a math function.
//
// log returns the natural logarithm of its argument, or the logarithm in a
// given base.
func Log(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("log takes 1 or 2 arguments (%d given)", len(args))
	}
	x, err := Float("log", args, 0)
	if err != nil {
		return nil, err
	}
	if x <= 0 {
		return nil, fmt.Errorf("math domain error")
	}
	r := math.Log(x)
	if len(args) == 2 {
		b, err := Float("log", args, 1)
		if err != nil {
			return nil, err
		}
		if b <= 0 || b == 1 {
			return nil, fmt.Errorf("math domain error")
		}
		r /= math.Log(b)
	}
	return r, nil
}

// Fabs is a math function.
//
// fabs returns the absolute value of its argument as a float.
func Fabs(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("fabs takes exactly 1 argument (%d given)", len(args))
	}
	x, err := Float("fabs", args, 0)
	if err != nil {
		return nil, err
	}
	return math.Abs(x), nil
}

// IsNaN is a math function.
//
// isnan reports whether its argument is not a number.
func IsNaN(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("isnan takes exactly 1 argument (%d given)", len(args))
	}
	x, err := Float("isnan", args, 0)
	if err != nil {
		return nil, err
	}
	return math.IsNaN(x), nil
}

// IsInf is a math function.
//
// isinf reports whether its argument is positive or negative infinity.
func IsInf(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("isinf takes exactly 1 argument (%d given)", len(args))
	}
	x, err := Float("isinf", args, 0)
	if err != nil {
		return nil, err
	}
	return math.IsInf(x, 0), nil
}

// GCD is a math function.
//
// gcd returns the greatest common divisor of its integer arguments. With no
// arguments, it returns 0.
func GCD(in *lispy.Interpreter, env *lispy.Env, target lispy.Value, args []lispy.Value) (lispy.Value, error) {
	r := new(big.Int)
	for i, x := range args {
		var b *big.Int
		switch x := x.(type) {
		case int:
			b = big.NewInt(int64(x))
		case *big.Int:
			b = x
		default:
			return nil, fmt.Errorf("argument %d to gcd must be an integer, not %s", i, lispy.TypeName(x))
		}
		r.GCD(nil, nil, r, new(big.Int).Abs(b))
	}
	if r.IsInt64() {
		return int(r.Int64()), nil
	}
	return r, nil
}
