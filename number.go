package lispy

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/bits"
)

// Integers are ints until an operation overflows, at which point they become
// *big.Int. Results that fit back into an int are demoted. Any operation
// with a float64 operand produces a float64.

// errDivZero is the error for division or modulo by zero.
var errDivZero = errors.New("division by zero")

func isNumber(v Value) bool {
	switch v.(type) {
	case int, *big.Int, float64:
		return true
	}
	return false
}

// normBig demotes a big integer to an int if it fits.
func normBig(b *big.Int) Value {
	if b.IsInt64() {
		n := b.Int64()
		if int64(int(n)) == n {
			return int(n)
		}
	}
	return b
}

func toBig(v Value) *big.Int {
	switch v := v.(type) {
	case int:
		return big.NewInt(int64(v))
	case *big.Int:
		return v
	}
	panic(fmt.Errorf("lispy: toBig on %T", v))
}

func toFloat(v Value) float64 {
	switch v := v.(type) {
	case int:
		return float64(v)
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f
	case float64:
		return v
	}
	panic(fmt.Errorf("lispy: toFloat on %T", v))
}

// arith applies a binary arithmetic operator to two numbers.
func arith(op string, a, b Value) (Value, error) {
	if !isNumber(a) || !isNumber(b) {
		return nil, fmt.Errorf("unsupported operand types for %s: %s and %s", op, TypeName(a), TypeName(b))
	}
	if op == "/" {
		y := toFloat(b)
		if y == 0 {
			return nil, errDivZero
		}
		return toFloat(a) / y, nil
	}
	_, af := a.(float64)
	_, bf := b.(float64)
	if af || bf {
		return floatArith(op, toFloat(a), toFloat(b))
	}
	x, xok := a.(int)
	y, yok := b.(int)
	if xok && yok {
		if r, ok := intArith(op, x, y); ok {
			return r, nil
		}
		if op == "%" && y == 0 {
			return nil, errDivZero
		}
	}
	return bigArith(op, toBig(a), toBig(b))
}

// intArith applies op to machine integers. It reports false if the result
// overflows or the operation cannot be done in ints.
func intArith(op string, x, y int) (Value, bool) {
	switch op {
	case "+":
		r := x + y
		if (r > x) == (y > 0) {
			return r, true
		}
	case "-":
		r := x - y
		if (r < x) == (y > 0) {
			return r, true
		}
	case "*":
		hi, lo := bits.Mul64(uint64(abs(x)), uint64(abs(y)))
		if hi == 0 && lo <= math.MaxInt64 && x != math.MinInt && y != math.MinInt {
			return x * y, true
		}
	case "%":
		if y == 0 || y == -1 && x == math.MinInt {
			return nil, false
		}
		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r, true
	}
	return nil, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func bigArith(op string, x, y *big.Int) (Value, error) {
	r := new(big.Int)
	switch op {
	case "+":
		r.Add(x, y)
	case "-":
		r.Sub(x, y)
	case "*":
		r.Mul(x, y)
	case "%":
		if y.Sign() == 0 {
			return nil, errDivZero
		}
		r.Rem(x, y)
		if r.Sign() != 0 && r.Sign() != y.Sign() {
			r.Add(r, y)
		}
	default:
		return nil, fmt.Errorf("unknown operator %s", op)
	}
	return normBig(r), nil
}

func floatArith(op string, x, y float64) (Value, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "%":
		if y == 0 {
			return nil, errDivZero
		}
		r := math.Mod(x, y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r, nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

// compareNumbers compares two numbers. It reports false if either is NaN.
func compareNumbers(a, b Value) (int, bool) {
	x, xok := a.(int)
	y, yok := b.(int)
	if xok && yok {
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	_, af := a.(float64)
	_, bf := b.(float64)
	if af || bf {
		fx, fy := toFloat(a), toFloat(b)
		switch {
		case math.IsNaN(fx) || math.IsNaN(fy):
			return 0, false
		case fx < fy:
			return -1, true
		case fx > fy:
			return 1, true
		}
		return 0, true
	}
	return toBig(a).Cmp(toBig(b)), true
}

// toInt converts an integral value to an int.
func toInt(v Value) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case *big.Int:
		if v.IsInt64() && int64(int(v.Int64())) == v.Int64() {
			return int(v.Int64()), true
		}
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case Token:
		return toInt(v.Value)
	}
	return 0, false
}

// absValue returns the absolute value of a number.
func absValue(v Value) (Value, error) {
	if !isNumber(v) {
		return nil, fmt.Errorf("bad operand type for abs(): %s", TypeName(v))
	}
	if c, ok := compareNumbers(v, 0); ok && c < 0 {
		return negate(v), nil
	}
	return v, nil
}

// negate returns -v for a number.
func negate(v Value) Value {
	switch v := v.(type) {
	case int:
		if v == math.MinInt {
			return new(big.Int).Neg(big.NewInt(int64(v)))
		}
		return -v
	case *big.Int:
		return normBig(new(big.Int).Neg(v))
	case float64:
		return -v
	}
	return v
}
