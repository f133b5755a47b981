package arith

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// pow sets z to x**y. z may alias x or y. The result is ErrDivisionByZero for
// zero to a negative power and ErrDomain for a negative number to a
// non-integer power.
func pow(z, x, y *big.Float) error {
	switch {
	case y.Sign() == 0:
		z.SetInt64(1)
		return nil
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return ErrDivisionByZero
		}
		z.SetInt64(0)
		return nil
	}
	if y.IsInt() {
		if k, acc := y.Int64(); acc == big.Exact {
			powi(z, x, k)
			return nil
		}
	}
	neg := false
	if x.Signbit() {
		if !y.IsInt() {
			return ErrDomain
		}
		// Integer too large for powi. The sign follows the parity.
		i, _ := y.Int(nil)
		neg = i.Bit(0) == 1
		x = new(big.Float).Abs(x)
	}
	switch {
	case x.IsInf():
		if y.Sign() > 0 {
			z.SetInf(false)
		} else {
			z.SetInt64(0)
		}
	case y.IsInf():
		powinf(z, x, y)
	case x.Cmp(big.NewFloat(1)) == 0:
		z.SetInt64(1)
	default:
		// Results outside the exponent range of big.Float are +Inf or 0
		// regardless of precision.
		switch e := powexp(x, y); {
		case e > big.MaxExp:
			z.SetInf(false)
		case e < big.MinExp:
			z.SetInt64(0)
		default:
			z.Set(bigfloat.Pow(new(big.Float).SetPrec(z.Prec()), x, y))
		}
	}
	if neg {
		z.Neg(z)
	}
	return nil
}

// powi sets z to x**k by repeated squaring, which is exact whenever the
// result fits in z's precision.
func powi(z, x *big.Float, k int64) {
	base := new(big.Float).Copy(x)
	u := uint64(k)
	if k < 0 {
		u = -u
	}
	z.SetInt64(1)
	for u > 0 {
		if u&1 == 1 {
			z.Mul(z, base)
		}
		u >>= 1
		if u > 0 {
			base.Mul(base, base)
		}
	}
	if k < 0 {
		one := new(big.Float).SetPrec(z.Prec()).SetInt64(1)
		z.Quo(one, z)
	}
}

// powinf sets z to x**y where x is positive and finite and y is infinite.
func powinf(z, x, y *big.Float) {
	c := x.Cmp(big.NewFloat(1))
	switch {
	case c == 0:
		z.SetInt64(1)
	case (c > 0) == (y.Sign() > 0):
		z.SetInf(false)
	default:
		z.SetInt64(0)
	}
}

// powexp estimates the binary exponent of x**y where x is positive, finite,
// and not 1, and y is finite.
func powexp(x, y *big.Float) float64 {
	var mant big.Float
	e := x.MantExp(&mant)
	m, _ := mant.Float64()
	f, _ := y.Float64()
	return f * (float64(e) + math.Log2(m))
}
