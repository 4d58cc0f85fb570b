package bootstrap

import (
	"errors"
	"math"
)

const epsilon = 2.220446049250313e-16

var (
	errNotBracketed = errors.New("root not bracketed")
	errMaxIter      = errors.New("maximum iterations reached")
	errNaN          = errors.New("objective is not a number")
)

// brent finds x in [a, b] with |f(x)| <= ftol using Brent's method: inverse quadratic
// interpolation and secant steps, falling back to bisection whenever they leave the bracket
// or converge too slowly. f(a) and f(b) must differ in sign.
func brent(f func(float64) float64, a, b, ftol float64, maxIter int) (float64, int, error) {
	fa, fb := f(a), f(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, 0, errNaN
	}
	if math.Abs(fa) <= ftol {
		return a, 0, nil
	}
	if math.Abs(fb) <= ftol {
		return b, 0, nil
	}
	if fa*fb > 0 {
		return 0, 0, errNotBracketed
	}

	c, fc := b, fb
	var d, e float64
	for iter := 1; iter <= maxIter; iter++ {
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		xtol := 2*epsilon*math.Abs(b) + 0.5*epsilon
		xm := 0.5 * (c - b)
		if math.Abs(fb) <= ftol {
			return b, iter, nil
		}
		if math.Abs(xm) <= xtol {
			// The bracket has collapsed without meeting ftol.
			return b, iter, errMaxIter
		}
		if math.Abs(e) >= xtol && math.Abs(fa) > math.Abs(fb) {
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				qa := fa / fc
				r := fb / fc
				p = s * (2*xm*qa*(qa-r) - (b-a)*(r-1))
				q = (qa - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xm*q - math.Abs(xtol*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > xtol {
			b += d
		} else {
			b += math.Copysign(xtol, xm)
		}
		fb = f(b)
		if math.IsNaN(fb) {
			return 0, iter, errNaN
		}
	}
	return b, maxIter, errMaxIter
}
