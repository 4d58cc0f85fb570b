// Package interp provides one-dimensional interpolators over strictly increasing abscissae
// and the catalogue of curve interpolation methods built on them.
//
// Every interpolator reproduces its nodes exactly and extends its first and last
// segments beyond the node range.
package interp

import (
	"fmt"
	"math"
	"sort"
)

// Interpolator evaluates an interpolating function.
type Interpolator interface {
	Value(x float64) float64
}

// New builds an interpolator of the given scheme. xs must be strictly increasing and
// len(xs) == len(ys) >= 1.
func New(scheme Scheme, xs, ys []float64) (Interpolator, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interp.New: %d abscissae, %d ordinates", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("interp.New: no nodes")
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("interp.New: abscissae not strictly increasing at %d", i)
		}
	}
	x := append([]float64(nil), xs...)
	y := append([]float64(nil), ys...)
	if len(x) < 3 {
		return &linear{nodes{x, y}}, nil
	}
	switch scheme {
	case Linear:
		return &linear{nodes{x, y}}, nil
	case NaturalSpline:
		return newNaturalSpline(x, y), nil
	case Kruger:
		return newHermite(x, y, krugerSlopes(x, y)), nil
	case MonotoneCubic:
		return newHermite(x, y, fritschCarlsonSlopes(x, y)), nil
	}
	return nil, fmt.Errorf("interp.New: unknown scheme %d", scheme)
}

type nodes struct {
	xs, ys []float64
}

// segment returns i such that xs[i] <= x < xs[i+1], clamped to the first and last segment.
func (n nodes) segment(x float64) int {
	i := sort.SearchFloat64s(n.xs, x)
	if i < len(n.xs) && n.xs[i] == x {
		if i == len(n.xs)-1 {
			return i - 1
		}
		return i
	}
	i--
	if i < 0 {
		return 0
	}
	if i > len(n.xs)-2 {
		return len(n.xs) - 2
	}
	return i
}

// exact returns the stored ordinate when x hits a node.
func (n nodes) exact(x float64) (float64, bool) {
	i := sort.SearchFloat64s(n.xs, x)
	if i < len(n.xs) && n.xs[i] == x {
		return n.ys[i], true
	}
	return 0, false
}

type linear struct {
	nodes
}

func (l *linear) Value(x float64) float64 {
	if y, ok := l.exact(x); ok {
		return y
	}
	if len(l.xs) == 1 {
		return l.ys[0]
	}
	i := l.segment(x)
	x0, x1 := l.xs[i], l.xs[i+1]
	y0, y1 := l.ys[i], l.ys[i+1]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

type naturalSpline struct {
	nodes
	m []float64 // second derivatives at the nodes
}

func newNaturalSpline(xs, ys []float64) *naturalSpline {
	n := len(xs)
	m := make([]float64, n)
	// Thomas algorithm on the interior equations; m[0] = m[n-1] = 0.
	c := make([]float64, n)
	d := make([]float64, n)
	for i := 1; i < n-1; i++ {
		h0 := xs[i] - xs[i-1]
		h1 := xs[i+1] - xs[i]
		rhs := 6 * ((ys[i+1]-ys[i])/h1 - (ys[i]-ys[i-1])/h0)
		diag := 2 * (h0 + h1)
		if i > 1 {
			diag -= h0 * c[i-1]
			rhs -= h0 * d[i-1]
		}
		c[i] = h1 / diag
		d[i] = rhs / diag
	}
	for i := n - 2; i >= 1; i-- {
		m[i] = d[i]
		if i < n-2 {
			m[i] -= c[i] * m[i+1]
		}
	}
	return &naturalSpline{nodes{xs, ys}, m}
}

func (s *naturalSpline) Value(x float64) float64 {
	if y, ok := s.exact(x); ok {
		return y
	}
	i := s.segment(x)
	h := s.xs[i+1] - s.xs[i]
	a := (s.xs[i+1] - x) / h
	b := (x - s.xs[i]) / h
	return a*s.ys[i] + b*s.ys[i+1] + ((a*a*a-a)*s.m[i]+(b*b*b-b)*s.m[i+1])*h*h/6
}

type hermite struct {
	nodes
	d []float64 // first derivatives at the nodes
}

func newHermite(xs, ys, d []float64) *hermite {
	return &hermite{nodes{xs, ys}, d}
}

func (h *hermite) Value(x float64) float64 {
	if y, ok := h.exact(x); ok {
		return y
	}
	i := h.segment(x)
	dx := h.xs[i+1] - h.xs[i]
	t := (x - h.xs[i]) / dx
	t2, t3 := t*t, t*t*t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*h.ys[i] + h10*dx*h.d[i] + h01*h.ys[i+1] + h11*dx*h.d[i+1]
}

func secants(xs, ys []float64) []float64 {
	s := make([]float64, len(xs)-1)
	for i := range s {
		s[i] = (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
	}
	return s
}

// krugerSlopes uses harmonic-mean interior derivatives, zero at local extrema.
func krugerSlopes(xs, ys []float64) []float64 {
	s := secants(xs, ys)
	n := len(xs)
	d := make([]float64, n)
	for i := 1; i < n-1; i++ {
		if s[i-1]*s[i] > 0 {
			d[i] = 2 / (1/s[i-1] + 1/s[i])
		}
	}
	d[0] = 1.5*s[0] - 0.5*d[1]
	d[n-1] = 1.5*s[n-2] - 0.5*d[n-2]
	return d
}

// fritschCarlsonSlopes limits the three-point derivatives so the interpolant is monotone
// wherever the data are.
func fritschCarlsonSlopes(xs, ys []float64) []float64 {
	s := secants(xs, ys)
	n := len(xs)
	d := make([]float64, n)
	d[0] = s[0]
	d[n-1] = s[n-2]
	for i := 1; i < n-1; i++ {
		if s[i-1]*s[i] > 0 {
			d[i] = (s[i-1] + s[i]) / 2
		}
	}
	for k := 0; k < n-1; k++ {
		if s[k] == 0 {
			d[k], d[k+1] = 0, 0
			continue
		}
		a := d[k] / s[k]
		b := d[k+1] / s[k]
		if a < 0 {
			d[k], a = 0, 0
		}
		if b < 0 {
			d[k+1], b = 0, 0
		}
		if r := a*a + b*b; r > 9 {
			tau := 3 / math.Sqrt(r)
			d[k] = tau * a * s[k]
			d[k+1] = tau * b * s[k]
		}
	}
	return d
}
