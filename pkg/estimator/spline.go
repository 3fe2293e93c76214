package estimator

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// curve is a fitted interpolant over the sorted anchors. Implementations
// must be valid for all finite inputs: queries beyond the anchor span
// continue the boundary polynomial rather than clamping, matching
// scipy's interp1d(kind='cubic', fill_value='extrapolate') which the
// published calculator was built on.
type curve interface {
	at(x float64) float64
}

// fitCurve selects an interpolant for the anchor count. Four or more
// anchors get a not-a-knot cubic spline (C1/C2 continuous at interior
// anchors). Two or three anchors cannot support spline end conditions,
// so they degrade to the unique line or parabola through the points.
func fitCurve(anchors []Anchor) (curve, error) {
	if len(anchors) < 4 {
		return fitPolynomial(anchors)
	}
	return fitSpline(anchors)
}

// polynomial holds coefficients in ascending-power order.
type polynomial []float64

func (p polynomial) at(x float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}
	return v
}

// fitPolynomial solves the Vandermonde system for the unique polynomial
// of degree n-1 through n anchors.
func fitPolynomial(anchors []Anchor) (curve, error) {
	n := len(anchors)
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range anchors {
		pow := 1.0
		for j := 0; j < n; j++ {
			a.Set(i, j, pow)
			pow *= p.Temperature
		}
		b.SetVec(i, p.Days)
	}

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("polynomial fit failed: %w", err)
	}

	coeffs := make(polynomial, n)
	for i := range coeffs {
		coeffs[i] = c.AtVec(i)
	}
	return coeffs, nil
}

// cubicSpline is a piecewise cubic in second-derivative form: m[i] is
// the spline's second derivative at anchor i.
type cubicSpline struct {
	xs []float64
	ys []float64
	m  []float64
}

// fitSpline computes the not-a-knot cubic spline through the anchors by
// solving the linear system for the second derivatives at the knots.
// The interior rows are the usual C1 continuity conditions; the first
// and last rows force the third derivative to be continuous across the
// first and last interior knots (not-a-knot), which is what scipy uses
// for kind='cubic'.
func fitSpline(anchors []Anchor) (curve, error) {
	n := len(anchors)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range anchors {
		xs[i] = p.Temperature
		ys[i] = p.Days
	}

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
	}

	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)

	// Not-a-knot at the left end: S''' continuous across x[1].
	a.Set(0, 0, -h[1])
	a.Set(0, 1, h[0]+h[1])
	a.Set(0, 2, -h[0])

	for i := 1; i < n-1; i++ {
		a.Set(i, i-1, h[i-1])
		a.Set(i, i, 2*(h[i-1]+h[i]))
		a.Set(i, i+1, h[i])
		b.SetVec(i, 6*((ys[i+1]-ys[i])/h[i]-(ys[i]-ys[i-1])/h[i-1]))
	}

	// Not-a-knot at the right end: S''' continuous across x[n-2].
	a.Set(n-1, n-3, -h[n-2])
	a.Set(n-1, n-2, h[n-3]+h[n-2])
	a.Set(n-1, n-1, -h[n-3])

	var m mat.VecDense
	if err := m.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("spline fit failed: %w", err)
	}

	s := &cubicSpline{xs: xs, ys: ys, m: make([]float64, n)}
	for i := 0; i < n; i++ {
		s.m[i] = m.AtVec(i)
	}
	return s, nil
}

// at evaluates the spline. Queries outside the anchor span fall on the
// outermost segment, whose cubic is evaluated as-is — polynomial
// continuation, not clamping.
func (s *cubicSpline) at(x float64) float64 {
	i := sort.SearchFloat64s(s.xs, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(s.xs)-2 {
		i = len(s.xs) - 2
	}

	h := s.xs[i+1] - s.xs[i]
	dr := s.xs[i+1] - x
	dl := x - s.xs[i]

	return (s.m[i]*dr*dr*dr+s.m[i+1]*dl*dl*dl)/(6*h) +
		(s.ys[i]-s.m[i]*h*h/6)*dr/h +
		(s.ys[i+1]-s.m[i+1]*h*h/6)*dl/h
}
