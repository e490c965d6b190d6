// Package funcs provides the concrete value-provider implementations the
// organ model is parameterised with: constants, piecewise-linear response
// curves, bounded and composite forms. Every provider exposes a single
// Value() float64 query with no side effects.
package funcs

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Constant always returns the same value.
type Constant struct {
	V float64
}

// NewConstant creates a constant provider.
func NewConstant(v float64) *Constant {
	return &Constant{V: v}
}

// Value returns the constant.
func (c *Constant) Value() float64 {
	return c.V
}

// Func adapts a closure into a provider. Used to wire simulation state
// (weather readings, arbitration results) into the organ's provider slots.
type Func func() float64

// Value invokes the closure.
func (f Func) Value() float64 {
	return f()
}

// Linear is a piecewise-linear response curve y(x) where x comes from an
// input provider. Inputs outside the fitted domain are clamped to the
// endpoints, so the curve is flat beyond its first and last points.
type Linear struct {
	input      Provider
	curve      interp.PiecewiseLinear
	xMin, xMax float64
}

// Provider is the single-capability value contract, redeclared locally so
// composites can nest without importing the organ package.
type Provider interface {
	Value() float64
}

// NewLinear fits a piecewise-linear curve through the (x, y) points. The
// xs must be strictly increasing and len(xs) == len(ys) >= 2.
func NewLinear(input Provider, xs, ys []float64) (*Linear, error) {
	var curve interp.PiecewiseLinear
	if err := curve.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fitting response curve: %w", err)
	}
	return &Linear{
		input: input,
		curve: curve,
		xMin:  xs[0],
		xMax:  xs[len(xs)-1],
	}, nil
}

// MustLinear is like NewLinear but panics on error. Intended for curves
// built from static configuration.
func MustLinear(input Provider, xs, ys []float64) *Linear {
	l, err := NewLinear(input, xs, ys)
	if err != nil {
		panic(err)
	}
	return l
}

// Value evaluates the curve at the clamped input.
func (l *Linear) Value() float64 {
	x := l.input.Value()
	if x < l.xMin {
		x = l.xMin
	} else if x > l.xMax {
		x = l.xMax
	}
	return l.curve.Predict(x)
}

// Bounded clamps a source provider into [Lower, Upper].
type Bounded struct {
	Source Provider
	Lower  float64
	Upper  float64
}

// Value returns the clamped source value.
func (b *Bounded) Value() float64 {
	v := b.Source.Value()
	if v < b.Lower {
		return b.Lower
	}
	if v > b.Upper {
		return b.Upper
	}
	return v
}

// Minimum returns the smallest of its source values. Used for combined
// stress factors where the most limiting stress governs.
type Minimum struct {
	Sources []Provider
}

// Value returns the minimum source value, or 0 with no sources.
func (m *Minimum) Value() float64 {
	if len(m.Sources) == 0 {
		return 0
	}
	min := m.Sources[0].Value()
	for _, s := range m.Sources[1:] {
		if v := s.Value(); v < min {
			min = v
		}
	}
	return min
}

// Product multiplies its source values.
type Product struct {
	Sources []Provider
}

// Value returns the product of the sources, or 0 with no sources.
func (p *Product) Value() float64 {
	if len(p.Sources) == 0 {
		return 0
	}
	v := 1.0
	for _, s := range p.Sources {
		v *= s.Value()
	}
	return v
}

// Weighted blends two sources: WeightA*A + (1-WeightA)*B. The classic use
// is a daily mean temperature weighted toward the maximum.
type Weighted struct {
	A, B    Provider
	WeightA float64
}

// Value returns the weighted blend.
func (w *Weighted) Value() float64 {
	return w.WeightA*w.A.Value() + (1-w.WeightA)*w.B.Value()
}
