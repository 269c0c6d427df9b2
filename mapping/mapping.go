// Package mapping implements the composable conversion-morphism
// hierarchy: Linear, Affine, Log, Exp, and generic Composed maps, each
// invertible, composable, and exponentiable, and each able to report
// its own derivative for uncertainty propagation.
package mapping

import (
	"fmt"
	"math"

	"github.com/radiativity-co/ucon/internal/uconerr"
)

// Map is a conversion morphism y = f(x). Implementations are
// immutable value types.
type Map interface {
	Apply(x float64) float64
	Inverse() (Map, error)
	Compose(inner Map) Map
	Pow(exp float64) (Map, error)
	Derivative(x float64) (float64, error)
	IsIdentity(tol float64) bool
}

// Linear is y = a*x.
type Linear struct{ A float64 }

// Identity returns the multiplicative-identity linear map.
func Identity() Linear { return Linear{A: 1} }

func (m Linear) Apply(x float64) float64 { return m.A * x }

func (m Linear) Invertible() bool { return m.A != 0 }

func (m Linear) Inverse() (Map, error) {
	if !m.Invertible() {
		return nil, &uconerr.NonInvertibleTransform{Reason: "Linear map with a=0 is not invertible"}
	}
	return Linear{A: 1 / m.A}, nil
}

// Compose returns the map x -> m.Apply(inner.Apply(x)), closing over
// Linear and Affine inner maps and falling back to Composed otherwise.
func (m Linear) Compose(inner Map) Map {
	switch o := inner.(type) {
	case Linear:
		return Linear{A: m.A * o.A}
	case Affine:
		return Affine{A: m.A * o.A, B: m.A * o.B}
	default:
		return Composed{Outer: m, Inner: inner}
	}
}

func (m Linear) Pow(exp float64) (Map, error) { return Linear{A: math.Pow(m.A, exp)}, nil }

func (m Linear) Derivative(x float64) (float64, error) { return m.A, nil }

func (m Linear) IsIdentity(tol float64) bool {
	return math.Abs(m.Apply(1)-1) < tol && math.Abs(m.Apply(0)-0) < tol
}

func (m Linear) String() string { return fmt.Sprintf("y = %g*x", m.A) }

// Affine is y = a*x + b.
type Affine struct{ A, B float64 }

func (m Affine) Apply(x float64) float64 { return m.A*x + m.B }

func (m Affine) Invertible() bool { return m.A != 0 }

func (m Affine) Inverse() (Map, error) {
	if !m.Invertible() {
		return nil, &uconerr.NonInvertibleTransform{Reason: "Affine map with a=0 is not invertible"}
	}
	return Affine{A: 1 / m.A, B: -m.B / m.A}, nil
}

func (m Affine) Compose(inner Map) Map {
	switch o := inner.(type) {
	case Linear:
		return Affine{A: m.A * o.A, B: m.B}
	case Affine:
		return Affine{A: m.A * o.A, B: m.A*o.B + m.B}
	default:
		return Composed{Outer: m, Inner: inner}
	}
}

func (m Affine) Pow(exp float64) (Map, error) {
	switch exp {
	case 1:
		return m, nil
	case -1:
		return m.Inverse()
	default:
		return nil, &uconerr.InvalidInput{Parameter: "exp", Reason: "Affine map only supports exp=1 or exp=-1"}
	}
}

func (m Affine) Derivative(x float64) (float64, error) { return m.A, nil }

func (m Affine) IsIdentity(tol float64) bool {
	return math.Abs(m.Apply(1)-1) < tol && math.Abs(m.Apply(0)-0) < tol
}

func (m Affine) String() string { return fmt.Sprintf("y = %g*x + %g", m.A, m.B) }

// Log is y = scale*log_base(x) + offset.
type Log struct {
	Scale  float64
	Base   float64
	Offset float64
}

// NewLog fills in the default base (10) when Base is left zero.
func NewLog(scale, base, offset float64) Log {
	if base == 0 {
		base = 10
	}
	return Log{Scale: scale, Base: base, Offset: offset}
}

func (m Log) Apply(x float64) float64 {
	if x <= 0 {
		panic(fmt.Sprintf("mapping: logarithm argument must be positive, got %g", x))
	}
	return m.Scale*math.Log(x)/math.Log(m.Base) + m.Offset
}

func (m Log) Invertible() bool { return m.Scale != 0 }

func (m Log) Inverse() (Map, error) {
	if !m.Invertible() {
		return nil, &uconerr.NonInvertibleTransform{Reason: "Log map with scale=0 is not invertible"}
	}
	return Exp{Scale: 1 / m.Scale, Base: m.Base, Offset: -m.Offset / m.Scale}, nil
}

func (m Log) Compose(inner Map) Map { return Composed{Outer: m, Inner: inner} }

func (m Log) Pow(exp float64) (Map, error) {
	switch exp {
	case 1:
		return m, nil
	case -1:
		return m.Inverse()
	default:
		return nil, &uconerr.InvalidInput{Parameter: "exp", Reason: "Log map only supports exp=1 or exp=-1"}
	}
}

func (m Log) Derivative(x float64) (float64, error) {
	if x <= 0 {
		return 0, &uconerr.InvalidInput{Parameter: "x", Reason: fmt.Sprintf("derivative undefined for x=%g", x)}
	}
	return m.Scale / (x * math.Log(m.Base)), nil
}

// IsIdentity is always false: a logarithm is never the identity map.
func (m Log) IsIdentity(tol float64) bool { return false }

func (m Log) String() string { return fmt.Sprintf("y = %g*log_%g(x) + %g", m.Scale, m.Base, m.Offset) }

// Exp is y = base^(scale*x + offset), the inverse shape of Log.
type Exp struct {
	Scale  float64
	Base   float64
	Offset float64
}

func (m Exp) Apply(x float64) float64 { return math.Pow(m.Base, m.Scale*x+m.Offset) }

func (m Exp) Invertible() bool { return m.Scale != 0 }

func (m Exp) Inverse() (Map, error) {
	if !m.Invertible() {
		return nil, &uconerr.NonInvertibleTransform{Reason: "Exp map with scale=0 is not invertible"}
	}
	return Log{Scale: 1 / m.Scale, Base: m.Base, Offset: -m.Offset / m.Scale}, nil
}

func (m Exp) Compose(inner Map) Map { return Composed{Outer: m, Inner: inner} }

func (m Exp) Pow(exp float64) (Map, error) {
	switch exp {
	case 1:
		return m, nil
	case -1:
		return m.Inverse()
	default:
		return nil, &uconerr.InvalidInput{Parameter: "exp", Reason: "Exp map only supports exp=1 or exp=-1"}
	}
}

func (m Exp) Derivative(x float64) (float64, error) {
	return math.Log(m.Base) * m.Scale * m.Apply(x), nil
}

func (m Exp) IsIdentity(tol float64) bool { return false }

func (m Exp) String() string { return fmt.Sprintf("y = %g^(%g*x + %g)", m.Base, m.Scale, m.Offset) }

// Composed is the generic fallback outer(inner(x)) for map pairs that
// have no closed-form combination of their own.
type Composed struct {
	Outer Map
	Inner Map
}

func (m Composed) Apply(x float64) float64 { return m.Outer.Apply(m.Inner.Apply(x)) }

func (m Composed) Inverse() (Map, error) {
	innerInv, err := m.Inner.Inverse()
	if err != nil {
		return nil, err
	}
	outerInv, err := m.Outer.Inverse()
	if err != nil {
		return nil, err
	}
	return Composed{Outer: innerInv, Inner: outerInv}, nil
}

func (m Composed) Compose(inner Map) Map { return Composed{Outer: m, Inner: inner} }

func (m Composed) Pow(exp float64) (Map, error) {
	switch exp {
	case 1:
		return m, nil
	case -1:
		return m.Inverse()
	default:
		return nil, &uconerr.InvalidInput{Parameter: "exp", Reason: "Composed map only supports exp=1 or exp=-1"}
	}
}

func (m Composed) Derivative(x float64) (float64, error) {
	innerVal := m.Inner.Apply(x)
	outerD, err := m.Outer.Derivative(innerVal)
	if err != nil {
		return 0, err
	}
	innerD, err := m.Inner.Derivative(x)
	if err != nil {
		return 0, err
	}
	return outerD * innerD, nil
}

func (m Composed) IsIdentity(tol float64) bool {
	return math.Abs(m.Apply(1)-1) < tol && math.Abs(m.Apply(0)-0) < tol
}

func (m Composed) String() string { return fmt.Sprintf("%v ∘ %v", m.Outer, m.Inner) }
