// Package quantity implements Number: a magnitude bound to a unit or
// unit product with an optional propagated uncertainty, supporting
// arithmetic and unit-aware conversion via a convert.Graph.
package quantity

import (
	"fmt"
	"math"
	"math/big"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/convert"
	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/scale"
	"github.com/radiativity-co/ucon/unit"
)

// Number is an immutable (quantity, unit, optional uncertainty)
// triple. A nil Uncertainty means the quantity carries no tracked
// uncertainty, not that the uncertainty is zero.
type Number struct {
	Quantity    float64
	Unit        unit.UnitProduct
	Uncertainty *float64
}

// New constructs a Number with no uncertainty.
func New(quantity float64, u unit.UnitProduct) Number {
	return Number{Quantity: quantity, Unit: u}
}

// NewWithUncertainty constructs a Number carrying an absolute
// uncertainty, which must be non-negative.
func NewWithUncertainty(quantity float64, u unit.UnitProduct, uncertainty float64) (Number, error) {
	if uncertainty < 0 {
		return Number{}, &uconerr.InvalidInput{Parameter: "uncertainty", Reason: "must be non-negative"}
	}
	return Number{Quantity: quantity, Unit: u, Uncertainty: &uncertainty}, nil
}

// Of constructs a Number directly from a single unit, the Go
// equivalent of the source's "callable unit" construction idiom
// (meter(5) in Python becomes quantity.Of(5, unit.Meter) here, since Go
// has no callable values).
func Of(x float64, u *unit.Unit) Number {
	return New(x, unit.Single(u, scale.One))
}

func (n Number) hasUncertainty() bool { return n.Uncertainty != nil }

func (n Number) uncertaintyOr(zero float64) float64 {
	if n.Uncertainty == nil {
		return zero
	}
	return *n.Uncertainty
}

// ScaleBy multiplies the quantity (and uncertainty, if present) by a
// plain scalar; the unit is unchanged.
func (n Number) ScaleBy(scalar float64) Number {
	out := Number{Quantity: n.Quantity * scalar, Unit: n.Unit}
	if n.hasUncertainty() {
		u := *n.Uncertainty * math.Abs(scalar)
		out.Uncertainty = &u
	}
	return out
}

// sameDimension reports whether n and o resolve to the same dimension
// under basis b, the precondition for Add/Sub.
func sameDimension(n, o Number, b *basis.Basis) (bool, error) {
	nd, err := n.Unit.Dimension(b)
	if err != nil {
		return false, err
	}
	od, err := o.Unit.Dimension(b)
	if err != nil {
		return false, err
	}
	return nd.Equal(od), nil
}

// Add requires n and o share a dimension; o is converted into n's unit
// via g before the quantities are summed, and uncertainties (if
// either is present) combine in quadrature.
func Add(n, o Number, g *convert.Graph, b *basis.Basis) (Number, error) {
	return combine(n, o, g, b, 1)
}

// Sub is Add with o's quantity negated after conversion.
func Sub(n, o Number, g *convert.Graph, b *basis.Basis) (Number, error) {
	return combine(n, o, g, b, -1)
}

func combine(n, o Number, g *convert.Graph, b *basis.Basis, sign float64) (Number, error) {
	ok, err := sameDimension(n, o, b)
	if err != nil {
		return Number{}, err
	}
	if !ok {
		nd, _ := n.Unit.Dimension(b)
		od, _ := o.Unit.Dimension(b)
		return Number{}, &uconerr.DimensionMismatch{Op: "Number.Add/Sub", Left: nd.String(), Right: od.String(), LeftTag: nd.Tag.String(), RightTag: od.Tag.String()}
	}
	converted, err := o.To(n.Unit, g, b)
	if err != nil {
		return Number{}, err
	}
	result := Number{Quantity: n.Quantity + sign*converted.Quantity, Unit: n.Unit}
	if n.hasUncertainty() || converted.hasUncertainty() {
		a, bU := n.uncertaintyOr(0), converted.uncertaintyOr(0)
		u := math.Sqrt(a*a + bU*bU)
		result.Uncertainty = &u
	}
	return result, nil
}

// Mul combines units by multiplication; relative uncertainties combine
// in quadrature and are converted back to an absolute uncertainty on
// the product.
func Mul(n, o Number) Number {
	product := n.Quantity * o.Quantity
	result := Number{Quantity: product, Unit: n.Unit.Mul(o.Unit)}
	if n.hasUncertainty() || o.hasUncertainty() {
		result.Uncertainty = combineRelative(n, o, product)
	}
	return result
}

// Div combines units by division, analogous to Mul.
func Div(n, o Number) (Number, error) {
	if o.Quantity == 0 {
		return Number{}, &uconerr.InvalidInput{Parameter: "divisor", Reason: "division by zero quantity"}
	}
	quotient := n.Quantity / o.Quantity
	result := Number{Quantity: quotient, Unit: n.Unit.Div(o.Unit)}
	if n.hasUncertainty() || o.hasUncertainty() {
		result.Uncertainty = combineRelative(n, o, quotient)
	}
	return result, nil
}

func combineRelative(n, o Number, result float64) *float64 {
	relN, relO := 0.0, 0.0
	if n.Quantity != 0 {
		relN = n.uncertaintyOr(0) / math.Abs(n.Quantity)
	}
	if o.Quantity != 0 {
		relO = o.uncertaintyOr(0) / math.Abs(o.Quantity)
	}
	relCombined := math.Sqrt(relN*relN + relO*relO)
	abs := relCombined * math.Abs(result)
	return &abs
}

// Pow raises n to an integer-or-rational power k: the unit is
// exponentiated and relative uncertainty scales by |k|.
func (n Number) Pow(k *big.Rat) Number {
	exp, _ := k.Float64()
	result := Number{Quantity: math.Pow(n.Quantity, exp), Unit: n.Unit.Pow(k)}
	if n.hasUncertainty() {
		rel := 0.0
		if n.Quantity != 0 {
			rel = *n.Uncertainty / math.Abs(n.Quantity)
		}
		abs := rel * math.Abs(exp) * math.Abs(result.Quantity)
		result.Uncertainty = &abs
	}
	return result
}

// To converts n into target, resolving the conversion map via g and
// propagating uncertainty through the map's first derivative at n's
// quantity (first-order linearization).
func (n Number) To(target unit.UnitProduct, g *convert.Graph, b *basis.Basis) (Number, error) {
	m, err := g.Convert(n.Unit, target, b)
	if err != nil {
		return Number{}, err
	}
	out := Number{Quantity: m.Apply(n.Quantity), Unit: target}
	if n.hasUncertainty() {
		d, err := m.Derivative(n.Quantity)
		if err != nil {
			return Number{}, err
		}
		u := math.Abs(d) * *n.Uncertainty
		out.Uncertainty = &u
	}
	return out, nil
}

// Simplify folds all scale prefixes into the quantity, replacing the
// unit with its base-scale (Scale.One) equivalent.
func (n Number) Simplify() Number {
	net := n.Unit.FoldScale()
	out := Number{Quantity: n.Quantity * net, Unit: baseScale(n.Unit)}
	if n.hasUncertainty() {
		u := *n.Uncertainty * net
		out.Uncertainty = &u
	}
	return out
}

func baseScale(p unit.UnitProduct) unit.UnitProduct {
	out := make(map[unit.UnitFactor]*big.Rat)
	for f, e := range p.Factors() {
		out[unit.UnitFactor{Unit: f.Unit, Scale: scale.One}] = e
	}
	return unit.NewProduct(out)
}

func (n Number) String() string {
	if n.hasUncertainty() {
		return fmt.Sprintf("%g ± %g %s", n.Quantity, *n.Uncertainty, n.Unit.Shorthand())
	}
	return fmt.Sprintf("%g %s", n.Quantity, n.Unit.Shorthand())
}
