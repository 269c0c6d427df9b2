// Package unit implements atomic units, scale-prefixed unit factors,
// and products/quotients of factors forming composite units with a
// well-defined dimensional identity.
package unit

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/scale"
)

// Unit is a named quantity with a dimension. Equal uses (Name,
// Dimension) — two units with the same name but different dimensions
// are distinct, and vice versa. Map keys do not use (Name, Dimension):
// UnitFactor compares *Unit pointers, so two separately built Units
// with equal Name and Dimension are distinct keys.
type Unit struct {
	Name       string
	Aliases    []string
	Dimension  dimension.Dimension
}

// Shorthand returns the unit's first alias if any, else its name.
func (u Unit) Shorthand() string {
	if len(u.Aliases) > 0 {
		return u.Aliases[0]
	}
	return u.Name
}

// Equal compares units by name and dimension.
func (u Unit) Equal(o Unit) bool {
	return u.Name == o.Name && u.Dimension.Equal(o.Dimension)
}

// Call constructs a Number-shaped pair (x, u); the quantity package
// re-exposes this as Unit(x) construction since Go has no callable
// values. Kept here as a plain accessor so quantity doesn't need to
// reach into unit's internals.
func (u *Unit) Call(x float64) (float64, UnitProduct) {
	return x, NewProduct(map[UnitFactor]*big.Rat{{Unit: u, Scale: scale.One}: big.NewRat(1, 1)})
}

// UnitFactor pairs a unit with a scale prefix, e.g. (meter, kilo) for
// "km". The Unit field is a pointer so UnitFactor stays a comparable
// map key regardless of Unit's own fields (Aliases is a slice and so
// not itself comparable); unit identity for map-key purposes is then
// pointer identity, matching how units are minted once and shared from
// a registry.
type UnitFactor struct {
	Unit  *Unit
	Scale scale.Scale
}

// RebasedUnit represents an original unit viewed under a different
// basis's dimension partition, used to route conversions across bases.
type RebasedUnit struct {
	Original          Unit
	RebasedDimension  dimension.Dimension
	Transform         *basis.BasisTransform
}

// UnitProduct is a monomial of UnitFactors with nonzero rational
// exponents; canonical form never stores a zero-exponent entry.
type UnitProduct struct {
	factors map[UnitFactor]*big.Rat
}

// NewProduct builds a canonicalized UnitProduct, dropping any
// zero-exponent entries.
func NewProduct(factors map[UnitFactor]*big.Rat) UnitProduct {
	out := make(map[UnitFactor]*big.Rat, len(factors))
	for f, e := range factors {
		if e.Sign() == 0 {
			continue
		}
		out[f] = new(big.Rat).Set(e)
	}
	return UnitProduct{factors: out}
}

// Single builds a UnitProduct of exactly one factor at exponent 1.
func Single(u *Unit, s scale.Scale) UnitProduct {
	return NewProduct(map[UnitFactor]*big.Rat{{Unit: u, Scale: s}: big.NewRat(1, 1)})
}

// Factors returns a copy of the product's factor/exponent map.
func (p UnitProduct) Factors() map[UnitFactor]*big.Rat {
	out := make(map[UnitFactor]*big.Rat, len(p.factors))
	for f, e := range p.factors {
		out[f] = new(big.Rat).Set(e)
	}
	return out
}

// IsEmpty reports whether the product has no factors (dimensionless,
// scale-free "1").
func (p UnitProduct) IsEmpty() bool { return len(p.factors) == 0 }

// Mul combines two products by adding exponents entrywise.
func (p UnitProduct) Mul(o UnitProduct) UnitProduct {
	out := p.Factors()
	for f, e := range o.factors {
		if cur, ok := out[f]; ok {
			out[f] = new(big.Rat).Add(cur, e)
		} else {
			out[f] = new(big.Rat).Set(e)
		}
	}
	return NewProduct(out)
}

// Div divides p by o by subtracting exponents entrywise.
func (p UnitProduct) Div(o UnitProduct) UnitProduct {
	out := p.Factors()
	for f, e := range o.factors {
		if cur, ok := out[f]; ok {
			out[f] = new(big.Rat).Sub(cur, e)
		} else {
			out[f] = new(big.Rat).Neg(e)
		}
	}
	return NewProduct(out)
}

// Pow multiplies every exponent by k.
func (p UnitProduct) Pow(k *big.Rat) UnitProduct {
	out := make(map[UnitFactor]*big.Rat, len(p.factors))
	for f, e := range p.factors {
		out[f] = new(big.Rat).Mul(e, k)
	}
	return NewProduct(out)
}

// Dimension returns the product Π(factor.Unit.Dimension ** exponent),
// reduced via dimension algebra.
func (p UnitProduct) Dimension(b *basis.Basis) (dimension.Dimension, error) {
	result := dimension.None(b)
	for f, e := range p.factors {
		term := f.Unit.Dimension.Pow(e)
		var err error
		result, err = result.Mul(term)
		if err != nil {
			return dimension.Dimension{}, err
		}
	}
	return result, nil
}

// FoldScale returns the net numeric scale factor obtained by
// multiplying scale.Value()**exponent across all factors. Exponents
// here are plain floats reduced from *big.Rat since this is a numeric
// scale factor, never an input to dimensional algebra.
func (p UnitProduct) FoldScale() float64 {
	net := 1.0
	for f, e := range p.factors {
		exp, _ := e.Float64()
		net *= math.Pow(f.Scale.Value(), exp)
	}
	return net
}

// FactorsByDimension groups the product's entries by their unit's
// dimension, for factorwise conversion. It returns an error if two
// distinct factors share a dimension (ambiguous grouping).
func (p UnitProduct) FactorsByDimension(b *basis.Basis) (map[string][]UnitFactor, error) {
	out := make(map[string][]UnitFactor)
	seen := make(map[string]UnitFactor)
	for f := range p.factors {
		d, err := UnitProduct{factors: map[UnitFactor]*big.Rat{f: big.NewRat(1, 1)}}.Dimension(b)
		if err != nil {
			return nil, err
		}
		k := d.String() + "|" + d.Tag.String()
		if other, ok := seen[k]; ok && other != f {
			return nil, &uconerr.InvalidInput{Parameter: "UnitProduct", Reason: fmt.Sprintf("ambiguous factors share dimension %s", k)}
		}
		seen[k] = f
		out[k] = append(out[k], f)
	}
	return out, nil
}

// Shorthand renders a readable form such as "kg*m/s^2": factors with
// positive exponent first (numerator), then factors with negative
// exponent (denominator), each ordered by unit shorthand for
// determinism; denominator factors are joined by "/".
func (p UnitProduct) Shorthand() string {
	var num, den []string
	keys := make([]UnitFactor, 0, len(p.factors))
	for f := range p.factors {
		keys = append(keys, f)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Unit.Shorthand() < keys[j].Unit.Shorthand()
	})
	for _, f := range keys {
		e := p.factors[f]
		label := scale.Symbol(f.Scale) + f.Unit.Shorthand()
		switch {
		case e.Sign() > 0:
			if e.IsInt() && e.Num().Int64() == 1 {
				num = append(num, label)
			} else {
				num = append(num, label+"^"+e.RatString())
			}
		case e.Sign() < 0:
			neg := new(big.Rat).Neg(e)
			if neg.IsInt() && neg.Num().Int64() == 1 {
				den = append(den, label)
			} else {
				den = append(den, label+"^"+neg.RatString())
			}
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return "1"
	}
	numStr := "1"
	if len(num) > 0 {
		numStr = strings.Join(num, "*")
	}
	if len(den) == 0 {
		return numStr
	}
	return numStr + "/" + strings.Join(den, "/")
}
