// Package dimension layers named, derived, and pseudo- (semantically
// isolated dimensionless) dimensions on top of basis vectors.
package dimension

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/internal/uconerr"
)

// PseudoTag marks a Dimension as one of the four dimensionless-but-
// distinct quantity kinds. TagNone means the dimension is a regular
// (possibly derived) dimension, not a pseudo-dimension.
type PseudoTag int

const (
	TagNone PseudoTag = iota
	TagAngle
	TagSolidAngle
	TagRatio
	TagCount
)

func (t PseudoTag) String() string {
	switch t {
	case TagAngle:
		return "angle"
	case TagSolidAngle:
		return "solid_angle"
	case TagRatio:
		return "ratio"
	case TagCount:
		return "count"
	default:
		return ""
	}
}

// Dimension is an immutable (Vector, optional name/symbol, optional
// pseudo-tag) triple. Pseudo-dimensions share the zero vector with
// NONE but are kept semantically distinct by their tag.
type Dimension struct {
	Vector *basis.Vector
	Name   string
	Symbol string
	Tag    PseudoTag
}

// IsPseudo reports whether d carries a pseudo-dimension tag.
func (d Dimension) IsPseudo() bool { return d.Tag != TagNone }

// IsDimensionless reports whether d's vector is the zero vector,
// regardless of pseudo-tag (a pseudo-dimension is dimensionless too).
func (d Dimension) IsDimensionless() bool { return d.Vector.IsZero() }

// IsBase reports whether d corresponds to exactly one basis component
// raised to the first power (e.g. LENGTH, MASS).
func (d Dimension) IsBase() bool {
	coords := d.Vector.Coords()
	nonzero := 0
	for _, c := range coords {
		if c.Sign() != 0 {
			nonzero++
			if !c.IsInt() || c.Sign() != 1 || c.Num().Int64() != 1 {
				return false
			}
		}
	}
	return nonzero == 1
}

// Equal implements spec.md's equality rule: if either side is a
// pseudo-dimension, compare tag and vector; otherwise compare vectors
// alone (derived dimensions with the same vector are equal regardless
// of name).
func (d Dimension) Equal(o Dimension) bool {
	if d.IsPseudo() || o.IsPseudo() {
		return d.Tag == o.Tag && d.Vector.Equal(o.Vector)
	}
	return d.Vector.Equal(o.Vector)
}

// None is the algebraic identity dimension: zero vector, no pseudo-tag.
func None(b *basis.Basis) Dimension {
	return Dimension{Vector: basis.ZeroVector(b), Name: "none", Symbol: "1"}
}

// Pseudo constructs a pseudo-dimension over b's zero vector with the
// given tag, name, and symbol.
func Pseudo(b *basis.Basis, tag PseudoTag, name, symbol string) Dimension {
	return Dimension{Vector: basis.ZeroVector(b), Name: name, Symbol: symbol, Tag: tag}
}

// isNoneIdentity reports whether d is the algebraic identity NONE: the
// zero vector with no pseudo-tag. A pseudo-dimension also sits at the
// zero vector but must never be mistaken for NONE, since NONE is the
// identity element pseudo-dimensions combine against.
func (d Dimension) isNoneIdentity() bool {
	return d.Vector.IsZero() && !d.IsPseudo()
}

// Mul implements dimension algebra: NONE is the identity, checked
// before the pseudo rules so a pseudo combined with NONE returns the
// pseudo unchanged; two different pseudo-dimensions cannot combine; a
// pseudo combined with a non-pseudo, non-NONE dimension yields the
// non-pseudo (the pseudo contributes the zero vector); otherwise
// vectors combine via the basis algebra.
func (d Dimension) Mul(o Dimension) (Dimension, error) {
	if d.isNoneIdentity() {
		return o, nil
	}
	if o.isNoneIdentity() {
		return d, nil
	}
	if d.IsPseudo() && o.IsPseudo() {
		if d.Tag != o.Tag {
			return Dimension{}, &uconerr.DimensionMismatch{Op: "Dimension.Mul", Left: d.Name, Right: o.Name, LeftTag: d.Tag.String(), RightTag: o.Tag.String()}
		}
		return d, nil
	}
	if d.IsPseudo() && !o.IsPseudo() {
		return o, nil
	}
	if !d.IsPseudo() && o.IsPseudo() {
		return d, nil
	}
	v, err := d.Vector.Mul(o.Vector)
	if err != nil {
		return Dimension{}, err
	}
	return derivedOrNamed(v), nil
}

// Div implements dimension algebra division, the inverse of Mul. NONE
// is checked first so a pseudo divided by NONE returns the pseudo
// unchanged. Dividing a pseudo-dimension by itself yields NONE.
func (d Dimension) Div(o Dimension) (Dimension, error) {
	if o.isNoneIdentity() {
		return d, nil
	}
	if d.isNoneIdentity() {
		v, err := d.Vector.Div(o.Vector)
		if err != nil {
			return Dimension{}, err
		}
		return derivedOrNamed(v), nil
	}
	if d.IsPseudo() && o.IsPseudo() {
		if d.Tag != o.Tag {
			return Dimension{}, &uconerr.DimensionMismatch{Op: "Dimension.Div", Left: d.Name, Right: o.Name, LeftTag: d.Tag.String(), RightTag: o.Tag.String()}
		}
		return None(d.Vector.Basis()), nil
	}
	if !d.IsPseudo() && o.IsPseudo() {
		return d, nil
	}
	if d.IsPseudo() && !o.IsPseudo() {
		// A pseudo divided by a real dimension has no sensible
		// algebraic form here; combine as non-pseudo division would,
		// contributing the pseudo's zero vector, then fail to be a
		// pseudo anymore since o carries real dimension (inverted).
		v, err := d.Vector.Div(o.Vector)
		if err != nil {
			return Dimension{}, err
		}
		return derivedOrNamed(v), nil
	}
	v, err := d.Vector.Div(o.Vector)
	if err != nil {
		return Dimension{}, err
	}
	return derivedOrNamed(v), nil
}

// Pow exponentiates a dimension by the integer-valued rational k.
// Exponentiating a pseudo-dimension by any nonzero power leaves it
// unchanged.
func (d Dimension) Pow(k *big.Rat) Dimension {
	if d.IsPseudo() {
		if k.Sign() == 0 {
			return None(d.Vector.Basis())
		}
		return d
	}
	return derivedOrNamed(d.Vector.Pow(k))
}

func derivedOrNamed(v *basis.Vector) Dimension {
	return Dimension{Vector: v, Name: deriveName(v)}
}

// deriveName walks the basis and emits positive exponents in the
// numerator, negative in the denominator, with exponent-1 implicit.
// The name is purely informational; equality uses the vector.
func deriveName(v *basis.Vector) string {
	coords := v.Coords()
	b := v.Basis()
	var num, den []string
	for i, c := range coords {
		if c.Sign() == 0 {
			continue
		}
		name := b.Component(i).Name
		if c.Sign() > 0 {
			if c.IsInt() && c.Num().Int64() == 1 {
				num = append(num, name)
			} else {
				num = append(num, fmt.Sprintf("%s^%s", name, c.RatString()))
			}
		} else {
			neg := new(big.Rat).Neg(c)
			if neg.IsInt() && neg.Num().Int64() == 1 {
				den = append(den, name)
			} else {
				den = append(den, fmt.Sprintf("%s^%s", name, neg.RatString()))
			}
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return "none"
	}
	numStr := "1"
	if len(num) > 0 {
		numStr = strings.Join(num, "*")
	}
	if len(den) == 0 {
		return fmt.Sprintf("derived(%s)", numStr)
	}
	return fmt.Sprintf("derived(%s/%s)", numStr, strings.Join(den, "*"))
}

func (d Dimension) String() string {
	if d.Symbol != "" {
		return d.Symbol
	}
	if d.Name != "" {
		return d.Name
	}
	return deriveName(d.Vector)
}
