package basis

import (
	"math/big"
	"strings"

	"github.com/radiativity-co/ucon/internal/uconerr"
)

// Vector is a tuple of exact rational exponents tied to a Basis.
// Vectors are immutable; every algebra operation returns a new Vector.
type Vector struct {
	basis  *Basis
	coords []*big.Rat
}

// NewVector builds a Vector over b from coords, which must have exactly
// b.Len() entries. A nil entry is treated as zero.
func NewVector(b *Basis, coords ...*big.Rat) (*Vector, error) {
	if len(coords) != b.Len() {
		return nil, &uconerr.InvalidInput{Parameter: "coords", Reason: "length does not match basis"}
	}
	out := make([]*big.Rat, len(coords))
	for i, c := range coords {
		if c == nil {
			out[i] = new(big.Rat)
			continue
		}
		out[i] = new(big.Rat).Set(c)
	}
	return &Vector{basis: b, coords: out}, nil
}

// ZeroVector returns the additive-identity vector over b.
func ZeroVector(b *Basis) *Vector {
	coords := make([]*big.Rat, b.Len())
	for i := range coords {
		coords[i] = new(big.Rat)
	}
	return &Vector{basis: b, coords: coords}
}

// Basis returns the vector's basis.
func (v *Vector) Basis() *Basis { return v.basis }

// At returns the rational exponent at the given integer index, name,
// or symbol. It returns nil if key does not resolve.
func (v *Vector) At(key interface{}) *big.Rat {
	i, ok := v.resolve(key)
	if !ok {
		return nil
	}
	return new(big.Rat).Set(v.coords[i])
}

func (v *Vector) resolve(key interface{}) (int, bool) {
	switch k := key.(type) {
	case int:
		if k < 0 || k >= len(v.coords) {
			return 0, false
		}
		return k, true
	case string:
		i := v.basis.Index(k)
		if i < 0 {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// Coords returns a copy of the raw coordinate slice, ordered as the
// basis.
func (v *Vector) Coords() []*big.Rat {
	out := make([]*big.Rat, len(v.coords))
	for i, c := range v.coords {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

func (v *Vector) sameBasis(o *Vector) bool { return v.basis == o.basis }

// Mul adds exponents componentwise (vector "multiplication").
func (v *Vector) Mul(o *Vector) (*Vector, error) {
	if !v.sameBasis(o) {
		return nil, &uconerr.Mismatch{Op: "Vector.Mul"}
	}
	out := make([]*big.Rat, len(v.coords))
	for i := range out {
		out[i] = new(big.Rat).Add(v.coords[i], o.coords[i])
	}
	return &Vector{basis: v.basis, coords: out}, nil
}

// Div subtracts exponents componentwise.
func (v *Vector) Div(o *Vector) (*Vector, error) {
	if !v.sameBasis(o) {
		return nil, &uconerr.Mismatch{Op: "Vector.Div"}
	}
	out := make([]*big.Rat, len(v.coords))
	for i := range out {
		out[i] = new(big.Rat).Sub(v.coords[i], o.coords[i])
	}
	return &Vector{basis: v.basis, coords: out}, nil
}

// Pow scales every exponent by the rational k.
func (v *Vector) Pow(k *big.Rat) *Vector {
	out := make([]*big.Rat, len(v.coords))
	for i := range out {
		out[i] = new(big.Rat).Mul(v.coords[i], k)
	}
	return &Vector{basis: v.basis, coords: out}
}

// Neg negates every exponent.
func (v *Vector) Neg() *Vector {
	out := make([]*big.Rat, len(v.coords))
	for i := range out {
		out[i] = new(big.Rat).Neg(v.coords[i])
	}
	return &Vector{basis: v.basis, coords: out}
}

// IsZero reports whether every exponent is zero.
func (v *Vector) IsZero() bool {
	for _, c := range v.coords {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether v and o carry the same basis and coordinates.
func (v *Vector) Equal(o *Vector) bool {
	if v.basis != o.basis || len(v.coords) != len(o.coords) {
		return false
	}
	for i := range v.coords {
		if v.coords[i].Cmp(o.coords[i]) != 0 {
			return false
		}
	}
	return true
}

// String renders coordinates as "name^exp" joined by "*", omitting
// zero-exponent components and writing exponent 1 as the bare name,
// e.g. "length*time^-2".
func (v *Vector) String() string {
	var parts []string
	for i, c := range v.coords {
		if c.Sign() == 0 {
			continue
		}
		name := v.basis.Component(i).Name
		if c.IsInt() && c.Num().Cmp(big.NewInt(1)) == 0 {
			parts = append(parts, name)
		} else {
			parts = append(parts, name+"^"+c.RatString())
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, "*")
}
