// Package ucvalidate implements the model-validation adapter external
// collaborator (spec.md §6): it validates arbitrary input against a
// typed quantity.Number, optionally constrained to a declared
// dimension.Dimension, and (de)serializes to the
// {quantity, unit, uncertainty} shape spec.md calls for. Grounded on
// original_source/ucon/pydantic.py's Number/_NumberPydanticAnnotation,
// adapted from Pydantic v2's schema-hook idiom to a plain Go
// validator/serializer pair (Go has no equivalent annotation
// machinery, and this module does not depend on a schema/validation
// library the pack shows no precedent for).
package ucvalidate

import (
	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/convert"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/quantity"
	"github.com/radiativity-co/ucon/unit"
)

// Input is the dict-shaped form accepted alongside an existing
// quantity.Number: {quantity, unit?, uncertainty?}.
type Input struct {
	Quantity    float64
	Unit        string
	HasUnit     bool
	Uncertainty float64
	HasUncertainty bool
}

// Validator validates input against an optional declared dimension.
// A zero-value Validator (Dimension == nil) accepts any dimension.
type Validator struct {
	Dimension *dimension.Dimension
}

// New returns an unconstrained Validator.
func New() Validator { return Validator{} }

// Constrained returns a Validator that rejects Numbers whose unit's
// dimension differs from d (pseudo-dimensions compared by tag, as in
// spec.md §4.5).
func Constrained(d dimension.Dimension) Validator { return Validator{Dimension: &d} }

// ValidateNumber re-validates an already-constructed Number — the
// passthrough branch of _validate_number's isinstance(v, Number) check.
func (val Validator) ValidateNumber(n quantity.Number, b *basis.Basis) (quantity.Number, error) {
	if val.Dimension != nil {
		actual, err := n.Unit.Dimension(b)
		if err != nil {
			return quantity.Number{}, err
		}
		if !actual.Equal(*val.Dimension) {
			return quantity.Number{}, &uconerr.DimensionMismatch{
				Op: "ucvalidate.Validate", Left: actual.String(), Right: val.Dimension.String(),
				LeftTag: actual.Tag.String(), RightTag: val.Dimension.Tag.String(),
			}
		}
	}
	return n, nil
}

// ValidateInput parses and validates a dict-shaped Input, resolving
// its unit string (if any) against g, mirroring _validate_number's
// dict branch.
func (val Validator) ValidateInput(in Input, g *convert.Graph, b *basis.Basis) (quantity.Number, error) {
	var prod unit.UnitProduct
	if in.HasUnit && in.Unit != "" {
		u, s, err := g.Lookup(in.Unit)
		if err != nil {
			return quantity.Number{}, &uconerr.InvalidInput{Parameter: "unit", Reason: "unknown unit: " + in.Unit}
		}
		prod = unit.Single(u, s)
	}
	var n quantity.Number
	if in.HasUncertainty {
		var err error
		n, err = quantity.NewWithUncertainty(in.Quantity, prod, in.Uncertainty)
		if err != nil {
			return quantity.Number{}, err
		}
	} else {
		n = quantity.New(in.Quantity, prod)
	}
	return val.ValidateNumber(n, b)
}

// Serialized is the JSON-compatible shape spec.md §6 specifies for the
// model-validation adapter: {quantity: float, unit: string|null,
// uncertainty: float|null}.
type Serialized struct {
	Quantity    float64  `json:"quantity"`
	Unit        *string  `json:"unit"`
	Uncertainty *float64 `json:"uncertainty"`
}

// Serialize renders n in the adapter's wire shape, mirroring
// _serialize_number.
func Serialize(n quantity.Number) Serialized {
	out := Serialized{Quantity: n.Quantity}
	if sh := n.Unit.Shorthand(); sh != "" && sh != "1" {
		out.Unit = &sh
	}
	if n.Uncertainty != nil {
		u := *n.Uncertainty
		out.Uncertainty = &u
	}
	return out
}
