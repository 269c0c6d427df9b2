package basis

import (
	"math/big"

	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/rat"
)

// ConstantBinding records that a source component's mapping into the
// target basis is mediated by a named physical constant. The constant
// symbol is opaque to the engine: it is never evaluated numerically,
// only carried for provenance and to drive inversion of non-square
// transforms.
type ConstantBinding struct {
	SourceComponent  string
	TargetExpression *Vector // expressed in the target basis
	ConstantSymbol   string
	Exponent         *big.Rat
}

// ConstantAwareBasisTransform extends BasisTransform with explicit
// constant bindings, enabling exact inversion of non-square matrices
// when every source component lacking a clean 1:1 column appears in a
// binding.
type ConstantAwareBasisTransform struct {
	BasisTransform
	Bindings []ConstantBinding
}

// NewConstantAwareBasisTransform builds a ConstantAwareBasisTransform
// over an already-validated BasisTransform.
func NewConstantAwareBasisTransform(t *BasisTransform, bindings ...ConstantBinding) *ConstantAwareBasisTransform {
	return &ConstantAwareBasisTransform{BasisTransform: *t, Bindings: append([]ConstantBinding(nil), bindings...)}
}

// Inverse computes the target->source transform using the binding
// table to cover columns that a plain clean-projection Embedding could
// not resolve on its own.
func (t *ConstantAwareBasisTransform) Inverse() (*ConstantAwareBasisTransform, error) {
	nSource, nTarget := t.Source.Len(), t.Target.Len()
	inv := rat.NewMatrix(nTarget, nSource)
	covered := make([]bool, nSource)

	for _, bnd := range t.Bindings {
		si := t.Source.Index(bnd.SourceComponent)
		if si < 0 {
			return nil, &uconerr.UnknownDimension{Name: bnd.SourceComponent}
		}
		for j, coeff := range bnd.TargetExpression.Coords() {
			if coeff.Sign() == 0 {
				continue
			}
			entry := new(big.Rat).Inv(coeff)
			inv[j][si] = entry
		}
		covered[si] = true
	}

	one := big.NewRat(1, 1)
	for i := 0; i < nSource; i++ {
		if covered[i] {
			continue
		}
		nonzero := -1
		count := 0
		for j := 0; j < nTarget; j++ {
			if t.Matrix[i][j].Sign() != 0 {
				count++
				nonzero = j
			}
		}
		if count == 0 {
			continue // dropped dimension, stays a zero column
		}
		if count > 1 || t.Matrix[i][nonzero].Cmp(one) != 0 {
			return nil, &uconerr.NonInvertibleTransform{
				Reason: "source component " + t.Source.Component(i).Name + " has neither a clean column nor a constant binding",
			}
		}
		inv[nonzero][i] = new(big.Rat).Set(one)
	}

	invBindings := make([]ConstantBinding, 0, len(t.Bindings))
	for _, bnd := range t.Bindings {
		primary := -1
		for j, coeff := range bnd.TargetExpression.Coords() {
			if coeff.Sign() != 0 {
				primary = j
				break
			}
		}
		if primary < 0 {
			continue
		}
		coords := make([]*big.Rat, nSource)
		for i := range coords {
			coords[i] = new(big.Rat)
		}
		si := t.Source.Index(bnd.SourceComponent)
		coords[si] = new(big.Rat).SetInt64(1)
		vec := &Vector{basis: t.Source, coords: coords}
		invBindings = append(invBindings, ConstantBinding{
			SourceComponent:  t.Target.Component(primary).Name,
			TargetExpression: vec,
			ConstantSymbol:   bnd.ConstantSymbol,
			Exponent:         new(big.Rat).Neg(bnd.Exponent),
		})
	}

	base := &BasisTransform{Source: t.Target, Target: t.Source, Matrix: inv}
	return &ConstantAwareBasisTransform{BasisTransform: *base, Bindings: invBindings}, nil
}
