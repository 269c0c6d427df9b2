package basis

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/rat"
)

// BasisTransform is a rational matrix mapping source-basis vectors to
// target-basis vectors. Matrix is stored rows=source, cols=target, so
// that the j-th component of the result is Σ_i v[i]*Matrix[i][j].
type BasisTransform struct {
	Source, Target *Basis
	Matrix         rat.Matrix
}

// NewBasisTransform validates that matrix has source.Len() rows and
// target.Len() columns before returning the transform.
func NewBasisTransform(source, target *Basis, matrix rat.Matrix) (*BasisTransform, error) {
	rows, cols := matrix.Dims()
	if rows != source.Len() {
		return nil, fmt.Errorf("basis transform: matrix has %d rows, source basis has %d components", rows, source.Len())
	}
	if cols != target.Len() {
		return nil, fmt.Errorf("basis transform: matrix has %d cols, target basis has %d components", cols, target.Len())
	}
	return &BasisTransform{Source: source, Target: target, Matrix: matrix.Clone()}, nil
}

// Identity returns the identity transform b -> b.
func Identity(b *Basis) *BasisTransform {
	t, _ := NewBasisTransform(b, b, rat.Identity(b.Len()))
	return t
}

// IsIdentity reports whether the transform is the identity map: same
// source and target basis and an identity matrix.
func (t *BasisTransform) IsIdentity() bool {
	return t.Source == t.Target && t.Matrix.IsIdentity()
}

// Apply maps v (which must be over t.Source) into t.Target. If
// allowProjection is false and the transform would silently discard a
// nonzero source component (the component's matrix row is entirely
// zero), Apply returns a LossyProjection error instead.
func (t *BasisTransform) Apply(v *Vector, allowProjection bool) (*Vector, error) {
	if v.Basis() != t.Source {
		return nil, &uconerr.Mismatch{Op: "BasisTransform.Apply"}
	}
	if !allowProjection {
		for i, c := range v.Coords() {
			if c.Sign() == 0 {
				continue
			}
			rowZero := true
			for _, e := range t.Matrix[i] {
				if e.Sign() != 0 {
					rowZero = false
					break
				}
			}
			if rowZero {
				return nil, &uconerr.LossyProjection{
					Component: t.Source.Component(i).Name,
					Source:    t.Source.Name(),
					Target:    t.Target.Name(),
				}
			}
		}
	}
	coords := v.Coords()
	n := t.Target.Len()
	out := make([]*big.Rat, n)
	for j := 0; j < n; j++ {
		sum := new(big.Rat)
		for i, c := range coords {
			sum.Add(sum, new(big.Rat).Mul(c, t.Matrix[i][j]))
		}
		out[j] = sum
	}
	return &Vector{basis: t.Target, coords: out}, nil
}

// Inverse computes the exact inverse transform via Gauss-Jordan
// elimination with partial pivoting. The matrix must be square.
func (t *BasisTransform) Inverse() (*BasisTransform, error) {
	rows, cols := t.Matrix.Dims()
	if rows != cols {
		return nil, &uconerr.NonInvertibleTransform{Reason: "matrix is not square"}
	}
	inv, err := t.Matrix.Inverse()
	if err != nil {
		if errors.Is(err, rat.ErrSingular) {
			return nil, &uconerr.NonInvertibleTransform{Reason: "singular pivot"}
		}
		return nil, err
	}
	return &BasisTransform{Source: t.Target, Target: t.Source, Matrix: inv}, nil
}

// Embedding produces the target->source transform valid only when t is
// a clean projection: every source row has at most one nonzero entry,
// and that entry equals exactly 1. Rows that are entirely zero (a
// dropped dimension) yield zero columns in the embedding.
func (t *BasisTransform) Embedding() (*BasisTransform, error) {
	rows, cols := t.Matrix.Dims()
	inv := rat.NewMatrix(cols, rows)
	one := big.NewRat(1, 1)
	for i := 0; i < rows; i++ {
		nonzero := -1
		count := 0
		for j := 0; j < cols; j++ {
			if t.Matrix[i][j].Sign() != 0 {
				count++
				nonzero = j
			}
		}
		if count == 0 {
			continue
		}
		if count > 1 || t.Matrix[i][nonzero].Cmp(one) != 0 {
			return nil, &uconerr.NonInvertibleTransform{
				Reason: fmt.Sprintf("row %d (%s) is not a clean projection", i, t.Source.Component(i).Name),
			}
		}
		inv[nonzero][i] = new(big.Rat).Set(one)
	}
	return &BasisTransform{Source: t.Target, Target: t.Source, Matrix: inv}, nil
}

// Then composes transforms so that (f.Then(g)).Apply(v) == g.Apply(f.Apply(v)):
// f maps f.Source -> f.Target, g maps g.Source -> g.Target, and
// f.Target must equal g.Source. This mirrors the source's "f @ g"
// composition with (f @ g)(x) = f(g(x)) when called as g.Then(f)... to
// avoid that ambiguity Then is spelled out operationally: t.Then(next)
// applies t first, then next.
func (t *BasisTransform) Then(next *BasisTransform) (*BasisTransform, error) {
	if t.Target != next.Source {
		return nil, &uconerr.Mismatch{Op: "BasisTransform.Then"}
	}
	matrix, err := t.Matrix.Mul(next.Matrix)
	if err != nil {
		return nil, err
	}
	return &BasisTransform{Source: t.Source, Target: next.Target, Matrix: matrix}, nil
}

// String renders a header row of target symbols and, per source
// component, its symbol followed by right-aligned rational
// coefficients (zero shown as a dot).
func (t *BasisTransform) String() string {
	var b strings.Builder
	b.WriteString("    ")
	for _, c := range t.Target.Components() {
		label := c.Symbol
		if label == "" {
			label = c.Name
		}
		fmt.Fprintf(&b, "%8s", label)
	}
	b.WriteByte('\n')
	for i, c := range t.Source.Components() {
		label := c.Symbol
		if label == "" {
			label = c.Name
		}
		fmt.Fprintf(&b, "%4s", label)
		for _, v := range t.Matrix[i] {
			if v.Sign() == 0 {
				fmt.Fprintf(&b, "%8s", ".")
			} else {
				fmt.Fprintf(&b, "%8s", v.RatString())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
