// Package rat provides small exact-rational matrix helpers built on
// math/big.Rat, used by basis transforms to invert and compose
// rational coefficient matrices without ever dropping to floating
// point.
package rat

import (
	"errors"
	"math/big"
)

// ErrSingular is returned by Inverse when the matrix has no rational
// inverse (a zero pivot column remains after partial pivoting).
var ErrSingular = errors.New("rat: singular matrix")

// Matrix is a dense m-by-n matrix of exact rationals, stored row-major.
type Matrix [][]*big.Rat

// NewMatrix builds an m-by-n zero matrix.
func NewMatrix(m, n int) Matrix {
	out := make(Matrix, m)
	for i := range out {
		row := make([]*big.Rat, n)
		for j := range row {
			row[j] = new(big.Rat)
		}
		out[i] = row
	}
	return out
}

// Identity builds an n-by-n identity matrix.
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	one := big.NewRat(1, 1)
	for i := 0; i < n; i++ {
		m[i][i].Set(one)
	}
	return m
}

// Dims returns the row and column counts.
func (m Matrix) Dims() (rows, cols int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		r := make([]*big.Rat, len(row))
		for j, v := range row {
			r[j] = new(big.Rat).Set(v)
		}
		out[i] = r
	}
	return out
}

// Mul computes m·other using the convention result[i][j] = Σ_k
// m[i][k]*other[k][j].
func (m Matrix) Mul(other Matrix) (Matrix, error) {
	mr, mc := m.Dims()
	or, oc := other.Dims()
	if mc != or {
		return nil, errors.New("rat: incompatible matrix dimensions for multiplication")
	}
	out := NewMatrix(mr, oc)
	for i := 0; i < mr; i++ {
		for j := 0; j < oc; j++ {
			sum := new(big.Rat)
			for k := 0; k < mc; k++ {
				sum.Add(sum, new(big.Rat).Mul(m[i][k], other[k][j]))
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// Inverse computes the exact inverse of a square matrix via Gauss-Jordan
// elimination with partial pivoting over the rationals, operating on
// the augmented matrix [A | I]. It returns ErrSingular if any pivot
// column is entirely zero.
func (m Matrix) Inverse() (Matrix, error) {
	n, cols := m.Dims()
	if n != cols {
		return nil, errors.New("rat: Inverse requires a square matrix")
	}
	aug := make(Matrix, n)
	for i := 0; i < n; i++ {
		row := make([]*big.Rat, 2*n)
		for j := 0; j < n; j++ {
			row[j] = new(big.Rat).Set(m[i][j])
		}
		for j := 0; j < n; j++ {
			v := new(big.Rat)
			if i == j {
				v.SetInt64(1)
			}
			row[n+j] = v
		}
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if aug[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return nil, ErrSingular
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		inv := new(big.Rat).Inv(aug[col][col])
		for j := 0; j < 2*n; j++ {
			aug[col][j].Mul(aug[col][j], inv)
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := new(big.Rat).Set(aug[r][col])
			if factor.Sign() == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[r][j].Sub(aug[r][j], new(big.Rat).Mul(factor, aug[col][j]))
			}
		}
	}

	out := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = new(big.Rat).Set(aug[i][n+j])
		}
	}
	return out, nil
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix) IsIdentity() bool {
	n, cols := m.Dims()
	if n != cols {
		return false
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := int64(0)
			if i == j {
				want = 1
			}
			if m[i][j].Cmp(big.NewRat(want, 1)) != 0 {
				return false
			}
		}
	}
	return true
}
