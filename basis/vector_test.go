package basis_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/basis"
)

func r(n int64) *big.Rat { return big.NewRat(n, 1) }

func mustVec(t *testing.T, b *basis.Basis, coords ...*big.Rat) *basis.Vector {
	t.Helper()
	v, err := basis.NewVector(b, coords...)
	require.NoError(t, err)
	return v
}

func TestVectorMulDivAreInverse(t *testing.T) {
	b := basis.MustBasis("t",
		basis.BasisComponent{Name: "length", Symbol: "L"},
		basis.BasisComponent{Name: "time", Symbol: "T"},
	)
	for _, tc := range []struct {
		name string
		a, c []*big.Rat
	}{
		{"integer exponents", []*big.Rat{r(1), r(-2)}, []*big.Rat{r(3), r(1)}},
		{"fractional exponents", []*big.Rat{big.NewRat(1, 2), big.NewRat(-3, 4)}, []*big.Rat{big.NewRat(1, 3), r(2)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := mustVec(t, b, tc.a...)
			c := mustVec(t, b, tc.c...)
			product, err := a.Mul(c)
			require.NoError(t, err)
			back, err := product.Div(c)
			require.NoError(t, err)
			require.True(t, back.Equal(a), "Mul then Div must round-trip to the original vector")
		})
	}
}

func TestVectorMulMismatchedBasis(t *testing.T) {
	b1 := basis.MustBasis("a", basis.BasisComponent{Name: "x", Symbol: "X"})
	b2 := basis.MustBasis("b", basis.BasisComponent{Name: "x", Symbol: "X"})
	v1 := mustVec(t, b1, r(1))
	v2 := mustVec(t, b2, r(1))
	_, err := v1.Mul(v2)
	require.Error(t, err)
}

func TestVectorPowAndNeg(t *testing.T) {
	b := basis.MustBasis("t", basis.BasisComponent{Name: "length", Symbol: "L"})
	v := mustVec(t, b, big.NewRat(2, 3))
	doubled := v.Pow(r(2))
	require.Equal(t, big.NewRat(4, 3), doubled.At(0))

	negated := v.Neg()
	require.Equal(t, new(big.Rat).Neg(big.NewRat(2, 3)), negated.At(0))
}

func TestVectorIsZero(t *testing.T) {
	b := basis.MustBasis("t", basis.BasisComponent{Name: "length", Symbol: "L"})
	require.True(t, basis.ZeroVector(b).IsZero())
	nonzero := mustVec(t, b, r(1))
	require.False(t, nonzero.IsZero())
}

func TestVectorAtByNameAndSymbol(t *testing.T) {
	b := basis.MustBasis("t", basis.BasisComponent{Name: "length", Symbol: "L"}, basis.BasisComponent{Name: "time", Symbol: "T"})
	v := mustVec(t, b, r(2), r(-1))
	require.Equal(t, r(2), v.At("length"))
	require.Equal(t, r(2), v.At("L"))
	require.Nil(t, v.At("mass"))
}

func TestVectorString(t *testing.T) {
	b := basis.MustBasis("t", basis.BasisComponent{Name: "length", Symbol: "L"}, basis.BasisComponent{Name: "time", Symbol: "T"})
	v := mustVec(t, b, r(1), r(-2))
	require.Equal(t, "length*time^-2", v.String())
	require.Equal(t, "1", basis.ZeroVector(b).String())
}
