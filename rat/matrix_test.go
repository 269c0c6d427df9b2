package rat_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/rat"
)

func TestInverseRoundTrip(t *testing.T) {
	m := rat.Matrix{
		{big.NewRat(2, 1), big.NewRat(0, 1)},
		{big.NewRat(1, 1), big.NewRat(1, 1)},
	}
	inv, err := m.Inverse()
	require.NoError(t, err)

	product, err := m.Mul(inv)
	require.NoError(t, err)
	require.True(t, product.IsIdentity())
}

func TestInverseSingular(t *testing.T) {
	m := rat.Matrix{
		{big.NewRat(1, 1), big.NewRat(2, 1)},
		{big.NewRat(2, 1), big.NewRat(4, 1)},
	}
	_, err := m.Inverse()
	require.ErrorIs(t, err, rat.ErrSingular)
}

func TestIdentityIsIdentity(t *testing.T) {
	require.True(t, rat.Identity(3).IsIdentity())
}

func TestCloneIsIndependent(t *testing.T) {
	m := rat.Identity(2)
	c := m.Clone()
	c[0][0].SetInt64(5)
	require.Equal(t, int64(1), m[0][0].Num().Int64())
}
