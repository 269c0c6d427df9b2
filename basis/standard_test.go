package basis_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/basis"
)

// TestSiToCgsEsuCurrentVector verifies Testable Property #10: SI
// current maps onto the CGS-ESU electromagnetic combination
// L^(3/2) M^(1/2) T^(-2).
func TestSiToCgsEsuCurrentVector(t *testing.T) {
	v, err := basis.NewVector(basis.SI, r(0), r(0), r(0), big.NewRat(1, 1), r(0), r(0), r(0), r(0))
	require.NoError(t, err)

	out, err := basis.SiToCgsEsu.Apply(v, false)
	require.NoError(t, err)

	require.Equal(t, big.NewRat(3, 2), out.At("length"))
	require.Equal(t, big.NewRat(1, 2), out.At("mass"))
	require.Equal(t, big.NewRat(-2, 1), out.At("time"))
	require.Equal(t, big.NewRat(0, 1), out.At("charge"))
}

func TestSiToCgsLossyProjectionDropsCurrent(t *testing.T) {
	v, err := basis.NewVector(basis.SI, r(0), r(0), r(0), r(1), r(0), r(0), r(0), r(0))
	require.NoError(t, err)
	_, err = basis.SiToCgs.Apply(v, false)
	require.Error(t, err, "dropping a nonzero current component without allow_projection must fail")

	_, err = basis.SiToCgs.Apply(v, true)
	require.NoError(t, err)
}

func TestSiToCgsCgsToSiMechanicalRoundTrip(t *testing.T) {
	v, err := basis.NewVector(basis.SI, big.NewRat(1, 1), big.NewRat(-1, 1), big.NewRat(-2, 1), r(0), r(0), r(0), r(0), r(0))
	require.NoError(t, err)

	cgs, err := basis.SiToCgs.Apply(v, false)
	require.NoError(t, err)
	back, err := basis.CgsToSi.Apply(cgs, false)
	require.NoError(t, err)
	require.True(t, back.Equal(v), "a mechanical-only SI vector must round-trip through CGS exactly")
}

// TestSiToNaturalConstantBoundRoundTrip verifies Testable Property
// #11: the SI<->Natural transform, though built from a non-square
// matrix, is made exactly invertible via its c/G/hbar bindings.
func TestSiToNaturalConstantBoundRoundTrip(t *testing.T) {
	v, err := basis.NewVector(basis.SI, big.NewRat(2, 1), big.NewRat(-1, 1), big.NewRat(3, 1), r(0), r(0), r(0), r(0), r(0))
	require.NoError(t, err)

	natural, err := basis.SiToNatural.Apply(v, false)
	require.NoError(t, err)

	back, err := basis.NaturalToSi.Apply(natural, true)
	require.NoError(t, err)

	require.Equal(t, big.NewRat(2, 1), back.At("length"))
	require.Equal(t, big.NewRat(-1, 1), back.At("mass"))
	require.Equal(t, big.NewRat(3, 1), back.At("time"))
}

func TestSiToNaturalBindingsCarryConstants(t *testing.T) {
	symbols := make(map[string]bool)
	for _, b := range basis.SiToNatural.Bindings {
		symbols[b.ConstantSymbol] = true
	}
	require.True(t, symbols["c"])
	require.True(t, symbols["G"])
	require.True(t, symbols["hbar"])
}
