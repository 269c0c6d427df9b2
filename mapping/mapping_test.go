package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/mapping"
)

func TestLinearComposeClosesOverLinear(t *testing.T) {
	a := mapping.Linear{A: 2}
	b := mapping.Linear{A: 3}
	composed := a.Compose(b)
	lin, ok := composed.(mapping.Linear)
	require.True(t, ok, "Linear.Compose(Linear) must close over Linear")
	require.InDelta(t, 6.0, lin.A, 1e-12)
	require.InDelta(t, composed.Apply(5), a.Apply(b.Apply(5)), 1e-9)
}

func TestLinearComposeAffineClosesOverAffine(t *testing.T) {
	a := mapping.Linear{A: 2}
	b := mapping.Affine{A: 3, B: 1}
	composed := a.Compose(b)
	_, ok := composed.(mapping.Affine)
	require.True(t, ok)
	require.InDelta(t, composed.Apply(5), a.Apply(b.Apply(5)), 1e-9)
}

func TestAffineInverseRoundTrip(t *testing.T) {
	m := mapping.Affine{A: 1, B: 273.15}
	inv, err := m.Inverse()
	require.NoError(t, err)
	require.InDelta(t, 100.0, inv.Apply(m.Apply(100)), 1e-9)
}

func TestLogExpAreInverses(t *testing.T) {
	m := mapping.NewLog(1, 10, 0)
	inv, err := m.Inverse()
	require.NoError(t, err)
	exp, ok := inv.(mapping.Exp)
	require.True(t, ok)
	require.InDelta(t, 7.0, m.Apply(exp.Apply(7)), 1e-9)
}

func TestLogIsNeverIdentity(t *testing.T) {
	m := mapping.NewLog(1, 10, 0)
	require.False(t, m.IsIdentity(1e-6))
}

func TestComposedChainRuleDerivative(t *testing.T) {
	outer := mapping.Affine{A: 2, B: 1}
	inner := mapping.Linear{A: 3}
	composed := mapping.Composed{Outer: outer, Inner: inner}
	d, err := composed.Derivative(5)
	require.NoError(t, err)
	require.InDelta(t, 6.0, d, 1e-12, "d/dx[2*(3x)+1] = 6")
}

func TestComposedInverseReversesOrder(t *testing.T) {
	outer := mapping.Affine{A: 2, B: 1}
	inner := mapping.Linear{A: 3}
	composed := mapping.Composed{Outer: outer, Inner: inner}
	inv, err := composed.Inverse()
	require.NoError(t, err)
	require.InDelta(t, 5.0, inv.Apply(composed.Apply(5)), 1e-9)
}

func TestIdentityIsIdentity(t *testing.T) {
	require.True(t, mapping.Identity().IsIdentity(1e-9))
}

func TestAffinePowRejectsArbitraryExponent(t *testing.T) {
	m := mapping.Affine{A: 2, B: 1}
	_, err := m.Pow(2)
	require.Error(t, err)
}
