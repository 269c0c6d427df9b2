package scale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/scale"
)

func TestMulSameBaseAddsPowers(t *testing.T) {
	got := scale.Kilo.Mul(scale.Kilo, 0.75, false)
	require.Equal(t, scale.Mega, got)
}

func TestMulCrossBaseSnapsToNearest(t *testing.T) {
	got := scale.Kilo.Mul(scale.Kibi, 0.75, true)
	require.True(t, got.Base == 10 || got.Base == 2)
}

func TestDivSameBaseSubtractsPowers(t *testing.T) {
	got := scale.Mega.Div(scale.Kilo, 0.75, false)
	require.Equal(t, scale.Kilo, got)
}

func TestNearestPicksClosestDecimalMember(t *testing.T) {
	got := scale.Nearest(1000, false, 0.75)
	require.Equal(t, scale.Kilo, got)
}

func TestEqualValueToleratesFloatingError(t *testing.T) {
	drifted := scale.Scale{Base: 10, Power: 3}
	require.True(t, scale.Kilo.EqualValue(drifted, 1e-9))
}

func TestStripPrefixLongestMatchFirst(t *testing.T) {
	s, suffix, ok := scale.StripPrefix("dam")
	require.True(t, ok)
	require.Equal(t, scale.Deca, s)
	require.Equal(t, "m", suffix)
}

func TestStripPrefixKibiBinary(t *testing.T) {
	s, suffix, ok := scale.StripPrefix("KiB")
	require.True(t, ok)
	require.Equal(t, scale.Kibi, s)
	require.Equal(t, "B", suffix)
}

func TestStripPrefixNoMatch(t *testing.T) {
	_, _, ok := scale.StripPrefix("second")
	require.False(t, ok, "a bare unit name with no leading prefix symbol should not strip")
}

func TestStripPrefixRejectsBarePrefix(t *testing.T) {
	_, _, ok := scale.StripPrefix("k")
	require.False(t, ok, "a prefix with no remaining unit suffix is not a valid strip")
}

func TestIsOne(t *testing.T) {
	require.True(t, scale.One.IsOne())
	require.False(t, scale.Kilo.IsOne())
}
