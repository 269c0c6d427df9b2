package basis_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/rat"
)

func TestBasisTransformInverseRoundTrip(t *testing.T) {
	src := basis.MustBasis("src", basis.BasisComponent{Name: "x"}, basis.BasisComponent{Name: "y"})
	dst := basis.MustBasis("dst", basis.BasisComponent{Name: "u"}, basis.BasisComponent{Name: "v"})

	m := rat.NewMatrix(2, 2)
	m[0][0].SetInt64(2)
	m[1][1].SetInt64(1)
	m[1][0].SetInt64(1)

	tf, err := basis.NewBasisTransform(src, dst, m)
	require.NoError(t, err)

	v := mustVec(t, src, r(3), r(-1))
	forward, err := tf.Apply(v, false)
	require.NoError(t, err)

	inv, err := tf.Inverse()
	require.NoError(t, err)
	back, err := inv.Apply(forward, false)
	require.NoError(t, err)
	require.True(t, back.Equal(v), "Apply then Inverse.Apply should round-trip")
}

func TestBasisTransformLossyProjectionRejected(t *testing.T) {
	src := basis.MustBasis("src", basis.BasisComponent{Name: "x"}, basis.BasisComponent{Name: "y"})
	dst := basis.MustBasis("dst", basis.BasisComponent{Name: "u"})

	m := rat.NewMatrix(2, 1)
	m[0][0].SetInt64(1)
	// y's row is entirely zero: dropping a nonzero y component is lossy.

	tf, err := basis.NewBasisTransform(src, dst, m)
	require.NoError(t, err)

	v := mustVec(t, src, r(1), r(1))
	_, err = tf.Apply(v, false)
	require.Error(t, err)

	projected, err := tf.Apply(v, true)
	require.NoError(t, err)
	require.Equal(t, r(1), projected.At(0))
}

func TestBasisTransformEmbeddingCleanProjectionOnly(t *testing.T) {
	src := basis.MustBasis("src", basis.BasisComponent{Name: "x"}, basis.BasisComponent{Name: "y"})
	dst := basis.MustBasis("dst", basis.BasisComponent{Name: "u"})

	clean := rat.NewMatrix(2, 1)
	clean[0][0].SetInt64(1)
	tf, err := basis.NewBasisTransform(src, dst, clean)
	require.NoError(t, err)
	embedding, err := tf.Embedding()
	require.NoError(t, err)
	require.Equal(t, dst, embedding.Source)
	require.Equal(t, src, embedding.Target)

	dirty := rat.NewMatrix(2, 1)
	dirty[0][0].SetInt64(2)
	tf2, err := basis.NewBasisTransform(src, dst, dirty)
	require.NoError(t, err)
	_, err = tf2.Embedding()
	require.Error(t, err, "a non-1 coefficient is not a clean projection")
}

func TestBasisTransformThenComposition(t *testing.T) {
	a := basis.MustBasis("a", basis.BasisComponent{Name: "x"})
	b := basis.MustBasis("b", basis.BasisComponent{Name: "y"})
	c := basis.MustBasis("c", basis.BasisComponent{Name: "z"})

	ab := rat.NewMatrix(1, 1)
	ab[0][0].SetInt64(2)
	f, err := basis.NewBasisTransform(a, b, ab)
	require.NoError(t, err)

	bc := rat.NewMatrix(1, 1)
	bc[0][0].SetInt64(3)
	g, err := basis.NewBasisTransform(b, c, bc)
	require.NoError(t, err)

	composed, err := f.Then(g)
	require.NoError(t, err)

	v := mustVec(t, a, r(1))
	direct, err := composed.Apply(v, false)
	require.NoError(t, err)

	viaF, err := f.Apply(v, false)
	require.NoError(t, err)
	viaG, err := g.Apply(viaF, false)
	require.NoError(t, err)

	require.True(t, direct.Equal(viaG))
	require.Equal(t, big.NewRat(6, 1), direct.At(0))
}

func TestBasisTransformIdentity(t *testing.T) {
	b := basis.MustBasis("b", basis.BasisComponent{Name: "x"})
	require.True(t, basis.Identity(b).IsIdentity())
}
