package convert_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/convert"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/mapping"
	"github.com/radiativity-co/ucon/unit"
)

func lengthDim(t *testing.T) (dimension.Dimension, *basis.Basis) {
	t.Helper()
	b := basis.MustBasis("t", basis.BasisComponent{Name: "length", Symbol: "L"})
	v, err := basis.NewVector(b, bigRat(1))
	require.NoError(t, err)
	return dimension.Dimension{Vector: v, Name: "length"}, b
}

func TestConvertChainsThroughIntermediateUnits(t *testing.T) {
	dim, b := lengthDim(t)
	meter := &unit.Unit{Name: "meter", Dimension: dim}
	centimeter := &unit.Unit{Name: "centimeter", Dimension: dim}
	inch := &unit.Unit{Name: "inch", Dimension: dim}

	g := convert.New()
	g.RegisterUnit(meter)
	g.RegisterUnit(centimeter)
	g.RegisterUnit(inch)
	require.NoError(t, g.AddEdge(centimeter, meter, mapping.Linear{A: 0.01}, nil))
	require.NoError(t, g.AddEdge(inch, centimeter, mapping.Linear{A: 2.54}, nil))

	m, err := g.Convert(unit.Single(inch, unitOne()), unit.Single(meter, unitOne()), b)
	require.NoError(t, err)
	require.InDelta(t, 0.0254, m.Apply(1), 1e-12, "1 inch via centimeter must equal 0.0254 meter")
}

func TestConvertSameUnitIsIdentity(t *testing.T) {
	dim, b := lengthDim(t)
	meter := &unit.Unit{Name: "meter", Dimension: dim}
	g := convert.New()
	g.RegisterUnit(meter)
	m, err := g.Convert(unit.Single(meter, unitOne()), unit.Single(meter, unitOne()), b)
	require.NoError(t, err)
	require.InDelta(t, 5.0, m.Apply(5), 1e-12)
}

func TestAddEdgeRejectsCyclicInconsistency(t *testing.T) {
	dim, _ := lengthDim(t)
	meter := &unit.Unit{Name: "meter", Dimension: dim}
	foot := &unit.Unit{Name: "foot", Dimension: dim}

	g := convert.New()
	g.RegisterUnit(meter)
	g.RegisterUnit(foot)
	require.NoError(t, g.AddEdge(foot, meter, mapping.Linear{A: 0.3048}, nil))

	// An inconsistent reverse edge: meter -> foot at the wrong factor.
	err := g.AddEdge(meter, foot, mapping.Linear{A: 10}, nil)
	require.Error(t, err, "a reverse edge whose round trip isn't the identity must be rejected")
}

func TestAddEdgeRejectsDimensionMismatch(t *testing.T) {
	lenDim, _ := lengthDim(t)
	massB := basis.MustBasis("m", basis.BasisComponent{Name: "mass", Symbol: "M"})
	massVec, err := basis.NewVector(massB, bigRat(1))
	require.NoError(t, err)
	massDim := dimension.Dimension{Vector: massVec, Name: "mass"}

	meter := &unit.Unit{Name: "meter", Dimension: lenDim}
	gram := &unit.Unit{Name: "gram", Dimension: massDim}

	g := convert.New()
	g.RegisterUnit(meter)
	g.RegisterUnit(gram)
	err = g.AddEdge(meter, gram, mapping.Linear{A: 1}, nil)
	require.Error(t, err)
}

func TestConvertNoPathReturnsConversionNotFound(t *testing.T) {
	dim, b := lengthDim(t)
	meter := &unit.Unit{Name: "meter", Dimension: dim}
	parsec := &unit.Unit{Name: "parsec", Dimension: dim}
	g := convert.New()
	g.RegisterUnit(meter)
	g.RegisterUnit(parsec)

	_, err := g.Convert(unit.Single(meter, unitOne()), unit.Single(parsec, unitOne()), b)
	require.Error(t, err)
}
