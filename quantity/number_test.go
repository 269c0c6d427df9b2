package quantity_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/convert"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/mapping"
	"github.com/radiativity-co/ucon/quantity"
	"github.com/radiativity-co/ucon/scale"
	"github.com/radiativity-co/ucon/unit"
)

func lengthBasis(t *testing.T) *basis.Basis {
	t.Helper()
	return basis.MustBasis("t", basis.BasisComponent{Name: "length", Symbol: "L"})
}

func lengthUnit(t *testing.T, b *basis.Basis, name string) *unit.Unit {
	t.Helper()
	v, err := basis.NewVector(b, big.NewRat(1, 1))
	require.NoError(t, err)
	return &unit.Unit{Name: name, Dimension: dimension.Dimension{Vector: v, Name: "length"}}
}

func TestAddConvertsAndCombinesUncertaintyInQuadrature(t *testing.T) {
	b := lengthBasis(t)
	meter := lengthUnit(t, b, "meter")
	centimeter := lengthUnit(t, b, "centimeter")

	g := convert.New()
	g.RegisterUnit(meter)
	g.RegisterUnit(centimeter)
	require.NoError(t, g.AddEdge(centimeter, meter, mapping.Linear{A: 0.01}, nil))

	n, err := quantity.NewWithUncertainty(1.0, unit.Single(meter, scale.One), 0.03)
	require.NoError(t, err)
	o, err := quantity.NewWithUncertainty(100.0, unit.Single(centimeter, scale.One), 4.0)
	require.NoError(t, err)

	sum, err := quantity.Add(n, o, g, b)
	require.NoError(t, err)
	require.InDelta(t, 2.0, sum.Quantity, 1e-9)
	require.InDelta(t, math.Sqrt(0.03*0.03+0.04*0.04), *sum.Uncertainty, 1e-9)
}

func TestSubRejectsDimensionMismatch(t *testing.T) {
	b := basis.MustBasis("t", basis.BasisComponent{Name: "length", Symbol: "L"}, basis.BasisComponent{Name: "time", Symbol: "T"})
	lv, err := basis.NewVector(b, big.NewRat(1, 1), big.NewRat(0, 1))
	require.NoError(t, err)
	tv, err := basis.NewVector(b, big.NewRat(0, 1), big.NewRat(1, 1))
	require.NoError(t, err)
	meter := &unit.Unit{Name: "meter", Dimension: dimension.Dimension{Vector: lv, Name: "length"}}
	second := &unit.Unit{Name: "second", Dimension: dimension.Dimension{Vector: tv, Name: "time"}}

	g := convert.New()
	g.RegisterUnit(meter)
	g.RegisterUnit(second)

	n := quantity.New(1, unit.Single(meter, scale.One))
	o := quantity.New(1, unit.Single(second, scale.One))
	_, err = quantity.Sub(n, o, g, b)
	require.Error(t, err)
}

func TestMulCombinesRelativeUncertainty(t *testing.T) {
	b := lengthBasis(t)
	meter := lengthUnit(t, b, "meter")

	n, err := quantity.NewWithUncertainty(2.0, unit.Single(meter, scale.One), 0.1)
	require.NoError(t, err)
	o, err := quantity.NewWithUncertainty(3.0, unit.Single(meter, scale.One), 0.3)
	require.NoError(t, err)

	product := quantity.Mul(n, o)
	require.InDelta(t, 6.0, product.Quantity, 1e-12)
	wantRel := math.Sqrt(math.Pow(0.1/2.0, 2)+math.Pow(0.3/3.0, 2))
	require.InDelta(t, wantRel*6.0, *product.Uncertainty, 1e-9)
}

func TestDivRejectsZeroDivisor(t *testing.T) {
	b := lengthBasis(t)
	meter := lengthUnit(t, b, "meter")
	n := quantity.New(1, unit.Single(meter, scale.One))
	o := quantity.New(0, unit.Single(meter, scale.One))
	_, err := quantity.Div(n, o)
	require.Error(t, err)
}

func TestPowScalesRelativeUncertaintyByExponent(t *testing.T) {
	b := lengthBasis(t)
	meter := lengthUnit(t, b, "meter")
	n, err := quantity.NewWithUncertainty(2.0, unit.Single(meter, scale.One), 0.2)
	require.NoError(t, err)

	squared := n.Pow(big.NewRat(2, 1))
	require.InDelta(t, 4.0, squared.Quantity, 1e-12)
	require.InDelta(t, 0.8, *squared.Uncertainty, 1e-9, "relative uncertainty 0.1 scaled by |k|=2 on a quantity of 4")
}

func TestToPropagatesUncertaintyThroughDerivative(t *testing.T) {
	b := lengthBasis(t)
	meter := lengthUnit(t, b, "meter")
	centimeter := lengthUnit(t, b, "centimeter")
	g := convert.New()
	g.RegisterUnit(meter)
	g.RegisterUnit(centimeter)
	require.NoError(t, g.AddEdge(centimeter, meter, mapping.Linear{A: 0.01}, nil))

	n, err := quantity.NewWithUncertainty(1.0, unit.Single(meter, scale.One), 0.01)
	require.NoError(t, err)
	out, err := n.To(unit.Single(centimeter, scale.One), g, b)
	require.NoError(t, err)
	require.InDelta(t, 100.0, out.Quantity, 1e-9)
	require.InDelta(t, 1.0, *out.Uncertainty, 1e-9, "derivative of meter->cm is 100, so 0.01m uncertainty becomes 1cm")
}

func TestSimplifyFoldsScaleIntoQuantity(t *testing.T) {
	meter := &unit.Unit{Name: "meter"}
	n := quantity.New(5, unit.Single(meter, scale.Kilo))
	out := n.Simplify()
	require.InDelta(t, 5000.0, out.Quantity, 1e-9)
	require.True(t, out.Unit.Factors()[unit.UnitFactor{Unit: meter, Scale: scale.One}] != nil)
}

func TestNewWithUncertaintyRejectsNegative(t *testing.T) {
	meter := &unit.Unit{Name: "meter"}
	_, err := quantity.NewWithUncertainty(1, unit.Single(meter, scale.One), -1)
	require.Error(t, err)
}

func TestStringFormatsWithAndWithoutUncertainty(t *testing.T) {
	meter := &unit.Unit{Name: "meter", Aliases: []string{"m"}}
	plain := quantity.New(5, unit.Single(meter, scale.One))
	require.Equal(t, "5 m", plain.String())

	withU, err := quantity.NewWithUncertainty(5, unit.Single(meter, scale.One), 0.2)
	require.NoError(t, err)
	require.Equal(t, "5 ± 0.2 m", withU.String())
}
