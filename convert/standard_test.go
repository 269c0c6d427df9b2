package convert_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/convert"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/unit"
)

func TestStandardConvertsWattToDecibelMilliwatt(t *testing.T) {
	g := convert.Standard()
	m, err := g.Convert(unit.Single(unit.Watt, unitOne()), unit.Single(unit.DecibelMilliwatt, unitOne()), basis.SI)
	require.NoError(t, err)
	require.InDelta(t, 30.0, m.Apply(1.0), 1e-9, "1 W must read as 30 dBm")
	require.InDelta(t, 0.0, m.Apply(1e-3), 1e-9)
	require.InDelta(t, -30.0, m.Apply(1e-6), 1e-9)

	inv, err := m.Inverse()
	require.NoError(t, err)
	require.InDelta(t, 1.0, inv.Apply(30.0), 1e-9, "30 dBm must read back as 1 W")
}

func TestStandardConvertsMolarConcentrationToPH(t *testing.T) {
	g := convert.Standard()
	molPerLiter := unit.Single(unit.Mole, unitOne()).Div(unit.Single(unit.Liter, unitOne()))
	m, err := g.Convert(molPerLiter, unit.Single(unit.PHUnit, unitOne()), basis.SI)
	require.NoError(t, err)
	require.InDelta(t, 7.0, m.Apply(1e-7), 1e-9)
	require.InDelta(t, 4.0, m.Apply(1e-4), 1e-9)
	require.InDelta(t, 14.0, m.Apply(1e-14), 1e-9)
}

func TestStandardConvertsFractionToNinesAndDecibel(t *testing.T) {
	g := convert.Standard()

	toNines, err := g.Convert(unit.Single(unit.Fraction, unitOne()), unit.Single(unit.Nines, unitOne()), basis.SI)
	require.NoError(t, err)
	require.InDelta(t, 3.0, toNines.Apply(0.999), 1e-6, "three nines of availability")

	toDecibel, err := g.Convert(unit.Single(unit.Fraction, unitOne()), unit.Single(unit.Decibel, unitOne()), basis.SI)
	require.NoError(t, err)
	require.InDelta(t, 0.0, toDecibel.Apply(1.0), 1e-9)
	require.InDelta(t, 20.0, toDecibel.Apply(100.0), 1e-9)
}

func TestStandardConvertsLiterToCubicMeter(t *testing.T) {
	g := convert.Standard()
	m, err := g.Convert(unit.Single(unit.Liter, unitOne()), unit.Single(unit.Meter, unitOne()).Pow(bigRat(3)), basis.SI)
	require.NoError(t, err)
	require.InDelta(t, 0.001, m.Apply(1.0), 1e-12, "1 liter must equal 0.001 cubic meter")
}

func TestStandardConvertsPoundToGram(t *testing.T) {
	g := convert.Standard()
	m, err := g.Convert(unit.Single(unit.Pound, unitOne()), unit.Single(unit.Gram, unitOne()), basis.SI)
	require.NoError(t, err)
	require.InDelta(t, 453.59237, m.Apply(1.0), 1e-6)
}

func TestSiToCgsEsuRoundTripsThroughStatampere(t *testing.T) {
	unit.AssignDimensions(dimension.Standard())
	g := convert.New()
	g.RegisterUnit(unit.Ampere)
	convert.SiToCgsEdges(g, basis.SiToCgsEsu)

	statampere, _, ok := g.ResolveUnit("statA")
	require.True(t, ok, "SiToCgsEdges must register statampere under its alias")

	m, err := g.Convert(unit.Single(unit.Ampere, unitOne()), unit.Single(statampere, unitOne()), basis.SI)
	require.NoError(t, err)

	const cCmPerS = 2.99792458e10
	forward := m.Apply(1.0)
	require.InDelta(t, cCmPerS/10, forward, 1.0, "1 A must convert to c/10 statamperes")

	inv, err := m.Inverse()
	require.NoError(t, err)
	require.InDelta(t, 1.0, inv.Apply(forward), 1e-6, "the statampere edge must invert back to 1 A")
}
