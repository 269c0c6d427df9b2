package convert

import (
	"math"
	"math/big"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/mapping"
	"github.com/radiativity-co/ucon/scale"
	"github.com/radiativity-co/ucon/unit"
)

// mustAdd panics on an edge-registration failure — only used while
// building the fixed standard graph, where every edge is known-valid.
func mustAdd(g *Graph, src, dst *unit.Unit, m mapping.Map) {
	if err := g.AddEdge(src, dst, m, nil); err != nil {
		panic("convert: standard graph edge " + src.Name + "->" + dst.Name + ": " + err.Error())
	}
}

// mustAddProduct panics on a product-edge registration failure, the
// AddProductEdge counterpart to mustAdd.
func mustAddProduct(g *Graph, src, dst unit.UnitProduct, m mapping.Map, b *basis.Basis) {
	if err := g.AddProductEdge(src, dst, m, b); err != nil {
		panic("convert: standard graph product edge " + src.Shorthand() + "->" + dst.Shorthand() + ": " + err.Error())
	}
}

// logReference builds a Log map anchored so that Apply(reference) == 0,
// the Go equivalent of original_source/ucon/maps.py's LogMap(scale,
// base, reference): this port's mapping.Log has no Reference field, so
// the matching offset is folded in once here at each call site instead.
func logReference(scale, base, reference float64) mapping.Map {
	return mapping.Log{Scale: scale, Base: base, Offset: -scale * math.Log(reference) / math.Log(base)}
}

// Standard returns a conversion graph covering the engine's built-in
// unit catalog: SI base units linked to their common alternates,
// grounded on original_source/ucon/units.py's catalog and the
// conversion edges implied by its docstring examples (temperature,
// decibels, pH, imperial length).
func Standard() *Graph {
	r := dimension.Standard()
	unit.AssignDimensions(r)

	g := New()
	for _, u := range unit.All() {
		g.RegisterUnit(u)
	}

	// Length: imperial <-> meter.
	mustAdd(g, unit.Inch, unit.Meter, mapping.Linear{A: 0.0254})
	mustAdd(g, unit.Foot, unit.Meter, mapping.Linear{A: 0.3048})
	mustAdd(g, unit.Mile, unit.Meter, mapping.Linear{A: 1609.344})

	// Time: hour <-> second, day <-> second.
	mustAdd(g, unit.Hour, unit.Second, mapping.Linear{A: 3600})
	mustAdd(g, unit.Day, unit.Second, mapping.Linear{A: 86400})

	// Volume: liter <-> meter^3, a product edge since meter^3 has no
	// atomic Unit of its own.
	mustAddProduct(g,
		unit.Single(unit.Liter, scale.One),
		unit.Single(unit.Meter, scale.One).Pow(big.NewRat(3, 1)),
		mapping.Linear{A: 0.001}, basis.SI)

	// Temperature: celsius <-> kelvin (affine), carried exactly as
	// original_source encodes it (°C = K - 273.15).
	mustAdd(g, unit.Celsius, unit.Kelvin, mapping.Affine{A: 1, B: 273.15})

	// Angle: degree <-> radian.
	mustAdd(g, unit.Degree, unit.Radian, mapping.Linear{A: math.Pi / 180})

	// Solid angle: square degree <-> steradian.
	mustAdd(g, unit.SquareDegree, unit.Steradian, mapping.Linear{A: (math.Pi / 180) * (math.Pi / 180)})

	// Ratio: percent <-> dimensionless none-tagged ratio is handled by
	// Dimension algebra directly (percent IS the ratio pseudo-dimension
	// at scale 1/100); no edge needed since percent is itself the base
	// ratio unit here. fraction is the linear (0..1) ratio unit the
	// logarithmic edges below anchor against.
	mustAdd(g, unit.Fraction, unit.Percent, mapping.Linear{A: 100})

	// Mass: pound <-> gram.
	mustAdd(g, unit.Pound, unit.Gram, mapping.Linear{A: 453.59237})

	// Pressure: psi, atmosphere, bar <-> pascal.
	mustAdd(g, unit.Psi, unit.Pascal, mapping.Linear{A: 6894.757})
	mustAdd(g, unit.Atmosphere, unit.Pascal, mapping.Linear{A: 101325})
	mustAdd(g, unit.Bar, unit.Pascal, mapping.Linear{A: 100000})

	// Force: dyne <-> newton.
	mustAdd(g, unit.Dyne, unit.Newton, mapping.Linear{A: 1e-5})

	// Dynamic viscosity: poise <-> pascal*second.
	mustAddProduct(g,
		unit.Single(unit.Poise, scale.One),
		unit.Single(unit.Pascal, scale.One).Mul(unit.Single(unit.Second, scale.One)),
		mapping.Linear{A: 0.1}, basis.SI)

	// Energy: calorie <-> joule.
	mustAdd(g, unit.Calorie, unit.Joule, mapping.Linear{A: 4.184})

	// Power: horsepower <-> watt.
	mustAdd(g, unit.Horsepower, unit.Watt, mapping.Linear{A: 745.7})

	// Logarithmic units, grounded on
	// original_source/examples/units/logarithmic.py and
	// original_source/tests/ucon/test_logarithmic.py's exact reference
	// points. bel <-> decibel is a plain scale edge; neper, decibel,
	// and nines each anchor to fraction (the linear ratio unit) via a
	// Log/Composed map; decibel_milliwatt, decibel_watt, decibel_volt,
	// and decibel_spl each anchor to their physical reference unit.
	mustAdd(g, unit.Bel, unit.Decibel, mapping.Linear{A: 10})
	mustAdd(g, unit.Fraction, unit.Decibel, logReference(10, 10, 1))
	mustAdd(g, unit.Fraction, unit.Neper, logReference(1, math.E, 1))
	mustAdd(g, unit.Fraction, unit.Nines,
		mapping.Composed{Outer: mapping.Log{Scale: -1, Base: 10}, Inner: mapping.Affine{A: -1, B: 1}})

	mustAdd(g, unit.Watt, unit.DecibelMilliwatt, logReference(10, 10, 1e-3))
	mustAdd(g, unit.Watt, unit.DecibelWatt, logReference(10, 10, 1))
	mustAdd(g, unit.Volt, unit.DecibelVolt, logReference(20, 10, 1))
	mustAdd(g, unit.Pascal, unit.DecibelSPL, logReference(20, 10, 20e-6))

	// pH: -log10([H+]/1 mol/L), anchored from the molar_concentration
	// product mole/liter rather than a standalone atomic unit.
	mustAddProduct(g,
		unit.Single(unit.Mole, scale.One).Div(unit.Single(unit.Liter, scale.One)),
		unit.Single(unit.PHUnit, scale.One),
		logReference(-1, 10, 1), basis.SI)

	// Information: byte <-> bit.
	mustAdd(g, unit.Byte, unit.Bit, mapping.Linear{A: 8})

	return g
}

// SiToCgsEdges returns the unit-level edges needed to bridge the SI
// and CGS-ESU bases via basis.SiToCgsEsu, grounded on spec.md's
// SI_TO_CGS_ESU worked example (ampere -> statampere at the exact
// (3/2, 1/2, -2, 0) vector mapping baked into the BasisTransform
// itself; the unit-level edge here only needs the numeric scale
// factor for the charge/current axis, c = 2.99792458e10 cm/s).
func SiToCgsEdges(g *Graph, t *basis.BasisTransform) {
	const cCmPerS = 2.99792458e10
	transformed, err := t.Apply(unit.Ampere.Dimension.Vector, false)
	if err != nil {
		panic("convert: SI->CGS-ESU current vector: " + err.Error())
	}
	statampere := &unit.Unit{
		Name:      "statampere",
		Aliases:   []string{"statA"},
		Dimension: dimension.Dimension{Vector: transformed, Name: "current_esu"},
	}
	g.RegisterUnit(statampere)
	if err := g.AddEdge(unit.Ampere, statampere, mapping.Linear{A: cCmPerS / 10}, t); err != nil {
		panic("convert: SI->CGS-ESU current edge: " + err.Error())
	}
}
