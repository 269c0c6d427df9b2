package unit

import "github.com/radiativity-co/ucon/dimension"

// Standard units over the standard SI dimension registry, grounded on
// original_source/ucon/units.py's module-level unit catalog. Each
// pointer is minted once so graph-level identity (map keys, registry
// lookups) is stable for the lifetime of the process.
var (
	Meter   = &Unit{Name: "meter", Aliases: []string{"m"}}
	Gram    = &Unit{Name: "gram", Aliases: []string{"g"}}
	Second  = &Unit{Name: "second", Aliases: []string{"s", "sec"}}
	Hour    = &Unit{Name: "hour", Aliases: []string{"h"}}
	Liter   = &Unit{Name: "liter", Aliases: []string{"L", "l"}}
	Kelvin  = &Unit{Name: "kelvin", Aliases: []string{"K"}}
	Celsius = &Unit{Name: "celsius", Aliases: []string{"°C", "degC"}}

	Mole    = &Unit{Name: "mole", Aliases: []string{"mol", "n"}}
	Ampere  = &Unit{Name: "ampere", Aliases: []string{"A", "amp"}}
	Coulomb = &Unit{Name: "coulomb", Aliases: []string{"C"}}
	Volt    = &Unit{Name: "volt", Aliases: []string{"V"}}
	Ohm     = &Unit{Name: "ohm", Aliases: []string{"Ω"}}
	Joule   = &Unit{Name: "joule", Aliases: []string{"J"}}
	Watt    = &Unit{Name: "watt", Aliases: []string{"W"}}
	Newton  = &Unit{Name: "newton", Aliases: []string{"N"}}
	Hertz   = &Unit{Name: "hertz", Aliases: []string{"Hz"}}
	Pascal  = &Unit{Name: "pascal", Aliases: []string{"Pa"}}
	Farad   = &Unit{Name: "farad", Aliases: []string{"F"}}
	Henry   = &Unit{Name: "henry", Aliases: []string{"H"}}
	Siemens = &Unit{Name: "siemens", Aliases: []string{"S"}}
	Weber   = &Unit{Name: "weber", Aliases: []string{"Wb"}}
	Tesla   = &Unit{Name: "tesla", Aliases: []string{"T"}}
	Lux     = &Unit{Name: "lux", Aliases: []string{"lx"}}
	Lumen   = &Unit{Name: "lumen", Aliases: []string{"lm"}}

	Radian     = &Unit{Name: "radian", Aliases: []string{"rad"}}
	Degree     = &Unit{Name: "degree", Aliases: []string{"deg", "°"}}
	Steradian  = &Unit{Name: "steradian", Aliases: []string{"sr"}}
	Percent    = &Unit{Name: "percent", Aliases: []string{"%"}}
	Each       = &Unit{Name: "each", Aliases: []string{"ea"}}
	Decibel    = &Unit{Name: "decibel", Aliases: []string{"dB"}}
	PHUnit     = &Unit{Name: "pH_unit", Aliases: []string{"pH"}}

	Inch = &Unit{Name: "inch", Aliases: []string{"in"}}
	Foot = &Unit{Name: "foot", Aliases: []string{"ft"}}
	Mile = &Unit{Name: "mile", Aliases: []string{"mi"}}
	Bit  = &Unit{Name: "bit", Aliases: []string{"b"}}
	Byte = &Unit{Name: "byte", Aliases: []string{"B"}}

	// Mass, pressure, force, viscosity, energy, power, solid-angle, and
	// ratio alternates, grounded on original_source/ucon/units.py's
	// pattern of one canonical SI unit plus its common alternates.
	Pound       = &Unit{Name: "pound", Aliases: []string{"lb", "lbs"}}
	Psi         = &Unit{Name: "psi", Aliases: []string{"psi"}}
	Atmosphere  = &Unit{Name: "atmosphere", Aliases: []string{"atm"}}
	Bar         = &Unit{Name: "bar", Aliases: []string{"bar"}}
	Dyne        = &Unit{Name: "dyne", Aliases: []string{"dyn"}}
	Poise       = &Unit{Name: "poise", Aliases: []string{"P"}}
	Calorie     = &Unit{Name: "calorie", Aliases: []string{"cal"}}
	Horsepower  = &Unit{Name: "horsepower", Aliases: []string{"hp"}}
	SquareDegree = &Unit{Name: "square_degree", Aliases: []string{"deg2"}}
	Fraction    = &Unit{Name: "fraction", Aliases: []string{"frac"}}

	// Logarithmic units. The referenced ones (decibel_milliwatt,
	// decibel_watt, decibel_volt, decibel_spl) carry the dimension of
	// the physical quantity their scale is referenced to (see
	// AssignDimensions below), since a conversion edge can only join
	// units of equal dimension; bel, neper and nines carry the ratio
	// pseudo-dimension.
	Bel              = &Unit{Name: "bel", Aliases: []string{}}
	Neper            = &Unit{Name: "neper", Aliases: []string{"Np"}}
	DecibelMilliwatt = &Unit{Name: "decibel_milliwatt", Aliases: []string{"dBm"}}
	DecibelWatt      = &Unit{Name: "decibel_watt", Aliases: []string{"dBW"}}
	DecibelVolt      = &Unit{Name: "decibel_volt", Aliases: []string{"dBV"}}
	DecibelSPL       = &Unit{Name: "decibel_spl", Aliases: []string{"dBSPL"}}
	Nines            = &Unit{Name: "nines", Aliases: []string{}}

	// Day and dose round out the factor-chain compute example: a
	// calendar unit outside hour/second, and a count-like pseudo-unit
	// for dosing rates.
	Day  = &Unit{Name: "day", Aliases: []string{"days"}}
	Dose = &Unit{Name: "dose", Aliases: []string{"doses"}}
)

// AssignDimensions fills in each standard unit's Dimension field from
// the given registry. Units are declared as vars above (without a
// dimension, since dimension.Standard() depends on basis.SI which must
// exist first) and wired together here, mirroring how units.py binds
// each Unit to a Dimension.* attribute at import time.
func AssignDimensions(r *dimension.Registry) {
	mustDim := func(name string) dimension.Dimension {
		d, ok := r.ByName(name)
		if !ok {
			panic("unit: standard dimension not found: " + name)
		}
		return d
	}
	Meter.Dimension = mustDim("length")
	Gram.Dimension = mustDim("mass")
	Second.Dimension = mustDim("time")
	Hour.Dimension = mustDim("time")
	Liter.Dimension = mustDim("volume")
	Kelvin.Dimension = mustDim("temperature")
	Celsius.Dimension = mustDim("temperature")

	Mole.Dimension = mustDim("amount_of_substance")
	Ampere.Dimension = mustDim("current")
	Coulomb.Dimension = mustDim("charge")
	Volt.Dimension = mustDim("voltage")
	Ohm.Dimension = mustDim("resistance")
	Joule.Dimension = mustDim("energy")
	Watt.Dimension = mustDim("power")
	Newton.Dimension = mustDim("force")
	Hertz.Dimension = mustDim("frequency")
	Pascal.Dimension = mustDim("pressure")
	Farad.Dimension = mustDim("capacitance")
	Henry.Dimension = mustDim("inductance")
	Siemens.Dimension = mustDim("conductance")
	Weber.Dimension = mustDim("magnetic_flux")
	Tesla.Dimension = mustDim("magnetic_flux_density")
	Lux.Dimension = mustDim("illuminance")
	Lumen.Dimension = mustDim("luminous_intensity")

	Radian.Dimension = r.ResolvePseudo(dimension.TagAngle)
	Degree.Dimension = r.ResolvePseudo(dimension.TagAngle)
	Steradian.Dimension = r.ResolvePseudo(dimension.TagSolidAngle)
	Percent.Dimension = r.ResolvePseudo(dimension.TagRatio)
	Each.Dimension = r.ResolvePseudo(dimension.TagCount)
	Decibel.Dimension = r.ResolvePseudo(dimension.TagRatio)
	PHUnit.Dimension = mustDim("molar_concentration")

	Inch.Dimension = mustDim("length")
	Foot.Dimension = mustDim("length")
	Mile.Dimension = mustDim("length")
	Bit.Dimension = r.ResolvePseudo(dimension.TagCount)
	Byte.Dimension = r.ResolvePseudo(dimension.TagCount)

	Pound.Dimension = mustDim("mass")
	Psi.Dimension = mustDim("pressure")
	Atmosphere.Dimension = mustDim("pressure")
	Bar.Dimension = mustDim("pressure")
	Dyne.Dimension = mustDim("force")
	Poise.Dimension = mustDim("dynamic_viscosity")
	Calorie.Dimension = mustDim("energy")
	Horsepower.Dimension = mustDim("power")
	SquareDegree.Dimension = r.ResolvePseudo(dimension.TagSolidAngle)
	Fraction.Dimension = r.ResolvePseudo(dimension.TagRatio)

	Bel.Dimension = r.ResolvePseudo(dimension.TagRatio)
	Neper.Dimension = r.ResolvePseudo(dimension.TagRatio)
	DecibelMilliwatt.Dimension = mustDim("power")
	DecibelWatt.Dimension = mustDim("power")
	DecibelVolt.Dimension = mustDim("voltage")
	DecibelSPL.Dimension = mustDim("pressure")
	Nines.Dimension = r.ResolvePseudo(dimension.TagRatio)

	Day.Dimension = mustDim("time")
	Dose.Dimension = r.ResolvePseudo(dimension.TagCount)
}

// All returns every unit minted in this package, for bulk registration
// into a ConversionGraph's name registry.
func All() []*Unit {
	return []*Unit{
		Meter, Gram, Second, Hour, Liter, Kelvin, Celsius,
		Mole, Ampere, Coulomb, Volt, Ohm, Joule, Watt, Newton, Hertz,
		Pascal, Farad, Henry, Siemens, Weber, Tesla, Lux, Lumen,
		Radian, Degree, Steradian, Percent, Each, Decibel, PHUnit,
		Inch, Foot, Mile, Bit, Byte,
		Pound, Psi, Atmosphere, Bar, Dyne, Poise, Calorie, Horsepower,
		SquareDegree, Fraction,
		Bel, Neper, DecibelMilliwatt, DecibelWatt, DecibelVolt, DecibelSPL, Nines,
		Day, Dose,
	}
}
