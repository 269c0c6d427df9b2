package dimension

import "github.com/radiativity-co/ucon/basis"

// Standard returns a freshly populated registry over basis.SI carrying
// the engine's standard dimension table, grounded on
// original_source/ucon/dimension.py's ~45-entry enumeration: the eight
// SI base dimensions, the four pseudo-dimensions, and the mechanics,
// electromagnetic, thermodynamic, photometric, and chemistry derived
// dimensions reachable from them.
//
// Vector coordinates follow basis.SI's component order:
// (length, mass, time, current, temperature, amount_of_substance,
// luminous_intensity, information).
func Standard() *Registry {
	b := basis.SI
	r := NewRegistry(b)

	reg := func(name, symbol string, coords ...int64) Dimension {
		d := dim(b, name, symbol, coords...)
		r.Register(d)
		return d
	}

	r.Register(None(b))

	reg("length", "L", 1, 0, 0, 0, 0, 0, 0, 0)
	reg("mass", "M", 0, 1, 0, 0, 0, 0, 0, 0)
	reg("time", "T", 0, 0, 1, 0, 0, 0, 0, 0)
	reg("current", "I", 0, 0, 0, 1, 0, 0, 0, 0)
	reg("temperature", "Θ", 0, 0, 0, 0, 1, 0, 0, 0)
	reg("amount_of_substance", "N", 0, 0, 0, 0, 0, 1, 0, 0)
	reg("luminous_intensity", "J", 0, 0, 0, 0, 0, 0, 1, 0)
	reg("information", "B", 0, 0, 0, 0, 0, 0, 0, 1)

	r.Register(Pseudo(b, TagAngle, "angle", "rad"))
	r.Register(Pseudo(b, TagSolidAngle, "solid_angle", "sr"))
	r.Register(Pseudo(b, TagRatio, "ratio", "%"))
	r.Register(Pseudo(b, TagCount, "count", "ea"))

	// Mechanics.
	reg("velocity", "v", 1, 0, -1, 0, 0, 0, 0, 0)
	reg("acceleration", "a", 1, 0, -2, 0, 0, 0, 0, 0)
	reg("force", "F", 1, 1, -2, 0, 0, 0, 0, 0)
	reg("energy", "E", 2, 1, -2, 0, 0, 0, 0, 0)
	reg("power", "P", 2, 1, -3, 0, 0, 0, 0, 0)
	reg("momentum", "p", 1, 1, -1, 0, 0, 0, 0, 0)
	reg("angular_momentum", "L_ang", 2, 1, -1, 0, 0, 0, 0, 0)
	reg("area", "A", 2, 0, 0, 0, 0, 0, 0, 0)
	reg("volume", "V", 3, 0, 0, 0, 0, 0, 0, 0)
	reg("density", "ρ", -3, 1, 0, 0, 0, 0, 0, 0)
	reg("pressure", "Pa", -1, 1, -2, 0, 0, 0, 0, 0)
	reg("frequency", "Hz", 0, 0, -1, 0, 0, 0, 0, 0)
	reg("dynamic_viscosity", "μ", -1, 1, -1, 0, 0, 0, 0, 0)
	reg("kinematic_viscosity", "ν", 2, 0, -1, 0, 0, 0, 0, 0)
	reg("gravitation", "G", 3, -1, -2, 0, 0, 0, 0, 0)

	// Electromagnetic.
	reg("charge", "Q", 0, 0, 1, 1, 0, 0, 0, 0)
	reg("voltage", "U", 2, 1, -3, -1, 0, 0, 0, 0)
	reg("resistance", "Ω", 2, 1, -3, -2, 0, 0, 0, 0)
	reg("resistivity", "ρ_e", 3, 1, -3, -2, 0, 0, 0, 0)
	reg("conductance", "S", -2, -1, 3, 2, 0, 0, 0, 0)
	reg("conductivity", "σ", -3, -1, 3, 2, 0, 0, 0, 0)
	reg("capacitance", "F_cap", -2, -1, 4, 2, 0, 0, 0, 0)
	reg("inductance", "H_ind", 2, 1, -2, -2, 0, 0, 0, 0)
	reg("magnetic_flux", "Wb", 2, 1, -2, -1, 0, 0, 0, 0)
	reg("magnetic_flux_density", "T_mag", 0, 1, -2, -1, 0, 0, 0, 0)
	reg("magnetic_permeability", "μ0", 1, 1, -2, -2, 0, 0, 0, 0)
	reg("permittivity", "ε0", -3, -1, 4, 2, 0, 0, 0, 0)
	reg("electric_field_strength", "E_field", 1, 1, -3, -1, 0, 0, 0, 0)

	// Thermodynamics.
	reg("entropy", "S_ent", 2, 1, -2, 0, -1, 0, 0, 0)
	reg("specific_heat_capacity", "c_p", 2, 0, -2, 0, -1, 0, 0, 0)
	reg("thermal_conductivity", "k_th", 1, 1, -3, 0, -1, 0, 0, 0)

	// Photometry.
	reg("illuminance", "lx", -2, 0, 0, 0, 0, 0, 1, 0)

	// Chemistry.
	reg("catalytic_activity", "kat", 0, 0, -1, 0, 0, 1, 0, 0)
	reg("molar_mass", "M_mol", 0, 1, 0, 0, 0, -1, 0, 0)
	reg("molar_volume", "V_mol", 3, 0, 0, 0, 0, -1, 0, 0)
	reg("molar_concentration", "c", -3, 0, 0, 0, 0, 1, 0, 0)

	return r
}
