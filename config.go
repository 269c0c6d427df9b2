// Package ucon collects the configuration knobs shared across the
// dimensional-analysis and unit-conversion engine's packages.
package ucon

// Config bundles the tunable knobs of the core engine and their
// defaults. No function in this module takes a *Config: callers pass
// the values as explicit parameters where they apply.
type Config struct {
	// UndershootBias is the value to pass as Scale.Mul/Div/Nearest's
	// undershootBias, which favors the smaller side when a cross-base
	// numeric scale factor is snapped to the closest known prefix.
	UndershootBias float64

	// IncludeBinary is the value to pass as Scale.Mul/Div/Nearest's
	// includeBinary, which adds binary (kibi..yobi) members to the
	// candidates.
	IncludeBinary bool

	// CyclicConsistencyTolerance records how far a composed round-trip
	// map may deviate from identity. convert.Graph's AddEdge and
	// AddProductEdge do not read this field; they use a fixed 1e-9.
	CyclicConsistencyTolerance float64

	// AllowProjection is the value to pass as BasisTransform.Apply's
	// allowProjection, which silently zeroes a nonzero component that
	// the transform's matrix would otherwise drop, instead of raising
	// LossyProjection.
	AllowProjection bool
}

// DefaultConfig returns the engine's documented defaults.
func DefaultConfig() *Config {
	return &Config{
		UndershootBias:             0.75,
		IncludeBinary:              false,
		CyclicConsistencyTolerance: 1e-9,
		AllowProjection:            false,
	}
}

// Or returns c if non-nil, else DefaultConfig().
func (c *Config) Or() *Config {
	if c != nil {
		return c
	}
	return DefaultConfig()
}
