package basis

import "math/big"

// Standard bases and transforms, grounded on original_source/ucon/bases.py.
//
// SI is the 8-component basis used throughout this engine's standard
// dimension table (see package dimension). CGS and CGSESU are the
// classical 3- and 4-component electromagnetic unit systems. Natural is
// a 3-component stand-in for "natural units" (c, hbar, G set to 1):
// rather than collapsing length/mass/time onto a single energy exponent
// (which is not invertible, since a rank-3 source cannot round-trip
// through a rank-1 target), each SI generator keeps its own natural
// counterpart so NATURAL_TO_SI and SI_TO_NATURAL remain exact inverses
// on the subspace the bindings cover, while the bindings themselves
// still carry the constant provenance (c, hbar, G) needed downstream.
var (
	SI = MustBasis("SI",
		BasisComponent{Name: "length", Symbol: "L"},
		BasisComponent{Name: "mass", Symbol: "M"},
		BasisComponent{Name: "time", Symbol: "T"},
		BasisComponent{Name: "current", Symbol: "I"},
		BasisComponent{Name: "temperature", Symbol: "Θ"},
		BasisComponent{Name: "amount_of_substance", Symbol: "N"},
		BasisComponent{Name: "luminous_intensity", Symbol: "J"},
		BasisComponent{Name: "information", Symbol: "B"},
	)

	CGS = MustBasis("CGS",
		BasisComponent{Name: "length", Symbol: "L"},
		BasisComponent{Name: "mass", Symbol: "M"},
		BasisComponent{Name: "time", Symbol: "T"},
	)

	CGSESU = MustBasis("CGS-ESU",
		BasisComponent{Name: "length", Symbol: "L"},
		BasisComponent{Name: "mass", Symbol: "M"},
		BasisComponent{Name: "time", Symbol: "T"},
		BasisComponent{Name: "charge", Symbol: "Q"},
	)

	Natural = MustBasis("Natural",
		BasisComponent{Name: "natural_length", Symbol: "L*"},
		BasisComponent{Name: "natural_mass", Symbol: "M*"},
		BasisComponent{Name: "natural_time", Symbol: "T*"},
	)
)

func r(n, d int64) *big.Rat { return big.NewRat(n, d) }

// SiToCgs is a lossy projection: length, mass, and time carry through
// unchanged; current, temperature, amount of substance, luminous
// intensity, and information are dropped.
var SiToCgs = func() *BasisTransform {
	m := [][]*big.Rat{
		{r(1, 1), r(0, 1), r(0, 1)}, // length
		{r(0, 1), r(1, 1), r(0, 1)}, // mass
		{r(0, 1), r(0, 1), r(1, 1)}, // time
		{r(0, 1), r(0, 1), r(0, 1)}, // current
		{r(0, 1), r(0, 1), r(0, 1)}, // temperature
		{r(0, 1), r(0, 1), r(0, 1)}, // amount of substance
		{r(0, 1), r(0, 1), r(0, 1)}, // luminous intensity
		{r(0, 1), r(0, 1), r(0, 1)}, // information
	}
	t, err := NewBasisTransform(SI, CGS, m)
	if err != nil {
		panic(err)
	}
	return t
}()

// CgsToSi is the clean-projection embedding of SiToCgs.
var CgsToSi = func() *BasisTransform {
	t, err := SiToCgs.Embedding()
	if err != nil {
		panic(err)
	}
	return t
}()

// SiToCgsEsu carries length, mass, and time through unchanged and maps
// current onto the electromagnetic combination L^(3/2) M^(1/2) T^(-2)
// that defines the electrostatic unit of current (see Testable
// Property #10). Remaining SI components are dropped.
var SiToCgsEsu = func() *BasisTransform {
	m := [][]*big.Rat{
		{r(1, 1), r(0, 1), r(0, 1), r(0, 1)},             // length
		{r(0, 1), r(1, 1), r(0, 1), r(0, 1)},             // mass
		{r(0, 1), r(0, 1), r(1, 1), r(0, 1)},             // time
		{r(3, 2), r(1, 2), r(-2, 1), r(0, 1)},            // current
		{r(0, 1), r(0, 1), r(0, 1), r(0, 1)},             // temperature
		{r(0, 1), r(0, 1), r(0, 1), r(0, 1)},             // amount of substance
		{r(0, 1), r(0, 1), r(0, 1), r(0, 1)},             // luminous intensity
		{r(0, 1), r(0, 1), r(0, 1), r(0, 1)},             // information
	}
	t, err := NewBasisTransform(SI, CGSESU, m)
	if err != nil {
		panic(err)
	}
	return t
}()

// CgsEsuToSi maps CGS-ESU back to SI. The current row of SiToCgsEsu is
// not a clean single-1 column, so SiToCgsEsu.Embedding fails; the
// inverse is instead built by hand over length, mass and time, with
// the SI current column left at zero. Recovering current from CGS-ESU
// mechanical units requires the constant-aware path, not this matrix.
var CgsEsuToSi = func() *BasisTransform {
	t, err := SiToCgsEsu.Embedding()
	// Embedding fails on the non-clean current row by design; build
	// the length/mass/time-only inverse by hand instead.
	if err != nil {
		m := [][]*big.Rat{
			{r(1, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1)},
			{r(0, 1), r(1, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1)},
			{r(0, 1), r(0, 1), r(1, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1)},
			{r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1), r(0, 1)},
		}
		t, err = NewBasisTransform(CGSESU, SI, m)
		if err != nil {
			panic(err)
		}
	}
	return t
}()

// SiToNatural and NaturalToSi exercise ConstantAwareBasisTransform's
// non-square inversion: length is bound via c, mass via G, time via
// hbar.
var SiToNatural = func() *ConstantAwareBasisTransform {
	m := [][]*big.Rat{
		{r(1, 1), r(0, 1), r(0, 1)}, // length -> natural_length
		{r(0, 1), r(1, 1), r(0, 1)}, // mass -> natural_mass
		{r(0, 1), r(0, 1), r(1, 1)}, // time -> natural_time
		{r(0, 1), r(0, 1), r(0, 1)}, // current (dropped)
		{r(0, 1), r(0, 1), r(0, 1)}, // temperature (dropped)
		{r(0, 1), r(0, 1), r(0, 1)}, // amount of substance (dropped)
		{r(0, 1), r(0, 1), r(0, 1)}, // luminous intensity (dropped)
		{r(0, 1), r(0, 1), r(0, 1)}, // information (dropped)
	}
	t, err := NewBasisTransform(SI, Natural, m)
	if err != nil {
		panic(err)
	}
	bindFor := func(siComponent, naturalComponent, constant string) ConstantBinding {
		coords := make([]*big.Rat, Natural.Len())
		for i := range coords {
			coords[i] = new(big.Rat)
		}
		coords[Natural.Index(naturalComponent)] = big.NewRat(1, 1)
		expr, err := NewVector(Natural, coords...)
		if err != nil {
			panic(err)
		}
		return ConstantBinding{
			SourceComponent:  siComponent,
			TargetExpression: expr,
			ConstantSymbol:   constant,
			Exponent:         big.NewRat(1, 1),
		}
	}
	return NewConstantAwareBasisTransform(t,
		bindFor("length", "natural_length", "c"),
		bindFor("mass", "natural_mass", "G"),
		bindFor("time", "natural_time", "hbar"),
	)
}()

// NaturalToSi is the exact inverse of SiToNatural.
var NaturalToSi = func() *ConstantAwareBasisTransform {
	inv, err := SiToNatural.Inverse()
	if err != nil {
		panic(err)
	}
	return inv
}()
