// Package scale implements decimal and binary metric prefixes
// (yocto..yotta, kibi..yobi) and the arithmetic combining them,
// including cross-base numeric snapping.
package scale

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scale is a (base, power) prefix: decimal prefixes use base 10,
// binary prefixes use base 2. The identity scale is (10, 0).
type Scale struct {
	Base  int
	Power int
}

// Decimal constructs a decimal-base scale at the given power.
func Decimal(power int) Scale { return Scale{Base: 10, Power: power} }

// Binary constructs a binary-base scale at the given power.
func Binary(power int) Scale { return Scale{Base: 2, Power: power} }

// Value returns the numeric factor base^power.
func (s Scale) Value() float64 { return math.Pow(float64(s.Base), float64(s.Power)) }

// IsOne reports whether s is the identity scale.
func (s Scale) IsOne() bool { return s.Base == 10 && s.Power == 0 }

var (
	One = Decimal(0)

	Yocto = Decimal(-24)
	Zepto = Decimal(-21)
	Atto  = Decimal(-18)
	Femto = Decimal(-15)
	Pico  = Decimal(-12)
	Nano  = Decimal(-9)
	Micro = Decimal(-6)
	Milli = Decimal(-3)
	Centi = Decimal(-2)
	Deci  = Decimal(-1)
	Deca  = Decimal(1)
	Hecto = Decimal(2)
	Kilo  = Decimal(3)
	Mega  = Decimal(6)
	Giga  = Decimal(9)
	Tera  = Decimal(12)
	Peta  = Decimal(15)
	Exa   = Decimal(18)
	Zetta = Decimal(21)
	Yotta = Decimal(24)

	Kibi = Binary(10)
	Mebi = Binary(20)
	Gibi = Binary(30)
	Tebi = Binary(40)
	Pebi = Binary(50)
	Exbi = Binary(60)
	Zebi = Binary(70)
	Yobi = Binary(80)
)

var decimalMembers = []Scale{Yocto, Zepto, Atto, Femto, Pico, Nano, Micro, Milli, Centi, Deci, One, Deca, Hecto, Kilo, Mega, Giga, Tera, Peta, Exa, Zetta, Yotta}
var binaryMembers = []Scale{One, Kibi, Mebi, Gibi, Tebi, Pebi, Exbi, Zebi, Yobi}

// Mul combines two scales. Same-base scales add powers exactly;
// cross-base scales are evaluated numerically and snapped to the
// nearest known member, biased toward the smaller side by
// undershootBias (see Nearest). Same-base products such as kilo*kilo
// are exact and never reach Nearest.
func (s Scale) Mul(o Scale, undershootBias float64, includeBinary bool) Scale {
	if s.Base == o.Base {
		return Scale{Base: s.Base, Power: s.Power + o.Power}
	}
	return Nearest(s.Value()*o.Value(), includeBinary, undershootBias)
}

// Div divides two scales analogously to Mul.
func (s Scale) Div(o Scale, undershootBias float64, includeBinary bool) Scale {
	if s.Base == o.Base {
		return Scale{Base: s.Base, Power: s.Power - o.Power}
	}
	return Nearest(s.Value()/o.Value(), includeBinary, undershootBias)
}

// Nearest returns the member (decimal, plus binary if includeBinary)
// whose value is closest to v on a log scale, applying undershootBias
// to favor the smaller candidate when two members are nearly
// equidistant, so a value that floating error puts just above a member
// does not snap to the next member up.
func Nearest(v float64, includeBinary bool, undershootBias float64) Scale {
	candidates := append([]Scale(nil), decimalMembers...)
	if includeBinary {
		candidates = append(candidates, binaryMembers...)
	}
	logV := math.Log(math.Abs(v))
	best := candidates[0]
	bestScore := math.Inf(1)
	for _, c := range candidates {
		logC := math.Log(c.Value())
		diff := logV - logC
		score := math.Abs(diff)
		if diff > 0 {
			// v is above this candidate: apply the undershoot bias so
			// a borderline case prefers the smaller (already-passed)
			// member instead of overshooting to the next one up.
			score *= undershootBias
		}
		if score < bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// Equal reports whether two scales denote the same (base, power) pair.
func (s Scale) Equal(o Scale) bool { return s.Base == o.Base && s.Power == o.Power }

// EqualValue reports whether two scales evaluate to the same numeric
// factor within a small relative tolerance, using gonum/floats for the
// tolerance comparison (useful across decimal/binary scales that are
// coincidentally numerically close, e.g. kilo vs kibi).
func (s Scale) EqualValue(o Scale, tol float64) bool {
	return floats.EqualWithinRel(s.Value(), o.Value(), tol)
}

func (s Scale) String() string {
	if s.IsOne() {
		return ""
	}
	return fmt.Sprintf("%d^%d", s.Base, s.Power)
}

// PrefixSymbols maps SI and binary prefix symbols to their Scale. The
// map itself is unordered; prefixesByLength below gives the
// longest-first order that resolves collisions (e.g. "da" for deca vs
// "d" for deci). Used by callers
// that need to strip a prefix from the front of an identifier before
// looking up the remaining unit name, per spec.md §4.11's "the lookup
// returns (unit, scale) when a known SI prefix is stripped from the
// front".
var PrefixSymbols = map[string]Scale{
	"Y": Yotta, "Z": Zetta, "E": Exa, "P": Peta, "T": Tera,
	"G": Giga, "M": Mega, "k": Kilo, "h": Hecto, "da": Deca,
	"d": Deci, "c": Centi, "m": Milli, "µ": Micro, "u": Micro,
	"n": Nano, "p": Pico, "f": Femto, "a": Atto, "z": Zepto, "y": Yocto,
	"Ki": Kibi, "Mi": Mebi, "Gi": Gibi, "Ti": Tebi,
	"Pi": Pebi, "Ei": Exbi, "Zi": Zebi, "Yi": Yobi,
}

// canonicalSymbols maps each non-identity Scale to the one symbol used
// to render it (unlike PrefixSymbols, which accepts parsing aliases
// like "u" for micro alongside "µ"), used by Symbol below.
var canonicalSymbols = map[Scale]string{
	Yotta: "Y", Zetta: "Z", Exa: "E", Peta: "P", Tera: "T",
	Giga: "G", Mega: "M", Kilo: "k", Hecto: "h", Deca: "da",
	Deci: "d", Centi: "c", Milli: "m", Micro: "µ",
	Nano: "n", Pico: "p", Femto: "f", Atto: "a", Zepto: "z", Yocto: "y",
	Kibi: "Ki", Mebi: "Mi", Gibi: "Gi", Tebi: "Ti",
	Pebi: "Pi", Exbi: "Ei", Zebi: "Zi", Yobi: "Yi",
}

// Symbol returns the canonical prefix symbol for s ("k" for Kilo, "Ki"
// for Kibi), or "" for the identity scale or a scale with no
// registered symbol (e.g. a cross-base Nearest snap that missed every
// member, which should not happen but is not this function's job to
// detect).
func Symbol(s Scale) string {
	return canonicalSymbols[s]
}

// prefixesByLength lists PrefixSymbols' keys ordered longest-first so
// StripPrefix tries "da"/"Ki" before falling back to single-letter
// prefixes.
var prefixesByLength = []string{
	"da", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi", "Yi",
	"Y", "Z", "E", "P", "T", "G", "M", "k", "h",
	"d", "c", "m", "µ", "u", "n", "p", "f", "a", "z", "y",
}

// StripPrefix tries each known prefix symbol (longest first) against
// the front of name, returning the prefix's Scale and the remaining
// suffix. ok is false if no known prefix matches or the suffix would
// be empty (a bare prefix is not a unit).
func StripPrefix(name string) (s Scale, suffix string, ok bool) {
	for _, p := range prefixesByLength {
		if len(name) > len(p) && name[:len(p)] == p {
			return PrefixSymbols[p], name[len(p):], true
		}
	}
	return Scale{}, "", false
}
