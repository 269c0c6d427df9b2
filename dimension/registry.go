package dimension

import (
	"math/big"

	"github.com/radiativity-co/ucon/basis"
)

// Registry maps (basis, vector) to a canonical Dimension. Unlike the
// source's module-level dict, Registry is an explicit value so callers
// never rely on a global singleton; callers hold and pass the Registry
// themselves (uconctx carries no registry).
type Registry struct {
	b       *basis.Basis
	byKey   map[string]Dimension
	none    Dimension
	haveNone bool
}

// NewRegistry returns an empty registry over b.
func NewRegistry(b *basis.Basis) *Registry {
	return &Registry{b: b, byKey: make(map[string]Dimension)}
}

func key(v *basis.Vector) string {
	s := ""
	for _, c := range v.Coords() {
		s += c.RatString() + ","
	}
	return s
}

// Register records d under its vector. Registering a zero-vector,
// non-pseudo dimension establishes the registry's NONE.
func (r *Registry) Register(d Dimension) {
	r.byKey[key(d.Vector)+tagKey(d.Tag)] = d
	if d.Vector.IsZero() && !d.IsPseudo() {
		r.none = d
		r.haveNone = true
	}
}

func tagKey(t PseudoTag) string {
	return t.String()
}

// Resolve returns the canonical Dimension for v: the registered NONE if
// v is zero and one is registered, the registered match if any, or
// else a fresh derived Dimension whose name encodes the vector.
func (r *Registry) Resolve(v *basis.Vector) Dimension {
	if v.IsZero() && r.haveNone {
		return r.none
	}
	if d, ok := r.byKey[key(v)+tagKey(TagNone)]; ok {
		return d
	}
	return derivedOrNamed(v)
}

// ResolvePseudo resolves a vector under a specific pseudo tag, falling
// back to constructing one if the registry has no entry (the four
// pseudo-dimensions are only ever the zero vector, so there is exactly
// one meaningful instance per tag per basis).
func (r *Registry) ResolvePseudo(tag PseudoTag) Dimension {
	if d, ok := r.byKey[key(basis.ZeroVector(r.b))+tagKey(tag)]; ok {
		return d
	}
	return Pseudo(r.b, tag, tag.String(), tag.String())
}

// Basis returns the basis the registry resolves dimensions over.
func (r *Registry) Basis() *basis.Basis { return r.b }

// All returns every registered dimension, order unspecified.
func (r *Registry) All() []Dimension {
	out := make([]Dimension, 0, len(r.byKey))
	for _, d := range r.byKey {
		out = append(out, d)
	}
	return out
}

// ByName looks up a registered dimension by its canonical name.
// Reports ok=false if no registered dimension carries that name.
func (r *Registry) ByName(name string) (Dimension, bool) {
	for _, d := range r.byKey {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

func vec(b *basis.Basis, coords ...int64) *basis.Vector {
	rats := make([]*big.Rat, len(coords))
	for i, c := range coords {
		rats[i] = big.NewRat(c, 1)
	}
	v, err := basis.NewVector(b, rats...)
	if err != nil {
		panic(err)
	}
	return v
}

func vecFrac(b *basis.Basis, pairs ...[2]int64) *basis.Vector {
	rats := make([]*big.Rat, len(pairs))
	for i, p := range pairs {
		rats[i] = big.NewRat(p[0], p[1])
	}
	v, err := basis.NewVector(b, rats...)
	if err != nil {
		panic(err)
	}
	return v
}

func dim(b *basis.Basis, name, symbol string, coords ...int64) Dimension {
	return Dimension{Vector: vec(b, coords...), Name: name, Symbol: symbol}
}
