package convert

import (
	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/scale"
	"github.com/radiativity-co/ucon/unit"
)

// Lookup resolves a bare identifier against this graph's local
// registry, falling back to stripping a known SI or binary prefix
// (e.g. "km" -> Meter at Scale.Kilo) and retrying, per spec.md §4.11.
// It is the LookupFunc the parser is typically handed.
func (g *Graph) Lookup(name string) (*unit.Unit, scale.Scale, error) {
	if u, s, ok := g.ResolveUnit(name); ok {
		return u, s, nil
	}
	if s, suffix, ok := scale.StripPrefix(name); ok {
		if u, base, ok := g.ResolveUnit(suffix); ok && base.IsOne() {
			return u, s, nil
		}
	}
	return nil, scale.Scale{}, &uconerr.UnknownUnit{Name: name}
}
