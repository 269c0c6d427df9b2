// Package basis implements ordered coordinate systems of independent
// dimension generators ("bases"), exact-rational exponent vectors over
// them, and linear transforms between bases — including non-square and
// constant-aware transforms, and a directed graph of registered
// transforms supporting shortest-path composition.
package basis

import "fmt"

// BasisComponent names one generator of a Basis, with an optional
// shorthand symbol.
type BasisComponent struct {
	Name   string
	Symbol string
}

// Basis is a named, ordered, immutable set of independent dimension
// generators. Names and symbols share one lookup namespace: no
// component's name may equal another's name or symbol.
type Basis struct {
	name       string
	components []BasisComponent
	index      map[string]int
}

// NewBasis builds a Basis from a name and its ordered components. It
// returns an error if any component's name or symbol collides with
// another's.
func NewBasis(name string, components ...BasisComponent) (*Basis, error) {
	idx := make(map[string]int, len(components)*2)
	for i, c := range components {
		if c.Name == "" {
			return nil, fmt.Errorf("basis %q: component %d has empty name", name, i)
		}
		if _, ok := idx[c.Name]; ok {
			return nil, fmt.Errorf("basis %q: duplicate component name %q", name, c.Name)
		}
		idx[c.Name] = i
		if c.Symbol != "" {
			if _, ok := idx[c.Symbol]; ok {
				return nil, fmt.Errorf("basis %q: component symbol %q collides with an existing name or symbol", name, c.Symbol)
			}
			idx[c.Symbol] = i
		}
	}
	out := make([]BasisComponent, len(components))
	copy(out, components)
	return &Basis{name: name, components: out, index: idx}, nil
}

// MustBasis is like NewBasis but panics on error; intended for
// package-level standard basis declarations.
func MustBasis(name string, components ...BasisComponent) *Basis {
	b, err := NewBasis(name, components...)
	if err != nil {
		panic(err)
	}
	return b
}

// Name returns the basis's name.
func (b *Basis) Name() string { return b.name }

// Len returns the number of components in the basis.
func (b *Basis) Len() int { return len(b.components) }

// Components returns a copy of the basis's ordered components.
func (b *Basis) Components() []BasisComponent {
	out := make([]BasisComponent, len(b.components))
	copy(out, b.components)
	return out
}

// Component returns the i-th component.
func (b *Basis) Component(i int) BasisComponent { return b.components[i] }

// Index resolves a component name or symbol to its position. It
// returns -1 if key does not name a component of b. Index never
// coerces between kinds: an integer-looking string is still looked up
// as a name/symbol, never as a numeric position.
func (b *Basis) Index(key string) int {
	if i, ok := b.index[key]; ok {
		return i
	}
	return -1
}

// String renders the basis as its name and ordered symbols/names.
func (b *Basis) String() string {
	s := b.name + "("
	for i, c := range b.components {
		if i > 0 {
			s += ","
		}
		if c.Symbol != "" {
			s += c.Symbol
		} else {
			s += c.Name
		}
	}
	return s + ")"
}
