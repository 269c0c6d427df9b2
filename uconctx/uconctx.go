// Package uconctx carries the engine's three "active" scopes — basis,
// basis graph, and conversion graph — as context.Context accessor
// pairs, per spec.md §4.12 and §9. Go has no implicit thread-local
// storage, so context.Context is the idiomatic equivalent of
// "task-local values with explicit scope guards": each With* call
// returns a new, independent context, so nested scopes compose and a
// derived context never corrupts its parent, including on panics.
package uconctx

import (
	"context"
	"sync"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/convert"
)

type basisKey struct{}
type basisGraphKey struct{}
type convertGraphKey struct{}

// WithBasis returns a context carrying b as the active basis.
func WithBasis(ctx context.Context, b *basis.Basis) context.Context {
	return context.WithValue(ctx, basisKey{}, b)
}

// Basis returns the context's active basis, or the default SI basis
// if none was set.
func Basis(ctx context.Context) *basis.Basis {
	if b, ok := ctx.Value(basisKey{}).(*basis.Basis); ok {
		return b
	}
	return basis.SI
}

// WithBasisGraph returns a context carrying bg as the active basis
// graph.
func WithBasisGraph(ctx context.Context, bg *basis.BasisGraph) context.Context {
	return context.WithValue(ctx, basisGraphKey{}, bg)
}

// BasisGraph returns the context's active basis graph, lazily building
// (once, process-wide) the standard SI/CGS/CGS-ESU graph if none was
// set.
func BasisGraph(ctx context.Context) *basis.BasisGraph {
	if bg, ok := ctx.Value(basisGraphKey{}).(*basis.BasisGraph); ok {
		return bg
	}
	return defaultBasisGraph()
}

// WithConversionGraph returns a context carrying g as the active
// conversion graph; this is also the graph consulted for unit-name
// parsing (spec.md §4.12's last sentence).
func WithConversionGraph(ctx context.Context, g *convert.Graph) context.Context {
	return context.WithValue(ctx, convertGraphKey{}, g)
}

// ConversionGraph returns the context's active conversion graph,
// lazily building (once, process-wide) the standard graph if none was
// set.
func ConversionGraph(ctx context.Context) *convert.Graph {
	if g, ok := ctx.Value(convertGraphKey{}).(*convert.Graph); ok {
		return g
	}
	return defaultConversionGraph()
}

var (
	defaultBasisGraphOnce sync.Once
	defaultBasisGraphVal  *basis.BasisGraph

	defaultConversionGraphOnce sync.Once
	defaultConversionGraphVal  *convert.Graph
)

func defaultBasisGraph() *basis.BasisGraph {
	defaultBasisGraphOnce.Do(func() {
		bg := basis.NewBasisGraph()
		bg.AddTransformPair(basis.SiToCgs, basis.CgsToSi)
		bg.AddTransformPair(basis.SiToCgsEsu, basis.CgsEsuToSi)
		defaultBasisGraphVal = bg
	})
	return defaultBasisGraphVal
}

func defaultConversionGraph() *convert.Graph {
	defaultConversionGraphOnce.Do(func() {
		defaultConversionGraphVal = convert.Standard()
	})
	return defaultConversionGraphVal
}
