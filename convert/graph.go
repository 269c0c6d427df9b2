// Package convert implements the ConversionGraph: the registry of
// conversion morphisms between units and unit products that drives
// Number.To(), including BFS path composition, factorwise
// decomposition for composite units, and cross-basis edges routed
// through rebased units.
package convert

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/mapping"
	"github.com/radiativity-co/ucon/scale"
	"github.com/radiativity-co/ucon/unit"
)

type unitEdge struct {
	F, T graph.Node
	Map  mapping.Map
}

func (e unitEdge) From() graph.Node         { return e.F }
func (e unitEdge) To() graph.Node           { return e.T }
func (e unitEdge) ReversedEdge() graph.Edge { return unitEdge{F: e.T, T: e.F, Map: e.Map} }

// Graph is a ConversionGraph: one directed unit-level graph per
// dimension (so BFS never crosses incompatible dimensions), a
// composite-product edge table, a table of rebased cross-basis units,
// and a graph-local name registry used during parsing.
type Graph struct {
	dims      map[string]*simple.DirectedGraph
	ids       map[*unit.Unit]int64
	units     map[int64]*unit.Unit
	nextID    int64
	productEd map[string]map[string]mapping.Map
	productOf map[string]unit.UnitProduct
	rebased   map[*unit.Unit]unit.RebasedUnit
	byNameCI  map[string]*unit.Unit
	byNameCS  map[string]*unit.Unit
	basisG    *basis.BasisGraph
}

// New returns an empty conversion graph.
func New() *Graph {
	return &Graph{
		dims:      make(map[string]*simple.DirectedGraph),
		ids:       make(map[*unit.Unit]int64),
		units:     make(map[int64]*unit.Unit),
		productEd: make(map[string]map[string]mapping.Map),
		productOf: make(map[string]unit.UnitProduct),
		rebased:   make(map[*unit.Unit]unit.RebasedUnit),
		byNameCI:  make(map[string]*unit.Unit),
		byNameCS:  make(map[string]*unit.Unit),
	}
}

// WithBasisGraph attaches a BasisGraph used to reject AddEdge calls
// without a transform between units whose bases it does not connect.
// Edges given a transform are not checked against it.
func (g *Graph) WithBasisGraph(bg *basis.BasisGraph) *Graph {
	g.basisG = bg
	return g
}

func (g *Graph) idFor(u *unit.Unit) int64 {
	if id, ok := g.ids[u]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.ids[u] = id
	g.units[id] = u
	return id
}

func (g *Graph) dimGraph(dimKey string) *simple.DirectedGraph {
	dg, ok := g.dims[dimKey]
	if !ok {
		dg = simple.NewDirectedGraph()
		g.dims[dimKey] = dg
	}
	return dg
}

func dimKey(d dimension.Dimension) string { return d.String() + "|" + d.Tag.String() }

// RegisterUnit makes u resolvable by name, shorthand, and aliases
// within this graph's local registry.
func (g *Graph) RegisterUnit(u *unit.Unit) {
	g.byNameCI[strings.ToLower(u.Name)] = u
	g.byNameCS[u.Name] = u
	if sh := u.Shorthand(); sh != "" {
		g.byNameCS[sh] = u
	}
	for _, a := range u.Aliases {
		if a == "" {
			continue
		}
		g.byNameCI[strings.ToLower(a)] = u
		g.byNameCS[a] = u
	}
}

// ResolveUnit looks up a name in this graph's local registry,
// case-sensitive first (for shorthands like "m" vs "M"), then
// case-insensitively. Callers should fall back to a global registry on
// a miss.
func (g *Graph) ResolveUnit(name string) (*unit.Unit, scale.Scale, bool) {
	if u, ok := g.byNameCS[name]; ok {
		return u, scale.One, true
	}
	if u, ok := g.byNameCI[strings.ToLower(name)]; ok {
		return u, scale.One, true
	}
	return nil, scale.Scale{}, false
}

// AddEdge registers a conversion Map from src to dst and, automatically,
// its inverse. If transform is non-nil this is a cross-basis edge: src
// is rebased into dst's dimension via transform before the edge is
// stored.
func (g *Graph) AddEdge(src, dst *unit.Unit, m mapping.Map, transform *basis.BasisTransform) error {
	if g.basisG != nil && transform == nil {
		sb, db := src.Dimension.Vector.Basis(), dst.Dimension.Vector.Basis()
		if sb != db && !g.basisG.AreConnected(sb, db) {
			return &uconerr.NoTransformPath{Source: sb.Name(), Target: db.Name()}
		}
	}
	if transform != nil {
		return g.addCrossBasisEdge(src, dst, m, transform)
	}
	if !src.Dimension.Equal(dst.Dimension) {
		return &uconerr.DimensionMismatch{Op: "Graph.AddEdge", Left: src.Name, Right: dst.Name, LeftTag: src.Dimension.Tag.String(), RightTag: dst.Dimension.Tag.String()}
	}
	return g.addUnitEdge(dimKey(src.Dimension), src, dst, m)
}

func (g *Graph) addUnitEdge(dk string, src, dst *unit.Unit, m mapping.Map) error {
	dg := g.dimGraph(dk)
	sid, did := g.idFor(src), g.idFor(dst)

	if e := dg.Edge(did, sid); e != nil {
		existing := e.(unitEdge).Map
		roundtrip := existing.Compose(m)
		if !roundtrip.IsIdentity(1e-9) {
			return &uconerr.CyclicInconsistency{From: src.Name, To: dst.Name, RoundTrip: roundtrip.Apply(1), Tolerance: 1e-9}
		}
	}

	inv, err := m.Inverse()
	if err != nil {
		return err
	}
	dg.SetEdge(unitEdge{F: simple.Node(sid), T: simple.Node(did), Map: m})
	dg.SetEdge(unitEdge{F: simple.Node(did), T: simple.Node(sid), Map: inv})
	return nil
}

func (g *Graph) addCrossBasisEdge(src, dst *unit.Unit, m mapping.Map, transform *basis.BasisTransform) error {
	transformed, err := transform.Apply(src.Dimension.Vector, false)
	if err != nil {
		return err
	}
	if !transformed.Equal(dst.Dimension.Vector) {
		return &uconerr.DimensionMismatch{Op: "Graph.AddEdge(cross-basis)", Left: src.Name, Right: dst.Name, LeftTag: "", RightTag: ""}
	}
	rebasedDim := dimension.Dimension{Vector: transformed, Name: dst.Dimension.Name}
	rebased := unit.RebasedUnit{Original: *src, RebasedDimension: rebasedDim, Transform: transform}
	g.rebased[src] = rebased

	dk := dimKey(dst.Dimension)
	dg := g.dimGraph(dk)
	rid := g.idFor(src) // the rebased view shares src's identity for graph purposes
	did := g.idFor(dst)
	inv, err := m.Inverse()
	if err != nil {
		return err
	}
	dg.SetEdge(unitEdge{F: simple.Node(rid), T: simple.Node(did), Map: m})
	dg.SetEdge(unitEdge{F: simple.Node(did), T: simple.Node(rid), Map: inv})
	return nil
}

// Convert finds or composes a conversion Map from src to dst, whether
// they are plain Units or composite UnitProducts.
func (g *Graph) Convert(src, dst unit.UnitProduct, b *basis.Basis) (mapping.Map, error) {
	if isSingle, su, sOK := asSingleUnit(src); sOK {
		if isDst, du, dOK := asSingleUnit(dst); dOK && isSingle && isDst {
			return g.convertUnits(su, du, b)
		}
	}
	return g.convertProducts(src, dst, b)
}

func asSingleUnit(p unit.UnitProduct) (bool, *unit.Unit, bool) {
	factors := p.Factors()
	if len(factors) != 1 {
		return false, nil, false
	}
	for f, e := range factors {
		if e.IsInt() && e.Num().Int64() == 1 && f.Scale.IsOne() {
			return true, f.Unit, true
		}
		return false, nil, false
	}
	return false, nil, false
}

func (g *Graph) convertUnits(src, dst *unit.Unit, b *basis.Basis) (mapping.Map, error) {
	if src.Equal(*dst) {
		return mapping.Identity(), nil
	}
	if rebased, ok := g.rebased[src]; ok && rebased.RebasedDimension.Equal(dst.Dimension) {
		return g.bfsConvert(dimKey(dst.Dimension), src, dst)
	}
	if !src.Dimension.Equal(dst.Dimension) {
		return nil, &uconerr.DimensionMismatch{Op: "Graph.Convert", Left: src.Name, Right: dst.Name, LeftTag: src.Dimension.Tag.String(), RightTag: dst.Dimension.Tag.String()}
	}
	return g.bfsConvert(dimKey(src.Dimension), src, dst)
}

func (g *Graph) bfsConvert(dk string, start, target *unit.Unit) (mapping.Map, error) {
	dg, ok := g.dims[dk]
	if !ok {
		return nil, &uconerr.ConversionNotFound{From: start.Name, To: target.Name, Reason: "no edges registered for this dimension"}
	}
	sid, tid := g.idFor(start), g.idFor(target)
	if sid == tid {
		return mapping.Identity(), nil
	}

	shortest := path.DijkstraFrom(simple.Node(sid), dg)
	nodes, _ := shortest.To(tid)
	if len(nodes) == 0 {
		return nil, &uconerr.ConversionNotFound{From: start.Name, To: target.Name, Reason: "no path in conversion graph"}
	}

	result := mapping.Map(mapping.Identity())
	for i := 0; i < len(nodes)-1; i++ {
		e := dg.Edge(nodes[i].ID(), nodes[i+1].ID()).(unitEdge)
		result = e.Map.Compose(result)
	}
	return result, nil
}

func productKey(p unit.UnitProduct) string {
	type entry struct {
		name string
		exp  *big.Rat
		sc   scale.Scale
	}
	var entries []entry
	for f, e := range p.Factors() {
		entries = append(entries, entry{name: f.Unit.Name, exp: e, sc: f.Scale})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s^%s@%s;", e.name, e.exp.RatString(), e.sc.String())
	}
	return sb.String()
}

// AddProductEdge registers a conversion Map between two UnitProducts
// of equal dimension, along with its inverse.
func (g *Graph) AddProductEdge(src, dst unit.UnitProduct, m mapping.Map, b *basis.Basis) error {
	sd, err := src.Dimension(b)
	if err != nil {
		return err
	}
	dd, err := dst.Dimension(b)
	if err != nil {
		return err
	}
	if !sd.Equal(dd) {
		return &uconerr.DimensionMismatch{Op: "Graph.AddProductEdge", Left: sd.String(), Right: dd.String(), LeftTag: sd.Tag.String(), RightTag: dd.Tag.String()}
	}
	sk, dk := productKey(src), productKey(dst)
	if existing, ok := g.productEd[dk]; ok {
		if em, ok := existing[sk]; ok {
			roundtrip := em.Compose(m)
			if !roundtrip.IsIdentity(1e-9) {
				return &uconerr.CyclicInconsistency{From: sk, To: dk, RoundTrip: roundtrip.Apply(1), Tolerance: 1e-9}
			}
		}
	}
	inv, err := m.Inverse()
	if err != nil {
		return err
	}
	if g.productEd[sk] == nil {
		g.productEd[sk] = make(map[string]mapping.Map)
	}
	if g.productEd[dk] == nil {
		g.productEd[dk] = make(map[string]mapping.Map)
	}
	g.productEd[sk][dk] = m
	g.productEd[dk][sk] = inv
	g.productOf[sk] = src
	g.productOf[dk] = dst
	return nil
}

func (g *Graph) convertProducts(src, dst unit.UnitProduct, b *basis.Basis) (mapping.Map, error) {
	sd, err := src.Dimension(b)
	if err != nil {
		return nil, err
	}
	dd, err := dst.Dimension(b)
	if err != nil {
		return nil, err
	}
	if !sd.Equal(dd) {
		return nil, &uconerr.DimensionMismatch{Op: "Graph.Convert", Left: sd.String(), Right: dd.String(), LeftTag: sd.Tag.String(), RightTag: dd.Tag.String()}
	}

	sk, dk := productKey(src), productKey(dst)
	if sk == dk {
		return mapping.Identity(), nil
	}
	if edges, ok := g.productEd[sk]; ok {
		if m, ok := edges[dk]; ok {
			return m, nil
		}
	}
	return g.convertFactorwise(src, dst, b)
}

// convertFactorwise aligns src and dst factor-by-factor on their
// effective dimensional vector (dimension raised to its own exponent),
// then folds each factor's scale ratio and any necessary unit
// conversion into a single composed map. Paired factors must also have
// equal exponents: a named dimension like volume^1 against an
// equivalent base expansion like length^3 shares a key but is rejected
// with ConversionNotFound.
func (g *Graph) convertFactorwise(src, dst unit.UnitProduct, b *basis.Basis) (mapping.Map, error) {
	srcByDim, err := src.FactorsByDimension(b)
	if err != nil {
		return nil, &uconerr.ConversionNotFound{Reason: "ambiguous source decomposition: " + err.Error()}
	}
	dstByDim, err := dst.FactorsByDimension(b)
	if err != nil {
		return nil, &uconerr.ConversionNotFound{Reason: "ambiguous destination decomposition: " + err.Error()}
	}

	srcFactors := src.Factors()
	dstFactors := dst.Factors()

	type entry struct {
		factor unit.UnitFactor
		exp    *big.Rat
	}
	srcByVec := make(map[string]entry)
	dstByVec := make(map[string]entry)

	for _, fs := range srcByDim {
		f := fs[0]
		e := srcFactors[f]
		v := f.Unit.Dimension.Vector.Pow(e)
		k := vecKey(v)
		if _, exists := srcByVec[k]; exists {
			return nil, &uconerr.ConversionNotFound{Reason: "multiple source factors share effective dimensional vector " + k}
		}
		srcByVec[k] = entry{factor: f, exp: e}
	}
	for _, fs := range dstByDim {
		f := fs[0]
		e := dstFactors[f]
		v := f.Unit.Dimension.Vector.Pow(e)
		k := vecKey(v)
		if _, exists := dstByVec[k]; exists {
			return nil, &uconerr.ConversionNotFound{Reason: "multiple destination factors share effective dimensional vector " + k}
		}
		dstByVec[k] = entry{factor: f, exp: e}
	}

	if len(srcByVec) != len(dstByVec) {
		return nil, &uconerr.ConversionNotFound{Reason: "factor structures don't align by count"}
	}

	result := mapping.Map(mapping.Identity())
	for k, se := range srcByVec {
		de, ok := dstByVec[k]
		if !ok {
			return nil, &uconerr.ConversionNotFound{Reason: "factor structures don't align: missing " + k}
		}
		if se.exp.Cmp(de.exp) != 0 {
			return nil, &uconerr.ConversionNotFound{Reason: fmt.Sprintf("exponent mismatch for %s: %s vs %s", k, se.exp.RatString(), de.exp.RatString())}
		}

		scaleRatio := se.factor.Scale.Value() / de.factor.Scale.Value()
		scaleMap := mapping.Linear{A: scaleRatio}

		var unitMap mapping.Map = mapping.Identity()
		if !se.factor.Unit.Equal(*de.factor.Unit) {
			var err error
			unitMap, err = g.convertUnits(se.factor.Unit, de.factor.Unit, b)
			if err != nil {
				return nil, err
			}
		}

		combined := scaleMap.Compose(unitMap)
		powered, err := combined.Pow(ratToFloat(se.exp))
		if err != nil {
			return nil, err
		}
		result = result.Compose(powered)
	}
	return result, nil
}

func ratToFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}

func vecKey(v *basis.Vector) string {
	var sb strings.Builder
	for _, c := range v.Coords() {
		sb.WriteString(c.RatString())
		sb.WriteByte(',')
	}
	return sb.String()
}
