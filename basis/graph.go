package basis

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/radiativity-co/ucon/internal/uconerr"
)

// transformEdge carries a BasisTransform as the payload of a directed
// graph edge, following the same pattern gonum's own simple.WeightedEdge
// attaches a Weight() to a bare simple.Edge.
type transformEdge struct {
	F, T      graph.Node
	Transform *BasisTransform
}

func (e transformEdge) From() graph.Node         { return e.F }
func (e transformEdge) To() graph.Node           { return e.T }
func (e transformEdge) ReversedEdge() graph.Edge { return transformEdge{F: e.T, T: e.F, Transform: e.Transform} }

// BasisGraph is a directed graph of bases connected by BasisTransforms,
// with BFS path composition and caching. Adding a transform does not
// auto-register its inverse; use AddTransformPair for that.
type BasisGraph struct {
	g      *simple.DirectedGraph
	ids    map[*Basis]int64
	bases  map[int64]*Basis
	nextID int64
	cache  map[[2]int64]*BasisTransform
}

// NewBasisGraph returns an empty basis graph.
func NewBasisGraph() *BasisGraph {
	return &BasisGraph{
		g:     simple.NewDirectedGraph(),
		ids:   make(map[*Basis]int64),
		bases: make(map[int64]*Basis),
		cache: make(map[[2]int64]*BasisTransform),
	}
}

func (bg *BasisGraph) idFor(b *Basis) int64 {
	if id, ok := bg.ids[b]; ok {
		return id
	}
	id := bg.nextID
	bg.nextID++
	bg.ids[b] = id
	bg.bases[id] = b
	bg.g.AddNode(simple.Node(id))
	return id
}

// AddTransform stores t as an edge from t.Source to t.Target. It does
// not register the inverse edge.
func (bg *BasisGraph) AddTransform(t *BasisTransform) {
	sid, tid := bg.idFor(t.Source), bg.idFor(t.Target)
	bg.g.SetEdge(transformEdge{F: simple.Node(sid), T: simple.Node(tid), Transform: t})
	bg.cache = make(map[[2]int64]*BasisTransform)
}

// AddTransformPair stores both forward and reverse edges.
func (bg *BasisGraph) AddTransformPair(forward, reverse *BasisTransform) {
	bg.AddTransform(forward)
	bg.AddTransform(reverse)
}

// GetTransform returns the composed transform from a to b: identity if
// a==b, a cached result if previously computed, or the transform
// composed along the shortest (fewest-hops) edge path found by BFS
// (implemented via gonum's Dijkstra over a uniform-cost graph, which
// degenerates to breadth-first search since no edge here implements
// graph.Weighted).
func (bg *BasisGraph) GetTransform(a, b *Basis) (*BasisTransform, error) {
	if a == b {
		return Identity(a), nil
	}
	aid, aok := bg.ids[a]
	bid, bok := bg.ids[b]
	if !aok || !bok {
		return nil, &uconerr.NoTransformPath{Source: a.Name(), Target: b.Name()}
	}
	key := [2]int64{aid, bid}
	if t, ok := bg.cache[key]; ok {
		return t, nil
	}

	shortest := path.DijkstraFrom(simple.Node(aid), bg.g)
	nodes, _ := shortest.To(bid)
	if len(nodes) == 0 {
		return nil, &uconerr.NoTransformPath{Source: a.Name(), Target: b.Name()}
	}

	composed := Identity(bg.bases[aid])
	for i := 0; i+1 < len(nodes); i++ {
		e := bg.g.Edge(nodes[i].ID(), nodes[i+1].ID()).(transformEdge)
		var err error
		composed, err = composed.Then(e.Transform)
		if err != nil {
			return nil, err
		}
	}
	bg.cache[key] = composed
	return composed, nil
}

// AreConnected reports whether b is reachable from a.
func (bg *BasisGraph) AreConnected(a, b *Basis) bool {
	_, err := bg.GetTransform(a, b)
	return err == nil
}

// ReachableFrom returns the transitive closure of forward edges from a.
func (bg *BasisGraph) ReachableFrom(a *Basis) []*Basis {
	aid, ok := bg.ids[a]
	if !ok {
		return nil
	}
	visited := map[int64]bool{aid: true}
	queue := []int64{aid}
	var out []*Basis
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range graph.NodesOf(bg.g.From(cur)) {
			id := n.ID()
			if visited[id] {
				continue
			}
			visited[id] = true
			out = append(out, bg.bases[id])
			queue = append(queue, id)
		}
	}
	return out
}
