package convert

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/radiativity-co/ucon/mapping"
	"github.com/radiativity-co/ucon/unit"
)

// Copy returns a deep-enough copy of g suitable for extension: edge
// tables and name registries are independent of g, while the attached
// BasisGraph (immutable once built) is shared by reference, grounded
// on original_source/ucon/graph.py's ConversionGraph.copy().
func (g *Graph) Copy() *Graph {
	out := New()
	out.basisG = g.basisG
	out.nextID = g.nextID

	for u, id := range g.ids {
		out.ids[u] = id
		out.units[id] = u
	}

	for dk, dg := range g.dims {
		nd := simple.NewDirectedGraph()
		nodes := graph.NodesOf(dg.Nodes())
		for _, n := range nodes {
			nd.AddNode(n)
		}
		for _, n := range nodes {
			to := graph.NodesOf(dg.From(n.ID()))
			for _, t := range to {
				e := dg.Edge(n.ID(), t.ID()).(unitEdge)
				nd.SetEdge(e)
			}
		}
		out.dims[dk] = nd
	}

	for sk, v := range g.productEd {
		m := make(map[string]mapping.Map, len(v))
		for dk2, mp := range v {
			m[dk2] = mp
		}
		out.productEd[sk] = m
	}
	for k, v := range g.productOf {
		out.productOf[k] = v
	}
	for u, r := range g.rebased {
		out.rebased[u] = r
	}
	for k, v := range g.byNameCI {
		out.byNameCI[k] = v
	}
	for k, v := range g.byNameCS {
		out.byNameCS[k] = v
	}
	return out
}

// Units returns every unit registered by name in this graph, for bulk
// enumeration (e.g. the RPC façade's list_units tool).
func (g *Graph) Units() []*unit.Unit {
	seen := make(map[*unit.Unit]bool)
	var out []*unit.Unit
	for _, u := range g.byNameCS {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}
