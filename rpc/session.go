package rpc

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/convert"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/mapping"
	"github.com/radiativity-co/ucon/parse"
	"github.com/radiativity-co/ucon/quantity"
	"github.com/radiativity-co/ucon/scale"
	"github.com/radiativity-co/ucon/unit"
)

// Session holds the mutable, per-caller conversion graph a façade
// client builds up across calls (custom units/edges persist within a
// session, the standard catalog does not), grounded on
// mcp/server.py's module-level _session_graph ContextVar — a Session
// here plays that role explicitly rather than through ambient state.
type Session struct {
	mu       sync.Mutex
	registry *dimension.Registry
	basisG   *basis.BasisGraph
	graph    *convert.Graph
	inline   map[string]*convert.Graph
}

// NewSession returns a session backed by the engine's standard unit
// catalog and conversion graph.
func NewSession() *Session {
	reg := dimension.Standard()
	unit.AssignDimensions(reg)
	bg := basis.NewBasisGraph()
	bg.AddTransformPair(basis.SiToCgs, basis.CgsToSi)
	bg.AddTransformPair(basis.SiToCgsEsu, basis.CgsEsuToSi)
	return &Session{
		registry: reg,
		basisG:   bg,
		graph:    convert.Standard().WithBasisGraph(bg),
		inline:   make(map[string]*convert.Graph),
	}
}

// Reset discards any custom units and edges defined on this session,
// restoring the standard catalog, mirroring mcp/server.py's
// _reset_session_graph.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = convert.Standard().WithBasisGraph(s.basisG)
	s.inline = make(map[string]*convert.Graph)
}

func (s *Session) lookup(g *convert.Graph, name, parameter string) (*unit.Unit, scale.Scale, *ToolError) {
	u, sc, err := g.Lookup(name)
	if err == nil {
		return u, sc, nil
	}
	var names []string
	for _, uu := range g.Units() {
		names = append(names, uu.Name)
		names = append(names, uu.Aliases...)
	}
	return nil, scale.Scale{}, unknownUnitError(name, parameter, names)
}

func (s *Session) basisFor() *basis.Basis { return basis.SI }

// CustomUnitDef and CustomEdgeDef describe ad hoc units/edges a caller
// supplies inline to a single request (custom_units/custom_edges in
// mcp/server.py), rather than being persisted on the session.
type CustomUnitDef struct {
	Name      string
	Dimension string
	Aliases   []string
}

type CustomEdgeDef struct {
	Src, Dst string
	Factor   float64
}

// inlineGraph builds (or returns a cached copy of) a conversion graph
// extending base with ephemeral units/edges, keyed by a stable hash of
// their contents so repeated calls with identical definitions reuse
// the same graph, mirroring _hash_definitions/_build_inline_graph.
func (s *Session) inlineGraph(base *convert.Graph, units []CustomUnitDef, edges []CustomEdgeDef) (*convert.Graph, error) {
	if len(units) == 0 && len(edges) == 0 {
		return base, nil
	}
	key := hashDefinitions(units, edges)
	s.mu.Lock()
	if g, ok := s.inline[key]; ok {
		s.mu.Unlock()
		return g, nil
	}
	s.mu.Unlock()

	g := base.Copy()
	for _, ud := range units {
		dim, ok := s.registry.ByName(ud.Dimension)
		if !ok {
			return nil, &uconerr.UnknownDimension{Name: ud.Dimension}
		}
		g.RegisterUnit(&unit.Unit{Name: ud.Name, Aliases: ud.Aliases, Dimension: dim})
	}
	for _, ed := range edges {
		src, _, ok := g.ResolveUnit(ed.Src)
		if !ok {
			return nil, &uconerr.UnknownUnit{Name: ed.Src}
		}
		dst, _, ok := g.ResolveUnit(ed.Dst)
		if !ok {
			return nil, &uconerr.UnknownUnit{Name: ed.Dst}
		}
		if err := g.AddEdge(src, dst, mapping.Linear{A: ed.Factor}, nil); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.inline[key] = g
	s.mu.Unlock()
	return g, nil
}

func hashDefinitions(units []CustomUnitDef, edges []CustomEdgeDef) string {
	type payload struct {
		Units []CustomUnitDef
		Edges []CustomEdgeDef
	}
	b, _ := json.Marshal(payload{Units: units, Edges: edges})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Convert parses fromUnit/toUnit and value, converts, and returns the
// destination Number, mirroring mcp/server.py's convert tool.
func (s *Session) Convert(value float64, fromUnit, toUnit string, units []CustomUnitDef, edges []CustomEdgeDef) (quantity.Number, *ToolError) {
	s.mu.Lock()
	base := s.graph
	s.mu.Unlock()

	g, err := s.inlineGraph(base, units, edges)
	if err != nil {
		return quantity.Number{}, toToolError(err)
	}

	fu, fs, terr := s.lookup(g, fromUnit, "from_unit")
	if terr != nil {
		return quantity.Number{}, terr
	}
	tu, ts, terr := s.lookup(g, toUnit, "to_unit")
	if terr != nil {
		return quantity.Number{}, terr
	}

	n := quantity.New(value, unit.Single(fu, fs))
	target := unit.Single(tu, ts)
	out, err := n.To(target, g, s.basisFor())
	if err != nil {
		return quantity.Number{}, toToolError(err)
	}
	return out, nil
}

// ComputeFactor is one step of a multi-step Compute chain: value
// numerator/denominator applies as value*numerator/denominator to the
// running quantity, and numerator and denominator each separately
// accumulate into the running unit's exponent map, mirroring
// mcp/server.py's compute tool (_accumulate_factors /
// _build_product_from_accum). Denominator may carry its own leading
// numeric coefficient, e.g. "2.205 lb" for a kg-per-lb factor.
type ComputeFactor struct {
	Value       float64
	Numerator   string
	Denominator string
}

// leadingNumber splits a denominator string into an optional leading
// numeric coefficient (default 1) and the remaining unit expression,
// mirroring mcp/server.py's `^([0-9]*\.?[0-9]+)\s*(.+)` regex.
var leadingNumber = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*(.+)$`)

func splitDenominator(s string) (float64, string) {
	s = strings.TrimSpace(s)
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return 1, s
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 1, s
	}
	return v, strings.TrimSpace(m[2])
}

// Compute folds an initial value/unit through a chain of factors. Each
// step multiplies the running value by value/denominatorCoefficient
// and accumulates the numerator unit's exponents at +1 and the
// denominator unit's at -1 onto the running unit product, so that
// matching units across steps cancel (e.g. lb introduced by an initial
// quantity and removed by a later factor's denominator).
func (s *Session) Compute(initial float64, initialUnit string, factors []ComputeFactor, units []CustomUnitDef, edges []CustomEdgeDef) (quantity.Number, *ToolError) {
	s.mu.Lock()
	base := s.graph
	s.mu.Unlock()

	g, err := s.inlineGraph(base, units, edges)
	if err != nil {
		return quantity.Number{}, toToolError(err)
	}

	iu, is, terr := s.lookup(g, initialUnit, "initial_unit")
	if terr != nil {
		return quantity.Number{}, terr
	}

	acc := quantity.New(initial, unit.Single(iu, is))
	for i, f := range factors {
		numProduct, perr := parse.ParseUnitExpression(f.Numerator, g.Lookup)
		if perr != nil {
			return quantity.Number{}, toToolError(perr)
		}
		denomCoeff, denomExpr := splitDenominator(f.Denominator)
		denomProduct, perr := parse.ParseUnitExpression(denomExpr, g.Lookup)
		if perr != nil {
			return quantity.Number{}, toToolError(perr)
		}
		if denomCoeff == 0 {
			return quantity.Number{}, &ToolError{Message: "factor denominator coefficient must be nonzero", ErrorType: ErrInvalidInput, Parameter: fmt.Sprintf("factors[%d].denominator", i), Got: f.Denominator}
		}

		acc = quantity.Mul(acc, quantity.New(f.Value/denomCoeff, numProduct))
		acc, err = quantity.Div(acc, quantity.New(1, denomProduct))
		if err != nil {
			return quantity.Number{}, toToolError(err)
		}
	}
	return acc.Simplify(), nil
}

// ListUnits returns every unit name known to the session's active
// graph, sorted for stable output.
func (s *Session) ListUnits() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, u := range s.graph.Units() {
		out = append(out, u.Name)
	}
	sort.Strings(out)
	return out
}

// ListScales returns every known decimal and binary prefix symbol.
func (s *Session) ListScales() []string {
	var out []string
	for sym := range scale.PrefixSymbols {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// ListDimensions returns every registered dimension's name.
func (s *Session) ListDimensions() []string {
	var out []string
	for _, d := range s.registry.All() {
		out = append(out, d.Name)
	}
	sort.Strings(out)
	return out
}

// CheckDimensions reports whether unitA and unitB share a dimension
// (pseudo-tag aware), without performing a conversion.
func (s *Session) CheckDimensions(unitA, unitB string) (bool, *ToolError) {
	s.mu.Lock()
	g := s.graph
	s.mu.Unlock()

	ua, _, terr := s.lookup(g, unitA, "unit_a")
	if terr != nil {
		return false, terr
	}
	ub, _, terr := s.lookup(g, unitB, "unit_b")
	if terr != nil {
		return false, terr
	}
	return ua.Dimension.Equal(ub.Dimension), nil
}

// DefineUnit permanently registers a new unit on this session's active
// graph (persists across calls, unlike custom_units on Convert/Compute).
func (s *Session) DefineUnit(def CustomUnitDef) *ToolError {
	s.mu.Lock()
	defer s.mu.Unlock()
	dim, ok := s.registry.ByName(def.Dimension)
	if !ok {
		return &ToolError{Message: "unknown dimension " + def.Dimension, ErrorType: ErrInvalidInput, Parameter: "dimension", Got: def.Dimension}
	}
	s.graph.RegisterUnit(&unit.Unit{Name: def.Name, Aliases: def.Aliases, Dimension: dim})
	return nil
}

// DefineConversion permanently registers a linear conversion edge (and
// its inverse) on this session's active graph.
func (s *Session) DefineConversion(def CustomEdgeDef) *ToolError {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, _, terr := s.lookup(s.graph, def.Src, "src")
	if terr != nil {
		return terr
	}
	dst, _, terr := s.lookup(s.graph, def.Dst, "dst")
	if terr != nil {
		return terr
	}
	if err := s.graph.AddEdge(src, dst, mapping.Linear{A: def.Factor}, nil); err != nil {
		return toToolError(err)
	}
	return nil
}

// ParseQuantityString parses a free-form "<value> [unit]" or
// uncertainty-bearing string against the session's active graph,
// exposing parse.ParseQuantity to façade callers.
func (s *Session) ParseQuantityString(expr string) (quantity.Number, *ToolError) {
	s.mu.Lock()
	g := s.graph
	s.mu.Unlock()
	n, err := parse.ParseQuantity(expr, g.Lookup)
	if err != nil {
		return quantity.Number{}, toToolError(err)
	}
	return n, nil
}

// ParseUnitString parses a unit expression like "kg*m/s^2" against the
// session's active graph.
func (s *Session) ParseUnitString(expr string) (unit.UnitProduct, *ToolError) {
	s.mu.Lock()
	g := s.graph
	s.mu.Unlock()
	p, err := parse.ParseUnitExpression(expr, g.Lookup)
	if err != nil {
		return unit.UnitProduct{}, toToolError(err)
	}
	return p, nil
}

// toToolError maps the engine's typed uconerr kinds to the façade's
// structured ToolError shape.
func toToolError(err error) *ToolError {
	var unk *uconerr.UnknownUnit
	if errors.As(err, &unk) {
		return &ToolError{Message: err.Error(), ErrorType: ErrUnknownUnit, Got: unk.Name}
	}
	var dim *uconerr.DimensionMismatch
	if errors.As(err, &dim) {
		return &ToolError{Message: err.Error(), ErrorType: ErrDimensionMismatch, Got: dim.Left, Expected: dim.Right}
	}
	var nopath *uconerr.ConversionNotFound
	if errors.As(err, &nopath) {
		return &ToolError{Message: err.Error(), ErrorType: ErrNoConversionPath, Got: nopath.From, Expected: nopath.To}
	}
	var perr *uconerr.ParseError
	if errors.As(err, &perr) {
		return &ToolError{Message: err.Error(), ErrorType: ErrParseError}
	}
	return &ToolError{Message: err.Error(), ErrorType: ErrInvalidInput}
}
