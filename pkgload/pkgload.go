// Package pkgload implements the package-loader external collaborator
// (spec.md §6): reads a named package of unit and conversion-edge
// definitions from YAML and materializes them against a
// dimension.Registry and convert.Graph, grounded on
// original_source/ucon/packages.py's UnitDef/EdgeDef/UnitPackage
// (TOML there; this module uses gopkg.in/yaml.v3 — see SPEC_FULL.md's
// Domain Stack for why YAML was chosen over TOML here).
package pkgload

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/radiativity-co/ucon/convert"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/mapping"
	"github.com/radiativity-co/ucon/unit"
)

// UnitDef is a serializable unit definition: a name, the name of an
// already-registered dimension, and optional aliases.
type UnitDef struct {
	Name      string   `yaml:"name"`
	Dimension string   `yaml:"dimension"`
	Aliases   []string `yaml:"aliases"`
}

// Materialize resolves d's dimension name against r and constructs the
// corresponding Unit, mirroring UnitDef.materialize in packages.py.
func (d UnitDef) Materialize(r *dimension.Registry) (*unit.Unit, error) {
	dim, ok := r.ByName(d.Dimension)
	if !ok {
		return nil, &uconerr.PackageLoadError{Record: d.Name, Reason: "unknown dimension '" + d.Dimension + "'"}
	}
	return &unit.Unit{
		Name:      d.Name,
		Aliases:   append([]string(nil), d.Aliases...),
		Dimension: dim,
	}, nil
}

// EdgeDef is a serializable conversion edge: src and dst unit names (as
// already registered in the target graph) and a LinearMap multiplier,
// dst = factor * src.
type EdgeDef struct {
	Src    string  `yaml:"src"`
	Dst    string  `yaml:"dst"`
	Factor float64 `yaml:"factor"`
}

// Materialize resolves src/dst within g's local registry and adds the
// LinearMap edge (and its inverse) to g.
func (e EdgeDef) Materialize(g *convert.Graph) error {
	src, _, ok := g.ResolveUnit(e.Src)
	if !ok {
		return &uconerr.PackageLoadError{Record: e.Src, Reason: "cannot resolve source unit '" + e.Src + "' in edge"}
	}
	dst, _, ok := g.ResolveUnit(e.Dst)
	if !ok {
		return &uconerr.PackageLoadError{Record: e.Dst, Reason: "cannot resolve destination unit '" + e.Dst + "' in edge"}
	}
	return g.AddEdge(src, dst, mapping.Linear{A: e.Factor}, nil)
}

// UnitPackage is an immutable bundle of domain-specific units and
// conversions, as loaded from a package file.
type UnitPackage struct {
	Name        string    `yaml:"name"`
	Version     string    `yaml:"version"`
	Description string    `yaml:"description"`
	Units       []UnitDef `yaml:"units"`
	Edges       []EdgeDef `yaml:"edges"`
	Requires    []string  `yaml:"requires"`
}

// Validate checks each unit definition's dimension name against r,
// mirroring UnitPackage.__post_init__'s eager validation.
func (p *UnitPackage) Validate(r *dimension.Registry) error {
	for _, u := range p.Units {
		if _, ok := r.ByName(u.Dimension); !ok {
			return &uconerr.PackageLoadError{Record: u.Name, Reason: "unknown dimension '" + u.Dimension + "' for unit '" + u.Name + "'"}
		}
	}
	return nil
}

// Load reads and parses a UnitPackage from a YAML file at path.
func Load(path string, r *dimension.Registry) (*UnitPackage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &uconerr.PackageLoadError{Record: path, Reason: "package file not found: " + err.Error()}
	}
	defer f.Close()
	pkg, err := LoadPackage(f, path)
	if err != nil {
		return nil, err
	}
	if err := pkg.Validate(r); err != nil {
		return nil, err
	}
	return pkg, nil
}

// LoadPackage parses a UnitPackage from r, using defaultName as the
// package name if the document has none.
func LoadPackage(src io.Reader, defaultName string) (*UnitPackage, error) {
	var pkg UnitPackage
	dec := yaml.NewDecoder(src)
	if err := dec.Decode(&pkg); err != nil {
		return nil, &uconerr.PackageLoadError{Record: defaultName, Reason: "invalid YAML: " + err.Error()}
	}
	if pkg.Name == "" {
		pkg.Name = defaultName
	}
	if pkg.Version == "" {
		pkg.Version = "1.0.0"
	}
	return &pkg, nil
}

// WithPackage returns a new graph extending g with pkg's units and
// edges: g is copied first, then pkg's units are registered and edges
// materialized against the copy, leaving g untouched. Unit or edge
// failures are logged (with the offending record) and returned,
// matching spec.md §6's "unknown dimension names or unresolved units
// raise a loader error referencing the offending record."
func WithPackage(g *convert.Graph, r *dimension.Registry, pkg *UnitPackage, log *slog.Logger) (*convert.Graph, error) {
	if log == nil {
		log = slog.Default()
	}
	out := g.Copy()
	for _, ud := range pkg.Units {
		u, err := ud.Materialize(r)
		if err != nil {
			log.Error("pkgload: unit load failed", "package", pkg.Name, "unit", ud.Name, "error", err)
			return nil, err
		}
		out.RegisterUnit(u)
	}
	for _, ed := range pkg.Edges {
		if err := ed.Materialize(out); err != nil {
			log.Error("pkgload: edge load failed", "package", pkg.Name, "src", ed.Src, "dst", ed.Dst, "error", err)
			return nil, err
		}
	}
	log.Info("pkgload: package loaded", "package", pkg.Name, "version", pkg.Version, "units", len(pkg.Units), "edges", len(pkg.Edges))
	return out, nil
}
