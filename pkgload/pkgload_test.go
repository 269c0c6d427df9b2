package pkgload_test

import (
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/basis"
	"github.com/radiativity-co/ucon/convert"
	"github.com/radiativity-co/ucon/dimension"
	"github.com/radiativity-co/ucon/pkgload"
	"github.com/radiativity-co/ucon/unit"
)

func bigRat(n int64) *big.Rat { return big.NewRat(n, 1) }

func lengthRegistryAndGraph(t *testing.T) (*dimension.Registry, *convert.Graph) {
	t.Helper()
	b := basis.MustBasis("t", basis.BasisComponent{Name: "length", Symbol: "L"})
	r := dimension.NewRegistry(b)
	lengthVec, err := basis.NewVector(b, bigRat(1))
	require.NoError(t, err)
	lengthDim := dimension.Dimension{Vector: lengthVec, Name: "length"}
	r.Register(lengthDim)

	meter := &unit.Unit{Name: "meter", Aliases: []string{"m"}, Dimension: lengthDim}
	g := convert.New()
	g.RegisterUnit(meter)
	return r, g
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validPackageYAML = `
name: imperial
version: "1.0.0"
units:
  - name: foot
    dimension: length
    aliases: [ft]
edges:
  - src: foot
    dst: meter
    factor: 0.3048
`

func TestLoadPackageParsesYAML(t *testing.T) {
	pkg, err := pkgload.LoadPackage(strings.NewReader(validPackageYAML), "imperial.yaml")
	require.NoError(t, err)
	require.Equal(t, "imperial", pkg.Name)
	require.Len(t, pkg.Units, 1)
	require.Len(t, pkg.Edges, 1)
}

func TestLoadPackageDefaultsNameWhenMissing(t *testing.T) {
	pkg, err := pkgload.LoadPackage(strings.NewReader("units: []\n"), "fallback.yaml")
	require.NoError(t, err)
	require.Equal(t, "fallback.yaml", pkg.Name)
	require.Equal(t, "1.0.0", pkg.Version)
}

func TestWithPackageRegistersUnitsAndEdgesOnACopy(t *testing.T) {
	r, g := lengthRegistryAndGraph(t)
	pkg, err := pkgload.LoadPackage(strings.NewReader(validPackageYAML), "imperial.yaml")
	require.NoError(t, err)
	require.NoError(t, pkg.Validate(r))

	out, err := pkgload.WithPackage(g, r, pkg, silentLogger())
	require.NoError(t, err)

	_, _, ok := out.ResolveUnit("foot")
	require.True(t, ok, "foot must be registered in the returned graph")
	_, _, ok = g.ResolveUnit("foot")
	require.False(t, ok, "the original graph must be untouched")
}

func TestValidateRejectsUnknownDimension(t *testing.T) {
	r, _ := lengthRegistryAndGraph(t)
	badYAML := `
name: bogus
units:
  - name: widget
    dimension: nonexistent
`
	pkg, err := pkgload.LoadPackage(strings.NewReader(badYAML), "bogus.yaml")
	require.NoError(t, err)
	err = pkg.Validate(r)
	require.Error(t, err)
	require.Contains(t, err.Error(), "widget", "the loader error must reference the offending record")
}

func TestWithPackageFailsOnUnresolvedEdgeUnit(t *testing.T) {
	r, g := lengthRegistryAndGraph(t)
	badYAML := `
name: broken
units:
  - name: foot
    dimension: length
edges:
  - src: foot
    dst: parsec
    factor: 1
`
	pkg, err := pkgload.LoadPackage(strings.NewReader(badYAML), "broken.yaml")
	require.NoError(t, err)
	require.NoError(t, pkg.Validate(r))

	_, err = pkgload.WithPackage(g, r, pkg, silentLogger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsec")
}
