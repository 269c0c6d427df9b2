package parse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/parse"
	"github.com/radiativity-co/ucon/scale"
	"github.com/radiativity-co/ucon/unit"
)

func testLookup(units map[string]*unit.Unit) parse.LookupFunc {
	return func(name string) (*unit.Unit, scale.Scale, error) {
		if u, ok := units[name]; ok {
			return u, scale.One, nil
		}
		if s, suffix, ok := scale.StripPrefix(name); ok {
			if u, ok := units[suffix]; ok {
				return u, s, nil
			}
		}
		return nil, scale.Scale{}, &uconerr.UnknownUnit{Name: name}
	}
}

func TestParsePlainNumeral(t *testing.T) {
	n, err := parse.ParseQuantity("42.5", testLookup(nil))
	require.NoError(t, err)
	require.InDelta(t, 42.5, n.Quantity, 1e-12)
	require.True(t, n.Unit.IsEmpty())
	require.Nil(t, n.Uncertainty)
}

func TestParseNumeralWithUnit(t *testing.T) {
	meter := &unit.Unit{Name: "meter", Aliases: []string{"m"}}
	n, err := parse.ParseQuantity("3 m", testLookup(map[string]*unit.Unit{"m": meter}))
	require.NoError(t, err)
	require.InDelta(t, 3.0, n.Quantity, 1e-12)
	require.Equal(t, "m", n.Unit.Shorthand())
}

func TestParsePlusMinusUncertaintyWithUnit(t *testing.T) {
	meter := &unit.Unit{Name: "meter", Aliases: []string{"m"}}
	n, err := parse.ParseQuantity("10.0 ± 0.5 m", testLookup(map[string]*unit.Unit{"m": meter}))
	require.NoError(t, err)
	require.InDelta(t, 10.0, n.Quantity, 1e-12)
	require.NotNil(t, n.Uncertainty)
	require.InDelta(t, 0.5, *n.Uncertainty, 1e-12)
	require.Equal(t, "m", n.Unit.Shorthand())
}

func TestParseAsciiPlusMinusUncertainty(t *testing.T) {
	n, err := parse.ParseQuantity("10 +/- 0.5", testLookup(nil))
	require.NoError(t, err)
	require.InDelta(t, 10.0, n.Quantity, 1e-12)
	require.InDelta(t, 0.5, *n.Uncertainty, 1e-12)
}

func TestParseParentheticalUncertainty(t *testing.T) {
	n, err := parse.ParseQuantity("1.234(5)", testLookup(nil))
	require.NoError(t, err)
	require.InDelta(t, 1.234, n.Quantity, 1e-12)
	require.NotNil(t, n.Uncertainty)
	require.InDelta(t, 0.005, *n.Uncertainty, 1e-12, "the (5) applies to the last decimal place of 1.234")
}

func TestParseRejectsEmptyExpression(t *testing.T) {
	_, err := parse.ParseQuantity("   ", testLookup(nil))
	require.Error(t, err)
}

func TestParseRejectsGarbageValue(t *testing.T) {
	_, err := parse.ParseQuantity("not-a-number", testLookup(nil))
	require.Error(t, err)
}

func TestParseUnitExpressionPowerAndDivision(t *testing.T) {
	meter := &unit.Unit{Name: "meter", Aliases: []string{"m"}}
	second := &unit.Unit{Name: "second", Aliases: []string{"s"}}
	lookup := testLookup(map[string]*unit.Unit{"m": meter, "s": second})

	p, err := parse.ParseUnitExpression("m/s^2", lookup)
	require.NoError(t, err)
	require.Equal(t, "m/s^2", p.Shorthand())
}

func TestParseUnitExpressionParentheses(t *testing.T) {
	meter := &unit.Unit{Name: "meter", Aliases: []string{"m"}}
	second := &unit.Unit{Name: "second", Aliases: []string{"s"}}
	kg := &unit.Unit{Name: "kilogram", Aliases: []string{"kg"}}
	lookup := testLookup(map[string]*unit.Unit{"m": meter, "s": second, "kg": kg})

	p, err := parse.ParseUnitExpression("kg*m/(s*s)", lookup)
	require.NoError(t, err)
	require.Equal(t, "kg*m/s^2", p.Shorthand())
}

func TestParseUnitExpressionUnknownIdentifierPropagatesLookupError(t *testing.T) {
	_, err := parse.ParseUnitExpression("bogus", testLookup(nil))
	require.Error(t, err)
}
