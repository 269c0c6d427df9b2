package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/quantity"
	"github.com/radiativity-co/ucon/unit"
)

var (
	// parenUncertainty matches "<value>(<digits>)" with no unit;
	// pmUncertainty matches "<value> ± <uncertainty> [unit]";
	// valueAndUnit matches "<value> [unit]", including a plain numeral.
	parenUncertainty = regexp.MustCompile(`^([+-]?\d+\.?\d*)\((\d+)\)$`)
	pmUncertainty    = regexp.MustCompile(`^([+-]?\d+\.?\d*)\s*(?:±|\+/-|\+-)\s*(\d+\.?\d*)\s*(.*)$`)
	valueAndUnit     = regexp.MustCompile(`^([+-]?\d+\.?\d*(?:[eE][+-]?\d+)?)\s*(.*)$`)
)

// ParseQuantity parses a quantity string into a quantity.Number,
// supporting a plain numeral, a numeral followed by a unit
// expression, explicit ±/+/- uncertainty with an optional trailing
// unit applied to both magnitude and uncertainty, and parenthetical
// uncertainty in the last significant digits of the value.
func ParseQuantity(s string, lookup LookupFunc) (quantity.Number, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return quantity.Number{}, &uconerr.ParseError{Message: "empty quantity expression", Position: 0, Expression: s}
	}

	if m := parenUncertainty.FindStringSubmatch(s); m != nil {
		return parseParenUncertainty(m, s)
	}
	if m := pmUncertainty.FindStringSubmatch(s); m != nil {
		return parsePlusMinus(m, s, lookup)
	}

	m := valueAndUnit.FindStringSubmatch(s)
	if m == nil {
		return quantity.Number{}, &uconerr.ParseError{Message: "expected a numeric value", Position: 0, Expression: s}
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return quantity.Number{}, &uconerr.ParseError{Message: "invalid numeric value '" + m[1] + "'", Position: 0, Expression: s}
	}

	unitExpr := strings.TrimSpace(m[2])
	if unitExpr == "" {
		return quantity.New(value, unit.UnitProduct{}), nil
	}
	prod, err := ParseUnitExpression(unitExpr, lookup)
	if err != nil {
		return quantity.Number{}, err
	}
	return quantity.New(value, prod), nil
}

func parseParenUncertainty(m []string, s string) (quantity.Number, error) {
	valueStr, digits := m[1], m[2]
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return quantity.Number{}, &uconerr.ParseError{Message: "invalid numeric value '" + valueStr + "'", Position: 0, Expression: s}
	}
	uncertDigits, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return quantity.Number{}, &uconerr.ParseError{Message: "invalid uncertainty digits '" + digits + "'", Position: 0, Expression: s}
	}

	decimalPlaces := 0
	if dot := strings.IndexByte(valueStr, '.'); dot >= 0 {
		decimalPlaces = len(valueStr) - dot - 1
	}
	shift := 1.0
	for i := 0; i < decimalPlaces; i++ {
		shift /= 10
	}
	uncertainty := uncertDigits * shift

	n, err := quantity.NewWithUncertainty(value, unit.UnitProduct{}, uncertainty)
	if err != nil {
		return quantity.Number{}, err
	}
	return n, nil
}

func parsePlusMinus(m []string, s string, lookup LookupFunc) (quantity.Number, error) {
	valueStr, uncertStr, unitExpr := m[1], m[2], strings.TrimSpace(m[3])
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return quantity.Number{}, &uconerr.ParseError{Message: "invalid numeric value '" + valueStr + "'", Position: 0, Expression: s}
	}
	uncertainty, err := strconv.ParseFloat(uncertStr, 64)
	if err != nil {
		return quantity.Number{}, &uconerr.ParseError{Message: "invalid uncertainty '" + uncertStr + "'", Position: 0, Expression: s}
	}

	var prod unit.UnitProduct
	if unitExpr != "" {
		prod, err = ParseUnitExpression(unitExpr, lookup)
		if err != nil {
			return quantity.Number{}, err
		}
	}
	return quantity.NewWithUncertainty(value, prod, uncertainty)
}
