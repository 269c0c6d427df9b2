package parse

import (
	"math/big"
	"strconv"

	"github.com/radiativity-co/ucon/internal/uconerr"
	"github.com/radiativity-co/ucon/scale"
	"github.com/radiativity-co/ucon/unit"
)

// LookupFunc resolves a bare identifier (possibly with a stripped SI
// prefix) to its unit and the scale contributed by that prefix. The
// host supplies this — typically a convert.Graph's local registry
// falling back to a process-wide one, per the active-scope contract.
type LookupFunc func(name string) (*unit.Unit, scale.Scale, error)

// UnitParser is a recursive-descent parser over the grammar:
//
//	expr := term (('*'|'·'|'⋅'|'×'|'/') term)*
//	term := factor ('^' exponent | superscript)?
//	factor := '(' expr ')' | identifier
type UnitParser struct {
	expr    string
	lookup  LookupFunc
	tok     *Tokenizer
	current Token
}

// NewUnitParser constructs a parser for expr, resolving identifiers
// via lookup.
func NewUnitParser(expr string, lookup LookupFunc) (*UnitParser, error) {
	t := NewTokenizer(expr)
	first, err := t.Next()
	if err != nil {
		return nil, err
	}
	return &UnitParser{expr: expr, lookup: lookup, tok: t, current: first}, nil
}

func (p *UnitParser) advance() (Token, error) {
	tok := p.current
	next, err := p.tok.Next()
	if err != nil {
		return Token{}, err
	}
	p.current = next
	return tok, nil
}

func (p *UnitParser) expect(tt TokenType, name string) (Token, error) {
	if p.current.Type != tt {
		return Token{}, &uconerr.ParseError{Message: "expected " + name, Position: p.current.Position, Expression: p.expr}
	}
	return p.advance()
}

// Parse parses the full expression into a UnitProduct, erroring on
// any trailing, unconsumed token.
func (p *UnitParser) Parse() (unit.UnitProduct, error) {
	result, err := p.parseExpr()
	if err != nil {
		return unit.UnitProduct{}, err
	}
	if p.current.Type != TokEOF {
		return unit.UnitProduct{}, &uconerr.ParseError{Message: "unexpected token '" + p.current.Value + "'", Position: p.current.Position, Expression: p.expr}
	}
	return result, nil
}

func (p *UnitParser) parseExpr() (unit.UnitProduct, error) {
	left, err := p.parseTerm()
	if err != nil {
		return unit.UnitProduct{}, err
	}
	for p.current.Type == TokMul || p.current.Type == TokDiv {
		op, err := p.advance()
		if err != nil {
			return unit.UnitProduct{}, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return unit.UnitProduct{}, err
		}
		if op.Type == TokMul {
			left = left.Mul(right)
		} else {
			left = left.Div(right)
		}
	}
	return left, nil
}

func (p *UnitParser) parseTerm() (unit.UnitProduct, error) {
	base, err := p.parseFactor()
	if err != nil {
		return unit.UnitProduct{}, err
	}

	if p.current.Type == TokPow {
		if _, err := p.advance(); err != nil {
			return unit.UnitProduct{}, err
		}
		expTok, err := p.expect(TokNumber, "NUMBER")
		if err != nil {
			return unit.UnitProduct{}, err
		}
		exp, err := parseExponent(expTok, p.expr)
		if err != nil {
			return unit.UnitProduct{}, err
		}
		return base.Pow(exp), nil
	}

	if p.current.Type == TokNumber {
		expTok, err := p.advance()
		if err != nil {
			return unit.UnitProduct{}, err
		}
		exp, err := parseExponent(expTok, p.expr)
		if err != nil {
			return unit.UnitProduct{}, err
		}
		return base.Pow(exp), nil
	}

	return base, nil
}

func parseExponent(tok Token, expr string) (*big.Rat, error) {
	n, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, &uconerr.ParseError{Message: "invalid exponent '" + tok.Value + "'", Position: tok.Position, Expression: expr}
	}
	return big.NewRat(n, 1), nil
}

func (p *UnitParser) parseFactor() (unit.UnitProduct, error) {
	if p.current.Type == TokLParen {
		if _, err := p.advance(); err != nil {
			return unit.UnitProduct{}, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return unit.UnitProduct{}, err
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return unit.UnitProduct{}, err
		}
		return expr, nil
	}

	if p.current.Type == TokIdent {
		return p.parseUnitAtom()
	}

	return unit.UnitProduct{}, &uconerr.ParseError{Message: "expected unit or '('", Position: p.current.Position, Expression: p.expr}
}

func (p *UnitParser) parseUnitAtom() (unit.UnitProduct, error) {
	tok, err := p.expect(TokIdent, "IDENT")
	if err != nil {
		return unit.UnitProduct{}, err
	}
	u, s, err := p.lookup(tok.Value)
	if err != nil {
		return unit.UnitProduct{}, err
	}
	return unit.Single(u, s), nil
}

// ParseUnitExpression is the package entry point: parses expr into a
// UnitProduct using lookup to resolve identifiers.
func ParseUnitExpression(expr string, lookup LookupFunc) (unit.UnitProduct, error) {
	p, err := NewUnitParser(expr, lookup)
	if err != nil {
		return unit.UnitProduct{}, err
	}
	return p.Parse()
}
