package parser

import (
	"math/big"
	"strconv"

	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/poly"
)

// DefaultMaxDegree bounds the exponent accepted in a term.
const DefaultMaxDegree = 1024

// Op names the operation a request asks for.
type Op string

const (
	OpFactor    Op = "factor"
	OpDerive    Op = "derive"
	OpIntegrate Op = "integrate"
	OpEvaluate  Op = "eval"
)

// commands maps every accepted command word to its operation.
var commands = map[string]Op{
	"factor":     OpFactor,
	"derive":     OpDerive,
	"derivative": OpDerive,
	"d":          OpDerive,
	"diff":       OpDerive,
	"integrate":  OpIntegrate,
	"integral":   OpIntegrate,
	"int":        OpIntegrate,
	"eval":       OpEvaluate,
	"evaluate":   OpEvaluate,
}

// LookupOp resolves a command word, returning false if it is not known.
func LookupOp(word string) (Op, bool) {
	op, ok := commands[word]
	return op, ok
}

// Request is a parsed line of input.
type Request struct {
	Op   Op
	Poly poly.Polynomial

	// At is the evaluation point; only meaningful for OpEvaluate.
	At float64
}

// Parser parses calculator input. The zero value is not usable; call New.
type Parser struct {
	maxDegree int
}

// New returns a parser that rejects exponents above maxDegree. A
// non-positive maxDegree selects DefaultMaxDegree.
func New(maxDegree int) *Parser {
	if maxDegree <= 0 {
		maxDegree = DefaultMaxDegree
	}
	return &Parser{maxDegree: maxDegree}
}

var defaultParser = New(DefaultMaxDegree)

// Parse parses a full line using DefaultMaxDegree.
func Parse(input string) (Request, error) {
	return defaultParser.Parse(input)
}

// ParsePolynomial parses a bare polynomial using DefaultMaxDegree.
func ParsePolynomial(input string) (poly.Polynomial, error) {
	return defaultParser.ParsePolynomial(input)
}

// Parse parses "[command] poly [at value]".
func (p *Parser) Parse(input string) (Request, error) {
	s, err := p.start(input)
	if err != nil {
		return Request{}, err
	}

	req := Request{Op: OpFactor}
	explicit := false
	if t := s.peek(); t.kind == tokWord {
		op, ok := commands[t.text]
		if !ok {
			return Request{}, s.errorf(t, "unknown command %q", t.text)
		}
		req.Op = op
		explicit = true
		s.next()
	}

	if req.Poly, err = s.polynomial(); err != nil {
		return Request{}, err
	}

	if t := s.peek(); t.kind == tokWord && t.text == "at" {
		s.next()
		switch {
		case !explicit:
			req.Op = OpEvaluate
		case req.Op != OpEvaluate:
			return Request{}, s.errorf(t, "'at' only applies to eval")
		}
		if req.At, err = s.value(); err != nil {
			return Request{}, err
		}
	} else if req.Op == OpEvaluate {
		return Request{}, s.errorf(t, "eval needs 'at <value>'")
	}

	if t := s.peek(); t.kind != tokEOF {
		return Request{}, s.errorf(t, "unexpected %s", describe(t))
	}
	return req, nil
}

// ParsePolynomial parses input that contains only a polynomial.
func (p *Parser) ParsePolynomial(input string) (poly.Polynomial, error) {
	s, err := p.start(input)
	if err != nil {
		return poly.Polynomial{}, err
	}
	q, err := s.polynomial()
	if err != nil {
		return poly.Polynomial{}, err
	}
	if t := s.peek(); t.kind != tokEOF {
		return poly.Polynomial{}, s.errorf(t, "unexpected %s", describe(t))
	}
	return q, nil
}

func (p *Parser) start(input string) (*state, error) {
	if err := errors.ValidateExpression(input); err != nil {
		return nil, err
	}
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	return &state{input: input, toks: toks, maxDegree: p.maxDegree}, nil
}

// state is the cursor over one token stream.
type state struct {
	input     string
	toks      []token
	i         int
	maxDegree int
}

func (s *state) peek() token {
	return s.toks[s.i]
}

func (s *state) next() token {
	t := s.toks[s.i]
	if t.kind != tokEOF {
		s.i++
	}
	return t
}

func (s *state) errorf(t token, format string, args ...any) error {
	return errors.NewParseError(s.input, t.pos, format, args...)
}

// polynomial parses a signed sum of terms and returns it with trailing zero
// coefficients trimmed.
func (s *state) polynomial() (poly.Polynomial, error) {
	var coeffs []float64

	sign := 1.0
	switch s.peek().kind {
	case tokPlus:
		s.next()
	case tokMinus:
		s.next()
		sign = -1
	}

	for {
		c, exp, err := s.term()
		if err != nil {
			return poly.Polynomial{}, err
		}
		for len(coeffs) <= exp {
			coeffs = append(coeffs, 0)
		}
		coeffs[exp] += sign * c

		switch s.peek().kind {
		case tokPlus:
			sign = 1
		case tokMinus:
			sign = -1
		default:
			return poly.New(coeffs...).Trim(), nil
		}
		s.next()
	}
}

// term parses "coeff [*] x ^ n" and its shorter forms.
func (s *state) term() (float64, int, error) {
	c := 1.0
	hasCoeff := false

	if s.peek().kind == tokNumber {
		v, err := s.coefficient()
		if err != nil {
			return 0, 0, err
		}
		c, hasCoeff = v, true

		if t := s.peek(); t.kind == tokStar {
			s.next()
			if s.peek().kind != tokX {
				return 0, 0, s.errorf(s.peek(), "expected x after '*', got %s", describe(s.peek()))
			}
		}
	}

	if s.peek().kind != tokX {
		if !hasCoeff {
			return 0, 0, s.errorf(s.peek(), "expected a term, got %s", describe(s.peek()))
		}
		return c, 0, nil
	}
	s.next()

	if s.peek().kind != tokCaret {
		return c, 1, nil
	}
	s.next()

	t := s.next()
	if t.kind != tokNumber {
		return 0, 0, s.errorf(t, "expected exponent, got %s", describe(t))
	}
	exp, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, 0, s.errorf(t, "exponent %q is not a non-negative integer", t.text)
	}
	if exp > s.maxDegree {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "exponent %d exceeds maximum degree %d", exp, s.maxDegree)
	}
	return c, exp, nil
}

// coefficient parses "n" or "n/m". Fractions are divided exactly before
// conversion so 1/3 is the nearest float64 to one third.
func (s *state) coefficient() (float64, error) {
	num, err := s.number()
	if err != nil {
		return 0, err
	}
	if s.peek().kind != tokSlash {
		f, _ := num.Float64()
		return f, nil
	}
	s.next()

	t := s.peek()
	den, err := s.number()
	if err != nil {
		return 0, err
	}
	if den.Sign() == 0 {
		return 0, s.errorf(t, "division by zero")
	}
	f, _ := num.Quo(num, den).Float64()
	return f, nil
}

func (s *state) number() (*big.Rat, error) {
	t := s.next()
	if t.kind != tokNumber {
		return nil, s.errorf(t, "expected number, got %s", describe(t))
	}
	r, ok := new(big.Rat).SetString(t.text)
	if !ok {
		return nil, s.errorf(t, "malformed number %q", t.text)
	}
	return r, nil
}

// value parses the signed evaluation point after "at".
func (s *state) value() (float64, error) {
	sign := 1.0
	switch s.peek().kind {
	case tokPlus:
		s.next()
	case tokMinus:
		s.next()
		sign = -1
	}
	v, err := s.coefficient()
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}

func describe(t token) string {
	switch t.kind {
	case tokNumber, tokWord:
		return strconv.Quote(t.text)
	default:
		return t.kind.String()
	}
}
