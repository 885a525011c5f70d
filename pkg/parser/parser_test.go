package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/polycalc/pkg/errors"
)

func TestParsePolynomial(t *testing.T) {
	tests := []struct {
		input string
		want  []float64
	}{
		{"x^2 + 3x + 2", []float64{2, 3, 1}},
		{"x", []float64{0, 1}},
		{"-x", []float64{0, -1}},
		{"+x - 1", []float64{-1, 1}},
		{"7", []float64{7}},
		{"0", []float64{0}},
		{"3*x^2", []float64{0, 0, 3}},
		{"1/2x^2 - 1/4", []float64{-0.25, 0, 0.5}},
		{"x^3 - 1", []float64{-1, 0, 0, 1}},
		{"2 + x^2", []float64{2, 0, 1}},
		{"x + x", []float64{0, 2}},
		{"x^2 - x^2 + x", []float64{0, 1}},
		{"0x^5 + 1", []float64{1}},
		{"X^2", []float64{0, 0, 1}},
		{"  x ^ 2  +  .5 ", []float64{0.5, 0, 1}},
		{"2.5x", []float64{0, 2.5}},
		{"x^0 + x^1", []float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePolynomial(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Coefficients())
		})
	}
}

func TestParseFractionIsExact(t *testing.T) {
	p, err := ParsePolynomial("1/3")
	require.NoError(t, err)
	assert.Equal(t, 1.0/3.0, p.Coefficient(0))
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		input string
		op    Op
		at    float64
	}{
		{"x^2 - 1", OpFactor, 0},
		{"factor x^2 - 1", OpFactor, 0},
		{"FACTOR x", OpFactor, 0},
		{"derive x^3", OpDerive, 0},
		{"d x^3", OpDerive, 0},
		{"derivative x^3", OpDerive, 0},
		{"diff x^3", OpDerive, 0},
		{"integrate x", OpIntegrate, 0},
		{"integral x", OpIntegrate, 0},
		{"int x", OpIntegrate, 0},
		{"eval x^2 at 3", OpEvaluate, 3},
		{"evaluate x^2 at -1/2", OpEvaluate, -0.5},
		{"x^2 at 2", OpEvaluate, 2},
		{"eval x at +4", OpEvaluate, 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.op, req.Op)
			assert.Equal(t, tt.at, req.At)
		})
	}
}

func TestLookupOp(t *testing.T) {
	op, ok := LookupOp("int")
	assert.True(t, ok)
	assert.Equal(t, OpIntegrate, op)

	_, ok = LookupOp("solve")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		reason string
	}{
		{"x^", 2, "expected exponent"},
		{"x^y", 2, "expected exponent"},
		{"x^-1", 2, "expected exponent"},
		{"x^1.5", 2, "not a non-negative integer"},
		{"2x + ", 5, "expected a term"},
		{"2 3", 2, "unexpected"},
		{"x $ 1", 2, "unexpected character"},
		{"1.2.3", 0, "malformed number"},
		{"solve x", 0, "unknown command"},
		{"3*", 2, "expected x"},
		{"1/0 x", 2, "division by zero"},
		{"derive x at 2", 9, "only applies to eval"},
		{"eval x^2", 8, "eval needs"},
		{"eval x at", 9, "expected number"},
		{"derive", 6, "expected a term"},
		{"xx", 0, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeParse), "got %v", err)

			var pe *errors.ParseError
			require.True(t, stderrors.As(err, &pe), "got %T", err)
			assert.Equal(t, tt.offset, pe.Offset)
			assert.Equal(t, tt.input, pe.Input)
			assert.Contains(t, pe.Reason, tt.reason)
		})
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "x\x00"} {
		_, err := Parse(input)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "%q: got %v", input, err)
	}
}

func TestParseMaxDegree(t *testing.T) {
	p := New(4)

	q, err := p.ParsePolynomial("x^4 + 1")
	require.NoError(t, err)
	assert.Equal(t, 4, q.Degree())

	_, err = p.ParsePolynomial("x^5")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	_, err = Parse("x^" + strings.Repeat("9", 30))
	assert.True(t, errors.Is(err, errors.ErrCodeParse), "got %v", err)
}

func TestNewDefaultsMaxDegree(t *testing.T) {
	assert.Equal(t, DefaultMaxDegree, New(0).maxDegree)
	assert.Equal(t, DefaultMaxDegree, New(-3).maxDegree)
}

func TestLexOffsetsAreBytes(t *testing.T) {
	_, err := Parse("é x")
	require.Error(t, err)

	var pe *errors.ParseError
	require.True(t, stderrors.As(err, &pe))
	// é is a letter, so the first word is an unknown command at offset 0.
	assert.Equal(t, 0, pe.Offset)

	_, err = Parse("x + · 1")
	require.True(t, stderrors.As(err, &pe))
	assert.Equal(t, 4, pe.Offset)
}
