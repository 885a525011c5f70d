package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxExpressionLength bounds the size of a single input line.
const MaxExpressionLength = 4096

// ValidateExpression validates a raw expression before it reaches the parser.
//
// The validation rules are intentionally conservative:
//   - No empty (or whitespace-only) expressions
//   - No control characters other than tab
//   - Maximum length of MaxExpressionLength bytes
func ValidateExpression(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return New(ErrCodeInvalidInput, "expression cannot be empty")
	}

	if len(expr) > MaxExpressionLength {
		return New(ErrCodeInvalidInput, "expression too long (max %d characters)", MaxExpressionLength)
	}

	for _, r := range expr {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "expression contains invalid control characters")
		}
	}

	return nil
}

// ValidateCoefficients checks a coefficient vector supplied directly (for
// example over the HTTP API) rather than through the parser.
func ValidateCoefficients(coefficients []float64) error {
	if len(coefficients) == 0 {
		return New(ErrCodeInvalidInput, "coefficient list cannot be empty")
	}
	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return New(ErrCodeInvalidInput, "coefficient of x^%d is not finite", i)
		}
	}
	return nil
}
