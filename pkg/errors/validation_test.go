package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateExpression(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "x^2 + 3x + 2", false},
		{"with command", "derive x^3", false},
		{"tab allowed", "x\t+ 1", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", MaxExpressionLength+1), true},
		{"null byte", "x\x00+1", true},
		{"control char", "x\x01", true},
		{"newline", "x\n+1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpression(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExpression(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateCoefficients(t *testing.T) {
	tests := []struct {
		name    string
		input   []float64
		wantErr bool
	}{
		{"valid", []float64{2, 3, 1}, false},
		{"constant", []float64{5}, false},
		{"empty", nil, true},
		{"nan", []float64{1, math.NaN()}, true},
		{"inf", []float64{math.Inf(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoefficients(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoefficients(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
