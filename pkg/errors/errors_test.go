package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidConfig, cause, "failed to read")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeDiverged,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeUnconverged, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeUnconverged,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeNonRationalizable, "test"),
			expected: ErrCodeNonRationalizable,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsEngineFault(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeDegenerateDerivative, true},
		{ErrCodeCoincidentApproximations, true},
		{ErrCodeDiverged, true},
		{ErrCodeUnconverged, true},
		{ErrCodeNonRationalizable, true},
		{ErrCodeInvalidInput, false},
		{ErrCodeParse, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsEngineFault(New(tt.code, "x")); got != tt.want {
				t.Errorf("IsEngineFault(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}

	if IsEngineFault(errors.New("plain")) {
		t.Error("plain errors are not engine faults")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("x^^2", 2, "unexpected %q", "^")

	if !Is(err, ErrCodeParse) {
		t.Errorf("code = %v, want %v", err.Code, ErrCodeParse)
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("errors.As should find *ParseError")
	}
	if pe.Offset != 2 {
		t.Errorf("Offset = %d, want 2", pe.Offset)
	}
	if pe.Code() != ErrCodeParse {
		t.Errorf("Code() = %v, want %v", pe.Code(), ErrCodeParse)
	}
	if err.Message != `unexpected "^" at offset 2` {
		t.Errorf("Message = %q", err.Message)
	}
}
