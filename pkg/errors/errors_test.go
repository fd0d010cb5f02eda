package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNoPlacement, "no valid placement for node %q", "d")

	if err.Code != ErrCodeNoPlacement {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNoPlacement)
	}

	if err.Message != `no valid placement for node "d"` {
		t.Errorf("Message = %v, want %v", err.Message, `no valid placement for node "d"`)
	}

	expected := `NO_PLACEMENT: no valid placement for node "d"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode diagram")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_FORMAT: decode diagram: unexpected EOF"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeNoRoute, "test"),
			code:     ErrCodeNoRoute,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNoRoute, "test"),
			code:     ErrCodeNoPlacement,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("layout: %w", New(ErrCodeNotClonable, "inner")),
			code:     ErrCodeNotClonable,
			expected: true,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeExhausted, New(ErrCodeNoRoute, "inner"), "outer"),
			code:     ErrCodeExhausted,
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
		{"Error type", New(ErrCodeGridIntegrity, "test"), ErrCodeGridIntegrity},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
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
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsLayoutFailure(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeNoPlacement, "x"), true},
		{New(ErrCodeNoRoute, "x"), true},
		{New(ErrCodeNotClonable, "x"), false},
		{errors.New("x"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsLayoutFailure(tt.err); got != tt.want {
			t.Errorf("IsLayoutFailure(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
