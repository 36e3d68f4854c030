package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDuplicateEntity, "entity %d declared twice", 42)

	if err.Code != ErrCodeDuplicateEntity {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDuplicateEntity)
	}

	if err.Message != "entity 42 declared twice" {
		t.Errorf("Message = %v, want %v", err.Message, "entity 42 declared twice")
	}

	expected := "DUPLICATE_ENTITY: entity 42 declared twice"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeCorruptData, cause, "decompress")

	if err.Code != ErrCodeCorruptData {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCorruptData)
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

	expected := "CORRUPT_DATA: decompress: unexpected EOF"
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
			err:      New(ErrCodeUnknownVertex, "test"),
			code:     ErrCodeUnknownVertex,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnknownVertex, "test"),
			code:     ErrCodeDuplicateVertex,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeCorruptData, New(ErrCodeInvalidFormat, "inner"), "outer"),
			code:     ErrCodeCorruptData,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("read graph: %w", New(ErrCodeInvalidFormat, "suffix")),
			code:     ErrCodeInvalidFormat,
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
			err:      New(ErrCodeInvalidConfig, "test"),
			expected: ErrCodeInvalidConfig,
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

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeDuplicateEntity,
		ErrCodeDuplicateVertex,
		ErrCodeUnknownVertex,
		ErrCodeInvalidConfig,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeCorruptData,
		ErrCodeFileNotFound,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
