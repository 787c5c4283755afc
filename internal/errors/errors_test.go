package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("file vanished")
	err := NewSetupError("model file not found", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected the cause to unwrap")
	}
	msg := err.Error()
	if msg != "setup: model file not found (caused by: file vanished)" {
		t.Errorf("Unexpected message: %q", msg)
	}

	bare := NewInternalError("boom", nil)
	if bare.Error() != "internal: boom" {
		t.Errorf("Unexpected message without cause: %q", bare.Error())
	}
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{NewDecodeError("bad image", nil), true},
		{NewInferenceError("model failed", nil), true},
		{NewSetupError("no model", nil), false},
		{NewValidationError("bad threshold", nil), false},
		{fmt.Errorf("plain error"), false},
	}
	for _, tt := range tests {
		if got := IsRecoverable(tt.err); got != tt.want {
			t.Errorf("IsRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	if code := GetExitCode(NewSetupError("no model", nil)); code != 1 {
		t.Errorf("Expected exit code 1 for setup errors, got %d", code)
	}
	if code := GetExitCode(NewValidationError("bad flag", nil)); code != 2 {
		t.Errorf("Expected exit code 2 for validation errors, got %d", code)
	}
	if code := GetExitCode(fmt.Errorf("plain")); code != 1 {
		t.Errorf("Expected exit code 1 for unknown errors, got %d", code)
	}
}

func TestIsType(t *testing.T) {
	err := NewInferenceError("failed", nil)
	if !IsType(err, ErrorTypeInference) {
		t.Error("Expected inference type to match")
	}
	if IsType(err, ErrorTypeSetup) {
		t.Error("Expected setup type to not match")
	}
	if IsType(errors.New("plain"), ErrorTypeSetup) {
		t.Error("Expected plain errors to match no type")
	}
}
