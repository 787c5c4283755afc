package detector

import (
	"path/filepath"
	"testing"

	apperrors "go-cat-finder/internal/errors"
)

// A missing model file must abort setup before any scanning starts. This
// branch never touches the ONNX runtime, so it is testable without the
// shared library present.
func TestNewONNXEngine_MissingModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-model.onnx")

	engine, err := NewONNXEngine(path, "")
	if engine != nil {
		t.Error("Expected no engine for a missing model file")
	}
	if err == nil {
		t.Fatal("Expected an error for a missing model file")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeSetup) {
		t.Errorf("Expected a setup error, got %v", err)
	}
	if apperrors.IsRecoverable(err) {
		t.Error("Expected a missing model to be fatal, not recoverable")
	}
	if code := apperrors.GetExitCode(err); code == 0 {
		t.Errorf("Expected a non-zero exit code, got %d", code)
	}
}
