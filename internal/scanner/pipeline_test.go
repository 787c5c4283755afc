package scanner

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go-cat-finder/internal/detector"
	"go-cat-finder/internal/storage"
)

// denseEngine is a synthetic inference engine emitting Convention-A style
// (1, 4+C, N) outputs. The image whose call index appears in catCalls gets
// the target class scored at the given anchor.
type denseEngine struct {
	opts     detector.Options
	anchors  int
	anchor   int
	score    float32
	catCalls map[int]bool
	calls    int
}

func (e *denseEngine) Infer(input []float32, shape []int64) ([]detector.RawOutput, error) {
	i := e.calls
	e.calls++

	out := detector.RawOutput{
		Shape: []int64{1, int64(4 + e.opts.NumClasses), int64(e.anchors)},
		Data:  make([]float32, (4+e.opts.NumClasses)*e.anchors),
	}
	if e.catCalls[i] {
		out.Data[(4+e.opts.TargetClassID)*e.anchors+e.anchor] = e.score
	}
	return []detector.RawOutput{out}, nil
}

func (e *denseEngine) Close() error { return nil }

// TestFullPipeline_TenImagesOneCat drives the real detector (tensor builder,
// engine, output decoder) over a directory: ten decodable images, one of
// which produces a qualifying dense output at anchor 42.
func TestFullPipeline_TenImagesOneCat(t *testing.T) {
	dir := t.TempDir()
	names := []string{"00.png", "01.png", "02.png", "03.png", "04.png", "05.png", "06.png", "07.png", "08.png", "09.png"}
	for _, name := range names {
		writeTestPNG(t, filepath.Join(dir, name))
	}

	opts := detector.DefaultOptions().WithThreshold(0.25)
	engine := &denseEngine{
		opts:     opts,
		anchors:  8400,
		anchor:   42,
		score:    0.9,
		catCalls: map[int]bool{6: true},
	}
	det := detector.New(engine, opts)

	var out bytes.Buffer
	s := New(det, storage.NewLocalImageFetcher(), &out, false)

	summary, err := s.ScanDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	if summary.Total != 10 {
		t.Errorf("Expected total=10, got %d", summary.Total)
	}
	if summary.Found != 1 {
		t.Errorf("Expected found=1, got %d", summary.Found)
	}
	if summary.Errors != 0 {
		t.Errorf("Expected errors=0, got %d", summary.Errors)
	}

	want := filepath.Join(dir, "06.png")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 || lines[0] != want {
		t.Errorf("Expected only %q in output, got %q", want, out.String())
	}
}
