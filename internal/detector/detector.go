package detector

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	apperrors "go-cat-finder/internal/errors"
	"go-cat-finder/internal/logger"
)

// CatDetector ties the tensor builder, an inference engine and the output
// decoder into the per-image pipeline: decoded image in, Decision out.
type CatDetector struct {
	engine Engine
	opts   Options
}

// New creates a detector around an already-loaded engine.
func New(engine Engine, opts Options) *CatDetector {
	return &CatDetector{
		engine: engine,
		opts:   opts,
	}
}

// Options returns the options the detector was built with.
func (d *CatDetector) Options() Options {
	return d.opts
}

// DetectImage runs one decoded image through the full pipeline. The input
// tensor is built fresh for this call and discarded with it; nothing is
// shared between images, so a single long-lived detector can be invoked for
// every image of a scan in sequence.
//
// A failed inference call is reported as a recoverable error so the caller
// can count it and keep scanning.
func (d *CatDetector) DetectImage(img image.Image) (Decision, error) {
	input := BuildInputTensor(img, d.opts.InputSize)

	outputs, err := d.engine.Infer(input, InputShape(d.opts.InputSize))
	if err != nil {
		return Decision{}, apperrors.NewInferenceError("inference call failed", err)
	}

	for _, out := range outputs {
		if decision := DecodeOutput(out, d.opts); decision.Present {
			logger.WithFields(logrus.Fields{
				"class_id":   decision.ClassID,
				"confidence": fmt.Sprintf("%.3f", decision.Confidence),
			}).Debug("Target class detected")
			return decision, nil
		}
	}
	return Decision{}, nil
}

// Close releases the underlying engine.
func (d *CatDetector) Close() error {
	return d.engine.Close()
}
