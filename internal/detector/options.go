package detector

// Options configures the detection pipeline. The class vocabulary size, the
// target class and the model input size are explicit values here rather than
// package constants, so a model exported with a different vocabulary only
// needs different options, not different decoding code.
type Options struct {
	// InputSize is the square spatial size the model expects (pixels per side).
	InputSize int

	// NumClasses is the size of the model's class vocabulary.
	NumClasses int

	// TargetClassID is the index of the class being searched for within the
	// model's vocabulary. It must match the vocabulary ordering the model was
	// exported with; a mismatched ordering silently produces wrong answers.
	TargetClassID int

	// ConfidenceThreshold is the score a detection must strictly exceed to
	// count as present.
	ConfidenceThreshold float32
}

// DefaultOptions returns options for a stock COCO-vocabulary YOLOv8 export:
// 640x640 input, 80 classes, cat at index 15, threshold 0.25.
func DefaultOptions() Options {
	return Options{
		InputSize:           640,
		NumClasses:          80,
		TargetClassID:       15,
		ConfidenceThreshold: 0.25,
	}
}

// WithThreshold returns options with a different confidence threshold.
func (o Options) WithThreshold(threshold float32) Options {
	o.ConfidenceThreshold = threshold
	return o
}

// WithTargetClass returns options targeting a different class id.
func (o Options) WithTargetClass(classID int) Options {
	o.TargetClassID = classID
	return o
}

// WithVocabulary returns options for a model with a different class count.
func (o Options) WithVocabulary(numClasses int) Options {
	o.NumClasses = numClasses
	return o
}

// WithInputSize returns options for a model with a different input size.
func (o Options) WithInputSize(size int) Options {
	o.InputSize = size
	return o
}
