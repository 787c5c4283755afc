package detector

// Decision is the outcome of decoding one model output for one image.
type Decision struct {
	// Present is true when the target class was seen above the threshold.
	Present bool

	// Confidence is the score of the triggering detection; zero when absent.
	Confidence float32

	// ClassID is the class of the triggering detection; meaningful only
	// when Present is true.
	ClassID int
}

// recordWidth is the width of one post-suppression detection record:
// [x1, y1, x2, y2, confidence, class_id].
const recordWidth = 6

// outputLayout identifies which of the two supported output conventions a
// raw tensor follows. Resolving the layout once up front keeps the two
// decoding strategies independently testable.
type outputLayout int

const (
	layoutUnknown outputLayout = iota
	// layoutDense is the raw per-anchor layout (1, 4+C, N): four box rows
	// followed by C class-score rows, N anchor columns.
	layoutDense
	// layoutRecords is the post-NMS layout: flat 6-wide detection records.
	layoutRecords
)

// classifyOutput resolves a tensor's layout from its shape. A shape matching
// neither convention classifies as unknown, which decodes to "no detections"
// rather than an error: models legitimately emit empty or zero-dimensional
// tensors for images with nothing in them, and one odd image must never
// abort a whole directory scan.
func classifyOutput(out RawOutput, opts Options) outputLayout {
	shape := out.Shape

	if len(shape) == 3 && shape[1] == int64(4+opts.NumClasses) {
		anchors := int(shape[2])
		if anchors > 0 && len(out.Data) >= (4+opts.NumClasses)*anchors {
			return layoutDense
		}
		return layoutUnknown
	}

	// Rank-2 tensors must be wide enough to hold a full record.
	if len(shape) == 2 {
		if shape[1] >= recordWidth {
			return layoutRecords
		}
		return layoutUnknown
	}

	// Anything else is accepted as a flattened record buffer when it divides
	// evenly into records.
	if len(out.Data) > 0 && len(out.Data)%recordWidth == 0 {
		return layoutRecords
	}
	return layoutUnknown
}

// DecodeOutput inspects one raw output tensor and reports whether the target
// class is present above the confidence threshold.
func DecodeOutput(out RawOutput, opts Options) Decision {
	switch classifyOutput(out, opts) {
	case layoutDense:
		return decodeDense(out, opts)
	case layoutRecords:
		return decodeRecords(out, opts)
	default:
		return Decision{}
	}
}

// decodeDense scans the (1, 4+C, N) layout anchor by anchor. For each anchor
// it takes the argmax over the C class scores (the first four rows are box
// geometry and are skipped, presence needs no boxes) and reports the first
// anchor whose best class is the target with a score strictly above the
// threshold. Scanning stops at that anchor, so when several anchors qualify
// the earliest index wins deterministically.
func decodeDense(out RawOutput, opts Options) Decision {
	anchors := int(out.Shape[2])

	for i := 0; i < anchors; i++ {
		bestClass := 0
		bestScore := out.Data[4*anchors+i]
		for c := 1; c < opts.NumClasses; c++ {
			// Strict > keeps the first occurrence on ties, so equal maxima
			// resolve to the lowest class id.
			if score := out.Data[(4+c)*anchors+i]; score > bestScore {
				bestScore = score
				bestClass = c
			}
		}

		if bestClass == opts.TargetClassID && bestScore > opts.ConfidenceThreshold {
			return Decision{Present: true, Confidence: bestScore, ClassID: bestClass}
		}
	}
	return Decision{}
}

// decodeRecords walks 6-wide [x1, y1, x2, y2, confidence, class_id] records
// and reports the first one whose class matches the target with confidence
// strictly above the threshold. Rank-2 tensors use their row width as the
// stride so trailing columns beyond the sixth are ignored; every other
// accepted shape is read as tightly packed records.
func decodeRecords(out RawOutput, opts Options) Decision {
	stride := recordWidth
	if len(out.Shape) == 2 {
		stride = int(out.Shape[1])
	}

	for off := 0; off+recordWidth <= len(out.Data); off += stride {
		confidence := out.Data[off+4]
		classID := int(out.Data[off+5])

		if classID == opts.TargetClassID && confidence > opts.ConfidenceThreshold {
			return Decision{Present: true, Confidence: confidence, ClassID: classID}
		}
	}
	return Decision{}
}
