package detector

import (
	"testing"
)

// makeDenseOutput builds a (1, 4+numClasses, anchors) tensor with every
// score zeroed. Callers poke individual scores via setScore.
func makeDenseOutput(numClasses, anchors int) RawOutput {
	return RawOutput{
		Shape: []int64{1, int64(4 + numClasses), int64(anchors)},
		Data:  make([]float32, (4+numClasses)*anchors),
	}
}

// setScore writes the class score for one anchor in a dense output.
func setScore(out RawOutput, anchors, classID, anchor int, score float32) {
	out.Data[(4+classID)*anchors+anchor] = score
}

// makeRecords builds an (n, 6) post-suppression detection list.
func makeRecords(records ...[6]float32) RawOutput {
	data := make([]float32, 0, len(records)*6)
	for _, r := range records {
		data = append(data, r[:]...)
	}
	return RawOutput{
		Shape: []int64{int64(len(records)), 6},
		Data:  data,
	}
}

func TestDecodeDense_SingleQualifyingAnchor(t *testing.T) {
	opts := DefaultOptions()
	const anchors = 100

	out := makeDenseOutput(opts.NumClasses, anchors)
	// Strong scores for other classes elsewhere must not matter.
	setScore(out, anchors, 0, 3, 0.99)
	setScore(out, anchors, 57, 80, 0.95)
	// The only qualifying cat anchor.
	setScore(out, anchors, opts.TargetClassID, 42, 0.9)

	decision := DecodeOutput(out, opts)
	if !decision.Present {
		t.Fatal("Expected target class to be detected")
	}
	if decision.Confidence != 0.9 {
		t.Errorf("Expected confidence 0.9, got %f", decision.Confidence)
	}
	if decision.ClassID != opts.TargetClassID {
		t.Errorf("Expected class id %d, got %d", opts.TargetClassID, decision.ClassID)
	}
}

func TestDecodeDense_EarliestAnchorWins(t *testing.T) {
	opts := DefaultOptions()
	const anchors = 50

	out := makeDenseOutput(opts.NumClasses, anchors)
	setScore(out, anchors, opts.TargetClassID, 10, 0.6)
	setScore(out, anchors, opts.TargetClassID, 30, 0.95)

	decision := DecodeOutput(out, opts)
	if !decision.Present {
		t.Fatal("Expected target class to be detected")
	}
	// Early exit: the anchor at index 10 qualifies first, even though the
	// later anchor scores higher.
	if decision.Confidence != 0.6 {
		t.Errorf("Expected earliest qualifying anchor's confidence 0.6, got %f", decision.Confidence)
	}
}

func TestDecodeDense_TargetNotArgmax(t *testing.T) {
	opts := DefaultOptions()
	const anchors = 10

	out := makeDenseOutput(opts.NumClasses, anchors)
	// The target scores above threshold but another class scores higher at
	// the same anchor, so the anchor's argmax is not the target.
	setScore(out, anchors, opts.TargetClassID, 4, 0.5)
	setScore(out, anchors, 16, 4, 0.8)

	if decision := DecodeOutput(out, opts); decision.Present {
		t.Errorf("Expected no detection when target is not the argmax class, got %+v", decision)
	}
}

func TestDecodeDense_TieBreakLowestClassID(t *testing.T) {
	opts := DefaultOptions()
	const anchors = 5

	// Tie between the target and a higher class id: the lowest id wins the
	// argmax, so the target is detected.
	out := makeDenseOutput(opts.NumClasses, anchors)
	setScore(out, anchors, opts.TargetClassID, 0, 0.7)
	setScore(out, anchors, opts.TargetClassID+5, 0, 0.7)
	if decision := DecodeOutput(out, opts); !decision.Present {
		t.Error("Expected tie against a higher class id to resolve to the target")
	}

	// Tie between a lower class id and the target: the lower id wins, no
	// detection.
	out = makeDenseOutput(opts.NumClasses, anchors)
	setScore(out, anchors, 3, 0, 0.7)
	setScore(out, anchors, opts.TargetClassID, 0, 0.7)
	if decision := DecodeOutput(out, opts); decision.Present {
		t.Errorf("Expected tie against a lower class id to suppress the target, got %+v", decision)
	}
}

func TestDecodeDense_StrictThreshold(t *testing.T) {
	opts := DefaultOptions().WithThreshold(0.25)
	const anchors = 8

	tests := []struct {
		name    string
		score   float32
		present bool
	}{
		{name: "score equal to threshold", score: 0.25, present: false},
		{name: "score just above threshold", score: 0.250001, present: true},
		{name: "score below threshold", score: 0.2, present: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := makeDenseOutput(opts.NumClasses, anchors)
			setScore(out, anchors, opts.TargetClassID, 2, tt.score)

			decision := DecodeOutput(out, opts)
			if decision.Present != tt.present {
				t.Errorf("score %f: expected present=%v, got %v", tt.score, tt.present, decision.Present)
			}
		})
	}
}

func TestDecodeRecords_TargetMatch(t *testing.T) {
	opts := DefaultOptions()

	out := makeRecords(
		[6]float32{10, 20, 110, 120, 0.9, 16},             // dog, high confidence
		[6]float32{5, 5, 50, 50, 0.6, float32(opts.TargetClassID)},
		[6]float32{0, 0, 30, 30, 0.8, float32(opts.TargetClassID)},
	)

	decision := DecodeOutput(out, opts)
	if !decision.Present {
		t.Fatal("Expected target class record to be detected")
	}
	// First matching record wins.
	if decision.Confidence != 0.6 {
		t.Errorf("Expected first matching record's confidence 0.6, got %f", decision.Confidence)
	}
}

func TestDecodeRecords_NoTargetClass(t *testing.T) {
	opts := DefaultOptions()

	// High-confidence records for other classes only.
	out := makeRecords(
		[6]float32{0, 0, 10, 10, 0.99, 0},
		[6]float32{0, 0, 10, 10, 0.97, 16},
		[6]float32{0, 0, 10, 10, 0.95, 17},
	)

	if decision := DecodeOutput(out, opts); decision.Present {
		t.Errorf("Expected no detection without a target-class record, got %+v", decision)
	}
}

func TestDecodeRecords_StrictThreshold(t *testing.T) {
	opts := DefaultOptions().WithThreshold(0.25)

	out := makeRecords([6]float32{0, 0, 10, 10, 0.25, float32(opts.TargetClassID)})
	if decision := DecodeOutput(out, opts); decision.Present {
		t.Error("Expected record at exactly the threshold to not count")
	}

	out = makeRecords([6]float32{0, 0, 10, 10, 0.26, float32(opts.TargetClassID)})
	if decision := DecodeOutput(out, opts); !decision.Present {
		t.Error("Expected record above the threshold to count")
	}
}

func TestDecodeRecords_FlattenedBuffer(t *testing.T) {
	opts := DefaultOptions()

	// A rank-1 buffer that divides evenly into 6-wide records.
	out := RawOutput{
		Shape: []int64{12},
		Data: []float32{
			0, 0, 10, 10, 0.9, 16,
			0, 0, 10, 10, 0.7, float32(opts.TargetClassID),
		},
	}

	decision := DecodeOutput(out, opts)
	if !decision.Present {
		t.Fatal("Expected flattened record buffer to decode")
	}
	if decision.Confidence != 0.7 {
		t.Errorf("Expected confidence 0.7, got %f", decision.Confidence)
	}
}

func TestDecodeRecords_WideRowsUseRowStride(t *testing.T) {
	opts := DefaultOptions()

	// Rank-2 rows wider than a record: the extra trailing columns must be
	// ignored, not misread as the next record.
	out := RawOutput{
		Shape: []int64{2, 7},
		Data: []float32{
			0, 0, 10, 10, 0.9, 16, -1,
			0, 0, 10, 10, 0.8, float32(opts.TargetClassID), -1,
		},
	}

	decision := DecodeOutput(out, opts)
	if !decision.Present {
		t.Fatal("Expected wide-row record list to decode")
	}
	if decision.Confidence != 0.8 {
		t.Errorf("Expected confidence 0.8, got %f", decision.Confidence)
	}
}

func TestDecodeOutput_UnrecognizedShapes(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name string
		out  RawOutput
	}{
		{
			name: "rank 2 with fewer than 6 columns",
			out:  RawOutput{Shape: []int64{4, 3}, Data: make([]float32, 12)},
		},
		{
			name: "rank 1 not divisible into records",
			out:  RawOutput{Shape: []int64{7}, Data: make([]float32, 7)},
		},
		{
			name: "empty tensor",
			out:  RawOutput{Shape: []int64{0}, Data: nil},
		},
		{
			name: "rank 3 with wrong second dimension and odd length",
			out:  RawOutput{Shape: []int64{1, 5, 5}, Data: make([]float32, 25)},
		},
		{
			name: "dense shape with truncated data",
			out:  RawOutput{Shape: []int64{1, 84, 8400}, Data: make([]float32, 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must decode to absent, never panic.
			if decision := DecodeOutput(tt.out, opts); decision.Present {
				t.Errorf("Expected no detection for unrecognized shape, got %+v", decision)
			}
		})
	}
}

func TestDecodeDense_CustomVocabulary(t *testing.T) {
	// A model with a 10-class vocabulary and target class 2: dispatch keys
	// off 4+NumClasses, not a hardcoded 84.
	opts := DefaultOptions().WithVocabulary(10).WithTargetClass(2)
	const anchors = 20

	out := makeDenseOutput(opts.NumClasses, anchors)
	setScore(out, anchors, 2, 7, 0.5)

	decision := DecodeOutput(out, opts)
	if !decision.Present {
		t.Fatal("Expected detection with custom vocabulary options")
	}
	if decision.ClassID != 2 {
		t.Errorf("Expected class id 2, got %d", decision.ClassID)
	}
}
