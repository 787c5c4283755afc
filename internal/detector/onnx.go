package detector

import (
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	apperrors "go-cat-finder/internal/errors"
)

// RawOutput is one raw tensor produced by an inference engine: its logical
// shape and its flattened float32 data. The decoder treats it as read-only.
type RawOutput struct {
	Shape []int64
	Data  []float32
}

// Engine is the narrow capability the pipeline needs from a model runtime:
// run one input tensor, get back the raw output tensors. Keeping it this
// small lets the tensor builder and output decoder be tested against
// synthetic tensors with no model file present.
type Engine interface {
	Infer(input []float32, shape []int64) ([]RawOutput, error)
	Close() error
}

// onnxEngine runs a YOLO-family ONNX export through ONNX Runtime. One engine
// holds one loaded model and supports repeated invocation from a single
// goroutine for the lifetime of a scan.
type onnxEngine struct {
	session     *ort.DynamicAdvancedSession
	outputCount int
}

// NewONNXEngine loads the model at modelPath. A missing or unloadable model
// is a setup error: the caller is expected to abort before scanning anything.
// sharedLibPath optionally points at the onnxruntime shared library; when
// empty the library's default lookup applies.
func NewONNXEngine(modelPath, sharedLibPath string) (Engine, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, apperrors.NewSetupError(fmt.Sprintf("model file not found at %s", modelPath), err)
	}

	if sharedLibPath != "" {
		ort.SetSharedLibraryPath(sharedLibPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, apperrors.NewSetupError("failed to initialize ONNX Runtime environment", err)
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, apperrors.NewSetupError("failed to read model input/output metadata", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, apperrors.NewSetupError("model declares no inputs or outputs", nil)
	}

	inputNames := make([]string, len(inputs))
	for i, info := range inputs {
		inputNames[i] = info.Name
	}
	outputNames := make([]string, len(outputs))
	for i, info := range outputs {
		outputNames[i] = info.Name
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, nil)
	if err != nil {
		return nil, apperrors.NewSetupError("failed to load ONNX model", err)
	}

	return &onnxEngine{
		session:     session,
		outputCount: len(outputNames),
	}, nil
}

// Infer runs the session on one input tensor and copies out every float32
// output. Output tensors of other element types are skipped rather than
// rejected; the decoder treats their absence as "nothing detected".
func (e *onnxEngine) Infer(input []float32, shape []int64) ([]RawOutput, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(shape...), input)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	// nil entries let the runtime allocate outputs with whatever shape the
	// model produces; that shape drives the decoder's dispatch.
	outputs := make([]ort.ArbitraryTensor, e.outputCount)
	if err := e.session.Run([]ort.ArbitraryTensor{inputTensor}, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	results := make([]RawOutput, 0, len(outputs))
	for _, out := range outputs {
		if out == nil {
			continue
		}
		tensor, ok := out.(*ort.Tensor[float32])
		if !ok {
			out.Destroy()
			continue
		}
		src := tensor.GetData()
		data := make([]float32, len(src))
		copy(data, src)
		results = append(results, RawOutput{
			Shape: append([]int64(nil), tensor.GetShape()...),
			Data:  data,
		})
		tensor.Destroy()
	}
	return results, nil
}

func (e *onnxEngine) Close() error {
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}
