// Package onnxrt wraps the process-wide ONNX Runtime environment and the
// per-model session type every neural module (BD, and the five acoustic
// models) drives inference through. Grounded on the shared-library
// bootstrap and DynamicAdvancedSession wiring used throughout the
// retrieved ONNX examples (onnxruntime_go's advanced-session API driven
// by explicit input/output name lists).
package onnxrt

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	initOnce sync.Once
	initErr  error
)

// InitEnvironment points onnxruntime_go at the shared library and
// initializes the ONNX Runtime environment exactly once per process; safe
// to call from every module that needs a session, only the first call does
// any work.
func InitEnvironment(libPath string) error {
	initOnce.Do(func() {
		if libPath == "" {
			libPath = defaultLibraryPath()
		}
		ort.SetSharedLibraryPath(libPath)
		initErr = ort.InitializeEnvironment()
	})
	return initErr
}

func defaultLibraryPath() string {
	if p := os.Getenv("ONNXRUNTIME_LIB_PATH"); p != "" {
		return p
	}
	candidates := []string{
		"/usr/local/lib/libonnxruntime.so",
		"/usr/local/lib/libonnxruntime.dylib",
		"/usr/lib/libonnxruntime.so",
		"/usr/lib/x86_64-linux-gnu/libonnxruntime.so",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return "/usr/local/lib/libonnxruntime.so"
}

// Session wraps one loaded ONNX model with its fixed input/output name
// lists, matching the shape every acoustic and BD model is invoked with:
// a bag of named float/int tensors in, a bag of named tensors out.
type Session struct {
	inner   *ort.DynamicAdvancedSession
	inputs  []string
	outputs []string
}

// NewSession loads modelPath and binds it to the given input/output tensor
// names. libPath is passed to InitEnvironment on first use; pass "" to
// resolve it from ONNXRUNTIME_LIB_PATH or the usual install locations.
func NewSession(libPath, modelPath string, inputs, outputs []string) (*Session, error) {
	if err := InitEnvironment(libPath); err != nil {
		return nil, fmt.Errorf("onnxrt: environment init: %w", err)
	}
	sess, err := ort.NewDynamicAdvancedSession(modelPath, inputs, outputs, nil)
	if err != nil {
		return nil, fmt.Errorf("onnxrt: load %s: %w", modelPath, err)
	}
	return &Session{inner: sess, inputs: inputs, outputs: outputs}, nil
}

// Run feeds the input tensors (matching NewSession's input name order) and
// returns freshly-allocated output tensors (one per output name); the
// caller owns and must Destroy every returned value.
func (s *Session) Run(inputs []ort.Value) ([]ort.Value, error) {
	if len(inputs) != len(s.inputs) {
		return nil, fmt.Errorf("onnxrt: expected %d inputs, got %d", len(s.inputs), len(inputs))
	}
	outputs := make([]ort.Value, len(s.outputs))
	if err := s.inner.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("onnxrt: run: %w", err)
	}
	return outputs, nil
}

// Destroy releases the underlying ONNX Runtime session.
func (s *Session) Destroy() error {
	if s.inner == nil {
		return nil
	}
	err := s.inner.Destroy()
	s.inner = nil
	return err
}

// FloatTensor builds a float32 tensor from flat data and its shape, the
// standard shape every acoustic model's input construction needs.
func FloatTensor(shape []int64, data []float32) (*ort.Tensor[float32], error) {
	return ort.NewTensor(shape, data)
}

// Int64Tensor builds an int64 tensor from flat data and its shape (token
// IDs, cache positions, shapes used by the attention/KV-cache inputs).
func Int64Tensor(shape []int64, data []int64) (*ort.Tensor[int64], error) {
	return ort.NewTensor(shape, data)
}
