package engine

import "testing"

func TestReferenceSilencePaddingSamples(t *testing.T) {
	if referenceSilencePaddingSamples != 4800 {
		t.Errorf("referenceSilencePaddingSamples = %d, want 4800", referenceSilencePaddingSamples)
	}
}

func TestReadWavPCMMissingFile(t *testing.T) {
	if _, _, err := readWavPCM("/nonexistent/path/does-not-exist.wav"); err == nil {
		t.Error("expected error for missing file")
	}
}
