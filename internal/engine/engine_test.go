package engine

import (
	"testing"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/cleaned"
)

func TestSpansFromCleanedZipsParallelSlices(t *testing.T) {
	ct := &cleaned.CleanedText{
		PhonesList:   [][]int{{1, 2}, {3}},
		Word2phList:  [][]int{{1, 1}, {1}},
		LangList:     []string{"Chinese", "English"},
		NormTextList: []string{"你好", "hi"},
	}
	spans := spansFromCleaned(ct)
	if len(spans) != 2 {
		t.Fatalf("len(spans) = %d, want 2", len(spans))
	}
	if spans[0].Lang != "Chinese" || spans[0].NormText != "你好" {
		t.Errorf("spans[0] = %+v", spans[0])
	}
	if spans[1].Lang != "English" || len(spans[1].Phones) != 1 {
		t.Errorf("spans[1] = %+v", spans[1])
	}
}

func TestToInt64Conversion(t *testing.T) {
	out := toInt64([]int{0, 5, 321})
	want := []int64{0, 5, 321}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestToFloat32Normalizes(t *testing.T) {
	out := toFloat32([]int16{0, 16384, -32768})
	if out[0] != 0 {
		t.Errorf("out[0] = %v, want 0", out[0])
	}
	if out[1] <= 0.49 || out[1] >= 0.51 {
		t.Errorf("out[1] = %v, want near 0.5", out[1])
	}
	if out[2] != -1 {
		t.Errorf("out[2] = %v, want -1", out[2])
	}
}

func TestEnglishCharVocabCoversLowercaseAndApostrophe(t *testing.T) {
	vocab := englishCharVocab()
	if len(vocab) != 27 {
		t.Fatalf("len(vocab) = %d, want 27", len(vocab))
	}
	if _, ok := vocab['a']; !ok {
		t.Error("expected 'a' in vocab")
	}
	if _, ok := vocab['\'']; !ok {
		t.Error("expected apostrophe in vocab")
	}
	seen := make(map[int64]bool)
	for _, id := range vocab {
		if seen[id] {
			t.Fatalf("duplicate vocab id %d", id)
		}
		seen[id] = true
	}
}

func TestEnglishPhonemesReservesBlankAtZero(t *testing.T) {
	phones := englishPhonemes()
	if phones[0] != "<blank>" {
		t.Errorf("phones[0] = %q, want <blank>", phones[0])
	}
	if len(phones) != 72 {
		t.Errorf("len(phones) = %d, want 72", len(phones))
	}
}
