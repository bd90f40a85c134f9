package bert

import "testing"

func testVocab() Vocab {
	return Vocab{
		"[CLS]": 101,
		"[SEP]": 102,
		"[UNK]": 100,
		"你":     1001,
		"好":     1002,
	}
}

func TestEncodeWrapsCLSAndSEP(t *testing.T) {
	tok := New(testVocab())
	enc := tok.Encode("你好")

	want := []int64{101, 1001, 1002, 102}
	if len(enc.IDs) != len(want) {
		t.Fatalf("ids = %v, want %v", enc.IDs, want)
	}
	for i := range want {
		if enc.IDs[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, enc.IDs[i], want[i])
		}
	}
	if enc.NumContentToks != 2 {
		t.Errorf("NumContentToks = %d, want 2", enc.NumContentToks)
	}
	for _, m := range enc.AttentionMask {
		if m != 1 {
			t.Errorf("attention mask entry = %d, want 1", m)
		}
	}
	for _, ty := range enc.TokenTypeIDs {
		if ty != 0 {
			t.Errorf("token type entry = %d, want 0", ty)
		}
	}
}

func TestEncodeFallsBackToUNKForUnknownChar(t *testing.T) {
	tok := New(testVocab())
	enc := tok.Encode("你X")

	want := []int64{101, 1001, 100, 102}
	if len(enc.IDs) != len(want) {
		t.Fatalf("ids = %v, want %v", enc.IDs, want)
	}
	for i := range want {
		if enc.IDs[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, enc.IDs[i], want[i])
		}
	}
}
