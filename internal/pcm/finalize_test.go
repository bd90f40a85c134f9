package pcm

import "testing"

func TestConcatJoinsInOrder(t *testing.T) {
	out := Concat([][]int16{{1, 2}, {3}, {4, 5, 6}})
	want := []int16{1, 2, 3, 4, 5, 6}
	if len(out) != len(want) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestConcatEmpty(t *testing.T) {
	if out := Concat(nil); len(out) != 0 {
		t.Errorf("len(out) = %d, want 0", len(out))
	}
}
