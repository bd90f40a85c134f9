package pcm

import "testing"

func TestResampleIdentityWhenRatesMatch(t *testing.T) {
	in := []int16{1, 2, 3, -4}
	out := Resample(in, 32000, 32000)
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], in[i])
		}
	}
}

func TestResampleEmptyInput(t *testing.T) {
	if out := Resample(nil, 32000, 24000); len(out) != 0 {
		t.Errorf("len(out) = %d, want 0", len(out))
	}
}

func TestResampleDownsampleShrinksLength(t *testing.T) {
	in := make([]int16, 3200)
	for i := range in {
		in[i] = int16(1000)
	}
	out := Resample(in, 32000, 24000)
	wantLen := 2400 // 3200 * 24000/32000
	if diff := wantLen - len(out); diff < -1 || diff > 1 {
		t.Errorf("len(out) = %d, want approximately %d", len(out), wantLen)
	}
}

func TestResamplePreservesConstantSignal(t *testing.T) {
	in := make([]int16, 4000)
	for i := range in {
		in[i] = 10000
	}
	out := Resample(in, 32000, 24000)
	// Away from the edges, a constant input should resample to
	// approximately the same constant value.
	mid := len(out) / 2
	for _, v := range out[mid-5 : mid+5] {
		diff := int(v) - 10000
		if diff < -200 || diff > 200 {
			t.Errorf("resampled constant signal drifted: got %d, want near 10000", v)
		}
	}
}

func TestSincZeroIsOne(t *testing.T) {
	if got := sinc(0); got != 1 {
		t.Errorf("sinc(0) = %v, want 1", got)
	}
}

func TestBlackmanHarrisEndpointsNearZero(t *testing.T) {
	if got := blackmanHarris(0); got > 0.01 {
		t.Errorf("blackmanHarris(0) = %v, want near 0", got)
	}
	if got := blackmanHarris(1); got > 0.01 {
		t.Errorf("blackmanHarris(1) = %v, want near 0", got)
	}
}
