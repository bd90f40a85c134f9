// Package pcm implements the PCM finalizer (PF): concatenating per-chunk
// 16-bit PCM buffers, resampling the engine's native 32kHz rate down to
// 24kHz for WAV delivery, and encoding the result as a canonical
// RIFF/WAVE payload.
package pcm

import "math"

const (
	// sincHalfWidth taps either side of center -- sinc length 256 total.
	sincHalfWidth = 128
	sincCutoff    = 0.95
	// oversampling bounds the fractional source position's phase-snap
	// error to 1/oversampling of an input sample, the role rubato's
	// oversampling_factor plays when it builds a discretized sinc table
	// at this many times the input rate.
	oversampling = 256
)

// Resample converts 16-bit PCM samples from fromHz to toHz using a
// windowed-sinc interpolator (sinc length 256, cutoff 0.95, oversampling
// factor 256, Blackman-Harris window) -- ported from audio_utils.rs's
// resample_pcm16. No resampling library (the original's rubato crate)
// appears anywhere in the retrieved pack, so this is implemented directly
// against math; see DESIGN.md.
func Resample(samples []int16, fromHz, toHz int) []int16 {
	if fromHz == toHz || len(samples) == 0 {
		return append([]int16(nil), samples...)
	}
	ratio := float64(toHz) / float64(fromHz)

	// Anti-alias: downsampling narrows the passband to the output
	// Nyquist frequency, which widens the filter's support in input
	// samples proportionally.
	cutoff := sincCutoff
	if ratio < 1 {
		cutoff *= ratio
	}
	support := float64(sincHalfWidth) / cutoff

	in := make([]float64, len(samples))
	for i, s := range samples {
		in[i] = float64(s) / 32768.0
	}

	outLen := int(math.Round(float64(len(samples)) * ratio))
	out := make([]int16, outLen)
	for i := 0; i < outLen; i++ {
		srcPos := float64(i) / ratio
		srcPos = math.Round(srcPos*oversampling) / oversampling

		lo := int(math.Floor(srcPos - support))
		hi := int(math.Ceil(srcPos + support))
		var sum float64
		for n := lo; n <= hi; n++ {
			if n < 0 || n >= len(in) {
				continue
			}
			x := srcPos - float64(n)
			sum += in[n] * sincKernel(x, cutoff, support)
		}

		clamped := math.Max(-1.0, math.Min(1.0, sum))
		out[i] = int16(clamped * 32767)
	}
	return out
}

// sincKernel evaluates one windowed-sinc tap: a cutoff-scaled sinc
// multiplied by a Blackman-Harris window spanning [-support, support].
func sincKernel(x, cutoff, support float64) float64 {
	if support == 0 {
		return 0
	}
	t := (x/support + 1) / 2 // map [-support, support] onto [0, 1]
	if t < 0 || t > 1 {
		return 0
	}
	return sinc(cutoff*x) * blackmanHarris(t) * cutoff
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// blackmanHarris is the 4-term Blackman-Harris window over [0, 1].
func blackmanHarris(t float64) float64 {
	const (
		a0 = 0.35875
		a1 = 0.48829
		a2 = 0.14128
		a3 = 0.01168
	)
	w := 2 * math.Pi * t
	return a0 - a1*math.Cos(w) + a2*math.Cos(2*w) - a3*math.Cos(3*w)
}
