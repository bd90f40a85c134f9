package pcm

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	nativeSampleRate = 32000
	wavSampleRate    = 24000
)

// Concat joins one or more per-chunk 16-bit PCM buffers at the engine's
// native 32kHz rate, in order.
func Concat(chunks [][]int16) []int16 {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	out := make([]int16, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// EncodeWAV resamples native-rate PCM down to 24kHz and writes a
// canonical mono 16-bit RIFF/WAVE payload to w -- grounded on the
// retrieved ONNX example's writeWavFile, using github.com/go-audio/wav
// and github.com/go-audio/audio the same way.
func EncodeWAV(w io.WriteSeeker, pcm32k []int16) error {
	resampled := Resample(pcm32k, nativeSampleRate, wavSampleRate)

	intData := make([]int, len(resampled))
	for i, s := range resampled {
		intData[i] = int(s)
	}

	encoder := wav.NewEncoder(w, wavSampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Data:           intData,
		Format:         &audio.Format{SampleRate: wavSampleRate, NumChannels: 1},
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		return err
	}
	return encoder.Close()
}
