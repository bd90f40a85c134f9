package engine

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/acoustic"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/bert"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/cleaned"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/pcm"
)

// referenceSilencePaddingSamples is 0.3s of silence at 16kHz, appended to
// the reference voice's 16kHz content-encoder input only; the 32kHz
// waveform is left unpadded.
const referenceSilencePaddingSamples = int(16000 * 0.3)

// referenceVoice bundles everything derived once from the configured
// reference audio and transcript: its phoneme IDs, its cached conditioning
// features, and the acoustic prompt codes the content encoder and latent
// quantizer derive from the reference waveform -- recomputing these per
// request would be pure, deterministic waste, since the reference voice
// never changes for the life of the process.
type referenceVoice struct {
	phones            []int64
	feat              bert.Features
	prompt            *acoustic.Prompt
	transcriptRuneLen int
}

func buildReferenceVoice(cfg common.ReferenceVoiceConfig, cleaner *cleaned.Cleaner, bertEnc *bert.Encoder, decoder *acoustic.Decoder) (referenceVoice, error) {
	native, sampleRate, err := readWavPCM(cfg.AudioPath)
	if err != nil {
		return referenceVoice{}, common.NewError(common.KindReferenceAsset, cfg.AudioPath, err)
	}

	wav16kPCM := pcm.Resample(native, sampleRate, 16000)
	wav16kPCM = append(wav16kPCM, make([]int16, referenceSilencePaddingSamples)...)
	wav32kPCM := pcm.Resample(native, sampleRate, 32000)

	prompt, err := decoder.BuildPrompt(toFloat32(wav16kPCM), toFloat32(wav32kPCM))
	if err != nil {
		return referenceVoice{}, fmt.Errorf("engine: reference prompt: %w", err)
	}

	ct := cleaner.GetCleanedTextFinal(cfg.Transcript)
	spans := spansFromCleaned(ct)
	feat, phonesUnpack, _, err := bertEnc.GetBertFeatures(spans)
	if err != nil {
		return referenceVoice{}, fmt.Errorf("engine: reference features: %w", err)
	}

	return referenceVoice{
		phones:            toInt64(phonesUnpack),
		feat:              feat,
		prompt:            prompt,
		transcriptRuneLen: len([]rune(cfg.Transcript)),
	}, nil
}

func readWavPCM(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf.Format == nil {
		return nil, 0, fmt.Errorf("%s: missing WAV format chunk", path)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return samples, buf.Format.SampleRate, nil
}

func toFloat32(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / 32768.0
	}
	return out
}
