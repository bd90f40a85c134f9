// Package acoustic drives the five acoustic ONNX modules (content encoder,
// latent quantizer, the two-stage autoregressive text-to-semantic decoder,
// and the vocoder) through the stateful decode loop described in
// bert_utils.rs's infer_wav: a KV-cache carried step to step, with dual
// termination on a sentinel code emitted either as the sampled token or as
// the raw logit.
package acoustic

import (
	"fmt"
	"math"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/onnxrt"
)

const (
	hopLength   = 640
	winLength   = 2048
	maxSteps    = 1499
	eosToken    = 1024
	topK        = 20
	temperature = 0.8
)

// Decoder wires the five acoustic ONNX sessions together.
type Decoder struct {
	contentEncoder *onnxrt.Session // ssl_model: wav16k -> hidden
	latentQuant    *onnxrt.Session // vq_model_latent: hidden -> prompt codes
	firstStage     *onnxrt.Session // t2s_first_stage_decoder
	stageDecoder   *onnxrt.Session // t2s_stage_decoder
	vocoder        *onnxrt.Session // vq_model: pred_semantic + org_audio -> waveform
}

// Paths names the five acoustic ONNX model files.
type Paths struct {
	ContentEncoder string
	LatentQuant    string
	FirstStage     string
	StageDecoder   string
	Vocoder        string
}

// NewDecoder loads all five acoustic sessions.
func NewDecoder(libPath string, p Paths) (*Decoder, error) {
	contentEncoder, err := onnxrt.NewSession(libPath, p.ContentEncoder,
		[]string{"wav16k"}, []string{"output"})
	if err != nil {
		return nil, fmt.Errorf("acoustic: content encoder: %w", err)
	}
	latentQuant, err := onnxrt.NewSession(libPath, p.LatentQuant,
		[]string{"ssl_content"}, []string{"output"})
	if err != nil {
		return nil, fmt.Errorf("acoustic: latent quantizer: %w", err)
	}
	firstStage, err := onnxrt.NewSession(libPath, p.FirstStage,
		[]string{"all_phoneme_ids", "bert", "prompt", "top_k", "temperature"},
		[]string{"y", "k", "v", "y_emb"})
	if err != nil {
		return nil, fmt.Errorf("acoustic: first-stage decoder: %w", err)
	}
	stageDecoder, err := onnxrt.NewSession(libPath, p.StageDecoder,
		[]string{"y", "k", "v", "y_emb", "xy_attn_mask", "top_k", "temperature"},
		[]string{"o_k", "o_v", "o_y_emb", "logits", "samples"})
	if err != nil {
		return nil, fmt.Errorf("acoustic: stage decoder: %w", err)
	}
	vocoder, err := onnxrt.NewSession(libPath, p.Vocoder,
		[]string{"pred_semantic", "text", "org_audio", "hann_window", "refer_mask", "y_lengths", "text_lengths"},
		[]string{"audio"})
	if err != nil {
		return nil, fmt.Errorf("acoustic: vocoder: %w", err)
	}
	return &Decoder{
		contentEncoder: contentEncoder,
		latentQuant:    latentQuant,
		firstStage:     firstStage,
		stageDecoder:   stageDecoder,
		vocoder:        vocoder,
	}, nil
}

// Close releases every underlying ONNX Runtime session.
func (d *Decoder) Close() error {
	var firstErr error
	for _, s := range []*onnxrt.Session{d.contentEncoder, d.latentQuant, d.firstStage, d.stageDecoder, d.vocoder} {
		if err := s.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// hanning returns a symmetric Hann window of length m, hann[n] = 0.5 -
// 0.5*cos(2*pi*n/(m-1)) -- the vocoder's hann_window input, ported from
// bert_utils.rs's hanning.
func hanning(m int) []float32 {
	switch {
	case m < 1:
		return nil
	case m == 1:
		return []float32{1}
	default:
		out := make([]float32, m)
		for n := 0; n < m; n++ {
			v := 2 * math.Pi * float64(n) / float64(m-1)
			out[n] = float32(0.5 - 0.5*math.Cos(v))
		}
		return out
	}
}

// Prompt is the reference-voice conditioning state computed once: the
// latent-quantizer's integer prompt codes and the reference waveform at
// 32kHz the vocoder needs for speaker conditioning.
type Prompt struct {
	Codes  []int64 // shape (1, Tp), flattened
	Tp     int
	Wav32k []float32 // shape (1, N32), flattened
	N32    int
}

// BuildPrompt runs the content encoder and latent quantizer over the
// reference voice's 16kHz waveform (already padded with 0.3s of silence
// per ReferenceVoice's invariant) to produce the speaker prompt codes.
func (d *Decoder) BuildPrompt(wav16k []float32, wav32k []float32) (*Prompt, error) {
	wavTensor, err := onnxrt.FloatTensor([]int64{1, int64(len(wav16k))}, wav16k)
	if err != nil {
		return nil, fmt.Errorf("acoustic: wav16k tensor: %w", err)
	}
	defer wavTensor.Destroy()

	sslOut, err := d.contentEncoder.Run([]ort.Value{wavTensor})
	if err != nil {
		return nil, common.NewError(common.KindBackendInference, "content encoder", err)
	}
	defer destroyAll(sslOut)
	sslContent, ok := sslOut[0].(*ort.Tensor[float32])
	if !ok {
		return nil, common.NewError(common.KindShapeMismatch, "content encoder output", nil)
	}
	sslShape := sslContent.GetShape()
	sslTensor, err := onnxrt.FloatTensor(sslShape, sslContent.GetData())
	if err != nil {
		return nil, fmt.Errorf("acoustic: ssl_content tensor: %w", err)
	}
	defer sslTensor.Destroy()

	codesOut, err := d.latentQuant.Run([]ort.Value{sslTensor})
	if err != nil {
		return nil, common.NewError(common.KindBackendInference, "latent quantizer", err)
	}
	defer destroyAll(codesOut)
	codes, ok := codesOut[0].(*ort.Tensor[int64])
	if !ok {
		return nil, common.NewError(common.KindShapeMismatch, "latent quantizer output", nil)
	}
	// codes shape (1, 1, Tp): take the first batch row.
	flat := codes.GetData()
	shape := codes.GetShape()
	tp := int(shape[len(shape)-1])

	return &Prompt{
		Codes:  append([]int64(nil), flat[:tp]...),
		Tp:     tp,
		Wav32k: wav32k,
		N32:    len(wav32k),
	}, nil
}

func destroyAll(vs []ort.Value) {
	for _, v := range vs {
		v.Destroy()
	}
}

// Synthesize runs the two-stage autoregressive decoder followed by the
// vocoder and returns 16-bit PCM samples at 32kHz -- the AD module's
// 7-step algorithm.
func (d *Decoder) Synthesize(prompt *Prompt, allPhonemeIDs []int64, txtPhonemeIDs []int64, bert []float32, bertDim int) ([]int16, error) {
	lenAll := len(allPhonemeIDs)

	allIDsTensor, err := onnxrt.Int64Tensor([]int64{1, int64(lenAll)}, allPhonemeIDs)
	if err != nil {
		return nil, fmt.Errorf("acoustic: all_phoneme_ids tensor: %w", err)
	}
	defer allIDsTensor.Destroy()
	bertTensor, err := onnxrt.FloatTensor([]int64{1, int64(bertDim), int64(lenAll)}, bert)
	if err != nil {
		return nil, fmt.Errorf("acoustic: bert tensor: %w", err)
	}
	defer bertTensor.Destroy()
	promptTensor, err := onnxrt.Int64Tensor([]int64{1, int64(prompt.Tp)}, prompt.Codes)
	if err != nil {
		return nil, fmt.Errorf("acoustic: prompt tensor: %w", err)
	}
	defer promptTensor.Destroy()
	topKTensor, err := onnxrt.Int64Tensor([]int64{1}, []int64{topK})
	if err != nil {
		return nil, fmt.Errorf("acoustic: top_k tensor: %w", err)
	}
	defer topKTensor.Destroy()
	tempTensor, err := onnxrt.FloatTensor([]int64{1}, []float32{temperature})
	if err != nil {
		return nil, fmt.Errorf("acoustic: temperature tensor: %w", err)
	}
	defer tempTensor.Destroy()

	firstOut, err := d.firstStage.Run([]ort.Value{allIDsTensor, bertTensor, promptTensor, topKTensor, tempTensor})
	if err != nil {
		return nil, common.NewError(common.KindBackendInference, "first-stage decoder", err)
	}
	defer destroyAll(firstOut)

	yTensor, ok := firstOut[0].(*ort.Tensor[int64])
	if !ok {
		return nil, common.NewError(common.KindShapeMismatch, "first-stage y output", nil)
	}
	kTensor, ok := firstOut[1].(*ort.Tensor[float32])
	if !ok {
		return nil, common.NewError(common.KindShapeMismatch, "first-stage k output", nil)
	}
	vTensor, ok := firstOut[2].(*ort.Tensor[float32])
	if !ok {
		return nil, common.NewError(common.KindShapeMismatch, "first-stage v output", nil)
	}
	yEmbTensor, ok := firstOut[3].(*ort.Tensor[float32])
	if !ok {
		return nil, common.NewError(common.KindShapeMismatch, "first-stage y_emb output", nil)
	}

	state := decoderState{
		y:        append([]int64(nil), yTensor.GetData()...),
		yShape:   yTensor.GetShape(),
		k:        append([]float32(nil), kTensor.GetData()...),
		kShape:   kTensor.GetShape(),
		v:        append([]float32(nil), vTensor.GetData()...),
		vShape:   vTensor.GetShape(),
		yEmb:     append([]float32(nil), yEmbTensor.GetData()...),
		yEmbShape: yEmbTensor.GetShape(),
	}

	loopIdx, err := d.arLoop(&state, lenAll)
	if err != nil {
		return nil, err
	}
	if loopIdx == 0 {
		return nil, common.NewError(common.KindDecodeLimitExceeded, "autoregressive decode", nil)
	}

	// Scrub the EOS token and take the final loop_idx columns.
	yLen := int(state.yShape[len(state.yShape)-1])
	state.y[yLen-1] = 0
	predSemantic := append([]int64(nil), state.y[yLen-loopIdx:]...)

	return d.vocode(predSemantic, txtPhonemeIDs, prompt)
}

// decoderState is DecoderState: the tuple carried step to step across the
// autoregressive loop, replaced wholesale (not mutated in place) after
// every stage-decoder call.
type decoderState struct {
	y         []int64
	yShape    []int64
	k         []float32
	kShape    []int64
	v         []float32
	vShape    []int64
	yEmb      []float32
	yEmbShape []int64
}

// arLoop runs the stage decoder for up to maxSteps, growing y by one
// sampled token per step, and returns the step index at which either
// termination sentinel fired (0 if the cap was reached without one).
func (d *Decoder) arLoop(state *decoderState, lenAll int) (int, error) {
	for step := 1; step <= maxSteps; step++ {
		yLen := int(state.yEmbShape[len(state.yEmbShape)-2])
		maskLen := lenAll + yLen
		xyAttnMask := make([]float32, maskLen)

		yTensor, err := onnxrt.Int64Tensor(state.yShape, state.y)
		if err != nil {
			return 0, fmt.Errorf("acoustic: y tensor: %w", err)
		}
		kTensor, err := onnxrt.FloatTensor(state.kShape, state.k)
		if err != nil {
			yTensor.Destroy()
			return 0, fmt.Errorf("acoustic: k tensor: %w", err)
		}
		vTensor, err := onnxrt.FloatTensor(state.vShape, state.v)
		if err != nil {
			yTensor.Destroy()
			kTensor.Destroy()
			return 0, fmt.Errorf("acoustic: v tensor: %w", err)
		}
		yEmbTensor, err := onnxrt.FloatTensor(state.yEmbShape, state.yEmb)
		if err != nil {
			yTensor.Destroy()
			kTensor.Destroy()
			vTensor.Destroy()
			return 0, fmt.Errorf("acoustic: y_emb tensor: %w", err)
		}
		maskTensor, err := onnxrt.FloatTensor([]int64{1, 1, 1, int64(maskLen)}, xyAttnMask)
		if err != nil {
			yTensor.Destroy()
			kTensor.Destroy()
			vTensor.Destroy()
			yEmbTensor.Destroy()
			return 0, fmt.Errorf("acoustic: xy_attn_mask tensor: %w", err)
		}
		topKTensor, err := onnxrt.Int64Tensor([]int64{1}, []int64{topK})
		if err != nil {
			yTensor.Destroy()
			kTensor.Destroy()
			vTensor.Destroy()
			yEmbTensor.Destroy()
			maskTensor.Destroy()
			return 0, fmt.Errorf("acoustic: top_k tensor: %w", err)
		}
		tempTensor, err := onnxrt.FloatTensor([]int64{1}, []float32{temperature})
		if err != nil {
			yTensor.Destroy()
			kTensor.Destroy()
			vTensor.Destroy()
			yEmbTensor.Destroy()
			maskTensor.Destroy()
			topKTensor.Destroy()
			return 0, fmt.Errorf("acoustic: temperature tensor: %w", err)
		}

		out, err := d.stageDecoder.Run([]ort.Value{yTensor, kTensor, vTensor, yEmbTensor, maskTensor, topKTensor, tempTensor})
		yTensor.Destroy()
		kTensor.Destroy()
		vTensor.Destroy()
		yEmbTensor.Destroy()
		maskTensor.Destroy()
		topKTensor.Destroy()
		tempTensor.Destroy()
		if err != nil {
			return 0, common.NewError(common.KindBackendInference, "stage decoder", err)
		}

		oK, ok := out[0].(*ort.Tensor[float32])
		if !ok {
			destroyAll(out)
			return 0, common.NewError(common.KindShapeMismatch, "stage decoder o_k", nil)
		}
		oV, ok := out[1].(*ort.Tensor[float32])
		if !ok {
			destroyAll(out)
			return 0, common.NewError(common.KindShapeMismatch, "stage decoder o_v", nil)
		}
		oYEmb, ok := out[2].(*ort.Tensor[float32])
		if !ok {
			destroyAll(out)
			return 0, common.NewError(common.KindShapeMismatch, "stage decoder o_y_emb", nil)
		}
		logits, ok := out[3].(*ort.Tensor[int64])
		if !ok {
			destroyAll(out)
			return 0, common.NewError(common.KindShapeMismatch, "stage decoder logits", nil)
		}
		samples, ok := out[4].(*ort.Tensor[int64])
		if !ok {
			destroyAll(out)
			return 0, common.NewError(common.KindShapeMismatch, "stage decoder samples", nil)
		}

		state.k = append([]float32(nil), oK.GetData()...)
		state.kShape = oK.GetShape()
		state.v = append([]float32(nil), oV.GetData()...)
		state.vShape = oV.GetShape()
		state.yEmb = append([]float32(nil), oYEmb.GetData()...)
		state.yEmbShape = oYEmb.GetShape()

		sampleVal := samples.GetData()[0]
		logitVal := logits.GetData()[0]
		state.y = append(state.y, sampleVal)
		state.yShape = []int64{1, int64(len(state.y))}

		destroyAll(out)

		if sampleVal == eosToken || logitVal == eosToken {
			return step, nil
		}
	}
	return 0, nil
}

// vocode runs the vocoder over the final semantic tokens against the
// reference waveform and peak-normalizes the result to 16-bit PCM.
func (d *Decoder) vocode(predSemantic []int64, txtPhonemeIDs []int64, prompt *Prompt) ([]int16, error) {
	loopIdx := len(predSemantic)
	predTensor, err := onnxrt.Int64Tensor([]int64{1, 1, int64(loopIdx)}, predSemantic)
	if err != nil {
		return nil, fmt.Errorf("acoustic: pred_semantic tensor: %w", err)
	}
	defer predTensor.Destroy()
	textTensor, err := onnxrt.Int64Tensor([]int64{1, int64(len(txtPhonemeIDs))}, txtPhonemeIDs)
	if err != nil {
		return nil, fmt.Errorf("acoustic: text tensor: %w", err)
	}
	defer textTensor.Destroy()
	orgAudioTensor, err := onnxrt.FloatTensor([]int64{1, int64(prompt.N32)}, prompt.Wav32k)
	if err != nil {
		return nil, fmt.Errorf("acoustic: org_audio tensor: %w", err)
	}
	defer orgAudioTensor.Destroy()
	hannTensor, err := onnxrt.FloatTensor([]int64{int64(winLength)}, hanning(winLength))
	if err != nil {
		return nil, fmt.Errorf("acoustic: hann_window tensor: %w", err)
	}
	defer hannTensor.Destroy()

	t := (prompt.N32-hopLength)/hopLength + 1
	referMask := make([]int64, t)
	for i := range referMask {
		referMask[i] = 1
	}
	referMaskTensor, err := onnxrt.Int64Tensor([]int64{1, 1, int64(t)}, referMask)
	if err != nil {
		return nil, fmt.Errorf("acoustic: refer_mask tensor: %w", err)
	}
	defer referMaskTensor.Destroy()

	yLengthsTensor, err := onnxrt.Int64Tensor([]int64{1}, []int64{int64(2 * loopIdx)})
	if err != nil {
		return nil, fmt.Errorf("acoustic: y_lengths tensor: %w", err)
	}
	defer yLengthsTensor.Destroy()
	textLengthsTensor, err := onnxrt.Int64Tensor([]int64{1}, []int64{int64(len(txtPhonemeIDs))})
	if err != nil {
		return nil, fmt.Errorf("acoustic: text_lengths tensor: %w", err)
	}
	defer textLengthsTensor.Destroy()

	out, err := d.vocoder.Run([]ort.Value{predTensor, textTensor, orgAudioTensor, hannTensor, referMaskTensor, yLengthsTensor, textLengthsTensor})
	if err != nil {
		return nil, common.NewError(common.KindBackendInference, "vocoder", err)
	}
	defer destroyAll(out)

	audio, ok := out[0].(*ort.Tensor[float32])
	if !ok {
		return nil, common.NewError(common.KindShapeMismatch, "vocoder audio output", nil)
	}
	return peakNormalize(audio.GetData()), nil
}

// peakNormalize scales samples by 1/max(|x|) only if that peak exceeds
// 1.0, then converts to clamped 16-bit signed PCM -- the AD module's
// step 7.
func peakNormalize(samples []float32) []int16 {
	var peak float32
	for _, s := range samples {
		if abs := float32(math.Abs(float64(s))); abs > peak {
			peak = abs
		}
	}
	scale := float32(1.0)
	if peak > 1.0 {
		scale = 1.0 / peak
	}
	out := make([]int16, len(samples))
	for i, s := range samples {
		v := s * scale * 32768
		switch {
		case v > 32767:
			v = 32767
		case v < -32768:
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}
