// Package engine wires the linguistic front-end and the acoustic back-end
// into one serialized Synthesize call: load every dictionary and ONNX
// module once at startup, prepare the fixed reference voice, then drive
// each request's input text through chunking, cleaning, conditioning, and
// autoregressive decoding. Grounded on the teacher's common.Module facade
// (construct once, wire every provider, expose a handful of operations)
// generalized here from "pick a provider pair for a language" to "wire the
// nine pipeline components for this fixed domain", and on
// ChBertUtils::new/infer's startup-vs-per-call split.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/acoustic"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/bert"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/chinese"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/cleaned"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/english"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/langseg"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/pcm"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/pinyin"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/symbols"
)

// Engine wires every linguistic and acoustic component into one synthesis
// operation. mu serializes Synthesize calls -- the ONNX sessions, the
// autoregressive decoder state, and the reference-voice prompt are not
// re-entrant, per the engine's single-threaded decode model.
type Engine struct {
	mu sync.Mutex

	seg     *langseg.Segmenter
	cleaner *cleaned.Cleaner
	bertEnc *bert.Encoder
	decoder *acoustic.Decoder

	englishModel *english.OnnxModel // nil if no fallback model configured

	ref referenceVoice
}

// New loads every dictionary and model named by cfg, builds the
// linguistic front-ends and the acoustic decoder, and prepares the fixed
// reference voice (resampled audio, cached conditioning prompt, cached
// conditioning features) once so every later Synthesize call only pays
// for its own chunk of text.
func New(cfg *common.Config) (*Engine, error) {
	dicts, err := dict.LoadAll(cfg.Models)
	if err != nil {
		return nil, err
	}

	pinyinEngine := pinyin.New(dicts.PhraseDict, dicts.CharDict)

	zh, err := chinese.Init(context.Background(), dicts.RepMap, dicts.ZhNorm, pinyinEngine)
	if err != nil {
		return nil, fmt.Errorf("engine: chinese front-end: %w", err)
	}

	var englishModel *english.OnnxModel
	var model english.Model
	if cfg.Models.G2PFallbackModel != "" {
		englishModel, err = english.NewOnnxModel("", cfg.Models.G2PFallbackModel, englishCharVocab(), englishPhonemes())
		if err != nil {
			return nil, fmt.Errorf("engine: english g2p fallback: %w", err)
		}
		model = englishModel
	}
	en := english.New(dicts.EnglishDict, model)

	seg := langseg.New()
	cleaner := cleaned.New(seg, zh, en)

	vocab, err := bert.LoadVocab(cfg.Models.BertTokenizer)
	if err != nil {
		return nil, err
	}
	bertEnc, err := bert.NewEncoder("", cfg.Models.ContextualBert, vocab)
	if err != nil {
		return nil, fmt.Errorf("engine: contextual encoder: %w", err)
	}

	decoder, err := acoustic.NewDecoder("", acoustic.Paths{
		ContentEncoder: cfg.Models.ContentEncoder,
		LatentQuant:    cfg.Models.LatentQuantizer,
		FirstStage:     cfg.Models.FirstStageAR,
		StageDecoder:   cfg.Models.StageDecoder,
		Vocoder:        cfg.Models.Vocoder,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: acoustic decoder: %w", err)
	}

	ref, err := buildReferenceVoice(cfg.ReferenceVoice, cleaner, bertEnc, decoder)
	if err != nil {
		return nil, err
	}

	return &Engine{
		seg:          seg,
		cleaner:      cleaner,
		bertEnc:      bertEnc,
		decoder:      decoder,
		englishModel: englishModel,
		ref:          ref,
	}, nil
}

// Close releases every ONNX Runtime session the engine owns.
func (e *Engine) Close() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	record(e.bertEnc.Close())
	record(e.decoder.Close())
	if e.englishModel != nil {
		record(e.englishModel.Close())
	}
	return firstErr
}

// Synthesize renders text at the engine's fixed reference voice, chunking
// on sentence boundaries bounded by the reference transcript's character
// count, and returns 16-bit PCM at the engine's native 32kHz rate.
// Concurrent calls are serialized: the decoder's KV-cache and intermediate
// tensors are reused across steps within one chunk and must not be shared
// across overlapping requests.
func (e *Engine) Synthesize(ctx context.Context, text string) ([]int16, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	chunks := e.seg.CutTexts(text, e.ref.transcriptRuneLen)

	var pcmChunks [][]int16
	for _, chunk := range chunks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ct := e.cleaner.GetCleanedTextFinal(chunk)
		spans := spansFromCleaned(ct)

		feat, phonesUnpack, _, err := e.bertEnc.GetBertFeatures(spans)
		if err != nil {
			return nil, err
		}

		txtPhones := toInt64(phonesUnpack)
		allPhones := append(append([]int64(nil), e.ref.phones...), txtPhones...)
		combined := bert.ConcatFeatures(e.ref.feat, feat)

		out, err := e.decoder.Synthesize(e.ref.prompt, allPhones, txtPhones, combined.Data, combined.Dim)
		if err != nil {
			return nil, err
		}
		pcmChunks = append(pcmChunks, out)
	}

	return pcm.Concat(pcmChunks), nil
}

func spansFromCleaned(ct *cleaned.CleanedText) []bert.Span {
	spans := make([]bert.Span, len(ct.LangList))
	for i := range ct.LangList {
		spans[i] = bert.Span{
			Phones:   ct.PhonesList[i],
			Word2ph:  ct.Word2phList[i],
			NormText: ct.NormTextList[i],
			Lang:     ct.LangList[i],
		}
	}
	return spans
}

func toInt64(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}

// englishCharVocab maps lowercase a-z plus apostrophe to the neural G2P
// fallback model's input vocabulary IDs, 1-indexed so 0 is free for
// padding/unknown.
func englishCharVocab() map[byte]int64 {
	vocab := make(map[byte]int64, 27)
	var id int64 = 1
	for c := byte('a'); c <= 'z'; c++ {
		vocab[c] = id
		id++
	}
	vocab['\''] = id
	return vocab
}

// englishPhonemes is the fallback model's output vocabulary in ID order,
// index 0 reserved for the CTC blank -- the alphabet's own ARPAReference
// ordering, which is exactly the reference phoneme list the fallback
// model was trained to emit.
func englishPhonemes() []string {
	ref := symbols.ARPAReference()
	out := make([]string, 0, len(ref)+1)
	out = append(out, "<blank>")
	out = append(out, ref[:]...)
	return out
}
