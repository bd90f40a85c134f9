package bert

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/langseg"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/onnxrt"
)

const hiddenDim = 1024

// Encoder drives the contextual BERT ONNX session, named "contextual_bert"
// in the model paths config -- the BD module.
type Encoder struct {
	sess      *onnxrt.Session
	tokenizer *Tokenizer
}

// NewEncoder loads the contextual encoder session and pairs it with a
// tokenizer built from the same vocabulary the model was trained against.
func NewEncoder(libPath, modelPath string, vocab Vocab) (*Encoder, error) {
	sess, err := onnxrt.NewSession(libPath, modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"hidden_states"})
	if err != nil {
		return nil, fmt.Errorf("bert: encoder: %w", err)
	}
	return &Encoder{sess: sess, tokenizer: New(vocab)}, nil
}

// Close releases the underlying ONNX Runtime session.
func (e *Encoder) Close() error { return e.sess.Destroy() }

// Features bundles the per-phone conditioning matrix (hiddenDim rows by
// Phones columns, row-major) the acoustic decoder concatenates across the
// reference and target spans before synthesis.
type Features struct {
	Dim    int
	Phones int
	Data   []float32
}

// Span is one get_cleaned_text_final result entry: the phone ID sequence
// for one language-homogeneous span, its word2ph alignment counts, its
// normalized text, and its detected language.
type Span struct {
	Phones   []int
	Word2ph  []int
	NormText string
	Lang     string
}

// GetBertFeatures runs the contextual encoder over every Chinese span and
// repeats each character's hidden state out to its word2ph phone count;
// English spans (and any other language) get an all-zero feature block of
// the same dimensionality, since the reference model was never trained on
// non-Chinese text -- ported from bert_utils.rs's get_bert_features.
func (e *Encoder) GetBertFeatures(spans []Span) (Features, []int, string, error) {
	var blocks [][]float32 // each hiddenDim x span-phones, row-major
	var phonesUnpack []int
	var normTextStr string
	totalPhones := 0

	for _, span := range spans {
		normTextStr += span.NormText
		phonesUnpack = append(phonesUnpack, span.Phones...)

		var block []float32
		if span.Lang == langseg.LangChinese {
			var err error
			block, err = e.chineseFeatureBlock(span)
			if err != nil {
				common.GetLogger().Warn().
					Err(common.NewError(common.KindTokenizer, span.NormText, err)).
					Msg("bert: encoding failed for span, substituting empty feature block")
				block = make([]float32, hiddenDim*len(span.Phones))
			}
		} else {
			block = make([]float32, hiddenDim*len(span.Phones))
		}
		blocks = append(blocks, block)
		totalPhones += len(span.Phones)
	}

	data := make([]float32, hiddenDim*totalPhones)
	col := 0
	for bi, span := range spans {
		n := len(span.Phones)
		for d := 0; d < hiddenDim; d++ {
			copy(data[d*totalPhones+col:d*totalPhones+col+n], blocks[bi][d*n:(d+1)*n])
		}
		col += n
	}

	return Features{Dim: hiddenDim, Phones: totalPhones, Data: data}, phonesUnpack, normTextStr, nil
}

// ConcatFeatures joins the reference voice's cached conditioning matrix
// with a target chunk's, column-wise -- the "合并参考的声音" (merge the
// reference voice) concatenation in infer_wav, done here once per
// synthesis call instead of re-deriving the reference side every time.
func ConcatFeatures(a, b Features) Features {
	total := a.Phones + b.Phones
	data := make([]float32, a.Dim*total)
	for d := 0; d < a.Dim; d++ {
		copy(data[d*total:d*total+a.Phones], a.Data[d*a.Phones:(d+1)*a.Phones])
		copy(data[d*total+a.Phones:d*total+total], b.Data[d*b.Phones:(d+1)*b.Phones])
	}
	return Features{Dim: a.Dim, Phones: total, Data: data}
}

// chineseFeatureBlock tokenizes and runs the encoder over one Chinese
// span, then repeats each content token's hidden row out to its word2ph
// count and transposes the result to hiddenDim rows by phone columns.
func (e *Encoder) chineseFeatureBlock(span Span) ([]float32, error) {
	enc := e.tokenizer.Encode(span.NormText)

	n := int64(len(enc.IDs))
	idsTensor, err := onnxrt.Int64Tensor([]int64{1, n}, enc.IDs)
	if err != nil {
		return nil, fmt.Errorf("bert: input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := onnxrt.Int64Tensor([]int64{1, n}, enc.AttentionMask)
	if err != nil {
		return nil, fmt.Errorf("bert: attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()
	typesTensor, err := onnxrt.Int64Tensor([]int64{1, n}, enc.TokenTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("bert: token_type_ids tensor: %w", err)
	}
	defer typesTensor.Destroy()

	outputs, err := e.sess.Run([]ort.Value{idsTensor, maskTensor, typesTensor})
	if err != nil {
		return nil, fmt.Errorf("bert: run: %w", err)
	}
	defer func() {
		for _, o := range outputs {
			o.Destroy()
		}
	}()
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("bert: unexpected hidden_states tensor type")
	}
	flat := hidden.GetData() // [1, n, hiddenDim], row-major

	// Drop the leading [CLS] row; the trailing [SEP] row is implicitly
	// dropped by only ever consuming len(word2ph) rows below.
	contentRows := flat[hiddenDim:]
	return repeatRowsToPhones(contentRows, span.Word2ph), nil
}

// repeatRowsToPhones repeats each hiddenDim-wide row i out to word2ph[i]
// columns and returns the result transposed to hiddenDim rows by
// sum(word2ph) columns, row-major -- the phone_level_feature step of
// bert_utils.rs's get_bert_features.
func repeatRowsToPhones(rows []float32, word2ph []int) []float32 {
	totalPhones := 0
	for _, w := range word2ph {
		totalPhones += w
	}
	out := make([]float32, hiddenDim*totalPhones)
	col := 0
	for i, w := range word2ph {
		row := rows[i*hiddenDim : (i+1)*hiddenDim]
		for rep := 0; rep < w; rep++ {
			for d := 0; d < hiddenDim; d++ {
				out[d*totalPhones+col] = row[d]
			}
			col++
		}
	}
	return out
}
