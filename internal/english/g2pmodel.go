package english

import (
	"fmt"
	"strings"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/onnxrt"
)

// OnnxModel drives the neural grapheme-to-phoneme fallback: a single ONNX
// model that takes a fixed-vocabulary character-ID sequence and emits a
// per-position phoneme-ID distribution, decoded CTC-greedy (argmax per
// step, collapse repeats, drop the blank symbol) -- the same input/output
// tensor shape as the other acoustic models this engine drives, wired the
// way the supertonic reference wires its duration predictor: named
// input/output tensors through a DynamicAdvancedSession.
type OnnxModel struct {
	sess     *onnxrt.Session
	charVocab map[byte]int64
	phonemes []string // index -> phoneme symbol; index 0 is the CTC blank
}

// NewOnnxModel loads the G2P ONNX model. charVocab maps each input
// character (lowercase a-z plus apostrophe) to its model-vocabulary ID;
// phonemes lists the output vocabulary in ID order with index 0 reserved
// for the CTC blank.
func NewOnnxModel(libPath, modelPath string, charVocab map[byte]int64, phonemes []string) (*OnnxModel, error) {
	sess, err := onnxrt.NewSession(libPath, modelPath, []string{"char_ids"}, []string{"phoneme_logits"})
	if err != nil {
		return nil, fmt.Errorf("english: g2p model: %w", err)
	}
	return &OnnxModel{sess: sess, charVocab: charVocab, phonemes: phonemes}, nil
}

// Close releases the underlying ONNX Runtime session.
func (m *OnnxModel) Close() error {
	return m.sess.Destroy()
}

// Predict runs the fallback model over one out-of-dictionary word and
// returns its predicted ARPA phoneme sequence.
func (m *OnnxModel) Predict(word string) ([]string, error) {
	lower := strings.ToLower(word)
	ids := make([]int64, 0, len(lower))
	for i := 0; i < len(lower); i++ {
		id, ok := m.charVocab[lower[i]]
		if !ok {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("english: g2p model: no recognized characters in %q", word)
	}

	inTensor, err := onnxrt.Int64Tensor([]int64{1, int64(len(ids))}, ids)
	if err != nil {
		return nil, fmt.Errorf("english: g2p model: input tensor: %w", err)
	}
	defer inTensor.Destroy()

	outputs, err := m.sess.Run([]ort.Value{inTensor})
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, o := range outputs {
			o.Destroy()
		}
	}()

	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("english: g2p model: unexpected output tensor type")
	}
	return ctcGreedyDecode(logits.GetData(), len(m.phonemes), m.phonemes), nil
}

// ctcGreedyDecode takes flat [steps, vocab] logits, picks the argmax class
// per step, drops the blank (class 0) and collapses consecutive repeats --
// standard CTC greedy decoding.
func ctcGreedyDecode(flat []float32, vocab int, phonemes []string) []string {
	if vocab == 0 {
		return nil
	}
	steps := len(flat) / vocab
	var out []string
	prev := -1
	for t := 0; t < steps; t++ {
		row := flat[t*vocab : (t+1)*vocab]
		best, bestScore := 0, row[0]
		for c := 1; c < vocab; c++ {
			if row[c] > bestScore {
				best, bestScore = c, row[c]
			}
		}
		if best != 0 && best != prev {
			if best < len(phonemes) {
				out = append(out, phonemes[best])
			}
		}
		prev = best
	}
	return out
}
