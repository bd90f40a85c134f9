// Package bert drives the contextual encoder (BD module): a WordPiece
// tokenizer feeding a single ONNX BERT session, whose per-character hidden
// states get repeated out to per-phone alignment via word2ph and handed to
// the acoustic decoder as conditioning features.
//
// The tokenizer is a from-scratch WordPiece implementation -- no
// Hugging Face tokenizers binding exists anywhere in the retrieved pack
// (the one candidate, gomlx/go-huggingface, drags in an entire XLA compute
// stack for an unrelated concern and was left unwired, see DESIGN.md) --
// grounded instead on the plain Go WordPiece tokenizer pattern in the
// retrieved Triton bert-tokenizer example: split on Chinese character
// boundaries, then greedily match the longest vocabulary entry from each
// split point, falling back to "##"-prefixed continuations.
package bert

import (
	"encoding/json"
	"os"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
)

const (
	clsToken = "[CLS]"
	sepToken = "[SEP]"
	unkToken = "[UNK]"
	contPfx  = "##"
)

// Vocab maps a WordPiece token to its model input ID.
type Vocab map[string]int

// LoadVocab reads the BERT vocabulary from a JSON file shaped as
// {"token": id}.
func LoadVocab(path string) (Vocab, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewError(common.KindConfigLoad, path, err)
	}
	var v Vocab
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, common.NewError(common.KindConfigLoad, path, err)
	}
	return v, nil
}

// Tokenizer produces BERT input ID sequences from normalized Chinese text.
// Every rune becomes its own split point -- the contextual encoder's
// per-character alignment with word2ph depends on exactly one token per
// input character, the same invariant the WordPiece-over-char-split
// Triton example preserves for CJK text.
type Tokenizer struct {
	vocab Vocab
}

// New builds a Tokenizer from a loaded vocabulary.
func New(vocab Vocab) *Tokenizer {
	return &Tokenizer{vocab: vocab}
}

// Encoding is the tokenizer's output: token IDs, attention mask, and
// segment IDs, the three tensors a BERT session expects.
type Encoding struct {
	IDs            []int64
	AttentionMask  []int64
	TokenTypeIDs   []int64
	NumContentToks int // token count excluding the leading [CLS] and trailing [SEP]
}

// Encode wraps text's per-character WordPiece tokens in [CLS]/[SEP] and
// builds the matching attention mask and all-zero segment IDs.
func (t *Tokenizer) Encode(text string) Encoding {
	chars := splitChars(text)
	ids := make([]int64, 0, len(chars)+2)
	ids = append(ids, t.idOf(clsToken))
	for _, c := range chars {
		ids = append(ids, t.wordPiece(c)...)
	}
	ids = append(ids, t.idOf(sepToken))

	mask := make([]int64, len(ids))
	for i := range mask {
		mask[i] = 1
	}
	types := make([]int64, len(ids))

	return Encoding{
		IDs:            ids,
		AttentionMask:  mask,
		TokenTypeIDs:   types,
		NumContentToks: len(ids) - 2,
	}
}

// splitChars breaks text into one string per rune -- CJK text has no
// whitespace word boundaries, so per-rune splitting is the tokenizer's
// whole word-boundary heuristic.
func splitChars(text string) []string {
	runes := []rune(text)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// wordPiece greedily matches the longest vocabulary prefix of word,
// continuing with "##"-prefixed pieces, falling back to a single [UNK] id
// if no split covers the whole word.
func (t *Tokenizer) wordPiece(word string) []int64 {
	runes := []rune(word)
	var pieces []int64
	start := 0
	for start < len(runes) {
		end := len(runes)
		found := false
		for start < end {
			sub := string(runes[start:end])
			if start > 0 {
				sub = contPfx + sub
			}
			if id, ok := t.vocab[sub]; ok {
				pieces = append(pieces, int64(id))
				found = true
				start = end
				break
			}
			end--
		}
		if !found {
			return []int64{t.idOf(unkToken)}
		}
	}
	return pieces
}

func (t *Tokenizer) idOf(tok string) int64 {
	if id, ok := t.vocab[tok]; ok {
		return int64(id)
	}
	return int64(t.vocab[unkToken])
}
