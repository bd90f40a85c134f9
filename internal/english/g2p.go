// Package english implements the English grapheme-to-phoneme front-end
// (EG): number verbalization, dictionary lookup against the CMU-style ARPA
// table, and a neural G2P fallback for out-of-vocabulary words.
package english

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/symbols"
)

// reDelimiter matches exactly one delimiter character per call (no
// repetition quantifier, mirroring english.rs's RE_DELIMITER literally:
// the trailing `+` inside the original's character class is itself a
// literal member of the class, not a quantifier, so "foo, bar" splits
// into "foo", ",", " ", "bar" -- comma and space as separate tokens,
// each surviving as its own delimiter phone).
var reDelimiter = regexp.MustCompile(`[,，；;.。？！\-?!\s+]`)

// phonemeRepMap is english.rs's rep_map: punctuation that survives
// replace_phonemes by being rewritten onto a symbol the alphabet actually
// contains, rather than being dropped.
var phonemeRepMap = map[string]string{
	";":  ",",
	":":  ",",
	"'":  "-",
	"\"": "-",
}

// Model is the neural grapheme-to-phoneme fallback used for words absent
// from the dictionary, e.g. an ONNX Runtime session driving a trained
// seq2seq G2P model. Implementations must be safe for concurrent use.
type Model interface {
	Predict(word string) ([]string, error)
}

// English runs the full EG pipeline: number/currency verbalization,
// delimiter-based word splitting, dictionary lookup, and neural G2P
// fallback for unknown words.
type English struct {
	dict  dict.EnglishDict
	model Model
}

// New builds an English front-end from the loaded ARPA dictionary and a
// ready neural G2P fallback model.
func New(d dict.EnglishDict, model Model) *English {
	return &English{dict: d, model: model}
}

// TextNormalize verbalizes every number, currency amount, decimal, and
// ordinal in text into spelled-out English words.
func (e *English) TextNormalize(text string) string {
	return normalizeNumbers(text)
}

// G2P splits text into delimiter-separated tokens, resolves each via
// dictionary lookup or neural fallback, and returns the flat phoneme
// sequence alongside one word2ph count per source token.
func (e *English) G2P(text string) ([]string, []int) {
	tokens := splitWithDelimiter(text)

	var phones []string
	var word2ph []int
	for _, tok := range tokens {
		wordPhones := e.wordToPhones(tok)
		wordPhones = replacePhonemes(wordPhones)
		if len(wordPhones) == 0 {
			continue
		}
		phones = append(phones, wordPhones...)
		word2ph = append(word2ph, len(wordPhones))
	}
	return phones, word2ph
}

// wordToPhones resolves one token to its phoneme sequence: dictionary
// lookup first (by uppercased word), then the neural fallback for an
// alphanumeric-bounded unknown word, else the token is treated as a
// single literal phone (punctuation, whitespace residue).
func (e *English) wordToPhones(word string) []string {
	if entries, ok := e.dict[strings.ToUpper(word)]; ok && len(entries) > 0 {
		return append([]string(nil), entries[0]...)
	}

	trimmed := word
	if len(trimmed) > 1 {
		trimmed = strings.TrimFunc(trimmed, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
	}
	if trimmed == "" {
		return nil
	}

	runes := []rune(trimmed)
	boundaryAlnum := isAlnum(runes[0]) && isAlnum(runes[len(runes)-1])
	if !boundaryAlnum {
		return []string{word}
	}
	if e.model == nil {
		return nil
	}
	phones, err := e.model.Predict(trimmed)
	if err != nil {
		return nil
	}
	return phones
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// replacePhonemes keeps every phone already in the shared alphabet,
// rewrites a small set of punctuation through phonemeRepMap, and drops
// anything left over -- ported from english.rs's replace_phonemes.
func replacePhonemes(phones []string) []string {
	out := make([]string, 0, len(phones))
	for _, p := range phones {
		if symbols.Contains(p) {
			out = append(out, p)
			continue
		}
		if rep, ok := phonemeRepMap[p]; ok {
			out = append(out, rep)
		}
	}
	return out
}

// splitWithDelimiter splits text on reDelimiter while keeping each
// delimiter character as its own token, preserving order including leading and
// trailing spans -- ported from english.rs's split_with_delimiter.
func splitWithDelimiter(text string) []string {
	var out []string
	last := 0
	for _, loc := range reDelimiter.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, text[last:loc[0]])
		}
		out = append(out, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, text[last:])
	}
	return out
}
