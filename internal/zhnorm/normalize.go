// Package zhnorm implements the Chinese text normalizer (CN): it turns a
// raw UTF-8 string into a list of sentence strings with dates, times,
// phone numbers, quantifiers, and numbers spelled out in Chinese, ready
// for the Chinese G2P stage.
package zhnorm

import (
	"regexp"
	"strings"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
)

var (
	reSentenceSplitter = regexp.MustCompile(`[：、，；。？！,;?!][”’]?`)
	reSpecialSymbol    = regexp.MustCompile(`[——《》【】<=>{}()（）#&@“”^_|…\\]`)
	reSpecialSymbol2   = regexp.MustCompile(`[-——《》【】<=>{}()（）#&@“”^_|…\\]`)
	reCommaRun         = regexp.MustCompile(`,+`)
)

// Normalizer is the fixed-order pipeline described in spec.md §4.1,
// parameterized by the traditional/simplified and special-symbol tables
// (loaded once at startup, kept in a context object rather than rebuilt
// per call).
type Normalizer struct {
	t2s           map[rune]rune
	specialSymbol map[string]string
}

// NewNormalizer builds a Normalizer from the loaded zh_dict asset.
func NewNormalizer(zhDict dict.ZhNormDict) *Normalizer {
	t2s := make(map[rune]rune)
	trad := []rune(zhDict.T2SMapping.Traditional)
	simp := []rune(zhDict.T2SMapping.Simplified)
	n := len(trad)
	if len(simp) < n {
		n = len(simp)
	}
	for i := 0; i < n; i++ {
		t2s[trad[i]] = simp[i]
	}
	return &Normalizer{t2s: t2s, specialSymbol: zhDict.SpecialSymbolMapping}
}

// Normalize splits the input into sentences and applies the full CN
// pipeline to each. Never fails: every input maps to a (possibly empty)
// list of strings.
func (n *Normalizer) Normalize(text string) []string {
	sentences := n.split(text)
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, n.normalizeSentence(s))
	}
	return out
}

func (n *Normalizer) split(text string) []string {
	t := strings.ReplaceAll(text, " ", "")
	t = reSpecialSymbol.ReplaceAllString(t, ",")
	t = reCommaRun.ReplaceAllString(t, ",")
	t = reSentenceSplitter.ReplaceAllStringFunc(t, func(m string) string { return m + "\n" })
	t = strings.TrimSpace(t)

	var sentences []string
	for _, piece := range strings.SplitAfter(t, "\n") {
		p := strings.TrimSpace(piece)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func (n *Normalizer) traditionalToSimplified(s string) string {
	rs := []rune(s)
	for i, r := range rs {
		if simp, ok := n.t2s[r]; ok {
			rs[i] = simp
		}
	}
	return string(rs)
}

// fullwidthToHalfwidth maps fullwidth ASCII letters, digits, and the
// ideographic space to their halfwidth forms.
func fullwidthToHalfwidth(s string) string {
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r == '　':
			rs[i] = ' '
		case r >= 0xFF21 && r <= 0xFF3A: // fullwidth A-Z
			rs[i] = r - 0xFEE0
		case r >= 0xFF41 && r <= 0xFF5A: // fullwidth a-z
			rs[i] = r - 0xFEE0
		case r >= 0xFF10 && r <= 0xFF19: // fullwidth 0-9
			rs[i] = r - 0xFEE0
		}
	}
	return string(rs)
}

func (n *Normalizer) postReplace(s string) string {
	for k, v := range n.specialSymbol {
		s = strings.ReplaceAll(s, k, v)
	}
	return reSpecialSymbol2.ReplaceAllString(s, "")
}

// NormalizeSentence applies the fixed-order per-sentence pipeline
// (traditional->simplified, fullwidth->halfwidth, chronology, quantifier,
// phonecode, numbers, symbol post-replace) without first splitting on
// sentence-ending punctuation. Exposed for callers that already operate
// on a single sentence-like unit.
func (n *Normalizer) NormalizeSentence(sentence string) string {
	return n.normalizeSentence(sentence)
}

func (n *Normalizer) normalizeSentence(sentence string) string {
	s := n.traditionalToSimplified(sentence)
	s = fullwidthToHalfwidth(s)
	s = NormalizeChronology(s)
	s = NormalizeQuantifiers(s)
	s = NormalizePhoneCodes(s)
	s = NormalizeNumbers(s)
	s = n.postReplace(s)
	return s
}
