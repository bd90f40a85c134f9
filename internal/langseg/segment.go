// Package langseg implements the two language-segmentation stages (LS):
// splitting mixed Chinese/English text into same-language spans, and
// chunking long text into synthesis-sized pieces on sentence boundaries.
//
// The original (original_source/sovits-rs/src/text_utils.rs) detects
// language spans with the `lingua` statistical language detector. No Go
// equivalent appears anywhere in the retrieved pack, so this port follows
// the teacher's own script-classification idiom instead
// (common/static.go's getScriptCategory, a plain unicode.RangeTable
// switch) -- deterministic Han-vs-Latin classification is exact for this
// engine's fixed two-language domain, where `lingua` is only ever asked to
// tell Chinese from English.
package langseg

import (
	"regexp"
	"strings"
)

const (
	LangChinese = "Chinese"
	LangEnglish = "English"
)

var (
	reAlphaRange  = regexp.MustCompile(`([a-zA-Z]+)([—\->～~])([a-zA-Z]+)`)
	reAlphaRange2 = regexp.MustCompile(`([a-zA-Z]+)([—\->～~])([0-9]+)`)
	reAZ          = regexp.MustCompile(`[a-zA-Z]+`)
	reWordLike    = regexp.MustCompile(`[a-zA-Z0-9|.%]+`)
	reZh          = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]+`)
)

// Span is one same-language run of text.
type Span struct {
	Lang string
	Text string
}

// Segmenter splits mixed-language text into per-language spans.
type Segmenter struct {
	splits []rune
}

// New builds a Segmenter. Only Chinese and English are recognized
// (Japanese is a dormant, unreachable third language in the original --
// see DESIGN.md Open Question 2).
func New() *Segmenter {
	return &Segmenter{
		splits: []rune{'，', '。', '？', '！', ',', '.', '?', '!', '~', ':', '：', '—', '…'},
	}
}

// DetectLanguage classifies sentence into same-language spans: every Han
// ideograph run is Chinese, every Latin-letter run is English, and each
// digit/punctuation/space character joins the run before it; such
// characters at the very start of the sentence open a Chinese run. A
// sentence with no letters at all falls back to one whole-string Chinese
// span.
func (s *Segmenter) DetectLanguage(sentence string) []Span {
	type run struct {
		lang string
		text strings.Builder
	}
	var runs []run
	for _, r := range sentence {
		lang := classifyRune(r)
		if lang == "" {
			if len(runs) == 0 {
				runs = append(runs, run{lang: LangChinese})
			}
			runs[len(runs)-1].text.WriteRune(r)
			continue
		}
		if len(runs) == 0 || runs[len(runs)-1].lang != lang {
			runs = append(runs, run{lang: lang})
		}
		runs[len(runs)-1].text.WriteRune(r)
	}
	if len(runs) == 0 {
		return []Span{{Lang: LangChinese, Text: sentence}}
	}
	out := make([]Span, len(runs))
	for i, rr := range runs {
		out[i] = Span{Lang: rr.lang, Text: rr.text.String()}
	}
	return out
}

func classifyRune(r rune) string {
	switch {
	case (r >= 0x4e00 && r <= 0x9fa5):
		return LangChinese
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return LangEnglish
	default:
		return ""
	}
}

// zhEnSeg handles "包含AC到BZ" style text: a sentence already assigned to
// lang that nonetheless mixes Han and a-zA-Z0-9 runs gets each
// alphanumeric/percent/dot/pipe run pulled out and independently
// re-detected, so "包含Google的" yields Chinese/English/Chinese spans
// instead of being swallowed whole by the outer lang.
func (s *Segmenter) zhEnSeg(sentence, lang string) []Span {
	if !reAZ.MatchString(sentence) || !reZh.MatchString(sentence) {
		return []Span{{Lang: lang, Text: sentence}}
	}

	marked := reWordLike.ReplaceAllStringFunc(sentence, func(m string) string {
		return "\n" + m + "\n"
	})
	var out []Span
	for _, piece := range strings.Split(marked, "\n") {
		if piece == "" {
			continue
		}
		out = append(out, s.DetectLanguage(piece)...)
	}
	return out
}

// replaeAzRange rewrites an alphabetic range shorthand ("a-z", "A to Z")
// into its spoken form, language-specific: Chinese gets "至"/"杠",
// everything else gets " to "/" " -- ported verbatim from
// text_utils.rs's replae_az_range.
func (s *Segmenter) replaeAzRange(sentence, lang string) string {
	zhi, gan := " to ", " "
	if lang == LangChinese {
		zhi, gan = "至", "杠"
	}

	out := reAlphaRange.ReplaceAllString(sentence, "${1}"+zhi+"${3}")
	out = reAlphaRange2.ReplaceAllString(out, "${1}"+gan+"${3}")
	return out
}

// LangSegTexts2 applies the range-shorthand rewrite, then zhEnSeg's
// Han/alphanumeric re-splitting, to one already-detected span.
func (s *Segmenter) LangSegTexts2(sentence, lang string) []Span {
	return s.zhEnSeg(s.replaeAzRange(sentence, lang), lang)
}

// LangSegTexts detects the language spans of sentence directly (the
// top-level entry point before LangSegTexts2's per-span refinement).
func (s *Segmenter) LangSegTexts(sentence string) []Span {
	return s.DetectLanguage(sentence)
}
