// Package cleaned implements the get_cleaned_text_final orchestration: run
// language segmentation over raw mixed-language input, drive each resulting
// span through the matching front-end (CG or EG), and assemble the
// per-span phoneme ID sequences, word2ph alignment counts, detected
// languages, and normalized text the acoustic pipeline consumes next.
package cleaned

import (
	"strings"
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/chinese"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/english"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/langseg"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/symbols"
)

// CleanedText bundles one chunk's worth of same-language spans: phoneme
// IDs, word2ph alignment counts, detected language, and normalized text,
// one slice entry per span -- the CleanedText equivalent.
type CleanedText struct {
	PhonesList   [][]int
	Word2phList  [][]int
	LangList     []string
	NormTextList []string
}

// Cleaner wires language segmentation to the Chinese and English
// front-ends.
type Cleaner struct {
	seg *langseg.Segmenter
	zh  *chinese.Chinese
	en  *english.English
}

// New builds a Cleaner from ready front-end instances.
func New(seg *langseg.Segmenter, zh *chinese.Chinese, en *english.English) *Cleaner {
	return &Cleaner{seg: seg, zh: zh, en: en}
}

// GetCleanedTextFinal is the top-level entry point: detect language spans
// in shortText, refine each with the alphanumeric-range and Han/Latin
// re-split passes, run every non-empty span through its front-end, and
// merge adjacent same-language results into one CleanedText.
func (c *Cleaner) GetCleanedTextFinal(shortText string) *CleanedText {
	out := &CleanedText{}

	for _, seg := range c.seg.LangSegTexts(shortText) {
		spans := c.seg.LangSegTexts2(seg.Text, seg.Lang)
		for i, span := range spans {
			text := span.Text
			if text == "" {
				continue
			}
			if i == 0 && !startsWithDigit(text) {
				switch span.Lang {
				case langseg.LangChinese:
					text = "。" + text
				case langseg.LangEnglish:
					text = ". " + text
				}
			}

			phones, word2ph, normText := c.cleanTextInf(text, span.Lang)
			ids := c.cleanedTextToSequence(phones)

			n := len(out.PhonesList)
			if n > 0 && out.LangList[n-1] == span.Lang {
				out.PhonesList[n-1] = append(out.PhonesList[n-1], ids...)
				out.Word2phList[n-1] = append(out.Word2phList[n-1], word2ph...)
				out.NormTextList[n-1] += normText
				continue
			}

			if strings.TrimSpace(normText) != "" {
				out.PhonesList = append(out.PhonesList, ids)
				out.LangList = append(out.LangList, span.Lang)
				out.Word2phList = append(out.Word2phList, word2ph)
				out.NormTextList = append(out.NormTextList, normText)
			}
		}
	}

	return out
}

func startsWithDigit(text string) bool {
	r := []rune(text)
	if len(r) == 0 {
		return false
	}
	return unicode.IsDigit(r[0])
}

// cleanSpecialSymbols are the two punctuation marks that get rewritten to
// a literal pause token rather than going through the normal punctuation
// replacement table -- Chinese-only, ported from text_utils.rs's
// clean_text_inf special-symbol dispatch.
var cleanSpecialSymbols = []struct {
	symbol string
	target string
}{
	{"￥", "SP2"},
	{"^", "SP3"},
}

// cleanTextInf dispatches text to its front-end by language, handling the
// two special-pause symbols first (Chinese only).
func (c *Cleaner) cleanTextInf(text, language string) (phones []string, word2ph []int, normText string) {
	if language != langseg.LangEnglish && language != langseg.LangChinese {
		text, language = " ", langseg.LangEnglish
	}

	if language == langseg.LangChinese {
		for _, special := range cleanSpecialSymbols {
			if strings.Contains(text, special.symbol) {
				return c.cleanSpecial(text, special.symbol, special.target)
			}
		}
	}

	switch language {
	case langseg.LangChinese:
		normText = c.zh.TextNormalize(text)
		phones, word2ph = c.zh.G2P(normText)
	case langseg.LangEnglish:
		text = c.en.TextNormalize(text)
		normText = c.zh.ReplaceSymbol(text)
		phones, _ = c.en.G2P(normText)
	default:
		// Unreachable: DetectLanguage only ever emits Chinese/English
		// spans (Open Question 2, spec.md Non-goals keep Japanese
		// dormant). common.KindTokenizer is the closest typed error to
		// the original's `todo!()` for this branch.
		_ = common.NewError(common.KindTokenizer, "japanese: not implemented", nil)
	}

	return phones, word2ph, normText
}

// cleanSpecial runs a Chinese span through normalization and g2p with one
// punctuation mark pre-substituted for a comma, then rewrites every
// resulting comma phone to target (a distinct pause duration symbol) --
// ported from text_utils.rs's clean_special.
func (c *Cleaner) cleanSpecial(text, specialSymbol, target string) (phones []string, word2ph []int, normText string) {
	replaced := strings.ReplaceAll(text, specialSymbol, ",")
	normText = c.zh.TextNormalize(replaced)
	rawPhones, rawWord2ph := c.zh.G2P(normText)

	phones = make([]string, len(rawPhones))
	for i, ph := range rawPhones {
		if symbols.Contains(ph) && ph == "," {
			phones[i] = target
		} else {
			phones[i] = ph
		}
	}
	return phones, rawWord2ph, normText
}

// cleanedTextToSequence maps each phone symbol to its alphabet ID,
// substituting 0 for any symbol absent from the alphabet.
func (c *Cleaner) cleanedTextToSequence(phones []string) []int {
	ids := make([]int, len(phones))
	for i, ph := range phones {
		if id, ok := symbols.IDOf(ph); ok {
			ids[i] = id
		}
	}
	return ids
}
