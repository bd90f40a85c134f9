// Package chinese implements the Chinese grapheme-to-phoneme front-end
// (CG): punctuation/symbol normalization, jieba segmentation + POS tagging,
// tone-sandhi rewriting, and the pinyin-to-phoneme-pair split that turns a
// Chinese sentence into the shared phoneme alphabet plus a word2ph
// alignment count per output character.
package chinese

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/pinyin"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/tonesandhi"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/zhnorm"
)

// terminalPunctuation is the set of characters that close a Chinese
// sentence, and (post-replace_symbol) the only punctuation the alphabet
// keeps; non-Han characters outside this set are stripped.
const terminalPunctuation = "!?…,.-"

var (
	// reNonHan strips everything that is not a Han ideograph or one of
	// the six kept punctuation marks, run after replace_symbol.
	reNonHan = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}!?…,.-]+`)
	// reSentenceBreak marks a sentence boundary after one of the
	// terminal punctuation marks (ported verbatim from chinese.rs's
	// pattern3; fancy_regex parses `[?<=[!?…,.-]]` as a plain character
	// class rather than the lookbehind its shape suggests, so in
	// practice it matches any one of ? < = [ ! … , . - ] followed by
	// optional whitespace -- <, =, [, ] never occur in normal input, so
	// this behaves identically to "break after one of ! ? … , . -").
	reSentenceBreak = regexp.MustCompile(`[?<=\[!…,.\-\]]\s*`)
	// reLatin strips residual ASCII letters before jieba tagging --
	// English spans are expected to have already been routed to the
	// English front-end upstream; this is a defensive second pass.
	reLatin = regexp.MustCompile(`[a-zA-Z]+`)
)

// Tagger runs jieba's precise-mode segmentation + POS tagging.
type Tagger interface {
	Tag(text string) []tonesandhi.Tag
}

// Segmenter is the full jieba dependency g2p needs: POS-tagged cut for
// the main segmentation pass, plus search-mode cut for split_word's
// re-segmentation inside tone sandhi.
type Segmenter interface {
	Tagger
	tonesandhi.Cutter
}

// Chinese runs the full CG pipeline: symbol/punctuation normalization,
// number/date/time verbalization (via zhnorm), jieba segmentation, tone
// sandhi, and the pinyin->phoneme-pair split.
type Chinese struct {
	repMap     dict.ReplacementMap
	repPattern *regexp.Regexp
	normalizer *zhnorm.Normalizer
	pinyin     *pinyin.Engine
	sandhi     *tonesandhi.Engine
	jieba      Segmenter
}

// New builds a Chinese front-end from its loaded dictionaries and a ready
// jieba segmenter.
func New(repMap dict.ReplacementMap, zhNormDict dict.ZhNormDict, pinyinEngine *pinyin.Engine, jieba Segmenter) *Chinese {
	return &Chinese{
		repMap:     repMap,
		repPattern: buildRepPattern(repMap),
		normalizer: zhnorm.NewNormalizer(zhNormDict),
		pinyin:     pinyinEngine,
		sandhi:     tonesandhi.New(pinyinEngine, jieba),
		jieba:      jieba,
	}
}

func buildRepPattern(repMap dict.ReplacementMap) *regexp.Regexp {
	alts := make([]string, 0, len(repMap))
	for k := range repMap {
		alts = append(alts, regexp.QuoteMeta(k))
	}
	if len(alts) == 0 {
		return regexp.MustCompile(`$^`) // matches nothing
	}
	return regexp.MustCompile(strings.Join(alts, "|"))
}

// ReplaceSymbol rewrites every key of the punctuation replacement table to
// its mapped value, e.g. fullwidth "，" -> ",".
func (c *Chinese) ReplaceSymbol(sentence string) string {
	return c.repPattern.ReplaceAllStringFunc(sentence, func(m string) string {
		return c.repMap[m]
	})
}

// ReplacePunctuation normalizes two specific homophone substitutions,
// applies ReplaceSymbol, then drops every character that is neither a Han
// ideograph nor one of the six kept punctuation marks.
func (c *Chinese) ReplacePunctuation(sentence string) string {
	text := strings.NewReplacer("嗯", "恩", "呣", "母").Replace(sentence)
	text = c.ReplaceSymbol(text)
	return reNonHan.ReplaceAllString(text, "")
}

// TextNormalize runs the fixed CN pipeline: ReplaceSymbol, then the
// number/date/time verbalizer, then ReplacePunctuation per resulting
// sentence, concatenated back into one string.
func (c *Chinese) TextNormalize(text string) string {
	replaced := c.ReplaceSymbol(text)
	sentences := c.normalizer.Normalize(replaced)
	var dest strings.Builder
	for _, s := range sentences {
		dest.WriteString(c.ReplacePunctuation(s))
	}
	return dest.String()
}

// G2P splits text into sentences on terminal punctuation and runs g2p over
// the resulting non-empty lines, returning the flat phoneme sequence and
// one word2ph count per source character.
func (c *Chinese) G2P(text string) ([]string, []int) {
	marked := reSentenceBreak.ReplaceAllStringFunc(text, func(m string) string { return m + "\n" })
	var sentences []string
	for _, s := range strings.Split(marked, "\n") {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	return c.g2p(sentences)
}

// getInitialsFinals zips the Initials-style and InitialsTone3-style
// LazyPinyin output for word, one (initial, final+tone) pair per
// character.
func (c *Chinese) getInitialsFinals(word string) (initials, finals []string) {
	return c.pinyin.LazyPinyin(word, pinyin.StyleInitials, true),
		c.pinyin.LazyPinyin(word, pinyin.StyleInitialsTone3, true)
}

// g2p is the per-sentence core: strip residual Latin letters, jieba-tag
// and tone-sandhi-merge the line, skip English-tagged spans (already
// handled upstream), modify each remaining span's tones, then split every
// (initial, final+tone) pair into its phoneme-alphabet pieces.
func (c *Chinese) g2p(segments []string) ([]string, []int) {
	var phonesList []string
	var word2ph []int

	for _, seg := range segments {
		rpSeg := reLatin.ReplaceAllString(seg, "")
		segCut := c.sandhi.PreMergeForModify(c.jieba.Tag(rpSeg))

		var initials, finals []string
		for _, wp := range segCut {
			if wp.Pos == "eng" {
				continue
			}
			subInitials, subFinals := c.getInitialsFinals(wp.Word)
			subFinals = c.sandhi.ModifiedTone(wp.Word, wp.Pos, subFinals)
			initials = append(initials, subInitials...)
			finals = append(finals, subFinals...)
		}

		n := len(initials)
		if len(finals) < n {
			n = len(finals)
		}
		for i := 0; i < n; i++ {
			cInit, v := initials[i], finals[i]
			if cInit == v {
				if !strings.ContainsAny(cInit, terminalPunctuation) && cInit != "" {
					common.GetLogger().Warn().Str("symbol", cInit).Msg("chinese g2p: passthrough symbol is not in the kept punctuation set")
				}
				phonesList = append(phonesList, cInit)
				word2ph = append(word2ph, 1)
				continue
			}

			newC, newV := pinyin.Pair(cInit, v)
			phone := []string{newV}
			if newC != "" {
				phone = []string{newC, newV}
			}
			phonesList = append(phonesList, phone...)
			word2ph = append(word2ph, len(phone))
		}
	}

	return phonesList, word2ph
}

// Init constructs a ready-to-use Chinese front-end, downloading jieba's
// dictionary files if this is the first run on the host.
func Init(ctx context.Context, repMap dict.ReplacementMap, zhNormDict dict.ZhNormDict, pinyinEngine *pinyin.Engine) (*Chinese, error) {
	jb, err := NewJieba(ctx)
	if err != nil {
		return nil, fmt.Errorf("chinese: %w", err)
	}
	return New(repMap, zhNormDict, pinyinEngine, jb), nil
}
