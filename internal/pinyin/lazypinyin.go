package pinyin

import (
	"regexp"
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
)

// fallbackArgs configures the go-pinyin heteronym-unaware lookup used when a
// Han character is absent from the loaded CharDict -- the same library the
// teacher wires for its own pinyin provider, used here instead of silently
// dropping or passing through an out-of-dictionary character.
var fallbackArgs = func() gopinyin.Args {
	a := gopinyin.NewArgs()
	a.Style = gopinyin.Tone3
	return a
}()

// reHans matches a span made up entirely of CJK ideographs (the subset the
// phrase/char dictionaries cover); anything else -- Latin letters, digits,
// punctuation -- falls through to a per-character passthrough.
var reHans = regexp.MustCompile(`^[\p{Han}]+$`)

// Engine resolves Chinese text to pinyin syllables: phrase/char dictionary
// lookup over an MMSeg segmentation, heteronyms resolved to the
// first-listed (canonical) reading.
type Engine struct {
	mmseg       *MMSeg
	phrasesDict dict.PhraseDict
	charDict    dict.CharDict
}

// New builds an Engine from the loaded phrase and character dictionaries.
func New(phrasesDict dict.PhraseDict, charDict dict.CharDict) *Engine {
	return &Engine{
		mmseg:       NewMMSeg(true, phrasesDict),
		phrasesDict: phrasesDict,
		charDict:    charDict,
	}
}

// LazyPinyin segments hans and converts every resulting character to the
// requested style, one output string per input character (segmentation
// units wider than one character expand back out per character).
func (e *Engine) LazyPinyin(hans string, style Style, strict bool) []string {
	words := e.mmseg.Seg(hans)
	var out []string
	for _, word := range words {
		out = append(out, e.convert(word, style, strict)...)
	}
	return out
}

func (e *Engine) convert(word string, style Style, strict bool) []string {
	if !reHans.MatchString(word) {
		return e.fallback(word, style)
	}
	candidates := e.phrasePinyin(word)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if len(c) == 0 {
			out = append(out, "")
			continue
		}
		converted := convertStyle(c[0], style, strict)
		out = append(out, converted)
	}
	return out
}

// phrasePinyin returns one candidate list per character of word: the
// dictionary entry's list when word itself is a known phrase, otherwise
// each character's own heteronym list looked up individually.
func (e *Engine) phrasePinyin(word string) [][]string {
	if py, ok := e.phrasesDict[word]; ok {
		return py
	}
	var out [][]string
	for _, r := range word {
		out = append(out, e.singlePinyin(string(r))...)
	}
	return out
}

func (e *Engine) singlePinyin(han string) [][]string {
	if pys, ok := e.charDict[han]; ok {
		return [][]string{strings.Split(pys, ",")}
	}
	if readings := gopinyin.Pinyin(han, fallbackArgs); len(readings) > 0 && len(readings[0]) > 0 {
		return [][]string{readings[0]}
	}
	common.GetLogger().Warn().Str("char", han).
		Msg("pinyin: no dictionary entry or go-pinyin reading, passing character through unconverted")
	return [][]string{{han}}
}

// fallback handles a segmentation unit that isn't pure Han text -- Latin
// letters, digits, punctuation -- by passing each character through as
// both its own initial and final.
func (e *Engine) fallback(word string, style Style) []string {
	var out []string
	for _, r := range word {
		ch := string(r)
		switch style {
		case StyleInitials:
			out = append(out, ch)
		case StyleInitialsTone3:
			out = append(out, ch)
		}
	}
	return out
}
