// Package pinyin turns Chinese text into per-character pinyin syllables: a
// maximum-match segmenter finds phrase boundaries against the phrase
// dictionary, heteronyms are resolved to the canonical (first-listed)
// reading, and the result is rendered in the Initials / InitialsTone3
// pinyin styles used by the G2P stage. It also decomposes a toned pinyin
// syllable into the (initial, final) phoneme pair the acoustic alphabet
// expects.
package pinyin

import "github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"

// MMSeg is a maximum-match segmenter over a phrase dictionary's keys. When
// noNonPhrases is set, any match that isn't itself a phrase-dictionary key
// is rejected in favor of single-character spans -- this keeps accidental
// prefix collisions from swallowing characters that don't form a real
// phrase together.
type MMSeg struct {
	noNonPhrases bool
	prefixSet    map[string]struct{}
	phrasesDict  dict.PhraseDict
}

// NewMMSeg builds the prefix set from every prefix of every phrase key.
func NewMMSeg(noNonPhrases bool, phrasesDict dict.PhraseDict) *MMSeg {
	prefixSet := make(map[string]struct{})
	for word := range phrasesDict {
		runes := []rune(word)
		for i := 1; i <= len(runes); i++ {
			prefixSet[string(runes[:i])] = struct{}{}
		}
	}
	return &MMSeg{noNonPhrases: noNonPhrases, prefixSet: prefixSet, phrasesDict: phrasesDict}
}

func (m *MMSeg) isPhrase(s string) bool {
	_, ok := m.phrasesDict[s]
	return ok
}

// Seg greedily matches the longest known prefix at each position, falling
// back to single characters (or, with noNonPhrases unset, the unmatched
// span as-is) when no further extension is a known prefix.
func (m *MMSeg) Seg(text string) []string {
	remain := []rune(text)
	var segWords []string

	for len(remain) > 0 {
		matched := ""
		before := len(segWords)

		for index := 0; index < len(remain); index++ {
			word := string(remain[:index+1])
			if _, ok := m.prefixSet[word]; ok {
				matched = word
				continue
			}
			switch {
			case matched != "" && (!m.noNonPhrases || m.isPhrase(matched)):
				segWords = append(segWords, matched)
				remain = remain[index:]
			case m.noNonPhrases:
				segWords = append(segWords, string(remain[0]))
				remain = remain[1:]
			default:
				segWords = append(segWords, word)
				remain = remain[index+1:]
			}
			break
		}

		if len(segWords) == before {
			if m.noNonPhrases && !m.isPhrase(string(remain)) {
				for _, r := range remain {
					segWords = append(segWords, string(r))
				}
			} else {
				segWords = append(segWords, string(remain))
			}
			break
		}
	}

	return segWords
}
