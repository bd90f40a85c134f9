// Package tonesandhi implements Mandarin tone-sandhi rewriting: the
// dictionary tone a character carries in isolation is not always the tone
// it surfaces with in running speech. A fixed pipeline of segment merges
// (pre_merge_for_modify) groups a jieba-tagged sentence into the spans
// these rules actually apply over, and a second fixed pipeline
// (ModifiedTone) rewrites a span's per-character final+tone strings in
// place: 不-sandhi, 一-sandhi, neutral-tone (fifth-tone) rewriting, and
// third-tone sandhi.
package tonesandhi

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/pinyin"
)

// Tag is one word+part-of-speech token, the unit a segmenter/tagger (e.g.
// gojieba's Tag) emits -- the input to PreMergeForModify.
type Tag struct {
	Word string
	Pos  string
}

// WordPos is a (possibly merged) word+part-of-speech span, the unit
// ModifiedTone operates over.
type WordPos struct {
	Word string
	Pos  string
}

// Cutter is the segmentation dependency split_word needs: jieba's
// search-mode cut, which additionally emits character n-grams of long
// dictionary words so a compound can be split back into its parts.
type Cutter interface {
	CutForSearch(sentence string, useHMM bool) []string
}

// Engine runs the merge and sandhi pipelines. It needs a pinyin.Engine to
// look up a span's own finals+tones (for the tone-3-run merge heuristics)
// and a Cutter to re-segment a word for split_word.
type Engine struct {
	pinyin *pinyin.Engine
	cutter Cutter
}

// New builds an Engine from its two segmentation dependencies.
func New(pinyinEngine *pinyin.Engine, cutter Cutter) *Engine {
	return &Engine{pinyin: pinyinEngine, cutter: cutter}
}

// PreMergeForModify runs the fixed merge-function chain over a tagged
// sentence: merge_bu first, then yi/reduplication/three-tone-run/er merges
// in that order.
func (e *Engine) PreMergeForModify(segCut []Tag) []WordPos {
	acc := mergeBu(segCut)
	acc = mergeYi(acc)
	acc = mergeReduplication(acc)
	acc = e.mergeContinuousThreeTones(acc)
	acc = e.mergeContinuousThreeTones2(acc)
	acc = mergeEr(acc)
	return acc
}

// ModifiedTone rewrites one span's finals in place through the fixed
// bu -> yi -> neural -> three sandhi chain.
func (e *Engine) ModifiedTone(word, pos string, finals []string) []string {
	finals = buSandhi(word, finals)
	finals = yiSandhi(word, finals)
	finals = e.neuralSandhi(word, pos, finals)
	return e.threeSandhi(word, finals)
}

// clampSubstring returns the rune range [start,end) of s, clamped to a
// valid range instead of panicking -- matching the "substring" crate's
// safe-slice behavior the original relies on throughout this file.
func clampSubstring(s string, start, end int) string {
	r := []rune(s)
	n := len(r)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	return string(r[start:end])
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func buSandhi(word string, finals []string) []string {
	wr := []rune(word)

	threeChar := len(wr) == 3
	buInMiddle := len(wr) > 1 && wr[1] == '不'

	if threeChar && buInMiddle {
		if len(finals) > 1 {
			finals[1] = dropLastRune(finals[1]) + "5"
		}
		return finals
	}

	for i, ch := range wr {
		if len(finals) > i+1 {
			f1 := []rune(finals[i+1])
			nextIsFour := len(f1) > 0 && f1[len(f1)-1] == '4'
			if ch == '不' && i+1 < len(wr) && nextIsFour {
				finals[i] = dropLastRune(finals[i]) + "2"
			}
		}
	}
	return finals
}

func yiSandhi(word string, finals []string) []string {
	if word == "" {
		return finals
	}
	wr := []rune(word)
	wLen := len(wr)
	w0 := wr[0]
	wLast := wr[wLen-1]

	allYiOrDigit := true
	for _, ch := range wr {
		if ch != '一' && !unicode.IsNumber(ch) {
			allYiOrDigit = false
			break
		}
	}
	if strings.ContainsRune(word, '一') && allYiOrDigit {
		return finals
	}

	switch {
	case wLen == 3 && wr[1] == '一' && w0 == wLast:
		if len(finals) > 2 {
			finals[1] = dropLastRune(finals[1]) + "5"
		}
	case strings.HasPrefix(word, "第一"):
		if len(finals) > 2 {
			finals[1] = dropLastRune(finals[1]) + "1"
		}
	default:
		for i, ch := range wr {
			if ch == '一' && i+1 < wLen && len(finals) > i+1 {
				f1 := finals[i+1]
				if strings.HasSuffix(f1, "4") {
					finals[i] = dropLastRune(finals[i]) + "2"
				} else if !strings.ContainsRune(punctuation, wr[i+1]) {
					finals[i] = dropLastRune(finals[i]) + "4"
				}
			}
		}
	}
	return finals
}

func (e *Engine) neuralSandhi(word, pos string, finals []string) []string {
	wr := []rune(word)
	wordLen := len(wr)
	finalsLen := len(finals)
	if wordLen == 0 || finalsLen == 0 {
		return finals
	}

	for j := 1; j < wordLen; j++ {
		if wr[j] == wr[j-1] && firstRuneIn(pos, "nva") && !isMustNotNeural(word) {
			pre := dropLastRune(finals[j])
			if pre == "" {
				pre = finals[j]
			}
			finals[j] = pre + "5"
		}
	}

	last := wr[wordLen-1]
	switch {
	case strings.ContainsRune("吧呢哈啊呐噻嘛吖嗨呐哦哒额滴哩哟喽啰耶喔诶", last),
		wordLen == 1 && strings.ContainsRune("了着过", last) && (pos == "ul" || pos == "uz" || pos == "ug"),
		wordLen > 1 && strings.ContainsRune("们子", last) && (pos == "r" || pos == "n") && !isMustNotNeural(word),
		wordLen > 1 && strings.ContainsRune("来去", last) && strings.ContainsRune("上下进出回过起开", wr[wordLen-2]),
		wordLen > 1 && strings.ContainsRune("上下里", last) && (pos == "s" || pos == "l" || pos == "f"):
		idx := finalsLen - 1
		finals[idx] = dropLastRune(finals[idx]) + "5"
	case strings.ContainsRune("的地得", last):
		idx := finalsLen - 1
		pre := dropLastRune(finals[idx])
		if pre == "" {
			pre = finals[idx]
		}
		finals[idx] = pre + "5"
	}

	geIdx := -1
	for i, ch := range wr {
		if ch == '个' {
			geIdx = i
			break
		}
	}
	if geIdx >= 0 {
		if geIdx >= 1 {
			prev := wr[geIdx-1]
			if unicode.IsNumber(prev) || strings.ContainsRune("几有两半多各整每做是", prev) || word == "个" {
				finals[geIdx] = dropLastRune(finals[geIdx]) + "5"
			}
		}
	} else if isMustNeural(word) || (wordLen > 1 && isMustNeural(clampSubstring(word, wordLen-2, wordLen))) {
		idx := finalsLen - 1
		finals[idx] = dropLastRune(finals[idx]) + "5"
	}

	wordList := e.splitWord(word)
	if len(wordList) < 1 {
		return finals
	}
	w0Len := len([]rune(wordList[0]))
	if w0Len > len(finals) {
		w0Len = len(finals)
	}
	finalsList := [][]string{
		append([]string{}, finals[:w0Len]...),
		append([]string{}, finals[w0Len:]...),
	}
	for i, sub := range wordList {
		if i >= len(finalsList) {
			break
		}
		if isMustNeural(sub) || (wordLen > 1 && isMustNeural(clampSubstring(sub, wordLen-2, wordLen))) {
			fl := finalsList[i]
			if len(fl) == 0 {
				continue
			}
			last := len(fl) - 1
			fl[last] = dropLastRune(fl[last]) + "5"
			finalsList[i] = fl
		}
	}
	out := make([]string, 0, finalsLen)
	out = append(out, finalsList[0]...)
	out = append(out, finalsList[1]...)
	return out
}

func (e *Engine) threeSandhi(word string, finals []string) []string {
	if len(finals) == 0 {
		return finals
	}
	wr := []rune(word)
	updateTone := func(tone string, newTone rune) string {
		return dropLastRune(tone) + string(newTone)
	}

	switch len(wr) {
	case 2:
		if allToneThree(finals) {
			finals[0] = updateTone(finals[0], '2')
		}
	case 3:
		wordList := e.splitWord(word)
		if len(wordList) < 1 {
			return finals
		}
		if allToneThree(finals) && len(finals) >= 2 {
			switch len([]rune(wordList[0])) {
			case 2:
				finals[0] = updateTone(finals[0], '2')
				finals[1] = updateTone(finals[1], '2')
			case 1:
				finals[1] = updateTone(finals[1], '2')
			}
		} else {
			w0Len := len([]rune(wordList[0]))
			if w0Len > len(finals) {
				w0Len = len(finals)
			}
			finalsList := [][]string{
				append([]string{}, finals[:w0Len]...),
				append([]string{}, finals[w0Len:]...),
			}
			for i := range finalsList {
				sub := finalsList[i]
				switch {
				case allToneThree(sub) && len(sub) == 2:
					sub[0] = updateTone(sub[0], '2')
				case i == 1 && !allToneThree(sub):
					prev := finalsList[0]
					if len(prev) > 0 && len(sub) > 0 &&
						strings.HasSuffix(prev[len(prev)-1], "3") &&
						strings.HasSuffix(sub[0], "3") {
						prev[len(prev)-1] = updateTone(prev[len(prev)-1], '2')
					}
				}
				finalsList[i] = sub
			}
			out := make([]string, 0, len(finals))
			out = append(out, finalsList[0]...)
			out = append(out, finalsList[1]...)
			finals = out
		}
	case 4:
		if len(finals) >= 4 {
			halves := [][]string{
				append([]string{}, finals[:2]...),
				append([]string{}, finals[2:]...),
			}
			out := make([]string, 0, len(finals))
			for _, sub := range halves {
				if allToneThree(sub) {
					sub[0] = updateTone(sub[0], '2')
				}
				out = append(out, sub...)
			}
			finals = out
		}
	}
	return finals
}

// splitWord re-segments word with search-mode cutting, takes the shortest
// resulting token, and splits word into [that token, remainder] -- in
// token-prefix order if the short token starts the word, else
// [remainder, token].
func (e *Engine) splitWord(word string) []string {
	if word == "" {
		return nil
	}
	words := e.cutter.CutForSearch(word, true)
	if len(words) == 0 {
		return []string{}
	}
	sort.SliceStable(words, func(i, j int) bool {
		return len([]rune(words[i])) < len([]rune(words[j]))
	})
	first := words[0]
	wr := []rune(word)
	firstLen := len([]rune(first))

	if strings.HasPrefix(word, first) {
		rest := ""
		if firstLen < len(wr) {
			rest = string(wr[firstLen:])
		}
		return []string{first, rest}
	}
	rest := string(wr[:len(wr)-firstLen])
	return []string{rest, first}
}

func mergeBu(segCut []Tag) []WordPos {
	var result []WordPos
	lastWord := ""
	for _, seg := range segCut {
		merged := seg.Word
		if lastWord == "不" {
			merged = lastWord + seg.Word
		}
		if merged != "不" {
			result = append(result, WordPos{merged, seg.Pos})
		}
		lastWord = merged
	}
	if lastWord == "不" {
		result = append(result, WordPos{"不", "d"})
	}
	return result
}

func mergeYi(segCut []WordPos) []WordPos {
	var result []WordPos
	for i, wp := range segCut {
		if wp.Word == "一" && i > 0 && i+1 < len(segCut) &&
			segCut[i-1].Word == segCut[i+1].Word &&
			segCut[i-1].Pos == "v" && segCut[i+1].Pos == "v" {
			if len(result) > 0 {
				result[len(result)-1].Word += "一" + segCut[i+1].Word
			}
			continue
		}
		if i >= 2 && segCut[i-1].Word == "一" && segCut[i-2].Word == wp.Word && wp.Pos == "v" {
			continue
		}
		result = append(result, wp)
	}

	var folded []WordPos
	for _, wp := range result {
		if len(folded) > 0 && folded[len(folded)-1].Word == "一" {
			folded[len(folded)-1].Word += wp.Word
			continue
		}
		folded = append(folded, wp)
	}
	return folded
}

func mergeReduplication(segCut []WordPos) []WordPos {
	var out []WordPos
	for _, wp := range segCut {
		if len(out) > 0 && out[len(out)-1].Word == wp.Word {
			out[len(out)-1].Word += wp.Word
			continue
		}
		out = append(out, wp)
	}
	return out
}

func mergeEr(segCut []WordPos) []WordPos {
	var out []WordPos
	for i, wp := range segCut {
		if i > 0 && wp.Word == "儿" && segCut[i-1].Word != "#" {
			if len(out) > 0 {
				out[len(out)-1].Word += wp.Word
			}
			continue
		}
		out = append(out, wp)
	}
	return out
}

func (e *Engine) getPinyin(word string) []string {
	return e.pinyin.LazyPinyin(word, pinyin.StyleInitialsTone3, true)
}

func (e *Engine) mergeContinuousThreeTones(segCut []WordPos) []WordPos {
	subFinals := e.subFinalsList(segCut)
	out := make([]WordPos, 0, len(segCut))
	mergeLast := make([]bool, len(segCut))
	for i, wp := range segCut {
		if i > 0 {
			b1 := allToneThree(subFinals[i-1])
			b2 := allToneThree(subFinals[i])
			b3 := !mergeLast[i-1]
			if b1 && b2 && b3 {
				prevWord := segCut[i-1].Word
				if !isReduplication(prevWord) && len([]rune(prevWord))+len([]rune(wp.Word)) <= 3 {
					if len(out) > 0 {
						out[len(out)-1].Word += wp.Word
					}
					mergeLast[i] = true
					continue
				}
			}
		}
		out = append(out, wp)
	}
	return out
}

func (e *Engine) mergeContinuousThreeTones2(segCut []WordPos) []WordPos {
	subFinals := e.subFinalsList(segCut)
	out := make([]WordPos, 0, len(segCut))
	mergeLast := make([]bool, len(segCut))
	for i, wp := range segCut {
		if i > 0 {
			prev := subFinals[i-1]
			curr := subFinals[i]
			prevIsThree := len(prev) > 0 && strings.HasSuffix(prev[len(prev)-1], "3")
			currIsThree := len(curr) > 0 && strings.HasSuffix(curr[0], "3")
			if prevIsThree && currIsThree && !mergeLast[i-1] &&
				!isReduplication(segCut[i-1].Word) &&
				len([]rune(segCut[i-1].Word))+len([]rune(wp.Word)) <= 3 {
				if len(out) > 0 {
					out[len(out)-1].Word += wp.Word
				}
				mergeLast[i] = true
				continue
			}
		}
		out = append(out, wp)
	}
	return out
}

func (e *Engine) subFinalsList(segCut []WordPos) [][]string {
	out := make([][]string, len(segCut))
	for i, wp := range segCut {
		py := e.getPinyin(wp.Word)
		if len(py) == 0 {
			py = []string{wp.Word}
		}
		out[i] = py
	}
	return out
}

func isReduplication(word string) bool {
	r := []rune(word)
	return len(r) == 2 && r[0] == r[1]
}

func allToneThree(finals []string) bool {
	for _, f := range finals {
		if !strings.HasSuffix(f, "3") {
			return false
		}
	}
	return true
}

func isMustNeural(word string) bool {
	_, ok := mustNeuralToneWords[word]
	return ok
}

func isMustNotNeural(word string) bool {
	_, ok := mustNotNeuralToneWords[word]
	return ok
}

func firstRuneIn(s, set string) bool {
	for _, ch := range s {
		return strings.ContainsRune(set, ch)
	}
	return false
}
