package langseg

import "strings"

// split breaks todo_text into pieces each ending at one of the
// segmenter's sentence-final punctuation marks, first folding "……" into
// "。" and "——" into "，" and appending a trailing "。" if the text
// doesn't already end on a split mark -- ported verbatim from
// text_utils.rs's LangSegment::split.
func (s *Segmenter) split(todoText string) []string {
	todoText = strings.ReplaceAll(todoText, "……", "。")
	todoText = strings.ReplaceAll(todoText, "——", "，")

	runes := []rune(todoText)
	if len(runes) == 0 || !s.isSplitRune(runes[len(runes)-1]) {
		runes = append(runes, '。')
	}

	var result []string
	var current strings.Builder
	for _, r := range runes {
		current.WriteRune(r)
		if s.isSplitRune(r) {
			result = append(result, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

func (s *Segmenter) isSplitRune(r rune) bool {
	for _, sp := range s.splits {
		if sp == r {
			return true
		}
	}
	return false
}

// cut2 merges split's sentence pieces into lines no longer than maxNum
// runes, folding a too-short trailing line into its predecessor -- ported
// verbatim from text_utils.rs's LangSegment::cut2.
func (s *Segmenter) cut2(inp string, maxNum int) string {
	inp = strings.Trim(inp, "\n")
	pieces := s.split(inp)
	if len(pieces) < 2 {
		return inp
	}

	var opts []string
	var current strings.Builder
	currentLen := 0
	for _, seg := range pieces {
		segLen := len([]rune(seg))
		if currentLen+segLen > maxNum {
			opts = append(opts, current.String())
			current.Reset()
			currentLen = 0
		}
		current.WriteString(seg)
		currentLen += segLen
	}
	if current.Len() > 0 {
		opts = append(opts, current.String())
	}

	if len(opts) > 1 && len([]rune(opts[len(opts)-1])) < maxNum {
		last := opts[len(opts)-1]
		opts = opts[:len(opts)-1]
		opts[len(opts)-1] += last
	}

	return strings.Join(opts, "\n")
}

// cut3 splits on the Chinese full stop "。", further splitting any
// resulting piece longer than maxNum runes on the Chinese comma "，" --
// ported verbatim from text_utils.rs's LangSegment::cut3.
func (s *Segmenter) cut3(inp string, maxNum int) string {
	inp = strings.Trim(inp, "\n")
	pieces := strings.Split(strings.Trim(inp, "。"), "。")
	for i, p := range pieces {
		if len([]rune(p)) > maxNum {
			pieces[i] = strings.Join(strings.Split(p, "，"), "\n")
		}
	}
	return strings.Join(pieces, "\n")
}

// mergeShortTextInArray concatenates consecutive texts until the running
// buffer reaches threshold runes, flushing a new result entry each time --
// ported verbatim from text_utils.rs's LangSegment::merge_short_text_in_array.
func (s *Segmenter) mergeShortTextInArray(texts []string, threshold int) []string {
	if len(texts) < 2 {
		return texts
	}

	var result []string
	var buffer strings.Builder
	for _, text := range texts {
		buffer.WriteString(text)
		if len([]rune(buffer.String())) >= threshold {
			result = append(result, buffer.String())
			buffer.Reset()
		}
	}
	if buffer.Len() > 0 {
		if len(result) > 0 {
			result[len(result)-1] += buffer.String()
		} else {
			result = append(result, buffer.String())
		}
	}
	return result
}

// CutTexts splits text into synthesis-sized chunks: cut3's full-stop/comma
// split, then cut2's maxNum-rune regrouping, then a final short-text merge
// pass with a fixed 5-rune threshold -- ported verbatim from
// text_utils.rs's LangSegment::cut_texts, except empty (or all-whitespace)
// input returns an empty list instead of the single empty chunk the ported
// steps would otherwise produce.
func (s *Segmenter) CutTexts(text string, maxNum int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = s.cut3(text, maxNum)
	text = s.cut2(text, maxNum)
	texts := strings.Split(text, "\n")
	return s.mergeShortTextInArray(texts, 5)
}
