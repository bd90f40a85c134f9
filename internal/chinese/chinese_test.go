package chinese

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/pinyin"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/tonesandhi"
)

// fakeSegmenter returns canned Tag/CutForSearch results for the fixed set
// of sentences these tests exercise, standing in for a real jieba instance.
type fakeSegmenter struct {
	tags map[string][]tonesandhi.Tag
	cuts map[string][]string
}

func (f fakeSegmenter) Tag(text string) []tonesandhi.Tag {
	if t, ok := f.tags[text]; ok {
		return t
	}
	return []tonesandhi.Tag{{Word: text}}
}

func (f fakeSegmenter) CutForSearch(sentence string, useHMM bool) []string {
	if c, ok := f.cuts[sentence]; ok {
		return c
	}
	return []string{sentence}
}

func newTestChinese() *Chinese {
	repMap := dict.ReplacementMap{"，": ",", "。": "."}
	phrases := dict.PhraseDict{"你好": {{"ni3"}, {"hao3"}}}
	p := pinyin.New(phrases, dict.CharDict{})
	seg := fakeSegmenter{
		tags: map[string][]tonesandhi.Tag{
			"你好": {{Word: "你好", Pos: "r"}},
		},
		cuts: map[string][]string{
			"你好": {"你好"},
		},
	}
	return New(repMap, dict.ZhNormDict{}, p, seg)
}

func TestReplaceSymbol(t *testing.T) {
	c := newTestChinese()
	assert.Equal(t, "你好,世界.", c.ReplaceSymbol("你好，世界。"))
}

func TestReplacePunctuationStripsNonHan(t *testing.T) {
	c := newTestChinese()
	assert.Equal(t, "你好,世界.", c.ReplacePunctuation("你好，世界。Hello"))
}

func TestReplacePunctuationHomophones(t *testing.T) {
	c := newTestChinese()
	assert.Equal(t, "恩母", c.ReplacePunctuation("嗯呣"))
}

func TestTextNormalizePassesThroughPlainSentence(t *testing.T) {
	c := newTestChinese()
	assert.Equal(t, "你好世界", c.TextNormalize("你好世界"))
}

func TestG2PSimpleSentence(t *testing.T) {
	c := newTestChinese()
	phones, word2ph := c.G2P("你好")
	assert.Equal(t, []string{"n", "i2", "h", "ao3"}, phones)
	assert.Equal(t, []int{2, 2}, word2ph)
}

func TestG2PSkipsEnglishTaggedSpans(t *testing.T) {
	c := newTestChinese()
	c.jieba = fakeSegmenter{
		tags: map[string][]tonesandhi.Tag{
			"你好": {{Word: "你好", Pos: "eng"}},
		},
	}
	phones, word2ph := c.G2P("你好")
	assert.Empty(t, phones)
	assert.Empty(t, word2ph)
}
