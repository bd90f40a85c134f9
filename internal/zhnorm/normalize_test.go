package zhnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(dict.ZhNormDict{
		T2SMapping: dict.T2SMapping{Traditional: "漢語", Simplified: "汉语"},
		SpecialSymbolMapping: map[string]string{
			"“": ",", "”": ",",
		},
	})
}

func TestNormalizeSentenceDateTimeScenario(t *testing.T) {
	n := testNormalizer()
	got := n.NormalizeSentence("2023年10月25日，会议时间为8:30-12:00")
	assert.Equal(t, "二零二三年十月二十五日，会议时间为八点半至十二点", got)
}

func TestNormalizeSplitsOnSentencePunctuation(t *testing.T) {
	n := testNormalizer()
	got := n.Normalize("这是第一句。这是第二句！这是第三句？")
	assert.Equal(t, []string{"这是第一句。", "这是第二句！", "这是第三句？"}, got)
}

func TestNormalizeTraditionalToSimplified(t *testing.T) {
	n := testNormalizer()
	got := n.NormalizeSentence("漢語")
	assert.Equal(t, "汉语", got)
}

func TestFullwidthToHalfwidth(t *testing.T) {
	assert.Equal(t, "ABCD1234", fullwidthToHalfwidth("ＡＢＣＤ１２３４"))
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := testNormalizer()
	assert.Empty(t, n.Normalize(""))
}
