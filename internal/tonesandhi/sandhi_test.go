package tonesandhi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/pinyin"
)

// fakeCutter returns canned search-mode segmentations for the fixed set of
// words these oracles exercise, standing in for gojieba's CutForSearch.
type fakeCutter struct {
	tokens map[string][]string
}

func (f fakeCutter) CutForSearch(sentence string, useHMM bool) []string {
	if toks, ok := f.tokens[sentence]; ok {
		return toks
	}
	return []string{sentence}
}

func newTestEngine() *Engine {
	c := fakeCutter{tokens: map[string][]string{
		"中国人":  {"中国", "中国人", "人"},
		"我":    {"我"},
		"你好":   {"你好"},
		"好好":   {"好好"},
		"测试-中": {"测试", "-", "中"},
		"了":    {"了"},
		"来来":   {"来来"},
		"几个":   {"几个"},
		"麻烦":   {"麻烦"},
		"男子":   {"男子"},
		"漂亮的":  {"漂亮", "的"},
		"吃吧":   {"吃吧"},
		"进来":   {"进来"},
		"人们":   {"人们"},
		"家里":   {"家里"},
		"地面上":  {"地面", "上"},
		"水果":   {"水果"},
		"管理者":  {"管理者"},
	}}
	p := pinyin.New(dict.PhraseDict{}, dict.CharDict{})
	return New(p, c)
}

func TestNeuralSandhi(t *testing.T) {
	e := newTestEngine()

	got := e.neuralSandhi("了", "ul", []string{"le4"})
	assert.Equal(t, []string{"le5"}, got)

	got = e.neuralSandhi("来来", "v", []string{"lai2", "lai2"})
	assert.Equal(t, []string{"lai2", "lai5"}, got)

	got = e.neuralSandhi("几个", "m", []string{"ji3", "ge4"})
	assert.Equal(t, []string{"ji3", "ge5"}, got)

	got = e.neuralSandhi("麻烦", "n", []string{"ma2", "fan2"})
	assert.Equal(t, []string{"ma2", "fan5"}, got)

	got = e.neuralSandhi("男子", "n", []string{"nan2", "zi3"})
	assert.Equal(t, []string{"nan2", "zi3"}, got)

	got = e.neuralSandhi("漂亮的", "a", []string{"piao4", "liang4", "de5"})
	assert.Equal(t, []string{"piao4", "liang5", "de5"}, got)

	got = e.neuralSandhi("吃吧", "v", []string{"chi1", "ba5"})
	assert.Equal(t, []string{"chi1", "ba5"}, got)

	got = e.neuralSandhi("进来", "v", []string{"jin4", "lai2"})
	assert.Equal(t, []string{"jin4", "lai5"}, got)

	got = e.neuralSandhi("人们", "n", []string{"ren2", "men5"})
	assert.Equal(t, []string{"ren2", "men5"}, got)

	got = e.neuralSandhi("家里", "s", []string{"jia1", "li5"})
	assert.Equal(t, []string{"jia1", "li5"}, got)

	got = e.neuralSandhi("地面上", "s", []string{"di4", "mian4", "shang4"})
	assert.Equal(t, []string{"di4", "mian4", "shang5"}, got)

	got = e.neuralSandhi("", "", nil)
	assert.Empty(t, got)
}

func TestBuSandhi(t *testing.T) {
	got := buSandhi("不是", []string{"bu4", "shi4"})
	assert.Equal(t, []string{"bu2", "shi4"}, got)

	got = buSandhi("好不好", []string{"hao3", "bu4", "hao3"})
	assert.Equal(t, []string{"hao3", "bu5", "hao3"}, got)

	got = buSandhi("不明白", []string{"bu4", "ming2", "bai2"})
	assert.Equal(t, []string{"bu4", "ming2", "bai2"}, got)

	got = buSandhi("行不行", []string{"xing2", "bu4", "xing2"})
	assert.Equal(t, []string{"xing2", "bu5", "xing2"}, got)

	got = buSandhi("", nil)
	assert.Empty(t, got)
}

func TestYiSandhi(t *testing.T) {
	got := yiSandhi("一个", []string{"yi2", "ge4"})
	assert.Equal(t, []string{"yi2", "ge4"}, got)

	got = yiSandhi("第一", []string{"di4", "yi1"})
	assert.Equal(t, []string{"di4", "yi1"}, got)

	got = yiSandhi("一二三", []string{"yi1", "er4", "san1"})
	assert.Equal(t, []string{"yi2", "er4", "san1"}, got)

	got = yiSandhi("看一看", []string{"kan4", "yi2", "kan4"})
	assert.Equal(t, []string{"kan4", "yi5", "kan4"}, got)

	got = yiSandhi("一次", []string{"yi2", "ci4"})
	assert.Equal(t, []string{"yi2", "ci4"}, got)

	got = yiSandhi("", nil)
	assert.Empty(t, got)
}

func TestSplitWord(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, []string{"中国", "人"}, e.splitWord("中国人"))
	assert.Equal(t, []string{"我", ""}, e.splitWord("我"))
	assert.Equal(t, []string{"你好", ""}, e.splitWord("你好"))
	assert.Equal(t, []string{"好好", ""}, e.splitWord("好好"))
	assert.Equal(t, []string{"测试-", "-"}, e.splitWord("测试-中"))
	assert.Empty(t, e.splitWord(""))
}

func TestThreeSandhi(t *testing.T) {
	e := newTestEngine()

	got := e.threeSandhi("水果", []string{"shui3", "guo3"})
	assert.Equal(t, []string{"shui2", "guo3"}, got)

	got = e.threeSandhi("管理者", []string{"guan3", "li3", "zhe3"})
	assert.Equal(t, []string{"guan3", "li3", "zhe3"}, got)

	got = e.threeSandhi("管理者们", []string{"guan3", "li3", "zhe3", "men5"})
	assert.Equal(t, []string{"guan2", "li3", "zhe3", "men5"}, got)

	got = e.threeSandhi("管理者们", []string{"guan3", "li3", "zhe3", "men5"})
	assert.Equal(t, []string{"guan2", "li3", "zhe3", "men5"}, got)

	got = e.threeSandhi("", nil)
	assert.Empty(t, got)
}

func TestMergeBu(t *testing.T) {
	got := mergeBu([]Tag{{"不", "d"}, {"是", "v"}})
	assert.Equal(t, []WordPos{{"不是", "v"}}, got)

	got = mergeBu([]Tag{{"不", "d"}, {"不", "d"}, {"行", "v"}})
	assert.Equal(t, []WordPos{{"不不", "d"}, {"行", "v"}}, got)

	got = mergeBu([]Tag{{"行", "v"}, {"不", "d"}})
	assert.Equal(t, []WordPos{{"行", "v"}, {"不", "d"}}, got)
}

func TestMergeYi(t *testing.T) {
	got := mergeYi([]WordPos{{"一", "v"}, {"看", "v"}, {"一", "v"}, {"看", "v"}})
	assert.Equal(t, []WordPos{{"一看一看", "v"}}, got)

	got = mergeYi([]WordPos{{"看", "v"}, {"一", "v"}, {"看", "v"}})
	assert.Equal(t, []WordPos{{"看一看", "v"}}, got)

	got = mergeYi([]WordPos{{"一", "v"}, {"看", "v"}})
	assert.Equal(t, []WordPos{{"一看", "v"}}, got)
}
