package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
)

func testCharDict() dict.CharDict {
	return dict.CharDict{
		"你": "ni3",
		"一": "yi1",
		"走": "zou3",
		"我": "wo3",
		"就": "jiu4",
		"好": "hao3",
		"害": "hai4",
		"怕": "pa4",
		"世": "shi4",
		"界": "jie4",
		"重": "zhong4,chong2",
	}
}

func TestLazyPinyinInitialsStrict(t *testing.T) {
	e := New(dict.PhraseDict{}, testCharDict())
	got := e.LazyPinyin("你一走，我就好害怕", StyleInitials, true)
	assert.Equal(t, []string{"n", "", "z", "，", "", "j", "h", "h", "p"}, got)
}

func TestLazyPinyinInitialsNotStrict(t *testing.T) {
	e := New(dict.PhraseDict{}, testCharDict())
	got := e.LazyPinyin("你一走，我就好害怕", StyleInitials, false)
	assert.Equal(t, []string{"n", "y", "z", "，", "w", "j", "h", "h", "p"}, got)
}

func TestLazyPinyinInitialsTone3(t *testing.T) {
	e := New(dict.PhraseDict{}, testCharDict())
	got := e.LazyPinyin("你好", StyleInitialsTone3, true)
	assert.Equal(t, []string{"i3", "ao3"}, got)
}

func TestLazyPinyinEmptyString(t *testing.T) {
	e := New(dict.PhraseDict{}, testCharDict())
	got := e.LazyPinyin("", StyleInitialsTone3, true)
	assert.Empty(t, got)
}

func TestLazyPinyinSingleCharacter(t *testing.T) {
	e := New(dict.PhraseDict{}, testCharDict())
	got := e.LazyPinyin("你", StyleInitialsTone3, true)
	assert.Equal(t, []string{"i3"}, got)
}

func TestLazyPinyinNonHanziCharacters(t *testing.T) {
	e := New(dict.PhraseDict{}, testCharDict())
	got := e.LazyPinyin("Hello!", StyleInitialsTone3, true)
	assert.Equal(t, []string{"H", "e", "l", "l", "o", "!"}, got)
}

func TestLazyPinyinHeteronymUsesFirstCandidate(t *testing.T) {
	e := New(dict.PhraseDict{}, testCharDict())
	got := e.LazyPinyin("重", StyleInitialsTone3, true)
	assert.Equal(t, []string{"ong4"}, got)
}

func TestLazyPinyinMixedInput(t *testing.T) {
	e := New(dict.PhraseDict{}, testCharDict())
	got := e.LazyPinyin("你好123", StyleInitialsTone3, true)
	assert.Equal(t, []string{"i3", "ao3", "1", "2", "3"}, got)
}

func TestLazyPinyinPhraseDictionaryOverridesPerCharLookup(t *testing.T) {
	phrases := dict.PhraseDict{"世界": [][]string{{"shi4"}, {"jie4"}}}
	e := New(phrases, testCharDict())
	got := e.LazyPinyin("世界", StyleInitialsTone3, true)
	assert.Equal(t, []string{"i4", "ie4"}, got)
}
