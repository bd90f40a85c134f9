package english

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/dict"
)

type fakeModel struct {
	predictions map[string][]string
}

func (f fakeModel) Predict(word string) ([]string, error) {
	return f.predictions[word], nil
}

func newTestEnglish() *English {
	d := dict.EnglishDict{
		"HELLO": {{"HH", "AH0", "L", "OW1"}},
		"WORLD": {{"W", "ER1", "L", "D"}},
	}
	model := fakeModel{predictions: map[string][]string{
		"zbif": {"Z", "B", "IH1", "F"},
	}}
	return New(d, model)
}

func TestG2PDictionaryLookup(t *testing.T) {
	e := newTestEnglish()
	phones, word2ph := e.G2P("Hello world")
	assert.Equal(t, []string{"HH", "AH0", "L", "OW1", "W", "ER1", "L", "D"}, phones)
	assert.Equal(t, []int{4, 4}, word2ph)
}

func TestG2PKeepsPunctuationDropsSpaces(t *testing.T) {
	e := newTestEnglish()
	phones, _ := e.G2P("Hello, world")
	assert.Equal(t, []string{"HH", "AH0", "L", "OW1", ",", "W", "ER1", "L", "D"}, phones)
}

func TestG2PFallsBackToModelForUnknownWord(t *testing.T) {
	e := newTestEnglish()
	phones, word2ph := e.G2P("zbif")
	assert.Equal(t, []string{"Z", "B", "IH1", "F"}, phones)
	assert.Equal(t, []int{4}, word2ph)
}

func TestG2PSingleCharPunctuationPassesThroughWithoutModel(t *testing.T) {
	e := New(dict.EnglishDict{}, nil)
	phones, _ := e.G2P("wow!")
	// "wow" has no dictionary entry and no model is wired, so it drops out;
	// the trailing "!" is a single non-alphanumeric token and survives the
	// alphabet filter literally (spec.md open question 3).
	assert.Equal(t, []string{"!"}, phones)
}

func TestSplitWithDelimiterSingleCharTokens(t *testing.T) {
	got := splitWithDelimiter("foo, bar")
	assert.Equal(t, []string{"foo", ",", " ", "bar"}, got)
}

func TestReplacePhonemesRewritesAndDrops(t *testing.T) {
	got := replacePhonemes([]string{"HH", ";", "@@@", "'"})
	assert.Equal(t, []string{"HH", ",", "-"}, got)
}
