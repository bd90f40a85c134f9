package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/symbols"
)

func TestPairContractsRestoredFinals(t *testing.T) {
	_, f := Pair("n", "iou2")
	assert.Equal(t, "iu2", f)

	_, f = Pair("g", "uei1")
	assert.Equal(t, "ui1", f)

	_, f = Pair("l", "uen4")
	assert.Equal(t, "un4", f)
}

func TestPairApicalVowelDisambiguation(t *testing.T) {
	_, f := Pair("zh", "i1")
	assert.Equal(t, "ir1", f)

	_, f = Pair("r", "i4")
	assert.Equal(t, "ir4", f)

	_, f = Pair("z", "i4")
	assert.Equal(t, "i04", f)

	_, f = Pair("s", "i1")
	assert.Equal(t, "i01", f)

	_, f = Pair("b", "i4")
	assert.Equal(t, "i4", f)
}

func TestPairDefaultsToNeutralTone(t *testing.T) {
	_, f := Pair("m", "a")
	assert.Equal(t, "a5", f)
}

func TestPairZeroInitialGlideSynthesis(t *testing.T) {
	i, f := Pair("", "iou1")
	assert.Equal(t, "y", i)
	assert.Equal(t, "ou1", f)

	i, f = Pair("", "ia1")
	assert.Equal(t, "y", i)
	assert.Equal(t, "a1", f)

	i, f = Pair("", "i2")
	assert.Equal(t, "y", i)
	assert.Equal(t, "i2", f)

	i, f = Pair("", "in1")
	assert.Equal(t, "y", i)
	assert.Equal(t, "in1", f)

	i, f = Pair("", "ing2")
	assert.Equal(t, "y", i)
	assert.Equal(t, "ing2", f)

	i, f = Pair("", "u3")
	assert.Equal(t, "w", i)
	assert.Equal(t, "u3", f)

	i, f = Pair("", "uang2")
	assert.Equal(t, "w", i)
	assert.Equal(t, "ang2", f)

	i, f = Pair("", "uo4")
	assert.Equal(t, "w", i)
	assert.Equal(t, "o4", f)

	i, f = Pair("", "ve4")
	assert.Equal(t, "y", i)
	assert.Equal(t, "ve4", f)

	i, f = Pair("", "van2")
	assert.Equal(t, "y", i)
	assert.Equal(t, "van2", f)

	// a, o, e, ai, ei, ao, ou, an, en, ang, eng, er, ong take no glide.
	i, f = Pair("", "an4")
	assert.Equal(t, "", i)
	assert.Equal(t, "an4", f)

	i, f = Pair("", "er2")
	assert.Equal(t, "", i)
	assert.Equal(t, "er2", f)
}

func TestPairOutputIsInAlphabet(t *testing.T) {
	cases := []struct{ initial, final string }{
		{"zh", "ong1"}, {"n", "iou2"}, {"g", "uei1"}, {"l", "uen4"},
		{"j", "v2"}, {"", "a1"}, {"z", "i4"}, {"r", "i4"}, {"q", "ve1"},
		{"", "iou1"}, {"", "ia1"}, {"", "u3"}, {"", "uang2"}, {"", "i2"},
	}
	for _, c := range cases {
		i, f := Pair(c.initial, c.final)
		if i != "" {
			assert.True(t, symbols.Contains(i), "initial %q not in alphabet", i)
		}
		assert.True(t, symbols.Contains(f), "final %q not in alphabet", f)
	}
}
