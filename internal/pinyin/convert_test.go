package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertFinalsCommonPinyin(t *testing.T) {
	assert.Equal(t, "niou", convertFinals("niu"))
	assert.Equal(t, "guei", convertFinals("gui"))
	assert.Equal(t, "luen", convertFinals("lun"))
	assert.Equal(t, "jü", convertFinals("ju"))
	assert.Equal(t, "qü", convertFinals("qu"))
	assert.Equal(t, "xü", convertFinals("xu"))
}

func TestConvertFinalsZeroConsonant(t *testing.T) {
	assert.Equal(t, "iou", convertFinals("you"))
	assert.Equal(t, "u", convertFinals("wu"))
	assert.Equal(t, "i", convertFinals("yi"))
	assert.Equal(t, "ia", convertFinals("ya"))
	assert.Equal(t, "we", convertFinals("we"))
}

func TestConvertFinalsSpecialCases(t *testing.T) {
	assert.Equal(t, "üe", convertFinals("yue"))
	assert.Equal(t, "üan", convertFinals("yuan"))
	assert.Equal(t, "lü", convertFinals("lü"))
	assert.Equal(t, "nü", convertFinals("nü"))
}

func TestConvertFinalsEdgeCases(t *testing.T) {
	assert.Equal(t, "", convertFinals(""))
	assert.Equal(t, "a", convertFinals("a"))
	assert.Equal(t, "i", convertFinals("i"))
	assert.Equal(t, "u", convertFinals("u"))
	assert.Equal(t, "zzz", convertFinals("zzz"))
}

func TestConvertFinalsMixedCases(t *testing.T) {
	assert.Equal(t, "jia", convertFinals("jia"))
	assert.Equal(t, "ian", convertFinals("yan"))
	assert.Equal(t, "wuen", convertFinals("wun"))
	assert.Equal(t, "jüi", convertFinals("jui"))
	assert.Equal(t, "xün", convertFinals("xun"))
}
