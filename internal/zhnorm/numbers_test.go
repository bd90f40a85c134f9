package zhnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceNumber(t *testing.T) {
	assert.Equal(t, "二千零四", replaceNumber("2004"))
	assert.Equal(t, "二千零一十四", replaceNumber("2014"))
	assert.Equal(t, "负二千零一十四", replaceNumber("-2014"))
	assert.Equal(t, "零", replaceNumber("0"))
	assert.Equal(t, "零零零幺二三", replaceNumber("000123"))
	assert.Equal(t, "十二亿三千四百五十六万七千八百九十", replaceNumber("1234567890"))
	assert.Equal(t, "零零零", replaceNumber("-000"))
}

func TestReplaceFrac(t *testing.T) {
	assert.Equal(t, "负三分之一", replaceFrac("-1/3"))
	assert.Equal(t, "二分之三", replaceFrac("3/2"))
	assert.Equal(t, "一分之零", replaceFrac("0/1"))
}

func TestReplacePercentage(t *testing.T) {
	assert.Equal(t, "百分之五十", replacePercentage("50%"))
	assert.Equal(t, "负百分之一百", replacePercentage("-100%"))
}

func TestReplaceRange(t *testing.T) {
	assert.Equal(t, "一点二到三点四", replaceRange("1.2~3.4"))
	assert.Equal(t, "零到一百", replaceRange("0~100"))
}

func TestVerbalizeCardinal(t *testing.T) {
	assert.Equal(t, "零幺二三", verbalizeCardinal("0123", true))
	assert.Equal(t, "一亿二千三百四十五万六千七百八十九", verbalizeCardinal("123456789", true))
	assert.Equal(t, "一万零一", verbalizeCardinal("10001", true))
}

func TestNormalizeNumbersSequence(t *testing.T) {
	assert.Equal(t, "零幺二三", NormalizeNumbers("0123"))
	assert.Equal(t, "幺二三四五六七八九零幺二三四", NormalizeNumbers("12345678901234"))
	assert.Equal(t, "十二亿三千四百五十六万七千八百九十", NormalizeNumbers("1234567890"))
}

func TestNormalizeNumbersCases(t *testing.T) {
	cases := map[string]string{
		"123":     "一百二十三",
		"0123":    "零幺二三",
		"0":       "零",
		"-123":    "负一百二十三",
		"123.45":  "一百二十三点四五",
		"0.001":   "零点零零一",
		"1/2":     "二分之一",
		"50%":     "百分之五十",
		"1~10":    "一到十",
		"1e3":     "一千",
		"1.23e4":  "一万二千三百",
		"0e0":     "零",
		"~":       "~",
		"-":       "-",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeNumbers(in), "input %q", in)
	}
}
