package english

import "testing"

func TestNormalizeNumbersCases(t *testing.T) {
	cases := []struct{ in, want string }{
		{"123", "one hundred and twenty three"},
		{"2,500", "twenty five hundred"},
		{"2000", "two thousand"},
		{"2005", "two thousand five"},
		{"1500", "one thousand five hundred"},
		{"25.3", "twenty five point three"},
		{"23rd", "twenty three"},
		{"1st", "one"},
		{"£23", "twenty three pounds"},
		{"£9.99", "nine point ninety nine pounds"},
		{"$1", "one dollar"},
		{"$2.15", "two dollars, fifteen cents"},
		{"$0.1", "ten cents"},
		{"$0.5", "fifty cents"},
		{"$0.001", "zero dollars"},
		{"$0.01", "one cent"},
		{"$1.01", "one dollar, one cent"},
		{"$1.5", "one dollar, fifty cents"},
		{"$2500", "twenty five hundred dollars"},
	}
	for _, c := range cases {
		if got := normalizeNumbers(c.in); got != c.want {
			t.Errorf("normalizeNumbers(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCardinalToWords(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{7, "seven"},
		{19, "nineteen"},
		{20, "twenty"},
		{25, "twenty five"},
		{100, "one hundred"},
		{123, "one hundred and twenty three"},
		{1000, "one thousand"},
		{1234, "one thousand, two hundred and thirty four"},
		{-5, "negative five"},
	}
	for _, c := range cases {
		if got := cardinalToWords(c.n); got != c.want {
			t.Errorf("cardinalToWords(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
