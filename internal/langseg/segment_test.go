package langseg

import "testing"

func spansEqual(t *testing.T, got []Span, want []Span) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d spans %+v, want %d spans %+v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("span %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDetectLanguageMixed(t *testing.T) {
	s := New()
	got := s.DetectLanguage("包含Google的")
	spansEqual(t, got, []Span{
		{Lang: LangChinese, Text: "包含"},
		{Lang: LangEnglish, Text: "Google"},
		{Lang: LangChinese, Text: "的"},
	})
}

func TestDetectLanguagePureDigitsDefaultsChinese(t *testing.T) {
	s := New()
	got := s.DetectLanguage("12345")
	spansEqual(t, got, []Span{{Lang: LangChinese, Text: "12345"}})
}

func TestDetectLanguagePureEnglish(t *testing.T) {
	s := New()
	got := s.DetectLanguage("Hello world")
	spansEqual(t, got, []Span{{Lang: LangEnglish, Text: "Hello world"}})
}

func TestReplaeAzRangeChinese(t *testing.T) {
	s := New()
	if got := s.replaeAzRange("a-z", LangChinese); got != "a至z" {
		t.Errorf("replaeAzRange = %q, want %q", got, "a至z")
	}
}

func TestReplaeAzRangeEnglish(t *testing.T) {
	s := New()
	if got := s.replaeAzRange("a-z", LangEnglish); got != "a to z" {
		t.Errorf("replaeAzRange = %q, want %q", got, "a to z")
	}
}

func TestZhEnSegSplitsAlphanumericRuns(t *testing.T) {
	s := New()
	got := s.zhEnSeg("包含Google的", LangChinese)
	spansEqual(t, got, []Span{
		{Lang: LangChinese, Text: "包含"},
		{Lang: LangEnglish, Text: "Google"},
		{Lang: LangChinese, Text: "的"},
	})
}

func TestZhEnSegNoOpWithoutBothScripts(t *testing.T) {
	s := New()
	got := s.zhEnSeg("Google", LangEnglish)
	spansEqual(t, got, []Span{{Lang: LangEnglish, Text: "Google"}})
}

func TestSplitOnPunctuation(t *testing.T) {
	s := New()
	got := s.split("你好，世界。")
	want := []string{"你好，", "世界。"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("piece %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitAppendsTrailingStop(t *testing.T) {
	s := New()
	got := s.split("没有标点")
	want := []string{"没有标点。"}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCut3SplitsLongSentenceOnComma(t *testing.T) {
	s := New()
	got := s.cut3("短句。很长很长很长很长很长的句子，用逗号分割", 10)
	want := "短句\n很长很长很长很长很长的句子\n用逗号分割"
	if got != want {
		t.Errorf("cut3 = %q, want %q", got, want)
	}
}

func TestMergeShortTextInArray(t *testing.T) {
	s := New()
	got := s.mergeShortTextInArray([]string{"ab", "cd", "ef", "gh"}, 5)
	want := []string{"abcdefgh"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("piece %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMergeShortTextInArraySingleElementPassesThrough(t *testing.T) {
	s := New()
	got := s.mergeShortTextInArray([]string{"only"}, 5)
	if len(got) != 1 || got[0] != "only" {
		t.Errorf("got %v, want [only]", got)
	}
}

func TestCutTextsShortInputStaysWhole(t *testing.T) {
	s := New()
	got := s.CutTexts("你好世界。", 30)
	if len(got) != 1 || got[0] != "你好世界" {
		t.Errorf("CutTexts = %v, want [你好世界]", got)
	}
}

func TestCutTextsEmptyInputYieldsEmptyList(t *testing.T) {
	s := New()
	if got := s.CutTexts("", 30); len(got) != 0 {
		t.Errorf("CutTexts(\"\") = %v, want empty list", got)
	}
	if got := s.CutTexts("   ", 30); len(got) != 0 {
		t.Errorf("CutTexts(whitespace) = %v, want empty list", got)
	}
}
