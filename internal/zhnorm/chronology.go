package zhnorm

import (
	"regexp"
	"strings"
)

var (
	reDate      = regexp.MustCompile(`(\d{4}|\d{2})年((1[0-2]|0?[1-9])月)?(([12]\d|30|31|0?[1-9])([日号]))?`)
	reDate2     = regexp.MustCompile(`(\d{4}|\d{2})[- /.](1[0-2]|0?[1-9])[- /.]([12]\d|30|31|0?[1-9])([日号])?`)
	reTimeRange = regexp.MustCompile(`([01]?\d|2[0-3]):([0-5]\d)(:([0-5]\d))?(~|-)([01]?\d|2[0-3]):([0-5]\d)(:([0-5]\d))?`)
	reTime      = regexp.MustCompile(`([01]?\d|2[0-3]):([0-5]\d)(:([0-5]\d))?`)
)

// NormalizeChronology verbalizes Chinese-style dates, slash/dash dates,
// time ranges, and clock times, in that fixed order.
func NormalizeChronology(s string) string {
	s = replaceDate(s)
	s = replaceDate2(s)
	s = replaceTimeRange(s)
	s = replaceTime(s)
	return s
}

func replaceDate(s string) string {
	return replaceAllSubmatchFunc(reDate, s, func(g []string) string {
		year := ""
		if g[1] != "" {
			year = verbalizeDigits(g[1], false) + "年"
		}
		month := ""
		if g[3] != "" {
			month = verbalizeCardinal(g[3], false) + "月"
		}
		day := ""
		if g[5] != "" {
			suffix := g[6]
			if suffix == "" {
				suffix = "日"
			}
			day = verbalizeCardinal(g[5], false) + suffix
		}
		return year + month + day
	})
}

func replaceDate2(s string) string {
	return replaceAllSubmatchFunc(reDate2, s, func(g []string) string {
		year := ""
		if g[1] != "" {
			year = verbalizeDigits(g[1], false) + "年"
		}
		month := ""
		if g[2] != "" {
			month = verbalizeCardinal(g[2], false) + "月"
		}
		day := ""
		if g[3] != "" {
			suffix := g[4]
			if suffix == "" {
				suffix = "日"
			}
			day = verbalizeCardinal(g[3], false) + suffix
		}
		return year + month + day
	})
}

func timeNum2str(numStr string) string {
	trimmed := strings.TrimLeft(numStr, "0")
	result := num2str(trimmed, false)
	if strings.HasPrefix(numStr, "0") && result != "零" {
		result = "零" + result
	}
	return result
}

func replaceTime(s string) string {
	return replaceWithClock(reTime, s, false)
}

func replaceTimeRange(s string) string {
	return replaceWithClock(reTimeRange, s, true)
}

func replaceWithClock(re *regexp.Regexp, s string, isRange bool) string {
	return replaceAllSubmatchFunc(re, s, func(g []string) string {
		var b strings.Builder
		hour, minute, second := g[1], g[2], g[4]
		if hour != "" {
			b.WriteString(num2str(hour, false))
			b.WriteString("点")
		}
		appendMinuteSecond(&b, minute, second)
		if isRange {
			b.WriteString("至")
			hour2, minute2, second2 := g[6], g[7], g[9]
			if hour2 != "" {
				b.WriteString(num2str(hour2, false))
				b.WriteString("点")
			}
			appendMinuteSecond(&b, minute2, second2)
		}
		return b.String()
	})
}

func appendMinuteSecond(b *strings.Builder, minute, second string) {
	if minute != "" {
		m := timeNum2str(minute)
		switch {
		case m == "三十":
			b.WriteString("半")
		case m != "零":
			b.WriteString(m)
			b.WriteString("分")
		}
	}
	if second != "" {
		b.WriteString(timeNum2str(second))
		b.WriteString("秒")
	}
}
