package english

import (
	"regexp"
	"strconv"
	"strings"
)

// Number-normalization regexes, applied in this fixed order over the
// whole string at each step (each pass sees the previous pass's output,
// including digit runs a prior pass re-emitted literally) -- ported
// verbatim from english.rs's RE_COMMA_NUMBER/RE_POUNDS/RE_DOLLARS/
// RE_DECIMAL_NUMBER/RE_ORDINAL/RE_NUMBER chain.
var (
	reCommaNumber  = regexp.MustCompile(`[0-9][0-9,]+[0-9]`)
	reDecimalNumber = regexp.MustCompile(`[0-9]+\.[0-9]+`)
	rePounds       = regexp.MustCompile(`£([0-9.,]*[0-9]+)`)
	reDollars      = regexp.MustCompile(`\$([0-9.,]*[0-9]+)`)
	reOrdinal      = regexp.MustCompile(`([0-9]+)(st|nd|rd|th)`)
	reBareNumber   = regexp.MustCompile(`[0-9]+`)
)

var (
	ones = []string{
		"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	scales = []string{"", "thousand", "million", "billion", "trillion"}
)

// normalizeNumbers verbalizes every number-shaped span of text into
// English words: comma-grouped thousands, £/$ amounts, decimals, ordinal
// suffixes, and the remaining bare digit runs -- in that fixed order,
// matching english.rs's normalize_numbers exactly (including the 2000s
// special-casing and the habit of emitting a plain digit string from one
// pass that a later pass re-spells, e.g. the dollar/cent formatter).
func normalizeNumbers(text string) string {
	text = reCommaNumber.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m, ",", "")
	})
	text = rePounds.ReplaceAllStringFunc(text, func(m string) string {
		digits := rePounds.FindStringSubmatch(m)[1]
		return digits + " pounds"
	})
	text = reDollars.ReplaceAllStringFunc(text, func(m string) string {
		digits := reDollars.FindStringSubmatch(m)[1]
		return verbalizeDollarAmount(digits)
	})
	text = reDecimalNumber.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m, ".", " point ")
	})
	text = reOrdinal.ReplaceAllStringFunc(text, func(m string) string {
		g := reOrdinal.FindStringSubmatch(m)
		return cardinalToWords(parseInt(g[1]))
	})
	text = reBareNumber.ReplaceAllStringFunc(text, func(m string) string {
		return verbalizeNumberToken(m)
	})
	return text
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// verbalizeDollarAmount splits a $ capture's digit span on '.' into
// dollars and cents, pluralizes each unit, and emits the raw digit
// strings -- relying on the later bare-number pass to spell them out,
// exactly as the original does.
func verbalizeDollarAmount(digits string) string {
	parts := strings.SplitN(digits, ".", 2)
	dollars := parseInt(parts[0])

	var cents int64
	if len(parts) > 1 {
		c := strings.TrimRight(parts[1], "0")
		if c != "" {
			if len(c) > 2 {
				c = c[:2]
			}
			v := parseInt(c)
			cents = v * pow10(2-len(c))
		}
	}

	switch {
	case dollars == 0 && cents == 0:
		return "zero dollars"
	case cents == 0:
		return strconv.FormatInt(dollars, 10) + " dollar" + plural(dollars)
	case dollars == 0:
		return strconv.FormatInt(cents, 10) + " cent" + plural(cents)
	default:
		return strconv.FormatInt(dollars, 10) + " dollar" + plural(dollars) + ", " +
			strconv.FormatInt(cents, 10) + " cent" + plural(cents)
	}
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func pow10(n int) int64 {
	r := int64(1)
	for i := 0; i < n; i++ {
		r *= 10
	}
	return r
}

// verbalizeNumberToken spells out one bare digit run, special-casing the
// 2000s the way a spoken year normally is (two thousand, two thousand
// five) instead of the generic thousand-grouping a flat cardinal would
// produce.
func verbalizeNumberToken(s string) string {
	n := parseInt(s)
	switch {
	case n == 2000:
		return "two thousand"
	case n >= 2001 && n <= 2009:
		return "two thousand " + cardinalToWords(n%100)
	case n >= 2010 && n <= 2999 && n%100 == 0:
		return cardinalToWords(n/100) + " hundred"
	case n >= 1000 && n <= 2999:
		return strings.ReplaceAll(cardinalToWords(n), ", ", " ")
	default:
		return cardinalToWords(n)
	}
}

// cardinalToWords spells out an integer in full, grouping by thousand/
// million/billion/trillion and joining groups with ", ", each group's
// hundreds digit joined to its tens/ones with "and" (British-style
// cardinal reading, matching english_numbers::convert's
// spaces+conjunctions formatting).
func cardinalToWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	neg := n < 0
	if neg {
		n = -n
	}

	var groups []string
	scaleIdx := 0
	for n > 0 {
		g := int(n % 1000)
		if g > 0 {
			gw := groupToWords(g)
			if scaleIdx > 0 {
				gw += " " + scales[scaleIdx]
			}
			groups = append([]string{gw}, groups...)
		}
		n /= 1000
		scaleIdx++
	}

	result := strings.Join(groups, ", ")
	if neg {
		result = "negative " + result
	}
	return result
}

// groupToWords spells out a value in [1,999].
func groupToWords(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100], "hundred")
		n %= 100
		if n > 0 {
			parts = append(parts, "and")
		}
	}
	switch {
	case n >= 20:
		parts = append(parts, tens[n/10])
		if n%10 > 0 {
			parts = append(parts, ones[n%10])
		}
	case n > 0:
		parts = append(parts, ones[n])
	}
	return strings.Join(parts, " ")
}
