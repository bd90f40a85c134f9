package pinyin

import (
	"regexp"
	"strings"
)

// Style selects which slice of a toned pinyin syllable convertStyle keeps:
// the bare initial consonant, or the final plus its tone digit.
type Style int

const (
	// StyleInitials returns only a syllable's initial consonant, e.g.
	// "zhong1" -> "zh".
	StyleInitials Style = iota
	// StyleInitialsTone3 returns the final plus a trailing tone digit
	// (defaulting to 5, neutral, when the syllable carried none), e.g.
	// "zhong1" -> "ong1".
	StyleInitialsTone3
)

var phoneticSymbolDict = map[string]string{
	"ā": "a1", "á": "a2", "ǎ": "a3", "à": "a4",
	"ē": "e1", "é": "e2", "ě": "e3", "è": "e4",
	"ō": "o1", "ó": "o2", "ǒ": "o3", "ò": "o4",
	"ī": "i1", "í": "i2", "ǐ": "i3", "ì": "i4",
	"ū": "u1", "ú": "u2", "ǔ": "u3", "ù": "u4",
	"ü": "v", "ǖ": "v1", "ǘ": "v2", "ǚ": "v3", "ǜ": "v4",
	"ń": "n2", "ň": "n3", "ǹ": "n4",
	"ê̄": "ê1", "ế": "ê2", "ê̌": "ê3", "ề": "ê4",
}

var rePhoneticSymbol = regexp.MustCompile(`[āáǎàēéěèōóǒòīíǐìūúǔùüǖǘǚǜńňǹḿếề]`)
var reNumber = regexp.MustCompile(`\d`)

// initialsStrict lists candidates in the upstream's original order; since
// getInitials scans in order and zh/ch/sh must win over their bare-letter
// prefixes, those checks below try the two-letter initials first.
var initialsStrict = []string{
	"zh", "ch", "sh", "b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h", "j", "q", "x",
	"r", "z", "c", "s",
}

var initialsNotStrict = append(append([]string{}, initialsStrict...), "y", "w")

// replaceSymbolToNumber converts tone-diacritic vowels to a trailing digit,
// e.g. "zhōng" -> "zho1ng".
func replaceSymbolToNumber(py string) string {
	for symbol, to := range phoneticSymbolDict {
		py = strings.ReplaceAll(py, symbol, to)
	}
	return py
}

func replaceSymbolToNoSymbol(py string) string {
	return reNumber.ReplaceAllString(replaceSymbolToNumber(py), "")
}

// getInitials returns the initial consonant of a bare (tone-stripped)
// pinyin syllable, trying the longest candidates (zh/ch/sh) first.
func getInitials(py string, strict bool) string {
	candidates := initialsNotStrict
	if strict {
		candidates = initialsStrict
	}
	for _, i := range candidates {
		if strings.HasPrefix(py, i) {
			return i
		}
	}
	return ""
}

func getFinals(py string, strict bool) string {
	if strict {
		py = convertFinals(py)
	}
	initials := getInitials(py, strict)
	runes := []rune(py)
	finalRunes := runes[len([]rune(initials)):]
	final := string(finalRunes)

	if strict {
		if _, ok := finals[final]; !ok {
			initials = getInitials(py, false)
			finalRunes = runes[len([]rune(initials)):]
			final = string(finalRunes)
			if _, ok := finals[final]; ok {
				return final
			}
			return ""
		}
		return final
	}
	if final == "" {
		return py
	}
	return final
}

func toFinals(py string, strict bool, vToU bool) string {
	newPy := strings.ReplaceAll(replaceSymbolToNoSymbol(py), "v", "ü")
	final := getFinals(newPy, strict)
	if vToU {
		return strings.ReplaceAll(final, "v", "ü")
	}
	return strings.ReplaceAll(final, "ü", "v")
}

// toInitialsTone3 converts a toned syllable (tone mark, tone2, or tone3
// style) to the InitialsTone3 style: the final plus a trailing tone digit.
func toInitialsTone3(py string, strict bool, vToU bool, neutralToneWithFive bool) string {
	py = strings.ReplaceAll(py, "5", "")
	final := toFinals(py, strict, vToU)
	if final == "" {
		return final
	}

	pinyinWithNum := replaceSymbolToNumber(py)
	numbers := reNumber.FindAllString(pinyinWithNum, -1)
	if len(numbers) == 0 {
		if neutralToneWithFive {
			return final + "5"
		}
		return final
	}
	return final + numbers[0]
}

func postConvertStyle(converted string, style Style, neutralToneWithFive bool) string {
	if style == StyleInitialsTone3 && neutralToneWithFive && !reNumber.MatchString(converted) {
		return converted + "5"
	}
	return converted
}

// convertStyle applies a pinyin style conversion to one syllable, as read
// verbatim from the teacher's phrase/char dictionaries.
func convertStyle(origPinyin string, style Style, strict bool) string {
	var converted string
	switch style {
	case StyleInitialsTone3:
		converted = toInitialsTone3(origPinyin, strict, false, false)
	case StyleInitials:
		converted = getInitials(origPinyin, strict)
	}
	return postConvertStyle(converted, style, true)
}
