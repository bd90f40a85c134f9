package pinyin

import "regexp"

// finals is the canonical set of Mandarin finals once a zero-consonant
// prefix (y-/w-) has been peeled off and iu/ui/un/v have been restored to
// their "original" iou/uei/uen/ü spelling. Used only to validate a
// strict-mode split, never as phoneme output.
var finals = map[string]struct{}{
	"i": {}, "u": {}, "ü": {}, "a": {}, "ia": {}, "ua": {}, "o": {}, "uo": {}, "e": {}, "ie": {},
	"üe": {}, "ai": {}, "uai": {}, "ei": {}, "uei": {}, "ao": {}, "iao": {}, "ou": {}, "iou": {},
	"an": {}, "ian": {}, "uan": {}, "üan": {}, "en": {}, "in": {}, "uen": {}, "ün": {}, "ang": {},
	"iang": {}, "uang": {}, "eng": {}, "ing": {}, "ueng": {}, "ong": {}, "iong": {}, "er": {}, "ê": {},
}

var uTones = map[rune]struct{}{'ū': {}, 'u': {}, 'ǔ': {}, 'ú': {}, 'ù': {}}
var iTones = map[rune]struct{}{'i': {}, 'ǐ': {}, 'í': {}, 'ī': {}, 'ì': {}}

var (
	reUV = regexp.MustCompile(`^(j|q|x)(u|ū|ú|ǔ|ù)(.*)$`)
	reIU = regexp.MustCompile(`^([a-z]+)(iǔ|iū|iu|iù|iú)$`)
	reUI = regexp.MustCompile(`([a-z]+)(ui|uí|uì|uǐ|uī)$`)
	reUN = regexp.MustCompile(`([a-z]+)(ǔn|ún|ùn|un|ūn)$`)
)

var iuMap = map[string]string{"iu": "iou", "iū": "ioū", "iú": "ioú", "iǔ": "ioǔ", "iù": "ioù"}
var uiMap = map[string]string{"ui": "uei", "uī": "ueī", "uí": "ueí", "uǐ": "ueǐ", "uì": "ueì"}
var unMap = map[string]string{"un": "uen", "ūn": "ūen", "ún": "úen", "ǔn": "ǔen", "ùn": "ùen"}
var uvMap = map[string]string{"u": "ü", "ū": "ǖ", "ú": "ǘ", "ǔ": "ǚ", "ù": "ǜ"}

// replaceWithMap applies re against input, replacing the last capture
// group via table and re-assembling the surrounding groups untouched.
func replaceWithMap(re *regexp.Regexp, table map[string]string, input string) string {
	return replaceAllSubmatchFunc(re, input, func(groups []string) string {
		m2 := groups[2]
		repl, ok := table[m2]
		if !ok {
			repl = m2
		}
		out := groups[1] + repl
		if len(groups) > 3 {
			out += groups[3]
		}
		return out
	})
}

// convertZeroConsonant restores the canonical final spelling for a
// zero-initial syllable written with its y-/w- glide, e.g. "ying" -> "ing",
// "wu" -> "u", "yue" -> "üe".
func convertZeroConsonant(py string) string {
	raw := py
	runes := []rune(py)
	if len(runes) == 0 {
		return py
	}
	switch runes[0] {
	case 'y':
		rest := string(runes[1:])
		restRunes := []rune(rest)
		if len(restRunes) == 0 {
			py = "i" + rest
		} else if _, ok := uTones[restRunes[0]]; ok {
			uv := uvMap[string(restRunes[0])]
			py = uv + string(restRunes[1:])
		} else if _, ok := iTones[restRunes[0]]; ok {
			py = rest
		} else {
			py = "i" + rest
		}
	case 'w':
		rest := string(runes[1:])
		restRunes := []rune(rest)
		if len(restRunes) > 0 {
			if _, ok := uTones[restRunes[0]]; ok {
				py = rest
			} else {
				py = "u" + rest
			}
		} else {
			py = "u" + rest
		}
	}
	if _, ok := finals[py]; ok {
		return py
	}
	return raw
}

// convertFinals restores a syllable's "original" final spelling: drops the
// zero-initial glide and reverses the iu/ui/un/u contraction conventions.
// Used only by strict-mode final validation.
func convertFinals(py string) string {
	py = convertZeroConsonant(py)
	py = replaceWithMap(reUV, uvMap, py)
	py = replaceWithMap(reIU, iuMap, py)
	py = replaceWithMap(reUI, uiMap, py)
	py = replaceWithMap(reUN, unMap, py)
	return py
}
