package zhnorm

import (
	"regexp"
	"strings"
)

// Go's RE2 engine has no lookaround, so the "not preceded/followed by a
// digit" boundary the original regexes express via (?<!\d)/(?!\d) is
// enforced manually after matching instead.
var (
	reMobilePhone     = regexp.MustCompile(`(\+?86 ?)?1([38]\d|5[0-35-9]|7[678]|9[89]) ?\d{4} ?\d{4}`)
	reTelephone       = regexp.MustCompile(`(0(10|2[1-3]|[3-9]\d{2})-?)?[1-9]\d{6,7}`)
	reNationalUniform = regexp.MustCompile(`400(-)?\d{3}(-)?\d{4}`)
)

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// replaceDigitBounded mimics replace_all on a pattern wrapped in
// (?<!\d)...(?!\d): a match is discarded (left untouched) if immediately
// preceded or followed by another digit.
func replaceDigitBounded(re *regexp.Regexp, s string, repl func(match string) string) string {
	locs := re.FindAllStringIndex(s, -1)
	if locs == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start < last {
			continue
		}
		if start > 0 && isDigitByte(s[start-1]) {
			continue
		}
		if end < len(s) && isDigitByte(s[end]) {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(repl(s[start:end]))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// phone2str verbalizes a matched phone-number string digit group by
// digit group, joining groups with "，".
func phone2str(phoneStr string, mobile bool) string {
	var parts []string
	if mobile {
		parts = strings.Fields(strings.TrimPrefix(phoneStr, "+"))
	} else {
		parts = strings.Split(phoneStr, "-")
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = verbalizeDigits(p, true)
	}
	return strings.Join(out, "，")
}

// NormalizePhoneCodes verbalizes mobile numbers, telephone numbers (with
// optional area code), and 400-hotline numbers.
func NormalizePhoneCodes(s string) string {
	s = replaceDigitBounded(reMobilePhone, s, func(m string) string { return phone2str(m, true) })
	s = replaceDigitBounded(reTelephone, s, func(m string) string { return phone2str(m, false) })
	s = reNationalUniform.ReplaceAllStringFunc(s, func(m string) string { return phone2str(m, false) })
	return s
}
