package zhnorm

import (
	"regexp"
	"strings"
)

// replaceAllSubmatchFunc is the Go stand-in for Rust's Regex::replace_all
// with a Captures-based closure: group(0) is always the whole match,
// group(i) for i>0 mirrors Rust's caps.get(i), empty string when the
// alternative didn't participate.
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, idx := range matches {
		b.WriteString(s[last:idx[0]])
		groups := make([]string, len(idx)/2)
		for i := 0; i < len(idx)/2; i++ {
			if idx[2*i] == -1 {
				groups[i] = ""
			} else {
				groups[i] = s[idx[2*i]:idx[2*i+1]]
			}
		}
		b.WriteString(repl(groups))
		last = idx[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
