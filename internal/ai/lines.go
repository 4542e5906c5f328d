package ai

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var listMarker = regexp.MustCompile(`^\s*(?:[-*•●▪–—]+|\d+[.):]|\(\d+\))\s*`)

// ParseLines splits a free-text reply into list entries. Leading bullet or
// number markers and wrapping quotes are removed. Preamble lines ending in a
// colon, entries without letters or digits and entries shorter than minLen
// runes after cleanup are dropped. An empty result means the reply is unusable.
func ParseLines(raw string, minLen int) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = listMarker.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		line = strings.Trim(line, `"`)
		line = strings.TrimSpace(strings.Trim(line, "*"))
		if strings.HasSuffix(line, ":") || !hasAlnum(line) || utf8.RuneCountInString(line) < minLen {
			continue
		}
		out = append(out, line)
	}

	return out
}

func hasAlnum(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// Limit returns at most n leading entries of items.
func Limit(items []string, n int) []string {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
