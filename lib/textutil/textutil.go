package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Clean collapses runs of whitespace into single spaces and trims the ends.
func Clean(s string) string {
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

func RemoveNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// Sanitize normalizes scraped cell text: unicode whitespace (including
// non-breaking spaces) becomes regular spaces, control characters go
// away, and whitespace runs collapse.
func Sanitize(s string) string {
	s = strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return ' '
		}
		return c
	}, s)
	return Clean(RemoveNonPrintable(s))
}

// KeywordHits returns the keywords contained in text, case-insensitively,
// de-duplicated and in the order of the keyword list.
func KeywordHits(text string, keywords []string) []string {
	t := strings.ToLower(text)
	seen := map[string]bool{}
	var hits []string
	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		if strings.Contains(t, strings.ToLower(kw)) {
			seen[kw] = true
			hits = append(hits, kw)
		}
	}
	return hits
}
