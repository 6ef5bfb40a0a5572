package textutil

import "strings"

// Ellipsis marks text shortened by Prefix and Snippet.
const Ellipsis = "..."

// truncate returns the first limit runes of text followed by Ellipsis. Text
// that already fits is returned unchanged; a non-positive limit yields "".
func truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + Ellipsis
}

// Prefix returns the first limit runes of text with Ellipsis always
// appended. Used where a fixed marker follows the value regardless of length.
func Prefix(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + Ellipsis
}

// Snippet collapses whitespace runs into single spaces and truncates the
// result to limit runes.
func Snippet(text string, limit int) string {
	return truncate(strings.Join(strings.Fields(text), " "), limit)
}
