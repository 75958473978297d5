package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryRunes = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	queryLiteralRegex    = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// formatDBQueryForTrace collapses whitespace and replaces quoted literals with '?' so span
// attributes never carry user data. Long statements are cut at a rune boundary.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	query = queryLiteralRegex.ReplaceAllString(query, "'?'")
	query = queryWhitespaceRegex.ReplaceAllString(query, " ")
	if utf8.RuneCountInString(query) <= maxTracedQueryRunes {
		return query
	}

	runes := []rune(query)
	return string(runes[:maxTracedQueryRunes]) + "..."
}
