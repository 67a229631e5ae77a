package graph

import "unicode/utf8"

// Label length limits, in characters, for labels built from free text.
const (
	DescriptionLabelLimit = 50
	MetricLabelLimit      = 40
)

// truncationSuffix is appended to labels that were cut short. It is not
// counted against the limit.
const truncationSuffix = "..."

// Truncate shortens s to at most limit characters, appending "..." when
// anything was cut. Characters are counted as runes.
func Truncate(s string, limit int) string {
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + truncationSuffix
}
