// Package text provides small rune-level helpers shared by the transports
// that feed the counting core.
package text

import "unicode/utf8"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Multi-byte characters such as Japanese, Chinese and emoji count as one each,
// which is the same unit the counting core uses for indices.
//
// Examples:
//
//	CountRunes("hello")      // returns 5
//	CountRunes("こんにちは")  // returns 5
//	CountRunes("hello世界")  // returns 7
//	CountRunes("")           // returns 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// ParseTargets turns a target string such as "ol" into a target set.
// Order and duplicates are preserved; each duplicate counts separately.
// The empty string yields an empty, non-nil set.
func ParseTargets(chars string) []rune {
	targets := make([]rune, 0, utf8.RuneCountInString(chars))
	for _, r := range chars {
		targets = append(targets, r)
	}
	return targets
}
