// Package charcount counts occurrences of a set of target characters in a string.
//
// A character is a single Unicode code point. Indices passed to the range
// functions are zero-based rune indices with inclusive endpoints.
//
// Three entry points of increasing specificity share one counting walk:
//
//	n, err := charcount.Count("hello world", []rune("ol"))               // 5
//	n, err := charcount.CountInRange("abcabc", []rune("a"), 0, 5)        // 2
//	n, err := charcount.CountInRangeWithLimit("aaaa", []rune("a"), 0, 3, 2) // 2
//
// A nil target slice is treated as an absent argument and reported with
// ErrNullArgument. An end index of zero is rejected with ErrIndexOutOfRange,
// so a range ending at the first character cannot be requested.
//
// All functions are pure and safe for concurrent use.
package charcount
