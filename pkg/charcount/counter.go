package charcount

// Parameter names reported in argument errors.
const (
	ParamStr        = "str"
	ParamTargets    = "targets"
	ParamStartIndex = "startIndex"
	ParamEndIndex   = "endIndex"
	ParamLimit      = "limit"
)

const (
	msgExceedsLength  = "startIndex or endIndex exceed string length"
	msgEndNotPositive = "endIndex is zero or negative"
	msgLimitNegative  = "limit is negative"
	msgOutOfBounds    = "index is outside the bounds of the string"
)

// Count returns the number of positions in str whose character appears in
// targets. An empty str or an empty target set yields 0 without range
// validation; otherwise the whole string [0, len-1] is scanned.
func Count(str string, targets []rune) (int, error) {
	if targets == nil {
		return 0, NullArgument(ParamTargets)
	}

	runes := []rune(str)
	if len(runes) == 0 || len(targets) == 0 {
		return 0, nil
	}

	return countRunes(runes, targets, 0, len(runes)-1, len(runes)*len(targets))
}

// CountInRange counts target occurrences within str[startIndex..endIndex].
// The limit applied is len(str)*len(targets), which can never bind.
func CountInRange(str string, targets []rune, startIndex, endIndex int) (int, error) {
	if targets == nil {
		return 0, NullArgument(ParamTargets)
	}

	runes := []rune(str)
	return countRunes(runes, targets, startIndex, endIndex, len(runes)*len(targets))
}

// CountInRangeWithLimit counts target occurrences within
// str[startIndex..endIndex], stopping once limit matches have been counted.
// Earlier positions consume the limit first.
func CountInRangeWithLimit(str string, targets []rune, startIndex, endIndex, limit int) (int, error) {
	if targets == nil {
		return 0, NullArgument(ParamTargets)
	}

	return countRunes([]rune(str), targets, startIndex, endIndex, limit)
}

// ScanCharWithLimit returns how many entries of targets equal letter, capped
// so that countSoFar plus the result never exceeds limit. The result is never
// negative.
func ScanCharWithLimit(letter rune, targets []rune, countSoFar, limit int) (int, error) {
	if targets == nil {
		return 0, NullArgument(ParamTargets)
	}

	return scanChar(letter, targets, countSoFar, limit), nil
}

func countRunes(runes, targets []rune, startIndex, endIndex, limit int) (int, error) {
	if startIndex > len(runes) || endIndex > len(runes) {
		return 0, IndexOutOfRange(ParamStartIndex, msgExceedsLength)
	}
	if endIndex <= 0 {
		return 0, IndexOutOfRange(ParamEndIndex, msgEndNotPositive)
	}
	if limit < 0 {
		return 0, InvalidArgument(ParamLimit, msgLimitNegative)
	}

	if len(runes) == 0 || startIndex > endIndex {
		return 0, nil
	}

	// Every position in the range is read, so both ends must be real indices.
	if startIndex < 0 {
		return 0, IndexOutOfRange(ParamStartIndex, msgOutOfBounds)
	}
	if endIndex >= len(runes) {
		return 0, IndexOutOfRange(ParamEndIndex, msgOutOfBounds)
	}

	total := 0
	for i := startIndex; i <= endIndex && total < limit; i++ {
		total += scanChar(runes[i], targets, total, limit)
	}
	return total, nil
}

func scanChar(letter rune, targets []rune, countSoFar, limit int) int {
	n := 0
	for _, t := range targets {
		if countSoFar+n >= limit {
			break
		}
		if t == letter {
			n++
		}
	}
	return n
}
