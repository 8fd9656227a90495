package numeric

import (
	"regexp"
	"strconv"
	"strings"
)

// Shape tests for exact 3-digit grouping. A 2-digit decimal comma ("3,14")
// must not match, so the group arity is strict.
var (
	usGroupedPattern = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+$`)
	euGroupedPattern = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)
	commaDecimal     = regexp.MustCompile(`^-?\d*,\d+$`)
)

// Parse resolves a locale-ambiguous numeric string to a float64. The second
// return value is false when the string is not a number; Parse never panics.
//
// Resolution order matters: when both separators appear, whichever occurs
// last in the string is the decimal point. With a single separator, an exact
// 1-3 digit head followed by 3-digit groups is read as grouping; anything
// else falls back to the separator's decimal reading.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		lastComma := strings.LastIndex(s, ",")
		lastDot := strings.LastIndex(s, ".")
		var normalized string
		if lastComma > lastDot {
			// comma is the decimal separator, dots are grouping
			normalized = strings.ReplaceAll(s, ".", "")
			normalized = strings.ReplaceAll(normalized, ",", ".")
		} else {
			// dot is the decimal separator, commas are grouping
			normalized = strings.ReplaceAll(s, ",", "")
		}
		return parseFloat(normalized)

	case hasComma:
		if usGroupedPattern.MatchString(s) {
			return parseFloat(strings.ReplaceAll(s, ",", ""))
		}
		if commaDecimal.MatchString(s) {
			return parseFloat(strings.ReplaceAll(s, ",", "."))
		}
		return 0, false

	case hasDot:
		if euGroupedPattern.MatchString(s) {
			return parseFloat(strings.ReplaceAll(s, ".", ""))
		}
		return parseFloat(s)

	default:
		return parseFloat(s)
	}
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
