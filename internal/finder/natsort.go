package finder

import (
	"slices"
	"strings"
)

// sortNatural orders paths so that embedded numeric runs compare as numbers
// rather than text: file2 sorts before file10.
func sortNatural(paths []string) {
	slices.SortStableFunc(paths, compareNatural)
}

// compareNatural compares two strings run by run, where a run is a maximal
// sequence of digits or of non-digits. Digit runs compare numerically,
// non-digit runs lexically. Equal run sequences fall back to a plain string
// compare so ordering stays total ("01" vs "1").
func compareNatural(a, b string) int {
	ra, rb := a, b
	for ra != "" && rb != "" {
		runA, digitA := nextRun(ra)
		runB, digitB := nextRun(rb)

		var c int
		if digitA && digitB {
			c = compareNumeric(runA, runB)
		} else {
			c = strings.Compare(runA, runB)
		}
		if c != 0 {
			return c
		}

		ra = ra[len(runA):]
		rb = rb[len(runB):]
	}
	if c := len(ra) - len(rb); c != 0 {
		if c < 0 {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// nextRun returns the leading digit or non-digit run of s and whether it
// consists of digits. s must be non-empty.
func nextRun(s string) (string, bool) {
	digit := isDigit(s[0])
	for i := 1; i < len(s); i++ {
		if isDigit(s[i]) != digit {
			return s[:i], digit
		}
	}
	return s, digit
}

// compareNumeric compares two digit runs as unbounded integers: strip
// leading zeros, then shorter means smaller, then lexical.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
