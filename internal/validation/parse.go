package validation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberPrefix matches the longest decimal literal at the start of a string.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// isJSSpace reports whether r is skipped before a number: the space
// separators plus tab, line terminators, vertical tab, form feed and the
// byte order mark. U+0085 is not among them.
func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func trimLeadingSpace(s string) string {
	return strings.TrimLeftFunc(s, isJSSpace)
}

// ParseNumber reads a number from the start of s, ignoring anything after
// the numeric prefix ("3abc" is 3, "1e3x" is 1000).
//
// It reports false when there is no prefix or the value is not finite.
func ParseNumber(s string) (float64, bool) {
	literal := numberPrefix.FindString(trimLeadingSpace(s))
	if literal == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

// ParseInteger reads an integer from the start of s: an optional sign,
// an optional 0x/0X hexadecimal marker, then the longest run of digits
// ("3.7" is 3, "0x10" is 16).
//
// Values beyond int64 saturate. It reports false when no digit is found.
func ParseInteger(s string) (int64, bool) {
	s = trimLeadingSpace(s)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	digits := s[:end]
	if negative {
		digits = "-" + digits
	}

	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	return n, true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
