package service

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	cipherBase     = 'A'
	alphabetLength = 26
)

// CaesarShift upper-cases text and shifts every character in
// ['A', 'A'+26] by shift positions modulo 26.
//
// The range is inclusive on both ends, so '[' (one past 'Z') is shifted as
// well. The modulo truncates like the % operator: a negative shift that
// goes below 'A' is not wrapped and yields a character before 'A'.
// Everything else passes through unchanged and in place.
func CaesarShift(text string, shift float64) string {
	// A Caser is stateful, one per call.
	upper := cases.Upper(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(upper))

	for _, r := range upper {
		if r < cipherBase || r > cipherBase+alphabetLength {
			b.WriteRune(r)
			continue
		}

		diff := math.Mod(float64(r-cipherBase)+shift, alphabetLength)
		b.WriteRune(rune(math.Trunc(cipherBase + diff)))
	}

	return b.String()
}
