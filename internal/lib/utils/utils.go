// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific domain.
package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a float64 the way JavaScript's Number#toString does:
// shortest round-trip digits, plain decimal notation for 1e-6 <= |f| < 1e21
// and exponent notation ("1e+21", "1.5e-7") outside that range.
// Negative zero prints as "0".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		// strconv pads the exponent to two digits ("1.5e-07").
		mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
